// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package lattice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bytemare/xoprf/lattice"
)

func TestToyMappingVectors(t *testing.T) {
	scheme := newScheme(t, lattice.DefaultParams())

	assert.Equal(t, []uint64{81, 87, 3, 12}, scheme.HashToVector([]byte("supersecret")))
	assert.Equal(t, []uint64{35, 31, 17, 15}, scheme.HashToVector(nil))
	assert.Equal(t, scheme.HashToVector(nil), scheme.HashToVector([]byte{}))
}

// TestToyMappingRepeats documents the weakness of the toy mapping: past 16 coordinates, the digest wraps around and the
// coordinates repeat.
func TestToyMappingRepeats(t *testing.T) {
	scheme := newScheme(t, profile(lattice.ToyMapping, 20, largePlaintextModulus))

	x := scheme.HashToVector([]byte("supersecret"))
	assert.Equal(t, []uint64{81, 87, 3, 12, 4, 6, 89, 93, 55, 58, 80, 49, 25, 66, 5, 76, 81, 87, 3, 12}, x)
	assert.Equal(t, x[:4], x[16:])
}

func TestHashToVector(t *testing.T) {
	testAll(t, func(t *testing.T, c *configuration, scheme *lattice.Scheme) {
		for _, input := range inputs {
			x := scheme.HashToVector(input)
			assert.Len(t, x, c.params.Dimension)
			assert.Equal(t, x, scheme.HashToVector(append([]byte(nil), input...)))

			for _, v := range x {
				assert.Less(t, v, c.params.Modulus)
			}
		}
	})
}

func TestXOFMapping(t *testing.T) {
	toy := newScheme(t, lattice.DefaultParams())
	xof := newScheme(t, profile(lattice.XOFMapping, 4, lattice.DefaultPlaintextModulus))
	input := []byte("supersecret")

	assert.NotEqual(t, toy.HashToVector(input), xof.HashToVector(input))
	assert.NotEqual(t, xof.HashToVector([]byte("a")), xof.HashToVector([]byte("b")))

	// The dimension is bound into the output, so a shorter vector is not a prefix of a longer one.
	long := newScheme(t, profile(lattice.XOFMapping, 16, largePlaintextModulus))
	assert.NotEqual(t, xof.HashToVector(input), long.HashToVector(input)[:4])
}
