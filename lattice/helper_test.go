// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package lattice_test

import (
	"errors"
	"testing"

	"github.com/bytemare/xoprf/lattice"
)

// largePlaintextModulus is a 20-bit NTT friendly prime, large enough for 16 coordinates mod 97.
const largePlaintextModulus = 786433

var errBrokenSource = errors.New("broken random source")

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) {
	return 0, errBrokenSource
}

type configuration struct {
	name   string
	params lattice.Params
}

func profile(mapping lattice.VectorMapping, dimension int, t uint64) lattice.Params {
	p := lattice.DefaultParams()
	p.Mapping = mapping
	p.Dimension = dimension
	p.PlaintextModulus = t

	return p
}

var configurationTable = []configuration{
	{
		name:   "Default",
		params: lattice.DefaultParams(),
	},
	{
		name:   "XOF",
		params: profile(lattice.XOFMapping, 4, lattice.DefaultPlaintextModulus),
	},
	{
		name:   "ToyDimension1",
		params: profile(lattice.ToyMapping, 1, lattice.DefaultPlaintextModulus),
	},
	{
		name:   "XOFDimension16",
		params: profile(lattice.XOFMapping, 16, largePlaintextModulus),
	},
}

func testAll(t *testing.T, f func(*testing.T, *configuration, *lattice.Scheme)) {
	for _, test := range configurationTable {
		t.Run(test.name, func(t *testing.T) {
			f(t, &test, newScheme(t, test.params))
		})
	}
}

func newScheme(t *testing.T, p lattice.Params) *lattice.Scheme {
	scheme, err := lattice.NewScheme(p, nil)
	if err != nil {
		t.Fatal(err)
	}

	return scheme
}

func newServer(t *testing.T, scheme *lattice.Scheme) (*lattice.Server, lattice.KeyVector) {
	key, err := scheme.GenerateKey(nil)
	if err != nil {
		t.Fatal(err)
	}

	server, err := scheme.NewServer(key)
	if err != nil {
		t.Fatal(err)
	}

	return server, key
}
