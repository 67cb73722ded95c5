// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Package oracle computes the OPRF outputs of both backends directly from the input and the secret key, without any
// blinding. It is meant to verify that the oblivious protocol yields the same values, and must not be used in a
// request path: it needs both the client's input and the server's key.
package oracle

import (
	"fmt"

	"github.com/bytemare/ecc"

	"github.com/bytemare/xoprf"
	"github.com/bytemare/xoprf/ec"
	"github.com/bytemare/xoprf/lattice"
)

// EC returns H(input)*key, the element an EC-OPRF client obtains after unblinding.
func EC(suite *ec.Suite, input []byte, key *ecc.Scalar) (*ecc.Element, error) {
	return suite.Direct(input, key)
}

// Lattice returns <HashToVector(input), key> mod Q, the output a Lattice-OPRF client obtains after unblinding.
func Lattice(scheme *lattice.Scheme, input []byte, key lattice.KeyVector) (uint64, error) {
	x := scheme.HashToVector(input)
	if len(x) != len(key) {
		return 0, fmt.Errorf("%w: key dimension %d != %d", xoprf.ErrParameter, len(key), len(x))
	}

	q := scheme.Params().Modulus

	var acc uint64
	for i, v := range x {
		if key[i] >= q {
			return 0, fmt.Errorf("%w: key coordinate %d is not reduced mod Q", xoprf.ErrParameter, i)
		}

		acc += v * key[i]
	}

	return acc % q, nil
}
