// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package ec_test

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/bytemare/ecc"

	"github.com/bytemare/xoprf/ec"
)

var errBrokenSource = errors.New("broken random source")

// helper functions

type configuration struct {
	name        string
	ciphersuite ec.Ciphersuite
	group       ecc.Group
	mapping     ec.Mapping
}

var configurationTable = []configuration{
	{
		name:        "Ristretto255",
		ciphersuite: ec.Ristretto255Sha512,
		group:       ecc.Ristretto255Sha512,
		mapping:     ec.HashToCurve,
	},
	{
		name:        "Ristretto255UniformBytes",
		ciphersuite: ec.Ristretto255Sha512,
		group:       ecc.Ristretto255Sha512,
		mapping:     ec.UniformBytes,
	},
	{
		name:        "P256Sha256",
		ciphersuite: ec.P256Sha256,
		group:       ecc.P256Sha256,
		mapping:     ec.HashToCurve,
	},
	{
		name:        "P384Sha384",
		ciphersuite: ec.P384Sha384,
		group:       ecc.P384Sha384,
		mapping:     ec.HashToCurve,
	},
	{
		name:        "P521Sha512",
		ciphersuite: ec.P521Sha512,
		group:       ecc.P521Sha512,
		mapping:     ec.HashToCurve,
	},
	{
		name:        "Secp256k1Sha256",
		ciphersuite: ec.Secp256k1,
		group:       ecc.Secp256k1Sha256,
		mapping:     ec.HashToCurve,
	},
}

func testAll(t *testing.T, f func(*testing.T, *configuration, *ec.Suite)) {
	for _, test := range configurationTable {
		t.Run(test.name, func(t *testing.T) {
			suite, err := ec.New(test.ciphersuite, test.mapping)
			if err != nil {
				t.Fatal(err)
			}

			f(t, &test, suite)
		})
	}
}

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) {
	return 0, errBrokenSource
}

func getBadRistrettoScalar() []byte {
	a := "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	decoded, _ := hex.DecodeString(a)

	return decoded
}

func getBadRistrettoElement() []byte {
	a := "2a292df7e32cababbd9de088d1d1abec9fc0440f637ed2fba145094dc14bea08"
	decoded, _ := hex.DecodeString(a)

	return decoded
}

func newKey(t *testing.T, suite *ec.Suite) *ecc.Scalar {
	k, err := suite.GenerateKey()
	if err != nil {
		t.Fatal(err)
	}

	return k
}
