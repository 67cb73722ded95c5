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
	"fmt"
	"testing"

	"github.com/bytemare/ecc"
	circl "github.com/cloudflare/circl/group"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/bytemare/xoprf"
	"github.com/bytemare/xoprf/ec"
)

var inputs = [][]byte{
	[]byte("supersecret"),
	[]byte("input"),
	{},
	{0x00},
}

func TestOPRF(t *testing.T) {
	testAll(t, func(t *testing.T, c *configuration, suite *ec.Suite) {
		key := newKey(t, suite)
		server, err := suite.NewServer(key)
		require.NoError(t, err)

		for _, input := range inputs {
			blinded, blind, err := suite.Blind(input, nil)
			require.NoError(t, err)

			evaluated := ec.Evaluate(key, blinded)
			output, err := suite.Unblind(evaluated, blind)
			require.NoError(t, err)

			direct, err := suite.Direct(input, key)
			require.NoError(t, err)
			assert.True(t, ec.Equal(direct, output), "unblinded output differs from direct computation")

			// Same through the stateful client and the generic flow.
			client := suite.Client()
			output, err = xoprf.Run[*ecc.Element, *ecc.Element, *ecc.Element](client, server, input)
			require.NoError(t, err)
			assert.True(t, ec.Equal(direct, output))
		}
	})
}

func TestFinalize(t *testing.T) {
	testAll(t, func(t *testing.T, c *configuration, suite *ec.Suite) {
		server, err := suite.NewServer(newKey(t, suite))
		require.NoError(t, err)

		client := suite.Client()
		input := []byte("input")

		blinded, err := client.Blind(input)
		require.NoError(t, err)

		evaluated, err := server.Evaluate(blinded)
		require.NoError(t, err)

		output, err := client.Finalize(evaluated)
		require.NoError(t, err)
		assert.Len(t, output, outputLength(c))

		expected, err := server.FullEvaluate(input)
		require.NoError(t, err)
		assert.Equal(t, expected, output)
	})
}

func outputLength(c *configuration) int {
	switch c.ciphersuite {
	case ec.P256Sha256, ec.Secp256k1:
		return 32
	case ec.P384Sha384:
		return 48
	default:
		return 64
	}
}

func TestBlindingHidesInput(t *testing.T) {
	testAll(t, func(t *testing.T, c *configuration, suite *ec.Suite) {
		input := []byte("supersecret")
		key := newKey(t, suite)

		b1, r1, err := suite.Blind(input, nil)
		require.NoError(t, err)

		b2, r2, err := suite.Blind(input, nil)
		require.NoError(t, err)

		assert.False(t, r1.Equal(r2), "blinding scalars must be fresh")
		assert.False(t, ec.Equal(b1, b2), "blinded elements of the same input must differ")
		assert.False(t, ec.Equal(b1, suite.HashToGroup(input)), "blinded element must not be the hashed input")

		o1, err := suite.Unblind(ec.Evaluate(key, b1), r1)
		require.NoError(t, err)

		o2, err := suite.Unblind(ec.Evaluate(key, b2), r2)
		require.NoError(t, err)

		assert.True(t, ec.Equal(o1, o2))
	})
}

func TestHashToGroupDeterminism(t *testing.T) {
	testAll(t, func(t *testing.T, c *configuration, suite *ec.Suite) {
		for _, input := range inputs {
			p1 := suite.HashToGroup(input)
			p2 := suite.HashToGroup(append([]byte(nil), input...))
			assert.True(t, ec.Equal(p1, p2))
			assert.False(t, p1.IsIdentity())
		}

		assert.False(t, ec.Equal(suite.HashToGroup([]byte("a")), suite.HashToGroup([]byte("b"))))

		// A fresh suite gives the same mapping.
		other, err := ec.New(c.ciphersuite, c.mapping)
		require.NoError(t, err)
		assert.True(t, ec.Equal(suite.HashToGroup(inputs[0]), other.HashToGroup(inputs[0])))
	})
}

func TestMappingsDiffer(t *testing.T) {
	h2c := ec.Ristretto255Sha512.Suite()

	uniform, err := ec.New(ec.Ristretto255Sha512, ec.UniformBytes)
	require.NoError(t, err)
	assert.Equal(t, ec.UniformBytes, uniform.Mapping())

	input := []byte("supersecret")
	assert.False(t, ec.Equal(h2c.HashToGroup(input), uniform.HashToGroup(input)))
}

func TestUniformBytesUnavailable(t *testing.T) {
	for _, c := range []ec.Ciphersuite{ec.P256Sha256, ec.P384Sha384, ec.P521Sha512, ec.Secp256k1} {
		_, err := ec.New(c, ec.UniformBytes)
		assert.ErrorIs(t, err, xoprf.ErrParameter, c.Name())
	}
}

// TestHashToCurveInterop checks the input hasher against an independent RFC9380 implementation.
func TestHashToCurveInterop(t *testing.T) {
	groups := map[ec.Ciphersuite]circl.Group{
		ec.Ristretto255Sha512: circl.Ristretto255,
		ec.P256Sha256:         circl.P256,
		ec.P384Sha384:         circl.P384,
		ec.P521Sha512:         circl.P521,
	}

	for cs, g := range groups {
		t.Run(cs.Name(), func(t *testing.T) {
			suite := cs.Suite()
			dst := []byte("HashToGroup-OPRFV1-\x00-" + cs.Name())

			for _, input := range inputs {
				expected, err := g.HashToElement(input, dst).MarshalBinaryCompress()
				require.NoError(t, err)
				assert.Equal(t, hex.EncodeToString(expected), hex.EncodeToString(suite.HashToGroup(input).Encode()))
			}
		})
	}
}

func TestSetBlind(t *testing.T) {
	testAll(t, func(t *testing.T, c *configuration, suite *ec.Suite) {
		input := []byte("input")
		blind := newKey(t, suite)

		client := suite.Client()
		require.NoError(t, client.SetBlind(blind))

		blinded, err := client.Blind(input)
		require.NoError(t, err)
		assert.True(t, ec.Equal(suite.HashToGroup(input).Multiply(blind), blinded))

		// The preset blind is only used once.
		again, err := client.Blind(input)
		require.NoError(t, err)
		assert.False(t, ec.Equal(blinded, again))
	})
}

func TestDeriveKeyPair(t *testing.T) {
	info := []byte("some instance")
	suite := ec.Ristretto255Sha512.Suite()

	random, _ := hex.DecodeString("c332260baab120459e7ad1d47ce5a43f980abe9c19ecc0550bbd0dde58a548bf")
	encodedReferenceSecretKeyR255, _ := hex.DecodeString(
		"78e4560c5779791f87f6493fff0ac0476d64ebdecb9ae26a0565f673b10be906",
	)
	encodedReferencePublicKeyR255, _ := hex.DecodeString(
		"7c45e2a6748414358f597874d4afa951cbc39cb3300c5cfde9ac86348062560f",
	)

	sk, pk := suite.DeriveKeyPair(random, info)

	assert.Equal(t, encodedReferenceSecretKeyR255, sk.Encode())
	assert.Equal(t, encodedReferencePublicKeyR255, pk.Encode())
}

func TestFromName(t *testing.T) {
	testAll(t, func(t *testing.T, c *configuration, suite *ec.Suite) {
		cs, err := ec.FromName(c.ciphersuite.Name())
		require.NoError(t, err)
		assert.Equal(t, c.ciphersuite, cs)
		assert.Equal(t, c.group, cs.Group())
		assert.Equal(t, c.ciphersuite, ec.FromGroup(c.group))
		assert.Equal(t, c.ciphersuite, suite.Ciphersuite())
	})

	_, err := ec.FromName("decaf448-SHAKE256")
	assert.ErrorIs(t, err, xoprf.ErrParameter)
}

func TestConcurrentEvaluations(t *testing.T) {
	testAll(t, func(t *testing.T, c *configuration, suite *ec.Suite) {
		key := newKey(t, suite)
		server, err := suite.NewServer(key)
		require.NoError(t, err)

		var g errgroup.Group

		for i := 0; i < 16; i++ {
			input := []byte(fmt.Sprintf("input-%d", i))

			g.Go(func() error {
				client := suite.Client()

				output, err := xoprf.Run[*ecc.Element, *ecc.Element, *ecc.Element](client, server, input)
				if err != nil {
					return err
				}

				direct, err := suite.Direct(input, key)
				if err != nil {
					return err
				}

				if !ec.Equal(direct, output) {
					return fmt.Errorf("output mismatch for %q", input)
				}

				return nil
			})
		}

		require.NoError(t, g.Wait())
	})
}

func TestConcurrentHashToGroup(t *testing.T) {
	testAll(t, func(t *testing.T, c *configuration, suite *ec.Suite) {
		inputs := make([][]byte, 8)
		expected := make([]*ecc.Element, len(inputs))

		for i := range inputs {
			inputs[i] = []byte(fmt.Sprintf("input-%d", i))
			expected[i] = suite.HashToGroup(inputs[i])
		}

		var g errgroup.Group

		for w := 0; w < 64; w++ {
			g.Go(func() error {
				for r := 0; r < 8; r++ {
					i := (w + r) % len(inputs)

					if p := suite.HashToGroup(inputs[i]); !ec.Equal(expected[i], p) {
						return fmt.Errorf("hash of %q differs under concurrency", inputs[i])
					}

					if _, _, err := suite.Blind(inputs[i], nil); err != nil {
						return err
					}
				}

				return nil
			})
		}

		require.NoError(t, g.Wait())
	})
}
