// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package lattice

import (
	"github.com/tuneinsight/lattigo/v6/core/rlwe"

	"github.com/bytemare/xoprf"
)

// Client is used for Lattice-OPRF client executions. It owns the homomorphic encryption key pair, generated before
// any blinding.
type Client struct {
	scheme *Scheme
	sk     *rlwe.SecretKey
	pk     *rlwe.PublicKey
}

// NewClient returns a client with a fresh homomorphic encryption key pair.
func (s *Scheme) NewClient() *Client {
	sk, pk := s.GenerateHEKeys()

	return &Client{
		scheme: s,
		sk:     sk,
		pk:     pk,
	}
}

// PublicKey returns the client's homomorphic encryption public key.
func (c *Client) PublicKey() *rlwe.PublicKey {
	return c.pk
}

// Blind encrypts the hashed input vector under the client's public key.
func (c *Client) Blind(input []byte) (*BlindedInput, error) {
	return Blind(c.scheme, input, c.pk)
}

// Unblind decrypts and decodes the server's evaluation. Only index 0 of the returned coefficients carries the inner
// product, before reduction mod Q.
func (c *Client) Unblind(evaluation *Evaluation) ([]uint64, error) {
	return Unblind(c.scheme, evaluation, c.sk)
}

// Finalize unblinds the evaluation and returns the OPRF output, the inner product mod Q.
func (c *Client) Finalize(evaluation *Evaluation) (uint64, error) {
	decoded, err := c.Unblind(evaluation)
	if err != nil {
		return 0, err
	}

	return c.scheme.Output(decoded)
}

var _ xoprf.Client[*BlindedInput, *Evaluation, []uint64] = (*Client)(nil)
