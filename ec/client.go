// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package ec

import (
	"errors"
	"fmt"
	"io"

	"github.com/bytemare/ecc"

	"github.com/bytemare/xoprf"
	"github.com/bytemare/xoprf/internal"
)

// Client is used for EC-OPRF client executions. It holds the input and the blind of a single session, and must not be
// used concurrently.
type Client struct {
	client *internal.Client
	suite  *Suite
}

// Client returns a new EC-OPRF client for the suite.
func (s *Suite) Client() *Client {
	return &Client{
		client: internal.NewClient(s.core),
		suite:  s,
	}
}

// SetRandom sets the source of randomness for the blinds. By default, crypto/rand.Reader is used.
func (c *Client) SetRandom(r io.Reader) {
	c.client.Random = r
}

// SetBlind forces the blinding scalar of the next call to Blind. This is optional, and useful if you want to force
// usage of specific blinding scalar. If no blinding scalar is set, a new, random blind is used.
func (c *Client) SetBlind(blind *ecc.Scalar) error {
	if err := c.client.SetBlind(blind); err != nil {
		return fmt.Errorf("%w: %w", xoprf.ErrParameter, err)
	}

	return nil
}

// Blind blinds the input and returns the blinded element to send to the server.
func (c *Client) Blind(input []byte) (*ecc.Element, error) {
	blinded, err := c.client.Blind(input)
	if err != nil {
		if errors.Is(err, internal.ErrRandom) {
			return nil, fmt.Errorf("%w: %w", xoprf.ErrEntropy, err)
		}

		return nil, fmt.Errorf("%w: %w", xoprf.ErrParameter, err)
	}

	return blinded, nil
}

// Unblind removes the blind from the server's evaluated element, and returns the OPRF output element.
func (c *Client) Unblind(evaluated *ecc.Element) (*ecc.Element, error) {
	u, err := c.client.Unblind(evaluated)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", xoprf.ErrParameter, err)
	}

	return u, nil
}

// Finalize unblinds the evaluated element and returns the RFC9497 protocol output, a digest of the input and the
// unblinded element.
func (c *Client) Finalize(evaluated *ecc.Element) ([]byte, error) {
	out, err := c.client.Finalize(evaluated)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", xoprf.ErrParameter, err)
	}

	return out, nil
}

var _ xoprf.Client[*ecc.Element, *ecc.Element, *ecc.Element] = (*Client)(nil)
