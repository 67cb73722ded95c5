// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package internal

import (
	"crypto/rand"
	"errors"
	"io"

	"github.com/bytemare/ecc"
)

var errNotBlinded = errors.New("no input was blinded")

// A Client holds the session state of an EC-OPRF client: the input and the blind are necessary in blinding and
// finalizing.
type Client struct {
	// Core abstracts configuration dependent operations.
	*Core

	// Random is the source of randomness for blinds. If nil, crypto/rand.Reader is used.
	Random io.Reader

	input []byte
	blind *ecc.Scalar

	// preset marks a blind set by the caller, to be used for the next call to Blind.
	preset bool
}

// NewClient returns a client for the configuration.
func NewClient(c *Core) *Client {
	return &Client{Core: c}
}

// SetBlind forces the blinding scalar used by the next call to Blind.
func (c *Client) SetBlind(blind *ecc.Scalar) error {
	if err := c.CheckScalar(blind); err != nil {
		return err
	}

	c.blind = c.Group.NewScalar().Set(blind)
	c.preset = true

	return nil
}

func (c *Client) random() io.Reader {
	if c.Random == nil {
		return rand.Reader
	}

	return c.Random
}

// Blind blinds the input with a preset or new random blind. The client's state is only updated on success.
func (c *Client) Blind(input []byte) (*ecc.Element, error) {
	blind := c.blind
	if !c.preset || blind == nil {
		var err error
		if blind, err = c.RandomScalar(c.random()); err != nil {
			return nil, err
		}
	}

	blinded, err := c.Core.Blind(input, blind)
	if err != nil {
		return nil, err
	}

	c.input = make([]byte, len(input))
	copy(c.input, input)
	c.blind = blind
	c.preset = false

	return blinded, nil
}

// Unblind uses the registered blind to unblind the evaluated element.
func (c *Client) Unblind(evaluated *ecc.Element) (*ecc.Element, error) {
	if c.blind == nil {
		return nil, errNotBlinded
	}

	if err := c.CheckElement(evaluated); err != nil {
		return nil, err
	}

	return c.Core.Unblind(evaluated, c.blind), nil
}

// Finalize unblinds the evaluated element and hashes the transcript to produce the RFC9497 output.
func (c *Client) Finalize(evaluated *ecc.Element) ([]byte, error) {
	unblinded, err := c.Unblind(evaluated)
	if err != nil {
		return nil, err
	}

	return c.HashTranscript(c.input, unblinded.Encode()), nil
}

// Input returns a copy of the registered input.
func (c *Client) Input() []byte {
	return append([]byte(nil), c.input...)
}

// BlindScalar returns a copy of the registered blind, or nil.
func (c *Client) BlindScalar() *ecc.Scalar {
	if c.blind == nil {
		return nil
	}

	return c.blind.Copy()
}

// Restore sets the client's state to the given input and blind.
func (c *Client) Restore(input []byte, blind *ecc.Scalar) error {
	if err := c.CheckScalar(blind); err != nil {
		return err
	}

	c.input = append([]byte(nil), input...)
	c.blind = blind.Copy()
	c.preset = false

	return nil
}
