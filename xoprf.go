// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package xoprf

import (
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/hkdf"
)

// Client is the client side of an OPRF backend. B is the blinded input type sent to the server, E the evaluated type
// returned by the server, and O the backend's output type. A Client keeps its own blinding secrets between Blind and
// Unblind.
type Client[B, E, O any] interface {
	// Blind blinds the input and returns the value to send to the server.
	Blind(input []byte) (B, error)

	// Unblind removes the blinding from the server's evaluation and returns the PRF output.
	Unblind(evaluated E) (O, error)
}

// Evaluator is the server side of an OPRF backend, holding the secret key.
type Evaluator[B, E any] interface {
	// Evaluate applies the secret key to the blinded input.
	Evaluate(blinded B) (E, error)
}

// Run executes a full Blind, Evaluate, and Unblind round locally, with the client and server in the same process.
func Run[B, E, O any](client Client[B, E, O], server Evaluator[B, E], input []byte) (O, error) {
	var output O

	blinded, err := client.Blind(input)
	if err != nil {
		return output, fmt.Errorf("blind: %w", err)
	}

	evaluated, err := server.Evaluate(blinded)
	if err != nil {
		return output, fmt.Errorf("evaluate: %w", err)
	}

	output, err = client.Unblind(evaluated)
	if err != nil {
		return output, fmt.Errorf("unblind: %w", err)
	}

	return output, nil
}

// Expand derives a key of the given length from an OPRF output using HKDF with SHA-256. The output is used as the
// input keying material, without salt, and info binds the derived key to its application context.
func Expand(output, info []byte, length int) ([]byte, error) {
	if len(output) == 0 {
		return nil, fmt.Errorf("%w: empty OPRF output", ErrParameter)
	}

	if length <= 0 || length > 255*sha256.Size {
		return nil, fmt.Errorf("%w: invalid expansion length %d", ErrParameter, length)
	}

	key := make([]byte, length)
	if _, err := hkdf.New(sha256.New, output, nil, info).Read(key); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParameter, err)
	}

	return key, nil
}
