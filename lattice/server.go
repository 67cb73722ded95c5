// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package lattice

import (
	"fmt"
	"slices"

	"github.com/bytemare/xoprf"
)

// Server holds the secret key vector. The key is copied on creation and never modified, so a Server can be shared
// across concurrent evaluations.
type Server struct {
	scheme *Scheme
	key    KeyVector
}

// NewServer returns a server evaluating with a copy of the key, which must have Dimension coordinates mod Q.
func (s *Scheme) NewServer(key KeyVector) (*Server, error) {
	if len(key) != s.params.Dimension {
		return nil, fmt.Errorf("%w: %w: %d != %d", xoprf.ErrParameter, errKeyDimension, len(key), s.params.Dimension)
	}

	if err := s.checkKey(key); err != nil {
		return nil, err
	}

	return &Server{
		scheme: s,
		key:    slices.Clone(key),
	}, nil
}

// Evaluate homomorphically evaluates the inner product of the blinded input with the server's key.
func (s *Server) Evaluate(blinded *BlindedInput) (*Evaluation, error) {
	return Evaluate(s.scheme, blinded, s.key)
}

var _ xoprf.Evaluator[*BlindedInput, *Evaluation] = (*Server)(nil)
