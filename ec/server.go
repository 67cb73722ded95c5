// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package ec

import (
	"fmt"

	"github.com/bytemare/ecc"

	"github.com/bytemare/xoprf"
)

// Server holds the EC-OPRF secret key. The key is never modified after NewServer, so a Server can be shared across
// concurrent evaluations.
type Server struct {
	suite *Suite
	key   *ecc.Scalar
}

// NewServer returns a server evaluating with a copy of the given secret key.
func (s *Suite) NewServer(key *ecc.Scalar) (*Server, error) {
	if err := s.core.CheckScalar(key); err != nil {
		return nil, fmt.Errorf("%w: key: %w", xoprf.ErrParameter, err)
	}

	return &Server{
		suite: s,
		key:   key.Copy(),
	}, nil
}

// Evaluate evaluates the client provided blinded element with the server's secret key.
func (s *Server) Evaluate(blinded *ecc.Element) (*ecc.Element, error) {
	if err := s.suite.core.CheckElement(blinded); err != nil {
		return nil, fmt.Errorf("%w: blinded element: %w", xoprf.ErrParameter, err)
	}

	return Evaluate(s.key, blinded), nil
}

// FullEvaluate reproduces the full PRF but without the blinding operations, using the client's input. This outputs the
// same digest as the client's Finalize().
func (s *Server) FullEvaluate(input []byte) ([]byte, error) {
	u, err := s.suite.Direct(input, s.key)
	if err != nil {
		return nil, err
	}

	return s.suite.Finalize(input, u), nil
}

var _ xoprf.Evaluator[*ecc.Element, *ecc.Element] = (*Server)(nil)
