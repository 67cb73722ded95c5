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

	"github.com/bytemare/xoprf"
)

var (
	errStateNoBlind     = errors.New("no blind in state")
	errStateCiphersuite = errors.New("state ciphersuite or mapping differs from the suite")
)

// State represents a client's state, allowing the blind to survive the round trip to the server, e.g. when the client
// process doesn't stay alive while waiting. It contains the blind in clear, and must be protected accordingly.
type State struct {
	Input       []byte      `json:"i"`
	Blind       []byte      `json:"r"`
	Ciphersuite Ciphersuite `json:"s"`
	Mapping     Mapping     `json:"m"`
}

// Export extracts the client's internal values that can be imported in another client for session resumption.
func (c *Client) Export() *State {
	s := &State{
		Ciphersuite: c.suite.id,
		Mapping:     c.suite.core.Mapping,
		Input:       c.client.Input(),
	}

	if blind := c.client.BlindScalar(); blind != nil {
		s.Blind = blind.Encode()
	}

	return s
}

// Import restores a client's session state, previously exported with Export.
func (c *Client) Import(state *State) error {
	if state.Ciphersuite != c.suite.id || state.Mapping != c.suite.core.Mapping {
		return fmt.Errorf("%w: %w", xoprf.ErrParameter, errStateCiphersuite)
	}

	if len(state.Blind) == 0 {
		return fmt.Errorf("%w: %w", xoprf.ErrParameter, errStateNoBlind)
	}

	blind, err := c.suite.DecodeScalar(state.Blind)
	if err != nil {
		return fmt.Errorf("blind: %w", err)
	}

	if err = c.client.Restore(state.Input, blind); err != nil {
		return fmt.Errorf("%w: %w", xoprf.ErrParameter, err)
	}

	return nil
}
