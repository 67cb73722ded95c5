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

// DecodeElement decodes e to an element in the group. The identity element is rejected.
func (s *Suite) DecodeElement(e []byte) (*ecc.Element, error) {
	result := s.core.Group.NewElement()

	if err := result.Decode(e); err != nil {
		return nil, fmt.Errorf("%w: element decoding: %w", xoprf.ErrParameter, err)
	}

	if err := s.core.CheckElement(result); err != nil {
		return nil, fmt.Errorf("%w: %w", xoprf.ErrParameter, err)
	}

	return result, nil
}

// DecodeScalar decodes s to a scalar in the group.
func (s *Suite) DecodeScalar(scalar []byte) (*ecc.Scalar, error) {
	result := s.core.Group.NewScalar()

	if err := result.Decode(scalar); err != nil {
		return nil, fmt.Errorf("%w: scalar decoding: %w", xoprf.ErrParameter, err)
	}

	return result, nil
}
