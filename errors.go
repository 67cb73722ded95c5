// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package xoprf

import "errors"

var (
	// ErrParameter is returned when the caller violates an operation's contract, e.g. mismatched vector lengths,
	// malformed encodings, or a zero blinding scalar or key.
	ErrParameter = errors.New("invalid parameter")

	// ErrDecryption is returned when a homomorphically evaluated result can't be decrypted or decoded to a valid
	// output, which indicates either an insufficient noise budget for the parameter set or corruption in transit.
	ErrDecryption = errors.New("decryption failure")

	// ErrEntropy is returned when the random source fails. Blinding never proceeds with degraded randomness.
	ErrEntropy = errors.New("entropy source failure")
)
