// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Package xoprf provides abstracted access to Oblivious Pseudorandom Functions (OPRF) over two structurally different
// backends: Elliptic Curve Prime Order Groups (EC-OPRF, in the github.com/bytemare/xoprf/ec package), and an
// experimental lattice construction evaluating an inner-product PRF under homomorphic encryption (in the
// github.com/bytemare/xoprf/lattice package).
//
// Both backends follow the same Blind, Evaluate, and Unblind flow, captured by the Client and Evaluator interfaces,
// but do not share a concrete representation of blinded, evaluated, or output values.
package xoprf
