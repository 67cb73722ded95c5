// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package lattice

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/bytemare/xoprf"
)

// VectorMapping identifies how an input is mapped to a vector of integers mod Q.
type VectorMapping string

const (
	// ToyMapping derives each coordinate from two bytes of a SHA-256 digest of the input, mixed with a fixed constant.
	// It is kept for fidelity with the experimental design, and is not a cryptographically sound hash-to-vector: the
	// coordinates are biased, and they repeat once the dimension exceeds half the digest length.
	ToyMapping VectorMapping = "toy"

	// XOFMapping derives uniform coordinates mod Q by rejection sampling 16-bit words of a domain separated
	// SHAKE-256 output.
	XOFMapping VectorMapping = "xof"
)

const (
	// DefaultModulus is the toy arithmetic modulus Q. It is not secure.
	DefaultModulus = 97

	// DefaultDimension is the default vector length.
	DefaultDimension = 4

	// DefaultMixing is the default constant used to combine digest byte pairs in the ToyMapping.
	DefaultMixing = 31

	// DefaultPlaintextModulus is the default plaintext modulus t of the homomorphic scheme, 2^16+1.
	DefaultPlaintextModulus = 0x10001

	maxModulus = 1 << 16
)

var (
	errModulus          = errors.New("modulus Q must be in [2, 2^16]")
	errDimension        = errors.New("dimension must be at least 1")
	errMixing           = errors.New("mixing constant must be at least 1")
	errMapping          = errors.New("unknown vector mapping")
	errRingDegree       = errors.New("log_n must be set")
	errCiphertextModuli = errors.New("log_q must contain at least one modulus")
	errPlaintextModulus = errors.New("plaintext modulus must exceed dimension * (Q-1)^2")
)

// Params is a Lattice-OPRF profile: the toy arithmetic of the inner-product PRF, and the literal of the homomorphic
// encryption parameters.
type Params struct {
	// Mapping selects the hash-to-vector construction.
	Mapping VectorMapping `koanf:"mapping"`

	// LogQ and LogP are the bit sizes of the ciphertext and auxiliary moduli.
	LogQ []int `koanf:"log_q"`
	LogP []int `koanf:"log_p"`

	// Modulus is the toy arithmetic modulus Q, independent of the plaintext modulus.
	Modulus uint64 `koanf:"modulus"`

	// Mixing is the constant combining two digest bytes in the ToyMapping.
	Mixing uint64 `koanf:"mixing"`

	// PlaintextModulus is the plaintext modulus t of the homomorphic scheme. It must be larger than any inner product,
	// so that no wraparound occurs in the plaintext space.
	PlaintextModulus uint64 `koanf:"plaintext_modulus"`

	// Dimension is the length of the input and key vectors.
	Dimension int `koanf:"dimension"`

	// LogN is the log2 of the ring degree.
	LogN int `koanf:"log_n"`
}

// DefaultParams returns the demonstration profile: Q = 97, dimension 4, the toy mapping, and a ring of degree 2^12
// with a single 58-bit modulus and t = 2^16+1.
func DefaultParams() Params {
	return Params{
		Modulus:          DefaultModulus,
		Dimension:        DefaultDimension,
		Mixing:           DefaultMixing,
		Mapping:          ToyMapping,
		LogN:             12,
		LogQ:             []int{58},
		PlaintextModulus: DefaultPlaintextModulus,
	}
}

// MaxInnerProduct returns the largest inner product of two vectors with coordinates in [0, Q) over the integers, and
// false if it overflows.
func (p Params) MaxInnerProduct() (uint64, bool) {
	q := p.Modulus - 1

	hi, sq := bits.Mul64(q, q)
	if hi != 0 {
		return 0, false
	}

	hi, m := bits.Mul64(sq, uint64(p.Dimension))

	return m, hi == 0
}

// Validate returns an ErrParameter wrapped error if the profile is not usable.
func (p Params) Validate() error {
	var err error

	switch {
	case p.Modulus < 2 || p.Modulus > maxModulus:
		err = errModulus
	case p.Dimension < 1:
		err = errDimension
	case p.Mapping != ToyMapping && p.Mapping != XOFMapping:
		err = fmt.Errorf("%w: %q", errMapping, p.Mapping)
	case p.Mapping == ToyMapping && p.Mixing == 0:
		err = errMixing
	case p.LogN <= 0:
		err = errRingDegree
	case len(p.LogQ) == 0:
		err = errCiphertextModuli
	default:
		if m, ok := p.MaxInnerProduct(); !ok || m >= p.PlaintextModulus {
			err = errPlaintextModulus
		}
	}

	if err != nil {
		return fmt.Errorf("%w: %w", xoprf.ErrParameter, err)
	}

	return nil
}
