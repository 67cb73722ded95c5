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

	"github.com/tuneinsight/lattigo/v6/core/rlwe"
	"github.com/tuneinsight/lattigo/v6/schemes/bgv"

	"github.com/bytemare/xoprf"
	"github.com/bytemare/xoprf/internal"
)

var (
	errDecodeShort  = errors.New("decoding error: insufficient data length")
	errDecodeCount  = errors.New("decoding error: unexpected number of ciphertexts")
	errDecodeLength = errors.New("decoding error: wrong encoding length")
	errDecodeDegree = errors.New("decoding error: ciphertext is not of degree 1")
)

// BlindedInput is the client's message to the server: one ciphertext per coordinate of the hashed input vector.
type BlindedInput struct {
	Ciphertexts []*rlwe.Ciphertext
}

// Evaluation is the server's message to the client: a single ciphertext of the inner product.
type Evaluation struct {
	Ciphertext *rlwe.Ciphertext
}

// MarshalBinary encodes the blinded input as a 4-byte ciphertext count followed by the 4-byte length prefixed
// ciphertext encodings.
func (b *BlindedInput) MarshalBinary() ([]byte, error) {
	return encodeCiphertexts(b.Ciphertexts)
}

// MarshalBinary encodes the evaluation in the same format as a BlindedInput with a single ciphertext.
func (e *Evaluation) MarshalBinary() ([]byte, error) {
	return encodeCiphertexts([]*rlwe.Ciphertext{e.Ciphertext})
}

func encodeCiphertexts(cts []*rlwe.Ciphertext) ([]byte, error) {
	out := internal.I2osp4(len(cts))

	for i, ct := range cts {
		if ct == nil {
			return nil, fmt.Errorf("%w: %w: index %d", xoprf.ErrParameter, errNilCiphertext, i)
		}

		enc, err := ct.MarshalBinary()
		if err != nil {
			return nil, fmt.Errorf("encoding ciphertext %d: %w", i, err)
		}

		out = append(out, internal.I2osp4(len(enc))...)
		out = append(out, enc...)
	}

	return out, nil
}

// DecodeBlindedInput decodes a BlindedInput for this scheme. It must hold exactly Dimension ciphertexts.
func (s *Scheme) DecodeBlindedInput(data []byte) (*BlindedInput, error) {
	cts, err := s.decodeCiphertexts(data, s.params.Dimension)
	if err != nil {
		return nil, err
	}

	return &BlindedInput{Ciphertexts: cts}, nil
}

// DecodeEvaluation decodes an Evaluation for this scheme.
func (s *Scheme) DecodeEvaluation(data []byte) (*Evaluation, error) {
	cts, err := s.decodeCiphertexts(data, 1)
	if err != nil {
		return nil, err
	}

	return &Evaluation{Ciphertext: cts[0]}, nil
}

func (s *Scheme) decodeCiphertexts(data []byte, expected int) ([]*rlwe.Ciphertext, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("%w: %w", xoprf.ErrParameter, errDecodeShort)
	}

	if n := internal.Os2ip4(data[:4]); n != expected {
		return nil, fmt.Errorf("%w: %w: %d != %d", xoprf.ErrParameter, errDecodeCount, n, expected)
	}

	cts := make([]*rlwe.Ciphertext, expected)
	offset := 4

	for i := range cts {
		if len(data[offset:]) < 4 {
			return nil, fmt.Errorf("%w: %w", xoprf.ErrParameter, errDecodeShort)
		}

		l := internal.Os2ip4(data[offset : offset+4])
		offset += 4

		if l > len(data[offset:]) {
			return nil, fmt.Errorf("%w: %w", xoprf.ErrParameter, errDecodeLength)
		}

		ct := bgv.NewCiphertext(s.he, 1, s.he.MaxLevel())
		if err := ct.UnmarshalBinary(data[offset : offset+l]); err != nil {
			return nil, fmt.Errorf("%w: ciphertext %d: %w", xoprf.ErrParameter, i, err)
		}

		if ct.Degree() != 1 {
			return nil, fmt.Errorf("%w: ciphertext %d: %w", xoprf.ErrParameter, i, errDecodeDegree)
		}

		cts[i] = ct
		offset += l
	}

	if offset != len(data) {
		return nil, fmt.Errorf("%w: %w", xoprf.ErrParameter, errDecodeLength)
	}

	return cts, nil
}
