// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Package lattice implements an experimental Oblivious Pseudorandom Function over lattices: the PRF is the inner
// product <k, x> mod Q of the server's secret key vector k and a vector x hashed from the client's input.
//
// The client encrypts each coordinate of x under its own public key with the BGV homomorphic encryption scheme, using
// the coefficient encoding. The server multiplies each ciphertext by the matching key coordinate, encoded as a
// plaintext, and sums the products. The client decrypts the sum, which holds the inner product in its constant
// coefficient, and reduces it mod Q. Encryption itself hides the input, so there is no separate blinding factor.
//
// The input vector is encrypted one coordinate per ciphertext, trading the packing efficiency of the scheme's slots for
// a plain summation in the evaluation.
package lattice

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/tuneinsight/lattigo/v6/core/rlwe"
	"github.com/tuneinsight/lattigo/v6/schemes/bgv"

	"github.com/bytemare/xoprf"
	"github.com/bytemare/xoprf/log"
)

var (
	errDimensionMismatch = errors.New("number of ciphertexts differs from key dimension")
	errKeyDimension      = errors.New("key length differs from the scheme's dimension")
	errKeyRange          = errors.New("key coordinate is not reduced mod Q")
	errNilCiphertext     = errors.New("nil ciphertext")
	errNilKey            = errors.New("nil homomorphic encryption key")
	errArtifacts         = errors.New("non-constant decrypted polynomial")
	errBound             = errors.New("decrypted value exceeds the largest inner product")
)

// KeyVector is the server's secret key: Dimension integers mod Q.
type KeyVector []uint64

// Scheme holds a validated profile and the homomorphic encryption parameters derived from it. It is immutable, and can
// be shared by clients and servers across goroutines.
type Scheme struct {
	logger    *log.Logger
	encoder   *bgv.Encoder
	evaluator *bgv.Evaluator
	params    Params
	he        bgv.Parameters
	bound     uint64
}

// NewScheme validates the profile and instantiates the homomorphic encryption parameters. A nil logger discards logs.
func NewScheme(p Params, logger *log.Logger) (*Scheme, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if logger == nil {
		logger = log.NewNopLogger()
	}

	he, err := bgv.NewParametersFromLiteral(bgv.ParametersLiteral{
		LogN:             p.LogN,
		LogQ:             p.LogQ,
		LogP:             p.LogP,
		PlaintextModulus: p.PlaintextModulus,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: homomorphic parameters: %w", xoprf.ErrParameter, err)
	}

	bound, _ := p.MaxInnerProduct()

	s := &Scheme{
		logger:    logger.WithModule("lattice"),
		encoder:   bgv.NewEncoder(he),
		evaluator: bgv.NewEvaluator(he, nil),
		params:    p,
		he:        he,
		bound:     bound,
	}

	s.logger.Debug("scheme ready",
		"modulus", p.Modulus,
		"dimension", p.Dimension,
		"mapping", string(p.Mapping),
		"log_n", he.LogN(),
		"log_qp", he.LogQP(),
		"plaintext_modulus", he.PlaintextModulus(),
	)

	return s, nil
}

// Params returns the scheme's profile.
func (s *Scheme) Params() Params {
	return s.params
}

// HEParameters returns the homomorphic encryption parameters.
func (s *Scheme) HEParameters() bgv.Parameters {
	return s.he
}

// GenerateKey returns a uniformly random key vector drawn from random, or from crypto/rand.Reader if random is nil.
func (s *Scheme) GenerateKey(random io.Reader) (KeyVector, error) {
	if random == nil {
		random = rand.Reader
	}

	k, err := sampleMod(random, s.params.Modulus, s.params.Dimension)
	if err != nil {
		return nil, err
	}

	return k, nil
}

// GenerateHEKeys returns a new homomorphic encryption key pair for a client. The secret key must never leave the
// client, the public key is used for encryption.
func (s *Scheme) GenerateHEKeys() (*rlwe.SecretKey, *rlwe.PublicKey) {
	return rlwe.NewKeyGenerator(s.he).GenKeyPairNew()
}

func (s *Scheme) checkKey(key KeyVector) error {
	for i, k := range key {
		if k >= s.params.Modulus {
			return fmt.Errorf("%w: %w: index %d", xoprf.ErrParameter, errKeyRange, i)
		}
	}

	return nil
}

// encode returns a coefficient-encoded plaintext whose constant coefficient is v.
func (s *Scheme) encode(encoder *bgv.Encoder, v uint64) (*rlwe.Plaintext, error) {
	pt := bgv.NewPlaintext(s.he, s.he.MaxLevel())
	pt.IsBatched = false

	if err := encoder.Encode([]uint64{v}, pt); err != nil {
		return nil, fmt.Errorf("encoding: %w", err)
	}

	return pt, nil
}

// Blind hashes the input to a vector and encrypts each coordinate independently under the client's public key.
func Blind(s *Scheme, input []byte, pk *rlwe.PublicKey) (*BlindedInput, error) {
	if pk == nil {
		return nil, fmt.Errorf("%w: %w", xoprf.ErrParameter, errNilKey)
	}

	x := s.HashToVector(input)
	encoder := s.encoder.ShallowCopy()
	encryptor := rlwe.NewEncryptor(s.he, pk)
	blinded := &BlindedInput{Ciphertexts: make([]*rlwe.Ciphertext, len(x))}

	for i, v := range x {
		pt, err := s.encode(encoder, v)
		if err != nil {
			return nil, fmt.Errorf("%w: coordinate %d: %w", xoprf.ErrParameter, i, err)
		}

		if blinded.Ciphertexts[i], err = encryptor.EncryptNew(pt); err != nil {
			return nil, encryptionError(i, err)
		}
	}

	return blinded, nil
}

// encryptionError classifies a failed encryption. The plaintext is always at the scheme's level, so encryption can
// only fail while sampling its randomness.
func encryptionError(coordinate int, err error) error {
	return fmt.Errorf("%w: encryption of coordinate %d: %w", xoprf.ErrEntropy, coordinate, err)
}

// Evaluate homomorphically computes the inner product of the encrypted input vector and the key vector: starting from
// the zero ciphertext, each ciphertext is multiplied by a plaintext encoding of the matching key coordinate, and added
// to the accumulator. The number of ciphertexts must match the key's dimension.
func Evaluate(s *Scheme, blinded *BlindedInput, key KeyVector) (*Evaluation, error) {
	if blinded == nil || len(blinded.Ciphertexts) != len(key) {
		got := 0
		if blinded != nil {
			got = len(blinded.Ciphertexts)
		}

		s.logger.Warn("rejecting evaluation", "ciphertexts", got, "dimension", len(key))

		return nil, fmt.Errorf("%w: %w: %d != %d", xoprf.ErrParameter, errDimensionMismatch, got, len(key))
	}

	if err := s.checkKey(key); err != nil {
		return nil, err
	}

	encoder := s.encoder.ShallowCopy()
	evaluator := s.evaluator.ShallowCopy()
	acc := bgv.NewCiphertext(s.he, 1, s.he.MaxLevel())

	for i, ct := range blinded.Ciphertexts {
		if ct == nil {
			return nil, fmt.Errorf("%w: %w: index %d", xoprf.ErrParameter, errNilCiphertext, i)
		}

		pt, err := s.encode(encoder, key[i])
		if err != nil {
			return nil, fmt.Errorf("%w: key coordinate %d: %w", xoprf.ErrParameter, i, err)
		}

		product, err := evaluator.MulNew(ct, pt)
		if err != nil {
			return nil, fmt.Errorf("%w: product %d: %w", xoprf.ErrParameter, i, err)
		}

		// The accumulator is zero until the first addition, so it can take on the products' metadata, which are all
		// the same, and avoid scale matching.
		if i == 0 {
			*acc.MetaData = *product.MetaData
		}

		if err = evaluator.Add(acc, product, acc); err != nil {
			return nil, fmt.Errorf("%w: sum %d: %w", xoprf.ErrParameter, i, err)
		}
	}

	return &Evaluation{Ciphertext: acc}, nil
}

// Unblind decrypts the evaluation with the client's secret key, and decodes it with the coefficient encoding. Only
// the constant coefficient at index 0 carries the inner product. Since all operands are constant polynomials, any
// other non-zero coefficient, or a constant coefficient larger than the largest possible inner product, denotes a
// decryption failure.
func Unblind(s *Scheme, evaluation *Evaluation, sk *rlwe.SecretKey) ([]uint64, error) {
	if sk == nil {
		return nil, fmt.Errorf("%w: %w", xoprf.ErrParameter, errNilKey)
	}

	if evaluation == nil || evaluation.Ciphertext == nil {
		return nil, fmt.Errorf("%w: %w", xoprf.ErrParameter, errNilCiphertext)
	}

	pt := rlwe.NewDecryptor(s.he, sk).DecryptNew(evaluation.Ciphertext)
	pt.IsBatched = false

	coeffs := make([]uint64, s.he.N())
	if err := s.encoder.ShallowCopy().Decode(pt, coeffs); err != nil {
		return nil, fmt.Errorf("%w: decoding: %w", xoprf.ErrDecryption, err)
	}

	if coeffs[0] > s.bound {
		s.logger.Warn("decryption failure", "reason", errBound.Error())
		return nil, fmt.Errorf("%w: %w", xoprf.ErrDecryption, errBound)
	}

	for _, c := range coeffs[1:] {
		if c != 0 {
			s.logger.Warn("decryption failure", "reason", errArtifacts.Error())
			return nil, fmt.Errorf("%w: %w", xoprf.ErrDecryption, errArtifacts)
		}
	}

	return coeffs, nil
}

// Output reduces the constant coefficient of a decoded evaluation mod Q, yielding the OPRF output.
func (s *Scheme) Output(decoded []uint64) (uint64, error) {
	if len(decoded) == 0 {
		return 0, fmt.Errorf("%w: empty decoded vector", xoprf.ErrParameter)
	}

	return decoded[0] % s.params.Modulus, nil
}
