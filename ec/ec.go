// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Package ec implements the Oblivious Pseudorandom Function (OPRF) base mode over Elliptic Curve Prime Order Groups
// (EC-OPRF), as in RFC9497.
//
// The client blinds its input by hashing it to the group and multiplying the element with a random scalar r. The
// server multiplies the blinded element with its secret key k, and the client multiplies the result with the inverse
// of r. Since scalar multiplication commutes, the client ends up with H(input)*k without the server learning the
// input, and without the client learning k.
package ec

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/bytemare/ecc"

	"github.com/bytemare/xoprf"
	"github.com/bytemare/xoprf/internal"
)

// Ciphersuite of the OPRF compatible cipher suite to be used.
type Ciphersuite byte

const (
	// Ristretto255Sha512 identifies the Ristretto255 group and SHA-512.
	Ristretto255Sha512 = Ciphersuite(ecc.Ristretto255Sha512)

	// decaf448Shake256 identifies the Decaf448 group and Shake-256. Not supported.
	// decaf448Shake256 = 2.

	// P256Sha256 identifies the NIST P-256 group and SHA-256.
	P256Sha256 = Ciphersuite(ecc.P256Sha256)

	// P384Sha384 identifies the NIST P-384 group and SHA-384.
	P384Sha384 = Ciphersuite(ecc.P384Sha384)

	// P521Sha512 identifies the NIST P-512 group and SHA-512.
	P521Sha512 = Ciphersuite(ecc.P521Sha512)

	// Secp256k1 identifies the SECp256k1 group and SHA-256.
	Secp256k1 = Ciphersuite(ecc.Secp256k1Sha256)
)

// Mapping identifies how an input is mapped to a group element.
type Mapping = internal.Mapping

const (
	// HashToCurve is the default RFC9380 hash-to-curve mapping, domain separated as in RFC9497.
	HashToCurve = internal.HashToCurve

	// UniformBytes maps the 64-byte SHA-512 digest of the input with ristretto255's uniform bytes map. It is only
	// available with Ristretto255Sha512.
	UniformBytes = internal.UniformBytes
)

// FromGroup returns a Ciphersuite given a Group.
func FromGroup(g ecc.Group) Ciphersuite {
	return Ciphersuite(g)
}

// FromName returns the Ciphersuite given its RFC9497 identifier.
func FromName(name string) (Ciphersuite, error) {
	for g, n := range internal.CiphersuiteIdentifier {
		if n == name {
			return Ciphersuite(g), nil
		}
	}

	return 0, fmt.Errorf("%w: unknown ciphersuite %q", xoprf.ErrParameter, name)
}

// Group returns the elliptic curve prime-order group of the ciphersuite.
func (c Ciphersuite) Group() ecc.Group {
	return ecc.Group(c)
}

// Name returns the [RFC9497](https://datatracker.ietf.org/doc/rfc9497) compliant identifier of the ciphersuite.
func (c Ciphersuite) Name() string {
	return internal.CiphersuiteIdentifier[ecc.Group(c)]
}

// Suite binds a ciphersuite to an input mapping. It is immutable and safe for concurrent use.
type Suite struct {
	core *internal.Core
	id   Ciphersuite
}

// New returns the Suite for the ciphersuite and mapping.
func New(c Ciphersuite, m Mapping) (*Suite, error) {
	core, err := internal.LoadConfiguration(c.Group(), m)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", xoprf.ErrParameter, err)
	}

	return &Suite{core: core, id: c}, nil
}

// Suite returns the Suite of the ciphersuite with the default HashToCurve mapping. It panics if the ciphersuite is not
// supported.
func (c Ciphersuite) Suite() *Suite {
	s, err := New(c, HashToCurve)
	if err != nil {
		panic(err)
	}

	return s
}

// Ciphersuite returns the suite's ciphersuite identifier.
func (s *Suite) Ciphersuite() Ciphersuite {
	return s.id
}

// Mapping returns the suite's input mapping.
func (s *Suite) Mapping() Mapping {
	return s.core.Mapping
}

// HashToGroup deterministically maps the input to an element of the group.
func (s *Suite) HashToGroup(input []byte) *ecc.Element {
	return s.core.HashToGroup(input)
}

// GenerateKey returns a fresh, random, non-zero secret key.
func (s *Suite) GenerateKey() (*ecc.Scalar, error) {
	k, err := s.core.RandomScalar(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", xoprf.ErrEntropy, err)
	}

	return k, nil
}

// DeriveKeyPair returns a private-public key pair given a secret seed and instance specific info.
func (s *Suite) DeriveKeyPair(seed, info []byte) (*ecc.Scalar, *ecc.Element) {
	return s.core.DeriveKeyPair(seed, info)
}

// Blind hashes the input to the group and multiplies it with a fresh random blind drawn from random, or from
// crypto/rand.Reader if random is nil. It returns the blinded element to send to the server, and the blind to keep
// for Unblind.
func (s *Suite) Blind(input []byte, random io.Reader) (*ecc.Element, *ecc.Scalar, error) {
	if random == nil {
		random = rand.Reader
	}

	blind, err := s.core.RandomScalar(random)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", xoprf.ErrEntropy, err)
	}

	blinded, err := s.core.Blind(input, blind)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", xoprf.ErrParameter, err)
	}

	return blinded, blind, nil
}

// Unblind multiplies the server's evaluation with the inverse of the blind, returning the OPRF output element.
func (s *Suite) Unblind(evaluated *ecc.Element, blind *ecc.Scalar) (*ecc.Element, error) {
	if err := s.core.CheckScalar(blind); err != nil {
		return nil, fmt.Errorf("%w: blind: %w", xoprf.ErrParameter, err)
	}

	if err := s.core.CheckElement(evaluated); err != nil {
		return nil, fmt.Errorf("%w: evaluated element: %w", xoprf.ErrParameter, err)
	}

	return s.core.Unblind(evaluated, blind), nil
}

// Direct computes the OPRF output element without blinding, from the input and the secret key. It is meant for
// verification only, and is what a client's Unblind must match.
func (s *Suite) Direct(input []byte, key *ecc.Scalar) (*ecc.Element, error) {
	if err := s.core.CheckScalar(key); err != nil {
		return nil, fmt.Errorf("%w: key: %w", xoprf.ErrParameter, err)
	}

	p := s.core.HashToGroup(input)
	if p.IsIdentity() {
		return nil, fmt.Errorf("%w: %w", xoprf.ErrParameter, internal.ErrIdentityInput)
	}

	return p.Multiply(key), nil
}

// Finalize hashes the input and the unblinded element into the RFC9497 protocol output.
func (s *Suite) Finalize(input []byte, unblinded *ecc.Element) []byte {
	return s.core.HashTranscript(input, unblinded.Encode())
}

// Evaluate is the server's function to evaluate a Client provided blinded element with the server's secret key.
func Evaluate(key *ecc.Scalar, blinded *ecc.Element) *ecc.Element {
	return blinded.Copy().Multiply(key)
}

// Equal returns whether both elements have the same canonical encoding, in constant time.
func Equal(a, b *ecc.Element) bool {
	if a == nil || b == nil {
		return false
	}

	return internal.CtEqual(a.Encode(), b.Encode())
}
