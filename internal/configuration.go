// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Package internal handles the core EC-OPRF functionalities.
package internal

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/bytemare/ecc"
	"github.com/bytemare/hash"
	"github.com/gtank/ristretto255"
)

// Mapping identifies how input is mapped to a group element.
type Mapping byte

const (
	// HashToCurve uses the RFC9380 hash-to-curve encoding of the group, with the RFC9497 domain separation tag.
	HashToCurve Mapping = iota

	// UniformBytes feeds a SHA-512 digest of the input into ristretto255's uniform bytes to element map. Only
	// available for ristretto255.
	UniformBytes
)

const (
	// Version is a string explicitly stating the Version name.
	Version = "OPRFV1"

	// modeOPRF is the RFC9497 identifier of the base mode, the only one supported here.
	modeOPRF byte = 0x00

	hash2groupDSTPrefix  = "HashToGroup-"
	hash2scalarDSTPrefix = "HashToScalar-"
	dstBlind             = "Blind-"
	contextStringPrefix  = Version + "-"
	dstFinalize          = "Finalize"
	deriveKeyPairDST     = "DeriveKeyPair"

	uniformBytesLength = 64
)

var (
	// CiphersuiteIdentifier maps a group to its [RFC9497](https://datatracker.ietf.org/doc/rfc9497) compliant
	// identifier.
	CiphersuiteIdentifier = map[ecc.Group]string{
		ecc.Ristretto255Sha512: "ristretto255-SHA512",
		ecc.P256Sha256:         "P256-SHA256",
		ecc.P384Sha384:         "P384-SHA384",
		ecc.P521Sha512:         "P521-SHA512",
		ecc.Secp256k1Sha256:    "secp256k1-SHA256",
	}

	// ErrIdentityInput is returned when an input deterministically maps to the identity element.
	ErrIdentityInput = errors.New("input deterministically maps to the group identity element")

	// ErrZeroScalar is returned when a blinding scalar or key is nil or zero.
	ErrZeroScalar = errors.New("scalar is nil or zero")

	// ErrWrongGroup is returned when a scalar or element doesn't belong to the configured group.
	ErrWrongGroup = errors.New("value belongs to a different group")

	// ErrRandom is returned when the random source can't provide enough bytes.
	ErrRandom = errors.New("could not read from the random source")

	errMappingUnavailable = errors.New("uniform bytes mapping is only available for ristretto255")
)

// A Core holds the cryptographic configuration and methods used for EC-OPRF operations. It is immutable once loaded.
type Core struct {
	hash      hash.Hash
	dstH2gDST []byte
	dstH2sDST []byte
	dstBlind  []byte
	Group     ecc.Group
	Mapping   Mapping
}

// ContextString builds the OPRF constant string used for domain separation tags.
func ContextString(name string) []byte {
	return []byte(contextStringPrefix + string(modeOPRF) + "-" + name)
}

func makeCore(g ecc.Group, h hash.Hash, m Mapping) *Core {
	ctx := ContextString(CiphersuiteIdentifier[g])

	return &Core{
		Group:     g,
		Mapping:   m,
		hash:      h,
		dstH2gDST: Dst(hash2groupDSTPrefix, ctx),
		dstH2sDST: Dst(hash2scalarDSTPrefix, ctx),
		dstBlind:  Dst(dstBlind, ctx),
	}
}

// LoadConfiguration returns a core configuration given the group and the input mapping.
func LoadConfiguration(g ecc.Group, m Mapping) (*Core, error) {
	if m == UniformBytes && g != ecc.Ristretto255Sha512 {
		return nil, errMappingUnavailable
	}

	switch g {
	case ecc.Ristretto255Sha512:
		return makeCore(g, hash.SHA512, m), nil
	case ecc.P256Sha256:
		return makeCore(g, hash.SHA256, m), nil
	case ecc.P384Sha384:
		return makeCore(g, hash.SHA384, m), nil
	case ecc.P521Sha512:
		return makeCore(g, hash.SHA512, m), nil
	case ecc.Secp256k1Sha256:
		return makeCore(g, hash.SHA256, m), nil
	default:
		return nil, fmt.Errorf("unsupported group %v", g)
	}
}

// DeriveKeyPair derives a private-public key pair given a secret seed and instance specific info.
func (c *Core) DeriveKeyPair(seed, info []byte) (*ecc.Scalar, *ecc.Element) {
	dst := concatenate([]byte(deriveKeyPairDST), ContextString(CiphersuiteIdentifier[c.Group]))
	deriveInput := concatenate(seed, lengthPrefixEncode(info))

	var counter uint8
	var sk *ecc.Scalar

	for sk == nil || sk.IsZero() {
		if counter == 255 {
			panic("impossible to generate non-zero scalar")
		}

		sk = c.Group.HashToScalar(concatenate(deriveInput, []byte{counter}), dst)
		counter++
	}

	return sk, c.Group.Base().Multiply(sk)
}

// HashTranscript hashes an OPRF run's transcript (without the blind) to produce the protocol's output.
func (c *Core) HashTranscript(input, unblinded []byte) []byte {
	encInput := lengthPrefixEncode(input)
	encElement := lengthPrefixEncode(unblinded)
	encDST := []byte(dstFinalize)

	return c.hash.New().Hash(0, encInput, encElement, encDST)
}

// HashToScalar maps the input data to a scalar.
func (c *Core) HashToScalar(data []byte) *ecc.Scalar {
	return c.Group.HashToScalar(data, c.dstH2sDST)
}

// HashToGroup maps the input data to an element of the Group, using the configured mapping.
func (c *Core) HashToGroup(data []byte) *ecc.Element {
	if c.Mapping == UniformBytes {
		return c.uniformBytesToGroup(data)
	}

	return c.hashToCurve(data)
}

// nistHashToCurve serializes hash-to-curve on the NIST groups, whose points are assembled in buffers shared by all
// callers.
var nistHashToCurve sync.Mutex

func (c *Core) hashToCurve(data []byte) *ecc.Element {
	switch c.Group {
	case ecc.P256Sha256, ecc.P384Sha384, ecc.P521Sha512:
		nistHashToCurve.Lock()
		defer nistHashToCurve.Unlock()
	}

	return c.Group.HashToGroup(data, c.dstH2gDST)
}

func (c *Core) uniformBytesToGroup(data []byte) *ecc.Element {
	digest := hash.SHA512.New().Hash(0, data)
	if len(digest) < uniformBytesLength {
		panic("digest is shorter than the uniform bytes map width")
	}

	p := ristretto255.NewElement().FromUniformBytes(digest[:uniformBytesLength])

	e := c.Group.NewElement()
	if err := e.Decode(p.Encode(nil)); err != nil {
		panic(fmt.Sprintf("ristretto255 encoding rejected: %v", err))
	}

	return e
}

// RandomScalar returns a uniformly distributed non-zero scalar drawn from r. Twice the scalar length is read and
// reduced, so the bias is negligible. A zero scalar is rejected and drawn again.
func (c *Core) RandomScalar(r io.Reader) (*ecc.Scalar, error) {
	buf := make([]byte, 2*c.Group.ScalarLength())

	for {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRandom, err)
		}

		s := c.Group.HashToScalar(buf, c.dstBlind)
		if !s.IsZero() {
			return s, nil
		}
	}
}

// CheckScalar verifies s is a non-zero scalar of the configured group.
func (c *Core) CheckScalar(s *ecc.Scalar) error {
	if s == nil || s.IsZero() {
		return ErrZeroScalar
	}

	if s.Group() != c.Group {
		return ErrWrongGroup
	}

	return nil
}

// CheckElement verifies e is a non-identity element of the configured group.
func (c *Core) CheckElement(e *ecc.Element) error {
	if e == nil || e.IsIdentity() {
		return ErrIdentityInput
	}

	if e.Group() != c.Group {
		return ErrWrongGroup
	}

	return nil
}

// Blind hashes the input to the group and multiplies it with the blinding scalar.
func (c *Core) Blind(input []byte, blind *ecc.Scalar) (*ecc.Element, error) {
	p := c.HashToGroup(input)
	if p.IsIdentity() {
		return nil, ErrIdentityInput
	}

	return p.Multiply(blind), nil
}

// Unblind multiplies the evaluated element with the inverse of the blinding scalar.
func (c *Core) Unblind(evaluated *ecc.Element, blind *ecc.Scalar) *ecc.Element {
	inv := blind.Copy().Invert()
	return evaluated.Copy().Multiply(inv)
}
