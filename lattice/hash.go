// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package lattice

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/bytemare/hash"
	"golang.org/x/crypto/sha3"

	"github.com/bytemare/xoprf"
	"github.com/bytemare/xoprf/internal"
)

const dstHashToVector = "LatticeOPRF-HashToVector-"

// HashToVector deterministically maps the input to a vector of Dimension integers mod Q.
func (s *Scheme) HashToVector(input []byte) []uint64 {
	if s.params.Mapping == XOFMapping {
		return s.xofToVector(input)
	}

	return s.toyToVector(input)
}

// toyToVector combines the byte pair at positions 2i and 2i+1 mod 32 of the SHA-256 digest into coordinate i.
func (s *Scheme) toyToVector(input []byte) []uint64 {
	h := hash.SHA256.New().Hash(0, input)
	out := make([]uint64, s.params.Dimension)

	for i := range out {
		b0 := uint64(h[(2*i)%len(h)])
		b1 := uint64(h[(2*i+1)%len(h)])
		out[i] = (b0*s.params.Mixing + b1) % s.params.Modulus
	}

	return out
}

func (s *Scheme) xofToVector(input []byte) []uint64 {
	xof := sha3.NewShake256()
	_, _ = xof.Write(internal.I2osp2(len(dstHashToVector)))
	_, _ = xof.Write([]byte(dstHashToVector))
	_, _ = xof.Write(internal.I2osp4(s.params.Dimension))
	_, _ = xof.Write(internal.I2osp4(len(input)))
	_, _ = xof.Write(input)

	out, err := sampleMod(xof, s.params.Modulus, s.params.Dimension)
	if err != nil {
		// A XOF never runs dry.
		panic(err)
	}

	return out
}

// sampleMod returns n uniform integers mod q, rejection sampling big endian 16-bit words read from r. q must not
// exceed 2^16.
func sampleMod(r io.Reader, q uint64, n int) ([]uint64, error) {
	limit := (maxModulus / q) * q
	out := make([]uint64, 0, n)
	buf := make([]byte, 2)

	for len(out) < n {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("%w: %w", xoprf.ErrEntropy, err)
		}

		if v := uint64(binary.BigEndian.Uint16(buf)); v < limit {
			out = append(out, v%q)
		}
	}

	return out, nil
}
