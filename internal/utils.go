// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package internal

import (
	"crypto/subtle"
	"encoding/binary"
	"slices"
)

// I2osp2 encodes the integer to a 2-byte byte string.
func I2osp2(value int) []byte {
	out := make([]byte, 2)
	binary.BigEndian.PutUint16(out, uint16(value))

	return out
}

// I2osp4 encodes the integer to a 4-byte byte string.
func I2osp4(value int) []byte {
	out := make([]byte, 4)
	binary.BigEndian.PutUint32(out, uint32(value))

	return out
}

// Os2ip4 decodes a 4-byte big endian byte string to an integer.
func Os2ip4(input []byte) int {
	return int(binary.BigEndian.Uint32(input))
}

func lengthPrefixEncode(input []byte) []byte {
	return append(I2osp2(len(input)), input...)
}

// CtEqual returns whether a and b are equal, in constant time.
func CtEqual(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

func concatenate(input ...[]byte) []byte {
	length := 0
	for _, in := range input {
		length += len(in)
	}

	buf := make([]byte, 0, length)

	for _, in := range input {
		buf = append(buf, in...)
	}

	return buf
}

// Dst returns the domain separation tag, i.e. the concatenation of the input. The result has no spare capacity, so
// appending to it never writes into a shared tag.
func Dst(prefix string, contextString []byte) []byte {
	return slices.Clip([]byte(prefix + string(contextString)))
}
