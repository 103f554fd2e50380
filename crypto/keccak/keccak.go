// Copyright 2024 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// Package keccak implements the original Keccak sponge hash functions as used by
// Ethereum. The padding is the pre-standard Keccak padding (0x01 ... 0x80), not the
// domain separated padding of FIPS 202 SHA-3.
//
// Keccak 海绵结构：1600 位状态（25 个 64 位 lane），吸收阶段按 rate 字节分块异或进状态并置换，
// 挤出阶段从状态的前 rate 字节读出输出。以太坊的 Keccak256 使用标准化之前的填充 0x01 … 0x80。
package keccak

import (
	"encoding/binary"
	"hash"
)

const (
	// stateSize is the width of the permutation in bytes (1600 bits).
	stateSize = 200

	// maxRate is the largest rate of the supported digests (Keccak-224).
	maxRate = stateSize - 2*28

	dsbyte  = 0x01
	lastbit = 0x80
)

// State is a Keccak sponge. In addition to the usual hash methods, it supports
// Read to squeeze a variable amount of output. Read is faster than Sum because
// it doesn't copy the internal state, but it also modifies the internal state.
type State interface {
	hash.Hash
	Read([]byte) (int, error)
}

type state struct {
	a         [25]uint64    // lanes of the permutation state
	buf       [maxRate]byte // absorption buffer, reused for output while squeezing
	n         int           // bytes buffered in buf (absorbing), or bytes consumed (squeezing)
	rate      int
	outputLen int
	squeezing bool
}

func newState(outputLen int) *state {
	return &state{rate: stateSize - 2*outputLen, outputLen: outputLen}
}

// NewLegacyKeccak224 creates a new Keccak-224 hash.
func NewLegacyKeccak224() State { return newState(28) }

// NewLegacyKeccak256 creates a new Keccak-256 hash, the digest Ethereum calls "Keccak256".
// NewLegacyKeccak256 创建以太坊所说的 "Keccak256"（rate = 136 字节）。
func NewLegacyKeccak256() State { return newState(32) }

// NewLegacyKeccak384 creates a new Keccak-384 hash.
func NewLegacyKeccak384() State { return newState(48) }

// NewLegacyKeccak512 creates a new Keccak-512 hash.
func NewLegacyKeccak512() State { return newState(64) }

// Sum256 returns the Keccak-256 digest of data.
func Sum256(data []byte) (digest [32]byte) {
	d := newState(32)
	d.Write(data)
	d.Read(digest[:])
	return digest
}

// Size returns the output size of the hash function in bytes.
func (d *state) Size() int { return d.outputLen }

// BlockSize returns the rate of the sponge.
func (d *state) BlockSize() int { return d.rate }

// Reset clears the internal state.
func (d *state) Reset() {
	d.a = [25]uint64{}
	d.buf = [maxRate]byte{}
	d.n = 0
	d.squeezing = false
}

// Write absorbs more data into the hash's state. It panics if output has
// already been read.
func (d *state) Write(p []byte) (int, error) {
	if d.squeezing {
		panic("keccak: Write after Read")
	}
	written := len(p)
	for len(p) > 0 {
		if d.n == 0 && len(p) >= d.rate {
			// Fast path: absorb whole blocks straight from the input.
			d.xorIn(p[:d.rate])
			KeccakF1600(&d.a)
			p = p[d.rate:]
			continue
		}
		x := copy(d.buf[d.n:d.rate], p)
		d.n += x
		p = p[x:]
		if d.n == d.rate {
			d.xorIn(d.buf[:d.rate])
			KeccakF1600(&d.a)
			d.n = 0
		}
	}
	return written, nil
}

// Read squeezes an arbitrary number of bytes from the sponge.
func (d *state) Read(out []byte) (int, error) {
	if !d.squeezing {
		d.padAndPermute()
	}
	n := len(out)
	for len(out) > 0 {
		if d.n == d.rate {
			KeccakF1600(&d.a)
			d.copyOut()
			d.n = 0
		}
		x := copy(out, d.buf[d.n:d.rate])
		d.n += x
		out = out[x:]
	}
	return n, nil
}

// Sum appends the digest of the data written so far to b. It does not change
// the underlying hash state.
func (d *state) Sum(b []byte) []byte {
	dup := *d
	hash := make([]byte, dup.outputLen)
	dup.Read(hash)
	return append(b, hash...)
}

// padAndPermute applies the multi-rate padding to the last partial block,
// absorbs it and switches the sponge to squeezing.
func (d *state) padAndPermute() {
	for i := d.n; i < d.rate; i++ {
		d.buf[i] = 0
	}
	d.buf[d.n] ^= dsbyte
	d.buf[d.rate-1] ^= lastbit
	d.xorIn(d.buf[:d.rate])
	KeccakF1600(&d.a)

	d.squeezing = true
	d.copyOut()
	d.n = 0
}

// xorIn xors a full block into the lanes, little endian.
func (d *state) xorIn(block []byte) {
	for i := 0; i < len(block)/8; i++ {
		d.a[i] ^= binary.LittleEndian.Uint64(block[i*8:])
	}
}

// copyOut serialises the rate portion of the state into buf.
func (d *state) copyOut() {
	for i := 0; i < d.rate/8; i++ {
		binary.LittleEndian.PutUint64(d.buf[i*8:], d.a[i])
	}
}
