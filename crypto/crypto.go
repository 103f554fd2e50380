// Copyright 2014 The go-ethereum Authors
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

package crypto

import (
	"github.com/sunyihoo/go-ethabi/common"
	"github.com/sunyihoo/go-ethabi/crypto/keccak"
)

// Keccak-256
// 以太坊使用 Keccak-256（标准化前的 SHA-3 变体）作为主要哈希算法，在 ABI 中用于：
// - 计算函数选择器（签名哈希的前 4 字节）。
// - 计算自定义错误 selector，例如 Error(string) 与 Panic(uint256)。

// DigestLength sets the signature digest exact length
const DigestLength = 32

// KeccakState wraps the keccak sponge. In addition to the usual hash methods, it also supports
// Read to get a variable amount of data from the hash state. Read is faster than Sum
// because it doesn't copy the internal state, but also modifies the internal state.
type KeccakState = keccak.State

// NewKeccakState creates a new KeccakState
// NewKeccakState 创建一个新的 KeccakState
func NewKeccakState() KeccakState {
	return keccak.NewLegacyKeccak256()
}

// HashData hashes the provided data using the KeccakState and returns a 32 byte hash
// 使用 KeccakState 对提供的输入数据进行哈希计算，并返回一个 32 字节的哈希值
func HashData(kh KeccakState, data []byte) (h common.Hash) {
	kh.Reset()
	kh.Write(data)
	kh.Read(h[:])
	return h
}

// Keccak256 calculates and returns the Keccak256 hash of the input data.
// 计算并返回输入数据的 Keccak256 哈希值
func Keccak256(data ...[]byte) []byte {
	b := make([]byte, 32)
	d := NewKeccakState()
	for _, b := range data {
		d.Write(b)
	}
	d.Read(b)
	return b
}

// Keccak256Hash calculates and returns the Keccak256 hash of the input data,
// converting it to an internal Hash data structure.
func Keccak256Hash(data ...[]byte) (h common.Hash) {
	d := NewKeccakState()
	for _, b := range data {
		d.Write(b)
	}
	d.Read(h[:])
	return h
}

// Keccak512 calculates and returns the Keccak512 hash of the input data.
func Keccak512(data ...[]byte) []byte {
	d := keccak.NewLegacyKeccak512()
	for _, b := range data {
		d.Write(b)
	}
	return d.Sum(nil)
}
