// Copyright 2017 The go-ethereum Authors
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

package abi

import (
	"math/big"

	"github.com/holiman/uint256"

	"github.com/sunyihoo/go-ethabi/common"
)

// 以太坊 ABI 要求所有数据对齐到 32 字节：数字和地址左填充，bytesM 和动态字节右填充。
// 下面的函数都写入调用方预留好的槽位，从不分配内存。

// paddedLen rounds n up to a whole number of words.
func paddedLen(n int) int {
	return (n + wordSize - 1) / wordSize * wordSize
}

// checkNumRange verifies v fits the signed or unsigned width of t.
// checkNumRange 校验 v 是否在 t 的有符号或无符号范围内。
func checkNumRange(t *Type, v *big.Int) error {
	bits := t.Bits()
	switch t.T {
	case UintTy:
		if v.Sign() < 0 || v.BitLen() > bits {
			return &OverflowError{Type: t.String(), Value: new(big.Int).Set(v)}
		}
	case IntTy:
		// A negative v fits when -v-1 needs at most bits-1 bits.
		mag := v
		if v.Sign() < 0 {
			mag = new(big.Int).Neg(v)
			mag.Sub(mag, common.Big1)
		}
		if mag.BitLen() > bits-1 {
			return &OverflowError{Type: t.String(), Value: new(big.Int).Set(v)}
		}
	}
	return nil
}

// packNum writes v as a big-endian two's complement word. Negative values are
// sign extended to the full slot. v must have passed checkNumRange.
func packNum(slot []byte, v *big.Int) {
	u, _ := uint256.FromBig(v)
	word := u.Bytes32()
	copy(slot, word[:])
}

// packBool writes 0x01 or 0x00 into the low byte of the slot.
func packBool(slot []byte, v bool) {
	if v {
		slot[wordSize-1] = 1
	}
}

// packAddress right-aligns the 20 address bytes in the slot.
func packAddress(slot []byte, addr common.Address) {
	copy(slot[wordSize-common.AddressLength:], addr[:])
}

// packFixedBytes left-aligns b in the slot, the rest stays zero.
func packFixedBytes(slot []byte, b []byte) {
	copy(slot, b)
}

// packBytesSlice writes b as [L, V]: a length word followed by the payload
// right padded to a word boundary. area must be wordSize+paddedLen(len(b)) long.
// packBytesSlice 将字节打包为 [L, V] 形式：长度字加上右填充到 32 字节的数据。
func packBytesSlice(area []byte, b []byte) {
	packLength(area[:wordSize], len(b))
	copy(area[wordSize:], b)
}

// packLength writes a length or offset word.
func packLength(slot []byte, n int) {
	u := uint256.NewInt(uint64(n))
	word := u.Bytes32()
	copy(slot, word[:])
}
