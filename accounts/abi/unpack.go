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
	"math"
	"math/big"
	"reflect"

	"github.com/holiman/uint256"

	"github.com/sunyihoo/go-ethabi/common"
)

var (
	// MaxUint256 is the maximum value that can be represented by a uint256.
	// MaxUint256 是 uint256 可以表示的最大值。
	MaxUint256 = maxUint(256)
	// MaxInt256 is the maximum value that can be represented by a int256.
	// MaxInt256 是 int256 可以表示的最大值。
	MaxInt256 = maxUint(255)
)

// readWord returns the word starting at pos in data.
func readWord(t *Type, data []byte, pos int) ([]byte, error) {
	if pos < 0 || pos+wordSize > len(data) {
		return nil, formatErr(t, "word at offset %d exceeds data length %d", pos, len(data))
	}
	return data[pos : pos+wordSize], nil
}

// ReadInteger reads the low t.Width bytes of word as a number of type t,
// sign or zero extending it. Widths of 8 to 64 bits are returned as the matching
// Go integer type, anything wider as *big.Int.
// ReadInteger 读取 word 的低 t.Width 字节，并进行符号扩展或零扩展。
func ReadInteger(t *Type, word []byte, mode PaddingMode) (interface{}, error) {
	w := t.Width
	v := new(uint256.Int).SetBytes(word[wordSize-w:])
	if t.T == IntTy && w < wordSize {
		v.ExtendSign(v, uint256.NewInt(uint64(w-1)))
	}
	if mode == PaddingStrict && v.Bytes32() != [32]byte(word) {
		return nil, formatErr(t, "high bytes are not a valid %s extension", extensionKind(t))
	}
	if t.T == UintTy {
		switch w {
		case 1:
			return uint8(v.Uint64()), nil
		case 2:
			return uint16(v.Uint64()), nil
		case 4:
			return uint32(v.Uint64()), nil
		case 8:
			return v.Uint64(), nil
		default:
			return v.ToBig(), nil
		}
	}
	ret := signedBig(v)
	switch w {
	case 1:
		return int8(ret.Int64()), nil
	case 2:
		return int16(ret.Int64()), nil
	case 4:
		return int32(ret.Int64()), nil
	case 8:
		return ret.Int64(), nil
	default:
		return ret, nil
	}
}

// signedBig interprets v as a 256 bit two's complement number.
func signedBig(v *uint256.Int) *big.Int {
	if v.Sign() >= 0 {
		return v.ToBig()
	}
	ret := new(uint256.Int).Neg(v).ToBig()
	return ret.Neg(ret)
}

func extensionKind(t *Type) string {
	if t.T == IntTy {
		return "sign"
	}
	return "zero"
}

// readBool reads a bool from the low byte of word.
// readBool 读取布尔值。
func readBool(t *Type, word []byte, mode PaddingMode) (bool, error) {
	if mode == PaddingStrict && !allZero(word[:wordSize-1]) {
		return false, formatErr(t, "non-zero padding")
	}
	switch word[wordSize-1] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, formatErr(t, "invalid boolean byte 0x%02x", word[wordSize-1])
	}
}

// readAddress reads the low 20 bytes of word.
func readAddress(t *Type, word []byte, mode PaddingMode) (common.Address, error) {
	if mode == PaddingStrict && !allZero(word[:wordSize-common.AddressLength]) {
		return common.Address{}, formatErr(t, "non-zero padding")
	}
	return common.BytesToAddress(word[wordSize-common.AddressLength:]), nil
}

// ReadFixedBytes copies the first t.Length bytes of word into a [M]byte array.
// The unused tail must be zero unless mode is PaddingIgnore.
// ReadFixedBytes 使用反射创建固定长度的字节数组。
func ReadFixedBytes(t *Type, word []byte, mode PaddingMode) (interface{}, error) {
	if t.T != FixedBytesTy {
		return nil, argumentErr(t, "type is not fixed bytes")
	}
	if mode != PaddingIgnore && !allZero(word[t.Length:]) {
		return nil, formatErr(t, "non-zero padding after %d bytes", t.Length)
	}
	array := reflect.New(t.GetType()).Elem()
	reflect.Copy(array, reflect.ValueOf(word[:t.Length]))
	return array.Interface(), nil
}

// readLength reads a length or offset word and checks it is addressable.
func readLength(t *Type, word []byte) (int, error) {
	v := new(big.Int).SetBytes(word)
	if !v.IsInt64() || v.Int64() > math.MaxInt32 {
		return 0, formatErr(t, "length or offset %v too large", v)
	}
	return int(v.Int64()), nil
}

// readBytesSlice reads a [L, V] encoded payload starting at pos, returning the
// payload and the position just past its padding.
// readBytesSlice 读取从 pos 开始的 [L, V] 编码数据。
func readBytesSlice(t *Type, data []byte, pos int, mode PaddingMode) ([]byte, int, error) {
	word, err := readWord(t, data, pos)
	if err != nil {
		return nil, 0, err
	}
	length, err := readLength(t, word)
	if err != nil {
		return nil, 0, err
	}
	start := pos + wordSize
	if start+length > len(data) {
		return nil, 0, formatErr(t, "length %d at offset %d exceeds data length %d", length, pos, len(data))
	}
	end := start + paddedLen(length)
	if mode == PaddingStrict {
		if end > len(data) {
			return nil, 0, formatErr(t, "payload padding exceeds data length %d", len(data))
		}
		if !allZero(data[start+length : end]) {
			return nil, 0, formatErr(t, "non-zero payload padding")
		}
	}
	payload := make([]byte, length)
	copy(payload, data[start:start+length])
	return payload, end, nil
}

func allZero(b []byte) bool {
	for _, x := range b {
		if x != 0 {
			return false
		}
	}
	return true
}
