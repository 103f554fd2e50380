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

package abi

import (
	"reflect"

	"github.com/sunyihoo/go-ethabi/log"
)

// Decode reads the next value of type typeName from the buffer's head cursor
// using the DefaultRegistry. Dynamic values are resolved through the absolute
// offset found in their head slot.
//
// Decoded Go types follow Type.GetType: uint8..uint64 and int8..int64 for those
// widths, *big.Int for other numbers, bool, common.Address, [M]byte for bytesM,
// []byte, string, and typed slices and arrays for T[] and T[N].
func Decode(typeName string, buf *DecodeBuffer) (interface{}, error) {
	return DefaultRegistry.Decode(typeName, buf)
}

// Decode reads the next value of type typeName from the buffer.
func (r *TypeRegistry) Decode(typeName string, buf *DecodeBuffer) (interface{}, error) {
	t, err := r.Lookup(typeName)
	if err != nil {
		return nil, err
	}
	return DecodeType(t, buf)
}

// DecodeType reads the next value of the resolved type t from the buffer.
func DecodeType(t *Type, buf *DecodeBuffer) (interface{}, error) {
	return decodeHead(t, buf.Data(), buf, buf.Padding())
}

// DecodeValues decodes data as the ordered parameter list types.
// DecodeValues 将 data 按顺序解码为 types 描述的参数列表。
func DecodeValues(types []*Type, data []byte, opts ...DecodeOption) ([]interface{}, error) {
	buf, err := NewDecodeBuffer(data, types, opts...)
	if err != nil {
		return nil, err
	}
	values := make([]interface{}, len(types))
	for i, t := range types {
		v, err := DecodeType(t, buf)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

// decodeHead decodes the value whose slot(s) start at the head cursor.
func decodeHead(t *Type, data []byte, buf *DecodeBuffer, mode PaddingMode) (interface{}, error) {
	switch t.T {
	case ArrayTy:
		array := reflect.New(t.GetType()).Elem()
		for i := 0; i < t.Length; i++ {
			v, err := decodeHead(t.Elem, data, buf, mode)
			if err != nil {
				return nil, err
			}
			array.Index(i).Set(reflect.ValueOf(v))
		}
		return array.Interface(), nil
	case StringTy, BytesTy, SliceTy:
		slot, err := buf.AdvanceHead(wordSize)
		if err != nil {
			return nil, err
		}
		offset, err := readLength(t, slot)
		if err != nil {
			return nil, err
		}
		log.Trace("Resolving ABI offset", "type", t, "offset", offset)
		v, _, err := decodeInline(t, data, offset, mode)
		return v, err
	default:
		slot, err := buf.AdvanceHead(wordSize)
		if err != nil {
			return nil, err
		}
		return decodeWord(t, slot, mode)
	}
}

// decodeInline decodes a value written sequentially at pos, returning it and
// the position right after it.
func decodeInline(t *Type, data []byte, pos int, mode PaddingMode) (interface{}, int, error) {
	switch t.T {
	case StringTy:
		payload, next, err := readBytesSlice(t, data, pos, mode)
		if err != nil {
			return nil, 0, err
		}
		return string(payload), next, nil
	case BytesTy:
		return readBytesSlice(t, data, pos, mode)
	case ArrayTy:
		array := reflect.New(t.GetType()).Elem()
		if err := decodeElements(t, array, data, &pos, mode); err != nil {
			return nil, 0, err
		}
		return array.Interface(), pos, nil
	case SliceTy:
		word, err := readWord(t, data, pos)
		if err != nil {
			return nil, 0, err
		}
		length, err := readLength(t, word)
		if err != nil {
			return nil, 0, err
		}
		pos += wordSize
		// Every element takes at least minInlineSize bytes, so a length claiming
		// more than the remaining data can hold is malformed.
		if remaining := len(data) - pos; length > remaining/t.Elem.minInlineSize() {
			return nil, 0, formatErr(t, "array length %d exceeds remaining data of %d bytes", length, remaining)
		}
		slice := reflect.MakeSlice(t.GetType(), length, length)
		if err := decodeElements(t, slice, data, &pos, mode); err != nil {
			return nil, 0, err
		}
		return slice.Interface(), pos, nil
	default:
		word, err := readWord(t, data, pos)
		if err != nil {
			return nil, 0, err
		}
		v, err := decodeWord(t, word, mode)
		if err != nil {
			return nil, 0, err
		}
		return v, pos + wordSize, nil
	}
}

// decodeElements fills every element of the slice or array dst in sequence.
func decodeElements(t *Type, dst reflect.Value, data []byte, pos *int, mode PaddingMode) error {
	for i := 0; i < dst.Len(); i++ {
		v, next, err := decodeInline(t.Elem, data, *pos, mode)
		if err != nil {
			return err
		}
		dst.Index(i).Set(reflect.ValueOf(v))
		*pos = next
	}
	return nil
}

// decodeWord decodes a single slot value.
func decodeWord(t *Type, word []byte, mode PaddingMode) (interface{}, error) {
	switch t.T {
	case BoolTy:
		return readBool(t, word, mode)
	case IntTy, UintTy:
		return ReadInteger(t, word, mode)
	case AddressTy:
		return readAddress(t, word, mode)
	case FixedBytesTy:
		return ReadFixedBytes(t, word, mode)
	default:
		return nil, argumentErr(t, "not a single slot type")
	}
}
