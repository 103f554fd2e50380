// Copyright 2015 The go-ethereum Authors
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
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/sunyihoo/go-ethabi/common"
)

// wordSize is the size of one ABI slot. Every value is padded to a multiple of it.
const wordSize = 32

// Type enumerator
const (
	IntTy byte = iota
	UintTy
	BoolTy
	StringTy
	SliceTy
	ArrayTy
	AddressTy
	FixedBytesTy
	BytesTy
)

// Category is the coarse classification of a Type that decides how it is laid
// out: in place in the head, or behind an offset in the data area.
// Category 是类型的粗粒度分类，决定它在头部原地编码还是通过偏移量放在数据区。
type Category int

const (
	Elementary   Category = iota // bool, address, intN, uintN
	FixedArray                   // T[N]
	DynamicArray                 // T[]
	String                       // string
	Bytes                        // bytes
	BytesM                       // bytes1 ... bytes32
)

func (c Category) String() string {
	switch c {
	case Elementary:
		return "elementary"
	case FixedArray:
		return "fixed array"
	case DynamicArray:
		return "dynamic array"
	case String:
		return "string"
	case Bytes:
		return "bytes"
	case BytesM:
		return "fixed bytes"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// Type is the reflection of the supported argument type. Types are immutable
// and identified by their canonical name; obtain them through ParseType or a
// TypeRegistry so equal names share one descriptor.
// Type 是对支持的参数类型的反射。类型不可变，以规范名称标识。
type Type struct {
	Elem   *Type // element type of T[N] and T[]
	Width  int   // packed width in bytes; the element width for arrays, zero for string and bytes
	Length int   // N of T[N], M of bytesM, zero otherwise
	T      byte  // Our own type checking

	stringKind string // canonical name, also the registry key
}

// String implements Stringer.
func (t *Type) String() string {
	return t.stringKind
}

// Equal reports whether both descriptors carry the same canonical name.
func (t *Type) Equal(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.stringKind == other.stringKind
}

// Category returns the coarse classification of the type.
func (t *Type) Category() Category {
	switch t.T {
	case ArrayTy:
		return FixedArray
	case SliceTy:
		return DynamicArray
	case StringTy:
		return String
	case BytesTy:
		return Bytes
	case FixedBytesTy:
		return BytesM
	default:
		return Elementary
	}
}

// Bits returns the bit size of a numeric type.
func (t *Type) Bits() int {
	return t.Width * 8
}

// GetType returns the reflection type of the ABI type, which is also the Go type
// values of this ABI type are decoded into.
// GetType 返回 ABI 类型的反射类型，也就是解码结果的 Go 类型。
func (t *Type) GetType() reflect.Type {
	switch t.T {
	case IntTy:
		return reflectIntType(false, t.Bits())
	case UintTy:
		return reflectIntType(true, t.Bits())
	case BoolTy:
		return reflect.TypeOf(false)
	case StringTy:
		return reflect.TypeOf("")
	case SliceTy:
		return reflect.SliceOf(t.Elem.GetType())
	case ArrayTy:
		return reflect.ArrayOf(t.Length, t.Elem.GetType())
	case AddressTy:
		return reflect.TypeOf(common.Address{})
	case FixedBytesTy:
		return reflect.ArrayOf(t.Length, reflect.TypeOf(byte(0)))
	case BytesTy:
		return reflect.SliceOf(reflect.TypeOf(byte(0)))
	default:
		panic("Invalid type")
	}
}

// maxHeadSlots bounds the head slots of a single fixed array so the head size
// of any type fits in a 32 bit length.
const maxHeadSlots = math.MaxInt32 / wordSize

// headSlots returns the number of 32 byte head slots the type occupies. A fixed
// array is laid out in place, so it takes one slot set per element; everything
// else takes a single slot, holding either the value or an offset.
func (t *Type) headSlots() int {
	if t.T == ArrayTy {
		return t.Length * t.Elem.headSlots()
	}
	return 1
}

// minInlineSize is the smallest number of bytes one value of the type can take
// when written sequentially inside a dynamic array. It bounds the element count
// a length prefix may claim.
func (t *Type) minInlineSize() int {
	if t.T == ArrayTy {
		return t.Length * t.Elem.minInlineSize()
	}
	return wordSize
}

// headLength sums the head region of an ordered list of top-level types.
func headLength(types []*Type) int {
	var size int
	for _, t := range types {
		size += wordSize * t.headSlots()
	}
	return size
}

// elementaryTypes builds the table of every non-array type name in a fixed
// order: bool, address, string, bytes, bytes1..bytes32, int8..int256 and
// uint8..uint256.
func elementaryTypes() []*Type {
	types := []*Type{
		{T: BoolTy, Width: 1, stringKind: "bool"},
		{T: AddressTy, Width: common.AddressLength, stringKind: "address"},
		{T: StringTy, stringKind: "string"},
		{T: BytesTy, stringKind: "bytes"},
	}
	for m := 1; m <= 32; m++ {
		types = append(types, &Type{T: FixedBytesTy, Width: m, Length: m, stringKind: "bytes" + strconv.Itoa(m)})
	}
	for bits := 8; bits <= 256; bits += 8 {
		types = append(types, &Type{T: IntTy, Width: bits / 8, stringKind: "int" + strconv.Itoa(bits)})
	}
	for bits := 8; bits <= 256; bits += 8 {
		types = append(types, &Type{T: UintTy, Width: bits / 8, stringKind: "uint" + strconv.Itoa(bits)})
	}
	return types
}

// parseArrayType splits the last bracket pair off t. It returns the element
// name, the array length (zero for T[]) and whether t is a dynamic array.
func parseArrayType(t string) (elem string, length int, dynamic bool, err error) {
	if strings.Count(t, "[") != strings.Count(t, "]") || !strings.HasSuffix(t, "]") {
		return "", 0, false, &ParseError{Type: t, Reason: "unbalanced array brackets"}
	}
	i := strings.LastIndex(t, "[")
	elem, inner := t[:i], t[i+1:len(t)-1]
	if elem == "" {
		return "", 0, false, &ParseError{Type: t, Reason: "missing array element type"}
	}
	if inner == "" {
		return elem, 0, true, nil
	}
	length, err = strconv.Atoi(inner)
	if err != nil {
		return "", 0, false, &ParseError{Type: t, Reason: fmt.Sprintf("invalid array length %q", inner), Err: err}
	}
	if length <= 0 || strconv.Itoa(length) != inner {
		return "", 0, false, &ParseError{Type: t, Reason: fmt.Sprintf("invalid array length %q", inner)}
	}
	if length > maxHeadSlots {
		return "", 0, false, &ParseError{Type: t, Reason: fmt.Sprintf("array length %d too large", length)}
	}
	return elem, length, false, nil
}

// aliases are the shorthand type names Solidity accepts but signatures must not use.
var aliases = map[string]string{
	"uint": "uint256",
	"int":  "int256",
	"byte": "bytes1",
}

// CanonicalType rewrites the aliases uint, int and byte, including as array
// elements, into their canonical names. Other names are returned unchanged.
// CanonicalType 将别名（uint、int、byte）改写为规范名称，函数签名必须使用规范名称。
func CanonicalType(t string) string {
	base, suffix := t, ""
	if i := strings.Index(t, "["); i != -1 {
		base, suffix = t[:i], t[i:]
	}
	if canonical, ok := aliases[base]; ok {
		return canonical + suffix
	}
	return t
}

// maxUint returns 2^bits - 1.
func maxUint(bits int) *big.Int {
	max := new(big.Int).Lsh(common.Big1, uint(bits))
	return max.Sub(max, common.Big1)
}
