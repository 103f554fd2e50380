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
	"math/big"
	"reflect"

	"github.com/holiman/uint256"

	"github.com/sunyihoo/go-ethabi/common"
	"github.com/sunyihoo/go-ethabi/common/hexutil"
	"github.com/sunyihoo/go-ethabi/log"
)

// Encoder is an immutable binding of a value to its ABI type. Encoders hold no
// cursor state and may be shared between goroutines; the layout work happens
// against the EncodeBuffer passed to Encode.
// Encoder 是值与其 ABI 类型的不可变绑定，不持有游标状态，可在多个 goroutine 间共享。
type Encoder interface {
	// Type returns the descriptor the encoder was built for.
	Type() *Type

	// EncodedSize returns the number of bytes the value takes as a top-level
	// parameter, head slots included. It is always a multiple of 32. Array
	// arity is checked here.
	EncodedSize() (int, error)

	// dataSize is the number of bytes the value adds to the data area when
	// encoded at the top level.
	dataSize() (int, error)

	// inlineSize is the number of bytes the value takes when written
	// sequentially inside a dynamic array.
	inlineSize() (int, error)

	// encodeHead writes the value at the head cursor, appending any payload to
	// the data area.
	encodeHead(b *EncodeBuffer) error

	// encodeInline writes the value sequentially at the start of dst, which
	// holds exactly inlineSize bytes.
	encodeInline(dst []byte) error
}

// wordEncoder encodes every value that fits a single slot: bool, address,
// numbers and bytesM. The word is packed when the encoder is built.
type wordEncoder struct {
	typ  *Type
	word [wordSize]byte
}

func (e *wordEncoder) Type() *Type               { return e.typ }
func (e *wordEncoder) EncodedSize() (int, error) { return wordSize, nil }
func (e *wordEncoder) dataSize() (int, error)    { return 0, nil }
func (e *wordEncoder) inlineSize() (int, error)  { return wordSize, nil }

func (e *wordEncoder) encodeHead(b *EncodeBuffer) error {
	slot, err := b.AdvanceHead(wordSize)
	if err != nil {
		return err
	}
	copy(slot, e.word[:])
	return nil
}

func (e *wordEncoder) encodeInline(dst []byte) error {
	copy(dst, e.word[:])
	return nil
}

// bytesEncoder encodes string and bytes values as an offset in the head and a
// length prefixed payload in the data area.
type bytesEncoder struct {
	typ  *Type
	data []byte
}

func (e *bytesEncoder) Type() *Type { return e.typ }

func (e *bytesEncoder) EncodedSize() (int, error) {
	return wordSize + wordSize + paddedLen(len(e.data)), nil
}

func (e *bytesEncoder) dataSize() (int, error)   { return e.inlineSize() }
func (e *bytesEncoder) inlineSize() (int, error) { return wordSize + paddedLen(len(e.data)), nil }

func (e *bytesEncoder) encodeHead(b *EncodeBuffer) error {
	size, _ := e.inlineSize()
	return encodeIndirect(b, size, e.encodeInline)
}

func (e *bytesEncoder) encodeInline(dst []byte) error {
	packBytesSlice(dst, e.data)
	return nil
}

// arrayEncoder encodes T[N] and T[] from one item encoder per element.
type arrayEncoder struct {
	typ   *Type
	items []Encoder
}

func (e *arrayEncoder) Type() *Type { return e.typ }

// checkArity fails when a fixed array does not hold exactly N items.
func (e *arrayEncoder) checkArity() error {
	if e.typ.T == ArrayTy && len(e.items) != e.typ.Length {
		return argumentErr(e.typ, "expected %d items, got %d", e.typ.Length, len(e.items))
	}
	return nil
}

func (e *arrayEncoder) EncodedSize() (int, error) {
	data, err := e.dataSize()
	if err != nil {
		return 0, err
	}
	return wordSize*e.typ.headSlots() + data, nil
}

func (e *arrayEncoder) dataSize() (int, error) {
	if err := e.checkArity(); err != nil {
		return 0, err
	}
	if e.typ.T == SliceTy {
		return e.inlineSize()
	}
	var size int
	for _, item := range e.items {
		n, err := item.dataSize()
		if err != nil {
			return 0, err
		}
		size += n
	}
	return size, nil
}

func (e *arrayEncoder) inlineSize() (int, error) {
	if err := e.checkArity(); err != nil {
		return 0, err
	}
	var size int
	if e.typ.T == SliceTy {
		size = wordSize
	}
	for _, item := range e.items {
		n, err := item.inlineSize()
		if err != nil {
			return 0, err
		}
		size += n
	}
	return size, nil
}

func (e *arrayEncoder) encodeHead(b *EncodeBuffer) error {
	if e.typ.T == SliceTy {
		size, err := e.inlineSize()
		if err != nil {
			return err
		}
		return encodeIndirect(b, size, e.encodeInline)
	}
	if err := e.checkArity(); err != nil {
		return err
	}
	// T[N] occupies its head slots in place, one element after the other.
	for _, item := range e.items {
		if err := item.encodeHead(b); err != nil {
			return err
		}
	}
	return nil
}

func (e *arrayEncoder) encodeInline(dst []byte) error {
	if err := e.checkArity(); err != nil {
		return err
	}
	pos := 0
	if e.typ.T == SliceTy {
		packLength(dst[:wordSize], len(e.items))
		pos = wordSize
	}
	for _, item := range e.items {
		n, err := item.inlineSize()
		if err != nil {
			return err
		}
		if err := item.encodeInline(dst[pos : pos+n]); err != nil {
			return err
		}
		pos += n
	}
	return nil
}

// encodeIndirect writes the current data offset into the next head slot, then
// reserves size bytes of data area for write.
func encodeIndirect(b *EncodeBuffer, size int, write func([]byte) error) error {
	slot, err := b.AdvanceHead(wordSize)
	if err != nil {
		return err
	}
	packLength(slot, b.DataOffset())
	area, err := b.AdvanceData(size)
	if err != nil {
		return err
	}
	return write(area)
}

// NewEncoder builds an encoder for value as typeName using the DefaultRegistry.
//
// Accepted values per type:
//   - bool: bool
//   - intN, uintN: Go integers, *big.Int, big.Int, *uint256.Int, uint256.Int
//   - address: common.Address, [20]byte, a 20 byte slice or a hex string
//   - bytesM: M bytes as a slice or array
//   - bytes: a byte slice or array
//   - string: string
//   - T[N], T[]: a Go slice or array of values accepted for T, or []Encoder
//
// Numbers are range checked here and fail with an *OverflowError. The item
// count of a fixed array is checked when the encoder is sized or written.
func NewEncoder(typeName string, value interface{}) (Encoder, error) {
	return DefaultRegistry.NewEncoder(typeName, value)
}

// NewArrayEncoder builds a T[N] or T[] encoder from externally supplied item
// encoders using the DefaultRegistry.
func NewArrayEncoder(typeName string, items ...Encoder) (Encoder, error) {
	return DefaultRegistry.NewArrayEncoder(typeName, items...)
}

// NewBytesEncoder builds an encoder for raw bytes using the DefaultRegistry.
func NewBytesEncoder(typeName string, b []byte) (Encoder, error) {
	return DefaultRegistry.NewBytesEncoder(typeName, b)
}

// NewEncoder builds an encoder for value as typeName.
func (r *TypeRegistry) NewEncoder(typeName string, value interface{}) (Encoder, error) {
	t, err := r.Lookup(typeName)
	if err != nil {
		return nil, err
	}
	return NewTypedEncoder(t, value)
}

// NewArrayEncoder builds a T[N] or T[] encoder whose items must all be of type T.
func (r *TypeRegistry) NewArrayEncoder(typeName string, items ...Encoder) (Encoder, error) {
	t, err := r.Lookup(typeName)
	if err != nil {
		return nil, err
	}
	if t.T != ArrayTy && t.T != SliceTy {
		return nil, argumentErr(t, "array encoder requested for non-array type")
	}
	return newArrayEncoder(t, items)
}

// NewBytesEncoder builds an encoder for b. Only bytes, bytesM and arrays of
// uint8 accept raw bytes.
// NewBytesEncoder 只接受 bytes、bytesM 以及 uint8 数组类型。
func (r *TypeRegistry) NewBytesEncoder(typeName string, b []byte) (Encoder, error) {
	t, err := r.Lookup(typeName)
	if err != nil {
		return nil, err
	}
	switch t.T {
	case BytesTy, FixedBytesTy:
		return NewTypedEncoder(t, b)
	case ArrayTy, SliceTy:
		if t.Elem.T == UintTy && t.Elem.Width == 1 {
			return NewTypedEncoder(t, b)
		}
	}
	return nil, argumentErr(t, "byte array encoder requested")
}

// NewTypedEncoder builds an encoder for value as the already resolved type t.
func NewTypedEncoder(t *Type, value interface{}) (Encoder, error) {
	if enc, ok := value.(Encoder); ok {
		if !enc.Type().Equal(t) {
			return nil, argumentErr(t, "encoder is of type %v", enc.Type())
		}
		return enc, nil
	}
	switch t.T {
	case BoolTy:
		v, ok := indirectValue(value).(bool)
		if !ok {
			return nil, typeErr(t, value)
		}
		e := &wordEncoder{typ: t}
		packBool(e.word[:], v)
		return e, nil
	case IntTy, UintTy:
		v, err := toBigInt(t, value)
		if err != nil {
			return nil, err
		}
		if err := checkNumRange(t, v); err != nil {
			return nil, err
		}
		e := &wordEncoder{typ: t}
		packNum(e.word[:], v)
		return e, nil
	case AddressTy:
		addr, err := toAddress(t, value)
		if err != nil {
			return nil, err
		}
		e := &wordEncoder{typ: t}
		packAddress(e.word[:], addr)
		return e, nil
	case FixedBytesTy:
		b, err := toBytes(t, value)
		if err != nil {
			return nil, err
		}
		if len(b) != t.Length {
			return nil, argumentErr(t, "expected %d bytes, got %d", t.Length, len(b))
		}
		e := &wordEncoder{typ: t}
		packFixedBytes(e.word[:], b)
		return e, nil
	case StringTy:
		s, ok := indirectValue(value).(string)
		if !ok {
			return nil, typeErr(t, value)
		}
		return &bytesEncoder{typ: t, data: []byte(s)}, nil
	case BytesTy:
		b, err := toBytes(t, value)
		if err != nil {
			return nil, err
		}
		return &bytesEncoder{typ: t, data: common.CopyBytes(b)}, nil
	case ArrayTy, SliceTy:
		items, err := arrayItems(t, value)
		if err != nil {
			return nil, err
		}
		return newArrayEncoder(t, items)
	default:
		return nil, argumentErr(t, "unsupported type")
	}
}

func newArrayEncoder(t *Type, items []Encoder) (Encoder, error) {
	for i, item := range items {
		if item == nil {
			return nil, argumentErr(t, "item %d is nil", i)
		}
		if !item.Type().Equal(t.Elem) {
			return nil, argumentErr(t, "item %d is of type %v", i, item.Type())
		}
	}
	return &arrayEncoder{typ: t, items: items}, nil
}

// arrayItems builds one item encoder per element of a Go slice or array.
func arrayItems(t *Type, value interface{}) ([]Encoder, error) {
	if items, ok := value.([]Encoder); ok {
		return items, nil
	}
	if value == nil {
		return nil, typeErr(t, value)
	}
	rv := indirect(reflect.ValueOf(value))
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, typeErr(t, value)
	}
	items := make([]Encoder, rv.Len())
	for i := range items {
		item, err := NewTypedEncoder(t.Elem, rv.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		items[i] = item
	}
	return items, nil
}

// indirectValue dereferences pointers to plain values such as *bool or *string.
func indirectValue(value interface{}) interface{} {
	switch v := value.(type) {
	case *bool:
		if v != nil {
			return *v
		}
	case *string:
		if v != nil {
			return *v
		}
	}
	return value
}

// toBigInt converts the accepted numeric Go values into a big.Int.
func toBigInt(t *Type, value interface{}) (*big.Int, error) {
	switch v := value.(type) {
	case *big.Int:
		if v == nil {
			return nil, typeErr(t, value)
		}
		return v, nil
	case big.Int:
		return &v, nil
	case *uint256.Int:
		if v == nil {
			return nil, typeErr(t, value)
		}
		return v.ToBig(), nil
	case uint256.Int:
		return v.ToBig(), nil
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return big.NewInt(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return new(big.Int).SetUint64(rv.Uint()), nil
	default:
		return nil, typeErr(t, value)
	}
}

// toAddress converts the accepted address values.
func toAddress(t *Type, value interface{}) (common.Address, error) {
	switch v := value.(type) {
	case common.Address:
		return v, nil
	case *common.Address:
		if v != nil {
			return *v, nil
		}
	case [common.AddressLength]byte:
		return common.Address(v), nil
	case []byte:
		if len(v) == common.AddressLength {
			return common.BytesToAddress(v), nil
		}
		return common.Address{}, argumentErr(t, "expected %d bytes, got %d", common.AddressLength, len(v))
	case string:
		if !common.IsHexAddress(v) {
			return common.Address{}, argumentErr(t, "invalid hex address %q", v)
		}
		return common.HexToAddress(v), nil
	}
	return common.Address{}, typeErr(t, value)
}

// toBytes converts byte slices and byte arrays of any length.
func toBytes(t *Type, value interface{}) ([]byte, error) {
	if b, ok := value.([]byte); ok {
		return b, nil
	}
	if value == nil {
		return nil, typeErr(t, value)
	}
	rv := indirect(reflect.ValueOf(value))
	if rv.Kind() == reflect.Array && rv.Type().Elem().Kind() == reflect.Uint8 {
		return mustArrayToByteSlice(rv).Bytes(), nil
	}
	if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
		return rv.Bytes(), nil
	}
	return nil, typeErr(t, value)
}

// Encode lays out the encoders as an ordered parameter list: one buffer sized
// to the sum of their encoded sizes, written in order.
// Encode 将编码器按顺序编码为参数列表。
func Encode(encoders ...Encoder) ([]byte, error) {
	types := make([]*Type, len(encoders))
	var data int
	for i, enc := range encoders {
		if enc == nil {
			return nil, &ArgumentError{Reason: "nil encoder"}
		}
		n, err := enc.dataSize()
		if err != nil {
			return nil, err
		}
		types[i], data = enc.Type(), data+n
	}
	b := NewEncodeBuffer(types, data)
	for _, enc := range encoders {
		if err := enc.encodeHead(b); err != nil {
			return nil, err
		}
	}
	log.Trace("Encoded ABI parameters", "values", len(encoders), "size", len(b.Bytes()))
	return b.Bytes(), nil
}

// EncodeToHex is Encode returning a hex string, with or without a 0x prefix.
func EncodeToHex(prefix bool, encoders ...Encoder) (string, error) {
	b, err := Encode(encoders...)
	if err != nil {
		return "", err
	}
	if prefix {
		return hexutil.Encode(b), nil
	}
	return common.Bytes2Hex(b), nil
}
