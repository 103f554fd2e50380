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
	"errors"
	"fmt"
	"math/big"
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunyihoo/go-ethabi/common"
)

func TestParseType(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		category Category
		kind     byte
		width    int
		length   int
		elem     string
	}{
		{"bool", Elementary, BoolTy, 1, 0, ""},
		{"address", Elementary, AddressTy, 20, 0, ""},
		{"uint8", Elementary, UintTy, 1, 0, ""},
		{"uint24", Elementary, UintTy, 3, 0, ""},
		{"uint256", Elementary, UintTy, 32, 0, ""},
		{"int8", Elementary, IntTy, 1, 0, ""},
		{"int136", Elementary, IntTy, 17, 0, ""},
		{"int256", Elementary, IntTy, 32, 0, ""},
		{"string", String, StringTy, 0, 0, ""},
		{"bytes", Bytes, BytesTy, 0, 0, ""},
		{"bytes1", BytesM, FixedBytesTy, 1, 1, ""},
		{"bytes32", BytesM, FixedBytesTy, 32, 32, ""},
		{"address[5]", FixedArray, ArrayTy, 20, 5, "address"},
		{"int64[]", DynamicArray, SliceTy, 8, 0, "int64"},
		{"string[3]", FixedArray, ArrayTy, 0, 3, "string"},
		{"uint8[2][]", DynamicArray, SliceTy, 1, 0, "uint8[2]"},
		{"bool[][4]", FixedArray, ArrayTy, 1, 4, "bool[]"},
	}
	for _, tt := range tests {
		typ, err := ParseType(tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.name, typ.String())
		assert.Equal(t, tt.category, typ.Category(), tt.name)
		assert.Equal(t, tt.kind, typ.T, tt.name)
		assert.Equal(t, tt.width, typ.Width, tt.name)
		assert.Equal(t, tt.length, typ.Length, tt.name)
		if tt.elem == "" {
			assert.Nil(t, typ.Elem, tt.name)
		} else {
			require.NotNil(t, typ.Elem, tt.name)
			assert.Equal(t, tt.elem, typ.Elem.String(), tt.name)
		}
	}
}

func TestParseTypeErrors(t *testing.T) {
	t.Parallel()
	for _, name := range []string{
		"", "foo", "uint", "int", "byte", "uint7", "uint264", "int0", "bytes0", "bytes33",
		"uint256[x]", "uint256[0]", "uint256[-1]", "uint256[01]", "uint256[", "uint256]",
		"[]", "[3]", "foo[]", "uint[2]", "tuple", "function",
	} {
		_, err := ParseType(name)
		require.Error(t, err, "type %q", name)
		var perr *ParseError
		assert.True(t, errors.As(err, &perr), "type %q: %v", name, err)
		assert.ErrorIs(t, err, ErrParse, name)
	}
}

func TestParseTypeArrayBounds(t *testing.T) {
	t.Parallel()
	for _, name := range []string{
		"bool[4611686018427387904]",
		"bool[9223372036854775807]",
		"bool[99999999999999999999]",
		"uint256[2147483648]",
		"bool[67108864]",
		"bool[65536][65536]",
		"uint8[8192][8192][8192]",
		"string[4096][16385]",
		"bytes[67108864][]",
	} {
		_, err := ParseType(name)
		require.Error(t, err, "type %q", name)
		var perr *ParseError
		assert.True(t, errors.As(err, &perr), "type %q: %v", name, err)
		assert.ErrorIs(t, err, ErrParse, name)
	}
	// The largest fixed array still parses and its head size is exact.
	typ, err := ParseType("bool[67108863]")
	require.NoError(t, err)
	assert.Equal(t, 32*67108863, headLength([]*Type{typ}))

	typ, err = ParseType("uint8[8192][8191]")
	require.NoError(t, err)
	assert.Equal(t, 32*8192*8191, headLength([]*Type{typ}))
}

func TestParseTypeIdempotent(t *testing.T) {
	t.Parallel()
	for _, name := range []string{"uint24", "bytes32", "address[5]", "int64[]", "string[][2]"} {
		a, err := ParseType(name)
		require.NoError(t, err)
		b, err := ParseType(name)
		require.NoError(t, err)
		assert.True(t, a.Equal(b), name)
		assert.Same(t, a, b, name)
	}
	// Fresh registries build distinct but equal descriptors.
	a, _ := NewTypeRegistry().Lookup("uint16[7]")
	b, _ := NewTypeRegistry().Lookup("uint16[7]")
	assert.NotSame(t, a, b)
	assert.True(t, a.Equal(b))
}

func TestRegistryElementaryTable(t *testing.T) {
	t.Parallel()
	r := NewTypeRegistry()
	// bool, address, string, bytes, 32 bytesM and 32 widths each of int and uint.
	assert.Equal(t, 4+32+32+32, r.Len())

	_, err := r.Lookup("bytes4[2][3]")
	require.NoError(t, err)
	// bytes4[2] and bytes4[2][3] were added.
	assert.Equal(t, 4+32+32+32+2, r.Len())
}

func TestRegistryConcurrentLookup(t *testing.T) {
	t.Parallel()
	r := NewTypeRegistry()
	names := []string{"uint8[3]", "address[]", "bytes32[2][]", "int128[9]"}

	const workers = 16
	results := make([][]*Type, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for _, name := range names {
				typ, err := r.Lookup(name)
				if err != nil {
					t.Error(err)
					return
				}
				results[w] = append(results[w], typ)
			}
		}(w)
	}
	wg.Wait()
	for w := 1; w < workers; w++ {
		require.Len(t, results[w], len(names))
		for i := range names {
			assert.Same(t, results[0][i], results[w][i], names[i])
		}
	}
}

func TestCanonicalType(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"uint":      "uint256",
		"int":       "int256",
		"byte":      "bytes1",
		"uint[]":    "uint256[]",
		"int[2][]":  "int256[2][]",
		"uint8":     "uint8",
		"bytes":     "bytes",
		"address[]": "address[]",
	}
	for in, want := range tests {
		assert.Equal(t, want, CanonicalType(in), in)
	}
}

func TestTypeGetType(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		want reflect.Type
	}{
		{"uint8", reflect.TypeOf(uint8(0))},
		{"uint64", reflect.TypeOf(uint64(0))},
		{"int32", reflect.TypeOf(int32(0))},
		{"uint24", reflect.TypeOf(&big.Int{})},
		{"int256", reflect.TypeOf(&big.Int{})},
		{"bool", reflect.TypeOf(false)},
		{"address", reflect.TypeOf(common.Address{})},
		{"bytes4", reflect.TypeOf([4]byte{})},
		{"bytes", reflect.TypeOf([]byte{})},
		{"string", reflect.TypeOf("")},
		{"int16[3]", reflect.TypeOf([3]int16{})},
		{"address[]", reflect.TypeOf([]common.Address{})},
		{"bytes2[][2]", reflect.TypeOf([2][][2]byte{})},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MustParseType(tt.name).GetType(), tt.name)
	}
}

func TestHeadLength(t *testing.T) {
	t.Parallel()
	tests := []struct {
		types []string
		want  int
	}{
		{[]string{"uint256"}, 32},
		{[]string{"string", "bool[]"}, 64},
		{[]string{"int64[5]"}, 160},
		{[]string{"uint8[2][3]", "bytes"}, 7 * 32},
		{[]string{"string[2]"}, 64},
	}
	for _, tt := range tests {
		types, err := lookupTypes(DefaultRegistry, tt.types)
		require.NoError(t, err)
		assert.Equal(t, tt.want, headLength(types), fmt.Sprint(tt.types))
	}
}

func TestCategoryString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "fixed array", FixedArray.String())
	assert.Equal(t, "fixed bytes", BytesM.String())
	assert.Equal(t, "category(42)", Category(42).String())
}
