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
	"strings"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/sunyihoo/go-ethabi/common"
)

// words joins 32 byte hex words, ignoring whitespace between them.
func words(ws ...string) string {
	return strings.Join(ws, "")
}

func mustEncoder(t *testing.T, typ string, value interface{}) Encoder {
	t.Helper()
	enc, err := NewEncoder(typ, value)
	require.NoError(t, err, "type %s", typ)
	return enc
}

func encodeHex(t *testing.T, encoders ...Encoder) string {
	t.Helper()
	out, err := EncodeToHex(false, encoders...)
	require.NoError(t, err)
	return out
}

func TestEncodeScalars(t *testing.T) {
	t.Parallel()
	tests := []struct {
		typ   string
		value interface{}
		want  string
	}{
		{"uint24", 23456, "0000000000000000000000000000000000000000000000000000000000005ba0"},
		{"int24", -77216, "fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffed260"},
		{"int8", int8(-1), "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"},
		{"uint8", uint8(255), "00000000000000000000000000000000000000000000000000000000000000ff"},
		{"uint256", big.NewInt(1), "0000000000000000000000000000000000000000000000000000000000000001"},
		{"uint256", uint256.NewInt(0x1234), "0000000000000000000000000000000000000000000000000000000000001234"},
		{"int256", *big.NewInt(-2), "fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffe"},
		{"uint64", uint64(1) << 63, "0000000000000000000000000000000000000000000000008000000000000000"},
		{"bool", true, "0000000000000000000000000000000000000000000000000000000000000001"},
		{"bool", false, "0000000000000000000000000000000000000000000000000000000000000000"},
		{"address", "0x11f4d0A3c12e86B4b5F39B213F7E19D048276DAe", "00000000000000000000000011f4d0a3c12e86b4b5f39b213f7e19d048276dae"},
		{"address", common.HexToAddress("0x01"), "0000000000000000000000000000000000000000000000000000000000000001"},
		{"bytes3", []byte("abc"), "6162630000000000000000000000000000000000000000000000000000000000"},
		{"bytes10", []byte("1234567890"), "3132333435363738393000000000000000000000000000000000000000000000"},
		{"bytes2", [2]byte{0xca, 0xfe}, "cafe000000000000000000000000000000000000000000000000000000000000"},
	}
	for _, tt := range tests {
		enc := mustEncoder(t, tt.typ, tt.value)
		size, err := enc.EncodedSize()
		require.NoError(t, err)
		assert.Equal(t, 32, size)
		assert.Equal(t, tt.want, encodeHex(t, enc), "%s %v", tt.typ, tt.value)
	}
}

func TestEncodeString(t *testing.T) {
	t.Parallel()
	enc := mustEncoder(t, "string", "Hello, world!")
	size, err := enc.EncodedSize()
	require.NoError(t, err)
	assert.Equal(t, 96, size)

	want := words(
		"0000000000000000000000000000000000000000000000000000000000000020",
		"000000000000000000000000000000000000000000000000000000000000000d",
		"48656c6c6f2c20776f726c642100000000000000000000000000000000000000",
	)
	assert.Equal(t, want, encodeHex(t, enc))
}

func TestEncodeUTF8Length(t *testing.T) {
	t.Parallel()
	// a (1 byte), € (3 bytes), 𝄞 (4 bytes): 3 characters, 8 bytes.
	s := "a€𝄞"
	out, err := Encode(mustEncoder(t, "string", s))
	require.NoError(t, err)
	require.Len(t, out, 96)
	assert.Equal(t, byte(8), out[63])
	assert.Equal(t, []byte(s), out[64:72])
}

// Solidity documentation example: sam(bytes,bool,uint256[]) with ("dave", true, [1,2,3]).
func TestEncodeDocumentationSam(t *testing.T) {
	t.Parallel()
	method, err := NewMethodFromSignature("sam(bytes,bool,uint256[])")
	require.NoError(t, err)
	out, err := method.Pack([]byte("dave"), true, []*big.Int{big.NewInt(1), big.NewInt(2), big.NewInt(3)})
	require.NoError(t, err)

	want := words(
		"a5643bf2",
		"0000000000000000000000000000000000000000000000000000000000000060",
		"0000000000000000000000000000000000000000000000000000000000000001",
		"00000000000000000000000000000000000000000000000000000000000000a0",
		"0000000000000000000000000000000000000000000000000000000000000004",
		"6461766500000000000000000000000000000000000000000000000000000000",
		"0000000000000000000000000000000000000000000000000000000000000003",
		"0000000000000000000000000000000000000000000000000000000000000001",
		"0000000000000000000000000000000000000000000000000000000000000002",
		"0000000000000000000000000000000000000000000000000000000000000003",
	)
	assert.Equal(t, want, common.Bytes2Hex(out))
}

// Solidity documentation example: f(uint256,uint32[],bytes10,bytes) with
// (0x123, [0x456, 0x789], "1234567890", "Hello, world!").
func TestEncodeDocumentationDynamic(t *testing.T) {
	t.Parallel()
	out, err := EncodeToHex(true,
		mustEncoder(t, "uint256", 0x123),
		mustEncoder(t, "uint32[]", []uint32{0x456, 0x789}),
		mustEncoder(t, "bytes10", []byte("1234567890")),
		mustEncoder(t, "bytes", []byte("Hello, world!")),
	)
	require.NoError(t, err)

	want := "0x" + words(
		"0000000000000000000000000000000000000000000000000000000000000123",
		"0000000000000000000000000000000000000000000000000000000000000080",
		"3132333435363738393000000000000000000000000000000000000000000000",
		"00000000000000000000000000000000000000000000000000000000000000e0",
		"0000000000000000000000000000000000000000000000000000000000000002",
		"0000000000000000000000000000000000000000000000000000000000000456",
		"0000000000000000000000000000000000000000000000000000000000000789",
		"000000000000000000000000000000000000000000000000000000000000000d",
		"48656c6c6f2c20776f726c642100000000000000000000000000000000000000",
	)
	assert.Equal(t, want, out)
}

func TestEncodeOverflow(t *testing.T) {
	t.Parallel()
	maxUint256 := new(big.Int).Set(MaxUint256)
	maxInt256 := new(big.Int).Set(MaxInt256)
	minInt256 := new(big.Int).Neg(new(big.Int).Add(maxInt256, common.Big1))

	tests := []struct {
		typ   string
		value interface{}
		ok    bool
	}{
		{"uint24", 16777215, true},
		{"uint24", 16777216, false},
		{"uint24", -1, false},
		{"uint8", 256, false},
		{"uint8", uint8(255), true},
		{"int24", 8388607, true},
		{"int24", 8388608, false},
		{"int24", -8388608, true},
		{"int24", -8388609, false},
		{"int8", -128, true},
		{"int8", 128, false},
		{"uint64", uint64(1<<64 - 1), true},
		{"int64", uint64(1 << 63), false},
		{"uint256", maxUint256, true},
		{"uint256", new(big.Int).Add(maxUint256, common.Big1), false},
		{"int256", maxInt256, true},
		{"int256", minInt256, true},
		{"int256", new(big.Int).Add(maxInt256, common.Big1), false},
		{"int256", new(big.Int).Sub(minInt256, common.Big1), false},
	}
	for _, tt := range tests {
		_, err := NewEncoder(tt.typ, tt.value)
		if tt.ok {
			assert.NoError(t, err, "%s %v", tt.typ, tt.value)
			continue
		}
		var oerr *OverflowError
		if assert.True(t, errors.As(err, &oerr), "%s %v: %v", tt.typ, tt.value, err) {
			assert.Equal(t, tt.typ, oerr.Type)
		}
		assert.ErrorIs(t, err, ErrOverflow)
	}
}

func TestEncodeOverflowInArray(t *testing.T) {
	t.Parallel()
	_, err := NewEncoder("uint8[]", []int{1, 2, 300})
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestEncodeFixedArrayArity(t *testing.T) {
	t.Parallel()
	for _, n := range []int{4, 6} {
		// Building succeeds, the item count is verified when finalizing.
		enc, err := NewEncoder("int64[5]", make([]int64, n))
		require.NoError(t, err)

		_, err = enc.EncodedSize()
		var aerr *ArgumentError
		require.True(t, errors.As(err, &aerr), "%d items: %v", n, err)
		assert.Equal(t, FixedArray, aerr.Category)
		assert.Equal(t, "int64[5]", aerr.Type)

		_, err = Encode(enc)
		assert.ErrorIs(t, err, ErrArgument)
	}
	enc := mustEncoder(t, "int64[5]", []int64{1, -2, 3, -4, 5})
	out, err := Encode(enc)
	require.NoError(t, err)
	assert.Len(t, out, 160)
	assert.Equal(t, byte(0xfe), out[63])
}

func TestEncodeArrayShapes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		typ   string
		value interface{}
		size  int
	}{
		{"bool[]", []bool{true, false, true, true}, 192},
		{"bool[4]", []bool{true, false, true, true}, 128},
		{"bool[4]", [4]bool{true, false, true, true}, 128},
		{"bool[]", []bool{}, 64},
		{"uint8[2][3]", [][]uint8{{1, 2}, {3, 4}, {5, 6}}, 192},
		{"uint8[2][]", [][2]uint8{{1, 2}, {3, 4}}, 32 + 32 + 4*32},
		{"string[]", []string{"a", "bc"}, 32 + 32 + 2*64},
		{"string[2]", []string{"a", "bc"}, 2*32 + 2*64},
		{"address[]", []interface{}{common.Address{1}, "0x0000000000000000000000000000000000000002"}, 128},
	}
	for _, tt := range tests {
		enc := mustEncoder(t, tt.typ, tt.value)
		size, err := enc.EncodedSize()
		require.NoError(t, err, tt.typ)
		assert.Equal(t, tt.size, size, tt.typ)

		out, err := Encode(enc)
		require.NoError(t, err, tt.typ)
		assert.Len(t, out, tt.size, tt.typ)
	}
}

func TestEncodeBoolSlice(t *testing.T) {
	t.Parallel()
	out := encodeHex(t, mustEncoder(t, "bool[]", []bool{true, false, true, true}))
	want := words(
		"0000000000000000000000000000000000000000000000000000000000000020",
		"0000000000000000000000000000000000000000000000000000000000000004",
		"0000000000000000000000000000000000000000000000000000000000000001",
		"0000000000000000000000000000000000000000000000000000000000000000",
		"0000000000000000000000000000000000000000000000000000000000000001",
		"0000000000000000000000000000000000000000000000000000000000000001",
	)
	assert.Equal(t, want, out)
}

func TestNewArrayEncoder(t *testing.T) {
	t.Parallel()
	a := mustEncoder(t, "uint16", 1)
	b := mustEncoder(t, "uint16", 2)

	enc, err := NewArrayEncoder("uint16[]", a, b)
	require.NoError(t, err)
	assert.Equal(t, words(
		"0000000000000000000000000000000000000000000000000000000000000020",
		"0000000000000000000000000000000000000000000000000000000000000002",
		"0000000000000000000000000000000000000000000000000000000000000001",
		"0000000000000000000000000000000000000000000000000000000000000002",
	), encodeHex(t, enc))

	// One item encoder can be reused for every element.
	enc, err = NewArrayEncoder("uint16[3]", a, a, a)
	require.NoError(t, err)
	size, err := enc.EncodedSize()
	require.NoError(t, err)
	assert.Equal(t, 96, size)

	_, err = NewArrayEncoder("uint16[]", a, mustEncoder(t, "uint32", 2))
	assert.ErrorIs(t, err, ErrArgument)

	_, err = NewArrayEncoder("uint16", a)
	var aerr *ArgumentError
	require.True(t, errors.As(err, &aerr))
	assert.Equal(t, Elementary, aerr.Category)

	// An []Encoder value goes through NewEncoder too.
	enc, err = NewEncoder("uint16[2]", []Encoder{a, b})
	require.NoError(t, err)
	assert.Equal(t, "uint16[2]", enc.Type().String())
}

func TestNewBytesEncoder(t *testing.T) {
	t.Parallel()
	enc, err := NewBytesEncoder("bytes", []byte{1, 2, 3})
	require.NoError(t, err)
	size, _ := enc.EncodedSize()
	assert.Equal(t, 96, size)

	_, err = NewBytesEncoder("bytes4", []byte{1, 2, 3, 4})
	require.NoError(t, err)

	_, err = NewBytesEncoder("uint8[]", []byte{1, 2, 3})
	require.NoError(t, err)

	for _, typ := range []string{"uint256", "string", "bool[]", "address"} {
		_, err := NewBytesEncoder(typ, []byte{1})
		var aerr *ArgumentError
		require.True(t, errors.As(err, &aerr), "%s: %v", typ, err)
		assert.Equal(t, typ, aerr.Type)
		assert.Equal(t, MustParseType(typ).Category(), aerr.Category)
	}
}

func TestNewEncoderShapeMismatch(t *testing.T) {
	t.Parallel()
	tests := []struct {
		typ   string
		value interface{}
	}{
		{"bool", "true"},
		{"bool", 1},
		{"uint256", "1"},
		{"uint256", (*big.Int)(nil)},
		{"uint256", 1.5},
		{"address", "0x1234"},
		{"address", []byte{1, 2}},
		{"bytes4", []byte{1, 2, 3}},
		{"bytes4", []byte{1, 2, 3, 4, 5}},
		{"bytes", "0x01"},
		{"string", []byte("x")},
		{"uint8[]", 5},
		{"uint8[]", nil},
		{"uint8", mustParseEncoder("uint16", 1)},
	}
	for _, tt := range tests {
		_, err := NewEncoder(tt.typ, tt.value)
		assert.ErrorIs(t, err, ErrArgument, "%s %#v", tt.typ, tt.value)
	}
	_, err := NewEncoder("uint7", 1)
	assert.ErrorIs(t, err, ErrParse)
}

func mustParseEncoder(typ string, value interface{}) Encoder {
	enc, err := NewEncoder(typ, value)
	if err != nil {
		panic(err)
	}
	return enc
}

func TestEncodeEmpty(t *testing.T) {
	t.Parallel()
	out, err := Encode()
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = Encode(nil)
	assert.ErrorIs(t, err, ErrArgument)
}

func TestEncodeConcurrentShare(t *testing.T) {
	t.Parallel()
	enc := mustEncoder(t, "string[]", []string{"shared", "encoder"})
	want := encodeHex(t, enc)

	var g errgroup.Group
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			out, err := EncodeToHex(false, enc)
			if err != nil {
				return err
			}
			if out != want {
				return fmt.Errorf("shared encoder produced %s", out)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}
