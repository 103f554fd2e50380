// Copyright 2025 The go-ethereum Authors
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

package main

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/go-ethabi/accounts/abi"
	"github.com/sunyihoo/go-ethabi/common"
)

func TestParseArg(t *testing.T) {
	tests := []struct {
		typ  string
		arg  string
		want interface{}
	}{
		{"uint256", "1000", big.NewInt(1000)},
		{"int8", "-0x10", big.NewInt(-16)},
		{"bool", "false", false},
		{"string", "[not json]", "[not json]"},
		{"address", "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"},
		{"bytes", "0x", []byte{}},
		{"bytes[]", `["0x01","0x0203"]`, []interface{}{[]byte{1}, []byte{2, 3}}},
		{"uint8[2][]", `[[1,2],["3",4]]`, []interface{}{
			[]interface{}{big.NewInt(1), big.NewInt(2)},
			[]interface{}{big.NewInt(3), big.NewInt(4)},
		}},
		{"bool[2]", `[true,"false"]`, []interface{}{true, false}},
	}
	for _, tt := range tests {
		have, err := parseArg(abi.MustParseType(tt.typ), tt.arg)
		require.NoError(t, err, "%s %s", tt.typ, tt.arg)
		require.Equal(t, tt.want, have, "%s %s", tt.typ, tt.arg)
	}
}

func TestParseArgErrors(t *testing.T) {
	for _, tt := range []struct{ typ, arg string }{
		{"uint8", "ten"},
		{"bytes", "abcd"},
		{"bool[]", "[1,"},
		{"bool[]", "true"},
		{"uint8[]", "[true]"},
		{"uint8[]", `[{"a":1}]`},
	} {
		_, err := parseArg(abi.MustParseType(tt.typ), tt.arg)
		require.Error(t, err, "%s %s", tt.typ, tt.arg)
	}
}

func TestParseTypes(t *testing.T) {
	types, err := parseTypes("uint256, address[] ,bytes32[2]")
	require.NoError(t, err)
	require.Len(t, types, 3)
	require.Equal(t, "address[]", types[1].String())

	types, err = parseTypes(" ")
	require.NoError(t, err)
	require.Empty(t, types)

	_, err = parseTypes("uint256,uint")
	require.ErrorIs(t, err, abi.ErrParse)
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		v    interface{}
		want string
	}{
		{big.NewInt(-5), "-5"},
		{uint32(7), "7"},
		{true, "true"},
		{"a b", "a b"},
		{common.HexToAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"), "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"},
		{[]byte{0xab}, "0xab"},
		{[2]byte{0xab, 0xcd}, "0xabcd"},
		{[]string{"x", "y z"}, `["x","y z"]`},
		{[2][]bool{{true}, {}}, "[[true],[]]"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, formatValue(tt.v))
	}
}

func TestDecodeHex(t *testing.T) {
	b, err := decodeHex(" 0xABcd ")
	require.NoError(t, err)
	require.Equal(t, []byte{0xab, 0xcd}, b)

	b, err = decodeHex("abcd")
	require.NoError(t, err)
	require.Equal(t, []byte{0xab, 0xcd}, b)

	_, err = decodeHex("0xabc")
	require.Error(t, err)
}
