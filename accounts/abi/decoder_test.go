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
	"math/big"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"

	"github.com/sunyihoo/go-ethabi/common"
)

var bigIntComparer = cmp.Comparer(func(a, b *big.Int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Cmp(b) == 0
})

func decodeOne(t *testing.T, typ string, data []byte, opts ...DecodeOption) (interface{}, error) {
	t.Helper()
	buf, err := NewDecodeBuffer(data, []*Type{MustParseType(typ)}, opts...)
	if err != nil {
		return nil, err
	}
	return Decode(typ, buf)
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()
	tests := []struct {
		typ   string
		value interface{}
		want  interface{}
	}{
		{"uint24", 23456, big.NewInt(23456)},
		{"int24", -77216, big.NewInt(-77216)},
		{"uint8", 200, uint8(200)},
		{"uint16", 65535, uint16(65535)},
		{"uint32", uint32(1 << 31), uint32(1 << 31)},
		{"uint64", uint64(1<<64 - 1), uint64(1<<64 - 1)},
		{"int8", -128, int8(-128)},
		{"int16", -2, int16(-2)},
		{"int32", -77216, int32(-77216)},
		{"int64", int64(-1 << 63), int64(-1 << 63)},
		{"int256", new(big.Int).Neg(MaxInt256), new(big.Int).Neg(MaxInt256)},
		{"uint256", MaxUint256, MaxUint256},
		{"int72", big.NewInt(-1), big.NewInt(-1)},
		{"bool", true, true},
		{"bool", false, false},
		{"address", "0x11f4d0A3c12e86B4b5F39B213F7E19D048276DAe", common.HexToAddress("0x11f4d0a3c12e86b4b5f39b213f7e19d048276dae")},
		{"bytes1", []byte{0x7f}, [1]byte{0x7f}},
		{"bytes32", common.Hash{31: 1}, [32]byte{31: 1}},
		{"bytes", []byte{}, []byte{}},
		{"bytes", []byte("0123456789abcdef0123456789abcdef!"), []byte("0123456789abcdef0123456789abcdef!")},
		{"string", "Hello, world!", "Hello, world!"},
		{"string", "a€𝄞 mixed ✓", "a€𝄞 mixed ✓"},
		{"string", "", ""},
		{"int64[5]", []int64{1, -2, 3, -4, 5}, [5]int64{1, -2, 3, -4, 5}},
		{"bool[]", []bool{true, false, true, true}, []bool{true, false, true, true}},
		{"bool[4]", []bool{true, false, true, true}, [4]bool{true, false, true, true}},
		{"uint8[2][3]", [][]uint8{{1, 2}, {3, 4}, {5, 6}}, [3][2]uint8{{1, 2}, {3, 4}, {5, 6}}},
		{"uint8[2][]", [][2]uint8{{1, 2}, {3, 4}}, [][2]uint8{{1, 2}, {3, 4}}},
		{"uint16[][]", [][]uint16{{1}, {}, {2, 3}}, [][]uint16{{1}, {}, {2, 3}}},
		{"string[]", []string{"a", "bc", ""}, []string{"a", "bc", ""}},
		{"string[2]", []string{"first", "second"}, [2]string{"first", "second"}},
		{"bytes[]", [][]byte{{1}, {2, 3}}, [][]byte{{1}, {2, 3}}},
		{"bytes3[]", [][3]byte{{1, 2, 3}}, [][3]byte{{1, 2, 3}}},
		{"address[2]", []common.Address{{1}, {2}}, [2]common.Address{{1}, {2}}},
		{"uint256[]", []*big.Int{big.NewInt(7), MaxUint256}, []*big.Int{big.NewInt(7), MaxUint256}},
	}
	for _, tt := range tests {
		data, err := Encode(mustEncoder(t, tt.typ, tt.value))
		if err != nil {
			t.Fatalf("%s: encode failed: %v", tt.typ, err)
		}
		for _, mode := range []PaddingMode{PaddingLenient, PaddingStrict, PaddingIgnore} {
			got, err := decodeOne(t, tt.typ, data, WithPadding(mode))
			if err != nil {
				t.Fatalf("%s (%v): decode failed: %v", tt.typ, mode, err)
			}
			if diff := cmp.Diff(tt.want, got, bigIntComparer); diff != "" {
				t.Errorf("%s (%v): round trip mismatch (-want +got):\n%s", tt.typ, mode, diff)
			}
		}
	}
}

func TestDecodeAddressLowercase(t *testing.T) {
	t.Parallel()
	data, err := Encode(mustEncoder(t, "address", "0x11f4d0A3c12e86B4b5F39B213F7E19D048276DAe"))
	if err != nil {
		t.Fatal(err)
	}
	got, err := decodeOne(t, "address", data)
	if err != nil {
		t.Fatal(err)
	}
	if hex := got.(common.Address).Hex(); hex != "0x11f4d0a3c12e86b4b5f39b213f7e19d048276dae" {
		t.Errorf("address hex mismatch: have %s", hex)
	}
}

func TestDecodeValuesSequence(t *testing.T) {
	t.Parallel()
	types := []*Type{MustParseType("uint256"), MustParseType("uint32[]"), MustParseType("bytes10"), MustParseType("bytes")}
	data := common.Hex2Bytes(words(
		"0000000000000000000000000000000000000000000000000000000000000123",
		"0000000000000000000000000000000000000000000000000000000000000080",
		"3132333435363738393000000000000000000000000000000000000000000000",
		"00000000000000000000000000000000000000000000000000000000000000e0",
		"0000000000000000000000000000000000000000000000000000000000000002",
		"0000000000000000000000000000000000000000000000000000000000000456",
		"0000000000000000000000000000000000000000000000000000000000000789",
		"000000000000000000000000000000000000000000000000000000000000000d",
		"48656c6c6f2c20776f726c642100000000000000000000000000000000000000",
	))
	got, err := DecodeValues(types, data)
	if err != nil {
		t.Fatal(err)
	}
	var b10 [10]byte
	copy(b10[:], "1234567890")
	want := []interface{}{big.NewInt(0x123), []uint32{0x456, 0x789}, b10, []byte("Hello, world!")}
	if diff := cmp.Diff(want, got, bigIntComparer); diff != "" {
		t.Errorf("decode mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeRemainingHead(t *testing.T) {
	t.Parallel()
	types := []*Type{MustParseType("bool"), MustParseType("uint8[2]"), MustParseType("string")}
	data, err := Encode(mustEncoder(t, "bool", true), mustEncoder(t, "uint8[2]", []uint8{1, 2}), mustEncoder(t, "string", "x"))
	if err != nil {
		t.Fatal(err)
	}
	buf, err := NewDecodeBuffer(data, types)
	if err != nil {
		t.Fatal(err)
	}
	for i, want := range []int{96, 32, 0} {
		if _, err := DecodeType(types[i], buf); err != nil {
			t.Fatalf("value %d: %v", i, err)
		}
		if have := buf.HeadRemaining(); have != want {
			t.Errorf("value %d: head remaining mismatch: have %d, want %d", i, have, want)
		}
	}
	// The head cursor never reads past the head region.
	if _, err := Decode("bool", buf); !errors.Is(err, ErrArgument) {
		t.Errorf("expected argument error past the head, got %v", err)
	}
}

func TestDecodePadding(t *testing.T) {
	t.Parallel()
	word := func(b ...byte) []byte {
		w := make([]byte, 32)
		copy(w[32-len(b):], b)
		return w
	}
	dirty := func(w []byte, i int) []byte {
		w[i] = 0xaa
		return w
	}
	tests := []struct {
		name    string
		typ     string
		data    []byte
		lenient bool // passes in lenient mode
		strict  bool // passes in strict mode
		ignore  bool // passes with padding checks off
	}{
		{"bool high bytes", "bool", dirty(word(1), 0), true, false, true},
		{"address high bytes", "address", dirty(word(1), 3), true, false, true},
		{"uint8 high bytes", "uint8", dirty(word(1), 30), true, false, true},
		{"int8 missing sign extension", "int8", word(0xff), true, false, true},
		{"int8 high bytes", "int8", dirty(word(), 0), true, false, true},
		{"bytes4 tail", "bytes4", dirty(word(), 31), false, false, true},
		{"bytes4 clean", "bytes4", dirty(word(), 3), true, true, true},
		{"bytes payload tail", "bytes", append(append(word(0x20), word(1)...), dirty(word(), 31)...), true, false, true},
		{"bytes payload clean", "bytes", append(append(word(0x20), word(1)...), dirty(word(), 0)...), true, true, true},
	}
	for _, tt := range tests {
		for mode, ok := range map[PaddingMode]bool{PaddingLenient: tt.lenient, PaddingStrict: tt.strict, PaddingIgnore: tt.ignore} {
			data := append([]byte(nil), tt.data...)
			_, err := decodeOne(t, tt.typ, data, WithPadding(mode))
			if ok && err != nil {
				t.Errorf("%s (%v): unexpected error: %v", tt.name, mode, err)
			}
			if !ok && !errors.Is(err, ErrFormat) {
				t.Errorf("%s (%v): expected format error, got %v", tt.name, mode, err)
			}
		}
	}
}

func TestDecodeIgnoredPaddingValues(t *testing.T) {
	t.Parallel()
	// Lenient decoding reads the low bytes only.
	data := make([]byte, 32)
	data[0], data[31] = 0xff, 0x05
	got, err := decodeOne(t, "uint8", data)
	if err != nil {
		t.Fatal(err)
	}
	if got != uint8(5) {
		t.Errorf("have %v, want 5", got)
	}
	data[31] = 0xfe
	got, err = decodeOne(t, "int8", data)
	if err != nil {
		t.Fatal(err)
	}
	if got != int8(-2) {
		t.Errorf("have %v, want -2", got)
	}
}

func TestDecodeFormatErrors(t *testing.T) {
	t.Parallel()
	word := func(n uint64) []byte {
		w := make([]byte, 32)
		new(big.Int).SetUint64(n).FillBytes(w)
		return w
	}
	concat := func(ws ...[]byte) []byte {
		var out []byte
		for _, w := range ws {
			out = append(out, w...)
		}
		return out
	}
	huge := make([]byte, 32)
	huge[0] = 1
	tests := []struct {
		name string
		typ  string
		data []byte
	}{
		{"bool two", "bool", word(2)},
		{"bool ff", "bool", word(0xff)},
		{"short head", "uint256", make([]byte, 31)},
		{"offset past end", "string", word(0x40)},
		{"huge offset", "bytes", huge},
		{"length past end", "bytes", concat(word(0x20), word(33), word(0))},
		{"huge length", "string", concat(word(0x20), huge)},
		{"array length past end", "bool[]", concat(word(0x20), word(3), word(1), word(1))},
		{"array length absurd", "uint256[]", concat(word(0x20), word(1<<40))},
		{"nested element past end", "string[]", concat(word(0x20), word(1), word(64))},
		{"fixed array element bool", "bool[2]", concat(word(1), word(7))},
	}
	for _, tt := range tests {
		_, err := decodeOne(t, tt.typ, tt.data)
		var ferr *FormatError
		if !errors.As(err, &ferr) {
			t.Errorf("%s: expected *FormatError, got %v", tt.name, err)
			continue
		}
		if !errors.Is(err, ErrFormat) {
			t.Errorf("%s: error does not match ErrFormat", tt.name)
		}
	}
}

func TestDecodeLargeFixedArrayShortData(t *testing.T) {
	t.Parallel()
	typ, err := ParseType("bool[67108863]")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	for _, data := range [][]byte{nil, make([]byte, 64)} {
		_, err := DecodeValues([]*Type{typ}, data)
		if !errors.Is(err, ErrFormat) {
			t.Errorf("data length %d: expected ErrFormat, got %v", len(data), err)
		}
	}
	if _, err := ParseType("bool[4611686018427387904]"); !errors.Is(err, ErrParse) {
		t.Errorf("expected ErrParse for oversized array, got %v", err)
	}
}

func TestUnpackArguments(t *testing.T) {
	t.Parallel()
	args, err := NewArguments("uint24", "string", "address[]")
	if err != nil {
		t.Fatal(err)
	}
	addrs := []common.Address{common.HexToAddress("0x01"), common.HexToAddress("0x02")}
	data, err := args.Pack(23456, "hi", addrs)
	if err != nil {
		t.Fatal(err)
	}
	got, err := args.Unpack(data)
	if err != nil {
		t.Fatal(err)
	}
	want := []interface{}{big.NewInt(23456), "hi", addrs}
	if diff := cmp.Diff(want, got, bigIntComparer); diff != "" {
		t.Errorf("unpack mismatch (-want +got):\n%s", diff)
	}
	if _, err := args.Pack(1, "x"); err == nil {
		t.Error("expected argument count mismatch")
	}
	if _, err := args.Unpack(nil); err == nil {
		t.Error("expected error unpacking empty data")
	}
}

func TestArgumentsCopy(t *testing.T) {
	t.Parallel()
	args := Arguments{
		{Name: "amount", Type: MustParseType("uint256")},
		{Name: "to_addr", Type: MustParseType("address")},
		{Name: "memo", Type: MustParseType("bytes4")},
		{Name: "flags", Type: MustParseType("uint8[2]")},
	}
	to := common.HexToAddress("0x11f4d0a3c12e86b4b5f39b213f7e19d048276dae")
	data, err := args.Pack(big.NewInt(99), to, []byte("memo"), []uint8{1, 2})
	if err != nil {
		t.Fatal(err)
	}
	values, err := args.Unpack(data)
	if err != nil {
		t.Fatal(err)
	}
	var out struct {
		Amount *big.Int
		ToAddr common.Address
		Note   []byte `abi:"memo"`
		Flags  []uint8
	}
	if err := args.Copy(&out, values); err != nil {
		t.Fatal(err)
	}
	if out.Amount.Int64() != 99 || out.ToAddr != to || string(out.Note) != "memo" || !cmp.Equal(out.Flags, []uint8{1, 2}) {
		t.Errorf("copy mismatch: %s", spew.Sdump(out))
	}

	m := make(map[string]interface{})
	if err := args.UnpackIntoMap(m, data); err != nil {
		t.Fatal(err)
	}
	if m["to_addr"] != to {
		t.Errorf("map mismatch: %v", m)
	}

	var single uint8
	one := Arguments{{Type: MustParseType("uint8")}}
	data, _ = one.Pack(uint8(42))
	values, _ = one.Unpack(data)
	if err := one.Copy(&single, values); err != nil || single != 42 {
		t.Errorf("atomic copy: have %d, err %v", single, err)
	}
	if err := one.Copy(single, values); err == nil {
		t.Error("expected error copying into non-pointer")
	}
}
