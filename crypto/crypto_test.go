package crypto

import (
	"bytes"
	"testing"

	"github.com/sunyihoo/go-ethabi/common"
)

func checkhash(t *testing.T, name string, f func([]byte) []byte, msg, exp []byte) {
	sum := f(msg)
	if !bytes.Equal(exp, sum) {
		t.Fatalf("hash %s mismatch: want: %x have: %x", name, exp, sum)
	}
}

func TestKeccak256Hash(t *testing.T) {
	msg := []byte("abc")
	exp := common.FromHex("4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45")
	checkhash(t, "Sha3-256-array", func(in []byte) []byte { h := Keccak256Hash(in); return h[:] }, msg, exp)
	checkhash(t, "Sha3-256", func(in []byte) []byte { return Keccak256(in) }, msg, exp)
}

func TestKeccak256MultipleInputs(t *testing.T) {
	whole := Keccak256([]byte("Error(string)"))
	split := Keccak256([]byte("Error("), []byte("string)"))
	if !bytes.Equal(whole, split) {
		t.Fatalf("split input mismatch: %x != %x", whole, split)
	}
	if got := common.Bytes2Hex(whole[:4]); got != "08c379a0" {
		t.Fatalf("Error(string) selector = %s", got)
	}
}

func TestHashData(t *testing.T) {
	kh := NewKeccakState()
	first := HashData(kh, []byte("Panic(uint256)"))
	second := HashData(kh, []byte("Panic(uint256)"))
	if first != second {
		t.Fatal("HashData does not reset the state between calls")
	}
	if got := common.Bytes2Hex(first[:4]); got != "4e487b71" {
		t.Fatalf("Panic(uint256) selector = %s", got)
	}
}

func TestKeccak512Empty(t *testing.T) {
	exp := common.FromHex("0eab42de4c3ceb9235fc91acffe746b29c29a8c366b7c60e4e67c466f36a4304c00fa9caf9d87976ba469bcbe06713b435f091ef2769fb160cdab33d3670680e")
	checkhash(t, "Keccak512", func(in []byte) []byte { return Keccak512(in) }, nil, exp)
}
