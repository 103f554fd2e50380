package keccak

import (
	"bytes"
	"encoding/hex"
	"math/rand"
	"testing"

	"golang.org/x/crypto/sha3"
)

func TestKeccak256Vectors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"},
		{"abc", "4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45"},
		{"baz(uint32,bool)", "cdcd77c0"},
		{"transfer(address,uint256)", "a9059cbb"},
	}
	for _, test := range tests {
		sum := Sum256([]byte(test.input))
		if got := hex.EncodeToString(sum[:len(test.want)/2]); got != test.want {
			t.Errorf("Keccak256(%q) = %s, want %s", test.input, got, test.want)
		}
	}
}

// legacyKeccak is the reference implementation the sponge is checked against.
type legacyKeccak interface {
	Write([]byte) (int, error)
	Read([]byte) (int, error)
}

func TestAgainstReference(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	// Lengths around the rate boundaries: 136 for Keccak-256, 72 for Keccak-512.
	for length := 0; length < 3*136+3; length++ {
		data := make([]byte, length)
		rng.Read(data)

		ref256 := sha3.NewLegacyKeccak256()
		ref256.Write(data)
		h256 := NewLegacyKeccak256()
		h256.Write(data)
		if want, got := ref256.Sum(nil), h256.Sum(nil); !bytes.Equal(want, got) {
			t.Fatalf("keccak256 length %d: got %x, want %x", length, got, want)
		}

		ref512 := sha3.NewLegacyKeccak512()
		ref512.Write(data)
		h512 := NewLegacyKeccak512()
		h512.Write(data)
		if want, got := ref512.Sum(nil), h512.Sum(nil); !bytes.Equal(want, got) {
			t.Fatalf("keccak512 length %d: got %x, want %x", length, got, want)
		}
	}
}

func TestStreamingWrites(t *testing.T) {
	data := make([]byte, 1000)
	for i := range data {
		data[i] = byte(i)
	}
	want := Sum256(data)
	for _, chunk := range []int{1, 7, 64, 135, 136, 137, 500} {
		h := NewLegacyKeccak256()
		for i := 0; i < len(data); i += chunk {
			end := i + chunk
			if end > len(data) {
				end = len(data)
			}
			h.Write(data[i:end])
		}
		if got := h.Sum(nil); !bytes.Equal(got, want[:]) {
			t.Errorf("chunk %d: got %x, want %x", chunk, got, want)
		}
	}
}

func TestSumDoesNotChangeState(t *testing.T) {
	h := NewLegacyKeccak256()
	h.Write([]byte("hello "))
	first := h.Sum(nil)
	h.Write([]byte("world"))
	full := Sum256([]byte("hello world"))
	if !bytes.Equal(h.Sum(nil), full[:]) {
		t.Fatal("Sum modified the running state")
	}
	partial := Sum256([]byte("hello "))
	if !bytes.Equal(first, partial[:]) {
		t.Fatal("intermediate Sum mismatch")
	}
}

func TestReadLongOutput(t *testing.T) {
	ref := sha3.NewLegacyKeccak256().(legacyKeccak)
	ref.Write([]byte("squeeze"))
	want := make([]byte, 500)
	ref.Read(want)

	h := NewLegacyKeccak256()
	h.Write([]byte("squeeze"))
	got := make([]byte, 500)
	// Read in uneven pieces to cross the rate boundary mid-slice.
	h.Read(got[:100])
	h.Read(got[100:])
	if !bytes.Equal(got, want) {
		t.Fatalf("squeezed output mismatch:\ngot  %x\nwant %x", got, want)
	}
}

func TestReset(t *testing.T) {
	h := NewLegacyKeccak256()
	h.Write([]byte("garbage"))
	h.Read(make([]byte, 32))
	h.Reset()
	h.Write([]byte("abc"))
	want := Sum256([]byte("abc"))
	if got := h.Sum(nil); !bytes.Equal(got, want[:]) {
		t.Fatalf("after reset got %x, want %x", got, want)
	}
}

func TestSizes(t *testing.T) {
	for _, test := range []struct {
		h          State
		size, rate int
	}{
		{NewLegacyKeccak224(), 28, 144},
		{NewLegacyKeccak256(), 32, 136},
		{NewLegacyKeccak384(), 48, 104},
		{NewLegacyKeccak512(), 64, 72},
	} {
		if test.h.Size() != test.size || test.h.BlockSize() != test.rate {
			t.Errorf("size %d rate %d, want %d %d", test.h.Size(), test.h.BlockSize(), test.size, test.rate)
		}
	}
}

func BenchmarkKeccak256(b *testing.B) {
	data := make([]byte, 1024)
	b.SetBytes(int64(len(data)))
	for i := 0; i < b.N; i++ {
		Sum256(data)
	}
}
