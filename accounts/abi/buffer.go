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
	"fmt"
	"strings"

	"github.com/sunyihoo/go-ethabi/log"
)

// PaddingMode selects how strictly a decoder verifies the padding bytes around
// a value.
// PaddingMode 决定解码器校验填充字节的严格程度。
type PaddingMode int

const (
	// PaddingLenient only requires the unused tail of a bytesM slot to be zero.
	// Real-world encoders are not consistent about the other padding regions.
	PaddingLenient PaddingMode = iota

	// PaddingStrict checks every padding region: the 31 high bytes of a bool,
	// the 12 high bytes of an address, the sign or zero extension of numbers
	// and the tail of bytes and string payloads.
	PaddingStrict

	// PaddingIgnore performs no padding checks at all.
	PaddingIgnore
)

var paddingNames = map[PaddingMode]string{
	PaddingLenient: "lenient",
	PaddingStrict:  "strict",
	PaddingIgnore:  "ignore",
}

func (m PaddingMode) String() string {
	if name, ok := paddingNames[m]; ok {
		return name
	}
	return fmt.Sprintf("padding(%d)", int(m))
}

// ParsePaddingMode parses a padding mode name as printed by String.
func ParsePaddingMode(s string) (PaddingMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for mode, name := range paddingNames {
		if name == s {
			return mode, nil
		}
	}
	return PaddingLenient, fmt.Errorf("unknown padding mode %q (want lenient, strict or ignore)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m PaddingMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *PaddingMode) UnmarshalText(text []byte) error {
	mode, err := ParsePaddingMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// EncodeBuffer is the output of a single encode call. Its storage is split into
// the head region, sized from the top-level types, and the data area holding
// the payloads of dynamic values. Both cursors only move forward.
// EncodeBuffer 是单次编码调用的输出。头部区域的大小由顶层类型决定，数据区存放动态值。
type EncodeBuffer struct {
	storage []byte
	headLen int
	head    int // head cursor, relative to the start of storage
	data    int // data cursor, relative to the start of storage
}

// NewEncodeBuffer allocates a buffer for the given top-level types with
// dataSize bytes of data area.
func NewEncodeBuffer(types []*Type, dataSize int) *EncodeBuffer {
	headLen := headLength(types)
	log.Trace("Allocated ABI encode buffer", "values", len(types), "head", headLen, "data", dataSize)
	return &EncodeBuffer{storage: make([]byte, headLen+dataSize), headLen: headLen, data: headLen}
}

// NewEncodeBufferFrom wraps caller owned storage, which must be zeroed and at
// least as large as the head region of types.
func NewEncodeBufferFrom(storage []byte, types []*Type) (*EncodeBuffer, error) {
	headLen := headLength(types)
	if len(storage) < headLen {
		return nil, bufferErr("head", headLen, len(storage))
	}
	return &EncodeBuffer{storage: storage, headLen: headLen, data: headLen}, nil
}

// AdvanceHead reserves the next n bytes of the head region.
func (b *EncodeBuffer) AdvanceHead(n int) ([]byte, error) {
	if n < 0 || b.head+n > b.headLen {
		return nil, bufferErr("head", n, b.headLen-b.head)
	}
	slot := b.storage[b.head : b.head+n]
	b.head += n
	return slot, nil
}

// AdvanceData reserves the next n bytes of the data area.
func (b *EncodeBuffer) AdvanceData(n int) ([]byte, error) {
	if n < 0 || b.data+n > len(b.storage) {
		return nil, bufferErr("data", n, len(b.storage)-b.data)
	}
	area := b.storage[b.data : b.data+n]
	b.data += n
	return area, nil
}

// DataOffset is the offset, from the start of the buffer, at which the next
// data area write will land.
func (b *EncodeBuffer) DataOffset() int {
	return b.data
}

// HeadLen returns the size of the head region.
func (b *EncodeBuffer) HeadLen() int {
	return b.headLen
}

// Bytes returns the backing storage.
func (b *EncodeBuffer) Bytes() []byte {
	return b.storage
}

// DecodeOption configures a DecodeBuffer.
type DecodeOption func(*DecodeBuffer)

// WithPadding sets the padding verification mode.
func WithPadding(mode PaddingMode) DecodeOption {
	return func(b *DecodeBuffer) {
		b.padding = mode
	}
}

// DecodeBuffer is the input of a single decode call. The head cursor only reads
// from the head region, while offsets found there are resolved against the whole
// storage.
// DecodeBuffer 是单次解码调用的输入。头部游标只读取头部区域，偏移量相对于整个存储解析。
type DecodeBuffer struct {
	data    []byte
	headLen int
	head    int
	padding PaddingMode
}

// NewDecodeBuffer prepares data for decoding the given top-level types in
// order. It fails if data is too short to hold their head region.
func NewDecodeBuffer(data []byte, types []*Type, opts ...DecodeOption) (*DecodeBuffer, error) {
	b := &DecodeBuffer{data: data, headLen: headLength(types)}
	for _, opt := range opts {
		opt(b)
	}
	if len(data) < b.headLen {
		return nil, &FormatError{Type: typeList(types), Reason: fmt.Sprintf("data length %d shorter than head length %d", len(data), b.headLen)}
	}
	return b, nil
}

// AdvanceHead returns the next n bytes of the head region.
func (b *DecodeBuffer) AdvanceHead(n int) ([]byte, error) {
	if n < 0 || b.head+n > b.headLen {
		return nil, bufferErr("head", n, b.headLen-b.head)
	}
	slot := b.data[b.head : b.head+n]
	b.head += n
	return slot, nil
}

// Data returns the whole storage that head offsets point into.
func (b *DecodeBuffer) Data() []byte {
	return b.data
}

// HeadRemaining returns the number of unread head bytes.
func (b *DecodeBuffer) HeadRemaining() int {
	return b.headLen - b.head
}

// Padding returns the padding verification mode.
func (b *DecodeBuffer) Padding() PaddingMode {
	return b.padding
}

func bufferErr(region string, want, have int) error {
	return &ArgumentError{Reason: fmt.Sprintf("%s buffer overrun: need %d bytes, %d available", region, want, have)}
}

func typeList(types []*Type) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return "(" + strings.Join(names, ",") + ")"
}
