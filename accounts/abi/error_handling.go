// Copyright 2016 The go-ethereum Authors
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
)

var (
	// ErrParse is the root of all type and signature parsing failures.
	// ErrParse 是所有类型和签名解析错误的根。
	ErrParse = errors.New("abi: parse error")

	// ErrOverflow is the root of all numeric range failures.
	ErrOverflow = errors.New("abi: overflow")

	// ErrFormat is the root of all malformed input failures met while decoding.
	// ErrFormat 是解码时遇到的所有格式错误的根。
	ErrFormat = errors.New("abi: improperly encoded value")

	// ErrArgument is the root of all codec misuse failures.
	ErrArgument = errors.New("abi: invalid argument")
)

// ParseError is returned for an unrecognized type name, a malformed array
// length suffix or a malformed signature.
type ParseError struct {
	Type   string
	Reason string
	Err    error // underlying cause, if any
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("abi: cannot parse type %q: %s", e.Type, e.Reason)
}

func (e *ParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrParse, e.Err}
	}
	return []error{ErrParse}
}

// OverflowError is returned when a numeric value does not fit the declared
// type. It is raised before anything is written.
type OverflowError struct {
	Type  string
	Value *big.Int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("abi: value %v overflows %s", e.Value, e.Type)
}

func (e *OverflowError) Unwrap() error { return ErrOverflow }

// FormatError is returned when encoded input cannot be decoded as the
// expected type: a bad boolean byte, non-zero padding or an offset or length
// pointing outside the data.
type FormatError struct {
	Type   string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("abi: improperly encoded %s value: %s", e.Type, e.Reason)
}

func (e *FormatError) Unwrap() error { return ErrFormat }

// ArgumentError reports a programming error: a constructor asked for an
// encoder incompatible with the type, an array given the wrong number of items,
// a value of the wrong Go shape or a buffer sized too small.
type ArgumentError struct {
	Category Category
	Type     string
	Reason   string
}

func (e *ArgumentError) Error() string {
	if e.Type == "" {
		return "abi: invalid argument: " + e.Reason
	}
	return fmt.Sprintf("abi: invalid argument for %s type %s: %s", e.Category, e.Type, e.Reason)
}

func (e *ArgumentError) Unwrap() error { return ErrArgument }

func formatErr(t *Type, format string, args ...interface{}) error {
	return &FormatError{Type: t.String(), Reason: fmt.Sprintf(format, args...)}
}

func argumentErr(t *Type, format string, args ...interface{}) error {
	return &ArgumentError{Category: t.Category(), Type: t.String(), Reason: fmt.Sprintf(format, args...)}
}

// typeErr returns a formatted type casting error.
// typeErr 返回格式化的类型转换错误。
func typeErr(t *Type, got interface{}) error {
	return argumentErr(t, "cannot use %T as type %v", got, t.GetType())
}
