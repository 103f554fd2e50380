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
	"bytes"
	"fmt"
	"strings"

	"github.com/sunyihoo/go-ethabi/common"
	"github.com/sunyihoo/go-ethabi/crypto"
)

// Error is a custom revert error from a contract description. Its inputs are
// limited to the elementary and array types the codec understands, and its
// four byte selector prefixes the revert data that carries it.
// Error 表示合约描述中声明的自定义错误，其参数仅限于编解码器支持的基本类型和数组类型。
type Error struct {
	Name   string
	Inputs Arguments
	str    string

	// Sig is the canonical signature, e.g. "InsufficientBalance(uint256,uint256)".
	Sig string

	// ID is the Keccak-256 hash of Sig. Revert data starts with its first four bytes.
	ID common.Hash
}

// NewError builds an Error from its name and inputs, naming unnamed inputs
// arg0, arg1 and so on.
func NewError(name string, inputs Arguments) Error {
	names := make([]string, len(inputs))
	for i, input := range inputs {
		if input.Name == "" {
			inputs[i] = Argument{Name: fmt.Sprintf("arg%d", i), Type: input.Type}
		}
		names[i] = fmt.Sprintf("%v %v", input.Type, inputs[i].Name)
	}
	sig := fmt.Sprintf("%v(%v)", name, inputs.signature())
	return Error{
		Name:   name,
		Inputs: inputs,
		str:    fmt.Sprintf("error %v(%v)", name, strings.Join(names, ", ")),
		Sig:    sig,
		ID:     crypto.Keccak256Hash([]byte(sig)),
	}
}

// String renders the error as it would be declared, e.g.
// "error InsufficientBalance(uint256 available, uint256 required)".
func (e Error) String() string {
	return e.str
}

// Unpack checks that data starts with the error's selector and decodes the
// rest as its inputs.
func (e *Error) Unpack(data []byte) (interface{}, error) {
	if len(data) < selectorLength {
		return "", fmt.Errorf("insufficient data for unpacking: have %d, want at least 4", len(data))
	}
	if !bytes.Equal(data[:selectorLength], e.ID[:selectorLength]) {
		return "", fmt.Errorf("invalid identifier, have %#x want %#x", data[:selectorLength], e.ID[:selectorLength])
	}
	return e.Inputs.Unpack(data[selectorLength:])
}
