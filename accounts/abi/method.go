// Copyright 2015 The go-ethereum Authors
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

	"github.com/sunyihoo/go-ethabi/common"
	"github.com/sunyihoo/go-ethabi/common/hexutil"
	"github.com/sunyihoo/go-ethabi/crypto"
)

// selectorLength is the size of a function selector in bytes.
const selectorLength = 4

// Method represents a callable given a `Name`. Input specifies the typed
// parameters packed after the selector, Outputs the values it returns.
// Method 表示一个可调用的函数，输入参数打包在选择器之后。
type Method struct {
	// Name is the method name used for internal representation. It's derived from
	// the raw name and a suffix will be added in the case of a function overload.
	//
	// e.g.
	// These are two functions that have the same name:
	// * foo(int,int)
	// * foo(uint,uint)
	// The method name of the first one will be resolved as foo while the second one
	// will be resolved as foo0.
	Name    string
	RawName string // RawName is the raw method name parsed from ABI

	StateMutability string // "pure", "view", "nonpayable" or "payable"

	Inputs  Arguments
	Outputs Arguments
	str     string

	// Sig returns the methods string signature according to the ABI spec.
	// e.g.		function foo(uint32 a, int b) = "foo(uint32,int256)"
	// Please note that "int" is substitute for its canonical representation "int256"
	Sig string
	// ID returns the canonical representation of the method's signature used by the
	// abi definition to identify method names and types.
	ID []byte
}

// NewMethod creates a new Method.
// A method should always be created using NewMethod.
// It also precomputes the sig representation and the string representation
// of the method.
func NewMethod(name string, rawName string, mutability string, inputs Arguments, outputs Arguments) Method {
	var (
		inputNames  = make([]string, len(inputs))
		outputNames = make([]string, len(outputs))
	)
	for i, input := range inputs {
		inputNames[i] = strings.TrimSpace(fmt.Sprintf("%v %v", input.Type, input.Name))
	}
	for i, output := range outputs {
		outputNames[i] = strings.TrimSpace(fmt.Sprintf("%v %v", output.Type, output.Name))
	}
	sig := fmt.Sprintf("%v(%v)", rawName, inputs.signature())
	id := crypto.Keccak256([]byte(sig))[:selectorLength]

	if mutability == "" {
		mutability = "nonpayable"
	}
	str := fmt.Sprintf("function %v(%v)", rawName, strings.Join(inputNames, ", "))
	if mutability != "nonpayable" {
		str += " " + mutability
	}
	if len(outputs) > 0 {
		str += fmt.Sprintf(" returns(%v)", strings.Join(outputNames, ", "))
	}
	return Method{
		Name:            name,
		RawName:         rawName,
		StateMutability: mutability,
		Inputs:          inputs,
		Outputs:         outputs,
		str:             str,
		Sig:             sig,
		ID:              id,
	}
}

// NewMethodFromSignature creates a method with unnamed inputs from a signature
// such as "transfer(address,uint256)".
func NewMethodFromSignature(signature string) (Method, error) {
	selector, err := ParseSelector(signature)
	if err != nil {
		return Method{}, err
	}
	inputs := make(Arguments, len(selector.Inputs))
	for i, input := range selector.Inputs {
		inputs[i] = Argument{Type: MustParseType(input.Type)}
	}
	return NewMethod(selector.Name, selector.Name, "", inputs, nil), nil
}

func (method Method) String() string {
	return method.str
}

// IsConstant returns the indicator whether the method is read-only.
func (method Method) IsConstant() bool {
	return method.StateMutability == "view" || method.StateMutability == "pure"
}

// Pack returns the call data: the 4 byte selector followed by the encoded inputs.
func (method Method) Pack(args ...interface{}) ([]byte, error) {
	arguments, err := method.Inputs.Pack(args...)
	if err != nil {
		return nil, fmt.Errorf("`%s` %w", method.Name, err)
	}
	return append(common.CopyBytes(method.ID), arguments...), nil
}

// FunctionSelector returns the 4 byte selector of a function signature as lower
// case hex, e.g. "baz(uint32,bool)" gives "0xcdcd77c0". Aliases such as uint are
// canonicalised before hashing.
// FunctionSelector 返回函数签名的 4 字节选择器（小写十六进制）。
func FunctionSelector(signature string, hexPrefix bool) (string, error) {
	id, err := SelectorID(signature)
	if err != nil {
		return "", err
	}
	if hexPrefix {
		return hexutil.Encode(id[:]), nil
	}
	return common.Bytes2Hex(id[:]), nil
}

// SelectorID returns the raw 4 byte selector of a function signature.
func SelectorID(signature string) ([selectorLength]byte, error) {
	var id [selectorLength]byte
	selector, err := ParseSelector(signature)
	if err != nil {
		return id, err
	}
	copy(id[:], crypto.Keccak256([]byte(selector.Signature())))
	return id, nil
}
