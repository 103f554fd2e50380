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
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Argument holds the name of the argument and the corresponding type.
// Types are used when packing and testing arguments.
// Argument 结构体保存参数的名称和对应的类型。
type Argument struct {
	Name string
	Type *Type
}

// Arguments is an ordered parameter list, as taken by a function or returned
// from it.
type Arguments []Argument

// ArgumentMarshaling is the JSON form of an argument.
type ArgumentMarshaling struct {
	Name         string
	Type         string
	InternalType string
	Components   []ArgumentMarshaling
}

// NewArguments builds an unnamed argument list from type names.
func NewArguments(typeNames ...string) (Arguments, error) {
	args := make(Arguments, len(typeNames))
	for i, name := range typeNames {
		t, err := ParseType(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		args[i] = Argument{Type: t}
	}
	return args, nil
}

// UnmarshalJSON implements json.Unmarshaler interface.
func (argument *Argument) UnmarshalJSON(data []byte) error {
	var arg ArgumentMarshaling
	err := json.Unmarshal(data, &arg)
	if err != nil {
		return fmt.Errorf("argument json err: %v", err)
	}
	if len(arg.Components) > 0 || strings.HasPrefix(arg.Type, "tuple") {
		return &ParseError{Type: arg.Type, Reason: "tuple types are not supported"}
	}
	argument.Type, err = ParseType(CanonicalType(arg.Type))
	if err != nil {
		return err
	}
	argument.Name = arg.Name
	return nil
}

// Types returns the descriptors of the arguments in order.
func (arguments Arguments) Types() []*Type {
	types := make([]*Type, len(arguments))
	for i, arg := range arguments {
		types[i] = arg.Type
	}
	return types
}

// isTuple returns true for non-atomic constructs, like (uint,uint).
func (arguments Arguments) isTuple() bool {
	return len(arguments) > 1
}

// Unpack performs the operation hexdata -> Go format.
// Unpack 方法将 ABI 编码数据解包为 Go 格式。
func (arguments Arguments) Unpack(data []byte, opts ...DecodeOption) ([]interface{}, error) {
	if len(data) == 0 {
		if len(arguments) != 0 {
			return nil, errors.New("abi: attempting to unmarshal an empty string while arguments are expected")
		}
		return make([]interface{}, 0), nil
	}
	return arguments.UnpackValues(data, opts...)
}

// UnpackIntoMap performs the operation hexdata -> mapping of argument name to argument value.
func (arguments Arguments) UnpackIntoMap(v map[string]interface{}, data []byte, opts ...DecodeOption) error {
	// Make sure map is not nil
	if v == nil {
		return errors.New("abi: cannot unpack into a nil map")
	}
	if len(data) == 0 {
		if len(arguments) != 0 {
			return errors.New("abi: attempting to unmarshal an empty string while arguments are expected")
		}
		return nil // Nothing to unmarshal, return
	}
	values, err := arguments.UnpackValues(data, opts...)
	if err != nil {
		return err
	}
	for i, arg := range arguments {
		v[arg.Name] = values[i]
	}
	return nil
}

// Copy performs the operation go format -> provided struct.
// Copy 方法将 Go 格式的值复制到提供的结构体、切片或单个变量中。
func (arguments Arguments) Copy(v interface{}, values []interface{}) error {
	// make sure the passed value is arguments pointer
	if reflect.Ptr != reflect.ValueOf(v).Kind() {
		return fmt.Errorf("abi: Unpack(non-pointer %T)", v)
	}
	if len(values) == 0 {
		if len(arguments) != 0 {
			return errors.New("abi: attempting to copy no values while arguments are expected")
		}
		return nil // Nothing to copy, return
	}
	if arguments.isTuple() {
		return arguments.copyTuple(v, values)
	}
	return arguments.copyAtomic(v, values[0])
}

// copyAtomic copies (hexdata -> go) a single value.
func (arguments Arguments) copyAtomic(v interface{}, marshalledValue interface{}) error {
	dst := reflect.ValueOf(v).Elem()
	src := reflect.ValueOf(marshalledValue)

	if dst.Kind() == reflect.Struct && dst.NumField() > 0 {
		return set(dst.Field(0), src)
	}
	return set(dst, src)
}

// copyTuple copies a batch of values from marshalledValues to v.
func (arguments Arguments) copyTuple(v interface{}, marshalledValues []interface{}) error {
	value := reflect.ValueOf(v).Elem()

	switch value.Kind() {
	case reflect.Struct:
		argNames := make([]string, len(arguments))
		for i, arg := range arguments {
			argNames[i] = arg.Name
		}
		abi2struct, err := mapArgNamesToStructFields(argNames, value)
		if err != nil {
			return err
		}
		for i, arg := range arguments {
			field := value.FieldByName(abi2struct[arg.Name])
			if !field.IsValid() {
				return fmt.Errorf("abi: field %s can't be found in the given value", arg.Name)
			}
			if err := set(field, reflect.ValueOf(marshalledValues[i])); err != nil {
				return err
			}
		}
	case reflect.Slice, reflect.Array:
		if value.Len() < len(marshalledValues) {
			return fmt.Errorf("abi: insufficient number of arguments for unpack, want %d, got %d", len(arguments), value.Len())
		}
		for i := range arguments {
			if err := set(value.Index(i), reflect.ValueOf(marshalledValues[i])); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("abi: cannot unmarshal tuple in to %v", value.Type())
	}
	return nil
}

// UnpackValues can be used to unpack ABI-encoded hexdata according to the ABI-specification,
// without supplying a struct to unpack into. Instead, this method returns a list containing the
// values. An atomic argument will be a list with one element.
// UnpackValues 根据 ABI 规范解包数据，返回包含解包值的列表。
func (arguments Arguments) UnpackValues(data []byte, opts ...DecodeOption) ([]interface{}, error) {
	return DecodeValues(arguments.Types(), data, opts...)
}

// PackValues performs the operation Go format -> Hexdata.
// It is the semantic opposite of UnpackValues.
func (arguments Arguments) PackValues(args []interface{}) ([]byte, error) {
	return arguments.Pack(args...)
}

// Pack performs the operation Go format -> Hexdata.
// Pack 方法将 Go 格式的参数打包为 ABI 编码数据。
func (arguments Arguments) Pack(args ...interface{}) ([]byte, error) {
	// Make sure arguments match up and pack them
	if len(args) != len(arguments) {
		return nil, fmt.Errorf("argument count mismatch: got %d for %d", len(args), len(arguments))
	}
	encoders := make([]Encoder, len(args))
	for i, a := range args {
		enc, err := NewTypedEncoder(arguments[i].Type, a)
		if err != nil {
			return nil, err
		}
		encoders[i] = enc
	}
	return Encode(encoders...)
}

// signature returns the comma separated canonical type list.
func (arguments Arguments) signature() string {
	types := make([]string, len(arguments))
	for i, arg := range arguments {
		types[i] = arg.Type.String()
	}
	return strings.Join(types, ",")
}
