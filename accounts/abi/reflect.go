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
	"reflect"
	"strings"
)

var bigIntType = reflect.TypeOf(big.Int{})

// indirect recursively dereferences the value until it either gets the value
// or finds a big.Int
// indirect 递归解引用值，直到获取到值或找到 big.Int
func indirect(v reflect.Value) reflect.Value {
	if v.Kind() == reflect.Ptr && !v.IsNil() && v.Elem().Type() != bigIntType {
		return indirect(v.Elem())
	}
	return v
}

// reflectIntType returns the reflect using the given size and
// unsignedness.
func reflectIntType(unsigned bool, size int) reflect.Type {
	if unsigned {
		switch size {
		case 8:
			return reflect.TypeOf(uint8(0))
		case 16:
			return reflect.TypeOf(uint16(0))
		case 32:
			return reflect.TypeOf(uint32(0))
		case 64:
			return reflect.TypeOf(uint64(0))
		}
	}
	switch size {
	case 8:
		return reflect.TypeOf(int8(0))
	case 16:
		return reflect.TypeOf(int16(0))
	case 32:
		return reflect.TypeOf(int32(0))
	case 64:
		return reflect.TypeOf(int64(0))
	}
	return reflect.TypeOf(&big.Int{})
}

// mustArrayToByteSlice creates a new byte slice with the exact same size as value
// and copies the bytes in value to the new slice.
func mustArrayToByteSlice(value reflect.Value) reflect.Value {
	slice := reflect.MakeSlice(reflect.TypeOf([]byte{}), value.Len(), value.Len())
	reflect.Copy(slice, value)
	return slice
}

// set attempts to assign src to dst by either setting, copying or otherwise.
//
// set is a bit more lenient when it comes to assignment and doesn't force an as
// strict ruleset as bare `reflect` does: a decoded [32]byte can land in a
// []byte field and a []uint8 in a [N]uint8 one.
// set 比纯粹的 reflect 更宽松，例如 [32]byte 可以赋值给 []byte 字段。
func set(dst, src reflect.Value) error {
	dstType, srcType := dst.Type(), src.Type()
	switch {
	case dstType.Kind() == reflect.Interface && dst.Elem().IsValid() && (dst.Elem().Type().Kind() == reflect.Ptr || dst.Elem().CanSet()):
		return set(dst.Elem(), src)
	case dstType.Kind() == reflect.Ptr && dstType.Elem() != bigIntType:
		if dst.IsNil() {
			if !dst.CanSet() {
				return errors.New("abi: cannot set nil pointer destination")
			}
			dst.Set(reflect.New(dstType.Elem()))
		}
		return set(dst.Elem(), src)
	case srcType.AssignableTo(dstType) && dst.CanSet():
		dst.Set(src)
	case dstType.Kind() == reflect.Slice && srcType.Kind() == reflect.Array && dstType.Elem().Kind() == reflect.Uint8 && srcType.Elem().Kind() == reflect.Uint8 && dst.CanSet():
		return set(dst, mustArrayToByteSlice(src))
	case dstType.Kind() == reflect.Slice && srcType.Kind() == reflect.Slice && dst.CanSet():
		return setSlice(dst, src)
	case dstType.Kind() == reflect.Array && (srcType.Kind() == reflect.Array || srcType.Kind() == reflect.Slice):
		return setArray(dst, src)
	default:
		return fmt.Errorf("abi: cannot unmarshal %v in to %v", src.Type(), dst.Type())
	}
	return nil
}

// setSlice attempts to assign src to dst when slices are not assignable by default
// e.g. src: [][]byte -> dst: [][15]byte
func setSlice(dst, src reflect.Value) error {
	slice := reflect.MakeSlice(dst.Type(), src.Len(), src.Len())
	for i := 0; i < src.Len(); i++ {
		if err := set(slice.Index(i), src.Index(i)); err != nil {
			return err
		}
	}
	dst.Set(slice)
	return nil
}

func setArray(dst, src reflect.Value) error {
	if src.Len() != dst.Len() {
		return fmt.Errorf("abi: cannot unmarshal %d elements in to %v", src.Len(), dst.Type())
	}
	array := reflect.New(dst.Type()).Elem()
	for i := 0; i < src.Len(); i++ {
		if err := set(array.Index(i), src.Index(i)); err != nil {
			return err
		}
	}
	if dst.CanSet() {
		dst.Set(array)
		return nil
	}
	return errors.New("cannot set array, destination not settable")
}

// mapArgNamesToStructFields maps a slice of argument names to struct fields.
//
// first round: for each Exportable field that contains a `abi:""` tag and this field name
// exists in the given argument name list, pair them together.
//
// second round: for each argument name that has not been already linked, find what
// variable is expected to be mapped into, if it exists and has not been used, pair them.
//
// Note this function assumes the given value is a struct value.
// 第一轮按 abi 标签配对，第二轮按驼峰命名配对。
func mapArgNamesToStructFields(argNames []string, value reflect.Value) (map[string]string, error) {
	typ := value.Type()

	abi2struct := make(map[string]string)
	struct2abi := make(map[string]string)

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		tagName, ok := field.Tag.Lookup("abi")
		if !ok {
			continue
		}
		if tagName == "" {
			return nil, fmt.Errorf("struct: abi tag in '%s' is empty", field.Name)
		}
		found := false
		for _, arg := range argNames {
			if arg != tagName {
				continue
			}
			if abi2struct[arg] != "" {
				return nil, fmt.Errorf("struct: abi tag in '%s' already mapped", field.Name)
			}
			abi2struct[arg] = field.Name
			struct2abi[field.Name] = arg
			found = true
		}
		if !found {
			return nil, fmt.Errorf("struct: abi tag '%s' defined but not found in abi", tagName)
		}
	}

	for _, argName := range argNames {
		structFieldName := ToCamelCase(argName)
		if structFieldName == "" {
			return nil, errors.New("abi: purely underscored output cannot unpack to struct")
		}
		// Already paired through a tag, unless another unassigned field carries
		// the same name:
		//    abi: [ { "name": "value" } ]
		//    struct { Value  *big.Int , Value1 *big.Int `abi:"value"`}
		if abi2struct[argName] != "" {
			if abi2struct[argName] != structFieldName &&
				struct2abi[structFieldName] == "" &&
				value.FieldByName(structFieldName).IsValid() {
				return nil, fmt.Errorf("abi: multiple variables maps to the same abi field '%s'", argName)
			}
			continue
		}
		if struct2abi[structFieldName] != "" {
			return nil, fmt.Errorf("abi: multiple outputs mapping to the same struct field '%s'", structFieldName)
		}
		if value.FieldByName(structFieldName).IsValid() {
			abi2struct[argName] = structFieldName
		}
		// Mark as used even when unpaired to catch "value" and "_value" colliding.
		struct2abi[structFieldName] = argName
	}
	return abi2struct, nil
}

// ToCamelCase converts an under-score string to a camel-case string.
func ToCamelCase(input string) string {
	parts := strings.Split(input, "_")
	for i, s := range parts {
		if len(s) > 0 {
			parts[i] = strings.ToUpper(s[:1]) + s[1:]
		}
	}
	return strings.Join(parts, "")
}
