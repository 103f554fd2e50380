// Copyright 2017 The go-ethereum Authors
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
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/sunyihoo/go-ethabi/accounts/abi"
	"github.com/sunyihoo/go-ethabi/common"
	"github.com/sunyihoo/go-ethabi/common/hexutil"
)

// parseTypes splits a comma separated type list such as "uint256,bytes32[2]".
func parseTypes(list string) ([]*abi.Type, error) {
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}
	var types []*abi.Type
	for _, name := range strings.Split(list, ",") {
		t, err := abi.ParseType(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

// parseArg converts a command line argument into a value accepted by the
// encoder of t. Arrays are given as JSON arrays, e.g. [1,2,3] or ["a","b"].
// parseArg 将命令行参数转换为 t 的编码器可接受的值，数组以 JSON 数组形式给出。
func parseArg(t *abi.Type, arg string) (interface{}, error) {
	if t.T != abi.ArrayTy && t.T != abi.SliceTy {
		return parseScalar(t, arg)
	}
	dec := json.NewDecoder(strings.NewReader(arg))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("invalid %s argument %q: %v", t, arg, err)
	}
	return convertJSON(t, v)
}

func convertJSON(t *abi.Type, v interface{}) (interface{}, error) {
	switch v := v.(type) {
	case []interface{}:
		if t.T != abi.ArrayTy && t.T != abi.SliceTy {
			return nil, fmt.Errorf("unexpected array for %s", t)
		}
		items := make([]interface{}, len(v))
		for i, elem := range v {
			item, err := convertJSON(t.Elem, elem)
			if err != nil {
				return nil, err
			}
			items[i] = item
		}
		return items, nil
	case json.Number:
		return parseScalar(t, v.String())
	case string:
		return parseScalar(t, v)
	case bool:
		if t.T != abi.BoolTy {
			return nil, fmt.Errorf("unexpected boolean for %s", t)
		}
		return v, nil
	}
	return nil, fmt.Errorf("unsupported JSON value %v for %s", v, t)
}

func parseScalar(t *abi.Type, s string) (interface{}, error) {
	switch t.T {
	case abi.BoolTy:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("invalid bool %q", s)
		}
		return b, nil
	case abi.IntTy, abi.UintTy:
		n, ok := new(big.Int).SetString(s, 0)
		if !ok {
			return nil, fmt.Errorf("invalid %s %q", t, s)
		}
		return n, nil
	case abi.AddressTy, abi.StringTy:
		return s, nil
	case abi.BytesTy, abi.FixedBytesTy:
		b, err := hexutil.Decode(s)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %v", t, s, err)
		}
		return b, nil
	}
	return nil, fmt.Errorf("cannot parse %s from the command line", t)
}

// decodeHex accepts hex input with or without the 0x prefix.
func decodeHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	return hexutil.Decode(s)
}

// formatValue renders a decoded value for printing, one value per line.
// Strings are printed verbatim at the top level and quoted inside arrays.
// formatValue 将解码后的值格式化输出。
func formatValue(v interface{}) string {
	return formatNested(v, false)
}

func formatNested(v interface{}, quote bool) string {
	switch v := v.(type) {
	case *big.Int:
		return v.String()
	case common.Address:
		return v.Hex()
	case []byte:
		return hexutil.Encode(v)
	case string:
		if quote {
			return strconv.Quote(v)
		}
		return v
	case bool:
		return strconv.FormatBool(v)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			b := make([]byte, rv.Len())
			reflect.Copy(reflect.ValueOf(b), rv)
			return hexutil.Encode(b)
		}
		fallthrough
	case reflect.Slice:
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = formatNested(rv.Index(i).Interface(), true)
		}
		return "[" + strings.Join(parts, ",") + "]"
	}
	return fmt.Sprint(v)
}
