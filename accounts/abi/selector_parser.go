// Copyright 2022 The go-ethereum Authors
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
)

// SelectorMarshaling is the parsed form of a function signature such as
// "transfer(address,uint256)".
type SelectorMarshaling struct {
	Name   string               `json:"name"`
	Type   string               `json:"type"`
	Inputs []ArgumentMarshaling `json:"inputs"`
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentifierSymbol(c byte) bool {
	return c == '$' || c == '_'
}

// parseToken parses a token from the unescapedSelector string based on whether it's an identifier.
// parseToken 从字符串中解析一个标记，基于它是否是标识符。
func parseToken(unescapedSelector string, isIdent bool) (string, string, error) {
	if len(unescapedSelector) == 0 {
		return "", "", fmt.Errorf("empty token")
	}
	firstChar := unescapedSelector[0]
	position := 1
	if !(isAlpha(firstChar) || (isIdent && isIdentifierSymbol(firstChar))) {
		return "", "", fmt.Errorf("invalid token start: %c", firstChar)
	}
	for position < len(unescapedSelector) {
		char := unescapedSelector[position]
		if !(isAlpha(char) || isDigit(char) || (isIdent && isIdentifierSymbol(char))) {
			break
		}
		position++
	}
	return unescapedSelector[:position], unescapedSelector[position:], nil
}

func parseIdentifier(unescapedSelector string) (string, string, error) {
	return parseToken(unescapedSelector, true)
}

// parseElementaryType parses an elementary type with any number of array
// suffixes, e.g. uint256 or address[3][].
// parseElementaryType 解析基本类型以及数组后缀。
func parseElementaryType(unescapedSelector string) (string, string, error) {
	if len(unescapedSelector) > 0 && unescapedSelector[0] == '(' {
		return "", "", fmt.Errorf("tuple types are not supported")
	}
	parsedType, rest, err := parseToken(unescapedSelector, false)
	if err != nil {
		return "", "", fmt.Errorf("failed to parse elementary type: %v", err)
	}
	// handle arrays
	for len(rest) > 0 && rest[0] == '[' {
		end := 1
		for end < len(rest) && isDigit(rest[end]) {
			end++
		}
		if end == len(rest) || rest[end] != ']' {
			return "", "", fmt.Errorf("failed to parse array: expected ']' in %q", rest)
		}
		parsedType, rest = parsedType+rest[:end+1], rest[end+1:]
	}
	return parsedType, rest, nil
}

// parseArgumentList parses "(t1,t2,...)" and returns the canonical type names.
func parseArgumentList(unescapedSelector string) ([]string, string, error) {
	if len(unescapedSelector) == 0 || unescapedSelector[0] != '(' {
		return nil, "", fmt.Errorf("expected '('")
	}
	rest := unescapedSelector[1:]
	if len(rest) > 0 && rest[0] == ')' {
		return []string{}, rest[1:], nil
	}
	var types []string
	for {
		parsedType, next, err := parseElementaryType(rest)
		if err != nil {
			return nil, "", err
		}
		types = append(types, CanonicalType(parsedType))
		if len(next) == 0 {
			return nil, "", fmt.Errorf("expected ')'")
		}
		switch next[0] {
		case ',':
			rest = next[1:]
		case ')':
			return types, next[1:], nil
		default:
			return nil, "", fmt.Errorf("unexpected character %q", next[0])
		}
	}
}

// ParseSelector converts a function signature into its parsed form. Spaces are
// ignored and type aliases are rewritten to their canonical names; every type
// must resolve in the DefaultRegistry.
// Note, although uppercase letters are not part of the ABI spec, this function
// still accepts it as the general format is valid.
// ParseSelector 将函数签名转换为解析后的结构。
func ParseSelector(unescapedSelector string) (SelectorMarshaling, error) {
	selector := strings.Join(strings.Fields(unescapedSelector), "")
	fail := func(err error) (SelectorMarshaling, error) {
		return SelectorMarshaling{}, &ParseError{Type: unescapedSelector, Reason: "invalid signature", Err: err}
	}
	name, rest, err := parseIdentifier(selector)
	if err != nil {
		return fail(err)
	}
	types, rest, err := parseArgumentList(rest)
	if err != nil {
		return fail(err)
	}
	if len(rest) > 0 {
		return fail(fmt.Errorf("unexpected string '%s'", rest))
	}
	inputs := make([]ArgumentMarshaling, len(types))
	for i, typ := range types {
		if _, err := ParseType(typ); err != nil {
			return fail(err)
		}
		// generate dummy name to avoid unmarshal issues
		inputs[i] = ArgumentMarshaling{Name: fmt.Sprintf("name%d", i), Type: typ, InternalType: typ}
	}
	return SelectorMarshaling{Name: name, Type: "function", Inputs: inputs}, nil
}

// Signature returns the canonical signature, e.g. "baz(uint32,bool)".
func (s SelectorMarshaling) Signature() string {
	types := make([]string, len(s.Inputs))
	for i, input := range s.Inputs {
		types[i] = input.Type
	}
	return s.Name + "(" + strings.Join(types, ",") + ")"
}
