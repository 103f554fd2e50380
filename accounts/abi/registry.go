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
	"github.com/puzpuzpuz/xsync/v4"

	"github.com/sunyihoo/go-ethabi/log"
)

// TypeRegistry memoizes parsed type descriptors by canonical name. The
// elementary types are registered when the registry is created, array forms are
// added on first request and never evicted. A registry is safe for concurrent
// use.
// TypeRegistry 按规范名称缓存已解析的类型描述符。只追加，不淘汰，可并发使用。
type TypeRegistry struct {
	types *xsync.MapOf[string, *Type]
}

// DefaultRegistry is the process-wide registry used by ParseType and the
// package level encoder and decoder constructors.
var DefaultRegistry = NewTypeRegistry()

// NewTypeRegistry creates a registry pre-populated with every elementary type.
func NewTypeRegistry() *TypeRegistry {
	r := &TypeRegistry{types: xsync.NewMapOf[string, *Type]()}
	for _, t := range elementaryTypes() {
		r.types.Store(t.stringKind, t)
	}
	return r
}

// ParseType resolves a canonical type name through the DefaultRegistry.
func ParseType(name string) (*Type, error) {
	return DefaultRegistry.Lookup(name)
}

// MustParseType is like ParseType but panics on failure. It is meant for
// type names known at compile time.
func MustParseType(name string) *Type {
	t, err := ParseType(name)
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup returns the descriptor for name, parsing and caching array forms on
// first use. Concurrent lookups of the same new name may parse it more than
// once, but only one descriptor is ever stored and returned.
func (r *TypeRegistry) Lookup(name string) (*Type, error) {
	if t, ok := r.types.Load(name); ok {
		return t, nil
	}
	if name == "" {
		return nil, &ParseError{Type: name, Reason: "empty type name"}
	}
	elemName, length, dynamic, err := parseArrayType(name)
	if err != nil {
		// A name without brackets that is not in the table is an unknown base.
		if _, ok := aliases[name]; ok {
			return nil, &ParseError{Type: name, Reason: "alias is not a canonical type, use " + aliases[name]}
		}
		if name[len(name)-1] != ']' {
			return nil, &ParseError{Type: name, Reason: "unsupported arg type"}
		}
		return nil, err
	}
	elem, err := r.Lookup(elemName)
	if err != nil {
		return nil, err
	}
	t := &Type{Elem: elem, Width: elem.Width, stringKind: name}
	if dynamic {
		t.T = SliceTy
	} else {
		if elem.headSlots() > maxHeadSlots/length {
			return nil, &ParseError{Type: name, Reason: "array head size overflows"}
		}
		t.T, t.Length = ArrayTy, length
	}
	actual, loaded := r.types.LoadOrStore(name, t)
	if !loaded {
		log.Trace("Registered ABI type", "type", name, "category", actual.Category())
	}
	return actual, nil
}

// Len returns the number of registered descriptors.
func (r *TypeRegistry) Len() int {
	return r.types.Size()
}

func lookupTypes(r *TypeRegistry, names []string) ([]*Type, error) {
	types := make([]*Type, len(names))
	for i, name := range names {
		t, err := r.Lookup(name)
		if err != nil {
			return nil, err
		}
		types[i] = t
	}
	return types, nil
}
