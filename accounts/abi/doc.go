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

// Package abi implements the Ethereum contract ABI (Application Binary
// Interface) for elementary and array types.
//
// Values are bound to their types with NewEncoder and laid out as an ordered
// parameter list with Encode: every value owns one 32 byte head slot (or N of
// them for a fixed array T[N]) and dynamic values (string, bytes, T[]) store in
// that slot the absolute offset of their payload in the trailing data area.
// Decoding mirrors this through a DecodeBuffer built from the expected types.
//
// Arrays whose elements are themselves dynamic are written sequentially in
// place, without the nested offset table of the full ABI specification.
// abi 包实现了以太坊合约 ABI 中基本类型和数组类型的编码与解码。
//
// 元素本身为动态类型的数组按顺序原地编码，不生成完整 ABI 规范中的嵌套偏移表。
package abi
