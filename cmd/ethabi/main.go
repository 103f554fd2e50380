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

// ethabi is a command line tool for the Ethereum contract ABI: it computes
// function selectors, encodes and decodes parameter lists and resolves
// revert reasons.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/sunyihoo/go-ethabi/accounts/abi"
	"github.com/sunyihoo/go-ethabi/common/hexutil"
	"github.com/sunyihoo/go-ethabi/internal/debug"
	"github.com/sunyihoo/go-ethabi/internal/flags"
	"github.com/sunyihoo/go-ethabi/internal/version"
	"github.com/sunyihoo/go-ethabi/log"
	"github.com/urfave/cli/v2"
)

var (
	typesFlag = &cli.StringFlag{
		Name:     "types",
		Usage:    "Comma separated list of parameter types, e.g. uint256,address[]",
		Category: flags.CodecCategory,
	}
	methodFlag = &cli.StringFlag{
		Name:     "method",
		Usage:    "Function signature; its selector prefixes (or is expected in) the call data",
		Category: flags.CodecCategory,
	}
)

var (
	selectorCommand = &cli.Command{
		Action:    selectorCmd,
		Name:      "selector",
		Usage:     "Print the 4 byte selector of a function signature",
		ArgsUsage: "<signature>",
		Flags:     []cli.Flag{noPrefixFlag},
		Description: `
Computes keccak256 of the canonical signature and prints its first four bytes:

    ethabi selector 'baz(uint32,bool)'    # 0xcdcd77c0`,
	}
	encodeCommand = &cli.Command{
		Action:    encodeCmd,
		Name:      "encode",
		Usage:     "ABI encode a list of values",
		ArgsUsage: "<value> [<value>...]",
		Flags:     []cli.Flag{typesFlag, methodFlag, noPrefixFlag},
		Description: `
Encodes the values as an ordered parameter list. Numbers may be decimal or 0x
hex, bytes are 0x hex and array values are JSON arrays:

    ethabi encode --types uint256,string,bool[] 69 'Hello, world!' '[true,false]'
    ethabi encode --method 'transfer(address,uint256)' 0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed 100`,
	}
	decodeCommand = &cli.Command{
		Action:    decodeCmd,
		Name:      "decode",
		Usage:     "ABI decode hex data into one value per line",
		ArgsUsage: "<hex>",
		Flags:     []cli.Flag{typesFlag, methodFlag},
	}
	revertCommand = &cli.Command{
		Action:    revertCmd,
		Name:      "revert",
		Usage:     "Decode an Error(string) or Panic(uint256) revert reason",
		ArgsUsage: "<hex>",
	}
	dumpConfigCommand = &cli.Command{
		Action:    dumpConfig,
		Name:      "dumpconfig",
		Usage:     "Export configuration values in a TOML format",
		ArgsUsage: "<dumpfile (optional)>",
		Flags:     []cli.Flag{noPrefixFlag},
	}
	versionCommand = &cli.Command{
		Action: func(ctx *cli.Context) error {
			fmt.Fprint(ctx.App.Writer, version.Info())
			return nil
		},
		Name:  "version",
		Usage: "Print version numbers",
	}
)

func newApp() *cli.App {
	app := flags.NewApp("the Ethereum contract ABI codec")
	app.Flags = append([]cli.Flag{configFileFlag, paddingFlag}, debug.Flags...)
	app.Commands = []*cli.Command{
		selectorCommand,
		encodeCommand,
		decodeCommand,
		revertCommand,
		dumpConfigCommand,
		versionCommand,
	}
	migrate := app.Before
	app.Before = func(ctx *cli.Context) error {
		if err := migrate(ctx); err != nil {
			return err
		}
		cfg, err := loadBaseConfig(ctx)
		if err != nil {
			return err
		}
		return debug.Setup(ctx, cfg.Log)
	}
	app.After = func(ctx *cli.Context) error {
		debug.Exit()
		return nil
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func selectorCmd(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("need exactly one function signature")
	}
	cfg, err := loadBaseConfig(ctx)
	if err != nil {
		return err
	}
	sel, err := abi.FunctionSelector(ctx.Args().First(), cfg.Codec.HexPrefix)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, sel)
	return nil
}

// argumentTypes resolves the parameter list from --types or --method. The
// returned method is nil unless --method was given.
func argumentTypes(ctx *cli.Context) ([]*abi.Type, *abi.Method, error) {
	switch {
	case ctx.IsSet(typesFlag.Name) && ctx.IsSet(methodFlag.Name):
		return nil, nil, fmt.Errorf("flags --%s and --%s are mutually exclusive", typesFlag.Name, methodFlag.Name)
	case ctx.IsSet(methodFlag.Name):
		method, err := abi.NewMethodFromSignature(ctx.String(methodFlag.Name))
		if err != nil {
			return nil, nil, err
		}
		return method.Inputs.Types(), &method, nil
	case ctx.IsSet(typesFlag.Name):
		types, err := parseTypes(ctx.String(typesFlag.Name))
		return types, nil, err
	}
	return nil, nil, fmt.Errorf("one of --%s or --%s is required", typesFlag.Name, methodFlag.Name)
}

func encodeCmd(ctx *cli.Context) error {
	cfg, err := loadBaseConfig(ctx)
	if err != nil {
		return err
	}
	types, method, err := argumentTypes(ctx)
	if err != nil {
		return err
	}
	if ctx.NArg() != len(types) {
		return fmt.Errorf("expected %d values, got %d", len(types), ctx.NArg())
	}
	values := make([]interface{}, len(types))
	for i, t := range types {
		if values[i], err = parseArg(t, ctx.Args().Get(i)); err != nil {
			return fmt.Errorf("argument %d: %w", i, err)
		}
	}
	var data []byte
	if method != nil {
		data, err = method.Pack(values...)
	} else {
		data, err = encodeValues(types, values)
	}
	if err != nil {
		return err
	}
	log.Debug("Encoded ABI values", "values", len(values), "size", len(data))

	out := hexutil.Encode(data)
	if !cfg.Codec.HexPrefix {
		out = out[2:]
	}
	fmt.Fprintln(ctx.App.Writer, out)
	return nil
}

// encodeValues builds one encoder per value and lays them out in order.
func encodeValues(types []*abi.Type, values []interface{}) ([]byte, error) {
	encoders := make([]abi.Encoder, len(types))
	for i, t := range types {
		enc, err := abi.NewTypedEncoder(t, values[i])
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		encoders[i] = enc
	}
	return abi.Encode(encoders...)
}

func decodeCmd(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("need exactly one hex encoded input")
	}
	cfg, err := loadBaseConfig(ctx)
	if err != nil {
		return err
	}
	types, method, err := argumentTypes(ctx)
	if err != nil {
		return err
	}
	data, err := decodeHex(ctx.Args().First())
	if err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}
	if method != nil {
		if len(data) < len(method.ID) || !bytes.Equal(data[:len(method.ID)], method.ID) {
			return fmt.Errorf("call data does not start with selector %s of %s", hexutil.Encode(method.ID), method.Sig)
		}
		data = data[len(method.ID):]
	}
	values, err := abi.DecodeValues(types, data, abi.WithPadding(cfg.Codec.Padding))
	if err != nil {
		return err
	}
	log.Debug("Decoded ABI values", "values", len(values), "padding", cfg.Codec.Padding)
	for _, v := range values {
		fmt.Fprintln(ctx.App.Writer, formatValue(v))
	}
	return nil
}

func revertCmd(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("need exactly one hex encoded revert payload")
	}
	data, err := decodeHex(ctx.Args().First())
	if err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}
	reason, err := abi.UnpackRevert(data)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, reason)
	return nil
}
