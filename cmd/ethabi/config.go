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
	"bufio"
	"errors"
	"fmt"
	"os"
	"reflect"
	"unicode"

	"github.com/naoina/toml"
	"github.com/sunyihoo/go-ethabi/accounts/abi"
	"github.com/sunyihoo/go-ethabi/internal/debug"
	"github.com/sunyihoo/go-ethabi/internal/flags"
	"github.com/urfave/cli/v2"
)

var (
	configFileFlag = &cli.StringFlag{
		Name:     "config",
		Usage:    "TOML configuration file",
		Category: flags.CodecCategory,
	}
	paddingFlag = &cli.StringFlag{
		Name:     "padding",
		Usage:    "Padding verification when decoding (lenient|strict|ignore)",
		Category: flags.CodecCategory,
	}
	noPrefixFlag = &cli.BoolFlag{
		Name:     "noprefix",
		Usage:    "Print hex output without the 0x prefix",
		Category: flags.CodecCategory,
	}
)

// These settings ensure that TOML keys use the same names as Go struct fields.
// 这些设置确保 TOML 键与 Go 结构体字段名称一致。
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		var link string
		if unicode.IsUpper(rune(rt.Name()[0])) && rt.PkgPath() != "main" {
			link = fmt.Sprintf(", see https://godoc.org/%s#%s for available fields", rt.PkgPath(), rt.Name())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, rt.String(), link)
	},
}

// codecConfig holds the encoding and decoding defaults of the tool.
type codecConfig struct {
	Padding   abi.PaddingMode
	HexPrefix bool
}

type ethabiConfig struct {
	Codec codecConfig
	Log   debug.LogConfig
}

func defaultConfig() ethabiConfig {
	return ethabiConfig{
		Codec: codecConfig{Padding: abi.PaddingLenient, HexPrefix: true},
		Log:   debug.DefaultLogConfig,
	}
}

func loadConfig(file string, cfg *ethabiConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// loadBaseConfig loads the configuration file named by --config on top of
// the defaults, then applies the codec flags.
// loadBaseConfig 在默认值之上加载配置文件，然后应用编解码相关的标志。
func loadBaseConfig(ctx *cli.Context) (ethabiConfig, error) {
	cfg := defaultConfig()
	if file := ctx.String(configFileFlag.Name); file != "" {
		if err := loadConfig(flags.ExpandPath(file), &cfg); err != nil {
			return cfg, err
		}
	}
	if ctx.IsSet(paddingFlag.Name) {
		mode, err := abi.ParsePaddingMode(ctx.String(paddingFlag.Name))
		if err != nil {
			return cfg, err
		}
		cfg.Codec.Padding = mode
	}
	if ctx.Bool(noPrefixFlag.Name) {
		cfg.Codec.HexPrefix = false
	}
	return cfg, nil
}

// dumpConfig is the dumpconfig command.
func dumpConfig(ctx *cli.Context) error {
	cfg, err := loadBaseConfig(ctx)
	if err != nil {
		return err
	}
	out, err := tomlSettings.Marshal(&cfg)
	if err != nil {
		return err
	}
	dump := ctx.App.Writer
	if ctx.NArg() > 0 {
		f, err := os.OpenFile(ctx.Args().Get(0), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		dump = f
	}
	_, err = dump.Write(out)
	return err
}
