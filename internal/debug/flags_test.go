// Copyright 2025 The go-ethereum Authors
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

package debug

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/go-ethabi/log"
	"github.com/urfave/cli/v2"
)

func newContext(t *testing.T, args ...string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range Flags {
		require.NoError(t, f.Apply(set))
	}
	require.NoError(t, set.Parse(args))
	return cli.NewContext(cli.NewApp(), set, nil)
}

func restoreRoot(t *testing.T) {
	prev := log.Root()
	t.Cleanup(func() {
		Exit()
		log.SetDefault(prev)
	})
}

func TestConfigMerge(t *testing.T) {
	cfg := LogConfig{Verbosity: 2, Format: "logfmt", Vmodule: "abi=5"}

	merged := cfg.merge(newContext(t))
	require.Equal(t, cfg, merged)

	merged = cfg.merge(newContext(t, "--verbosity", "5", "--log.format", "json"))
	require.Equal(t, LogConfig{Verbosity: 5, Format: "json", Vmodule: "abi=5"}, merged)
}

func TestSetupFileJSON(t *testing.T) {
	restoreRoot(t)
	file := filepath.Join(t.TempDir(), "logs", "ethabi.log")

	ctx := newContext(t, "--log.file", file, "--log.format", "json")
	require.NoError(t, Setup(ctx, DefaultLogConfig))

	log.Debug("filtered by verbosity")
	log.Warn("Decoding failed", "type", "uint8")
	Exit()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	require.NotContains(t, string(data), "filtered by verbosity")

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	last := lines[len(lines)-1]
	require.Contains(t, last, `"lvl":"warn"`)
	require.Contains(t, last, `"msg":"Decoding failed"`)
	require.Contains(t, last, `"type":"uint8"`)
}

func TestSetupRotate(t *testing.T) {
	restoreRoot(t)
	file := filepath.Join(t.TempDir(), "rotated.log")

	cfg := LogConfig{Verbosity: 5, Format: "logfmt", File: file, Rotate: true}
	require.NoError(t, Setup(newContext(t), cfg))
	log.Trace("Allocated encode buffer", "size", 64)
	Exit()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	require.True(t, bytes.Contains(data, []byte("lvl=trace")), "log file: %s", data)
}

func TestSetupErrors(t *testing.T) {
	restoreRoot(t)

	err := Setup(newContext(t, "--log.format", "xml"), DefaultLogConfig)
	require.ErrorContains(t, err, "unknown log format")

	err = Setup(newContext(t, "--log.vmodule", "abi"), DefaultLogConfig)
	require.ErrorContains(t, err, "invalid log.vmodule")
}

func TestCPUProfile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "cpu.prof")
	require.NoError(t, Handler.StartCPUProfile(file))
	require.Error(t, Handler.StartCPUProfile(file))
	require.NoError(t, Handler.StopCPUProfile())
	require.Error(t, Handler.StopCPUProfile())

	info, err := os.Stat(file)
	require.NoError(t, err)
	require.False(t, info.IsDir())
}
