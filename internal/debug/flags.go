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

package debug

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/sunyihoo/go-ethabi/internal/flags"
	"github.com/sunyihoo/go-ethabi/log"
	"github.com/urfave/cli/v2"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	verbosityFlag = &cli.IntFlag{
		Name:     "verbosity",
		Usage:    "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		Value:    3,
		Category: flags.LoggingCategory,
	}
	logVmoduleFlag = &cli.StringFlag{
		Name:     "log.vmodule",
		Usage:    "Per-module verbosity: comma-separated list of <pattern>=<level> (e.g. abi/*=5)",
		Value:    "",
		Category: flags.LoggingCategory,
	}
	logFormatFlag = &cli.StringFlag{
		Name:     "log.format",
		Usage:    "Log format to use (json|logfmt|terminal)",
		Category: flags.LoggingCategory,
	}
	logFileFlag = &cli.StringFlag{
		Name:     "log.file",
		Usage:    "Write logs to a file",
		Category: flags.LoggingCategory,
	}
	logRotateFlag = &cli.BoolFlag{
		Name:     "log.rotate",
		Usage:    "Enables log file rotation",
		Category: flags.LoggingCategory,
	}
	logMaxSizeMBsFlag = &cli.IntFlag{
		Name:     "log.maxsize",
		Usage:    "Maximum size in MBs of a single log file",
		Value:    100,
		Category: flags.LoggingCategory,
	}
	logMaxBackupsFlag = &cli.IntFlag{
		Name:     "log.maxbackups",
		Usage:    "Maximum number of log files to retain",
		Value:    10,
		Category: flags.LoggingCategory,
	}
	logMaxAgeFlag = &cli.IntFlag{
		Name:     "log.maxage",
		Usage:    "Maximum number of days to retain a log file",
		Value:    30,
		Category: flags.LoggingCategory,
	}
	logCompressFlag = &cli.BoolFlag{
		Name:     "log.compress",
		Usage:    "Compress the log files",
		Value:    false,
		Category: flags.LoggingCategory,
	}
	cpuprofileFlag = &cli.StringFlag{
		Name:     "pprof.cpuprofile",
		Usage:    "Write CPU profile to the given file",
		Category: flags.LoggingCategory,
	}
	traceFlag = &cli.StringFlag{
		Name:     "go-execution-trace",
		Usage:    "Write Go execution trace to the given file",
		Category: flags.LoggingCategory,
	}
)

// Flags holds all command-line flags required for debugging.
// Flags 包含调试所需的所有命令行标志。
var Flags = []cli.Flag{
	verbosityFlag,
	logVmoduleFlag,
	logFormatFlag,
	logFileFlag,
	logRotateFlag,
	logMaxSizeMBsFlag,
	logMaxBackupsFlag,
	logMaxAgeFlag,
	logCompressFlag,
	cpuprofileFlag,
	traceFlag,
}

// LogConfig is the logging section of the ethabi configuration file.
// Command line flags take precedence over its values.
// LogConfig 是 ethabi 配置文件中的日志部分，命令行标志优先于其值。
type LogConfig struct {
	Verbosity int
	Vmodule   string `toml:",omitempty"`
	Format    string `toml:",omitempty"`
	File      string `toml:",omitempty"`
	Rotate    bool   `toml:",omitempty"`
}

// DefaultLogConfig contains the flag defaults.
var DefaultLogConfig = LogConfig{
	Verbosity: verbosityFlag.Value,
}

// merge overrides the configured values with the flags set on the command line.
func (c LogConfig) merge(ctx *cli.Context) LogConfig {
	if ctx.IsSet(verbosityFlag.Name) {
		c.Verbosity = ctx.Int(verbosityFlag.Name)
	}
	if ctx.IsSet(logVmoduleFlag.Name) {
		c.Vmodule = ctx.String(logVmoduleFlag.Name)
	}
	if ctx.IsSet(logFormatFlag.Name) {
		c.Format = ctx.String(logFormatFlag.Name)
	}
	if ctx.IsSet(logFileFlag.Name) {
		c.File = ctx.String(logFileFlag.Name)
	}
	if ctx.IsSet(logRotateFlag.Name) {
		c.Rotate = ctx.Bool(logRotateFlag.Name)
	}
	return c
}

var (
	glogger       *log.GlogHandler
	logOutputFile io.WriteCloser
)

func init() {
	glogger = log.NewGlogHandler(log.NewTerminalHandler(os.Stderr, false))
}

// Setup initializes profiling and logging based on the CLI flags layered on
// top of cfg. It should be called as early as possible in the program.
// Setup 基于命令行标志和 cfg 初始化性能分析与日志，应尽早调用。
func Setup(ctx *cli.Context, cfg LogConfig) error {
	cfg = cfg.merge(ctx)

	var (
		handler        slog.Handler
		terminalOutput = io.Writer(os.Stderr)
		output         io.Writer
	)
	if len(cfg.File) > 0 {
		if err := validateLogLocation(filepath.Dir(cfg.File)); err != nil {
			return fmt.Errorf("failed to initialize file logger: %v", err)
		}
	}
	context := []interface{}{"rotate", cfg.Rotate}
	if len(cfg.Format) > 0 {
		context = append(context, "format", cfg.Format)
	} else {
		context = append(context, "format", "terminal")
	}
	if cfg.Rotate {
		// Lumberjack uses <processname>-lumberjack.log in os.TempDir() when
		// no file name is given.
		filename := cfg.File
		if filename == "" {
			filename = filepath.Join(os.TempDir(), "ethabi-lumberjack.log")
		}
		context = append(context, "location", filename)
		logOutputFile = &lumberjack.Logger{
			Filename:   filename,
			MaxSize:    ctx.Int(logMaxSizeMBsFlag.Name),
			MaxBackups: ctx.Int(logMaxBackupsFlag.Name),
			MaxAge:     ctx.Int(logMaxAgeFlag.Name),
			Compress:   ctx.Bool(logCompressFlag.Name),
		}
		output = io.MultiWriter(terminalOutput, logOutputFile)
	} else if cfg.File != "" {
		var err error
		if logOutputFile, err = os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644); err != nil {
			return err
		}
		output = io.MultiWriter(logOutputFile, terminalOutput)
		context = append(context, "location", cfg.File)
	} else {
		output = terminalOutput
	}

	switch cfg.Format {
	case "json":
		handler = log.JSONHandler(output)
	case "logfmt":
		handler = log.LogfmtHandler(output)
	case "", "terminal":
		useColor := (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
		if useColor {
			terminalOutput = colorable.NewColorableStderr()
			if logOutputFile != nil {
				output = io.MultiWriter(logOutputFile, terminalOutput)
			} else {
				output = terminalOutput
			}
		}
		handler = log.NewTerminalHandler(output, useColor)
	default:
		return fmt.Errorf("unknown log format: %v", cfg.Format)
	}

	glogger = log.NewGlogHandler(handler)
	glogger.Verbosity(log.FromLegacyLevel(cfg.Verbosity))
	if err := glogger.Vmodule(cfg.Vmodule); err != nil {
		return fmt.Errorf("invalid log.vmodule %q: %w", cfg.Vmodule, err)
	}
	log.SetDefault(log.NewLogger(glogger))

	if traceFile := ctx.String(traceFlag.Name); traceFile != "" {
		if err := Handler.StartGoTrace(traceFile); err != nil {
			return err
		}
	}
	if cpuFile := ctx.String(cpuprofileFlag.Name); cpuFile != "" {
		if err := Handler.StartCPUProfile(cpuFile); err != nil {
			return err
		}
	}
	if len(cfg.File) > 0 || cfg.Rotate {
		log.Info("Logging configured", context...)
	}
	return nil
}

// Exit stops all running profiles, flushing their output to the
// respective file.
// Exit 停止所有正在运行的性能分析并关闭日志文件。
func Exit() {
	Handler.StopCPUProfile()
	Handler.StopGoTrace()
	if logOutputFile != nil {
		logOutputFile.Close()
		logOutputFile = nil
	}
}

func validateLogLocation(path string) error {
	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		return fmt.Errorf("error creating the directory: %w", err)
	}
	// Check if the path is writable by trying to create a temporary file
	tmp := filepath.Join(path, "tmp")
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	f.Close()
	return os.Remove(tmp)
}
