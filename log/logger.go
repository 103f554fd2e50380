package log

import (
	"context"
	"log/slog"
	"math"
	"os"
	"runtime"
	"strings"
	"sync/atomic"
	"time"
)

const errorKey = "LOG_ERROR"

// Legacy verbosity numbers, as accepted by --verbosity and --vmodule.
// 旧版详细级别数字，供 --verbosity 和 --vmodule 使用。
const (
	legacyLevelCrit = iota
	legacyLevelError
	legacyLevelWarn
	legacyLevelInfo
	legacyLevelDebug
	legacyLevelTrace
)

const (
	levelMaxVerbosity slog.Level = math.MinInt
	LevelTrace        slog.Level = -8
	LevelDebug                   = slog.LevelDebug
	LevelInfo                    = slog.LevelInfo
	LevelWarn                    = slog.LevelWarn
	LevelError                   = slog.LevelError
	LevelCrit         slog.Level = 12
)

// FromLegacyLevel converts a legacy verbosity number (0 = crit ... 5 = trace)
// into an slog level. Out of range values are clamped.
// FromLegacyLevel 将旧版详细级别数字转换为 slog 级别，超出范围的值会被截断。
func FromLegacyLevel(lvl int) slog.Level {
	switch {
	case lvl <= legacyLevelCrit:
		return LevelCrit
	case lvl == legacyLevelError:
		return LevelError
	case lvl == legacyLevelWarn:
		return LevelWarn
	case lvl == legacyLevelInfo:
		return LevelInfo
	case lvl == legacyLevelDebug:
		return LevelDebug
	}
	return LevelTrace
}

// LevelFromString parses a level name such as "info" or "TRACE".
// LevelFromString 解析级别名称，例如 "info" 或 "TRACE"。
func LevelFromString(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace, true
	case "debug":
		return LevelDebug, true
	case "info":
		return LevelInfo, true
	case "warn", "warning":
		return LevelWarn, true
	case "error":
		return LevelError, true
	case "crit", "critical":
		return LevelCrit, true
	}
	return LevelInfo, false
}

// LevelAlignedString returns the five character wide name used by the
// terminal handler.
func LevelAlignedString(l slog.Level) string {
	switch l {
	case LevelTrace:
		return "TRACE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO "
	case LevelWarn:
		return "WARN "
	case LevelError:
		return "ERROR"
	case LevelCrit:
		return "CRIT "
	}
	return "unknown level"
}

// LevelString returns the lower case name of a level.
// LevelString 返回级别的小写名称。
func LevelString(l slog.Level) string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelCrit:
		return "crit"
	}
	return "unknown"
}

// Logger writes key/value pairs to a Handler.
// Logger 将键值对写入处理器。
type Logger interface {
	// With returns a new Logger that has this logger's attributes plus the given ones.
	With(ctx ...interface{}) Logger

	// New is an alias of With.
	New(ctx ...interface{}) Logger

	Log(level slog.Level, msg string, ctx ...interface{})
	Trace(msg string, ctx ...interface{})
	Debug(msg string, ctx ...interface{})
	Info(msg string, ctx ...interface{})
	Warn(msg string, ctx ...interface{})
	Error(msg string, ctx ...interface{})

	// Crit logs at the critical level and terminates the process.
	// Crit 以严重级别记录日志并终止进程。
	Crit(msg string, ctx ...interface{})

	Write(level slog.Level, msg string, attrs ...any)
	Enabled(ctx context.Context, level slog.Level) bool
	Handler() slog.Handler
}

type logger struct {
	inner *slog.Logger
}

// NewLogger returns a logger with the specified handler set.
func NewLogger(h slog.Handler) Logger {
	return &logger{slog.New(h)}
}

func (l *logger) Handler() slog.Handler {
	return l.inner.Handler()
}

func (l *logger) Write(level slog.Level, msg string, attrs ...any) {
	if !l.inner.Enabled(context.Background(), level) {
		return
	}
	// Skip runtime.Callers, Write and the level helper.
	// 跳过 runtime.Callers、Write 以及级别辅助函数。
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])

	if len(attrs)%2 != 0 {
		attrs = append(attrs, nil, errorKey, "Normalized odd number of arguments by adding nil")
	}
	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	r.Add(attrs...)
	l.inner.Handler().Handle(context.Background(), r)
}

func (l *logger) Log(level slog.Level, msg string, attrs ...any) { l.Write(level, msg, attrs...) }
func (l *logger) With(ctx ...interface{}) Logger { return &logger{l.inner.With(ctx...)} }
func (l *logger) New(ctx ...interface{}) Logger { return l.With(ctx...) }

func (l *logger) Enabled(ctx context.Context, level slog.Level) bool {
	return l.inner.Enabled(ctx, level)
}

func (l *logger) Trace(msg string, ctx ...interface{}) { l.Write(LevelTrace, msg, ctx...) }
func (l *logger) Debug(msg string, ctx ...interface{}) { l.Write(LevelDebug, msg, ctx...) }
func (l *logger) Info(msg string, ctx ...interface{}) { l.Write(LevelInfo, msg, ctx...) }
func (l *logger) Warn(msg string, ctx ...interface{}) { l.Write(LevelWarn, msg, ctx...) }
func (l *logger) Error(msg string, ctx ...interface{}) { l.Write(LevelError, msg, ctx...) }

func (l *logger) Crit(msg string, ctx ...interface{}) {
	l.Write(LevelCrit, msg, ctx...)
	os.Exit(1)
}

// root is the package wide logger, discarding everything until SetDefault
// is called by the command line tool.
// root 是包级日志记录器，在命令行工具调用 SetDefault 之前丢弃所有输出。
var root atomic.Value

func init() {
	root.Store(&logger{slog.New(DiscardHandler())})
}

// SetDefault replaces the root logger. If l wraps an slog.Logger, it also
// becomes the slog default.
func SetDefault(l Logger) {
	root.Store(l)
	if lg, ok := l.(*logger); ok {
		slog.SetDefault(lg.inner)
	}
}

// Root returns the root logger.
func Root() Logger {
	return root.Load().(Logger)
}

// The functions below write to the root logger. They are defined separately
// from the Logger methods so the caller depth seen by Write stays the same.
// 以下函数写入根日志记录器。

func Trace(msg string, ctx ...interface{}) { Root().Write(LevelTrace, msg, ctx...) }
func Debug(msg string, ctx ...interface{}) { Root().Write(LevelDebug, msg, ctx...) }
func Info(msg string, ctx ...interface{}) { Root().Write(LevelInfo, msg, ctx...) }
func Warn(msg string, ctx ...interface{}) { Root().Write(LevelWarn, msg, ctx...) }
func Error(msg string, ctx ...interface{}) { Root().Write(LevelError, msg, ctx...) }

func Crit(msg string, ctx ...interface{}) {
	Root().Write(LevelCrit, msg, ctx...)
	os.Exit(1)
}

// New returns a child of the root logger carrying the given attributes.
func New(ctx ...interface{}) Logger {
	return Root().With(ctx...)
}
