package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"reflect"
	"runtime"
	"sync"
	"time"

	"github.com/holiman/uint256"
	"github.com/sunyihoo/go-ethabi/common/hexutil"
)

type discardHandler struct{}

// DiscardHandler returns a no-op handler.
// DiscardHandler 返回一个无操作处理器。
func DiscardHandler() slog.Handler {
	return &discardHandler{}
}

func (h *discardHandler) Handle(_ context.Context, r slog.Record) error { return nil }
func (h *discardHandler) Enabled(_ context.Context, _ slog.Level) bool { return false }
func (h *discardHandler) WithGroup(name string) slog.Handler { panic("not implemented") }
func (h *discardHandler) WithAttrs(attrs []slog.Attr) slog.Handler { return &discardHandler{} }

// TerminalHandler formats records for human readability on a terminal,
// with optional colours and column aligned attributes, e.g.
//
//	INFO [06-01|12:40:21.081] Encoded ABI arguments     args=2 size=96
//
// TerminalHandler 将日志记录格式化为便于在终端阅读的形式。
type TerminalHandler struct {
	mu       sync.Mutex
	wr       io.Writer
	lvl      slog.Level
	useColor bool
	attrs    []slog.Attr

	// fieldPadding remembers the widest value seen per key so that
	// consecutive lines line up.
	fieldPadding map[string]int

	buf []byte
}

// NewTerminalHandler returns a handler which writes every record to wr.
func NewTerminalHandler(wr io.Writer, useColor bool) *TerminalHandler {
	return NewTerminalHandlerWithLevel(wr, levelMaxVerbosity, useColor)
}

// NewTerminalHandlerWithLevel returns a handler which drops records below lvl.
// NewTerminalHandlerWithLevel 返回丢弃低于 lvl 级别记录的处理器。
func NewTerminalHandlerWithLevel(wr io.Writer, lvl slog.Level, useColor bool) *TerminalHandler {
	return &TerminalHandler{
		wr:           wr,
		lvl:          lvl,
		useColor:     useColor,
		fieldPadding: make(map[string]int),
	}
}

func (h *TerminalHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	buf := h.format(h.buf, r, h.useColor)
	h.wr.Write(buf)
	h.buf = buf[:0]
	return nil
}

// source renders the call site of a record as file:line.
func (h *TerminalHandler) source(r slog.Record) string {
	f, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
	return fmt.Sprintf("%s:%d", f.File, f.Line)
}

func (h *TerminalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.lvl
}

func (h *TerminalHandler) WithGroup(name string) slog.Handler {
	panic("not implemented")
}

func (h *TerminalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TerminalHandler{
		wr:           h.wr,
		lvl:          h.lvl,
		useColor:     h.useColor,
		attrs:        append(append([]slog.Attr{}, h.attrs...), attrs...),
		fieldPadding: make(map[string]int),
	}
}

type leveler struct{ minLevel slog.Level }

func (l *leveler) Level() slog.Level { return l.minLevel }

// JSONHandler returns a handler which prints records in JSON format.
// JSONHandler 返回以 JSON 格式输出记录的处理器。
func JSONHandler(wr io.Writer) slog.Handler {
	return JSONHandlerWithLevel(wr, levelMaxVerbosity)
}

// JSONHandlerWithLevel returns a JSON handler which drops records below level.
func JSONHandlerWithLevel(wr io.Writer, level slog.Level) slog.Handler {
	return slog.NewJSONHandler(wr, &slog.HandlerOptions{
		ReplaceAttr: builtinReplaceJSON,
		Level:       &leveler{level},
	})
}

// LogfmtHandler returns a handler which prints records in logfmt format.
// LogfmtHandler 返回以 logfmt 格式输出记录的处理器。
func LogfmtHandler(wr io.Writer) slog.Handler {
	return LogfmtHandlerWithLevel(wr, levelMaxVerbosity)
}

// LogfmtHandlerWithLevel returns a logfmt handler which drops records below level.
func LogfmtHandlerWithLevel(wr io.Writer, level slog.Level) slog.Handler {
	return slog.NewTextHandler(wr, &slog.HandlerOptions{
		ReplaceAttr: builtinReplaceLogfmt,
		Level:       &leveler{level},
	})
}

func builtinReplaceLogfmt(_ []string, attr slog.Attr) slog.Attr {
	return builtinReplace(nil, attr, true)
}

func builtinReplaceJSON(_ []string, attr slog.Attr) slog.Attr {
	return builtinReplace(nil, attr, false)
}

// builtinReplace renames the time and level keys and turns the value types
// this module logs a lot (big integers, raw calldata) into strings.
// builtinReplace 重命名时间和级别键，并将大整数和原始字节转换为字符串。
func builtinReplace(_ []string, attr slog.Attr, logfmt bool) slog.Attr {
	switch attr.Key {
	case slog.TimeKey:
		if attr.Value.Kind() == slog.KindTime {
			if logfmt {
				return slog.String("t", attr.Value.Time().Format(timeFormat))
			}
			return slog.Attr{Key: "t", Value: attr.Value}
		}
	case slog.LevelKey:
		if l, ok := attr.Value.Any().(slog.Level); ok {
			return slog.Any("lvl", LevelString(l))
		}
	}

	switch v := attr.Value.Any().(type) {
	case time.Time:
		if logfmt {
			attr = slog.String(attr.Key, v.Format(timeFormat))
		}
	case *big.Int:
		if v == nil {
			attr.Value = slog.StringValue("<nil>")
		} else {
			attr.Value = slog.StringValue(v.String())
		}
	case *uint256.Int:
		if v == nil {
			attr.Value = slog.StringValue("<nil>")
		} else {
			attr.Value = slog.StringValue(v.Dec())
		}
	case []byte:
		attr.Value = slog.StringValue(hexutil.Encode(v))
	case fmt.Stringer:
		if v == nil || (reflect.ValueOf(v).Kind() == reflect.Pointer && reflect.ValueOf(v).IsNil()) {
			attr.Value = slog.StringValue("<nil>")
		} else {
			attr.Value = slog.StringValue(v.String())
		}
	}
	return attr
}
