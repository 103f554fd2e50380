package log

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

var errVmoduleSyntax = errors.New("expect comma-separated list of filename=N")

// GlogHandler is a log handler that mimics the filtering features of Google's
// glog logger: a global verbosity plus per source file overrides.
// GlogHandler 模仿 glog 的过滤功能：全局详细级别加上按源文件覆盖的级别。
type GlogHandler struct {
	origin slog.Handler

	level    atomic.Int32
	override atomic.Bool

	lock      sync.RWMutex
	patterns  []pattern
	siteCache map[uintptr]slog.Level
}

// NewGlogHandler creates a new handler which wraps h. The default verbosity
// is zero, so only info and above pass until Verbosity is called.
func NewGlogHandler(h slog.Handler) *GlogHandler {
	return &GlogHandler{origin: h}
}

type pattern struct {
	pattern *regexp.Regexp
	level   slog.Level
}

// Verbosity sets the glog verbosity ceiling.
// Verbosity 设置全局详细级别。
func (h *GlogHandler) Verbosity(level slog.Level) {
	h.level.Store(int32(level))
}

// Vmodule sets the per file verbosity pattern, e.g.
//
//	abi=5        (all files inside a package named abi)
//	abi/*=5      (all files inside abi and its sub packages)
//	decoder.go=5 (a single file)
//
// The number is a legacy verbosity level, see FromLegacyLevel.
// Vmodule 设置按文件的详细级别模式。
func (h *GlogHandler) Vmodule(ruleset string) error {
	var filter []pattern
	for _, rule := range strings.Split(ruleset, ",") {
		if len(rule) == 0 {
			continue
		}
		name, num, ok := strings.Cut(rule, "=")
		name, num = strings.TrimSpace(name), strings.TrimSpace(num)
		if !ok || name == "" || num == "" {
			return errVmoduleSyntax
		}
		lvl, err := strconv.Atoi(num)
		if err != nil {
			return errVmoduleSyntax
		}
		level := FromLegacyLevel(lvl)
		if level == LevelCrit {
			continue
		}
		matcher := ".*"
		for _, comp := range strings.Split(name, "/") {
			if comp == "*" {
				matcher += "(/.*)?"
			} else if comp != "" {
				matcher += "/" + regexp.QuoteMeta(comp)
			}
		}
		if !strings.HasSuffix(name, ".go") {
			matcher += "/[^/]+\\.go"
		}
		re, err := regexp.Compile(matcher + "$")
		if err != nil {
			return fmt.Errorf("%w: %v", errVmoduleSyntax, err)
		}
		filter = append(filter, pattern{re, level})
	}
	h.lock.Lock()
	defer h.lock.Unlock()

	h.patterns = filter
	h.siteCache = make(map[uintptr]slog.Level)
	h.override.Store(len(filter) != 0)
	return nil
}

// Enabled reports true whenever overrides exist, the real decision is taken
// per call site in Handle.
func (h *GlogHandler) Enabled(_ context.Context, lvl slog.Level) bool {
	return h.override.Load() || slog.Level(h.level.Load()) <= lvl
}

func (h *GlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h.lock.RLock()
	siteCache := maps.Clone(h.siteCache)
	patterns := append([]pattern{}, h.patterns...)
	h.lock.RUnlock()

	res := &GlogHandler{
		origin:    h.origin.WithAttrs(attrs),
		patterns:  patterns,
		siteCache: siteCache,
	}
	res.level.Store(h.level.Load())
	res.override.Store(h.override.Load())
	return res
}

func (h *GlogHandler) WithGroup(name string) slog.Handler {
	panic("not implemented")
}

// Handle forwards r when it passes either the global verbosity or the
// pattern matching its call site.
// Handle 当记录满足全局级别或调用位置匹配的模式时转发记录。
func (h *GlogHandler) Handle(_ context.Context, r slog.Record) error {
	if slog.Level(h.level.Load()) <= r.Level {
		return h.origin.Handle(context.Background(), r)
	}
	h.lock.RLock()
	lvl, ok := h.siteCache[r.PC]
	h.lock.RUnlock()

	if !ok {
		frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()

		h.lock.Lock()
		for _, rule := range h.patterns {
			if rule.pattern.MatchString("+" + frame.File) {
				lvl, ok = rule.level, true
			}
		}
		if !ok {
			// Nothing matched, only the global level applies.
			lvl = LevelCrit + 1
		}
		if h.siteCache != nil {
			h.siteCache[r.PC] = lvl
		}
		h.lock.Unlock()
	}
	if lvl <= r.Level {
		return h.origin.Handle(context.Background(), r)
	}
	return nil
}
