package logger

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
)

const tagKey = "tag" // The slog attribute key used for filtering tags

// filteringHandler wraps a base slog.Handler to add tag, package and file filtering.
type filteringHandler struct {
	baseHandler slog.Handler
	cfg         *Config // Reference to processed config
}

func newFilteringHandler(base slog.Handler, cfg *Config) *filteringHandler {
	return &filteringHandler{
		baseHandler: base,
		cfg:         cfg,
	}
}

func (h *filteringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.baseHandler.Enabled(ctx, level)
}

// Handle drops the record if any filter rejects it, else forwards it.
func (h *filteringHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.cfg == nil {
		return h.baseHandler.Handle(ctx, r)
	}

	var pkg, file string
	if r.PC != 0 {
		frames := runtime.CallersFrames([]uintptr{r.PC})
		frame, _ := frames.Next()
		if frame.File != "" {
			file = strings.ToLower(filepath.Base(frame.File))
			pkg = strings.ToLower(filepath.Base(filepath.Dir(frame.File)))
		}
	}

	if pkg != "" && !h.cfg.packages.allows(pkg) {
		return nil
	}
	if file != "" && !h.cfg.files.allows(file) {
		return nil
	}

	tag := recordTag(r)
	if tag == "" && h.cfg.tags.active() {
		return nil
	}
	if tag != "" && !h.cfg.tags.allows(tag) {
		return nil
	}
	return h.baseHandler.Handle(ctx, r)
}

func recordTag(r slog.Record) string {
	var tag string
	r.Attrs(func(a slog.Attr) bool {
		if a.Key != tagKey {
			return true
		}
		tag = strings.ToLower(a.Value.String())
		return false
	})
	return tag
}

func (h *filteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newFilteringHandler(h.baseHandler.WithAttrs(attrs), h.cfg)
}

func (h *filteringHandler) WithGroup(name string) slog.Handler {
	return newFilteringHandler(h.baseHandler.WithGroup(name), h.cfg)
}
