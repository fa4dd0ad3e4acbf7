// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/plan-systems/klog"
)

// klogHandler forwards library records at or above min to klog. Debug
// records go to verbosity level 2, so they also need -v=2.
type klogHandler struct {
	min   slog.Level
	attrs []slog.Attr
}

func newKlogHandler(min slog.Level) *klogHandler { return &klogHandler{min: min} }

func (h *klogHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.min
}

func (h *klogHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Message)
	write := func(a slog.Attr) bool {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
		return true
	}
	for _, a := range h.attrs {
		write(a)
	}
	r.Attrs(write)

	switch {
	case r.Level >= slog.LevelError:
		klog.Errorf("%s", b.String())
	case r.Level >= slog.LevelWarn:
		klog.Warningf("%s", b.String())
	case r.Level >= slog.LevelInfo:
		klog.Infof("%s", b.String())
	default:
		klog.V(2).Infof("%s", b.String())
	}
	return nil
}

func (h *klogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &klogHandler{min: h.min, attrs: append(append([]slog.Attr(nil), h.attrs...), attrs...)}
}

// Groups are flattened.
func (h *klogHandler) WithGroup(string) slog.Handler { return h }
