// Copyright (c) 2025, Cadkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"time"
)

// Handler is a [slog.Handler] that produces compact, optionally
// colored console output of the form:
//
//	15:04:05 WARN  message key=value
//
// The level gate is the dynamic [UserLevel] variable, so changing
// it at runtime changes what the default logger emits.
type Handler struct {
	w     io.Writer
	mu    *sync.Mutex
	goas  []groupOrAttrs
	attrs string
}

// groupOrAttrs holds either a group name or a set of attrs,
// preserving the order in which WithGroup and WithAttrs were
// called, per the slog handler contract.
type groupOrAttrs struct {
	group string
	attrs []slog.Attr
}

// NewHandler returns a new [Handler] writing to the given writer.
func NewHandler(w io.Writer) *Handler {
	return &Handler{w: w, mu: &sync.Mutex{}}
}

// SetDefaultLogger sets the default [slog] logger to one using
// a [Handler] writing to [os.Stderr]. Apps call this once at
// startup; libraries never call it.
func SetDefaultLogger() {
	slog.SetDefault(slog.New(NewHandler(os.Stderr)))
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= UserLevel
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return h.withGroupOrAttrs(groupOrAttrs{group: name})
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	return h.withGroupOrAttrs(groupOrAttrs{attrs: attrs})
}

func (h *Handler) withGroupOrAttrs(goa groupOrAttrs) *Handler {
	h2 := *h
	h2.goas = make([]groupOrAttrs, len(h.goas)+1)
	copy(h2.goas, h.goas)
	h2.goas[len(h2.goas)-1] = goa
	return &h2
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	buf := make([]byte, 0, 128)
	if !r.Time.IsZero() {
		buf = append(buf, DebugColor(r.Time.Format(time.TimeOnly))...)
		buf = append(buf, ' ')
	}
	label := r.Level.String()
	for len(label) < 5 {
		label += " "
	}
	buf = append(buf, LevelColor(r.Level, label)...)
	buf = append(buf, ' ')
	buf = append(buf, r.Message...)

	goas := h.goas
	if r.NumAttrs() == 0 {
		// trailing empty groups contribute nothing
		for len(goas) > 0 && goas[len(goas)-1].group != "" {
			goas = goas[:len(goas)-1]
		}
	}
	prefix := ""
	for _, goa := range goas {
		if goa.group != "" {
			prefix += goa.group + "."
		} else {
			for _, a := range goa.attrs {
				buf = h.appendAttr(buf, prefix, a)
			}
		}
	}
	r.Attrs(func(a slog.Attr) bool {
		buf = h.appendAttr(buf, prefix, a)
		return true
	})
	buf = append(buf, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf)
	return err
}

func (h *Handler) appendAttr(buf []byte, prefix string, a slog.Attr) []byte {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return buf
	}
	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			buf = h.appendAttr(buf, prefix, ga)
		}
		return buf
	}
	buf = append(buf, ' ')
	buf = append(buf, DebugColor(prefix+a.Key+"=")...)
	switch a.Value.Kind() {
	case slog.KindString:
		buf = append(buf, strconv.Quote(a.Value.String())...)
	case slog.KindTime:
		buf = append(buf, a.Value.Time().Format(time.RFC3339)...)
	default:
		buf = fmt.Append(buf, a.Value.Any())
	}
	return buf
}
