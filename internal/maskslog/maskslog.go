// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package maskslog provides a slog.Handler which hides the values of
// secret looking configuration keys.
package maskslog

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// Mask replaces every masked value.
const Mask = "****"

// DefaultMarkers are the key fragments treated as secret by default.
var DefaultMarkers = []string{"PASSWORD", "SECRET", "TOKEN", "KEY", "CREDENTIAL"}

type options struct {
	keyAttr   string
	valueAttr string
	markers   []string
}

// Option helps configure the Handler.
type Option interface {
	applyOption(*options)
}

type optionFunc func(*options)

func (f optionFunc) applyOption(opts *options) {
	f(opts)
}

// KeyAttr names the attribute holding the configuration key. Defaults to "key".
func KeyAttr(name string) Option {
	return optionFunc(func(o *options) {
		o.keyAttr = name
	})
}

// ValueAttr names the attribute which is masked. Defaults to "value".
func ValueAttr(name string) Option {
	return optionFunc(func(o *options) {
		o.valueAttr = name
	})
}

// Markers replaces the key fragments which mark a key as secret.
// Matching ignores letter case.
func Markers(markers ...string) Option {
	return optionFunc(func(o *options) {
		o.markers = markers
	})
}

var attrPool = &sync.Pool{
	New: func() any {
		s := make([]slog.Attr, 0, 5)
		return &s
	},
}

// Handler is an slog.Handler.
type Handler struct {
	slog slog.Handler
	opts *options

	// secret is true once a secret key attr has been bound with WithAttrs.
	secret bool
}

// NewHandler returns a new Handler.
func NewHandler(h slog.Handler, opts ...Option) *Handler {
	o := &options{
		keyAttr:   "key",
		valueAttr: "value",
		markers:   DefaultMarkers,
	}
	for _, opt := range opts {
		opt.applyOption(o)
	}
	markers := make([]string, len(o.markers))
	for i, m := range o.markers {
		markers[i] = strings.ToUpper(m)
	}
	o.markers = markers
	return &Handler{
		slog: h,
		opts: o,
	}
}

// IsSecret reports whether key contains one of the DefaultMarkers.
func IsSecret(key string) bool {
	return containsMarker(key, DefaultMarkers)
}

// IsSecret reports whether key contains one of the configured markers.
func (h *Handler) IsSecret(key string) bool {
	return containsMarker(key, h.opts.markers)
}

func containsMarker(key string, markers []string) bool {
	key = strings.ToUpper(key)
	for _, m := range markers {
		if strings.Contains(key, m) {
			return true
		}
	}
	return false
}

// Enabled implements the slog.Handler interface.
func (h *Handler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return h.slog.Enabled(ctx, lvl)
}

// Handle implements the slog.Handler interface.
func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	secret := h.secret
	record.Attrs(func(a slog.Attr) bool {
		if a.Key == h.opts.keyAttr && h.IsSecret(a.Value.String()) {
			secret = true
			return false
		}
		return true
	})
	if !secret {
		return h.slog.Handle(ctx, record)
	}
	return h.slog.Handle(ctx, h.mask(record))
}

func (h *Handler) mask(r slog.Record) slog.Record {
	attrs := attrPool.Get().(*[]slog.Attr)
	defer func() {
		*attrs = (*attrs)[:0]
		attrPool.Put(attrs)
	}()

	r.Attrs(func(a slog.Attr) bool {
		if a.Key == h.opts.valueAttr {
			a = slog.String(a.Key, Mask)
		}
		*attrs = append(*attrs, a)
		return true
	})

	nr := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	nr.AddAttrs(*attrs...)
	return nr
}

// WithAttrs implements the slog.Handler interface.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	secret := h.secret
	for _, a := range attrs {
		if a.Key == h.opts.keyAttr && h.IsSecret(a.Value.String()) {
			secret = true
		}
	}

	nr := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		if secret && a.Key == h.opts.valueAttr {
			a = slog.String(a.Key, Mask)
		}
		nr[i] = a
	}
	return &Handler{
		slog:   h.slog.WithAttrs(nr),
		opts:   h.opts,
		secret: secret,
	}
}

// WithGroup implements the slog.Handler interface.
func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{
		slog:   h.slog.WithGroup(name),
		opts:   h.opts,
		secret: h.secret,
	}
}
