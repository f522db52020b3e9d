// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package binding resolves raw values for declared fields and converts
// them onto those fields.
//
// Each field is resolved independently in declaration order:
//
//  1. the effective key is the Descriptor prefix followed by the field key
//  2. a value in the store under the effective key wins
//  3. otherwise the declared default is used
//  4. otherwise a required field fails with a RequiredValueMissingError
//  5. otherwise the field is left untouched
//
// Binding is fail-fast. Fields bound before a failure keep their new values.
package binding

import (
	"context"
	"log/slog"
	"reflect"

	"github.com/z5labs/envbind/convert"
	"github.com/z5labs/envbind/internal/try"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type options struct {
	registry *convert.Registry
	logger   *slog.Logger
}

// Option configures Bind.
type Option interface {
	applyOption(*options)
}

type optionFunc func(*options)

func (f optionFunc) applyOption(o *options) {
	f(o)
}

// Registry sets the converter registry. Defaults to convert.Default().
func Registry(r *convert.Registry) Option {
	return optionFunc(func(o *options) {
		o.registry = r
	})
}

// Logger sets the logger used to report bound keys. Values are never logged.
func Logger(logger *slog.Logger) Option {
	return optionFunc(func(o *options) {
		o.logger = logger
	})
}

// Bind resolves and converts every field of d from store.
func Bind(ctx context.Context, store Lookuper, d Descriptor, opts ...Option) (err error) {
	o := &options{
		registry: convert.Default(),
		logger:   slog.New(discardHandler{}),
	}
	for _, opt := range opts {
		opt.applyOption(o)
	}

	_, span := otel.Tracer("envbind/binding").Start(ctx, "Bind", trace.WithAttributes(
		attribute.String("binding.prefix", d.Prefix),
		attribute.Int("binding.fields", len(d.Fields)),
	))
	defer span.End()
	defer func() {
		if err == nil {
			return
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}()
	defer try.Recover(&err)

	err = d.Validate()
	if err != nil {
		return err
	}

	var bound []string
	for _, m := range d.Fields {
		if m.Ignored {
			continue
		}

		res, err := ResolveField(store, d.Prefix, m)
		if err != nil {
			return err
		}
		if !res.Found() {
			o.logger.DebugContext(ctx, "field left unset", slog.String("field", m.Name), slog.String("key", res.Key))
			continue
		}

		err = set(o.registry, res)
		if err != nil {
			return err
		}
		bound = append(bound, res.Key)
		o.logger.DebugContext(
			ctx,
			"bound field",
			slog.String("field", m.Name),
			slog.String("key", res.Key),
			slog.String("source", res.Source.String()),
		)
	}

	span.SetAttributes(attribute.StringSlice("binding.keys", bound))
	return nil
}

func set(r *convert.Registry, res Resolved) error {
	dst := reflect.ValueOf(res.Field.Target).Elem()

	v, err := r.Convert(res.Raw, dst.Type())
	if err != nil {
		return FieldError{Field: res.Field.Name, Key: res.Key, Cause: err}
	}
	dst.Set(v)
	return nil
}

// BindTarget binds the fields declared by t.
func BindTarget(ctx context.Context, store Lookuper, t Target, opts ...Option) error {
	return Bind(ctx, store, t.Bindings(), opts...)
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h discardHandler) WithGroup(string) slog.Handler           { return h }
