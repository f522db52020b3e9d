// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package envbind

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/z5labs/envbind/binding"
	"github.com/z5labs/envbind/convert"
	"github.com/z5labs/envbind/dotenv"
)

type options struct {
	dotenv   []dotenv.Option
	registry *convert.Registry
	logger   *slog.Logger
}

// Option configures Load.
type Option interface {
	applyOption(*options)
}

type optionFunc func(*options)

func (f optionFunc) applyOption(o *options) {
	f(o)
}

// Dotenv passes options through to dotenv.Load.
func Dotenv(opts ...dotenv.Option) Option {
	return optionFunc(func(o *options) {
		o.dotenv = append(o.dotenv, opts...)
	})
}

// Registry sets the converter registry used while binding.
// Defaults to convert.Default().
func Registry(r *convert.Registry) Option {
	return optionFunc(func(o *options) {
		o.registry = r
	})
}

// Logger is used both for loading and binding.
func Logger(logger *slog.Logger) Option {
	return optionFunc(func(o *options) {
		o.logger = logger
	})
}

// Load reads a dotenv source, merges it with the process environment and
// binds the result onto target. The returned Dotenv can be used to look up
// keys which target does not declare.
func Load(ctx context.Context, target binding.Target, opts ...Option) (*dotenv.Dotenv, error) {
	o := &options{
		registry: convert.Default(),
	}
	for _, opt := range opts {
		opt.applyOption(o)
	}

	dopts := o.dotenv
	bopts := []binding.Option{binding.Registry(o.registry)}
	if o.logger != nil {
		dopts = append(dopts, dotenv.Logger(o.logger))
		bopts = append(bopts, binding.Logger(o.logger))
	}

	d, err := dotenv.Load(ctx, dopts...)
	if err != nil {
		return nil, LoadError{Cause: err}
	}

	err = binding.BindTarget(ctx, d, target, bopts...)
	if err != nil {
		return d, BindError{Cause: err}
	}
	return d, nil
}

// LoadError
type LoadError struct {
	Cause error
}

// Error implements the [builtin.error] interface.
func (e LoadError) Error() string {
	return fmt.Sprintf("failed to load dotenv source: %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e LoadError) Unwrap() error {
	return e.Cause
}

// BindError
type BindError struct {
	Cause error
}

// Error implements the [builtin.error] interface.
func (e BindError) Error() string {
	return fmt.Sprintf("failed to bind target: %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e BindError) Unwrap() error {
	return e.Cause
}
