// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package dotenv reads .env style sources into an immutable key value store.
//
// A source is a text file of KEY=value lines. Blank lines and lines starting
// with # or // are ignored. Values may be wrapped in single or double quotes
// and a double quoted value may span several physical lines. Anything after
// an unquoted # is a trailing comment.
//
//	# database
//	DB_HOST=localhost
//	DB_PASSWORD='s3cr#t'
//	DB_CERT="-----BEGIN-----
//	abc
//	-----END-----"
//
// The parsed entries are merged with the process environment into a [Dotenv].
package dotenv

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Load reads, parses and merges a dotenv source with the process environment.
//
// By default a missing source fails with a [SourceUnavailableError] and a
// malformed entry fails with a [MalformedEntryError]. See [IgnoreIfMissing]
// and [IgnoreIfMalformed] to degrade them instead.
func Load(ctx context.Context, opts ...Option) (*Dotenv, error) {
	o := newOptions(opts...)
	loc := Location(o.directory, o.filename)

	_, span := otel.Tracer("envbind/dotenv").Start(ctx, "Load", trace.WithAttributes(
		attribute.String("dotenv.location", loc),
	))
	defer span.End()

	d, err := load(o)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("dotenv.entries.declared", len(d.declared)),
		attribute.Int("dotenv.entries.total", d.Len()),
	)
	return d, nil
}

func load(o *options) (*Dotenv, error) {
	r := newReader(o)
	loc := Location(o.directory, o.filename)

	lines, err := r.Read(o.directory, o.filename)
	var unavailable SourceUnavailableError
	switch {
	case errors.As(err, &unavailable) && !o.failOnMissing:
		o.logger.Debug("dotenv source not found, continuing without it", slog.String("location", loc))
		lines = nil
	case err != nil:
		return nil, err
	}

	entries, err := parse(lines, o)
	if err != nil {
		return nil, err
	}
	o.logger.Debug(
		"loaded dotenv source",
		slog.String("location", loc),
		slog.Int("entries", len(entries)),
	)
	return New(entries, o.environ(), o.fileWins), nil
}
