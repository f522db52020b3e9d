// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package dotenv

import (
	"context"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/afero"
)

type options struct {
	directory       string
	filename        string
	failOnMissing   bool
	failOnMalformed bool
	logger          *slog.Logger
	fs              afero.Fs
	schemes         map[string]afero.Fs
	resources       []fs.FS
	environ         func() []string
	fileWins        bool
}

func newOptions(opts ...Option) *options {
	o := &options{
		directory:       "./",
		filename:        ".env",
		failOnMissing:   true,
		failOnMalformed: true,
		logger:          slog.New(discardHandler{}),
		fs:              afero.NewOsFs(),
		schemes:         make(map[string]afero.Fs),
		environ:         os.Environ,
	}
	for _, opt := range opts {
		opt.applyOption(o)
	}
	if _, ok := o.schemes["file"]; !ok {
		o.schemes["file"] = o.fs
	}
	return o
}

// Option helps configure loading, reading and parsing.
type Option interface {
	applyOption(*options)
}

type optionFunc func(*options)

func (f optionFunc) applyOption(o *options) {
	f(o)
}

// Directory sets the directory the dotenv file is looked up in. Backslashes
// are treated as forward slashes and a trailing ".env" is ignored.
func Directory(dir string) Option {
	return optionFunc(func(o *options) {
		o.directory = dir
	})
}

// Filename sets the name of the dotenv file. Defaults to ".env".
func Filename(name string) Option {
	return optionFunc(func(o *options) {
		o.filename = name
	})
}

// IgnoreIfMissing degrades a missing source to an empty set of entries
// instead of failing with a SourceUnavailableError.
func IgnoreIfMissing() Option {
	return optionFunc(func(o *options) {
		o.failOnMissing = false
	})
}

// IgnoreIfMalformed silently drops entries which cannot be parsed
// instead of failing with a MalformedEntryError.
func IgnoreIfMalformed() Option {
	return optionFunc(func(o *options) {
		o.failOnMalformed = false
	})
}

// Logger sets the logger used to report what was loaded. Entry values
// are never logged.
func Logger(logger *slog.Logger) Option {
	return optionFunc(func(o *options) {
		o.logger = logger
	})
}

// Filesystem sets the filesystem plain paths are resolved against.
// It is also used for the "file:" scheme unless that scheme is
// registered explicitly. Defaults to the OS filesystem.
func Filesystem(fsys afero.Fs) Option {
	return optionFunc(func(o *options) {
		o.fs = fsys
	})
}

// Scheme registers fsys for locations starting with name followed by a
// colon, e.g. Scheme("mem", afero.NewMemMapFs()) serves "mem:/app/.env".
func Scheme(name string, fsys afero.Fs) Option {
	return optionFunc(func(o *options) {
		o.schemes[name] = fsys
	})
}

// Resources registers packaged resource filesystems, e.g. an embed.FS.
// They are consulted, in order, when the location does not exist on any
// filesystem. The first one registered is treated as the loader local
// resource filesystem.
func Resources(fsys ...fs.FS) Option {
	return optionFunc(func(o *options) {
		o.resources = append(o.resources, fsys...)
	})
}

// Environ sets the process environment source merged into the Dotenv.
// Defaults to os.Environ.
func Environ(environ func() []string) Option {
	return optionFunc(func(o *options) {
		o.environ = environ
	})
}

// FileOverridesEnvironment gives entries from the dotenv source precedence
// over process environment variables with the same key. By default the
// process environment wins.
func FileOverridesEnvironment() Option {
	return optionFunc(func(o *options) {
		o.fileWins = true
	})
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h discardHandler) WithGroup(string) slog.Handler           { return h }
