// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package dotenv

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"net/url"
	"path"
	"strings"

	"github.com/z5labs/envbind/internal/try"

	"github.com/spf13/afero"
)

var resourceSchemes = map[string]bool{
	"embed":    true,
	"resource": true,
}

// Reader locates a dotenv source and reads it into memory as lines.
type Reader struct {
	fs        afero.Fs
	schemes   map[string]afero.Fs
	resources []fs.FS
	log       *slog.Logger
}

// NewReader returns a Reader configured by the Filesystem, Scheme,
// Resources and Logger options. Other options are ignored.
func NewReader(opts ...Option) *Reader {
	return newReader(newOptions(opts...))
}

func newReader(o *options) *Reader {
	return &Reader{
		fs:        o.fs,
		schemes:   o.schemes,
		resources: o.resources,
		log:       o.logger,
	}
}

// Location joins directory and filename into the logical location
// of a dotenv source.
func Location(directory, filename string) string {
	dir := strings.ReplaceAll(directory, `\`, "/")
	dir = strings.TrimSuffix(dir, ".env")
	dir = strings.TrimRight(dir, "/")
	if dir == "" && !strings.HasPrefix(directory, "/") {
		dir = "."
	}
	return dir + "/" + filename
}

// Read returns the lines of the dotenv source at the location
// formed from directory and filename. Resolution order is:
//
//  1. a location prefixed by a registered scheme, e.g. "file:" or "mem:",
//     is read from that scheme's filesystem
//  2. a plain location is read from the filesystem
//  3. otherwise the location is looked up in each resource filesystem
//
// A SourceUnavailableError is returned if none of them contain the location.
func (r *Reader) Read(directory, filename string) ([]string, error) {
	loc := Location(directory, filename)

	scheme, p, hasScheme := r.splitScheme(loc)
	switch {
	case hasScheme && resourceSchemes[scheme]:
		return r.readResource(loc, p)
	case hasScheme:
		fsys := r.schemes[scheme]
		if exists(fsys, p) {
			r.log.Debug("reading dotenv source", slog.String("location", loc), slog.String("scheme", scheme))
			return readLines(fsys.Open(p))
		}
	case exists(r.fs, p):
		r.log.Debug("reading dotenv source", slog.String("location", loc))
		return readLines(r.fs.Open(p))
	}
	return r.readResource(loc, p)
}

func (r *Reader) splitScheme(loc string) (scheme, p string, ok bool) {
	scheme, _, found := strings.Cut(loc, ":")
	if !found {
		return "", loc, false
	}
	if _, registered := r.schemes[scheme]; !registered && !resourceSchemes[scheme] {
		return "", loc, false
	}

	u, err := url.Parse(loc)
	if err != nil {
		return "", loc, false
	}
	p = u.Path
	if p == "" {
		p = u.Opaque
	}
	return scheme, p, true
}

func exists(fsys afero.Fs, p string) bool {
	info, err := fsys.Stat(p)
	return err == nil && !info.IsDir()
}

func (r *Reader) readResource(loc, p string) ([]string, error) {
	name := strings.TrimPrefix(path.Clean("/"+p), "/")
	if !fs.ValidPath(name) || len(r.resources) == 0 {
		return nil, SourceUnavailableError{Location: loc, Cause: fs.ErrNotExist}
	}

	for i, fsys := range r.resources {
		lines, err := readLines(fsys.Open(name))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		r.log.Debug("reading dotenv resource", slog.String("location", loc), slog.Int("resource_index", i))
		return lines, nil
	}
	return nil, SourceUnavailableError{Location: loc, Cause: fs.ErrNotExist}
}

func readLines(f io.ReadCloser, err error) (_ []string, rerr error) {
	if err != nil {
		return nil, err
	}
	defer try.Close(&rerr, f)

	b, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return splitLines(string(b)), nil
}

func splitLines(s string) []string {
	s = strings.TrimPrefix(s, "\ufeff")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
