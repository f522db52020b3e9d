// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package dotenv

import (
	"os"
	"slices"
	"strings"
)

// Dotenv is the merged, read-only result of a dotenv source and
// the process environment.
type Dotenv struct {
	values   map[string]string
	declared []Entry
}

// New builds a Dotenv from parsed entries and the process environment.
// Later entries with the same key replace earlier ones. When fileWins
// is false environment variables take precedence over entries.
func New(entries []Entry, environ []string, fileWins bool) *Dotenv {
	d := &Dotenv{
		values:   make(map[string]string, len(entries)+len(environ)),
		declared: slices.Clone(entries),
	}

	env := parseEnviron(environ)
	if fileWins {
		d.merge(env)
		d.mergeEntries(entries)
		return d
	}
	d.mergeEntries(entries)
	d.merge(env)
	return d
}

func (d *Dotenv) merge(m map[string]string) {
	for k, v := range m {
		d.values[k] = v
	}
}

func (d *Dotenv) mergeEntries(entries []Entry) {
	for _, e := range entries {
		d.values[e.Key] = e.Value
	}
}

func parseEnviron(environ []string) map[string]string {
	m := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		m[k] = v
	}
	return m
}

// Get returns the value for key and whether it was present.
// A present key may map to the empty string.
func (d *Dotenv) Get(key string) (string, bool) {
	if d == nil {
		return "", false
	}
	v, ok := d.values[key]
	return v, ok
}

// Len returns the number of distinct keys.
func (d *Dotenv) Len() int {
	if d == nil {
		return 0
	}
	return len(d.values)
}

// Entries returns every merged key value pair sorted by key.
func (d *Dotenv) Entries() []Entry {
	if d == nil {
		return nil
	}
	entries := make([]Entry, 0, len(d.values))
	for k, v := range d.values {
		entries = append(entries, Entry{Key: k, Value: v})
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.Key, b.Key)
	})
	return entries
}

// Declared returns the entries of the dotenv source in source order,
// without the process environment.
func (d *Dotenv) Declared() []Entry {
	if d == nil {
		return nil
	}
	return slices.Clone(d.declared)
}

// Export sets each declared entry as a process environment variable.
// Variables which are already set are left alone unless overwrite is true.
func (d *Dotenv) Export(overwrite bool) error {
	for _, e := range d.Declared() {
		if _, set := os.LookupEnv(e.Key); set && !overwrite {
			continue
		}
		err := os.Setenv(e.Key, e.Value)
		if err != nil {
			return err
		}
	}
	return nil
}
