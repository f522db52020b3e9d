// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"fmt"
	"io"

	"github.com/z5labs/envbind/internal/try"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

// document is a Source which decodes a whole key value tree from r.
// If r is also an io.Closer it is closed once read.
type document struct {
	r         io.Reader
	unmarshal func([]byte, any) error
	invalid   func(error) error
}

// Apply implements the Source interface.
func (src document) Apply(store Store) (err error) {
	defer try.Close(&err, src.r)

	b, err := io.ReadAll(src.r)
	if err != nil {
		return err
	}

	m := make(map[string]any)
	err = src.unmarshal(b, &m)
	if err != nil {
		return src.invalid(err)
	}
	return Map(m).Apply(store)
}

// Yaml represents a Source where its underlying format is YAML.
type Yaml struct {
	document
}

// FromYaml returns a source which will apply its config
// from YAML values parsed from the given io.Reader.
func FromYaml(r io.Reader) Yaml {
	return Yaml{document{
		r:         r,
		unmarshal: yaml.Unmarshal,
		invalid:   func(err error) error { return InvalidYamlError{Cause: err} },
	}}
}

// InvalidYamlError occurs if the underlying io.Reader contains invalid YAML.
type InvalidYamlError struct {
	Cause error
}

// Error implements the error interface.
func (e InvalidYamlError) Error() string {
	return fmt.Sprintf("invalid yaml: %s", e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e InvalidYamlError) Unwrap() error {
	return e.Cause
}

// Json represents a Source where its underlying format is JSON.
// Numbers are decoded as float64.
type Json struct {
	document
}

// FromJson returns a source which will apply its config
// from JSON values parsed from the given io.Reader.
func FromJson(r io.Reader) Json {
	return Json{document{
		r:         r,
		unmarshal: jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal,
		invalid:   func(err error) error { return InvalidJsonError{Cause: err} },
	}}
}

// InvalidJsonError occurs if the underlying io.Reader contains invalid JSON.
type InvalidJsonError struct {
	Cause error
}

// Error implements the error interface.
func (e InvalidJsonError) Error() string {
	return fmt.Sprintf("invalid json: %s", e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e InvalidJsonError) Unwrap() error {
	return e.Cause
}
