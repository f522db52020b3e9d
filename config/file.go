// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"
)

// FileReader is an io.Reader which opens its file on the first Read.
type FileReader struct {
	path string
	fs   afero.Fs

	openOnce sync.Once
	openErr  error
	file     afero.File
}

// NewFileReader configures a FileReader. A nil fs reads from the OS.
func NewFileReader(fs afero.Fs, path string) *FileReader {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &FileReader{
		path: path,
		fs:   fs,
	}
}

// Read implements the io.Reader interface.
func (r *FileReader) Read(b []byte) (int, error) {
	r.openOnce.Do(func() {
		r.file, r.openErr = r.fs.Open(r.path)
	})
	if r.openErr != nil {
		return 0, r.openErr
	}
	return r.file.Read(b)
}

// Close implements the io.Closer interface.
func (r *FileReader) Close() error {
	if r.file == nil {
		return nil
	}

	err := r.file.Close()
	r.file = nil
	return err
}

// UnsupportedFileError occurs when FromFile cannot tell the format of
// a file from its extension.
type UnsupportedFileError struct {
	Path string
}

// Error implements the error interface.
func (e UnsupportedFileError) Error() string {
	return fmt.Sprintf("unsupported config file extension: %s", e.Path)
}

// FromFile returns a Source for the YAML or JSON file at path,
// chosen by its extension. The file is not opened until the Source
// is applied.
func FromFile(fs afero.Fs, path string) (Source, error) {
	r := NewFileReader(fs, path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FromYaml(r), nil
	case ".json":
		return FromJson(r), nil
	default:
		return nil, UnsupportedFileError{Path: path}
	}
}

var _ io.ReadCloser = (*FileReader)(nil)
