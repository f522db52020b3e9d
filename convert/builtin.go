// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package convert

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Path is a filesystem path in the host operating system's format.
// Values are cleaned and forward slashes are replaced by the OS separator.
type Path string

// AbsPath is an absolute filesystem path. Relative values are resolved
// against the current working directory.
type AbsPath string

// ErrInvalidBool is returned when a boolean value is neither "true" nor "false".
var ErrInvalidBool = errors.New("boolean value must be true or false")

func registerBuiltins(r *Registry) {
	RegisterFunc(r, func(s string) (string, error) { return s, nil })
	RegisterFunc(r, func(s string) ([]byte, error) { return []byte(s), nil })
	RegisterFunc(r, parseBool)

	RegisterFunc(r, strconv.Atoi)
	RegisterFunc(r, parseInt[int8](8))
	RegisterFunc(r, parseInt[int16](16))
	RegisterFunc(r, parseInt[int32](32))
	RegisterFunc(r, parseInt[int64](64))

	RegisterFunc(r, parseUint[uint](strconv.IntSize))
	RegisterFunc(r, parseUint[uint8](8))
	RegisterFunc(r, parseUint[uint16](16))
	RegisterFunc(r, parseUint[uint32](32))
	RegisterFunc(r, parseUint[uint64](64))

	RegisterFunc(r, parseFloat[float32](32))
	RegisterFunc(r, parseFloat[float64](64))

	RegisterFunc(r, time.ParseDuration)
	RegisterFunc(r, parsePath)
	RegisterFunc(r, parseAbsPath)
}

// only the literals true and false are accepted, in any letter case
func parseBool(s string) (bool, error) {
	switch {
	case strings.EqualFold(s, "true"):
		return true, nil
	case strings.EqualFold(s, "false"):
		return false, nil
	}
	return false, ErrInvalidBool
}

func parseInt[T ~int8 | ~int16 | ~int32 | ~int64](bitSize int) func(string) (T, error) {
	return func(s string) (T, error) {
		n, err := strconv.ParseInt(s, 10, bitSize)
		return T(n), err
	}
}

func parseUint[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64](bitSize int) func(string) (T, error) {
	return func(s string) (T, error) {
		n, err := strconv.ParseUint(s, 10, bitSize)
		return T(n), err
	}
}

func parseFloat[T ~float32 | ~float64](bitSize int) func(string) (T, error) {
	return func(s string) (T, error) {
		f, err := strconv.ParseFloat(s, bitSize)
		return T(f), err
	}
}

func parsePath(s string) (Path, error) {
	return Path(filepath.Clean(filepath.FromSlash(s))), nil
}

func parseAbsPath(s string) (AbsPath, error) {
	p, err := filepath.Abs(filepath.FromSlash(s))
	return AbsPath(p), err
}
