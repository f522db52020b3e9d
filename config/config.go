// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package config layers several configuration sources into a single
// key value tree which can be decoded onto tagged structs or queried
// key by key.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/z5labs/envbind/convert"

	"github.com/go-viper/mapstructure/v2"
)

// Store represents a general key value structure. Dotted keys
// address nested values.
type Store interface {
	Set(key string, v any) error
}

// Source defines valid config sources as those who can
// serialize themselves into a key value like structure.
type Source interface {
	Apply(Store) error
}

// Manager holds the merged result of one or more Sources.
type Manager struct {
	store store
}

// Read applies each Source, in order, to a fresh Manager.
// Subsequent sources override previous sources.
func Read(srcs ...Source) (*Manager, error) {
	m := &Manager{store: make(store)}
	for _, src := range srcs {
		err := src.Apply(m.store)
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Apply implements the Source interface.
func (m *Manager) Apply(store Store) error {
	return walk(m.store, store, "")
}

// Get returns the value at the dotted key rendered as a string.
// Lists are rendered as comma separated values. Keys addressing
// a nested table are reported as absent.
func (m *Manager) Get(key string) (string, bool) {
	v, ok := m.store.get(key)
	if !ok {
		return "", false
	}
	switch x := v.(type) {
	case map[string]any:
		return "", false
	case []any:
		ss := make([]string, len(x))
		for i, e := range x {
			ss[i] = fmt.Sprint(e)
		}
		return strings.Join(ss, ","), true
	default:
		return fmt.Sprint(x), true
	}
}

// Unmarshal decodes the merged config onto v, which must be a pointer.
// Struct fields are matched using the "config" tag. String values are
// converted with the [convert.Default] registry.
func (m *Manager) Unmarshal(v any) error {
	return m.UnmarshalWith(convert.Default(), v)
}

// UnmarshalWith is like Unmarshal but converts string values with r.
func (m *Manager) UnmarshalWith(r *convert.Registry, v any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "config",
		Result:  v,
		DecodeHook: composeDecodeHooks(
			registryHookFunc(r),
			timeDurationHookFunc(),
		),
	})
	if err != nil {
		return err
	}
	return dec.Decode(map[string]any(m.store))
}

var errInvalidDecodeCondition = errors.New("invalid decode condition")

// TypeCoercionError occurs when attempting to unmarshal a config
// value to a struct field whose type does not match the config
// value type, up to, coercion.
type TypeCoercionError struct {
	From  reflect.Type
	To    reflect.Type
	Cause error
}

// Error implements the error interface.
func (e TypeCoercionError) Error() string {
	return fmt.Sprintf("failed to coerce value from %s to %s: %s", e.From, e.To, e.Cause)
}

// Unwrap implements the implicit interface for usage with errors.Is and errors.As.
func (e TypeCoercionError) Unwrap() error {
	return e.Cause
}

func composeDecodeHooks(hs ...mapstructure.DecodeHookFunc) mapstructure.DecodeHookFuncValue {
	return func(f, t reflect.Value) (any, error) {
		for _, h := range hs {
			v, err := mapstructure.DecodeHookExec(h, f, t)
			if err == nil {
				return v, nil
			}
			if err == errInvalidDecodeCondition {
				continue
			}
			return nil, TypeCoercionError{
				From:  f.Type(),
				To:    t.Type(),
				Cause: err,
			}
		}
		return f.Interface(), nil
	}
}

func registryHookFunc(r *convert.Registry) mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || f == t || !r.IsSupported(t) {
			return nil, errInvalidDecodeCondition
		}
		v, err := r.Convert(data.(string), t)
		if err != nil {
			return nil, err
		}
		return v.Interface(), nil
	}
}

func timeDurationHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if t != reflect.TypeOf(time.Duration(0)) {
			return nil, errInvalidDecodeCondition
		}

		switch f.Kind() {
		case reflect.Int:
			return time.Duration(int64(data.(int))), nil
		case reflect.Float64:
			return time.Duration(int64(data.(float64))), nil
		default:
			return nil, errInvalidDecodeCondition
		}
	}
}
