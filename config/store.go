// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"fmt"
	"strings"
)

// EmptyKeyError occurs when a Source sets a value using an empty key
// or a dotted key with an empty segment.
type EmptyKeyError struct {
	Key   string
	Value any
}

// Error implements the error interface.
func (e EmptyKeyError) Error() string {
	return fmt.Sprintf("attempted to set value to an empty key %q: %v", e.Key, e.Value)
}

// UnexpectedKeyValueTypeError represents the situation when
// a user tries setting a key to a different type than it
// had previously been set to.
type UnexpectedKeyValueTypeError struct {
	Key          string
	ExpectedType string
}

// Error implements the error interface.
func (e UnexpectedKeyValueTypeError) Error() string {
	return fmt.Sprintf("expected key value to be a %s: %s", e.ExpectedType, e.Key)
}

type store map[string]any

func (s store) Set(key string, v any) error {
	segments := strings.Split(key, ".")
	for _, seg := range segments {
		if seg == "" {
			return EmptyKeyError{Key: key, Value: v}
		}
	}

	m := map[string]any(s)
	for i, seg := range segments[:len(segments)-1] {
		old, ok := m[seg]
		if !ok {
			sub := make(map[string]any)
			m[seg] = sub
			m = sub
			continue
		}
		sub, ok := old.(map[string]any)
		if !ok {
			return UnexpectedKeyValueTypeError{
				Key:          strings.Join(segments[:i+1], "."),
				ExpectedType: "map[string]any",
			}
		}
		m = sub
	}

	last := segments[len(segments)-1]
	if _, isTable := m[last].(map[string]any); isTable {
		if _, replacing := v.(map[string]any); !replacing {
			return UnexpectedKeyValueTypeError{Key: key, ExpectedType: "map[string]any"}
		}
	}
	m[last] = v
	return nil
}

func (s store) get(key string) (any, bool) {
	var cur any = map[string]any(s)
	for _, seg := range strings.Split(key, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func walk(m map[string]any, dst Store, prefix string) error {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := v.(map[string]any); ok {
			err := walk(sub, dst, key)
			if err != nil {
				return err
			}
			continue
		}
		err := dst.Set(key, v)
		if err != nil {
			return err
		}
	}
	return nil
}
