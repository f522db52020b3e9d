// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package convert turns raw configuration strings into strongly typed values.
//
// Conversion is driven by a [Registry] which maps an exact [reflect.Type] to a
// [Func]. When no exact converter is registered the Registry falls back, in order, to
// enumerations declared with [RegisterEnum], types implementing
// [encoding.TextUnmarshaler], list-like slices and set-like maps.
//
// A process wide Registry seeded with the built-in converters is available
// through [Default]. Registration is expected to happen during program start up,
// before any concurrent conversions begin. Lookups are safe for concurrent use.
package convert

import (
	"encoding"
	"reflect"
	"slices"
	"strings"
	"sync"
)

// Func converts a raw string into a value of a single concrete type.
// The returned value must be assignable or convertible to the type
// the Func was registered for.
type Func func(raw string) (any, error)

type enumeration struct {
	members map[string]reflect.Value
	names   []string
}

// Registry maps target types to converters.
type Registry struct {
	converters sync.Map // reflect.Type -> Func
	enums      sync.Map // reflect.Type -> *enumeration
}

// NewRegistry returns a Registry seeded with the built-in converters.
func NewRegistry() *Registry {
	r := &Registry{}
	registerBuiltins(r)
	return r
}

var defaultRegistry = NewRegistry()

// Default returns the process wide Registry.
func Default() *Registry {
	return defaultRegistry
}

// Register associates f with the exact type t. Registering a type
// which already has a converter replaces the previous converter.
func (r *Registry) Register(t reflect.Type, f Func) {
	r.converters.Store(t, f)
}

// RegisterFunc is a type safe helper around [Registry.Register].
func RegisterFunc[T any](r *Registry, f func(string) (T, error)) {
	r.Register(reflect.TypeFor[T](), func(raw string) (any, error) {
		return f(raw)
	})
}

// RegisterEnum declares T as an enumeration whose members are keyed by name.
// Raw values are upper-cased before being matched against the member names.
func RegisterEnum[T any](r *Registry, members map[string]T) {
	e := &enumeration{
		members: make(map[string]reflect.Value, len(members)),
		names:   make([]string, 0, len(members)),
	}
	for name, v := range members {
		name = strings.ToUpper(name)
		e.members[name] = reflect.ValueOf(v)
		e.names = append(e.names, name)
	}
	slices.Sort(e.names)
	r.enums.Store(reflect.TypeFor[T](), e)
}

var textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()

// IsSupported reports whether values of type t can be produced by the Registry.
func (r *Registry) IsSupported(t reflect.Type) bool {
	if t == nil {
		return false
	}
	if _, ok := r.converters.Load(t); ok {
		return true
	}
	if _, ok := r.enums.Load(t); ok {
		return true
	}
	if isTextUnmarshaler(t) {
		return true
	}
	switch {
	case t.Kind() == reflect.Slice:
		return r.IsSupported(t.Elem())
	case isSet(t):
		return r.IsSupported(t.Key())
	}
	return false
}

// Convert converts raw into a value of type t.
func (r *Registry) Convert(raw string, t reflect.Type) (reflect.Value, error) {
	if t == nil {
		return reflect.Value{}, UnsupportedTypeError{}
	}
	if f, ok := r.converters.Load(t); ok {
		return r.exact(raw, t, f.(Func))
	}
	if e, ok := r.enums.Load(t); ok {
		return r.enum(raw, t, e.(*enumeration))
	}
	if isTextUnmarshaler(t) {
		return unmarshalText(raw, t)
	}
	switch {
	case t.Kind() == reflect.Slice:
		return r.list(raw, t)
	case isSet(t):
		return r.set(raw, t)
	}
	return reflect.Value{}, UnsupportedTypeError{Type: t}
}

// To converts raw into a T using the given Registry.
func To[T any](r *Registry, raw string) (T, error) {
	var zero T
	v, err := r.Convert(raw, reflect.TypeFor[T]())
	if err != nil {
		return zero, err
	}
	return v.Interface().(T), nil
}

func (r *Registry) exact(raw string, t reflect.Type, f Func) (reflect.Value, error) {
	x, err := f(raw)
	if err != nil {
		return reflect.Value{}, ConversionError{Type: t, Raw: raw, Cause: err}
	}
	if x == nil {
		return reflect.Zero(t), nil
	}

	v := reflect.ValueOf(x)
	switch {
	case v.Type() == t:
		return v, nil
	case v.Type().AssignableTo(t):
		nv := reflect.New(t).Elem()
		nv.Set(v)
		return nv, nil
	case v.Kind() == t.Kind() && v.Type().ConvertibleTo(t):
		return v.Convert(t), nil
	}
	return reflect.Value{}, ConversionError{
		Type:  t,
		Raw:   raw,
		Cause: UnexpectedResultTypeError{Expected: t, Actual: v.Type()},
	}
}

func (r *Registry) enum(raw string, t reflect.Type, e *enumeration) (reflect.Value, error) {
	v, ok := e.members[strings.ToUpper(raw)]
	if !ok {
		return reflect.Value{}, UnknownEnumMemberError{
			Type:    t,
			Value:   raw,
			Members: e.names,
		}
	}
	return v, nil
}

func isTextUnmarshaler(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		return t.Implements(textUnmarshalerType)
	}
	return reflect.PointerTo(t).Implements(textUnmarshalerType)
}

func unmarshalText(raw string, t reflect.Type) (reflect.Value, error) {
	elem := t
	if t.Kind() == reflect.Pointer {
		elem = t.Elem()
	}

	ptr := reflect.New(elem)
	err := ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(raw))
	if err != nil {
		return reflect.Value{}, ConversionError{Type: t, Raw: raw, Cause: err}
	}
	if t.Kind() == reflect.Pointer {
		return ptr, nil
	}
	return ptr.Elem(), nil
}

// Split breaks a raw collection value into its trimmed comma separated
// pieces. A blank raw value yields no pieces.
func Split(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	pieces := strings.Split(raw, ",")
	for i, p := range pieces {
		pieces[i] = strings.TrimSpace(p)
	}
	return pieces
}

func (r *Registry) list(raw string, t reflect.Type) (reflect.Value, error) {
	pieces := Split(raw)
	xs := reflect.MakeSlice(t, 0, len(pieces))
	for _, p := range pieces {
		x, err := r.Convert(p, t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		xs = reflect.Append(xs, x)
	}
	return xs, nil
}

func isSet(t reflect.Type) bool {
	if t.Kind() != reflect.Map {
		return false
	}
	elem := t.Elem()
	return elem.Kind() == reflect.Bool || (elem.Kind() == reflect.Struct && elem.NumField() == 0)
}

func (r *Registry) set(raw string, t reflect.Type) (reflect.Value, error) {
	pieces := Split(raw)
	member := reflect.Zero(t.Elem())
	if t.Elem().Kind() == reflect.Bool {
		member = reflect.ValueOf(true).Convert(t.Elem())
	}

	s := reflect.MakeMapWithSize(t, len(pieces))
	for _, p := range pieces {
		k, err := r.Convert(p, t.Key())
		if err != nil {
			return reflect.Value{}, err
		}
		s.SetMapIndex(k, member)
	}
	return s, nil
}

// Register associates f with t in the [Default] Registry.
func Register(t reflect.Type, f Func) {
	defaultRegistry.Register(t, f)
}

// IsSupported reports whether the [Default] Registry can produce values of type t.
func IsSupported(t reflect.Type) bool {
	return defaultRegistry.IsSupported(t)
}

// Convert converts raw into a value of type t using the [Default] Registry.
func Convert(raw string, t reflect.Type) (reflect.Value, error) {
	return defaultRegistry.Convert(raw, t)
}
