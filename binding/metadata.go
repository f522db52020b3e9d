// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package binding

import (
	"reflect"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Metadata declares how a single field is bound.
type Metadata struct {
	// Name identifies the field in errors and logs. Defaults to Key.
	Name string

	// Key is looked up after the Descriptor prefix has been prepended.
	Key string `validate:"required_unless=Ignored true,omitempty,envkey"`

	HasDefault bool
	Default    string

	Required bool

	// Message replaces the generated RequiredValueMissingError message.
	Message string

	Ignored bool

	// Target is a non-nil pointer to the field.
	Target any `validate:"-"`
}

// FieldOption customizes the Metadata built by Field.
type FieldOption interface {
	applyField(*Metadata)
}

type fieldOptionFunc func(*Metadata)

func (f fieldOptionFunc) applyField(m *Metadata) {
	f(m)
}

// Default is used when the effective key is absent from the store.
// A default always takes precedence over Required.
func Default(value string) FieldOption {
	return fieldOptionFunc(func(m *Metadata) {
		m.HasDefault = true
		m.Default = value
	})
}

// Required fails binding when the effective key is absent and no
// default was declared.
func Required() FieldOption {
	return fieldOptionFunc(func(m *Metadata) {
		m.Required = true
	})
}

// RequiredMessage is like Required but reports msg when the value is missing.
func RequiredMessage(msg string) FieldOption {
	return fieldOptionFunc(func(m *Metadata) {
		m.Required = true
		m.Message = msg
	})
}

// Ignore excludes the field from binding.
func Ignore() FieldOption {
	return fieldOptionFunc(func(m *Metadata) {
		m.Ignored = true
	})
}

// Name overrides the name used to identify the field.
func Name(name string) FieldOption {
	return fieldOptionFunc(func(m *Metadata) {
		m.Name = name
	})
}

// Field declares that the value under key is converted into *dst.
func Field[T any](key string, dst *T, opts ...FieldOption) Metadata {
	m := Metadata{
		Name:   key,
		Key:    key,
		Target: dst,
	}
	for _, opt := range opts {
		opt.applyField(&m)
	}
	return m
}

// Descriptor is the ordered list of fields of one target together
// with the prefix declared by the target.
type Descriptor struct {
	// Prefix is prepended verbatim to every field key.
	Prefix string
	Fields []Metadata
}

// Prefix returns a Descriptor whose field keys are prefixed with prefix.
func Prefix(prefix string, fields ...Metadata) Descriptor {
	return Descriptor{Prefix: prefix, Fields: fields}
}

// Fields returns a Descriptor without a prefix.
func Fields(fields ...Metadata) Descriptor {
	return Descriptor{Fields: fields}
}

// Target is implemented by types which describe their own bindings.
type Target interface {
	Bindings() Descriptor
}

var keyPattern = regexp.MustCompile(`^[^=\s]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	err := v.RegisterValidation("envkey", func(fl validator.FieldLevel) bool {
		return keyPattern.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}
	return v
}

// Validate reports the first field whose metadata is inconsistent.
func (d Descriptor) Validate() error {
	for _, m := range d.Fields {
		err := m.validate()
		if err != nil {
			return err
		}
	}
	return nil
}

func (m Metadata) validate() error {
	err := validate.Struct(m)
	if err != nil {
		return InvalidDescriptorError{Field: m.Name, Cause: err}
	}
	if m.Ignored {
		return nil
	}

	v := reflect.ValueOf(m.Target)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return InvalidTargetError{Field: m.Name, Type: reflect.TypeOf(m.Target)}
	}
	return nil
}
