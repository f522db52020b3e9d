// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package binding

import (
	"fmt"
	"reflect"
)

// RequiredValueMissingError occurs when a required field has neither
// a value in the store nor a default.
type RequiredValueMissingError struct {
	Field   string
	Key     string
	Message string
}

// Error implements the error interface.
func (e RequiredValueMissingError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("required value missing for key: %s", e.Key)
}

// FieldError wraps a conversion failure with the identity of the field.
type FieldError struct {
	Field string
	Key   string
	Cause error
}

// Error implements the error interface.
func (e FieldError) Error() string {
	return fmt.Sprintf("failed to bind field %s from key %s: %s", e.Field, e.Key, e.Cause)
}

// Unwrap implements the implicit interface for usage with errors.Is and errors.As.
func (e FieldError) Unwrap() error {
	return e.Cause
}

// InvalidDescriptorError occurs when a field's Metadata is inconsistent,
// e.g. a bound field without a key.
type InvalidDescriptorError struct {
	Field string
	Cause error
}

// Error implements the error interface.
func (e InvalidDescriptorError) Error() string {
	return fmt.Sprintf("invalid binding for field %q: %s", e.Field, e.Cause)
}

// Unwrap implements the implicit interface for usage with errors.Is and errors.As.
func (e InvalidDescriptorError) Unwrap() error {
	return e.Cause
}

// InvalidTargetError occurs when a bound field does not point to
// settable memory.
type InvalidTargetError struct {
	Field string
	Type  reflect.Type
}

// Error implements the error interface.
func (e InvalidTargetError) Error() string {
	return fmt.Sprintf("field %q must target a non-nil pointer: got %v", e.Field, e.Type)
}
