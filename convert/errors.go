// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package convert

import (
	"fmt"
	"reflect"
	"strings"
)

// UnsupportedTypeError occurs when no converter, enumeration or
// collection strategy applies to the requested type.
type UnsupportedTypeError struct {
	Type reflect.Type
}

// Error implements the error interface.
func (e UnsupportedTypeError) Error() string {
	if e.Type == nil {
		return "unsupported type: <nil>"
	}
	return fmt.Sprintf("unsupported type: %s", e.Type)
}

// UnknownEnumMemberError occurs when a raw value does not name any
// member of an enumeration type.
type UnknownEnumMemberError struct {
	Type    reflect.Type
	Value   string
	Members []string
}

// Error implements the error interface.
func (e UnknownEnumMemberError) Error() string {
	return fmt.Sprintf("%q is not a member of %s [%s]", e.Value, e.Type, strings.Join(e.Members, ", "))
}

// Unwrap implements the implicit interface for usage with errors.Is and errors.As.
func (e UnknownEnumMemberError) Unwrap() error {
	return UnsupportedTypeError{Type: e.Type}
}

// ConversionError occurs when a converter rejects a specific raw value.
type ConversionError struct {
	Type  reflect.Type
	Raw   string
	Cause error
}

// Error implements the error interface.
func (e ConversionError) Error() string {
	return fmt.Sprintf("failed to convert %q to %s: %s", e.Raw, e.Type, e.Cause)
}

// Unwrap implements the implicit interface for usage with errors.Is and errors.As.
func (e ConversionError) Unwrap() error {
	return e.Cause
}

// UnexpectedResultTypeError occurs when a registered converter returns
// a value which cannot be assigned to the type it was registered for.
type UnexpectedResultTypeError struct {
	Expected reflect.Type
	Actual   reflect.Type
}

// Error implements the error interface.
func (e UnexpectedResultTypeError) Error() string {
	return fmt.Sprintf("converter returned %s instead of %s", e.Actual, e.Expected)
}
