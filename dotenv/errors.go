// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package dotenv

import (
	"errors"
	"fmt"
)

var (
	// ErrNoMatch is the reason reported when text does not
	// match the key=value grammar.
	ErrNoMatch = errors.New("text does not match KEY=value")

	// ErrUnbalancedQuotes is the reason reported when a value
	// contains a stray quote.
	ErrUnbalancedQuotes = errors.New("unbalanced quotes")

	// ErrUnterminatedQuote is the reason reported when the input
	// ends before a multi-line value was closed.
	ErrUnterminatedQuote = errors.New("unterminated quoted value")
)

// SourceUnavailableError occurs when neither the filesystem nor any
// resource filesystem contains the requested location.
type SourceUnavailableError struct {
	Location string
	Cause    error
}

// Error implements the error interface.
func (e SourceUnavailableError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("dotenv source unavailable: %s", e.Location)
	}
	return fmt.Sprintf("dotenv source unavailable: %s: %s", e.Location, e.Cause)
}

// Unwrap implements the implicit interface for usage with errors.Is and errors.As.
func (e SourceUnavailableError) Unwrap() error {
	return e.Cause
}

// MalformedEntryError occurs when one logical entry cannot be parsed.
// Line is the 1-based physical line the entry started on. Text is left
// out of Error since the entry may hold a secret.
type MalformedEntryError struct {
	Line   int
	Text   string
	Reason error
}

// Error implements the error interface.
func (e MalformedEntryError) Error() string {
	return fmt.Sprintf("malformed entry on line %d: %s", e.Line, e.Reason)
}

// Unwrap implements the implicit interface for usage with errors.Is and errors.As.
func (e MalformedEntryError) Unwrap() error {
	return e.Reason
}
