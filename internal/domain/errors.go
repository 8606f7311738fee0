package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a conversion failure. Kinds double as metric labels.
type ErrorKind string

const (
	KindEmptyInput      ErrorKind = "empty_input"
	KindInvalidNumber   ErrorKind = "invalid_number"
	KindUnknownUnit     ErrorKind = "unknown_unit"
	KindUnknownCategory ErrorKind = "unknown_category"
	KindOutOfRange      ErrorKind = "out_of_range"

	// KindInternal labels errors that did not originate in the engine.
	KindInternal ErrorKind = "internal"
)

// ConversionError describes why a conversion request was rejected. Input
// holds the offending value, unit or category as submitted.
type ConversionError struct {
	Kind  ErrorKind
	Input string
}

// Sentinels for errors.Is. Any *ConversionError of the same Kind matches.
var (
	ErrEmptyInput      = &ConversionError{Kind: KindEmptyInput}
	ErrInvalidNumber   = &ConversionError{Kind: KindInvalidNumber}
	ErrUnknownUnit     = &ConversionError{Kind: KindUnknownUnit}
	ErrUnknownCategory = &ConversionError{Kind: KindUnknownCategory}
	ErrOutOfRange      = &ConversionError{Kind: KindOutOfRange}
)

func (e *ConversionError) Error() string {
	switch e.Kind {
	case KindEmptyInput:
		return "empty input"
	case KindInvalidNumber:
		return fmt.Sprintf("invalid number %q", e.Input)
	case KindUnknownUnit:
		return fmt.Sprintf("unknown unit %q", e.Input)
	case KindUnknownCategory:
		return fmt.Sprintf("unknown category %q", e.Input)
	case KindOutOfRange:
		return fmt.Sprintf("converted value of %q out of range", e.Input)
	default:
		return fmt.Sprintf("conversion failed: %s", e.Kind)
	}
}

// Is matches any ConversionError with the same Kind.
func (e *ConversionError) Is(target error) bool {
	t, ok := target.(*ConversionError)
	return ok && t.Kind == e.Kind
}

// Message returns the text shown to the user.
func (e *ConversionError) Message() string {
	switch e.Kind {
	case KindEmptyInput:
		return "Please enter a value to convert."
	case KindInvalidNumber:
		return "Invalid number entered."
	case KindUnknownUnit:
		if e.Input == "" {
			return "Please choose both units."
		}
		return fmt.Sprintf("Unknown unit: %s.", e.Input)
	case KindUnknownCategory:
		return fmt.Sprintf("Unknown conversion category: %s.", e.Input)
	case KindOutOfRange:
		return "The converted value is too large to display."
	default:
		return "Conversion failed."
	}
}

// UserMessage renders err for display. Errors that are not conversion errors
// get a generic message so internal details never reach the page.
func UserMessage(err error) string {
	var ce *ConversionError
	if errors.As(err, &ce) {
		return ce.Message()
	}
	return "Something went wrong. Please try again."
}

// KindOf returns the ErrorKind of err, or KindInternal for foreign errors.
func KindOf(err error) ErrorKind {
	var ce *ConversionError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindInternal
}
