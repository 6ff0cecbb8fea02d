package validate

import (
	"errors"
	"fmt"
)

// Field identifies which metadata field a validation error belongs to.
type Field string

// Metadata fields subject to validation.
const (
	FieldAuthor    Field = "author"
	FieldYear      Field = "year"
	FieldTitle     Field = "title"
	FieldVenue     Field = "venue"
	FieldPublisher Field = "publisher"
)

// Kind classifies why a field was rejected.
type Kind string

// Rejection reasons.
const (
	KindEmptyName              Kind = "empty_name"
	KindInvalidCharacter       Kind = "invalid_character"
	KindDigitInName            Kind = "digit_in_name"
	KindDoubledPunctuation     Kind = "doubled_punctuation"
	KindImproperCapitalization Kind = "improper_capitalization"
	KindYearOutOfRange         Kind = "year_out_of_range"
	KindEmptyTitle             Kind = "empty_title"
	KindEmptyField             Kind = "empty_field"
)

// Error reports a single field validation failure. Every failure carries the
// field and the offending value so a batch run can emit useful per-file
// diagnostics instead of a bare boolean.
type Error struct {
	Field Field
	Value string // offending raw value
	Kind  Kind
	Part  string // offending name part, set for KindImproperCapitalization
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindEmptyName:
		return fmt.Sprintf("%s: family name must have at least 2 non-space characters, got %q", e.Field, e.Value)
	case KindInvalidCharacter:
		return fmt.Sprintf("%s: invalid character in name %q", e.Field, e.Value)
	case KindDigitInName:
		return fmt.Sprintf("%s: digit in name %q", e.Field, e.Value)
	case KindDoubledPunctuation:
		return fmt.Sprintf("%s: doubled punctuation in name %q", e.Field, e.Value)
	case KindImproperCapitalization:
		return fmt.Sprintf("%s: name part %q should start with an uppercase letter in %q", e.Field, e.Part, e.Value)
	case KindYearOutOfRange:
		return fmt.Sprintf("%s: year %s outside accepted range", e.Field, e.Value)
	case KindEmptyTitle:
		return fmt.Sprintf("%s: title is empty", e.Field)
	case KindEmptyField:
		return fmt.Sprintf("%s: field is empty", e.Field)
	default:
		return fmt.Sprintf("%s: invalid value %q", e.Field, e.Value)
	}
}

// IsKind reports whether err is a validation *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ve *Error
	return errors.As(err, &ve) && ve.Kind == kind
}

func newError(field Field, value string, kind Kind) *Error {
	return &Error{Field: field, Value: value, Kind: kind}
}
