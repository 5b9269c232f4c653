package barcodefont

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when the input cannot be encoded under the
	// requested symbology.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyInput is returned when there is nothing to encode.
	ErrEmptyInput = fmt.Errorf("%w: empty input", ErrInvalidInput)

	// ErrNotImplemented is returned for image encoding requests.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedSymbology is returned when no encoder is registered for
	// the requested symbology.
	ErrUnsupportedSymbology = errors.New("unsupported symbology")

	// ErrChecksum is returned when a symbol sequence's checksum does not match.
	ErrChecksum = errors.New("checksum error")

	// ErrFormat is returned when a symbol sequence is structurally malformed.
	ErrFormat = errors.New("format error")
)

// InputError names the offending character and its position (in runes).
type InputError struct {
	Pos    int
	Char   rune
	Reason string
}

func (e *InputError) Error() string {
	if e.Char < 0 {
		return fmt.Sprintf("invalid input at position %d: %s", e.Pos, e.Reason)
	}
	return fmt.Sprintf("invalid input at position %d (%q, value=%d): %s", e.Pos, e.Char, e.Char, e.Reason)
}

// Unwrap makes errors.Is(err, ErrInvalidInput) hold.
func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}
