package codec

import (
	"errors"
	"fmt"
)

// ErrInvalidEncoding indicates a UTF-8 byte sequence with a bad header byte,
// a bad continuation byte, a truncated tail or an overlong encoding.
var ErrInvalidEncoding = errors.New("invalid UTF-8 encoding")

// EncodingError describes where and why a UTF-8 sequence was rejected.
type EncodingError struct {
	Offset int    // Byte offset of the offending sequence start
	Reason string // Short description of the failure
}

// Error implements the error interface.
func (e *EncodingError) Error() string {
	return fmt.Sprintf("%s at byte %d: %s", ErrInvalidEncoding.Error(), e.Offset, e.Reason)
}

// Unwrap returns ErrInvalidEncoding so errors.Is works on wrapped values.
func (e *EncodingError) Unwrap() error {
	return ErrInvalidEncoding
}

// Failure reasons reported by EncodingError.
const (
	reasonBadHeader       = "invalid sequence header byte"
	reasonBadContinuation = "bad continuation byte"
	reasonTruncated       = "truncated sequence"
	reasonOverlong        = "overlong sequence"
)

func encodingError(offset int, reason string) error {
	return &EncodingError{Offset: offset, Reason: reason}
}
