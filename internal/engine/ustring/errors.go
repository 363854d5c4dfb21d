package ustring

import (
	"errors"

	"github.com/dshills/utfstring/internal/engine/codec"
)

// Errors returned by String operations.
var (
	// ErrInvalidEncoding indicates malformed UTF-8 input. It is the same
	// value as codec.ErrInvalidEncoding.
	ErrInvalidEncoding = codec.ErrInvalidEncoding

	// ErrIndexOutOfRange indicates a code unit index outside the buffer.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// NPos is returned by search operations when nothing matches, and accepted as
// a count meaning "through the end of the string".
const NPos = -1
