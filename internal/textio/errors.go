package textio

import "errors"

// Errors returned by decoding and encoding.
var (
	// ErrUnknownEncoding indicates an encoding name that is not supported.
	ErrUnknownEncoding = errors.New("unknown encoding")

	// ErrOddLength indicates UTF-16 input with a dangling byte.
	ErrOddLength = errors.New("odd number of bytes in UTF-16 input")

	// ErrUnrepresentable indicates a character the target encoding cannot hold.
	ErrUnrepresentable = errors.New("character not representable in encoding")
)
