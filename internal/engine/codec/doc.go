// Package codec implements the low-level Unicode encoding forms used by the
// ustring package: UTF-16 surrogate pairs and the original (up to six byte)
// UTF-8 layout.
//
// Everything here is a pure function over code units, bytes and runes. The
// UTF-16 side is deliberately permissive: unpaired surrogates are passed
// through as single units so that already malformed UTF-16 survives a round
// trip. The UTF-8 side is strict: [Validate] rejects bad header bytes, bad
// continuation bytes, truncated sequences and overlong encodings with an
// error that matches [ErrInvalidEncoding].
//
// Basic usage:
//
//	units, n := codec.EncodeScalar(0x1F600) // {0xD83D, 0xDE00}, 2
//	r, size := codec.DecodePair(units[0], units[1])
//
//	count, err := codec.Validate([]byte("héllo"))
//	if errors.Is(err, codec.ErrInvalidEncoding) {
//	    // reject input
//	}
package codec
