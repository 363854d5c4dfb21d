//go:build !windows

package ustring

import "github.com/dshills/utfstring/internal/engine/codec"

// WideChar is the platform wide character. Outside Windows it holds a whole
// UTF-32 scalar value.
type WideChar = uint32

// WideCharBits is the width of WideChar in bits.
const WideCharBits = 32

// appendWide encodes each UTF-32 wide character as one or two code units.
func appendWide(dst []uint16, w []WideChar) []uint16 {
	for _, c := range w {
		dst = codec.AppendScalar(dst, rune(c))
	}
	return dst
}

// loadWide exports one wide character per decoded character.
func (s *String) loadWide() []WideChar {
	out := make([]WideChar, 0, len(s.units))
	for c := s.Begin(); !c.AtEnd(); c.MoveNext() {
		r, _ := c.Char()
		out = append(out, WideChar(r))
	}
	return out
}
