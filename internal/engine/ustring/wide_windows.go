//go:build windows

package ustring

// WideChar is the platform wide character. On Windows it is a UTF-16 code
// unit.
type WideChar = uint16

// WideCharBits is the width of WideChar in bits.
const WideCharBits = 16

// appendWide copies UTF-16 wide characters straight into the buffer, so
// unpaired surrogates survive.
func appendWide(dst []uint16, w []WideChar) []uint16 {
	return append(dst, w...)
}

// loadWide exports the buffer unit for unit.
func (s *String) loadWide() []WideChar {
	out := make([]WideChar, len(s.units))
	copy(out, s.units)
	return out
}
