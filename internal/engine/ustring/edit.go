package ustring

import (
	"slices"

	"github.com/dshills/utfstring/internal/engine/codec"
)

// splice replaces n units at index with insert. All edits funnel through
// here or through invalidate, so no mutation leaves a stale cache behind.
// index and n must already be validated.
func (s *String) splice(index, n int, insert []uint16) {
	s.invalidate()
	s.units = slices.Replace(s.units, index, index+n, insert...)
}

// unitsOf returns the units of other, copied when other is s so a splice
// never reads from the region it is rewriting.
func (s *String) unitsOf(other *String) []uint16 {
	if other == s {
		return slices.Clone(other.units)
	}
	return other.units
}

// Assign replaces the content of s with a copy of other.
func (s *String) Assign(other *String) {
	if other == s {
		return
	}
	s.AssignUnits(other.units)
}

// AssignUnits replaces the content of s with a copy of units.
func (s *String) AssignUnits(units []uint16) {
	s.invalidate()
	s.units = append(s.units[:0], units...)
}

// AssignRepeat replaces the content of s with n copies of r.
func (s *String) AssignRepeat(n int, r rune) {
	s.Clear()
	s.AppendRepeat(n, r)
}

// AssignUTF8 replaces the content of s with decoded UTF-8. On error s is
// left unchanged.
func (s *String) AssignUTF8(text string) error {
	units, err := codec.AppendUTF16(nil, []byte(text))
	if err != nil {
		return err
	}
	s.invalidate()
	s.units = units
	return nil
}

// AssignWide replaces the content of s with platform wide characters.
func (s *String) AssignWide(w []WideChar) {
	s.invalidate()
	s.units = appendWide(s.units[:0], w)
}

// AssignUTF32 replaces the content of s with the given scalar values.
func (s *String) AssignUTF32(rs []rune) {
	s.invalidate()
	s.units = codec.AppendScalars(s.units[:0], rs)
}

// Append adds other to the end of s.
func (s *String) Append(other *String) {
	s.AppendUnits(other.units...)
}

// AppendSubstring adds n code units of other, starting at index, to the end
// of s.
func (s *String) AppendSubstring(other *String, index, n int) error {
	if err := other.checkPosition(index); err != nil {
		return err
	}
	n = other.span(index, n)
	s.AppendUnits(other.units[index : index+n]...)
	return nil
}

// AppendUnits adds raw code units to the end of s.
func (s *String) AppendUnits(units ...uint16) {
	s.invalidate()
	s.units = append(s.units, units...)
}

// AppendRune adds one character, written as one or two code units.
func (s *String) AppendRune(r rune) {
	s.invalidate()
	s.units = codec.AppendScalar(s.units, r)
}

// AppendRepeat adds n copies of r.
func (s *String) AppendRepeat(n int, r rune) {
	if n <= 0 {
		return
	}
	s.invalidate()
	units, width := codec.EncodeScalar(r)
	s.units = slices.Grow(s.units, n*width)
	for i := 0; i < n; i++ {
		s.units = append(s.units, units[:width]...)
	}
}

// AppendUTF8 decodes text and adds it to the end of s. On error s is left
// unchanged.
func (s *String) AppendUTF8(text string) error {
	units, err := codec.AppendUTF16(nil, []byte(text))
	if err != nil {
		return err
	}
	s.AppendUnits(units...)
	return nil
}

// AppendWide adds platform wide characters to the end of s.
func (s *String) AppendWide(w []WideChar) {
	s.invalidate()
	s.units = appendWide(s.units, w)
}

// AppendUTF32 adds scalar values to the end of s.
func (s *String) AppendUTF32(rs []rune) {
	s.invalidate()
	s.units = codec.AppendScalars(s.units, rs)
}

// Insert inserts other before the code unit at index.
func (s *String) Insert(index int, other *String) error {
	return s.InsertUnits(index, s.unitsOf(other)...)
}

// InsertSubstring inserts n code units of other, starting at from, before the
// code unit at index.
func (s *String) InsertSubstring(index int, other *String, from, n int) error {
	if err := other.checkPosition(from); err != nil {
		return err
	}
	n = other.span(from, n)
	return s.InsertUnits(index, s.unitsOf(other)[from:from+n]...)
}

// InsertUnits inserts raw code units before the code unit at index.
func (s *String) InsertUnits(index int, units ...uint16) error {
	if err := s.checkPosition(index); err != nil {
		return err
	}
	s.splice(index, 0, units)
	return nil
}

// InsertRune inserts n copies of r before the code unit at index.
func (s *String) InsertRune(index, n int, r rune) error {
	if err := s.checkPosition(index); err != nil {
		return err
	}
	var tmp String
	tmp.AppendRepeat(n, r)
	s.splice(index, 0, tmp.units)
	return nil
}

// InsertUTF8 decodes text and inserts it before the code unit at index. On
// error s is left unchanged.
func (s *String) InsertUTF8(index int, text string) error {
	if err := s.checkPosition(index); err != nil {
		return err
	}
	units, err := codec.AppendUTF16(nil, []byte(text))
	if err != nil {
		return err
	}
	s.splice(index, 0, units)
	return nil
}

// InsertWide inserts platform wide characters before the code unit at index.
func (s *String) InsertWide(index int, w []WideChar) error {
	return s.InsertUnits(index, appendWide(nil, w)...)
}

// Erase removes n code units starting at index. An n of NPos, or one running
// past the end, removes the rest of the string.
func (s *String) Erase(index, n int) error {
	if err := s.checkPosition(index); err != nil {
		return err
	}
	s.splice(index, s.span(index, n), nil)
	return nil
}

// Replace replaces n code units starting at index with other.
func (s *String) Replace(index, n int, other *String) error {
	return s.ReplaceUnits(index, n, s.unitsOf(other)...)
}

// ReplaceUnits replaces n code units starting at index with raw code units.
func (s *String) ReplaceUnits(index, n int, units ...uint16) error {
	if err := s.checkPosition(index); err != nil {
		return err
	}
	s.splice(index, s.span(index, n), units)
	return nil
}

// ReplaceRepeat replaces n code units starting at index with count copies
// of r.
func (s *String) ReplaceRepeat(index, n, count int, r rune) error {
	var tmp String
	tmp.AppendRepeat(count, r)
	return s.ReplaceUnits(index, n, tmp.units...)
}

// ReplaceUTF8 replaces n code units starting at index with decoded text. On
// error s is left unchanged.
func (s *String) ReplaceUTF8(index, n int, text string) error {
	if err := s.checkPosition(index); err != nil {
		return err
	}
	units, err := codec.AppendUTF16(nil, []byte(text))
	if err != nil {
		return err
	}
	s.splice(index, s.span(index, n), units)
	return nil
}

// Substr returns a new string holding n code units starting at index. An n
// of NPos, or one running past the end, takes the rest of the string.
func (s *String) Substr(index, n int) (*String, error) {
	if err := s.checkPosition(index); err != nil {
		return nil, err
	}
	n = s.span(index, n)
	return FromUnits(s.units[index : index+n]), nil
}
