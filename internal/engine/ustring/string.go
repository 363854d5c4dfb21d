package ustring

import (
	"fmt"
	"slices"

	"github.com/dshills/utfstring/internal/engine/codec"
)

// String is a mutable sequence of UTF-16 code units.
// The zero value is an empty string ready to use.
type String struct {
	units []uint16
	cache representation // nil when nothing is cached
}

// New creates an empty string.
func New() *String {
	return &String{}
}

// Repeat creates a string holding n copies of unit.
func Repeat(n int, unit uint16) *String {
	s := &String{}
	s.AppendUnits(repeatUnits(n, unit)...)
	return s
}

// FromUnits creates a string from a copy of units. The units are taken as is;
// unpaired surrogates are preserved.
func FromUnits(units []uint16) *String {
	return &String{units: slices.Clone(units)}
}

// FromRune creates a string holding the single character r.
func FromRune(r rune) *String {
	return &String{units: codec.AppendScalar(nil, r)}
}

// FromUTF32 creates a string from a sequence of scalar values.
// Values are not range checked.
func FromUTF32(rs []rune) *String {
	units := make([]uint16, 0, codec.EncodedUnits(rs))
	return &String{units: codec.AppendScalars(units, rs)}
}

// FromWide creates a string from platform wide characters.
func FromWide(w []WideChar) *String {
	return &String{units: appendWide(make([]uint16, 0, len(w)), w)}
}

// FromUTF8 creates a string from UTF-8 text.
// Returns an error matching ErrInvalidEncoding if s is malformed.
func FromUTF8(s string) (*String, error) {
	return FromUTF8Bytes([]byte(s))
}

// FromUTF8Bytes creates a string from UTF-8 bytes.
// Returns an error matching ErrInvalidEncoding if p is malformed.
func FromUTF8Bytes(p []byte) (*String, error) {
	units, err := codec.AppendUTF16(nil, p)
	if err != nil {
		return nil, err
	}
	return &String{units: units}, nil
}

// FromCString creates a string from NUL-terminated UTF-8 bytes. Decoding
// stops at the first NUL byte, or at the end of p if there is none.
func FromCString(p []byte) (*String, error) {
	return FromUTF8Bytes(cstring(p))
}

// Substring creates a string from n code units of src starting at index.
// An n of NPos, or one running past the end, takes the rest of src.
func Substring(src *String, index, n int) (*String, error) {
	return src.Substr(index, n)
}

// Concat returns a new string holding a followed by b.
func Concat(a, b *String) *String {
	units := make([]uint16, 0, a.Len()+b.Len())
	units = append(units, a.units...)
	units = append(units, b.units...)
	return &String{units: units}
}

// Clone returns a deep copy of s with an empty cache.
func (s *String) Clone() *String {
	return &String{units: slices.Clone(s.units)}
}

// Len returns the number of code units. It runs in constant time.
func (s *String) Len() int {
	if s == nil {
		return 0
	}
	return len(s.units)
}

// CharacterCount returns the number of characters, counting a surrogate pair
// once. It walks the whole buffer, so it runs in O(n) unlike Len.
func (s *String) CharacterCount() int {
	count := 0
	for c := s.Begin(); !c.AtEnd(); c.MoveNext() {
		count++
	}
	return count
}

// IsEmpty returns true if the string has no code units.
func (s *String) IsEmpty() bool {
	return s.Len() == 0
}

// Units returns a copy of the code units.
func (s *String) Units() []uint16 {
	return slices.Clone(s.units)
}

// Capacity returns the number of code units the buffer holds without growing.
func (s *String) Capacity() int {
	return cap(s.units)
}

// Reserve grows the buffer so that at least n code units fit without
// reallocating.
func (s *String) Reserve(n int) {
	if n > cap(s.units) {
		s.units = slices.Grow(s.units, n-len(s.units))
	}
}

// Resize sets the length to n code units, padding with unit or truncating.
func (s *String) Resize(n int, unit uint16) {
	if n < 0 {
		n = 0
	}
	s.invalidate()
	if n <= len(s.units) {
		s.units = s.units[:n]
		return
	}
	s.units = append(s.units, repeatUnits(n-len(s.units), unit)...)
}

// Clear removes all content.
func (s *String) Clear() {
	s.invalidate()
	s.units = s.units[:0]
}

// Swap exchanges the contents of s and other.
func (s *String) Swap(other *String) {
	s.units, other.units = other.units, s.units
	s.invalidate()
	other.invalidate()
}

// At returns the code unit at index i.
func (s *String) At(i int) (uint16, error) {
	if err := s.checkIndex(i); err != nil {
		return 0, err
	}
	return s.units[i], nil
}

// SetAt overwrites the code unit at index i. Writing a surrogate here can
// join or split pairs; use SetChar to replace whole characters.
func (s *String) SetAt(i int, unit uint16) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	s.invalidate()
	s.units[i] = unit
	return nil
}

// Char returns the character that starts at index i. The unit at i+1 is read
// only when the unit at i is a lead surrogate. An index that lands on the
// second half of a pair, or on an unpaired surrogate, yields that unit as is.
func (s *String) Char(i int) (rune, error) {
	if err := s.checkIndex(i); err != nil {
		return 0, err
	}
	r, _ := codec.DecodeUnits(s.units[i:])
	return r, nil
}

// SetChar replaces the character starting at index i with r and returns the
// change in length: +1 when a single unit becomes a pair, -1 when a pair
// becomes a single unit, 0 otherwise. Characters before and after i keep
// their boundaries.
func (s *String) SetChar(i int, r rune) (int, error) {
	existing, err := s.Char(i)
	if err != nil {
		return 0, err
	}

	units, n := codec.EncodeScalar(r)
	oldWidth := codec.UnitsForScalar(existing)
	s.invalidate()

	switch {
	case n > oldWidth:
		s.units[i] = units[0]
		s.units = slices.Insert(s.units, i+1, units[1])
		return 1, nil
	case n < oldWidth:
		s.units = slices.Delete(s.units, i, i+1)
		s.units[i] = units[0]
		return -1, nil
	}

	s.units[i] = units[0]
	if n == 2 {
		s.units[i+1] = units[1]
	}
	return 0, nil
}

// Contains reports whether any character of s decodes to r.
func (s *String) Contains(r rune) bool {
	for c := s.Begin(); !c.AtEnd(); c.MoveNext() {
		if ch, _ := c.Char(); ch == r {
			return true
		}
	}
	return false
}

// GoString implements fmt.GoStringer, showing the raw code units.
func (s *String) GoString() string {
	return fmt.Sprintf("ustring.FromUnits(%#04x)", s.units)
}

// invalidate drops any cached representation. Every method that changes
// s.units calls it.
func (s *String) invalidate() {
	s.cache = nil
}

// checkIndex validates i as the position of an existing code unit.
func (s *String) checkIndex(i int) error {
	if i < 0 || i >= s.Len() {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, s.Len())
	}
	return nil
}

// checkPosition validates i as an insertion point, which may equal Len.
func (s *String) checkPosition(i int) error {
	if i < 0 || i > s.Len() {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrIndexOutOfRange, i, s.Len())
	}
	return nil
}

// span clamps a count starting at index to the end of the buffer.
func (s *String) span(index, n int) int {
	rest := s.Len() - index
	if n < 0 || n > rest {
		return rest
	}
	return n
}

// nextBoundary returns the character boundary after position i, which must
// be below Len. After stepping one unit it steps once more if it landed on a
// trail surrogate that follows a lead surrogate.
func (s *String) nextBoundary(i int) int {
	i++
	if i >= len(s.units) {
		return len(s.units)
	}
	if codec.IsTrailSurrogate(s.units[i]) && codec.IsLeadSurrogate(s.units[i-1]) {
		i++
	}
	return i
}

// prevBoundary returns the character boundary before position i, which must
// be above zero. The lookback mirrors nextBoundary.
func (s *String) prevBoundary(i int) int {
	i--
	if i <= 0 {
		return 0
	}
	if codec.IsTrailSurrogate(s.units[i]) && codec.IsLeadSurrogate(s.units[i-1]) {
		i--
	}
	return i
}

// scalars decodes every character without touching the cache.
func (s *String) scalars() []rune {
	rs := make([]rune, 0, s.Len())
	for c := s.Begin(); !c.AtEnd(); c.MoveNext() {
		r, _ := c.Char()
		rs = append(rs, r)
	}
	return rs
}

func repeatUnits(n int, unit uint16) []uint16 {
	if n <= 0 {
		return nil
	}
	units := make([]uint16, n)
	for i := range units {
		units[i] = unit
	}
	return units
}

func cstring(p []byte) []byte {
	for i, b := range p {
		if b == 0 {
			return p[:i]
		}
	}
	return p
}
