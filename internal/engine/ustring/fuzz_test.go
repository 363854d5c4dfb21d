package ustring

import (
	"slices"
	"testing"
	"unicode/utf8"
)

// FuzzFromUTF8 checks that accepted input survives an import and export.
func FuzzFromUTF8(f *testing.F) {
	f.Add([]byte("hello"))
	f.Add([]byte("naïve 😀"))
	f.Add([]byte{0xED, 0xA0, 0x80})
	f.Add([]byte{0xC0, 0x80})

	f.Fuzz(func(t *testing.T, p []byte) {
		s, err := FromUTF8Bytes(p)
		if err != nil {
			return
		}
		if utf8.Valid(p) && s.AsUTF8() != string(p) {
			t.Errorf("round trip of % x gave % x", p, []byte(s.AsUTF8()))
		}
		if s.CharacterCount() > s.Len() {
			t.Errorf("CharacterCount %d exceeds Len %d", s.CharacterCount(), s.Len())
		}
	})
}

// FuzzSetChar checks the length delta of SetChar at arbitrary positions over
// arbitrary, possibly malformed, buffers.
func FuzzSetChar(f *testing.F) {
	f.Add([]byte{0, 1, 2}, uint16(1), int32(0x1F600))
	f.Add([]byte{1, 3}, uint16(0), int32('x'))

	f.Fuzz(func(t *testing.T, seed []byte, at uint16, v int32) {
		if len(seed) == 0 {
			return
		}
		s := FromUnits(surrogateHeavy(seed))
		i := int(at) % s.Len()
		r := validScalar(uint32(v))

		before := s.Units()
		delta, err := s.SetChar(i, r)
		if err != nil {
			t.Fatalf("SetChar(%d) on %#04x: %v", i, before, err)
		}
		if s.Len() != len(before)+delta {
			t.Errorf("Len %d after delta %d from %d", s.Len(), delta, len(before))
		}
		if !slices.Equal(s.Units()[:i], before[:i]) {
			t.Errorf("units before %d changed: %#04x -> %#04x", i, before, s.Units())
		}
	})
}

// FuzzCursorSymmetry checks that forward and reverse walks agree.
func FuzzCursorSymmetry(f *testing.F) {
	f.Add([]byte{0, 1, 3, 2, 4})
	f.Add([]byte{2, 2, 4, 4})

	f.Fuzz(func(t *testing.T, seed []byte) {
		s := FromUnits(surrogateHeavy(seed))

		var fwd []int
		for c := s.Begin(); !c.AtEnd(); c.MoveNext() {
			fwd = append(fwd, c.Index())
		}
		var rev []int
		for c := s.RBegin(); !c.AtEnd(); c.MoveNext() {
			start, _ := c.charStart()
			rev = append(rev, start)
		}
		slices.Reverse(rev)
		if !slices.Equal(fwd, rev) {
			t.Errorf("forward starts %v, reverse starts %v for %#04x", fwd, rev, s.Units())
		}
	})
}
