package ustring

import (
	"slices"

	"github.com/dshills/utfstring/internal/engine/codec"
)

// Compare compares s and other code unit by code unit. It returns -1, 0 or
// +1. A proper prefix sorts first.
func (s *String) Compare(other *String) int {
	return slices.Compare(s.units, other.units)
}

// CompareUnits compares s against raw code units.
func (s *String) CompareUnits(units []uint16) int {
	return slices.Compare(s.units, units)
}

// CompareRange compares n code units of s starting at index against other.
func (s *String) CompareRange(index, n int, other *String) (int, error) {
	if err := s.checkPosition(index); err != nil {
		return 0, err
	}
	n = s.span(index, n)
	return slices.Compare(s.units[index:index+n], other.units), nil
}

// CompareUTF8 compares s against decoded UTF-8 text.
func (s *String) CompareUTF8(text string) (int, error) {
	units, err := codec.AppendUTF16(nil, []byte(text))
	if err != nil {
		return 0, err
	}
	return slices.Compare(s.units, units), nil
}

// Equal reports whether s and other hold the same code units. Cached
// representations play no part.
func (s *String) Equal(other *String) bool {
	return slices.Equal(s.units, other.units)
}

// Less reports whether s sorts before other by raw code unit order.
func (s *String) Less(other *String) bool {
	return s.Compare(other) < 0
}

// Find returns the index of the first occurrence of needle at or after from,
// or NPos.
func (s *String) Find(needle *String, from int) int {
	return s.FindUnits(needle.units, from)
}

// FindUnits returns the index of the first occurrence of units at or after
// from, or NPos. An empty needle matches at from.
func (s *String) FindUnits(units []uint16, from int) int {
	if from < 0 || from > s.Len() {
		return NPos
	}
	last := s.Len() - len(units)
	for i := from; i <= last; i++ {
		if slices.Equal(s.units[i:i+len(units)], units) {
			return i
		}
	}
	return NPos
}

// FindRune returns the index of the first occurrence of the character r at or
// after from, or NPos. The match is on r's code units, so a search for a
// supplementary character finds its surrogate pair.
func (s *String) FindRune(r rune, from int) int {
	units, n := codec.EncodeScalar(r)
	return s.FindUnits(units[:n], from)
}

// FindUTF8 returns the index of the first occurrence of decoded text at or
// after from, or NPos.
func (s *String) FindUTF8(text string, from int) (int, error) {
	units, err := codec.AppendUTF16(nil, []byte(text))
	if err != nil {
		return NPos, err
	}
	return s.FindUnits(units, from), nil
}

// RFind returns the index of the last occurrence of needle that starts at or
// before from, or NPos. A from of NPos searches the whole string.
func (s *String) RFind(needle *String, from int) int {
	return s.RFindUnits(needle.units, from)
}

// RFindUnits returns the index of the last occurrence of units that starts at
// or before from, or NPos.
func (s *String) RFindUnits(units []uint16, from int) int {
	last := s.Len() - len(units)
	if last < 0 {
		return NPos
	}
	if from < 0 || from > last {
		from = last
	}
	for i := from; i >= 0; i-- {
		if slices.Equal(s.units[i:i+len(units)], units) {
			return i
		}
	}
	return NPos
}

// RFindRune returns the index of the last occurrence of the character r that
// starts at or before from, or NPos.
func (s *String) RFindRune(r rune, from int) int {
	units, n := codec.EncodeScalar(r)
	return s.RFindUnits(units[:n], from)
}

// FindFirstOf returns the index of the first character at or after from whose
// scalar value appears in set, or NPos. At most n code units are examined;
// NPos means no limit. The scan decodes each character and moves past all of
// its units, so it never stops inside a surrogate pair it started on.
func (s *String) FindFirstOf(set *String, from, n int) int {
	return s.scanForward(set.scalars(), from, n, true)
}

// FindFirstNotOf returns the index of the first character at or after from
// whose scalar value does not appear in set, or NPos.
func (s *String) FindFirstNotOf(set *String, from, n int) int {
	return s.scanForward(set.scalars(), from, n, false)
}

// FindLastOf returns the index of the last character at or before from whose
// scalar value appears in set, or NPos. A from of NPos, or past the end,
// starts at the last code unit. At most n code units are examined.
func (s *String) FindLastOf(set *String, from, n int) int {
	return s.scanBackward(set.scalars(), from, n, true)
}

// FindLastNotOf returns the index of the last character at or before from
// whose scalar value does not appear in set, or NPos.
func (s *String) FindLastNotOf(set *String, from, n int) int {
	return s.scanBackward(set.scalars(), from, n, false)
}

// scanForward probes characters starting at from, advancing by the full
// width of each decoded character.
func (s *String) scanForward(set []rune, from, n int, want bool) int {
	if from < 0 {
		return NPos
	}
	for i := 0; (n < 0 || i < n) && from+i < s.Len(); {
		r, _ := codec.DecodeUnits(s.units[from+i:])
		if slices.Contains(set, r) == want {
			return from + i
		}
		i += codec.UnitsForScalar(r)
	}
	return NPos
}

// scanBackward probes characters ending at or before from. Reverse boundary
// detection has to look behind the probe: if it sits on a trail surrogate
// whose predecessor is a lead surrogate, the character starts one unit to the
// left and that unit counts against n as well.
func (s *String) scanBackward(set []rune, from, n int, want bool) int {
	length := s.Len()
	if length == 0 {
		return NPos
	}
	if from < 0 || from >= length {
		from = length - 1
	}

	for i := 0; (n < 0 || i < n) && from-i >= 0; i++ {
		j := from - i
		if j > 0 && codec.IsTrailSurrogate(s.units[j]) && codec.IsLeadSurrogate(s.units[j-1]) {
			i++
			j = from - i
		}
		r, _ := codec.DecodeUnits(s.units[j:])
		if slices.Contains(set, r) == want {
			return j
		}
	}
	return NPos
}
