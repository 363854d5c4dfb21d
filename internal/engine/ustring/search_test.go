package ustring

import (
	"errors"
	"testing"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"abc", "abc", 0},
		{"abc", "abd", -1},
		{"abd", "abc", 1},
		{"ab", "abc", -1},
		{"abc", "ab", 1},
		{"", "", 0},
		{"", "a", -1},
	}

	for _, tt := range tests {
		a, b := mustUTF8(t, tt.a), mustUTF8(t, tt.b)
		if got := a.Compare(b); got != tt.want {
			t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		if got, _ := a.CompareUTF8(tt.b); got != tt.want {
			t.Errorf("CompareUTF8(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		if got := a.CompareUnits(b.Units()); got != tt.want {
			t.Errorf("CompareUnits(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		if a.Equal(b) != (tt.want == 0) {
			t.Errorf("Equal(%q, %q) = %v", tt.a, tt.b, a.Equal(b))
		}
		if a.Less(b) != (tt.want < 0) {
			t.Errorf("Less(%q, %q) = %v", tt.a, tt.b, a.Less(b))
		}
	}
}

func TestCompareCodeUnitOrder(t *testing.T) {
	// U+FF5E sorts after a surrogate pair in code point order but before it
	// by code unit.
	bmp := FromRune(0xFF5E)
	supp := FromRune(0x1F600)
	if bmp.Compare(supp) != 1 {
		t.Errorf("Compare(U+FF5E, U+1F600) = %d, want 1", bmp.Compare(supp))
	}
}

func TestCompareRange(t *testing.T) {
	s := mustUTF8(t, "abcd")

	if got, err := s.CompareRange(1, 2, mustUTF8(t, "bc")); err != nil || got != 0 {
		t.Errorf("CompareRange(1, 2, bc) = (%d, %v), want 0", got, err)
	}
	if got, _ := s.CompareRange(1, NPos, mustUTF8(t, "bc")); got != 1 {
		t.Errorf("CompareRange(1, NPos, bc) = %d, want 1", got)
	}
	if _, err := s.CompareRange(5, 1, New()); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("CompareRange(5, 1) error = %v, want ErrIndexOutOfRange", err)
	}
	if _, err := s.CompareUTF8("\xC0\x80"); !errors.Is(err, ErrInvalidEncoding) {
		t.Errorf("CompareUTF8 error = %v, want ErrInvalidEncoding", err)
	}
}

func TestFind(t *testing.T) {
	s := mustUTF8(t, "hello world")

	tests := []struct {
		needle string
		from   int
		want   int
	}{
		{"o", 0, 4},
		{"o", 5, 7},
		{"o", 8, NPos},
		{"world", 0, 6},
		{"hello", 1, NPos},
		{"x", 0, NPos},
		{"", 3, 3},
		{"", 11, 11},
		{"o", 12, NPos},
		{"o", -1, NPos},
		{"hello world!", 0, NPos},
	}

	for _, tt := range tests {
		if got := s.Find(mustUTF8(t, tt.needle), tt.from); got != tt.want {
			t.Errorf("Find(%q, %d) = %d, want %d", tt.needle, tt.from, got, tt.want)
		}
		if got, err := s.FindUTF8(tt.needle, tt.from); err != nil || got != tt.want {
			t.Errorf("FindUTF8(%q, %d) = (%d, %v), want %d", tt.needle, tt.from, got, err, tt.want)
		}
	}

	if got := s.FindRune('w', 0); got != 6 {
		t.Errorf("FindRune('w') = %d, want 6", got)
	}
	if _, err := s.FindUTF8("\xFF", 0); !errors.Is(err, ErrInvalidEncoding) {
		t.Errorf("FindUTF8 error = %v, want ErrInvalidEncoding", err)
	}
}

func TestRFind(t *testing.T) {
	s := mustUTF8(t, "hello world")

	tests := []struct {
		needle string
		from   int
		want   int
	}{
		{"o", NPos, 7},
		{"o", 6, 4},
		{"o", 3, NPos},
		{"hello", NPos, 0},
		{"world", 5, NPos},
		{"world", 6, 6},
		{"", NPos, 11},
		{"hello world!", NPos, NPos},
	}

	for _, tt := range tests {
		if got := s.RFind(mustUTF8(t, tt.needle), tt.from); got != tt.want {
			t.Errorf("RFind(%q, %d) = %d, want %d", tt.needle, tt.from, got, tt.want)
		}
	}

	if got := s.RFindRune('l', NPos); got != 9 {
		t.Errorf("RFindRune('l') = %d, want 9", got)
	}
}

func TestFindSupplementary(t *testing.T) {
	s := FromUnits([]uint16{'a', 0xD83D, 0xDE00, 'b', 0xD83D, 0xDE00})

	if got := s.FindRune(0x1F600, 0); got != 1 {
		t.Errorf("FindRune = %d, want 1", got)
	}
	if got := s.FindRune(0x1F600, 2); got != 4 {
		t.Errorf("FindRune from 2 = %d, want 4", got)
	}
	if got := s.RFindRune(0x1F600, NPos); got != 4 {
		t.Errorf("RFindRune = %d, want 4", got)
	}
	if got := s.FindUnits([]uint16{0xDE00}, 0); got != 2 {
		t.Errorf("FindUnits(trail) = %d, want 2", got)
	}
}

func TestFindFirstOf(t *testing.T) {
	s := mustUTF8(t, "hello world")

	tests := []struct {
		name string
		set  string
		from int
		n    int
		not  bool
		want int
	}{
		{"of", "ow", 0, NPos, false, 4},
		{"of from", "ow", 5, NPos, false, 6},
		{"of limited", "o", 0, 3, false, NPos},
		{"of limit reaches", "o", 0, 5, false, 4},
		{"of none", "xyz", 0, NPos, false, NPos},
		{"of empty set", "", 0, NPos, false, NPos},
		{"of past end", "h", 11, NPos, false, NPos},
		{"not of", "hel", 0, NPos, true, 4},
		{"not of all", "helo wrd", 0, NPos, true, NPos},
		{"not of empty set", "", 3, NPos, true, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := mustUTF8(t, tt.set)
			var got int
			if tt.not {
				got = s.FindFirstNotOf(set, tt.from, tt.n)
			} else {
				got = s.FindFirstOf(set, tt.from, tt.n)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFindLastOf(t *testing.T) {
	s := mustUTF8(t, "hello world")

	tests := []struct {
		name string
		set  string
		from int
		n    int
		not  bool
		want int
	}{
		{"of", "o", NPos, NPos, false, 7},
		{"of from", "o", 6, NPos, false, 4},
		{"of past end", "d", 50, NPos, false, 10},
		{"of limited", "h", NPos, 3, false, NPos},
		{"of limit reaches", "r", NPos, 3, false, 8},
		{"of none", "xyz", NPos, NPos, false, NPos},
		{"not of", "dl", NPos, NPos, true, 8},
		{"not of all", "helo wrd", NPos, NPos, true, NPos},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := mustUTF8(t, tt.set)
			var got int
			if tt.not {
				got = s.FindLastNotOf(set, tt.from, tt.n)
			} else {
				got = s.FindLastOf(set, tt.from, tt.n)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}

	if got := New().FindLastOf(mustUTF8(t, "a"), NPos, NPos); got != NPos {
		t.Errorf("FindLastOf on empty string = %d, want NPos", got)
	}
}

func TestFindOfSurrogates(t *testing.T) {
	smile := FromRune(0x1F600)

	t.Run("first of pair", func(t *testing.T) {
		s := FromUnits([]uint16{'a', 0xD83D, 0xDE00, 'b'})
		if got := s.FindFirstOf(smile, 0, NPos); got != 1 {
			t.Errorf("FindFirstOf = %d, want 1", got)
		}
	})

	t.Run("first not of skips whole pair", func(t *testing.T) {
		s := FromUnits([]uint16{0xD83D, 0xDE00, 'x'})
		if got := s.FindFirstNotOf(smile, 0, NPos); got != 2 {
			t.Errorf("FindFirstNotOf = %d, want 2", got)
		}
	})

	t.Run("last of trailing pair", func(t *testing.T) {
		s := FromUnits([]uint16{'a', 0xD83D, 0xDE00})
		if got := s.FindLastOf(smile, NPos, NPos); got != 1 {
			t.Errorf("FindLastOf = %d, want 1", got)
		}
		if got := s.FindLastOf(mustUTF8(t, "a"), NPos, NPos); got != 0 {
			t.Errorf("FindLastOf('a') = %d, want 0", got)
		}
	})

	t.Run("last of mid pair", func(t *testing.T) {
		s := FromUnits([]uint16{'a', 0xD83D, 0xDE00, 'b'})
		if got := s.FindLastOf(smile, NPos, NPos); got != 1 {
			t.Errorf("FindLastOf = %d, want 1", got)
		}
	})

	t.Run("last not of skips whole pair", func(t *testing.T) {
		s := FromUnits([]uint16{'x', 0xD83D, 0xDE00})
		if got := s.FindLastNotOf(smile, NPos, NPos); got != 0 {
			t.Errorf("FindLastNotOf = %d, want 0", got)
		}
	})

	t.Run("set halves do not match pairs", func(t *testing.T) {
		s := FromUnits([]uint16{0xD83D, 0xDE00})
		halves := FromUnits([]uint16{0xDE00, 0xD83D})
		if got := s.FindFirstOf(halves, 0, NPos); got != NPos {
			t.Errorf("FindFirstOf(halves) = %d, want NPos", got)
		}
	})

	t.Run("lone surrogate in set", func(t *testing.T) {
		s := FromUnits([]uint16{'a', 0xDC00})
		set := FromUnits([]uint16{0xDC00})
		if got := s.FindLastOf(set, NPos, NPos); got != 1 {
			t.Errorf("FindLastOf(lone trail) = %d, want 1", got)
		}
	})
}
