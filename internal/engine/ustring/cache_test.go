package ustring

import (
	"slices"
	"testing"

	"github.com/dshills/utfstring/internal/engine/codec"
)

// wideOf builds platform wide characters for text.
func wideOf(t testing.TB, text string) []WideChar {
	t.Helper()
	var w []WideChar
	for _, r := range text {
		if WideCharBits == 32 {
			w = append(w, WideChar(r))
			continue
		}
		units, n := codec.EncodeScalar(r)
		for _, u := range units[:n] {
			w = append(w, WideChar(u))
		}
	}
	return w
}

func TestCacheLifecycle(t *testing.T) {
	s := mustUTF8(t, "ab")
	if s.cached() != "none" {
		t.Fatalf("fresh string cache = %s, want none", s.cached())
	}

	if got := s.AsUTF8(); got != "ab" {
		t.Fatalf("AsUTF8() = %q, want %q", got, "ab")
	}
	if s.cached() != "utf8" {
		t.Errorf("cache after AsUTF8 = %s, want utf8", s.cached())
	}
	if got := s.AsUTF8(); got != "ab" {
		t.Errorf("cached AsUTF8() = %q, want %q", got, "ab")
	}

	s.AppendRune('c')
	if s.cached() != "none" {
		t.Errorf("cache after append = %s, want none", s.cached())
	}
	if got := s.AsUTF8(); got != "abc" {
		t.Errorf("AsUTF8() after append = %q, want %q", got, "abc")
	}

	if got := s.AsUTF32(); !slices.Equal(got, []rune("abc")) {
		t.Errorf("AsUTF32() = %q, want %q", got, []rune("abc"))
	}
	if s.cached() != "utf32" {
		t.Errorf("cache after AsUTF32 = %s, want utf32", s.cached())
	}

	_ = s.AsWide()
	if s.cached() != "wide" {
		t.Errorf("cache after AsWide = %s, want wide", s.cached())
	}
}

func TestMutationsInvalidate(t *testing.T) {
	mutations := []struct {
		name string
		fn   func(s *String)
	}{
		{"SetAt", func(s *String) { _ = s.SetAt(0, 'x') }},
		{"SetChar", func(s *String) { _, _ = s.SetChar(0, 'x') }},
		{"Append", func(s *String) { s.Append(FromRune('x')) }},
		{"AppendUnits", func(s *String) { s.AppendUnits('x') }},
		{"AppendUTF8", func(s *String) { _ = s.AppendUTF8("x") }},
		{"AppendUTF32", func(s *String) { s.AppendUTF32([]rune{'x'}) }},
		{"AppendWide", func(s *String) { s.AppendWide(wideOf(t, "x")) }},
		{"AppendRepeat", func(s *String) { s.AppendRepeat(2, 'x') }},
		{"Assign", func(s *String) { s.Assign(FromRune('x')) }},
		{"AssignUTF8", func(s *String) { _ = s.AssignUTF8("x") }},
		{"Insert", func(s *String) { _ = s.InsertUnits(0, 'x') }},
		{"InsertRune", func(s *String) { _ = s.InsertRune(0, 1, 'x') }},
		{"Erase", func(s *String) { _ = s.Erase(0, 1) }},
		{"Replace", func(s *String) { _ = s.ReplaceUnits(0, 1, 'x') }},
		{"Resize", func(s *String) { s.Resize(5, 'x') }},
		{"Clear", func(s *String) { s.Clear() }},
		{"Swap", func(s *String) { s.Swap(FromRune('x')) }},
		{"cursor SetUnit", func(s *String) { s.MutBegin().SetUnit('x') }},
		{"cursor EraseChar", func(s *String) { c := s.MutBegin(); c.EraseChar() }},
	}

	for _, m := range mutations {
		t.Run(m.name, func(t *testing.T) {
			s := mustUTF8(t, "abc")
			_ = s.AsUTF8()
			m.fn(s)
			if s.cached() != "none" {
				t.Errorf("cache after %s = %s, want none", m.name, s.cached())
			}
			if got, want := s.AsUTF8(), string(s.scalars()); got != want {
				t.Errorf("AsUTF8() = %q, want %q", got, want)
			}
		})
	}
}

func TestReadsKeepCache(t *testing.T) {
	s := mustUTF8(t, "hello")
	_ = s.AsUTF8()

	_ = s.Len()
	_ = s.CharacterCount()
	_, _ = s.At(1)
	_, _ = s.Char(1)
	_ = s.FindRune('l', 0)
	_ = s.FindLastOf(FromRune('l'), NPos, NPos)
	_ = s.Compare(FromRune('h'))
	_ = s.Clone()

	if s.cached() != "utf8" {
		t.Errorf("cache after reads = %s, want utf8", s.cached())
	}
}

func TestAsUTF8LoneSurrogates(t *testing.T) {
	tests := []struct {
		name  string
		units []uint16
		want  []byte
	}{
		{"lone lead", []uint16{0xD800}, []byte{0xED, 0xA0, 0x80}},
		{"lone trail", []uint16{'a', 0xDFFF}, []byte{'a', 0xED, 0xBF, 0xBF}},
		{"pair", []uint16{0xD83D, 0xDE00}, []byte{0xF0, 0x9F, 0x98, 0x80}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := []byte(FromUnits(tt.units).AsUTF8())
			if !slices.Equal(got, tt.want) {
				t.Errorf("AsUTF8() = % x, want % x", got, tt.want)
			}
			back, err := FromUTF8Bytes(got)
			if err != nil {
				t.Fatalf("re-import failed: %v", err)
			}
			assertUnits(t, back, tt.units)
		})
	}
}

func TestAsUTF32(t *testing.T) {
	s := FromUnits([]uint16{'a', 0xD83D, 0xDE00, 0xDC00})
	want := []rune{'a', 0x1F600, 0xDC00}
	if got := s.AsUTF32(); !slices.Equal(got, want) {
		t.Errorf("AsUTF32() = %#x, want %#x", got, want)
	}
	if got := FromUTF32(want); !got.Equal(s) {
		t.Errorf("FromUTF32(AsUTF32()) = %#04x, want %#04x", got.Units(), s.Units())
	}
}

func TestAsWide(t *testing.T) {
	s := mustUTF8(t, "a😀")
	got := s.AsWide()

	smile := rune(0x1F600)
	var want []WideChar
	switch WideCharBits {
	case 16:
		want = []WideChar{'a', 0xD83D, 0xDE00}
	case 32:
		want = []WideChar{'a', WideChar(smile)}
	default:
		t.Fatalf("unexpected WideCharBits %d", WideCharBits)
	}
	if !slices.Equal(got, want) {
		t.Errorf("AsWide() = %#x, want %#x", got, want)
	}

	if back := FromWide(got); !back.Equal(s) {
		t.Errorf("FromWide(AsWide()) = %#04x, want %#04x", back.Units(), s.Units())
	}
}

func TestStringer(t *testing.T) {
	var s *String
	if s.String() != "" {
		t.Errorf("nil String() = %q, want empty", s.String())
	}
	if got := mustUTF8(t, "héllo").String(); got != "héllo" {
		t.Errorf("String() = %q, want %q", got, "héllo")
	}
}
