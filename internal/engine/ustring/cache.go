package ustring

import "github.com/dshills/utfstring/internal/engine/codec"

// representation is the cached export of a String's content. The cache field
// holds nil or exactly one of the variants below; dropping it back to nil is
// the only invalidation needed.
type representation interface {
	isRepresentation()
}

type (
	utf8Rep  string
	wideRep  []WideChar
	utf32Rep []rune
)

func (utf8Rep) isRepresentation()  {}
func (wideRep) isRepresentation()  {}
func (utf32Rep) isRepresentation() {}

// AsUTF8 returns the content encoded as UTF-8. Unpaired surrogates are
// encoded as three byte sequences of their own value.
//
// The result is cached until the next mutation. Because the cache is written
// here, AsUTF8 counts as a mutation for synchronization purposes.
func (s *String) AsUTF8() string {
	if rep, ok := s.cache.(utf8Rep); ok {
		return string(rep)
	}

	buf := make([]byte, 0, s.Len())
	for c := s.Begin(); !c.AtEnd(); c.MoveNext() {
		r, _ := c.Char()
		buf = codec.AppendRune(buf, r)
	}
	rep := utf8Rep(buf)
	s.cache = rep
	return string(rep)
}

// AsUTF32 returns one scalar value per character. The slice is owned by the
// cache: it must not be modified and is only valid until the next mutation
// or call to AsUTF8 or AsWide.
func (s *String) AsUTF32() []rune {
	if rep, ok := s.cache.(utf32Rep); ok {
		return rep
	}

	rep := utf32Rep(s.scalars())
	s.cache = rep
	return rep
}

// AsWide returns the content in the platform wide character encoding. The
// slice is owned by the cache under the same rules as AsUTF32.
func (s *String) AsWide() []WideChar {
	if rep, ok := s.cache.(wideRep); ok {
		return rep
	}

	rep := wideRep(s.loadWide())
	s.cache = rep
	return rep
}

// String implements fmt.Stringer using AsUTF8.
func (s *String) String() string {
	if s == nil {
		return ""
	}
	return s.AsUTF8()
}

// cached reports which representation, if any, is currently held.
func (s *String) cached() string {
	switch s.cache.(type) {
	case utf8Rep:
		return "utf8"
	case wideRep:
		return "wide"
	case utf32Rep:
		return "utf32"
	}
	return "none"
}
