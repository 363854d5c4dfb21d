package codec

// UTF-16 surrogate ranges.
const (
	// LeadMin is the first lead (high) surrogate.
	LeadMin = 0xD800
	// LeadMax is the last lead (high) surrogate.
	LeadMax = 0xDBFF
	// TrailMin is the first trail (low) surrogate.
	TrailMin = 0xDC00
	// TrailMax is the last trail (low) surrogate.
	TrailMax = 0xDFFF

	// MaxBMP is the largest scalar that fits in a single code unit.
	MaxBMP = 0xFFFF

	surrogateOffset = 0x10000
	surrogateMask   = 0x3FF
)

// IsLeadSurrogate reports whether u is the first half of a surrogate pair.
func IsLeadSurrogate(u uint16) bool {
	return u >= LeadMin && u <= LeadMax
}

// IsTrailSurrogate reports whether u is the second half of a surrogate pair.
func IsTrailSurrogate(u uint16) bool {
	return u >= TrailMin && u <= TrailMax
}

// IsIndependent reports whether u can never be part of a surrogate pair.
func IsIndependent(u uint16) bool {
	return u < LeadMin || u > TrailMax
}

// UnitsForScalar returns the number of code units needed to store r.
// Values above MaxBMP always take a pair, even if they exceed the Unicode range.
func UnitsForScalar(r rune) int {
	if uint32(r) > MaxBMP {
		return 2
	}
	return 1
}

// UnitsForUnit returns the width of the character that starts with u,
// assuming the following unit completes the pair.
func UnitsForUnit(u uint16) int {
	if IsLeadSurrogate(u) {
		return 2
	}
	return 1
}

// DecodePair decodes the character formed by u0 and, if u0 is a lead
// surrogate and u1 a trail surrogate, u1. It returns the scalar and the
// number of units consumed. Anything that is not a genuine pair yields u0
// verbatim with a width of 1, lone surrogates included.
func DecodePair(u0, u1 uint16) (rune, int) {
	if !IsLeadSurrogate(u0) || !IsTrailSurrogate(u1) {
		return rune(u0), 1
	}
	hi := rune(u0-LeadMin) & surrogateMask
	lo := rune(u1-TrailMin) & surrogateMask
	return (hi<<10 | lo) + surrogateOffset, 2
}

// DecodeUnits decodes the character at the start of p.
// Returns (0, 0) if p is empty. p[1] is consulted only when present.
func DecodeUnits(p []uint16) (rune, int) {
	switch len(p) {
	case 0:
		return 0, 0
	case 1:
		return rune(p[0]), 1
	}
	return DecodePair(p[0], p[1])
}

// EncodeScalar encodes r as one or two code units.
// Scalars up to MaxBMP are stored unchanged, surrogate values included, so
// lone surrogates round-trip. Larger values are split into a pair using
// bits 10..19 and 0..9 of r-0x10000.
func EncodeScalar(r rune) ([2]uint16, int) {
	v := uint32(r)
	if v <= MaxBMP {
		return [2]uint16{uint16(v), 0}, 1
	}
	v -= surrogateOffset
	lead := uint16((v>>10)&surrogateMask) + LeadMin
	trail := uint16(v&surrogateMask) + TrailMin
	return [2]uint16{lead, trail}, 2
}

// AppendScalar appends the UTF-16 encoding of r to dst.
func AppendScalar(dst []uint16, r rune) []uint16 {
	units, n := EncodeScalar(r)
	return append(dst, units[:n]...)
}

// AppendScalars appends the UTF-16 encoding of every rune in rs to dst.
func AppendScalars(dst []uint16, rs []rune) []uint16 {
	for _, r := range rs {
		dst = AppendScalar(dst, r)
	}
	return dst
}

// EncodedUnits returns the number of code units needed for rs.
func EncodedUnits(rs []rune) int {
	n := 0
	for _, r := range rs {
		n += UnitsForScalar(r)
	}
	return n
}
