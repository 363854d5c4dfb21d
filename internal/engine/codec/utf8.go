package codec

// UTF-8 header and continuation byte patterns. Each header pattern is
// paired with the mask of payload bits it leaves in the lead byte.
const (
	contByte = 0x80 // 10xxxxxx
	contMask = 0x3F

	lead2 = 0xC0 // 110xxxxx
	lead3 = 0xE0 // 1110xxxx
	lead4 = 0xF0 // 11110xxx
	lead5 = 0xF8 // 111110xx
	lead6 = 0xFC // 1111110x

	// UTFMax is the longest sequence this codec reads or writes.
	UTFMax = 6

	// RuneSelf is the first value that needs more than one byte.
	RuneSelf = 0x80
)

// leadBytes and leadMasks are indexed by sequence length.
var (
	leadBytes = [UTFMax + 1]byte{0, 0, lead2, lead3, lead4, lead5, lead6}
	leadMasks = [UTFMax + 1]byte{0, 0x7F, 0x1F, 0x0F, 0x07, 0x03, 0x01}
)

// scalarLimits holds the largest value each sequence length can carry.
var scalarLimits = [UTFMax + 1]uint32{0, 0x7F, 0x7FF, 0xFFFF, 0x1FFFFF, 0x3FFFFFF, 0x7FFFFFFF}

// IsContinuation reports whether b has the 10xxxxxx continuation pattern.
func IsContinuation(b byte) bool {
	return b&^contMask == contByte
}

// IsStartByte reports whether b can begin a sequence.
func IsStartByte(b byte) bool {
	return !IsContinuation(b)
}

// StartByteLen returns the length of the sequence introduced by lead byte b.
// Continuation bytes and 0xFE/0xFF match no header pattern and fail with
// ErrInvalidEncoding.
func StartByteLen(b byte) (int, error) {
	if b < RuneSelf {
		return 1, nil
	}
	for n := 2; n <= UTFMax; n++ {
		if b&^leadMasks[n] == leadBytes[n] {
			return n, nil
		}
	}
	return 0, encodingError(0, reasonBadHeader)
}

// ScalarByteLen returns the number of bytes needed to encode r, or -1 if r
// does not fit in 31 bits.
func ScalarByteLen(r rune) int {
	v := uint32(r)
	for n := 1; n <= UTFMax; n++ {
		if v <= scalarLimits[n] {
			return n
		}
	}
	return -1
}

// Decode reads the first sequence in p and returns its scalar value and
// length in bytes. Bits are assembled most significant first.
func Decode(p []byte) (rune, int, error) {
	if len(p) == 0 {
		return 0, 0, encodingError(0, reasonTruncated)
	}
	n, err := StartByteLen(p[0])
	if err != nil {
		return 0, 0, err
	}
	if n == 1 {
		return rune(p[0]), 1, nil
	}
	if n > len(p) {
		return 0, 0, encodingError(0, reasonTruncated)
	}

	v := uint32(p[0] & leadMasks[n])
	for i := 1; i < n; i++ {
		if !IsContinuation(p[i]) {
			return 0, 0, encodingError(i, reasonBadContinuation)
		}
		v = v<<6 | uint32(p[i]&contMask)
	}
	return rune(v), n, nil
}

// Encode writes the UTF-8 encoding of r into p and returns the number of
// bytes written. Continuation bytes are filled from the end, low bits first,
// and the header byte last. It returns 0 if r does not fit in 31 bits.
// Encode panics if p is too small; UTFMax bytes always suffice.
func Encode(p []byte, r rune) int {
	n := ScalarByteLen(r)
	if n < 0 {
		return 0
	}
	v := uint32(r)
	if n == 1 {
		p[0] = byte(v & 0x7F)
		return 1
	}
	_ = p[n-1]
	for i := n - 1; i > 0; i-- {
		p[i] = byte(v&contMask) | contByte
		v >>= 6
	}
	p[0] = byte(v)&leadMasks[n] | leadBytes[n]
	return n
}

// AppendRune appends the UTF-8 encoding of r to dst.
func AppendRune(dst []byte, r rune) []byte {
	if uint32(r) < RuneSelf {
		return append(dst, byte(r))
	}
	var buf [UTFMax]byte
	n := Encode(buf[:], r)
	return append(dst, buf[:n]...)
}

// Validate walks p and returns the number of characters it encodes.
//
// A sequence fails if its lead byte matches no header pattern, if it is cut
// short, if any continuation byte is malformed, or if it is overlong: the
// lead byte is the smallest of its length class and the next byte, viewed
// through that same header pattern, still reads as a bare continuation, which
// means a shorter sequence could have carried the value. Two byte leads 0xC0
// and 0xC1 can only ever produce overlong sequences.
func Validate(p []byte) (int, error) {
	count := 0
	for i := 0; i < len(p); {
		b := p[i]
		if b < RuneSelf {
			i++
			count++
			continue
		}

		n, err := StartByteLen(b)
		if err != nil {
			return count, encodingError(i, reasonBadHeader)
		}
		if i+n > len(p) {
			return count, encodingError(i, reasonTruncated)
		}
		if isOverlong(b, p[i+1], n) {
			return count, encodingError(i, reasonOverlong)
		}
		for j := 1; j < n; j++ {
			if !IsContinuation(p[i+j]) {
				return count, encodingError(i, reasonBadContinuation)
			}
		}

		i += n
		count++
	}
	return count, nil
}

// ValidString is Validate for strings.
func ValidString(s string) (int, error) {
	return Validate([]byte(s))
}

// isOverlong applies the one byte lookahead test for a lead byte of class n.
func isOverlong(lead, next byte, n int) bool {
	if n == 2 {
		return lead < lead2+2
	}
	return lead == leadBytes[n] && next&leadBytes[n] == contByte
}

// AppendUTF16 validates p and appends its characters to dst as UTF-16 code
// units. On error dst is returned unchanged, so callers never observe a half
// decoded buffer.
func AppendUTF16(dst []uint16, p []byte) ([]uint16, error) {
	count, err := Validate(p)
	if err != nil {
		return dst, err
	}

	out := make([]uint16, len(dst), len(dst)+count*2)
	copy(out, dst)
	for i := 0; i < len(p); {
		r, n, err := Decode(p[i:])
		if err != nil {
			return dst, err
		}
		out = AppendScalar(out, r)
		i += n
	}
	return out, nil
}
