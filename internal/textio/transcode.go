package textio

import (
	"encoding/binary"
	"fmt"
	"io"

	gdencoding "github.com/gdamore/encoding"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/dshills/utfstring/internal/engine/ustring"
)

// charmap returns the single-byte character map for enc, or nil.
func charmap(enc Encoding) encoding.Encoding {
	switch enc {
	case EncodingLatin1:
		return gdencoding.ISO8859_1
	case EncodingASCII:
		return gdencoding.ASCII
	}
	return nil
}

// limit returns the highest scalar value enc can hold, or -1 for no limit.
func limit(enc Encoding) rune {
	switch enc {
	case EncodingLatin1:
		return 0xFF
	case EncodingASCII:
		return 0x7F
	}
	return -1
}

// Decode converts content in enc to a string. EncodingAuto detects the
// encoding first. A leading BOM matching the encoding is dropped.
//
// UTF-16 input is taken unit by unit, so unpaired surrogates survive.
// ASCII input with bytes at or above 0x80 decodes them to U+FFFD.
func Decode(content []byte, enc Encoding) (*ustring.String, error) {
	if enc == EncodingAuto {
		enc = DetectEncoding(content)
	}

	switch enc {
	case EncodingUTF8, EncodingUTF8BOM:
		return ustring.FromUTF8Bytes(StripBOM(content, enc))
	case EncodingUTF16LE:
		return decodeUTF16(StripBOM(content, enc), binary.LittleEndian)
	case EncodingUTF16BE:
		return decodeUTF16(StripBOM(content, enc), binary.BigEndian)
	case EncodingLatin1, EncodingASCII:
		text, err := charmap(enc).NewDecoder().Bytes(content)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", enc, err)
		}
		return ustring.FromUTF8Bytes(text)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, string(enc))
}

func decodeUTF16(content []byte, order binary.ByteOrder) (*ustring.String, error) {
	if len(content)%2 != 0 {
		return nil, ErrOddLength
	}
	units := make([]uint16, len(content)/2)
	for i := range units {
		units[i] = order.Uint16(content[2*i:])
	}
	return ustring.FromUnits(units), nil
}

// Encode converts s to bytes in enc. EncodingAuto writes UTF-8. UTF-16 and
// UTF-8-BOM output starts with a byte order mark.
//
// Returns an error matching ErrUnrepresentable if s holds a character the
// encoding cannot express.
func Encode(s *ustring.String, enc Encoding) ([]byte, error) {
	switch enc {
	case EncodingAuto, EncodingUTF8:
		return []byte(s.AsUTF8()), nil
	case EncodingUTF8BOM:
		return append(bom(enc), s.AsUTF8()...), nil
	case EncodingUTF16LE:
		return encodeUTF16(bom(enc), s, binary.LittleEndian), nil
	case EncodingUTF16BE:
		return encodeUTF16(bom(enc), s, binary.BigEndian), nil
	case EncodingLatin1, EncodingASCII:
		if err := checkRepresentable(s, enc); err != nil {
			return nil, err
		}
		out, err := charmap(enc).NewEncoder().String(s.AsUTF8())
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", enc, err)
		}
		return []byte(out), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, string(enc))
}

func encodeUTF16(dst []byte, s *ustring.String, order binary.AppendByteOrder) []byte {
	dst = append(make([]byte, 0, len(dst)+2*s.Len()), dst...)
	for c := s.Begin(); !c.AtEnd(); c.Seek(1) {
		u, _ := c.Unit()
		dst = order.AppendUint16(dst, u)
	}
	return dst
}

func checkRepresentable(s *ustring.String, enc Encoding) error {
	top := limit(enc)
	for c := s.Begin(); !c.AtEnd(); c.MoveNext() {
		if r, _ := c.Char(); r > top {
			return fmt.Errorf("%w: U+%04X at index %d in %s", ErrUnrepresentable, r, c.Index(), enc)
		}
	}
	return nil
}

// ReadAll reads r to the end and decodes it. Single-byte encodings are
// decoded while streaming. It returns the encoding that was applied; with
// EncodingAuto, pure ASCII content reports EncodingUTF8 so that content
// added later can still be written back.
func ReadAll(r io.Reader, enc Encoding) (*ustring.String, Encoding, error) {
	if cm := charmap(enc); cm != nil {
		text, err := io.ReadAll(transform.NewReader(r, cm.NewDecoder()))
		if err != nil {
			return nil, enc, fmt.Errorf("read %s: %w", enc, err)
		}
		s, err := ustring.FromUTF8Bytes(text)
		return s, enc, err
	}

	content, err := io.ReadAll(r)
	if err != nil {
		return nil, enc, fmt.Errorf("read: %w", err)
	}
	if enc == EncodingAuto {
		enc = DetectEncoding(content)
		if enc == EncodingASCII {
			enc = EncodingUTF8
		}
	}
	s, err := Decode(content, enc)
	return s, enc, err
}
