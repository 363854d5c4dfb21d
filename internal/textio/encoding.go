package textio

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dshills/utfstring/internal/engine/codec"
)

// Encoding names a byte encoding for text.
type Encoding string

const (
	// EncodingAuto detects the encoding from the content.
	EncodingAuto Encoding = ""

	// EncodingUTF8 is UTF-8 encoding (default).
	EncodingUTF8 Encoding = "utf-8"

	// EncodingUTF8BOM is UTF-8 encoding with BOM.
	EncodingUTF8BOM Encoding = "utf-8-bom"

	// EncodingUTF16LE is UTF-16 Little Endian.
	EncodingUTF16LE Encoding = "utf-16le"

	// EncodingUTF16BE is UTF-16 Big Endian.
	EncodingUTF16BE Encoding = "utf-16be"

	// EncodingLatin1 is ISO-8859-1 (Latin-1).
	EncodingLatin1 Encoding = "iso-8859-1"

	// EncodingASCII is ASCII encoding.
	EncodingASCII Encoding = "ascii"
)

// BOM (Byte Order Mark) constants
var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

var aliases = map[string]Encoding{
	"":           EncodingAuto,
	"auto":       EncodingAuto,
	"utf-8":      EncodingUTF8,
	"utf8":       EncodingUTF8,
	"utf-8-bom":  EncodingUTF8BOM,
	"utf8bom":    EncodingUTF8BOM,
	"utf-16le":   EncodingUTF16LE,
	"utf16le":    EncodingUTF16LE,
	"utf-16be":   EncodingUTF16BE,
	"utf16be":    EncodingUTF16BE,
	"iso-8859-1": EncodingLatin1,
	"latin1":     EncodingLatin1,
	"latin-1":    EncodingLatin1,
	"ascii":      EncodingASCII,
	"us-ascii":   EncodingASCII,
}

// ParseEncoding resolves an encoding name, ignoring case. "auto" and the
// empty string select detection.
func ParseEncoding(name string) (Encoding, error) {
	enc, ok := aliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	return enc, nil
}

// String returns the encoding name, or "auto" for detection.
func (e Encoding) String() string {
	if e == EncodingAuto {
		return "auto"
	}
	return string(e)
}

// DetectEncoding attempts to detect the encoding of content.
// It checks for BOM markers first, then validates UTF-8 with the same rules
// ustring applies on import. Falls back to Latin-1 which accepts all byte
// sequences.
func DetectEncoding(content []byte) Encoding {
	if len(content) == 0 {
		return EncodingUTF8
	}

	// Check for BOM markers
	if bytes.HasPrefix(content, bomUTF8) {
		return EncodingUTF8BOM
	}
	if bytes.HasPrefix(content, bomUTF16LE) {
		return EncodingUTF16LE
	}
	if bytes.HasPrefix(content, bomUTF16BE) {
		return EncodingUTF16BE
	}

	if _, err := codec.Validate(content); err == nil {
		if isASCII(content) {
			return EncodingASCII
		}
		return EncodingUTF8
	}

	return EncodingLatin1
}

// StripBOM removes the BOM for enc from content if present.
func StripBOM(content []byte, enc Encoding) []byte {
	switch enc {
	case EncodingUTF8, EncodingUTF8BOM:
		return bytes.TrimPrefix(content, bomUTF8)
	case EncodingUTF16LE:
		return bytes.TrimPrefix(content, bomUTF16LE)
	case EncodingUTF16BE:
		return bytes.TrimPrefix(content, bomUTF16BE)
	}
	return content
}

// bom returns the byte order mark written for enc, if any.
func bom(enc Encoding) []byte {
	switch enc {
	case EncodingUTF8BOM:
		return bomUTF8
	case EncodingUTF16LE:
		return bomUTF16LE
	case EncodingUTF16BE:
		return bomUTF16BE
	}
	return nil
}

// isASCII returns true if all bytes are ASCII (< 128).
func isASCII(content []byte) bool {
	for _, b := range content {
		if b >= codec.RuneSelf {
			return false
		}
	}
	return true
}
