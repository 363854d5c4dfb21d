package textio

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/dshills/utfstring/internal/engine/ustring"
)

// ParseForm resolves a Unicode normalization form name: nfc, nfd, nfkc
// or nfkd.
func ParseForm(name string) (norm.Form, error) {
	switch strings.ToLower(name) {
	case "nfc":
		return norm.NFC, nil
	case "nfd":
		return norm.NFD, nil
	case "nfkc":
		return norm.NFKC, nil
	case "nfkd":
		return norm.NFKD, nil
	}
	return 0, fmt.Errorf("unknown normalization form %q", name)
}

// Normalize returns s converted to the normalization form f. s is not
// modified.
func Normalize(s *ustring.String, f norm.Form) (*ustring.String, error) {
	return ustring.FromUTF8(f.String(s.AsUTF8()))
}

// IsNormalized reports whether s is already in form f.
func IsNormalized(s *ustring.String, f norm.Form) bool {
	return f.IsNormalString(s.AsUTF8())
}
