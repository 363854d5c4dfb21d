package codec

import (
	"testing"
	"unicode/utf8"
)

// FuzzValidate checks Validate against Decode on arbitrary input.
func FuzzValidate(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("hello"))
	f.Add([]byte("日本語"))
	f.Add([]byte("emoji 🎉 test"))
	f.Add([]byte{0xC0, 0x80})
	f.Add([]byte{0xE0, 0x80, 0x80})
	f.Add([]byte{0xFC, 0x84, 0x80, 0x80, 0x80, 0x80})

	f.Fuzz(func(t *testing.T, p []byte) {
		count, err := Validate(p)
		if err != nil {
			return
		}

		// Every validated sequence must decode cleanly, one character at a time.
		decoded := 0
		for i := 0; i < len(p); {
			_, n, err := Decode(p[i:])
			if err != nil {
				t.Fatalf("Decode failed after Validate succeeded at %d: %v", i, err)
			}
			i += n
			decoded++
		}
		if decoded != count {
			t.Errorf("Validate counted %d characters, Decode found %d", count, decoded)
		}

		// Anything the standard library accepts as valid UTF-8 is accepted here too.
		if utf8.Valid(p) && utf8.RuneCount(p) != count {
			t.Errorf("character count %d differs from utf8.RuneCount %d", count, utf8.RuneCount(p))
		}
	})
}

// FuzzEncodeScalar checks the UTF-16 pair encoding for arbitrary scalars.
func FuzzEncodeScalar(f *testing.F) {
	f.Add(int32(0))
	f.Add(int32(0xD800))
	f.Add(int32(0x1F600))
	f.Add(int32(0x10FFFF))

	f.Fuzz(func(t *testing.T, v int32) {
		r := rune(v) & 0x1FFFFF
		if r > 0x10FFFF {
			return
		}
		units, n := EncodeScalar(r)
		if n != UnitsForScalar(r) {
			t.Fatalf("width %d, UnitsForScalar %d", n, UnitsForScalar(r))
		}
		got, consumed := DecodePair(units[0], units[1])
		if n == 2 && (got != r || consumed != 2) {
			t.Errorf("pair %#x decoded to (%#x, %d)", r, got, consumed)
		}
		if n == 1 && got != r {
			t.Errorf("single unit %#x decoded to %#x", r, got)
		}
	})
}
