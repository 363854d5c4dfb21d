// Package ustring provides String, a mutable Unicode string stored as UTF-16
// code units that converts to and from UTF-8, UTF-32 and the platform wide
// character encoding.
//
// Indices and lengths are measured in code units. Len is O(1) while
// CharacterCount walks the buffer and is O(n); a character is either one code
// unit or a lead surrogate followed by a trail surrogate. Cursors step by
// whole character with MoveNext and MovePrev, and by raw code unit with Seek,
// Add and Sub.
//
// UTF-8 input is validated before anything is written, so a failed
// construction or assignment never leaves partial content behind:
//
//	s, err := ustring.FromUTF8("naïve 😀")
//	if errors.Is(err, ustring.ErrInvalidEncoding) {
//	    // reject input
//	}
//	s.Len()            // 8 code units
//	s.CharacterCount() // 7 characters
//
// UTF-16 and UTF-32 input is taken as is. Unpaired surrogates are kept as
// single-unit characters and come back out unchanged, which lets already
// malformed UTF-16 survive a round trip.
//
// # Representation Cache
//
// AsUTF8, AsUTF32 and AsWide materialize the requested encoding on first use
// and keep it until the next mutation. The cache holds one representation at a
// time; asking for a different one replaces it. Values returned by AsUTF32
// and AsWide alias the cache and must not be modified.
//
// # Thread Safety
//
// A String is not safe for concurrent use. The export accessors write to the
// cache, so even read-only callers need exclusive access. Clone gives each
// copy its own buffer and an empty cache. The engine package wraps a String
// behind a mutex for shared use.
//
// # Ordering
//
// Compare, Find and RFind work on raw code units. This is not Unicode
// collation: supplementary characters sort below U+E000..U+FFFF.
package ustring
