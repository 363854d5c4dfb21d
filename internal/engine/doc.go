// Package engine provides a thread-safe facade over a UTF-16 string.
//
// The engine wraps a ustring.String with a read-write mutex, an undo/redo
// history and a revision counter, and connects it to byte encodings through
// the textio package.
//
// # Architecture
//
// The engine is built on two sub-packages:
//
//   - codec: UTF-16 surrogate and UTF-8 encoding primitives
//   - ustring: the mutable code-unit string, its cursors and search
//
// # Thread Safety
//
// All Engine operations are safe for concurrent use. Reads of code units
// share a read lock. Text and WriteTo take the write lock, because exporting
// UTF-8 fills the string's representation cache.
//
// # Basic Usage
//
//	e, _ := engine.New(engine.WithUTF8("Hello, World!"))
//
//	e.Replace(7, 5, "Go")  // "Hello, Go!"
//	e.SetChar(0, 0x1F600) // "😀ello, Go!", length grows by one unit
//	e.Undo()               // "Hello, Go!"
//
// Indexes are code unit positions, so a supplementary character occupies two.
//
// # Loading Content
//
//	f, _ := os.Open("notes.txt")
//	defer f.Close()
//	e, _ := engine.NewFromReader(f, engine.WithEncoding(textio.EncodingUTF16LE))
//
// Without WithEncoding the encoding is detected from a byte order mark or the
// content, and WriteTo writes back in the same encoding.
package engine
