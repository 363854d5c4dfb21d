package engine

import "github.com/dshills/utfstring/internal/textio"

// DefaultMaxUndoEntries is the undo depth used when no option overrides it.
const DefaultMaxUndoEntries = 1000

// Option configures an Engine during creation.
type Option func(*Engine)

// WithUTF8 sets the initial content of the engine from UTF-8 text.
// New fails if the text is malformed.
func WithUTF8(text string) Option {
	return func(e *Engine) {
		e.initText = text
	}
}

// WithUnits sets the initial content of the engine from raw code units.
func WithUnits(units []uint16) Option {
	return func(e *Engine) {
		e.initUnits = units
	}
}

// WithEncoding sets the byte encoding used by NewFromReader and WriteTo.
// The empty encoding detects on read and writes UTF-8.
func WithEncoding(enc textio.Encoding) Option {
	return func(e *Engine) {
		e.encoding = enc
	}
}

// WithMaxUndoEntries sets the maximum number of undo history entries.
func WithMaxUndoEntries(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxUndoEntries = n
		}
	}
}

// WithReadOnly creates a read-only engine.
// Write operations will return ErrReadOnly.
func WithReadOnly() Option {
	return func(e *Engine) {
		e.readOnly = true
	}
}
