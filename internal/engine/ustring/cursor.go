package ustring

import "github.com/dshills/utfstring/internal/engine/codec"

// direction selects which way a cursor walks the buffer.
type direction int8

const (
	forward direction = iota
	reverse
)

// Cursor is a read-only position in a String. Forward cursors read the unit
// at their position; reverse cursors read the unit just before it, so that
// RBegin reads the last unit and REnd sits at index 0.
//
// MoveNext and MovePrev step by whole character. Seek, Add and Sub step by
// raw code units and may land inside a surrogate pair.
//
// A cursor holds a pointer to its String but not to the buffer, so it stays
// usable across edits; its index is not adjusted for them.
type Cursor struct {
	s   *String
	pos int
	dir direction
}

// Begin returns a forward cursor at the first code unit.
func (s *String) Begin() Cursor {
	return Cursor{s: s, pos: 0, dir: forward}
}

// End returns a forward cursor one past the last code unit.
func (s *String) End() Cursor {
	return Cursor{s: s, pos: s.Len(), dir: forward}
}

// RBegin returns a reverse cursor that reads the last code unit.
func (s *String) RBegin() Cursor {
	return Cursor{s: s, pos: s.Len(), dir: reverse}
}

// REnd returns a reverse cursor positioned before the first code unit.
func (s *String) REnd() Cursor {
	return Cursor{s: s, pos: 0, dir: reverse}
}

// Index returns the buffer index of the cursor. For a reverse cursor this is
// one past the unit it reads.
func (c Cursor) Index() int {
	return c.pos
}

// IsReverse reports whether c walks from the end towards the start.
func (c Cursor) IsReverse() bool {
	return c.dir == reverse
}

// AtBegin reports whether c is at the start of its traversal.
func (c Cursor) AtBegin() bool {
	if c.dir == reverse {
		return c.pos >= c.s.Len()
	}
	return c.pos <= 0
}

// AtEnd reports whether c is past the end of its traversal.
func (c Cursor) AtEnd() bool {
	if c.dir == reverse {
		return c.pos <= 0
	}
	return c.pos >= c.s.Len()
}

// Unit returns the code unit the cursor reads.
// Returns (0, false) at the end of the traversal.
func (c Cursor) Unit() (uint16, bool) {
	return c.UnitAt(0)
}

// UnitAt returns the code unit n positions further along the traversal.
// Returns (0, false) if that is outside the buffer.
func (c Cursor) UnitAt(n int) (uint16, bool) {
	i := c.unitIndex() + n
	if c.dir == reverse {
		i = c.unitIndex() - n
	}
	if i < 0 || i >= c.s.Len() {
		return 0, false
	}
	return c.s.units[i], true
}

// Char decodes the character the cursor reads and returns it with its width
// in code units. A reverse cursor decodes the character that ends just before
// its position. Returns (0, 0) at the end of the traversal.
func (c Cursor) Char() (rune, int) {
	start, ok := c.charStart()
	if !ok {
		return 0, 0
	}
	if c.dir == reverse && start < c.pos-1 {
		return codec.DecodePair(c.s.units[start], c.s.units[start+1])
	}
	if c.dir == reverse {
		return rune(c.s.units[start]), 1
	}
	return codec.DecodeUnits(c.s.units[start:])
}

// MoveNext advances c by one whole character in its direction of travel.
// Returns false if c is already at the end.
func (c *Cursor) MoveNext() bool {
	if c.AtEnd() {
		return false
	}
	if c.dir == reverse {
		c.pos = c.s.prevBoundary(c.pos)
	} else {
		c.pos = c.s.nextBoundary(c.pos)
	}
	return true
}

// MovePrev moves c back by one whole character.
// Returns false if c is already at the beginning.
func (c *Cursor) MovePrev() bool {
	if c.AtBegin() {
		return false
	}
	if c.dir == reverse {
		c.pos = c.s.nextBoundary(c.pos)
	} else {
		c.pos = c.s.prevBoundary(c.pos)
	}
	return true
}

// Seek moves c by n code units in its direction of travel; negative n moves
// backwards. The result is clamped to the buffer.
func (c *Cursor) Seek(n int) {
	if c.dir == reverse {
		n = -n
	}
	c.pos = clamp(c.pos+n, 0, c.s.Len())
}

// Add returns a copy of c moved n code units forward in its direction.
func (c Cursor) Add(n int) Cursor {
	c.Seek(n)
	return c
}

// Sub returns a copy of c moved n code units backward in its direction.
func (c Cursor) Sub(n int) Cursor {
	c.Seek(-n)
	return c
}

// Distance returns the number of code units from other to c along the
// direction of travel.
func (c Cursor) Distance(other Cursor) int {
	if c.dir == reverse {
		return other.pos - c.pos
	}
	return c.pos - other.pos
}

// Equal reports whether c and other are at the same position.
func (c Cursor) Equal(other Cursor) bool {
	return c.s == other.s && c.pos == other.pos && c.dir == other.dir
}

// Less reports whether c comes before other in the direction of travel.
func (c Cursor) Less(other Cursor) bool {
	return c.Distance(other) < 0
}

// unitIndex returns the buffer index of the unit the cursor reads.
func (c Cursor) unitIndex() int {
	if c.dir == reverse {
		return c.pos - 1
	}
	return c.pos
}

// charStart returns the buffer index where the character read by c begins.
func (c Cursor) charStart() (int, bool) {
	if c.AtEnd() {
		return 0, false
	}
	if c.dir == forward {
		return c.pos, true
	}
	i := c.pos - 1
	if i > 0 && codec.IsTrailSurrogate(c.s.units[i]) && codec.IsLeadSurrogate(c.s.units[i-1]) {
		i--
	}
	return i, true
}

// MutCursor is a Cursor that can also write through to its String.
type MutCursor struct {
	Cursor
}

// MutBegin returns a mutable forward cursor at the first code unit.
func (s *String) MutBegin() MutCursor {
	return MutCursor{s.Begin()}
}

// MutEnd returns a mutable forward cursor one past the last code unit.
func (s *String) MutEnd() MutCursor {
	return MutCursor{s.End()}
}

// MutRBegin returns a mutable reverse cursor that reads the last code unit.
func (s *String) MutRBegin() MutCursor {
	return MutCursor{s.RBegin()}
}

// MutREnd returns a mutable reverse cursor positioned before the first unit.
func (s *String) MutREnd() MutCursor {
	return MutCursor{s.REnd()}
}

// Const returns a read-only copy of c.
func (c MutCursor) Const() Cursor {
	return c.Cursor
}

// Add returns a copy of c moved n code units forward in its direction.
func (c MutCursor) Add(n int) MutCursor {
	c.Seek(n)
	return c
}

// Sub returns a copy of c moved n code units backward in its direction.
func (c MutCursor) Sub(n int) MutCursor {
	c.Seek(-n)
	return c
}

// SetUnit overwrites the code unit the cursor reads.
// Returns false at the end of the traversal.
func (c MutCursor) SetUnit(u uint16) bool {
	if c.AtEnd() {
		return false
	}
	return c.s.SetAt(c.unitIndex(), u) == nil
}

// SetChar replaces the character the cursor reads with r and returns the
// change in length, as String.SetChar does. A forward cursor keeps its index;
// a reverse cursor moves so that it still reads the new character.
func (c *MutCursor) SetChar(r rune) (int, error) {
	start, ok := c.charStart()
	if !ok {
		return 0, ErrIndexOutOfRange
	}
	delta, err := c.s.SetChar(start, r)
	if err != nil {
		return 0, err
	}
	if c.dir == reverse {
		c.pos += delta
	}
	return delta, nil
}

// InsertChar inserts r at the cursor. Afterwards the cursor reads the
// inserted character in either direction.
func (c *MutCursor) InsertChar(r rune) error {
	if err := c.s.InsertRune(c.pos, 1, r); err != nil {
		return err
	}
	if c.dir == reverse {
		c.pos += codec.UnitsForScalar(r)
	}
	return nil
}

// EraseChar removes the character the cursor reads. A forward cursor then
// reads the following character; a reverse cursor reads the preceding one.
// Returns false at the end of the traversal.
func (c *MutCursor) EraseChar() bool {
	start, ok := c.charStart()
	if !ok {
		return false
	}
	width := c.s.nextBoundary(start) - start
	if err := c.s.Erase(start, width); err != nil {
		return false
	}
	if c.dir == reverse {
		c.pos = start
	}
	return true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
