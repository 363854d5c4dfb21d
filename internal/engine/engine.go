package engine

import (
	"io"
	"slices"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/dshills/utfstring/internal/engine/codec"
	"github.com/dshills/utfstring/internal/engine/ustring"
	"github.com/dshills/utfstring/internal/textio"
)

// RevisionID increases by one with every applied edit, undo or redo.
type RevisionID uint64

// SnapshotID uniquely identifies a named snapshot.
type SnapshotID = uuid.UUID

// snapshot is a saved copy of the content.
type snapshot struct {
	name string
	seq  uint64
	str  *ustring.String
}

// appliedEdit is a replacement that has already been applied to the string.
// It stores what is needed to reverse and re-apply it.
type appliedEdit struct {
	index    int
	removed  []uint16
	inserted []uint16
}

// undo restores the removed units.
func (a appliedEdit) undo(s *ustring.String) error {
	return s.ReplaceUnits(a.index, len(a.inserted), a.removed...)
}

// redo re-applies the edit.
func (a appliedEdit) redo(s *ustring.String) error {
	return s.ReplaceUnits(a.index, len(a.removed), a.inserted...)
}

// Engine is a synchronized facade over a ustring.String with undo/redo.
//
// All operations are safe for concurrent use. Operations that only read code
// units share a read lock. Exporting UTF-8 fills the string's cache, so Text
// and WriteTo take the write lock like any edit.
type Engine struct {
	mu sync.RWMutex

	str  *ustring.String
	undo []appliedEdit
	redo []appliedEdit
	rev  RevisionID

	snapshots map[SnapshotID]snapshot
	snapSeq   uint64

	// Configuration
	encoding       textio.Encoding
	maxUndoEntries int
	readOnly       bool

	// Initialization
	initText  string
	initUnits []uint16
}

func newEngine(opts []Option) *Engine {
	e := &Engine{
		encoding:       textio.EncodingAuto,
		maxUndoEntries: DefaultMaxUndoEntries,
		snapshots:      make(map[SnapshotID]snapshot),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// New creates an Engine with the given options.
// Returns an error matching ustring.ErrInvalidEncoding if WithUTF8 was given
// malformed text.
func New(opts ...Option) (*Engine, error) {
	e := newEngine(opts)

	if e.initUnits != nil {
		e.str = ustring.FromUnits(e.initUnits)
		return e, nil
	}
	str, err := ustring.FromUTF8(e.initText)
	if err != nil {
		return nil, err
	}
	e.str = str
	return e, nil
}

// NewFromReader creates an Engine from the bytes of r, decoded with the
// encoding set by WithEncoding. With no encoding set, it is detected and
// remembered for WriteTo.
func NewFromReader(r io.Reader, opts ...Option) (*Engine, error) {
	e := newEngine(opts)

	str, enc, err := textio.ReadAll(r, e.encoding)
	if err != nil {
		return nil, err
	}
	e.str = str
	e.encoding = enc
	return e, nil
}

// ============================================================================
// Read Operations
// ============================================================================

// Text returns the content as UTF-8.
func (e *Engine) Text() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.str.AsUTF8()
}

// Units returns a copy of the code units.
func (e *Engine) Units() []uint16 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.str.Units()
}

// Len returns the length in code units.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.str.Len()
}

// CharacterCount returns the number of characters.
func (e *Engine) CharacterCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.str.CharacterCount()
}

// IsEmpty returns true if the engine holds no content.
func (e *Engine) IsEmpty() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.str.IsEmpty()
}

// UnitAt returns the code unit at index.
func (e *Engine) UnitAt(index int) (uint16, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.str.At(index)
}

// CharAt returns the character starting at index.
func (e *Engine) CharAt(index int) (rune, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.str.Char(index)
}

// Contains reports whether any character equals r.
func (e *Engine) Contains(r rune) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.str.Contains(r)
}

// Find returns the index of the first occurrence of text at or after from,
// or ustring.NPos.
func (e *Engine) Find(text string, from int) (int, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.str.FindUTF8(text, from)
}

// RFind returns the index of the last occurrence of text starting at or
// before from, or ustring.NPos.
func (e *Engine) RFind(text string, from int) (int, error) {
	units, err := codec.AppendUTF16(nil, []byte(text))
	if err != nil {
		return ustring.NPos, err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.str.RFindUnits(units, from), nil
}

// ============================================================================
// Write Operations
// ============================================================================

// Insert inserts UTF-8 text before the code unit at index.
// Returns the index just past the inserted units.
func (e *Engine) Insert(index int, text string) (int, error) {
	return e.Replace(index, 0, text)
}

// Append adds UTF-8 text at the end.
func (e *Engine) Append(text string) error {
	units, err := codec.AppendUTF16(nil, []byte(text))
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	return e.replaceLocked(e.str.Len(), 0, units)
}

// Delete removes n code units starting at index. An n of ustring.NPos
// removes the rest of the content.
func (e *Engine) Delete(index, n int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	return e.replaceLocked(index, n, nil)
}

// Replace replaces n code units starting at index with UTF-8 text.
// Returns the index just past the replacement.
func (e *Engine) Replace(index, n int, text string) (int, error) {
	units, err := codec.AppendUTF16(nil, []byte(text))
	if err != nil {
		return 0, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return 0, ErrReadOnly
	}
	if err := e.replaceLocked(index, n, units); err != nil {
		return 0, err
	}
	return index + len(units), nil
}

// SetChar replaces the character starting at index with r.
// Returns the change in length in code units.
func (e *Engine) SetChar(index int, r rune) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return 0, ErrReadOnly
	}

	old, err := e.str.Char(index)
	if err != nil {
		return 0, err
	}
	width := codec.UnitsForScalar(old)
	removed, err := e.str.Substr(index, width)
	if err != nil {
		return 0, err
	}

	delta, err := e.str.SetChar(index, r)
	if err != nil {
		return 0, err
	}
	inserted, err := e.str.Substr(index, width+delta)
	if err != nil {
		return 0, err
	}

	e.record(appliedEdit{index: index, removed: removed.Units(), inserted: inserted.Units()})
	return delta, nil
}

// replaceLocked applies a replacement and records it for undo.
func (e *Engine) replaceLocked(index, n int, units []uint16) error {
	removed, err := e.str.Substr(index, n)
	if err != nil {
		return err
	}
	if err := e.str.ReplaceUnits(index, n, units...); err != nil {
		return err
	}
	e.record(appliedEdit{index: index, removed: removed.Units(), inserted: slices.Clone(units)})
	return nil
}

// record pushes an applied edit, trims the history and clears redo.
func (e *Engine) record(edit appliedEdit) {
	e.undo = append(e.undo, edit)
	if over := len(e.undo) - e.maxUndoEntries; over > 0 {
		e.undo = slices.Delete(e.undo, 0, over)
	}
	e.redo = e.redo[:0]
	e.rev++
}

// ============================================================================
// Undo/Redo Operations
// ============================================================================

// Undo reverses the last edit.
func (e *Engine) Undo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	if len(e.undo) == 0 {
		return ErrNothingToUndo
	}

	edit := e.undo[len(e.undo)-1]
	if err := edit.undo(e.str); err != nil {
		return err
	}
	e.undo = e.undo[:len(e.undo)-1]
	e.redo = append(e.redo, edit)
	e.rev++
	return nil
}

// Redo re-applies the last undone edit.
func (e *Engine) Redo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	if len(e.redo) == 0 {
		return ErrNothingToRedo
	}

	edit := e.redo[len(e.redo)-1]
	if err := edit.redo(e.str); err != nil {
		return err
	}
	e.redo = e.redo[:len(e.redo)-1]
	e.undo = append(e.undo, edit)
	e.rev++
	return nil
}

// CanUndo returns true if undo is available.
func (e *Engine) CanUndo() bool {
	return e.UndoCount() > 0
}

// CanRedo returns true if redo is available.
func (e *Engine) CanRedo() bool {
	return e.RedoCount() > 0
}

// UndoCount returns the number of available undo operations.
func (e *Engine) UndoCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.undo)
}

// RedoCount returns the number of available redo operations.
func (e *Engine) RedoCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.redo)
}

// ClearHistory removes all undo/redo history.
func (e *Engine) ClearHistory() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.undo = nil
	e.redo = nil
}

// ============================================================================
// State
// ============================================================================

// Revision returns the current revision.
func (e *Engine) Revision() RevisionID {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.rev
}

// Snapshot returns an independent copy of the current content.
func (e *Engine) Snapshot() *ustring.String {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.str.Clone()
}

// ============================================================================
// Snapshots
// ============================================================================

// CreateSnapshot saves a copy of the current content under name.
func (e *Engine) CreateSnapshot(name string) SnapshotID {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := uuid.New()
	e.snapSeq++
	e.snapshots[id] = snapshot{name: name, seq: e.snapSeq, str: e.str.Clone()}
	return id
}

// SnapshotText returns a copy of the content saved in a snapshot.
func (e *Engine) SnapshotText(id SnapshotID) (*ustring.String, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	snap, ok := e.snapshots[id]
	if !ok {
		return nil, ErrSnapshotNotFound
	}
	return snap.str.Clone(), nil
}

// SnapshotByName returns the most recent snapshot saved under name.
func (e *Engine) SnapshotByName(name string) (SnapshotID, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var (
		found  SnapshotID
		latest uint64
	)
	for id, snap := range e.snapshots {
		if snap.name == name && snap.seq > latest {
			found, latest = id, snap.seq
		}
	}
	if latest == 0 {
		return uuid.Nil, ErrSnapshotNotFound
	}
	return found, nil
}

// RestoreSnapshot replaces the content with a snapshot. The restore is
// recorded as an edit and can be undone.
func (e *Engine) RestoreSnapshot(id SnapshotID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	snap, ok := e.snapshots[id]
	if !ok {
		return ErrSnapshotNotFound
	}
	return e.replaceLocked(0, ustring.NPos, snap.str.Units())
}

// DeleteSnapshot removes a snapshot. Unknown IDs are ignored.
func (e *Engine) DeleteSnapshot(id SnapshotID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.snapshots, id)
}

// SnapshotCount returns the number of stored snapshots.
func (e *Engine) SnapshotCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.snapshots)
}

// Encoding returns the byte encoding used by WriteTo.
func (e *Engine) Encoding() textio.Encoding {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.encoding
}

// SetEncoding changes the byte encoding used by WriteTo.
func (e *Engine) SetEncoding(enc textio.Encoding) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.encoding = enc
}

// IsReadOnly returns true if the engine is read-only.
func (e *Engine) IsReadOnly() bool {
	return e.readOnly
}

// WriteTo writes the content to w in the engine's encoding.
func (e *Engine) WriteTo(w io.Writer) (int64, error) {
	e.mu.Lock()
	p, err := textio.Encode(e.str, e.encoding)
	e.mu.Unlock()
	if err != nil {
		return 0, err
	}

	n, err := w.Write(p)
	return int64(n), err
}

// ============================================================================
// Clear and Reset
// ============================================================================

// Clear removes all content and resets history.
func (e *Engine) Clear() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	e.str.Clear()
	e.undo = nil
	e.redo = nil
	e.rev++
	return nil
}

// SetContent replaces all content with UTF-8 text and resets history.
// On error the content is left unchanged.
func (e *Engine) SetContent(text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	if err := e.str.AssignUTF8(text); err != nil {
		return err
	}
	e.undo = nil
	e.redo = nil
	e.rev++
	return nil
}

// Normalize converts the content to normalization form f as a single
// undoable edit. Content already in form f is left alone and records
// nothing.
func (e *Engine) Normalize(f norm.Form) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	out, err := textio.Normalize(e.str, f)
	if err != nil {
		return err
	}
	if out.Equal(e.str) {
		return nil
	}
	return e.replaceLocked(0, ustring.NPos, out.Units())
}
