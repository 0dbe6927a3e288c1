package buffer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Options configures a Buffer.
type Options struct {
	TabSize      int
	HistoryLimit int
	Logger       *zap.Logger
}

// Buffer is one editing session's text: the row store, its edit log and the
// primary cursor. All mutations go through the log.
type Buffer struct {
	Cursor Cursor
	Undo   *Log

	rows *Rows
	log  *zap.Logger
}

// NewBuffer creates a buffer holding lines. A nil or empty slice yields a
// buffer with one empty line.
func NewBuffer(lines []string, opt Options) *Buffer {
	logger := opt.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Buffer{
		Undo: NewLog(opt.HistoryLimit),
		rows: NewRows(lines, opt.TabSize),
		log:  logger,
	}
}

// Rows returns the underlying row store. Mutating it directly bypasses the
// edit log.
func (b *Buffer) Rows() *Rows { return b.rows }

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int { return b.rows.LineCount() }

// Lines returns the content as one string per line.
func (b *Buffer) Lines() []string { return b.rows.Strings() }

// IsModified reports whether the buffer differs from the last save point.
func (b *Buffer) IsModified() bool { return b.Undo.IsModified() }

// MarkSaved records the current state as the save point.
func (b *Buffer) MarkSaved() { b.Undo.MarkSaved() }

// SetCursor moves the cursor to c, clamped to valid bounds.
func (b *Buffer) SetCursor(c Cursor) { b.Cursor = c.clamp(b.rows) }

// Apply executes recs as a single undoable entry. If any record fails, the
// records already executed are rolled back and nothing is logged.
func (b *Buffer) Apply(recs ...Record) error {
	done := make(Entry, 0, len(recs))
	for _, rec := range recs {
		applied, err := b.exec(rec)
		if err != nil {
			b.rollback(done)
			return err
		}
		done = append(done, applied)
	}
	if len(done) == 0 {
		return nil
	}
	b.Undo.Push(done)
	b.Cursor = done[len(done)-1].After.clamp(b.rows)
	return nil
}

func (b *Buffer) rollback(done Entry) {
	for i := len(done) - 1; i >= 0; i-- {
		if _, err := b.exec(done[i].inverse()); err != nil {
			b.log.Error("rollback failed", zap.Stringer("op", done[i].Type), zap.Error(err))
		}
	}
}

// ApplyUndo reverts the entry before the undo pointer.
func (b *Buffer) ApplyUndo() error {
	e, ok := b.Undo.PopUndo()
	if !ok {
		return ErrNothingToUndo
	}
	for i := len(e) - 1; i >= 0; i-- {
		if _, err := b.exec(e[i].inverse()); err != nil {
			return fmt.Errorf("undo %s: %w", e[i].Type, err)
		}
	}
	b.Cursor = e[0].Before.clamp(b.rows)
	b.log.Debug("undo", zap.Int("records", len(e)), zap.Int("pointer", b.Undo.Pointer()))
	return nil
}

// ApplyRedo re-applies the entry at the undo pointer.
func (b *Buffer) ApplyRedo() error {
	e, ok := b.Undo.PopRedo()
	if !ok {
		return ErrNothingToRedo
	}
	for _, rec := range e {
		if _, err := b.exec(rec); err != nil {
			return fmt.Errorf("redo %s: %w", rec.Type, err)
		}
	}
	b.Cursor = e[len(e)-1].After.clamp(b.rows)
	b.log.Debug("redo", zap.Int("records", len(e)), zap.Int("pointer", b.Undo.Pointer()))
	return nil
}

// exec performs rec against the row store and returns it with any fields
// that only the store can know filled in.
func (b *Buffer) exec(rec Record) (Record, error) {
	switch rec.Type {
	case OpInsert:
		if _, err := b.rows.Insert(rec.Pos.Line, rec.Pos.Col, rec.Text); err != nil {
			return rec, err
		}
	case OpDelete:
		end := posAfterInsert(rec.Pos, rec.Text)
		removed, err := b.rows.DeleteRange(rec.Pos, end)
		if err != nil {
			return rec, err
		}
		rec.Text = removed
	case OpSplit:
		if err := b.rows.SplitLine(rec.Pos.Line, rec.Pos.Col); err != nil {
			return rec, err
		}
	case OpJoin:
		col, err := b.rows.JoinLine(rec.Pos.Line)
		if err != nil {
			return rec, err
		}
		rec.Pos.Col = col
	default:
		return rec, fmt.Errorf("unknown op %d", rec.Type)
	}
	return rec, nil
}

// posAfterInsert returns the position just past text inserted at pos.
func posAfterInsert(pos Cursor, text string) Cursor {
	n := strings.Count(text, "\n")
	if n == 0 {
		return Cursor{Line: pos.Line, Col: pos.Col + RuneLen(text)}
	}
	return Cursor{Line: pos.Line + n, Col: RuneLen(text[strings.LastIndexByte(text, '\n')+1:])}
}

// RuneLen returns the number of characters in s.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}
