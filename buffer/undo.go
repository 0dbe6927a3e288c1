package buffer

import "math"

type OpType int

const (
	OpInsert OpType = iota
	OpDelete
	OpSplit
	OpJoin
)

func (t OpType) String() string {
	switch t {
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	case OpSplit:
		return "split"
	case OpJoin:
		return "join"
	}
	return "unknown"
}

// Record is a reversible description of one atomic mutation.
//
// For OpInsert and OpDelete, Pos is where Text starts. For OpSplit, Pos is the
// split point. For OpJoin, Pos.Line is the line that absorbed its successor and
// Pos.Col is that line's length before the join, so the inverse is a split at
// Pos.
type Record struct {
	Type   OpType
	Pos    Cursor
	Text   string
	Before Cursor // cursor position before op
	After  Cursor // cursor position after op
}

// inverse returns the record that undoes r.
func (r Record) inverse() Record {
	inv := Record{Pos: r.Pos, Text: r.Text, Before: r.After, After: r.Before}
	switch r.Type {
	case OpInsert:
		inv.Type = OpDelete
	case OpDelete:
		inv.Type = OpInsert
	case OpSplit:
		inv.Type = OpJoin
	case OpJoin:
		inv.Type = OpSplit
	}
	return inv
}

// Entry is the unit of undo: every record produced by one edit intent.
type Entry []Record

// DefaultHistoryLimit bounds the number of entries kept in the log.
const DefaultHistoryLimit = 1000

// Log is a linear edit history with an undo pointer. Entries before the
// pointer are applied; entries at or after it have been undone. There is no
// redo tree: appending after an undo discards the undone tail.
type Log struct {
	entries []Entry
	ptr     int

	// anchor is the pointer value of the last save; anchorLost is set once
	// the entries needed to return to it have been discarded.
	anchor     int
	anchorLost bool

	modified int
	limit    int
}

func NewLog(limit int) *Log {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &Log{limit: limit}
}

// Push appends an applied entry at the pointer, truncating any undone tail.
func (l *Log) Push(e Entry) {
	if len(e) == 0 {
		return
	}
	if l.ptr < len(l.entries) {
		if l.anchor > l.ptr {
			l.anchorLost = true
		}
		for i := l.ptr; i < len(l.entries); i++ {
			l.entries[i] = nil
		}
		l.entries = l.entries[:l.ptr]
	}
	l.entries = append(l.entries, e)
	l.ptr = SatAdd(l.ptr, 1)
	l.modified = SatAdd(l.modified, 1)

	if len(l.entries) > l.limit {
		excess := len(l.entries) - l.limit
		l.entries = append(l.entries[:0:0], l.entries[excess:]...)
		l.ptr = SatSub(l.ptr, excess)
		l.anchor = SatSub(l.anchor, excess)
		if l.anchor < 0 {
			l.anchorLost = true
		}
	}
}

func (l *Log) CanUndo() bool { return l.ptr > 0 }
func (l *Log) CanRedo() bool { return l.ptr < len(l.entries) }

// Pointer returns the undo pointer.
func (l *Log) Pointer() int { return l.ptr }

// Len returns the number of entries in the log.
func (l *Log) Len() int { return len(l.entries) }

// Modified returns the ModifiedMarker: net entries applied since the last save.
func (l *Log) Modified() int { return l.modified }

// IsModified reports whether the content may differ from the last save.
func (l *Log) IsModified() bool {
	return l.modified != 0 || l.anchorLost
}

// PopUndo moves the pointer back one entry and returns it.
func (l *Log) PopUndo() (Entry, bool) {
	if !l.CanUndo() {
		return nil, false
	}
	l.ptr--
	l.modified = SatSub(l.modified, 1)
	return l.entries[l.ptr], true
}

// PopRedo moves the pointer forward one entry and returns it.
func (l *Log) PopRedo() (Entry, bool) {
	if !l.CanRedo() {
		return nil, false
	}
	e := l.entries[l.ptr]
	l.ptr++
	l.modified = SatAdd(l.modified, 1)
	return e, true
}

// MarkSaved sets the save anchor to the current pointer.
func (l *Log) MarkSaved() {
	l.anchor = l.ptr
	l.anchorLost = false
	l.modified = 0
}

// SatAdd returns a+b clamped to the int range.
func SatAdd(a, b int) int {
	if b > 0 && a > math.MaxInt-b {
		return math.MaxInt
	}
	if b < 0 && a < math.MinInt-b {
		return math.MinInt
	}
	return a + b
}

// SatSub returns a-b clamped to the int range.
func SatSub(a, b int) int {
	if b == math.MinInt {
		if a >= 0 {
			return math.MaxInt
		}
		return a - b
	}
	return SatAdd(a, -b)
}
