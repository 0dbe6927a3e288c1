package buffer

import (
	"errors"
	"fmt"
)

// Errors returned by buffer operations.
var (
	// ErrOutOfBounds indicates a line or column outside the buffer.
	ErrOutOfBounds = errors.New("position out of bounds")

	// ErrNothingToUndo indicates the undo pointer is at the start of the log.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrNothingToRedo indicates the undo pointer is at the end of the log.
	ErrNothingToRedo = errors.New("nothing to redo")

	// ErrUnapplicable indicates an edit intent that cannot be realized at the
	// current cursor, e.g. deleting backward at the start of the buffer.
	ErrUnapplicable = errors.New("edit not applicable")
)

func outOfBounds(op string, line, col int) error {
	return fmt.Errorf("%s at %d:%d: %w", op, line, col, ErrOutOfBounds)
}
