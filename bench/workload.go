package bench

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"kiro/buffer"
	"kiro/editor"

	"github.com/gdamore/tcell/v2"
)

// Screen size every session runs at.
const (
	Width  = 80
	Height = 24
)

// Workload is one benchmark scenario. Each run starts a fresh session over
// Lines and drives it to completion.
type Workload struct {
	Name  string
	Lines []string
	// File selects the highlighter; empty means plain text.
	File string
	Run  func(e *editor.Editor) error
}

// Session runs w once on a new editor.
func (w Workload) Session(opts ...editor.Option) error {
	if w.File != "" {
		opts = append([]editor.Option{editor.WithFile(w.File)}, opts...)
	}
	e := editor.New(w.Lines, Width, Height, opts...)
	if err := w.Run(e); err != nil {
		return fmt.Errorf("%s: %w", w.Name, err)
	}
	return nil
}

// discard swallows painted cells.
type discard struct{}

func (discard) SetContent(int, int, rune, []rune, tcell.Style) {}

// RandomText returns printable ASCII lines of up to 200 characters, about
// maxChars characters in total, fully determined by seed.
func RandomText(maxChars int, seed int64) []string {
	const maxLine = 200
	rng := rand.New(rand.NewSource(seed))
	lines := []string{""}
	var cur strings.Builder
	rest := rng.Intn(maxLine)
	for chars := 0; chars <= maxChars; chars++ {
		if rest == 0 {
			lines[len(lines)-1] = cur.String()
			cur.Reset()
			lines = append(lines, "")
			rest = rng.Intn(maxLine)
			continue
		}
		cur.WriteByte(byte(0x20 + rng.Intn(0x7f-0x20)))
		rest--
	}
	lines[len(lines)-1] = cur.String()
	return lines
}

var motions = []buffer.Motion{
	buffer.MoveLeft, buffer.MoveRight, buffer.MoveUp, buffer.MoveDown,
	buffer.MoveLineStart, buffer.MoveLineEnd, buffer.MoveWordLeft, buffer.MoveWordRight,
	buffer.MoveBufferStart, buffer.MoveBufferEnd, buffer.MoveParagraphUp, buffer.MoveParagraphDown,
}

var pages = []buffer.Motion{buffer.MovePageUp, buffer.MovePageDown}

var deletions = []buffer.IntentKind{
	buffer.DeleteBackward, buffer.DeleteForward, buffer.DeleteWord,
	buffer.DeleteToLineEnd, buffer.DeleteToLineStart, buffer.JoinLine,
}

// ignorable reports errors a random key sequence is expected to hit.
func ignorable(err error) bool {
	return errors.Is(err, buffer.ErrUnapplicable) ||
		errors.Is(err, buffer.ErrNothingToUndo) ||
		errors.Is(err, buffer.ErrNothingToRedo)
}

// RandomEdits returns a Run that applies n random steps drawn from seed,
// repainting after each one. Most steps type a character; the rest move the
// cursor, delete, page, undo or redo.
func RandomEdits(n int, seed int64) func(*editor.Editor) error {
	return func(e *editor.Editor) error {
		rng := rand.New(rand.NewSource(seed))
		var screen discard
		for i := 0; i < n; i++ {
			var err error
			switch r := rng.Intn(100); {
			case r < 5:
				err = e.Undo()
			case r < 10:
				err = e.Redo()
			case r < 20:
				e.MoveCursor(motions[rng.Intn(len(motions))])
			case r < 27:
				err = e.ApplyEdit(buffer.Intent{Kind: deletions[rng.Intn(len(deletions))]})
			case r < 30:
				e.MoveCursor(pages[rng.Intn(len(pages))])
			default:
				b := 0x1f + rng.Intn(0x80-0x1f)
				in := buffer.Intent{Kind: buffer.InsertChar, Char: rune(b)}
				if b == 0x1f {
					in = buffer.Intent{Kind: buffer.SplitLine}
				}
				err = e.ApplyEdit(in)
			}
			if err != nil && !ignorable(err) {
				return fmt.Errorf("step %d: %w", i, err)
			}
			e.Paint(screen)
		}
		return nil
	}
}

// ScrollUpDown returns a Run that pages down times times and then back up,
// repainting each frame.
func ScrollUpDown(times int) func(*editor.Editor) error {
	return func(e *editor.Editor) error {
		var screen discard
		for i := 0; i < times; i++ {
			e.MoveCursor(buffer.MovePageDown)
			e.Paint(screen)
		}
		for i := 0; i < times; i++ {
			e.MoveCursor(buffer.MovePageUp)
			e.Paint(screen)
		}
		if top := e.Viewport().Top(); top != 0 {
			return fmt.Errorf("expected to return to the top, at line %d", top)
		}
		return nil
	}
}

// Defaults returns the four standard workloads. source and sourceFile feed
// the source-code variants; when source is empty a generated Go file is used.
func Defaults(source []string, sourceFile string) []Workload {
	if len(source) == 0 {
		source = GenerateSource(3000, 0)
		sourceFile = "generated.go"
	}
	plain := RandomText(10000, 0)
	return []Workload{
		{Name: "edit_1000_operations_plain_text", Lines: plain, Run: RandomEdits(1000, 0)},
		{Name: "edit_1000_operations_source", Lines: source, File: sourceFile, Run: RandomEdits(1000, 0)},
		{Name: "scroll_up_down_plain_text", Lines: plain, Run: ScrollUpDown(20)},
		{Name: "scroll_up_down_source", Lines: source, File: sourceFile, Run: ScrollUpDown(20)},
	}
}
