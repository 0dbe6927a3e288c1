package editor

import (
	"kiro/buffer"
	"kiro/config"
	"kiro/highlight"

	"go.uber.org/zap"
)

// Row is one visible line ready for display.
type Row struct {
	Line  int
	Text  string
	Spans []highlight.Span
}

// Editor is a single editing session: a buffer, its highlighter and the
// viewport onto it. It is not safe for concurrent use.
type Editor struct {
	buf  *buffer.Buffer
	hl   *highlight.Highlighter
	view *Viewport

	tabSize      int
	historyLimit int
	maxCascade   int
	margin       int
	cls          highlight.Classifier
	theme        *config.ColorScheme
	log          *zap.Logger
}

type Option func(*Editor)

func WithLogger(l *zap.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.log = l
		}
	}
}

// WithConfig applies the user's settings.
func WithConfig(cfg *config.Config) Option {
	return func(e *Editor) {
		e.tabSize = cfg.TabSize
		e.historyLimit = cfg.HistoryLimit
		e.maxCascade = cfg.MaxHighlightCascade
		e.margin = cfg.ScrollMargin
		e.theme = cfg.GetTheme()
	}
}

func WithTabSize(n int) Option {
	return func(e *Editor) { e.tabSize = n }
}

func WithClassifier(cls highlight.Classifier) Option {
	return func(e *Editor) { e.cls = cls }
}

// WithFile selects the classifier for the file name.
func WithFile(name string) Option {
	return func(e *Editor) { e.cls = highlight.ForFile(name) }
}

// New creates a session over lines with a screen of width x height cells.
func New(lines []string, width, height int, opts ...Option) *Editor {
	e := &Editor{
		tabSize:      buffer.DefaultTabSize,
		historyLimit: buffer.DefaultHistoryLimit,
		maxCascade:   highlight.DefaultMaxCascade,
		cls:          highlight.PlainText,
		theme:        config.Default().GetTheme(),
		log:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.buf = buffer.NewBuffer(lines, buffer.Options{
		TabSize:      e.tabSize,
		HistoryLimit: e.historyLimit,
		Logger:       e.log.Named("buffer"),
	})
	e.hl = highlight.New(e.buf.Rows(), e.cls,
		highlight.WithMaxCascade(e.maxCascade),
		highlight.WithLogger(e.log.Named("highlight")),
	)
	e.buf.Rows().OnChange(e.hl.Notify)

	e.view = NewViewport(width, height)
	e.view.SetMargin(e.margin)
	e.log.Debug("session started",
		zap.Int("lines", e.buf.LineCount()),
		zap.String("language", highlight.Name(e.cls)),
		zap.Int("tab_size", e.tabSize))
	return e
}

func (e *Editor) Buffer() *buffer.Buffer              { return e.buf }
func (e *Editor) Highlighter() *highlight.Highlighter { return e.hl }
func (e *Editor) Viewport() *Viewport                 { return e.view }
func (e *Editor) Cursor() buffer.Cursor               { return e.buf.Cursor }

// Lines returns the content as one string per line.
func (e *Editor) Lines() []string { return e.buf.Lines() }

func (e *Editor) IsModified() bool { return e.buf.IsModified() }
func (e *Editor) MarkSaved()       { e.buf.MarkSaved() }

// ApplyConfig applies reloaded settings to the running session: theme,
// scroll margin and highlight cascade cap. Tab size and history limit only
// affect new sessions. Like every other method it must not run concurrently
// with the session, so a config.Watch callback should hand cfg over to the
// goroutine that owns the editor.
func (e *Editor) ApplyConfig(cfg *config.Config) {
	e.theme = cfg.GetTheme()
	e.margin = cfg.ScrollMargin
	e.maxCascade = cfg.MaxHighlightCascade
	e.view.SetMargin(e.margin)
	e.hl.SetMaxCascade(e.maxCascade)
	e.follow()
	e.log.Debug("config applied",
		zap.String("theme", cfg.Theme),
		zap.Int("scroll_margin", cfg.ScrollMargin),
		zap.Int("max_highlight_cascade", cfg.MaxHighlightCascade))
}

// SetClassifier switches highlighting, e.g. after the file is renamed.
func (e *Editor) SetClassifier(cls highlight.Classifier) { e.hl.SetClassifier(cls) }

// ApplyEdit applies in at the cursor and scrolls to keep the cursor visible.
func (e *Editor) ApplyEdit(in buffer.Intent) error {
	if err := e.buf.ApplyEdit(in); err != nil {
		return err
	}
	e.follow()
	return nil
}

func (e *Editor) Undo() error {
	if err := e.buf.ApplyUndo(); err != nil {
		return err
	}
	e.follow()
	return nil
}

func (e *Editor) Redo() error {
	if err := e.buf.ApplyRedo(); err != nil {
		return err
	}
	e.follow()
	return nil
}

func (e *Editor) MoveCursor(m buffer.Motion) {
	switch m {
	case buffer.MovePageUp, buffer.MovePageDown:
		e.buf.MovePage(m, e.view.Top(), e.view.Height())
	default:
		e.buf.Move(m)
	}
	e.follow()
}

// SetCursor moves the cursor, clamped to the buffer, and scrolls to it.
func (e *Editor) SetCursor(c buffer.Cursor) {
	e.buf.SetCursor(c)
	e.follow()
}

// ScrollTo moves the viewport without moving the cursor.
func (e *Editor) ScrollTo(line int) {
	e.view.ScrollTo(line, e.buf.LineCount())
	e.log.Debug("scroll", zap.Int("top", e.view.Top()))
}

func (e *Editor) ScrollBy(delta int) {
	e.view.ScrollBy(delta, e.buf.LineCount())
	e.log.Debug("scroll", zap.Int("top", e.view.Top()))
}

// Resize changes the screen size and keeps the cursor on screen.
func (e *Editor) Resize(width, height int) {
	e.view.Resize(width, height, e.buf.LineCount())
	e.follow()
}

// VisibleRange returns the half-open range of lines on screen.
func (e *Editor) VisibleRange() (start, end int) {
	return e.view.VisibleRange(e.buf.LineCount())
}

func (e *Editor) follow() {
	c := e.buf.Cursor
	rx := buffer.RenderCol(e.buf.Rows().Runes(c.Line), c.Col, e.buf.Rows().TabSize())
	e.view.EnsureCursorVisible(c.Line, rx, e.buf.LineCount())
}

// RenderViewport returns the visible lines with their highlight spans.
func (e *Editor) RenderViewport() []Row {
	start, end := e.VisibleRange()
	spans := e.hl.Lines(start, end)
	rows := make([]Row, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, Row{
			Line:  i,
			Text:  string(e.buf.Rows().Runes(i)),
			Spans: spans[i-start],
		})
	}
	return rows
}
