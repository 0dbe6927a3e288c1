package editor

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"kiro/buffer"

	"go.uber.org/zap"
)

// Position is the cursor and scroll state remembered for a file.
type Position struct {
	Path string `json:"path"`
	Line int    `json:"cursor_line"`
	Col  int    `json:"cursor_col"`
	Top  int    `json:"scroll_y"`
	Left int    `json:"scroll_x"`
}

func positionDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "kiro", "positions")
}

func positionPath(file string) string {
	if abs, err := filepath.Abs(file); err == nil {
		file = abs
	}
	hash := sha256.Sum256([]byte(file))
	return filepath.Join(positionDir(), fmt.Sprintf("%x.json", hash[:8]))
}

// Position returns the current cursor and scroll offsets.
func (e *Editor) Position(path string) Position {
	c := e.buf.Cursor
	return Position{Path: path, Line: c.Line, Col: c.Col, Top: e.view.Top(), Left: e.view.Left()}
}

// SavePosition remembers the current position for path.
func (e *Editor) SavePosition(path string) error {
	pos := e.Position(path)
	data, err := json.MarshalIndent(pos, "", "  ")
	if err != nil {
		return err
	}
	dst := positionPath(path)
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0644)
}

// RestorePosition moves to the position remembered for path, clamped to the
// current content. It reports whether a position was found.
func (e *Editor) RestorePosition(path string) bool {
	data, err := os.ReadFile(positionPath(path))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			e.log.Warn("read position", zap.String("path", path), zap.Error(err))
		}
		return false
	}
	var pos Position
	if err := json.Unmarshal(data, &pos); err != nil {
		e.log.Warn("parse position", zap.String("path", path), zap.Error(err))
		return false
	}

	e.buf.SetCursor(buffer.Cursor{Line: pos.Line, Col: pos.Col})
	e.view.ScrollTo(pos.Top, e.buf.LineCount())
	if pos.Left > 0 {
		e.view.left = pos.Left
	}
	e.follow()
	return true
}
