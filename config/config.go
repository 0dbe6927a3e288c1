package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"kiro/buffer"
	"kiro/highlight"

	"github.com/gdamore/tcell/v2"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for settings files whose extension has no
// decoder.
var ErrUnknownFormat = errors.New("unknown settings format")

type Config struct {
	TabSize             int    `json:"tab_size" toml:"tab_size" yaml:"tab_size"`
	Theme               string `json:"theme" toml:"theme" yaml:"theme"`
	HistoryLimit        int    `json:"history_limit" toml:"history_limit" yaml:"history_limit"`
	MaxHighlightCascade int    `json:"max_highlight_cascade" toml:"max_highlight_cascade" yaml:"max_highlight_cascade"`
	ScrollMargin        int    `json:"scroll_margin" toml:"scroll_margin" yaml:"scroll_margin"`
	LogLevel            string `json:"log_level" toml:"log_level" yaml:"log_level"`
}

func Default() *Config {
	return &Config{
		TabSize:             buffer.DefaultTabSize,
		Theme:               "monokai",
		HistoryLimit:        buffer.DefaultHistoryLimit,
		MaxHighlightCascade: highlight.DefaultMaxCascade,
		ScrollMargin:        0,
		LogLevel:            "info",
	}
}

// normalize replaces out-of-range values with defaults.
func (c *Config) normalize() {
	d := Default()
	if c.TabSize <= 0 {
		c.TabSize = d.TabSize
	}
	if c.HistoryLimit <= 0 {
		c.HistoryLimit = d.HistoryLimit
	}
	if c.MaxHighlightCascade <= 0 {
		c.MaxHighlightCascade = d.MaxHighlightCascade
	}
	if c.ScrollMargin < 0 {
		c.ScrollMargin = 0
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
}

// Level returns the configured log level, falling back to info.
func (c *Config) Level() zapcore.Level {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// TabSizeFor returns the tab stop for the file at path, letting a matching
// .editorconfig override the configured size.
func (c *Config) TabSizeFor(path string) int {
	if path == "" {
		return c.TabSize
	}
	if n := EditorConfigTabWidth(path); n > 0 {
		return n
	}
	return c.TabSize
}

// ColorScheme maps highlight categories and editor chrome to colors.
type ColorScheme struct {
	Name       string
	Background tcell.Color
	Foreground tcell.Color
	LineNumber tcell.Color
	Keyword    tcell.Color
	Statement  tcell.Color
	Type       tcell.Color
	Identifier tcell.Color
	String     tcell.Color
	Char       tcell.Color
	Comment    tcell.Color
	Number     tcell.Color
}

var Themes = map[string]*ColorScheme{
	"dark": {
		Name:       "Dark",
		Background: tcell.ColorBlack,
		Foreground: tcell.ColorWhite,
		LineNumber: tcell.ColorGray,
		Keyword:    tcell.ColorBlue,
		Statement:  tcell.ColorYellow,
		Type:       tcell.ColorDarkCyan,
		Identifier: tcell.ColorWhite,
		String:     tcell.ColorGreen,
		Char:       tcell.ColorGreen,
		Comment:    tcell.ColorGray,
		Number:     tcell.ColorPurple,
	},
	"light": {
		Name:       "Light",
		Background: tcell.ColorWhite,
		Foreground: tcell.ColorBlack,
		LineNumber: tcell.ColorGray,
		Keyword:    tcell.ColorNavy,
		Statement:  tcell.ColorMaroon,
		Type:       tcell.ColorTeal,
		Identifier: tcell.ColorBlack,
		String:     tcell.ColorGreen,
		Char:       tcell.ColorOlive,
		Comment:    tcell.ColorGray,
		Number:     tcell.ColorPurple,
	},
	"monokai": {
		Name:       "Monokai",
		Background: tcell.NewRGBColor(39, 40, 34),
		Foreground: tcell.NewRGBColor(248, 248, 242),
		LineNumber: tcell.NewRGBColor(144, 144, 128),
		Keyword:    tcell.NewRGBColor(249, 38, 114),
		Statement:  tcell.NewRGBColor(249, 38, 114),
		Type:       tcell.NewRGBColor(102, 217, 239),
		Identifier: tcell.NewRGBColor(248, 248, 242),
		String:     tcell.NewRGBColor(230, 219, 116),
		Char:       tcell.NewRGBColor(230, 219, 116),
		Comment:    tcell.NewRGBColor(117, 113, 94),
		Number:     tcell.NewRGBColor(174, 129, 255),
	},
	"nord": {
		Name:       "Nord",
		Background: tcell.NewRGBColor(46, 52, 64),
		Foreground: tcell.NewRGBColor(236, 239, 244),
		LineNumber: tcell.NewRGBColor(76, 86, 106),
		Keyword:    tcell.NewRGBColor(129, 161, 193),
		Statement:  tcell.NewRGBColor(129, 161, 193),
		Type:       tcell.NewRGBColor(143, 188, 187),
		Identifier: tcell.NewRGBColor(216, 222, 233),
		String:     tcell.NewRGBColor(163, 190, 140),
		Char:       tcell.NewRGBColor(235, 203, 139),
		Comment:    tcell.NewRGBColor(97, 110, 136),
		Number:     tcell.NewRGBColor(180, 142, 173),
	},
	"gruvbox": {
		Name:       "Gruvbox Dark",
		Background: tcell.NewRGBColor(40, 40, 40),
		Foreground: tcell.NewRGBColor(235, 219, 178),
		LineNumber: tcell.NewRGBColor(146, 131, 116),
		Keyword:    tcell.NewRGBColor(251, 73, 52),
		Statement:  tcell.NewRGBColor(254, 128, 25),
		Type:       tcell.NewRGBColor(250, 189, 47),
		Identifier: tcell.NewRGBColor(131, 165, 152),
		String:     tcell.NewRGBColor(184, 187, 38),
		Char:       tcell.NewRGBColor(184, 187, 38),
		Comment:    tcell.NewRGBColor(146, 131, 116),
		Number:     tcell.NewRGBColor(211, 134, 155),
	},
	"dracula": {
		Name:       "Dracula",
		Background: tcell.NewRGBColor(40, 42, 54),
		Foreground: tcell.NewRGBColor(248, 248, 242),
		LineNumber: tcell.NewRGBColor(98, 114, 164),
		Keyword:    tcell.NewRGBColor(255, 121, 198),
		Statement:  tcell.NewRGBColor(255, 121, 198),
		Type:       tcell.NewRGBColor(139, 233, 253),
		Identifier: tcell.NewRGBColor(80, 250, 123),
		String:     tcell.NewRGBColor(241, 250, 140),
		Char:       tcell.NewRGBColor(241, 250, 140),
		Comment:    tcell.NewRGBColor(98, 114, 164),
		Number:     tcell.NewRGBColor(189, 147, 249),
	},
	"solarized-dark": {
		Name:       "Solarized Dark",
		Background: tcell.NewRGBColor(0, 43, 54),
		Foreground: tcell.NewRGBColor(131, 148, 150),
		LineNumber: tcell.NewRGBColor(88, 110, 117),
		Keyword:    tcell.NewRGBColor(133, 153, 0),
		Statement:  tcell.NewRGBColor(203, 75, 22),
		Type:       tcell.NewRGBColor(181, 137, 0),
		Identifier: tcell.NewRGBColor(38, 139, 210),
		String:     tcell.NewRGBColor(42, 161, 152),
		Char:       tcell.NewRGBColor(42, 161, 152),
		Comment:    tcell.NewRGBColor(88, 110, 117),
		Number:     tcell.NewRGBColor(211, 54, 130),
	},
}

func (c *Config) GetTheme() *ColorScheme {
	theme, ok := Themes[c.Theme]
	if !ok {
		return Themes["monokai"]
	}
	return theme
}

func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "kiro", "settings.json")
}

// Load reads the settings file at ConfigPath, returning defaults when it
// does not exist.
func Load() (*Config, error) {
	cfg, err := LoadFile(ConfigPath())
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// LoadFile reads settings from path, picking the decoder by extension. Keys
// missing from the file keep their default values.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := decode(path, data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return json.Unmarshal(data, cfg)
	case ".toml":
		return toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	}
	return ErrUnknownFormat
}

func encode(path string, cfg *Config) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return json.MarshalIndent(cfg, "", "  ")
	case ".toml":
		return toml.Marshal(cfg)
	case ".yaml", ".yml":
		return yaml.Marshal(cfg)
	}
	return nil, ErrUnknownFormat
}

// Save writes the settings to ConfigPath.
func (c *Config) Save() error {
	return c.SaveFile(ConfigPath())
}

// SaveFile writes the settings to path in the format its extension names.
func (c *Config) SaveFile(path string) error {
	data, err := encode(path, c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
