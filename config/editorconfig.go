package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// editorConfig is one parsed .editorconfig file.
type editorConfig struct {
	root     bool
	sections []ecSection
}

type ecSection struct {
	match *regexp.Regexp // nil when the glob does not compile
	props map[string]string
}

func readEditorConfig(path string) (*editorConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	ec := &editorConfig{}
	var cur *ecSection
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line[0] == '#' || line[0] == ';' {
			continue
		}
		if line[0] == '[' && line[len(line)-1] == ']' {
			re, _ := globRegexp(line[1 : len(line)-1])
			ec.sections = append(ec.sections, ecSection{match: re, props: map[string]string{}})
			cur = &ec.sections[len(ec.sections)-1]
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.ToLower(strings.TrimSpace(value))
		if cur == nil {
			if key == "root" {
				ec.root = value == "true"
			}
			continue
		}
		cur.props[key] = value
	}
	return ec, nil
}

// apply copies the properties of every section matching rel into props.
// Later sections win.
func (ec *editorConfig) apply(rel string, props map[string]string) {
	for _, s := range ec.sections {
		if s.match == nil || !s.match.MatchString(rel) {
			continue
		}
		for k, v := range s.props {
			props[k] = v
		}
	}
}

// globRegexp translates an .editorconfig section glob. A glob without a
// slash matches the file name in any directory; otherwise it is anchored at
// the directory holding the .editorconfig file.
func globRegexp(glob string) (*regexp.Regexp, error) {
	var sb strings.Builder
	sb.WriteString("^")
	if strings.ContainsRune(glob, '/') {
		glob = strings.TrimPrefix(glob, "/")
	} else {
		sb.WriteString("(?:.*/)?")
	}

	rs := []rune(glob)
	depth := 0
	for i := 0; i < len(rs); i++ {
		switch c := rs[i]; c {
		case '*':
			if i+1 < len(rs) && rs[i+1] == '*' {
				sb.WriteString(".*")
				i++
			} else {
				sb.WriteString("[^/]*")
			}
		case '?':
			sb.WriteString("[^/]")
		case '[', ']':
			sb.WriteRune(c)
		case '{':
			depth++
			sb.WriteString("(?:")
		case '}':
			if depth == 0 {
				sb.WriteString(`\}`)
				continue
			}
			depth--
			sb.WriteString(")")
		case ',':
			if depth > 0 {
				sb.WriteString("|")
			} else {
				sb.WriteString(",")
			}
		case '\\':
			if i+1 < len(rs) {
				i++
				sb.WriteString(regexp.QuoteMeta(string(rs[i])))
			}
		default:
			sb.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	sb.WriteString("$")
	return regexp.Compile(sb.String())
}

// EditorConfigTabWidth returns the tab width the .editorconfig files above
// path give it, or 0 when none applies. tab_width wins over indent_size.
func EditorConfigTabWidth(path string) int {
	abs, err := filepath.Abs(path)
	if err != nil {
		return 0
	}

	type located struct {
		dir string
		ec  *editorConfig
	}
	var chain []located
	for dir := filepath.Dir(abs); ; {
		if ec, err := readEditorConfig(filepath.Join(dir, ".editorconfig")); err == nil {
			chain = append(chain, located{dir, ec})
			if ec.root {
				break
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	props := make(map[string]string)
	for i := len(chain) - 1; i >= 0; i-- {
		rel, err := filepath.Rel(chain[i].dir, abs)
		if err != nil {
			continue
		}
		chain[i].ec.apply(filepath.ToSlash(rel), props)
	}

	for _, key := range []string{"tab_width", "indent_size"} {
		if n, err := strconv.Atoi(props[key]); err == nil && n > 0 {
			return n
		}
	}
	return 0
}
