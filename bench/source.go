package bench

import (
	"fmt"
	"math/rand"
)

// GenerateSource returns about n lines of Go-like code containing every
// construct the highlighter distinguishes, including block comments and raw
// strings that span several lines.
func GenerateSource(n int, seed int64) []string {
	rng := rand.New(rand.NewSource(seed))
	lines := []string{"package generated", "", `import "fmt"`, ""}
	for fn := 0; len(lines) < n; fn++ {
		switch rng.Intn(4) {
		case 0:
			lines = append(lines, "/*", fmt.Sprintf(" * f%d does things.", fn), " */")
		case 1:
			lines = append(lines, fmt.Sprintf("var tmpl%d = `", fn), "{{ .Name }}", "`")
		}
		lines = append(lines, fmt.Sprintf("func f%d(x int, s string) (rune, error) {", fn))
		body := 3 + rng.Intn(12)
		for i := 0; i < body; i++ {
			switch rng.Intn(5) {
			case 0:
				lines = append(lines, fmt.Sprintf("\tif x > 0x%x { // guard %d", rng.Intn(4096), i), "\t\treturn 'a', nil", "\t}")
			case 1:
				lines = append(lines, fmt.Sprintf("\ts += \"step %d\\n\"", i))
			case 2:
				lines = append(lines, fmt.Sprintf("\tfor i := 0; i < %d; i++ { x += i } /* inline */", rng.Intn(100)))
			case 3:
				lines = append(lines, fmt.Sprintf("\tfmt.Println(x, %d.%d, s)", rng.Intn(10), rng.Intn(100)))
			default:
				lines = append(lines, "")
			}
		}
		lines = append(lines, "\treturn '\\n', fmt.Errorf(\"f: %d\", x)", "}", "")
	}
	return lines
}
