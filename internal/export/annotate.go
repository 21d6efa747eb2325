package export

import (
	"fmt"
	"strings"

	"github.com/perfhint/bigo/internal/analyze"
)

// commentMarkers maps languages to their line comment prefix.
var commentMarkers = map[analyze.Language]string{
	analyze.LangPython:     "#",
	analyze.LangGo:         "//",
	analyze.LangTypeScript: "//",
	analyze.LangRust:       "//",
}

// Annotate renders the source with a complexity hint line inserted above
// each analyzed function, preserving the function's indentation. The source
// itself is never modified in place; a new string is returned.
func Annotate(source []byte, fa *analyze.FileAnalysis) string {
	marker := commentMarkers[fa.File.Language]
	if marker == "" {
		marker = "//"
	}

	// Hint per 1-based start line. Later duplicates on the same line lose.
	hints := make(map[int]string, len(fa.Methods))
	for _, m := range fa.Methods {
		if _, ok := hints[m.LineStart]; ok {
			continue
		}
		hints[m.LineStart] = hintLine(marker, &m)
	}

	lines := strings.Split(string(source), "\n")
	var sb strings.Builder
	for i, line := range lines {
		if hint, ok := hints[i+1]; ok {
			sb.WriteString(indentOf(line))
			sb.WriteString(hint)
			sb.WriteByte('\n')
		}
		sb.WriteString(line)
		if i < len(lines)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// hintLine formats one inline hint comment.
func hintLine(marker string, m *analyze.MethodAnalysis) string {
	hint := fmt.Sprintf("%s time %s, space %s (%d%% confidence)",
		marker, m.Time.Notation, m.Space.Notation, m.Time.Confidence)
	if m.Explanation != "" {
		hint += ": " + m.Explanation
	}
	return hint
}

func indentOf(line string) string {
	for i, r := range line {
		if r != ' ' && r != '\t' {
			return line[:i]
		}
	}
	return line
}
