package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perfhint/bigo/internal/analyze"
)

func TestAnnotate_InsertsHintAboveFunction(t *testing.T) {
	source := []byte("def pairs(items):\n    return items\n")
	fa := &analyze.FileAnalysis{
		File: analyze.FileNode{Path: "a.py", Language: analyze.LangPython},
		Methods: []analyze.MethodAnalysis{
			{
				Name:        "pairs",
				LineStart:   1,
				LineEnd:     2,
				Time:        analyze.TimeComplexity{Notation: analyze.NotationQuadratic, Confidence: 65},
				Space:       analyze.SpaceComplexity{Notation: analyze.NotationLinear},
				Explanation: "two nested loops",
			},
		},
	}

	out := Annotate(source, fa)
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Equal(t, "# time O(n²), space O(n) (65% confidence): two nested loops", lines[0])
	assert.Equal(t, "def pairs(items):", lines[1])
}

func TestAnnotate_PreservesIndentation(t *testing.T) {
	source := []byte("class C:\n    def m(self):\n        return 1\n")
	fa := &analyze.FileAnalysis{
		File: analyze.FileNode{Path: "a.py", Language: analyze.LangPython},
		Methods: []analyze.MethodAnalysis{
			{
				Name:      "m",
				LineStart: 2,
				LineEnd:   3,
				Time:      analyze.TimeComplexity{Notation: analyze.NotationConstant, Confidence: 70},
				Space:     analyze.SpaceComplexity{Notation: analyze.NotationConstant},
			},
		},
	}

	out := Annotate(source, fa)
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.True(t, strings.HasPrefix(lines[1], "    # time O(1)"), "got %q", lines[1])
	assert.Equal(t, "    def m(self):", lines[2])
}

func TestAnnotate_GoCommentMarker(t *testing.T) {
	source := []byte("package p\n\nfunc F() int { return 1 }\n")
	fa := &analyze.FileAnalysis{
		File: analyze.FileNode{Path: "a.go", Language: analyze.LangGo},
		Methods: []analyze.MethodAnalysis{
			{
				Name:      "F",
				LineStart: 3,
				LineEnd:   3,
				Time:      analyze.TimeComplexity{Notation: analyze.NotationConstant, Confidence: 75},
				Space:     analyze.SpaceComplexity{Notation: analyze.NotationConstant},
			},
		},
	}

	out := Annotate(source, fa)
	assert.Contains(t, out, "// time O(1), space O(1) (75% confidence)")
}

func TestAnnotate_NoMethodsLeavesSourceUnchanged(t *testing.T) {
	source := []byte("x = 1\ny = 2\n")
	fa := &analyze.FileAnalysis{
		File: analyze.FileNode{Path: "a.py", Language: analyze.LangPython},
	}
	assert.Equal(t, string(source), Annotate(source, fa))
}
