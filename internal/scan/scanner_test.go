package scan

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perfhint/bigo/internal/analyze"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLanguageFor(t *testing.T) {
	tests := []struct {
		path string
		want analyze.Language
		ok   bool
	}{
		{"a/b/algo.py", analyze.LangPython, true},
		{"main.go", analyze.LangGo, true},
		{"src/app.TS", analyze.LangTypeScript, true},
		{"lib.rs", analyze.LangRust, true},
		{"notes.md", "", false},
		{"Makefile", "", false},
	}
	for _, tt := range tests {
		lang, ok := LanguageFor(tt.path)
		assert.Equal(t, tt.ok, ok, tt.path)
		if ok {
			assert.Equal(t, tt.want, lang, tt.path)
		}
	}
}

func TestScan_AnalyzesTreeInPathOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.py", "def linear(items):\n    for i in items:\n        print(i)\n")
	writeFile(t, dir, "a.py", "def first(items):\n    return items[0]\n")
	writeFile(t, dir, "sub/c.go", "package sub\n\nfunc Head(xs []int) int { return xs[0] }\n")

	results, err := Scan(context.Background(), dir, Options{})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "a.py", results[0].File.Path)
	assert.Equal(t, "b.py", results[1].File.Path)
	assert.Equal(t, filepath.Join("sub", "c.go"), results[2].File.Path)

	require.Len(t, results[1].Methods, 1)
	assert.Equal(t, analyze.NotationLinear, results[1].Methods[0].Time.Notation)
}

func TestScan_LanguageFilter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.py", "def f():\n    return 1\n")
	writeFile(t, dir, "b.go", "package b\n\nfunc F() int { return 1 }\n")

	results, err := Scan(context.Background(), dir, Options{
		Languages: []analyze.Language{analyze.LangPython},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, analyze.LangPython, results[0].File.Language)
}

func TestScan_SkipsExcludedDirs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "keep.py", "def f():\n    return 1\n")
	writeFile(t, dir, "node_modules/skip.py", "def g():\n    return 2\n")
	writeFile(t, dir, "generated/skip.py", "def h():\n    return 3\n")

	results, err := Scan(context.Background(), dir, Options{
		ExcludeDirs: []string{"generated"},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "keep.py", results[0].File.Path)
}

func TestScan_IgnoresUnsupportedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "readme.md", "# nothing to see\n")
	writeFile(t, dir, "data.json", "{}\n")

	results, err := Scan(context.Background(), dir, Options{})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestScan_Fixtures(t *testing.T) {
	root := filepath.Join("..", "..", "testdata", "fixtures")

	results, err := Scan(context.Background(), root, Options{})
	require.NoError(t, err)
	require.NotEmpty(t, results)

	byPath := make(map[string]*analyze.FileAnalysis, len(results))
	total := 0
	for _, fa := range results {
		byPath[fa.File.Path] = fa
		total += len(fa.Methods)
	}
	assert.Greater(t, total, 5)

	classics := byPath[filepath.Join("pyalgos", "classics.py")]
	require.NotNil(t, classics)

	wantNotations := map[string]analyze.Notation{
		"fibonacci":       analyze.NotationExponential,
		"merge_sort":      analyze.NotationLinearithmic,
		"binary_search":   analyze.NotationLogarithmic,
		"matrix_multiply": analyze.NotationCubic,
		"sum_items":       analyze.NotationLinear,
		"get_first":       analyze.NotationConstant,
	}
	for _, m := range classics.Methods {
		if want, ok := wantNotations[m.Name]; ok {
			assert.Equal(t, want, m.Time.Notation, "%s: %s", m.Name, m.Explanation)
		}
	}
}
