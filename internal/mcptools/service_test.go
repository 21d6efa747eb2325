package mcptools

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perfhint/bigo/internal/analyze"
	"github.com/perfhint/bigo/internal/graph"
)

func newTestService() *ComplexityService {
	return NewComplexityService(graph.NewMemStore())
}

func TestAnalyzeSource_ClassifiesSnippet(t *testing.T) {
	svc := newTestService()

	_, out, err := svc.AnalyzeSource(context.Background(), nil, AnalyzeSourceInput{
		Source: "def fib(n):\n    if n <= 1:\n        return n\n    return fib(n - 1) + fib(n - 2)\n",
		Language: "python",
	})
	require.NoError(t, err)
	require.Len(t, out.Methods, 1)
	assert.Equal(t, "fib", out.Methods[0].Name)
	assert.Equal(t, analyze.NotationExponential, out.Methods[0].Time.Notation)
}

func TestAnalyzeSource_RequiresSource(t *testing.T) {
	svc := newTestService()
	_, _, err := svc.AnalyzeSource(context.Background(), nil, AnalyzeSourceInput{Language: "python"})
	assert.Error(t, err)
}

func TestAnalyzeSource_UnknownLanguage(t *testing.T) {
	svc := newTestService()
	_, _, err := svc.AnalyzeSource(context.Background(), nil, AnalyzeSourceInput{
		Source:   "x",
		Language: "fortran",
	})
	assert.Error(t, err)
}

func TestAnalyzeRepo_IndexesAndReportsStats(t *testing.T) {
	dir := t.TempDir()
	source := "def loop(items):\n    for i in items:\n        print(i)\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.py"), []byte(source), 0o644))

	svc := newTestService()
	_, out, err := svc.AnalyzeRepo(context.Background(), nil, AnalyzeRepoInput{RepoPath: dir})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Stats.FileCount)
	assert.Equal(t, 1, out.Stats.MethodCount)

	// The indexed method is queryable afterwards.
	_, q, err := svc.QueryMethods(context.Background(), nil, QueryMethodsInput{Query: "loop"})
	require.NoError(t, err)
	require.Equal(t, 1, q.Total)
	assert.Equal(t, analyze.NotationLinear, q.Methods[0].Method.Time.Notation)
}

func TestAnalyzeRepo_RequiresPath(t *testing.T) {
	svc := newTestService()
	_, _, err := svc.AnalyzeRepo(context.Background(), nil, AnalyzeRepoInput{})
	assert.Error(t, err)
}

func TestAnalyzeRepo_RejectsFilePath(t *testing.T) {
	file := filepath.Join(t.TempDir(), "a.py")
	require.NoError(t, os.WriteFile(file, []byte("def f():\n    return 1\n"), 0o644))

	svc := newTestService()
	_, _, err := svc.AnalyzeRepo(context.Background(), nil, AnalyzeRepoInput{RepoPath: file})
	assert.Error(t, err)
}

func TestHotspots_DefaultLimit(t *testing.T) {
	store := graph.NewMemStore()
	svc := NewComplexityService(store)

	for _, m := range []struct {
		name     string
		notation analyze.Notation
	}{
		{"worst", analyze.NotationFactorial},
		{"mid", analyze.NotationQuadratic},
		{"fine", analyze.NotationConstant},
	} {
		require.NoError(t, store.AddMethod(context.Background(), graph.MethodRecord{
			FilePath: "a.py",
			Method: analyze.MethodAnalysis{
				Name: m.name,
				Time: analyze.TimeComplexity{Notation: m.notation, Confidence: 70},
			},
		}))
	}

	_, out, err := svc.Hotspots(context.Background(), nil, HotspotsInput{})
	require.NoError(t, err)
	require.Len(t, out.Methods, 3)
	assert.Equal(t, "worst", out.Methods[0].Method.Name)
}

func TestGetCallees_Validation(t *testing.T) {
	svc := newTestService()
	_, _, err := svc.GetCallees(context.Background(), nil, GetCalleesInput{FilePath: "a.py"})
	assert.Error(t, err)
}

func TestNewComplexityMCPServer(t *testing.T) {
	server := NewComplexityMCPServer(newTestService())
	assert.NotNil(t, server)
}
