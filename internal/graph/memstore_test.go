package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perfhint/bigo/internal/analyze"
)

func seedMethod(t *testing.T, s Store, filePath, name string, notation analyze.Notation, confidence int) {
	t.Helper()
	err := s.AddMethod(context.Background(), MethodRecord{
		FilePath: filePath,
		Method: analyze.MethodAnalysis{
			Name: name,
			Time: analyze.TimeComplexity{Notation: notation, Confidence: confidence},
		},
	})
	require.NoError(t, err)
}

func TestMemStore_AddAndGetMethod(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	defer s.Close()

	seedMethod(t, s, "a.py", "fib", analyze.NotationExponential, 90)

	rec, err := s.GetMethod(ctx, "a.py", "fib")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, analyze.NotationExponential, rec.Method.Time.Notation)

	missing, err := s.GetMethod(ctx, "a.py", "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemStore_QueryMethods(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	defer s.Close()

	seedMethod(t, s, "a.py", "sum_items", analyze.NotationLinear, 70)
	seedMethod(t, s, "a.py", "find_pairs", analyze.NotationQuadratic, 65)
	seedMethod(t, s, "b.py", "find_triples", analyze.NotationCubic, 70)

	// Name substring, case-insensitive.
	byName, err := s.QueryMethods(ctx, "FIND", "", 0)
	require.NoError(t, err)
	assert.Len(t, byName, 2)

	// Minimum severity filters out the linear method.
	severe, err := s.QueryMethods(ctx, "", analyze.NotationQuadratic, 0)
	require.NoError(t, err)
	require.Len(t, severe, 2)
	for _, r := range severe {
		assert.GreaterOrEqual(t, r.Method.Time.Notation.Rank(), analyze.NotationQuadratic.Rank())
	}

	// Limit truncates in insertion order.
	limited, err := s.QueryMethods(ctx, "", "", 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "sum_items", limited[0].Method.Name)
}

func TestMemStore_HotspotsWorstFirst(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	defer s.Close()

	seedMethod(t, s, "a.py", "linear", analyze.NotationLinear, 70)
	seedMethod(t, s, "a.py", "factorial", analyze.NotationFactorial, 80)
	seedMethod(t, s, "a.py", "quad_shaky", analyze.NotationQuadratic, 60)
	seedMethod(t, s, "a.py", "quad_sure", analyze.NotationQuadratic, 95)

	hot, err := s.Hotspots(ctx, 3)
	require.NoError(t, err)
	require.Len(t, hot, 3)
	assert.Equal(t, "factorial", hot[0].Method.Name)
	// Equal severity breaks ties toward lower confidence.
	assert.Equal(t, "quad_shaky", hot[1].Method.Name)
	assert.Equal(t, "quad_sure", hot[2].Method.Name)
}

func TestMemStore_DuplicateAddOverwrites(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	defer s.Close()

	seedMethod(t, s, "a.py", "f", analyze.NotationLinear, 70)
	seedMethod(t, s, "a.py", "f", analyze.NotationQuadratic, 65)

	rec, err := s.GetMethod(ctx, "a.py", "f")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, analyze.NotationQuadratic, rec.Method.Time.Notation)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.MethodCount)
}

func TestMemStore_CalleesAndStats(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	defer s.Close()

	require.NoError(t, s.AddFile(ctx, analyze.FileNode{Path: "a.py", Language: analyze.LangPython}))
	seedMethod(t, s, "a.py", "top", analyze.NotationConstant, 60)
	require.NoError(t, s.AddCall(ctx, CallEdge{FilePath: "a.py", Caller: "top", Callee: "mid"}))
	require.NoError(t, s.AddCall(ctx, CallEdge{FilePath: "a.py", Caller: "top", Callee: "low"}))

	callees, err := s.Callees(ctx, "a.py", "top")
	require.NoError(t, err)
	assert.Equal(t, []string{"mid", "low"}, callees)

	none, err := s.Callees(ctx, "b.py", "top")
	require.NoError(t, err)
	assert.Empty(t, none)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &analyze.Stats{FileCount: 1, MethodCount: 1, CallCount: 2}, stats)
}

func TestAddFileAnalysis(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	defer s.Close()

	fa := &analyze.FileAnalysis{
		File: analyze.FileNode{Path: "x.py", Language: analyze.LangPython, LOC: 10},
		Methods: []analyze.MethodAnalysis{
			{Name: "a", Time: analyze.TimeComplexity{Notation: analyze.NotationLinear}},
			{Name: "b", Time: analyze.TimeComplexity{Notation: analyze.NotationConstant}},
		},
		Calls: analyze.CallHierarchy{"a": {"b"}},
	}
	require.NoError(t, AddFileAnalysis(ctx, s, fa))

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &analyze.Stats{FileCount: 1, MethodCount: 2, CallCount: 1}, stats)
}
