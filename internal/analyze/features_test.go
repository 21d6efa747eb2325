package analyze

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// extractPython parses a Python snippet and extracts feature records for
// every top-level function.
func extractPython(t *testing.T, source string) (*Arena, []*FeatureRecord) {
	t.Helper()

	parser := tree_sitter.NewParser()
	t.Cleanup(func() { parser.Close() })
	require.NoError(t, parser.SetLanguage(tree_sitter.NewLanguage(tree_sitter_python.Language())))

	tree := parser.Parse([]byte(source), nil)
	require.NotNil(t, tree)
	t.Cleanup(func() { tree.Close() })

	arena := NewArena([]byte(source))
	records := discoverFunctions(arena, tree.RootNode(), ProfileFor(LangPython))
	return arena, records
}

func TestExtract_CountsLoopsAndNesting(t *testing.T) {
	_, records := extractPython(t, `def pairs(items):
    for i in range(len(items)):
        for j in range(len(items)):
            print(i, j)
    while items:
        items.pop()
`)
	require.Len(t, records, 1)
	rec := records[0]

	assert.Equal(t, "pairs", rec.Name)
	assert.Equal(t, 2, rec.ForLoopCount)
	assert.Equal(t, 1, rec.WhileLoopCount)
	assert.Equal(t, 3, rec.LoopCount())
	assert.Equal(t, 2, rec.MaxLoopDepth)
	assert.True(t, rec.IsNested)
	assert.Zero(t, rec.RecursiveCallCount)
	assert.False(t, rec.Truncated)
}

func TestExtract_CountsRecursion(t *testing.T) {
	_, records := extractPython(t, `def fib(n):
    if n <= 1:
        return n
    return fib(n - 1) + fib(n - 2)
`)
	require.Len(t, records, 1)
	assert.Equal(t, 2, records[0].RecursiveCallCount)
	assert.Zero(t, records[0].LoopCount())
}

func TestExtract_NestedFunctionsBecomeChildren(t *testing.T) {
	arena, records := extractPython(t, `def outer(items):
    def inner(xs):
        for a in xs:
            for b in xs:
                pass
    return inner(items)
`)
	require.Len(t, records, 1)
	outer := records[0]

	// The nested definition's loops belong to the child record only.
	assert.Zero(t, outer.LoopCount())
	assert.False(t, outer.IsNested)

	require.Len(t, outer.Children, 1)
	inner := arena.Get(outer.Children[0])
	require.NotNil(t, inner)
	assert.Equal(t, "inner", inner.Name)
	assert.Equal(t, outer.ID, inner.Parent)
	assert.Equal(t, 1, inner.Depth)
	assert.Equal(t, 2, inner.MaxLoopDepth)
}

func TestExtract_CollectsVocabularyKeywords(t *testing.T) {
	_, records := extractPython(t, `def merge_sort(arr):
    if len(arr) <= 1:
        return arr
    mid = len(arr) // 2
    return merge(merge_sort(arr[:mid]), merge_sort(arr[mid:]))
`)
	require.Len(t, records, 1)
	rec := records[0]

	// The function's own name participates in keyword collection.
	assert.True(t, rec.Keywords["merge_sort"])
	assert.True(t, rec.Keywords["sort"])
	assert.True(t, rec.Keywords["merge"])
	assert.True(t, hasAny(rec.Keywords, linearithmicVocab))
	assert.True(t, hasAny(rec.Keywords, sortingVocab))
}

func TestExtract_CountsComprehensions(t *testing.T) {
	_, records := extractPython(t, `def clean(items):
    squares = [x * x for x in items]
    uniq = {x for x in items}
    return squares, uniq
`)
	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, 2, rec.ComprehensionCount)
	assert.Zero(t, rec.ForLoopCount)
}

func TestExtract_LineRange(t *testing.T) {
	_, records := extractPython(t, `def first():
    return 1


def second():
    a = 1
    b = 2
    return a + b
`)
	require.Len(t, records, 2)
	assert.Equal(t, 1, records[0].StartLine)
	assert.Equal(t, 2, records[0].EndLine)
	assert.Equal(t, 5, records[1].StartLine)
	assert.Equal(t, 8, records[1].EndLine)
}

func TestCalleeName_DottedCallsUseLastSegment(t *testing.T) {
	source := `def run(items):
    heapq.heappush(items, 1)
`
	analyzer := NewTreeSitterAnalyzer()
	defer analyzer.Close()
	fa, err := analyzer.Analyze(context.Background(), "t.py", []byte(source), LangPython)
	require.NoError(t, err)
	require.Len(t, fa.Methods, 1)
	// heapq.heappush resolves to heappush and must not register as a call to
	// a same-file function.
	assert.Empty(t, fa.Calls)
}

func TestArena_GetOutOfRange(t *testing.T) {
	arena := NewArena(nil)
	assert.Nil(t, arena.Get(-1))
	assert.Nil(t, arena.Get(0))
	assert.Zero(t, arena.Len())
}
