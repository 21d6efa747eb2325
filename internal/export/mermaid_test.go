package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateMermaid(t *testing.T) {
	out := GenerateMermaid(sampleResults())

	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	assert.Contains(t, out, `subgraph F0["a.py"]`)
	assert.Contains(t, out, `pairs<br/>O(n²)`)
	assert.Contains(t, out, `head<br/>O(1)`)
	assert.Contains(t, out, "-->", "the call edge should be rendered")

	// A file with no methods contributes no subgraph.
	assert.NotContains(t, out, "b.go")
}

func TestGenerateMermaid_Empty(t *testing.T) {
	assert.Equal(t, "graph TD\n", GenerateMermaid(nil))
}
