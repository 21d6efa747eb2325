package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perfhint/bigo/internal/analyze"
)

func sampleResults() []*analyze.FileAnalysis {
	return []*analyze.FileAnalysis{
		{
			File: analyze.FileNode{Path: "a.py", Language: analyze.LangPython, LOC: 12},
			Methods: []analyze.MethodAnalysis{
				{
					Name:      "pairs",
					LineStart: 1,
					LineEnd:   6,
					Time:      analyze.TimeComplexity{Notation: analyze.NotationQuadratic, Confidence: 65},
					Space:     analyze.SpaceComplexity{Notation: analyze.NotationLinear, Confidence: 70},
				},
				{
					Name:  "head",
					Time:  analyze.TimeComplexity{Notation: analyze.NotationConstant, Confidence: 75},
					Space: analyze.SpaceComplexity{Notation: analyze.NotationConstant, Confidence: 70},
				},
			},
			Calls: analyze.CallHierarchy{"pairs": {"head"}},
		},
		{
			File: analyze.FileNode{Path: "b.go", Language: analyze.LangGo, LOC: 5},
		},
	}
}

func TestBuildReport_Stats(t *testing.T) {
	r := BuildReport(sampleResults())
	assert.Equal(t, 2, r.Stats.FileCount)
	assert.Equal(t, 2, r.Stats.MethodCount)
	assert.Equal(t, 1, r.Stats.CallCount)
	assert.NotEmpty(t, r.GeneratedAt)
}

func TestWriteJSON_RoundTrips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, BuildReport(sampleResults())))

	var decoded Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Files, 2)
	assert.Equal(t, "a.py", decoded.Files[0].File.Path)
	assert.Equal(t, analyze.NotationQuadratic, decoded.Files[0].Methods[0].Time.Notation)
}
