package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/perfhint/bigo/internal/analyze"
)

// Report is the top-level JSON export structure.
type Report struct {
	GeneratedAt string                  `json:"generatedAt"`
	Files       []*analyze.FileAnalysis `json:"files"`
	Stats       analyze.Stats           `json:"stats"`
}

// BuildReport assembles a Report from scan results.
func BuildReport(results []*analyze.FileAnalysis) *Report {
	r := &Report{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Files:       results,
	}
	for _, fa := range results {
		r.Stats.FileCount++
		r.Stats.MethodCount += len(fa.Methods)
		for _, callees := range fa.Calls {
			r.Stats.CallCount += len(callees)
		}
	}
	return r
}

// WriteJSON writes the report as indented JSON.
func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
