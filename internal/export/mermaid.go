package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/perfhint/bigo/internal/analyze"
)

// GenerateMermaid produces a Mermaid graph TD diagram of the per-file call
// hierarchies. Functions are grouped by file; call edges become arrows and
// each node is labeled with its time notation.
func GenerateMermaid(results []*analyze.FileAnalysis) string {
	nodeIDs := make(map[string]string)
	nextID := 0
	getID := func(key string) string {
		if id, ok := nodeIDs[key]; ok {
			return id
		}
		id := fmt.Sprintf("N%d", nextID)
		nextID++
		nodeIDs[key] = id
		return id
	}

	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for fi, fa := range results {
		if len(fa.Methods) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("  subgraph F%d[\"%.40s\"]\n", fi, fa.File.Path))
		for _, m := range fa.Methods {
			id := getID(fa.File.Path + ":" + m.Name)
			sb.WriteString(fmt.Sprintf("    %s[\"%s<br/>%s\"]\n", id, m.Name, m.Time.Notation))
		}
		sb.WriteString("  end\n")

		callers := make([]string, 0, len(fa.Calls))
		for caller := range fa.Calls {
			callers = append(callers, caller)
		}
		sort.Strings(callers)
		for _, caller := range callers {
			from := getID(fa.File.Path + ":" + caller)
			for _, callee := range fa.Calls[caller] {
				to := getID(fa.File.Path + ":" + callee)
				sb.WriteString(fmt.Sprintf("  %s --> %s\n", from, to))
			}
		}
	}

	return sb.String()
}
