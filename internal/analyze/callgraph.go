package analyze

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// BuildCallHierarchy scans each function body for calls to other functions
// defined in the same file. Self-calls are excluded: plain recursion is the
// detector chain's business, while the hierarchy feeds cross-function
// propagation. Each callee appears at most once per caller, in call order.
func BuildCallHierarchy(records []*FeatureRecord, p *Profile, source []byte) CallHierarchy {
	defined := make(map[string]bool, len(records))
	for _, rec := range records {
		if rec.Name != "" {
			defined[rec.Name] = true
		}
	}

	hierarchy := make(CallHierarchy, len(records))
	for _, rec := range records {
		if rec.Name == "" {
			continue
		}
		callees := collectCallees(rec, p, source, defined)
		if len(callees) > 0 {
			hierarchy[rec.Name] = callees
		}
	}
	return hierarchy
}

func collectCallees(rec *FeatureRecord, p *Profile, source []byte, defined map[string]bool) []string {
	body := p.bodyNode(rec.Node)
	var callees []string
	seen := make(map[string]bool)

	walkScope(body, p, func(n *tree_sitter.Node, _ int) bool {
		if !p.CallKinds[n.Kind()] {
			return true
		}
		name := calleeName(n, p, source)
		if name == "" || name == rec.Name || !defined[name] || seen[name] {
			return true
		}
		seen[name] = true
		callees = append(callees, name)
		return true
	})
	return callees
}
