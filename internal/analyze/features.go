package analyze

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// FeatureRecord is the normalized structural summary of one function,
// extracted once and shared by every detector. Records live in an Arena;
// Parent is a non-owning index and Children are owned indices, so the lexical
// nesting tree carries no pointer cycles.
//
// Loop, recursion, and keyword counts cover the function's own body only.
// Nested function definitions get their own child records and do not
// contribute to the parent's counts.
type FeatureRecord struct {
	ID       int
	Parent   int // -1 for a top-level function
	Children []int

	Name  string
	Depth int // nesting depth from the top-level function

	ForLoopCount       int
	WhileLoopCount     int
	MaxLoopDepth       int
	IsNested           bool // true when MaxLoopDepth > 1
	RecursiveCallCount int
	ComprehensionCount int
	StatementCount     int

	Keywords map[string]bool // vocabulary hits from identifiers and strings

	// Truncated marks a function whose traversal hit the depth cap. The
	// analyzer substitutes the safe constant default for truncated records.
	Truncated bool

	// Node is the function definition node; valid only while the parsed
	// tree is alive (one analysis run).
	Node      *tree_sitter.Node
	StartLine int
	EndLine   int

	// Filled in after classification.
	TimeNotation  Notation
	SpaceNotation Notation
	Confidence    int
}

// LoopCount returns the total number of loop constructs in the function body.
func (f *FeatureRecord) LoopCount() int {
	return f.ForLoopCount + f.WhileLoopCount
}

// Arena owns every FeatureRecord extracted during one analysis run, along
// with the source bytes the records' nodes point into.
type Arena struct {
	records []*FeatureRecord
	source  []byte
}

// NewArena returns an arena reading from the given source bytes.
func NewArena(source []byte) *Arena {
	return &Arena{source: source}
}

// Get returns the record with the given id, or nil when out of range.
func (a *Arena) Get(id int) *FeatureRecord {
	if id < 0 || id >= len(a.records) {
		return nil
	}
	return a.records[id]
}

// Len returns the number of records in the arena.
func (a *Arena) Len() int {
	return len(a.records)
}

// Extract walks a function definition node once per analysis dimension and
// produces its FeatureRecord, registering it as a child of parentID when
// parentID >= 0. Nested function definitions are extracted recursively into
// child records. The walks are deliberately simple full-subtree passes;
// functions are small and clarity wins over speed here.
func (a *Arena) Extract(node *tree_sitter.Node, name string, p *Profile, parentID int) *FeatureRecord {
	rec := &FeatureRecord{
		ID:       len(a.records),
		Parent:   parentID,
		Name:     name,
		Keywords: make(map[string]bool),
		Node:     node,
	}
	a.records = append(a.records, rec)

	if parent := a.Get(parentID); parent != nil {
		parent.Children = append(parent.Children, rec.ID)
		rec.Depth = parent.Depth + 1
	}

	rec.StartLine, rec.EndLine = lineRange(node)

	body := p.bodyNode(node)

	complete := true
	complete = a.countLoops(rec, body, p) && complete
	complete = a.measureNesting(rec, body, p) && complete
	complete = a.countRecursion(rec, body, p) && complete
	complete = a.collectKeywords(rec, body, p) && complete
	rec.Truncated = !complete

	rec.StatementCount = int(body.NamedChildCount())

	a.extractNested(rec, body, p)

	return rec
}

// countLoops counts for/while loops and comprehensions in the own body.
func (a *Arena) countLoops(rec *FeatureRecord, body *tree_sitter.Node, p *Profile) bool {
	return walkScope(body, p, func(n *tree_sitter.Node, _ int) bool {
		kind := n.Kind()
		switch {
		case p.ForKinds[kind]:
			rec.ForLoopCount++
		case p.WhileKinds[kind]:
			rec.WhileLoopCount++
		case p.ComprehensionKinds[kind]:
			rec.ComprehensionCount++
		}
		return true
	})
}

// measureNesting computes the maximum loop nesting depth in the own body.
func (a *Arena) measureNesting(rec *FeatureRecord, body *tree_sitter.Node, p *Profile) bool {
	max := 0
	complete := loopDepthWalk(body, p, 0, 0, &max)
	rec.MaxLoopDepth = max
	rec.IsNested = max > 1
	return complete
}

func loopDepthWalk(node *tree_sitter.Node, p *Profile, depth, loopDepth int, max *int) bool {
	if node == nil {
		return true
	}
	if depth > maxWalkDepth {
		return false
	}
	if depth > 0 && p.FunctionKinds[node.Kind()] {
		return true
	}
	if p.isLoop(node.Kind()) {
		loopDepth++
		if loopDepth > *max {
			*max = loopDepth
		}
	}
	complete := true
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		if !loopDepthWalk(child, p, depth+1, loopDepth, max) {
			complete = false
		}
	}
	return complete
}

// countRecursion counts call sites whose callee name equals the function's
// own name.
func (a *Arena) countRecursion(rec *FeatureRecord, body *tree_sitter.Node, p *Profile) bool {
	if rec.Name == "" {
		return true
	}
	source := a.source
	return walkScope(body, p, func(n *tree_sitter.Node, _ int) bool {
		if p.CallKinds[n.Kind()] && calleeName(n, p, source) == rec.Name {
			rec.RecursiveCallCount++
		}
		return true
	})
}

// collectKeywords matches identifiers and string literals against the class
// vocabularies. The function's own name participates as well.
func (a *Arena) collectKeywords(rec *FeatureRecord, body *tree_sitter.Node, p *Profile) bool {
	source := a.source
	for _, hit := range keywordHits(strings.ToLower(rec.Name)) {
		rec.Keywords[hit] = true
	}
	return walkScope(body, p, func(n *tree_sitter.Node, _ int) bool {
		kind := n.Kind()
		if !p.IdentifierKinds[kind] && !p.StringKinds[kind] {
			return true
		}
		token := strings.ToLower(nodeText(n, source))
		for _, hit := range keywordHits(token) {
			rec.Keywords[hit] = true
		}
		return true
	})
}

// extractNested discovers directly nested function definitions and extracts
// a child record for each.
func (a *Arena) extractNested(rec *FeatureRecord, body *tree_sitter.Node, p *Profile) {
	source := a.source
	walkTree(body, func(n *tree_sitter.Node, depth int) bool {
		if depth == 0 || !p.FunctionKinds[n.Kind()] {
			return true
		}
		name := p.functionName(n, source)
		a.Extract(n, name, p, rec.ID)
		return false // the child extraction covers this subtree
	})
}

// calleeName returns the simple name of a call's callee: the identifier
// itself, or the final attribute of a dotted callee ("heapq.heappush" →
// matched both whole and as "heappush").
func calleeName(call *tree_sitter.Node, p *Profile, source []byte) string {
	callee := p.calleeNode(call)
	if callee == nil {
		return ""
	}
	text := nodeText(callee, source)
	if idx := strings.LastIndexByte(text, '.'); idx != -1 && idx+1 < len(text) {
		return text[idx+1:]
	}
	return text
}

// calleeFullName returns the full dotted callee text of a call node.
func calleeFullName(call *tree_sitter.Node, p *Profile, source []byte) string {
	return nodeText(p.calleeNode(call), source)
}
