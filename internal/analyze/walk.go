package analyze

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// maxWalkDepth caps recursive tree traversal. Subtrees deeper than this are
// not analyzed; callers treat a truncated walk as a signal to degrade to the
// safe constant default rather than risk stack exhaustion.
const maxWalkDepth = 100

// visitFunc is invoked for every node during a walk. Returning false skips
// the node's children.
type visitFunc func(node *tree_sitter.Node, depth int) bool

// walkTree performs a bounded depth-first traversal of node's subtree,
// including node itself. It returns false when the depth cap was hit anywhere
// in the subtree.
func walkTree(node *tree_sitter.Node, visit visitFunc) bool {
	return walkDepth(node, 0, visit)
}

func walkDepth(node *tree_sitter.Node, depth int, visit visitFunc) bool {
	if node == nil {
		return true
	}
	if depth > maxWalkDepth {
		return false
	}
	if !visit(node, depth) {
		return true
	}
	complete := true
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		if !walkDepth(child, depth+1, visit) {
			complete = false
		}
	}
	return complete
}

// walkScope is walkTree restricted to a single function scope: traversal does
// not descend into nested function definitions. The root node itself is
// visited even if it is a function definition.
func walkScope(root *tree_sitter.Node, p *Profile, visit visitFunc) bool {
	return walkTree(root, func(n *tree_sitter.Node, depth int) bool {
		if depth > 0 && p.FunctionKinds[n.Kind()] {
			return false
		}
		return visit(n, depth)
	})
}

// anyInScope reports whether pred holds for any node in the function scope.
func anyInScope(root *tree_sitter.Node, p *Profile, pred func(*tree_sitter.Node) bool) bool {
	found := false
	walkScope(root, p, func(n *tree_sitter.Node, _ int) bool {
		if found {
			return false
		}
		if pred(n) {
			found = true
			return false
		}
		return true
	})
	return found
}

// countInScope counts nodes in the function scope satisfying pred.
func countInScope(root *tree_sitter.Node, p *Profile, pred func(*tree_sitter.Node) bool) int {
	count := 0
	walkScope(root, p, func(n *tree_sitter.Node, _ int) bool {
		if pred(n) {
			count++
		}
		return true
	})
	return count
}

// nodeText returns the source text of a node, or "" for nil nodes.
func nodeText(node *tree_sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return node.Utf8Text(source)
}

// lineRange returns the 1-based start and end lines of a node.
func lineRange(node *tree_sitter.Node) (int, int) {
	return int(node.StartPosition().Row) + 1, int(node.EndPosition().Row) + 1
}
