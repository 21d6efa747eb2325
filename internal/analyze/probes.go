package analyze

import (
	"strconv"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// nodeScope bundles a function body with its profile and source so the
// structural probes below stay readable. All probes stay within the function
// scope (no descent into nested function definitions) and are bounded by the
// traversal depth cap.
type nodeScope struct {
	node    *tree_sitter.Node
	profile *Profile
	source  []byte
}

func (s *nodeScope) text(n *tree_sitter.Node) string {
	return nodeText(n, s.source)
}

// normalized returns a node's text with all whitespace removed, for shape
// checks like "x=x//2".
func (s *nodeScope) normalized(n *tree_sitter.Node) string {
	var b strings.Builder
	for _, r := range s.text(n) {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// walkLoopDepth visits every node in scope with its enclosing loop count.
func (s *nodeScope) walkLoopDepth(visit func(n *tree_sitter.Node, loopDepth int) bool) {
	var rec func(n *tree_sitter.Node, depth, loopDepth int)
	rec = func(n *tree_sitter.Node, depth, loopDepth int) {
		if n == nil || depth > maxWalkDepth {
			return
		}
		if depth > 0 && s.profile.FunctionKinds[n.Kind()] {
			return
		}
		if !visit(n, loopDepth) {
			return
		}
		if s.profile.isLoop(n.Kind()) {
			loopDepth++
		}
		for i := uint(0); i < n.ChildCount(); i++ {
			rec(n.Child(i), depth+1, loopDepth)
		}
	}
	rec(s.node, 0, 0)
}

// --- Recursion shapes ---

// loopContainsSelfCall reports a loop whose body calls the function itself,
// the classic permutation-generation shape.
func (s *nodeScope) loopContainsSelfCall(name string) bool {
	if name == "" {
		return false
	}
	found := false
	s.walkLoopDepth(func(n *tree_sitter.Node, loopDepth int) bool {
		if found {
			return false
		}
		if loopDepth > 0 && s.profile.CallKinds[n.Kind()] && calleeName(n, s.profile, s.source) == name {
			found = true
			return false
		}
		return true
	})
	return found
}

// selfCallsCombinedByAddition reports a binary expression adding the results
// of two self-recursive calls (the fibonacci shape).
func (s *nodeScope) selfCallsCombinedByAddition(name string) bool {
	if name == "" {
		return false
	}
	return anyInScope(s.node, s.profile, func(n *tree_sitter.Node) bool {
		if !s.profile.BinaryKinds[n.Kind()] || n.NamedChildCount() < 2 {
			return false
		}
		left := n.NamedChild(0)
		right := n.NamedChild(n.NamedChildCount() - 1)
		if left == nil || right == nil || left == right {
			return false
		}
		if !strings.Contains(s.text(n), "+") {
			return false
		}
		return s.containsSelfCall(left, name) && s.containsSelfCall(right, name)
	})
}

func (s *nodeScope) containsSelfCall(root *tree_sitter.Node, name string) bool {
	sub := &nodeScope{node: root, profile: s.profile, source: s.source}
	return anyInScope(sub.node, s.profile, func(n *tree_sitter.Node) bool {
		return s.profile.CallKinds[n.Kind()] && calleeName(n, s.profile, s.source) == name
	})
}

// selfCallWithShrunkArg reports a single-branch recursive descent: a call to
// the function itself whose arguments are visibly halved or advanced one step
// into a tree ("n // 2", "mid", ".left", ".right").
func (s *nodeScope) selfCallWithShrunkArg(name string) bool {
	if name == "" {
		return false
	}
	return anyInScope(s.node, s.profile, func(n *tree_sitter.Node) bool {
		if !s.profile.CallKinds[n.Kind()] || calleeName(n, s.profile, s.source) != name {
			return false
		}
		args := s.normalized(n)
		return strings.Contains(args, "//2") ||
			strings.Contains(args, "/2") ||
			strings.Contains(args, ">>1") ||
			strings.Contains(args, "mid") ||
			strings.Contains(args, ".left") ||
			strings.Contains(args, ".right")
	})
}

// selfCallArgsGrow reports a self-recursive call that visibly builds a
// growing collection in its arguments (accumulator-passing recursion).
func (s *nodeScope) selfCallArgsGrow(name string) bool {
	if name == "" {
		return false
	}
	return anyInScope(s.node, s.profile, func(n *tree_sitter.Node) bool {
		if !s.profile.CallKinds[n.Kind()] || calleeName(n, s.profile, s.source) != name {
			return false
		}
		hasListArg := false
		walkScope(n, s.profile, func(c *tree_sitter.Node, _ int) bool {
			if s.profile.ListLiteralKinds[c.Kind()] {
				hasListArg = true
			}
			return true
		})
		return hasListArg || strings.Contains(s.normalized(n), "+[")
	})
}

// --- Halving and pointer shapes ---

var halvingShapes = []string{"//2", "/2", ">>1", ">>=1", "*0.5"}

// hasMidpointSplit reports an assignment computing a midpoint or half of an
// interval ("mid = (left + right) // 2", "mid := len(arr) / 2").
func (s *nodeScope) hasMidpointSplit() bool {
	return anyInScope(s.node, s.profile, func(n *tree_sitter.Node) bool {
		if !s.profile.AssignmentKinds[n.Kind()] {
			return false
		}
		norm := s.normalized(n)
		for _, shape := range halvingShapes {
			if strings.Contains(norm, shape) {
				return true
			}
		}
		return false
	})
}

// hasHalvingUpdate reports a loop-carried variable shrinking by half each
// iteration ("x = x // 2", "x //= 2", "n >>= 1").
func (s *nodeScope) hasHalvingUpdate() bool {
	return anyInScope(s.node, s.profile, func(n *tree_sitter.Node) bool {
		if !s.profile.AssignmentKinds[n.Kind()] {
			return false
		}
		norm := s.normalized(n)
		if strings.Contains(norm, "//=2") || strings.Contains(norm, "/=2") || strings.Contains(norm, ">>=1") {
			return true
		}
		// "x=x//2" style: the target reappears on the right next to a halving.
		eq := strings.IndexByte(norm, '=')
		if eq <= 0 || eq+1 >= len(norm) {
			return false
		}
		target, rhs := norm[:eq], norm[eq+1:]
		if target == "" || !strings.Contains(rhs, target) {
			return false
		}
		for _, shape := range halvingShapes {
			if strings.Contains(rhs, shape) {
				return true
			}
		}
		return false
	})
}

// convergingPointerLoop reports a condition-driven loop comparing two
// bounds that converge via a midpoint update in the body, the binary-search
// shape. Iterator-style for loops have no comparison condition and never
// match; Go's condition-only for loop does.
func (s *nodeScope) convergingPointerLoop() bool {
	found := false
	walkScope(s.node, s.profile, func(n *tree_sitter.Node, _ int) bool {
		if found {
			return false
		}
		if !s.profile.isLoop(n.Kind()) {
			return true
		}
		cond := n.ChildByFieldName("condition")
		if cond == nil {
			cond = n.NamedChild(0)
		}
		condText := s.normalized(cond)
		if !strings.Contains(condText, "<=") && !strings.Contains(condText, "<") {
			return true
		}
		body := &nodeScope{node: n, profile: s.profile, source: s.source}
		if body.hasMidpointSplit() || body.hasHalvingUpdate() {
			found = true
			return false
		}
		return true
	})
	return found
}

// --- Call probes ---

// callMatches reports whether a call node's callee matches the given name
// set, by simple name or full dotted name.
func (s *nodeScope) callMatches(n *tree_sitter.Node, names map[string]bool) bool {
	if !s.profile.CallKinds[n.Kind()] {
		return false
	}
	return names[calleeName(n, s.profile, s.source)] || names[calleeFullName(n, s.profile, s.source)]
}

// callsAny reports a call to any of the given names, anywhere in scope.
func (s *nodeScope) callsAny(names map[string]bool) bool {
	return anyInScope(s.node, s.profile, func(n *tree_sitter.Node) bool {
		return s.callMatches(n, names)
	})
}

// callsAnyInLoop reports a call to any of the given names inside at least
// one loop.
func (s *nodeScope) callsAnyInLoop(names map[string]bool) bool {
	found := false
	s.walkLoopDepth(func(n *tree_sitter.Node, loopDepth int) bool {
		if found {
			return false
		}
		if loopDepth > 0 && s.callMatches(n, names) {
			found = true
			return false
		}
		return true
	})
	return found
}

// callsAnyOutsideLoop reports a call to any of the given names with no
// enclosing loop.
func (s *nodeScope) callsAnyOutsideLoop(names map[string]bool) bool {
	found := false
	s.walkLoopDepth(func(n *tree_sitter.Node, loopDepth int) bool {
		if found {
			return false
		}
		if loopDepth == 0 && s.callMatches(n, names) {
			found = true
			return false
		}
		return true
	})
	return found
}

// countCallsTo counts calls whose callee matches the name set.
func (s *nodeScope) countCallsTo(names map[string]bool) int {
	return countInScope(s.node, s.profile, func(n *tree_sitter.Node) bool {
		return s.callMatches(n, names)
	})
}

// hasCallTo reports a call to one specific function name.
func (s *nodeScope) hasCallTo(name string) bool {
	return s.callsAny(map[string]bool{name: true})
}

// --- Subscript and arithmetic shapes ---

// chainedSubscript reports a doubly-subscripted access like A[i][k].
func (s *nodeScope) chainedSubscript() bool {
	return anyInScope(s.node, s.profile, func(n *tree_sitter.Node) bool {
		if !s.profile.SubscriptKinds[n.Kind()] {
			return false
		}
		inner := n.NamedChild(0)
		return inner != nil && s.profile.SubscriptKinds[inner.Kind()]
	})
}

// multipliedSubscripts reports two subscripted reads combined by
// multiplication, the matrix-multiply inner statement shape.
func (s *nodeScope) multipliedSubscripts() bool {
	return anyInScope(s.node, s.profile, func(n *tree_sitter.Node) bool {
		if !s.profile.BinaryKinds[n.Kind()] || n.NamedChildCount() < 2 || !strings.Contains(s.text(n), "*") {
			return false
		}
		left := n.NamedChild(0)
		right := n.NamedChild(n.NamedChildCount() - 1)
		if left == nil || right == nil || left == right {
			return false
		}
		return s.subtreeHasSubscript(left) && s.subtreeHasSubscript(right)
	})
}

// hasBinaryOp reports any binary arithmetic or comparison in scope.
func (s *nodeScope) hasBinaryOp() bool {
	return anyInScope(s.node, s.profile, func(n *tree_sitter.Node) bool {
		return s.profile.BinaryKinds[n.Kind()]
	})
}

func (s *nodeScope) subtreeHasSubscript(root *tree_sitter.Node) bool {
	return anyInScope(root, s.profile, func(n *tree_sitter.Node) bool {
		return s.profile.SubscriptKinds[n.Kind()]
	})
}

// swapAssignment reports a tuple-style element swap
// ("a[i], a[j] = a[j], a[i]"), the simple-sort inner move.
func (s *nodeScope) swapAssignment() bool {
	return anyInScope(s.node, s.profile, func(n *tree_sitter.Node) bool {
		if !s.profile.AssignmentKinds[n.Kind()] {
			return false
		}
		norm := s.normalized(n)
		eq := strings.IndexByte(norm, '=')
		if eq <= 0 || eq+1 >= len(norm) {
			return false
		}
		lhs, rhs := norm[:eq], norm[eq+1:]
		if !strings.Contains(lhs, ",") || !strings.Contains(rhs, ",") {
			return false
		}
		lparts := strings.Split(lhs, ",")
		rparts := strings.Split(rhs, ",")
		if len(lparts) != 2 || len(rparts) != 2 {
			return false
		}
		return lparts[0] == rparts[1] && lparts[1] == rparts[0]
	})
}

// --- Loop bound probes ---

// loopIterable returns the expression a for loop iterates over, if the
// grammar exposes one.
func (s *nodeScope) loopIterable(loop *tree_sitter.Node) *tree_sitter.Node {
	for _, field := range []string{"right", "value", "iterable"} {
		if n := loop.ChildByFieldName(field); n != nil {
			return n
		}
	}
	return nil
}

// loopIsConstantBounded reports a loop over a recognizably fixed-size
// collection: a literal list, range(k) with k <= 20, or an identifier named
// like a fixed configuration collection.
func (s *nodeScope) loopIsConstantBounded(loop *tree_sitter.Node) bool {
	iter := s.loopIterable(loop)
	if iter == nil {
		return false
	}
	kind := iter.Kind()

	if s.profile.ListLiteralKinds[kind] || s.profile.StringKinds[kind] {
		return true
	}

	if s.profile.IdentifierKinds[kind] && fixedCollectionNames[strings.ToLower(s.text(iter))] {
		return true
	}

	if s.profile.CallKinds[kind] && calleeName(iter, s.profile, s.source) == "range" {
		norm := s.normalized(iter)
		open := strings.IndexByte(norm, '(')
		closing := strings.LastIndexByte(norm, ')')
		if open == -1 || closing <= open {
			return false
		}
		if k, err := strconv.Atoi(norm[open+1 : closing]); err == nil && k <= constantRangeLimit {
			return true
		}
	}
	return false
}

// innerLoopsAllConstant reports that every loop nested inside another loop is
// constant-bounded, and at least one such inner loop exists. This is the
// false-positive override: a linear scan over the input with a small fixed
// inner loop is linear, not quadratic.
func (s *nodeScope) innerLoopsAllConstant() bool {
	inner := 0
	constant := 0
	s.walkLoopDepth(func(n *tree_sitter.Node, loopDepth int) bool {
		if loopDepth > 0 && s.profile.isLoop(n.Kind()) {
			inner++
			if s.loopIsConstantBounded(n) {
				constant++
			}
		}
		return true
	})
	return inner > 0 && inner == constant
}

// loopOverInput reports at least one loop iterating over a non-constant
// expression (an identifier, a call such as range(len(xs)), or any
// non-literal iterable).
func (s *nodeScope) loopOverInput() bool {
	found := false
	walkScope(s.node, s.profile, func(n *tree_sitter.Node, _ int) bool {
		if found {
			return false
		}
		if s.profile.ForKinds[n.Kind()] && !s.loopIsConstantBounded(n) {
			found = true
			return false
		}
		return true
	})
	return found
}

// --- Misc shapes ---

// hasBaseCase reports a conditional early return, the recursion base case.
func (s *nodeScope) hasBaseCase() bool {
	return anyInScope(s.node, s.profile, func(n *tree_sitter.Node) bool {
		if !strings.Contains(n.Kind(), "if") {
			return false
		}
		return anyInScope(n, s.profile, func(c *tree_sitter.Node) bool {
			return strings.Contains(c.Kind(), "return")
		})
	})
}

// growthCallInSingleLoop reports a data-structure growth call under exactly
// one level of looping, meaning single-level accumulation.
func (s *nodeScope) growthCallInSingleLoop() bool {
	found := false
	s.walkLoopDepth(func(n *tree_sitter.Node, loopDepth int) bool {
		if found {
			return false
		}
		if loopDepth == 1 && s.callMatches(n, growthCalls) {
			found = true
			return false
		}
		return true
	})
	return found
}

// singleStackOp reports exactly one stack-style call and nothing else
// loop-like; the constant detector's safe-guard shape.
func (s *nodeScope) singleStackOp() bool {
	return s.countCallsTo(stackOps) == 1
}

// collectionAssignments returns the names of variables assigned a fresh
// growable collection, in source order.
func (s *nodeScope) collectionAssignments() []string {
	var names []string
	seen := make(map[string]bool)
	walkScope(s.node, s.profile, func(n *tree_sitter.Node, _ int) bool {
		if !s.profile.AssignmentKinds[n.Kind()] || n.NamedChildCount() < 2 {
			return true
		}
		target := n.NamedChild(0)
		if target == nil || !s.profile.IdentifierKinds[target.Kind()] {
			return true
		}
		value := n.NamedChild(n.NamedChildCount() - 1)
		if value == nil || value == target {
			return true
		}
		fresh := s.profile.ListLiteralKinds[value.Kind()] ||
			(s.profile.CallKinds[value.Kind()] && s.callMatches(value, collectionConstructors))
		if !fresh {
			return true
		}
		name := s.text(target)
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
		return true
	})
	return names
}
