package analyze

// constantDetector matches straight-line work: no loops, no recursion, no
// comprehensions, a handful of statements, direct indexing and arithmetic. A
// single non-looped stack operation is still constant; any other linear
// built-in disqualifies.
type constantDetector struct{}

func (constantDetector) Class() Notation { return NotationConstant }

const constantThreshold = 50

// constantStatementLimit is the statement count still considered trivially
// small.
const constantStatementLimit = 5

func (constantDetector) Detect(cx *Context) *Verdict {
	rec := cx.Record
	if rec.LoopCount() > 0 || rec.RecursiveCallCount > 0 || rec.ComprehensionCount > 0 {
		return nil
	}

	body := cx.body()
	var s score

	s.add(40, "straight-line",
		"no loops, no recursion, no comprehensions")

	if rec.StatementCount <= constantStatementLimit {
		s.add(20, "few-statements", "a small fixed number of statements")
	}

	if body.subtreeHasSubscript(body.node) {
		s.add(15, "direct-access", "direct indexing or hash lookup")
	}

	if body.hasBinaryOp() {
		s.add(10, "simple-arithmetic", "simple arithmetic only")
	}

	if body.callsAny(sortCalls) {
		s.exclude(50, "sort-call", "calls a built-in sort")
	} else if body.callsAny(linearBuiltins) {
		s.exclude(40, "linear-builtin", "calls a linear built-in operation")
	} else if body.countCallsTo(stackOps) > 1 {
		s.exclude(25, "repeated-stack-ops", "multiple data structure operations")
	}
	// One non-looped stack op is fine and carries no penalty.

	return s.verdict(NotationConstant, constantThreshold)
}
