package analyze

// logarithmicDetector matches halving work: binary-search loops with
// converging pointers, loop-carried halving updates, single-branch recursive
// descent, isolated heap operations, and math logarithms over the input.
type logarithmicDetector struct{}

func (logarithmicDetector) Class() Notation { return NotationLogarithmic }

const logarithmicThreshold = 60

func (logarithmicDetector) Detect(cx *Context) *Verdict {
	rec := cx.Record
	if rec.RecursiveCallCount >= 2 {
		return nil // branching recursion belongs to earlier detectors
	}

	body := cx.body()
	var s score

	if body.convergingPointerLoop() {
		s.add(80, "converging-pointers",
			"while loop with two pointers converging via a midpoint")
	} else if rec.LoopCount() > 0 && body.hasHalvingUpdate() {
		s.add(70, "halving-loop",
			"loop variable halves on every iteration")
	}

	if rec.RecursiveCallCount == 1 && body.selfCallWithShrunkArg(rec.Name) {
		s.add(60, "halving-recursion",
			"single recursive call on a halved input")
	}

	if rec.LoopCount() > 0 && hasAny(rec.Keywords, treeVocab) &&
		rec.RecursiveCallCount == 0 && !rec.IsNested {
		s.add(25, "tree-descent",
			"iterative descent following one branch per step")
	}

	if body.callsAnyOutsideLoop(heapCalls) && !body.callsAnyInLoop(heapCalls) {
		s.add(55, "isolated-heap-op",
			"a single non-looped heap operation")
	}

	if body.callsAny(logCalls) {
		s.add(40, "log-call",
			"logarithm applied to an input-sized argument")
	}

	if hits := countHits(rec.Keywords, logarithmicVocab); hits > 0 {
		points := hits * 20
		if points > 40 {
			points = 40
		}
		s.add(points, "logarithmic-keywords", "binary-search vocabulary present")
	}

	// Halving inside an additional multiplying loop is no longer O(log n).
	if rec.IsNested {
		s.exclude(40, "outer-loop",
			"an enclosing loop multiplies the halving work")
	}

	return s.verdict(NotationLogarithmic, logarithmicThreshold)
}
