package analyze

// exponentialDetector matches branching recursion without memoization: the
// fibonacci shape (two self-calls combined by addition), subset/powerset
// generation, and mark/unmark backtracking. Three or more sibling self-calls
// widen the verdict to O(k^n).
type exponentialDetector struct{}

func (exponentialDetector) Class() Notation { return NotationExponential }

const exponentialThreshold = 65

func (exponentialDetector) Detect(cx *Context) *Verdict {
	rec := cx.Record
	if rec.RecursiveCallCount == 0 {
		return nil
	}

	body := cx.body()
	var s score

	if body.selfCallsCombinedByAddition(rec.Name) {
		s.add(80, "additive-double-recursion",
			"two recursive calls combined by addition (fibonacci shape)")
	} else if rec.RecursiveCallCount >= 2 {
		s.add(45, "multiple-recursion",
			"multiple recursive calls per invocation branch the call tree")
	}

	if hasAny(rec.Keywords, exponentialVocab) {
		if rec.Keywords["subset"] || rec.Keywords["powerset"] || rec.Keywords["power_set"] {
			s.add(35, "subset-generation",
				"recursive with/without-element subset generation")
		}
		hits := countHits(rec.Keywords, exponentialVocab)
		points := hits * 20
		if points > 40 {
			points = 40
		}
		s.add(points, "exponential-keywords",
			"exponential-search vocabulary present")
	}

	if hasAny(rec.Keywords, backtrackVocab) {
		s.add(30, "mark-unmark-backtracking",
			"backtracking with mark/unmark and no visible memoization")
	}

	if hasAny(rec.Keywords, memoVocab) {
		s.exclude(45, "memoization",
			"memoization collapses the branching recursion")
	}
	if body.hasMidpointSplit() && hasAny(rec.Keywords, sortingVocab) {
		s.exclude(50, "divide-and-conquer-sort",
			"midpoint split with sorting vocabulary is a divide-and-conquer sort")
	}

	notation := NotationExponential
	if rec.RecursiveCallCount >= 3 {
		notation = NotationKExponential
	}
	return s.verdict(notation, exponentialThreshold)
}
