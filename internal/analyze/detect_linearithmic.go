package analyze

// linearithmicDetector matches sorting work: a call to a library sort, the
// recursive divide-and-merge shape, heap operations driven by a loop, and
// two-way recursion over a partitioned input.
type linearithmicDetector struct{}

func (linearithmicDetector) Class() Notation { return NotationLinearithmic }

const linearithmicThreshold = 60

func (linearithmicDetector) Detect(cx *Context) *Verdict {
	rec := cx.Record
	body := cx.body()
	var s score

	if body.callsAny(sortCalls) {
		s.add(75, "library-sort",
			"calls a built-in sort")
	}

	if rec.RecursiveCallCount >= 2 && body.hasMidpointSplit() {
		s.add(70, "divide-and-merge",
			"midpoint split with recursion on both halves")
		if body.hasBaseCase() {
			s.add(10, "base-case", "recursion terminates on a base case")
		}
		if calleeLinear(cx, "merge") {
			s.add(10, "linear-merge-helper",
				"combines halves through a linear merge helper")
		}
	} else if rec.RecursiveCallCount >= 2 && hasAny(rec.Keywords, sortingVocab) {
		s.add(35, "partition-recursion",
			"two-way recursion over a partitioned input")
	}

	if body.callsAnyInLoop(heapCalls) {
		s.add(65, "heap-in-loop",
			"heap push/pop performed once per loop iteration")
	}

	if hits := countHits(rec.Keywords, linearithmicVocab); hits > 0 {
		points := hits * 20
		if points > 40 {
			points = 40
		}
		s.add(points, "linearithmic-keywords",
			"divide-and-conquer sort vocabulary present")
	}

	return s.verdict(NotationLinearithmic, linearithmicThreshold)
}

// calleeLinear reports that a nested or sibling helper whose name contains
// the fragment was already classified linear or better.
func calleeLinear(cx *Context, fragment string) bool {
	for name, notation := range cx.Nested {
		if containsFold(name, fragment) && notation.Rank() <= NotationLinear.Rank() {
			return true
		}
	}
	for name, notation := range cx.Siblings {
		if containsFold(name, fragment) && notation.Rank() <= NotationLinear.Rank() {
			return true
		}
	}
	return false
}
