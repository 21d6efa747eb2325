package analyze

// factorialDetector matches permutation-style search: a loop driving a
// self-recursive call (every arrangement explored), or board-placement
// backtracking over all arrangements.
type factorialDetector struct{}

func (factorialDetector) Class() Notation { return NotationFactorial }

const factorialThreshold = 70

func (factorialDetector) Detect(cx *Context) *Verdict {
	rec := cx.Record
	if rec.RecursiveCallCount == 0 && !hasAny(rec.Keywords, factorialVocab) {
		return nil
	}

	body := cx.body()
	var s score

	if body.loopContainsSelfCall(rec.Name) {
		s.add(75, "loop-recursion",
			"a loop drives a recursive call, exploring every arrangement")
	}

	if rec.RecursiveCallCount > 0 &&
		hasAny(rec.Keywords, backtrackVocab) && hasAny(rec.Keywords, factorialVocab) {
		s.add(40, "board-backtracking",
			"backtracking with placement/safety checks over all arrangements")
	}

	if hits := countHits(rec.Keywords, factorialVocab); hits > 0 {
		points := hits * 25
		if points > 50 {
			points = 50
		}
		s.add(points, "factorial-keywords",
			"permutation/factorial vocabulary present")
	}

	// A divide-and-conquer sort also loops near recursion; suppress it.
	if hasAny(rec.Keywords, sortingVocab) {
		s.exclude(50, "sorting-keywords",
			"sorting vocabulary suggests divide and conquer, not permutation search")
	}
	if body.hasMidpointSplit() {
		s.exclude(40, "midpoint-split",
			"midpoint split suggests halving, not full arrangement search")
	}

	return s.verdict(NotationFactorial, factorialThreshold)
}
