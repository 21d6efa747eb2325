package analyze

// quadraticDetector matches two genuinely nested loops: all-pairs scans,
// double-subscript matrix access, and swap-based simple sorts. A nested loop
// whose inner loops are all constant-bounded does not count as true nesting;
// the detector declines and leaves the function to the linear detector.
type quadraticDetector struct{}

func (quadraticDetector) Class() Notation { return NotationQuadratic }

const quadraticThreshold = 60

func (quadraticDetector) Detect(cx *Context) *Verdict {
	rec := cx.Record
	if !rec.IsNested {
		return nil
	}

	body := cx.body()

	// Constant-inner-loop override: the outer loop alone determines the
	// complexity, so this is not a quadratic shape at all.
	if body.innerLoopsAllConstant() {
		return nil
	}

	var s score
	s.add(65, "nested-loops",
		"two nested loops where the inner loop tracks the input size")

	if body.chainedSubscript() {
		s.add(15, "double-subscript",
			"double-subscripted matrix access")
	}

	if body.swapAssignment() {
		s.add(20, "swap-sort",
			"element swap inside nested loops (simple sort shape)")
	} else if hasAny(rec.Keywords, quadraticVocab) {
		s.add(20, "quadratic-sort-keywords",
			"swap-based sort vocabulary present")
	}

	if hits := countHits(rec.Keywords, quadraticVocab); hits > 0 {
		points := hits * 15
		if points > 30 {
			points = 30
		}
		s.add(points, "pairwise-keywords", "all-pairs vocabulary present")
	}

	return s.verdict(NotationQuadratic, quadraticThreshold)
}
