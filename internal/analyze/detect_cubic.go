package analyze

// cubicDetector matches triple-nested loops, especially the matrix-multiply
// shape: doubly-subscripted reads combined multiplicatively under three
// levels of iteration.
type cubicDetector struct{}

func (cubicDetector) Class() Notation { return NotationCubic }

const cubicThreshold = 65

func (cubicDetector) Detect(cx *Context) *Verdict {
	rec := cx.Record
	if rec.MaxLoopDepth < 3 {
		return nil
	}

	body := cx.body()
	var s score

	s.add(70, "triple-nested-loops",
		"three nested loops over the input")

	if body.chainedSubscript() {
		s.add(20, "chained-subscripts",
			"doubly-subscripted matrix access")
	}
	if body.multipliedSubscripts() {
		s.add(15, "multiplied-subscripts",
			"subscripted reads combined multiplicatively (matrix multiply shape)")
	}

	if hits := countHits(rec.Keywords, cubicVocab); hits > 0 {
		points := hits * 20
		if points > 40 {
			points = 40
		}
		s.add(points, "cubic-keywords", "triple-loop vocabulary present")
	}

	if body.innerLoopsAllConstant() {
		s.exclude(40, "constant-inner-loops",
			"inner loops iterate over fixed-size collections")
	}

	return s.verdict(NotationCubic, cubicThreshold)
}
