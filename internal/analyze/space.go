package analyze

// linearSpaceDetector matches input-proportional allocation: a growth call
// under a single level of looping, any comprehension, or accumulator-passing
// recursion that visibly builds a collection.
type linearSpaceDetector struct{}

func (linearSpaceDetector) Class() Notation { return NotationLinear }

const linearSpaceThreshold = 55

func (linearSpaceDetector) Detect(cx *Context) *Verdict {
	rec := cx.Record
	body := cx.body()
	var s score

	if body.growthCallInSingleLoop() {
		s.add(70, "loop-accumulation",
			"a collection grows once per loop iteration")
	}

	if rec.ComprehensionCount > 0 {
		s.add(75, "comprehension",
			"a comprehension materializes one element per input item")
	}

	if rec.RecursiveCallCount > 0 && body.selfCallArgsGrow(rec.Name) {
		s.add(50, "recursive-accumulation",
			"recursion passes a growing collection")
	}

	return s.verdict(NotationLinear, linearSpaceThreshold)
}

// constantSpaceDetector is the fallback: it always accepts when reached.
// Confidence is higher when no data structure is touched at all.
type constantSpaceDetector struct{}

func (constantSpaceDetector) Class() Notation { return NotationConstant }

func (constantSpaceDetector) Detect(cx *Context) *Verdict {
	body := cx.body()

	confidence := 70
	reason := "no data structure creation or growth"
	if body.callsAny(growthCalls) || len(body.collectionAssignments()) > 0 {
		confidence = 50
		reason = "data structures present but not grown inside a loop"
	}

	return &Verdict{
		Notation:   NotationConstant,
		Confidence: confidence,
		MatchedPatterns: []string{
			"constant-space",
		},
		Reasons: []string{reason},
	}
}

// dataStructuresOf returns the names of growable collections created in the
// function, for the space half of the MethodAnalysis.
func dataStructuresOf(cx *Context) []string {
	return cx.body().collectionAssignments()
}
