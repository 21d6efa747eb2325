package analyze

// linearDetector matches single-pass work: one non-nested loop over the
// input, linear (single-call) recursion, comprehensions, and linear built-in
// operations. It also owns the constant-inner-loop override outcome: a
// nested loop whose inner loops are all constant-bounded is linear.
type linearDetector struct{}

func (linearDetector) Class() Notation { return NotationLinear }

const linearThreshold = 60

func (linearDetector) Detect(cx *Context) *Verdict {
	rec := cx.Record
	if rec.RecursiveCallCount >= 2 {
		return nil
	}

	body := cx.body()
	if rec.IsNested && !body.innerLoopsAllConstant() {
		return nil
	}

	var s score

	switch {
	case rec.IsNested:
		s.add(70, "constant-inner-override",
			"outer loop over the input; inner loops are constant-bounded")
	case rec.LoopCount() == 1:
		s.add(70, "single-loop", "one non-nested loop")
		if body.loopOverInput() {
			s.add(10, "input-iteration", "the loop iterates over the input")
		}
	case rec.LoopCount() > 1:
		s.add(60, "sequential-loops",
			"multiple non-nested loops run back to back")
	}

	if rec.RecursiveCallCount == 1 {
		s.add(65, "linear-recursion",
			"a single recursive call per invocation")
		if body.selfCallWithShrunkArg(rec.Name) {
			s.exclude(30, "shrinking-argument",
				"the recursive argument shrinks multiplicatively")
		}
	}

	if rec.ComprehensionCount > 0 {
		s.add(60, "comprehension",
			"a comprehension visits every input element")
	}

	if body.callsAny(linearBuiltins) {
		s.add(50, "linear-builtin",
			"a built-in linear operation scans the input")
	}

	return s.verdict(NotationLinear, linearThreshold)
}
