package analyze

import "fmt"

// visitState tracks a function's position in the propagation walk.
type visitState int

const (
	unvisited visitState = iota
	inProgress
	done
)

// Propagator raises each function's reported complexity to the worst
// complexity reachable through the call hierarchy. The walk is a memoized
// DFS; a function re-entered while in progress (mutual recursion) returns
// its currently recorded notation, which breaks the cycle without attempting
// a joint fixpoint. Termination is O(V+E) on any graph and the result is
// traversal-order independent because notations are totally ordered.
type Propagator struct {
	methods   map[string]*MethodAnalysis
	hierarchy CallHierarchy
	states    map[string]visitState
	sink      EventSink
}

// NewPropagator builds a propagator over the given per-function results.
// When two functions share a name the first occurrence wins; duplicates do
// not participate.
func NewPropagator(methods []*MethodAnalysis, hierarchy CallHierarchy, sink EventSink) *Propagator {
	byName := make(map[string]*MethodAnalysis, len(methods))
	for _, m := range methods {
		if _, ok := byName[m.Name]; !ok {
			byName[m.Name] = m
		}
	}
	return &Propagator{
		methods:   byName,
		hierarchy: hierarchy,
		states:    make(map[string]visitState, len(byName)),
		sink:      sink,
	}
}

// Run propagates every function. Methods are updated in place: a raised
// verdict keeps confidence at min(own, 85) and extends the explanation with
// the contributing callee.
func (p *Propagator) Run() {
	for name := range p.methods {
		p.resolve(name)
	}
}

// resolve returns the propagated notation for name.
func (p *Propagator) resolve(name string) Notation {
	m, ok := p.methods[name]
	if !ok {
		return NotationConstant
	}

	switch p.states[name] {
	case done:
		return m.Time.Notation
	case inProgress:
		// Cycle through the call graph: return what we have so far.
		return m.Time.Notation
	}

	p.states[name] = inProgress

	final := m.Time.Notation
	worstCallee := ""
	for _, callee := range p.hierarchy[name] {
		calleeNotation := p.resolve(callee)
		if calleeNotation.Worse(final) {
			final = calleeNotation
			worstCallee = callee
		}
	}

	if worstCallee != "" {
		p.raise(m, final, worstCallee)
	}

	p.states[name] = done
	return final
}

// raise updates a method whose callee dominates its own complexity.
func (p *Propagator) raise(m *MethodAnalysis, notation Notation, callee string) {
	m.Time.Notation = notation
	if m.Time.Confidence > propagationCap {
		m.Time.Confidence = propagationCap
	}
	note := fmt.Sprintf("calls %s, which is %s", callee, notation)
	m.Time.Description = joinClause(m.Time.Description, note)
	m.Explanation = joinClause(m.Explanation, note)

	emit(p.sink, Event{
		Kind:     EventPropagated,
		Function: m.Name,
		Message:  fmt.Sprintf("raised to %s via %s", notation, callee),
	})
}

func joinClause(base, clause string) string {
	if base == "" {
		return clause
	}
	return base + "; " + clause
}
