package analyze

import (
	"fmt"
	"sort"
	"strings"
)

// Context carries everything a detector may consult for one function. It is
// built once per function by the analyzer and shared read-only across the
// whole chain.
type Context struct {
	Record  *FeatureRecord
	Source  []byte
	Profile *Profile

	// FileKeywords is the union of vocabulary hits across the whole file.
	FileKeywords map[string]bool

	// Nested maps already-classified nested helper functions to their time
	// notations, and Siblings the same for sibling functions classified
	// earlier in source order.
	Nested   map[string]Notation
	Siblings map[string]Notation
}

// body returns the function body node for structural probes.
func (cx *Context) body() *nodeScope {
	return &nodeScope{
		node:    cx.Profile.bodyNode(cx.Record.Node),
		profile: cx.Profile,
		source:  cx.Source,
	}
}

// Detector is a self-contained heuristic classifier for exactly one
// complexity class. Detect returns nil to decline. Detectors are stateless:
// one instance is safely reused across functions and runs.
type Detector interface {
	Class() Notation
	Detect(cx *Context) *Verdict
}

// score accumulates sub-pattern evidence for one detector run. Each matched
// sub-pattern adds a fixed point value; exclusion patterns subtract.
type score struct {
	points   int
	patterns []string
	reasons  []string
}

func (s *score) add(points int, pattern, reason string) {
	s.points += points
	s.patterns = append(s.patterns, pattern)
	s.reasons = append(s.reasons, reason)
}

func (s *score) exclude(points int, pattern, reason string) {
	s.points -= points
	s.patterns = append(s.patterns, "!"+pattern)
	s.reasons = append(s.reasons, reason)
}

// verdict finalizes the score into a Verdict when it meets the threshold,
// clamping confidence to [0,100]. Returns nil below threshold.
func (s *score) verdict(notation Notation, threshold int) *Verdict {
	if s.points < threshold {
		return nil
	}
	confidence := s.points
	if confidence > 100 {
		confidence = 100
	}
	if confidence < 0 {
		confidence = 0
	}
	return &Verdict{
		Notation:        notation,
		Confidence:      confidence,
		MatchedPatterns: s.patterns,
		Reasons:         s.reasons,
	}
}

// timeChain is the fixed detector order, worst class first. First accepting
// detector wins; the ordering is load-bearing (a divide-and-conquer sort must
// be tested against the linearithmic rules before the broader exponential
// ones can misfire, and each detector carries its own exclusions besides).
var timeChain = []Detector{
	factorialDetector{},
	exponentialDetector{},
	cubicDetector{},
	quadraticDetector{},
	linearithmicDetector{},
	logarithmicDetector{},
	linearDetector{},
	constantDetector{},
}

// spaceChain analogously orders the two space detectors; the constant
// detector always accepts when reached.
var spaceChain = []Detector{
	linearSpaceDetector{},
	constantSpaceDetector{},
}

// runChain evaluates detectors in priority order and returns the first
// accepted verdict, or the low-confidence constant default when none match.
func runChain(chain []Detector, cx *Context, sink EventSink) *Verdict {
	for _, d := range chain {
		v := d.Detect(cx)
		if v == nil {
			continue
		}
		emit(sink, Event{
			Kind:     EventDetectorMatch,
			Function: cx.Record.Name,
			Message:  fmt.Sprintf("%s accepted at confidence %d", d.Class(), v.Confidence),
		})
		return v
	}
	return defaultVerdict()
}

// defaultVerdict is returned when no detector accepts.
func defaultVerdict() *Verdict {
	return &Verdict{
		Notation:   NotationConstant,
		Confidence: defaultConfidence,
		Reasons:    []string{"no structural pattern matched; assuming constant time"},
	}
}

// describeVerdict renders a verdict's reasons into one explanation line.
func describeVerdict(v *Verdict) string {
	if len(v.Reasons) == 0 {
		return string(v.Notation)
	}
	return strings.Join(v.Reasons, "; ")
}

// containsFold reports a case-insensitive substring match.
func containsFold(s, fragment string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(fragment))
}

// sortedKeywords returns the keyword set as a sorted slice, for deterministic
// explanations and tests.
func sortedKeywords(keywords map[string]bool) []string {
	out := make([]string, 0, len(keywords))
	for k := range keywords {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
