package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotationRank_OrdersAllNineClasses(t *testing.T) {
	ordered := []Notation{
		NotationConstant,
		NotationLogarithmic,
		NotationLinear,
		NotationLinearithmic,
		NotationQuadratic,
		NotationCubic,
		NotationExponential,
		NotationKExponential,
		NotationFactorial,
	}
	for i := 1; i < len(ordered); i++ {
		assert.True(t, ordered[i].Worse(ordered[i-1]),
			"%s should be worse than %s", ordered[i], ordered[i-1])
	}
}

func TestMaxNotation(t *testing.T) {
	assert.Equal(t, NotationQuadratic, MaxNotation(NotationLinear, NotationQuadratic))
	assert.Equal(t, NotationQuadratic, MaxNotation(NotationQuadratic, NotationLinear))
	assert.Equal(t, NotationFactorial, MaxNotation(NotationFactorial, NotationFactorial))
}

func TestScore_VerdictThreshold(t *testing.T) {
	var s score
	s.add(40, "a", "first clue")
	assert.Nil(t, s.verdict(NotationLinear, 60), "below threshold must decline")

	s.add(30, "b", "second clue")
	v := s.verdict(NotationLinear, 60)
	require.NotNil(t, v)
	assert.Equal(t, NotationLinear, v.Notation)
	assert.Equal(t, 70, v.Confidence)
	assert.Equal(t, []string{"a", "b"}, v.MatchedPatterns)
}

func TestScore_ExclusionsSubtractAndMark(t *testing.T) {
	var s score
	s.add(80, "match", "looks quadratic")
	s.exclude(50, "override", "inner loop is constant")
	assert.Nil(t, s.verdict(NotationQuadratic, 60))

	// Exclusion patterns are recorded with a leading bang.
	s.add(40, "more", "extra evidence")
	v := s.verdict(NotationQuadratic, 60)
	require.NotNil(t, v)
	assert.Contains(t, v.MatchedPatterns, "!override")
}

func TestScore_ConfidenceClampedTo100(t *testing.T) {
	var s score
	s.add(75, "a", "r1")
	s.add(75, "b", "r2")
	v := s.verdict(NotationCubic, 65)
	require.NotNil(t, v)
	assert.Equal(t, 100, v.Confidence)
}

func TestDefaultVerdict(t *testing.T) {
	v := defaultVerdict()
	assert.Equal(t, NotationConstant, v.Notation)
	assert.Equal(t, defaultConfidence, v.Confidence)
	assert.NotEmpty(t, v.Reasons)
}

func TestTimeChain_FixedPriorityOrder(t *testing.T) {
	want := []Notation{
		NotationFactorial,
		NotationExponential,
		NotationCubic,
		NotationQuadratic,
		NotationLinearithmic,
		NotationLogarithmic,
		NotationLinear,
		NotationConstant,
	}
	require.Len(t, timeChain, len(want))
	for i, d := range timeChain {
		assert.Equal(t, want[i], d.Class(), "chain position %d", i)
	}
}

func TestDescribeVerdict(t *testing.T) {
	v := &Verdict{Notation: NotationLinear, Reasons: []string{"one loop", "scans input"}}
	assert.Equal(t, "one loop; scans input", describeVerdict(v))

	bare := &Verdict{Notation: NotationConstant}
	assert.Equal(t, "O(1)", describeVerdict(bare))
}

func TestSortedKeywords(t *testing.T) {
	got := sortedKeywords(map[string]bool{"b": true, "a": true, "c": true})
	assert.Equal(t, []string{"a", "b", "c"}, got)
}
