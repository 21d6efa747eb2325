package analyze

// --- Enums ---

// Notation is one of the nine closed asymptotic complexity classes.
type Notation string

const (
	NotationConstant     Notation = "O(1)"
	NotationLogarithmic  Notation = "O(log n)"
	NotationLinear       Notation = "O(n)"
	NotationLinearithmic Notation = "O(n log n)"
	NotationQuadratic    Notation = "O(n²)"
	NotationCubic        Notation = "O(n³)"
	NotationExponential  Notation = "O(2^n)"
	NotationKExponential Notation = "O(k^n)"
	NotationFactorial    Notation = "O(n!)"
)

// notationRank orders the closed enumeration from best to worst.
// Higher rank means worse asymptotic behavior.
var notationRank = map[Notation]int{
	NotationConstant:     0,
	NotationLogarithmic:  1,
	NotationLinear:       2,
	NotationLinearithmic: 3,
	NotationQuadratic:    4,
	NotationCubic:        5,
	NotationExponential:  6,
	NotationKExponential: 7,
	NotationFactorial:    8,
}

// Rank returns the severity rank of the notation. Unknown notations rank 0.
func (n Notation) Rank() int {
	return notationRank[n]
}

// Worse reports whether n is strictly worse than other.
func (n Notation) Worse(other Notation) bool {
	return n.Rank() > other.Rank()
}

// MaxNotation returns the worse of two notations.
func MaxNotation(a, b Notation) Notation {
	if b.Worse(a) {
		return b
	}
	return a
}

// Language identifies a source language for analysis.
type Language string

const (
	LangPython     Language = "python"
	LangGo         Language = "go"
	LangTypeScript Language = "typescript"
	LangRust       Language = "rust"
)

// --- Models ---

// FileNode describes one analyzed source file.
type FileNode struct {
	Path     string   `json:"path"`
	Language Language `json:"language"`
	LOC      int      `json:"loc"`
}

// Verdict is the immutable outcome of a single detector run.
type Verdict struct {
	Notation        Notation `json:"notation"`
	Confidence      int      `json:"confidence"` // 0-100
	MatchedPatterns []string `json:"matchedPatterns,omitempty"`
	Reasons         []string `json:"reasons,omitempty"`
}

// TimeComplexity is the time half of a MethodAnalysis.
type TimeComplexity struct {
	Notation    Notation `json:"notation"`
	Confidence  int      `json:"confidence"`
	Description string   `json:"description"`
}

// SpaceComplexity is the space half of a MethodAnalysis.
type SpaceComplexity struct {
	Notation       Notation `json:"notation"`
	Confidence     int      `json:"confidence"`
	Description    string   `json:"description"`
	DataStructures []string `json:"dataStructures,omitempty"`
}

// MethodAnalysis is the final per-function result handed to consumers.
type MethodAnalysis struct {
	Name        string          `json:"name"`
	LineStart   int             `json:"lineStart"`
	LineEnd     int             `json:"lineEnd"`
	Time        TimeComplexity  `json:"timeComplexity"`
	Space       SpaceComplexity `json:"spaceComplexity"`
	Explanation string          `json:"explanation"`
}

// CallHierarchy maps each analyzed function to the functions it calls within
// the same file. Self-calls are excluded; cycles (mutual recursion) may occur.
type CallHierarchy map[string][]string

// FileAnalysis is the complete result for one source file: per-function
// analyses in source order plus the intra-file call hierarchy.
type FileAnalysis struct {
	File    FileNode         `json:"file"`
	Methods []MethodAnalysis `json:"methods"`
	Calls   CallHierarchy    `json:"calls,omitempty"`
}

// Stats summarizes a batch of file analyses.
type Stats struct {
	FileCount   int `json:"fileCount"`
	MethodCount int `json:"methodCount"`
	CallCount   int `json:"callCount"`
}

// defaultConfidence is the confidence of the chain's fallback verdict when no
// detector accepts.
const defaultConfidence = 30

// degradedConfidence is the confidence reported when analysis of a function
// or file fails and the safe constant default is substituted.
const degradedConfidence = 50

// propagationCap bounds the confidence of a verdict that was raised by call
// graph propagation rather than by the function's own body.
const propagationCap = 85
