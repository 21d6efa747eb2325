package analyze

import (
	"bytes"
	"context"
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// Compile-time check.
var _ Analyzer = (*TreeSitterAnalyzer)(nil)

// TreeSitterAnalyzer implements Analyzer using tree-sitter grammars. A new
// tree-sitter parser is created per Analyze call, so this type is safe for
// sequential use but individual Analyze calls are not thread-safe.
//
// Every Analyze call allocates fresh feature records, verdicts, and call
// graphs; nothing is shared across runs, and re-running on an identical tree
// yields identical output.
type TreeSitterAnalyzer struct {
	languages map[Language]*tree_sitter.Language

	// Sink receives diagnostic events; nil drops them.
	Sink EventSink
}

// NewTreeSitterAnalyzer creates a TreeSitterAnalyzer with Python, Go,
// TypeScript, and Rust grammars registered.
func NewTreeSitterAnalyzer() *TreeSitterAnalyzer {
	return &TreeSitterAnalyzer{
		languages: map[Language]*tree_sitter.Language{
			LangPython:     tree_sitter.NewLanguage(tree_sitter_python.Language()),
			LangGo:         tree_sitter.NewLanguage(tree_sitter_go.Language()),
			LangTypeScript: tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()),
			LangRust:       tree_sitter.NewLanguage(tree_sitter_rust.Language()),
		},
	}
}

// SupportedLanguages returns the languages this analyzer can handle.
func (a *TreeSitterAnalyzer) SupportedLanguages() []Language {
	langs := make([]Language, 0, len(a.languages))
	for l := range a.languages {
		langs = append(langs, l)
	}
	return langs
}

// Close is a no-op because parsers are created per Analyze call.
func (a *TreeSitterAnalyzer) Close() error {
	return nil
}

// Analyze classifies every function in one source file: extract features,
// run the detector chains, build the call hierarchy, propagate. A malformed
// or empty tree short-circuits to the low-confidence constant default for
// each discoverable function rather than failing the run.
func (a *TreeSitterAnalyzer) Analyze(_ context.Context, path string, source []byte, lang Language) (*FileAnalysis, error) {
	tsLang, ok := a.languages[lang]
	if !ok {
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}
	profile := ProfileFor(lang)
	if profile == nil {
		return nil, fmt.Errorf("no syntax profile for language: %s", lang)
	}

	result := &FileAnalysis{
		File: FileNode{Path: path, Language: lang, LOC: countLOC(source)},
	}

	if len(source) == 0 {
		return result, nil
	}

	parser := tree_sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(tsLang); err != nil {
		return nil, fmt.Errorf("set language %s: %w", lang, err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		emit(a.Sink, Event{Kind: EventParseError, Message: "nil tree for " + path})
		return result, nil
	}
	defer tree.Close()

	root := tree.RootNode()
	degradeAll := root.HasError()
	if degradeAll {
		emit(a.Sink, Event{Kind: EventParseError, Message: "parse errors in " + path})
	}

	arena := NewArena(source)
	records := discoverFunctions(arena, root, profile)

	fileKeywords := make(map[string]bool)
	for _, rec := range records {
		for k := range rec.Keywords {
			fileKeywords[k] = true
		}
	}

	siblings := make(map[string]Notation, len(records))
	var methods []*MethodAnalysis
	for _, rec := range records {
		m := a.analyzeFunction(arena, rec, profile, source, fileKeywords, siblings, degradeAll)
		if _, ok := siblings[rec.Name]; !ok {
			siblings[rec.Name] = m.Time.Notation
		}
		methods = append(methods, m)
	}

	hierarchy := BuildCallHierarchy(records, profile, source)
	NewPropagator(methods, hierarchy, a.Sink).Run()

	result.Methods = make([]MethodAnalysis, len(methods))
	for i, m := range methods {
		result.Methods[i] = *m
	}
	result.Calls = hierarchy
	return result, nil
}

// discoverFunctions extracts a FeatureRecord for every function definition
// that is not lexically nested inside another function. Class methods count;
// nested helpers become children of their enclosing function's record.
func discoverFunctions(arena *Arena, root *tree_sitter.Node, p *Profile) []*FeatureRecord {
	var records []*FeatureRecord
	walkTree(root, func(n *tree_sitter.Node, _ int) bool {
		if !p.FunctionKinds[n.Kind()] {
			return true
		}
		name := p.functionName(n, arena.source)
		rec := arena.Extract(n, name, p, -1)
		records = append(records, rec)
		return false // nested definitions are children of this record
	})
	return records
}

// analyzeFunction runs both chains for one function. Panics from unexpected
// node shapes are caught here so one broken function cannot take down the
// rest of the file.
func (a *TreeSitterAnalyzer) analyzeFunction(
	arena *Arena,
	rec *FeatureRecord,
	profile *Profile,
	source []byte,
	fileKeywords map[string]bool,
	siblings map[string]Notation,
	degraded bool,
) (m *MethodAnalysis) {
	defer func() {
		if r := recover(); r != nil {
			emit(a.Sink, Event{
				Kind:     EventDegraded,
				Function: rec.Name,
				Message:  fmt.Sprintf("analysis panicked: %v", r),
			})
			m = degradedAnalysis(rec, fmt.Sprintf("analysis failed on an unexpected node shape: %v", r))
		}
	}()

	if degraded || rec.Truncated {
		reason := "source contains parse errors"
		if rec.Truncated {
			reason = "function nesting exceeds the traversal depth cap"
		}
		emit(a.Sink, Event{Kind: EventDegraded, Function: rec.Name, Message: reason})
		return degradedAnalysis(rec, "")
	}

	nested := make(map[string]Notation, len(rec.Children))
	for _, childID := range rec.Children {
		child := arena.Get(childID)
		if child == nil {
			continue
		}
		childCx := &Context{
			Record:       child,
			Source:       source,
			Profile:      profile,
			FileKeywords: fileKeywords,
			Siblings:     siblings,
		}
		v := runChain(timeChain, childCx, a.Sink)
		child.TimeNotation = v.Notation
		child.Confidence = v.Confidence
		if child.Name != "" {
			nested[child.Name] = v.Notation
		}
	}

	cx := &Context{
		Record:       rec,
		Source:       source,
		Profile:      profile,
		FileKeywords: fileKeywords,
		Nested:       nested,
		Siblings:     siblings,
	}

	timeVerdict := runChain(timeChain, cx, a.Sink)
	spaceVerdict := runChain(spaceChain, cx, a.Sink)

	rec.TimeNotation = timeVerdict.Notation
	rec.SpaceNotation = spaceVerdict.Notation
	rec.Confidence = timeVerdict.Confidence

	return &MethodAnalysis{
		Name:      rec.Name,
		LineStart: rec.StartLine,
		LineEnd:   rec.EndLine,
		Time: TimeComplexity{
			Notation:    timeVerdict.Notation,
			Confidence:  timeVerdict.Confidence,
			Description: describeVerdict(timeVerdict),
		},
		Space: SpaceComplexity{
			Notation:       spaceVerdict.Notation,
			Confidence:     spaceVerdict.Confidence,
			Description:    describeVerdict(spaceVerdict),
			DataStructures: dataStructuresOf(cx),
		},
		Explanation: describeVerdict(timeVerdict),
	}
}

// degradedAnalysis is the safe per-function default used on parse errors,
// traversal failures, and depth exhaustion.
func degradedAnalysis(rec *FeatureRecord, diagnostic string) *MethodAnalysis {
	rec.TimeNotation = NotationConstant
	rec.SpaceNotation = NotationConstant
	rec.Confidence = degradedConfidence
	return &MethodAnalysis{
		Name:      rec.Name,
		LineStart: rec.StartLine,
		LineEnd:   rec.EndLine,
		Time: TimeComplexity{
			Notation:   NotationConstant,
			Confidence: degradedConfidence,
		},
		Space: SpaceComplexity{
			Notation:   NotationConstant,
			Confidence: degradedConfidence,
		},
		Explanation: diagnostic,
	}
}

// countLOC counts the number of lines in source by counting newline bytes
// and adding one for the final line if the source is non-empty.
func countLOC(source []byte) int {
	if len(source) == 0 {
		return 0
	}
	return bytes.Count(source, []byte{'\n'}) + 1
}
