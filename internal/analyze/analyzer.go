package analyze

import "context"

// Analyzer estimates per-function complexity for source files.
// Implementations: TreeSitterAnalyzer (production).
type Analyzer interface {
	// Analyze classifies every function in a single source file.
	// source is the file content. lang determines which grammar to use.
	Analyze(ctx context.Context, path string, source []byte, lang Language) (*FileAnalysis, error)

	// SupportedLanguages returns the languages this analyzer can handle.
	SupportedLanguages() []Language

	// Close releases analyzer resources (tree-sitter C memory).
	Close() error
}
