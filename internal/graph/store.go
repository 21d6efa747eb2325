package graph

import (
	"context"
	"io"

	"github.com/perfhint/bigo/internal/analyze"
)

// MethodRecord is one persisted per-function analysis, qualified by the file
// it came from.
type MethodRecord struct {
	FilePath string                 `json:"filePath"`
	Method   analyze.MethodAnalysis `json:"method"`
}

// CallEdge is one persisted caller→callee relation within a file.
type CallEdge struct {
	FilePath string `json:"filePath"`
	Caller   string `json:"caller"`
	Callee   string `json:"callee"`
}

// Store is the interface for the analysis result index.
// Implementations: KuzuStore (persistent, CGO), MemStore (in-memory).
type Store interface {
	io.Closer

	// Schema setup, called once before any data is inserted.
	InitSchema(ctx context.Context) error

	// Write operations.
	AddFile(ctx context.Context, node analyze.FileNode) error
	AddMethod(ctx context.Context, rec MethodRecord) error
	AddCall(ctx context.Context, edge CallEdge) error

	// Read operations.
	GetMethod(ctx context.Context, filePath, name string) (*MethodRecord, error)
	QueryMethods(ctx context.Context, query string, minNotation analyze.Notation, limit int) ([]MethodRecord, error)

	// Hotspots returns methods ordered worst notation first, breaking ties
	// toward lower confidence (the shakier the verdict, the more it merits
	// a look).
	Hotspots(ctx context.Context, limit int) ([]MethodRecord, error)

	// Callees returns the direct callees recorded for a method.
	Callees(ctx context.Context, filePath, caller string) ([]string, error)

	// Stats.
	Stats(ctx context.Context) (*analyze.Stats, error)
}

// AddFileAnalysis stores a whole FileAnalysis: the file node, every method,
// and every call edge.
func AddFileAnalysis(ctx context.Context, s Store, fa *analyze.FileAnalysis) error {
	if err := s.AddFile(ctx, fa.File); err != nil {
		return err
	}
	for _, m := range fa.Methods {
		if err := s.AddMethod(ctx, MethodRecord{FilePath: fa.File.Path, Method: m}); err != nil {
			return err
		}
	}
	for caller, callees := range fa.Calls {
		for _, callee := range callees {
			edge := CallEdge{FilePath: fa.File.Path, Caller: caller, Callee: callee}
			if err := s.AddCall(ctx, edge); err != nil {
				return err
			}
		}
	}
	return nil
}
