package mcptools

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/perfhint/bigo/internal/analyze"
	"github.com/perfhint/bigo/internal/graph"
	"github.com/perfhint/bigo/internal/scan"
)

// ComplexityService holds the result store used by MCP tool handlers.
type ComplexityService struct {
	store graph.Store
}

// NewComplexityService creates a ComplexityService backed by the given store.
func NewComplexityService(store graph.Store) *ComplexityService {
	return &ComplexityService{store: store}
}

// --- MCP Tool Input/Output Types ---
// The MCP Go SDK auto-generates JSON schemas from struct tags.

// AnalyzeRepoInput is the input for the analyze_repo MCP tool.
type AnalyzeRepoInput struct {
	RepoPath    string   `json:"repoPath" jsonschema:"the absolute path to the repository to analyze"`
	Languages   []string `json:"languages,omitempty" jsonschema:"languages to analyze (default: all). Values: python, go, typescript, rust"`
	ExcludeDirs []string `json:"excludeDirs,omitempty" jsonschema:"directories to exclude (e.g. vendor, node_modules)"`
}

// AnalyzeRepoOutput is the result of the analyze_repo MCP tool.
type AnalyzeRepoOutput struct {
	Stats analyze.Stats `json:"stats"`
}

// AnalyzeSourceInput is the input for the analyze_source MCP tool.
type AnalyzeSourceInput struct {
	Source   string `json:"source" jsonschema:"the source code to analyze"`
	Language string `json:"language" jsonschema:"source language: python, go, typescript, rust"`
}

// AnalyzeSourceOutput is the result of the analyze_source MCP tool.
type AnalyzeSourceOutput struct {
	Methods []analyze.MethodAnalysis `json:"methods"`
	Calls   analyze.CallHierarchy    `json:"calls,omitempty"`
}

// QueryMethodsInput is the input for the query_methods MCP tool.
type QueryMethodsInput struct {
	Query       string `json:"query,omitempty" jsonschema:"substring match on method names"`
	MinNotation string `json:"minNotation,omitempty" jsonschema:"only return methods at least this severe, e.g. O(n²)"`
	Limit       int    `json:"limit,omitempty" jsonschema:"maximum number of results (default: 20)"`
}

// QueryMethodsOutput is the result of the query_methods MCP tool.
type QueryMethodsOutput struct {
	Methods []graph.MethodRecord `json:"methods"`
	Total   int                  `json:"total"`
}

// HotspotsInput is the input for the hotspots MCP tool.
type HotspotsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of results (default: 10)"`
}

// HotspotsOutput is the result of the hotspots MCP tool.
type HotspotsOutput struct {
	Methods []graph.MethodRecord `json:"methods"`
}

// GetCalleesInput is the input for the get_callees MCP tool.
type GetCalleesInput struct {
	FilePath string `json:"filePath" jsonschema:"the file the caller is defined in"`
	Caller   string `json:"caller" jsonschema:"the calling function's name"`
}

// GetCalleesOutput is the result of the get_callees MCP tool.
type GetCalleesOutput struct {
	Callees []string `json:"callees"`
}

// --- Handlers ---

// AnalyzeRepo scans a repository, classifies every function, and stores the
// results. Returns index statistics.
func (s *ComplexityService) AnalyzeRepo(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnalyzeRepoInput,
) (*mcp.CallToolResult, AnalyzeRepoOutput, error) {
	if input.RepoPath == "" {
		return nil, AnalyzeRepoOutput{}, fmt.Errorf("repoPath is required")
	}
	info, err := os.Stat(input.RepoPath)
	if err != nil {
		return nil, AnalyzeRepoOutput{}, fmt.Errorf("cannot access repoPath: %w", err)
	}
	if !info.IsDir() {
		return nil, AnalyzeRepoOutput{}, fmt.Errorf("repoPath is not a directory: %s", input.RepoPath)
	}

	var langs []analyze.Language
	for _, l := range input.Languages {
		langs = append(langs, analyze.Language(strings.ToLower(l)))
	}

	results, err := scan.Scan(ctx, input.RepoPath, scan.Options{
		Languages:   langs,
		ExcludeDirs: input.ExcludeDirs,
	})
	if err != nil {
		return nil, AnalyzeRepoOutput{}, fmt.Errorf("scan: %w", err)
	}

	if err := s.store.InitSchema(ctx); err != nil {
		return nil, AnalyzeRepoOutput{}, fmt.Errorf("init schema: %w", err)
	}
	for _, fa := range results {
		if err := graph.AddFileAnalysis(ctx, s.store, fa); err != nil {
			return nil, AnalyzeRepoOutput{}, fmt.Errorf("store %s: %w", fa.File.Path, err)
		}
	}

	stats, err := s.store.Stats(ctx)
	if err != nil {
		return nil, AnalyzeRepoOutput{}, err
	}
	return nil, AnalyzeRepoOutput{Stats: *stats}, nil
}

// AnalyzeSource classifies every function in an inline source snippet
// without touching the store.
func (s *ComplexityService) AnalyzeSource(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnalyzeSourceInput,
) (*mcp.CallToolResult, AnalyzeSourceOutput, error) {
	if input.Source == "" {
		return nil, AnalyzeSourceOutput{}, fmt.Errorf("source is required")
	}
	lang := analyze.Language(strings.ToLower(input.Language))

	analyzer := analyze.NewTreeSitterAnalyzer()
	defer analyzer.Close()

	fa, err := analyzer.Analyze(ctx, "snippet", []byte(input.Source), lang)
	if err != nil {
		return nil, AnalyzeSourceOutput{}, err
	}
	return nil, AnalyzeSourceOutput{Methods: fa.Methods, Calls: fa.Calls}, nil
}

// QueryMethods searches stored methods by name and minimum severity.
func (s *ComplexityService) QueryMethods(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryMethodsInput,
) (*mcp.CallToolResult, QueryMethodsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}
	minNotation := analyze.Notation(input.MinNotation)

	methods, err := s.store.QueryMethods(ctx, input.Query, minNotation, limit)
	if err != nil {
		return nil, QueryMethodsOutput{}, err
	}
	return nil, QueryMethodsOutput{Methods: methods, Total: len(methods)}, nil
}

// Hotspots returns the worst-complexity methods in the index.
func (s *ComplexityService) Hotspots(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input HotspotsInput,
) (*mcp.CallToolResult, HotspotsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}
	methods, err := s.store.Hotspots(ctx, limit)
	if err != nil {
		return nil, HotspotsOutput{}, err
	}
	return nil, HotspotsOutput{Methods: methods}, nil
}

// GetCallees returns the intra-file callees recorded for a function.
func (s *ComplexityService) GetCallees(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetCalleesInput,
) (*mcp.CallToolResult, GetCalleesOutput, error) {
	if input.FilePath == "" || input.Caller == "" {
		return nil, GetCalleesOutput{}, fmt.Errorf("filePath and caller are required")
	}
	callees, err := s.store.Callees(ctx, input.FilePath, input.Caller)
	if err != nil {
		return nil, GetCalleesOutput{}, err
	}
	return nil, GetCalleesOutput{Callees: callees}, nil
}
