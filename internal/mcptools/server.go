package mcptools

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewComplexityMCPServer creates an MCP server with all 5 complexity tools
// registered.
func NewComplexityMCPServer(svc *ComplexityService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "bigo-complexity",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_repo",
		Description: "Analyze a repository: walk the file tree, parse source files with tree-sitter, estimate every function's time and space complexity, and index the results.",
	}, svc.AnalyzeRepo)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_source",
		Description: "Estimate time and space complexity for every function in an inline source snippet. Returns per-function notations, confidence scores, and explanations.",
	}, svc.AnalyzeSource)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "query_methods",
		Description: "Search analyzed methods by name substring and minimum complexity severity.",
	}, svc.QueryMethods)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "hotspots",
		Description: "Return the worst-complexity methods in the index, ordered most severe first.",
	}, svc.Hotspots)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_callees",
		Description: "Return the same-file functions a given function calls.",
	}, svc.GetCallees)

	return server
}

// RunMCPServer starts an HTTP server exposing the complexity MCP tools.
func RunMCPServer(ctx context.Context, svc *ComplexityService, addr string) error {
	server := NewComplexityMCPServer(svc)

	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Shutdown gracefully when context is cancelled.
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
