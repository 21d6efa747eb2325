package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/perfhint/bigo/internal/analyze"
	"github.com/perfhint/bigo/internal/config"
	"github.com/perfhint/bigo/internal/export"
	"github.com/perfhint/bigo/internal/graph"
	"github.com/perfhint/bigo/internal/mcptools"
	"github.com/perfhint/bigo/internal/scan"
)

// CLI flags parsed from command line.
type cliFlags struct {
	Path      string
	Format    string
	Languages string
	Exclude   string
	StorePath string
	ServeMCP  bool
	Addr      string
	Verbose   bool
	Version   bool
}

// version is set by goreleaser at build time.
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var flags cliFlags

	fs := flag.NewFlagSet("bigo", flag.ContinueOnError)
	fs.StringVar(&flags.Path, "path", ".", "file or directory to analyze")
	fs.StringVar(&flags.Format, "format", "text", "output format: text, json, mermaid, annotate")
	fs.StringVar(&flags.Languages, "languages", "", "comma-separated languages to analyze (default: all)")
	fs.StringVar(&flags.Exclude, "exclude", "", "comma-separated directory names to skip")
	fs.StringVar(&flags.StorePath, "store", "", "path to a persistent result database (requires CGO build)")
	fs.BoolVar(&flags.ServeMCP, "serve-mcp", false, "run as MCP server over HTTP")
	fs.StringVar(&flags.Addr, "addr", ":8490", "listen address for -serve-mcp")
	fs.BoolVar(&flags.Verbose, "verbose", false, "enable verbose output")
	fs.BoolVar(&flags.Version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if flags.Version {
		fmt.Println(version)
		return nil
	}

	cfg, err := config.Load(".")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyConfig(&flags, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var sink analyze.EventSink
	if flags.Verbose {
		sink = func(e analyze.Event) {
			log.Printf("[engine] %s %s: %s", e.Kind, e.Function, e.Message)
		}
	}

	if flags.ServeMCP {
		store, err := graph.Open(flags.StorePath)
		if err != nil {
			return err
		}
		defer store.Close()

		log.Printf("[mcp] serving complexity tools on %s", flags.Addr)
		return mcptools.RunMCPServer(ctx, mcptools.NewComplexityService(store), flags.Addr)
	}

	return runAnalysis(ctx, flags, sink)
}

// applyConfig fills unset flags from the project config file.
func applyConfig(flags *cliFlags, cfg *config.ProjectConfig) {
	if flags.Languages == "" && len(cfg.Languages) > 0 {
		flags.Languages = strings.Join(cfg.Languages, ",")
	}
	if flags.Exclude == "" && len(cfg.ExcludeDirs) > 0 {
		flags.Exclude = strings.Join(cfg.ExcludeDirs, ",")
	}
	if flags.StorePath == "" {
		flags.StorePath = cfg.StorePath
	}
	if cfg.Verbose {
		flags.Verbose = true
	}
}

func runAnalysis(ctx context.Context, flags cliFlags, sink analyze.EventSink) error {
	results, err := collectResults(ctx, flags, sink)
	if err != nil {
		return err
	}

	if flags.StorePath != "" {
		if err := persist(ctx, flags.StorePath, results); err != nil {
			return err
		}
	}

	switch flags.Format {
	case "text":
		return writeText(os.Stdout, results)
	case "json":
		return export.WriteJSON(os.Stdout, export.BuildReport(results))
	case "mermaid":
		_, err := fmt.Print(export.GenerateMermaid(results))
		return err
	case "annotate":
		return writeAnnotated(os.Stdout, flags.Path, results)
	default:
		return fmt.Errorf("unknown format %q", flags.Format)
	}
}

// collectResults analyzes either a single file or a whole directory tree.
func collectResults(ctx context.Context, flags cliFlags, sink analyze.EventSink) ([]*analyze.FileAnalysis, error) {
	info, err := os.Stat(flags.Path)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		lang, ok := scan.LanguageFor(flags.Path)
		if !ok {
			return nil, fmt.Errorf("unsupported file type: %s", flags.Path)
		}
		source, err := os.ReadFile(flags.Path)
		if err != nil {
			return nil, err
		}
		analyzer := analyze.NewTreeSitterAnalyzer()
		analyzer.Sink = sink
		defer analyzer.Close()

		fa, err := analyzer.Analyze(ctx, flags.Path, source, lang)
		if err != nil {
			return nil, err
		}
		return []*analyze.FileAnalysis{fa}, nil
	}

	return scan.Scan(ctx, flags.Path, scan.Options{
		Languages:   parseLanguages(flags.Languages),
		ExcludeDirs: splitList(flags.Exclude),
		Sink:        sink,
	})
}

func persist(ctx context.Context, storePath string, results []*analyze.FileAnalysis) error {
	store, err := graph.Open(storePath)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.InitSchema(ctx); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	for _, fa := range results {
		if err := graph.AddFileAnalysis(ctx, store, fa); err != nil {
			return fmt.Errorf("store %s: %w", fa.File.Path, err)
		}
	}
	return nil
}

func parseLanguages(s string) []analyze.Language {
	var langs []analyze.Language
	for _, part := range splitList(s) {
		langs = append(langs, analyze.Language(strings.ToLower(part)))
	}
	return langs
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// writeText renders a per-file table of methods, worst complexity first.
func writeText(w *os.File, results []*analyze.FileAnalysis) error {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	for _, fa := range results {
		if len(fa.Methods) == 0 {
			continue
		}
		fmt.Fprintf(tw, "%s\n", fa.File.Path)

		methods := make([]analyze.MethodAnalysis, len(fa.Methods))
		copy(methods, fa.Methods)
		sort.SliceStable(methods, func(i, j int) bool {
			return methods[i].Time.Notation.Rank() > methods[j].Time.Notation.Rank()
		})

		for _, m := range methods {
			fmt.Fprintf(tw, "  %s\ttime %s\tspace %s\t%d%%\t%s\n",
				m.Name, m.Time.Notation, m.Space.Notation, m.Time.Confidence, m.Explanation)
		}
	}
	return tw.Flush()
}

// writeAnnotated re-reads each source file and prints it with complexity
// hints inserted above every function.
func writeAnnotated(w *os.File, root string, results []*analyze.FileAnalysis) error {
	for _, fa := range results {
		path := fa.File.Path
		if !filepath.IsAbs(path) {
			if _, err := os.Stat(path); err != nil {
				path = filepath.Join(root, fa.File.Path)
			}
		}
		source, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if len(results) > 1 {
			fmt.Fprintf(w, "==> %s <==\n", fa.File.Path)
		}
		fmt.Fprint(w, export.Annotate(source, fa))
	}
	return nil
}
