package scan

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/perfhint/bigo/internal/analyze"
)

// extLanguages maps file extensions to analyzer languages.
var extLanguages = map[string]analyze.Language{
	".py":  analyze.LangPython,
	".pyw": analyze.LangPython,
	".go":  analyze.LangGo,
	".ts":  analyze.LangTypeScript,
	".tsx": analyze.LangTypeScript,
	".mts": analyze.LangTypeScript,
	".rs":  analyze.LangRust,
}

// defaultExcludes are directory names skipped during the walk regardless of
// configuration.
var defaultExcludes = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"__pycache__":  true,
	"dist":         true,
	"target":       true,
	".venv":        true,
}

// Options controls a repository scan.
type Options struct {
	// Languages restricts analysis to the given languages; empty means all
	// supported languages.
	Languages []analyze.Language

	// ExcludeDirs are additional directory names to skip.
	ExcludeDirs []string

	// Sink receives diagnostic events from the per-file analyzers.
	Sink analyze.EventSink
}

// LanguageFor returns the analyzer language for a file path, if any.
func LanguageFor(path string) (analyze.Language, bool) {
	lang, ok := extLanguages[strings.ToLower(filepath.Ext(path))]
	return lang, ok
}

// Scan walks root, analyzes every supported source file, and returns the
// results in path order. Files are analyzed in parallel with one analyzer
// per worker; a file that fails to read or analyze fails the scan. The
// engine itself never fails, so only I/O and unsupported-language errors
// surface here.
func Scan(ctx context.Context, root string, opts Options) ([]*analyze.FileAnalysis, error) {
	wanted := make(map[analyze.Language]bool, len(opts.Languages))
	for _, l := range opts.Languages {
		wanted[l] = true
	}

	exclude := make(map[string]bool, len(defaultExcludes)+len(opts.ExcludeDirs))
	for d := range defaultExcludes {
		exclude[d] = true
	}
	for _, d := range opts.ExcludeDirs {
		exclude[d] = true
	}

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && exclude[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		lang, ok := LanguageFor(path)
		if !ok {
			return nil
		}
		if len(wanted) > 0 && !wanted[lang] {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	// Fan out one analysis per file. Results land in their slot so output
	// order stays deterministic regardless of completion order.
	results := make([]*analyze.FileAnalysis, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, path := range paths {
		g.Go(func() error {
			analyzer := analyze.NewTreeSitterAnalyzer()
			analyzer.Sink = opts.Sink
			defer analyzer.Close()

			source, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			lang, _ := LanguageFor(path)
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				rel = path
			}

			fa, err := analyzer.Analyze(gctx, rel, source, lang)
			if err != nil {
				return err
			}
			results[i] = fa
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
