// Package analyze drives parsing, extraction, and scoring.
//
// Engine analyzes one file synchronously; Runner fans out over a worker
// pool for directory and repository runs. Data flows one way: text → tree
// → function units → scored results → threshold-filtered result set.
package analyze

import (
	"context"
	"os"

	"ccs/internal/cognitive"
	"ccs/internal/lang"
	"ccs/internal/logging"
)

// Result is one reported function with its complexity breakdown.
type Result struct {
	FilePath   string             `json:"filePath"`
	Language   string             `json:"language"`
	Function   string             `json:"function"`
	StartLine  int                `json:"startLine"`
	EndLine    int                `json:"endLine"`
	Complexity int                `json:"complexity"`
	Factors    []cognitive.Factor `json:"factors,omitempty"`
}

// Options configures an analysis.
type Options struct {
	// Threshold keeps only functions scoring at or above it. Zero keeps
	// everything.
	Threshold int

	// Language overrides extension-based detection when non-empty.
	Language string
}

// Engine analyzes single files. It owns no shared mutable state beyond
// the read-only registry, so independent engines may run concurrently.
type Engine struct {
	registry *lang.Registry
	logger   *logging.Logger
	opts     Options
}

// NewEngine creates an engine over the given registry.
func NewEngine(registry *lang.Registry, logger *logging.Logger, opts Options) *Engine {
	return &Engine{
		registry: registry,
		logger:   logger,
		opts:     opts,
	}
}

// AnalyzeSource analyzes in-memory source text. An unsupported language
// yields empty results and no error (a skip, not a failure); a parse
// failure yields empty results and the error so batch callers can log and
// continue.
func (e *Engine) AnalyzeSource(ctx context.Context, source []byte, filePath string) ([]Result, error) {
	language := e.opts.Language
	if language == "" {
		detected, ok := e.registry.ResolveByExtension(filePath)
		if !ok {
			e.logger.Debug("No language for extension, skipping", map[string]interface{}{
				"file": filePath,
			})
			return nil, nil
		}
		language = detected
	}

	tooling, ok := e.registry.Create(language)
	if !ok {
		e.logger.Warn("Language not registered, skipping", map[string]interface{}{
			"file":     filePath,
			"language": language,
		})
		return nil, nil
	}

	tree, err := tooling.Adapter.Parse(ctx, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	units := tooling.Extractor.Extract(tree.RootNode(), source)
	calc := cognitive.NewCalculator(tooling.Adapter, e.logger)

	results := make([]Result, 0, len(units))
	for _, unit := range units {
		if unit.QualifiedName == "" {
			e.logger.Debug("Skipping unnamed function unit", map[string]interface{}{
				"file": filePath,
				"line": unit.StartLine,
			})
			continue
		}

		score := calc.Calculate(unit.Body, source)
		if score.Total < e.opts.Threshold {
			continue
		}

		results = append(results, Result{
			FilePath:   filePath,
			Language:   language,
			Function:   unit.QualifiedName,
			StartLine:  unit.StartLine,
			EndLine:    unit.EndLine,
			Complexity: score.Total,
			Factors:    score.Factors,
		})
	}
	return results, nil
}

// AnalyzeFile reads and analyzes a file on disk.
func (e *Engine) AnalyzeFile(ctx context.Context, path string) ([]Result, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return e.AnalyzeSource(ctx, source, path)
}
