package analyze

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"runtime"
	"sort"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"ccs/internal/lang"
	"ccs/internal/logging"
	"ccs/internal/scan"
	"ccs/internal/version"
)

// ResultCache stores per-file analysis payloads keyed by path, content
// hash, and tool version. Implemented by the sqlite store.
type ResultCache interface {
	Get(path, contentHash, toolVersion string) ([]byte, bool, error)
	Put(path, contentHash, toolVersion, language string, payload []byte) error
}

// Run is the outcome of a multi-file analysis.
type Run struct {
	ID        string   `json:"id"`
	Root      string   `json:"root"`
	Files     int      `json:"files"`
	CacheHits int      `json:"cacheHits"`
	Results   []Result `json:"results"`
}

// Runner analyzes many files concurrently. Each file is an independent
// task owning its own engine and parsed tree; only the collected result
// slice is shared, under a mutex.
type Runner struct {
	registry *lang.Registry
	logger   *logging.Logger
	opts     Options
	ignore   *scan.IgnoreMatcher
	cache    ResultCache // nil disables caching
	jobs     int
}

// NewRunner creates a runner. jobs <= 0 means one worker per CPU.
func NewRunner(registry *lang.Registry, logger *logging.Logger, opts Options, ignore *scan.IgnoreMatcher, cache ResultCache, jobs int) *Runner {
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	return &Runner{
		registry: registry,
		logger:   logger,
		opts:     opts,
		ignore:   ignore,
		cache:    cache,
		jobs:     jobs,
	}
}

// AnalyzeDirectory analyzes all supported files under dir.
func (r *Runner) AnalyzeDirectory(ctx context.Context, dir string) (*Run, error) {
	files, err := scan.ListDir(dir, true)
	if err != nil {
		return nil, err
	}
	return r.analyzeFiles(ctx, dir, files)
}

// AnalyzeGit analyzes all tracked files of the repository at root.
func (r *Runner) AnalyzeGit(ctx context.Context, root string) (*Run, error) {
	files, err := scan.ListGitFiles(root)
	if err != nil {
		return nil, err
	}
	return r.analyzeFiles(ctx, root, files)
}

func (r *Runner) analyzeFiles(ctx context.Context, root string, files []string) (*Run, error) {
	candidates := make([]string, 0, len(files))
	for _, file := range files {
		if r.ignore != nil && r.ignore.Match(file) {
			continue
		}
		if r.opts.Language == "" {
			if _, ok := r.registry.ResolveByExtension(file); !ok {
				continue
			}
		}
		candidates = append(candidates, file)
	}

	run := &Run{
		ID:    uuid.NewString(),
		Root:  root,
		Files: len(candidates),
	}

	var mu sync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(r.jobs)

	for _, file := range candidates {
		file := file
		group.Go(func() error {
			results, hit, err := r.analyzeOne(groupCtx, file)
			if err != nil {
				// Partial results beat an aborted batch: log and move on.
				r.logger.Warn("File analysis failed", map[string]interface{}{
					"file":  file,
					"error": err.Error(),
				})
				return nil
			}

			mu.Lock()
			if hit {
				run.CacheHits++
			}
			for _, res := range results {
				if res.Complexity >= r.opts.Threshold {
					run.Results = append(run.Results, res)
				}
			}
			mu.Unlock()
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	SortResults(run.Results)
	return run, nil
}

// analyzeOne analyzes a single file, consulting the cache first. Cached
// payloads are unfiltered, so threshold changes never require re-parsing.
func (r *Runner) analyzeOne(ctx context.Context, path string) ([]Result, bool, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, false, err
	}

	var contentHash string
	if r.cache != nil {
		sum := sha256.Sum256(source)
		contentHash = hex.EncodeToString(sum[:])

		payload, ok, err := r.cache.Get(path, contentHash, version.Version)
		if err != nil {
			r.logger.Debug("Cache lookup failed", map[string]interface{}{
				"file":  path,
				"error": err.Error(),
			})
		} else if ok {
			var results []Result
			if err := json.Unmarshal(payload, &results); err == nil {
				return results, true, nil
			}
			r.logger.Debug("Discarding undecodable cache entry", map[string]interface{}{
				"file": path,
			})
		}
	}

	engine := NewEngine(r.registry, r.logger, Options{Language: r.opts.Language})
	results, err := engine.AnalyzeSource(ctx, source, path)
	if err != nil {
		return nil, false, err
	}

	if r.cache != nil {
		language := ""
		if len(results) > 0 {
			language = results[0].Language
		}
		payload, err := json.Marshal(results)
		if err == nil {
			if err := r.cache.Put(path, contentHash, version.Version, language, payload); err != nil {
				r.logger.Debug("Cache store failed", map[string]interface{}{
					"file":  path,
					"error": err.Error(),
				})
			}
		}
	}

	return results, false, nil
}

// SortResults orders results by file path, start line, then function name
// so multi-file output is deterministic regardless of worker scheduling.
func SortResults(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].FilePath != results[j].FilePath {
			return results[i].FilePath < results[j].FilePath
		}
		if results[i].StartLine != results[j].StartLine {
			return results[i].StartLine < results[j].StartLine
		}
		return results[i].Function < results[j].Function
	})
}
