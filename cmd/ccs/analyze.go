package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"ccs/internal/analyze"
	"ccs/internal/baseline"
	"ccs/internal/config"
	"ccs/internal/lang"
	"ccs/internal/logging"
	"ccs/internal/output"
	"ccs/internal/scan"
	"ccs/internal/storage"
	"ccs/internal/version"
)

var (
	analyzeThreshold     int
	analyzeLanguage      string
	analyzeFormat        string
	analyzeSort          string
	analyzeLimit         int
	analyzeIgnore        []string
	analyzeJobs          int
	analyzeNoCache       bool
	analyzeGit           bool
	analyzeBaseline      string
	analyzeWriteBaseline string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Measure cognitive complexity of functions",
	Long: `Analyze a file or directory and report the cognitive complexity of every
function at or above the threshold, with a per-increment breakdown.

A single file is analyzed directly. A directory is walked (or, with --git,
the repository's tracked files are listed) and analyzed in parallel, with
per-file results cached under .ccs/ keyed by content hash.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().IntVarP(&analyzeThreshold, "threshold", "t", -1,
		"Minimum complexity to report (default from config)")
	analyzeCmd.Flags().StringVarP(&analyzeLanguage, "language", "l", "",
		"Force a language instead of detecting by extension (cpp, c, python)")
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "text",
		"Output format: text, json, or yaml")
	analyzeCmd.Flags().StringVar(&analyzeSort, "sort", "location",
		"Sort order: location, complexity, or name")
	analyzeCmd.Flags().IntVar(&analyzeLimit, "limit", 0,
		"Report at most N functions (0 = all)")
	analyzeCmd.Flags().StringArrayVar(&analyzeIgnore, "ignore", nil,
		"Extra ignore pattern (regexp; repeatable)")
	analyzeCmd.Flags().IntVarP(&analyzeJobs, "jobs", "j", -1,
		"Number of files analyzed concurrently (default from config, 0 = NumCPU)")
	analyzeCmd.Flags().BoolVar(&analyzeNoCache, "no-cache", false,
		"Skip the result cache")
	analyzeCmd.Flags().BoolVar(&analyzeGit, "git", false,
		"Analyze the tracked files of the git repository at path")
	analyzeCmd.Flags().StringVar(&analyzeBaseline, "baseline", "",
		"Baseline file; functions at or below their baselined score are not reported")
	analyzeCmd.Flags().StringVar(&analyzeWriteBaseline, "write-baseline", "",
		"Write the results as a new baseline file and exit")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) == 1 {
		path = args[0]
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot analyze %s: %w", path, err)
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := newLogger(cfg)

	threshold := cfg.Threshold
	if analyzeThreshold >= 0 {
		threshold = analyzeThreshold
	}
	jobs := cfg.Jobs
	if analyzeJobs >= 0 {
		jobs = analyzeJobs
	}

	format, err := output.ParseFormat(analyzeFormat)
	if err != nil {
		return err
	}

	registry := lang.Builtin(logger)
	if analyzeLanguage != "" && !registry.Supports(analyzeLanguage) {
		return fmt.Errorf("unsupported language %q (run 'ccs languages')", analyzeLanguage)
	}

	ctx := context.Background()
	opts := analyze.Options{Threshold: threshold, Language: analyzeLanguage}

	var run *analyze.Run
	if info.IsDir() {
		run, err = runDirectory(ctx, cfg, logger, registry, opts, path, jobs)
	} else {
		run, err = runSingleFile(ctx, logger, registry, opts, path)
	}
	if err != nil {
		return err
	}

	if analyzeWriteBaseline != "" {
		b := baseline.FromResults(run.Results, "ccs "+version.Version)
		if err := b.Save(analyzeWriteBaseline); err != nil {
			return err
		}
		logger.Info("Baseline written", map[string]interface{}{
			"path":    analyzeWriteBaseline,
			"entries": len(run.Results),
		})
		return nil
	}

	if analyzeBaseline != "" {
		b, err := baseline.Load(analyzeBaseline)
		if err != nil {
			return err
		}
		run.Results = b.Filter(run.Results)
	}

	if err := output.SortBy(run.Results, analyzeSort); err != nil {
		return err
	}
	if analyzeLimit > 0 && len(run.Results) > analyzeLimit {
		run.Results = run.Results[:analyzeLimit]
	}

	return output.Encode(cmd.OutOrStdout(), output.NewReport(run), format)
}

func runSingleFile(ctx context.Context, logger *logging.Logger, registry *lang.Registry, opts analyze.Options, path string) (*analyze.Run, error) {
	engine := analyze.NewEngine(registry, logger, opts)
	results, err := engine.AnalyzeFile(ctx, path)
	if err != nil {
		return nil, err
	}
	analyze.SortResults(results)
	return &analyze.Run{Root: path, Files: 1, Results: results}, nil
}

func runDirectory(ctx context.Context, cfg *config.Config, logger *logging.Logger, registry *lang.Registry, opts analyze.Options, path string, jobs int) (*analyze.Run, error) {
	ignore := scan.NewIgnoreMatcher(append(append([]string{}, cfg.Ignore...), analyzeIgnore...), logger)

	var cache *storage.DB
	if cfg.Cache.Enabled && !analyzeNoCache {
		db, err := storage.OpenPath(cfg.Cache.Path, logger)
		if err != nil {
			logger.Warn("Cache unavailable, analyzing without it", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			cache = db
			defer cache.Close()
		}
	}

	// The cache stores unfiltered per-file results; Runner applies the
	// threshold after lookup, so the interface stays nil-able.
	var resultCache analyze.ResultCache
	if cache != nil {
		resultCache = cache
	}

	runner := analyze.NewRunner(registry, logger, opts, ignore, resultCache, jobs)

	started := time.Now()
	var run *analyze.Run
	var err error
	if analyzeGit {
		run, err = runner.AnalyzeGit(ctx, path)
	} else {
		run, err = runner.AnalyzeDirectory(ctx, path)
	}
	if err != nil {
		return nil, err
	}

	if cache != nil {
		if err := cache.RecordRun(run.ID, run.Root, run.Files, len(run.Results), run.CacheHits, started, time.Since(started)); err != nil {
			logger.Debug("Failed to record run", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	logger.Debug("Analysis run complete", map[string]interface{}{
		"run":       run.ID,
		"files":     run.Files,
		"functions": len(run.Results),
		"cacheHits": run.CacheHits,
		"elapsed":   time.Since(started).String(),
	})
	return run, nil
}
