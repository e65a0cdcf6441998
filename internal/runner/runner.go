// Package runner lints files on disk: it discovers sources, runs the
// analyzer on each file in parallel, applies fixes until they settle and
// optionally caches results between runs.
package runner

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/primerlint/pkg/fix"
	"github.com/leapstack-labs/primerlint/pkg/jsx/parser"
	"github.com/leapstack-labs/primerlint/pkg/lint"
)

// Cache stores diagnostics of unchanged files between runs.
type Cache interface {
	Lookup(ctx context.Context, path, key string) ([]lint.Diagnostic, bool, error)
	Store(ctx context.Context, path, key string, diags []lint.Diagnostic, runID string) error
}

// Options configures a Runner.
type Options struct {
	// Fix applies fixes and writes changed files back.
	Fix bool
	// MaxPasses bounds the fix loop per file. Zero means fix.DefaultMaxPasses.
	MaxPasses int
	// Concurrency is the number of files linted at once. Zero means GOMAXPROCS.
	Concurrency int
	// Cache, when set, skips files whose content and configuration are
	// unchanged since they were last linted.
	Cache Cache
	// CacheSalt is mixed into cache keys; it should change whenever the
	// lint configuration does.
	CacheSalt string
	// RunID tags cache entries written by this run.
	RunID  string
	Logger *slog.Logger
}

// FileResult is the outcome of linting one file.
type FileResult struct {
	Path string
	// Diagnostics are those reported on the final source.
	Diagnostics []lint.Diagnostic
	// Output is the fixed source; nil unless fixes changed the file.
	Output []byte
	// Passes is the number of fix passes that changed the source.
	Passes int
	// Applied and Skipped count fixes over all passes.
	Applied int
	Skipped int
	Cached  bool
	// Err is a per-file failure such as a parse error. The other files
	// are still linted.
	Err error
}

// Changed reports whether fixes changed the file.
func (r FileResult) Changed() bool {
	return r.Output != nil
}

// Runner lints files with a shared analyzer.
type Runner struct {
	analyzer *lint.Analyzer
	opts     Options
	logger   *slog.Logger
}

// New creates a Runner.
func New(analyzer *lint.Analyzer, opts Options) *Runner {
	if opts.MaxPasses <= 0 {
		opts.MaxPasses = fix.DefaultMaxPasses
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = runtime.GOMAXPROCS(0)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{analyzer: analyzer, opts: opts, logger: logger}
}

// LintSource lints src as the file path. With Fix set, fixes are applied
// and the source reparsed until no fix applies or MaxPasses is reached.
// Parse errors and rule bugs are returned as errors.
func (r *Runner) LintSource(ctx context.Context, path string, src []byte) (FileResult, error) {
	res := FileResult{Path: path}
	cur := src

	for pass := 0; ; pass++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		file, err := parser.Parse(ctx, path, cur)
		if err != nil {
			return res, err
		}
		diags, err := r.analyzer.Analyze(file)
		if err != nil {
			return res, err
		}
		res.Diagnostics = diags

		if !r.opts.Fix || pass >= r.opts.MaxPasses {
			break
		}
		fixes := lint.Fixes(diags)
		if len(fixes) == 0 {
			break
		}
		out, applied := fix.Apply(cur, fixes)
		res.Applied += len(applied.Applied)
		res.Skipped += len(applied.Skipped)
		if !applied.Changed() {
			break
		}

		r.logger.Debug("applied fixes",
			slog.String("path", path),
			slog.Int("pass", pass+1),
			slog.Int("fixes", len(applied.Applied)),
			slog.Int("skipped", len(applied.Skipped)))
		cur = out
		res.Passes++
	}

	if res.Passes > 0 {
		res.Output = cur
		if res.Passes >= r.opts.MaxPasses && len(lint.Fixes(res.Diagnostics)) > 0 {
			r.logger.Warn("fixes did not settle",
				slog.String("path", path),
				slog.Int("max_passes", r.opts.MaxPasses))
		}
	}
	lint.SortDiagnostics(res.Diagnostics)
	return res, nil
}

// LintFile reads, lints and, when fixing, rewrites the file at path.
// Per-file failures are recorded in FileResult.Err; only cancellation is
// returned as an error.
func (r *Runner) LintFile(ctx context.Context, path string) (FileResult, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return FileResult{Path: path, Err: fmt.Errorf("failed to read %s: %w", path, err)}, nil
	}

	key := r.cacheKey(src)
	if r.opts.Cache != nil && !r.opts.Fix {
		diags, ok, err := r.opts.Cache.Lookup(ctx, path, key)
		if err != nil {
			r.logger.Warn("cache lookup failed", slog.String("path", path), slog.Any("error", err))
		} else if ok {
			r.logger.Debug("cache hit", slog.String("path", path))
			return FileResult{Path: path, Diagnostics: diags, Cached: true}, nil
		}
	}

	res, err := r.LintSource(ctx, path, src)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return res, err
		}
		res.Err = err
		return res, nil
	}

	if res.Changed() {
		if err := writeFile(path, res.Output); err != nil {
			res.Err = err
			return res, nil
		}
		key = r.cacheKey(res.Output)
	}

	if r.opts.Cache != nil {
		if err := r.opts.Cache.Store(ctx, path, key, res.Diagnostics, r.opts.RunID); err != nil {
			r.logger.Warn("cache store failed", slog.String("path", path), slog.Any("error", err))
		}
	}
	return res, nil
}

// LintFiles lints paths in parallel and returns results in path order.
func (r *Runner) LintFiles(ctx context.Context, paths []string) ([]FileResult, error) {
	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)
	results := make([]FileResult, len(sorted))
	if len(sorted) == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(r.opts.Concurrency, len(sorted)))

	for i, path := range sorted {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := r.LintFile(gctx, path)
			if err != nil {
				return err
			}
			// Each goroutine owns its index.
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}

	r.logger.Debug("linted files", slog.Int("files", len(sorted)))
	return results, nil
}

func (r *Runner) cacheKey(src []byte) string {
	h := sha256.New()
	h.Write([]byte(r.opts.CacheSalt))
	h.Write([]byte{0})
	h.Write(src)
	return hex.EncodeToString(h.Sum(nil))
}

// writeFile replaces the content of path, keeping its permissions.
func writeFile(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
