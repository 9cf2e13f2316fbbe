// Package pipeline orchestrates the discovery run: scan, extract, map.
// Stages run strictly in sequence; a failed stage marks the result failed
// and downstream stages are skipped, while earlier stages' outputs are
// preserved in the returned aggregate.
package pipeline

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/gobwas/glob"

	"github.com/orchestrate-solutions/bird-bone-ai/internal/domain"
	"github.com/orchestrate-solutions/bird-bone-ai/internal/extract"
	"github.com/orchestrate-solutions/bird-bone-ai/internal/model"
	"github.com/orchestrate-solutions/bird-bone-ai/internal/scan"
)

// Options configures a discovery run.
type Options struct {
	Root         string
	ExcludeDirs  []string
	ExcludeGlobs []glob.Glob
	MaxFileSize  int64

	// Reporter receives progress callbacks. Nil means no reporting.
	Reporter Reporter

	// Workers bounds extraction concurrency. Zero means GOMAXPROCS.
	Workers int
}

// Run executes the discovery pipeline and returns the aggregate result.
// Nothing is thrown across the pipeline boundary: invalid roots and missing
// inputs become structured errors on the result, and per-file parse errors
// are recorded without aborting the batch.
func Run(opts Options) *model.DiscoveryResult {
	rep := opts.Reporter
	if rep == nil {
		rep = NopReporter{}
	}

	res := &model.DiscoveryResult{
		Functions: make(map[string]model.FunctionRecord),
	}
	if abs, err := filepath.Abs(opts.Root); err == nil {
		res.Root = abs
	} else {
		res.Root = opts.Root
	}

	// Stage 1: scan.
	rep.ScanStart(res.Root)
	files, scanStats, err := scan.Scan(opts.Root, scan.Options{
		ExcludeDirs:  opts.ExcludeDirs,
		ExcludeGlobs: opts.ExcludeGlobs,
		MaxFileSize:  opts.MaxFileSize,
	})
	res.Stats.TotalFilesFound = scanStats.TotalFound
	res.Stats.FilesAfterFiltering = scanStats.AfterFiltering
	res.Stats.FilteredOut = scanStats.FilteredOut
	res.Stats.SkippedEntries = scanStats.Skipped
	res.Stats.OversizeFiles = scanStats.Oversize
	if err != nil {
		res.Errors = append(res.Errors, toModelError(err))
		return res
	}
	rep.ScanDone(scanStats)

	// Stage 2: extract.
	rep.ExtractStart(len(files))
	extractFiles(files, opts.Workers, rep, res)
	rep.ExtractDone(res.Stats.FunctionsDiscovered, res.Stats.FilesProcessed, res.Stats.FilesWithErrors)

	// Stage 3: map domains to adaptation configs.
	configs, counts, mapErr := domain.MapConfigs(res.Functions)
	if mapErr != nil {
		res.Errors = append(res.Errors, *mapErr)
		return res
	}
	res.Configs = configs
	res.DomainCounts = counts
	rep.MapDone(counts)

	res.Success = true
	return res
}

// extractFiles runs extraction over the candidate files with a bounded
// worker pool. Each worker owns its own parser. Qualified names from
// different files are disjoint, so merge order does not affect the result.
func extractFiles(files []model.SourceFile, workers int, rep Reporter, res *model.DiscoveryResult) {
	if len(files) == 0 {
		return
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(files) {
		workers = len(files)
	}

	type outcome struct {
		funcs      map[string]model.FunctionRecord
		collisions int
		err        *model.Error
	}

	work := make(chan model.SourceFile, len(files))
	results := make(chan outcome, len(files))

	var wg sync.WaitGroup
	var repMu sync.Mutex

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			ex, err := extract.New()
			if err != nil {
				for f := range work {
					results <- outcome{err: &model.Error{
						Kind:    model.ParseError,
						Path:    f.RelPath,
						Message: err.Error(),
					}}
				}
				return
			}

			for f := range work {
				src, readErr := os.ReadFile(f.Path)
				var out outcome
				if readErr != nil {
					out.err = &model.Error{Kind: model.ParseError, Path: f.RelPath, Message: readErr.Error()}
				} else {
					out.funcs, out.collisions, out.err = ex.File(f, src)
				}
				repMu.Lock()
				rep.FileProcessed(f.RelPath)
				repMu.Unlock()
				results <- out
			}
		}()
	}

	for _, f := range files {
		work <- f
	}
	close(work)

	go func() {
		wg.Wait()
		close(results)
	}()

	for out := range results {
		if out.err != nil {
			res.Stats.FilesWithErrors++
			res.Errors = append(res.Errors, *out.err)
			continue
		}
		res.Stats.FilesProcessed++
		res.Stats.NameCollisions += out.collisions
		for qn, rec := range out.funcs {
			res.Functions[qn] = rec
		}
	}

	res.Stats.FunctionsDiscovered = len(res.Functions)
	processed := res.Stats.FilesProcessed
	if processed == 0 {
		processed = 1
	}
	res.Stats.FunctionsPerFile = float64(res.Stats.FunctionsDiscovered) / float64(processed)
}

func toModelError(err error) model.Error {
	if me, ok := err.(*model.Error); ok {
		return *me
	}
	return model.Error{Kind: model.InvalidPath, Message: err.Error()}
}
