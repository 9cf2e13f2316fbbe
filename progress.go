package main

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/orchestrate-solutions/bird-bone-ai/internal/model"
	"github.com/orchestrate-solutions/bird-bone-ai/internal/scan"
)

// progressReporter renders pipeline progress to a writer, with a progress
// bar during extraction.
type progressReporter struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

func newProgressReporter(w io.Writer) *progressReporter {
	return &progressReporter{w: w}
}

func (p *progressReporter) ScanStart(root string) {
	_, _ = fmt.Fprintf(p.w, "Scanning %s\n", root)
}

func (p *progressReporter) ScanDone(stats scan.Stats) {
	_, _ = fmt.Fprintf(p.w, "Found %d Python files (%d total, %d filtered)\n",
		stats.AfterFiltering, stats.TotalFound, stats.FilteredOut)
}

func (p *progressReporter) ExtractStart(totalFiles int) {
	p.bar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetWriter(p.w),
		progressbar.OptionSetDescription("Extracting functions"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			_, _ = fmt.Fprintln(p.w)
		}),
	)
}

func (p *progressReporter) FileProcessed(relPath string) {
	if p.bar != nil {
		_ = p.bar.Add(1)
	}
}

func (p *progressReporter) ExtractDone(functions, filesProcessed, filesWithErrors int) {
	if p.bar != nil {
		_ = p.bar.Finish()
		p.bar = nil
	}
	_, _ = fmt.Fprintf(p.w, "Extracted %d functions from %d files\n", functions, filesProcessed)
	if filesWithErrors > 0 {
		_, _ = fmt.Fprintf(p.w, "Warning: %d files had parse errors\n", filesWithErrors)
	}
}

func (p *progressReporter) MapDone(counts map[model.Domain]int) {
	_, _ = fmt.Fprintf(p.w, "Mapped %d domains:\n", len(counts))
	for _, d := range model.Domains {
		if count := counts[d]; count > 0 {
			_, _ = fmt.Fprintf(p.w, "  %s: %d\n", d, count)
		}
	}
}
