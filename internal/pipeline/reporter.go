package pipeline

import (
	"github.com/orchestrate-solutions/bird-bone-ai/internal/model"
	"github.com/orchestrate-solutions/bird-bone-ai/internal/scan"
)

// Reporter receives progress callbacks during a discovery run. It replaces
// ambient console state: callers that want output pass one in explicitly.
// Implementations are called from a single goroutine at a time.
type Reporter interface {
	ScanStart(root string)
	ScanDone(stats scan.Stats)
	ExtractStart(totalFiles int)
	FileProcessed(relPath string)
	ExtractDone(functions, filesProcessed, filesWithErrors int)
	MapDone(counts map[model.Domain]int)
}

// NopReporter discards all progress callbacks.
type NopReporter struct{}

func (NopReporter) ScanStart(string)             {}
func (NopReporter) ScanDone(scan.Stats)          {}
func (NopReporter) ExtractStart(int)             {}
func (NopReporter) FileProcessed(string)         {}
func (NopReporter) ExtractDone(int, int, int)    {}
func (NopReporter) MapDone(map[model.Domain]int) {}
