// Package scan finds candidate Python source files under a root directory.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/orchestrate-solutions/bird-bone-ai/internal/model"
)

// skipDirs are directory names never descended into: version control
// metadata, virtual environments, bytecode and tool caches, dependency and
// build output directories.
var skipDirs = map[string]struct{}{
	".git":          {},
	".hg":           {},
	".svn":          {},
	"venv":          {},
	".venv":         {},
	"env":           {},
	".env":          {},
	"__pycache__":   {},
	".pytest_cache": {},
	".mypy_cache":   {},
	".ruff_cache":   {},
	".tox":          {},
	"node_modules":  {},
	"build":         {},
	"dist":          {},
	"egg-info":      {},
}

// Options configures a scan.
type Options struct {
	// ExcludeDirs adds directory names to the built-in skip set.
	ExcludeDirs []string

	// ExcludeGlobs are compiled patterns matched against root-relative
	// slash-separated paths.
	ExcludeGlobs []glob.Glob

	// MaxFileSize skips files larger than this many bytes when > 0.
	MaxFileSize int64
}

// Stats reports what the scanner saw and why entries were dropped.
type Stats struct {
	TotalFound     int // candidate files seen before file-level filtering
	AfterFiltering int
	FilteredOut    int
	Skipped        int // traversal errors and symlinks, skipped not raised
	Oversize       int
}

// Scan recursively enumerates Python source files under root, applies the
// exclusion rules, and returns the surviving files in lexicographic order.
// The only error it returns is an invalid root; traversal errors on
// individual entries are skipped and counted.
func Scan(root string, opts Options) ([]model.SourceFile, Stats, error) {
	var stats Stats

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, stats, &model.Error{Kind: model.InvalidPath, Path: root, Message: err.Error()}
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, stats, &model.Error{Kind: model.InvalidPath, Path: root, Message: "source path does not exist"}
	}
	if !info.IsDir() {
		return nil, stats, &model.Error{Kind: model.InvalidPath, Path: root, Message: "not a directory"}
	}

	extraSkip := make(map[string]struct{}, len(opts.ExcludeDirs))
	for _, d := range opts.ExcludeDirs {
		extraSkip[d] = struct{}{}
	}

	gi := loadGitignore(abs)

	var results []model.SourceFile

	walkErr := filepath.WalkDir(abs, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			stats.Skipped++
			return nil
		}

		name := d.Name()

		if d.IsDir() {
			if path == abs {
				return nil
			}
			if _, skip := skipDirs[name]; skip {
				return filepath.SkipDir
			}
			if _, skip := extraSkip[name]; skip {
				return filepath.SkipDir
			}
			if strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(name, ".py") {
			return nil
		}

		if d.Type()&os.ModeSymlink != 0 {
			stats.Skipped++
			return nil
		}

		stats.TotalFound++

		rel, err := filepath.Rel(abs, path)
		if err != nil {
			stats.Skipped++
			return nil
		}

		if !includeFile(name, rel, gi, opts.ExcludeGlobs) {
			stats.FilteredOut++
			return nil
		}

		if opts.MaxFileSize > 0 {
			if fi, err := os.Stat(path); err == nil && fi.Size() > opts.MaxFileSize {
				stats.Oversize++
				return nil
			}
		}

		results = append(results, model.SourceFile{Path: path, RelPath: rel})
		return nil
	})
	if walkErr != nil {
		return nil, stats, fmt.Errorf("walking %s: %w", abs, walkErr)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].RelPath < results[j].RelPath
	})

	stats.AfterFiltering = len(results)
	return results, stats, nil
}

// includeFile applies the file-level exclusion rules: hidden files, the
// test-file naming convention, .gitignore matches, and user glob patterns.
func includeFile(name, rel string, gi *ignore.GitIgnore, globs []glob.Glob) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	if IsTestFile(name) {
		return false
	}
	if gi != nil && gi.MatchesPath(rel) {
		return false
	}
	slashRel := filepath.ToSlash(rel)
	for _, g := range globs {
		if g.Match(slashRel) {
			return false
		}
	}
	return true
}

// IsTestFile reports whether a file name follows the test-file naming
// convention: a "test" prefix or a "test_" token anywhere in the name.
// "footest.py" is not a test file; "testfoo.py" and "foo_test_bar.py" are.
func IsTestFile(name string) bool {
	return strings.HasPrefix(name, "test") || strings.Contains(name, "test_")
}

func loadGitignore(root string) *ignore.GitIgnore {
	path := filepath.Join(root, ".gitignore")
	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil
	}
	return gi
}
