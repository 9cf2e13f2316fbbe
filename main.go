// birdbone discovers the functions of a Python codebase, classifies them by
// domain, and emits per-function adaptation configurations.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/orchestrate-solutions/bird-bone-ai/internal/config"
	"github.com/orchestrate-solutions/bird-bone-ai/internal/model"
	"github.com/orchestrate-solutions/bird-bone-ai/internal/pipeline"
	"github.com/orchestrate-solutions/bird-bone-ai/internal/ranking"
	"github.com/orchestrate-solutions/bird-bone-ai/internal/toon"
)

var version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) > 0 && args[0] == "init" {
		return runInit(args[1:], stdout, stderr)
	}

	fs := flag.NewFlagSet("birdbone", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		verbose     bool
		format      string
		configPath  string
		maxFuncs    int
		maxFileSize int64
		showVersion bool
	)

	fs.BoolVar(&verbose, "v", false, "report progress while scanning")
	fs.BoolVar(&verbose, "verbose", false, "report progress while scanning")
	fs.StringVar(&format, "o", "", "output format: toon, json, or yaml")
	fs.StringVar(&format, "format", "", "output format: toon, json, or yaml")
	fs.StringVar(&configPath, "c", "", "config file path")
	fs.StringVar(&configPath, "config", "", "config file path")
	fs.IntVar(&maxFuncs, "n", 0, "limit output to the N most complex functions")
	fs.IntVar(&maxFuncs, "max-functions", 0, "limit output to the N most complex functions")
	fs.Int64Var(&maxFileSize, "max-file-size", -1, "skip files larger than this many bytes")
	fs.BoolVar(&showVersion, "V", false, "show version and exit")
	fs.BoolVar(&showVersion, "version", false, "show version and exit")

	if err := fs.Parse(reorderArgs(args)); err != nil {
		return err
	}

	if showVersion {
		_, _ = fmt.Fprintf(stdout, "birdbone %s\n", version)
		return nil
	}

	root := "."
	if fs.NArg() > 0 {
		root = fs.Arg(0)
	}

	cfg, err := loadConfig(configPath, root)
	if err != nil {
		return err
	}

	// Flags override the config file where set.
	if format == "" {
		format = cfg.Format
	}
	switch format {
	case "toon", "json", "yaml":
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
	if maxFuncs == 0 {
		maxFuncs = cfg.MaxFunctions
	}
	if maxFileSize < 0 {
		maxFileSize = cfg.MaxFileSize
	}

	globs, err := cfg.CompileGlobs()
	if err != nil {
		return err
	}

	var reporter pipeline.Reporter
	if verbose {
		reporter = newProgressReporter(stderr)
	}

	res := pipeline.Run(pipeline.Options{
		Root:         root,
		ExcludeDirs:  cfg.ExcludeDirs,
		ExcludeGlobs: globs,
		MaxFileSize:  maxFileSize,
		Reporter:     reporter,
	})

	if maxFuncs > 0 {
		res = ranking.SelectFunctions(res, maxFuncs)
	}

	output, err := encode(res, format)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(stdout, output)

	if !res.Success {
		return fmt.Errorf("discovery failed: %s", firstError(res))
	}
	return nil
}

func loadConfig(explicit, root string) (config.Config, error) {
	if explicit != "" {
		return config.Load(explicit)
	}
	return config.LoadIfPresent(filepath.Join(root, config.DefaultFileName))
}

func encode(res *model.DiscoveryResult, format string) (string, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encoding json: %w", err)
		}
		return string(data), nil
	case "yaml":
		data, err := yaml.Marshal(res)
		if err != nil {
			return "", fmt.Errorf("encoding yaml: %w", err)
		}
		return string(data), nil
	default:
		return toon.Encode(res), nil
	}
}

func firstError(res *model.DiscoveryResult) string {
	for i := range res.Errors {
		e := &res.Errors[i]
		// File-level parse errors do not fail the run; report stage errors.
		if e.Kind != model.ParseError {
			return e.Error()
		}
	}
	if len(res.Errors) > 0 {
		return res.Errors[0].Error()
	}
	return "unknown error"
}

// flagsWithValue lists flags that take a value argument.
var flagsWithValue = map[string]bool{
	"-o": true, "--o": true,
	"-format": true, "--format": true,
	"-c": true, "--c": true,
	"-config": true, "--config": true,
	"-n": true, "--n": true,
	"-max-functions": true, "--max-functions": true,
	"-max-file-size": true, "--max-file-size": true,
}

// reorderArgs moves positional arguments after all flags so Go's flag package
// can parse them correctly (it stops at the first non-flag arg).
func reorderArgs(args []string) []string {
	var flags, positional []string
	for i := 0; i < len(args); i++ {
		if args[i] == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}
		if len(args[i]) > 0 && args[i][0] == '-' {
			flags = append(flags, args[i])
			if flagsWithValue[args[i]] && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		} else {
			positional = append(positional, args[i])
		}
	}
	return append(flags, positional...)
}
