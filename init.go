package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/orchestrate-solutions/bird-bone-ai/internal/config"
)

// runInit implements the `birdbone init` subcommand, which writes a commented
// default config file.
func runInit(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("birdbone init", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var dryRun, force bool
	fs.BoolVar(&dryRun, "dry-run", false, "print the config without writing the file")
	fs.BoolVar(&force, "force", false, "overwrite an existing config file")

	fs.Usage = func() {
		fmt.Fprintf(stderr, `Usage: birdbone init [flags] [path]

Write a default %s config file. Refuses to overwrite an existing file
unless --force is given.

path defaults to ./%s.

Flags:
`, config.DefaultFileName, config.DefaultFileName)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	content := defaultConfigFile()

	if dryRun {
		_, _ = fmt.Fprint(stdout, content)
		return nil
	}

	path := config.DefaultFileName
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	_, _ = fmt.Fprintf(stderr, "wrote %s\n", path)
	return nil
}

// defaultConfigFile returns the commented default config. Kept as literal
// text so the comments survive; the values mirror config.Default().
func defaultConfigFile() string {
	return `# birdbone discovery configuration.

# Extra directory names to skip, on top of the built-in set
# (.git, venv, __pycache__, node_modules, build, dist, ...).
exclude_dirs: []

# Glob patterns matched against root-relative paths, e.g. "generated/**".
exclude_globs: []

# Skip files larger than this many bytes. 0 disables the limit.
max_file_size: 1000000

# Output format: toon, json, or yaml.
format: toon

# Limit output to the N most complex functions. 0 means unbounded.
max_functions: 0
`
}
