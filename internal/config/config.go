// Package config loads tool configuration from a YAML file.
package config

import (
	"fmt"
	"os"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file looked up in the scan root when no
// explicit path is given.
const DefaultFileName = ".birdbone.yaml"

const defaultMaxFileSize = 1_000_000 // 1 MB

// Config holds the user-tunable discovery settings.
type Config struct {
	// ExcludeDirs adds directory names to the scanner's built-in skip set.
	ExcludeDirs []string `yaml:"exclude_dirs"`

	// ExcludeGlobs are patterns matched against root-relative paths.
	ExcludeGlobs []string `yaml:"exclude_globs"`

	// MaxFileSize skips files larger than this many bytes. Zero disables.
	MaxFileSize int64 `yaml:"max_file_size"`

	// Format selects the output encoding: toon, json, or yaml.
	Format string `yaml:"format"`

	// MaxFunctions bounds output to the N most complex functions. Zero
	// means unbounded.
	MaxFunctions int `yaml:"max_functions"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		MaxFileSize: defaultMaxFileSize,
		Format:      "toon",
	}
}

// Load reads and validates a config file. Unset fields take their defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadIfPresent loads path when it exists, otherwise returns defaults.
func LoadIfPresent(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks the format and compiles every glob pattern once to surface
// bad patterns at load time instead of mid-scan.
func (c Config) Validate() error {
	switch c.Format {
	case "", "toon", "json", "yaml":
	default:
		return fmt.Errorf("unsupported format %q", c.Format)
	}
	if _, err := c.CompileGlobs(); err != nil {
		return err
	}
	return nil
}

// CompileGlobs compiles the exclusion patterns with '/' as the separator.
func (c Config) CompileGlobs() ([]glob.Glob, error) {
	var globs []glob.Glob
	for _, pattern := range c.ExcludeGlobs {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("bad exclude glob %q: %w", pattern, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}
