package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".birdbone.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.Equal(t, "toon", cfg.Format)
	assert.Equal(t, int64(1_000_000), cfg.MaxFileSize)
	assert.Zero(t, cfg.MaxFunctions)
	assert.Empty(t, cfg.ExcludeDirs)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
exclude_dirs: [scratch, notebooks]
exclude_globs: ["generated/**"]
max_file_size: 2048
format: json
max_functions: 25
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"scratch", "notebooks"}, cfg.ExcludeDirs)
	assert.Equal(t, []string{"generated/**"}, cfg.ExcludeGlobs)
	assert.Equal(t, int64(2048), cfg.MaxFileSize)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, 25, cfg.MaxFunctions)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "exclude_dirs: [scratch]\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "toon", cfg.Format)
	assert.Equal(t, int64(1_000_000), cfg.MaxFileSize)
}

func TestLoadBadFormat(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "format: xml\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestLoadBadGlob(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "exclude_globs: [\"[\"]\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad exclude glob")
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadIfPresent(t *testing.T) {
	t.Parallel()

	cfg, err := LoadIfPresent(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := writeConfig(t, "format: yaml\n")
	cfg, err = LoadIfPresent(path)
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.Format)
}

func TestCompileGlobs(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.ExcludeGlobs = []string{"gen/**", "**/*_pb2.py"}

	globs, err := cfg.CompileGlobs()
	require.NoError(t, err)
	require.Len(t, globs, 2)
	assert.True(t, globs[0].Match("gen/deep/file.py"))
	assert.True(t, globs[1].Match("pkg/sub/thing_pb2.py"))
	assert.False(t, globs[0].Match("src/file.py"))
}
