package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the user config dir and cwd at empty temp dirs.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, k := range []string{"TODO_THEME", "TODO_LOG_LEVEL", "TODO_LOG_FORMAT", "TODO_LOG_FILE", "TODO_SEED", "TODO_PROGRESS"} {
		t.Setenv(k, "")
	}
	wd := t.TempDir()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(wd))
	t.Cleanup(func() { _ = os.Chdir(orig) })
	return home
}

func load(t *testing.T, args ...string) (*Config, []string, error) {
	t.Helper()
	return Load(flag.NewFlagSet("todo", flag.ContinueOnError), args)
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestDefaults(t *testing.T) {
	isolate(t)
	cfg, rest, err := load(t, "run", "script.txt")
	require.NoError(t, err)
	assert.Equal(t, DefaultTheme, cfg.Theme)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.True(t, cfg.Progress)
	assert.Equal(t, []string{"run", "script.txt"}, rest)
}

func TestPriority(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".config", "todo", "config.toml"), "theme = \"neon\"\nlog_level = \"info\"\nseed = \"user.json\"\n")
	writeFile(t, ProjectConfigFile, "log_level = \"error\"\nprogress = false\n")
	t.Setenv("TODO_SEED", "env.json")

	cfg, _, err := load(t, "--theme", "mono")
	require.NoError(t, err)
	assert.Equal(t, "mono", cfg.Theme)
	assert.Equal(t, "env.json", cfg.Seed)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.False(t, cfg.Progress)
	assert.Equal(t, DefaultLogFormat, cfg.LogFormat)
}

func TestExplicitConfigFileReplacesProjectFile(t *testing.T) {
	isolate(t)
	writeFile(t, ProjectConfigFile, "theme = \"neon\"\n")
	writeFile(t, "other.toml", "log_format = \"json\"\n")

	cfg, _, err := load(t, "--config", "other.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultTheme, cfg.Theme)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "other.toml", cfg.ConfigFile)
}

func TestErrors(t *testing.T) {
	isolate(t)

	writeFile(t, "bad.toml", "theme = \n")
	_, _, err := load(t, "--config", "bad.toml")
	assert.Error(t, err)

	writeFile(t, "unknown.toml", "colour = \"red\"\n")
	_, _, err = load(t, "--config", "unknown.toml")
	assert.ErrorContains(t, err, "unknown key")

	_, _, err = load(t, "--theme", "plaid")
	assert.ErrorContains(t, err, "invalid theme")

	_, _, err = load(t, "--config", "missing.toml")
	assert.Error(t, err)
}
