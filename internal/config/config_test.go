package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps Load from picking up a config file from the developer's
// home or working directory.
func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	testChdir(t, dir)
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	v := viper.New()
	require.NoError(t, Load(v))
	cfg, err := Decode(v)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "./input", cfg.Batch.InputDir)
	assert.Equal(t, DefaultPatterns, cfg.Batch.Patterns)
	assert.Equal(t, 4, cfg.Batch.MaxConcurrency)
	assert.True(t, cfg.Batch.Summary)
	assert.False(t, cfg.Batch.SummaryXLSX)
	assert.Equal(t, 60, cfg.Wrap.Width)
	assert.NoError(t, Validate(cfg))
}

func TestLoadFileAndEnv(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "custom.yaml")
	content := strings.Join([]string{
		"log_level: debug",
		"batch:",
		"  output_dir: /tmp/out",
		"  max_concurrency: 2",
		"wrap:",
		"  width: 80",
		"",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("FASTA2VIENNA_WRAP_WIDTH", "70")
	t.Setenv("FASTA2VIENNA_BATCH_PATTERNS", "*.fa, *.seq")

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, Load(v))
	cfg, err := Decode(v)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/out", cfg.Batch.OutputDir)
	assert.Equal(t, 2, cfg.Batch.MaxConcurrency)
	assert.Equal(t, 70, cfg.Wrap.Width, "env overrides file")
	assert.Equal(t, []string{"*.fa", "*.seq"}, cfg.Batch.Patterns)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	isolate(t)

	v := viper.New()
	v.SetConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, Load(v))
}

func TestLoadMalformedFile(t *testing.T) {
	isolate(t)

	require.NoError(t, os.WriteFile(AppName+".yaml", []byte("batch: [unclosed\n"), 0o600))
	v := viper.New()
	assert.Error(t, Load(v))
}

func TestValidateInvalid(t *testing.T) {
	cfg := &Config{
		LogLevel: "loud",
		Batch: BatchConfig{
			Patterns:      []string{"[bad"},
			ArchiveInputs: true,
		},
	}

	err := Validate(cfg)
	require.Error(t, err)

	msg := err.Error()
	for _, want := range []string{
		`log_level "loud" is not a valid level`,
		"wrap.width must be greater than 0",
		"batch.max_concurrency must be greater than 0",
		`batch.patterns entry "[bad" is malformed`,
		"batch.output_name_format is required",
		"batch.archive_dir is required when archive_inputs is set",
	} {
		assert.Contains(t, msg, want)
	}
}

func TestRenderDefaultYAMLRoundTrip(t *testing.T) {
	isolate(t)

	out, err := RenderDefaultYAML()
	require.NoError(t, err)
	assert.Contains(t, out, "# Glob patterns matched against input file names")
	assert.Contains(t, out, "output_name_format: '{original}.vienna.fa'")

	path := filepath.Join(t.TempDir(), "generated.yaml")
	require.NoError(t, os.WriteFile(path, []byte(out), 0o600))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	for _, o := range GetConfigOptions() {
		assert.True(t, v.InConfig(o.Key), "generated config misses %s", o.Key)
	}
	assert.Equal(t, 60, v.GetInt("wrap.width"))
	assert.Equal(t, DefaultPatterns, v.GetStringSlice("batch.patterns"))
}

// testChdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains: it
// changes the working directory for the duration of the test and restores
// it on cleanup.
func testChdir(t *testing.T, dir string) {
	t.Helper()
	oldwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Setenv("PWD", dir)
	t.Cleanup(func() {
		if err := os.Chdir(oldwd); err != nil {
			t.Fatalf("restoring working directory: %v", err)
		}
	})
}
