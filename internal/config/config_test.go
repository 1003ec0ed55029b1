package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"FIXUP_REWRITE_FILE", "FIXUP_TRUNCATE_FILE", "FIXUP_TRUNCATE_BOUNDARY", "FIXUP_LOG_LEVEL", "FIXUP_LOG_FILE"} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "src/components/Scheduler.jsx", cfg.Rewrite.File)
	assert.Equal(t, "src/pages/SettingsPage.jsx", cfg.Truncate.File)
	assert.Equal(t, 1002, cfg.Truncate.Boundary)
	assert.Empty(t, cfg.Rewrite.Replacements)
	require.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfig_SaveLoad(t *testing.T) {
	clearEnv(t)
	path := DefaultConfigPath(t.TempDir())

	cfg := DefaultConfig()
	cfg.Truncate.Boundary = 12
	cfg.Rewrite.Replacements = []Replacement{
		{From: "bg-white/5", To: "bg-[rgba(255,255,255,0.05)]"},
		{From: "bg-white/10", To: "bg-[rgba(255,255,255,0.1)]"},
	}
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("truncate:\n  boundary: 40\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Truncate.Boundary)
	assert.Equal(t, DefaultTruncateFile, cfg.Truncate.File)
	assert.Equal(t, DefaultRewriteFile, cfg.Rewrite.File)
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("truncate: [\n"), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestEnvOverrides(t *testing.T) {
	t.Run("paths and boundary", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("FIXUP_REWRITE_FILE", "src/components/Layout.jsx")
		t.Setenv("FIXUP_TRUNCATE_FILE", "src/pages/Other.jsx")
		t.Setenv("FIXUP_TRUNCATE_BOUNDARY", " 77 ")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "src/components/Layout.jsx", cfg.Rewrite.File)
		assert.Equal(t, "src/pages/Other.jsx", cfg.Truncate.File)
		assert.Equal(t, 77, cfg.Truncate.Boundary)
	})

	t.Run("unparsable boundary is ignored", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("FIXUP_TRUNCATE_BOUNDARY", "many")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, DefaultTruncateBoundary, cfg.Truncate.Boundary)
	})

	t.Run("logging", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("FIXUP_LOG_LEVEL", "debug")
		t.Setenv("FIXUP_LOG_FILE", "/tmp/fixup.log")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, "/tmp/fixup.log", cfg.Logging.ToLogging().File)
	})
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"negative boundary", func(c *Config) { c.Truncate.Boundary = -1 }, "truncate.boundary"},
		{"empty rewrite file", func(c *Config) { c.Rewrite.File = " " }, "rewrite.file"},
		{"empty truncate file", func(c *Config) { c.Truncate.File = "" }, "truncate.file"},
		{"empty replacement key", func(c *Config) {
			c.Rewrite.Replacements = []Replacement{{From: "", To: "x"}}
		}, "replacements[0]"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "invalid logging level"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tc.errMsg)
		})
	}

	t.Run("sections are independent", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Truncate.Boundary = -1
		assert.NoError(t, cfg.ValidateRewrite())
		assert.ErrorContains(t, cfg.ValidateTruncate(), "truncate.boundary")

		cfg = DefaultConfig()
		cfg.Rewrite.File = ""
		assert.NoError(t, cfg.ValidateTruncate())
		assert.ErrorContains(t, cfg.ValidateRewrite(), "rewrite.file")
	})

	t.Run("bad level fails both sections", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Logging.Level = "loud"
		assert.Error(t, cfg.ValidateRewrite())
		assert.Error(t, cfg.ValidateTruncate())
	})

	t.Run("zero boundary is valid", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Truncate.Boundary = 0
		assert.NoError(t, cfg.Validate())
	})
}
