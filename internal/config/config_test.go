package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericlevine/barcodefont"
	"github.com/ericlevine/barcodefont/font"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.Output.Format)
}

func TestValidateRejects(t *testing.T) {
	tests := map[string]func(*Config){
		"log level": func(c *Config) { c.LogLevel = "trace" },
		"format":    func(c *Config) { c.Output.Format = "csv" },
		"symbology": func(c *Config) { c.Encoding.Symbology = "qr" },
		"code set":  func(c *Config) { c.Encoding.CodeSet = "D" },
		"font":      func(c *Config) { c.Encoding.Font = "helvetica" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestEncodingRequest(t *testing.T) {
	enc := EncodingConfig{Symbology: "gs1-128", CodeSet: "C", Font: "private-use", ExtendedLatin1: true}
	req, err := enc.Request("(01)09501101530003")
	require.NoError(t, err)
	assert.Equal(t, barcodefont.SymbologyGS1128, req.Symbology)
	assert.Equal(t, barcodefont.CodeSetC, req.CodeSet)
	assert.Same(t, font.PrivateUse, req.Font)
	assert.True(t, req.ExtendedLatin1)
	assert.Equal(t, "(01)09501101530003", req.Text)

	_, err = EncodingConfig{Symbology: "upc"}.Request("x")
	assert.Error(t, err)
}

func TestLoadWithNoConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := NewLoader(nil).Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "barcodefont.yaml")
	content := `log_level: debug
encoding:
  symbology: isbt-128
  code_set: b
output:
  format: yaml
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	loader := NewLoader(nil)
	cfg, err := loader.LoadWithFile(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "isbt-128", cfg.Encoding.Symbology)
	assert.Equal(t, "b", cfg.Encoding.CodeSet)
	assert.Equal(t, font.Default.Name(), cfg.Encoding.Font)
	assert.Equal(t, "yaml", cfg.Output.Format)
	assert.Equal(t, path, loader.GetConfigFileUsed())
}

func TestLoadWithMissingFile(t *testing.T) {
	_, err := NewLoader(nil).LoadWithFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "barcodefont.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  format: pdf\n"), 0o600))
	_, err := NewLoader(nil).LoadWithFile(path)
	assert.ErrorContains(t, err, "invalid output format")
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("BARCODEFONT_ENCODING_SYMBOLOGY", "gs1-128")
	t.Setenv("BARCODEFONT_LOG_LEVEL", "warn")

	cfg, err := NewLoader(nil).Load()
	require.NoError(t, err)
	assert.Equal(t, "gs1-128", cfg.Encoding.Symbology)
	assert.Equal(t, "warn", cfg.LogLevel)
}
