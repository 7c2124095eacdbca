package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("empty path returns defaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("missing file returns defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(dir, "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("partial file fills unset fields", func(t *testing.T) {
		path := filepath.Join(dir, "partial.yaml")
		content := `
logging:
  level: debug
export:
  output_dir: /tmp/artifacts
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, "/tmp/artifacts", cfg.Export.OutputDir)
		assert.Equal(t, DefaultOutputFormat, cfg.Export.DefaultFormat)
		assert.Equal(t, DefaultBrand, cfg.Brand)
	})

	t.Run("full file", func(t *testing.T) {
		path := filepath.Join(dir, "full.yaml")
		content := `
logging:
  level: warn
export:
  default_format: pdf
  output_dir: out
factor_table: factors.yaml
brand: GreenCampus
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "warn", cfg.Logging.Level)
		assert.Equal(t, "pdf", cfg.Export.DefaultFormat)
		assert.Equal(t, "out", cfg.Export.OutputDir)
		assert.Equal(t, "factors.yaml", cfg.FactorTablePath)
		assert.Equal(t, "GreenCampus", cfg.Brand)
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("logging: [not a map"), 0o644))

		_, err := Load(path)
		assert.Error(t, err)
	})
}
