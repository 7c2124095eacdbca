package factors

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LEIBExAC/CarbonNet-sub000/internal/carbon"
)

func TestBuiltinDefaults(t *testing.T) {
	table := BuiltinDefaults()
	require.NoError(t, table.Validate())

	// Documented reference values.
	v, ok := table.Lookup(carbon.CategoryTransportation, "car_petrol")
	require.True(t, ok)
	assert.Equal(t, 0.171, v)

	v, ok = table.Lookup(carbon.CategoryElectricity, "grid")
	require.True(t, ok)
	assert.Equal(t, 0.82, v)

	// Every detail-bearing category has a fallback so resolution can
	// never block on an unknown subcategory.
	for _, cat := range []carbon.Category{
		carbon.CategoryTransportation, carbon.CategoryElectricity,
		carbon.CategoryFood, carbon.CategoryWaste, carbon.CategoryWater,
	} {
		_, ok := table.Lookup(cat, "definitely-unknown")
		assert.True(t, ok, "category %s has no fallback", cat)
	}
}

func TestTableValidate(t *testing.T) {
	tests := []struct {
		name    string
		version string
		wantErr bool
	}{
		{name: "valid semver", version: "2.1.0", wantErr: false},
		{name: "valid with prerelease", version: "2.0.0-rc.1", wantErr: false},
		{name: "empty version", version: "", wantErr: true},
		{name: "not a version", version: "latest", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := &DefaultTable{Version: tt.version}
			err := table.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTableVersion)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadTable(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid table", func(t *testing.T) {
		path := filepath.Join(dir, "table.yaml")
		content := `
version: "2.0.0"
source: test-table
factors:
  electricity:
    grid: 0.5
category_fallback:
  electricity: 0.5
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		table, err := LoadTable(path)
		require.NoError(t, err)
		assert.Equal(t, "2.0.0", table.Version)

		v, ok := table.Lookup(carbon.CategoryElectricity, "grid")
		require.True(t, ok)
		assert.Equal(t, 0.5, v)
	})

	t.Run("invalid version rejected", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("version: nope\n"), 0o644))

		_, err := LoadTable(path)
		assert.ErrorIs(t, err, ErrInvalidTableVersion)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadTable(filepath.Join(dir, "absent.yaml"))
		assert.Error(t, err)
	})
}
