package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 4, cfg.MinSize)
	assert.Equal(t, 6, cfg.MaxSize)
	assert.Equal(t, 4, cfg.OriginTarget)
	assert.Equal(t, 1000, cfg.ResultCap)
	assert.Equal(t, 50, cfg.DisplayLimit)
	assert.InDelta(t, 60.0, cfg.TankRatioTarget, 1e-9)

	p := cfg.Anchor()
	require.NotNil(t, p)
	assert.Equal(t, "Targon", p.Name)
	assert.Equal(t, 1, p.Origins)
	assert.True(t, p.Eligible(&Unit{Traits: []string{"Targon"}}))
	assert.False(t, p.Eligible(&Unit{Traits: []string{"Targon", "Slayer"}}))
	assert.False(t, p.Eligible(&Unit{Traits: []string{"Void"}}))
}

func TestLoadConfig(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		cfg, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("overlay", func(t *testing.T) {
		path := writeFile(t, "solver.yaml", "max_size: 8\nresult_cap: 200\nanchor_origins: 2\n")
		cfg, err := LoadConfig(path)
		require.NoError(t, err)

		want := DefaultConfig()
		want.MaxSize = 8
		want.ResultCap = 200
		want.AnchorOrigins = 2
		assert.Equal(t, want, cfg)
		assert.Equal(t, 2, cfg.Anchor().Origins)
	})

	t.Run("empty anchor disables the anchor step", func(t *testing.T) {
		path := writeFile(t, "solver.yaml", "anchor_trait: \"\"\n")
		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Nil(t, cfg.Anchor())
	})

	t.Run("invalid values", func(t *testing.T) {
		path := writeFile(t, "solver.yaml", "min_size: 0\nmax_size: -1\nresult_cap: 0\n")
		_, err := LoadConfig(path)
		require.Error(t, err)
		assert.ErrorContains(t, err, "min_size must be >= 1")
		assert.ErrorContains(t, err, "max_size -1 is below min_size 0")
		assert.ErrorContains(t, err, "result_cap must be >= 1")
	})

	t.Run("bad yaml", func(t *testing.T) {
		path := writeFile(t, "solver.yaml", "max_size: [\n")
		_, err := LoadConfig(path)
		assert.ErrorContains(t, err, "parse config")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"negative origin target", func(c *Config) { c.OriginTarget = -1 }, "origin_target"},
		{"negative display limit", func(c *Config) { c.DisplayLimit = -5 }, "display_limit"},
		{"negative anchor origins", func(c *Config) { c.AnchorOrigins = -1 }, "anchor_origins"},
		{"max below min", func(c *Config) { c.MinSize, c.MaxSize = 5, 4 }, "max_size 4 is below min_size 5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}

	zero := DefaultConfig()
	zero.OriginTarget = 0
	zero.DisplayLimit = 0
	assert.NoError(t, zero.Validate())
}
