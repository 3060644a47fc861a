package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Project-Sylos/Mimic/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

// TestLoadFromFile tests loading JSON and YAML configuration files
func TestLoadFromFile(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		body        string
		expectError bool
		validate    func(*testing.T, *types.Config)
	}{
		{
			name: "full JSON config",
			file: "config.json",
			body: `{
				"source": "seeds",
				"destination": "out",
				"copies": 3,
				"block_size": 4096,
				"progress": true,
				"manifest": {"enabled": true, "db_path": "/tmp/manifest.db"},
				"api": {"host": "0.0.0.0", "port": 9000},
				"logger": {"level": "debug", "encoding": "json"}
			}`,
			validate: func(t *testing.T, cfg *types.Config) {
				assert.Equal(t, "seeds", cfg.Source)
				assert.Equal(t, "out", cfg.Destination)
				assert.Equal(t, 3, cfg.Copies)
				assert.Equal(t, 4096, cfg.BlockSize)
				assert.True(t, cfg.Progress)
				assert.True(t, cfg.Manifest.Enabled)
				assert.Equal(t, "/tmp/manifest.db", cfg.Manifest.DBPath)
				assert.Equal(t, "0.0.0.0", cfg.API.Host)
				assert.Equal(t, 9000, cfg.API.Port)
				assert.Equal(t, "debug", cfg.Logger.Level)
				assert.Equal(t, "json", cfg.Logger.Encoding)
			},
		},
		{
			name: "partial YAML config keeps defaults",
			file: "config.yaml",
			body: "copies: 10\nfixture:\n  files: 4\n",
			validate: func(t *testing.T, cfg *types.Config) {
				def := DefaultConfig()
				assert.Equal(t, 10, cfg.Copies)
				assert.Equal(t, 4, cfg.Fixture.Files)
				assert.Equal(t, def.Source, cfg.Source)
				assert.Equal(t, def.BlockSize, cfg.BlockSize)
				assert.Equal(t, def.API.Port, cfg.API.Port)
				assert.True(t, filepath.IsAbs(cfg.Manifest.DBPath))
			},
		},
		{
			name:        "invalid JSON",
			file:        "broken.json",
			body:        `{"copies": `,
			expectError: true,
		},
		{
			name:        "negative copies",
			file:        "negative.json",
			body:        `{"copies": -1}`,
			expectError: true,
		},
		{
			name:        "block size too small",
			file:        "block.json",
			body:        `{"block_size": 1}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.file, tt.body)

			cfg, err := LoadFromFile(path)
			if tt.expectError {
				require.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nonexistent.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoadFromFileEnvOverride(t *testing.T) {
	t.Setenv("MIMIC_COPIES", "77")
	t.Setenv("MIMIC_MANIFEST_ENABLED", "true")

	path := writeConfig(t, "config.json", `{"copies": 3}`)
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 77, cfg.Copies)
	assert.True(t, cfg.Manifest.Enabled)
}

func TestFromViperDefaults(t *testing.T) {
	cfg, err := FromViper(NewViper())
	require.NoError(t, err)

	def := DefaultConfig()
	assert.Equal(t, def.Source, cfg.Source)
	assert.Equal(t, def.Destination, cfg.Destination)
	assert.Equal(t, def.Copies, cfg.Copies)
	assert.Equal(t, def.BlockSize, cfg.BlockSize)
	assert.Equal(t, def.Fixture, cfg.Fixture)
}

// TestValidate tests configuration validation
func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.Config)
		valid  bool
	}{
		{name: "defaults", mutate: func(*types.Config) {}, valid: true},
		{name: "zero copies", mutate: func(c *types.Config) { c.Copies = 0 }, valid: true},
		{name: "negative copies", mutate: func(c *types.Config) { c.Copies = -5 }},
		{name: "empty source", mutate: func(c *types.Config) { c.Source = "" }},
		{name: "empty destination", mutate: func(c *types.Config) { c.Destination = "" }},
		{name: "zero block size", mutate: func(c *types.Config) { c.BlockSize = 0 }},
		{name: "minimal block size", mutate: func(c *types.Config) { c.BlockSize = 2 }, valid: true},
		{name: "manifest without path", mutate: func(c *types.Config) {
			c.Manifest.Enabled = true
			c.Manifest.DBPath = ""
		}},
		{name: "port out of range", mutate: func(c *types.Config) { c.API.Port = 70000 }},
		{name: "unknown log level", mutate: func(c *types.Config) { c.Logger.Level = "loud" }},
		{name: "unknown encoding", mutate: func(c *types.Config) { c.Logger.Encoding = "xml" }},
		{name: "inverted fixture sizes", mutate: func(c *types.Config) { c.Fixture.MinSize = 10; c.Fixture.MaxSize = 1 }},
		{name: "negative fixture depth", mutate: func(c *types.Config) { c.Fixture.MaxDepth = -1 }},
		{name: "negative sparse size", mutate: func(c *types.Config) { c.Fixture.SparseSize = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := Validate(&cfg)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
			}
		})
	}

	assert.ErrorIs(t, Validate(nil), ErrInvalidConfig)
}

func TestSaveToFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Copies = 12
	cfg.Manifest.DBPath = "/var/tmp/mimic.db"

	path := filepath.Join(t.TempDir(), "saved.json")
	require.NoError(t, SaveToFile(&cfg, path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, *loaded)
}
