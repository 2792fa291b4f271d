package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Equal(t, Default(), cfg)
}

func TestLoadEmptyPathReturnsDefault(t *testing.T) {
	assert.Equal(t, Default(), Load(""))
}

func TestLoadMalformedFileReturnsDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("not = [valid toml"), 0644))

	cfg := Load(path)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesSubsetOfFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	contents := `
max_depth = 8
search_mode = "PVS"
enable_null_move_pruning = false
mvv_lva_weight = 5.0
opening_book_path = "book.bin"
mode = "LICHESS"
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))

	cfg := Load(path)
	assert.Equal(t, 8, cfg.MaxDepth)
	assert.Equal(t, PVS, cfg.SearchMode)
	assert.False(t, cfg.EnableNullMovePruning)
	assert.Equal(t, 5.0, cfg.MVVLVAWeight)
	assert.Equal(t, "book.bin", cfg.OpeningBookPath)
	assert.Equal(t, Lichess, cfg.Mode)

	// Untouched fields keep their defaults.
	assert.True(t, cfg.EnableFutilityPruning)
	assert.Equal(t, Composite, cfg.MoveOrderMode)
}
