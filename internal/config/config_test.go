package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.properties")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
csv_path = renames.csv
folder_path = assets/cars
column_current = PNG File Name
column_new = Gallery Item Title

[SETTINGS]
trackmaps = data/trackmaps.csv
folder_path = assets/classes
`)

	cfg, err := Load(path, Options{})
	require.NoError(t, err)

	assert.Equal(t, "data/trackmaps.csv", cfg.Manifest)
	assert.Equal(t, "assets/classes", cfg.ClassFolder)
	assert.Equal(t, RenameConfig{
		CSVPath:       "renames.csv",
		Folder:        "assets/cars",
		CurrentColumn: "PNG File Name",
		NewColumn:     "Gallery Item Title",
	}, cfg.Rename)

	assert.Equal(t, "tracks", cfg.OutputDir)
	assert.Equal(t, "https://automobilista-2.fandom.com", cfg.BaseOrigin)
	assert.Equal(t, ".png", cfg.DefaultExt)
	assert.Equal(t, "Track Name", cfg.NameColumn)
	assert.Equal(t, "Hyperlink", cfg.URLColumn)
	assert.Equal(t, time.Duration(0), cfg.HTTPTimeout)
	assert.Contains(t, cfg.UserAgent, "track-assets")
}

func TestLoad_CaseInsensitiveKeys(t *testing.T) {
	path := writeConfig(t, "[SETTINGS]\nTrackMaps = tracks.csv\n")

	cfg, err := Load(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, "tracks.csv", cfg.Manifest)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, "[SETTINGS]\ntrackmaps = tracks.csv\n")

	t.Setenv("TRACK_ASSETS_OUTPUT_DIR", "out/tracks")
	t.Setenv("TRACK_ASSETS_BASE_ORIGIN", "https://wiki.example.org")
	t.Setenv("TRACK_ASSETS_DEFAULT_EXT", ".jpg")
	t.Setenv("TRACK_ASSETS_HTTP_TIMEOUT", "45s")

	cfg, err := Load(path, Options{})
	require.NoError(t, err)

	assert.Equal(t, "out/tracks", cfg.OutputDir)
	assert.Equal(t, "https://wiki.example.org", cfg.BaseOrigin)
	assert.Equal(t, ".jpg", cfg.DefaultExt)
	assert.Equal(t, 45*time.Second, cfg.HTTPTimeout)
}

func TestLoad_OptionsOverride(t *testing.T) {
	path := writeConfig(t, "[SETTINGS]\ntrackmaps = tracks.csv\n")
	t.Setenv("TRACK_ASSETS_OUTPUT_DIR", "from-env")

	cfg, err := Load(path, Options{Manifest: "other.csv", OutputDir: "from-flag"})
	require.NoError(t, err)

	assert.Equal(t, "other.csv", cfg.Manifest)
	assert.Equal(t, "from-flag", cfg.OutputDir)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "config.properties"), Options{})
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestLoad_MissingTrackmaps(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no settings section", "trackmaps = tracks.csv\n"},
		{"no trackmaps key", "[SETTINGS]\nfolder_path = cars\n"},
		{"empty trackmaps value", "[SETTINGS]\ntrackmaps =\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content), Options{})
			require.ErrorIs(t, err, ErrMissingSetting)
			assert.Contains(t, err.Error(), "'trackmaps' property not found in [SETTINGS] section")
		})
	}
}

func TestLoad_ManifestFromOptionsOnly(t *testing.T) {
	cfg, err := Load(writeConfig(t, "[SETTINGS]\n"), Options{Manifest: "tracks.csv"})
	require.NoError(t, err)
	assert.Equal(t, "tracks.csv", cfg.Manifest)
}

func TestLoad_InvalidValues(t *testing.T) {
	path := writeConfig(t, "[SETTINGS]\ntrackmaps = tracks.csv\n")

	tests := []struct {
		name string
		env  string
		val  string
	}{
		{"base origin not a URL", "TRACK_ASSETS_BASE_ORIGIN", "not a url"},
		{"extension without dot", "TRACK_ASSETS_DEFAULT_EXT", "png"},
		{"unparsable timeout", "TRACK_ASSETS_HTTP_TIMEOUT", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.env, tt.val)
			_, err := Load(path, Options{})
			assert.Error(t, err)
		})
	}
}

func TestLoadUtility_NoManifestRequired(t *testing.T) {
	cfg, err := LoadUtility(writeConfig(t, "[SETTINGS]\nfolder_path = cars\n"))
	require.NoError(t, err)
	assert.Equal(t, "cars", cfg.ClassFolder)
	assert.Empty(t, cfg.Manifest)
}
