// Package config loads the run parameters for track-assets.
//
// Paths to input files come from a config.properties INI file. The remaining
// parameters (output directory, base origin, default image extension and HTTP
// settings) are read from the environment with defaults, once, before any work
// starts. The resulting Config is treated as immutable.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/ini.v1"
)

const (
	DefaultPath = "config.properties"

	SectionSettings = "SETTINGS"
	KeyTrackmaps    = "trackmaps"
	KeyFolderPath   = "folder_path"
	KeyCSVPath      = "csv_path"
	KeyColumnCurr   = "column_current"
	KeyColumnNew    = "column_new"
)

var (
	// ErrConfigNotFound is returned when the properties file does not exist
	ErrConfigNotFound = errors.New("config file not found")

	// ErrMissingSetting is returned when a required key is absent
	ErrMissingSetting = errors.New("missing required setting")
)

// Config holds the parameters of a run
type Config struct {
	// Manifest is the track manifest CSV ([SETTINGS] trackmaps)
	Manifest string `validate:"required"`

	// ClassFolder is the asset folder sorted by sort-classes ([SETTINGS] folder_path)
	ClassFolder string

	Rename RenameConfig

	OutputDir   string        `env:"TRACK_ASSETS_OUTPUT_DIR" env-default:"tracks" validate:"required"`
	BaseOrigin  string        `env:"TRACK_ASSETS_BASE_ORIGIN" env-default:"https://automobilista-2.fandom.com" validate:"required,url"`
	DefaultExt  string        `env:"TRACK_ASSETS_DEFAULT_EXT" env-default:".png" validate:"required,startswith=."`
	NameColumn  string        `env:"TRACK_ASSETS_NAME_COLUMN" env-default:"Track Name" validate:"required"`
	URLColumn   string        `env:"TRACK_ASSETS_URL_COLUMN" env-default:"Hyperlink" validate:"required"`
	UserAgent   string        `env:"TRACK_ASSETS_USER_AGENT" env-default:"track-assets/1.0 (github.com/pfrederiksen/track-assets)"`
	HTTPTimeout time.Duration `env:"TRACK_ASSETS_HTTP_TIMEOUT" env-default:"0s"`
}

// RenameConfig holds the settings of the rename utility. They live in the
// file's default section.
type RenameConfig struct {
	CSVPath       string
	Folder        string
	CurrentColumn string
	NewColumn     string
}

// Options override values from the file
type Options struct {
	Manifest  string
	OutputDir string
}

// Load reads the properties file at path, applies environment overrides and
// defaults, then validates the result. A missing file or a missing manifest
// path is a fatal error.
func Load(path string, opts Options) (*Config, error) {
	cfg, err := read(path, opts)
	if err != nil {
		return nil, err
	}

	if cfg.Manifest == "" {
		return nil, fmt.Errorf("%w: '%s' property not found in [%s] section of %s",
			ErrMissingSetting, KeyTrackmaps, SectionSettings, path)
	}

	if err := finish(cfg, opts); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadUtility reads the properties file like Load but does not require a
// manifest. It is used by the asset utilities.
func LoadUtility(path string) (*Config, error) {
	cfg, err := read(path, Options{})
	if err != nil {
		return nil, err
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	return cfg, nil
}

func read(path string, opts Options) (*Config, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}

	if _, err := os.Stat(expanded); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	file, err := ini.LoadSources(ini.LoadOptions{InsensitiveKeys: true}, expanded)
	if err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	settings := file.Section(SectionSettings)
	defaults := file.Section(ini.DefaultSection)

	cfg := &Config{
		Manifest:    settings.Key(KeyTrackmaps).String(),
		ClassFolder: settings.Key(KeyFolderPath).String(),
		Rename: RenameConfig{
			CSVPath:       defaults.Key(KeyCSVPath).String(),
			Folder:        defaults.Key(KeyFolderPath).String(),
			CurrentColumn: defaults.Key(KeyColumnCurr).String(),
			NewColumn:     defaults.Key(KeyColumnNew).String(),
		},
	}

	if opts.Manifest != "" {
		cfg.Manifest = opts.Manifest
	}

	return cfg, nil
}

func finish(cfg *Config, opts Options) error {
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}

	if opts.OutputDir != "" {
		cfg.OutputDir = opts.OutputDir
	}

	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return nil
}
