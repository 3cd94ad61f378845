// Package config loads the settings that locate a product's directory
// layout.
//
// Values come from three sources, in order of precedence:
//
//  1. environment variables with the VFS_ prefix (VFS_COMPANY, VFS_PRODUCT, ...)
//  2. an optional YAML layout file named by VFS_LAYOUT_FILE
//  3. built-in defaults and directories reported by the operating system
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/kelseyhightower/envconfig"

	"github.com/jmgilman/go/vfs/core"
	"github.com/jmgilman/go/vfs/errors"
	"github.com/jmgilman/go/vfs/pathutil"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "VFS"

// Defaults for the directory names below the root.
const (
	DefaultEngineDir  = "engine"
	DefaultProjectDir = "game"
	DefaultRootAscent = "../../../"
)

// Config holds layout configuration.
type Config struct {
	Company string `envconfig:"COMPANY" yaml:"company"`
	Product string `envconfig:"PRODUCT" yaml:"product"`

	// BaseDir is the directory of the running executable.
	BaseDir         string `envconfig:"BASE_DIR" yaml:"base_dir"`
	UserSettingsDir string `envconfig:"USER_SETTINGS_DIR" yaml:"user_settings_dir"`
	CommonDataDir   string `envconfig:"COMMON_DATA_DIR" yaml:"common_data_dir"`

	EngineDir  string `envconfig:"ENGINE_DIR" yaml:"engine_dir"`
	ProjectDir string `envconfig:"PROJECT_DIR" yaml:"project_dir"`

	// RootAscent is appended to BaseDir to reach the root directory.
	RootAscent string `envconfig:"ROOT_ASCENT" yaml:"root_ascent"`

	LogLevel  string `envconfig:"LOG_LEVEL" yaml:"log_level"`
	LogFormat string `envconfig:"LOG_FORMAT" yaml:"log_format"`

	LayoutFile string `envconfig:"LAYOUT_FILE" yaml:"-"`
}

// Directory lookups reported by the operating system. Replaced in tests.
var (
	executable    = os.Executable
	userConfigDir = os.UserConfigDir
	commonDataDir = defaultCommonDataDir
)

// Load reads the environment, merges the layout file through b when one is
// configured and fills the remaining fields from defaults and the
// operating system. The result is validated.
func Load(b core.Backend) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidInput, "failed to load config from environment")
	}

	if cfg.LayoutFile != "" {
		file, err := LoadFile(b, cfg.LayoutFile)
		if err != nil {
			return nil, err
		}
		cfg.Merge(file)
	}

	if err := cfg.Resolve(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a configuration with the built-in directory names and no
// product identity.
func Default() *Config {
	return &Config{
		EngineDir:  DefaultEngineDir,
		ProjectDir: DefaultProjectDir,
		RootAscent: DefaultRootAscent,
	}
}

// Merge copies every non-empty field of other into an empty field of c.
func (c *Config) Merge(other *Config) {
	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}

	fill(&c.Company, other.Company)
	fill(&c.Product, other.Product)
	fill(&c.BaseDir, other.BaseDir)
	fill(&c.UserSettingsDir, other.UserSettingsDir)
	fill(&c.CommonDataDir, other.CommonDataDir)
	fill(&c.EngineDir, other.EngineDir)
	fill(&c.ProjectDir, other.ProjectDir)
	fill(&c.RootAscent, other.RootAscent)
	fill(&c.LogLevel, other.LogLevel)
	fill(&c.LogFormat, other.LogFormat)
}

// Resolve fills empty fields with defaults and operating system
// directories.
func (c *Config) Resolve() error {
	c.Merge(Default())

	if c.BaseDir == "" {
		exe, err := executable()
		if err != nil {
			return errors.Wrap(err, errors.CodeFailure, "failed to locate executable")
		}
		c.BaseDir = filepath.Dir(exe)
	}
	if c.UserSettingsDir == "" {
		dir, err := userConfigDir()
		if err != nil {
			return errors.Wrap(err, errors.CodeFailure, "failed to locate user settings directory")
		}
		c.UserSettingsDir = dir
	}
	if c.CommonDataDir == "" {
		dir, err := commonDataDir()
		if err != nil {
			return errors.Wrap(err, errors.CodeFailure, "failed to locate common data directory")
		}
		c.CommonDataDir = dir
	}

	c.BaseDir = pathutil.AddSeparator(pathutil.Normalize(c.BaseDir))
	return nil
}

// Validate checks that the product identity is set.
func (c *Config) Validate() error {
	if c.Company == "" {
		return errors.WithContext(errors.New(errors.CodeInvalidInput, "company is required"), "env", EnvPrefix+"_COMPANY")
	}
	if c.Product == "" {
		return errors.WithContext(errors.New(errors.CodeInvalidInput, "product is required"), "env", EnvPrefix+"_PRODUCT")
	}
	return nil
}

// defaultCommonDataDir returns the machine-wide application data directory.
// Linux has none shared by convention, so the user configuration directory
// is used.
func defaultCommonDataDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if dir := os.Getenv("ProgramData"); dir != "" {
			return dir, nil
		}
		return "", errors.New(errors.CodeNotFound, "%ProgramData% is not set")
	case "darwin":
		return "/Library/Application Support", nil
	default:
		return os.UserConfigDir()
	}
}
