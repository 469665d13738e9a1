// Package config loads settings from TOML files, the environment and flags.
package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Defaults.
const (
	DefaultTheme     = "classic"
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"

	ProjectConfigFile = "todo.toml"
)

// Config is the runtime configuration.
type Config struct {
	Theme     string `toml:"theme"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
	LogFile   string `toml:"log_file"`
	Seed      string `toml:"seed"`
	Progress  bool   `toml:"progress"`

	// ConfigFile is set from --config and never read from TOML.
	ConfigFile string `toml:"-"`
}

func setDefaults(cfg *Config) {
	cfg.Theme = DefaultTheme
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.Progress = true
}

// Load resolves configuration in priority order:
// 1. Defaults
// 2. User config file (<user config dir>/todo/config.toml)
// 3. Project config file (./todo.toml), or the --config file when given
// 4. Environment variables (TODO_*)
// 5. Flags
//
// Flags are registered on fs and parsed from args; the remaining positional
// args are returned.
func Load(fs *flag.FlagSet, args []string) (*Config, []string, error) {
	cfg := &Config{}
	setDefaults(cfg)

	var flagCfg Config
	registerFlags(fs, &flagCfg)
	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("parsing flags: %w", err)
	}

	if p := userConfigFile(); p != "" {
		if err := loadFile(cfg, p); err != nil {
			return nil, nil, fmt.Errorf("loading user config file %s: %w", p, err)
		}
	}

	if flagCfg.ConfigFile != "" {
		if err := loadFile(cfg, flagCfg.ConfigFile); err != nil {
			return nil, nil, fmt.Errorf("loading config file %s: %w", flagCfg.ConfigFile, err)
		}
		cfg.ConfigFile = flagCfg.ConfigFile
	} else if _, err := os.Stat(ProjectConfigFile); err == nil {
		if err := loadFile(cfg, ProjectConfigFile); err != nil {
			return nil, nil, fmt.Errorf("loading project config file %s: %w", ProjectConfigFile, err)
		}
	}

	loadFromEnv(cfg)
	applyFlags(cfg, fs, &flagCfg)

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, fs.Args(), nil
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Theme) {
	case "classic", "neon", "mono":
	default:
		return fmt.Errorf("invalid theme %q (want classic, neon or mono)", c.Theme)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("invalid log format %q (want text, json or logfmt)", c.LogFormat)
	}
	return nil
}

func registerFlags(fs *flag.FlagSet, into *Config) {
	fs.StringVar(&into.ConfigFile, "config", "", "path to a TOML config file")
	fs.StringVar(&into.Seed, "seed", "", "JSON file with todos to start from")
	fs.StringVar(&into.Theme, "theme", "", "color theme: classic, neon or mono")
	fs.StringVar(&into.LogLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&into.LogFile, "log-file", "", "write logs to this file instead of stderr")
	fs.BoolVar(&into.Progress, "progress", true, "show the progress bar")
}

// applyFlags copies only the flags that were set on the command line.
func applyFlags(cfg *Config, fs *flag.FlagSet, f *Config) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "seed":
			cfg.Seed = f.Seed
		case "theme":
			cfg.Theme = f.Theme
		case "log-level":
			cfg.LogLevel = f.LogLevel
		case "log-file":
			cfg.LogFile = f.LogFile
		case "progress":
			cfg.Progress = f.Progress
		}
	})
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TODO_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("TODO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TODO_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("TODO_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("TODO_SEED"); v != "" {
		cfg.Seed = v
	}
	if v := os.Getenv("TODO_PROGRESS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Progress = b
		}
	}
}

func loadFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return fmt.Errorf("unknown key %q", undec[0].String())
	}
	return nil
}

func userConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	p := filepath.Join(dir, "todo", "config.toml")
	if _, err := os.Stat(p); err != nil {
		return ""
	}
	return p
}
