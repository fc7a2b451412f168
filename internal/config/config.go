package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultLogLevel       = "warn"
	DefaultSoonDays       = 7

	appDirName = "timely"
)

type Keymap struct {
	Quit     string `toml:"quit"`
	Add      string `toml:"add"`
	Up       string `toml:"up"`
	Down     string `toml:"down"`
	Detail   string `toml:"detail"`
	Complete string `toml:"complete"`
	Confirm  string `toml:"confirm"`
	Cancel   string `toml:"cancel"`
	Toggle   string `toml:"toggle"`
}

type Config struct {
	LogLevel string `toml:"log_level"`
	LogFile  string `toml:"log_file"`
	SoonDays int    `toml:"soon_days"`
	Keys     Keymap `toml:"keys"`
}

// ResolveConfigPath returns the per-user config file location, falling back to
// the working directory when no user config dir is known.
func ResolveConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, appDirName, DefaultConfigFileName)
}

// Load reads path over the defaults. A missing file is not an error and is
// not created.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	fillDefaults(&cfg)
	return cfg, nil
}

// Encode renders cfg as TOML, e.g. to print a starter config.
func Encode(cfg Config) ([]byte, error) {
	return toml.Marshal(cfg)
}

func Default() Config {
	return Config{
		LogLevel: DefaultLogLevel,
		SoonDays: DefaultSoonDays,
		Keys:     defaultKeymap(),
	}
}

func defaultKeymap() Keymap {
	return Keymap{
		Quit:     "q",
		Add:      "a",
		Up:       "k",
		Down:     "j",
		Detail:   "enter",
		Complete: "c",
		Confirm:  "enter",
		Cancel:   "esc",
		Toggle:   " ",
	}
}

func fillDefaults(cfg *Config) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.SoonDays <= 0 {
		cfg.SoonDays = DefaultSoonDays
	}
	def := defaultKeymap()
	fill := func(v *string, d string) {
		if *v == "" {
			*v = d
		}
	}
	fill(&cfg.Keys.Quit, def.Quit)
	fill(&cfg.Keys.Add, def.Add)
	fill(&cfg.Keys.Up, def.Up)
	fill(&cfg.Keys.Down, def.Down)
	fill(&cfg.Keys.Detail, def.Detail)
	fill(&cfg.Keys.Complete, def.Complete)
	fill(&cfg.Keys.Confirm, def.Confirm)
	fill(&cfg.Keys.Cancel, def.Cancel)
	fill(&cfg.Keys.Toggle, def.Toggle)
}
