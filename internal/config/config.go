// Package config loads and saves the settings file and applies
// command-line overrides.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/blackarck/batchren/internal/naming"
	"github.com/blackarck/batchren/internal/picker"
)

const appDir = "batchren"

var (
	ErrInvalidMode  = errors.New("invalid naming mode")
	ErrInvalidLevel = errors.New("invalid log level")
)

// Config is the settings file plus flag-only fields.
type Config struct {
	LastDir   string      `toml:"last_dir"`
	Mode      naming.Mode `toml:"mode"`
	Filter    string      `toml:"filter"`     // extension, e.g. "png"
	LogLevel  string      `toml:"log_level"`  // debug | info | warn | error
	LogFile   string      `toml:"log_file"`   // optional JSON log sink
	ThumbSize int         `toml:"thumb_size"` // longest edge of previews, in pixels

	// Flag only.
	Path     string   `toml:"-"`
	Headless bool     `toml:"-"`
	Prefix   string   `toml:"-"`
	Files    []string `toml:"-"`
}

func Default() Config {
	return Config{
		Mode:      naming.Sequential,
		Filter:    "png",
		LogLevel:  "info",
		ThumbSize: 160,
	}
}

// DefaultPath is config.toml under the user's config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return filepath.Join(".", appDir+".toml")
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, appDir, "config.toml")
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	cfg.Path = path
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Default(), fmt.Errorf("read %s: %w", path, err)
	}
	cfg.Path = path
	return cfg, cfg.Validate()
}

// Save writes the persistent fields to cfg.Path.
func (c Config) Save() error {
	if c.Path == "" {
		return errors.New("config: no path to save to")
	}
	if err := os.MkdirAll(filepath.Dir(c.Path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(c.Path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("write %s: %w", c.Path, err)
	}
	return f.Close()
}

func (c Config) Validate() error {
	if c.Mode < naming.Sequential || c.Mode > naming.Random {
		return fmt.Errorf("%w: %d", ErrInvalidMode, int(c.Mode))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLevel, c.LogLevel)
	}
	if c.ThumbSize <= 0 {
		return fmt.Errorf("thumb_size must be positive, got %d", c.ThumbSize)
	}
	return nil
}

// FilterOrDefault resolves Filter against the fixed filter list.
func (c Config) FilterOrDefault() picker.Filter {
	f, _ := picker.Lookup(c.Filter)
	return f
}

/* -------------------- Flags -------------------- */

// ConfigPath scans args for -config without parsing anything else, so
// the file can be loaded before flags override it.
func ConfigPath(args []string) string {
	for i, a := range args {
		name := strings.TrimLeft(a, "-")
		if a == name {
			continue
		}
		if v, ok := strings.CutPrefix(name, "config="); ok {
			return v
		}
		if name == "config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return DefaultPath()
}

// ParseFlags applies command-line flags on top of cfg.
func ParseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("batchren", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: batchren [flags] [FILE...]\n\n")
		fmt.Fprintf(fs.Output(), "Without -headless a window opens. With -headless the given files are renamed in order.\n\n")
		fs.PrintDefaults()
	}

	mode := cfg.Mode.String()
	fs.StringVar(&cfg.Path, "config", cfg.Path, "settings file")
	fs.BoolVar(&cfg.Headless, "headless", false, "rename FILE arguments without opening a window")
	fs.StringVar(&cfg.Prefix, "prefix", "", "name prefix (required with -headless)")
	fs.StringVar(&mode, "mode", mode, "naming mode: sequential, timestamp or random")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "also write JSON logs to this file")

	if err := fs.Parse(args); err != nil {
		return err
	}
	m, err := naming.ParseMode(mode)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMode, err)
	}
	cfg.Mode = m
	cfg.Files = fs.Args()

	if cfg.Headless {
		if cfg.Prefix == "" {
			return errors.New("-prefix is required with -headless")
		}
		if len(cfg.Files) == 0 {
			return errors.New("-headless needs at least one FILE")
		}
	}
	return cfg.Validate()
}
