// Package config handles loading and parsing application configuration.
// It supports two sources for the file path (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// Every key can also be overridden by its env:"..." variable.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/aanand-mishra/college-console/internal/notify"
	"github.com/aanand-mishra/college-console/internal/registry"
)

// Config is the root configuration structure.
//
// env-required:"true" means the app refuses to start if that value is
// missing — better to crash at boot than to silently use a wrong default.
type Config struct {
	// Env controls log format and verbosity: "dev", "staging", "prod".
	Env string `yaml:"env" env:"ENV" env-required:"true"`

	// JournalPath is the SQLite DSN of the activity journal. It must be an
	// in-memory database; nothing the console holds survives a restart.
	JournalPath string `yaml:"journal_path" env:"JOURNAL_PATH" env-default:":memory:"`

	HTTPServer    `yaml:"http_server"`
	Registry      Registry      `yaml:"registry"`
	Notifications Notifications `yaml:"notifications"`
}

// HTTPServer holds settings specific to the HTTP server.
type HTTPServer struct {
	Addr            string        `yaml:"address" env:"HTTP_SERVER_ADDR" env-required:"true"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_SERVER_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_SERVER_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"HTTP_SERVER_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SERVER_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

// Registry holds settings shared by the three entity registries.
type Registry struct {
	// IDPolicy is "length" (id = count + 1) or "sequence" (never reused).
	IDPolicy string `yaml:"id_policy" env:"REGISTRY_ID_POLICY" env-default:"length"`
}

// Notifications holds the toast settings handed to every notification.
type Notifications struct {
	// No env-default on fields whose zero value is meaningful: cleanenv
	// applies a default to any zero field, so "0s" or "false" in the file
	// would be overwritten. Load seeds them before reading instead.

	// AutoHideAfter of 0 keeps notifications until dismissed.
	AutoHideAfter   time.Duration `yaml:"auto_hide_after" env:"NOTIFY_AUTO_HIDE_AFTER"`
	Position        string        `yaml:"position" env:"NOTIFY_POSITION" env-default:"top-right"`
	HideProgressBar bool          `yaml:"hide_progress_bar" env:"NOTIFY_HIDE_PROGRESS_BAR" env-default:"false"`

	DismissOnClick bool `yaml:"dismiss_on_click" env:"NOTIFY_DISMISS_ON_CLICK"`
	PauseOnHover   bool `yaml:"pause_on_hover" env:"NOTIFY_PAUSE_ON_HOVER"`
	Draggable      bool `yaml:"draggable" env:"NOTIFY_DRAGGABLE"`

	// FeedSize caps how many notifications the feed keeps. Must be >= 1.
	FeedSize int `yaml:"feed_size" env:"NOTIFY_FEED_SIZE"`

	// UnifySuccess makes course and faculty adds announce success too.
	// Off by default: only student adds do.
	UnifySuccess bool `yaml:"unify_success" env:"NOTIFY_UNIFY_SUCCESS" env-default:"false"`
}

// Options converts the settings into notify.Options.
func (n Notifications) Options() notify.Options {
	return notify.Options{
		AutoHideAfter:   n.AutoHideAfter,
		Position:        n.Position,
		HideProgressBar: n.HideProgressBar,
		DismissOnClick:  n.DismissOnClick,
		PauseOnHover:    n.PauseOnHover,
		Draggable:       n.Draggable,
	}
}

// Load reads and validates the config file at path.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	// cleanenv.ReadConfig reads the YAML file, applies env overrides and
	// env-default values, and enforces env-required.
	cfg := Config{
		Notifications: Notifications{
			AutoHideAfter:  3 * time.Second,
			DismissOnClick: true,
			PauseOnHover:   true,
			Draggable:      true,
			FeedSize:       50,
		},
	}
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	if _, err := registry.ParseIDPolicy(cfg.Registry.IDPolicy); err != nil {
		return nil, fmt.Errorf("invalid registry.id_policy: %w", err)
	}
	if cfg.Notifications.FeedSize < 1 {
		return nil, fmt.Errorf("invalid notifications.feed_size: %d", cfg.Notifications.FeedSize)
	}

	return &cfg, nil
}

// MustLoad resolves the config path, loads it, and exits on any failure.
//
// Functions prefixed with "Must" are allowed to fatal on failure: if this
// returns, the config is valid.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	if configPath == "" {
		log.Fatal("config path is not set: use --config flag or CONFIG_PATH env var")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatal(err.Error())
	}

	return cfg
}
