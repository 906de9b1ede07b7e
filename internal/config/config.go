package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/dshills/buttongroup/internal/config/loader"
	"github.com/dshills/buttongroup/internal/logging"
)

// Defaults.
const (
	DefaultLogLevel      = "info"
	DefaultDebounce      = 100 * time.Millisecond
	DefaultScriptTimeout = time.Second
)

// Config holds application settings.
type Config struct {
	Logging LoggingConfig
	Layout  LayoutConfig
	Actions ActionsConfig
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string
}

// LayoutConfig locates the layout file.
type LayoutConfig struct {
	// Path is a .toml, .yaml or .yml layout file.
	Path string
	// Watch reloads the layout when the file changes.
	Watch bool
	// Debounce coalesces bursts of file events.
	Debounce time.Duration
}

// ActionsConfig configures on-value-change actions.
type ActionsConfig struct {
	// ScriptTimeout bounds each Lua action call.
	ScriptTimeout time.Duration
	// Default is the registry action used by groups that name none.
	Default string
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: DefaultLogLevel},
		Layout:  LayoutConfig{Debounce: DefaultDebounce},
		Actions: ActionsConfig{ScriptTimeout: DefaultScriptTimeout},
	}
}

// Load reads settings from the TOML file at path, then applies
// BUTTONGROUP_* environment overrides. A missing file or empty path leaves
// the defaults in place.
func Load(path string) (*Config, error) {
	return LoadWith(loader.DefaultFS(), loader.NewEnvLoader(loader.DefaultEnvPrefix), path)
}

// LoadWith is Load with an explicit file system and environment source.
// env may be nil.
func LoadWith(fsys loader.FileSystem, env loader.Loader, path string) (*Config, error) {
	var data map[string]any

	if path != "" {
		fileData, err := loader.NewTOMLLoaderWithFS(fsys, path).Load()
		if err != nil {
			return nil, fmt.Errorf("loading settings: %w", err)
		}
		data = fileData
	}

	if env != nil {
		envData, err := env.Load()
		if err != nil {
			return nil, fmt.Errorf("loading environment: %w", err)
		}
		data = loader.DeepMerge(data, envData)
	}

	cfg := Default()
	if err := cfg.apply(loader.Values(data)); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) apply(v loader.Values) error {
	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	var err error
	c.Logging.Level, err = v.String("logging.level", c.Logging.Level)
	collect(err)
	c.Layout.Path, err = v.String("layout.path", c.Layout.Path)
	collect(err)
	c.Layout.Watch, err = v.Bool("layout.watch", c.Layout.Watch)
	collect(err)
	c.Layout.Debounce, err = v.Duration("layout.debounce", c.Layout.Debounce)
	collect(err)
	c.Actions.ScriptTimeout, err = v.Duration("actions.scriptTimeout", c.Actions.ScriptTimeout)
	collect(err)
	c.Actions.Default, err = v.String("actions.default", c.Actions.Default)
	collect(err)

	if len(errs) > 0 {
		return fmt.Errorf("reading settings: %w", errors.Join(errs...))
	}
	return nil
}

// Validate checks the settings.
func (c *Config) Validate() error {
	var errs []error

	if _, ok := logging.ParseLevel(c.Logging.Level); !ok {
		errs = append(errs, &ValidationError{
			Path:    "logging.level",
			Message: "must be one of debug, info, warn, error",
			Value:   c.Logging.Level,
			Code:    ErrCodeInvalidEnum,
		})
	}
	if c.Layout.Path != "" {
		if _, err := loader.FormatFor(c.Layout.Path); err != nil {
			errs = append(errs, &ValidationError{
				Path:    "layout.path",
				Message: "must end in .toml, .yaml or .yml",
				Value:   c.Layout.Path,
				Code:    ErrCodeInvalidEnum,
			})
		}
	}
	if c.Layout.Debounce < 0 {
		errs = append(errs, &ValidationError{
			Path:    "layout.debounce",
			Message: "must not be negative",
			Value:   c.Layout.Debounce,
			Code:    ErrCodeOutOfRange,
		})
	}
	if c.Actions.ScriptTimeout < 0 {
		errs = append(errs, &ValidationError{
			Path:    "actions.scriptTimeout",
			Message: "must not be negative",
			Value:   c.Actions.ScriptTimeout,
			Code:    ErrCodeOutOfRange,
		})
	}

	return errors.Join(errs...)
}

// LogLevel returns the parsed log level, or info when it is invalid.
func (c *Config) LogLevel() logging.Level {
	level, _ := logging.ParseLevel(c.Logging.Level)
	return level
}
