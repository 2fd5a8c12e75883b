package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/lugassawan/gitlogjson/internal/history"
	"github.com/lugassawan/gitlogjson/internal/output"
	toml "github.com/pelletier/go-toml/v2"
)

// FileName is the config file name looked up at the repository root.
const FileName = ".gitlogjson.toml"

// Config holds per-repository defaults for the log command. Command-line
// flags override every value.
type Config struct {
	Fields     []string `toml:"fields"`
	Limit      int      `toml:"limit"`
	DateFormat string   `toml:"date_format"`
	Format     string   `toml:"format"`
}

// Validation error messages.
const (
	ErrMsgNegativeLimit = "limit must not be negative"
)

// Validate checks field names, limit and output format.
func (c *Config) Validate() error {
	var errs []error
	if _, err := history.ParseFieldNames(c.Fields); err != nil {
		errs = append(errs, err)
	}
	if c.Limit < 0 {
		errs = append(errs, errors.New(ErrMsgNegativeLimit))
	}
	if _, err := output.ParseFormat(c.Format); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Options converts the configured defaults to history options.
// Call Validate first; unknown field names are ignored here.
func (c *Config) Options() history.Options {
	opts, _ := history.ParseFieldNames(c.Fields)
	opts.Limit = c.Limit
	opts.DateFormat = c.DateFormat
	return opts
}

type ctxKey struct{}

// DefaultConfig selects hash, subject and date in JSON.
func DefaultConfig() *Config {
	return &Config{
		Fields:     []string{"hash", "subject", "date"},
		DateFormat: history.DefaultDateFormat,
		Format:     string(output.FormatJSON),
	}
}

// Load reads and validates the config at path. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config not found: %w (run 'gitlogjson init' first)", err)
	}

	var cfg Config
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("invalid config %s: unknown keys:\n%s", path, strict.String())
		}
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Resolve loads the config from repoRoot, falling back to DefaultConfig
// when the file does not exist. Any other failure is returned.
func Resolve(repoRoot string) (*Config, error) {
	path := filepath.Join(repoRoot, FileName)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return Load(path)
}

func Save(path string, cfg *Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext returns the config stored by WithConfig, or DefaultConfig
// when none was stored.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(ctxKey{}).(*Config); ok && cfg != nil {
		return cfg
	}
	return DefaultConfig()
}
