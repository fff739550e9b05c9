package skipkv

import (
	"fmt"
	"log/slog"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultMaxLevel is the level ceiling used when a config file leaves it
	// unset. 18 levels keep lookups logarithmic up to roughly 2^18 keys.
	DefaultMaxLevel = 18

	// DefaultDelimiter separates key and value in a persisted record.
	DefaultDelimiter = ":"

	// DefaultStorePath is where DumpFile and LoadFile read and write.
	DefaultStorePath = "store/dumpFile"
)

// Config holds the construction parameters of a SkipList.
type Config struct {
	// MaxLevel is the highest level index any node may reach.
	MaxLevel int `yaml:"max_level"`

	// Seed seeds the level generator. Zero draws a seed from the clock.
	Seed uint64 `yaml:"seed"`

	// Delimiter separates key and value in persisted records.
	Delimiter string `yaml:"delimiter"`

	// StorePath is the file used by DumpFile and LoadFile.
	StorePath string `yaml:"store_path"`

	// Logger receives per-operation diagnostics at debug level.
	Logger *slog.Logger `yaml:"-"`

	codec any
}

// Option adjusts a Config before a list is built from it.
type Option func(*Config)

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		MaxLevel:  DefaultMaxLevel,
		Delimiter: DefaultDelimiter,
		StorePath: DefaultStorePath,
	}
}

// LoadConfig reads a YAML config file. Fields the file leaves out keep their
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	applyDefaults(&cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.MaxLevel == 0 {
		cfg.MaxLevel = DefaultMaxLevel
	}
	if cfg.Delimiter == "" {
		cfg.Delimiter = DefaultDelimiter
	}
	if cfg.StorePath == "" {
		cfg.StorePath = DefaultStorePath
	}
}

// Validate reports whether the config can build a list.
func (c Config) Validate() error {
	if c.MaxLevel <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidMaxLevel, c.MaxLevel)
	}
	if utf8.RuneCountInString(c.Delimiter) != 1 || c.Delimiter == "\n" || c.Delimiter == "\r" {
		return fmt.Errorf("%w: got %q", ErrInvalidDelimiter, c.Delimiter)
	}
	return nil
}

// WithMaxLevel sets the level ceiling.
func WithMaxLevel(level int) Option {
	return func(c *Config) { c.MaxLevel = level }
}

// WithSeed seeds the level generator so tower heights are reproducible.
func WithSeed(seed uint64) Option {
	return func(c *Config) { c.Seed = seed }
}

// WithDelimiter sets the key/value separator used by Dump and Load.
func WithDelimiter(delim string) Option {
	return func(c *Config) { c.Delimiter = delim }
}

// WithStorePath sets the file used by DumpFile and LoadFile.
func WithStorePath(path string) Option {
	return func(c *Config) { c.StorePath = path }
}

// WithLogger routes operation diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) { c.Logger = logger }
}

// WithCodec sets the text codec used by the persistence operations. The
// codec's type parameters must match the list's, otherwise construction
// fails with ErrCodecMismatch.
func WithCodec[K, V any](codec Codec[K, V]) Option {
	return func(c *Config) { c.codec = codec }
}
