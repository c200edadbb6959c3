// Package cfg reads the YAML configuration shared by the gotower programs.
package cfg

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

// maxLg keeps universes within uint64.
const maxLg = 63

type Config struct {
	// Height is the h passed to the prod demo.
	Height int `yaml:"height"`
	// MaxHeight refuses demo heights whose values would not fit in memory.
	// prod(h, h) has 2^h bits.
	MaxHeight int            `yaml:"maxHeight"`
	Grouped   bool           `yaml:"grouped"`
	Universe  UniverseConfig `yaml:"universe"`
	Logger    LoggerConfig   `yaml:"logger"`
}

// UniverseConfig is the range of lg u printed by vebnodes.
type UniverseConfig struct {
	MinLg int `yaml:"minLg"`
	MaxLg int `yaml:"maxLg"`
}

type LoggerConfig struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
}

// DefaultConfig gives the behaviour of running the programs with no config.
func DefaultConfig() Config {
	return Config{
		Height:    2,
		MaxHeight: 20,
		Universe: UniverseConfig{
			MinLg: 2,
			MaxLg: 11,
		},
		Logger: LoggerConfig{
			Level:    "info",
			Encoding: "console",
		},
	}
}

// ParseConfig decodes r over DefaultConfig. Unknown keys are an error.
func ParseConfig(r io.Reader) (Config, error) {
	d := yaml.NewDecoder(r)
	d.SetStrict(true)

	c := DefaultConfig()
	if err := d.Decode(&c); err != nil && err != io.EOF {
		return Config{}, errors.Wrap(err, "decoding config")
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Load reads the config file at path, or returns the defaults if path is empty.
func Load(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	fh, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "opening config")
	}
	defer fh.Close()

	return ParseConfig(fh)
}

func (c Config) Validate() error {
	if c.MaxHeight < 1 {
		return errors.Errorf("maxHeight must be positive, got %d", c.MaxHeight)
	}
	if err := c.CheckHeight(c.Height); err != nil {
		return err
	}
	if c.Universe.MinLg < 1 {
		return errors.Errorf("universe.minLg must be positive, got %d", c.Universe.MinLg)
	}
	if c.Universe.MaxLg < c.Universe.MinLg {
		return errors.Errorf("universe.maxLg %d is below minLg %d", c.Universe.MaxLg, c.Universe.MinLg)
	}
	if c.Universe.MaxLg > maxLg {
		return errors.Errorf("universe.maxLg %d is above %d", c.Universe.MaxLg, maxLg)
	}
	return nil
}

// CheckHeight reports whether h may be run under this config.
func (c Config) CheckHeight(h int) error {
	if h < 1 {
		return errors.Errorf("height must be positive, got %d", h)
	}
	if h > c.MaxHeight {
		return errors.Errorf("height %d is above maxHeight %d", h, c.MaxHeight)
	}
	return nil
}

// Build returns a logger writing to stderr, leaving stdout to the programs' output.
func (lc LoggerConfig) Build() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(lc.Level)
	if err != nil {
		return nil, errors.Wrapf(err, "logger level %q", lc.Level)
	}

	zc := zap.NewProductionConfig()
	zc.Level = level
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	switch lc.Encoding {
	case "json":
	case "console", "":
		zc.Encoding = "console"
		zc.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	default:
		return nil, errors.Errorf("unknown logger encoding %q", lc.Encoding)
	}

	return zc.Build()
}
