// Package config loads and validates the recovery pipeline configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hammal/compsens/sampling"
	"github.com/hammal/compsens/sl0"
	"gopkg.in/yaml.v3"
)

// ErrInvalid indicates a configuration value outside its range.
var ErrInvalid = errors.New("config: invalid value")

// Config holds all pipeline settings.
type Config struct {
	// Samples per original block (N)
	BlockSize int `yaml:"block_size"`
	// Measurements per block (M)
	Measurements int `yaml:"measurements"`
	// Blocks recovered jointly by the Kronecker path
	KronFactor int `yaml:"kron_factor"`
	// Measurement matrix ensemble
	Matrix sampling.MatrixKind `yaml:"matrix"`

	Solver sl0.Parameters `yaml:"solver"`

	// Concurrent blocks, 0 selects GOMAXPROCS
	Workers int  `yaml:"workers"`
	Strict  bool `yaml:"strict"`

	// Seed for random matrices and synthetic signals
	Seed int64 `yaml:"seed"`

	Signal SignalConfig `yaml:"signal"`
}

// SignalConfig describes the synthetic test signal.
type SignalConfig struct {
	// Number of Kronecker groups in the signal
	Groups int `yaml:"groups"`
	// Active coefficients per block
	Active int `yaml:"active"`
	// Atoms eligible to be active, 0 for all
	Band int `yaml:"band"`
	// Noise on inactive coefficients
	InactiveNoise float64 `yaml:"inactive_noise"`
}

// DefaultConfig returns the reference setup: DBDD sensing of 16 sample blocks
// with 4 measurements each.
func DefaultConfig() *Config {
	return &Config{
		BlockSize:    16,
		Measurements: 4,
		KronFactor:   2,
		Matrix:       sampling.DBDDKind,
		Solver:       sl0.DefaultParameters(1e-4),
		Workers:      0,
		Seed:         1,
		Signal: SignalConfig{
			Groups: 4,
			Active: 2,
			Band:   4,
		},
	}
}

// Load reads path on top of DefaultConfig. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to path as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks sizes and solver parameters.
func (c *Config) Validate() error {
	switch {
	case c.BlockSize < 1 || c.Measurements < 1:
		return fmt.Errorf("%w: block_size and measurements must be positive, got %d and %d", ErrInvalid, c.BlockSize, c.Measurements)
	case c.Measurements >= c.BlockSize:
		return fmt.Errorf("%w: measurements (%d) must be fewer than block_size (%d)", ErrInvalid, c.Measurements, c.BlockSize)
	case c.KronFactor < 1:
		return fmt.Errorf("%w: kron_factor must be at least 1, got %d", ErrInvalid, c.KronFactor)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalid, c.Workers)
	case c.Signal.Groups < 1:
		return fmt.Errorf("%w: signal.groups must be positive, got %d", ErrInvalid, c.Signal.Groups)
	case c.Signal.Active < 0 || c.Signal.InactiveNoise < 0:
		return fmt.Errorf("%w: signal.active and signal.inactive_noise must not be negative", ErrInvalid)
	}
	switch c.Matrix {
	case sampling.DBDDKind, sampling.Gaussian, sampling.StandardGaussian, sampling.ScaledBinary, sampling.UnscaledBinary:
	default:
		return fmt.Errorf("%w: %w: %q", ErrInvalid, sampling.ErrUnknownMatrixKind, c.Matrix)
	}
	if c.Matrix == sampling.DBDDKind && c.BlockSize%c.Measurements != 0 {
		return fmt.Errorf("%w: %w: block_size %d, measurements %d", ErrInvalid, sampling.ErrNotMultiple, c.BlockSize, c.Measurements)
	}
	return c.Solver.Validate()
}
