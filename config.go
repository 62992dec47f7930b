package scoreflow

import "fmt"

// Config is a serialisable representation of the engine configuration. It can
// be populated from JSON, YAML, TOML, environment variables, etc. The
// zero-value is useful - all nested fields inherit their package defaults.

type Config struct {
	Sweep SweepConfig `json:"sweep" yaml:"sweep"`
}

type SweepConfig struct {
	// Workers caps the number of concurrent scoring goroutines.
	Workers int `json:"workers" yaml:"workers"`
	// BatchSize sets how many assignments one goroutine scores at a time.
	BatchSize int `json:"batchSize" yaml:"batchSize"`
}

// DefaultConfig returns a Config populated with the package defaults. Callers
// may modify the returned struct before passing it to New via WithConfig.
func DefaultConfig() *Config {
	return &Config{
		Sweep: SweepConfig{
			Workers:   4,
			BatchSize: 64,
		},
	}
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.Sweep.Workers <= 0 {
		return fmt.Errorf("sweep.workers must be > 0")
	}
	if c.Sweep.BatchSize <= 0 {
		return fmt.Errorf("sweep.batchSize must be > 0")
	}
	return nil
}
