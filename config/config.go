// Package config provides configuration loading and access for voro2d's
// cmd/ binaries: an embedded defaults.yaml is always parsed first, then
// optionally merged with a user-supplied file, following the same
// embed-then-override shape used across this codebase's config loading.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/haldane-labs/voro2d"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all voro2d configuration parameters.
type Config struct {
	Domain       DomainConfig      `yaml:"domain"`
	Grid         GridConfig        `yaml:"grid"`
	Memory       MemoryConfig      `yaml:"memory"`
	Diagnostics  DiagnosticsConfig `yaml:"diagnostics"`
	Radius       bool              `yaml:"radius"`
	NumberThread int               `yaml:"number_thread"`
}

// DomainConfig holds the rectangular domain extents.
type DomainConfig struct {
	AX float64 `yaml:"ax"`
	BX float64 `yaml:"bx"`
	AY float64 `yaml:"ay"`
	BY float64 `yaml:"by"`
}

// GridConfig holds the block grid shape and periodicity.
type GridConfig struct {
	NX        int  `yaml:"nx"`
	NY        int  `yaml:"ny"`
	XPeriodic bool `yaml:"x_periodic"`
	YPeriodic bool `yaml:"y_periodic"`
}

// MemoryConfig holds the container's per-block allocation parameters.
type MemoryConfig struct {
	InitMem           int `yaml:"init_mem"`
	MaxParticleMemory int `yaml:"max_particle_memory"`
}

// DiagnosticsConfig holds the two opt-in verbosity flags a Container
// supports.
type DiagnosticsConfig struct {
	ReportOutOfBounds  bool `yaml:"report_out_of_bounds"`
	ReportMemoryGrowth bool `yaml:"report_memory_growth"`
}

// ToContainerConfig translates the loaded YAML shape into the voro2d.Config
// a Container is built from.
func (c *Config) ToContainerConfig() voro2d.Config {
	return voro2d.Config{
		AX: c.Domain.AX, BX: c.Domain.BX,
		AY: c.Domain.AY, BY: c.Domain.BY,
		NX: c.Grid.NX, NY: c.Grid.NY,
		XPeriodic: c.Grid.XPeriodic, YPeriodic: c.Grid.YPeriodic,
		InitMem:            c.Memory.InitMem,
		MaxParticleMemory:  c.Memory.MaxParticleMemory,
		NumberThread:       c.NumberThread,
		Radius:             c.Radius,
		ReportOutOfBounds:  c.Diagnostics.ReportOutOfBounds,
		ReportMemoryGrowth: c.Diagnostics.ReportMemoryGrowth,
	}
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	return cfg, nil
}

// WriteYAML writes the configuration to a YAML file, for run reproducibility.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
