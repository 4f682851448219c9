// Package config provides configuration loading and access for the sandbox.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Aggregation modes for per-target impulse composition.
const (
	AggregateAccumulate = "accumulate"
	AggregateOverwrite  = "overwrite"
)

// Config holds all sandbox configuration parameters.
type Config struct {
	Screen      ScreenConfig      `yaml:"screen"`
	Simulation  SimulationConfig  `yaml:"simulation"`
	Force       ForceConfig       `yaml:"force"`
	Particle    ParticleConfig    `yaml:"particle"`
	Spawn       SpawnConfig       `yaml:"spawn"`
	Camera      CameraConfig      `yaml:"camera"`
	Diagnostics DiagnosticsConfig `yaml:"diagnostics"`
	Headless    HeadlessConfig    `yaml:"headless"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int  `yaml:"width"`
	Height    int  `yaml:"height"`
	TargetFPS int  `yaml:"target_fps"` // 0 = uncapped
	VSync     bool `yaml:"vsync"`
}

// SimulationConfig holds the global force constants.
type SimulationConfig struct {
	GravitationalConstant      float64 `yaml:"gravitational_constant"`
	AttractionMultiplier       float64 `yaml:"attraction_multiplier"`
	RepulsionMultiplier        float64 `yaml:"repulsion_multiplier"`
	AttractionColorRequirement float64 `yaml:"attraction_color_requirement"` // Baseline for the color-similarity scalar
}

// ForceConfig holds force composition switches and evaluation tuning.
type ForceConfig struct {
	Aggregation       string  `yaml:"aggregation"`        // accumulate | overwrite
	RepulsionEnabled  bool    `yaml:"repulsion_enabled"`  // Add the F/-d² term
	ColorEnabled      bool    `yaml:"color_enabled"`      // Scale attraction by color similarity
	MinDistance       float64 `yaml:"min_distance"`       // Pairs closer than this are skipped
	Workers           int     `yaml:"workers"`            // >1 enables the parallel force pass
	ParallelThreshold int     `yaml:"parallel_threshold"` // Minimum particle count for the parallel pass
}

// ParticleConfig holds particle creation parameters.
type ParticleConfig struct {
	Density       float64 `yaml:"density"`
	RadiusMin     float64 `yaml:"radius_min"`
	RadiusMax     float64 `yaml:"radius_max"`
	ColorMin      float64 `yaml:"color_min"`
	ColorMax      float64 `yaml:"color_max"`
	LinearDamping float64 `yaml:"linear_damping"`
}

// SpawnConfig holds spawn throttling parameters.
type SpawnConfig struct {
	Interval float64 `yaml:"interval"` // Seconds between held-input spawns
	Prime    bool    `yaml:"prime"`    // Fire the throttle on the first tick
}

// CameraConfig holds camera movement parameters.
type CameraConfig struct {
	Speed      float64 `yaml:"speed"`
	Smoothness float64 `yaml:"smoothness"` // Time constant in seconds, larger = slower
	Zoom       float64 `yaml:"zoom"`
}

// DiagnosticsConfig holds sampling parameters for the HUD and logs.
type DiagnosticsConfig struct {
	SampleInterval float64 `yaml:"sample_interval"` // Seconds between HUD samples
	FrameWindow    int     `yaml:"frame_window"`    // Frames averaged for fps
	LogInterval    float64 `yaml:"log_interval"`    // Seconds between perf log lines
}

// HeadlessConfig holds the scripted-input parameters for headless runs.
type HeadlessConfig struct {
	DT           float64 `yaml:"dt"`
	MaxParticles int     `yaml:"max_particles"`
	SpawnExtent  float64 `yaml:"spawn_extent"` // Half-width of the square spawn area
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	HeadlessDT  float32
	Accumulate  bool // Force.Aggregation == accumulate
	MinDistSq32 float32
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

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

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

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values the simulation cannot run with.
func (c *Config) validate() error {
	c.Force.Aggregation = strings.ToLower(strings.TrimSpace(c.Force.Aggregation))
	switch c.Force.Aggregation {
	case AggregateAccumulate, AggregateOverwrite:
	case "":
		c.Force.Aggregation = AggregateAccumulate
	default:
		return fmt.Errorf("force.aggregation: unknown mode %q", c.Force.Aggregation)
	}
	if c.Particle.RadiusMin <= 0 || c.Particle.RadiusMax < c.Particle.RadiusMin {
		return fmt.Errorf("particle: invalid radius range [%g, %g)", c.Particle.RadiusMin, c.Particle.RadiusMax)
	}
	if c.Particle.ColorMin <= 0 || c.Particle.ColorMax < c.Particle.ColorMin {
		return fmt.Errorf("particle: invalid color range [%g, %g)", c.Particle.ColorMin, c.Particle.ColorMax)
	}
	if c.Particle.Density <= 0 {
		return fmt.Errorf("particle.density must be positive, got %g", c.Particle.Density)
	}
	if c.Spawn.Interval <= 0 {
		return fmt.Errorf("spawn.interval must be positive, got %g", c.Spawn.Interval)
	}
	if c.Camera.Smoothness <= 0 {
		return fmt.Errorf("camera.smoothness must be positive, got %g", c.Camera.Smoothness)
	}
	if c.Headless.DT <= 0 {
		return fmt.Errorf("headless.dt must be positive, got %g", c.Headless.DT)
	}
	if c.Diagnostics.SampleInterval <= 0 {
		return fmt.Errorf("diagnostics.sample_interval must be positive, got %g", c.Diagnostics.SampleInterval)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.HeadlessDT = float32(c.Headless.DT)
	c.Derived.Accumulate = c.Force.Aggregation == AggregateAccumulate
	c.Derived.MinDistSq32 = float32(c.Force.MinDistance * c.Force.MinDistance)

	if c.Camera.Zoom <= 0 {
		c.Camera.Zoom = 1
	}
	if c.Force.Workers < 1 {
		c.Force.Workers = 1
	}
	if c.Diagnostics.FrameWindow < 1 {
		c.Diagnostics.FrameWindow = 60
	}
}

// WriteYAML writes the configuration to a YAML file.
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
