package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/tisserand/internal/bodies"
	"github.com/san-kum/tisserand/internal/rootfind"
	"github.com/san-kum/tisserand/internal/tisserand"
)

const (
	DefaultTisserand      = 3.0
	DefaultInclination    = 0.0
	DefaultEccentricity   = 0.6
	DefaultSamples        = 6000
	DefaultTolerance      = rootfind.DefaultTolerance
	DefaultMaxIterations  = rootfind.DefaultMaxIterations
	DefaultOutputDir      = "tisserand-out"
	DefaultFormat         = "png"
	DefaultWidthIn        = 8.0
	DefaultHeightIn       = 5.0
	DefaultCombinedWidth  = 10.0
	DefaultCombinedHeight = 6.0
)

var ErrInvalid = errors.New("config: invalid configuration")

type Config struct {
	Tisserand      float64            `yaml:"tisserand"`
	InclinationDeg float64            `yaml:"inclination_deg"`
	Eccentricity   EccentricityConfig `yaml:"eccentricity"`
	Root           RootConfig         `yaml:"root"`
	BodySet        string             `yaml:"body_set"`
	Epoch          string             `yaml:"epoch,omitempty"`
	Bodies         []BodyConfig       `yaml:"bodies,omitempty"`
	Only           []string           `yaml:"only,omitempty"`
	Workers        int                `yaml:"workers"`
	Output         OutputConfig       `yaml:"output"`
}

type EccentricityConfig struct {
	Max     float64 `yaml:"max"`
	Samples int     `yaml:"samples"`
}

type RootConfig struct {
	Tolerance     float64 `yaml:"tolerance"`
	MaxIterations int     `yaml:"max_iterations"`
}

type BodyConfig struct {
	Name string  `yaml:"name"`
	Axis float64 `yaml:"axis"`
}

type OutputConfig struct {
	Dir            string  `yaml:"dir"`
	Format         string  `yaml:"format"`
	WidthIn        float64 `yaml:"width_in"`
	HeightIn       float64 `yaml:"height_in"`
	CombinedWidth  float64 `yaml:"combined_width_in"`
	CombinedHeight float64 `yaml:"combined_height_in"`
	Figures        bool    `yaml:"figures"`
	Terminal       bool    `yaml:"terminal"`
}

func DefaultConfig() *Config {
	return &Config{
		Tisserand:      DefaultTisserand,
		InclinationDeg: DefaultInclination,
		Eccentricity: EccentricityConfig{
			Max:     DefaultEccentricity,
			Samples: DefaultSamples,
		},
		Root: RootConfig{
			Tolerance:     DefaultTolerance,
			MaxIterations: DefaultMaxIterations,
		},
		BodySet: bodies.SetDefault,
		Output: OutputConfig{
			Dir:            DefaultOutputDir,
			Format:         DefaultFormat,
			WidthIn:        DefaultWidthIn,
			HeightIn:       DefaultHeightIn,
			CombinedWidth:  DefaultCombinedWidth,
			CombinedHeight: DefaultCombinedHeight,
			Figures:        true,
			Terminal:       true,
		},
	}
}

// Load overlays the yaml file at path on base, or on DefaultConfig when base is nil.
func Load(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if base != nil {
		cfg = base.Clone()
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Clone() *Config {
	out := *c
	out.Bodies = append([]BodyConfig(nil), c.Bodies...)
	out.Only = append([]string(nil), c.Only...)
	return &out
}

func (c *Config) Validate() error {
	if math.IsNaN(c.Tisserand) || math.IsInf(c.Tisserand, 0) {
		return fmt.Errorf("%w: tisserand %g", ErrInvalid, c.Tisserand)
	}
	if !(c.InclinationDeg >= 0 && c.InclinationDeg <= 180) {
		return fmt.Errorf("%w: inclination %g° outside [0, 180]", ErrInvalid, c.InclinationDeg)
	}
	if c.Eccentricity.Samples < 1 {
		return fmt.Errorf("%w: eccentricity samples %d, need at least 1", ErrInvalid, c.Eccentricity.Samples)
	}
	if !(c.Eccentricity.Max > 0) || math.IsInf(c.Eccentricity.Max, 0) {
		return fmt.Errorf("%w: eccentricity max %g", ErrInvalid, c.Eccentricity.Max)
	}
	if !(c.Root.Tolerance > 0) {
		return fmt.Errorf("%w: root tolerance %g", ErrInvalid, c.Root.Tolerance)
	}
	if c.Root.MaxIterations < 1 {
		return fmt.Errorf("%w: root max iterations %d", ErrInvalid, c.Root.MaxIterations)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d", ErrInvalid, c.Workers)
	}
	switch c.Output.Format {
	case "png", "svg", "pdf":
	default:
		return fmt.Errorf("%w: output format %q", ErrInvalid, c.Output.Format)
	}
	for _, size := range []struct {
		name string
		in   float64
	}{
		{"width_in", c.Output.WidthIn},
		{"height_in", c.Output.HeightIn},
		{"combined_width_in", c.Output.CombinedWidth},
		{"combined_height_in", c.Output.CombinedHeight},
	} {
		if !(size.in > 0) || math.IsInf(size.in, 0) {
			return fmt.Errorf("%w: output %s %g", ErrInvalid, size.name, size.in)
		}
	}
	if _, err := c.ReferenceBodies(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Params projects the Tisserand value and inclination.
func (c *Config) Params() (tisserand.Params, error) {
	return tisserand.NewParams(c.Tisserand, c.InclinationDeg)
}

func (c *Config) Sweep() (tisserand.Sweep, error) {
	return tisserand.NewSweep(c.Eccentricity.Max, c.Eccentricity.Samples)
}

func (c *Config) RootOptions() rootfind.Options {
	opts := rootfind.DefaultOptions()
	opts.Tolerance = c.Root.Tolerance
	opts.MaxIterations = c.Root.MaxIterations
	return opts
}

// EpochTime parses Epoch as RFC3339 or a plain date, defaulting to J2000.
func (c *Config) EpochTime() (time.Time, error) {
	if c.Epoch == "" {
		return time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC), nil
	}
	if t, err := time.Parse(time.RFC3339, c.Epoch); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, c.Epoch)
	if err != nil {
		return time.Time{}, fmt.Errorf("config: epoch %q: %w", c.Epoch, err)
	}
	return t, nil
}

// ReferenceBodies resolves the explicit body list, or the named body set,
// then applies the Only filter and validates the result.
func (c *Config) ReferenceBodies() ([]tisserand.ReferenceBody, error) {
	var table []tisserand.ReferenceBody
	if len(c.Bodies) > 0 {
		table = make([]tisserand.ReferenceBody, len(c.Bodies))
		for i, b := range c.Bodies {
			table[i] = tisserand.ReferenceBody{Name: b.Name, Axis: b.Axis}
		}
	} else {
		epoch, err := c.EpochTime()
		if err != nil {
			return nil, err
		}
		table, err = bodies.Set(c.BodySet, epoch)
		if err != nil {
			return nil, err
		}
	}

	table, err := bodies.Filter(table, c.Only)
	if err != nil {
		return nil, err
	}
	if err := bodies.Validate(table); err != nil {
		return nil, err
	}
	return table, nil
}
