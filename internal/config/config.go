package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/OCharnyshevich/slimefinder/pkg/world/chunkset"
	"github.com/OCharnyshevich/slimefinder/pkg/world/slime"
	"github.com/OCharnyshevich/slimefinder/pkg/world/window"
)

// Config is the on-disk configuration shared by slimefinder and slimegen.
type Config struct {
	Finder    Finder    `yaml:"finder"`
	Generator Generator `yaml:"generator"`
}

// Finder holds the window search settings.
type Finder struct {
	Input      string        `yaml:"input"` // "-" or any go-getter source
	Width      int           `yaml:"width"`
	Height     int           `yaml:"height"`
	Mode       string        `yaml:"mode"`  // "max" or "min"
	Align      int           `yaml:"align"` // 1 = unconstrained
	MaxCells   int           `yaml:"max_cells"`
	Candidates bool          `yaml:"candidates"` // list every tied origin
	Progress   time.Duration `yaml:"progress"`   // 0 disables progress logging
	Report     string        `yaml:"report"`     // JSON report path, empty = none
}

// Generator holds the slime chunk list generation settings.
type Generator struct {
	Seed    int64  `yaml:"seed"`
	CenterX int    `yaml:"center_x"`
	CenterZ int    `yaml:"center_z"`
	Radius  int    `yaml:"radius"`
	Output  string `yaml:"output"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Finder: Finder{
			Input:    "slime_chunks.txt",
			Width:    17,
			Height:   17,
			Mode:     "max",
			Align:    1,
			MaxCells: window.DefaultMaxCells,
			Progress: 2 * time.Second,
		},
		Generator: Generator{
			Radius: 100,
			Output: "slime_chunks.txt",
		},
	}
}

// Load reads a YAML config from path on top of the defaults. If the file does
// not exist, the defaults are returned unchanged.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// MergeFinder applies file-loaded values into cfg, but only for fields that
// were NOT explicitly set via CLI flags. explicitFlags contains the flag names
// that were explicitly provided on the command line.
func MergeFinder(cfg *Finder, fromFile *Finder, explicitFlags map[string]bool) {
	if !explicitFlags["input"] {
		cfg.Input = fromFile.Input
	}
	if !explicitFlags["width"] {
		cfg.Width = fromFile.Width
	}
	if !explicitFlags["height"] {
		cfg.Height = fromFile.Height
	}
	if !explicitFlags["mode"] {
		cfg.Mode = fromFile.Mode
	}
	if !explicitFlags["align"] {
		cfg.Align = fromFile.Align
	}
	if !explicitFlags["max-cells"] {
		cfg.MaxCells = fromFile.MaxCells
	}
	if !explicitFlags["candidates"] {
		cfg.Candidates = fromFile.Candidates
	}
	if !explicitFlags["progress"] {
		cfg.Progress = fromFile.Progress
	}
	if !explicitFlags["report"] {
		cfg.Report = fromFile.Report
	}
}

// MergeGenerator is MergeFinder for generator settings.
func MergeGenerator(cfg *Generator, fromFile *Generator, explicitFlags map[string]bool) {
	if !explicitFlags["seed"] {
		cfg.Seed = fromFile.Seed
	}
	if !explicitFlags["x"] {
		cfg.CenterX = fromFile.CenterX
	}
	if !explicitFlags["z"] {
		cfg.CenterZ = fromFile.CenterZ
	}
	if !explicitFlags["radius"] {
		cfg.Radius = fromFile.Radius
	}
	if !explicitFlags["o"] {
		cfg.Output = fromFile.Output
	}
}

// Params validates the finder settings and converts them to search params.
func (f *Finder) Params() (window.Params, error) {
	mode, err := window.ParseMode(f.Mode)
	if err != nil {
		return window.Params{}, err
	}
	p := window.Params{Width: f.Width, Height: f.Height, Mode: mode, Align: f.Align}
	if err := p.Validate(); err != nil {
		return p, err
	}
	if f.Input == "" {
		return p, fmt.Errorf("input source required")
	}
	return p, nil
}

// Validate checks generator settings.
func (g *Generator) Validate() error {
	if g.Radius < 1 {
		return fmt.Errorf("radius must be at least 1, got %d", g.Radius)
	}
	if err := slime.CheckRegion(chunkset.Pos{X: g.CenterX, Z: g.CenterZ}, g.Radius); err != nil {
		return err
	}
	if g.Output == "" {
		return fmt.Errorf("output path required")
	}
	return nil
}
