// Package config loads the YAML settings of the gridplan command.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lvyv/auto-harness-layout/astar"
	"github.com/lvyv/auto-harness-layout/cell"
	"github.com/lvyv/auto-harness-layout/grid"
)

// ErrInvalid indicates a loaded configuration that cannot be used.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the top-level gridplan configuration.
type Config struct {
	LogLevel string       `yaml:"log_level"`
	Grid     GridConfig   `yaml:"grid"`
	Search   astar.Config `yaml:"search"`
	Batch    BatchConfig  `yaml:"batch"`
	Store    StoreConfig  `yaml:"store"`
}

// GridConfig describes the layout built when no input container is given.
type GridConfig struct {
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	DefaultCell uint8   `yaml:"default_cell"`
	Obstacles   []Rect  `yaml:"obstacles"`
	Starts      []Point `yaml:"starts"`
	Ends        []Point `yaml:"ends"`
}

// Rect is an inclusive block of cells.
type Rect struct {
	Top    int `yaml:"top"`
	Left   int `yaml:"left"`
	Bottom int `yaml:"bottom"`
	Right  int `yaml:"right"`
}

// Point is a (row, col) coordinate.
type Point struct {
	Row int `yaml:"row"`
	Col int `yaml:"col"`
}

// BatchConfig holds planning settings.
type BatchConfig struct {
	// Workers bounds concurrent searches; 0 means one per CPU.
	Workers int `yaml:"workers"`
	// Breach reports the fewest obstacles separating each failed pair.
	Breach bool `yaml:"breach"`
}

// StoreConfig holds persistence settings.
type StoreConfig struct {
	Output   string `yaml:"output"`
	Compress bool   `yaml:"compress"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	gc := grid.DefaultConfig()
	return Config{
		LogLevel: "info",
		Grid: GridConfig{
			Width:       gc.Width,
			Height:      gc.Height,
			DefaultCell: uint8(gc.DefaultCell),
		},
		Search: astar.DefaultConfig(),
		Store: StoreConfig{
			Output:   "layout.ahl",
			Compress: true,
		},
	}
}

// Load reads path over Default. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every section. The error wraps ErrInvalid and the
// package sentinel of the failing section.
func (c Config) Validate() error {
	if _, err := c.SlogLevel(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := c.Grid.gridConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := c.Search.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Batch.Workers < 0 {
		return fmt.Errorf("%w: batch workers %d", ErrInvalid, c.Batch.Workers)
	}
	return nil
}

// SlogLevel parses LogLevel ("debug", "info", "warn", "error").
func (c Config) SlogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return l, nil
}

// SearchOptions converts the search and batch sections into astar options.
func (c Config) SearchOptions(l *slog.Logger) []astar.Option {
	opts := []astar.Option{astar.WithConfig(c.Search), astar.WithLogger(l)}
	if c.Batch.Workers > 0 {
		opts = append(opts, astar.WithWorkers(c.Batch.Workers))
	}
	return opts
}

func (g GridConfig) gridConfig() grid.Config {
	return grid.Config{Width: g.Width, Height: g.Height, DefaultCell: cell.Code(g.DefaultCell)}
}

// Build creates the grid described by g: obstacles first, then starts and
// ends in listed order.
func (g GridConfig) Build() (*grid.Grid, error) {
	out, err := grid.New(g.Width, g.Height, cell.Code(g.DefaultCell))
	if err != nil {
		return nil, err
	}
	for _, r := range g.Obstacles {
		if err := out.FillRect(r.Top, r.Left, r.Bottom, r.Right, cell.Obstacle); err != nil {
			return nil, fmt.Errorf("obstacle %+v: %w", r, err)
		}
	}
	for _, p := range g.Starts {
		if _, err := out.AddStart(p.Row, p.Col); err != nil {
			return nil, fmt.Errorf("start %+v: %w", p, err)
		}
	}
	for _, p := range g.Ends {
		if _, err := out.AddEnd(p.Row, p.Col); err != nil {
			return nil, fmt.Errorf("end %+v: %w", p, err)
		}
	}
	return out, nil
}
