// Package astar defines core types, configuration options and sentinel
// errors for distance-penalized A* search on occupancy grids.
package astar

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/lvyv/auto-harness-layout/cell"
)

// Sentinel errors returned by the search functions.
var (
	// ErrInvalidPosition indicates a start or goal that is out of bounds or
	// not traversable.
	ErrInvalidPosition = errors.New("astar: invalid start or goal position")

	// ErrInvalidConfig indicates a Config outside its declared bounds. It is
	// always wrapped together with the field-specific sentinel below.
	ErrInvalidConfig = errors.New("astar: invalid search configuration")

	// ErrBadSDFWeight indicates SDFWeight outside [0, MaxSDFWeight].
	ErrBadSDFWeight = errors.New("astar: SDFWeight must be within [0,10]")

	// ErrBadMaxIterations indicates MaxIterations <= 0.
	ErrBadMaxIterations = errors.New("astar: MaxIterations must be positive")

	// ErrBadEpsilon indicates Epsilon <= 0.
	ErrBadEpsilon = errors.New("astar: Epsilon must be positive")

	// ErrNoStarts indicates Plan was called on a grid without start points.
	ErrNoStarts = errors.New("astar: grid has no start points")

	// ErrNoEnds indicates Plan was called on a grid without end points.
	ErrNoEnds = errors.New("astar: grid has no end points")
)

// MaxSDFWeight is the upper bound accepted for Config.SDFWeight.
const MaxSDFWeight = 10.0

// Config is the validated parameter bundle of a search.
//
// DiagonalMove  – 8-connected moves (diagonal cost √2) instead of 4-connected.
// SDFWeight     – weight of the obstacle-proximity penalty, in [0,10].
// MaxIterations – heap pops allowed before the search gives up, > 0.
// Epsilon       – added to the distance field before division, > 0.
type Config struct {
	DiagonalMove  bool    `yaml:"diagonal_move"`
	SDFWeight     float64 `yaml:"sdf_weight"`
	MaxIterations int     `yaml:"max_iterations"`
	Epsilon       float64 `yaml:"epsilon"`
}

// DefaultConfig returns the default search parameters:
//   - DiagonalMove:  false
//   - SDFWeight:     0.5
//   - MaxIterations: 1,000,000
//   - Epsilon:       0.1
func DefaultConfig() Config {
	return Config{
		DiagonalMove:  false,
		SDFWeight:     0.5,
		MaxIterations: 1_000_000,
		Epsilon:       0.1,
	}
}

// NewConfig builds a Config and validates it. Values are never clamped.
func NewConfig(diagonal bool, sdfWeight float64, maxIterations int, epsilon float64) (Config, error) {
	c := Config{
		DiagonalMove:  diagonal,
		SDFWeight:     sdfWeight,
		MaxIterations: maxIterations,
		Epsilon:       epsilon,
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate reports the first field outside its bounds. The returned error
// matches both ErrInvalidConfig and the field sentinel under errors.Is.
func (c Config) Validate() error {
	// negated form so NaN is rejected too
	if !(c.SDFWeight >= 0 && c.SDFWeight <= MaxSDFWeight) {
		return fmt.Errorf("%w: %w: got %v", ErrInvalidConfig, ErrBadSDFWeight, c.SDFWeight)
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("%w: %w: got %d", ErrInvalidConfig, ErrBadMaxIterations, c.MaxIterations)
	}
	if !(c.Epsilon > 0) {
		return fmt.Errorf("%w: %w: got %v", ErrInvalidConfig, ErrBadEpsilon, c.Epsilon)
	}
	return nil
}

// Options configures Search, Batch and Plan.
//
// Config  – search parameters, validated on every call.
// Workers – batch worker count; values <= 0 mean runtime.NumCPU().
// Logger  – structured logger; nil means slog.Default().
type Options struct {
	Config  Config
	Workers int
	Logger  *slog.Logger
}

// Option represents a functional option for configuring a search.
type Option func(*Options)

// DefaultOptions returns DefaultConfig with one worker per CPU and the
// default logger.
func DefaultOptions() Options {
	return Options{
		Config:  DefaultConfig(),
		Workers: runtime.NumCPU(),
	}
}

// WithConfig replaces the whole search configuration.
func WithConfig(c Config) Option {
	return func(o *Options) { o.Config = c }
}

// WithDiagonalMove enables or disables 8-connected moves.
func WithDiagonalMove(on bool) Option {
	return func(o *Options) { o.Config.DiagonalMove = on }
}

// WithSDFWeight sets the obstacle-proximity weight. Out-of-range values are
// reported by the search as ErrBadSDFWeight.
func WithSDFWeight(w float64) Option {
	return func(o *Options) { o.Config.SDFWeight = w }
}

// WithMaxIterations sets the heap-pop budget.
func WithMaxIterations(n int) Option {
	return func(o *Options) { o.Config.MaxIterations = n }
}

// WithEpsilon sets the distance-field offset.
func WithEpsilon(eps float64) Option {
	return func(o *Options) { o.Config.Epsilon = eps }
}

// WithWorkers bounds the number of concurrent batch searches.
func WithWorkers(n int) Option {
	return func(o *Options) { o.Workers = n }
}

// WithLogger routes diagnostic output to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// buildOptions applies opts over DefaultOptions and fills defaults.
func buildOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// Result is the outcome of one search.
//
// Found is false for NoPath, in which case Path is nil. Cost is the sum of
// edge costs along Path. Expanded counts nodes closed before the goal was
// popped.
type Result struct {
	Path     []cell.Point
	Cost     float64
	Expanded int
	Found    bool

	reason stopReason
}

// Pair is one (start, goal) query of a batch.
type Pair struct {
	Start, Goal cell.Point
}

// Summary counts the outcome of Plan.
type Summary struct {
	Total  int // pairs searched
	Found  int // pairs with a stored path
	Failed int // pairs without a path
}

// stopReason explains why a search ended.
type stopReason uint8

const (
	stopFound stopReason = iota
	stopExhausted
	stopIterationCap
	stopUnreachable
	stopInvalid
)

var reasonNames = [...]string{
	stopFound:        "found",
	stopExhausted:    "exhausted",
	stopIterationCap: "iteration_cap",
	stopUnreachable:  "unreachable",
	stopInvalid:      "invalid",
}

func (r stopReason) String() string {
	if int(r) < len(reasonNames) {
		return reasonNames[r]
	}
	return "unknown"
}
