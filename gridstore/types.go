package gridstore

import (
	"errors"
	"log/slog"
	"time"
)

// Sentinel errors for persistence.
var (
	// ErrUnsupportedVersion indicates a container revision or metadata
	// version this package cannot read, including a missing version.
	ErrUnsupportedVersion = errors.New("gridstore: unsupported version")
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("gridstore: file not found")
	// ErrCorrupt indicates structural damage: bad magic, truncated data,
	// malformed required records or values violating grid invariants.
	ErrCorrupt = errors.New("gridstore: corrupt container")
)

// Version is the metadata version written by Save.
const Version = "1.0"

// Record names.
const (
	recCells       = "cells"
	recStarts      = "starts"
	recEnds        = "ends"
	recWidth       = "config_width"
	recHeight      = "config_height"
	recDefaultCell = "config_default_cell"
	recVersion     = "metadata_version"
	recTimestamp   = "metadata_timestamp"
	pathPrefix     = "path_"
)

// Metadata summarises a stored grid without restoring it.
type Metadata struct {
	Version    string
	Timestamp  time.Time // zero if the stored value does not parse
	Width      int
	Height     int
	Starts     int
	Ends       int
	Paths      int
	Compressed bool
}

// Options configures Save and Load.
//
// Compress – zstd-compress the payload on Save (default true).
// Clock    – source of metadata_timestamp (default time.Now).
// Logger   – receives warnings about skipped records (default slog.Default()).
type Options struct {
	Compress bool
	Clock    func() time.Time
	Logger   *slog.Logger
}

// Option represents a functional option for Save and Load.
type Option func(*Options)

// DefaultOptions returns compressed output stamped with the wall clock.
func DefaultOptions() Options {
	return Options{Compress: true, Clock: time.Now}
}

// WithCompression enables or disables zstd payload compression.
func WithCompression(on bool) Option {
	return func(o *Options) { o.Compress = on }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(o *Options) { o.Clock = now }
}

// WithLogger routes warnings to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

func buildOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}
