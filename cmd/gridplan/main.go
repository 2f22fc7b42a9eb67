// Command gridplan plans routes between every start and end point of an
// occupancy grid and writes the result as a gridstore container.
//
// Usage:
//
//	gridplan [-config gridplan.yaml] [-in layout.ahl] [-out planned.ahl]
//
// Without -in the grid is built from the grid section of the config.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lvyv/auto-harness-layout/astar"
	"github.com/lvyv/auto-harness-layout/config"
	"github.com/lvyv/auto-harness-layout/grid"
	"github.com/lvyv/auto-harness-layout/gridgraph"
	"github.com/lvyv/auto-harness-layout/gridstore"
)

// defaultConfigPath is read when neither -config nor AHL_CONFIG is set.
const defaultConfigPath = "config/gridplan.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("gridplan", flag.ContinueOnError)
	fs.SetOutput(stdout)
	cfgPath := fs.String("config", "", "path to the YAML config (env AHL_CONFIG)")
	in := fs.String("in", "", "input container; empty builds the grid from the config")
	out := fs.String("out", "", "output container; overrides store.output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	path := *cfgPath
	if path == "" {
		path = defaultConfigPath
		if p := os.Getenv("AHL_CONFIG"); p != "" {
			path = p
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	logger.Info("config loaded", "path", path, "diagonal", cfg.Search.DiagonalMove, "sdf_weight", cfg.Search.SDFWeight)

	g, err := loadGrid(*in, cfg, logger)
	if err != nil {
		return err
	}
	logger.Info("grid ready",
		"width", g.Width(), "height", g.Height(),
		"starts", len(g.Starts()), "ends", len(g.Ends()))

	sum, err := astar.Plan(ctx, g, cfg.SearchOptions(logger)...)
	if err != nil {
		return fmt.Errorf("planning: %w", err)
	}
	logger.Info("planning done", "total", sum.Total, "found", sum.Found, "failed", sum.Failed)

	if cfg.Batch.Breach && sum.Failed > 0 {
		if err := reportBreaches(g, cfg.Search.DiagonalMove, logger); err != nil {
			return err
		}
	}

	dst := cfg.Store.Output
	if *out != "" {
		dst = *out
	}
	if err := gridstore.SaveFile(dst, g, gridstore.WithCompression(cfg.Store.Compress), gridstore.WithLogger(logger)); err != nil {
		return fmt.Errorf("saving %s: %w", dst, err)
	}
	logger.Info("layout saved", "path", dst, "paths", len(g.PathKeys()))
	return nil
}

func loadGrid(in string, cfg config.Config, logger *slog.Logger) (*grid.Grid, error) {
	if in == "" {
		g, err := cfg.Grid.Build()
		if err != nil {
			return nil, fmt.Errorf("building grid: %w", err)
		}
		return g, nil
	}
	g, err := gridstore.LoadFile(in, gridstore.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", in, err)
	}
	return g, nil
}

// reportBreaches logs, for every pair without a stored path, how many
// obstacle cells separate it and where the cheapest breach starts.
func reportBreaches(g *grid.Grid, diagonal bool, logger *slog.Logger) error {
	conn := gridgraph.Conn4
	if diagonal {
		conn = gridgraph.Conn8
	}
	gg, err := gridgraph.New(g.View(), gridgraph.Options{Conn: conn})
	if err != nil {
		return fmt.Errorf("breach analysis: %w", err)
	}
	for si, s := range g.Starts() {
		for ei, e := range g.Ends() {
			if _, ok := g.Path(si, ei); ok {
				continue
			}
			route, cost, err := gg.Breach(s, e)
			if err != nil {
				if errors.Is(err, gridgraph.ErrOutOfBounds) {
					continue
				}
				return fmt.Errorf("breach %v->%v: %w", s, e, err)
			}
			logger.Warn("pair unreachable",
				"pair", grid.PathKey{Start: si, End: ei}.String(),
				"start", s.String(), "end", e.String(),
				"obstacles", cost, "route_len", len(route))
		}
	}
	return nil
}
