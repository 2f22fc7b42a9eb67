package astar

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/lvyv/auto-harness-layout/cell"
	"github.com/lvyv/auto-harness-layout/grid"
	"github.com/lvyv/auto-harness-layout/gridgraph"
	"github.com/lvyv/auto-harness-layout/sdf"
)

const tracerName = "github.com/lvyv/auto-harness-layout/astar"

// Batch searches every (start, goal) pair of the cross product starts×goals
// and returns one Result per distinct pair.
//
// Per-pair invalid positions are recorded as NoPath results. The distance
// field is read once on the calling goroutine; pairs then run on at most
// Options.Workers goroutines sharing read-only access to the grid. Pairs whose
// endpoints lie in different connected components are answered NoPath
// without a search.
//
// The context is checked between pairs; on cancellation Batch returns
// ctx.Err() and no results. An invalid configuration fails the whole batch.
// g must not be mutated until Batch returns.
func Batch(ctx context.Context, g *grid.Grid, starts, goals []cell.Point, opts ...Option) (map[Pair]Result, error) {
	o := buildOptions(opts)
	if err := o.Config.Validate(); err != nil {
		return nil, err
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "astar.Batch",
		trace.WithAttributes(
			attribute.Int("starts", len(starts)),
			attribute.Int("goals", len(goals)),
			attribute.Int("workers", o.Workers),
			attribute.Bool("diagonal", o.Config.DiagonalMove),
		),
	)
	defer span.End()
	began := time.Now()

	pairs := crossProduct(starts, goals)
	v := g.View()
	field := g.DistanceField()
	labels := label(v, o.Config.DiagonalMove)
	span.AddEvent("field_ready")

	results := make([]Result, len(pairs))
	eg, ectx := errgroup.WithContext(ctx)
	eg.SetLimit(o.Workers)
	for i, p := range pairs {
		if ectx.Err() != nil {
			break
		}
		eg.Go(func() error {
			if err := ectx.Err(); err != nil {
				return err
			}
			results[i] = solve(v, field, labels, p, o.Config)
			return nil
		})
	}
	err := eg.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "batch cancelled")
		return nil, err
	}

	out := make(map[Pair]Result, len(pairs))
	found := 0
	for i, p := range pairs {
		res := results[i]
		record(res)
		logOutcome(o.Logger, p.Start, p.Goal, res)
		if res.Found {
			found++
		}
		out[p] = res
	}

	elapsed := time.Since(began)
	batchDuration.Observe(elapsed.Seconds())
	span.SetAttributes(attribute.Int("pairs", len(pairs)), attribute.Int("found", found))
	span.SetStatus(codes.Ok, "")
	o.Logger.Info("astar: batch complete",
		slog.Int("pairs", len(pairs)),
		slog.Int("found", found),
		slog.Int("workers", o.Workers),
		slog.Duration("duration", elapsed))
	return out, nil
}

// Plan runs Batch over g.Starts()×g.Ends() and stores every found path on g
// with SetPath(startIdx, endIdx, path). Previously stored paths are cleared
// first. Requires at least one start (ErrNoStarts) and one end (ErrNoEnds).
func Plan(ctx context.Context, g *grid.Grid, opts ...Option) (Summary, error) {
	starts, ends := g.Starts(), g.Ends()
	if len(starts) == 0 {
		return Summary{}, ErrNoStarts
	}
	if len(ends) == 0 {
		return Summary{}, ErrNoEnds
	}
	if err := buildOptions(opts).Config.Validate(); err != nil {
		return Summary{}, err
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "astar.Plan")
	defer span.End()

	g.ClearPaths()
	results, err := Batch(ctx, g, starts, ends, opts...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "batch failed")
		return Summary{}, err
	}

	var sum Summary
	for si, s := range starts {
		for ei, e := range ends {
			sum.Total++
			res := results[Pair{Start: s, Goal: e}]
			if !res.Found {
				sum.Failed++
				continue
			}
			if err := g.SetPath(si, ei, res.Path); err != nil {
				span.RecordError(err)
				return sum, err
			}
			sum.Found++
		}
	}
	span.SetAttributes(attribute.Int("found", sum.Found), attribute.Int("failed", sum.Failed))
	return sum, nil
}

// crossProduct lists the distinct pairs of starts×goals in start-major order.
func crossProduct(starts, goals []cell.Point) []Pair {
	seen := make(map[Pair]struct{}, len(starts)*len(goals))
	pairs := make([]Pair, 0, len(starts)*len(goals))
	for _, s := range starts {
		for _, t := range goals {
			p := Pair{Start: s, Goal: t}
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			pairs = append(pairs, p)
		}
	}
	return pairs
}

// label computes connected components with the connectivity the search uses.
func label(v grid.View, diagonal bool) *gridgraph.Labels {
	conn := gridgraph.Conn4
	if diagonal {
		conn = gridgraph.Conn8
	}
	gg, err := gridgraph.New(v, gridgraph.Options{Conn: conn})
	if err != nil {
		return nil
	}
	return gg.Label()
}

// solve answers one pair against shared read-only state.
func solve(v grid.View, f *sdf.Field, labels *gridgraph.Labels, p Pair, cfg Config) Result {
	if checkEndpoints(v, p.Start, p.Goal) != nil {
		return Result{reason: stopInvalid}
	}
	if p.Start == p.Goal {
		return single(p.Start)
	}
	if labels != nil && !labels.Connected(p.Start, p.Goal) {
		return Result{reason: stopUnreachable}
	}
	return run(v, f, p.Start, p.Goal, cfg)
}
