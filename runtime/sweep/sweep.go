package sweep

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/viant/scoreflow/internal/clock"
	"github.com/viant/scoreflow/internal/idgen"
	"github.com/viant/scoreflow/model/label"
	"github.com/viant/scoreflow/model/types"
	"github.com/viant/scoreflow/runtime/flow"
	"github.com/viant/scoreflow/tracing"
)

// Assignment binds a target entity to the flow that scores it.
type Assignment struct {
	Flow   label.FlowLabel
	Target types.EntityID
}

// Result holds the outputs of one scored target.
type Result struct {
	Flow   label.FlowLabel
	Target types.EntityID
	Scores flow.Scores
}

// Writer receives the collected sweep results once the read-only phase has
// finished; world mutation is deferred to this single-threaded write-back.
type Writer interface {
	ApplyScores(ctx context.Context, results []Result) error
}

const (
	defaultWorkers   = 4
	defaultBatchSize = 64
)

// Runner scores batches of assignments against a shared world. The flows are
// taken out of the registry for the duration of a sweep, initialized while
// held exclusively and then evaluated read-only in parallel.
type Runner struct {
	flows     *flow.Flows
	workers   int
	batchSize int
	logger    types.Logger
}

// Option customizes a runner.
type Option func(*Runner)

// WithWorkers caps the number of concurrent scoring goroutines.
func WithWorkers(workers int) Option {
	return func(r *Runner) {
		if workers > 0 {
			r.workers = workers
		}
	}
}

// WithBatchSize sets how many assignments one goroutine scores at a time.
func WithBatchSize(batchSize int) Option {
	return func(r *Runner) {
		if batchSize > 0 {
			r.batchSize = batchSize
		}
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(logger types.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// New creates a runner scoring against flows from the given registry.
func New(flows *flow.Flows, options ...Option) *Runner {
	result := &Runner{
		flows:     flows,
		workers:   defaultWorkers,
		batchSize: defaultBatchSize,
	}
	for _, option := range options {
		option(result)
	}
	result.logger = types.EnsureLogger(result.logger)
	return result
}

// Run scores every assignment and hands the collected results to the writer.
// Assignments referencing an absent flow are skipped with a warning. A panic
// while scoring one target is recovered and logged; the remaining targets of
// the sweep still run. Results keep the assignment order, with failed and
// skipped targets omitted.
func (r *Runner) Run(ctx context.Context, world types.World, writer Writer, assignments []Assignment) ([]Result, error) {
	runID := idgen.New()
	started := clock.Now()
	ctx, span := tracing.StartSpan(ctx, "sweep.run", "INTERNAL")
	span.WithAttributes(map[string]string{
		"sweep.id":          runID,
		"sweep.assignments": fmt.Sprintf("%d", len(assignments)),
	})
	var runErr error
	defer func() {
		tracing.EndSpan(span, runErr)
	}()

	flows, release, err := r.takeFlows(ctx, world, assignments)
	if err != nil {
		runErr = err
		return nil, err
	}
	defer release()

	results := make([]*Result, len(assignments))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(r.workers)
	for start := 0; start < len(assignments); start += r.batchSize {
		end := start + r.batchSize
		if end > len(assignments) {
			end = len(assignments)
		}
		start, end := start, end
		group.Go(func() error {
			for i := start; i < end; i++ {
				if err := groupCtx.Err(); err != nil {
					return err
				}
				assignment := assignments[i]
				assigned, ok := flows[assignment.Flow]
				if !ok {
					continue
				}
				if scores := r.score(assigned, world, assignment); scores != nil {
					results[i] = &Result{
						Flow:   assignment.Flow,
						Target: assignment.Target,
						Scores: scores,
					}
				}
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		runErr = err
		return nil, err
	}

	collected := make([]Result, 0, len(results))
	for _, item := range results {
		if item != nil {
			collected = append(collected, *item)
		}
	}
	if writer != nil {
		if err := writer.ApplyScores(ctx, collected); err != nil {
			runErr = fmt.Errorf("failed to apply sweep scores: %w", err)
			return collected, runErr
		}
	}
	r.logger.Printf("sweep %v scored %d of %d targets in %s", runID, len(collected), len(assignments), clock.Now().Sub(started))
	return collected, nil
}

// takeFlows takes every referenced flow out of the registry and initializes
// it while held exclusively, so the parallel phase runs on read-only flows.
func (r *Runner) takeFlows(ctx context.Context, world types.World, assignments []Assignment) (map[label.FlowLabel]*flow.Flow, func(), error) {
	taken := make(map[label.FlowLabel]*flow.Flow)
	release := func() {
		for flowLabel, item := range taken {
			r.flows.Return(flowLabel, item)
		}
	}
	for _, assignment := range assignments {
		if _, ok := taken[assignment.Flow]; ok {
			continue
		}
		item, err := r.flows.Take(assignment.Flow)
		if err != nil {
			var notFound *flow.NotFoundError
			if errors.As(err, &notFound) {
				r.logger.Printf("[WARN] skipping assignments of absent flow %v", assignment.Flow)
				continue
			}
			release()
			return nil, nil, err
		}
		if err := item.Init(ctx, world); err != nil {
			r.flows.Return(assignment.Flow, item)
			delete(taken, assignment.Flow)
			release()
			return nil, nil, err
		}
		taken[assignment.Flow] = item
	}
	return taken, release, nil
}

func (r *Runner) score(assigned *flow.Flow, world types.World, assignment Assignment) (scores flow.Scores) {
	defer func() {
		if recovered := recover(); recovered != nil {
			r.logger.Printf("[ERROR] scoring target %v with flow %v panicked: %v", assignment.Target, assignment.Flow, recovered)
			scores = nil
		}
	}()
	return assigned.RunReadonly(world, assignment.Target)
}
