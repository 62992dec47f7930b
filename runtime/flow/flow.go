package flow

import (
	"context"
	"fmt"

	"github.com/viant/scoreflow/model/graph"
	"github.com/viant/scoreflow/model/label"
	"github.com/viant/scoreflow/model/score"
	"github.com/viant/scoreflow/model/types"
)

// Scores holds the labeled outputs of one flow run.
type Scores map[label.ScoreLabel]score.Score

// Score returns the output bound to the given label.
func (s Scores) Score(scoreLabel label.ScoreLabel) (score.Score, bool) {
	result, ok := s[scoreLabel]
	return result, ok
}

// Flow owns a scoring graph and evaluates it bottom-up for one target at a
// time. Registration and initialization mutate the flow and need exclusive
// ownership; evaluation itself is read-only, so one initialized Flow can score
// many targets concurrently.
type Flow struct {
	graph         *flowGraph
	uninitialized []nodeID
	logger        types.Logger
}

// Option customizes a new flow.
type Option func(*Flow)

// WithLogger sets the diagnostics logger.
func WithLogger(logger types.Logger) Option {
	return func(f *Flow) {
		f.logger = logger
	}
}

// New creates an empty flow.
func New(options ...Option) *Flow {
	result := &Flow{graph: newFlowGraph()}
	for _, option := range options {
		option(result)
	}
	result.logger = types.EnsureLogger(result.logger)
	return result
}

// AddNodes registers the given node configs and their children with the flow.
// A top-level config without a label produces an output nobody can read, so
// it is skipped with a warning. A config whose label is already bound keeps
// the first binding; the new node still computes but its output stays
// unlabeled. Added nodes require an Init call before the flow can run.
func (f *Flow) AddNodes(configs ...*graph.NodeConfig) {
	added := false
	for _, config := range configs {
		if config == nil {
			continue
		}
		if config.Label == nil {
			f.logger.Printf("[WARN] skipped unlabeled top-level node %v, its output would be unreachable", config.Name())
			continue
		}
		f.lower(config)
		added = true
	}
	if added {
		f.graph.refresh()
	}
}

func (f *Flow) lower(config *graph.NodeConfig) nodeID {
	var id nodeID
	if config.Aggregator != nil {
		id = f.graph.addAggregator(config.Aggregator)
		for _, child := range config.Children {
			if child == nil {
				continue
			}
			f.graph.connect(f.lower(child), id)
		}
	} else {
		id = f.graph.addEvaluator(config.Evaluator)
	}
	f.uninitialized = append(f.uninitialized, id)
	if config.Label != nil {
		if bound, ok := f.graph.labels[*config.Label]; ok {
			f.logger.Printf("[ERROR] label %v already bound to node %v, keeping the first binding", *config.Label, f.graph.name(bound))
		} else {
			f.graph.labels[*config.Label] = id
		}
	}
	return id
}

// Init initializes every node added since the last call, in registration
// order. On failure the failed node and the nodes after it stay uninitialized
// so that a later call can retry.
func (f *Flow) Init(ctx context.Context, world types.World) error {
	for len(f.uninitialized) > 0 {
		id := f.uninitialized[0]
		var err error
		if id.kind == kindAggregator {
			err = f.graph.aggregators[id.index].Init(ctx, world)
		} else {
			err = f.graph.evaluators[id.index].Init(ctx, world)
		}
		if err != nil {
			return fmt.Errorf("failed to init node %v: %w", f.graph.name(id), err)
		}
		f.uninitialized = f.uninitialized[1:]
	}
	return nil
}

// Initialized reports whether every registered node has been initialized.
func (f *Flow) Initialized() bool {
	return len(f.uninitialized) == 0
}

// Labels returns the bound output labels.
func (f *Flow) Labels() []label.ScoreLabel {
	result := make([]label.ScoreLabel, 0, len(f.graph.labels))
	for item := range f.graph.labels {
		result = append(result, item)
	}
	return result
}

// Size returns the number of registered nodes.
func (f *Flow) Size() int {
	return len(f.graph.nodes)
}

// Run initializes any pending nodes and evaluates the flow for the target.
func (f *Flow) Run(ctx context.Context, world types.World, target types.EntityID) (Scores, error) {
	if err := f.Init(ctx, world); err != nil {
		return nil, err
	}
	return f.RunReadonly(world, target), nil
}

// RunReadonly evaluates the flow for the target without touching flow state,
// so concurrent calls against a shared world are safe. It panics when the
// flow holds uninitialized nodes; running an uninitialized flow is a
// programming error.
func (f *Flow) RunReadonly(world types.World, target types.EntityID) Scores {
	if len(f.uninitialized) > 0 {
		panic(fmt.Sprintf("flow: run before init, %d nodes uninitialized", len(f.uninitialized)))
	}
	buffers := make(map[nodeID][]score.Score, len(f.graph.aggregators))
	filled := make(map[nodeID]int, len(f.graph.aggregators))
	for id, children := range f.graph.children {
		buffers[id] = make([]score.Score, len(children))
	}
	values := make(map[nodeID]score.Score, len(f.graph.order))
	for _, id := range f.graph.order {
		var value score.Score
		if id.kind == kindAggregator {
			buffer := buffers[id]
			if filled[id] != len(buffer) {
				panic(fmt.Sprintf("flow: aggregator %v received %d of %d children scores", f.graph.name(id), filled[id], len(buffer)))
			}
			value = f.graph.aggregators[id.index].Aggregate(types.Aggregation{
				World:  world,
				Target: target,
				Scores: buffer,
			})
		} else {
			value = f.graph.evaluators[id.index].Evaluate(types.Evaluation{
				World:  world,
				Target: target,
			})
		}
		values[id] = value
		if parent, ok := f.graph.parents[id]; ok {
			buffers[parent][f.graph.childIndex[id]] = value
			filled[parent]++
		}
	}
	results := make(Scores, len(f.graph.labels))
	for scoreLabel, id := range f.graph.labels {
		results[scoreLabel] = values[id]
	}
	return results
}
