package graph

import (
	"context"
	"fmt"

	"github.com/viant/scoreflow/model/label"
	"github.com/viant/scoreflow/model/score"
	"github.com/viant/scoreflow/model/types"
)

// NodeConfig describes a not-yet-registered flow node: its computation, an
// optional output label and - for aggregators - the children configs. Configs
// are lowered into a flow graph exactly once when added to a flow.
type NodeConfig struct {
	// Evaluator holds the computation of an evaluator node.
	Evaluator types.Evaluator
	// Aggregator holds the computation of an aggregator node.
	Aggregator types.Aggregator
	// Label optionally names the node output.
	Label *label.ScoreLabel
	// Children holds the children configs of an aggregator node, in
	// registration order.
	Children NodeConfigs
}

// NodeConfigs is a collection of node configs.
type NodeConfigs []*NodeConfig

// Evaluator creates a config for an evaluator node.
func Evaluator(evaluator types.Evaluator) *NodeConfig {
	return &NodeConfig{Evaluator: evaluator}
}

// Aggregator creates a config for an aggregator node with the given children
// configs.
func Aggregator(aggregator types.Aggregator, children ...*NodeConfig) *NodeConfig {
	return &NodeConfig{Aggregator: aggregator, Children: children}
}

// WithLabel names the node output with the given score label.
func (c *NodeConfig) WithLabel(scoreLabel label.ScoreLabel) *NodeConfig {
	c.Label = &scoreLabel
	return c
}

// WithChildren appends children configs; valid on aggregator configs only.
func (c *NodeConfig) WithChildren(children ...*NodeConfig) *NodeConfig {
	if c.Aggregator == nil {
		panic("graph: children can only be attached to an aggregator config")
	}
	c.Children = append(c.Children, children...)
	return c
}

// Kind returns "evaluator" or "aggregator".
func (c *NodeConfig) Kind() string {
	if c.Aggregator != nil {
		return "aggregator"
	}
	return "evaluator"
}

// Name returns the display name of the configured computation.
func (c *NodeConfig) Name() string {
	if c.Aggregator != nil {
		return c.Aggregator.Name()
	}
	if c.Evaluator != nil {
		return c.Evaluator.Name()
	}
	return "empty"
}

// Difference creates an aggregator config computing the clamped difference
// minuend - subtrahend. The underlying aggregator is strictly 2-ary and is
// not exposed for general use.
func Difference(minuend, subtrahend *NodeConfig) *NodeConfig {
	return Aggregator(differenceAggregator{}, minuend, subtrahend)
}

type differenceAggregator struct{}

func (d differenceAggregator) Name() string {
	return "difference"
}

func (d differenceAggregator) Init(ctx context.Context, world types.World) error {
	return nil
}

func (d differenceAggregator) Aggregate(aggregation types.Aggregation) score.Score {
	if len(aggregation.Scores) != 2 {
		panic(fmt.Sprintf("graph: difference requires exactly 2 children scores, got %d", len(aggregation.Scores)))
	}
	return aggregation.Scores[0].Sub(aggregation.Scores[1])
}
