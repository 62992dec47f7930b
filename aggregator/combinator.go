package aggregator

import (
	"context"
	"fmt"

	"github.com/viant/scoreflow/model/curve"
	"github.com/viant/scoreflow/model/score"
	"github.com/viant/scoreflow/model/types"
)

// Map replaces the aggregator output with the mapped output.
func Map(aggregator types.Aggregator, mapper types.Mapper) types.Aggregator {
	return &mapAggregator{aggregator: aggregator, mapper: mapper}
}

type mapAggregator struct {
	aggregator types.Aggregator
	mapper     types.Mapper
}

func (a *mapAggregator) Name() string {
	return fmt.Sprintf("%s.map(%s)", a.aggregator.Name(), a.mapper.Name())
}

func (a *mapAggregator) Init(ctx context.Context, world types.World) error {
	if err := a.mapper.Init(ctx, world); err != nil {
		return err
	}
	return a.aggregator.Init(ctx, world)
}

func (a *mapAggregator) Aggregate(aggregation types.Aggregation) score.Score {
	value := a.aggregator.Aggregate(aggregation)
	return a.mapper.Map(types.Mapping{
		World:  aggregation.World,
		Target: aggregation.Target,
		Value:  value,
	})
}

// Invert replaces the aggregator output with one minus the output.
func Invert(aggregator types.Aggregator) types.Aggregator {
	return &invertAggregator{aggregator: aggregator}
}

type invertAggregator struct {
	aggregator types.Aggregator
}

func (a *invertAggregator) Name() string {
	return fmt.Sprintf("%s.invert()", a.aggregator.Name())
}

func (a *invertAggregator) Init(ctx context.Context, world types.World) error {
	return a.aggregator.Init(ctx, world)
}

func (a *invertAggregator) Aggregate(aggregation types.Aggregation) score.Score {
	return score.New(1 - a.aggregator.Aggregate(aggregation).Value())
}

// Weight multiplies the aggregator output by the given weight.
func Weight(aggregator types.Aggregator, weight score.Score) types.Aggregator {
	return &weightAggregator{aggregator: aggregator, weight: weight}
}

type weightAggregator struct {
	aggregator types.Aggregator
	weight     score.Score
}

func (a *weightAggregator) Name() string {
	return fmt.Sprintf("%s.weight(%v)", a.aggregator.Name(), a.weight)
}

func (a *weightAggregator) Init(ctx context.Context, world types.World) error {
	return a.aggregator.Init(ctx, world)
}

func (a *weightAggregator) Aggregate(aggregation types.Aggregation) score.Score {
	return a.aggregator.Aggregate(aggregation).Mul(a.weight)
}

// Curve samples the given curve at the aggregator output; when the curve
// cannot be sampled the result is the minimum score.
func Curve(aggregator types.Aggregator, shape curve.Curve) types.Aggregator {
	return &curveAggregator{aggregator: aggregator, shape: shape}
}

type curveAggregator struct {
	aggregator types.Aggregator
	shape      curve.Curve
}

func (a *curveAggregator) Name() string {
	return fmt.Sprintf("%s.curve(%T)", a.aggregator.Name(), a.shape)
}

func (a *curveAggregator) Init(ctx context.Context, world types.World) error {
	return a.aggregator.Init(ctx, world)
}

func (a *curveAggregator) Aggregate(aggregation types.Aggregation) score.Score {
	value, ok := a.shape.Sample(a.aggregator.Aggregate(aggregation).Value())
	if !ok {
		return score.Min
	}
	return score.New(value)
}

// CurveInput samples the given curve at each children score before the
// wrapped aggregator runs; children scores that fail to sample are dropped
// from the input set entirely.
func CurveInput(aggregator types.Aggregator, shape curve.Curve) types.Aggregator {
	return &curveInputAggregator{aggregator: aggregator, shape: shape}
}

type curveInputAggregator struct {
	aggregator types.Aggregator
	shape      curve.Curve
}

func (a *curveInputAggregator) Name() string {
	return fmt.Sprintf("%s.curve_input(%T)", a.aggregator.Name(), a.shape)
}

func (a *curveInputAggregator) Init(ctx context.Context, world types.World) error {
	return a.aggregator.Init(ctx, world)
}

func (a *curveInputAggregator) Aggregate(aggregation types.Aggregation) score.Score {
	curved := make([]score.Score, 0, len(aggregation.Scores))
	for _, item := range aggregation.Scores {
		if value, ok := a.shape.Sample(item.Value()); ok {
			curved = append(curved, score.New(value))
		}
	}
	return a.aggregator.Aggregate(types.Aggregation{
		World:  aggregation.World,
		Target: aggregation.Target,
		Scores: curved,
	})
}

// Threshold forces the minimum score whenever the aggregator output is below
// the threshold; outputs at or above it pass through unchanged.
func Threshold(aggregator types.Aggregator, threshold score.Score) types.Aggregator {
	return &thresholdAggregator{aggregator: aggregator, threshold: threshold}
}

type thresholdAggregator struct {
	aggregator types.Aggregator
	threshold  score.Score
}

func (a *thresholdAggregator) Name() string {
	return fmt.Sprintf("%s.threshold(%v)", a.aggregator.Name(), a.threshold)
}

func (a *thresholdAggregator) Init(ctx context.Context, world types.World) error {
	return a.aggregator.Init(ctx, world)
}

func (a *thresholdAggregator) Aggregate(aggregation types.Aggregation) score.Score {
	result := a.aggregator.Aggregate(aggregation)
	if result.Less(a.threshold) {
		return score.Min
	}
	return result
}

// InputThreshold forces the minimum score whenever any children score is
// below the threshold, without invoking the wrapped aggregator; otherwise the
// aggregation passes through to it.
func InputThreshold(aggregator types.Aggregator, threshold score.Score) types.Aggregator {
	return &inputThresholdAggregator{aggregator: aggregator, threshold: threshold}
}

type inputThresholdAggregator struct {
	aggregator types.Aggregator
	threshold  score.Score
}

func (a *inputThresholdAggregator) Name() string {
	return fmt.Sprintf("%s.input_threshold(%v)", a.aggregator.Name(), a.threshold)
}

func (a *inputThresholdAggregator) Init(ctx context.Context, world types.World) error {
	return a.aggregator.Init(ctx, world)
}

func (a *inputThresholdAggregator) Aggregate(aggregation types.Aggregation) score.Score {
	for _, item := range aggregation.Scores {
		if item.Less(a.threshold) {
			return score.Min
		}
	}
	return a.aggregator.Aggregate(aggregation)
}

// ScoreChildren converts an aggregator into an evaluator: the named component
// of each direct child entity of the target is scored (children lacking the
// component are skipped) and the collected scores are aggregated. When no
// child qualifies the evaluator returns the minimum score.
func ScoreChildren(aggregator types.Aggregator, component string) types.Evaluator {
	return &childrenEvaluator{aggregator: aggregator, component: component}
}

type childrenEvaluator struct {
	aggregator types.Aggregator
	component  string
}

func (e *childrenEvaluator) Name() string {
	return fmt.Sprintf("%s.score_children(%s)", e.aggregator.Name(), e.component)
}

func (e *childrenEvaluator) Init(ctx context.Context, world types.World) error {
	return e.aggregator.Init(ctx, world)
}

func (e *childrenEvaluator) Evaluate(evaluation types.Evaluation) score.Score {
	var scores []score.Score
	for _, child := range evaluation.World.Children(evaluation.Target) {
		value, ok := evaluation.World.Component(child, e.component)
		if !ok {
			continue
		}
		if item, ok := score.Of(value); ok {
			scores = append(scores, item)
		}
	}
	if len(scores) == 0 {
		return score.Min
	}
	return e.aggregator.Aggregate(types.Aggregation{
		World:  evaluation.World,
		Target: evaluation.Target,
		Scores: scores,
	})
}
