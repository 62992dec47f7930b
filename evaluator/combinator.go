package evaluator

import (
	"context"
	"fmt"

	"github.com/viant/scoreflow/model/curve"
	"github.com/viant/scoreflow/model/score"
	"github.com/viant/scoreflow/model/types"
)

// Map replaces the evaluator output with the mapped output.
func Map(evaluator types.Evaluator, mapper types.Mapper) types.Evaluator {
	return &mapEvaluator{evaluator: evaluator, mapper: mapper}
}

type mapEvaluator struct {
	evaluator types.Evaluator
	mapper    types.Mapper
}

func (e *mapEvaluator) Name() string {
	return fmt.Sprintf("%s.map(%s)", e.evaluator.Name(), e.mapper.Name())
}

func (e *mapEvaluator) Init(ctx context.Context, world types.World) error {
	if err := e.mapper.Init(ctx, world); err != nil {
		return err
	}
	return e.evaluator.Init(ctx, world)
}

func (e *mapEvaluator) Evaluate(evaluation types.Evaluation) score.Score {
	value := e.evaluator.Evaluate(evaluation)
	return e.mapper.Map(types.Mapping{
		World:  evaluation.World,
		Target: evaluation.Target,
		Value:  value,
	})
}

// Invert replaces the evaluator output with one minus the output.
func Invert(evaluator types.Evaluator) types.Evaluator {
	return &invertEvaluator{evaluator: evaluator}
}

type invertEvaluator struct {
	evaluator types.Evaluator
}

func (e *invertEvaluator) Name() string {
	return fmt.Sprintf("%s.invert()", e.evaluator.Name())
}

func (e *invertEvaluator) Init(ctx context.Context, world types.World) error {
	return e.evaluator.Init(ctx, world)
}

func (e *invertEvaluator) Evaluate(evaluation types.Evaluation) score.Score {
	return score.New(1 - e.evaluator.Evaluate(evaluation).Value())
}

// Weight multiplies the evaluator output by the given weight.
func Weight(evaluator types.Evaluator, weight score.Score) types.Evaluator {
	return &weightEvaluator{evaluator: evaluator, weight: weight}
}

type weightEvaluator struct {
	evaluator types.Evaluator
	weight    score.Score
}

func (e *weightEvaluator) Name() string {
	return fmt.Sprintf("%s.weight(%v)", e.evaluator.Name(), e.weight)
}

func (e *weightEvaluator) Init(ctx context.Context, world types.World) error {
	return e.evaluator.Init(ctx, world)
}

func (e *weightEvaluator) Evaluate(evaluation types.Evaluation) score.Score {
	return e.evaluator.Evaluate(evaluation).Mul(e.weight)
}

// Curve samples the given curve at the evaluator output; when the curve
// cannot be sampled the result is the minimum score.
func Curve(evaluator types.Evaluator, shape curve.Curve) types.Evaluator {
	return &curveEvaluator{evaluator: evaluator, shape: shape}
}

type curveEvaluator struct {
	evaluator types.Evaluator
	shape     curve.Curve
}

func (e *curveEvaluator) Name() string {
	return fmt.Sprintf("%s.curve(%T)", e.evaluator.Name(), e.shape)
}

func (e *curveEvaluator) Init(ctx context.Context, world types.World) error {
	return e.evaluator.Init(ctx, world)
}

func (e *curveEvaluator) Evaluate(evaluation types.Evaluation) score.Score {
	value, ok := e.shape.Sample(e.evaluator.Evaluate(evaluation).Value())
	if !ok {
		return score.Min
	}
	return score.New(value)
}

// Threshold forces the minimum score whenever the evaluator output is below
// the threshold; outputs at or above it pass through unchanged.
func Threshold(evaluator types.Evaluator, threshold score.Score) types.Evaluator {
	return &thresholdEvaluator{evaluator: evaluator, threshold: threshold}
}

type thresholdEvaluator struct {
	evaluator types.Evaluator
	threshold score.Score
}

func (e *thresholdEvaluator) Name() string {
	return fmt.Sprintf("%s.threshold(%v)", e.evaluator.Name(), e.threshold)
}

func (e *thresholdEvaluator) Init(ctx context.Context, world types.World) error {
	return e.evaluator.Init(ctx, world)
}

func (e *thresholdEvaluator) Evaluate(evaluation types.Evaluation) score.Score {
	result := e.evaluator.Evaluate(evaluation)
	if result.Less(e.threshold) {
		return score.Min
	}
	return result
}
