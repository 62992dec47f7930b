package evaluator

import (
	"context"
	"fmt"

	"github.com/viant/scoreflow/model/score"
	"github.com/viant/scoreflow/model/types"
)

// Constant returns an evaluator yielding the same score for every target.
func Constant(value score.Score) types.Evaluator {
	return constantEvaluator{value: value}
}

type constantEvaluator struct {
	value score.Score
}

func (e constantEvaluator) Name() string {
	return fmt.Sprintf("constant(%v)", e.value)
}

func (e constantEvaluator) Init(ctx context.Context, world types.World) error {
	return nil
}

func (e constantEvaluator) Evaluate(evaluation types.Evaluation) score.Score {
	return e.value
}

// Target returns an evaluator scoring the named component of the target
// entity. A missing component, or one that does not carry a score, yields the
// minimum score.
func Target(component string) types.Evaluator {
	return targetEvaluator{component: component}
}

type targetEvaluator struct {
	component string
}

func (e targetEvaluator) Name() string {
	return fmt.Sprintf("target(%s)", e.component)
}

func (e targetEvaluator) Init(ctx context.Context, world types.World) error {
	return nil
}

func (e targetEvaluator) Evaluate(evaluation types.Evaluation) score.Score {
	value, ok := evaluation.World.Component(evaluation.Target, e.component)
	if !ok {
		return score.Min
	}
	result, ok := score.Of(value)
	if !ok {
		return score.Min
	}
	return result
}

// Parent returns an evaluator scoring the named component of the parent
// entity of the target. Targets without a parent, and parents without a
// scoreable component, yield the minimum score.
func Parent(component string) types.Evaluator {
	return parentEvaluator{component: component}
}

type parentEvaluator struct {
	component string
}

func (e parentEvaluator) Name() string {
	return fmt.Sprintf("parent(%s)", e.component)
}

func (e parentEvaluator) Init(ctx context.Context, world types.World) error {
	return nil
}

func (e parentEvaluator) Evaluate(evaluation types.Evaluation) score.Score {
	parent, ok := evaluation.World.Parent(evaluation.Target)
	if !ok {
		return score.Min
	}
	value, ok := evaluation.World.Component(parent, e.component)
	if !ok {
		return score.Min
	}
	result, ok := score.Of(value)
	if !ok {
		return score.Min
	}
	return result
}

// Resource returns an evaluator scoring the named world resource regardless
// of the target. A missing or unscoreable resource yields the minimum score.
func Resource(name string) types.Evaluator {
	return resourceEvaluator{name: name}
}

type resourceEvaluator struct {
	name string
}

func (e resourceEvaluator) Name() string {
	return fmt.Sprintf("resource(%s)", e.name)
}

func (e resourceEvaluator) Init(ctx context.Context, world types.World) error {
	return nil
}

func (e resourceEvaluator) Evaluate(evaluation types.Evaluation) score.Score {
	value, ok := evaluation.World.Resource(e.name)
	if !ok {
		return score.Min
	}
	result, ok := score.Of(value)
	if !ok {
		return score.Min
	}
	return result
}
