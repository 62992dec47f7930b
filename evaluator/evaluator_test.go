package evaluator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/scoreflow/model/score"
	"github.com/viant/scoreflow/model/types"
)

type stubWorld struct {
	components map[types.EntityID]map[string]interface{}
	resources  map[string]interface{}
	parents    map[types.EntityID]types.EntityID
	children   map[types.EntityID][]types.EntityID
}

func (w *stubWorld) Component(target types.EntityID, name string) (interface{}, bool) {
	value, ok := w.components[target][name]
	return value, ok
}

func (w *stubWorld) Resource(name string) (interface{}, bool) {
	value, ok := w.resources[name]
	return value, ok
}

func (w *stubWorld) Parent(target types.EntityID) (types.EntityID, bool) {
	parent, ok := w.parents[target]
	return parent, ok
}

func (w *stubWorld) Children(target types.EntityID) []types.EntityID {
	return w.children[target]
}

func evaluate(t *testing.T, evaluator types.Evaluator, world types.World, target types.EntityID) score.Score {
	t.Helper()
	assert.NoError(t, evaluator.Init(context.Background(), world))
	return evaluator.Evaluate(types.Evaluation{World: world, Target: target})
}

func TestConstant(t *testing.T) {
	assert.Equal(t, score.New(0.4), evaluate(t, Constant(score.New(0.4)), &stubWorld{}, 1))
}

func TestTarget(t *testing.T) {
	world := &stubWorld{
		components: map[types.EntityID]map[string]interface{}{
			1: {"Hunger": score.New(0.7), "Name": "goblin"},
		},
	}
	assert.Equal(t, score.New(0.7), evaluate(t, Target("Hunger"), world, 1))
	assert.Equal(t, score.Min, evaluate(t, Target("Thirst"), world, 1))
	assert.Equal(t, score.Min, evaluate(t, Target("Name"), world, 1))
}

func TestParent(t *testing.T) {
	world := &stubWorld{
		components: map[types.EntityID]map[string]interface{}{
			1: {"Morale": score.New(0.6)},
		},
		parents: map[types.EntityID]types.EntityID{2: 1},
	}
	assert.Equal(t, score.New(0.6), evaluate(t, Parent("Morale"), world, 2))
	assert.Equal(t, score.Min, evaluate(t, Parent("Morale"), world, 1))
}

func TestResource(t *testing.T) {
	world := &stubWorld{
		resources: map[string]interface{}{"Danger": score.New(0.9)},
	}
	assert.Equal(t, score.New(0.9), evaluate(t, Resource("Danger"), world, 1))
	assert.Equal(t, score.Min, evaluate(t, Resource("Weather"), world, 1))
}

func TestInvert(t *testing.T) {
	result := evaluate(t, Invert(Constant(score.New(0.3))), &stubWorld{}, 1)
	assert.InDelta(t, 0.7, result.Value(), 1e-9)
}

func TestWeight(t *testing.T) {
	result := evaluate(t, Weight(Constant(score.New(0.8)), score.New(0.5)), &stubWorld{}, 1)
	assert.InDelta(t, 0.4, result.Value(), 1e-9)
}

func TestThreshold(t *testing.T) {
	assert.Equal(t, score.Min, evaluate(t, Threshold(Constant(score.New(0.3)), score.New(0.5)), &stubWorld{}, 1))
	assert.Equal(t, score.New(0.6), evaluate(t, Threshold(Constant(score.New(0.6)), score.New(0.5)), &stubWorld{}, 1))
}

func TestMap(t *testing.T) {
	halve := types.MapperFunc(func(mapping types.Mapping) score.Score {
		return score.New(mapping.Value.Value() / 2)
	})
	result := evaluate(t, Map(Constant(score.New(0.8)), halve), &stubWorld{}, 1)
	assert.InDelta(t, 0.4, result.Value(), 1e-9)
}

func TestExpr(t *testing.T) {
	world := &stubWorld{
		components: map[types.EntityID]map[string]interface{}{
			1: {"Health": score.New(0.5)},
		},
		resources: map[string]interface{}{"Danger": score.New(0.2)},
	}
	result := evaluate(t, Expr(`component("Health") * 0.5 + resource("Danger")`), world, 1)
	assert.InDelta(t, 0.45, result.Value(), 1e-9)
}

func TestExprParent(t *testing.T) {
	world := &stubWorld{
		components: map[types.EntityID]map[string]interface{}{
			1: {"Morale": score.New(0.6)},
		},
		parents: map[types.EntityID]types.EntityID{2: 1},
	}
	result := evaluate(t, Expr(`parent("Morale")`), world, 2)
	assert.InDelta(t, 0.6, result.Value(), 1e-9)
}

func TestExprCompileError(t *testing.T) {
	err := Expr(`component(`).Init(context.Background(), &stubWorld{})
	assert.Error(t, err)
}

func TestExprNaNScoresMinimum(t *testing.T) {
	evaluator := Expr(`0.0 / 0.0`)
	assert.NoError(t, evaluator.Init(context.Background(), &stubWorld{}))

	var result score.Score
	assert.NotPanics(t, func() {
		result = evaluator.Evaluate(types.Evaluation{World: &stubWorld{}, Target: 1})
	})
	assert.Equal(t, score.Min, result)
}

func TestExprBoolean(t *testing.T) {
	world := &stubWorld{
		resources: map[string]interface{}{"Danger": score.New(0.8)},
	}
	assert.Equal(t, score.Max, evaluate(t, Expr(`resource("Danger") > 0.5`), world, 1))
}
