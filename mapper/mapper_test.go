package mapper

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
	return 0, false
}

func (w *stubWorld) Children(target types.EntityID) []types.EntityID {
	return nil
}

func TestExpr(t *testing.T) {
	mapper := Expr(`value * 2`)
	assert.NoError(t, mapper.Init(context.Background(), &stubWorld{}))

	result := mapper.Map(types.Mapping{World: &stubWorld{}, Target: 1, Value: score.New(0.3)})
	assert.InDelta(t, 0.6, result.Value(), 1e-9)
}

func TestExprWorldAccess(t *testing.T) {
	world := &stubWorld{
		resources: map[string]interface{}{"Danger": score.New(0.5)},
	}
	mapper := Expr(`value * resource("Danger")`)
	assert.NoError(t, mapper.Init(context.Background(), world))

	result := mapper.Map(types.Mapping{World: world, Target: 1, Value: score.New(0.8)})
	assert.InDelta(t, 0.4, result.Value(), 1e-9)
}

func TestExprCompileError(t *testing.T) {
	assert.Error(t, Expr(`value *`).Init(context.Background(), &stubWorld{}))
}

func TestExprNaNMapsToMinimum(t *testing.T) {
	mapper := Expr(`value / 0.0`)
	assert.NoError(t, mapper.Init(context.Background(), &stubWorld{}))

	var result score.Score
	assert.NotPanics(t, func() {
		result = mapper.Map(types.Mapping{World: &stubWorld{}, Target: 1, Value: score.Min})
	})
	assert.Equal(t, score.Min, result)
}

func TestExprUnsignedComponent(t *testing.T) {
	world := &stubWorld{
		components: map[types.EntityID]map[string]interface{}{
			1: {"Level": uint64(1)},
		},
	}
	mapper := Expr(`component("Level")`)
	assert.NoError(t, mapper.Init(context.Background(), world))

	result := mapper.Map(types.Mapping{World: world, Target: 1, Value: score.New(0.5)})
	assert.Equal(t, score.Max, result)
}
