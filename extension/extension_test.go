package extension

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/scoreflow/model/score"
	"github.com/viant/scoreflow/model/types"
)

func TestBuiltinEvaluators(t *testing.T) {
	nodes := NewNodes()

	constant, err := nodes.NewEvaluator("constant", Params{"value": 0.4})
	assert.NoError(t, err)
	assert.Equal(t, score.New(0.4), constant.Evaluate(types.Evaluation{}))

	_, err = nodes.NewEvaluator("target", Params{})
	assert.Error(t, err)

	target, err := nodes.NewEvaluator("target", Params{"component": "Health"})
	assert.NoError(t, err)
	assert.Equal(t, "target(Health)", target.Name())

	_, err = nodes.NewEvaluator("unknown", Params{})
	assert.Error(t, err)
}

func TestBuiltinAggregators(t *testing.T) {
	nodes := NewNodes()

	sum, err := nodes.NewAggregator("sum", nil)
	assert.NoError(t, err)
	result := sum.Aggregate(types.Aggregation{Scores: []score.Score{score.New(0.2), score.New(0.3)}})
	assert.InDelta(t, 0.5, result.Value(), 1e-9)

	average, err := nodes.NewAggregator("average", Params{"threshold": 0.5})
	assert.NoError(t, err)
	result = average.Aggregate(types.Aggregation{Scores: []score.Score{score.New(0.2), score.New(0.3)}})
	assert.Equal(t, score.Min, result)

	assert.True(t, nodes.IsAggregator("median"))
	assert.False(t, nodes.IsAggregator("constant"))
}

func TestScoreChildrenKind(t *testing.T) {
	nodes := NewNodes()

	evaluator, err := nodes.NewEvaluator("score_children", Params{"component": "Desire", "aggregator": "maximum"})
	assert.NoError(t, err)
	assert.Equal(t, "maximum(0.0000).score_children(Desire)", evaluator.Name())

	_, err = nodes.NewEvaluator("score_children", Params{})
	assert.Error(t, err)
}

func TestCustomKind(t *testing.T) {
	nodes := NewNodes()
	nodes.RegisterEvaluator("half", func(Params) (types.Evaluator, error) {
		return types.EvaluatorFunc(func(types.Evaluation) score.Score {
			return score.New(0.5)
		}), nil
	})

	custom, err := nodes.NewEvaluator("half", nil)
	assert.NoError(t, err)
	assert.Equal(t, score.New(0.5), custom.Evaluate(types.Evaluation{}))
}

func TestParamsDecode(t *testing.T) {
	params := Params{"threshold": "0.25"}
	input := thresholdParams{}
	assert.NoError(t, params.Decode(&input))
	assert.InDelta(t, 0.25, input.Threshold, 1e-9)
}
