package extension

import (
	"fmt"

	"github.com/viant/scoreflow/aggregator"
	"github.com/viant/scoreflow/evaluator"
	"github.com/viant/scoreflow/model/score"
	"github.com/viant/scoreflow/model/types"
)

type thresholdParams struct {
	Threshold float64 `mapstructure:"threshold"`
}

func (n *Nodes) registerBuiltins() {
	n.RegisterEvaluator("constant", func(params Params) (types.Evaluator, error) {
		input := struct {
			Value float64 `mapstructure:"value"`
		}{}
		if err := params.Decode(&input); err != nil {
			return nil, err
		}
		return evaluator.Constant(score.New(input.Value)), nil
	})
	n.RegisterEvaluator("target", func(params Params) (types.Evaluator, error) {
		component, err := requiredString(params, "component")
		if err != nil {
			return nil, err
		}
		return evaluator.Target(component), nil
	})
	n.RegisterEvaluator("parent", func(params Params) (types.Evaluator, error) {
		component, err := requiredString(params, "component")
		if err != nil {
			return nil, err
		}
		return evaluator.Parent(component), nil
	})
	n.RegisterEvaluator("resource", func(params Params) (types.Evaluator, error) {
		name, err := requiredString(params, "name")
		if err != nil {
			return nil, err
		}
		return evaluator.Resource(name), nil
	})
	n.RegisterEvaluator("expr", func(params Params) (types.Evaluator, error) {
		source, err := requiredString(params, "source")
		if err != nil {
			return nil, err
		}
		return evaluator.Expr(source), nil
	})
	n.RegisterEvaluator("score_children", func(params Params) (types.Evaluator, error) {
		input := struct {
			Component  string `mapstructure:"component"`
			Aggregator string `mapstructure:"aggregator"`
		}{Aggregator: "sum"}
		if err := params.Decode(&input); err != nil {
			return nil, err
		}
		if input.Component == "" {
			return nil, fmt.Errorf("score_children requires a component parameter")
		}
		aggregated, err := n.NewAggregator(input.Aggregator, params)
		if err != nil {
			return nil, err
		}
		return aggregator.ScoreChildren(aggregated, input.Component), nil
	})

	n.RegisterAggregator("sum", func(Params) (types.Aggregator, error) {
		return aggregator.Sum(), nil
	})
	n.RegisterAggregator("product", func(Params) (types.Aggregator, error) {
		return aggregator.Product(), nil
	})
	n.RegisterAggregator("minimum", func(Params) (types.Aggregator, error) {
		return aggregator.Minimum(), nil
	})
	n.RegisterAggregator("median", func(Params) (types.Aggregator, error) {
		return aggregator.Median(), nil
	})
	n.RegisterAggregator("maximum", func(params Params) (types.Aggregator, error) {
		input := thresholdParams{}
		if err := params.Decode(&input); err != nil {
			return nil, err
		}
		return aggregator.Maximum(score.New(input.Threshold)), nil
	})
	n.RegisterAggregator("average", func(params Params) (types.Aggregator, error) {
		input := thresholdParams{}
		if err := params.Decode(&input); err != nil {
			return nil, err
		}
		return aggregator.Average(score.New(input.Threshold)), nil
	})
	n.RegisterAggregator("geometric_mean", func(params Params) (types.Aggregator, error) {
		input := thresholdParams{}
		if err := params.Decode(&input); err != nil {
			return nil, err
		}
		return aggregator.GeometricMean(score.New(input.Threshold)), nil
	})
	n.RegisterAggregator("harmonic_mean", func(params Params) (types.Aggregator, error) {
		input := thresholdParams{}
		if err := params.Decode(&input); err != nil {
			return nil, err
		}
		return aggregator.HarmonicMean(score.New(input.Threshold)), nil
	})
}

func requiredString(params Params, name string) (string, error) {
	value, ok := params[name].(string)
	if !ok || value == "" {
		return "", fmt.Errorf("missing required parameter %q", name)
	}
	return value, nil
}
