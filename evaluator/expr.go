package evaluator

import (
	"context"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/viant/scoreflow/model/score"
	"github.com/viant/scoreflow/model/types"
)

// Expr returns an evaluator computing the given expression against the world.
// The expression sees the target entity id as "target" and the helper
// functions component(name), parent(name) and resource(name); its numeric
// result is clamped into a score. Expressions that fail to run, or that yield
// a non-numeric result, score the minimum.
func Expr(source string) types.Evaluator {
	return &exprEvaluator{source: source}
}

type exprEvaluator struct {
	source  string
	program *vm.Program
	logger  types.Logger
}

func (e *exprEvaluator) Name() string {
	return fmt.Sprintf("expr(%s)", e.source)
}

// Init compiles the expression; a malformed expression surfaces here rather
// than on the evaluation path.
func (e *exprEvaluator) Init(ctx context.Context, world types.World) error {
	program, err := expr.Compile(e.source, expr.AllowUndefinedVariables())
	if err != nil {
		return fmt.Errorf("failed to compile expression %q: %w", e.source, err)
	}
	e.program = program
	e.logger = types.EnsureLogger(e.logger)
	return nil
}

func (e *exprEvaluator) Evaluate(evaluation types.Evaluation) score.Score {
	if e.program == nil {
		panic(fmt.Sprintf("expr: evaluator %q used before Init", e.source))
	}
	env := map[string]interface{}{
		"target": uint64(evaluation.Target),
		"component": func(name string) interface{} {
			value, _ := evaluation.World.Component(evaluation.Target, name)
			return exprValue(value)
		},
		"parent": func(name string) interface{} {
			parent, ok := evaluation.World.Parent(evaluation.Target)
			if !ok {
				return nil
			}
			value, _ := evaluation.World.Component(parent, name)
			return exprValue(value)
		},
		"resource": func(name string) interface{} {
			value, _ := evaluation.World.Resource(name)
			return exprValue(value)
		},
	}
	output, err := expr.Run(e.program, env)
	if err != nil {
		e.logger.Printf("[ERROR] expression %q failed for target %v: %v", e.source, evaluation.Target, err)
		return score.Min
	}
	result, ok := score.FromNumeric(output)
	if !ok {
		e.logger.Printf("[ERROR] expression %q produced unusable result %v for target %v", e.source, output, evaluation.Target)
		return score.Min
	}
	return result
}

// exprValue unwraps scores so expressions operate on plain numbers.
func exprValue(value interface{}) interface{} {
	if item, ok := score.Of(value); ok {
		return item.Value()
	}
	return value
}
