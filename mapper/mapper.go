package mapper

import (
	"context"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/viant/scoreflow/model/score"
	"github.com/viant/scoreflow/model/types"
)

// Expr returns a mapper computing the given expression over the mapped score.
// The expression sees the incoming score as "value", the target entity id as
// "target" and the helper functions component(name) and resource(name); its
// numeric result is clamped into a score. Expressions that fail to run, or
// that yield a non-numeric result, map to the minimum score.
func Expr(source string) types.Mapper {
	return &exprMapper{source: source}
}

type exprMapper struct {
	source  string
	program *vm.Program
	logger  types.Logger
}

func (m *exprMapper) Name() string {
	return fmt.Sprintf("expr(%s)", m.source)
}

func (m *exprMapper) Init(ctx context.Context, world types.World) error {
	program, err := expr.Compile(m.source, expr.AllowUndefinedVariables())
	if err != nil {
		return fmt.Errorf("failed to compile expression %q: %w", m.source, err)
	}
	m.program = program
	m.logger = types.EnsureLogger(m.logger)
	return nil
}

func (m *exprMapper) Map(mapping types.Mapping) score.Score {
	if m.program == nil {
		panic(fmt.Sprintf("mapper: %q used before Init", m.source))
	}
	env := map[string]interface{}{
		"value":  mapping.Value.Value(),
		"target": uint64(mapping.Target),
		"component": func(name string) interface{} {
			value, _ := mapping.World.Component(mapping.Target, name)
			return unwrap(value)
		},
		"resource": func(name string) interface{} {
			value, _ := mapping.World.Resource(name)
			return unwrap(value)
		},
	}
	output, err := expr.Run(m.program, env)
	if err != nil {
		m.logger.Printf("[ERROR] expression %q failed for target %v: %v", m.source, mapping.Target, err)
		return score.Min
	}
	result, ok := score.FromNumeric(output)
	if !ok {
		m.logger.Printf("[ERROR] expression %q produced unusable result %v for target %v", m.source, output, mapping.Target)
		return score.Min
	}
	return result
}

func unwrap(value interface{}) interface{} {
	if item, ok := score.Of(value); ok {
		return item.Value()
	}
	return value
}
