package types

import (
	"context"
	"reflect"
	"runtime"

	"github.com/viant/scoreflow/model/score"
)

// Evaluator views the target entity in a World and returns a Score. An
// Evaluator must not mutate shared world state and must not block; any
// private scratch state it carries has to be externally synchronized before
// the same instance is evaluated concurrently.
type Evaluator interface {
	// Name returns a display name used for diagnostics and graph
	// introspection only.
	Name() string

	// Init prepares the evaluator before its first evaluation. It is called
	// exactly once per registered node; side-effecting setup such as caching
	// a resource handle belongs here, not in Evaluate.
	Init(ctx context.Context, world World) error

	// Evaluate scores the target of the evaluation.
	Evaluate(evaluation Evaluation) score.Score
}

// Aggregator views the target entity in a World together with its children
// scores and combines them into a single Score. The same read-only and
// non-blocking contract as for Evaluator applies.
type Aggregator interface {
	// Name returns a display name used for diagnostics and graph
	// introspection only.
	Name() string

	// Init prepares the aggregator before its first evaluation; called
	// exactly once per registered node.
	Init(ctx context.Context, world World) error

	// Aggregate combines the children scores of the aggregation target. The
	// scores arrive in the children registration order.
	Aggregate(aggregation Aggregation) score.Score
}

// Mapper post-processes a score produced by an evaluator or aggregator.
type Mapper interface {
	// Name returns a display name used for diagnostics only.
	Name() string

	// Init prepares the mapper before its first use; called exactly once.
	Init(ctx context.Context, world World) error

	// Map transforms the mapped value.
	Map(mapping Mapping) score.Score
}

// EvaluatorFunc adapts a side-effect-free function into an Evaluator.
type EvaluatorFunc func(evaluation Evaluation) score.Score

// Name returns the adapted function name.
func (f EvaluatorFunc) Name() string {
	return funcName(f)
}

// Init implements Evaluator; it is a no-op.
func (f EvaluatorFunc) Init(ctx context.Context, world World) error {
	return nil
}

// Evaluate calls the adapted function.
func (f EvaluatorFunc) Evaluate(evaluation Evaluation) score.Score {
	return f(evaluation)
}

// AggregatorFunc adapts a side-effect-free function into an Aggregator.
type AggregatorFunc func(aggregation Aggregation) score.Score

// Name returns the adapted function name.
func (f AggregatorFunc) Name() string {
	return funcName(f)
}

// Init implements Aggregator; it is a no-op.
func (f AggregatorFunc) Init(ctx context.Context, world World) error {
	return nil
}

// Aggregate calls the adapted function.
func (f AggregatorFunc) Aggregate(aggregation Aggregation) score.Score {
	return f(aggregation)
}

// MapperFunc adapts a side-effect-free function into a Mapper.
type MapperFunc func(mapping Mapping) score.Score

// Name returns the adapted function name.
func (f MapperFunc) Name() string {
	return funcName(f)
}

// Init implements Mapper; it is a no-op.
func (f MapperFunc) Init(ctx context.Context, world World) error {
	return nil
}

// Map calls the adapted function.
func (f MapperFunc) Map(mapping Mapping) score.Score {
	return f(mapping)
}

func funcName(value interface{}) string {
	if fn := runtime.FuncForPC(reflect.ValueOf(value).Pointer()); fn != nil {
		return fn.Name()
	}
	return "func"
}
