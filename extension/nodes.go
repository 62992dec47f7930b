package extension

import (
	"fmt"
	"sync"

	"github.com/mitchellh/mapstructure"
	"github.com/viant/scoreflow/model/types"
	"github.com/viant/x"
)

// Params holds the raw parameters of one declared node.
type Params map[string]interface{}

// Decode populates target from the raw parameters.
func (p Params) Decode(target interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(map[string]interface{}(p))
}

// EvaluatorFactory builds an evaluator from declared parameters.
type EvaluatorFactory func(params Params) (types.Evaluator, error)

// AggregatorFactory builds an aggregator from declared parameters.
type AggregatorFactory func(params Params) (types.Aggregator, error)

// Nodes registers the node kinds available to declarative flow definitions.
// The built-in kinds are registered on creation; applications add their own
// kinds through RegisterEvaluator and RegisterAggregator.
type Nodes struct {
	types       *Types
	evaluators  map[string]EvaluatorFactory
	aggregators map[string]AggregatorFactory
	mux         sync.RWMutex
}

// Types returns the Go type registry.
func (n *Nodes) Types() *Types {
	return n.types
}

// RegisterEvaluator registers an evaluator kind.
func (n *Nodes) RegisterEvaluator(kind string, factory EvaluatorFactory) {
	n.mux.Lock()
	defer n.mux.Unlock()
	n.evaluators[kind] = factory
}

// RegisterAggregator registers an aggregator kind.
func (n *Nodes) RegisterAggregator(kind string, factory AggregatorFactory) {
	n.mux.Lock()
	defer n.mux.Unlock()
	n.aggregators[kind] = factory
}

// NewEvaluator builds an evaluator of the registered kind.
func (n *Nodes) NewEvaluator(kind string, params Params) (types.Evaluator, error) {
	n.mux.RLock()
	factory, ok := n.evaluators[kind]
	n.mux.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown evaluator kind: %q", kind)
	}
	return factory(params)
}

// NewAggregator builds an aggregator of the registered kind.
func (n *Nodes) NewAggregator(kind string, params Params) (types.Aggregator, error) {
	n.mux.RLock()
	factory, ok := n.aggregators[kind]
	n.mux.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown aggregator kind: %q", kind)
	}
	return factory(params)
}

// IsAggregator reports whether the kind is registered as an aggregator.
func (n *Nodes) IsAggregator(kind string) bool {
	n.mux.RLock()
	defer n.mux.RUnlock()
	_, ok := n.aggregators[kind]
	return ok
}

// NewNodes creates a node registry with the built-in kinds registered.
func NewNodes(goTypes ...*x.Type) *Nodes {
	ret := &Nodes{
		types:       NewTypes(),
		evaluators:  make(map[string]EvaluatorFactory),
		aggregators: make(map[string]AggregatorFactory),
	}
	for _, t := range goTypes {
		if t != nil {
			ret.types.Register(t)
		}
	}
	ret.registerBuiltins()
	return ret
}
