package scoreflow

import (
	"context"
	"fmt"

	"github.com/viant/scoreflow/extension"
	"github.com/viant/scoreflow/model/graph"
	"github.com/viant/scoreflow/model/label"
	"github.com/viant/scoreflow/model/types"
	"github.com/viant/scoreflow/runtime/flow"
	"github.com/viant/scoreflow/runtime/sweep"
	"github.com/viant/scoreflow/service/dao/definition"
	"github.com/viant/x"
)

type namedEvaluatorKind struct {
	kind    string
	factory extension.EvaluatorFactory
}

type namedAggregatorKind struct {
	kind    string
	factory extension.AggregatorFactory
}

// Service is the high-level facade of the scoring engine: it owns the flow
// registry, the node kind registries and the sweep runner, and loads
// declarative definitions.
type Service struct {
	config          *Config
	logger          types.Logger
	nodes           *extension.Nodes
	flows           *flow.Flows
	definitions     *definition.Service
	runner          *sweep.Runner
	extensionTypes  []*x.Type
	evaluatorKinds  []namedEvaluatorKind
	aggregatorKinds []namedAggregatorKind
}

func (s *Service) init(options []Option) {
	for _, option := range options {
		option(s)
	}
	if s.config == nil {
		s.config = DefaultConfig()
	}
	s.logger = types.EnsureLogger(s.logger)
	s.nodes = extension.NewNodes(s.extensionTypes...)
	for _, item := range s.evaluatorKinds {
		s.nodes.RegisterEvaluator(item.kind, item.factory)
	}
	for _, item := range s.aggregatorKinds {
		s.nodes.RegisterAggregator(item.kind, item.factory)
	}
	s.flows = flow.NewFlows(flow.WithFlowsLogger(s.logger))
	s.definitions = definition.New(s.nodes)
	s.runner = sweep.New(s.flows,
		sweep.WithWorkers(s.config.Sweep.Workers),
		sweep.WithBatchSize(s.config.Sweep.BatchSize),
		sweep.WithLogger(s.logger))
}

// New creates a scoreflow service.
func New(options ...Option) *Service {
	ret := &Service{}
	ret.init(options)
	return ret
}

// Flows returns the flow registry.
func (s *Service) Flows() *flow.Flows {
	return s.flows
}

// Nodes returns the node kind registry.
func (s *Service) Nodes() *extension.Nodes {
	return s.nodes
}

// RegisterExtensionTypes registers Go types usable from declarative
// definitions.
func (s *Service) RegisterExtensionTypes(types ...*x.Type) {
	for i := range types {
		s.nodes.Types().Register(types[i])
	}
}

// AddNodes registers node configs with the labeled flow, creating the flow
// when it does not exist yet.
func (s *Service) AddNodes(flowLabel label.FlowLabel, configs ...*graph.NodeConfig) error {
	s.flows.Ensure(flowLabel)
	return s.flows.AddNodes(flowLabel, configs...)
}

// LoadFlow loads a declarative definition from the URL and registers it as a
// flow labeled after the definition name.
func (s *Service) LoadFlow(ctx context.Context, URL string) (label.FlowLabel, error) {
	loaded, err := s.definitions.Load(ctx, URL)
	if err != nil {
		return label.FlowLabel{}, err
	}
	configs, err := s.definitions.Lower(loaded)
	if err != nil {
		return label.FlowLabel{}, err
	}
	flowLabel := label.Flow(loaded.Name)
	if err := s.AddNodes(flowLabel, configs...); err != nil {
		return label.FlowLabel{}, err
	}
	return flowLabel, nil
}

// FlowScope hands the labeled flow to fn under exclusive ownership.
func (s *Service) FlowScope(flowLabel label.FlowLabel, fn func(flow *flow.Flow) error) error {
	return s.flows.Scope(flowLabel, fn)
}

// TryRunFlow initializes the labeled flow when needed and scores the target.
func (s *Service) TryRunFlow(ctx context.Context, world types.World, flowLabel label.FlowLabel, target types.EntityID) (flow.Scores, error) {
	var scores flow.Scores
	err := s.flows.Scope(flowLabel, func(flow *flow.Flow) error {
		var err error
		scores, err = flow.Run(ctx, world, target)
		return err
	})
	return scores, err
}

// RunFlow scores the target with the labeled flow and panics on failure; the
// forgiving variant is TryRunFlow.
func (s *Service) RunFlow(ctx context.Context, world types.World, flowLabel label.FlowLabel, target types.EntityID) flow.Scores {
	scores, err := s.TryRunFlow(ctx, world, flowLabel, target)
	if err != nil {
		panic(fmt.Sprintf("scoreflow: run flow %v: %v", flowLabel, err))
	}
	return scores
}

// Sweep scores every assignment against the world and hands the results to
// the writer.
func (s *Service) Sweep(ctx context.Context, world types.World, writer sweep.Writer, assignments []sweep.Assignment) ([]sweep.Result, error) {
	return s.runner.Run(ctx, world, writer, assignments)
}
