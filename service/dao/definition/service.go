package definition

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/scoreflow/aggregator"
	"github.com/viant/scoreflow/evaluator"
	"github.com/viant/scoreflow/extension"
	"github.com/viant/scoreflow/model"
	"github.com/viant/scoreflow/model/graph"
	"github.com/viant/scoreflow/model/label"
	"github.com/viant/scoreflow/model/score"
	"github.com/viant/scoreflow/model/types"
	"gopkg.in/yaml.v3"
)

// Service loads declarative flow definitions and lowers them into node
// configs using the registered node kinds.
type Service struct {
	fs    afs.Service
	nodes *extension.Nodes
}

// New creates a definition service backed by the given node registry.
func New(nodes *extension.Nodes) *Service {
	return &Service{
		fs:    afs.New(),
		nodes: nodes,
	}
}

// Load loads a definition from YAML at the specified URL.
func (s *Service) Load(ctx context.Context, URL string) (*model.Definition, error) {
	ext := filepath.Ext(URL)
	if ext == "" {
		URL += ".yaml"
	}
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load definition from %s: %w", URL, err)
	}
	definition, err := s.DecodeYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse definition from %s: %w", URL, err)
	}
	definition.Source = &model.Source{URL: URL}
	if definition.Name == "" {
		definition.Name = definitionNameFromURL(URL)
	}
	return definition, nil
}

// DecodeYAML decodes a definition from YAML.
func (s *Service) DecodeYAML(encoded []byte) (*model.Definition, error) {
	definition := &model.Definition{}
	if err := yaml.Unmarshal(encoded, definition); err != nil {
		return nil, err
	}
	if issues := definition.Validate(); len(issues) > 0 {
		return nil, issues[0]
	}
	return definition, nil
}

// Lower converts a definition into node configs ready for flow registration.
func (s *Service) Lower(definition *model.Definition) (graph.NodeConfigs, error) {
	result := make(graph.NodeConfigs, 0, len(definition.Nodes))
	for i, spec := range definition.Nodes {
		config, err := s.lower(spec)
		if err != nil {
			return nil, fmt.Errorf("failed to lower node %d of %q: %w", i, definition.Name, err)
		}
		result = append(result, config)
	}
	return result, nil
}

func (s *Service) lower(spec *model.NodeSpec) (*graph.NodeConfig, error) {
	var config *graph.NodeConfig
	params := extension.Params(spec.Params)
	if s.nodes.IsAggregator(spec.Kind) {
		aggregated, err := s.nodes.NewAggregator(spec.Kind, params)
		if err != nil {
			return nil, err
		}
		aggregated, err = applyAggregatorModifiers(aggregated, spec)
		if err != nil {
			return nil, err
		}
		children := make(graph.NodeConfigs, 0, len(spec.Nodes))
		for i, childSpec := range spec.Nodes {
			child, err := s.lower(childSpec)
			if err != nil {
				return nil, fmt.Errorf("child %d: %w", i, err)
			}
			children = append(children, child)
		}
		config = graph.Aggregator(aggregated, children...)
	} else {
		if len(spec.Nodes) > 0 {
			return nil, fmt.Errorf("evaluator kind %q cannot have children", spec.Kind)
		}
		evaluated, err := s.nodes.NewEvaluator(spec.Kind, params)
		if err != nil {
			return nil, err
		}
		evaluated, err = applyEvaluatorModifiers(evaluated, spec)
		if err != nil {
			return nil, err
		}
		config = graph.Evaluator(evaluated)
	}
	if spec.Label != "" {
		config.WithLabel(label.Score(spec.Label))
	}
	return config, nil
}

// applyAggregatorModifiers wraps the aggregator with the declared modifiers;
// input gating runs first, output shaping last.
func applyAggregatorModifiers(aggregated types.Aggregator, spec *model.NodeSpec) (types.Aggregator, error) {
	if spec.InputThreshold != nil {
		aggregated = aggregator.InputThreshold(aggregated, score.New(*spec.InputThreshold))
	}
	if spec.Invert {
		aggregated = aggregator.Invert(aggregated)
	}
	if spec.Weight != nil {
		aggregated = aggregator.Weight(aggregated, score.New(*spec.Weight))
	}
	if spec.Threshold != nil {
		aggregated = aggregator.Threshold(aggregated, score.New(*spec.Threshold))
	}
	return aggregated, nil
}

func applyEvaluatorModifiers(evaluated types.Evaluator, spec *model.NodeSpec) (types.Evaluator, error) {
	if spec.InputThreshold != nil {
		return nil, fmt.Errorf("inputThreshold is only valid on aggregator kinds")
	}
	if spec.Invert {
		evaluated = evaluator.Invert(evaluated)
	}
	if spec.Weight != nil {
		evaluated = evaluator.Weight(evaluated, score.New(*spec.Weight))
	}
	if spec.Threshold != nil {
		evaluated = evaluator.Threshold(evaluated, score.New(*spec.Threshold))
	}
	return evaluated, nil
}

func definitionNameFromURL(URL string) string {
	base := filepath.Base(URL)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
