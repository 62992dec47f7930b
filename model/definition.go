package model

import (
	"fmt"
)

// Definition is the declarative form of a flow: a named list of node specs
// loaded from a YAML document and lowered into node configs on registration.
type Definition struct {
	// Source provides information about the origin of the definition
	Source *Source `json:"source,omitempty" yaml:"source,omitempty"`

	// Name is the unique identifier for the flow
	Name string `json:"name" yaml:"name"`

	// Description provides a human-readable description of the flow
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Nodes holds the top-level node specs in registration order
	Nodes []*NodeSpec `json:"nodes,omitempty" yaml:"nodes,omitempty"`
}

// Source describes where a definition was loaded from.
type Source struct {
	URL string `json:"url,omitempty" yaml:"url,omitempty"`
}

// NodeSpec declares one node of a flow: its registered kind, raw parameters,
// children specs and the optional modifiers applied on top of the built node.
type NodeSpec struct {
	// Kind names a registered evaluator or aggregator kind
	Kind string `json:"kind" yaml:"kind"`

	// Label optionally names the node output
	Label string `json:"label,omitempty" yaml:"label,omitempty"`

	// Params holds kind-specific parameters
	Params map[string]interface{} `json:"params,omitempty" yaml:"params,omitempty"`

	// Nodes holds the children specs of an aggregator node
	Nodes []*NodeSpec `json:"nodes,omitempty" yaml:"nodes,omitempty"`

	// Weight multiplies the node output
	Weight *float64 `json:"weight,omitempty" yaml:"weight,omitempty"`

	// Invert replaces the node output with one minus the output
	Invert bool `json:"invert,omitempty" yaml:"invert,omitempty"`

	// Threshold zeroes the node output when below the given value
	Threshold *float64 `json:"threshold,omitempty" yaml:"threshold,omitempty"`

	// InputThreshold zeroes the node output when any children score is below
	// the given value; valid on aggregator kinds only
	InputThreshold *float64 `json:"inputThreshold,omitempty" yaml:"inputThreshold,omitempty"`
}

// Validate performs a best-effort structural validation of the definition.
// The returned slice is empty when the definition is sound; otherwise it
// contains human-readable error descriptions. Kind resolution happens later,
// during lowering, so unknown kinds do not surface here.
func (d *Definition) Validate() []error {
	var issues []error

	if len(d.Nodes) == 0 {
		issues = append(issues, fmt.Errorf("definition %q has no nodes", d.Name))
	}

	seen := map[string]bool{}
	for i, node := range d.Nodes {
		if node.Label == "" {
			issues = append(issues, fmt.Errorf("top-level node %d of %q has no label", i, d.Name))
		} else if seen[node.Label] {
			issues = append(issues, fmt.Errorf("duplicate label %q in %q", node.Label, d.Name))
		}
		seen[node.Label] = true
	}

	var walk func(path string, node *NodeSpec)
	walk = func(path string, node *NodeSpec) {
		if node == nil {
			return
		}
		if node.Kind == "" {
			issues = append(issues, fmt.Errorf("node %s of %q has no kind", path, d.Name))
		}
		for i, child := range node.Nodes {
			walk(fmt.Sprintf("%s/%d", path, i), child)
		}
	}
	for i, node := range d.Nodes {
		walk(fmt.Sprintf("%d", i), node)
	}
	return issues
}
