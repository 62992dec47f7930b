package flow

import (
	"context"
	"fmt"
	"sync"

	"github.com/viant/scoreflow/model/graph"
	"github.com/viant/scoreflow/model/label"
	"github.com/viant/scoreflow/model/types"
)

// NotFoundError indicates that no flow is registered (or currently present)
// under a label.
type NotFoundError struct {
	Label label.FlowLabel
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("flow %v not found", e.Label)
}

// Flows registers flows by label. A flow is either present in the registry or
// temporarily taken out by the caller holding it exclusively; Take and Return
// implement that two-phase ownership so that registration and initialization
// never race with other holders.
type Flows struct {
	mu      sync.Mutex
	entries map[label.FlowLabel]*Flow
	logger  types.Logger
}

// FlowsOption customizes a new registry.
type FlowsOption func(*Flows)

// WithFlowsLogger sets the diagnostics logger.
func WithFlowsLogger(logger types.Logger) FlowsOption {
	return func(f *Flows) {
		f.logger = logger
	}
}

// NewFlows creates an empty flow registry.
func NewFlows(options ...FlowsOption) *Flows {
	result := &Flows{entries: make(map[label.FlowLabel]*Flow)}
	for _, option := range options {
		option(result)
	}
	result.logger = types.EnsureLogger(result.logger)
	return result
}

// Insert registers a flow under the label, replacing any present flow.
func (f *Flows) Insert(flowLabel label.FlowLabel, flow *Flow) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.entries[flowLabel]; ok {
		f.logger.Printf("[WARN] replacing flow %v", flowLabel)
	}
	f.entries[flowLabel] = flow
}

// Remove unregisters and returns the flow under the label.
func (f *Flows) Remove(flowLabel label.FlowLabel) (*Flow, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	flow, ok := f.entries[flowLabel]
	delete(f.entries, flowLabel)
	return flow, ok
}

// Entry returns the flow currently present under the label without taking
// ownership; the caller must not mutate it.
func (f *Flows) Entry(flowLabel label.FlowLabel) (*Flow, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	flow, ok := f.entries[flowLabel]
	return flow, ok
}

// Ensure returns the flow under the label, registering an empty one when no
// flow is present. The new flow inherits the registry logger unless an option
// overrides it.
func (f *Flows) Ensure(flowLabel label.FlowLabel, options ...Option) *Flow {
	f.mu.Lock()
	defer f.mu.Unlock()
	if flow, ok := f.entries[flowLabel]; ok {
		return flow
	}
	flow := New(append([]Option{WithLogger(f.logger)}, options...)...)
	f.entries[flowLabel] = flow
	return flow
}

// Labels returns the labels of the flows currently present.
func (f *Flows) Labels() []label.FlowLabel {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]label.FlowLabel, 0, len(f.entries))
	for item := range f.entries {
		result = append(result, item)
	}
	return result
}

// Take removes the flow under the label and hands it to the caller for
// exclusive use until Return. A flow that is absent, either never registered
// or taken by another holder, yields a NotFoundError.
func (f *Flows) Take(flowLabel label.FlowLabel) (*Flow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	flow, ok := f.entries[flowLabel]
	if !ok {
		return nil, &NotFoundError{Label: flowLabel}
	}
	delete(f.entries, flowLabel)
	return flow, nil
}

// Return puts a taken flow back under its label. When the slot was refilled
// while the flow was out, the present flow is replaced with a warning.
func (f *Flows) Return(flowLabel label.FlowLabel, flow *Flow) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.entries[flowLabel]; ok {
		f.logger.Printf("[WARN] flow %v was replaced while taken, overwriting", flowLabel)
	}
	f.entries[flowLabel] = flow
}

// Scope takes the flow under the label, runs fn with exclusive ownership and
// returns the flow afterwards, whether or not fn failed.
func (f *Flows) Scope(flowLabel label.FlowLabel, fn func(flow *Flow) error) error {
	flow, err := f.Take(flowLabel)
	if err != nil {
		return err
	}
	defer f.Return(flowLabel, flow)
	return fn(flow)
}

// AddNodes registers node configs with the flow under the label.
func (f *Flows) AddNodes(flowLabel label.FlowLabel, configs ...*graph.NodeConfig) error {
	return f.Scope(flowLabel, func(flow *Flow) error {
		flow.AddNodes(configs...)
		return nil
	})
}

// Init initializes the flow under the label.
func (f *Flows) Init(ctx context.Context, flowLabel label.FlowLabel, world types.World) error {
	return f.Scope(flowLabel, func(flow *Flow) error {
		return flow.Init(ctx, world)
	})
}
