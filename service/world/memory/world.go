package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/viant/scoreflow/model/label"
	"github.com/viant/scoreflow/model/types"
	"github.com/viant/scoreflow/runtime/flow"
	"github.com/viant/scoreflow/runtime/sweep"
)

// World is an in-memory types.World implementation backed by plain maps. It
// doubles as a sweep.Writer: sweep results land back in the world as per
// entity score sets readable through Scores. All methods are safe for
// concurrent use; reads take a shared lock so parallel scoring does not
// serialize.
type World struct {
	mu          sync.RWMutex
	nextID      types.EntityID
	components  map[types.EntityID]map[string]interface{}
	resources   map[string]interface{}
	parents     map[types.EntityID]types.EntityID
	children    map[types.EntityID][]types.EntityID
	assignments map[types.EntityID]label.FlowLabel
	scores      map[types.EntityID]flow.Scores
}

// New creates an empty world.
func New() *World {
	return &World{
		components:  make(map[types.EntityID]map[string]interface{}),
		resources:   make(map[string]interface{}),
		parents:     make(map[types.EntityID]types.EntityID),
		children:    make(map[types.EntityID][]types.EntityID),
		assignments: make(map[types.EntityID]label.FlowLabel),
		scores:      make(map[types.EntityID]flow.Scores),
	}
}

// CreateEntity allocates a fresh entity id.
func (w *World) CreateEntity() types.EntityID {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nextID++
	id := w.nextID
	w.components[id] = make(map[string]interface{})
	return id
}

// SetComponent attaches the named component value to the entity.
func (w *World) SetComponent(target types.EntityID, name string, value interface{}) {
	w.mu.Lock()
	defer w.mu.Unlock()
	components, ok := w.components[target]
	if !ok {
		components = make(map[string]interface{})
		w.components[target] = components
	}
	components[name] = value
}

// RemoveComponent detaches the named component from the entity.
func (w *World) RemoveComponent(target types.EntityID, name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.components[target], name)
}

// SetResource stores the named process-wide value.
func (w *World) SetResource(name string, value interface{}) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.resources[name] = value
}

// AddChild links the child entity under the parent entity; a child has at
// most one parent, relinking moves it.
func (w *World) AddChild(parent, child types.EntityID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if previous, ok := w.parents[child]; ok {
		siblings := w.children[previous]
		for i, item := range siblings {
			if item == child {
				w.children[previous] = append(siblings[:i], siblings[i+1:]...)
				break
			}
		}
	}
	w.parents[child] = parent
	w.children[parent] = append(w.children[parent], child)
}

// Component implements types.World.
func (w *World) Component(target types.EntityID, name string) (interface{}, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	value, ok := w.components[target][name]
	return value, ok
}

// Resource implements types.World.
func (w *World) Resource(name string) (interface{}, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	value, ok := w.resources[name]
	return value, ok
}

// Parent implements types.World.
func (w *World) Parent(target types.EntityID) (types.EntityID, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	parent, ok := w.parents[target]
	return parent, ok
}

// Children implements types.World; the returned slice is a copy.
func (w *World) Children(target types.EntityID) []types.EntityID {
	w.mu.RLock()
	defer w.mu.RUnlock()
	children := w.children[target]
	if len(children) == 0 {
		return nil
	}
	result := make([]types.EntityID, len(children))
	copy(result, children)
	return result
}

// AssignFlow marks the entity for scoring by the labeled flow.
func (w *World) AssignFlow(target types.EntityID, flowLabel label.FlowLabel) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.assignments[target] = flowLabel
}

// UnassignFlow removes the scoring assignment of the entity.
func (w *World) UnassignFlow(target types.EntityID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.assignments, target)
}

// Assignments returns the sweep assignments of all marked entities, ordered
// by entity id for deterministic sweeps.
func (w *World) Assignments() []sweep.Assignment {
	w.mu.RLock()
	defer w.mu.RUnlock()
	result := make([]sweep.Assignment, 0, len(w.assignments))
	for target, flowLabel := range w.assignments {
		result = append(result, sweep.Assignment{Flow: flowLabel, Target: target})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Target < result[j].Target
	})
	return result
}

// ApplyScores implements sweep.Writer; the labeled outputs of each result
// merge into the score set of its target entity.
func (w *World) ApplyScores(ctx context.Context, results []sweep.Result) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, result := range results {
		scores, ok := w.scores[result.Target]
		if !ok {
			scores = make(flow.Scores, len(result.Scores))
			w.scores[result.Target] = scores
		}
		for scoreLabel, value := range result.Scores {
			scores[scoreLabel] = value
		}
	}
	return nil
}

// Scores returns a copy of the score set of the entity.
func (w *World) Scores(target types.EntityID) (flow.Scores, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	scores, ok := w.scores[target]
	if !ok {
		return nil, false
	}
	result := make(flow.Scores, len(scores))
	for scoreLabel, value := range scores {
		result[scoreLabel] = value
	}
	return result, true
}
