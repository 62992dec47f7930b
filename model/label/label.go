package label

import (
	"fmt"
	"sync"
)

// Kind discriminates the three independent label families.
type Kind int

const (
	// KindFlow labels name flows.
	KindFlow Kind = iota
	// KindScore labels name computed output scores.
	KindScore
	// KindAction labels name selectable actions.
	KindAction
)

func (k Kind) String() string {
	switch k {
	case KindFlow:
		return "flow"
	case KindScore:
		return "score"
	case KindAction:
		return "action"
	}
	return "unknown"
}

// Label is an interned identity token. Two labels of the same kind interned
// from equal names through the same registry are equal and share one
// canonical token; labels are comparable and usable as map keys. Labels never
// expire.
type Label struct {
	kind Kind
	id   int
	name string
}

// Kind returns the label family.
func (l Label) Kind() Kind {
	return l.kind
}

// Name returns the name the label was interned from.
func (l Label) Name() string {
	return l.name
}

func (l Label) String() string {
	return fmt.Sprintf("%v(%s)", l.kind, l.name)
}

// FlowLabel identifies a named flow.
type FlowLabel struct {
	Label
}

// ScoreLabel identifies a named output score.
type ScoreLabel struct {
	Label
}

// ActionLabel identifies a named action.
type ActionLabel struct {
	Label
}

type internKey struct {
	kind Kind
	name string
}

// Registry interns labels. Label creation takes the registry as an explicit
// dependency; the package-level helpers delegate to a single default
// registry so that independently built packages agree on tokens.
type Registry struct {
	mu      sync.Mutex
	entries map[internKey]int
}

// NewRegistry creates an empty label registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[internKey]int)}
}

func (r *Registry) intern(kind Kind, name string) Label {
	key := internKey{kind: kind, name: name}
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.entries[key]
	if !ok {
		id = len(r.entries)
		r.entries[key] = id
	}
	return Label{kind: kind, id: id, name: name}
}

// Flow interns a flow label.
func (r *Registry) Flow(name string) FlowLabel {
	return FlowLabel{r.intern(KindFlow, name)}
}

// Score interns a score label.
func (r *Registry) Score(name string) ScoreLabel {
	return ScoreLabel{r.intern(KindScore, name)}
}

// Action interns an action label.
func (r *Registry) Action(name string) ActionLabel {
	return ActionLabel{r.intern(KindAction, name)}
}

var defaultRegistry = NewRegistry()

// Flow interns a flow label in the default registry.
func Flow(name string) FlowLabel {
	return defaultRegistry.Flow(name)
}

// Score interns a score label in the default registry.
func Score(name string) ScoreLabel {
	return defaultRegistry.Score(name)
}

// Action interns an action label in the default registry.
func Action(name string) ActionLabel {
	return defaultRegistry.Action(name)
}
