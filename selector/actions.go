package selector

import (
	"github.com/viant/scoreflow/model/label"
)

// Actions maps action labels to application-defined action values and tracks
// which action is current for one entity. The zero selection falls back to
// the default action.
type Actions struct {
	actions  map[label.ActionLabel]interface{}
	fallback interface{}
	current  *label.ActionLabel
}

// NewActions creates an empty action set with the given default action.
func NewActions(fallback interface{}) *Actions {
	return &Actions{
		actions:  make(map[label.ActionLabel]interface{}),
		fallback: fallback,
	}
}

// With registers an action under the label; it replaces a present action.
func (a *Actions) With(actionLabel label.ActionLabel, action interface{}) *Actions {
	a.actions[actionLabel] = action
	return a
}

// Action returns the action registered under the label.
func (a *Actions) Action(actionLabel label.ActionLabel) (interface{}, bool) {
	action, ok := a.actions[actionLabel]
	return action, ok
}

// Default returns the fallback action.
func (a *Actions) Default() interface{} {
	return a.fallback
}

// Current returns the currently selected action value, falling back to the
// default action when nothing has been selected yet or the selected label has
// no registered action.
func (a *Actions) Current() interface{} {
	if a.current == nil {
		return a.fallback
	}
	if action, ok := a.actions[*a.current]; ok {
		return action
	}
	return a.fallback
}

// CurrentLabel returns the currently selected action label.
func (a *Actions) CurrentLabel() (label.ActionLabel, bool) {
	if a.current == nil {
		return label.ActionLabel{}, false
	}
	return *a.current, true
}

// SetCurrent marks the labeled action as current.
func (a *Actions) SetCurrent(actionLabel label.ActionLabel) {
	a.current = &actionLabel
}

// ClearCurrent reverts the action set to the default action.
func (a *Actions) ClearCurrent() {
	a.current = nil
}

// Apply runs the selector on the selection and updates the current action
// when the selector picked one; otherwise the current action stays unchanged.
func (a *Actions) Apply(s Selector, selection Selection) (label.ActionLabel, bool) {
	actionLabel, ok := s.Select(selection)
	if ok {
		a.SetCurrent(actionLabel)
	}
	return actionLabel, ok
}
