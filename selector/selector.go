package selector

import (
	"github.com/viant/scoreflow/model/label"
	"github.com/viant/scoreflow/model/types"
	"github.com/viant/scoreflow/runtime/flow"
)

// Selection is the context a selector decides on: the computed scores of one
// target together with read-only world access.
type Selection struct {
	// World is the read-only host state the selection runs against.
	World types.World
	// Target is the entity an action is being selected for.
	Target types.EntityID
	// Scores holds the flow outputs of the target.
	Scores flow.Scores
}

// Selector picks an action from computed scores. The boolean result reports
// whether any action qualified.
type Selector interface {
	Select(selection Selection) (label.ActionLabel, bool)
}

// Func adapts a function into a Selector.
type Func func(selection Selection) (label.ActionLabel, bool)

// Select calls the adapted function.
func (f Func) Select(selection Selection) (label.ActionLabel, bool) {
	return f(selection)
}

// Choice binds a score output to the action it argues for.
type Choice struct {
	Score  label.ScoreLabel
	Action label.ActionLabel
}

// Highest returns a selector picking the choice whose score output is
// highest. Choices whose score is absent from the selection do not compete.
// Ties break towards the lexicographically smallest action name so that
// repeated selections stay deterministic.
func Highest(choices ...Choice) Selector {
	return &highestSelector{choices: choices}
}

type highestSelector struct {
	choices []Choice
}

func (s *highestSelector) Select(selection Selection) (label.ActionLabel, bool) {
	var best Choice
	found := false
	for _, choice := range s.choices {
		value, ok := selection.Scores.Score(choice.Score)
		if !ok {
			continue
		}
		if !found {
			best, found = choice, true
			continue
		}
		bestValue, _ := selection.Scores.Score(best.Score)
		switch bestValue.Compare(value) {
		case -1:
			best = choice
		case 0:
			if choice.Action.Name() < best.Action.Name() {
				best = choice
			}
		}
	}
	if !found {
		return label.ActionLabel{}, false
	}
	return best.Action, true
}
