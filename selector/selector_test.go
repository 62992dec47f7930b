package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/scoreflow/model/label"
	"github.com/viant/scoreflow/model/score"
	"github.com/viant/scoreflow/runtime/flow"
)

func TestHighest(t *testing.T) {
	eat := Choice{Score: label.Score("Hunger"), Action: label.Action("Eat")}
	flee := Choice{Score: label.Score("Fear"), Action: label.Action("Flee")}

	subject := Highest(eat, flee)
	actionLabel, ok := subject.Select(Selection{Scores: flow.Scores{
		label.Score("Hunger"): score.New(0.3),
		label.Score("Fear"):   score.New(0.8),
	}})
	assert.True(t, ok)
	assert.Equal(t, label.Action("Flee"), actionLabel)
}

func TestHighestSkipsAbsentScores(t *testing.T) {
	eat := Choice{Score: label.Score("Hunger"), Action: label.Action("Eat")}
	flee := Choice{Score: label.Score("Fear"), Action: label.Action("Flee")}

	subject := Highest(eat, flee)
	actionLabel, ok := subject.Select(Selection{Scores: flow.Scores{
		label.Score("Hunger"): score.New(0.1),
	}})
	assert.True(t, ok)
	assert.Equal(t, label.Action("Eat"), actionLabel)
}

func TestHighestWithoutCandidates(t *testing.T) {
	subject := Highest(Choice{Score: label.Score("Hunger"), Action: label.Action("Eat")})
	_, ok := subject.Select(Selection{Scores: flow.Scores{}})
	assert.False(t, ok)
}

func TestHighestTieBreaksByActionName(t *testing.T) {
	subject := Highest(
		Choice{Score: label.Score("A"), Action: label.Action("Wander")},
		Choice{Score: label.Score("B"), Action: label.Action("Eat")},
	)
	actionLabel, ok := subject.Select(Selection{Scores: flow.Scores{
		label.Score("A"): score.New(0.5),
		label.Score("B"): score.New(0.5),
	}})
	assert.True(t, ok)
	assert.Equal(t, label.Action("Eat"), actionLabel)
}

func TestActions(t *testing.T) {
	idle := "idle"
	subject := NewActions(idle).
		With(label.Action("Eat"), "eat").
		With(label.Action("Flee"), "flee")

	assert.Equal(t, idle, subject.Current())

	subject.SetCurrent(label.Action("Eat"))
	assert.Equal(t, "eat", subject.Current())
	current, ok := subject.CurrentLabel()
	assert.True(t, ok)
	assert.Equal(t, label.Action("Eat"), current)

	// a selected label without a registered action falls back
	subject.SetCurrent(label.Action("Sing"))
	assert.Equal(t, idle, subject.Current())

	subject.ClearCurrent()
	_, ok = subject.CurrentLabel()
	assert.False(t, ok)
}

func TestActionsApply(t *testing.T) {
	subject := NewActions("idle").With(label.Action("Flee"), "flee")
	chooser := Highest(Choice{Score: label.Score("Fear"), Action: label.Action("Flee")})

	_, ok := subject.Apply(chooser, Selection{Scores: flow.Scores{
		label.Score("Fear"): score.New(0.9),
	}})
	assert.True(t, ok)
	assert.Equal(t, "flee", subject.Current())

	// a selector with no qualifying choice keeps the current action
	_, ok = subject.Apply(chooser, Selection{Scores: flow.Scores{}})
	assert.False(t, ok)
	assert.Equal(t, "flee", subject.Current())
}
