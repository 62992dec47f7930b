package types

import "github.com/viant/scoreflow/model/score"

// Evaluation is the context passed to an Evaluator.
type Evaluation struct {
	// World is the read-only host state the evaluation runs against.
	World World
	// Target is the entity being scored.
	Target EntityID
}

// Aggregation is the context passed to an Aggregator.
type Aggregation struct {
	// World is the read-only host state the aggregation runs against.
	World World
	// Target is the entity being scored.
	Target EntityID
	// Scores holds the children scores in registration order.
	Scores []score.Score
}

// Mapping is the context passed to a Mapper.
type Mapping struct {
	// World is the read-only host state the mapping runs against.
	World World
	// Target is the entity being scored.
	Target EntityID
	// Value is the score being mapped.
	Value score.Score
}
