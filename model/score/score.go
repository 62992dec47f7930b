package score

import (
	"fmt"
	"math"
)

// Score is a scoring value clamped to the [0, 1] interval. The zero value is
// the minimum score. A Score can never hold NaN.
type Score struct {
	value float64
}

// Min is the lowest possible score.
var Min = Score{value: 0}

// Max is the highest possible score.
var Max = Score{value: 1}

// New returns a score clamped to the [0, 1] interval. It panics when value is
// NaN - producing a score from NaN is a programming error, not a recoverable
// condition.
func New(value float64) Score {
	if math.IsNaN(value) {
		panic("score: value must not be NaN")
	}
	return Score{value: clamp(value)}
}

func clamp(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}

// Value returns the underlying score value.
func (s Score) Value() float64 {
	return s.value
}

// Add returns the clamped sum of both scores.
func (s Score) Add(other Score) Score {
	return New(s.value + other.value)
}

// Sub returns the clamped difference of both scores.
func (s Score) Sub(other Score) Score {
	return New(s.value - other.value)
}

// Mul returns the clamped product of both scores.
func (s Score) Mul(other Score) Score {
	return New(s.value * other.value)
}

// Div returns the clamped quotient of both scores. Division by zero yields
// Min rather than an error.
func (s Score) Div(other Score) Score {
	if other.value == 0 {
		return Min
	}
	return New(s.value / other.value)
}

// Compare orders scores totally: -1 when s is lower, 1 when s is higher and 0
// otherwise.
func (s Score) Compare(other Score) int {
	switch {
	case s.value < other.value:
		return -1
	case s.value > other.value:
		return 1
	default:
		return 0
	}
}

// Less reports whether s orders strictly before other.
func (s Score) Less(other Score) bool {
	return s.Compare(other) < 0
}

func (s Score) String() string {
	return fmt.Sprintf("%.4f", s.value)
}

// Sum reduces scores with clamped addition; the identity of an empty sequence
// is Min.
func Sum(scores []Score) Score {
	result := Min
	for _, item := range scores {
		result = result.Add(item)
	}
	return result
}

// Product reduces scores with clamped multiplication; the identity of an
// empty sequence is Max.
func Product(scores []Score) Score {
	result := Max
	for _, item := range scores {
		result = result.Mul(item)
	}
	return result
}

// Scoreable converts a value into a Score.
type Scoreable interface {
	Score() Score
}

// Of converts a value into a Score when the value is a Score or implements
// Scoreable.
func Of(value interface{}) (Score, bool) {
	switch actual := value.(type) {
	case Score:
		return actual, true
	case Scoreable:
		return actual.Score(), true
	}
	return Min, false
}

// FromNumeric converts a numeric or boolean value, such as an expression
// result, into a clamped Score. NaN and unsupported types report false
// instead of panicking; true maps to Max and false to Min.
func FromNumeric(value interface{}) (Score, bool) {
	switch actual := value.(type) {
	case Score:
		return actual, true
	case float64:
		if math.IsNaN(actual) {
			return Min, false
		}
		return New(actual), true
	case float32:
		if math.IsNaN(float64(actual)) {
			return Min, false
		}
		return New(float64(actual)), true
	case int:
		return New(float64(actual)), true
	case int64:
		return New(float64(actual)), true
	case uint64:
		return New(float64(actual)), true
	case bool:
		if actual {
			return Max, true
		}
		return Min, true
	}
	return Min, false
}
