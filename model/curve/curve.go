package curve

import "math"

// Curve is a response curve sampled over the unit domain. Curves reshape
// scores, for example to make an aggregate matter only once it passes a knee.
type Curve interface {
	// Sample evaluates the curve at t. ok is false when t lies outside the
	// curve domain.
	Sample(t float64) (value float64, ok bool)
}

// Func adapts an ordinary function over the unit domain into a Curve.
type Func func(t float64) float64

// Sample evaluates the function when t is within the unit domain.
func (f Func) Sample(t float64) (float64, bool) {
	if t < 0 || t > 1 {
		return 0, false
	}
	return f(t), true
}

// Linear returns the identity curve over the unit domain.
func Linear() Curve {
	return Func(func(t float64) float64 { return t })
}

// Pow returns a power curve over the unit domain; exponents above one bias
// towards low responses, exponents below one towards high ones.
func Pow(exponent float64) Curve {
	return Func(func(t float64) float64 { return math.Pow(t, exponent) })
}
