// Package aggregator provides the built-in score aggregators (sum, product,
// minimum, maximum, average, means, median) and the combinators that derive
// new aggregators from existing ones (map, invert, weight, curve,
// curve_input, threshold, input_threshold, score_children).
package aggregator
