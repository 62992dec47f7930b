// Package evaluator provides the built-in leaf evaluators (constant, target,
// parent, resource, expr) and the combinators that derive new evaluators from
// existing ones (map, invert, weight, curve, threshold).
package evaluator
