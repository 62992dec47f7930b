// Package mapper provides score mappers applied on top of evaluator and
// aggregator outputs.
package mapper
