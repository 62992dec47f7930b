// Package types defines the node contracts of the scoring engine - the
// Evaluator, Aggregator and Mapper interfaces, their evaluation contexts and
// the World interface through which nodes read host state. The interfaces are
// deliberately free of generic methods so that heterogeneous combinator
// chains can be stored uniformly; the *Func adapters play the role of a
// conversion layer for plain functions.
package types
