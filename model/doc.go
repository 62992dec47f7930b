// Package model contains the in-memory representation of flow definitions
// and supporting types used by the scoring engine.
//
// A flow definition is typically loaded from a YAML document into the
// structures defined here and in the `graph`, `label` and `score`
// sub-packages.  The root model package simply aggregates those building
// blocks so that they can be referenced from other parts of the code base
// with a single import.
package model
