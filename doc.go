// Package scoreflow provides a utility-scoring engine for decision making.
//
// Flows are directed graphs of evaluators and aggregators that score target
// entities against a read-only world; labeled outputs feed selectors that
// pick actions. Flows are built programmatically or loaded from declarative
// YAML definitions.
//
// Scoreflow is designed to be embedded in host applications.  End-users
// typically interact with the engine via the high-level Service facade
// exposed by the root package:
//
//	srv := scoreflow.New()
//	flowLabel, _ := srv.LoadFlow(ctx, "npc.yaml")
//	scores, _ := srv.TryRunFlow(ctx, world, flowLabel, target)
//
// For more details see the individual sub-packages.
package scoreflow
