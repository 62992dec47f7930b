// Package sweep scores batches of flow assignments against a shared world:
// evaluation runs read-only and in parallel, world mutation is collected and
// deferred to a single write-back once the whole batch has been scored.
package sweep
