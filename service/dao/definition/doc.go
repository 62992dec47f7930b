// Package definition loads declarative flow definitions from YAML documents
// and lowers them into node configs through the extension registries.
package definition
