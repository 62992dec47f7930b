// Package extension provides run-time registries that bind declarative flow
// definitions to Go code: node kind factories for evaluators and aggregators,
// and a type registry for user-defined Go types.
//
// The registries are normally modified through the public APIs under the
// root scoreflow package, therefore most applications do not need to import
// this package directly.
package extension
