// Package memory provides a map-backed world for embedding applications that
// do not bring their own entity store, and for tests.
package memory
