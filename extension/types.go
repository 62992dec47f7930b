package extension

import (
	"github.com/viant/x"
)

// Types registers the Go types that declarative definitions may reference,
// for example custom component payloads.
type Types struct {
	x.Registry
}

// Lookup returns a data type from the registry, or nil when absent.
func (t *Types) Lookup(dataType string) *x.Type {
	return t.Registry.Lookup(dataType)
}

// NewTypes creates a new type registry.
func NewTypes(options ...x.RegistryOption) *Types {
	return &Types{Registry: *x.NewRegistry(options...)}
}
