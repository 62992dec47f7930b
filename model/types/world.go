package types

// EntityID identifies a subject entity within a World. The zero value is not
// a valid entity.
type EntityID uint64

// World exposes host state to evaluators and aggregators. Implementations
// are supplied by the embedding application; during flow evaluation all
// access must be read-only so that many targets can be scored in parallel
// against a shared World.
type World interface {
	// Component returns the named piece of data attached to the target
	// entity.
	Component(target EntityID, name string) (interface{}, bool)

	// Resource returns the named process-wide singleton value.
	Resource(name string) (interface{}, bool)

	// Parent returns the parent entity of the target, when it has one.
	Parent(target EntityID) (EntityID, bool)

	// Children returns the direct children entities of the target.
	Children(target EntityID) []EntityID
}
