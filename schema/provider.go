package schema

import "context"

// --- Provider Interfaces ---

// TypeFetcher resolves type names to schema types. A (nil, nil) return means
// the type does not exist; a non-nil error means the provider itself failed.
type TypeFetcher interface {
	GetType(ctx context.Context, name string) (*SchemaType, error)
}

// ResourceTypeLister lists the names of all resource root types.
type ResourceTypeLister interface {
	AllResourceTypes(ctx context.Context) ([]string, error)
}

// ElementIntrospector inspects the direct properties of a schema type.
type ElementIntrospector interface {
	// ElementNames returns the direct property names of t.
	ElementNames(t *SchemaType) []string

	// ElementType returns the reference for a named property of t.
	ElementType(t *SchemaType, elementName string) (*PropertyRef, bool)
}

// OfTypeResolver narrows a polymorphic type to a named member type.
type OfTypeResolver interface {
	ResolveOfType(t *SchemaType, targetTypeName string) (*SchemaType, bool)
}

// Provider is the complete schema provider boundary the navigation engine
// depends on. It is the only external dependency of the engine.
type Provider interface {
	TypeFetcher
	ResourceTypeLister
	ElementIntrospector
	OfTypeResolver
}
