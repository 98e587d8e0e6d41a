package walker

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gofhir/typenav/schema"
)

// DefaultMaxHierarchyDepth bounds the base-type walk. FHIR hierarchies are at
// most a handful of levels deep; the bound only matters on malformed schemas.
const DefaultMaxHierarchyDepth = 32

// HierarchyBuilder walks a type's base-type chain into an ordered hierarchy.
type HierarchyBuilder struct {
	provider schema.Provider
	maxDepth int
	log      zerolog.Logger
}

// NewHierarchyBuilder creates a HierarchyBuilder. Non-positive depths fall
// back to DefaultMaxHierarchyDepth.
func NewHierarchyBuilder(provider schema.Provider, maxDepth int, log zerolog.Logger) *HierarchyBuilder {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxHierarchyDepth
	}
	return &HierarchyBuilder{
		provider: provider,
		maxDepth: maxDepth,
		log:      log,
	}
}

// Build returns the hierarchy from t to its ultimate base, first element t
// itself. The walk terminates when a base is absent, the provider returns
// nothing, a name repeats, or the depth bound is hit. A cycle returns the
// partial hierarchy built so far together with a cycle error; a provider
// failure mid-walk returns the partial hierarchy without error.
func (b *HierarchyBuilder) Build(ctx context.Context, t *schema.SchemaType) ([]*schema.SchemaType, error) {
	if t == nil {
		return nil, nil
	}

	hierarchy := []*schema.SchemaType{t}
	visited := map[string]bool{t.Name: true}
	current := t

	for depth := 0; current.Base != ""; depth++ {
		if depth >= b.maxDepth {
			return hierarchy, fmt.Errorf("cycle detected in type hierarchy for '%s': depth bound %d exceeded", t.Name, b.maxDepth)
		}
		if visited[current.Base] {
			return hierarchy, fmt.Errorf("cycle detected in type hierarchy for '%s': '%s' repeats", t.Name, current.Base)
		}

		base, err := b.provider.GetType(ctx, current.Base)
		if err != nil {
			b.log.Debug().Err(err).
				Str("type", t.Name).
				Str("base", current.Base).
				Msg("provider failed mid-walk, returning partial hierarchy")
			return hierarchy, nil
		}
		if base == nil {
			break
		}

		hierarchy = append(hierarchy, base)
		visited[base.Name] = true
		current = base
	}

	return hierarchy, nil
}
