package walker

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	tn "github.com/gofhir/typenav"
	"github.com/gofhir/typenav/schema"
	"github.com/gofhir/typenav/similarity"
)

// PathNavigator walks a dotted property path step by step against a root
// type, classifying each step as a direct property, a concrete choice
// property, or a failure with a fuzzy-matched suggestion.
type PathNavigator struct {
	provider  schema.Provider
	hierarchy *HierarchyBuilder
	choice    *ChoiceResolver
	threshold float64
	log       zerolog.Logger
}

// NewPathNavigator creates a PathNavigator.
func NewPathNavigator(provider schema.Provider, hierarchy *HierarchyBuilder, choice *ChoiceResolver, threshold float64, log zerolog.Logger) *PathNavigator {
	return &PathNavigator{
		provider:  provider,
		hierarchy: hierarchy,
		choice:    choice,
		threshold: threshold,
		log:       log,
	}
}

// Navigate resolves each path segment in order against rootTypeName. The
// result's navigation path holds the root plus every successfully resolved
// step, truncated at the first failure. Provider errors and panics are
// converted into an invalid result and never propagate.
func (n *PathNavigator) Navigate(ctx context.Context, rootTypeName string, path []string) (result *tn.NavigationResult) {
	defer func() {
		if r := recover(); r != nil {
			n.log.Error().Str("root", rootTypeName).Interface("panic", r).Msg("navigation panicked")
			result = &tn.NavigationResult{
				Valid:  false,
				Errors: []string{fmt.Sprintf("navigation failed: %v", r)},
			}
		}
	}()

	root, err := n.provider.GetType(ctx, rootTypeName)
	if err != nil || root == nil {
		msg := fmt.Sprintf("Root type '%s' not found", rootTypeName)
		if err != nil {
			msg = fmt.Sprintf("%s: %v", msg, err)
		}
		return &tn.NavigationResult{
			Valid:  false,
			Errors: []string{msg},
		}
	}

	navPath := []*schema.SchemaType{root}
	current := root

	for _, segment := range path {
		name := stripIndex(segment)

		next, ok, err := n.step(ctx, current, name)
		if err != nil {
			return &tn.NavigationResult{
				Valid:          false,
				NavigationPath: navPath,
				Errors:         []string{fmt.Sprintf("navigation failed at '%s': %v", name, err)},
			}
		}
		if !ok {
			available := n.propertyNames(ctx, current)
			msg := fmt.Sprintf("Property '%s' not found", name)
			if suggestion, found := similarity.BestMatch(name, available, n.threshold); found {
				msg += fmt.Sprintf(". Did you mean '%s'?", suggestion)
			}
			return &tn.NavigationResult{
				Valid:               false,
				NavigationPath:      navPath,
				AvailableProperties: available,
				Errors:              []string{msg},
			}
		}

		navPath = append(navPath, next)
		current = next
	}

	return &tn.NavigationResult{
		Valid:               true,
		NavigationPath:      navPath,
		FinalType:           current,
		AvailableProperties: n.propertyNames(ctx, current),
	}
}

// step resolves one path segment against the current type: a concrete choice
// property on a polymorphic type first, then a direct property anywhere in
// the type's hierarchy.
func (n *PathNavigator) step(ctx context.Context, current *schema.SchemaType, name string) (*schema.SchemaType, bool, error) {
	if n.choice.IsChoiceType(current) {
		base := current.Choice.BaseProperty()
		members := n.choice.ResolveTypes(ctx, current, "")
		for i, pname := range n.choice.PropertyNames(base, members) {
			if pname != base && pname == name {
				return members[i], true, nil
			}
		}
	}

	for _, t := range n.hierarchyOf(ctx, current) {
		ref, ok := n.provider.ElementType(t, name)
		if !ok {
			continue
		}
		propType, err := n.provider.GetType(ctx, ref.Type)
		if err != nil {
			return nil, false, err
		}
		if propType == nil {
			// Leaf type the provider has no definition for.
			propType = &schema.SchemaType{Name: ref.Type}
		}
		return propType, true, nil
	}
	return nil, false, nil
}

// propertyNames collects the property names visible on t, including base
// types, sorted for deterministic suggestions.
func (n *PathNavigator) propertyNames(ctx context.Context, t *schema.SchemaType) []string {
	seen := map[string]bool{}
	names := []string{}
	for _, h := range n.hierarchyOf(ctx, t) {
		for _, name := range n.provider.ElementNames(h) {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	slices.Sort(names)
	return names
}

// hierarchyOf returns t's hierarchy, falling back to t alone when the walk
// reports a cycle.
func (n *PathNavigator) hierarchyOf(ctx context.Context, t *schema.SchemaType) []*schema.SchemaType {
	hier, err := n.hierarchy.Build(ctx, t)
	if err != nil {
		n.log.Warn().Err(err).Str("type", t.Name).Msg("hierarchy truncated")
	}
	if len(hier) == 0 {
		return []*schema.SchemaType{t}
	}
	return hier
}

// stripIndex removes a bracket suffix ("name[0]", "name[*]") from a path
// segment. Indices carry no type-narrowing semantics in this engine.
func stripIndex(segment string) string {
	if i := strings.IndexByte(segment, '['); i > 0 {
		return segment[:i]
	}
	return segment
}
