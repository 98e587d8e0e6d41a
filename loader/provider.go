package loader

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/gofhir/fhir/r4"
	"github.com/iancoleman/strcase"

	"github.com/gofhir/typenav/schema"
)

// InMemoryProvider is a schema.Provider backed by a registry of schema
// types. Types are registered directly or loaded from R4 structure
// definitions; lookups are safe for concurrent use.
type InMemoryProvider struct {
	mu        sync.RWMutex
	types     map[string]*schema.SchemaType
	resources map[string]struct{}
	converter *R4Converter
}

// NewInMemoryProvider creates an empty provider.
func NewInMemoryProvider() *InMemoryProvider {
	return &InMemoryProvider{
		types:     map[string]*schema.SchemaType{},
		resources: map[string]struct{}{},
		converter: NewR4Converter(),
	}
}

// Register adds a type to the registry, replacing any previous type with the
// same name.
func (p *InMemoryProvider) Register(t *schema.SchemaType) {
	if t == nil || t.Name == "" {
		return
	}
	p.mu.Lock()
	p.types[t.Name] = t
	p.mu.Unlock()
}

// MarkResource records a type name as a resource type for AllResourceTypes.
func (p *InMemoryProvider) MarkResource(name string) {
	p.mu.Lock()
	p.resources[name] = struct{}{}
	p.mu.Unlock()
}

// LoadR4 converts and registers an R4 structure definition, including any
// synthetic choice types its "[x]" elements produce. Resource-kind
// definitions are listed by AllResourceTypes.
func (p *InMemoryProvider) LoadR4(sd *r4.StructureDefinition) error {
	t, choiceTypes, err := p.converter.Convert(sd)
	if err != nil {
		return fmt.Errorf("converting structure definition: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.types[t.Name] = t
	for _, ct := range choiceTypes {
		p.types[ct.Name] = ct
	}
	if sd.Kind != nil && *sd.Kind == r4.StructureDefinitionKindResource {
		p.resources[t.Name] = struct{}{}
	}
	return nil
}

// GetType implements schema.TypeFetcher. Unknown names yield (nil, nil).
func (p *InMemoryProvider) GetType(ctx context.Context, name string) (*schema.SchemaType, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.types[name], nil
}

// AllResourceTypes implements schema.ResourceTypeLister.
func (p *InMemoryProvider) AllResourceTypes(ctx context.Context) ([]string, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	p.mu.RLock()
	names := make([]string, 0, len(p.resources))
	for name := range p.resources {
		names = append(names, name)
	}
	p.mu.RUnlock()

	sort.Strings(names)
	return names, nil
}

// ElementNames implements schema.ElementIntrospector.
func (p *InMemoryProvider) ElementNames(t *schema.SchemaType) []string {
	if t == nil {
		return nil
	}
	names := make([]string, 0, len(t.Properties))
	for name := range t.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ElementType implements schema.ElementIntrospector. Besides declared
// properties it resolves concrete choice property names: when t has a
// property "value" backed by a choice type with a "Quantity" member,
// "valueQuantity" resolves to Quantity.
func (p *InMemoryProvider) ElementType(t *schema.SchemaType, elementName string) (*schema.PropertyRef, bool) {
	if t == nil {
		return nil, false
	}
	if ref, ok := t.Properties[elementName]; ok {
		return &ref, true
	}
	return p.concreteChoiceRef(t, elementName)
}

// concreteChoiceRef matches elementName against the expanded choice property
// names of t's choice-typed properties.
func (p *InMemoryProvider) concreteChoiceRef(t *schema.SchemaType, elementName string) (*schema.PropertyRef, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for base, ref := range t.Properties {
		if !strings.HasPrefix(elementName, base) || elementName == base {
			continue
		}
		target := p.types[ref.Type]
		if target == nil || target.Choice == nil {
			continue
		}
		for _, member := range choiceMemberNames(target.Choice) {
			if elementName == base+strcase.ToCamel(member) {
				return &schema.PropertyRef{
					Name:        elementName,
					Type:        member,
					Cardinality: ref.Cardinality,
				}, true
			}
		}
	}
	return nil, false
}

// ResolveOfType implements schema.OfTypeResolver. Only choice types narrow;
// member names match case-sensitively.
func (p *InMemoryProvider) ResolveOfType(t *schema.SchemaType, targetTypeName string) (*schema.SchemaType, bool) {
	if t == nil || t.Choice == nil {
		return nil, false
	}

	for _, member := range t.Choice.Union {
		if member != nil && member.Name == targetTypeName {
			return member, true
		}
	}
	for _, name := range t.Choice.LegacyNames {
		if name != targetTypeName {
			continue
		}
		p.mu.RLock()
		resolved := p.types[name]
		p.mu.RUnlock()
		if resolved != nil {
			return resolved, true
		}
		return &schema.SchemaType{Name: name}, true
	}
	return nil, false
}

// choiceMemberNames lists a descriptor's member type names regardless of how
// the choice is declared.
func choiceMemberNames(d *schema.ChoiceDescriptor) []string {
	if len(d.Union) > 0 {
		names := make([]string, 0, len(d.Union))
		for _, member := range d.Union {
			if member != nil {
				names = append(names, member.Name)
			}
		}
		return names
	}
	return d.LegacyNames
}
