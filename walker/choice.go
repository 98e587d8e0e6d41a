package walker

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/rs/zerolog"

	tn "github.com/gofhir/typenav"
	"github.com/gofhir/typenav/schema"
	"github.com/gofhir/typenav/similarity"
)

// choicePropertyPattern matches concrete choice property names: a lowercase
// base followed by a capitalized type suffix, e.g. "valueQuantity".
var choicePropertyPattern = regexp.MustCompile(`^[a-z]+[A-Z]\w+$`)

// ChoiceResolver detects polymorphic "choice" types and resolves them to
// concrete member types.
type ChoiceResolver struct {
	provider  schema.Provider
	threshold float64
	log       zerolog.Logger
}

// NewChoiceResolver creates a ChoiceResolver. The threshold governs how
// similar a valid choice name must be before it is suggested for a mismatch.
func NewChoiceResolver(provider schema.Provider, threshold float64, log zerolog.Logger) *ChoiceResolver {
	return &ChoiceResolver{
		provider:  provider,
		threshold: threshold,
		log:       log,
	}
}

// IsChoiceType returns true if t carries a non-empty choice descriptor under
// any of the supported representations.
func (r *ChoiceResolver) IsChoiceType(t *schema.SchemaType) bool {
	return t != nil && t.Choice.Kind() != schema.ChoiceNone
}

// ResolveTypes resolves a choice type to its concrete member types, in the
// descriptor's priority order: explicit union, legacy name list, then the
// naming-pattern fallback over the common FHIR type set. A non-choice type
// resolves to itself. When targetTypeName is non-empty the members are
// narrowed to that name. Never fails; a provider error yields an empty slice.
func (r *ChoiceResolver) ResolveTypes(ctx context.Context, t *schema.SchemaType, targetTypeName string) []*schema.SchemaType {
	if t == nil {
		return nil
	}

	var members []*schema.SchemaType
	switch t.Choice.Kind() {
	case schema.ChoiceNone:
		return []*schema.SchemaType{t}
	case schema.ChoiceUnion:
		members = slices.Clone(t.Choice.Union)
	case schema.ChoiceLegacyNames:
		members = r.resolveNames(ctx, t.Choice.LegacyNames)
	case schema.ChoiceNamePattern:
		members = r.resolveNames(ctx, CommonChoiceTypeNames)
	}
	if members == nil {
		return nil
	}

	if targetTypeName == "" {
		return members
	}
	if narrowed, ok := r.provider.ResolveOfType(t, targetTypeName); ok {
		return []*schema.SchemaType{narrowed}
	}
	members = slices.DeleteFunc(members, func(m *schema.SchemaType) bool {
		return m.Name != targetTypeName
	})
	return members
}

// resolveNames resolves member type names through the provider. Names the
// provider does not know degrade to bare types so generated property names
// stay complete; a provider failure aborts with an empty result.
func (r *ChoiceResolver) resolveNames(ctx context.Context, names []string) []*schema.SchemaType {
	members := make([]*schema.SchemaType, 0, len(names))
	for _, name := range names {
		t, err := r.provider.GetType(ctx, name)
		if err != nil {
			r.log.Debug().Err(err).Str("member", name).Msg("choice member resolution failed")
			return nil
		}
		if t == nil {
			t = &schema.SchemaType{Name: name}
		}
		members = append(members, t)
	}
	return members
}

// PropertyNames generates the concrete property name for each choice member:
// baseProperty plus the capitalized member name. A member with an empty name
// degrades to baseProperty unchanged.
func (r *ChoiceResolver) PropertyNames(baseProperty string, choices []*schema.SchemaType) []string {
	names := make([]string, 0, len(choices))
	for _, c := range choices {
		if c == nil || c.Name == "" {
			names = append(names, baseProperty)
			continue
		}
		names = append(names, baseProperty+strcase.ToCamel(c.Name))
	}
	return names
}

// ValidateProperty checks whether a concrete choice property name such as
// "valueQuantity" is valid on the named resource type. On a mismatch the
// most similar valid name is suggested. Never fails; every problem is
// reported inside the result.
func (r *ChoiceResolver) ValidateProperty(ctx context.Context, resourceTypeName, propertyName string) *tn.ChoiceValidationResult {
	rt, err := r.provider.GetType(ctx, resourceTypeName)
	if err != nil || rt == nil {
		return &tn.ChoiceValidationResult{
			Valid: false,
			Error: fmt.Sprintf("Resource type '%s' not found", resourceTypeName),
		}
	}

	base := ExtractBaseProperty(propertyName)
	choiceType := r.choiceBaseType(ctx, rt, base)
	if choiceType == nil {
		return &tn.ChoiceValidationResult{
			Valid: false,
			Error: fmt.Sprintf("%s is not a choice type", base),
		}
	}

	members := r.ResolveTypes(ctx, choiceType, "")
	validNames := r.PropertyNames(base, members)
	if slices.Contains(validNames, propertyName) {
		return &tn.ChoiceValidationResult{
			Valid:        true,
			ValidChoices: validNames,
		}
	}

	result := &tn.ChoiceValidationResult{
		Valid:        false,
		Error:        fmt.Sprintf("'%s' is not a valid choice for '%s[x]'", propertyName, base),
		ValidChoices: validNames,
	}
	if suggestion, ok := similarity.BestMatch(propertyName, validNames, r.threshold); ok {
		result.SuggestedProperty = suggestion
	}
	return result
}

// DetectContext parses an expression prefix of the exact shape
// "Type.property" and, when the property is a choice base, returns its
// resolved member types and the full set of valid concrete property names.
// Any other shape, an unknown type, or a non-choice property yields nil.
func (r *ChoiceResolver) DetectContext(ctx context.Context, expressionPrefix string) *tn.ChoiceContext {
	parts := strings.Split(expressionPrefix, ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil
	}
	typeName, property := parts[0], parts[1]

	rt, err := r.provider.GetType(ctx, typeName)
	if err != nil || rt == nil {
		return nil
	}

	choiceType := r.choiceBaseType(ctx, rt, property)
	if choiceType == nil {
		return nil
	}

	members := r.ResolveTypes(ctx, choiceType, "")
	return &tn.ChoiceContext{
		ParentType:         rt,
		BaseProperty:       property,
		ChoiceTypes:        members,
		ValidPropertyNames: r.PropertyNames(property, members),
	}
}

// choiceBaseType returns the choice type behind property base of rt, or nil
// when base is not a choice property there.
func (r *ChoiceResolver) choiceBaseType(ctx context.Context, rt *schema.SchemaType, base string) *schema.SchemaType {
	ref, ok := r.provider.ElementType(rt, base)
	if !ok {
		return nil
	}
	t, err := r.provider.GetType(ctx, ref.Type)
	if err != nil || !r.IsChoiceType(t) {
		return nil
	}
	return t
}

// IsChoicePropertyName returns true if name has the shape of a concrete
// choice property: lowercase prefix, capitalized suffix.
func IsChoicePropertyName(name string) bool {
	return choicePropertyPattern.MatchString(name)
}

// ExtractBaseProperty returns the lowercase prefix of a concrete choice
// property name, or the name unchanged when the pattern does not match.
func ExtractBaseProperty(name string) string {
	if !IsChoicePropertyName(name) {
		return name
	}
	return name[:suffixIndex(name)]
}

// ExtractChoiceTypeName returns the capitalized suffix of a concrete choice
// property name, or "" when the pattern does not match.
func ExtractChoiceTypeName(name string) string {
	if !IsChoicePropertyName(name) {
		return ""
	}
	return name[suffixIndex(name):]
}

// suffixIndex returns the index of the first uppercase letter. The caller
// guarantees the pattern matched, so one exists.
func suffixIndex(name string) int {
	for i := 0; i < len(name); i++ {
		if name[i] >= 'A' && name[i] <= 'Z' {
			return i
		}
	}
	return len(name)
}
