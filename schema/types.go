// Package schema defines the provider boundary for type navigation: the
// structural records describing named schema types and the small, composable
// interfaces a schema provider implements.
package schema

import "strings"

// SchemaType is a named type as seen by a schema provider. The navigation
// engine treats instances as immutable snapshots and never mutates them.
type SchemaType struct {
	// Name is the type name, e.g. "Patient" or "HumanName".
	Name string

	// Base is the name of the base type, empty for root types.
	Base string

	// Properties maps property names to their references.
	Properties map[string]PropertyRef

	// Choice describes the polymorphic nature of the type, nil for
	// non-polymorphic types.
	Choice *ChoiceDescriptor

	// Cardinality is an optional provider-supplied occurrence hint,
	// e.g. "0..1" or "1..*".
	Cardinality string

	// Required indicates a minimum cardinality of at least 1, when known.
	Required bool

	// MinLength and MaxLength are optional length hints for string-like
	// types.
	MinLength *int
	MaxLength *int

	// Binding is an optional terminology binding strength hint.
	Binding string
}

// PropertyRef is a read-only reference to a property of a SchemaType.
type PropertyRef struct {
	// Name is the property name as it appears in the schema.
	Name string

	// Type is the declared type name of the property.
	Type string

	// Cardinality is an optional occurrence hint, e.g. "0..*".
	Cardinality string
}

// ChoiceKind identifies which representation of a choice descriptor is
// populated.
type ChoiceKind int

// Choice descriptor representations, in resolution priority order.
const (
	// ChoiceNone means the descriptor is absent or empty.
	ChoiceNone ChoiceKind = iota
	// ChoiceUnion means an explicit list of candidate member types.
	ChoiceUnion
	// ChoiceLegacyNames means a legacy list of member type names.
	ChoiceLegacyNames
	// ChoiceNamePattern means only a "[x]"-suffixed property name is known
	// and candidates come from the common FHIR type set.
	ChoiceNamePattern
)

// ChoiceDescriptor describes a polymorphic ("value[x]"-style) type. The three
// representations are checked in priority order: an explicit member list wins
// over a legacy name list, which wins over the naming-pattern fallback.
type ChoiceDescriptor struct {
	// Property is the schema property name the choice belongs to, in its
	// "[x]" form (e.g. "value[x]"). It doubles as the base-property source
	// for generating concrete property names.
	Property string

	// Union holds explicit candidate member types.
	Union []*SchemaType

	// LegacyNames holds candidate member type names to be resolved through
	// the provider.
	LegacyNames []string
}

// Kind reports which representation is populated, making the resolution
// priority an exhaustive switch rather than a chain of presence checks.
func (d *ChoiceDescriptor) Kind() ChoiceKind {
	switch {
	case d == nil:
		return ChoiceNone
	case len(d.Union) > 0:
		return ChoiceUnion
	case len(d.LegacyNames) > 0:
		return ChoiceLegacyNames
	case strings.HasSuffix(d.Property, "[x]"):
		return ChoiceNamePattern
	default:
		return ChoiceNone
	}
}

// BaseProperty returns the property name with the "[x]" suffix removed.
func (d *ChoiceDescriptor) BaseProperty() string {
	if d == nil {
		return ""
	}
	return strings.TrimSuffix(d.Property, "[x]")
}

// BindingStrength is a terminology binding strength.
type BindingStrength string

// Terminology binding strengths, strongest first.
const (
	BindingRequired   BindingStrength = "required"
	BindingExtensible BindingStrength = "extensible"
	BindingPreferred  BindingStrength = "preferred"
	BindingExample    BindingStrength = "example"
)

// IsValid returns true if this is a known binding strength.
func (s BindingStrength) IsValid() bool {
	switch s {
	case BindingRequired, BindingExtensible, BindingPreferred, BindingExample:
		return true
	default:
		return false
	}
}

// Constraints holds cardinality and length metadata derived for a type.
// Extraction never fails; missing hints degrade to defaults.
type Constraints struct {
	Cardinality string `json:"cardinality"`
	Required    bool   `json:"required"`
	MinLength   *int   `json:"minLength,omitempty"`
	MaxLength   *int   `json:"maxLength,omitempty"`
}

// Terminology holds the binding strength derived for a type.
type Terminology struct {
	Strength BindingStrength `json:"strength"`
}
