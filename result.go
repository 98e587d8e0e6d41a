package typenav

import (
	"strings"

	"github.com/gofhir/typenav/schema"
)

// EnhancedTypeInfo is the derived, cached view of a schema type: the raw type
// plus its hierarchy, constraint metadata, terminology binding, and resolved
// choice members. It is computed on first request per type name and
// invalidated only by an explicit cache clear.
type EnhancedTypeInfo struct {
	// Type is the provider-owned raw type.
	Type *schema.SchemaType `json:"type"`

	// Hierarchy is ordered from the type itself to its ultimate base.
	Hierarchy []*schema.SchemaType `json:"hierarchy"`

	// Constraints holds cardinality/required/length metadata with defaults
	// filled in.
	Constraints schema.Constraints `json:"constraints"`

	// Terminology holds the binding strength, defaulting to "example".
	Terminology schema.Terminology `json:"terminology"`

	// ChoiceTypes holds the resolved member types for polymorphic types,
	// empty otherwise.
	ChoiceTypes []*schema.SchemaType `json:"choiceTypes,omitempty"`
}

// NavigationResult reports the outcome of walking a property path against a
// root type. It is created fresh per navigation call and never mutated after
// return.
type NavigationResult struct {
	// Valid is true when every path segment resolved.
	Valid bool `json:"isValid"`

	// NavigationPath holds the root type plus every successfully resolved
	// step, truncated at the first failure.
	NavigationPath []*schema.SchemaType `json:"navigationPath"`

	// FinalType is the terminal type of a fully resolved path, nil on
	// failure.
	FinalType *schema.SchemaType `json:"finalType,omitempty"`

	// AvailableProperties lists the properties visible at the last
	// successfully reached type.
	AvailableProperties []string `json:"availableProperties"`

	// Errors holds human-readable failure messages, empty when valid.
	Errors []string `json:"errors,omitempty"`
}

// PathNames returns the type names along the navigation path.
func (r *NavigationResult) PathNames() []string {
	names := make([]string, 0, len(r.NavigationPath))
	for _, t := range r.NavigationPath {
		names = append(names, t.Name)
	}
	return names
}

// String returns a compact human-readable summary of the result.
func (r *NavigationResult) String() string {
	if r.Valid {
		return "valid: " + strings.Join(r.PathNames(), " -> ")
	}
	return "invalid: " + strings.Join(r.Errors, "; ")
}

// ChoiceValidationResult reports whether a concrete choice property name
// (e.g. "valueQuantity") is valid for a resource type.
type ChoiceValidationResult struct {
	Valid bool `json:"isValid"`

	// Error is the failure message, empty when valid.
	Error string `json:"error,omitempty"`

	// ValidChoices lists the concrete choice property names allowed on the
	// base property.
	ValidChoices []string `json:"validChoices,omitempty"`

	// SuggestedProperty is the most similar valid choice name, when one
	// scores above the similarity threshold.
	SuggestedProperty string `json:"suggestedProperty,omitempty"`
}

// ChoiceContext describes a detected choice base within a "Type.property"
// expression prefix.
type ChoiceContext struct {
	// ParentType is the resolved type owning the choice property.
	ParentType *schema.SchemaType `json:"parentType"`

	// BaseProperty is the choice base name, e.g. "value".
	BaseProperty string `json:"baseProperty"`

	// ChoiceTypes holds the resolved candidate member types.
	ChoiceTypes []*schema.SchemaType `json:"choiceTypes"`

	// ValidPropertyNames holds the full set of concrete property names,
	// e.g. "valueQuantity", "valueString".
	ValidPropertyNames []string `json:"validPropertyNames"`
}

// Category names assigned by type classification.
const (
	CategoryPrimitive = "primitive"
	CategoryResource  = "resource"
	CategoryComplex   = "complex"
)

// TypeClassification assigns a type name to exactly one of the primitive,
// resource, or complex categories.
type TypeClassification struct {
	IsPrimitive bool   `json:"isPrimitive"`
	IsResource  bool   `json:"isResource"`
	IsComplex   bool   `json:"isComplex"`
	Category    string `json:"category"`
}

// HealthStatus reports the outcome of a live provider probe.
type HealthStatus struct {
	Healthy bool          `json:"healthy"`
	Details HealthDetails `json:"details"`
}

// HealthDetails carries the individual probe observations.
type HealthDetails struct {
	Initialized        bool   `json:"initialized"`
	ProviderAvailable  bool   `json:"providerAvailable"`
	SampleResolutionOK bool   `json:"sampleResolutionOk"`
	Error              string `json:"error,omitempty"`
	CacheSize          int    `json:"cacheSize"`
	CacheCapacity      int    `json:"cacheCapacity"`
}
