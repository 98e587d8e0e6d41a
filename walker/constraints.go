package walker

import "github.com/gofhir/typenav/schema"

// Defaults applied when the provider supplies no usable hint.
const (
	DefaultCardinality = "0..*"
	DefaultStrength    = schema.BindingExample
)

// ExtractConstraints derives cardinality and length metadata for a type from
// whatever provider-supplied hints are present. It never fails: a missing or
// malformed hint degrades to the default, so enhanced type info is always
// complete even for sparsely described primitive types.
func ExtractConstraints(t *schema.SchemaType) schema.Constraints {
	c := schema.Constraints{
		Cardinality: DefaultCardinality,
		Required:    false,
	}
	if t == nil {
		return c
	}

	if isCardinality(t.Cardinality) {
		c.Cardinality = t.Cardinality
	}
	c.Required = t.Required

	if t.MinLength != nil && *t.MinLength >= 0 {
		c.MinLength = t.MinLength
	}
	if t.MaxLength != nil && *t.MaxLength >= 0 {
		c.MaxLength = t.MaxLength
	}
	return c
}

// ExtractTerminology derives the binding strength for a type, degrading
// unknown strengths to "example".
func ExtractTerminology(t *schema.SchemaType) schema.Terminology {
	if t != nil {
		if s := schema.BindingStrength(t.Binding); s.IsValid() {
			return schema.Terminology{Strength: s}
		}
	}
	return schema.Terminology{Strength: DefaultStrength}
}

// isCardinality reports whether s looks like a "min..max" cardinality hint.
func isCardinality(s string) bool {
	if len(s) < 4 {
		return false
	}
	sep := -1
	for i := 0; i+1 < len(s); i++ {
		if s[i] == '.' && s[i+1] == '.' {
			sep = i
			break
		}
	}
	if sep <= 0 || sep+2 >= len(s) {
		return false
	}
	minPart, maxPart := s[:sep], s[sep+2:]
	if !isDigits(minPart) {
		return false
	}
	return maxPart == "*" || isDigits(maxPart)
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}
