package loader

import (
	"fmt"
	"strings"

	"github.com/gofhir/fhir/r4"

	"github.com/gofhir/typenav/schema"
)

// systemTypeMapping maps FHIRPath system type URLs, as they appear in
// StructureDefinition element types, to FHIR primitive type names.
var systemTypeMapping = map[string]string{
	"http://hl7.org/fhirpath/System.String":   "string",
	"http://hl7.org/fhirpath/System.Boolean":  "boolean",
	"http://hl7.org/fhirpath/System.Integer":  "integer",
	"http://hl7.org/fhirpath/System.Decimal":  "decimal",
	"http://hl7.org/fhirpath/System.Date":     "date",
	"http://hl7.org/fhirpath/System.DateTime": "dateTime",
	"http://hl7.org/fhirpath/System.Time":     "time",
}

// R4Converter flattens R4 StructureDefinitions into schema types.
type R4Converter struct{}

// NewR4Converter creates a new R4 converter.
func NewR4Converter() *R4Converter {
	return &R4Converter{}
}

// Convert turns an r4.StructureDefinition snapshot into a schema.SchemaType.
// First-level "[x]" elements become synthetic choice types, returned
// alongside the main type so the provider can register them; the property on
// the main type then refers to the synthetic type by name.
func (c *R4Converter) Convert(sd *r4.StructureDefinition) (*schema.SchemaType, []*schema.SchemaType, error) {
	if sd == nil {
		return nil, nil, fmt.Errorf("structure definition is nil")
	}

	rootPath := derefString(sd.Type)
	name := derefString(sd.Name)
	if name == "" {
		name = rootPath
	}
	if name == "" {
		return nil, nil, fmt.Errorf("structure definition has neither name nor type")
	}
	if rootPath == "" {
		rootPath = name
	}

	t := &schema.SchemaType{
		Name:       name,
		Base:       baseTypeName(derefString(sd.BaseDefinition)),
		Properties: map[string]schema.PropertyRef{},
	}

	var choiceTypes []*schema.SchemaType
	if sd.Snapshot == nil {
		return t, nil, nil
	}

	for i := range sd.Snapshot.Element {
		el := &sd.Snapshot.Element[i]
		path := derefString(el.Path)

		if path == rootPath {
			if el.Binding != nil && el.Binding.Strength != nil {
				t.Binding = string(*el.Binding.Strength)
			}
			continue
		}

		prop, ok := firstLevelProperty(rootPath, path)
		if !ok {
			continue
		}

		card := cardinality(el)
		if base, isChoice := strings.CutSuffix(prop, "[x]"); isChoice {
			union := &schema.SchemaType{
				Name: name + "." + base,
				Choice: &schema.ChoiceDescriptor{
					Property:    prop,
					LegacyNames: typeCodes(el),
				},
			}
			choiceTypes = append(choiceTypes, union)
			t.Properties[base] = schema.PropertyRef{
				Name:        base,
				Type:        union.Name,
				Cardinality: card,
			}
			continue
		}

		t.Properties[prop] = schema.PropertyRef{
			Name:        prop,
			Type:        firstTypeCode(el),
			Cardinality: card,
		}
	}

	return t, choiceTypes, nil
}

// firstLevelProperty extracts the property name from a first-level element
// path ("Patient.name" -> "name"); nested paths are skipped.
func firstLevelProperty(rootPath, path string) (string, bool) {
	rest, ok := strings.CutPrefix(path, rootPath+".")
	if !ok || rest == "" || strings.Contains(rest, ".") {
		return "", false
	}
	return rest, true
}

// baseTypeName extracts the type name from a canonical base definition URL.
func baseTypeName(baseDefinition string) string {
	if baseDefinition == "" {
		return ""
	}
	if i := strings.LastIndexByte(baseDefinition, '/'); i >= 0 {
		return baseDefinition[i+1:]
	}
	return baseDefinition
}

// cardinality renders an element's min/max as a "min..max" hint.
func cardinality(el *r4.ElementDefinition) string {
	minCard := 0
	if el.Min != nil {
		minCard = int(*el.Min)
	}
	maxCard := "*"
	if el.Max != nil && *el.Max != "" {
		maxCard = *el.Max
	}
	return fmt.Sprintf("%d..%s", minCard, maxCard)
}

// typeCodes returns all normalized type codes of an element.
func typeCodes(el *r4.ElementDefinition) []string {
	codes := make([]string, 0, len(el.Type))
	for i := range el.Type {
		if code := normalizeTypeCode(derefString(el.Type[i].Code)); code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}

// firstTypeCode returns the first normalized type code of an element.
func firstTypeCode(el *r4.ElementDefinition) string {
	for i := range el.Type {
		if code := normalizeTypeCode(derefString(el.Type[i].Code)); code != "" {
			return code
		}
	}
	return ""
}

// normalizeTypeCode converts FHIRPath system type URLs to FHIR primitive
// names, leaving ordinary codes untouched.
func normalizeTypeCode(code string) string {
	if normalized, ok := systemTypeMapping[code]; ok {
		return normalized
	}
	return code
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
