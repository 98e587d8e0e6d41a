package walker

import (
	"context"
	"slices"

	"github.com/gofhir/typenav/schema"
)

// testProvider is an in-memory schema.Provider with call counting, used by
// the walker tests.
type testProvider struct {
	types     map[string]*schema.SchemaType
	resources []string

	getTypeCalls int
	errOn        map[string]error
}

func (p *testProvider) GetType(_ context.Context, name string) (*schema.SchemaType, error) {
	p.getTypeCalls++
	if err, ok := p.errOn[name]; ok {
		return nil, err
	}
	return p.types[name], nil
}

func (p *testProvider) AllResourceTypes(_ context.Context) ([]string, error) {
	return p.resources, nil
}

func (p *testProvider) ElementNames(t *schema.SchemaType) []string {
	if t == nil {
		return nil
	}
	names := make([]string, 0, len(t.Properties))
	for name := range t.Properties {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (p *testProvider) ElementType(t *schema.SchemaType, elementName string) (*schema.PropertyRef, bool) {
	if t == nil {
		return nil, false
	}
	ref, ok := t.Properties[elementName]
	if !ok {
		return nil, false
	}
	return &ref, true
}

func (p *testProvider) ResolveOfType(t *schema.SchemaType, targetTypeName string) (*schema.SchemaType, bool) {
	if t == nil || t.Choice == nil {
		return nil, false
	}
	for _, m := range t.Choice.Union {
		if m.Name == targetTypeName {
			return m, true
		}
	}
	for _, name := range t.Choice.LegacyNames {
		if name == targetTypeName {
			if resolved, ok := p.types[name]; ok {
				return resolved, true
			}
			return &schema.SchemaType{Name: name}, true
		}
	}
	return nil, false
}

// newTestProvider builds a small R4-shaped fixture schema.
func newTestProvider() *testProvider {
	str := &schema.SchemaType{Name: "string"}
	boolean := &schema.SchemaType{Name: "boolean"}
	date := &schema.SchemaType{Name: "date"}
	dateTime := &schema.SchemaType{Name: "dateTime"}
	code := &schema.SchemaType{Name: "code"}
	decimal := &schema.SchemaType{Name: "decimal"}

	quantity := &schema.SchemaType{
		Name: "Quantity",
		Base: "Element",
		Properties: map[string]schema.PropertyRef{
			"value":  {Name: "value", Type: "decimal", Cardinality: "0..1"},
			"unit":   {Name: "unit", Type: "string", Cardinality: "0..1"},
			"system": {Name: "system", Type: "uri", Cardinality: "0..1"},
			"code":   {Name: "code", Type: "code", Cardinality: "0..1"},
		},
	}

	codeableConcept := &schema.SchemaType{
		Name: "CodeableConcept",
		Base: "Element",
		Properties: map[string]schema.PropertyRef{
			"coding": {Name: "coding", Type: "Coding", Cardinality: "0..*"},
			"text":   {Name: "text", Type: "string", Cardinality: "0..1"},
		},
	}

	humanName := &schema.SchemaType{
		Name: "HumanName",
		Base: "Element",
		Properties: map[string]schema.PropertyRef{
			"use":    {Name: "use", Type: "code", Cardinality: "0..1"},
			"family": {Name: "family", Type: "string", Cardinality: "0..1"},
			"given":  {Name: "given", Type: "string", Cardinality: "0..*"},
		},
	}

	period := &schema.SchemaType{
		Name: "Period",
		Base: "Element",
		Properties: map[string]schema.PropertyRef{
			"start": {Name: "start", Type: "dateTime", Cardinality: "0..1"},
			"end":   {Name: "end", Type: "dateTime", Cardinality: "0..1"},
		},
	}

	observationValue := &schema.SchemaType{
		Name: "Observation.value",
		Choice: &schema.ChoiceDescriptor{
			Property: "value[x]",
			Union:    []*schema.SchemaType{quantity, codeableConcept, str, boolean},
		},
	}

	patientDeceased := &schema.SchemaType{
		Name: "Patient.deceased",
		Choice: &schema.ChoiceDescriptor{
			Property:    "deceased[x]",
			LegacyNames: []string{"boolean", "dateTime"},
		},
	}

	patient := &schema.SchemaType{
		Name: "Patient",
		Base: "DomainResource",
		Properties: map[string]schema.PropertyRef{
			"name":      {Name: "name", Type: "HumanName", Cardinality: "0..*"},
			"active":    {Name: "active", Type: "boolean", Cardinality: "0..1"},
			"birthDate": {Name: "birthDate", Type: "date", Cardinality: "0..1"},
			"deceased":  {Name: "deceased", Type: "Patient.deceased", Cardinality: "0..1"},
		},
	}

	observation := &schema.SchemaType{
		Name: "Observation",
		Base: "DomainResource",
		Properties: map[string]schema.PropertyRef{
			"status": {Name: "status", Type: "code", Cardinality: "1..1"},
			"code":   {Name: "code", Type: "CodeableConcept", Cardinality: "1..1"},
			"value":  {Name: "value", Type: "Observation.value", Cardinality: "0..1"},
		},
	}

	domainResource := &schema.SchemaType{
		Name: "DomainResource",
		Base: "Resource",
	}
	resource := &schema.SchemaType{
		Name: "Resource",
		Properties: map[string]schema.PropertyRef{
			"id": {Name: "id", Type: "string", Cardinality: "0..1"},
		},
	}
	element := &schema.SchemaType{Name: "Element"}

	return &testProvider{
		types: map[string]*schema.SchemaType{
			"string":            str,
			"boolean":           boolean,
			"date":              date,
			"dateTime":          dateTime,
			"code":              code,
			"decimal":           decimal,
			"Quantity":          quantity,
			"CodeableConcept":   codeableConcept,
			"HumanName":         humanName,
			"Period":            period,
			"Observation.value": observationValue,
			"Patient.deceased":  patientDeceased,
			"Patient":           patient,
			"Observation":       observation,
			"DomainResource":    domainResource,
			"Resource":          resource,
			"Element":           element,
		},
		resources: []string{"Observation", "Patient"},
	}
}
