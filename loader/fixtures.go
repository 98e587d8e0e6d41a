package loader

import "github.com/gofhir/typenav/schema"

// NewFixtureProvider builds a provider preloaded with a hand-assembled
// subset of the R4 type system: base types, common primitives and
// datatypes, plus Patient and Observation with their choice elements. It
// backs the CLI when no definition directory is given and is handy in
// tests.
func NewFixtureProvider() *InMemoryProvider {
	p := NewInMemoryProvider()

	for _, name := range []string{
		"boolean", "code", "date", "dateTime", "decimal", "id",
		"instant", "integer", "string", "time", "uri",
	} {
		p.Register(&schema.SchemaType{Name: name})
	}

	p.Register(&schema.SchemaType{Name: "Element"})
	p.Register(&schema.SchemaType{
		Name: "BackboneElement",
		Base: "Element",
	})
	p.Register(&schema.SchemaType{
		Name: "Resource",
		Properties: props(
			ref("id", "id", "0..1"),
			ref("implicitRules", "uri", "0..1"),
			ref("language", "code", "0..1"),
		),
	})
	p.Register(&schema.SchemaType{
		Name: "DomainResource",
		Base: "Resource",
		Properties: props(
			ref("text", "Narrative", "0..1"),
		),
	})

	p.Register(&schema.SchemaType{
		Name: "Narrative",
		Base: "Element",
		Properties: props(
			ref("status", "code", "1..1"),
			ref("div", "string", "1..1"),
		),
	})
	p.Register(&schema.SchemaType{
		Name: "Coding",
		Base: "Element",
		Properties: props(
			ref("system", "uri", "0..1"),
			ref("version", "string", "0..1"),
			ref("code", "code", "0..1"),
			ref("display", "string", "0..1"),
			ref("userSelected", "boolean", "0..1"),
		),
	})
	p.Register(&schema.SchemaType{
		Name: "CodeableConcept",
		Base: "Element",
		Properties: props(
			ref("coding", "Coding", "0..*"),
			ref("text", "string", "0..1"),
		),
	})
	p.Register(&schema.SchemaType{
		Name: "Quantity",
		Base: "Element",
		Properties: props(
			ref("value", "decimal", "0..1"),
			ref("comparator", "code", "0..1"),
			ref("unit", "string", "0..1"),
			ref("system", "uri", "0..1"),
			ref("code", "code", "0..1"),
		),
	})
	p.Register(&schema.SchemaType{
		Name: "Period",
		Base: "Element",
		Properties: props(
			ref("start", "dateTime", "0..1"),
			ref("end", "dateTime", "0..1"),
		),
	})
	p.Register(&schema.SchemaType{
		Name: "HumanName",
		Base: "Element",
		Properties: props(
			ref("use", "code", "0..1"),
			ref("text", "string", "0..1"),
			ref("family", "string", "0..1"),
			ref("given", "string", "0..*"),
			ref("prefix", "string", "0..*"),
			ref("suffix", "string", "0..*"),
			ref("period", "Period", "0..1"),
		),
	})
	p.Register(&schema.SchemaType{
		Name: "Identifier",
		Base: "Element",
		Properties: props(
			ref("use", "code", "0..1"),
			ref("type", "CodeableConcept", "0..1"),
			ref("system", "uri", "0..1"),
			ref("value", "string", "0..1"),
			ref("period", "Period", "0..1"),
		),
	})
	p.Register(&schema.SchemaType{
		Name: "Reference",
		Base: "Element",
		Properties: props(
			ref("reference", "string", "0..1"),
			ref("type", "uri", "0..1"),
			ref("identifier", "Identifier", "0..1"),
			ref("display", "string", "0..1"),
		),
	})

	p.Register(&schema.SchemaType{
		Name: "Patient.deceased",
		Choice: &schema.ChoiceDescriptor{
			Property:    "deceased[x]",
			LegacyNames: []string{"boolean", "dateTime"},
		},
	})
	p.Register(&schema.SchemaType{
		Name: "Patient.multipleBirth",
		Choice: &schema.ChoiceDescriptor{
			Property:    "multipleBirth[x]",
			LegacyNames: []string{"boolean", "integer"},
		},
	})
	p.Register(&schema.SchemaType{
		Name: "Patient",
		Base: "DomainResource",
		Properties: props(
			ref("identifier", "Identifier", "0..*"),
			ref("active", "boolean", "0..1"),
			ref("name", "HumanName", "0..*"),
			ref("gender", "code", "0..1"),
			ref("birthDate", "date", "0..1"),
			ref("deceased", "Patient.deceased", "0..1"),
			ref("maritalStatus", "CodeableConcept", "0..1"),
			ref("multipleBirth", "Patient.multipleBirth", "0..1"),
			ref("generalPractitioner", "Reference", "0..*"),
			ref("managingOrganization", "Reference", "0..1"),
		),
	})
	p.MarkResource("Patient")

	p.Register(&schema.SchemaType{
		Name: "Observation.effective",
		Choice: &schema.ChoiceDescriptor{
			Property:    "effective[x]",
			LegacyNames: []string{"dateTime", "Period", "instant"},
		},
	})
	p.Register(&schema.SchemaType{
		Name: "Observation.value",
		Choice: &schema.ChoiceDescriptor{
			Property: "value[x]",
			LegacyNames: []string{
				"Quantity", "CodeableConcept", "string", "boolean",
				"integer", "time", "dateTime", "Period",
			},
		},
	})
	p.Register(&schema.SchemaType{
		Name: "Observation",
		Base: "DomainResource",
		Properties: props(
			ref("identifier", "Identifier", "0..*"),
			ref("status", "code", "1..1"),
			ref("category", "CodeableConcept", "0..*"),
			ref("code", "CodeableConcept", "1..1"),
			ref("subject", "Reference", "0..1"),
			ref("effective", "Observation.effective", "0..1"),
			ref("issued", "instant", "0..1"),
			ref("performer", "Reference", "0..*"),
			ref("value", "Observation.value", "0..1"),
			ref("dataAbsentReason", "CodeableConcept", "0..1"),
			ref("interpretation", "CodeableConcept", "0..*"),
			ref("bodySite", "CodeableConcept", "0..1"),
			ref("method", "CodeableConcept", "0..1"),
		),
	})
	p.MarkResource("Observation")

	return p
}

func ref(name, typ, card string) schema.PropertyRef {
	return schema.PropertyRef{Name: name, Type: typ, Cardinality: card}
}

func props(refs ...schema.PropertyRef) map[string]schema.PropertyRef {
	m := make(map[string]schema.PropertyRef, len(refs))
	for _, r := range refs {
		m[r.Name] = r
	}
	return m
}
