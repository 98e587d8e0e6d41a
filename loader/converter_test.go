package loader

import (
	"testing"

	"github.com/gofhir/fhir/r4"

	"github.com/gofhir/typenav/schema"
)

func TestR4Converter_Convert(t *testing.T) {
	converter := NewR4Converter()

	t.Run("nil input", func(t *testing.T) {
		_, _, err := converter.Convert(nil)
		if err == nil {
			t.Error("expected error for nil input")
		}
	})

	t.Run("basic conversion", func(t *testing.T) {
		url := "http://hl7.org/fhir/StructureDefinition/Patient"
		name := "Patient"
		typeName := "Patient"
		kind := r4.StructureDefinitionKindResource
		baseDef := "http://hl7.org/fhir/StructureDefinition/DomainResource"

		rootPath := "Patient"
		namePath := "Patient.name"
		nameType := "HumanName"
		minCard := uint32(0)
		maxCard := "*"

		sd := &r4.StructureDefinition{
			Url:            &url,
			Name:           &name,
			Type:           &typeName,
			Kind:           &kind,
			BaseDefinition: &baseDef,
			Snapshot: &r4.StructureDefinitionSnapshot{
				Element: []r4.ElementDefinition{
					{Path: &rootPath},
					{
						Path: &namePath,
						Min:  &minCard,
						Max:  &maxCard,
						Type: []r4.ElementDefinitionType{{Code: &nameType}},
					},
				},
			},
		}

		result, choiceTypes, err := converter.Convert(sd)
		if err != nil {
			t.Fatalf("Convert() error = %v", err)
		}
		if result.Name != "Patient" {
			t.Errorf("Name = %q; want %q", result.Name, "Patient")
		}
		if result.Base != "DomainResource" {
			t.Errorf("Base = %q; want %q", result.Base, "DomainResource")
		}
		if len(choiceTypes) != 0 {
			t.Errorf("len(choiceTypes) = %d; want 0", len(choiceTypes))
		}

		ref, ok := result.Properties["name"]
		if !ok {
			t.Fatal("expected property \"name\"")
		}
		if ref.Type != "HumanName" {
			t.Errorf("Properties[name].Type = %q; want %q", ref.Type, "HumanName")
		}
		if ref.Cardinality != "0..*" {
			t.Errorf("Properties[name].Cardinality = %q; want %q", ref.Cardinality, "0..*")
		}
	})

	t.Run("choice element becomes synthetic type", func(t *testing.T) {
		name := "Observation"
		typeName := "Observation"
		valuePath := "Observation.value[x]"
		quantity := "Quantity"
		str := "string"
		minCard := uint32(0)
		maxCard := "1"

		sd := &r4.StructureDefinition{
			Name: &name,
			Type: &typeName,
			Snapshot: &r4.StructureDefinitionSnapshot{
				Element: []r4.ElementDefinition{
					{
						Path: &valuePath,
						Min:  &minCard,
						Max:  &maxCard,
						Type: []r4.ElementDefinitionType{
							{Code: &quantity},
							{Code: &str},
						},
					},
				},
			},
		}

		result, choiceTypes, err := converter.Convert(sd)
		if err != nil {
			t.Fatalf("Convert() error = %v", err)
		}

		ref, ok := result.Properties["value"]
		if !ok {
			t.Fatal("expected property \"value\"")
		}
		if ref.Type != "Observation.value" {
			t.Errorf("Properties[value].Type = %q; want %q", ref.Type, "Observation.value")
		}

		if len(choiceTypes) != 1 {
			t.Fatalf("len(choiceTypes) = %d; want 1", len(choiceTypes))
		}
		ct := choiceTypes[0]
		if ct.Name != "Observation.value" {
			t.Errorf("choice type Name = %q; want %q", ct.Name, "Observation.value")
		}
		if ct.Choice == nil {
			t.Fatal("expected non-nil Choice descriptor")
		}
		if ct.Choice.Property != "value[x]" {
			t.Errorf("Choice.Property = %q; want %q", ct.Choice.Property, "value[x]")
		}
		if ct.Choice.Kind() != schema.ChoiceLegacyNames {
			t.Errorf("Choice.Kind() = %v; want %v", ct.Choice.Kind(), schema.ChoiceLegacyNames)
		}
		want := []string{"Quantity", "string"}
		if len(ct.Choice.LegacyNames) != len(want) {
			t.Fatalf("LegacyNames = %v; want %v", ct.Choice.LegacyNames, want)
		}
		for i, code := range want {
			if ct.Choice.LegacyNames[i] != code {
				t.Errorf("LegacyNames[%d] = %q; want %q", i, ct.Choice.LegacyNames[i], code)
			}
		}
	})

	t.Run("nested elements are skipped", func(t *testing.T) {
		name := "Patient"
		typeName := "Patient"
		contactPath := "Patient.contact"
		nestedPath := "Patient.contact.name"
		backbone := "BackboneElement"
		humanName := "HumanName"

		sd := &r4.StructureDefinition{
			Name: &name,
			Type: &typeName,
			Snapshot: &r4.StructureDefinitionSnapshot{
				Element: []r4.ElementDefinition{
					{Path: &contactPath, Type: []r4.ElementDefinitionType{{Code: &backbone}}},
					{Path: &nestedPath, Type: []r4.ElementDefinitionType{{Code: &humanName}}},
				},
			},
		}

		result, _, err := converter.Convert(sd)
		if err != nil {
			t.Fatalf("Convert() error = %v", err)
		}
		if _, ok := result.Properties["contact"]; !ok {
			t.Error("expected property \"contact\"")
		}
		if len(result.Properties) != 1 {
			t.Errorf("len(Properties) = %d; want 1", len(result.Properties))
		}
	})

	t.Run("system type URLs are normalized", func(t *testing.T) {
		name := "Patient"
		typeName := "Patient"
		idPath := "Patient.id"
		systemString := "http://hl7.org/fhirpath/System.String"

		sd := &r4.StructureDefinition{
			Name: &name,
			Type: &typeName,
			Snapshot: &r4.StructureDefinitionSnapshot{
				Element: []r4.ElementDefinition{
					{Path: &idPath, Type: []r4.ElementDefinitionType{{Code: &systemString}}},
				},
			},
		}

		result, _, err := converter.Convert(sd)
		if err != nil {
			t.Fatalf("Convert() error = %v", err)
		}
		if got := result.Properties["id"].Type; got != "string" {
			t.Errorf("Properties[id].Type = %q; want %q", got, "string")
		}
	})

	t.Run("root binding strength", func(t *testing.T) {
		name := "code"
		typeName := "code"
		rootPath := "code"
		strength := r4.BindingStrengthRequired

		sd := &r4.StructureDefinition{
			Name: &name,
			Type: &typeName,
			Snapshot: &r4.StructureDefinitionSnapshot{
				Element: []r4.ElementDefinition{
					{
						Path:    &rootPath,
						Binding: &r4.ElementDefinitionBinding{Strength: &strength},
					},
				},
			},
		}

		result, _, err := converter.Convert(sd)
		if err != nil {
			t.Fatalf("Convert() error = %v", err)
		}
		if result.Binding != "required" {
			t.Errorf("Binding = %q; want %q", result.Binding, "required")
		}
	})

	t.Run("name falls back to type", func(t *testing.T) {
		typeName := "Quantity"
		sd := &r4.StructureDefinition{Type: &typeName}

		result, _, err := converter.Convert(sd)
		if err != nil {
			t.Fatalf("Convert() error = %v", err)
		}
		if result.Name != "Quantity" {
			t.Errorf("Name = %q; want %q", result.Name, "Quantity")
		}
	})
}

func TestBaseTypeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"http://hl7.org/fhir/StructureDefinition/DomainResource", "DomainResource"},
		{"http://hl7.org/fhir/StructureDefinition/Element", "Element"},
		{"Resource", "Resource"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := baseTypeName(tt.in); got != tt.want {
			t.Errorf("baseTypeName(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestDerefString(t *testing.T) {
	if got := derefString(nil); got != "" {
		t.Errorf("derefString(nil) = %q; want \"\"", got)
	}
	s := "test"
	if got := derefString(&s); got != "test" {
		t.Errorf("derefString(&\"test\") = %q; want \"test\"", got)
	}
}
