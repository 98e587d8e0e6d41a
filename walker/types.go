package walker

// FHIRPrimitiveTypes contains all FHIR primitive type names.
var FHIRPrimitiveTypes = map[string]bool{
	"base64Binary": true,
	"boolean":      true,
	"canonical":    true,
	"code":         true,
	"date":         true,
	"dateTime":     true,
	"decimal":      true,
	"id":           true,
	"instant":      true,
	"integer":      true,
	"integer64":    true,
	"markdown":     true,
	"oid":          true,
	"positiveInt":  true,
	"string":       true,
	"time":         true,
	"unsignedInt":  true,
	"uri":          true,
	"url":          true,
	"uuid":         true,
	"xhtml":        true,
}

// FHIRComplexTypes contains the common FHIR complex (datatype) names.
var FHIRComplexTypes = map[string]bool{
	"Address":           true,
	"Age":               true,
	"Annotation":        true,
	"Attachment":        true,
	"BackboneElement":   true,
	"CodeableConcept":   true,
	"CodeableReference": true,
	"Coding":            true,
	"ContactPoint":      true,
	"Count":             true,
	"Distance":          true,
	"Dosage":            true,
	"Duration":          true,
	"Element":           true,
	"Extension":         true,
	"HumanName":         true,
	"Identifier":        true,
	"Meta":              true,
	"Money":             true,
	"Narrative":         true,
	"Period":            true,
	"Quantity":          true,
	"Range":             true,
	"Ratio":             true,
	"Reference":         true,
	"SampledData":       true,
	"Signature":         true,
	"SimpleQuantity":    true,
	"Timing":            true,
}

// CommonChoiceTypeNames is the candidate set for the naming-pattern fallback:
// when a choice descriptor carries only a "[x]" property name, these common
// primitive and complex FHIR types form the member candidates.
var CommonChoiceTypeNames = []string{
	// Primitives
	"boolean",
	"code",
	"date",
	"dateTime",
	"decimal",
	"integer",
	"string",
	"time",
	"uri",

	// Complex types
	"Age",
	"Annotation",
	"Attachment",
	"CodeableConcept",
	"Coding",
	"Period",
	"Quantity",
	"Range",
	"Ratio",
	"Reference",
	"SampledData",
	"Timing",
}

// IsPrimitiveType returns true if the type name is a FHIR primitive type.
func IsPrimitiveType(typeName string) bool {
	return FHIRPrimitiveTypes[typeName]
}

// IsComplexType returns true if the type name is a common FHIR complex type.
func IsComplexType(typeName string) bool {
	return FHIRComplexTypes[typeName]
}
