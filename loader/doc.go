// Package loader provides a concrete schema.Provider built from FHIR R4
// StructureDefinitions: a converter that flattens snapshot elements into
// schema types, an in-memory provider indexed by type name, and a small
// hand-assembled R4 fixture set for tests and the CLI.
package loader
