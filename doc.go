// Package typenav provides type navigation and choice-type resolution for
// FHIR schemas. It is the schema-introspection core used by FHIRPath editor
// tooling: given a schema provider, it builds type hierarchies and constraint
// metadata, walks dotted property paths against a root type, and detects and
// resolves polymorphic "choice" (value[x]-style) properties into their
// concrete candidate types.
//
// # Quick Start
//
//	import (
//	    tn "github.com/gofhir/typenav"
//	    "github.com/gofhir/typenav/engine"
//	    "github.com/gofhir/typenav/loader"
//	)
//
//	svc, err := engine.New(loader.NewFixtureProvider())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := svc.Initialize(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := svc.NavigatePropertyPath(ctx, "Patient", []string{"name", "given"})
//	if !result.Valid {
//	    for _, msg := range result.Errors {
//	        fmt.Println(msg)
//	    }
//	}
//
// # Functional Options
//
//	svc, err := engine.New(provider,
//	    tn.WithCacheSize(512),
//	    tn.WithSimilarityThreshold(0.7),
//	    tn.WithSentinelType("Patient"),
//	)
//
// # Architecture
//
// The engine is layered bottom-up:
//
//   - similarity: edit-distance fuzzy matching for "did you mean" suggestions
//   - walker: hierarchy building, constraint extraction, choice resolution,
//     and property-path navigation
//   - cache: bounded memoization of derived per-type metadata
//   - engine: the service facade with an explicit lifecycle and health probe
//   - loader: a concrete schema provider built from R4 StructureDefinitions
//
// The engine never evaluates FHIRPath expressions against data and never
// mutates provider-owned schema types. All failures after initialization are
// soft: they are reported inside structured results rather than destabilizing
// the service.
package typenav
