// Package walker implements the navigation core: type hierarchy building,
// constraint extraction, choice-type resolution, and step-by-step property
// path navigation against a schema provider.
//
// All operations degrade gracefully: provider failures mid-walk produce
// partial hierarchies or invalid results with descriptive errors, never
// propagated panics.
package walker
