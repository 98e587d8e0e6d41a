// Package expr adapts the external FHIRPath compiler for syntax checking.
// The navigation engine never evaluates expressions against data; it only
// needs to know whether an expression prefix parses before attempting
// choice-context detection on it.
package expr

import (
	"fmt"
	"sync"

	"github.com/gofhir/fhirpath"
)

// Checker validates FHIRPath expression syntax, caching successfully
// compiled expressions. Safe for concurrent use.
type Checker struct {
	mu       sync.RWMutex
	compiled map[string]*fhirpath.Expression
}

// NewChecker creates a Checker.
func NewChecker() *Checker {
	return &Checker{
		compiled: make(map[string]*fhirpath.Expression),
	}
}

// Check compiles the expression and returns the compilation error, if any.
// Successful compilations are cached; failures are not.
func (c *Checker) Check(expression string) error {
	c.mu.RLock()
	_, ok := c.compiled[expression]
	c.mu.RUnlock()
	if ok {
		return nil
	}

	compiled, err := fhirpath.Compile(expression)
	if err != nil {
		return fmt.Errorf("invalid FHIRPath expression '%s': %w", expression, err)
	}

	c.mu.Lock()
	c.compiled[expression] = compiled
	c.mu.Unlock()
	return nil
}

// Valid reports whether the expression compiles.
func (c *Checker) Valid(expression string) bool {
	return c.Check(expression) == nil
}

// Len returns the number of cached compilations.
func (c *Checker) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.compiled)
}
