// Package engine provides the type navigation service facade.
package engine

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	tn "github.com/gofhir/typenav"
	"github.com/gofhir/typenav/cache"
	"github.com/gofhir/typenav/expr"
	"github.com/gofhir/typenav/schema"
	"github.com/gofhir/typenav/walker"
)

// State is the service lifecycle state.
type State int32

const (
	StateUninitialized State = iota
	StateInitializing
	StateReady
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Service is the type navigation service. It coordinates hierarchy
// construction, choice resolution, and path navigation over a schema
// provider, memoizing derived type metadata in a bounded cache.
//
// A Service must be initialized before use; every provider-backed method
// returns ErrNotInitialized until Initialize has succeeded. A failed
// individual call never changes the lifecycle state.
type Service struct {
	provider schema.Provider
	options  *tn.Options
	log      zerolog.Logger

	hierarchy *walker.HierarchyBuilder
	choice    *walker.ChoiceResolver
	navigator *walker.PathNavigator
	checker   *expr.Checker

	typeInfoCache *cache.Cache[string, *tn.EnhancedTypeInfo]
	metrics       *tn.Metrics

	mu      sync.Mutex // guards state and initErr
	state   State
	initErr error

	// Worker pool for batch navigation
	workerPool     chan struct{}
	workerPoolOnce sync.Once
}

// New creates a Service over the given provider. The provider must be
// non-nil; configuration is supplied through functional options.
func New(provider schema.Provider, opts ...tn.Option) (*Service, error) {
	if provider == nil {
		return nil, tn.ErrProviderUnavailable
	}

	options := tn.DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	log := options.Logger
	hierarchy := walker.NewHierarchyBuilder(provider, options.MaxHierarchyDepth, log)
	choice := walker.NewChoiceResolver(provider, options.SimilarityThreshold, log)

	return &Service{
		provider:      provider,
		options:       options,
		log:           log,
		hierarchy:     hierarchy,
		choice:        choice,
		navigator:     walker.NewPathNavigator(provider, hierarchy, choice, options.SimilarityThreshold, log),
		checker:       expr.NewChecker(),
		typeInfoCache: cache.New[string, *tn.EnhancedTypeInfo](options.CacheSize),
		metrics:       tn.NewMetrics(),
	}, nil
}

// Initialize probes the provider by resolving the configured sentinel type
// and moves the service to the ready state. Initializing an already-ready
// service is a no-op; a failed initialization may be retried.
func (s *Service) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateReady {
		return nil
	}
	s.state = StateInitializing

	probe, err := s.provider.GetType(ctx, s.options.SentinelType)
	if err != nil {
		return s.failInit(fmt.Errorf("%w: resolving '%s': %v", tn.ErrProbeFailed, s.options.SentinelType, err))
	}
	if probe == nil {
		return s.failInit(fmt.Errorf("%w: sentinel type '%s' not found", tn.ErrProbeFailed, s.options.SentinelType))
	}

	s.state = StateReady
	s.initErr = nil
	s.log.Info().Str("sentinel", s.options.SentinelType).Msg("type navigation service initialized")
	return nil
}

// failInit records a failed initialization. Must be called with mu held.
func (s *Service) failInit(err error) error {
	s.state = StateFailed
	s.initErr = err
	s.metrics.RecordProbeFailure()
	s.log.Error().Err(err).Msg("initialization failed")
	return err
}

// State returns the current lifecycle state.
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// ready returns ErrNotInitialized unless the service is in the ready state.
func (s *Service) ready() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return tn.ErrNotInitialized
	}
	return nil
}

// EnhancedTypeInfo returns the derived metadata for a type: the raw type
// with its hierarchy, constraints, terminology binding, and resolved choice
// members. Results are memoized per type name.
func (s *Service) EnhancedTypeInfo(ctx context.Context, typeName string) (*tn.EnhancedTypeInfo, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	computed := false
	info, err := s.typeInfoCache.GetOrCompute(cache.Key("typeinfo", typeName), func() (*tn.EnhancedTypeInfo, error) {
		computed = true
		return s.computeTypeInfo(ctx, typeName)
	})
	if err != nil {
		return nil, err
	}
	if computed {
		s.metrics.RecordCacheMiss()
	} else {
		s.metrics.RecordCacheHit()
	}
	return info, nil
}

// computeTypeInfo assembles an EnhancedTypeInfo from provider data.
func (s *Service) computeTypeInfo(ctx context.Context, typeName string) (*tn.EnhancedTypeInfo, error) {
	t, err := s.provider.GetType(ctx, typeName)
	if err != nil {
		return nil, fmt.Errorf("fetching type '%s': %w", typeName, err)
	}
	if t == nil {
		return nil, fmt.Errorf("type '%s' not found", typeName)
	}

	hierarchy, err := s.hierarchy.Build(ctx, t)
	if err != nil {
		// A cyclic schema still yields the partial hierarchy.
		s.log.Warn().Err(err).Str("type", typeName).Msg("hierarchy truncated")
	}

	info := &tn.EnhancedTypeInfo{
		Type:        t,
		Hierarchy:   hierarchy,
		Constraints: walker.ExtractConstraints(t),
		Terminology: walker.ExtractTerminology(t),
	}
	if s.choice.IsChoiceType(t) {
		info.ChoiceTypes = s.choice.ResolveTypes(ctx, t, "")
	}
	return info, nil
}

// NavigatePropertyPath walks a dotted property path from a root type and
// reports every resolved step. Path failures are reported in the result,
// not as errors.
func (s *Service) NavigatePropertyPath(ctx context.Context, rootTypeName string, path []string) (*tn.NavigationResult, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	start := time.Now()
	result := s.navigator.Navigate(ctx, rootTypeName, path)
	s.metrics.RecordNavigation(time.Since(start), result.Valid)
	return result, nil
}

// PathRequest names one path to navigate in a batch.
type PathRequest struct {
	RootType string
	Path     []string
}

// NavigateBatch navigates multiple paths in parallel, bounded by the
// configured worker count. Results are positionally aligned with requests.
func (s *Service) NavigateBatch(ctx context.Context, requests []PathRequest) ([]*tn.NavigationResult, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	s.workerPoolOnce.Do(func() {
		workers := s.options.WorkerCount
		if workers <= 0 {
			workers = 4
		}
		s.workerPool = make(chan struct{}, workers)
	})

	results := make([]*tn.NavigationResult, len(requests))
	var wg sync.WaitGroup
	for i, req := range requests {
		wg.Add(1)
		go func(idx int, req PathRequest) {
			defer wg.Done()

			s.workerPool <- struct{}{}
			defer func() { <-s.workerPool }()

			start := time.Now()
			result := s.navigator.Navigate(ctx, req.RootType, req.Path)
			s.metrics.RecordNavigation(time.Since(start), result.Valid)
			results[idx] = result
		}(i, req)
	}

	wg.Wait()
	return results, nil
}

// ResolveChoiceTypes resolves the member types of a choice type. For
// non-choice types it returns the type itself. A non-empty targetTypeName
// narrows the members, as an ofType() cast would.
func (s *Service) ResolveChoiceTypes(ctx context.Context, typeName, targetTypeName string) ([]*schema.SchemaType, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	t, err := s.provider.GetType(ctx, typeName)
	if err != nil {
		return nil, fmt.Errorf("fetching type '%s': %w", typeName, err)
	}
	if t == nil {
		return nil, fmt.Errorf("type '%s' not found", typeName)
	}

	s.metrics.RecordChoiceResolution()
	return s.choice.ResolveTypes(ctx, t, targetTypeName), nil
}

// ValidateChoiceProperty checks whether a concrete choice property name,
// such as "valueQuantity", is valid on the given resource type. Invalid
// names yield a result carrying the allowed names and, when one is similar
// enough, a suggestion.
func (s *Service) ValidateChoiceProperty(ctx context.Context, resourceTypeName, propertyName string) (*tn.ChoiceValidationResult, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.choice.ValidateProperty(ctx, resourceTypeName, propertyName), nil
}

// DetectChoiceContext checks an expression for syntactic validity and, for
// "Type.property" prefixes naming a choice property, returns the choice
// context. Expressions that do not end on a choice base yield (nil, nil).
func (s *Service) DetectChoiceContext(ctx context.Context, expression string) (*tn.ChoiceContext, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if err := s.checker.Check(expression); err != nil {
		return nil, err
	}
	return s.choice.DetectContext(ctx, expression), nil
}

// ChoicePropertyNames expands a base property and member types into the
// concrete property names, e.g. value + [Quantity, string] into
// [valueQuantity, valueString].
func (s *Service) ChoicePropertyNames(baseProperty string, choices []*schema.SchemaType) []string {
	return s.choice.PropertyNames(baseProperty, choices)
}

// IsChoiceProperty reports whether a property name looks like a concrete
// choice name ("valueQuantity" yes, "value" no).
func (s *Service) IsChoiceProperty(propertyName string) bool {
	return walker.IsChoicePropertyName(propertyName)
}

// ExtractBaseProperty returns the base of a concrete choice name
// ("valueQuantity" to "value"). Non-choice names come back unchanged.
func (s *Service) ExtractBaseProperty(propertyName string) string {
	return walker.ExtractBaseProperty(propertyName)
}

// ExtractChoiceType returns the type suffix of a concrete choice name
// ("valueQuantity" to "Quantity"), or "" for non-choice names.
func (s *Service) ExtractChoiceType(propertyName string) string {
	return walker.ExtractChoiceTypeName(propertyName)
}

// TypeClassification assigns a type name to exactly one of the primitive,
// resource, or complex categories.
func (s *Service) TypeClassification(ctx context.Context, typeName string) (*tn.TypeClassification, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	if walker.IsPrimitiveType(typeName) {
		return &tn.TypeClassification{IsPrimitive: true, Category: tn.CategoryPrimitive}, nil
	}

	resources, err := s.provider.AllResourceTypes(ctx)
	if err == nil && slices.Contains(resources, typeName) {
		return &tn.TypeClassification{IsResource: true, Category: tn.CategoryResource}, nil
	}

	t, err := s.provider.GetType(ctx, typeName)
	if err != nil {
		return nil, fmt.Errorf("fetching type '%s': %w", typeName, err)
	}
	if t == nil {
		return nil, fmt.Errorf("type '%s' not found", typeName)
	}

	// A type whose hierarchy reaches Resource is a resource even when the
	// provider does not list it.
	hierarchy, _ := s.hierarchy.Build(ctx, t)
	for _, ancestor := range hierarchy {
		if ancestor.Name == "Resource" {
			return &tn.TypeClassification{IsResource: true, Category: tn.CategoryResource}, nil
		}
	}
	return &tn.TypeClassification{IsComplex: true, Category: tn.CategoryComplex}, nil
}

// HealthStatus probes the provider and reports liveness. Unlike the other
// methods it never returns ErrNotInitialized; an uninitialized service is
// simply unhealthy.
func (s *Service) HealthStatus(ctx context.Context) *tn.HealthStatus {
	stats := s.typeInfoCache.Stats()
	details := tn.HealthDetails{
		CacheSize:     stats.Size,
		CacheCapacity: stats.Capacity,
	}

	s.mu.Lock()
	state := s.state
	initErr := s.initErr
	s.mu.Unlock()

	if state != StateReady {
		details.Error = tn.ErrNotInitialized.Error()
		if initErr != nil {
			details.Error = initErr.Error()
		}
		return &tn.HealthStatus{Healthy: false, Details: details}
	}
	details.Initialized = true

	probe, err := s.provider.GetType(ctx, s.options.SentinelType)
	if err != nil {
		details.Error = err.Error()
		s.metrics.RecordProbeFailure()
		return &tn.HealthStatus{Healthy: false, Details: details}
	}
	details.ProviderAvailable = true

	if probe == nil {
		details.Error = fmt.Sprintf("sentinel type '%s' not found", s.options.SentinelType)
		s.metrics.RecordProbeFailure()
		return &tn.HealthStatus{Healthy: false, Details: details}
	}
	details.SampleResolutionOK = true

	return &tn.HealthStatus{Healthy: true, Details: details}
}

// ClearCache drops all memoized type metadata.
func (s *Service) ClearCache() {
	s.typeInfoCache.Clear()
}

// CacheStats returns memoization cache statistics.
func (s *Service) CacheStats() cache.Stats {
	return s.typeInfoCache.Stats()
}

// Metrics returns the service metrics.
func (s *Service) Metrics() *tn.Metrics {
	return s.metrics
}

// Options returns the effective configuration.
func (s *Service) Options() *tn.Options {
	return s.options
}

// Close releases resources held by the service. The service cannot be used
// afterwards.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateUninitialized
	s.typeInfoCache.Clear()
	return nil
}
