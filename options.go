package typenav

import "github.com/rs/zerolog"

// Option configures the navigation service.
type Option func(*Options)

// Options holds all configuration for the navigation service.
type Options struct {
	// CacheSize is the maximum number of enhanced-type-info entries kept in
	// the memoization cache.
	CacheSize int

	// SimilarityThreshold is the minimum normalized similarity score
	// (0.0 to 1.0) required before a "did you mean" suggestion is offered.
	SimilarityThreshold float64

	// MaxHierarchyDepth bounds the base-type walk when building a type
	// hierarchy, guaranteeing termination on cyclic schemas.
	MaxHierarchyDepth int

	// SentinelType is the well-known type resolved during initialization and
	// health probes to verify the provider is functional.
	SentinelType string

	// WorkerCount bounds the goroutines used for batch navigation.
	WorkerCount int

	// Logger receives structured diagnostics. Defaults to a no-op logger.
	Logger zerolog.Logger
}

// DefaultOptions returns the default configuration.
func DefaultOptions() *Options {
	return &Options{
		CacheSize:           256,
		SimilarityThreshold: 0.6,
		MaxHierarchyDepth:   32,
		SentinelType:        "Patient",
		WorkerCount:         4,
		Logger:              zerolog.Nop(),
	}
}

// WithCacheSize sets the enhanced-type-info cache capacity.
func WithCacheSize(size int) Option {
	return func(o *Options) {
		o.CacheSize = size
	}
}

// WithSimilarityThreshold sets the minimum score for suggestions.
func WithSimilarityThreshold(threshold float64) Option {
	return func(o *Options) {
		o.SimilarityThreshold = threshold
	}
}

// WithMaxHierarchyDepth sets the base-type walk depth bound.
func WithMaxHierarchyDepth(depth int) Option {
	return func(o *Options) {
		o.MaxHierarchyDepth = depth
	}
}

// WithSentinelType sets the type name used for initialization and health
// probes.
func WithSentinelType(name string) Option {
	return func(o *Options) {
		o.SentinelType = name
	}
}

// WithWorkerCount sets the goroutine bound for batch navigation.
func WithWorkerCount(workers int) Option {
	return func(o *Options) {
		o.WorkerCount = workers
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}
