package typenav

import "errors"

// Sentinel errors for the service lifecycle. Only these two fatal kinds can
// prevent the service from reaching Ready; every per-call failure after that
// is captured inside a structured result instead.
var (
	// ErrProviderUnavailable is returned when no schema provider was
	// configured.
	ErrProviderUnavailable = errors.New("schema provider is nil")

	// ErrProbeFailed is returned by Initialize when the sentinel type could
	// not be resolved through the provider. It is always wrapped with the
	// underlying cause.
	ErrProbeFailed = errors.New("provider validation failed")

	// ErrNotInitialized is returned by every public service method invoked
	// before Initialize has completed successfully.
	ErrNotInitialized = errors.New("type navigation service not initialized")
)
