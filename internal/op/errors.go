package op

import (
	"errors"
	"fmt"
)

// Failure categories shared across the pipeline. Every layer either returns
// a result or fails outward wrapped in one of these; no layer converts a
// failure into a fabricated success. The gateway maps categories to HTTP
// status codes at the boundary.
var (
	// ErrConfiguration marks missing or incomplete site credentials.
	// Fatal for the request, never retried.
	ErrConfiguration = errors.New("configuration error")

	// ErrResolution marks input no strategy could turn into an operation.
	ErrResolution = errors.New("resolution error")

	// ErrExecution marks a resolved operation missing a required field or
	// naming an unsupported resource/action pair.
	ErrExecution = errors.New("execution error")

	// ErrUpstream marks a WordPress call that itself failed.
	ErrUpstream = errors.New("upstream error")
)

// Configurationf wraps a formatted message as a configuration failure.
func Configurationf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrConfiguration}, args...)...)
}

// Resolutionf wraps a formatted message as a resolution failure.
func Resolutionf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrResolution}, args...)...)
}

// Executionf wraps a formatted message as an execution failure.
func Executionf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrExecution}, args...)...)
}

// Upstreamf wraps a formatted message as an upstream failure.
func Upstreamf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrUpstream}, args...)...)
}
