package sim

import "fmt"

// ConfigError reports an invalid simulation configuration. It is returned
// synchronously by NewSimulator, before any simulated time advances.
type ConfigError struct {
	Field string // offending field, e.g. "stations[2].capacity"
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError wraps err as a ConfigError for the given field. Used by the
// scenario layer so YAML-level mistakes surface with the same error kind as
// engine-level ones.
func NewConfigError(field string, err error) *ConfigError {
	return &ConfigError{Field: field, Err: err}
}

func configErrorf(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Err: fmt.Errorf(format, args...)}
}

// DistributionSampleError reports a sampler failure during a run. The run
// aborts immediately and partial results are discarded.
type DistributionSampleError struct {
	Subsystem string // "arrivals", "service" or "branch"
	Clock     float64
	Err       error
}

func (e *DistributionSampleError) Error() string {
	return fmt.Sprintf("sample failed in %s at t=%g: %v", e.Subsystem, e.Clock, e.Err)
}

func (e *DistributionSampleError) Unwrap() error {
	return e.Err
}
