package scenario

import (
	_ "embed"
)

//go:embed hospital.yaml
var hospitalYAML []byte

// Default returns the built-in hospital patient-flow scenario. It is the
// scenario the CLI runs when no --scenario flag is given, and the reference
// configuration used across the engine's statistical tests.
func Default() (*Spec, error) {
	return Parse(hospitalYAML)
}
