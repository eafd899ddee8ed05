package models

import "fmt"

// InvalidContractError reports a ContractSpec that fails construction-time
// validation. Fatal, never retried.
type InvalidContractError struct {
	Field  string
	Reason string
}

func (e *InvalidContractError) Error() string {
	return fmt.Sprintf("invalid contract: %s %s", e.Field, e.Reason)
}

// InvalidModelError reports a derived risk-neutral probability outside [0,1],
// meaning the step size and volatility combination violates the no-arbitrage
// assumptions of the discretization.
type InvalidModelError struct {
	Probability float64
}

func (e *InvalidModelError) Error() string {
	return fmt.Sprintf("invalid model: risk-neutral probability %.6f outside [0,1]", e.Probability)
}

// RegressionUnderdeterminedError reports too few in-the-money paths for the
// requested polynomial degree at some time step. The Monte Carlo pricer
// recovers from it locally; it never reaches the caller of a pricing call.
type RegressionUnderdeterminedError struct {
	Observations int
	Degree       int
}

func (e *RegressionUnderdeterminedError) Error() string {
	return fmt.Sprintf("continuation regression underdetermined: %d observations for degree %d", e.Observations, e.Degree)
}

// ConfigurationError reports a nonpositive steps/paths/timeSteps count or a
// negative regression degree.
type ConfigurationError struct {
	Field string
	Value int
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s = %d", e.Field, e.Value)
}
