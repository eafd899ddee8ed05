package models

// DefaultRegressionDegree is the polynomial order used for the continuation
// fit when MonteCarloConfig leaves RegressionDegree at zero.
const DefaultRegressionDegree = 2

// LatticeConfig controls the resolution of the CRR binomial tree.
type LatticeConfig struct {
	Steps int
}

func (c LatticeConfig) Validate() error {
	if c.Steps < 1 {
		return &ConfigurationError{Field: "steps", Value: c.Steps}
	}
	return nil
}

// MonteCarloConfig controls the Longstaff-Schwartz simulation. Seed is an
// explicit parameter: two calls with the same spec, config and seed produce
// bit-identical prices, and the Greek estimator relies on that to reuse one
// seed across all finite-difference legs.
type MonteCarloConfig struct {
	Paths            int
	TimeSteps        int
	Seed             uint64
	RegressionDegree int
}

func (c MonteCarloConfig) Validate() error {
	if c.Paths < 1 {
		return &ConfigurationError{Field: "paths", Value: c.Paths}
	}
	if c.TimeSteps < 1 {
		return &ConfigurationError{Field: "timeSteps", Value: c.TimeSteps}
	}
	if c.RegressionDegree < 0 {
		return &ConfigurationError{Field: "regressionDegree", Value: c.RegressionDegree}
	}
	return nil
}

// Degree returns the effective regression degree.
func (c MonteCarloConfig) Degree() int {
	if c.RegressionDegree == 0 {
		return DefaultRegressionDegree
	}
	return c.RegressionDegree
}

// PriceResult carries a scalar price together with the inputs that produced
// it, so a cached or logged result can be reproduced exactly.
type PriceResult struct {
	Price   float64           `json:"price"`
	Spec    ContractSpec      `json:"spec"`
	Lattice *LatticeConfig    `json:"lattice,omitempty"`
	MC      *MonteCarloConfig `json:"monte_carlo,omitempty"`
}

type GreeksResult struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Vega  float64 `json:"vega"`
	Rho   float64 `json:"rho"`
}
