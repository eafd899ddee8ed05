package pricing

import (
	"math"

	"github.com/quantdan/amopt/models"
)

// DefaultBumpEpsilon is the relative finite-difference step: 1% of the
// perturbed variable, never an absolute constant, so Greeks stay
// scale-invariant across tickers.
const DefaultBumpEpsilon = 0.01

// tradingDaysPerYear sets the default one-step time decay for Theta.
const tradingDaysPerYear = 252

// PricerFunc prices a contract under a fixed, already-bound configuration.
type PricerFunc func(models.ContractSpec) (float64, error)

// BindLattice returns a PricerFunc that evaluates the CRR lattice at the
// given resolution.
func BindLattice(cfg models.LatticeConfig) PricerFunc {
	return func(spec models.ContractSpec) (float64, error) {
		result, err := PriceLattice(spec, cfg)
		if err != nil {
			return 0, err
		}
		return result.Price, nil
	}
}

// BindMonteCarlo returns a PricerFunc that evaluates the LSMC engine with a
// fixed config. The seed is captured with the config, so every bumped
// invocation reuses the identical random draws (common random numbers); the
// finite differences then measure sensitivity instead of simulation noise.
func BindMonteCarlo(cfg models.MonteCarloConfig) PricerFunc {
	return func(spec models.ContractSpec) (float64, error) {
		result, err := PriceMonteCarlo(spec, cfg)
		if err != nil {
			return 0, err
		}
		return result.Price, nil
	}
}

// GreekConfig tunes the finite-difference estimator. Zero values select the
// defaults: BumpEpsilon 0.01 and ThetaStep of one trading day.
type GreekConfig struct {
	BumpEpsilon float64
	ThetaStep   float64
}

// EstimateGreeks computes Delta, Gamma, Theta, Vega and Rho by bumping
// independent copies of spec and re-invoking the bound pricer. Bumps are
// relative; when a base value is zero (Rho at r=0) the raw epsilon is used.
func EstimateGreeks(pricer PricerFunc, spec models.ContractSpec, cfg GreekConfig) (models.GreeksResult, error) {
	if err := spec.Validate(); err != nil {
		return models.GreeksResult{}, err
	}

	eps := cfg.BumpEpsilon
	if eps == 0 {
		eps = DefaultBumpEpsilon
	}
	thetaStep := cfg.ThetaStep
	if thetaStep == 0 {
		thetaStep = spec.Maturity / tradingDaysPerYear
	}
	if thetaStep >= spec.Maturity {
		thetaStep = spec.Maturity / 2
	}

	base, err := pricer(spec)
	if err != nil {
		return models.GreeksResult{}, err
	}

	S := spec.Spot

	up, err := pricer(spec.WithSpot(S * (1 + eps)))
	if err != nil {
		return models.GreeksResult{}, err
	}
	down, err := pricer(spec.WithSpot(S * (1 - eps)))
	if err != nil {
		return models.GreeksResult{}, err
	}
	delta := (up - down) / (2 * S * eps)

	up2, err := pricer(spec.WithSpot(S * (1 + 2*eps)))
	if err != nil {
		return models.GreeksResult{}, err
	}
	down2, err := pricer(spec.WithSpot(S * (1 - 2*eps)))
	if err != nil {
		return models.GreeksResult{}, err
	}
	gamma := (up2 - 2*base + down2) / math.Pow(S*eps, 2)

	volBump := eps * spec.Volatility
	if volBump == 0 {
		volBump = eps
	}
	vegaPrice, err := pricer(spec.WithVolatility(spec.Volatility + volBump))
	if err != nil {
		return models.GreeksResult{}, err
	}
	vega := (vegaPrice - base) / volBump

	rateBump := eps * math.Abs(spec.RiskFreeRate)
	if rateBump == 0 {
		rateBump = eps
	}
	rhoPrice, err := pricer(spec.WithRiskFreeRate(spec.RiskFreeRate + rateBump))
	if err != nil {
		return models.GreeksResult{}, err
	}
	rho := (rhoPrice - base) / rateBump

	thetaPrice, err := pricer(spec.WithMaturity(spec.Maturity - thetaStep))
	if err != nil {
		return models.GreeksResult{}, err
	}
	theta := (thetaPrice - base) / thetaStep

	return models.GreeksResult{
		Delta: delta,
		Gamma: gamma,
		Theta: theta,
		Vega:  vega,
		Rho:   rho,
	}, nil
}
