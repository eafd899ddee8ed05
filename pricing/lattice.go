package pricing

import (
	"math"

	"github.com/quantdan/amopt/models"
)

// PriceLattice values the contract on a Cox-Ross-Rubinstein recombining
// binomial tree with cfg.Steps levels, checking early exercise at every node
// for American style. Identical inputs always produce bit-identical output.
func PriceLattice(spec models.ContractSpec, cfg models.LatticeConfig) (models.PriceResult, error) {
	if err := spec.Validate(); err != nil {
		return models.PriceResult{}, err
	}
	if err := cfg.Validate(); err != nil {
		return models.PriceResult{}, err
	}

	price, err := latticePrice(spec, cfg.Steps)
	if err != nil {
		return models.PriceResult{}, err
	}

	return models.PriceResult{Price: price, Spec: spec, Lattice: &cfg}, nil
}

func latticePrice(spec models.ContractSpec, steps int) (float64, error) {
	if spec.Volatility == 0 {
		return deterministicPrice(spec, steps), nil
	}

	n := steps
	dt := spec.Maturity / float64(n)
	u := math.Exp(spec.Volatility * math.Sqrt(dt))
	d := 1 / u
	growth := math.Exp((spec.RiskFreeRate - spec.DividendYield) * dt)
	p := (growth - d) / (u - d)
	if p < 0 || p > 1 {
		return 0, &models.InvalidModelError{Probability: p}
	}
	discount := math.Exp(-spec.RiskFreeRate * dt)

	// Terminal stock prices S*u^j*d^(n-j), j = 0..n.
	stock := make([]float64, n+1)
	values := make([]float64, n+1)
	for j := 0; j <= n; j++ {
		stock[j] = spec.Spot * math.Pow(u, float64(j)) * math.Pow(d, float64(n-j))
		values[j] = spec.Intrinsic(stock[j])
	}

	for i := n - 1; i >= 0; i-- {
		// Collapsing the lower i+1 prices by one u factor yields the
		// recombining node prices S*u^j*d^(i-j) for the level above.
		for j := 0; j <= i; j++ {
			stock[j] *= u
			values[j] = discount * (p*values[j+1] + (1-p)*values[j])
			if spec.ExerciseStyle == models.American {
				values[j] = math.Max(values[j], spec.Intrinsic(stock[j]))
			}
		}
	}

	return values[0], nil
}

// deterministicPrice handles the zero-volatility degenerate case: the
// underlying follows the deterministic forward S*exp((r-q)t), so pricing
// reduces to discounting intrinsic value along the step grid.
func deterministicPrice(spec models.ContractSpec, steps int) float64 {
	dt := spec.Maturity / float64(steps)
	drift := spec.RiskFreeRate - spec.DividendYield

	terminal := spec.Spot * math.Exp(drift*spec.Maturity)
	price := math.Exp(-spec.RiskFreeRate*spec.Maturity) * spec.Intrinsic(terminal)
	if spec.ExerciseStyle == models.European {
		return price
	}

	for i := 0; i < steps; i++ {
		t := float64(i) * dt
		forward := spec.Spot * math.Exp(drift*t)
		price = math.Max(price, math.Exp(-spec.RiskFreeRate*t)*spec.Intrinsic(forward))
	}
	return price
}
