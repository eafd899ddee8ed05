package pricing

import (
	"log"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/quantdan/amopt/models"
)

// PriceMonteCarlo values the contract by Longstaff-Schwartz least-squares
// Monte Carlo. The estimator is consistent but noisy; same spec, config and
// seed always reproduce the same price. European style skips the exercise
// sweep and reduces to the plain discounted terminal payoff mean.
func PriceMonteCarlo(spec models.ContractSpec, cfg models.MonteCarloConfig) (models.PriceResult, error) {
	if err := spec.Validate(); err != nil {
		return models.PriceResult{}, err
	}
	if err := cfg.Validate(); err != nil {
		return models.PriceResult{}, err
	}

	paths := SimulatePaths(spec, cfg.Paths, cfg.TimeSteps, cfg.Seed)
	discount := math.Exp(-spec.RiskFreeRate * spec.Maturity / float64(cfg.TimeSteps))

	cashflows := make([]float64, cfg.Paths)
	for i, row := range paths {
		cashflows[i] = spec.Intrinsic(row[cfg.TimeSteps])
	}

	if spec.ExerciseStyle == models.American {
		exerciseSweep(spec, cfg, paths, cashflows, discount)
	} else {
		for t := cfg.TimeSteps - 1; t >= 1; t-- {
			for i := range cashflows {
				cashflows[i] *= discount
			}
		}
	}

	price := stat.Mean(cashflows, nil) * discount
	return models.PriceResult{Price: price, Spec: spec, MC: &cfg}, nil
}

// exerciseSweep walks backward through the time grid, deciding early
// exercise per in-the-money path against the regressed continuation value.
func exerciseSweep(spec models.ContractSpec, cfg models.MonteCarloConfig, paths [][]float64, cashflows []float64, discount float64) {
	degree := cfg.Degree()

	itmIdx := make([]int, 0, cfg.Paths)
	itmPrices := make([]float64, 0, cfg.Paths)
	itmTargets := make([]float64, 0, cfg.Paths)

	for t := cfg.TimeSteps - 1; t >= 1; t-- {
		itmIdx = itmIdx[:0]
		itmPrices = itmPrices[:0]
		itmTargets = itmTargets[:0]

		for i, row := range paths {
			if spec.Intrinsic(row[t]) > 0 {
				itmIdx = append(itmIdx, i)
				itmPrices = append(itmPrices, row[t])
				itmTargets = append(itmTargets, cashflows[i]*discount)
			}
		}

		poly, err := FitContinuation(itmPrices, itmTargets, degree)
		if err != nil {
			// Too few in-the-money paths to regress on. Treat continuation
			// as the discounted cashflow itself: nobody exercises here.
			log.Printf("step %d: %v, holding all paths", t, err)
			for i := range cashflows {
				cashflows[i] *= discount
			}
			continue
		}

		exercised := make(map[int]bool, len(itmIdx))
		for k, i := range itmIdx {
			exercise := spec.Intrinsic(itmPrices[k])
			if exercise > poly.Eval(itmPrices[k]) {
				cashflows[i] = exercise
				exercised[i] = true
			}
		}
		for i := range cashflows {
			if !exercised[i] {
				cashflows[i] *= discount
			}
		}
	}
}
