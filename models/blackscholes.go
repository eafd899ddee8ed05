package models

import "math"

const (
	maxIterations = 100
	epsilon       = 1e-8
)

// BlackScholes returns the closed-form European price with continuous
// dividend yield. It is the analytic baseline the lattice converges to and
// the anchor for the implied volatility solver.
func BlackScholes(spec ContractSpec) float64 {
	S := spec.Spot
	K := spec.Strike
	T := spec.Maturity
	r := spec.RiskFreeRate
	q := spec.DividendYield
	sigma := spec.Volatility

	if sigma == 0 || T == 0 {
		// Deterministic forward, nothing but discounting left.
		forward := S * math.Exp((r-q)*T)
		return math.Exp(-r*T) * spec.Intrinsic(forward)
	}

	d1 := (math.Log(S/K) + (r-q+0.5*sigma*sigma)*T) / (sigma * math.Sqrt(T))
	d2 := d1 - sigma*math.Sqrt(T)

	if spec.OptionType == Call {
		return S*math.Exp(-q*T)*normCDF(d1) - K*math.Exp(-r*T)*normCDF(d2)
	}
	return K*math.Exp(-r*T)*normCDF(-d2) - S*math.Exp(-q*T)*normCDF(-d1)
}

// BlackScholesGreeks returns the analytic European Greeks.
func BlackScholesGreeks(spec ContractSpec) GreeksResult {
	S := spec.Spot
	K := spec.Strike
	T := spec.Maturity
	r := spec.RiskFreeRate
	q := spec.DividendYield
	sigma := spec.Volatility

	d1 := (math.Log(S/K) + (r-q+0.5*sigma*sigma)*T) / (sigma * math.Sqrt(T))
	d2 := d1 - sigma*math.Sqrt(T)

	var delta, theta, rho float64
	if spec.OptionType == Call {
		delta = math.Exp(-q*T) * normCDF(d1)
		theta = -(S*math.Exp(-q*T)*normPDF(d1)*sigma)/(2*math.Sqrt(T)) -
			r*K*math.Exp(-r*T)*normCDF(d2) + q*S*math.Exp(-q*T)*normCDF(d1)
		rho = K * T * math.Exp(-r*T) * normCDF(d2)
	} else {
		delta = math.Exp(-q*T) * (normCDF(d1) - 1)
		theta = -(S*math.Exp(-q*T)*normPDF(d1)*sigma)/(2*math.Sqrt(T)) +
			r*K*math.Exp(-r*T)*normCDF(-d2) - q*S*math.Exp(-q*T)*normCDF(-d1)
		rho = -K * T * math.Exp(-r*T) * normCDF(-d2)
	}

	return GreeksResult{
		Delta: delta,
		Gamma: math.Exp(-q*T) * normPDF(d1) / (S * sigma * math.Sqrt(T)),
		Theta: theta,
		Vega:  S * math.Exp(-q*T) * normPDF(d1) * math.Sqrt(T),
		Rho:   rho,
	}
}

// ImpliedVolatility solves for the volatility that reproduces targetPrice
// under Black-Scholes, via Newton-Raphson on vega. Returns NaN if the
// iteration fails to converge.
func ImpliedVolatility(targetPrice float64, spec ContractSpec) float64 {
	sigma := 0.5 // Initial guess
	for i := 0; i < maxIterations; i++ {
		trial := spec.WithVolatility(sigma)
		price := BlackScholes(trial)
		vega := BlackScholesGreeks(trial).Vega

		diff := price - targetPrice
		if math.Abs(diff) < epsilon {
			return sigma
		}
		if vega == 0 {
			break
		}

		sigma = sigma - diff/vega
		if sigma <= 0 {
			sigma = 0.0001 // Avoid negative volatility
		}
	}
	return math.NaN()
}

// normCDF calculates the cumulative distribution function of the standard normal distribution
func normCDF(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}

// normPDF calculates the probability density function of the standard normal distribution
func normPDF(x float64) float64 {
	return math.Exp(-0.5*x*x) / math.Sqrt(2*math.Pi)
}
