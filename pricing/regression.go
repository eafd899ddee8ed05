package pricing

import (
	"gonum.org/v1/gonum/mat"

	"github.com/quantdan/amopt/models"
)

// Polynomial holds coefficients in ascending order of power.
type Polynomial []float64

// Eval evaluates the polynomial at x by Horner's rule.
func (p Polynomial) Eval(x float64) float64 {
	result := 0.0
	for i := len(p) - 1; i >= 0; i-- {
		result = result*x + p[i]
	}
	return result
}

// FitContinuation fits discounted future cashflow against current price with
// an ordinary least-squares polynomial of the given degree. The caller is
// expected to pass in-the-money observations only; out-of-the-money paths
// carry no exercise decision and must not enter the fit. Fewer than degree+1
// observations leave the system underdetermined.
func FitContinuation(prices, discountedCashflows []float64, degree int) (Polynomial, error) {
	n := len(prices)
	if n < degree+1 {
		return nil, &models.RegressionUnderdeterminedError{Observations: n, Degree: degree}
	}

	// Vandermonde design matrix: one column per power of the price.
	a := mat.NewDense(n, degree+1, nil)
	b := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		x := 1.0
		for j := 0; j <= degree; j++ {
			a.Set(i, j, x)
			x *= prices[i]
		}
		b.SetVec(i, discountedCashflows[i])
	}

	var qr mat.QR
	qr.Factorize(a)

	var coeffs mat.VecDense
	if err := qr.SolveVecTo(&coeffs, false, b); err != nil {
		return nil, &models.RegressionUnderdeterminedError{Observations: n, Degree: degree}
	}

	poly := make(Polynomial, degree+1)
	for j := 0; j <= degree; j++ {
		poly[j] = coeffs.AtVec(j)
	}
	return poly, nil
}
