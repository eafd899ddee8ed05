package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlackScholesReferenceCase(t *testing.T) {
	// S=100, K=100, r=0.05, sigma=0.2, T=1
	call := NewCall(100, 100, 1, 0.05, 0, 0.2, European)
	put := NewPut(100, 100, 1, 0.05, 0, 0.2, European)

	require.InDelta(t, 10.450583572185565, BlackScholes(call), 1e-9)
	require.InDelta(t, 5.573526022256971, BlackScholes(put), 1e-9)
}

func TestBlackScholesPutCallParity(t *testing.T) {
	call := NewCall(100, 95, 0.75, 0.03, 0.01, 0.25, European)
	put := NewPut(100, 95, 0.75, 0.03, 0.01, 0.25, European)

	// C - P = S*exp(-qT) - K*exp(-rT)
	left := BlackScholes(call) - BlackScholes(put)
	right := 100*math.Exp(-0.01*0.75) - 95*math.Exp(-0.03*0.75)
	require.InDelta(t, right, left, 1e-9)
}

func TestBlackScholesZeroVolatility(t *testing.T) {
	call := NewCall(110, 100, 1, 0.05, 0, 0, European)
	forward := 110 * math.Exp(0.05)
	want := math.Exp(-0.05) * (forward - 100)
	require.InDelta(t, want, BlackScholes(call), 1e-12)

	put := NewPut(90, 100, 1, 0, 0, 0, European)
	require.InDelta(t, 10.0, BlackScholes(put), 1e-12)
}

func TestBlackScholesGreeksSigns(t *testing.T) {
	call := NewCall(100, 100, 1, 0.05, 0, 0.2, European)
	g := BlackScholesGreeks(call)
	require.Greater(t, g.Delta, 0.0)
	require.Less(t, g.Delta, 1.0)
	require.Greater(t, g.Gamma, 0.0)
	require.Greater(t, g.Vega, 0.0)
	require.Greater(t, g.Rho, 0.0)
	require.Less(t, g.Theta, 0.0)

	put := NewPut(100, 100, 1, 0.05, 0, 0.2, European)
	gp := BlackScholesGreeks(put)
	require.Less(t, gp.Delta, 0.0)
	require.Greater(t, gp.Delta, -1.0)
	require.Less(t, gp.Rho, 0.0)
}

func TestImpliedVolatilityRoundTrip(t *testing.T) {
	spec := NewCall(100, 105, 0.5, 0.04, 0, 0.35, European)
	target := BlackScholes(spec)

	recovered := ImpliedVolatility(target, spec.WithVolatility(0))
	require.InDelta(t, 0.35, recovered, 1e-5)
}

func TestImpliedVolatilityUnreachablePrice(t *testing.T) {
	spec := NewCall(100, 100, 1, 0.05, 0, 0.2, European)
	// No volatility reproduces a price below intrinsic discounted bounds.
	iv := ImpliedVolatility(-1, spec)
	require.True(t, math.IsNaN(iv))
}
