package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quantdan/amopt/models"
)

func TestSimulatePathsShape(t *testing.T) {
	spec := models.NewCall(100, 100, 1, 0.05, 0, 0.2, models.American)

	paths := SimulatePaths(spec, 64, 10, 1)
	require.Len(t, paths, 64)
	for _, row := range paths {
		require.Len(t, row, 11)
		require.Equal(t, 100.0, row[0])
		for _, price := range row {
			require.Greater(t, price, 0.0)
		}
	}
}

func TestSimulatePathsReproducible(t *testing.T) {
	spec := models.NewCall(100, 100, 1, 0.05, 0, 0.2, models.American)

	first := SimulatePaths(spec, 256, 20, 42)
	second := SimulatePaths(spec, 256, 20, 42)
	require.Equal(t, first, second)

	other := SimulatePaths(spec, 256, 20, 43)
	require.NotEqual(t, first, other)
}

func TestSimulatePathsZeroVolatility(t *testing.T) {
	spec := models.NewCall(100, 100, 1, 0.05, 0.01, 0, models.American)
	timeSteps := 8
	dt := 1.0 / float64(timeSteps)

	paths := SimulatePaths(spec, 4, timeSteps, 9)
	for _, row := range paths {
		for step, price := range row {
			want := 100 * math.Exp((0.05-0.01)*dt*float64(step))
			require.InDelta(t, want, price, 1e-9)
		}
	}
}

func TestSimulatePathsRiskNeutralDrift(t *testing.T) {
	// E[S_T] = S*exp((r-q)*T) under the risk-neutral measure.
	spec := models.NewCall(100, 100, 1, 0.05, 0, 0.2, models.American)

	paths := SimulatePaths(spec, 20000, 10, 7)
	sum := 0.0
	for _, row := range paths {
		sum += row[len(row)-1]
	}
	mean := sum / float64(len(paths))
	require.InDelta(t, 100*math.Exp(0.05), mean, 1.0)
}
