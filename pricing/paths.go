package pricing

import (
	"math"
	"runtime"
	"sync"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/quantdan/amopt/models"
)

// SimulatePaths generates price paths under risk-neutral geometric Brownian
// motion using the exact discretization
//
//	S_{t+1} = S_t * exp((r-q-sigma^2/2)*dt + sigma*sqrt(dt)*Z)
//
// The returned matrix has paths rows and timeSteps+1 columns, column 0 being
// the spot for every path. Each path draws from its own PRNG stream derived
// from seed and the path index, so a fixed seed reproduces bit-identical
// paths no matter how the work is split across workers.
func SimulatePaths(spec models.ContractSpec, paths, timeSteps int, seed uint64) [][]float64 {
	dt := spec.Maturity / float64(timeSteps)
	drift := (spec.RiskFreeRate - spec.DividendYield - 0.5*spec.Volatility*spec.Volatility) * dt
	volStep := spec.Volatility * math.Sqrt(dt)

	matrix := make([][]float64, paths)

	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers > paths {
		numWorkers = paths
	}
	chunk := (paths + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		start := w * chunk
		end := start + chunk
		if end > paths {
			end = paths
		}
		if start >= end {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				normal := distuv.Normal{
					Mu:    0,
					Sigma: 1,
					Src:   rand.NewSource(pathSeed(seed, uint64(i))),
				}

				row := make([]float64, timeSteps+1)
				row[0] = spec.Spot
				for t := 1; t <= timeSteps; t++ {
					row[t] = row[t-1] * math.Exp(drift+volStep*normal.Rand())
				}
				matrix[i] = row
			}
		}(start, end)
	}
	wg.Wait()

	return matrix
}

// pathSeed separates per-path PRNG streams with a splitmix64 round, so
// nearby path indices do not produce correlated PCG states.
func pathSeed(seed, path uint64) uint64 {
	z := seed + (path+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
