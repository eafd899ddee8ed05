package chain

import (
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	mpb "github.com/vbauerster/mpb/v7"
	"github.com/vbauerster/mpb/v7/decor"

	"github.com/quantdan/amopt/marketdata"
	"github.com/quantdan/amopt/models"
	"github.com/quantdan/amopt/pricing"
)

// Engine selects which pricer values the chain.
type Engine string

const (
	EngineLattice    Engine = "lattice"
	EngineMonteCarlo Engine = "montecarlo"
)

// Config is the recognized tuning surface for a chain valuation run.
type Config struct {
	Engine           Engine
	Steps            int
	Paths            int
	TimeSteps        int
	Seed             uint64
	RegressionDegree int
	BumpEpsilon      float64
}

// Row joins the market fields of one contract with its model price and
// Greeks.
type Row struct {
	Strike       float64             `json:"strike"`
	LastPrice    float64             `json:"last_price"`
	Bid          float64             `json:"bid"`
	Ask          float64             `json:"ask"`
	Volume       int                 `json:"volume"`
	OpenInterest int                 `json:"open_interest"`
	ImpliedVol   float64             `json:"implied_volatility"`
	ModelPrice   float64             `json:"model_price"`
	Greeks       models.GreeksResult `json:"greeks"`
	Err          string              `json:"error,omitempty"`
}

type job struct {
	index  int
	record marketdata.ContractRecord
}

// PriceChain values every record of the requested side of the snapshot as an
// American option, fanning contracts out across CPU workers with a progress
// bar. Rows come back sorted by strike; a contract whose parameters the
// pricing core rejects carries its error instead of a price.
func PriceChain(snapshot *marketdata.ChainSnapshot, optionType models.OptionType, cfg Config, now time.Time) ([]Row, error) {
	records := snapshot.Calls
	if optionType == models.Put {
		records = snapshot.Puts
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no %s records in snapshot for %s", optionType, snapshot.Symbol)
	}

	maturity := snapshot.TimeToMaturity(now)
	pricer, err := bindPricer(cfg)
	if err != nil {
		return nil, err
	}

	numWorkers := runtime.NumCPU()
	fmt.Printf("Pricing %d %ss for %s (spot %.2f, rfr %.4f) on %d CPUs\n",
		len(records), optionType, snapshot.Symbol, snapshot.Spot, snapshot.RiskFreeRate, numWorkers)

	p := mpb.New(mpb.WithWidth(64))
	bar := p.AddBar(int64(len(records)),
		mpb.PrependDecorators(
			decor.Name("Progress"),
			decor.Percentage(decor.WCSyncSpace),
		),
		mpb.AppendDecorators(
			decor.CountersNoUnit("(%d / %d)", decor.WCSyncSpace),
		),
	)

	stop := make(chan struct{})
	go monitorCPUUsage(stop)

	jobs := make(chan job, len(records))
	rows := make([]Row, len(records))

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				rows[j.index] = priceRecord(j.record, snapshot, optionType, maturity, pricer, cfg)
				bar.Increment()
			}
		}()
	}

	for i, record := range records {
		jobs <- job{index: i, record: record}
	}
	close(jobs)
	wg.Wait()
	close(stop)
	p.Wait()

	sort.Slice(rows, func(i, j int) bool { return rows[i].Strike < rows[j].Strike })
	return rows, nil
}

func bindPricer(cfg Config) (pricing.PricerFunc, error) {
	switch cfg.Engine {
	case EngineLattice, "":
		return pricing.BindLattice(models.LatticeConfig{Steps: cfg.Steps}), nil
	case EngineMonteCarlo:
		return pricing.BindMonteCarlo(models.MonteCarloConfig{
			Paths:            cfg.Paths,
			TimeSteps:        cfg.TimeSteps,
			Seed:             cfg.Seed,
			RegressionDegree: cfg.RegressionDegree,
		}), nil
	default:
		return nil, fmt.Errorf("unknown pricing engine %q", cfg.Engine)
	}
}

func priceRecord(record marketdata.ContractRecord, snapshot *marketdata.ChainSnapshot, optionType models.OptionType, maturity float64, pricer pricing.PricerFunc, cfg Config) Row {
	row := Row{
		Strike:       record.Strike,
		LastPrice:    record.LastPrice,
		Bid:          record.Bid,
		Ask:          record.Ask,
		Volume:       record.Volume,
		OpenInterest: record.OpenInterest,
		ImpliedVol:   record.ImpliedVolatility,
	}

	spec := models.ContractSpec{
		Spot:          snapshot.Spot,
		Strike:        record.Strike,
		Maturity:      maturity,
		RiskFreeRate:  snapshot.RiskFreeRate,
		Volatility:    record.ImpliedVolatility,
		OptionType:    optionType,
		ExerciseStyle: models.American,
	}

	price, err := pricer(spec)
	if err != nil {
		row.Err = err.Error()
		return row
	}
	row.ModelPrice = price

	greeks, err := pricing.EstimateGreeks(pricer, spec, pricing.GreekConfig{BumpEpsilon: cfg.BumpEpsilon})
	if err != nil {
		row.Err = err.Error()
		return row
	}
	row.Greeks = greeks

	return row
}
