package chain

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xhhuango/json"

	"github.com/quantdan/amopt/marketdata"
	"github.com/quantdan/amopt/models"
)

var testNow = time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

func testSnapshot() *marketdata.ChainSnapshot {
	return &marketdata.ChainSnapshot{
		Symbol:       "SPY",
		Expiration:   "2027-08-27",
		Spot:         100,
		RiskFreeRate: 0.05,
		Calls: []marketdata.ContractRecord{
			{Strike: 105, LastPrice: 6.1, Bid: 6.0, Ask: 6.2, Volume: 900, OpenInterest: 7600, ImpliedVolatility: 0.2},
			{Strike: 95, LastPrice: 12.2, Bid: 12.1, Ask: 12.3, Volume: 1250, OpenInterest: 5400, ImpliedVolatility: 0.21},
			{Strike: 100, LastPrice: 8.9, Bid: 8.8, Ask: 9.0, Volume: 3100, OpenInterest: 11200, ImpliedVolatility: 0.2},
		},
		Puts: []marketdata.ContractRecord{
			{Strike: 100, LastPrice: 4.1, Bid: 4.0, Ask: 4.2, Volume: 2700, OpenInterest: 9800, ImpliedVolatility: 0.21},
		},
	}
}

func TestPriceChainLattice(t *testing.T) {
	cfg := Config{Engine: EngineLattice, Steps: 100}

	rows, err := PriceChain(testSnapshot(), models.Call, cfg, testNow)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	require.True(t, sort.SliceIsSorted(rows, func(i, j int) bool {
		return rows[i].Strike < rows[j].Strike
	}))

	for _, row := range rows {
		require.Empty(t, row.Err)
		require.Greater(t, row.ModelPrice, 0.0)
		require.GreaterOrEqual(t, row.Greeks.Delta, 0.0)
		require.LessOrEqual(t, row.Greeks.Delta, 1.0)
	}

	// Lower strikes are worth more for calls.
	require.Greater(t, rows[0].ModelPrice, rows[1].ModelPrice)
	require.Greater(t, rows[1].ModelPrice, rows[2].ModelPrice)
}

func TestPriceChainMonteCarlo(t *testing.T) {
	cfg := Config{Engine: EngineMonteCarlo, Paths: 2000, TimeSteps: 20, Seed: 42}

	rows, err := PriceChain(testSnapshot(), models.Put, cfg, testNow)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Empty(t, rows[0].Err)
	require.Greater(t, rows[0].ModelPrice, 0.0)
	require.LessOrEqual(t, rows[0].Greeks.Delta, 0.0)
}

func TestPriceChainDeterministic(t *testing.T) {
	cfg := Config{Engine: EngineMonteCarlo, Paths: 1000, TimeSteps: 10, Seed: 7}

	first, err := PriceChain(testSnapshot(), models.Call, cfg, testNow)
	require.NoError(t, err)
	second, err := PriceChain(testSnapshot(), models.Call, cfg, testNow)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestPriceChainUnknownEngine(t *testing.T) {
	_, err := PriceChain(testSnapshot(), models.Call, Config{Engine: "quantum"}, testNow)
	require.Error(t, err)
}

func TestPriceChainEmptySide(t *testing.T) {
	snapshot := testSnapshot()
	snapshot.Puts = nil

	_, err := PriceChain(snapshot, models.Put, Config{Engine: EngineLattice, Steps: 50}, testNow)
	require.Error(t, err)
}

func TestPriceChainRecordErrorIsCarriedNotFatal(t *testing.T) {
	snapshot := testSnapshot()
	// Expired chain yields a nonpositive maturity, which the pricing core
	// rejects per contract.
	snapshot.Expiration = "2020-01-17"

	rows, err := PriceChain(snapshot, models.Call, Config{Engine: EngineLattice, Steps: 50}, testNow)
	require.NoError(t, err)
	for _, row := range rows {
		require.NotEmpty(t, row.Err)
		require.Zero(t, row.ModelPrice)
	}
}

func TestWriteJSONAndPrintTable(t *testing.T) {
	rows, err := PriceChain(testSnapshot(), models.Call, Config{Engine: EngineLattice, Steps: 50}, testNow)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "rows.json")
	require.NoError(t, WriteJSON(path, rows))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded []Row
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, len(rows))

	var buf bytes.Buffer
	PrintTable(&buf, rows)
	require.Contains(t, buf.String(), "Strike")
	require.Contains(t, buf.String(), "Delta")
}
