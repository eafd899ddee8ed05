package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/quantdan/amopt/chain"
	"github.com/quantdan/amopt/marketdata"
	"github.com/quantdan/amopt/models"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	snapshotFile := envOr("SNAPSHOT_FILE", "chain_snapshot.json")
	optionType := models.OptionType(envOr("OPTION_TYPE", "call"))
	outFile := envOr("OUTPUT_FILE", "priced_chain.json")

	cfg := chain.Config{
		Engine:           chain.Engine(envOr("ENGINE", "lattice")),
		Steps:            envInt("STEPS", 200),
		Paths:            envInt("PATHS", 10000),
		TimeSteps:        envInt("TIME_STEPS", 50),
		Seed:             uint64(envInt("SEED", 42)),
		RegressionDegree: envInt("REGRESSION_DEGREE", 2),
	}

	now := time.Now()

	snapshot, err := marketdata.LoadSnapshot(snapshotFile, now)
	if err != nil {
		log.Fatalf("loading snapshot: %v", err)
	}

	rows, err := chain.PriceChain(snapshot, optionType, cfg, now)
	if err != nil {
		log.Fatalf("pricing chain: %v", err)
	}

	chain.PrintTable(os.Stdout, rows)

	if err := chain.WriteJSON(outFile, rows); err != nil {
		log.Fatalf("writing results: %v", err)
	}
	log.Printf("wrote %d priced contracts to %s", len(rows), outFile)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid %s=%q: %v", key, v, err)
	}
	return n
}
