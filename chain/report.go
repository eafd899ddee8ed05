package chain

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shirou/gopsutil/cpu"
	"github.com/xhhuango/json"
)

// PrintTable writes the priced chain as a fixed-width dashboard table.
func PrintTable(w io.Writer, rows []Row) {
	fmt.Fprintf(w, "%10s %10s %8s %8s %8s %8s %8s %10s %8s %8s %9s %8s %8s\n",
		"Strike", "Last", "Bid", "Ask", "Volume", "OpenInt", "IV", "Model", "Delta", "Gamma", "Theta", "Vega", "Rho")
	for _, row := range rows {
		if row.Err != "" {
			fmt.Fprintf(w, "%10.2f  skipped: %s\n", row.Strike, row.Err)
			continue
		}
		fmt.Fprintf(w, "%10.2f %10.2f %8.2f %8.2f %8d %8d %8.4f %10.4f %8.4f %8.4f %9.4f %8.4f %8.4f\n",
			row.Strike, row.LastPrice, row.Bid, row.Ask, row.Volume, row.OpenInterest,
			row.ImpliedVol, row.ModelPrice,
			row.Greeks.Delta, row.Greeks.Gamma, row.Greeks.Theta, row.Greeks.Vega, row.Greeks.Rho)
	}
}

// WriteJSON marshals the priced chain to a file.
func WriteJSON(path string, rows []Row) error {
	data, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("marshalling rows: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// monitorCPUUsage prints utilization every few seconds during long chain
// valuations, until stop is closed.
func monitorCPUUsage(stop <-chan struct{}) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			percentage, err := cpu.Percent(time.Second, false)
			if err == nil && len(percentage) > 0 {
				fmt.Printf("\nCPU Usage: %.2f%%\n", percentage[0])
			}
		}
	}
}
