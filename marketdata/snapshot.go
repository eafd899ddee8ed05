package marketdata

import (
	"fmt"
	"os"
	"time"

	"github.com/xhhuango/json"
)

// DefaultImpliedVolatility replaces a missing or nonpositive implied vol on
// a chain record. Explicit here rather than buried at a call site.
const DefaultImpliedVolatility = 0.20

const dateLayout = "2006-01-02"

// LoadSnapshot reads and validates a chain snapshot from a local JSON file.
// It is this boundary's job to reject malformed provider data before any
// record reaches the pricing core.
func LoadSnapshot(path string, now time.Time) (*ChainSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot %s: %w", path, err)
	}

	var snapshot ChainSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("parsing snapshot %s: %w", path, err)
	}

	if err := snapshot.validate(now); err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", path, err)
	}

	for i := range snapshot.Calls {
		fillImpliedVol(&snapshot.Calls[i])
	}
	for i := range snapshot.Puts {
		fillImpliedVol(&snapshot.Puts[i])
	}

	return &snapshot, nil
}

func (s *ChainSnapshot) validate(now time.Time) error {
	if s.Symbol == "" {
		return fmt.Errorf("missing symbol")
	}
	if s.Spot <= 0 {
		return fmt.Errorf("spot %.4f must be positive", s.Spot)
	}
	expiration, err := time.Parse(dateLayout, s.Expiration)
	if err != nil {
		return fmt.Errorf("parsing expiration %q: %w", s.Expiration, err)
	}
	if !expiration.After(now) {
		return fmt.Errorf("expiration %s is not in the future", s.Expiration)
	}
	if len(s.Calls) == 0 && len(s.Puts) == 0 {
		return fmt.Errorf("empty option chain")
	}
	for _, record := range append(append([]ContractRecord{}, s.Calls...), s.Puts...) {
		if record.Strike <= 0 {
			return fmt.Errorf("record with nonpositive strike %.4f", record.Strike)
		}
	}
	return nil
}

// TimeToMaturity returns the year fraction from now to expiration. It
// assumes a snapshot that passed LoadSnapshot validation, where Expiration
// is known to parse; on an unvalidated snapshot a malformed date reads as
// the zero time.
func (s *ChainSnapshot) TimeToMaturity(now time.Time) float64 {
	expiration, _ := time.Parse(dateLayout, s.Expiration)
	return expiration.Sub(now).Hours() / 24 / 365
}

func fillImpliedVol(record *ContractRecord) {
	if record.ImpliedVolatility <= 0 {
		record.ImpliedVolatility = DefaultImpliedVolatility
	}
}
