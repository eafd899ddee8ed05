package marketdata

// ContractRecord is one row of an option chain as handed over by the
// market-data provider. Numeric presence and types are validated at load
// time; the pricing core only re-checks its own arithmetic invariants.
type ContractRecord struct {
	Strike            float64 `json:"strike"`
	LastPrice         float64 `json:"last_price"`
	Bid               float64 `json:"bid"`
	Ask               float64 `json:"ask"`
	Volume            int     `json:"volume"`
	OpenInterest      int     `json:"open_interest"`
	ImpliedVolatility float64 `json:"implied_volatility"`
	InTheMoney        bool    `json:"in_the_money"`
	LastTradeDate     string  `json:"last_trade_date"`
}

// ChainSnapshot is a full option chain for one underlying and expiration,
// captured to a local JSON file.
type ChainSnapshot struct {
	Symbol       string           `json:"symbol"`
	Expiration   string           `json:"expiration"`
	Spot         float64          `json:"spot"`
	RiskFreeRate float64          `json:"risk_free_rate"`
	Calls        []ContractRecord `json:"calls"`
	Puts         []ContractRecord `json:"puts"`
}
