package models

import "math"

type OptionType string

const (
	Call OptionType = "call"
	Put  OptionType = "put"
)

type ExerciseStyle string

const (
	American ExerciseStyle = "american"
	European ExerciseStyle = "european"
)

// ContractSpec describes one vanilla option contract and the market
// parameters it prices under. Values are never mutated after construction;
// perturbed variants used for Greeks are fresh copies built with the With*
// helpers.
type ContractSpec struct {
	Spot          float64
	Strike        float64
	Maturity      float64 // years
	RiskFreeRate  float64
	DividendYield float64
	Volatility    float64
	OptionType    OptionType
	ExerciseStyle ExerciseStyle
}

func NewCall(spot, strike, maturity, riskFreeRate, dividendYield, volatility float64, style ExerciseStyle) ContractSpec {
	return ContractSpec{
		Spot:          spot,
		Strike:        strike,
		Maturity:      maturity,
		RiskFreeRate:  riskFreeRate,
		DividendYield: dividendYield,
		Volatility:    volatility,
		OptionType:    Call,
		ExerciseStyle: style,
	}
}

func NewPut(spot, strike, maturity, riskFreeRate, dividendYield, volatility float64, style ExerciseStyle) ContractSpec {
	return ContractSpec{
		Spot:          spot,
		Strike:        strike,
		Maturity:      maturity,
		RiskFreeRate:  riskFreeRate,
		DividendYield: dividendYield,
		Volatility:    volatility,
		OptionType:    Put,
		ExerciseStyle: style,
	}
}

// Validate checks the arithmetic invariants of the contract. All numeric
// fields must be finite, spot/strike/maturity strictly positive, dividend
// yield and volatility non-negative.
func (s ContractSpec) Validate() error {
	checks := []struct {
		field string
		value float64
	}{
		{"spot", s.Spot},
		{"strike", s.Strike},
		{"maturity", s.Maturity},
		{"riskFreeRate", s.RiskFreeRate},
		{"dividendYield", s.DividendYield},
		{"volatility", s.Volatility},
	}
	for _, c := range checks {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) {
			return &InvalidContractError{Field: c.field, Reason: "is not finite"}
		}
	}
	if s.Spot <= 0 {
		return &InvalidContractError{Field: "spot", Reason: "must be positive"}
	}
	if s.Strike <= 0 {
		return &InvalidContractError{Field: "strike", Reason: "must be positive"}
	}
	if s.Maturity <= 0 {
		return &InvalidContractError{Field: "maturity", Reason: "must be positive"}
	}
	if s.DividendYield < 0 {
		return &InvalidContractError{Field: "dividendYield", Reason: "must be non-negative"}
	}
	if s.Volatility < 0 {
		return &InvalidContractError{Field: "volatility", Reason: "must be non-negative"}
	}
	if s.OptionType != Call && s.OptionType != Put {
		return &InvalidContractError{Field: "optionType", Reason: "must be call or put"}
	}
	if s.ExerciseStyle != American && s.ExerciseStyle != European {
		return &InvalidContractError{Field: "exerciseStyle", Reason: "must be american or european"}
	}
	return nil
}

// Intrinsic returns the immediate exercise value at the given underlying price.
func (s ContractSpec) Intrinsic(price float64) float64 {
	if s.OptionType == Call {
		return math.Max(price-s.Strike, 0)
	}
	return math.Max(s.Strike-price, 0)
}

func (s ContractSpec) WithSpot(spot float64) ContractSpec {
	s.Spot = spot
	return s
}

func (s ContractSpec) WithMaturity(maturity float64) ContractSpec {
	s.Maturity = maturity
	return s
}

func (s ContractSpec) WithRiskFreeRate(rate float64) ContractSpec {
	s.RiskFreeRate = rate
	return s
}

func (s ContractSpec) WithVolatility(volatility float64) ContractSpec {
	s.Volatility = volatility
	return s
}
