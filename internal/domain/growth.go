package domain

import "github.com/shopspring/decimal"

// RateTier is one bracket of a tiered annual rate schedule
// UpperBound is invalid (NULL) for the unbounded catch-all tier
type RateTier struct {
	UpperBound decimal.NullDecimal
	AnnualRate decimal.Decimal // 0.03 means 3% per year
}

// GrowthSimulationRequest describes a compound-interest simulation
type GrowthSimulationRequest struct {
	StartingBalance decimal.Decimal
	DurationMonths  int
	RateTiers       []RateTier // Ascending by UpperBound, last tier catches everything
}

// GrowthPoint is the simulated balance at the end of a month
type GrowthPoint struct {
	MonthIndex       int // 1-based: balance after MonthIndex months of compounding
	ProjectedBalance decimal.Decimal
}
