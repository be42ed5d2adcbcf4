package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MaxHorizonMonths caps a cash-flow projection (100 years)
const MaxHorizonMonths = 1200

// MaxDurationMonths caps a growth simulation (100 years)
const MaxDurationMonths = 1200

// ValidateHorizon checks a projection horizon against [1, MaxHorizonMonths]
func ValidateHorizon(horizonMonths int) error {
	if horizonMonths <= 0 {
		return NewConfigurationError("horizonMonths", "must be at least 1")
	}
	if horizonMonths > MaxHorizonMonths {
		return NewConfigurationError("horizonMonths", fmt.Sprintf("must be at most %d", MaxHorizonMonths))
	}
	return nil
}

// ValidateDuration checks a growth simulation length against [1, MaxDurationMonths]
func ValidateDuration(durationMonths int) error {
	if durationMonths <= 0 {
		return NewConfigurationError("durationMonths", "must be at least 1")
	}
	if durationMonths > MaxDurationMonths {
		return NewConfigurationError("durationMonths", fmt.Sprintf("must be at most %d", MaxDurationMonths))
	}
	return nil
}

// ProjectionRequest describes a cash-flow projection over a forward horizon
type ProjectionRequest struct {
	AnchorDate    time.Time // Defines month offset 0
	HorizonMonths int
	Transactions  []Transaction // Order does not affect the result
}

// Validate ensures the request can be projected
func (r *ProjectionRequest) Validate() error {
	if err := ValidateHorizon(r.HorizonMonths); err != nil {
		return err
	}
	// Month offset 0 must be a real calendar month
	if r.AnchorDate.IsZero() {
		return NewConfigurationError("anchorDate", "is required")
	}
	return nil
}

// MonthlyBucket holds the projected figures for one month offset
type MonthlyBucket struct {
	MonthIndex        int
	Month             time.Time // First day of the projected calendar month
	Income            decimal.Decimal
	Expense           decimal.Decimal
	NetDelta          decimal.Decimal // Income - Expense
	CumulativeBalance decimal.Decimal
}

// ProjectionSummary condenses a projected series
type ProjectionSummary struct {
	TotalIncome        decimal.Decimal
	TotalExpense       decimal.Decimal
	FinalBalance       decimal.Decimal
	LowestBalance      decimal.Decimal
	LowestBalanceMonth int
}
