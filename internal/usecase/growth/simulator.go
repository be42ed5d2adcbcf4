package growth

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthflow-forecast/internal/domain"
)

// balanceScale bounds the digits carried between compounding steps.
// It is far below presentation precision, so no visible rounding happens until rendering.
const balanceScale = 18

var one = decimal.NewFromInt(1)

// ValidateTiers ensures a rate schedule can be evaluated
// Rules:
//   - at least one tier
//   - only the final tier may be unbounded
//   - bounded tiers must be strictly ascending
//   - every annual rate must be greater than -100%
func ValidateTiers(tiers []domain.RateTier) error {
	if len(tiers) == 0 {
		return domain.NewConfigurationError("rateTiers", "must not be empty")
	}

	var previous *decimal.Decimal
	for i, tier := range tiers {
		if tier.AnnualRate.LessThanOrEqual(one.Neg()) {
			return domain.NewConfigurationError(fmt.Sprintf("rateTiers[%d].annualRate", i), "must be greater than -1")
		}

		if !tier.UpperBound.Valid {
			if i != len(tiers)-1 {
				return domain.NewConfigurationError(fmt.Sprintf("rateTiers[%d].upperBound", i), "only the last tier may be unbounded")
			}
			continue
		}

		if previous != nil && tier.UpperBound.Decimal.LessThanOrEqual(*previous) {
			return domain.NewConfigurationError(fmt.Sprintf("rateTiers[%d].upperBound", i), "must be greater than the previous tier")
		}
		bound := tier.UpperBound.Decimal
		previous = &bound
	}

	return nil
}

// SelectTier picks the first tier whose upper bound is >= balance
// The last tier catches every balance above the bounded tiers, whether or not it declares a bound.
func SelectTier(tiers []domain.RateTier, balance decimal.Decimal) (domain.RateTier, error) {
	if err := ValidateTiers(tiers); err != nil {
		return domain.RateTier{}, err
	}

	for _, tier := range tiers[:len(tiers)-1] {
		if tier.UpperBound.Decimal.GreaterThanOrEqual(balance) {
			return tier, nil
		}
	}
	return tiers[len(tiers)-1], nil
}

// ErrRateOutOfRange is returned when an annual rate has no finite monthly equivalent
var ErrRateOutOfRange = errors.New("annual rate has no finite monthly equivalent")

// MonthlyRate converts an annual rate into the effective monthly rate (1 + annual)^(1/12) - 1
func MonthlyRate(annualRate decimal.Decimal) (decimal.Decimal, error) {
	factor := math.Pow(1+annualRate.InexactFloat64(), 1.0/12.0)
	if math.IsNaN(factor) || math.IsInf(factor, 0) {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrRateOutOfRange, annualRate.String())
	}
	return decimal.NewFromFloat(factor).Sub(one), nil
}

// Simulate compounds the starting balance monthly at the rate of the tier it falls in
// Logic:
//  1. Validate duration (1..MaxDurationMonths) and tiers
//  2. Select the tier for the starting balance (the tier stays fixed for the whole run)
//  3. balance = balance * (1 + monthlyRate) for each month 1..durationMonths
//  4. Emit one GrowthPoint per month
func Simulate(req domain.GrowthSimulationRequest) ([]domain.GrowthPoint, error) {
	if err := domain.ValidateDuration(req.DurationMonths); err != nil {
		return nil, err
	}

	tier, err := SelectTier(req.RateTiers, req.StartingBalance)
	if err != nil {
		return nil, err
	}

	monthly, err := MonthlyRate(tier.AnnualRate)
	if err != nil {
		return nil, domain.NewConfigurationError("rateTiers.annualRate", err.Error())
	}

	factor := one.Add(monthly)
	balance := req.StartingBalance
	points := make([]domain.GrowthPoint, 0, req.DurationMonths)

	for month := 1; month <= req.DurationMonths; month++ {
		balance = balance.Mul(factor).Round(balanceScale)
		points = append(points, domain.GrowthPoint{
			MonthIndex:       month,
			ProjectedBalance: balance,
		})
	}

	return points, nil
}
