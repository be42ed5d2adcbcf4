package projection

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthflow-forecast/internal/domain"
	"github.com/simaogato/wealthflow-forecast/internal/usecase/aggregator"
	"github.com/simaogato/wealthflow-forecast/internal/usecase/balance"
	"github.com/simaogato/wealthflow-forecast/internal/usecase/normalizer"
)

// Build runs the cash-flow projection for already normalized transactions
// Logic:
//  1. Validate the request (horizon >= 1) before any computation
//  2. Re-validate every transaction; the first invalid one aborts the whole projection
//  3. Aggregate income/expense per month
//  4. Fold the net deltas into the running balance
func Build(req domain.ProjectionRequest) ([]domain.MonthlyBucket, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	for i := range req.Transactions {
		if err := req.Transactions[i].Validate(); err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
	}

	buckets, err := aggregator.AggregateMonths(req.Transactions, req.AnchorDate, req.HorizonMonths)
	if err != nil {
		return nil, err
	}

	return balance.Accumulate(buckets), nil
}

// BuildFromRaw normalizes raw records and projects them
// The horizon is checked first, then every record is normalized; no partial result is ever returned.
func BuildFromRaw(anchorDate time.Time, horizonMonths int, raws []domain.RawTransaction) ([]domain.MonthlyBucket, error) {
	if err := domain.ValidateHorizon(horizonMonths); err != nil {
		return nil, err
	}

	txs, err := normalizer.NormalizeAll(raws)
	if err != nil {
		return nil, err
	}

	return Build(domain.ProjectionRequest{
		AnchorDate:    anchorDate,
		HorizonMonths: horizonMonths,
		Transactions:  txs,
	})
}

// Summarize condenses a projected series into totals and its lowest balance point
// An empty series yields a zero summary.
func Summarize(buckets []domain.MonthlyBucket) domain.ProjectionSummary {
	summary := domain.ProjectionSummary{
		TotalIncome:   decimal.Zero,
		TotalExpense:  decimal.Zero,
		FinalBalance:  decimal.Zero,
		LowestBalance: decimal.Zero,
	}

	for i, b := range buckets {
		summary.TotalIncome = summary.TotalIncome.Add(b.Income)
		summary.TotalExpense = summary.TotalExpense.Add(b.Expense)

		if i == 0 || b.CumulativeBalance.LessThan(summary.LowestBalance) {
			summary.LowestBalance = b.CumulativeBalance
			summary.LowestBalanceMonth = b.MonthIndex
		}
	}

	if len(buckets) > 0 {
		summary.FinalBalance = buckets[len(buckets)-1].CumulativeBalance
	}

	return summary
}
