package aggregator

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthflow-forecast/internal/domain"
	"github.com/simaogato/wealthflow-forecast/internal/usecase/recurrence"
)

// AggregateMonths sums every transaction's contribution into one bucket per projected month
// Logic:
//  1. Allocate horizonMonths buckets indexed by month offset from the anchor
//  2. For each month and each transaction, resolve its contribution
//  3. Add it to Income or Expense depending on the transaction kind
//  4. NetDelta = Income - Expense; CumulativeBalance is left for the balance accumulator
//
// Cost is O(transactions x horizonMonths).
func AggregateMonths(txs []domain.Transaction, anchorDate time.Time, horizonMonths int) ([]domain.MonthlyBucket, error) {
	if err := domain.ValidateHorizon(horizonMonths); err != nil {
		return nil, err
	}

	anchor := domain.LinearMonth(anchorDate)
	buckets := make([]domain.MonthlyBucket, horizonMonths)

	for offset := range buckets {
		target := anchor + offset
		income := decimal.Zero
		expense := decimal.Zero

		for _, tx := range txs {
			contribution := recurrence.ResolveAt(tx, target)
			if contribution.IsZero() {
				continue
			}

			switch tx.Kind {
			case domain.KindIncome:
				income = income.Add(contribution)
			case domain.KindExpense:
				expense = expense.Add(contribution)
			default:
				return nil, domain.NewValidationError("kind", "must be INCOME or EXPENSE")
			}
		}

		buckets[offset] = domain.MonthlyBucket{
			MonthIndex:        offset,
			Month:             domain.MonthStart(target),
			Income:            income,
			Expense:           expense,
			NetDelta:          income.Sub(expense),
			CumulativeBalance: decimal.Zero,
		}
	}

	return buckets, nil
}
