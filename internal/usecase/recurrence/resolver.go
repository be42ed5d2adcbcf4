package recurrence

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthflow-forecast/internal/domain"
)

// ResolveContribution returns the amount a transaction contributes to the month
// that lies monthOffset months after the anchor date
// Logic:
//   - OneOff: full amount only in the calendar month of the occurrence date
//   - Fixed: full amount in every month, unconditionally
//   - Installment: amount / count for each month in [start, start+count)
//
// Months are compared by linear month index so spans crossing a year boundary resolve correctly.
// Panics on a recurrence variant it does not know; the variant set is closed.
func ResolveContribution(tx domain.Transaction, anchorDate time.Time, monthOffset int) decimal.Decimal {
	return ResolveAt(tx, domain.LinearMonth(anchorDate)+monthOffset)
}

// ResolveAt resolves the contribution for an already computed linear month index
func ResolveAt(tx domain.Transaction, target int) decimal.Decimal {
	switch r := tx.Recurrence.(type) {
	case domain.OneOff:
		if domain.LinearMonth(tx.OccurrenceDate) == target {
			return tx.Amount
		}
		return decimal.Zero
	case domain.Fixed:
		return tx.Amount
	case domain.Installment:
		start, end := r.Span()
		if target >= start && target < end {
			return tx.Amount.Div(decimal.NewFromInt(int64(r.Count)))
		}
		return decimal.Zero
	default:
		panic(fmt.Sprintf("recurrence: unknown recurrence variant %T", tx.Recurrence))
	}
}

