package aggregator

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/wealthflow-forecast/internal/domain"
)

var anchor = time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)

func amounts(buckets []domain.MonthlyBucket, pick func(domain.MonthlyBucket) decimal.Decimal) []string {
	out := make([]string, len(buckets))
	for i, b := range buckets {
		out[i] = pick(b).String()
	}
	return out
}

func income(b domain.MonthlyBucket) decimal.Decimal  { return b.Income }
func expense(b domain.MonthlyBucket) decimal.Decimal { return b.Expense }

func TestAggregateMonths_FixedIncome(t *testing.T) {
	txs := []domain.Transaction{{
		Kind:           domain.KindIncome,
		Amount:         decimal.NewFromInt(100000),
		OccurrenceDate: anchor,
		Recurrence:     domain.Fixed{},
	}}

	buckets, err := AggregateMonths(txs, anchor, 3)

	require.NoError(t, err)
	assert.Equal(t, []string{"100000", "100000", "100000"}, amounts(buckets, income))
	assert.Equal(t, []string{"0", "0", "0"}, amounts(buckets, expense))
}

func TestAggregateMonths_InstallmentExpense(t *testing.T) {
	txs := []domain.Transaction{{
		Kind:           domain.KindExpense,
		Amount:         decimal.NewFromInt(120000),
		OccurrenceDate: anchor,
		Recurrence:     domain.Installment{Count: 3, StartDate: anchor},
	}}

	buckets, err := AggregateMonths(txs, anchor, 5)

	require.NoError(t, err)
	assert.Equal(t, []string{"40000", "40000", "40000", "0", "0"}, amounts(buckets, expense))
	assert.True(t, buckets[0].NetDelta.Equal(decimal.NewFromInt(-40000)))
}

func TestAggregateMonths_OneOffIncome(t *testing.T) {
	txs := []domain.Transaction{{
		Kind:           domain.KindIncome,
		Amount:         decimal.NewFromInt(50000),
		OccurrenceDate: anchor.AddDate(0, 2, 0),
		Recurrence:     domain.OneOff{},
	}}

	buckets, err := AggregateMonths(txs, anchor, 5)

	require.NoError(t, err)
	assert.Equal(t, []string{"0", "0", "50000", "0", "0"}, amounts(buckets, income))
}

func TestAggregateMonths_OneOffOutsideHorizon(t *testing.T) {
	txs := []domain.Transaction{
		{Kind: domain.KindIncome, Amount: decimal.NewFromInt(1), OccurrenceDate: anchor.AddDate(0, -1, 0), Recurrence: domain.OneOff{}},
		{Kind: domain.KindIncome, Amount: decimal.NewFromInt(1), OccurrenceDate: anchor.AddDate(0, 4, 0), Recurrence: domain.OneOff{}},
	}

	buckets, err := AggregateMonths(txs, anchor, 4)

	require.NoError(t, err)
	for _, b := range buckets {
		assert.True(t, b.Income.IsZero())
	}
}

func TestAggregateMonths_MixedKinds(t *testing.T) {
	txs := []domain.Transaction{
		{Kind: domain.KindIncome, Amount: decimal.NewFromInt(3000), OccurrenceDate: anchor, Recurrence: domain.Fixed{}},
		{Kind: domain.KindExpense, Amount: decimal.NewFromInt(1000), OccurrenceDate: anchor, Recurrence: domain.Fixed{}},
		{Kind: domain.KindExpense, Amount: decimal.NewFromInt(500), OccurrenceDate: anchor.AddDate(0, 1, 0), Recurrence: domain.OneOff{}},
	}

	buckets, err := AggregateMonths(txs, anchor, 3)

	require.NoError(t, err)
	assert.Equal(t, []string{"1000", "1500", "1000"}, amounts(buckets, expense))
	assert.Equal(t, []string{"2000", "1500", "2000"}, amounts(buckets, func(b domain.MonthlyBucket) decimal.Decimal { return b.NetDelta }))
}

func TestAggregateMonths_EmptyInput(t *testing.T) {
	buckets, err := AggregateMonths(nil, anchor, 6)

	require.NoError(t, err)
	require.Len(t, buckets, 6)
	for i, b := range buckets {
		assert.Equal(t, i, b.MonthIndex)
		assert.True(t, b.Income.IsZero())
		assert.True(t, b.Expense.IsZero())
		assert.True(t, b.NetDelta.IsZero())
		assert.True(t, b.CumulativeBalance.IsZero())
	}
}

func TestAggregateMonths_MonthLabelsCrossYear(t *testing.T) {
	buckets, err := AggregateMonths(nil, time.Date(2024, time.November, 30, 0, 0, 0, 0, time.UTC), 4)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC), buckets[0].Month)
	assert.Equal(t, time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), buckets[3].Month)
}

func TestAggregateMonths_InvalidHorizon(t *testing.T) {
	_, err := AggregateMonths(nil, anchor, 0)
	assert.ErrorIs(t, err, domain.ErrConfiguration)

	buckets, err := AggregateMonths(nil, anchor, 1_000_000_000_000_000)
	assert.Nil(t, buckets)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}
