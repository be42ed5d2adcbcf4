package growth

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/wealthflow-forecast/internal/domain"
)

func bounded(bound int64, rate string) domain.RateTier {
	return domain.RateTier{
		UpperBound: decimal.NewNullDecimal(decimal.NewFromInt(bound)),
		AnnualRate: decimal.RequireFromString(rate),
	}
}

func unbounded(rate string) domain.RateTier {
	return domain.RateTier{AnnualRate: decimal.RequireFromString(rate)}
}

var schedule = []domain.RateTier{
	bounded(100000, "0.02"),
	bounded(1000000, "0.03"),
	unbounded("0.04"),
}

func TestSelectTier(t *testing.T) {
	tests := []struct {
		name    string
		balance int64
		want    string
	}{
		{"Below first bound", 5000, "0.02"},
		{"Exactly on first bound", 100000, "0.02"},
		{"Just above first bound", 100001, "0.03"},
		{"Middle tier", 500000, "0.03"},
		{"Catch-all tier", 5000000, "0.04"},
		{"Negative balance uses first tier", -10, "0.02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier, err := SelectTier(schedule, decimal.NewFromInt(tt.balance))
			require.NoError(t, err)
			assert.Equal(t, tt.want, tier.AnnualRate.String())
		})
	}
}

func TestSelectTier_BoundedLastTierStillCatchesAll(t *testing.T) {
	tiers := []domain.RateTier{bounded(100, "0.01"), bounded(200, "0.05")}

	tier, err := SelectTier(tiers, decimal.NewFromInt(10000))

	require.NoError(t, err)
	assert.Equal(t, "0.05", tier.AnnualRate.String())
}

func TestValidateTiers(t *testing.T) {
	tests := []struct {
		name  string
		tiers []domain.RateTier
		field string
	}{
		{"Empty", nil, "rateTiers"},
		{"Unbounded tier not last", []domain.RateTier{unbounded("0.01"), bounded(100, "0.02")}, "rateTiers[0].upperBound"},
		{"Descending bounds", []domain.RateTier{bounded(100, "0.01"), bounded(50, "0.02"), unbounded("0.03")}, "rateTiers[1].upperBound"},
		{"Duplicate bounds", []domain.RateTier{bounded(100, "0.01"), bounded(100, "0.02")}, "rateTiers[1].upperBound"},
		{"Rate of -100%", []domain.RateTier{unbounded("-1")}, "rateTiers[0].annualRate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTiers(tt.tiers)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrConfiguration)

			var cErr *domain.ConfigurationError
			require.ErrorAs(t, err, &cErr)
			assert.Equal(t, tt.field, cErr.Field)
		})
	}

	assert.NoError(t, ValidateTiers(schedule))
}

func TestMonthlyRate(t *testing.T) {
	monthly, err := MonthlyRate(decimal.RequireFromString("0.03"))
	require.NoError(t, err)

	// Twelve compounded months give back the annual rate
	annual := math.Pow(1+monthly.InexactFloat64(), 12) - 1
	assert.InDelta(t, 0.03, annual, 1e-12)
	assert.True(t, monthly.LessThan(decimal.RequireFromString("0.0025")), "effective monthly rate is below simple 3%/12")
}

func TestSimulate_OneYearAtThreePercent(t *testing.T) {
	points, err := Simulate(domain.GrowthSimulationRequest{
		StartingBalance: decimal.NewFromInt(500000),
		DurationMonths:  12,
		RateTiers:       schedule,
	})

	require.NoError(t, err)
	require.Len(t, points, 12)
	assert.Equal(t, 1, points[0].MonthIndex)
	assert.Equal(t, 12, points[11].MonthIndex)

	final := points[11].ProjectedBalance.InexactFloat64()
	assert.InDelta(t, 515000.0, final, 1e-4)
}

func TestSimulate_CompoundingLaw(t *testing.T) {
	start := decimal.NewFromInt(250000)
	points, err := Simulate(domain.GrowthSimulationRequest{
		StartingBalance: start,
		DurationMonths:  360,
		RateTiers:       schedule,
	})
	require.NoError(t, err)

	rate, err := MonthlyRate(decimal.RequireFromString("0.03"))
	require.NoError(t, err)
	monthly := rate.InexactFloat64()
	for _, p := range points {
		want := 250000 * math.Pow(1+monthly, float64(p.MonthIndex))
		assert.InEpsilon(t, want, p.ProjectedBalance.InexactFloat64(), 1e-9, "month %d", p.MonthIndex)
	}

	// Monotonic growth for a positive rate
	for i := 1; i < len(points); i++ {
		assert.True(t, points[i].ProjectedBalance.GreaterThan(points[i-1].ProjectedBalance))
	}
}

func TestSimulate_ZeroRateKeepsBalance(t *testing.T) {
	points, err := Simulate(domain.GrowthSimulationRequest{
		StartingBalance: decimal.NewFromInt(1000),
		DurationMonths:  3,
		RateTiers:       []domain.RateTier{unbounded("0")},
	})

	require.NoError(t, err)
	for _, p := range points {
		assert.True(t, p.ProjectedBalance.Equal(decimal.NewFromInt(1000)))
	}
}

func TestSimulate_ConfigurationErrors(t *testing.T) {
	_, err := Simulate(domain.GrowthSimulationRequest{
		StartingBalance: decimal.NewFromInt(1000),
		DurationMonths:  0,
		RateTiers:       schedule,
	})
	assert.ErrorIs(t, err, domain.ErrConfiguration)

	_, err = Simulate(domain.GrowthSimulationRequest{
		StartingBalance: decimal.NewFromInt(1000),
		DurationMonths:  12,
	})
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestMonthlyRate_NonFiniteRateIsRejected(t *testing.T) {
	_, err := MonthlyRate(decimal.RequireFromString("1e400"))
	assert.ErrorIs(t, err, ErrRateOutOfRange)
}

func TestSimulate_HugeRateIsConfigurationError(t *testing.T) {
	huge := decimal.RequireFromString("1e400")
	require.NoError(t, ValidateTiers([]domain.RateTier{{AnnualRate: huge}}))

	assert.NotPanics(t, func() {
		_, err := Simulate(domain.GrowthSimulationRequest{
			StartingBalance: decimal.NewFromInt(1000),
			DurationMonths:  12,
			RateTiers:       []domain.RateTier{{AnnualRate: huge}},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrConfiguration)
		assert.ErrorContains(t, err, "no finite monthly equivalent")
	})
}

func TestSimulate_DurationLimits(t *testing.T) {
	tests := []struct {
		name     string
		duration int
		wantErr  bool
	}{
		{"Zero", 0, true},
		{"Negative", -3, true},
		{"At the cap", domain.MaxDurationMonths, false},
		{"Above the cap", domain.MaxDurationMonths + 1, true},
		{"Absurdly large", 1_000_000_000_000_000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points, err := Simulate(domain.GrowthSimulationRequest{
				StartingBalance: decimal.NewFromInt(1000),
				DurationMonths:  tt.duration,
				RateTiers:       []domain.RateTier{unbounded("0")},
			})
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrConfiguration)
				return
			}
			require.NoError(t, err)
			assert.Len(t, points, tt.duration)
		})
	}
}

func TestSimulate_Idempotent(t *testing.T) {
	req := domain.GrowthSimulationRequest{
		StartingBalance: decimal.RequireFromString("12345.67"),
		DurationMonths:  24,
		RateTiers:       schedule,
	}

	first, err := Simulate(req)
	require.NoError(t, err)
	second, err := Simulate(req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
