package projection

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthflow-forecast/internal/domain"
	"github.com/simaogato/wealthflow-forecast/internal/usecase/growth"
)

// ProjectAccountResult bundles a projected series with its summary
type ProjectAccountResult struct {
	Buckets []domain.MonthlyBucket
	Summary domain.ProjectionSummary
}

// ForecastService serves projections for stored accounts
type ForecastService struct {
	SnapshotRepo     domain.TransactionSnapshotRepository
	RateScheduleRepo domain.RateScheduleRepository
	Logger           *slog.Logger
}

// NewForecastService creates a new ForecastService instance
func NewForecastService(
	snapshotRepo domain.TransactionSnapshotRepository,
	rateScheduleRepo domain.RateScheduleRepository,
	logger *slog.Logger,
) *ForecastService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ForecastService{
		SnapshotRepo:     snapshotRepo,
		RateScheduleRepo: rateScheduleRepo,
		Logger:           logger.With("component", "forecast"),
	}
}

// ProjectAccount loads the account's transaction snapshot and projects it
// Logic:
//  1. Reject an invalid horizon before touching the repository
//  2. Fetch the raw snapshot
//  3. Normalize and project (abort on the first invalid record)
//  4. Summarize the series
func (s *ForecastService) ProjectAccount(ctx context.Context, accountID uuid.UUID, anchorDate time.Time, horizonMonths int) (*ProjectAccountResult, error) {
	if err := domain.ValidateHorizon(horizonMonths); err != nil {
		return nil, err
	}

	raws, err := s.SnapshotRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction snapshot: %w", err)
	}

	buckets, err := BuildFromRaw(anchorDate, horizonMonths, raws)
	if err != nil {
		s.Logger.WarnContext(ctx, "Projection rejected",
			"account_id", accountID,
			"records", len(raws),
			"error", err)
		return nil, err
	}

	s.Logger.DebugContext(ctx, "Projection built",
		"account_id", accountID,
		"records", len(raws),
		"horizon_months", horizonMonths)

	return &ProjectAccountResult{
		Buckets: buckets,
		Summary: Summarize(buckets),
	}, nil
}

// SimulateGrowth runs a growth simulation
// If tiers is empty, the configured rate schedule is used.
func (s *ForecastService) SimulateGrowth(ctx context.Context, startingBalance decimal.Decimal, durationMonths int, tiers []domain.RateTier) ([]domain.GrowthPoint, error) {
	if len(tiers) == 0 {
		configured, err := s.RateScheduleRepo.GetRateTiers(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load rate schedule: %w", err)
		}
		tiers = configured
	}

	return growth.Simulate(domain.GrowthSimulationRequest{
		StartingBalance: startingBalance,
		DurationMonths:  durationMonths,
		RateTiers:       tiers,
	})
}
