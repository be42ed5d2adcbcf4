package grpc

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/wealthflow-forecast/internal/domain"
	"github.com/simaogato/wealthflow-forecast/internal/usecase/projection"
)

const monthLayout = "2006-01"

var (
	maxInt32 = decimal.NewFromInt(math.MaxInt32)
	minInt32 = decimal.NewFromInt(math.MinInt32)
)

// Server implements the ForecastService gRPC server
type Server struct {
	ForecastService      *projection.ForecastService
	DefaultHorizonMonths int
	Now                  func() time.Time
}

// NewServer creates a new gRPC server instance
func NewServer(forecastService *projection.ForecastService, defaultHorizonMonths int) *Server {
	return &Server{
		ForecastService:      forecastService,
		DefaultHorizonMonths: defaultHorizonMonths,
		Now:                  time.Now,
	}
}

// ProjectCashFlow handles the ProjectCashFlow RPC
// Request fields:
//   - account_id: project the stored snapshot of this account, or
//   - transactions: project an inline list of raw records
//   - anchor_date (optional, defaults to today), horizon_months (optional)
func (s *Server) ProjectCashFlow(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.AsMap()

	anchor := s.Now().UTC()
	if v, ok := fields["anchor_date"].(string); ok && v != "" {
		parsed, err := parseAnchor(v)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid anchor_date format: %v", err)
		}
		anchor = parsed
	}

	horizon := s.DefaultHorizonMonths
	if v, present := fields["horizon_months"]; present {
		n, err := intFromValue(v)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid horizon_months: %v", err)
		}
		horizon = n
	}

	var (
		buckets []domain.MonthlyBucket
		err     error
	)

	if v, ok := fields["account_id"].(string); ok && v != "" {
		accountID, parseErr := uuid.Parse(v)
		if parseErr != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid account_id format: %v", parseErr)
		}
		result, projectErr := s.ForecastService.ProjectAccount(ctx, accountID, anchor, horizon)
		if projectErr != nil {
			return nil, mapError(projectErr)
		}
		buckets = result.Buckets
	} else {
		raws, convErr := rawTransactions(fields["transactions"])
		if convErr != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid transactions: %v", convErr)
		}
		buckets, err = projection.BuildFromRaw(anchor, horizon, raws)
		if err != nil {
			return nil, mapError(err)
		}
	}

	return projectionToProto(buckets, projection.Summarize(buckets))
}

// SimulateGrowth handles the SimulateGrowth RPC
// Request fields: starting_balance, duration_months, rate_tiers (optional, server schedule otherwise)
func (s *Server) SimulateGrowth(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.AsMap()

	startingBalance, err := decimalFromValue(fields["starting_balance"])
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid starting_balance format: %v", err)
	}

	duration, err := intFromValue(fields["duration_months"])
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid duration_months: %v", err)
	}

	tiers, err := rateTiers(fields["rate_tiers"])
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid rate_tiers: %v", err)
	}

	points, err := s.ForecastService.SimulateGrowth(ctx, startingBalance, duration, tiers)
	if err != nil {
		return nil, mapError(err)
	}

	protoPoints := make([]interface{}, 0, len(points))
	for _, p := range points {
		protoPoints = append(protoPoints, map[string]interface{}{
			"month_index":       p.MonthIndex,
			"projected_balance": p.ProjectedBalance.String(),
		})
	}

	return structpb.NewStruct(map[string]interface{}{
		"points": protoPoints,
	})
}

// projectionToProto converts buckets and their summary into a response document
func projectionToProto(buckets []domain.MonthlyBucket, summary domain.ProjectionSummary) (*structpb.Struct, error) {
	protoBuckets := make([]interface{}, 0, len(buckets))
	for _, b := range buckets {
		protoBuckets = append(protoBuckets, map[string]interface{}{
			"month_index":        b.MonthIndex,
			"month":              b.Month.Format(monthLayout),
			"income":             b.Income.String(),
			"expense":            b.Expense.String(),
			"net_delta":          b.NetDelta.String(),
			"cumulative_balance": b.CumulativeBalance.String(),
		})
	}

	resp, err := structpb.NewStruct(map[string]interface{}{
		"buckets": protoBuckets,
		"summary": map[string]interface{}{
			"total_income":         summary.TotalIncome.String(),
			"total_expense":        summary.TotalExpense.String(),
			"final_balance":        summary.FinalBalance.String(),
			"lowest_balance":       summary.LowestBalance.String(),
			"lowest_balance_month": summary.LowestBalanceMonth,
		},
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	return resp, nil
}

func parseAnchor(v string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t, nil
	}
	return time.Parse(monthLayout, v)
}

// intFromValue accepts a whole JSON number or a numeric string within the int32 range
// Domain limits (horizon, duration) are enforced further down.
func intFromValue(v interface{}) (int, error) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("%v is not a whole number", n)
		}
		if n > math.MaxInt32 || n < math.MinInt32 {
			return 0, fmt.Errorf("%v is out of range", n)
		}
		return int(n), nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		if err != nil || !d.IsInteger() {
			return 0, fmt.Errorf("%q is not a whole number", n)
		}
		if d.GreaterThan(maxInt32) || d.LessThan(minInt32) {
			return 0, fmt.Errorf("%q is out of range", n)
		}
		return int(d.IntPart()), nil
	case nil:
		return 0, errors.New("is required")
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}

// decimalFromValue accepts decimal strings (preferred) or JSON numbers
func decimalFromValue(v interface{}) (decimal.Decimal, error) {
	switch n := v.(type) {
	case string:
		return decimal.NewFromString(strings.TrimSpace(n))
	case float64:
		return decimal.NewFromFloat(n), nil
	case nil:
		return decimal.Zero, errors.New("is required")
	default:
		return decimal.Zero, fmt.Errorf("unsupported type %T", v)
	}
}

func rawTransactions(v interface{}) ([]domain.RawTransaction, error) {
	if v == nil {
		return nil, nil
	}
	list, ok := v.([]interface{})
	if !ok {
		return nil, errors.New("must be a list")
	}

	raws := make([]domain.RawTransaction, 0, len(list))
	for i, item := range list {
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("item %d must be an object", i)
		}
		raws = append(raws, domain.RawTransaction(m))
	}
	return raws, nil
}

func rateTiers(v interface{}) ([]domain.RateTier, error) {
	if v == nil {
		return nil, nil
	}
	list, ok := v.([]interface{})
	if !ok {
		return nil, errors.New("must be a list")
	}

	tiers := make([]domain.RateTier, 0, len(list))
	for i, item := range list {
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("tier %d must be an object", i)
		}

		rate, err := decimalFromValue(m["annual_rate"])
		if err != nil {
			return nil, fmt.Errorf("tier %d annual_rate: %w", i, err)
		}

		tier := domain.RateTier{AnnualRate: rate}
		if bound, present := m["upper_bound"]; present && bound != nil {
			upper, err := decimalFromValue(bound)
			if err != nil {
				return nil, fmt.Errorf("tier %d upper_bound: %w", i, err)
			}
			tier.UpperBound = decimal.NewNullDecimal(upper)
		}
		tiers = append(tiers, tier)
	}
	return tiers, nil
}

// mapError converts domain errors to gRPC status errors
func mapError(err error) error {
	if err == nil {
		return nil
	}

	// Validation and configuration problems are the caller's to fix
	if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrConfiguration) {
		return status.Errorf(codes.InvalidArgument, "%s", err.Error())
	}

	errorMsg := err.Error()

	// Map "not found" errors to NotFound
	if strings.Contains(errorMsg, "not found") {
		return status.Errorf(codes.NotFound, "%s", errorMsg)
	}

	// Default to Internal error for unknown errors
	return status.Errorf(codes.Internal, "%s", errorMsg)
}
