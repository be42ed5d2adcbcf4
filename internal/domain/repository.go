package domain

import (
	"context"

	"github.com/google/uuid"
)

// TransactionSnapshotRepository defines the read side of the persistence collaborator
// The engine only ever reads a snapshot; writes belong to the surrounding application
type TransactionSnapshotRepository interface {
	// ListByAccount retrieves every raw transaction record recorded for an account
	// Records are returned as stored; normalization is the caller's concern
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]RawTransaction, error)
}

// RateScheduleRepository provides the tiered annual rate schedule used for growth simulations
type RateScheduleRepository interface {
	// GetRateTiers returns the tiers in ascending upper bound order
	GetRateTiers(ctx context.Context) ([]RateTier, error)
}
