package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind represents the direction of a transaction
type Kind string

const (
	KindIncome  Kind = "INCOME"
	KindExpense Kind = "EXPENSE"
)

// Transaction represents a normalized financial record in the domain layer
// Transactions are immutable once normalized; the projection engine never mutates them
type Transaction struct {
	ID             uuid.UUID
	Kind           Kind
	Amount         decimal.Decimal // Always positive
	OccurrenceDate time.Time
	Recurrence     Recurrence
	CategoryName   string // Opaque label, not interpreted by the engine
}

// RawTransaction is a loosely typed record as supplied by the persistence collaborator.
// Values may be strings, numbers, booleans or time.Time depending on the source.
type RawTransaction map[string]any

// Validate ensures the transaction adheres to domain rules
// Returns a ValidationError if validation fails
func (t *Transaction) Validate() error {
	if t.Kind != KindIncome && t.Kind != KindExpense {
		return NewValidationError("kind", "must be INCOME or EXPENSE")
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return NewValidationError("amount", "must be positive")
	}

	if t.OccurrenceDate.IsZero() {
		return NewValidationError("occurrenceDate", "is required")
	}

	if t.Recurrence == nil {
		return NewValidationError("recurrence", "is required")
	}

	if inst, ok := t.Recurrence.(Installment); ok {
		if inst.Count < 1 {
			return NewValidationError("installment.count", "must be at least 1")
		}
		if inst.StartDate.IsZero() {
			return NewValidationError("installment.startDate", "is required")
		}
	}

	return nil
}
