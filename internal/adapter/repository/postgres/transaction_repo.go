package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/simaogato/wealthflow-forecast/internal/domain"
	"github.com/simaogato/wealthflow-forecast/internal/usecase/normalizer"
)

// snapshotRow is one row of the financial_records table as scanned
type snapshotRow struct {
	ID               uuid.UUID
	Kind             string
	Amount           string // DECIMAL, scanned as text to keep precision
	OccurrenceDate   sql.NullTime
	Recurrence       sql.NullString
	InstallmentCount sql.NullInt64
	InstallmentStart sql.NullTime
	CategoryName     sql.NullString
}

// transactionSnapshotRepository implements domain.TransactionSnapshotRepository
type transactionSnapshotRepository struct {
	db *DB
}

// NewTransactionSnapshotRepository creates a new read-only snapshot repository
func NewTransactionSnapshotRepository(db *DB) domain.TransactionSnapshotRepository {
	return &transactionSnapshotRepository{db: db}
}

// ListByAccount retrieves every record of an account as raw transactions
// Rows are returned as stored so that malformed records surface as validation errors downstream
func (r *transactionSnapshotRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]domain.RawTransaction, error) {
	query := `
		SELECT id, kind, amount::text, occurrence_date, recurrence,
		       installment_count, installment_start, category_name
		FROM financial_records
		WHERE account_id = $1
		ORDER BY occurrence_date, id
	`

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query financial records: %w", err)
	}
	defer rows.Close()

	records := make([]domain.RawTransaction, 0)
	for rows.Next() {
		var row snapshotRow
		if err := rows.Scan(
			&row.ID,
			&row.Kind,
			&row.Amount,
			&row.OccurrenceDate,
			&row.Recurrence,
			&row.InstallmentCount,
			&row.InstallmentStart,
			&row.CategoryName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan financial record: %w", err)
		}
		records = append(records, rowToRecord(row))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating financial records: %w", err)
	}

	return records, nil
}

// rowToRecord maps a scanned row onto the raw record field names the normalizer reads
// NULL columns are left out of the record entirely
func rowToRecord(row snapshotRow) domain.RawTransaction {
	record := domain.RawTransaction{
		normalizer.FieldID:     row.ID.String(),
		normalizer.FieldKind:   strings.ToLower(row.Kind),
		normalizer.FieldAmount: row.Amount,
	}

	if row.OccurrenceDate.Valid {
		record[normalizer.FieldDate] = row.OccurrenceDate.Time
	}
	if row.Recurrence.Valid {
		record[normalizer.FieldRecurrence] = row.Recurrence.String
	}
	if row.InstallmentCount.Valid {
		record[normalizer.FieldInstallments] = row.InstallmentCount.Int64
	}
	if row.InstallmentStart.Valid {
		record[normalizer.FieldInstallmentStart] = row.InstallmentStart.Time
	}
	if row.CategoryName.Valid {
		record[normalizer.FieldCategory] = row.CategoryName.String
	}

	return record
}
