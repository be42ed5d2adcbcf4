package normalizer

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthflow-forecast/internal/domain"
)

// Record field names as written by the persistence collaborator
const (
	FieldID               = "id"
	FieldKind             = "type"
	FieldAmount           = "amount"
	FieldDate             = "date"
	FieldCategory         = "category"
	FieldRecurrence       = "recurrence"
	FieldIsFixed          = "isFixed"
	FieldIsInstallment    = "isInstallment"
	FieldInstallments     = "installments"
	FieldInstallmentStart = "installmentStart"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02/01/2006",
	"2006-01",
}

// Normalize converts a raw record into a validated domain.Transaction
// Logic:
//  1. Parse kind, amount, occurrence date and category
//  2. Resolve recurrence from the tagged "recurrence" field, falling back to legacy flags
//  3. Validate the resulting transaction
//
// Returns a *domain.ValidationError on any malformed field. No side effects.
func Normalize(raw domain.RawTransaction) (domain.Transaction, error) {
	var tx domain.Transaction

	if raw == nil {
		return tx, domain.NewValidationError("record", "is empty")
	}

	id, err := parseID(raw[FieldID])
	if err != nil {
		return tx, err
	}

	kind, err := parseKind(raw[FieldKind])
	if err != nil {
		return tx, err
	}

	amount, err := parseAmount(raw[FieldAmount])
	if err != nil {
		return tx, err
	}

	date, ok := parseDate(raw[FieldDate])
	if !ok {
		return tx, domain.NewValidationError("occurrenceDate", "is missing or unparseable")
	}

	recurrence, err := parseRecurrence(raw)
	if err != nil {
		return tx, err
	}

	category, _ := raw[FieldCategory].(string)

	tx = domain.Transaction{
		ID:             id,
		Kind:           kind,
		Amount:         amount,
		OccurrenceDate: date,
		Recurrence:     recurrence,
		CategoryName:   category,
	}

	if err := tx.Validate(); err != nil {
		return domain.Transaction{}, err
	}

	return tx, nil
}

// NormalizeAll normalizes every record, stopping at the first failure
// The returned error names the index of the offending record and wraps its ValidationError
func NormalizeAll(raws []domain.RawTransaction) ([]domain.Transaction, error) {
	txs := make([]domain.Transaction, 0, len(raws))
	for i, raw := range raws {
		tx, err := Normalize(raw)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// parseID accepts a UUID string; records without an ID get a fresh one
func parseID(v any) (uuid.UUID, error) {
	switch id := v.(type) {
	case nil:
		return uuid.New(), nil
	case uuid.UUID:
		return id, nil
	case string:
		if strings.TrimSpace(id) == "" {
			return uuid.New(), nil
		}
		parsed, err := uuid.Parse(id)
		if err != nil {
			return uuid.Nil, domain.NewValidationError("id", "is not a valid UUID")
		}
		return parsed, nil
	default:
		return uuid.Nil, domain.NewValidationError("id", "is not a valid UUID")
	}
}

func parseKind(v any) (domain.Kind, error) {
	s, _ := v.(string)
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income", "credit":
		return domain.KindIncome, nil
	case "expense", "debit":
		return domain.KindExpense, nil
	case "":
		return "", domain.NewValidationError("kind", "is missing")
	default:
		return "", domain.NewValidationError("kind", fmt.Sprintf("%q is not income or expense", s))
	}
}

// parseAmount accepts decimals, numbers and numeric strings using "." or "," as decimal separator
func parseAmount(v any) (decimal.Decimal, error) {
	var amount decimal.Decimal

	switch a := v.(type) {
	case nil:
		return decimal.Zero, domain.NewValidationError("amount", "is missing")
	case decimal.Decimal:
		amount = a
	case float64:
		amount = decimal.NewFromFloat(a)
	case float32:
		amount = decimal.NewFromFloat32(a)
	case int:
		amount = decimal.NewFromInt(int64(a))
	case int64:
		amount = decimal.NewFromInt(a)
	case json.Number:
		d, err := decimal.NewFromString(a.String())
		if err != nil {
			return decimal.Zero, domain.NewValidationError("amount", "is not numeric")
		}
		amount = d
	case string:
		s := strings.TrimSpace(a)
		if s == "" {
			return decimal.Zero, domain.NewValidationError("amount", "is missing")
		}
		s, ok := canonicalAmount(s)
		if !ok {
			return decimal.Zero, domain.NewValidationError("amount", "is not numeric")
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, domain.NewValidationError("amount", "is not numeric")
		}
		amount = d
	default:
		return decimal.Zero, domain.NewValidationError("amount", "is not numeric")
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, domain.NewValidationError("amount", "must be positive")
	}
	return amount, nil
}

// canonicalAmount rewrites a localized amount into "1234.56" form
// Rules:
//   - both "." and "," present: the last one is the decimal separator, the other groups thousands
//     ("1.234,56", "1,000.50")
//   - one separator occurring several times groups thousands ("1.234.567", "1,000,000")
//   - a single separator is the decimal one ("12,34", "12.34", and so "1,000" reads as 1)
//
// Grouped digits must come in threes after the first group.
func canonicalAmount(s string) (string, bool) {
	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	var group, dec string
	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			group, dec = ".", ","
		} else {
			group, dec = ",", "."
		}
	case strings.Count(s, ",") > 1:
		group = ","
	case strings.Count(s, ".") > 1:
		group = "."
	case lastComma >= 0:
		dec = ","
	default:
		return s, true
	}

	integer, fraction := s, ""
	if dec != "" {
		i := strings.LastIndex(s, dec)
		integer, fraction = s[:i], s[i+1:]
		if strings.Contains(fraction, group) && group != "" {
			return "", false
		}
	}

	if group != "" {
		parts := strings.Split(integer, group)
		for i, part := range parts {
			if i > 0 && len(part) != 3 {
				return "", false
			}
		}
		integer = strings.Join(parts, "")
	}

	if dec == "" {
		return integer, true
	}
	return integer + "." + fraction, true
}

func parseDate(v any) (time.Time, bool) {
	switch d := v.(type) {
	case time.Time:
		return d, !d.IsZero()
	case *time.Time:
		if d == nil {
			return time.Time{}, false
		}
		return *d, !d.IsZero()
	case string:
		s := strings.TrimSpace(d)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

func parseCount(v any) (int, bool) {
	switch c := v.(type) {
	case int:
		return c, true
	case int64:
		return int(c), true
	case float64:
		if c != float64(int(c)) {
			return 0, false
		}
		return int(c), true
	case json.Number:
		n, err := c.Int64()
		return int(n), err == nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(c))
		return n, err == nil
	}
	return 0, false
}

// parseRecurrence resolves the tagged recurrence field, or the legacy isFixed/isInstallment flags
func parseRecurrence(raw domain.RawTransaction) (domain.Recurrence, error) {
	mode, _ := raw[FieldRecurrence].(string)
	mode = strings.ToLower(strings.TrimSpace(mode))

	if mode == "" {
		isFixed, _ := raw[FieldIsFixed].(bool)
		isInstallment, _ := raw[FieldIsInstallment].(bool)
		switch {
		case isFixed && isInstallment:
			return nil, domain.NewValidationError("recurrence", "cannot be both fixed and installment")
		case isFixed:
			mode = "fixed"
		case isInstallment:
			mode = "installment"
		default:
			mode = "oneoff"
		}
	}

	switch mode {
	case "oneoff", "one_off", "single":
		return domain.OneOff{}, nil
	case "fixed", "recurring":
		return domain.Fixed{}, nil
	case "installment", "installments":
		count, ok := parseCount(raw[FieldInstallments])
		if !ok {
			return nil, domain.NewValidationError("installment.count", "is missing or not an integer")
		}
		if count < 1 {
			return nil, domain.NewValidationError("installment.count", "must be at least 1")
		}
		start, ok := parseDate(raw[FieldInstallmentStart])
		if !ok {
			return nil, domain.NewValidationError("installment.startDate", "is missing or unparseable")
		}
		return domain.Installment{Count: count, StartDate: start}, nil
	default:
		return nil, domain.NewValidationError("recurrence", fmt.Sprintf("%q is not oneoff, fixed or installment", mode))
	}
}
