package domain

import "time"

// Recurrence is the closed set of recurrence policies a transaction can follow.
// Implemented only by OneOff, Fixed and Installment.
type Recurrence interface {
	recurrence()
}

// OneOff contributes once, in the month of the occurrence date
type OneOff struct{}

// Fixed contributes every projected month with no defined end
type Fixed struct{}

// Installment spreads the amount evenly over Count months starting at StartDate
type Installment struct {
	Count     int
	StartDate time.Time
}

func (OneOff) recurrence()      {}
func (Fixed) recurrence()       {}
func (Installment) recurrence() {}

// Span returns the half-open range of linear month indices the installment covers
func (i Installment) Span() (start, endExclusive int) {
	start = LinearMonth(i.StartDate)
	return start, start + i.Count
}
