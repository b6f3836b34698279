package appointment

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/clinicdesk/clinicdesk/internal/domain/doctor"
	"github.com/clinicdesk/clinicdesk/internal/domain/patient"
	"github.com/clinicdesk/clinicdesk/internal/pricing"
)

// Appointment links a patient and a doctor at a point in time. ID is zero
// until the registry assigns it on insert; once assigned it is unique,
// monotonically increasing, and never reused. The final price is not
// stored: it is recomputed from the strategy on every read.
type Appointment struct {
	ID int64

	Patient     *patient.Patient
	Doctor      *doctor.Doctor
	ScheduledAt time.Time
	BasePrice   decimal.Decimal

	strategy pricing.Strategy
}

// New validates the appointment fields and builds the record. Base price
// parsing is the caller's job; New only rejects negative values.
func New(p *patient.Patient, d *doctor.Doctor, scheduledAt time.Time, basePrice decimal.Decimal, strategy pricing.Strategy) (*Appointment, error) {
	switch {
	case p == nil:
		return nil, ErrNoPatient
	case d == nil:
		return nil, ErrNoDoctor
	case scheduledAt.IsZero():
		return nil, ErrNoScheduledTime
	case basePrice.IsNegative():
		return nil, ErrNegativeBasePrice
	case strategy == nil:
		return nil, ErrNoStrategy
	}

	return &Appointment{
		Patient:     p,
		Doctor:      d,
		ScheduledAt: scheduledAt,
		BasePrice:   basePrice,
		strategy:    strategy,
	}, nil
}

// FinalPrice recomputes the charge from the current strategy. Never cached,
// so a strategy reassignment is visible on the next read.
func (a *Appointment) FinalPrice() decimal.Decimal {
	return a.strategy.Price(a.BasePrice)
}

// Strategy returns the pricing rule currently assigned.
func (a *Appointment) Strategy() pricing.Strategy {
	return a.strategy
}

// SetStrategy reassigns the pricing rule. The only in-place edit an
// appointment supports.
func (a *Appointment) SetStrategy(s pricing.Strategy) error {
	if s == nil {
		return ErrNoStrategy
	}
	a.strategy = s
	return nil
}
