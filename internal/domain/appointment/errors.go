package appointment

import "errors"

var (
	ErrNoPatient         = errors.New("appointment requires a patient")
	ErrNoDoctor          = errors.New("appointment requires a doctor")
	ErrNoScheduledTime   = errors.New("appointment requires a scheduled time")
	ErrNegativeBasePrice = errors.New("base price must be non-negative")
	ErrNoStrategy        = errors.New("appointment requires a pricing strategy")
)
