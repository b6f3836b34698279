// Package pricing holds the pluggable rules that turn an appointment's
// base price into its final price. A strategy is selected per appointment
// at creation time and applied on every price read; no rounding happens
// here — currency rounding belongs to presentation.
package pricing

import "github.com/shopspring/decimal"

type Strategy interface {
	// Price maps a base price to the final price charged.
	Price(base decimal.Decimal) decimal.Decimal
	Name() string
}

const (
	StandardName   = "standard"
	SpecialistName = "specialist"
)

// DefaultSpecialistMultiplier is the surcharge applied by the specialist
// rule unless overridden through configuration.
var DefaultSpecialistMultiplier = decimal.NewFromFloat(1.25)

type multiplier struct {
	name   string
	factor decimal.Decimal
}

func (m multiplier) Price(base decimal.Decimal) decimal.Decimal {
	return base.Mul(m.factor)
}

func (m multiplier) Name() string {
	return m.name
}

// Standard charges the base price unchanged.
func Standard() Strategy {
	return multiplier{name: StandardName, factor: decimal.NewFromInt(1)}
}

// Specialist applies the default specialist surcharge.
func Specialist() Strategy {
	return multiplier{name: SpecialistName, factor: DefaultSpecialistMultiplier}
}

// SpecialistWith applies an explicit surcharge factor, typically sourced
// from configuration.
func SpecialistWith(factor decimal.Decimal) Strategy {
	return multiplier{name: SpecialistName, factor: factor}
}

// Multiplier builds a named strategy with an explicit factor.
func Multiplier(name string, factor decimal.Decimal) Strategy {
	return multiplier{name: name, factor: factor}
}
