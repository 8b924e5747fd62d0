package payments

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// minorUnitPlaces is the number of decimal places in the smallest currency unit.
const minorUnitPlaces = 2

// FeeSchedule describes the processing fee taken from every tip and the allowed tip range.
type FeeSchedule struct {
	Percent   decimal.Decimal
	Fixed     decimal.Decimal
	MinAmount decimal.Decimal
	MaxAmount decimal.Decimal
}

// Breakdown is the split of a gross tip, in minor units.
type Breakdown struct {
	Amount        int64
	ProcessingFee int64
	NetAmount     int64
}

// DefaultFeeSchedule returns 2.9% + 0.30 on tips between 0.50 and 100.00.
func DefaultFeeSchedule() FeeSchedule {
	return FeeSchedule{
		Percent:   decimal.RequireFromString("0.029"),
		Fixed:     decimal.RequireFromString("0.30"),
		MinAmount: decimal.RequireFromString("0.50"),
		MaxAmount: decimal.RequireFromString("100.00"),
	}
}

// Validate checks that the schedule itself is usable.
func (f FeeSchedule) Validate() error {
	if f.MinAmount.IsNegative() || f.MaxAmount.LessThan(f.MinAmount) {
		return fmt.Errorf("invalid tip range [%s, %s]", f.MinAmount, f.MaxAmount)
	}
	if f.Percent.IsNegative() || f.Fixed.IsNegative() {
		return fmt.Errorf("fee components must not be negative")
	}
	// The fee on the smallest tip must leave something for the performer.
	if !f.Fee(f.MinAmount).LessThan(f.MinAmount) {
		return fmt.Errorf("fee on minimum tip %s consumes the whole amount", f.MinAmount)
	}
	return nil
}

// Fee returns round(amount x Percent + Fixed, 2), rounding half away from zero.
func (f FeeSchedule) Fee(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(f.Percent).Add(f.Fixed).Round(minorUnitPlaces)
}

// Breakdown validates a gross tip amount and splits it into fee and net.
func (f FeeSchedule) Breakdown(amount decimal.Decimal) (Breakdown, error) {
	if !amount.Equal(amount.Round(minorUnitPlaces)) {
		return Breakdown{}, newFieldError("amount", "Must not have more than 2 decimal places")
	}
	if amount.LessThan(f.MinAmount) || amount.GreaterThan(f.MaxAmount) {
		return Breakdown{}, newFieldError("amount", fmt.Sprintf("Must be between %s and %s",
			f.MinAmount.StringFixed(minorUnitPlaces), f.MaxAmount.StringFixed(minorUnitPlaces)))
	}

	fee := f.Fee(amount)
	return Breakdown{
		Amount:        ToMinorUnits(amount),
		ProcessingFee: ToMinorUnits(fee),
		NetAmount:     ToMinorUnits(amount.Sub(fee)),
	}, nil
}

// ToMinorUnits converts a currency amount with at most two decimals into cents.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(minorUnitPlaces).IntPart()
}

// FromMinorUnits converts cents back into a currency amount.
func FromMinorUnits(units int64) decimal.Decimal {
	return decimal.New(units, -minorUnitPlaces)
}
