package booking

import "errors"

var ErrNegativeRate = errors.New("nightly rate cannot be negative")

// DefaultServiceFeePercent is the flat surcharge applied to every booking
// subtotal. Overridable via PricingConfig; there is no per-room or
// seasonal fee policy.
const DefaultServiceFeePercent = 10

// Quote is a deterministic price breakdown for a stay. All amounts are
// integer minor currency units.
type Quote struct {
	Nights          int
	SubtotalCents   int64
	ServiceFeeCents int64
	TotalCents      int64
}

type PriceCalculator interface {
	Quote(nightlyRateCents int64, period StayPeriod) (Quote, error)
}

type StandardPriceCalculator struct {
	serviceFeePercent int64
}

func NewStandardPriceCalculator(serviceFeePercent int) *StandardPriceCalculator {
	if serviceFeePercent < 0 {
		serviceFeePercent = DefaultServiceFeePercent
	}
	return &StandardPriceCalculator{serviceFeePercent: int64(serviceFeePercent)}
}

func (c *StandardPriceCalculator) Quote(nightlyRateCents int64, period StayPeriod) (Quote, error) {
	if nightlyRateCents < 0 {
		return Quote{}, ErrNegativeRate
	}

	nights := int64(period.Nights())
	subtotal, err := NewMoney(nights * nightlyRateCents)
	if err != nil {
		return Quote{}, err
	}
	fee, err := NewMoney(subtotal.Cents() * c.serviceFeePercent / 100)
	if err != nil {
		return Quote{}, err
	}

	return Quote{
		Nights:          int(nights),
		SubtotalCents:   subtotal.Cents(),
		ServiceFeeCents: fee.Cents(),
		TotalCents:      subtotal.Add(fee).Cents(),
	}, nil
}
