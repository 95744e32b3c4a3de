// Package pricing implements option pricing models and the numerical
// solvers built on top of them: Black-Scholes European pricing with
// closed-form greeks, Cox-Ross-Rubinstein binomial American pricing with
// finite-difference greeks, implied-volatility root finding and the
// delta-gamma breakeven-move solver.
//
// All inputs use the conventions of the surrounding calculators: time to
// expiry is supplied in calendar days, rates and volatilities as
// percentages. Every function validates before computing and returns a
// tagged error from fincalc/internal/errors for expected domain failures.
package pricing

import (
	calcerrors "fincalc/internal/errors"
)

// OptionType identifies the option side.
type OptionType string

// Option types
const (
	Call OptionType = "call"
	Put  OptionType = "put"
)

// Valid reports whether the option type is call or put.
func (t OptionType) Valid() bool {
	return t == Call || t == Put
}

// ExerciseStyle identifies when the option may be exercised.
type ExerciseStyle string

// Exercise styles
const (
	European ExerciseStyle = "european"
	American ExerciseStyle = "american"
)

// Valid reports whether the exercise style is european or american.
func (s ExerciseStyle) Valid() bool {
	return s == European || s == American
}

// DaysPerYear converts day counts to year fractions.
const DaysPerYear = 365.0

// Contract describes a single option contract to price.
type Contract struct {
	Spot    float64       // underlying price, > 0
	Strike  float64       // strike price, > 0
	Days    float64       // calendar days to expiry, > 0
	RatePct float64       // annual risk-free rate in percent
	VolPct  float64       // annual volatility in percent, > 0
	Type    OptionType    // call or put
	Style   ExerciseStyle // european or american
}

// Years returns the time to expiry as a year fraction.
func (c Contract) Years() float64 {
	return c.Days / DaysPerYear
}

// Rate returns the risk-free rate as a decimal.
func (c Contract) Rate() float64 {
	return c.RatePct / 100
}

// Vol returns the volatility as a decimal.
func (c Contract) Vol() float64 {
	return c.VolPct / 100
}

// Intrinsic returns the immediate-exercise value at the given spot.
func (c Contract) Intrinsic(spot float64) float64 {
	if c.Type == Call {
		if spot > c.Strike {
			return spot - c.Strike
		}
		return 0
	}
	if c.Strike > spot {
		return c.Strike - spot
	}
	return 0
}

// validate checks the shared contract preconditions. When rejectNegativeRate
// is false, negative rates pass through to the pricer (the binomial
// recurrence tolerates them).
func (c Contract) validate(rejectNegativeRate bool) error {
	switch {
	case c.Spot <= 0:
		return calcerrors.NewValidationError("spot", c.Spot, "must be positive")
	case c.Strike <= 0:
		return calcerrors.NewValidationError("strike", c.Strike, "must be positive")
	case c.Days <= 0:
		return calcerrors.NewValidationError("days", c.Days, "must be positive")
	case c.VolPct <= 0:
		return calcerrors.NewValidationError("volatility", c.VolPct, "must be positive")
	case rejectNegativeRate && c.RatePct < 0:
		return calcerrors.NewValidationError("rate", c.RatePct, "must not be negative")
	case !c.Type.Valid():
		return calcerrors.NewValidationError("type", string(c.Type), "must be call or put")
	}
	return nil
}

// Greeks holds option sensitivities in display units: theta per calendar
// day, vega per one volatility point, rho per one rate point.
type Greeks struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Vega  float64 `json:"vega"`
	Rho   float64 `json:"rho"`
}

// Result is the outcome of a pricing call.
type Result struct {
	Price  float64 `json:"price"`
	Greeks Greeks  `json:"greeks"`
}
