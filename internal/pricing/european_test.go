package pricing

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	calcerrors "fincalc/internal/errors"
)

func TestPriceEuropeanATMCall(t *testing.T) {
	result, err := PriceEuropean(Contract{
		Spot:    100,
		Strike:  100,
		Days:    30,
		RatePct: 1,
		VolPct:  20,
		Type:    Call,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(result.Price-2.32) > 0.05 {
		t.Errorf("ATM call price = %.4f, want 2.32 +/- 0.05", result.Price)
	}
	if math.Abs(result.Greeks.Delta-0.52) > 0.01 {
		t.Errorf("ATM call delta = %.4f, want 0.52 +/- 0.01", result.Greeks.Delta)
	}
	if result.Greeks.Gamma <= 0 {
		t.Errorf("gamma = %.6f, want positive", result.Greeks.Gamma)
	}
	if result.Greeks.Theta >= 0 {
		t.Errorf("theta = %.6f, want negative for a long ATM call", result.Greeks.Theta)
	}
	if result.Greeks.Vega <= 0 {
		t.Errorf("vega = %.6f, want positive", result.Greeks.Vega)
	}
}

// The ATM delta must come out of the same d1 formula as every other
// moneyness; there is no special-cased branch to drift away from it.
func TestPriceEuropeanATMDeltaMatchesD1(t *testing.T) {
	c := Contract{Spot: 100, Strike: 100, Days: 30, RatePct: 1, VolPct: 20, Type: Call}
	result, err := PriceEuropean(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	d1, _ := d1d2(c.Spot, c.Strike, c.Years(), c.Rate(), c.Vol())
	if math.Abs(result.Greeks.Delta-normCDF(d1)) > 1e-12 {
		t.Errorf("delta = %.12f, want normCDF(d1) = %.12f", result.Greeks.Delta, normCDF(d1))
	}
}

func TestPriceEuropeanInvalidInputs(t *testing.T) {
	valid := Contract{Spot: 100, Strike: 100, Days: 30, RatePct: 1, VolPct: 20, Type: Call}

	testCases := []struct {
		name   string
		mutate func(*Contract)
	}{
		{"zero spot", func(c *Contract) { c.Spot = 0 }},
		{"negative spot", func(c *Contract) { c.Spot = -10 }},
		{"zero strike", func(c *Contract) { c.Strike = 0 }},
		{"zero days", func(c *Contract) { c.Days = 0 }},
		{"negative days", func(c *Contract) { c.Days = -5 }},
		{"zero vol", func(c *Contract) { c.VolPct = 0 }},
		{"negative rate", func(c *Contract) { c.RatePct = -1 }},
		{"bad type", func(c *Contract) { c.Type = "straddle" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid
			tc.mutate(&c)
			_, err := PriceEuropean(c)
			if !calcerrors.Is(err, calcerrors.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

// Put-call parity: call - put = S - K*exp(-rT) for any valid contract.
func TestPropertyPutCallParity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("call - put matches S - K*exp(-rT)", prop.ForAll(
		func(spot, strike, days, rate, vol float64) bool {
			call := Contract{Spot: spot, Strike: strike, Days: days, RatePct: rate, VolPct: vol, Type: Call}
			put := call
			put.Type = Put

			callRes, err := PriceEuropean(call)
			if err != nil {
				return false
			}
			putRes, err := PriceEuropean(put)
			if err != nil {
				return false
			}

			forward := spot - strike*math.Exp(-call.Rate()*call.Years())
			diff := callRes.Price - putRes.Price
			if math.Abs(diff-forward) > 1e-6*spot {
				t.Logf("parity violated: S=%v K=%v days=%v r=%v vol=%v diff=%v forward=%v",
					spot, strike, days, rate, vol, diff, forward)
				return false
			}
			return true
		},
		gen.Float64Range(10, 500),
		gen.Float64Range(10, 500),
		gen.Float64Range(1, 730),
		gen.Float64Range(0, 10),
		gen.Float64Range(1, 150),
	))

	properties.TestingRun(t)
}

// Price is non-decreasing in volatility, and call price is non-decreasing
// in time to expiry.
func TestPropertyEuropeanMonotonicity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("price non-decreasing in volatility", prop.ForAll(
		func(spot, strike, days, rate, vol, bump float64, isCall bool) bool {
			c := Contract{Spot: spot, Strike: strike, Days: days, RatePct: rate, VolPct: vol, Type: Call}
			if !isCall {
				c.Type = Put
			}
			bumped := c
			bumped.VolPct = vol + bump

			base, err := PriceEuropean(c)
			if err != nil {
				return false
			}
			more, err := PriceEuropean(bumped)
			if err != nil {
				return false
			}
			return more.Price >= base.Price-1e-9
		},
		gen.Float64Range(10, 500),
		gen.Float64Range(10, 500),
		gen.Float64Range(1, 730),
		gen.Float64Range(0, 10),
		gen.Float64Range(1, 100),
		gen.Float64Range(0, 50),
		gen.Bool(),
	))

	properties.Property("call price non-decreasing in time", prop.ForAll(
		func(spot, strike, days, rate, vol, extraDays float64) bool {
			c := Contract{Spot: spot, Strike: strike, Days: days, RatePct: rate, VolPct: vol, Type: Call}
			later := c
			later.Days = days + extraDays

			base, err := PriceEuropean(c)
			if err != nil {
				return false
			}
			more, err := PriceEuropean(later)
			if err != nil {
				return false
			}
			return more.Price >= base.Price-1e-9
		},
		gen.Float64Range(10, 500),
		gen.Float64Range(10, 500),
		gen.Float64Range(1, 365),
		gen.Float64Range(0, 10),
		gen.Float64Range(1, 100),
		gen.Float64Range(0, 365),
	))

	properties.TestingRun(t)
}
