package pricing

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	calcerrors "fincalc/internal/errors"
)

func TestPriceAmericanCallNearEuropean(t *testing.T) {
	c := Contract{Spot: 100, Strike: 100, Days: 30, RatePct: 1, VolPct: 20, Type: Call}

	european, err := PriceEuropean(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	american, err := PriceAmerican(c, DefaultBinomialSteps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// An American call on a non-dividend stock is never exercised early,
	// so the prices match up to lattice discretization.
	if math.Abs(american.Price-european.Price) > 0.01 {
		t.Errorf("american = %.4f european = %.4f, want difference < 0.01", american.Price, european.Price)
	}
}

func TestPriceAmericanDeepITMPut(t *testing.T) {
	c := Contract{Spot: 60, Strike: 100, Days: 90, RatePct: 5, VolPct: 20, Type: Put}

	european, err := PriceEuropean(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	american, err := PriceAmerican(c, DefaultBinomialSteps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Early exercise is clearly valuable here; the American price must
	// sit at or above intrinsic while the European one sits below it.
	intrinsic := 40.0
	if american.Price < intrinsic {
		t.Errorf("american ITM put = %.4f, want >= intrinsic %.2f", american.Price, intrinsic)
	}
	if american.Price <= european.Price {
		t.Errorf("american = %.4f european = %.4f, want a positive early-exercise premium", american.Price, european.Price)
	}
}

func TestPriceAmericanGreeks(t *testing.T) {
	c := Contract{Spot: 100, Strike: 100, Days: 30, RatePct: 1, VolPct: 20, Type: Call}

	american, err := PriceAmerican(c, DefaultBinomialSteps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	european, err := PriceEuropean(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Finite-difference greeks on the lattice should land near the
	// closed-form values for a contract with no early-exercise premium.
	if math.Abs(american.Greeks.Delta-european.Greeks.Delta) > 0.02 {
		t.Errorf("delta = %.4f, want near %.4f", american.Greeks.Delta, european.Greeks.Delta)
	}
	if math.Abs(american.Greeks.Vega-european.Greeks.Vega) > 0.02 {
		t.Errorf("vega = %.4f, want near %.4f", american.Greeks.Vega, european.Greeks.Vega)
	}
	if american.Greeks.Theta >= 0 {
		t.Errorf("theta = %.6f, want negative", american.Greeks.Theta)
	}
}

func TestPriceAmericanNegativeRateAllowed(t *testing.T) {
	c := Contract{Spot: 100, Strike: 100, Days: 30, RatePct: -0.5, VolPct: 20, Type: Put}
	if _, err := PriceAmerican(c, DefaultBinomialSteps); err != nil {
		t.Errorf("negative rate should be accepted by the binomial pricer, got %v", err)
	}
}

func TestPriceAmericanInvalidInputs(t *testing.T) {
	valid := Contract{Spot: 100, Strike: 100, Days: 30, RatePct: 1, VolPct: 20, Type: Call}

	testCases := []struct {
		name   string
		mutate func(*Contract)
	}{
		{"zero spot", func(c *Contract) { c.Spot = 0 }},
		{"zero strike", func(c *Contract) { c.Strike = 0 }},
		{"zero days", func(c *Contract) { c.Days = 0 }},
		{"zero vol", func(c *Contract) { c.VolPct = 0 }},
		{"bad type", func(c *Contract) { c.Type = "butterfly" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid
			tc.mutate(&c)
			_, err := PriceAmerican(c, DefaultBinomialSteps)
			if !calcerrors.Is(err, calcerrors.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestPriceDispatchesOnStyle(t *testing.T) {
	c := Contract{Spot: 100, Strike: 100, Days: 30, RatePct: 1, VolPct: 20, Type: Call, Style: European}
	european, err := Price(c, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c.Style = American
	american, err := Price(c, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if american.Price == european.Price {
		t.Error("expected styles to route to different pricers")
	}

	c.Style = "bermudan"
	if _, err := Price(c, 0); !calcerrors.Is(err, calcerrors.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for unknown style, got %v", err)
	}
}

// American >= European for identical parameters, up to lattice
// discretization error.
func TestPropertyAmericanAtLeastEuropean(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("american price >= european price", prop.ForAll(
		func(spot, strikeRatio, days, rate, vol float64, isCall bool) bool {
			c := Contract{Spot: spot, Strike: spot * strikeRatio, Days: days, RatePct: rate, VolPct: vol, Type: Call}
			if !isCall {
				c.Type = Put
			}

			european, err := PriceEuropean(c)
			if err != nil {
				return false
			}
			american, err := PriceAmerican(c, DefaultBinomialSteps)
			if err != nil {
				return false
			}

			// The N=100 lattice oscillates around the closed form by up
			// to a few hundredths for large spot*vol*sqrt(T); 0.2% of
			// spot covers the worst case in these ranges.
			if american.Price < european.Price-0.002*spot {
				t.Logf("american %v < european %v: S=%v K=%v days=%v r=%v vol=%v call=%v",
					american.Price, european.Price, spot, c.Strike, days, rate, vol, isCall)
				return false
			}
			return true
		},
		gen.Float64Range(50, 200),
		gen.Float64Range(0.7, 1.3),
		gen.Float64Range(7, 365),
		gen.Float64Range(0, 8),
		gen.Float64Range(10, 80),
		gen.Bool(),
	))

	properties.Property("american price non-decreasing in volatility", prop.ForAll(
		func(spot, days, vol, bump float64) bool {
			c := Contract{Spot: spot, Strike: spot, Days: days, RatePct: 2, VolPct: vol, Type: Put}
			bumped := c
			bumped.VolPct = vol + bump

			base, err := PriceAmerican(c, DefaultBinomialSteps)
			if err != nil {
				return false
			}
			more, err := PriceAmerican(bumped, DefaultBinomialSteps)
			if err != nil {
				return false
			}
			return more.Price >= base.Price-1e-6
		},
		gen.Float64Range(50, 200),
		gen.Float64Range(7, 365),
		gen.Float64Range(10, 60),
		gen.Float64Range(1, 40),
	))

	properties.TestingRun(t)
}
