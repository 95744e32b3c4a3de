package pricing

import (
	"math"
	"testing"

	calcerrors "fincalc/internal/errors"
)

func TestBreakevenCallQuadratic(t *testing.T) {
	in := BreakevenInputs{
		StockPrice: 100,
		Delta:      0.40,
		Gamma:      0.05,
		Theta:      -0.05,
		Vega:       0.10,
		SpreadCost: 0.10,
		DaysToHold: 9,
		Type:       Call,
	}

	res, err := Breakeven(in, -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// headwind = -0.05*9 + 0 - 0.10 = -0.55
	// x = (-0.4 + sqrt(0.16 + 2*0.05*0.55)) / 0.05
	if math.Abs(res.Headwind-(-0.55)) > 1e-9 {
		t.Errorf("headwind = %v, want -0.55", res.Headwind)
	}
	if math.Abs(res.RequiredMove-1.2736185) > 1e-4 {
		t.Errorf("required move = %v, want 1.2736", res.RequiredMove)
	}
	if math.Abs(res.TargetPrice-101.2736185) > 1e-4 {
		t.Errorf("target price = %v, want 101.2736", res.TargetPrice)
	}
	if math.Abs(res.PercentMove-1.2736185) > 1e-4 {
		t.Errorf("percent move = %v, want 1.2736", res.PercentMove)
	}
	if len(res.Curve) != in.DaysToHold+DefaultCurveExtraDays {
		t.Errorf("curve length = %d, want %d", len(res.Curve), in.DaysToHold+DefaultCurveExtraDays)
	}
}

func TestBreakevenPutMirrorsCall(t *testing.T) {
	in := BreakevenInputs{
		StockPrice: 100,
		Delta:      -0.40,
		Gamma:      0.05,
		Theta:      -0.05,
		Vega:       0.10,
		SpreadCost: 0.10,
		DaysToHold: 9,
		Type:       Put,
	}

	res, err := Breakeven(in, -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(res.RequiredMove-(-1.2736185)) > 1e-4 {
		t.Errorf("required move = %v, want -1.2736", res.RequiredMove)
	}
	if res.TargetPrice >= in.StockPrice {
		t.Errorf("put target price %v should be below spot", res.TargetPrice)
	}
}

func TestBreakevenLinearWhenGammaVanishes(t *testing.T) {
	in := BreakevenInputs{
		StockPrice: 50,
		Delta:      0.5,
		Gamma:      0,
		Theta:      -0.1,
		DaysToHold: 5,
		Type:       Call,
	}

	res, err := Breakeven(in, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// headwind = -0.5, x = 0.5/0.5 = 1 exactly
	if res.RequiredMove != 1.0 {
		t.Errorf("required move = %v, want exactly 1.0", res.RequiredMove)
	}
	if len(res.Curve) != 5 {
		t.Errorf("curve length = %d, want 5", len(res.Curve))
	}
}

func TestBreakevenUnreachable(t *testing.T) {
	t.Run("zero delta and gamma", func(t *testing.T) {
		in := BreakevenInputs{
			StockPrice: 100,
			Theta:      -0.05,
			DaysToHold: 10,
			Type:       Call,
		}
		_, err := Breakeven(in, -1)
		if !calcerrors.Is(err, calcerrors.ErrUnreachable) {
			t.Errorf("expected ErrUnreachable, got %v", err)
		}
	})

	t.Run("negative discriminant", func(t *testing.T) {
		// A large IV headwind swamps what delta and gamma can recover.
		in := BreakevenInputs{
			StockPrice:  100,
			Delta:       0.10,
			Gamma:       0.05,
			Vega:        1,
			IVChangePts: 10,
			DaysToHold:  5,
			Type:        Call,
		}
		_, err := Breakeven(in, -1)
		if !calcerrors.Is(err, calcerrors.ErrUnreachable) {
			t.Errorf("expected ErrUnreachable, got %v", err)
		}
	})
}

func TestBreakevenCurveHasGaps(t *testing.T) {
	// headwind(d) = -0.5d + 10, so early days are unsolvable while the
	// holding day itself is fine. Days 1..19 must come back as gaps.
	in := BreakevenInputs{
		StockPrice:  100,
		Delta:       0.10,
		Gamma:       0.05,
		Theta:       -0.5,
		Vega:        1,
		IVChangePts: 10,
		DaysToHold:  25,
		Type:        Call,
	}

	res, err := Breakeven(in, -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Curve) != 45 {
		t.Fatalf("curve length = %d, want 45", len(res.Curve))
	}
	for _, p := range res.Curve {
		solvable := p.Day >= 20
		if p.OK != solvable {
			t.Errorf("day %d: OK = %v, want %v", p.Day, p.OK, solvable)
		}
		if !p.OK && p.PercentMove != 0 {
			t.Errorf("day %d: gap should carry a zero move, got %v", p.Day, p.PercentMove)
		}
	}
}

func TestBreakevenInvalidInputs(t *testing.T) {
	valid := BreakevenInputs{
		StockPrice: 100,
		Delta:      0.4,
		Gamma:      0.05,
		Theta:      -0.05,
		DaysToHold: 9,
		Type:       Call,
	}

	testCases := []struct {
		name   string
		mutate func(*BreakevenInputs)
	}{
		{"zero stock price", func(in *BreakevenInputs) { in.StockPrice = 0 }},
		{"negative gamma", func(in *BreakevenInputs) { in.Gamma = -0.01 }},
		{"positive theta", func(in *BreakevenInputs) { in.Theta = 0.01 }},
		{"negative spread", func(in *BreakevenInputs) { in.SpreadCost = -1 }},
		{"zero holding days", func(in *BreakevenInputs) { in.DaysToHold = 0 }},
		{"bad type", func(in *BreakevenInputs) { in.Type = "straddle" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			_, err := Breakeven(in, -1)
			if !calcerrors.Is(err, calcerrors.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}
