package calculators

import (
	"math"
	"testing"

	calcerrors "fincalc/internal/errors"
)

func TestExpectedMove(t *testing.T) {
	res, err := ExpectedMove(150, 5, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.ExpectedMove != 10 {
		t.Errorf("expected move = %v, want 10", res.ExpectedMove)
	}
	if math.Abs(res.ExpectedPercent-10.0/150) > 1e-9 {
		t.Errorf("expected percent = %v, want %v", res.ExpectedPercent, 10.0/150)
	}
	if res.LowerBound != 140 || res.UpperBound != 160 {
		t.Errorf("bounds = [%v, %v], want [140, 160]", res.LowerBound, res.UpperBound)
	}
}

func TestExpectedMoveInvalidInputs(t *testing.T) {
	if _, err := ExpectedMove(0, 5, 5); !calcerrors.Is(err, calcerrors.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for zero stock price, got %v", err)
	}
	if _, err := ExpectedMove(150, -1, 5); !calcerrors.Is(err, calcerrors.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for negative call price, got %v", err)
	}
	if _, err := ExpectedMove(150, 5, -1); !calcerrors.Is(err, calcerrors.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for negative put price, got %v", err)
	}
}

func TestSellVsExercise(t *testing.T) {
	res, err := SellVsExercise(165, 155, 10.50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.ProfitFromSelling != 10.50 {
		t.Errorf("profit from selling = %v, want 10.50", res.ProfitFromSelling)
	}
	if res.ProfitFromExercising != 10 {
		t.Errorf("profit from exercising = %v, want 10", res.ProfitFromExercising)
	}
	if math.Abs(res.ExtrinsicValue-0.50) > 1e-9 {
		t.Errorf("extrinsic value = %v, want 0.50", res.ExtrinsicValue)
	}
}

func TestSellVsExerciseRequiresITM(t *testing.T) {
	if _, err := SellVsExercise(150, 155, 2); !calcerrors.Is(err, calcerrors.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for an OTM call, got %v", err)
	}
	if _, err := SellVsExercise(155, 155, 2); !calcerrors.Is(err, calcerrors.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput at the strike, got %v", err)
	}
}
