package calculators

import (
	calcerrors "fincalc/internal/errors"
)

// ExpectedMoveResult holds the straddle-implied price swing.
type ExpectedMoveResult struct {
	ExpectedMove    float64 `json:"expected_move"`
	ExpectedPercent float64 `json:"expected_percentage"` // decimal, 0.07 = 7%
	LowerBound      float64 `json:"lower_bound"`
	UpperBound      float64 `json:"upper_bound"`
}

// ExpectedMove derives the market's expected price swing from the cost of
// an at-the-money straddle: the call premium plus the put premium, up or
// down from the current price.
func ExpectedMove(stockPrice, callPrice, putPrice float64) (ExpectedMoveResult, error) {
	switch {
	case stockPrice <= 0:
		return ExpectedMoveResult{}, calcerrors.NewValidationError("stock_price", stockPrice, "must be positive")
	case callPrice < 0:
		return ExpectedMoveResult{}, calcerrors.NewValidationError("call_price", callPrice, "must not be negative")
	case putPrice < 0:
		return ExpectedMoveResult{}, calcerrors.NewValidationError("put_price", putPrice, "must not be negative")
	}

	move := callPrice + putPrice
	return ExpectedMoveResult{
		ExpectedMove:    move,
		ExpectedPercent: move / stockPrice,
		LowerBound:      stockPrice - move,
		UpperBound:      stockPrice + move,
	}, nil
}

// SellVsExerciseResult compares the two ways of closing an ITM call.
type SellVsExerciseResult struct {
	ProfitFromSelling    float64 `json:"profit_from_selling"`
	ProfitFromExercising float64 `json:"profit_from_exercising"`
	ExtrinsicValue       float64 `json:"extrinsic_value"`
}

// SellVsExercise compares selling an in-the-money call against exercising
// it. Exercising captures only intrinsic value; selling also captures the
// remaining extrinsic (time and volatility) value.
func SellVsExercise(stockPrice, strikePrice, premium float64) (SellVsExerciseResult, error) {
	switch {
	case stockPrice <= 0:
		return SellVsExerciseResult{}, calcerrors.NewValidationError("stock_price", stockPrice, "must be positive")
	case strikePrice <= 0:
		return SellVsExerciseResult{}, calcerrors.NewValidationError("strike_price", strikePrice, "must be positive")
	case premium < 0:
		return SellVsExerciseResult{}, calcerrors.NewValidationError("premium", premium, "must not be negative")
	case stockPrice <= strikePrice:
		return SellVsExerciseResult{}, calcerrors.NewValidationError("stock_price", stockPrice, "comparison requires an in-the-money call (stock above strike)")
	}

	intrinsic := stockPrice - strikePrice
	return SellVsExerciseResult{
		ProfitFromSelling:    premium,
		ProfitFromExercising: intrinsic,
		ExtrinsicValue:       premium - intrinsic,
	}, nil
}
