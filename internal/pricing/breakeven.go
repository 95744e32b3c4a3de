package pricing

import (
	"math"

	calcerrors "fincalc/internal/errors"
)

// DefaultCurveExtraDays extends the breakeven curve past the holding
// period so the decay trend after the planned exit stays visible.
const DefaultCurveExtraDays = 20

// gammaEpsilon separates the quadratic path from the degenerate linear
// one; below it the x^2 term is numerically meaningless.
const gammaEpsilon = 1e-9

// BreakevenInputs describes a held option position and its cost
// headwinds. Theta is per calendar day and must not be positive for a
// long option; IVChangePts is the expected implied-volatility change in
// points over the holding period.
type BreakevenInputs struct {
	StockPrice  float64    `json:"stock_price"`
	Delta       float64    `json:"delta"`
	Gamma       float64    `json:"gamma"`
	Theta       float64    `json:"theta"`
	Vega        float64    `json:"vega"`
	SpreadCost  float64    `json:"spread_cost"`
	IVChangePts float64    `json:"iv_change_pts"`
	DaysToHold  int        `json:"days_to_hold"`
	Type        OptionType `json:"type"`
}

func (in BreakevenInputs) validate() error {
	switch {
	case in.StockPrice <= 0:
		return calcerrors.NewValidationError("stock_price", in.StockPrice, "must be positive")
	case in.Gamma < 0:
		return calcerrors.NewValidationError("gamma", in.Gamma, "must not be negative for a long option")
	case in.Theta > 0:
		return calcerrors.NewValidationError("theta", in.Theta, "must not be positive for a long option")
	case in.SpreadCost < 0:
		return calcerrors.NewValidationError("spread_cost", in.SpreadCost, "must not be negative")
	case in.DaysToHold < 1:
		return calcerrors.NewValidationError("days_to_hold", in.DaysToHold, "must be at least 1")
	case !in.Type.Valid():
		return calcerrors.NewValidationError("type", string(in.Type), "must be call or put")
	}
	return nil
}

// headwind is the fixed P&L drag over d days of holding: theta decay plus
// the vega cost of the expected IV change minus the bid/ask spread paid.
func (in BreakevenInputs) headwind(days float64) float64 {
	return in.Theta*days + in.Vega*in.IVChangePts - in.SpreadCost
}

// CurvePoint is one day of the required-move curve. OK is false where the
// equation had no solution that day; the presentation layer renders those
// as gaps, never as zero.
type CurvePoint struct {
	Day         int     `json:"day"`
	PercentMove float64 `json:"percent_move"`
	OK          bool    `json:"ok"`
}

// BreakevenResult reports the move needed to offset the cost headwind.
type BreakevenResult struct {
	Headwind     float64      `json:"headwind"`
	RequiredMove float64      `json:"required_move"`
	TargetPrice  float64      `json:"target_price"`
	PercentMove  float64      `json:"percent_move"`
	Curve        []CurvePoint `json:"curve"`
}

// Breakeven solves for the minimum underlying move whose delta-gamma P&L
// approximation offsets the position's cost headwind:
//
//	0.5*gamma*x^2 + delta*x + headwind = 0
//
// For a call the nearest non-negative root is preferred, for a put the
// nearest non-positive one; when no root lies on the profitable side the
// closest root on the other side is reported. ErrUnreachable is returned
// when the discriminant is negative, or in the degenerate linear case
// (gamma ~ 0) when delta is also zero.
//
// The curve holds the per-day solution for days 1..DaysToHold+extraDays,
// varying only the theta term (DefaultCurveExtraDays when extraDays < 0).
func Breakeven(in BreakevenInputs, extraDays int) (BreakevenResult, error) {
	if err := in.validate(); err != nil {
		return BreakevenResult{}, err
	}
	if extraDays < 0 {
		extraDays = DefaultCurveExtraDays
	}

	headwind := in.headwind(float64(in.DaysToHold))
	move, err := solveMove(in.Delta, in.Gamma, headwind, in.Type)
	if err != nil {
		return BreakevenResult{}, err
	}

	res := BreakevenResult{
		Headwind:     headwind,
		RequiredMove: move,
		TargetPrice:  in.StockPrice + move,
		PercentMove:  move / in.StockPrice * 100,
		Curve:        make([]CurvePoint, 0, in.DaysToHold+extraDays),
	}

	for day := 1; day <= in.DaysToHold+extraDays; day++ {
		point := CurvePoint{Day: day}
		if m, err := solveMove(in.Delta, in.Gamma, in.headwind(float64(day)), in.Type); err == nil {
			point.PercentMove = m / in.StockPrice * 100
			point.OK = true
		}
		res.Curve = append(res.Curve, point)
	}

	return res, nil
}

// solveMove solves 0.5*gamma*x^2 + delta*x + headwind = 0 for the move x
// nearest to zero in the direction the position profits from.
func solveMove(delta, gamma, headwind float64, typ OptionType) (float64, error) {
	if math.Abs(gamma) < gammaEpsilon {
		if math.Abs(delta) < gammaEpsilon {
			return 0, calcerrors.Wrap(calcerrors.ErrUnreachable, "zero delta and zero gamma")
		}
		return -headwind / delta, nil
	}

	discriminant := delta*delta - 2*gamma*headwind
	if discriminant < 0 {
		return 0, calcerrors.Wrap(calcerrors.ErrUnreachable, "negative discriminant")
	}

	sqrtD := math.Sqrt(discriminant)
	root1 := (-delta + sqrtD) / gamma
	root2 := (-delta - sqrtD) / gamma

	if typ == Call {
		return pickNearest(root1, root2, true), nil
	}
	return pickNearest(root1, root2, false), nil
}

// pickNearest applies the root-selection policy: the smallest non-negative
// root for upside positions, the mirror for downside. When both roots sit
// on the wrong side, the one closest to zero is the fallback.
func pickNearest(a, b float64, upside bool) float64 {
	if !upside {
		// Mirror the problem so one policy covers both directions.
		return -pickNearest(-a, -b, true)
	}

	lo, hi := math.Min(a, b), math.Max(a, b)
	switch {
	case lo >= 0:
		return lo
	case hi >= 0:
		return hi
	default:
		return hi // both negative: the less-negative one
	}
}
