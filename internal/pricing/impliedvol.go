package pricing

import (
	"math"

	calcerrors "fincalc/internal/errors"
)

// SolverConfig tunes the implied-volatility search. The bracket bounds
// and iteration cap are tuning constants, not correctness invariants;
// callers normally take them from configuration.
type SolverConfig struct {
	MinVol        float64 // lower bisection bound, decimal (0.001 = 0.1%)
	MaxVol        float64 // upper bisection bound, decimal (5.0 = 500%)
	MaxIterations int     // hard cap for both Newton and bisection
	Tolerance     float64 // absolute price tolerance
	BinomialSteps int     // lattice depth when solving American contracts
}

// DefaultSolverConfig returns the standard solver tuning.
func DefaultSolverConfig() SolverConfig {
	return SolverConfig{
		MinVol:        0.001,
		MaxVol:        5.0,
		MaxIterations: 100,
		Tolerance:     1e-5,
		BinomialSteps: DefaultBinomialSteps,
	}
}

// ImpliedVolatility finds the volatility (as a percentage) at which the
// contract's model price matches the observed market premium. The
// contract's VolPct field is ignored.
//
// European contracts are solved with Newton-Raphson using vega as the
// derivative, falling back to bisection when vega is numerically zero or
// Newton fails to settle within the iteration cap. American contracts use
// bisection directly, since the lattice has no cheap derivative. Both
// paths are capped at cfg.MaxIterations and return ErrNotConverged rather
// than a partially converged estimate.
func ImpliedVolatility(c Contract, premium float64, cfg SolverConfig) (float64, error) {
	probe := c
	probe.VolPct = 1 // placeholder so contract validation can run
	rejectNegativeRate := c.Style != American
	if err := probe.validate(rejectNegativeRate); err != nil {
		return 0, err
	}
	if !c.Style.Valid() {
		return 0, calcerrors.NewValidationError("style", string(c.Style), "must be european or american")
	}
	if premium <= 0 {
		return 0, calcerrors.NewValidationError("premium", premium, "must be positive")
	}

	priceAt := func(vol float64) float64 {
		trial := c
		trial.VolPct = vol * 100
		if c.Style == American {
			return crrPrice(trial, cfg.BinomialSteps)
		}
		return bsPrice(trial.Spot, trial.Strike, trial.Years(), trial.Rate(), vol, trial.Type)
	}

	if c.Style == European {
		if vol, ok := newtonVol(c, premium, cfg); ok {
			return vol * 100, nil
		}
	}

	vol, err := bisectVol(priceAt, premium, cfg)
	if err != nil {
		return 0, err
	}
	return vol * 100, nil
}

// newtonVol runs the Newton-Raphson iteration for the European closed
// form. The second return value is false when the method cannot be
// trusted (tiny vega deep in or out of the money, or no convergence).
func newtonVol(c Contract, premium float64, cfg SolverConfig) (float64, bool) {
	const minVega = 1e-8

	t := c.Years()
	r := c.Rate()
	vol := 0.5 // standard initial guess

	for i := 0; i < cfg.MaxIterations; i++ {
		diff := bsPrice(c.Spot, c.Strike, t, r, vol, c.Type) - premium
		if math.Abs(diff) < cfg.Tolerance {
			return vol, true
		}

		d1, _ := d1d2(c.Spot, c.Strike, t, r, vol)
		vega := c.Spot * normPDF(d1) * math.Sqrt(t)
		if math.Abs(vega) < minVega {
			return 0, false
		}

		vol -= diff / vega
		if vol < cfg.MinVol {
			vol = cfg.MinVol
		} else if vol > cfg.MaxVol {
			vol = cfg.MaxVol
		}
	}
	return 0, false
}

// bisectVol bisects on volatility. Model price is monotonic increasing in
// volatility for calls and puts alike, so a bracketed root is guaranteed
// to be found if the premium lies inside the bracket's price range.
func bisectVol(priceAt func(float64) float64, premium float64, cfg SolverConfig) (float64, error) {
	lo, hi := cfg.MinVol, cfg.MaxVol
	if premium < priceAt(lo) || premium > priceAt(hi) {
		return 0, calcerrors.Wrap(calcerrors.ErrNotConverged, "premium outside solvable volatility range")
	}

	for i := 0; i < cfg.MaxIterations; i++ {
		mid := (lo + hi) / 2
		diff := priceAt(mid) - premium
		if math.Abs(diff) < cfg.Tolerance {
			return mid, nil
		}
		if diff < 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	return 0, calcerrors.Wrapf(calcerrors.ErrNotConverged, "bisection exhausted %d iterations", cfg.MaxIterations)
}
