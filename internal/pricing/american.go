package pricing

import (
	"math"

	calcerrors "fincalc/internal/errors"
)

// DefaultBinomialSteps is the default lattice depth for American pricing.
const DefaultBinomialSteps = 100

// Relative bump sizes for the finite-difference greeks.
const spotBump = 0.01 // +/- 1% of spot for delta and gamma

// crrPrice runs backward induction over a Cox-Ross-Rubinstein binomial
// tree for already-validated inputs and returns the root value.
func crrPrice(c Contract, steps int) float64 {
	t := c.Years()
	r := c.Rate()
	v := c.Vol()

	dt := t / float64(steps)
	u := math.Exp(v * math.Sqrt(dt))
	d := 1 / u
	growth := math.Exp(r * dt)
	p := (growth - d) / (u - d)
	discount := 1 / growth

	// Terminal payoffs at the steps+1 leaves, highest spot first.
	values := make([]float64, steps+1)
	for i := 0; i <= steps; i++ {
		leaf := c.Spot * math.Pow(u, float64(steps-i)) * math.Pow(d, float64(i))
		values[i] = c.Intrinsic(leaf)
	}

	// Walk back to the root; the early-exercise max at every interior node
	// is what distinguishes American from European pricing.
	for step := steps - 1; step >= 0; step-- {
		for i := 0; i <= step; i++ {
			continuation := discount * (p*values[i] + (1-p)*values[i+1])
			node := c.Spot * math.Pow(u, float64(step-i)) * math.Pow(d, float64(i))
			values[i] = math.Max(continuation, c.Intrinsic(node))
		}
	}
	return values[0]
}

// PriceAmerican prices an American option on a CRR binomial lattice with
// the given step count (DefaultBinomialSteps when steps <= 0).
//
// Greeks have no closed form on the lattice and are approximated by
// re-pricing with bumped inputs: spot +/-1% (delta, gamma), one day less
// to expiry (theta), volatility +1 point (vega) and rate +1 point (rho).
// Expect roughly six full tree evaluations per call.
//
// Negative rates are accepted; the recurrence handles them.
func PriceAmerican(c Contract, steps int) (Result, error) {
	if err := c.validate(false); err != nil {
		return Result{}, err
	}
	if steps <= 0 {
		steps = DefaultBinomialSteps
	}

	price := crrPrice(c, steps)
	res := Result{Price: price}

	up, down := c, c
	up.Spot = c.Spot * (1 + spotBump)
	down.Spot = c.Spot * (1 - spotBump)
	priceUp := crrPrice(up, steps)
	priceDown := crrPrice(down, steps)

	h := spotBump * c.Spot
	res.Greeks.Delta = (priceUp - priceDown) / (2 * h)
	res.Greeks.Gamma = (priceUp - 2*price + priceDown) / (h * h)

	if c.Days > 1 {
		earlier := c
		earlier.Days = c.Days - 1
		res.Greeks.Theta = crrPrice(earlier, steps) - price
	}

	bumpedVol := c
	bumpedVol.VolPct = c.VolPct + 1
	res.Greeks.Vega = crrPrice(bumpedVol, steps) - price

	bumpedRate := c
	bumpedRate.RatePct = c.RatePct + 1
	res.Greeks.Rho = crrPrice(bumpedRate, steps) - price

	return res, nil
}

// Price dispatches on the contract's exercise style.
func Price(c Contract, steps int) (Result, error) {
	switch c.Style {
	case European:
		return PriceEuropean(c)
	case American:
		return PriceAmerican(c, steps)
	default:
		return Result{}, calcerrors.NewValidationError("style", string(c.Style), "must be european or american")
	}
}
