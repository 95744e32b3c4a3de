package pricing

import "math"

// d1d2 returns the Black-Scholes intermediate terms for annualized
// time t, decimal rate r and decimal volatility v.
func d1d2(spot, strike, t, r, v float64) (float64, float64) {
	d1 := (math.Log(spot/strike) + (r+0.5*v*v)*t) / (v * math.Sqrt(t))
	d2 := d1 - v*math.Sqrt(t)
	return d1, d2
}

// bsPrice returns the Black-Scholes price for already-validated decimal
// inputs. Shared by the implied-volatility solver, which re-prices at
// many volatilities without re-deriving greeks.
func bsPrice(spot, strike, t, r, v float64, typ OptionType) float64 {
	d1, d2 := d1d2(spot, strike, t, r, v)
	discount := math.Exp(-r * t)
	if typ == Call {
		return spot*normCDF(d1) - strike*discount*normCDF(d2)
	}
	return strike*discount*normCDF(-d2) - spot*normCDF(-d1)
}

// PriceEuropean prices a European option with the Black-Scholes-Merton
// closed form and returns the five standard greeks rescaled to display
// units (theta per day, vega per vol point, rho per rate point).
func PriceEuropean(c Contract) (Result, error) {
	if err := c.validate(true); err != nil {
		return Result{}, err
	}

	t := c.Years()
	r := c.Rate()
	v := c.Vol()
	d1, d2 := d1d2(c.Spot, c.Strike, t, r, v)
	discount := math.Exp(-r * t)

	res := Result{Price: bsPrice(c.Spot, c.Strike, t, r, v, c.Type)}

	// Gamma and vega are identical for calls and puts.
	res.Greeks.Gamma = normPDF(d1) / (c.Spot * v * math.Sqrt(t))
	res.Greeks.Vega = c.Spot * normPDF(d1) * math.Sqrt(t) / 100

	decay := -(c.Spot * normPDF(d1) * v) / (2 * math.Sqrt(t))
	if c.Type == Call {
		res.Greeks.Delta = normCDF(d1)
		res.Greeks.Theta = (decay - r*c.Strike*discount*normCDF(d2)) / DaysPerYear
		res.Greeks.Rho = c.Strike * t * discount * normCDF(d2) / 100
	} else {
		res.Greeks.Delta = normCDF(d1) - 1
		res.Greeks.Theta = (decay + r*c.Strike*discount*normCDF(-d2)) / DaysPerYear
		res.Greeks.Rho = -c.Strike * t * discount * normCDF(-d2) / 100
	}

	return res, nil
}
