package pricing

import "math"

// normCDF is the cumulative distribution function of the standard normal
// distribution: P(X <= x) = 0.5 * (1 + erf(x / sqrt(2))).
//
// math.Erf is correctly rounded to within ~1 ulp, so the CDF is accurate
// to well under 1e-9 for |x| < 10. Test fixtures depend on this; a 5-term
// Abramowitz-Stegun polynomial (|error| <= 7.5e-8) would not hold them.
func normCDF(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}

// normPDF is the density of the standard normal distribution:
// f(x) = exp(-x^2/2) / sqrt(2*pi).
func normPDF(x float64) float64 {
	return math.Exp(-0.5*x*x) / math.Sqrt(2*math.Pi)
}
