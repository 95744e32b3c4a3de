package calculators

import (
	calcerrors "fincalc/internal/errors"
)

// CapitalGainsResult holds the breakeven return after realizing a gain
// and the intermediate values leading to it.
type CapitalGainsResult struct {
	CapitalGain     float64 `json:"capital_gain"`
	TaxCost         float64 `json:"tax_cost"`
	PostTaxProceeds float64 `json:"post_tax_proceeds"`
	RequiredReturn  float64 `json:"required_return"` // decimal, 0.05 = 5%
}

// BreakevenReturn computes the return a replacement investment must earn
// just to recover the capital-gains tax paid on switching out of the
// current position: taxCost / postTaxProceeds.
func BreakevenReturn(currentValue, costBasis, taxRate float64) (CapitalGainsResult, error) {
	switch {
	case currentValue <= 0:
		return CapitalGainsResult{}, calcerrors.NewValidationError("current_value", currentValue, "must be positive")
	case costBasis <= 0:
		return CapitalGainsResult{}, calcerrors.NewValidationError("cost_basis", costBasis, "must be positive")
	case taxRate < 0 || taxRate >= 1:
		return CapitalGainsResult{}, calcerrors.NewValidationError("tax_rate", taxRate, "must be in [0, 1)")
	case currentValue < costBasis:
		return CapitalGainsResult{}, calcerrors.NewValidationError("current_value", currentValue, "below cost basis: position has a capital loss, not a gain")
	}

	gain := currentValue - costBasis
	taxCost := taxRate * gain
	proceeds := currentValue - taxCost
	if proceeds <= 0 {
		return CapitalGainsResult{}, calcerrors.Wrap(calcerrors.ErrInvalidInput, "post-tax proceeds are not positive")
	}

	return CapitalGainsResult{
		CapitalGain:     gain,
		TaxCost:         taxCost,
		PostTaxProceeds: proceeds,
		RequiredReturn:  taxCost / proceeds,
	}, nil
}

// TaxRatePoint is one sample of the required-return-vs-tax-rate sweep.
type TaxRatePoint struct {
	TaxRate        float64 `json:"tax_rate"`
	RequiredReturn float64 `json:"required_return"`
}

// TaxRateSweep samples the breakeven return across tax rates 0..50% in
// one-point steps, for charting how tax drag scales with the rate.
func TaxRateSweep(currentValue, costBasis float64) ([]TaxRatePoint, error) {
	points := make([]TaxRatePoint, 0, 51)
	for rate := 0; rate <= 50; rate++ {
		res, err := BreakevenReturn(currentValue, costBasis, float64(rate)/100)
		if err != nil {
			return nil, err
		}
		points = append(points, TaxRatePoint{
			TaxRate:        float64(rate) / 100,
			RequiredReturn: res.RequiredReturn,
		})
	}
	return points, nil
}
