package calculators

import (
	"math"

	calcerrors "fincalc/internal/errors"
)

// commissionBudget caps total commissions at this share of total capital.
const commissionBudget = 0.05

// DCAInputs describes a dollar-cost-averaging plan to size.
type DCAInputs struct {
	TotalCapital  float64 `json:"total_capital"`
	SharePrice    float64 `json:"share_price"`
	CommissionFee float64 `json:"commission_fee"`
	Volatility    float64 `json:"annualized_volatility"` // decimal, 0.60 = 60%
}

// DCAResult is the optimal trade sizing for a DCA plan.
type DCAResult struct {
	OptimalTrades   int     `json:"optimal_trades"`
	TriggerPercent  float64 `json:"trigger_percentage"`
	CapitalPerTrade float64 `json:"capital_per_trade"`
}

// OptimalDCA determines how many tranches to split the capital into and
// the price-drop trigger between buys. Two constraints bound the trade
// count: total commissions must stay within 5% of capital, and each
// tranche must afford at least one share plus its commission. The trigger
// spreads the annualized volatility across the trades as vol/sqrt(n).
func OptimalDCA(in DCAInputs) (DCAResult, error) {
	switch {
	case in.TotalCapital <= 0:
		return DCAResult{}, calcerrors.NewValidationError("total_capital", in.TotalCapital, "must be positive")
	case in.SharePrice <= 0:
		return DCAResult{}, calcerrors.NewValidationError("share_price", in.SharePrice, "must be positive")
	case in.CommissionFee < 0:
		return DCAResult{}, calcerrors.NewValidationError("commission_fee", in.CommissionFee, "must not be negative")
	case in.Volatility < 0:
		return DCAResult{}, calcerrors.NewValidationError("annualized_volatility", in.Volatility, "must not be negative")
	}

	var commissionCap int
	if in.CommissionFee > 0 {
		commissionCap = int(math.Floor(commissionBudget * in.TotalCapital / in.CommissionFee))
	} else {
		// Without commissions the cap is the share count the capital buys.
		commissionCap = int(math.Floor(in.TotalCapital / in.SharePrice))
	}

	viabilityCap := int(math.Floor(in.TotalCapital / (in.SharePrice + in.CommissionFee)))

	trades := commissionCap
	if viabilityCap < trades {
		trades = viabilityCap
	}
	if trades <= 0 {
		return DCAResult{}, calcerrors.Wrap(calcerrors.ErrInvalidInput, "capital too low for a single viable trade")
	}

	return DCAResult{
		OptimalTrades:   trades,
		TriggerPercent:  in.Volatility / math.Sqrt(float64(trades)),
		CapitalPerTrade: in.TotalCapital / float64(trades),
	}, nil
}
