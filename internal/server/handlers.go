package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fincalc/internal/calculators"
	"fincalc/internal/pricing"
)

func (s *Server) solverConfig() pricing.SolverConfig {
	p := s.cfg.Pricing
	return pricing.SolverConfig{
		MinVol:        p.IVMin,
		MaxVol:        p.IVMax,
		MaxIterations: p.MaxIterations,
		Tolerance:     p.Tolerance,
		BinomialSteps: p.BinomialSteps,
	}
}

type contractRequest struct {
	Spot    float64 `json:"spot"`
	Strike  float64 `json:"strike"`
	Days    float64 `json:"days"`
	RatePct float64 `json:"rate_pct"`
	VolPct  float64 `json:"vol_pct"`
	Type    string  `json:"type"`
	Style   string  `json:"style"`
	Steps   int     `json:"steps"`
}

func (req contractRequest) contract() pricing.Contract {
	style := req.Style
	if style == "" {
		style = string(pricing.European)
	}
	return pricing.Contract{
		Spot:    req.Spot,
		Strike:  req.Strike,
		Days:    req.Days,
		RatePct: req.RatePct,
		VolPct:  req.VolPct,
		Type:    pricing.OptionType(req.Type),
		Style:   pricing.ExerciseStyle(style),
	}
}

// handlePrice prices a contract and reports greeks.
// POST /api/v1/options/price
func (s *Server) handlePrice(c *gin.Context) {
	var req contractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	start := time.Now()
	contract := req.contract()
	steps := req.Steps
	if steps == 0 {
		steps = s.cfg.Pricing.BinomialSteps
	}

	result, err := pricing.Price(contract, steps)
	s.finish("price", start, contract, result, err)
	if err != nil {
		calcError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"price": round4(result.Price),
		"greeks": gin.H{
			"delta": round4(result.Greeks.Delta),
			"gamma": round4(result.Greeks.Gamma),
			"theta": round4(result.Greeks.Theta),
			"vega":  round4(result.Greeks.Vega),
			"rho":   round4(result.Greeks.Rho),
		},
	})
}

// handleImpliedVol solves for the volatility matching a market premium.
// POST /api/v1/options/implied-vol
func (s *Server) handleImpliedVol(c *gin.Context) {
	var req struct {
		contractRequest
		Premium float64 `json:"premium"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	start := time.Now()
	contract := req.contract()
	vol, err := pricing.ImpliedVolatility(contract, req.Premium, s.solverConfig())
	result := gin.H{"implied_vol_pct": round4(vol)}
	s.finish("implied_volatility", start, contract, result, err)
	if err != nil {
		calcError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// handleBreakeven solves the delta-gamma breakeven quadratic.
// POST /api/v1/options/breakeven
func (s *Server) handleBreakeven(c *gin.Context) {
	var req pricing.BreakevenInputs
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	start := time.Now()
	result, err := pricing.Breakeven(req, s.cfg.Pricing.CurveExtraDays)
	s.finish("breakeven", start, req, result, err)
	if err != nil {
		calcError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"headwind":      round4(result.Headwind),
		"required_move": round4(result.RequiredMove),
		"target_price":  round2(result.TargetPrice),
		"percent_move":  round4(result.PercentMove),
		"curve":         result.Curve,
	})
}

// handleCompound projects a balance or solves one of the inverse
// problems, selected by solve_for.
// POST /api/v1/compound
func (s *Server) handleCompound(c *gin.Context) {
	var req struct {
		calculators.CompoundInputs
		SolveFor string  `json:"solve_for"` // final_balance, years, rate, deposit, initial_balance
		Goal     float64 `json:"goal"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if req.SolveFor == "" {
		req.SolveFor = "final_balance"
	}

	start := time.Now()
	inputs := req.CompoundInputs

	var result gin.H
	var err error
	switch req.SolveFor {
	case "final_balance":
		var final float64
		var history []calculators.HistoryEntry
		final, history, err = calculators.FutureValue(inputs)
		if err == nil {
			result = gin.H{"final_balance": round2(final), "history": history}
		}
	case "years":
		var years int
		years, _, err = calculators.YearsToGoal(inputs, req.Goal, s.cfg.Pricing.MaxGoalYears)
		if err == nil {
			result = gin.H{"years": years}
		}
	case "rate":
		var rate float64
		rate, err = calculators.RequiredRate(inputs, req.Goal)
		if err == nil {
			result = gin.H{"annual_rate_pct": round4(rate)}
		}
	case "deposit":
		var deposit float64
		deposit, err = calculators.RequiredDeposit(inputs, req.Goal)
		if err == nil {
			result = gin.H{"periodic_deposit": round2(deposit)}
		}
	case "initial_balance":
		var initial float64
		initial, err = calculators.RequiredInitialBalance(inputs, req.Goal)
		if err == nil {
			result = gin.H{"initial_balance": round2(initial)}
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown solve_for value"})
		return
	}

	s.finish("compound_"+req.SolveFor, start, inputs, result, err)
	if err != nil {
		calcError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// handleDCA sizes dollar-cost-averaging tranches.
// POST /api/v1/dca
func (s *Server) handleDCA(c *gin.Context) {
	var req calculators.DCAInputs
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	start := time.Now()
	result, err := calculators.OptimalDCA(req)
	s.finish("dca", start, req, result, err)
	if err != nil {
		calcError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"optimal_trades":     result.OptimalTrades,
		"trigger_percentage": round4(result.TriggerPercent),
		"capital_per_trade":  round2(result.CapitalPerTrade),
	})
}

// handleCapitalGains computes the post-tax breakeven return and the
// tax-rate sweep used by the chart.
// POST /api/v1/capital-gains
func (s *Server) handleCapitalGains(c *gin.Context) {
	var req struct {
		CurrentValue float64 `json:"current_value"`
		CostBasis    float64 `json:"cost_basis"`
		TaxRate      float64 `json:"tax_rate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	start := time.Now()
	result, err := calculators.BreakevenReturn(req.CurrentValue, req.CostBasis, req.TaxRate)
	s.finish("capital_gains", start, req, result, err)
	if err != nil {
		calcError(c, err)
		return
	}

	chart, chartErr := calculators.TaxRateSweep(req.CurrentValue, req.CostBasis)
	if chartErr != nil {
		chart = nil
	}

	c.JSON(http.StatusOK, gin.H{
		"capital_gain":      round2(result.CapitalGain),
		"tax_cost":          round2(result.TaxCost),
		"post_tax_proceeds": round2(result.PostTaxProceeds),
		"required_return":   round4(result.RequiredReturn),
		"chart_data":        chart,
	})
}

// handleExpectedMove derives the straddle-implied move.
// POST /api/v1/strategy/expected-move
func (s *Server) handleExpectedMove(c *gin.Context) {
	var req struct {
		StockPrice float64 `json:"stock_price"`
		CallPrice  float64 `json:"call_price"`
		PutPrice   float64 `json:"put_price"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	start := time.Now()
	result, err := calculators.ExpectedMove(req.StockPrice, req.CallPrice, req.PutPrice)
	s.finish("expected_move", start, req, result, err)
	if err != nil {
		calcError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"expected_move":       round2(result.ExpectedMove),
		"expected_percentage": round4(result.ExpectedPercent),
		"lower_bound":         round2(result.LowerBound),
		"upper_bound":         round2(result.UpperBound),
	})
}

// handleSellVsExercise compares closing an ITM call both ways.
// POST /api/v1/strategy/sell-vs-exercise
func (s *Server) handleSellVsExercise(c *gin.Context) {
	var req struct {
		StockPrice  float64 `json:"stock_price"`
		StrikePrice float64 `json:"strike_price"`
		Premium     float64 `json:"premium"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	start := time.Now()
	result, err := calculators.SellVsExercise(req.StockPrice, req.StrikePrice, req.Premium)
	s.finish("sell_vs_exercise", start, req, result, err)
	if err != nil {
		calcError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profit_from_selling":    round2(result.ProfitFromSelling),
		"profit_from_exercising": round2(result.ProfitFromExercising),
		"extrinsic_value":        round2(result.ExtrinsicValue),
	})
}
