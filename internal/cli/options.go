// Package cli provides the command-line interface for the calculator suite.
package cli

import (
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fincalc/internal/logging"
	"fincalc/internal/pricing"
)

// addOptionsCommands adds the option pricing and solver commands.
func addOptionsCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newPriceCmd(app))
	rootCmd.AddCommand(newImpliedVolCmd(app))
	rootCmd.AddCommand(newBreakevenCmd(app))
}

func (app *App) solverConfig() pricing.SolverConfig {
	p := app.Config.Pricing
	return pricing.SolverConfig{
		MinVol:        p.IVMin,
		MaxVol:        p.IVMax,
		MaxIterations: p.MaxIterations,
		Tolerance:     p.Tolerance,
		BinomialSteps: p.BinomialSteps,
	}
}

func contractFromFlags(cmd *cobra.Command) pricing.Contract {
	spot, _ := cmd.Flags().GetFloat64("spot")
	strike, _ := cmd.Flags().GetFloat64("strike")
	days, _ := cmd.Flags().GetFloat64("days")
	rate, _ := cmd.Flags().GetFloat64("rate")
	vol, _ := cmd.Flags().GetFloat64("vol")
	typ, _ := cmd.Flags().GetString("type")
	style, _ := cmd.Flags().GetString("style")

	return pricing.Contract{
		Spot:    spot,
		Strike:  strike,
		Days:    days,
		RatePct: rate,
		VolPct:  vol,
		Type:    pricing.OptionType(typ),
		Style:   pricing.ExerciseStyle(style),
	}
}

func addContractFlags(cmd *cobra.Command, withVol bool) {
	cmd.Flags().Float64("spot", 0, "underlying price")
	cmd.Flags().Float64("strike", 0, "strike price")
	cmd.Flags().Float64("days", 0, "calendar days to expiry")
	cmd.Flags().Float64("rate", 0, "annual risk-free rate in percent")
	if withVol {
		cmd.Flags().Float64("vol", 0, "annual volatility in percent")
	}
	cmd.Flags().String("type", "call", "option type: call or put")
	cmd.Flags().String("style", "european", "exercise style: european or american")
	cmd.MarkFlagRequired("spot")
	cmd.MarkFlagRequired("strike")
	cmd.MarkFlagRequired("days")
	if withVol {
		cmd.MarkFlagRequired("vol")
	}
}

func newPriceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Price an option and report its greeks",
		Long: `Price an option with the Black-Scholes closed form (european) or a
Cox-Ross-Rubinstein binomial lattice (american). American greeks are
finite-difference approximations and cost several extra tree evaluations.`,
		Example: `  fincalc price --spot 100 --strike 100 --days 30 --rate 1 --vol 20
  fincalc price --spot 100 --strike 95 --days 45 --rate 1 --vol 25 --type put --style american`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			contract := contractFromFlags(cmd)
			steps, _ := cmd.Flags().GetInt("steps")
			if steps == 0 {
				steps = app.Config.Pricing.BinomialSteps
			}

			start := time.Now()
			result, err := pricing.Price(contract, steps)
			logging.LogCalculation(app.Logger, "price", time.Since(start), err)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			app.record("price", contract, result)

			if output.IsJSON() {
				return output.JSON(result)
			}

			color.Cyan("Option Price — %s %s", contract.Style, contract.Type)
			output.Printf("  Theoretical price: %s\n", FormatCurrency(result.Price))
			output.Println()
			output.Bold("Greeks")
			output.Printf("  %-8s %s\n", "Delta", FormatGreek(result.Greeks.Delta))
			output.Printf("  %-8s %s\n", "Gamma", FormatGreek(result.Greeks.Gamma))
			output.Printf("  %-8s %s per day\n", "Theta", FormatGreek(result.Greeks.Theta))
			output.Printf("  %-8s %s per vol point\n", "Vega", FormatGreek(result.Greeks.Vega))
			output.Printf("  %-8s %s per rate point\n", "Rho", FormatGreek(result.Greeks.Rho))
			return nil
		},
	}

	addContractFlags(cmd, true)
	cmd.Flags().Int("steps", 0, "binomial steps for american style (default from config)")
	return cmd
}

func newImpliedVolCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "iv",
		Short: "Solve for implied volatility from a market premium",
		Example: `  fincalc iv --spot 100 --strike 100 --days 30 --rate 1 --premium 2.32
  fincalc iv --spot 100 --strike 105 --days 60 --premium 1.85 --type put --style american`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			contract := contractFromFlags(cmd)
			premium, _ := cmd.Flags().GetFloat64("premium")

			start := time.Now()
			vol, err := pricing.ImpliedVolatility(contract, premium, app.solverConfig())
			logging.LogCalculation(app.Logger, "implied_volatility", time.Since(start), err)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			type ivResult struct {
				ImpliedVolPct float64 `json:"implied_vol_pct"`
			}
			app.record("implied_volatility", contract, ivResult{vol})

			if output.IsJSON() {
				return output.JSON(ivResult{vol})
			}

			color.Cyan("Implied Volatility — %s %s", contract.Style, contract.Type)
			output.Printf("  Market premium:     %s\n", FormatCurrency(premium))
			output.Printf("  Implied volatility: %.2f%%\n", vol)
			return nil
		},
	}

	addContractFlags(cmd, false)
	cmd.Flags().Float64("premium", 0, "observed market premium")
	cmd.MarkFlagRequired("premium")
	return cmd
}

func newBreakevenCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "breakeven",
		Short: "Solve the minimum move needed to offset theta, vega and spread costs",
		Long: `Solve the delta-gamma quadratic for the smallest underlying move that
recovers the position's cost headwind over the holding period, and print
the required move for each day of the hold (plus a lookahead window).`,
		Example: `  fincalc breakeven --price 100 --delta 0.4 --gamma 0.05 --theta -0.10 --vega 0.15 --spread 0.05 --hold 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			price, _ := cmd.Flags().GetFloat64("price")
			delta, _ := cmd.Flags().GetFloat64("delta")
			gamma, _ := cmd.Flags().GetFloat64("gamma")
			theta, _ := cmd.Flags().GetFloat64("theta")
			vega, _ := cmd.Flags().GetFloat64("vega")
			spread, _ := cmd.Flags().GetFloat64("spread")
			ivChange, _ := cmd.Flags().GetFloat64("iv-change")
			hold, _ := cmd.Flags().GetInt("hold")
			typ, _ := cmd.Flags().GetString("type")

			inputs := pricing.BreakevenInputs{
				StockPrice:  price,
				Delta:       delta,
				Gamma:       gamma,
				Theta:       theta,
				Vega:        vega,
				SpreadCost:  spread,
				IVChangePts: ivChange,
				DaysToHold:  hold,
				Type:        pricing.OptionType(typ),
			}

			start := time.Now()
			result, err := pricing.Breakeven(inputs, app.Config.Pricing.CurveExtraDays)
			logging.LogCalculation(app.Logger, "breakeven", time.Since(start), err)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			app.record("breakeven", inputs, result)

			if output.IsJSON() {
				return output.JSON(result)
			}

			color.Cyan("Breakeven Move — %s held %d days", inputs.Type, inputs.DaysToHold)
			output.Printf("  Cost headwind:  %s\n", FormatCurrency(result.Headwind))
			output.Printf("  Required move:  %s (%s)\n", FormatCurrency(result.RequiredMove), FormatPercent(result.PercentMove))
			output.Printf("  Target price:   %s\n", FormatCurrency(result.TargetPrice))
			output.Println()
			output.Bold("Required %% move by day held")
			output.Rule(32)
			for _, point := range result.Curve {
				if point.OK {
					output.Printf("  day %-4d %s\n", point.Day, FormatPercent(point.PercentMove))
				} else {
					output.Printf("  day %-4d %s\n", point.Day, "—")
				}
			}
			return nil
		},
	}

	cmd.Flags().Float64("price", 0, "current stock price")
	cmd.Flags().Float64("delta", 0, "position delta")
	cmd.Flags().Float64("gamma", 0, "position gamma")
	cmd.Flags().Float64("theta", 0, "theta per day (non-positive for a long option)")
	cmd.Flags().Float64("vega", 0, "vega per vol point")
	cmd.Flags().Float64("spread", 0, "bid/ask spread cost")
	cmd.Flags().Float64("iv-change", 0, "expected implied-vol change in points")
	cmd.Flags().Int("hold", 1, "days to hold")
	cmd.Flags().String("type", "call", "option type: call or put")
	cmd.MarkFlagRequired("price")
	cmd.MarkFlagRequired("delta")
	cmd.MarkFlagRequired("gamma")
	cmd.MarkFlagRequired("theta")
	return cmd
}
