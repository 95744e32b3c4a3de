// Package cli provides the command-line interface for the calculator suite.
package cli

import (
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fincalc/internal/calculators"
	"fincalc/internal/logging"
)

// addCalculatorCommands adds the personal-finance calculator commands.
func addCalculatorCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newCompoundCmd(app))
	rootCmd.AddCommand(newDCACmd(app))
	rootCmd.AddCommand(newGainsCmd(app))
	rootCmd.AddCommand(newStrategyCmd(app))
}

func compoundInputsFromFlags(cmd *cobra.Command) calculators.CompoundInputs {
	principal, _ := cmd.Flags().GetFloat64("principal")
	rate, _ := cmd.Flags().GetFloat64("rate")
	years, _ := cmd.Flags().GetInt("years")
	frequency, _ := cmd.Flags().GetInt("frequency")
	deposit, _ := cmd.Flags().GetFloat64("deposit")
	atBeginning, _ := cmd.Flags().GetBool("at-beginning")

	return calculators.CompoundInputs{
		Principal:          principal,
		AnnualRatePct:      rate,
		Years:              years,
		PeriodsPerYear:     frequency,
		PeriodicDeposit:    deposit,
		DepositAtBeginning: atBeginning,
	}
}

func addCompoundFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("principal", 10000, "initial balance")
	cmd.Flags().Float64("rate", 5, "annual interest rate in percent")
	cmd.Flags().Int("years", 10, "duration in years")
	cmd.Flags().Int("frequency", 12, "deposits per year")
	cmd.Flags().Float64("deposit", 100, "periodic deposit")
	cmd.Flags().Bool("at-beginning", false, "deposit at the beginning of each period")
}

func newCompoundCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compound",
		Short: "Compound interest projection and inverse solvers",
	}

	cmd.AddCommand(newCompoundFutureCmd(app))
	cmd.AddCommand(newCompoundYearsCmd(app))
	cmd.AddCommand(newCompoundRateCmd(app))
	cmd.AddCommand(newCompoundDepositCmd(app))
	cmd.AddCommand(newCompoundInitialCmd(app))
	return cmd
}

func newCompoundFutureCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "future",
		Short:   "Project the final balance and yearly history",
		Example: `  fincalc compound future --principal 10000 --rate 5 --years 10 --deposit 100`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			inputs := compoundInputsFromFlags(cmd)

			start := time.Now()
			final, history, err := calculators.FutureValue(inputs)
			logging.LogCalculation(app.Logger, "compound_future", time.Since(start), err)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			type futureResult struct {
				FinalBalance float64                    `json:"final_balance"`
				History      []calculators.HistoryEntry `json:"history"`
			}
			result := futureResult{final, history}
			app.record("compound_future", inputs, result)

			if output.IsJSON() {
				return output.JSON(result)
			}

			color.Cyan("Compound Interest Projection")
			output.Printf("  Final balance after %d years: %s\n\n", inputs.Years, FormatCurrency(final))
			output.Printf("  %-6s %-14s %-14s %-14s\n", "Year", "Balance", "Deposits", "Interest")
			output.Rule(52)
			for _, entry := range history {
				output.Printf("  %-6d %-14s %-14s %-14s\n",
					entry.Year,
					FormatCurrency(entry.Balance),
					FormatCurrency(entry.TotalDeposits),
					FormatCurrency(entry.InterestEarned))
			}
			return nil
		},
	}

	addCompoundFlags(cmd)
	return cmd
}

func newCompoundYearsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "years",
		Short:   "Years needed to reach a savings goal",
		Example: `  fincalc compound years --principal 10000 --rate 5 --deposit 100 --goal 20000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			inputs := compoundInputsFromFlags(cmd)
			goal, _ := cmd.Flags().GetFloat64("goal")

			start := time.Now()
			years, _, err := calculators.YearsToGoal(inputs, goal, app.Config.Pricing.MaxGoalYears)
			logging.LogCalculation(app.Logger, "compound_years", time.Since(start), err)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			type yearsResult struct {
				Years int `json:"years"`
			}
			app.record("compound_years", inputs, yearsResult{years})

			if output.IsJSON() {
				return output.JSON(yearsResult{years})
			}
			color.Cyan("Years to Goal")
			output.Printf("  Goal %s is reached after %d years\n", FormatCurrency(goal), years)
			return nil
		},
	}

	addCompoundFlags(cmd)
	cmd.Flags().Float64("goal", 20000, "goal balance")
	return cmd
}

func newCompoundRateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rate",
		Short:   "Annual rate needed to reach a goal in the given time",
		Example: `  fincalc compound rate --principal 10000 --years 10 --deposit 100 --goal 30000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			inputs := compoundInputsFromFlags(cmd)
			goal, _ := cmd.Flags().GetFloat64("goal")

			start := time.Now()
			rate, err := calculators.RequiredRate(inputs, goal)
			logging.LogCalculation(app.Logger, "compound_rate", time.Since(start), err)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			type rateResult struct {
				AnnualRatePct float64 `json:"annual_rate_pct"`
			}
			app.record("compound_rate", inputs, rateResult{rate})

			if output.IsJSON() {
				return output.JSON(rateResult{rate})
			}
			color.Cyan("Required Annual Rate")
			output.Printf("  %.2f%% per year reaches %s in %d years\n", rate, FormatCurrency(goal), inputs.Years)
			return nil
		},
	}

	addCompoundFlags(cmd)
	cmd.Flags().Float64("goal", 20000, "goal balance")
	return cmd
}

func newCompoundDepositCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "deposit",
		Short:   "Periodic deposit needed to reach a goal",
		Example: `  fincalc compound deposit --principal 10000 --rate 5 --years 10 --goal 30000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			inputs := compoundInputsFromFlags(cmd)
			goal, _ := cmd.Flags().GetFloat64("goal")

			start := time.Now()
			deposit, err := calculators.RequiredDeposit(inputs, goal)
			logging.LogCalculation(app.Logger, "compound_deposit", time.Since(start), err)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			type depositResult struct {
				PeriodicDeposit float64 `json:"periodic_deposit"`
			}
			app.record("compound_deposit", inputs, depositResult{deposit})

			if output.IsJSON() {
				return output.JSON(depositResult{deposit})
			}
			color.Cyan("Required Periodic Deposit")
			output.Printf("  %s per period reaches %s in %d years\n", FormatCurrency(deposit), FormatCurrency(goal), inputs.Years)
			return nil
		},
	}

	addCompoundFlags(cmd)
	cmd.Flags().Float64("goal", 20000, "goal balance")
	return cmd
}

func newCompoundInitialCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "initial",
		Short:   "Starting balance needed to reach a goal",
		Example: `  fincalc compound initial --rate 5 --years 10 --deposit 100 --goal 30000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			inputs := compoundInputsFromFlags(cmd)
			goal, _ := cmd.Flags().GetFloat64("goal")

			start := time.Now()
			initial, err := calculators.RequiredInitialBalance(inputs, goal)
			logging.LogCalculation(app.Logger, "compound_initial", time.Since(start), err)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			type initialResult struct {
				InitialBalance float64 `json:"initial_balance"`
			}
			app.record("compound_initial", inputs, initialResult{initial})

			if output.IsJSON() {
				return output.JSON(initialResult{initial})
			}
			color.Cyan("Required Initial Balance")
			output.Printf("  Starting with %s reaches %s in %d years\n", FormatCurrency(initial), FormatCurrency(goal), inputs.Years)
			return nil
		},
	}

	addCompoundFlags(cmd)
	cmd.Flags().Float64("goal", 20000, "goal balance")
	return cmd
}

func newDCACmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "dca",
		Short:   "Size dollar-cost-averaging tranches",
		Example: `  fincalc dca --capital 1000 --price 10 --commission 5 --volatility 0.60`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			capital, _ := cmd.Flags().GetFloat64("capital")
			price, _ := cmd.Flags().GetFloat64("price")
			commission, _ := cmd.Flags().GetFloat64("commission")
			volatility, _ := cmd.Flags().GetFloat64("volatility")

			inputs := calculators.DCAInputs{
				TotalCapital:  capital,
				SharePrice:    price,
				CommissionFee: commission,
				Volatility:    volatility,
			}

			start := time.Now()
			result, err := calculators.OptimalDCA(inputs)
			logging.LogCalculation(app.Logger, "dca", time.Since(start), err)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			app.record("dca", inputs, result)

			if output.IsJSON() {
				return output.JSON(result)
			}

			color.Cyan("DCA Trade Sizing")
			output.Printf("  Optimal trades:    %d\n", result.OptimalTrades)
			output.Printf("  Capital per trade: %s\n", FormatCurrency(result.CapitalPerTrade))
			output.Printf("  Buy trigger:       price drop of %.2f%%\n", result.TriggerPercent*100)
			return nil
		},
	}

	cmd.Flags().Float64("capital", 1000, "total capital to invest")
	cmd.Flags().Float64("price", 10, "share price")
	cmd.Flags().Float64("commission", 5, "commission per trade")
	cmd.Flags().Float64("volatility", 0.60, "annualized volatility as a decimal")
	return cmd
}

func newGainsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "gains",
		Short:   "Capital-gains breakeven for switching investments",
		Example: `  fincalc gains --value 1500 --basis 1000 --tax 0.19`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			value, _ := cmd.Flags().GetFloat64("value")
			basis, _ := cmd.Flags().GetFloat64("basis")
			tax, _ := cmd.Flags().GetFloat64("tax")

			start := time.Now()
			result, err := calculators.BreakevenReturn(value, basis, tax)
			logging.LogCalculation(app.Logger, "capital_gains", time.Since(start), err)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			type gainsInputs struct {
				CurrentValue float64 `json:"current_value"`
				CostBasis    float64 `json:"cost_basis"`
				TaxRate      float64 `json:"tax_rate"`
			}
			app.record("capital_gains", gainsInputs{value, basis, tax}, result)

			if output.IsJSON() {
				return output.JSON(result)
			}

			color.Cyan("Capital Gains Breakeven")
			output.Printf("  Capital gain:      %s\n", FormatCurrency(result.CapitalGain))
			output.Printf("  Tax cost:          %s\n", FormatCurrency(result.TaxCost))
			output.Printf("  Post-tax proceeds: %s\n", FormatCurrency(result.PostTaxProceeds))
			output.Printf("  Required return:   %.2f%%\n", result.RequiredReturn*100)
			return nil
		},
	}

	cmd.Flags().Float64("value", 1500, "current market value")
	cmd.Flags().Float64("basis", 1000, "original cost basis")
	cmd.Flags().Float64("tax", 0.19, "capital gains tax rate as a decimal")
	return cmd
}

func newStrategyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strategy",
		Short: "Options strategy helpers",
	}

	cmd.AddCommand(newExpectedMoveCmd(app))
	cmd.AddCommand(newSellVsExerciseCmd(app))
	return cmd
}

func newExpectedMoveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "move",
		Short:   "Market's expected move from the ATM straddle cost",
		Example: `  fincalc strategy move --price 150 --call 5 --put 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			price, _ := cmd.Flags().GetFloat64("price")
			callPrice, _ := cmd.Flags().GetFloat64("call")
			putPrice, _ := cmd.Flags().GetFloat64("put")

			start := time.Now()
			result, err := calculators.ExpectedMove(price, callPrice, putPrice)
			logging.LogCalculation(app.Logger, "expected_move", time.Since(start), err)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			type moveInputs struct {
				StockPrice float64 `json:"stock_price"`
				CallPrice  float64 `json:"call_price"`
				PutPrice   float64 `json:"put_price"`
			}
			app.record("expected_move", moveInputs{price, callPrice, putPrice}, result)

			if output.IsJSON() {
				return output.JSON(result)
			}

			color.Cyan("Market's Expected Move")
			output.Printf("  Expected move: %s up or down (%.2f%%)\n", FormatCurrency(result.ExpectedMove), result.ExpectedPercent*100)
			output.Printf("  Implied range: %s to %s\n", FormatCurrency(result.LowerBound), FormatCurrency(result.UpperBound))
			return nil
		},
	}

	cmd.Flags().Float64("price", 150, "current stock price")
	cmd.Flags().Float64("call", 5, "ATM call premium")
	cmd.Flags().Float64("put", 5, "ATM put premium")
	return cmd
}

func newSellVsExerciseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "exercise",
		Short:   "Compare selling an ITM call against exercising it",
		Example: `  fincalc strategy exercise --price 165 --strike 155 --premium 10.50`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			price, _ := cmd.Flags().GetFloat64("price")
			strike, _ := cmd.Flags().GetFloat64("strike")
			premium, _ := cmd.Flags().GetFloat64("premium")

			start := time.Now()
			result, err := calculators.SellVsExercise(price, strike, premium)
			logging.LogCalculation(app.Logger, "sell_vs_exercise", time.Since(start), err)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			type exerciseInputs struct {
				StockPrice  float64 `json:"stock_price"`
				StrikePrice float64 `json:"strike_price"`
				Premium     float64 `json:"premium"`
			}
			app.record("sell_vs_exercise", exerciseInputs{price, strike, premium}, result)

			if output.IsJSON() {
				return output.JSON(result)
			}

			color.Cyan("Sell vs. Exercise (per share)")
			output.Printf("  Profit from selling:    %s\n", FormatCurrency(result.ProfitFromSelling))
			output.Printf("  Profit from exercising: %s\n", FormatCurrency(result.ProfitFromExercising))
			output.Printf("  Extrinsic value kept by selling: %s\n", FormatCurrency(result.ExtrinsicValue))
			return nil
		},
	}

	cmd.Flags().Float64("price", 165, "current stock price")
	cmd.Flags().Float64("strike", 155, "option strike price")
	cmd.Flags().Float64("premium", 10.50, "current option premium")
	return cmd
}
