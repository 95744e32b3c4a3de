// Package cli provides the command-line interface for the calculator suite.
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// addHistoryCommand adds the calculation-history command.
func addHistoryCommand(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent calculations",
		Example: `  fincalc history
  fincalc history --calculator price --limit 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.History == nil {
				output.Warning("History store is not available")
				return nil
			}

			calculator, _ := cmd.Flags().GetString("calculator")
			limit, _ := cmd.Flags().GetInt("limit")
			pruneDays, _ := cmd.Flags().GetInt("prune")

			if pruneDays > 0 {
				cutoff := time.Now().AddDate(0, 0, -pruneDays)
				removed, err := app.History.Prune(cutoff)
				if err != nil {
					output.Error("Failed to prune history: %v", err)
					return err
				}
				output.Success("Removed %d entries older than %d days", removed, pruneDays)
				return nil
			}

			entries, err := app.History.List(calculator, limit)
			if err != nil {
				output.Error("Failed to read history: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(entries)
			}

			if len(entries) == 0 {
				output.Dim("No calculations recorded yet")
				return nil
			}

			output.Bold("Recent calculations")
			output.Rule(72)
			for _, entry := range entries {
				output.Printf("  %-20s %-18s %s\n",
					entry.Timestamp.Local().Format("2006-01-02 15:04:05"),
					entry.Calculator,
					truncate(string(entry.Inputs), 40))
			}
			return nil
		},
	}

	cmd.Flags().String("calculator", "", "filter by calculator name")
	cmd.Flags().Int("limit", 20, "maximum entries to show")
	cmd.Flags().Int("prune", 0, "delete entries older than this many days")
	rootCmd.AddCommand(cmd)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return fmt.Sprintf("%s…", s[:max-1])
}
