// Package cli provides the command-line interface for the calculator suite.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"fincalc/internal/config"
	"fincalc/internal/logging"
	"fincalc/internal/store"
)

// Version information
const (
	Version = "0.1.0"
)

// App holds the application dependencies.
type App struct {
	Config  *config.Config
	Logger  zerolog.Logger
	History *store.HistoryStore
}

// record journals a completed calculation when history is enabled.
func (app *App) record(calculator string, inputs, result interface{}) {
	if app.History == nil {
		return
	}
	if err := app.History.Record(calculator, inputs, result); err != nil {
		app.Logger.Warn().Err(err).Str("calculator", calculator).Msg("Failed to record history")
	}
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if cfg.History.Enabled {
		history, err := store.NewHistoryStore(cfg.History.Path)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to open history store, journaling disabled")
		} else {
			app.History = history
			logger.Debug().Str("path", cfg.History.Path).Msg("History store opened")
		}
	}

	rootCmd := &cobra.Command{
		Use:   "fincalc",
		Short: "Personal finance and options calculators",
		Long: `fincalc is a suite of personal-finance calculators: option pricing
(Black-Scholes and binomial American), implied volatility, breakeven-move
analysis, compound interest projection, DCA trade sizing and capital-gains
breakeven.

Use 'fincalc help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/fincalc)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	addOptionsCommands(rootCmd, app)
	addCalculatorCommands(rootCmd, app)
	addHistoryCommand(rootCmd, app)
	addServeCommand(rootCmd, app)
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fincalc %s\n", Version)
		},
	}
}

// Execute sets up dependencies and runs the root command.
func Execute() {
	configDir := ""
	for i, arg := range os.Args {
		if arg == "--config" && i+1 < len(os.Args) {
			configDir = os.Args[i+1]
		}
	}

	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.Logging)

	rootCmd := NewRootCmd(cfg, logger)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
