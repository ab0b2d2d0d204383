// Package root contains the root command for the application
package root

import (
	"finadvisor/internal/config"
	"finadvisor/internal/logging"
	"finadvisor/internal/models"
	"finadvisor/internal/store"

	"github.com/spf13/cobra"
)

var (
	// Cfg is the loaded application configuration, available to all
	// subcommands after PersistentPreRunE.
	Cfg *config.Config

	// Log is the shared logger instance for commands
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// RulesFile overrides the configured categories file when set.
	RulesFile string

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "finadvisor",
		Short: "Analyze bank statement exports and get spending advice.",
		Long: `finadvisor reads a bank statement export (CSV or CAMT.053 XML),
categorizes every transaction with keyword rules, and produces spending
summaries, plain-language advice and a savings plan.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()

			var err error
			Cfg, err = config.Load()
			if err != nil {
				return err
			}

			Log = logging.NewLogrusAdapterFromLogger(config.ConfigureLogging(Cfg))
			return nil
		},
	}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&RulesFile, "rules", "r", "", "Categories rules file (overrides configuration)")
	Cmd.SilenceUsage = true
}

// LoadRules resolves the rule set honoring the --rules flag.
func LoadRules() (models.RulesConfig, error) {
	path := RulesFile
	if path == "" {
		path = Cfg.Rules.File
	}
	return store.NewRuleStore(path, Log).LoadRules()
}
