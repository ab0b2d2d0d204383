// Package subscriptions handles the recurring charge detection command
package subscriptions

import (
	"finadvisor/cmd/root"
	"finadvisor/internal/assistant"
	"finadvisor/internal/report"

	"github.com/spf13/cobra"
)

// Cmd represents the subscriptions command
var Cmd = &cobra.Command{
	Use:   "subscriptions <statement-file>",
	Short: "List recurring charges found in a statement",
	Long: `Subscriptions scans a statement export for charges that repeat with a
stable amount on a monthly, quarterly or annual cadence.`,
	Args: cobra.ExactArgs(1),
	RunE: subscriptionsFunc,
}

func subscriptionsFunc(cmd *cobra.Command, args []string) error {
	rules, err := root.LoadRules()
	if err != nil {
		return err
	}

	a := assistant.New(root.Cfg, rules, root.Log)
	analysis, err := a.Analyze(args[0])
	if err != nil {
		return err
	}

	return report.WriteSubscriptions(cmd.OutOrStdout(), analysis.Subscriptions)
}
