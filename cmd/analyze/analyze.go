// Package analyze handles the statement analysis command
package analyze

import (
	"finadvisor/cmd/root"
	"finadvisor/internal/assistant"
	"finadvisor/internal/report"

	"github.com/spf13/cobra"
)

// Cmd represents the analyze command
var Cmd = &cobra.Command{
	Use:   "analyze <statement-file>",
	Short: "Analyze a bank statement export",
	Long: `Analyze reads a statement export (CSV or CAMT.053 XML), categorizes
every transaction, and prints totals, monthly breakdowns, recurring
charges, advice and a savings plan.`,
	Args: cobra.ExactArgs(1),
	RunE: analyzeFunc,
}

func analyzeFunc(cmd *cobra.Command, args []string) error {
	rules, err := root.LoadRules()
	if err != nil {
		return err
	}

	a := assistant.New(root.Cfg, rules, root.Log)
	analysis, err := a.Analyze(args[0])
	if err != nil {
		return err
	}

	return report.WriteAnalysis(cmd.OutOrStdout(), analysis)
}
