package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mj1618/a11y-check/internal/output"
	"github.com/mj1618/a11y-check/internal/scan"
)

var evalCmd = &cobra.Command{
	Use:   "eval <fixture>...",
	Short: "Explain every rule verdict for one element",
	Long: `Evaluate the selected rules against a single element, chosen with --id or
--text, and print each verdict with the rendered rule description, the fix
and, for RuleExecutionError, the fault behind it.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)
	addRuleFlags(evalCmd)
	evalCmd.Flags().Int("id", 0, "Element ID to evaluate")
	addTextTargetingFlags(evalCmd, "text", "Find element by title/value/description text")
}

func runEval(cmd *cobra.Command, args []string) error {
	reg, err := selectRegistry(cmd)
	if err != nil {
		return err
	}
	trees, records, err := loadTrees(cmd.Context(), args)
	if err != nil {
		return err
	}
	target, err := resolveTarget(cmd, records)
	if err != nil {
		return err
	}
	for _, tree := range trees {
		node, ok := tree.FindByID(target.ID)
		if !ok {
			continue
		}
		x, err := scan.Explain(reg, node)
		if err != nil {
			return err
		}
		return output.Print(x)
	}
	return fmt.Errorf("element with id %d not found", target.ID)
}
