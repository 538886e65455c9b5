package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mj1618/a11y-check/internal/output"
	"github.com/mj1618/a11y-check/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List and describe the rule catalog",
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the selected rules in evaluation order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := selectRegistry(cmd)
		if err != nil {
			return err
		}
		return output.Print(output.RuleViews(reg))
	},
}

var rulesShowCmd = &cobra.Command{
	Use:   "show <rule-id>",
	Short: "Show one rule with its rendered description and fix",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, ok := rules.Default().Lookup(rules.ID(args[0]))
		if !ok {
			return fmt.Errorf("%w: %q (see \"a11y-check rules list\")", rules.ErrUnknownRule, args[0])
		}
		return output.Print(output.NewRuleView(r))
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.AddCommand(rulesListCmd, rulesShowCmd)
	addRuleFlags(rulesListCmd)
}
