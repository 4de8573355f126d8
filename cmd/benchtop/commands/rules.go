package commands

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/benchtop/benchtop/internal/config"
	"github.com/benchtop/benchtop/internal/printer"
	"github.com/benchtop/benchtop/internal/workflow"
)

var rulesJSON bool

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inventory and extend the workflow definition",
	Long: `Inventory and extend the workflow-definition file (Snakefile by default).

Benchtop never runs the workflow; execution belongs to the workflow tool.
These commands keep the file's accumulation of rules visible and give new
rules a consistent starting shape.`,
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List rules defined in the workflow file",
	RunE:  runRulesList,
}

var rulesAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Append a stub rule to the workflow file",
	Long: `Append a stub rule with empty input/output lists to the workflow file.

Example:
  benchtop rules add call_variants`,
	Args: cobra.ExactArgs(1),
	RunE: runRulesAdd,
}

func init() {
	rulesListCmd.Flags().BoolVar(&rulesJSON, "json", false, "Output as line-delimited JSON")
	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesAddCmd)
	rootCmd.AddCommand(rulesCmd)
}

func runRulesList(cmd *cobra.Command, args []string) error {
	root, cfg, err := config.LoadFrom(".")
	if err != nil {
		return err
	}

	rules, err := workflow.Rules(filepath.Join(root, cfg.Workflow.File))
	if err != nil {
		return err
	}

	if rulesJSON {
		enc := json.NewEncoder(os.Stdout)
		for _, r := range rules {
			if err := enc.Encode(r); err != nil {
				return err
			}
		}
		return nil
	}

	if len(rules) == 0 {
		printer.Info("No rules in %s\n", cfg.Workflow.File)
		return nil
	}
	for _, r := range rules {
		printer.Printf("%-30s %s:%d\n", r.Name, cfg.Workflow.File, r.Line)
	}
	return nil
}

func runRulesAdd(cmd *cobra.Command, args []string) error {
	root, cfg, err := config.LoadFrom(".")
	if err != nil {
		return err
	}

	path := filepath.Join(root, cfg.Workflow.File)
	if err := workflow.AddRule(path, args[0]); err != nil {
		return err
	}

	printer.Success("Added rule %q to %s\n", args[0], cfg.Workflow.File)
	printer.Info("\nFill in its input, output, and shell sections.\n")
	return nil
}
