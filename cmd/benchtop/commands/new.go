package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/benchtop/benchtop/internal/analysis"
	"github.com/benchtop/benchtop/internal/config"
	"github.com/benchtop/benchtop/internal/printer"
)

var newCmd = &cobra.Command{
	Use:   "new <description>",
	Short: "Create the next numbered analysis document",
	Long: `Create a new analysis document under analysis/ with the next sequence
number and a slug derived from the description.

The document starts from a template with Goal, Hypothesis, Resources, and
Plan sections: state what question the analysis answers before writing code.

Examples:
  benchtop new "QC of raw reads"
  benchtop new "DESeq2 tumor vs normal"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	description := strings.Join(args, " ")

	root, cfg, err := config.LoadFrom(".")
	if err != nil {
		return err
	}

	path, err := analysis.Create(root, cfg, description)
	if err != nil {
		return err
	}

	printer.Success("Created %s\n", path)
	printer.Info("\nFill in the Goal section before anything else.\n")
	return nil
}
