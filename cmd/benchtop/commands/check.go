package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/benchtop/benchtop/internal/check"
	"github.com/benchtop/benchtop/internal/config"
	"github.com/benchtop/benchtop/internal/printer"
)

var checkJSON bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Lint the project against the layout convention",
	Long: `Check the project tree against the benchtop convention:

  • the canonical directory set exists
  • analysis documents follow the numbered naming scheme, without
    duplicate numbers
  • the sample mapping parses and its paths resolve
  • reference files under lib/ are not writable
  • generated data stays out of version control

Errors (broken convention) exit non-zero; warnings (drift) do not.
Check never modifies the project.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Output findings as JSON")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	root, cfg, err := config.LoadFrom(".")
	if err != nil {
		return err
	}

	report, err := check.Run(root, cfg)
	if err != nil {
		return err
	}

	if checkJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		for _, f := range report.Findings {
			switch f.Severity {
			case check.SeverityError:
				printer.Printf("✗ %s: %s\n", f.Path, f.Message)
			default:
				printer.Warning("%s: %s\n", f.Path, f.Message)
			}
		}
		if len(report.Findings) == 0 {
			printer.Success("Project follows the benchtop layout\n")
		} else {
			printer.Printf("\n%d error(s), %d warning(s)\n", report.Errors(), report.Warnings())
		}
	}

	if report.Errors() > 0 {
		return fmt.Errorf("%d convention error(s) found", report.Errors())
	}
	return nil
}
