package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/benchtop/benchtop/internal/config"
	"github.com/benchtop/benchtop/internal/printer"
	"github.com/benchtop/benchtop/internal/samples"
)

var samplesJSON bool

var samplesCmd = &cobra.Command{
	Use:   "samples",
	Short: "Work with the sample-to-path mapping",
	Long: `Work with the sample-to-path mapping file (lib/samples.tsv by default).

The mapping pairs human-readable sample names with the fixed locations of
large data files, so analyses and workflow rules refer to samples by name
instead of hard-coding cluster paths.`,
}

var samplesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List mapped samples",
	RunE:  runSamplesList,
}

var samplesAddCmd = &cobra.Command{
	Use:   "add <name> <path>",
	Short: "Append a sample mapping",
	Long: `Append one sample-to-path entry to the mapping file.

The file stays hand-editable; add only ever appends a line.

Example:
  benchtop samples add sample-a /shared/seq/run42/sample-a_R1.fastq.gz`,
	Args: cobra.ExactArgs(2),
	RunE: runSamplesAdd,
}

var samplesVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the mapping against the filesystem",
	Long: `Parse the mapping file and report duplicate sample names and paths that
do not exist on this machine. Duplicates fail the command; missing paths
are warnings, since the mapping often points at unmounted cluster storage.`,
	RunE: runSamplesVerify,
}

func init() {
	samplesListCmd.Flags().BoolVar(&samplesJSON, "json", false, "Output as line-delimited JSON")
	samplesCmd.AddCommand(samplesListCmd)
	samplesCmd.AddCommand(samplesAddCmd)
	samplesCmd.AddCommand(samplesVerifyCmd)
	rootCmd.AddCommand(samplesCmd)
}

func runSamplesList(cmd *cobra.Command, args []string) error {
	root, cfg, err := config.LoadFrom(".")
	if err != nil {
		return err
	}

	entries, err := samples.Load(filepath.Join(root, cfg.Samples.File))
	if err != nil {
		return err
	}

	if samplesJSON {
		enc := json.NewEncoder(os.Stdout)
		for _, e := range entries {
			if err := enc.Encode(e); err != nil {
				return err
			}
		}
		return nil
	}

	if len(entries) == 0 {
		printer.Info("No samples mapped in %s\n", cfg.Samples.File)
		return nil
	}
	for _, e := range entries {
		printer.Printf("%-24s %s\n", e.Name, e.Path)
	}
	noun := "sample"
	if len(entries) != 1 {
		noun = "samples"
	}
	printer.Printf("\n%d %s\n", len(entries), noun)
	return nil
}

func runSamplesAdd(cmd *cobra.Command, args []string) error {
	root, cfg, err := config.LoadFrom(".")
	if err != nil {
		return err
	}

	path := filepath.Join(root, cfg.Samples.File)
	if err := samples.Add(path, args[0], args[1]); err != nil {
		return err
	}

	printer.Success("Mapped %s -> %s\n", args[0], args[1])
	return nil
}

func runSamplesVerify(cmd *cobra.Command, args []string) error {
	root, cfg, err := config.LoadFrom(".")
	if err != nil {
		return err
	}

	entries, err := samples.Load(filepath.Join(root, cfg.Samples.File))
	if err != nil {
		return err
	}

	problems := samples.Verify(root, entries)
	fatal := 0
	for _, p := range problems {
		if p.Fatal {
			fatal++
			printer.Printf("✗ %s (line %d): %s\n", p.Entry.Name, p.Entry.Line, p.Reason)
		} else {
			printer.Warning("%s (line %d): %s\n", p.Entry.Name, p.Entry.Line, p.Reason)
		}
	}

	if fatal > 0 {
		return fmt.Errorf("%d fatal problem(s) in %s", fatal, cfg.Samples.File)
	}
	printer.Success("%d samples verified (%d warnings)\n", len(entries), len(problems))
	return nil
}
