package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/benchtop/benchtop/internal/config"
	"github.com/benchtop/benchtop/internal/inventory"
	"github.com/benchtop/benchtop/internal/printer"
)

var (
	statusJSON    bool
	statusDigest  bool
	statusLargest int
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Inventory the project's data",
	Long: `Summarize what is on disk under data/ and lib/: file counts, byte
totals, and the largest artifacts.

With --digest, the largest artifacts also get sha256 content digests, which
is the cheap way to tell whether a regenerated file actually changed.

Status is read-only.`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output as JSON")
	statusCmd.Flags().BoolVar(&statusDigest, "digest", false, "Compute sha256 digests for the largest files")
	statusCmd.Flags().IntVar(&statusLargest, "largest", 10, "How many of the largest files to show")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	root, cfg, err := config.LoadFrom(".")
	if err != nil {
		return err
	}

	summary, err := inventory.Collect(root, inventory.Options{
		TopN:   statusLargest,
		Digest: statusDigest,
	})
	if err != nil {
		return err
	}

	if statusJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	printer.Info("Project '%s'\n\n", cfg.Name)

	dirs := tablewriter.NewWriter(os.Stdout)
	dirs.Header("DIR", "FILES", "SIZE")
	for _, d := range summary.Dirs {
		dirs.Append([]string{d.Dir, fmt.Sprintf("%d", d.Files), inventory.FormatBytes(d.Bytes)})
	}
	if err := dirs.Render(); err != nil {
		return err
	}

	if len(summary.Largest) > 0 {
		printer.Info("\nLargest files:\n")
		files := tablewriter.NewWriter(os.Stdout)
		if statusDigest {
			files.Header("PATH", "SIZE", "SHA256")
		} else {
			files.Header("PATH", "SIZE")
		}
		for _, f := range summary.Largest {
			row := []string{f.Path, inventory.FormatBytes(f.Size)}
			if statusDigest {
				digest := f.SHA256
				if len(digest) > 12 {
					digest = digest[:12]
				}
				row = append(row, digest)
			}
			files.Append(row)
		}
		if err := files.Render(); err != nil {
			return err
		}
	}
	return nil
}
