package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/benchtop/benchtop/internal/analysis"
	"github.com/benchtop/benchtop/internal/config"
	"github.com/benchtop/benchtop/internal/timespec"
)

var (
	listOutputFormat string
	listSince        string
	listSlugGlob     string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the analysis document series",
	Long: `List the numbered analysis documents in sequence order.

For each document, displays its number, filename, modification age, and the
title taken from its header.

Output Formats:
  default - human-readable column layout
  jsonl   - line-delimited JSON, one document per line

Examples:
  # The whole series
  benchtop list

  # Documents touched in the last three days
  benchtop list --since 72h

  # QC-related documents as JSON for scripting
  benchtop list --slug 'qc-*' --output=jsonl | jq .name`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listOutputFormat, "output", "o", "default", "Output format: default or jsonl")
	listCmd.Flags().StringVar(&listSince, "since", "", "Only documents modified since (duration like '72h' or RFC3339)")
	listCmd.Flags().StringVar(&listSlugGlob, "slug", "", "Only documents whose slug matches this glob")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	root, _, err := config.LoadFrom(".")
	if err != nil {
		return err
	}

	filters := &analysis.FilterCriteria{SlugGlob: listSlugGlob}
	if listSince != "" {
		since, err := timespec.Parse(listSince)
		if err != nil {
			return fmt.Errorf("invalid --since: %w", err)
		}
		filters.Since = since
	}

	entries, err := analysis.List(root, filters)
	if err != nil {
		return err
	}

	switch analysis.OutputFormat(listOutputFormat) {
	case analysis.OutputFormatDefault:
		analysis.FormatTable(os.Stdout, entries)
	case analysis.OutputFormatJSONL:
		if err := analysis.FormatJSONL(os.Stdout, entries); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown output format: %s (use 'default' or 'jsonl')", listOutputFormat)
	}
	return nil
}
