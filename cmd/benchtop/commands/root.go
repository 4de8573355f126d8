package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "benchtop",
	Short: "Benchtop - organized bioinformatics research projects",
	Long: `Benchtop scaffolds and maintains the layout of a bioinformatics research
project: a chronologically numbered analysis notebook series, a read-only
library of reference data, a sample-to-path mapping, and the workflow and
container definitions the external tools consume.

Benchtop never runs workflows, notebooks, or containers itself; it keeps
the files they read organized and honest.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}
