package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/benchtop/benchtop/internal/config"
	"github.com/benchtop/benchtop/internal/gitutil"
	"github.com/benchtop/benchtop/internal/printer"
	"github.com/benchtop/benchtop/internal/scaffold"
)

var (
	initName   string
	initFormat string
	initEngine string
	forceInit  bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new benchtop project",
	Long: `Initialize a benchtop project in the current directory.

Creates:
  • benchtop.yml - project configuration
  • analysis/, scripts/, lib/, data/ - the canonical directory set
  • lib/samples.tsv - sample-to-path mapping
  • Snakefile, Dockerfile - workflow and environment definitions
  • README.md, .gitignore - seeded documentation

This command must be run from the root of a Git repository. Existing files
are never overwritten; --force replaces benchtop.yml only.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVarP(&initName, "name", "n", "", "Project name (default: current directory name)")
	initCmd.Flags().StringVar(&initFormat, "format", "", "Analysis document format: rmd or md (default: rmd)")
	initCmd.Flags().StringVar(&initEngine, "engine", "", "Container engine: docker, podman, or apptainer (default: docker)")
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Replace an existing benchtop.yml (other files are kept)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	// Validate Git context first
	checker := gitutil.NewChecker()
	if err := checker.ValidateProjectContext(); err != nil {
		// The checker formats its message as title, blank line, detail.
		// Render the detail to stderr and keep the title as the error.
		title, detail, _ := strings.Cut(err.Error(), "\n\n")
		return printer.Error(title, detail, nil)
	}

	name := initName
	if name == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		name = filepath.Base(cwd)
		if err := config.ValidateName(name); err != nil {
			return fmt.Errorf("directory name %q is not a valid project name; pass one with --name\n\n%w", name, err)
		}
	}

	// Check for existing files (unless --force)
	if !forceInit {
		if err := scaffold.CheckExisting("."); err != nil {
			return err
		}
	}

	opts := scaffold.Options{
		Name:   name,
		Format: initFormat,
		Engine: initEngine,
		Force:  forceInit,
	}
	if err := scaffold.Initialize(opts); err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	scaffold.PrintSuccess(name)
	return nil
}
