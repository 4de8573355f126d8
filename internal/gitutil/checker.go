// Package gitutil validates the Git context benchtop commands run in.
// A benchtop project lives at the root of a Git repository; analysis
// documents and the workflow file are history, data/ is not.
package gitutil

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Checker wraps the git binary. All queries shell out; benchtop never
// links a Git implementation.
type Checker struct {
	// Dir overrides the working directory for git invocations.
	// Empty means the current directory.
	Dir string
}

// NewChecker creates a Checker for the current directory.
func NewChecker() *Checker {
	return &Checker{}
}

func (c *Checker) command(args ...string) *exec.Cmd {
	cmd := exec.Command("git", args...)
	cmd.Dir = c.Dir
	return cmd
}

// IsRepository reports whether the working directory is inside a Git
// repository. A missing git binary is an error, not a "no".
func (c *Checker) IsRepository() (bool, error) {
	err := c.command("rev-parse", "--git-dir").Run()
	if err != nil {
		if _, ok := err.(*exec.Error); ok {
			return false, fmt.Errorf("git not found in PATH\nbenchtop requires Git to be installed.\nInstall Git: https://git-scm.com/downloads")
		}
		return false, nil
	}
	return true, nil
}

// Root returns the absolute path of the repository root.
func (c *Checker) Root() (string, error) {
	out, err := c.command("rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", fmt.Errorf("failed to get Git root: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// ValidateProjectContext verifies that the working directory is the root of
// a Git repository, with a remediation hint when it is not. benchtop init
// requires this so that the project convention and the repository boundary
// coincide.
func (c *Checker) ValidateProjectContext() error {
	isRepo, err := c.IsRepository()
	if err != nil {
		return err
	}
	if !isRepo {
		return fmt.Errorf("not a Git repository\n\nbenchtop projects are initialized at the root of a Git repository.\n\nRun 'git init' first, then 'benchtop init'")
	}

	root, err := c.Root()
	if err != nil {
		return err
	}
	cwd := c.Dir
	if cwd == "" {
		if cwd, err = os.Getwd(); err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
	}
	if filepath.Clean(cwd) != filepath.Clean(root) {
		return fmt.Errorf("must run from the Git repository root\n\nGit root: %s\nCurrent directory: %s\n\nPlease cd to the Git root and run 'benchtop init'", root, cwd)
	}
	return nil
}

// TrackedUnder returns the paths Git tracks under dir (relative to the
// repository root). Used by check to flag generated data that slipped into
// version control.
func (c *Checker) TrackedUnder(dir string) ([]string, error) {
	out, err := c.command("ls-files", "--", dir).Output()
	if err != nil {
		return nil, fmt.Errorf("failed to list tracked files under %s: %w", dir, err)
	}
	trimmed := strings.TrimSpace(string(out))
	if trimmed == "" {
		return nil, nil
	}
	return strings.Split(trimmed, "\n"), nil
}
