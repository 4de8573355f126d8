// Package scaffold creates the benchtop project structure: the canonical
// directory set plus seed files rendered from embedded templates.
package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/benchtop/benchtop/internal/layout"
)

//go:embed templates/*
var templatesFS embed.FS

// Options controls project initialization.
type Options struct {
	// Name is the project name written into benchtop.yml.
	Name string

	// Format is the analysis document format, "rmd" or "md".
	Format string

	// Engine is the container engine recorded in benchtop.yml.
	Engine string

	// Force removes an existing benchtop.yml before initializing.
	// Force never touches analysis/, lib/, or data/.
	Force bool

	// Dir is the directory to initialize. Empty means the current directory.
	Dir string
}

// templateData is what the seed templates render against.
type templateData struct {
	Name   string
	ID     string
	Format string
	Engine string
}

// fileInfo represents one file to be created during initialization.
type fileInfo struct {
	path        string
	template    string
	permissions os.FileMode
}

// seedFiles maps destination paths to their templates, in creation order.
var seedFiles = []fileInfo{
	{layout.ConfigFile, "templates/benchtop.yml.tmpl", 0644},
	{layout.ReadmeFile, "templates/README.md.tmpl", 0644},
	{layout.GitignoreFile, "templates/gitignore.tmpl", 0644},
	{layout.WorkflowFile, "templates/Snakefile.tmpl", 0644},
	{layout.ContainerFile, "templates/Dockerfile.tmpl", 0644},
	{layout.SamplesFile, "templates/samples.tsv.tmpl", 0644},
}

// CheckExisting returns an error listing any seed files that already exist
// in dir. Directories are fine to re-use; files are never overwritten.
func CheckExisting(dir string) error {
	var existing []string
	for _, f := range seedFiles {
		if _, err := os.Stat(filepath.Join(dir, f.path)); err == nil {
			existing = append(existing, f.path)
		}
	}
	if len(existing) == 0 {
		return nil
	}

	msg := "project already initialized\n\nFound existing"
	if len(existing) == 1 {
		msg += fmt.Sprintf(": %s", existing[0])
	} else {
		msg += " files:\n"
		for _, f := range existing {
			msg += fmt.Sprintf("  - %s\n", f)
		}
	}
	msg += "\nUse 'benchtop init --force' to replace benchtop.yml (other files are never overwritten)"
	return fmt.Errorf("%s", msg)
}

// Initialize creates the benchtop project structure in opts.Dir.
func Initialize(opts Options) error {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	if err := ValidateOptions(&opts); err != nil {
		return err
	}

	if opts.Force {
		if err := handleForce(dir); err != nil {
			return err
		}
	}

	data := templateData{
		Name:   opts.Name,
		ID:     uuid.New().String(),
		Format: opts.Format,
		Engine: opts.Engine,
	}

	if err := createDirectories(dir); err != nil {
		return err
	}

	if err := writeSeedFiles(dir, data, opts.Force); err != nil {
		return err
	}

	return validateCreatedConfig(dir)
}

// handleForce removes an existing benchtop.yml. Unlike the rest of init,
// this is the one intentionally destructive operation, and it is limited to
// the configuration file: analyses and data are user history.
func handleForce(dir string) error {
	path := filepath.Join(dir, layout.ConfigFile)
	if _, err := os.Stat(path); err == nil {
		fmt.Printf("⚠ Removing existing %s...\n", layout.ConfigFile)
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove %s: %w", layout.ConfigFile, err)
		}
	}
	return nil
}

// createDirectories creates the canonical directory set.
func createDirectories(dir string) error {
	for _, d := range layout.Dirs() {
		if err := os.MkdirAll(filepath.Join(dir, d), 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", d, err)
		}
	}
	return nil
}

// writeSeedFiles renders each template and creates its destination file.
// Creation uses O_EXCL: an existing file is never overwritten. Under force
// the existing file is kept and skipped (only benchtop.yml was removed);
// otherwise it is an error.
func writeSeedFiles(dir string, data templateData, force bool) error {
	for _, f := range seedFiles {
		raw, err := templatesFS.ReadFile(f.template)
		if err != nil {
			return fmt.Errorf("failed to read template %s: %w", f.template, err)
		}

		tmpl, err := template.New(filepath.Base(f.template)).Parse(string(raw))
		if err != nil {
			return fmt.Errorf("failed to parse template %s: %w", f.template, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return fmt.Errorf("failed to render %s: %w", f.path, err)
		}

		dest := filepath.Join(dir, f.path)
		fh, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, f.permissions)
		if err != nil {
			if os.IsExist(err) {
				if force {
					fmt.Printf("⚠ Keeping existing %s\n", f.path)
					continue
				}
				return fmt.Errorf("refusing to overwrite existing file: %s", f.path)
			}
			return fmt.Errorf("failed to create %s: %w", f.path, err)
		}
		if _, err := fh.Write(buf.Bytes()); err != nil {
			fh.Close()
			return fmt.Errorf("failed to write %s: %w", f.path, err)
		}
		if err := fh.Close(); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.path, err)
		}
	}
	return nil
}

// validateCreatedConfig parses the benchtop.yml that was just written.
func validateCreatedConfig(dir string) error {
	content, err := os.ReadFile(filepath.Join(dir, layout.ConfigFile))
	if err != nil {
		return fmt.Errorf("failed to read created %s: %w", layout.ConfigFile, err)
	}

	var yamlData interface{}
	if err := yaml.Unmarshal(content, &yamlData); err != nil {
		return fmt.Errorf("created %s is not valid YAML: %w", layout.ConfigFile, err)
	}
	return nil
}

// PrintSuccess prints the post-init summary with next steps.
func PrintSuccess(name string) {
	fmt.Printf("\n✅ Initialized benchtop project '%s'\n", name)
	fmt.Println("\nCreated:")
	for _, d := range layout.Dirs() {
		fmt.Printf("  ✓ %s/\n", d)
	}
	for _, f := range seedFiles {
		fmt.Printf("  ✓ %s\n", f.path)
	}
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Record your samples in lib/samples.tsv")
	fmt.Println("  2. Run 'benchtop new \"<short description>\"' to start the first analysis")
	fmt.Println("  3. Commit the scaffold before generating data")
}
