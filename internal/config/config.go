package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/benchtop/benchtop/internal/layout"
)

// SupportedVersion is the only benchtop.yml schema version this build reads.
const SupportedVersion = "1"

const (
	// DefaultNumberWidth is the zero-padded width of analysis numbers.
	DefaultNumberWidth = 4

	// MinNumberWidth and MaxNumberWidth bound the configurable width.
	MinNumberWidth = 3
	MaxNumberWidth = 6
)

// DefaultFormat is the analysis document format used when none is configured.
const DefaultFormat = "rmd"

// namePattern matches valid project names: lowercase alphanumeric with
// hyphens, not at the start or end. Names end up in file paths and workflow
// rule names, so they follow DNS label rules.
var namePattern = regexp.MustCompile(`^[a-z0-9]([-a-z0-9]*[a-z0-9])?$`)

// MaxNameLength caps project names.
const MaxNameLength = 63

// Config represents the top-level benchtop.yml configuration.
type Config struct {
	Version   string           `yaml:"version"`
	Name      string           `yaml:"name"`
	ID        string           `yaml:"id,omitempty"` // assigned at init, stable for the project's life
	Analysis  *AnalysisConfig  `yaml:"analysis,omitempty"`
	Samples   *SamplesConfig   `yaml:"samples,omitempty"`
	Workflow  *WorkflowConfig  `yaml:"workflow,omitempty"`
	Container *ContainerConfig `yaml:"container,omitempty"`
}

// AnalysisConfig controls analysis document naming.
type AnalysisConfig struct {
	Format string `yaml:"format,omitempty"` // "rmd" or "md"
	Width  *int   `yaml:"width,omitempty"`  // zero-pad width for sequence numbers
}

// SamplesConfig locates the sample-to-path mapping file.
type SamplesConfig struct {
	File string `yaml:"file,omitempty"`
}

// WorkflowConfig locates the workflow-definition file read by the external
// orchestration tool. Profile is passed through untouched; its meaning
// belongs to that tool.
type WorkflowConfig struct {
	File    string `yaml:"file,omitempty"`
	Profile string `yaml:"profile,omitempty"`
}

// ContainerConfig locates the software environment definition.
type ContainerConfig struct {
	File   string `yaml:"file,omitempty"`
	Engine string `yaml:"engine,omitempty"` // "docker", "podman", or "apptainer"
}

// ValidateName checks a project name against the naming rules.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("project name cannot be empty")
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("project name too long: %d characters (max: %d)", len(name), MaxNameLength)
	}
	if !namePattern.MatchString(name) {
		return fmt.Errorf("invalid project name '%s': must be lowercase alphanumeric with hyphens (not at start/end)", name)
	}
	return nil
}

// Validate performs strict validation and fills in defaults.
func (c *Config) Validate() error {
	if c.Version != SupportedVersion {
		return fmt.Errorf("unsupported version: %q (expected: %q)", c.Version, SupportedVersion)
	}

	if err := ValidateName(c.Name); err != nil {
		return err
	}

	if c.Analysis == nil {
		c.Analysis = &AnalysisConfig{}
	}
	if c.Analysis.Format == "" {
		c.Analysis.Format = DefaultFormat
	}
	if c.Analysis.Format != "rmd" && c.Analysis.Format != "md" {
		return fmt.Errorf("invalid analysis format: %s (must be 'rmd' or 'md')", c.Analysis.Format)
	}
	if c.Analysis.Width == nil {
		w := DefaultNumberWidth
		c.Analysis.Width = &w
	}
	if *c.Analysis.Width < MinNumberWidth || *c.Analysis.Width > MaxNumberWidth {
		return fmt.Errorf("analysis.width must be between %d and %d, got %d", MinNumberWidth, MaxNumberWidth, *c.Analysis.Width)
	}

	if c.Samples == nil {
		c.Samples = &SamplesConfig{}
	}
	if c.Samples.File == "" {
		c.Samples.File = layout.SamplesFile
	}

	if c.Workflow == nil {
		c.Workflow = &WorkflowConfig{}
	}
	if c.Workflow.File == "" {
		c.Workflow.File = layout.WorkflowFile
	}

	if c.Container == nil {
		c.Container = &ContainerConfig{}
	}
	if c.Container.File == "" {
		c.Container.File = layout.ContainerFile
	}
	switch c.Container.Engine {
	case "", "docker", "podman", "apptainer":
	default:
		return fmt.Errorf("invalid container engine: %s (must be 'docker', 'podman', or 'apptainer')", c.Container.Engine)
	}

	return nil
}

// NumberWidth returns the configured zero-pad width.
func (c *Config) NumberWidth() int {
	if c.Analysis == nil || c.Analysis.Width == nil {
		return DefaultNumberWidth
	}
	return *c.Analysis.Width
}

// Extension returns the filename extension for new analysis documents.
func (c *Config) Extension() string {
	if c.Analysis != nil && c.Analysis.Format == "md" {
		return "md"
	}
	return "Rmd"
}

// Load reads and validates benchtop.yml from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// FindRoot walks upward from dir looking for benchtop.yml, so subcommands
// work from anywhere inside the project. Returns the project root.
func FindRoot(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	for {
		candidate := filepath.Join(abs, layout.ConfigFile)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return abs, nil
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not a benchtop project (no %s found)\n\nRun 'benchtop init' at the root of your repository to create one", layout.ConfigFile)
		}
		abs = parent
	}
}

// LoadFrom locates the project root at or above dir and loads its config.
// Returns the root and the parsed config.
func LoadFrom(dir string) (string, *Config, error) {
	root, err := FindRoot(dir)
	if err != nil {
		return "", nil, err
	}
	cfg, err := Load(filepath.Join(root, layout.ConfigFile))
	if err != nil {
		return "", nil, err
	}
	return root, cfg, nil
}
