package scaffold

import (
	"fmt"

	"github.com/benchtop/benchtop/internal/config"
)

// ValidateOptions checks init options and fills in defaults.
func ValidateOptions(opts *Options) error {
	if err := config.ValidateName(opts.Name); err != nil {
		return err
	}

	if opts.Format == "" {
		opts.Format = config.DefaultFormat
	}
	if opts.Format != "rmd" && opts.Format != "md" {
		return fmt.Errorf("invalid analysis format: %s (must be 'rmd' or 'md')", opts.Format)
	}

	if opts.Engine == "" {
		opts.Engine = "docker"
	}
	switch opts.Engine {
	case "docker", "podman", "apptainer":
	default:
		return fmt.Errorf("invalid container engine: %s (must be 'docker', 'podman', or 'apptainer')", opts.Engine)
	}

	return nil
}
