// Package layout defines the canonical on-disk structure of a benchtop
// project. Every other package refers to these names rather than spelling
// paths out, so the convention lives in exactly one place.
package layout

const (
	// ConfigFile is the project configuration file at the project root.
	// Its presence marks a directory as a benchtop project.
	ConfigFile = "benchtop.yml"

	// AnalysisDir holds chronologically numbered analysis documents.
	AnalysisDir = "analysis"

	// ScriptsDir holds executable utilities shared between analyses and
	// workflow rules.
	ScriptsDir = "scripts"

	// LibDir is the read-only store for externally sourced reference data
	// and static definitions.
	LibDir = "lib"

	// DataDir holds generated and intermediate artifacts. Its contents are
	// reproducible from the workflow and stay out of version control.
	DataDir = "data"

	// WorkflowFile is the default workflow-definition file consumed by the
	// external orchestration tool.
	WorkflowFile = "Snakefile"

	// ContainerFile is the default software environment definition consumed
	// by the external container runtime.
	ContainerFile = "Dockerfile"

	// ReadmeFile is seeded at the project root during init.
	ReadmeFile = "README.md"

	// GitignoreFile is seeded at the project root during init.
	GitignoreFile = ".gitignore"
)

// SamplesFile is the default sample-to-path mapping file, relative to the
// project root. It lives under lib/ because it is static input, not a
// generated artifact.
const SamplesFile = LibDir + "/samples.tsv"

// Dirs returns the directories init creates, in creation order.
func Dirs() []string {
	return []string{AnalysisDir, ScriptsDir, LibDir, DataDir}
}
