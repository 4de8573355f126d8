// Package check lints a benchtop project against the layout convention.
// The convention is deliberately unenforced day to day (files are created by
// hand, by editors, by cluster jobs); check is where drift gets noticed.
package check

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/benchtop/benchtop/internal/analysis"
	"github.com/benchtop/benchtop/internal/config"
	"github.com/benchtop/benchtop/internal/gitutil"
	"github.com/benchtop/benchtop/internal/layout"
	"github.com/benchtop/benchtop/internal/samples"
)

// Severity classifies a finding.
type Severity string

const (
	// SeverityError findings make check exit non-zero: the convention is
	// broken in a way that will bite (duplicate numbers, unparseable files).
	SeverityError Severity = "error"

	// SeverityWarning findings are drift worth fixing but not breakage.
	SeverityWarning Severity = "warning"
)

// Finding is one issue discovered during a check run.
type Finding struct {
	Severity Severity `json:"severity"`
	Path     string   `json:"path,omitempty"`
	Message  string   `json:"message"`
}

// Report is the outcome of checking a project.
type Report struct {
	Findings []Finding `json:"findings"`
}

// Errors returns the number of error-severity findings.
func (r *Report) Errors() int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			n++
		}
	}
	return n
}

// Warnings returns the number of warning-severity findings.
func (r *Report) Warnings() int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == SeverityWarning {
			n++
		}
	}
	return n
}

func (r *Report) add(sev Severity, path, format string, a ...any) {
	r.Findings = append(r.Findings, Finding{
		Severity: sev,
		Path:     path,
		Message:  fmt.Sprintf(format, a...),
	})
}

// Run checks the project at root and returns the report. Check never
// mutates the tree.
func Run(root string, cfg *config.Config) (*Report, error) {
	r := &Report{}

	checkLayout(r, root, cfg)
	if err := checkAnalyses(r, root, cfg); err != nil {
		return nil, err
	}
	checkSamples(r, root, cfg)
	checkLibPermissions(r, root)
	checkDataHygiene(r, root)

	return r, nil
}

// checkLayout verifies the canonical directory set and the conventional
// files exist.
func checkLayout(r *Report, root string, cfg *config.Config) {
	for _, d := range layout.Dirs() {
		info, err := os.Stat(filepath.Join(root, d))
		if err != nil {
			r.add(SeverityError, d, "required directory missing")
			continue
		}
		if !info.IsDir() {
			r.add(SeverityError, d, "expected a directory, found a file")
		}
	}

	if _, err := os.Stat(filepath.Join(root, cfg.Workflow.File)); err != nil {
		r.add(SeverityWarning, cfg.Workflow.File, "workflow-definition file missing")
	}
	if _, err := os.Stat(filepath.Join(root, cfg.Container.File)); err != nil {
		r.add(SeverityWarning, cfg.Container.File, "container definition file missing")
	}
}

// checkAnalyses verifies the numbered document series: conforming names,
// configured zero-pad width, no duplicate numbers, and flags gaps.
func checkAnalyses(r *Report, root string, cfg *config.Config) error {
	dir := filepath.Join(root, layout.AnalysisDir)
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // already reported by checkLayout
		}
		return fmt.Errorf("failed to read %s: %w", layout.AnalysisDir, err)
	}

	width := cfg.NumberWidth()
	byNumber := make(map[int][]string)
	var numbers []int

	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		name := de.Name()
		rel := filepath.Join(layout.AnalysisDir, name)

		n, _, _, ok := analysis.ParseFilename(name)
		if !ok {
			r.add(SeverityWarning, rel, "does not follow the NNNN_short-description naming convention")
			continue
		}

		// Width check: the numeric prefix runs up to the first underscore.
		prefix := name[:strings.IndexByte(name, '_')]
		if len(prefix) != width {
			r.add(SeverityWarning, rel, "sequence number has width %d, project uses %d", len(prefix), width)
		}

		if len(byNumber[n]) == 0 {
			numbers = append(numbers, n)
		}
		byNumber[n] = append(byNumber[n], name)
	}

	for _, n := range numbers {
		if names := byNumber[n]; len(names) > 1 {
			r.add(SeverityError, layout.AnalysisDir, "sequence number %0*d used by %d documents: %s", width, n, len(names), strings.Join(names, ", "))
		}
	}

	// Gaps: tolerated by numbering, but surfaced so a vanished document is
	// noticed rather than silently forgotten.
	max := 0
	for _, n := range numbers {
		if n > max {
			max = n
		}
	}
	for n := 1; n <= max; n++ {
		if _, ok := byNumber[n]; !ok {
			r.add(SeverityWarning, layout.AnalysisDir, "gap in the analysis series: %0*d is missing", width, n)
		}
	}

	return nil
}

// checkSamples parses the mapping file and surfaces verify problems.
func checkSamples(r *Report, root string, cfg *config.Config) {
	path := filepath.Join(root, cfg.Samples.File)
	entries, err := samples.Load(path)
	if err != nil {
		r.add(SeverityError, cfg.Samples.File, "%v", err)
		return
	}

	for _, p := range samples.Verify(root, entries) {
		sev := SeverityWarning
		if p.Fatal {
			sev = SeverityError
		}
		r.add(sev, cfg.Samples.File, "sample %q (line %d): %s", p.Entry.Name, p.Entry.Line, p.Reason)
	}
}

// checkLibPermissions flags writable reference data. lib/ is a read-only
// store; group- or world-writable files there tend to get clobbered by
// well-meaning cluster jobs.
func checkLibPermissions(r *Report, root string) {
	libDir := filepath.Join(root, layout.LibDir)
	_ = filepath.WalkDir(libDir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.Mode().Perm()&0022 != 0 {
			rel, _ := filepath.Rel(root, path)
			r.add(SeverityWarning, rel, "reference file is group/world-writable (mode %04o)", info.Mode().Perm())
		}
		return nil
	})
}

// checkDataHygiene flags generated data that found its way into version
// control, and a .gitignore that would let it.
func checkDataHygiene(r *Report, root string) {
	gitignore, err := os.ReadFile(filepath.Join(root, layout.GitignoreFile))
	switch {
	case err != nil:
		r.add(SeverityWarning, layout.GitignoreFile, "missing; generated data under %s/ will end up in version control", layout.DataDir)
	case !strings.Contains(string(gitignore), layout.DataDir+"/"):
		r.add(SeverityWarning, layout.GitignoreFile, "does not ignore %s/", layout.DataDir)
	}

	checker := &gitutil.Checker{Dir: root}
	isRepo, err := checker.IsRepository()
	if err != nil || !isRepo {
		return // no repository, nothing tracked
	}

	tracked, err := checker.TrackedUnder(layout.DataDir)
	if err != nil {
		return
	}
	for _, f := range tracked {
		r.add(SeverityWarning, f, "generated artifact is tracked by Git; %s/ should stay out of history", layout.DataDir)
	}
}
