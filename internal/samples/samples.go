// Package samples reads and maintains the sample-to-path mapping file: a
// flat text file pairing sample names with the fixed locations of large data
// files. The file stays hand-editable; benchtop only appends to it and
// checks it, it never rewrites existing lines.
package samples

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Entry is one sample-name-to-path pair.
type Entry struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Line int    `json:"line"` // 1-based line number in the mapping file
}

// namePattern matches valid sample names. Same character class as project
// names but underscores are allowed: sequencing cores love them.
var namePattern = regexp.MustCompile(`^[a-z0-9A-Z]([-_a-z0-9A-Z.]*[a-z0-9A-Z])?$`)

// ValidateName checks a sample name.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("sample name cannot be empty")
	}
	if !namePattern.MatchString(name) {
		return fmt.Errorf("invalid sample name %q: alphanumeric with '-', '_' or '.' (not at start/end)", name)
	}
	return nil
}

// Parse reads the mapping: one "name whitespace path" pair per line, '#'
// comments and blank lines ignored. A line without both fields is an error;
// the path is everything after the first whitespace run, so paths themselves
// may not contain whitespace.
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: expected 'sample<whitespace>path', got %q", lineNo, line)
		}
		if err := ValidateName(fields[0]); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		entries = append(entries, Entry{Name: fields[0], Path: fields[1], Line: lineNo})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read mapping: %w", err)
	}
	return entries, nil
}

// Load parses the mapping file at path. A missing file is an empty mapping,
// not an error: projects start without samples.
func Load(path string) ([]Entry, error) {
	fh, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer fh.Close()

	entries, err := Parse(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// Lookup returns the path mapped to name.
func Lookup(entries []Entry, name string) (string, bool) {
	for _, e := range entries {
		if e.Name == name {
			return e.Path, true
		}
	}
	return "", false
}

// Add appends a new mapping line to the file, creating it if missing.
// A duplicate sample name is an error.
func Add(path, name, dataPath string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if dataPath == "" {
		return fmt.Errorf("data path cannot be empty")
	}
	if strings.ContainsAny(dataPath, " \t") {
		return fmt.Errorf("data path %q may not contain whitespace", dataPath)
	}

	entries, err := Load(path)
	if err != nil {
		return err
	}
	if existing, ok := Lookup(entries, name); ok {
		return fmt.Errorf("sample %q already mapped to %s", name, existing)
	}

	fh, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer fh.Close()

	if _, err := fmt.Fprintf(fh, "%s\t%s\n", name, dataPath); err != nil {
		return fmt.Errorf("failed to append to %s: %w", path, err)
	}
	return nil
}

// Problem describes one issue found by Verify.
type Problem struct {
	Entry  Entry
	Reason string
	Fatal  bool // duplicates are fatal; unreachable paths are advisory
}

// Verify checks entries for duplicate names and for paths that do not exist
// on this machine. Relative paths resolve against root. Missing paths are
// advisory only: the mapping routinely points at cluster filesystems that
// are not mounted everywhere.
func Verify(root string, entries []Entry) []Problem {
	var problems []Problem

	seen := make(map[string]int) // name -> first line
	for _, e := range entries {
		if first, dup := seen[e.Name]; dup {
			problems = append(problems, Problem{
				Entry:  e,
				Reason: fmt.Sprintf("duplicate of line %d", first),
				Fatal:  true,
			})
			continue
		}
		seen[e.Name] = e.Line

		p := e.Path
		if !filepath.IsAbs(p) {
			p = filepath.Join(root, p)
		}
		if _, err := os.Stat(p); err != nil {
			problems = append(problems, Problem{
				Entry:  e,
				Reason: "path not found on this machine",
			})
		}
	}
	return problems
}
