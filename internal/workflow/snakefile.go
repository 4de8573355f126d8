// Package workflow inventories and extends the workflow-definition file.
// The file's format and execution semantics belong to the external
// orchestration tool; benchtop limits itself to what the project convention
// needs: listing the rules that have accumulated, and appending stubs so new
// rules start in a consistent shape.
package workflow

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Rule is one top-level rule declaration in the workflow file.
type Rule struct {
	Name string `json:"name"`
	Line int    `json:"line"` // 1-based line of the declaration
}

// rulePattern matches top-level rule declarations. Indented rules belong to
// conditional blocks and are still rules to the workflow tool, so only the
// column-zero requirement distinguishes "top-level" here.
var rulePattern = regexp.MustCompile(`^(?:checkpoint|rule)\s+([A-Za-z_][A-Za-z0-9_]*)\s*:`)

// namePattern matches valid rule names: the workflow tool wants Python
// identifiers.
var namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateRuleName checks a rule name.
func ValidateRuleName(name string) error {
	if name == "" {
		return fmt.Errorf("rule name cannot be empty")
	}
	if !namePattern.MatchString(name) {
		return fmt.Errorf("invalid rule name %q: must be an identifier (letters, digits, underscores, not starting with a digit)", name)
	}
	return nil
}

// Rules scans the workflow file for rule declarations, in file order.
// A missing file yields no rules.
func Rules(path string) ([]Rule, error) {
	fh, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer fh.Close()

	var rules []Rule
	scanner := bufio.NewScanner(fh)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if m := rulePattern.FindStringSubmatch(scanner.Text()); m != nil {
			rules = append(rules, Rule{Name: m[1], Line: lineNo})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return rules, nil
}

// ruleStub is the skeleton appended for a new rule. Inputs and outputs are
// deliberately empty: filling them in is the researcher's next edit.
const ruleStub = `

rule %s:
    input:
        []
    output:
        []
    shell:
        "true  # replace with the real command"
`

// AddRule appends a stub rule to the workflow file, creating the file when
// it does not exist yet. A rule with the same name already in the file is
// an error.
func AddRule(path, name string) error {
	if err := ValidateRuleName(name); err != nil {
		return err
	}

	existing, err := Rules(path)
	if err != nil {
		return err
	}
	for _, r := range existing {
		if r.Name == name {
			return fmt.Errorf("rule %q already defined at line %d of %s", name, r.Line, path)
		}
	}

	fh, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer fh.Close()

	stub := fmt.Sprintf(ruleStub, name)
	if len(existing) == 0 {
		// Fresh or empty file: no need for the leading separation.
		stub = strings.TrimLeft(stub, "\n")
	}
	if _, err := fh.WriteString(stub); err != nil {
		return fmt.Errorf("failed to append to %s: %w", path, err)
	}
	return nil
}
