// Package analysis manages the chronologically numbered document series
// under analysis/. Documents get the next zero-padded sequence number on
// creation and are never renamed or renumbered afterwards: the series is the
// project's historical record.
package analysis

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// MaxSlugLength caps the descriptive part of an analysis filename.
const MaxSlugLength = 60

// filePattern matches analysis document filenames: a zero-padded sequence
// number, an underscore, a slug, and a document extension.
var filePattern = regexp.MustCompile(`^(\d{3,6})_([a-z0-9][a-z0-9-_]*)\.(Rmd|md)$`)

// slugStrip matches everything a slug may not contain.
var slugStrip = regexp.MustCompile(`[^a-z0-9-_]+`)

// ParseFilename splits an analysis filename into number, slug, and
// extension. Returns ok=false for files that do not follow the convention.
func ParseFilename(name string) (number int, slug, ext string, ok bool) {
	m := filePattern.FindStringSubmatch(name)
	if m == nil {
		return 0, "", "", false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, "", "", false
	}
	return n, m[2], m[3], true
}

// Filename builds the canonical filename for a numbered analysis document.
func Filename(number, width int, slug, ext string) string {
	return fmt.Sprintf("%0*d_%s.%s", width, number, slug, ext)
}

// Slugify normalizes a free-form description into a filename slug:
// lowercase, runs of whitespace become single hyphens, everything outside
// [a-z0-9-_] is dropped.
func Slugify(s string) (string, error) {
	slug := strings.ToLower(strings.TrimSpace(s))
	slug = strings.Join(strings.Fields(slug), "-")
	slug = slugStrip.ReplaceAllString(slug, "")
	slug = strings.Trim(slug, "-_")

	if slug == "" {
		return "", fmt.Errorf("description %q produces an empty slug (use letters, digits, hyphens)", s)
	}
	if len(slug) > MaxSlugLength {
		return "", fmt.Errorf("slug too long: %d characters (max: %d)", len(slug), MaxSlugLength)
	}
	return slug, nil
}

// NextNumber scans dir for numbered analysis documents and returns the next
// sequence number: one past the highest in use. Gaps in the series are
// tolerated (deleted drafts happen); numbers are never reused below the
// maximum. An empty or missing directory starts at 1.
func NextNumber(dir string, width int) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 1, nil
		}
		return 0, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	highest := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if n, _, _, ok := ParseFilename(e.Name()); ok && n > highest {
			highest = n
		}
	}

	next := highest + 1
	if next >= pow10(width) {
		return 0, fmt.Errorf("analysis numbering exhausted: %d does not fit in %d digits", next, width)
	}
	return next, nil
}

func pow10(n int) int {
	p := 1
	for i := 0; i < n; i++ {
		p *= 10
	}
	return p
}
