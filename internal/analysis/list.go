package analysis

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/benchtop/benchtop/internal/layout"
)

// Entry describes one numbered analysis document on disk.
type Entry struct {
	Number   int       `json:"number"`
	Slug     string    `json:"slug"`
	Ext      string    `json:"ext"`
	Name     string    `json:"name"`
	Title    string    `json:"title,omitempty"`
	Modified time.Time `json:"modified"`
}

// FilterCriteria narrows a listing. Zero values mean no filter.
type FilterCriteria struct {
	Since    time.Time // only documents modified at or after this time
	SlugGlob string    // filepath.Match pattern against the slug
}

func (fc *FilterCriteria) matches(e Entry) bool {
	if !fc.Since.IsZero() && e.Modified.Before(fc.Since) {
		return false
	}
	if fc.SlugGlob != "" {
		matched, err := filepath.Match(fc.SlugGlob, e.Slug)
		if err != nil || !matched {
			return false
		}
	}
	return true
}

// List returns the analysis documents under root in sequence order.
// Files that do not follow the naming convention are ignored here;
// check reports them. Applies filters if provided.
func List(root string, filters *FilterCriteria) ([]Entry, error) {
	dir := filepath.Join(root, layout.AnalysisDir)
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", layout.AnalysisDir, err)
	}

	var entries []Entry
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		n, slug, ext, ok := ParseFilename(de.Name())
		if !ok {
			continue
		}

		info, err := de.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", de.Name(), err)
		}

		e := Entry{
			Number:   n,
			Slug:     slug,
			Ext:      ext,
			Name:     de.Name(),
			Title:    readTitle(filepath.Join(dir, de.Name())),
			Modified: info.ModTime(),
		}
		if filters != nil && !filters.matches(e) {
			continue
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Number != entries[j].Number {
			return entries[i].Number < entries[j].Number
		}
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

// readTitle pulls a human title out of the first lines of a document:
// the front-matter "title:" field for Rmd, or the first heading for md.
// A document with neither just lists without a title.
func readTitle(path string) string {
	fh, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer fh.Close()

	scanner := bufio.NewScanner(fh)
	for lines := 0; scanner.Scan() && lines < 20; lines++ {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "title:") {
			return strings.Trim(strings.TrimSpace(strings.TrimPrefix(line, "title:")), `"'`)
		}
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return ""
}
