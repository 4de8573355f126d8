package analysis

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// OutputFormat specifies how to format the analysis listing.
type OutputFormat string

const (
	// OutputFormatDefault uses a column layout with truncated titles.
	OutputFormatDefault OutputFormat = "default"

	// OutputFormatJSONL outputs complete entries as line-delimited JSON.
	OutputFormatJSONL OutputFormat = "jsonl"
)

// FormatTable writes entries as an aligned listing. Returns the number of
// entries written.
func FormatTable(w io.Writer, entries []Entry) int {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No analysis documents found")
		return 0
	}

	fmt.Fprintf(w, "%-6s %-34s %-12s %s\n", "NUM", "DOCUMENT", "MODIFIED", "TITLE")
	fmt.Fprintf(w, "%-6s %-34s %-12s %s\n", "------", "----------------------------------", "------------", "--------------------")

	for _, e := range entries {
		fmt.Fprintf(w, "%-6d %-34s %-12s %s\n",
			e.Number,
			truncate(e.Name, 34),
			formatAge(e.Modified),
			truncate(e.Title, 48),
		)
	}

	noun := "document"
	if len(entries) != 1 {
		noun = "documents"
	}
	fmt.Fprintf(w, "\n%d analysis %s\n", len(entries), noun)
	return len(entries)
}

// FormatJSONL writes entries as line-delimited JSON, one per line.
func FormatJSONL(w io.Writer, entries []Entry) error {
	for _, e := range entries {
		data, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("failed to marshal entry to JSON: %w", err)
		}
		if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
			return fmt.Errorf("failed to write JSONL output: %w", err)
		}
	}
	return nil
}

// truncate counts runes, not bytes, so multi-byte titles stay valid UTF-8.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

// formatAge renders a modification time as a compact relative age.
func formatAge(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours())/24)
	}
}
