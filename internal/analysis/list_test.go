package analysis

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDoc(t *testing.T, root, name, content string) {
	t.Helper()
	dir := filepath.Join(root, "analysis")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestList_SortedAndTitled(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "0002_alignment.Rmd", "---\ntitle: \"Alignment to GRCh38\"\n---\n")
	writeDoc(t, root, "0001_qc.md", "# QC of raw reads\n\nbody\n")
	writeDoc(t, root, "notes.txt", "not an analysis\n")

	entries, err := List(root, nil)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, 1, entries[0].Number)
	assert.Equal(t, "QC of raw reads", entries[0].Title)
	assert.Equal(t, 2, entries[1].Number)
	assert.Equal(t, "Alignment to GRCh38", entries[1].Title)
}

func TestList_NoAnalysisDir(t *testing.T) {
	entries, err := List(t.TempDir(), nil)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestList_SinceFilter(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "0001_old.Rmd", "")
	writeDoc(t, root, "0002_new.Rmd", "")

	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(root, "analysis", "0001_old.Rmd"), old, old))

	entries, err := List(root, &FilterCriteria{Since: time.Now().Add(-time.Hour)})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "new", entries[0].Slug)
}

func TestList_SlugGlob(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "0001_qc-reads.Rmd", "")
	writeDoc(t, root, "0002_qc-alignment.Rmd", "")
	writeDoc(t, root, "0003_deseq.Rmd", "")

	entries, err := List(root, &FilterCriteria{SlugGlob: "qc-*"})
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestFormatTable(t *testing.T) {
	var buf bytes.Buffer
	n := FormatTable(&buf, []Entry{
		{Number: 1, Name: "0001_qc.Rmd", Title: "QC of raw reads", Modified: time.Now()},
		{Number: 2, Name: "0002_alignment.Rmd", Modified: time.Now().Add(-2 * time.Hour)},
	})

	assert.Equal(t, 2, n)
	out := buf.String()
	assert.Contains(t, out, "0001_qc.Rmd")
	assert.Contains(t, out, "QC of raw reads")
	assert.Contains(t, out, "2h ago")
	assert.Contains(t, out, "2 analysis documents")
}

func TestFormatTable_TruncatesMultiByteTitles(t *testing.T) {
	var buf bytes.Buffer
	title := strings.Repeat("é", 60) // 2 bytes per rune, over the title column width
	FormatTable(&buf, []Entry{
		{Number: 1, Name: "0001_qc.Rmd", Title: title, Modified: time.Now()},
	})

	out := buf.String()
	assert.True(t, utf8.ValidString(out), "truncation must not split a rune")
	assert.Contains(t, out, strings.Repeat("é", 45)+"...")
}

func TestFormatTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	n := FormatTable(&buf, nil)
	assert.Equal(t, 0, n)
	assert.Contains(t, buf.String(), "No analysis documents")
}

func TestFormatJSONL(t *testing.T) {
	var buf bytes.Buffer
	err := FormatJSONL(&buf, []Entry{
		{Number: 1, Slug: "qc", Ext: "Rmd", Name: "0001_qc.Rmd"},
		{Number: 2, Slug: "alignment", Ext: "Rmd", Name: "0002_alignment.Rmd"},
	})
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var e Entry
	require.NoError(t, json.Unmarshal(lines[0], &e))
	assert.Equal(t, 1, e.Number)
	assert.Equal(t, "qc", e.Slug)
}
