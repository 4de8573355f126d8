package analysis

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilename(t *testing.T) {
	tests := []struct {
		name       string
		filename   string
		wantOK     bool
		wantNumber int
		wantSlug   string
		wantExt    string
	}{
		{"standard rmd", "0001_qc-raw-reads.Rmd", true, 1, "qc-raw-reads", "Rmd"},
		{"standard md", "0042_variant-calling.md", true, 42, "variant-calling", "md"},
		{"wider number", "000123_deep-dive.Rmd", true, 123, "deep-dive", "Rmd"},
		{"underscores in slug", "0007_batch_effect.Rmd", true, 7, "batch_effect", "Rmd"},
		{"no number", "notes.Rmd", false, 0, "", ""},
		{"short number", "01_x.Rmd", false, 0, "", ""},
		{"uppercase slug", "0001_QC.Rmd", false, 0, "", ""},
		{"wrong extension", "0001_qc.html", false, 0, "", ""},
		{"missing underscore", "0001qc.Rmd", false, 0, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, slug, ext, ok := ParseFilename(tt.filename)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantNumber, n)
				assert.Equal(t, tt.wantSlug, slug)
				assert.Equal(t, tt.wantExt, ext)
			}
		})
	}
}

func TestFilename_ZeroPadding(t *testing.T) {
	assert.Equal(t, "0001_qc.Rmd", Filename(1, 4, "qc", "Rmd"))
	assert.Equal(t, "0099_qc.md", Filename(99, 4, "qc", "md"))
	assert.Equal(t, "00007_qc.Rmd", Filename(7, 5, "qc", "Rmd"))
	assert.Equal(t, "1000_qc.Rmd", Filename(1000, 4, "qc", "Rmd"))
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"QC of raw reads", "qc-of-raw-reads", false},
		{"  spaced   out  ", "spaced-out", false},
		{"DESeq2: tumor vs normal", "deseq2-tumor-vs-normal", false},
		{"already-a-slug", "already-a-slug", false},
		{"ünïcödé trimmed", "ncd-trimmed", false},
		{"???", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Slugify(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextNumber(t *testing.T) {
	dir := t.TempDir()

	// Empty directory starts at 1.
	n, err := NextNumber(dir, 4)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// Missing directory also starts at 1.
	n, err = NextNumber(filepath.Join(dir, "missing"), 4)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	touch := func(name string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}

	touch("0001_first.Rmd")
	touch("0002_second.md")
	n, err = NextNumber(dir, 4)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// Gaps are tolerated: next is always max+1.
	touch("0009_jumped-ahead.Rmd")
	n, err = NextNumber(dir, 4)
	require.NoError(t, err)
	assert.Equal(t, 10, n)

	// Non-conforming files are invisible to numbering.
	touch("scratch.Rmd")
	touch("9999-not-an-analysis.txt")
	n, err = NextNumber(dir, 4)
	require.NoError(t, err)
	assert.Equal(t, 10, n)
}

func TestNextNumber_Exhausted(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "999_last.Rmd"), nil, 0644))

	_, err := NextNumber(dir, 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "numbering exhausted")
}
