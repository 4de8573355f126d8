package samples

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	input := `# mapping for run 42
sample-a	/shared/seq/run42/sample-a_R1.fastq.gz

sample_b   data/raw/sample_b.bam
`
	entries, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "sample-a", entries[0].Name)
	assert.Equal(t, "/shared/seq/run42/sample-a_R1.fastq.gz", entries[0].Path)
	assert.Equal(t, 2, entries[0].Line)

	assert.Equal(t, "sample_b", entries[1].Name)
	assert.Equal(t, "data/raw/sample_b.bam", entries[1].Path)
	assert.Equal(t, 4, entries[1].Line)
}

func TestParse_MalformedLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"name only", "lonely-sample\n"},
		{"three fields", "s1 /a/b /c/d\n"},
		{"bad name", "-bad /a/b\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "line 1")
		})
	}
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	entries, err := Load(filepath.Join(t.TempDir(), "samples.tsv"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAdd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.tsv")

	require.NoError(t, Add(path, "sample-a", "/data/a.fastq.gz"))
	require.NoError(t, Add(path, "sample-b", "/data/b.fastq.gz"))

	entries, err := Load(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	got, ok := Lookup(entries, "sample-b")
	assert.True(t, ok)
	assert.Equal(t, "/data/b.fastq.gz", got)
}

func TestAdd_PreservesHandEditedContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.tsv")
	existing := "# curated by hand\nsample-a\t/data/a.fastq.gz\n"
	require.NoError(t, os.WriteFile(path, []byte(existing), 0644))

	require.NoError(t, Add(path, "sample-b", "/data/b.fastq.gz"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), existing), "existing lines must be untouched")
}

func TestAdd_Duplicate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.tsv")
	require.NoError(t, Add(path, "sample-a", "/data/a.fastq.gz"))

	err := Add(path, "sample-a", "/data/other.fastq.gz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already mapped")
}

func TestAdd_WhitespacePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.tsv")
	err := Add(path, "sample-a", "/data/with space.fastq.gz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "whitespace")
}

func TestVerify(t *testing.T) {
	root := t.TempDir()
	present := filepath.Join(root, "lib", "ref.fa")
	require.NoError(t, os.MkdirAll(filepath.Dir(present), 0755))
	require.NoError(t, os.WriteFile(present, nil, 0644))

	entries := []Entry{
		{Name: "ok-abs", Path: present, Line: 1},
		{Name: "ok-rel", Path: "lib/ref.fa", Line: 2},
		{Name: "gone", Path: "/nonexistent/path.bam", Line: 3},
		{Name: "ok-abs", Path: "/elsewhere.bam", Line: 4},
	}

	problems := Verify(root, entries)
	require.Len(t, problems, 2)

	assert.Equal(t, "gone", problems[0].Entry.Name)
	assert.False(t, problems[0].Fatal)

	assert.Equal(t, "ok-abs", problems[1].Entry.Name)
	assert.True(t, problems[1].Fatal)
	assert.Contains(t, problems[1].Reason, "duplicate of line 1")
}
