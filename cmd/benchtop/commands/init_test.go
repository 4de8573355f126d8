package commands

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir moves the test into dir and restores the working directory on
// cleanup. Command RunE functions resolve the project from the cwd.
func chdir(t *testing.T, dir string) {
	t.Helper()
	original, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(original) })
}

// gitRepo creates a temp directory with a fresh git repository.
func gitRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	cmd := exec.Command("git", "init", "-q")
	cmd.Dir = dir
	require.NoError(t, cmd.Run())
	return dir
}

// execute runs the CLI in-process with flag state reset between runs.
func execute(t *testing.T, args ...string) error {
	t.Helper()
	initName, initFormat, initEngine, forceInit = "", "", "", false
	listOutputFormat, listSince, listSlugGlob = "default", "", ""
	samplesJSON, rulesJSON, checkJSON = false, false, false
	statusJSON, statusDigest, statusLargest = false, false, 10

	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestInitCommand(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		setupFunc func(t *testing.T) string
		wantErr   string
	}{
		{
			name:      "successful init in git repo",
			args:      []string{"init", "--name", "rnaseq-2026"},
			setupFunc: gitRepo,
		},
		{
			name: "fails when not in git repo",
			args: []string{"init", "--name", "proj"},
			setupFunc: func(t *testing.T) string {
				return t.TempDir()
			},
			wantErr: "not a Git repository",
		},
		{
			name: "fails when not at git root",
			args: []string{"init", "--name", "proj"},
			setupFunc: func(t *testing.T) string {
				dir := gitRepo(t)
				sub := filepath.Join(dir, "subdir")
				require.NoError(t, os.MkdirAll(sub, 0755))
				return sub
			},
			wantErr: "repository root",
		},
		{
			name: "fails when already initialized",
			args: []string{"init", "--name", "proj"},
			setupFunc: func(t *testing.T) string {
				dir := gitRepo(t)
				require.NoError(t, os.WriteFile(filepath.Join(dir, "benchtop.yml"), []byte("version: \"1\"\n"), 0644))
				return dir
			},
			wantErr: "already initialized",
		},
		{
			name: "rejects invalid project name",
			args: []string{"init", "--name", "My Project"},
			setupFunc: func(t *testing.T) string {
				return gitRepo(t)
			},
			wantErr: "invalid project name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := tt.setupFunc(t)
			chdir(t, dir)

			err := execute(t, tt.args...)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)

			for _, f := range []string{
				"benchtop.yml",
				"README.md",
				".gitignore",
				"Snakefile",
				"Dockerfile",
				filepath.Join("lib", "samples.tsv"),
			} {
				_, err := os.Stat(filepath.Join(dir, f))
				assert.NoError(t, err, "expected %s to exist", f)
			}
			for _, d := range []string{"analysis", "scripts", "lib", "data"} {
				info, err := os.Stat(filepath.Join(dir, d))
				require.NoError(t, err)
				assert.True(t, info.IsDir())
			}
		})
	}
}

// The detailed remediation hint goes to stderr; the error cobra sees carries
// only the first line, so it is not printed twice.
func TestInitCommand_GitFailureErrorIsTitleOnly(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	chdir(t, t.TempDir())

	err := execute(t, "init", "--name", "proj")
	require.Error(t, err)
	assert.Equal(t, "not a Git repository", err.Error())
}

func TestInitCommand_ForceKeepsUserFiles(t *testing.T) {
	dir := gitRepo(t)
	chdir(t, dir)
	require.NoError(t, execute(t, "init", "--name", "proj"))

	doc := filepath.Join(dir, "analysis", "0001_qc.Rmd")
	require.NoError(t, os.WriteFile(doc, []byte("mine"), 0644))

	require.NoError(t, execute(t, "init", "--name", "proj-two", "--force"))

	got, err := os.ReadFile(doc)
	require.NoError(t, err)
	assert.Equal(t, "mine", string(got))
}
