package analysis

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"github.com/benchtop/benchtop/internal/config"
	"github.com/benchtop/benchtop/internal/layout"
)

//go:embed templates/*
var templatesFS embed.FS

// ErrExists is returned when the target analysis document already exists.
// Callers treat this as a race with another writer, not a crash.
var ErrExists = errors.New("analysis document already exists")

// templateData is what the document templates render against.
type templateData struct {
	Title string
	Date  string
}

// Create makes the next numbered analysis document under root from the
// given free-form description. Returns the path of the new document,
// relative to root.
//
// Creation is O_EXCL: if two invocations race for the same number, one of
// them fails with ErrExists rather than clobbering the other's file.
func Create(root string, cfg *config.Config, description string) (string, error) {
	slug, err := Slugify(description)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(root, layout.AnalysisDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", layout.AnalysisDir, err)
	}

	width := cfg.NumberWidth()
	number, err := NextNumber(dir, width)
	if err != nil {
		return "", err
	}

	name := Filename(number, width, slug, cfg.Extension())
	content, err := render(cfg.Extension(), templateData{
		Title: description,
		Date:  time.Now().Format("2006-01-02"),
	})
	if err != nil {
		return "", err
	}

	dest := filepath.Join(dir, name)
	fh, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return "", fmt.Errorf("%w: %s", ErrExists, name)
		}
		return "", fmt.Errorf("failed to create %s: %w", name, err)
	}
	if _, err := fh.Write(content); err != nil {
		fh.Close()
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := fh.Close(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}

	return filepath.Join(layout.AnalysisDir, name), nil
}

func render(ext string, data templateData) ([]byte, error) {
	path := fmt.Sprintf("templates/analysis.%s.tmpl", ext)
	raw, err := templatesFS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", path, err)
	}

	tmpl, err := template.New(filepath.Base(path)).Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", path, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render analysis template: %w", err)
	}
	return buf.Bytes(), nil
}
