// Package inventory summarizes the generated and reference data in a
// project: how much is there, where it is, and content digests for the
// largest artifacts. Everything here is read-only.
package inventory

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/benchtop/benchtop/internal/layout"
)

// FileEntry is one file in the inventory.
type FileEntry struct {
	Path   string `json:"path"` // relative to the project root
	Size   int64  `json:"size"`
	SHA256 string `json:"sha256,omitempty"`
}

// DirSummary aggregates one inventoried directory.
type DirSummary struct {
	Dir   string `json:"dir"`
	Files int    `json:"files"`
	Bytes int64  `json:"bytes"`
}

// Summary is the full project data inventory.
type Summary struct {
	Dirs    []DirSummary `json:"dirs"`
	Largest []FileEntry  `json:"largest"`
}

// Options controls inventory collection.
type Options struct {
	// TopN is how many of the largest files to report. Zero means 10.
	TopN int

	// Digest computes sha256 for the reported largest files.
	Digest bool

	// Workers bounds the digest pool. Zero means NumCPU.
	Workers int
}

// Collect walks data/ and lib/ under root and builds the inventory.
// Digests are computed only for the TopN largest files; hashing a whole
// sequencing run on every status call would be rude.
func Collect(root string, opts Options) (*Summary, error) {
	if opts.TopN == 0 {
		opts.TopN = 10
	}
	if opts.Workers == 0 {
		opts.Workers = runtime.NumCPU()
	}

	summary := &Summary{}
	var all []FileEntry

	for _, dir := range []string{layout.DataDir, layout.LibDir} {
		ds := DirSummary{Dir: dir}
		base := filepath.Join(root, dir)

		err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if os.IsNotExist(err) && path == base {
					return filepath.SkipDir
				}
				return err
			}
			if d.IsDir() {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return err
			}

			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			ds.Files++
			ds.Bytes += info.Size()
			all = append(all, FileEntry{Path: rel, Size: info.Size()})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", dir, err)
		}

		summary.Dirs = append(summary.Dirs, ds)
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].Size != all[j].Size {
			return all[i].Size > all[j].Size
		}
		return all[i].Path < all[j].Path
	})
	if len(all) > opts.TopN {
		all = all[:opts.TopN]
	}
	summary.Largest = all

	if opts.Digest {
		if err := digestAll(root, summary.Largest, opts.Workers); err != nil {
			return nil, err
		}
	}
	return summary, nil
}

// digestAll fills in SHA256 for each entry using a bounded worker pool.
// Entries are updated in place; each worker owns distinct indices so no
// locking is needed.
func digestAll(root string, entries []FileEntry, workers int) error {
	jobs := make(chan int)
	errs := make(chan error, len(entries))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				sum, err := hashFile(filepath.Join(root, entries[i].Path))
				if err != nil {
					errs <- err
					continue
				}
				entries[i].SHA256 = sum
			}
		}()
	}

	for i := range entries {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func hashFile(path string) (string, error) {
	fh, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer fh.Close()

	h := sha256.New()
	if _, err := io.Copy(h, fh); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// FormatBytes renders a byte count for humans.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
