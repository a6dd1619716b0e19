// Package backup copies files into a destination directory under a
// timestamp-suffixed name, optionally gzip-compressed, and prunes old
// copies down to a retention count.
package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
)

// timestampLayout is the suffix appended to backup file names.
const timestampLayout = "20060102-150405"

// Options controls a single backup operation.
type Options struct {
	// Compress gzips the copy and appends ".gz" to the name.
	Compress bool

	// Keep prunes the destination down to this many copies of the
	// source (newest kept). Zero or negative disables pruning.
	Keep int

	// now overrides the clock in tests.
	now func() time.Time
}

// Create copies src into destDir as <base>-<timestamp><ext>[.gz] and
// returns the path of the new copy. Existing copies beyond opts.Keep
// are removed, oldest first; a prune failure is reported but the new
// copy is already on disk.
func Create(src string, destDir string, opts Options) (string, error) {
	info, err := os.Stat(src)
	if err != nil {
		return "", fmt.Errorf("backup: stat %s: %w", src, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("backup: %s is a directory", src)
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("backup: create %s: %w", destDir, err)
	}

	now := time.Now
	if opts.now != nil {
		now = opts.now
	}

	ext := filepath.Ext(src)
	base := strings.TrimSuffix(filepath.Base(src), ext)
	name := fmt.Sprintf("%s-%s%s", base, now().Format(timestampLayout), ext)
	if opts.Compress {
		name += ".gz"
	}
	dest := filepath.Join(destDir, name)

	if err := copyFile(src, dest, opts.Compress); err != nil {
		return "", err
	}

	if opts.Keep > 0 {
		if err := prune(destDir, base, ext, opts.Keep); err != nil {
			return dest, fmt.Errorf("backup: prune: %w", err)
		}
	}
	return dest, nil
}

// List returns the existing backup copies of the given source file in
// destDir, oldest first.
func List(destDir string, src string) ([]string, error) {
	ext := filepath.Ext(src)
	base := strings.TrimSuffix(filepath.Base(src), ext)
	return matches(destDir, base, ext)
}

func copyFile(src, dest string, compress bool) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("backup: open %s: %w", src, err)
	}
	defer in.Close() //nolint:errcheck

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("backup: create %s: %w", dest, err)
	}

	var w io.Writer = out
	var gz *gzip.Writer
	if compress {
		gz = gzip.NewWriter(out)
		w = gz
	}

	if _, err := io.Copy(w, in); err != nil {
		out.Close() //nolint:errcheck
		return fmt.Errorf("backup: copy to %s: %w", dest, err)
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			out.Close() //nolint:errcheck
			return fmt.Errorf("backup: compress %s: %w", dest, err)
		}
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("backup: close %s: %w", dest, err)
	}
	return nil
}

// prune removes the oldest copies until keep remain. Timestamped names
// sort chronologically, so a lexical sort is enough.
func prune(destDir, base, ext string, keep int) error {
	found, err := matches(destDir, base, ext)
	if err != nil {
		return err
	}
	if len(found) <= keep {
		return nil
	}
	for _, path := range found[:len(found)-keep] {
		if err := os.Remove(path); err != nil {
			return err
		}
	}
	return nil
}

func matches(destDir, base, ext string) ([]string, error) {
	pattern := filepath.Join(destDir, base+"-*"+ext)
	found, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	compressed, err := filepath.Glob(pattern + ".gz")
	if err != nil {
		return nil, err
	}
	found = append(found, compressed...)
	sort.Strings(found)
	return found, nil
}
