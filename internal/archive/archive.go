// Package archive moves consumed source files into a date-partitioned
// terminal location. It only ever runs after a file's transactions have been
// committed, and it never deletes anything on failure.
package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type Archiver struct {
	root string
}

func New(root string) *Archiver {
	return &Archiver{root: root}
}

// Store moves path under <root>/YYYY/MM/, keeping the original filename. If
// a file with that name already exists a timestamp suffix is appended; an
// archived file is never overwritten. The destination path is returned.
func (a *Archiver) Store(path string, now time.Time) (string, error) {
	dir := filepath.Join(a.root, now.Format("2006"), now.Format("01"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating archive dir: %w", err)
	}

	name := filepath.Base(path)
	dst := filepath.Join(dir, name)

	if exists(dst) {
		ext := filepath.Ext(name)
		base := strings.TrimSuffix(name, ext)
		dst = filepath.Join(dir, fmt.Sprintf("%s_%s%s", base, now.Format("20060102_150405"), ext))

		for i := 1; exists(dst); i++ {
			dst = filepath.Join(dir, fmt.Sprintf("%s_%s_%d%s", base, now.Format("20060102_150405"), i, ext))
		}
	}

	if err := move(path, dst); err != nil {
		return "", err
	}

	return dst, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// move renames, falling back to copy-then-remove when the archive lives on a
// different filesystem.
func move(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("copying to %s: %w", dst, err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", dst, err)
	}

	return os.Remove(src)
}
