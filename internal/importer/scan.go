package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Scan returns the pending export files in the inbox directory, sorted by
// name. Subdirectories (the archive typically lives under the inbox) are
// skipped. A missing inbox is not an error, just an empty batch.
func Scan(inbox string) ([]string, error) {
	entries, err := os.ReadDir(inbox)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading inbox %s: %w", inbox, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".csv", ".xlsx":
			paths = append(paths, filepath.Join(inbox, e.Name()))
		}
	}

	return paths, nil
}
