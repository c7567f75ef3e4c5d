package importer

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
)

// Discover lists the files directly inside dir whose name ends in one of
// l.Extensions and contains l.Marker. Both comparisons ignore case. A missing
// or unreadable directory yields no files; the condition is logged.
func (l *Loader) Discover(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.logger().Warn("price directory does not exist", "dir", dir)
		} else {
			l.logger().Error("read price directory", "dir", dir, "error", err)
		}
		return []string{}
	}

	marker := cases.Fold().String(l.Marker)
	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !hasExtension(name, l.Extensions) {
			continue
		}
		if !strings.Contains(cases.Fold().String(name), marker) {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}

	return paths
}

func hasExtension(name string, extensions []string) bool {
	lower := strings.ToLower(name)
	for _, extension := range extensions {
		extension = strings.ToLower(strings.TrimSpace(extension))
		if extension != "" && strings.HasSuffix(lower, extension) {
			return true
		}
	}
	return false
}
