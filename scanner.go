package csstw

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// ScanStats tracks input file discovery.
type ScanStats struct {
	FilesDiscovered int // Files matched by the include patterns
	FilesScanned    int // Files kept for conversion
	FilesSkipped    int // Files dropped by .gitignore
}

// ScanFiles expands include glob patterns (doublestar syntax, ** allowed)
// relative to sourceDir. Files matched by sourceDir/.gitignore are skipped;
// a missing .gitignore skips nothing. Paths are returned deduplicated in
// pattern order.
func ScanFiles(sourceDir string, includes []string) ([]string, ScanStats, error) {
	var stats ScanStats
	if sourceDir == "" {
		sourceDir = "."
	}
	gi := loadGitIgnore(sourceDir)

	var files []string
	seen := make(map[string]bool)

	for _, pattern := range includes {
		matches, err := doublestar.Glob(os.DirFS(sourceDir), pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, stats, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}

		for _, rel := range matches {
			if seen[rel] {
				continue
			}
			seen[rel] = true
			stats.FilesDiscovered++

			if gi != nil && gi.MatchesPath(rel) {
				stats.FilesSkipped++
				continue
			}
			files = append(files, filepath.Join(sourceDir, filepath.FromSlash(rel)))
			stats.FilesScanned++
		}
	}

	return files, stats, nil
}

// loadGitIgnore compiles dir/.gitignore, or returns nil when there is none.
func loadGitIgnore(dir string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}

// GetRelativePath returns path relative to the working directory when
// possible.
func GetRelativePath(path string) string {
	if !filepath.IsAbs(path) {
		return path
	}
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil {
		return path
	}
	return rel
}
