package collector

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"pyclip/utils"
)

// SourceExt is the extension of the files the catalog enumerates.
const SourceExt = ".py"

// PathCatalog enumerates the Python files below a project root and holds
// the resulting candidate set for membership tests during traversal.
type PathCatalog struct {
	Root string
}

// NewPathCatalog creates a catalog rooted at the given directory.
func NewPathCatalog(root string) *PathCatalog {
	return &PathCatalog{Root: root}
}

// Enumerate walks the root directory and returns every Python file below it
// as a root-relative, slash-normalized path. Directories that never hold
// importable code and entries matching .pyclipignore patterns are skipped.
func (c *PathCatalog) Enumerate() (map[string]bool, error) {
	ignorePatterns, err := utils.GetIgnorePatterns(c.Root)
	if err != nil {
		return nil, err
	}

	paths := make(map[string]bool)

	err = filepath.WalkDir(c.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relativePath, err := filepath.Rel(c.Root, path)
		if err != nil {
			return fmt.Errorf("failed to relativize %s: %w", path, err)
		}
		relativePath = strings.ReplaceAll(relativePath, "\\", "/")

		if utils.IsDefaultIgnored(relativePath) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}

		if !strings.HasSuffix(relativePath, SourceExt) {
			return nil
		}

		if utils.IsIgnored(relativePath, ignorePatterns) {
			return nil
		}

		paths[relativePath] = true
		return nil
	})

	if err != nil {
		return nil, err
	}

	return paths, nil
}

// Exclude returns paths minus every entry literally equal to an excluded
// path. Excluded entries that match nothing are silently ignored.
func Exclude(paths map[string]bool, excludes []string) map[string]bool {
	result := make(map[string]bool, len(paths))
	for path := range paths {
		result[path] = true
	}
	for _, exclude := range excludes {
		delete(result, strings.ReplaceAll(exclude, "\\", "/"))
	}
	return result
}
