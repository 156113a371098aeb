package collector

import (
	"errors"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"

	"pyclip/collector/contracts"
)

// DependencyWalker performs the breadth-first, depth-limited traversal of
// the import graph.
type DependencyWalker struct {
	root      string
	extractor *ImportExtractor
	resolver  *ModuleResolver
}

// NewDependencyWalker initializes a walker for the given root directory.
func NewDependencyWalker(root string) contracts.IDependencyWalker {
	return &DependencyWalker{
		root:      root,
		extractor: NewImportExtractor(),
		resolver:  NewModuleResolver(NewSymbolIndex(root)),
	}
}

// Walk traverses the import graph level by level. Each level is a fresh
// slice: level 0 holds the seeds, level d+1 holds the paths discovered while
// processing level d. A path already in the result or absent from the
// candidate set is never processed, which also terminates import cycles.
// Unreadable files are never recorded; unparseable files are recorded but
// contribute no outgoing edges.
func (w *DependencyWalker) Walk(seeds []string, candidates map[string]bool, depthLimit int) []string {
	level := make([]string, 0, len(seeds))
	for _, seed := range seeds {
		level = append(level, path.Clean(strings.ReplaceAll(seed, "\\", "/")))
	}
	levels := [][]string{level}

	result := make([]string, 0)
	inResult := make(map[string]bool)
	unreadable := make(map[string]bool)

	for depth := 0; depth <= depthLimit && depth < len(levels); depth++ {
		if len(levels[depth]) == 0 {
			break
		}

		var next []string
		for _, current := range levels[depth] {
			if inResult[current] || unreadable[current] || !candidates[current] {
				continue
			}

			content, err := os.ReadFile(filepath.Join(w.root, current))
			if err != nil {
				unreadable[current] = true
				pterm.Warning.Printfln("Skipping unreadable file %s: %v", current, err)
				continue
			}

			inResult[current] = true
			// Prepend so a chain's dependencies end up ahead of the files
			// that pulled them in.
			result = append([]string{current}, result...)

			refs, err := w.extractor.Extract(content)
			if err != nil {
				if errors.Is(err, ErrParse) {
					pterm.Warning.Printfln("Failed to parse %s, treating it as a leaf", current)
					continue
				}
				pterm.Warning.Printfln("Failed to analyze %s: %v", current, err)
				continue
			}

			for _, ref := range refs {
				for _, dependency := range w.resolver.Resolve(current, ref, candidates) {
					if !inResult[dependency] && candidates[dependency] {
						next = append(next, dependency)
					}
				}
			}
		}

		levels = append(levels, next)
	}

	return result
}
