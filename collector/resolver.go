package collector

import (
	"path"
	"sort"
	"strings"

	"pyclip/collector/models"
)

// ModuleResolver converts an import reference into the root-relative file
// paths it denotes. Existence of a plain resolution is checked later by the
// walker against the candidate set, not here.
type ModuleResolver struct {
	symbols *SymbolIndex
}

// NewModuleResolver creates a resolver backed by a symbol index for package
// expansion.
func NewModuleResolver(symbols *SymbolIndex) *ModuleResolver {
	return &ModuleResolver{symbols: symbols}
}

// Resolve maps a reference found in importingFile to zero or more candidate
// paths. Relative references resolve against the importing file's own
// directory; level 1 is that directory itself. Resolution never escapes the
// root and never returns an error: anything unresolvable yields no paths.
func (r *ModuleResolver) Resolve(importingFile string, ref models.ImportReference, candidates map[string]bool) []string {
	modulePath := strings.ReplaceAll(ref.Module, ".", "/")

	var base string
	if !ref.Relative() {
		if ref.Module == "" {
			return nil
		}
		base = modulePath
	} else {
		dir := path.Dir(importingFile)
		for i := 0; i < ref.Level-1; i++ {
			if dir == "." {
				// Ascending further would leave the root.
				return nil
			}
			dir = path.Dir(dir)
		}
		base = path.Join(dir, modulePath)
	}

	base = path.Clean(base)
	if base == ".." || strings.HasPrefix(base, "../") {
		return nil
	}

	if ref.Module == "" {
		// Bare "from . import x": the names are the only lead.
		return r.expand(base, ref.Names, candidates)
	}

	file := base + SourceExt
	if candidates[file] {
		return []string{file}
	}
	if len(ref.Names) > 0 && isPackage(base, candidates) {
		return r.expand(base, ref.Names, candidates)
	}

	// Single candidate path; the walker drops it if it is not enumerated.
	return []string{file}
}

// expand resolves a from-import against a package directory: a name that
// matches a submodule file resolves to that file, and the remaining names
// are matched against each submodule's top-level symbols. Names that match
// nothing resolve to nothing rather than pulling in the whole package.
func (r *ModuleResolver) expand(dir string, names []string, candidates map[string]bool) []string {
	if len(names) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	var resolved []string
	var remaining []string

	for _, name := range names {
		submodule := joinModule(dir, name) + SourceExt
		if candidates[submodule] {
			if !seen[submodule] {
				seen[submodule] = true
				resolved = append(resolved, submodule)
			}
			continue
		}
		remaining = append(remaining, name)
	}

	if len(remaining) == 0 {
		return resolved
	}

	for _, submodule := range submodules(dir, candidates) {
		if seen[submodule] {
			continue
		}
		defined, err := r.symbols.TopLevelNames(submodule)
		if err != nil {
			continue
		}
		for _, name := range remaining {
			if defined[name] {
				seen[submodule] = true
				resolved = append(resolved, submodule)
				break
			}
		}
	}

	return resolved
}

// isPackage reports whether dir is an importable namespace: it carries a
// package marker or holds at least one enumerated file.
func isPackage(dir string, candidates map[string]bool) bool {
	if candidates[joinModule(dir, "__init__")+SourceExt] {
		return true
	}
	prefix := dir + "/"
	if dir == "." {
		prefix = ""
	}
	for candidate := range candidates {
		if strings.HasPrefix(candidate, prefix) {
			return true
		}
	}
	return false
}

// submodules returns the direct children of a package directory, sorted for
// deterministic resolution order.
func submodules(dir string, candidates map[string]bool) []string {
	prefix := dir + "/"
	if dir == "." {
		prefix = ""
	}
	var result []string
	for candidate := range candidates {
		if !strings.HasPrefix(candidate, prefix) {
			continue
		}
		if strings.Contains(candidate[len(prefix):], "/") {
			continue
		}
		result = append(result, candidate)
	}
	sort.Strings(result)
	return result
}

func joinModule(dir, name string) string {
	if dir == "." {
		return name
	}
	return dir + "/" + name
}
