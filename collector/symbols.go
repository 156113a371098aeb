package collector

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/zeebo/xxh3"
)

// SymbolIndex resolves the top-level names a submodule defines without ever
// importing or executing it. Results are memoized by content hash so a
// submodule consulted for several packages is parsed once.
type SymbolIndex struct {
	root   string
	parser *sitter.Parser

	mutex sync.RWMutex
	cache map[uint64]map[string]bool
}

// NewSymbolIndex creates an index rooted at the given directory.
func NewSymbolIndex(root string) *SymbolIndex {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())
	return &SymbolIndex{
		root:   root,
		parser: parser,
		cache:  make(map[uint64]map[string]bool),
	}
}

// TopLevelNames returns the set of names defined at module scope: functions,
// classes, and assigned variables. Decorated definitions count under the
// decorated name.
func (s *SymbolIndex) TopLevelNames(relativePath string) (map[string]bool, error) {
	content, err := os.ReadFile(filepath.Join(s.root, relativePath))
	if err != nil {
		return nil, err
	}

	key := xxh3.Hash(content)

	s.mutex.RLock()
	if names, found := s.cache[key]; found {
		s.mutex.RUnlock()
		return names, nil
	}
	s.mutex.RUnlock()

	tree, err := s.parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return nil, err
	}

	names := make(map[string]bool)
	root := tree.RootNode()
	for i := 0; i < int(root.NamedChildCount()); i++ {
		collectDefinedNames(root.NamedChild(i), content, names)
	}

	s.mutex.Lock()
	s.cache[key] = names
	s.mutex.Unlock()

	return names, nil
}

// collectDefinedNames records the names a single top-level statement defines.
func collectDefinedNames(node *sitter.Node, source []byte, names map[string]bool) {
	switch node.Type() {
	case "function_definition", "class_definition":
		if name := node.ChildByFieldName("name"); name != nil {
			names[name.Content(source)] = true
		}
	case "decorated_definition":
		if def := node.ChildByFieldName("definition"); def != nil {
			collectDefinedNames(def, source, names)
		}
	case "expression_statement":
		for i := 0; i < int(node.NamedChildCount()); i++ {
			child := node.NamedChild(i)
			if child.Type() == "assignment" || child.Type() == "augmented_assignment" {
				if left := child.ChildByFieldName("left"); left != nil {
					collectAssignmentTargets(left, source, names)
				}
			}
		}
	}
}

// collectAssignmentTargets handles plain, tuple, and list assignment targets.
func collectAssignmentTargets(node *sitter.Node, source []byte, names map[string]bool) {
	switch node.Type() {
	case "identifier":
		names[node.Content(source)] = true
	case "pattern_list", "tuple_pattern", "list_pattern":
		for i := 0; i < int(node.NamedChildCount()); i++ {
			collectAssignmentTargets(node.NamedChild(i), source, names)
		}
	}
}
