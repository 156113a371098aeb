package collector

import (
	"context"
	"errors"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"pyclip/collector/models"
)

// ErrParse is returned when a source file cannot be parsed by the grammar.
var ErrParse = errors.New("failed to parse source")

// ImportExtractor scans a Python file's syntax tree for import statements.
type ImportExtractor struct {
	parser *sitter.Parser
}

// NewImportExtractor initializes an extractor with the Python grammar.
func NewImportExtractor() *ImportExtractor {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())
	return &ImportExtractor{parser: parser}
}

// Extract returns the import references of a source file in source order.
// A file the grammar cannot parse yields ErrParse; callers treat such a
// file as contributing no dependencies rather than aborting.
func (e *ImportExtractor) Extract(source []byte) ([]models.ImportReference, error) {
	tree, err := e.parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, err
	}

	root := tree.RootNode()
	if root.HasError() {
		return nil, ErrParse
	}

	var refs []models.ImportReference
	for _, node := range findNodes(root, "import_statement", "import_from_statement") {
		switch node.Type() {
		case "import_statement":
			refs = append(refs, plainImports(node, source)...)
		case "import_from_statement":
			refs = append(refs, fromImport(node, source))
		}
	}
	return refs, nil
}

// plainImports handles "import a.b, c" - one reference per named module.
func plainImports(node *sitter.Node, source []byte) []models.ImportReference {
	var refs []models.ImportReference
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		var module string
		switch child.Type() {
		case "dotted_name":
			module = child.Content(source)
		case "aliased_import":
			if name := child.ChildByFieldName("name"); name != nil {
				module = name.Content(source)
			}
		}
		if module != "" {
			refs = append(refs, models.ImportReference{Module: module})
		}
	}
	return refs
}

// fromImport handles "from [dots][module] import n1, n2".
func fromImport(node *sitter.Node, source []byte) models.ImportReference {
	ref := models.ImportReference{}

	moduleNode := node.ChildByFieldName("module_name")
	if moduleNode != nil {
		switch moduleNode.Type() {
		case "relative_import":
			for i := 0; i < int(moduleNode.NamedChildCount()); i++ {
				part := moduleNode.NamedChild(i)
				switch part.Type() {
				case "import_prefix":
					ref.Level = strings.Count(part.Content(source), ".")
				case "dotted_name":
					ref.Module = part.Content(source)
				}
			}
		case "dotted_name":
			ref.Module = moduleNode.Content(source)
		}
	}

	// The module reference is the first named child; the remaining named
	// children are the imported names.
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if moduleNode != nil && child.StartByte() == moduleNode.StartByte() {
			continue
		}
		switch child.Type() {
		case "dotted_name", "identifier":
			ref.Names = append(ref.Names, child.Content(source))
		case "aliased_import":
			if name := child.ChildByFieldName("name"); name != nil {
				ref.Names = append(ref.Names, name.Content(source))
			}
		}
	}

	return ref
}

// findNodes collects every node whose type matches, in document order.
// The walk uses an explicit stack so adversarial nesting cannot exhaust
// the goroutine stack.
func findNodes(root *sitter.Node, types ...string) []*sitter.Node {
	var result []*sitter.Node

	stack := []*sitter.Node{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, t := range types {
			if node.Type() == t {
				result = append(result, node)
				break
			}
		}

		// Push children in reverse so they pop in document order.
		for i := int(node.ChildCount()) - 1; i >= 0; i-- {
			if child := node.Child(i); child != nil {
				stack = append(stack, child)
			}
		}
	}

	return result
}
