package models

// ImportReference is one parsed import statement.
//
// Level counts the leading relative dots: 0 means an absolute import
// resolved against the project root, 1 means the importing file's own
// directory, each further level ascends one directory.
type ImportReference struct {
	// Module is the dotted module name. Empty for a bare "from . import x".
	Module string
	// Level is the number of leading relative dots (0 for absolute imports).
	Level int
	// Names holds the symbol names in clause order for from-imports.
	Names []string
}

// Relative reports whether the reference uses relative-import syntax.
func (r ImportReference) Relative() bool {
	return r.Level > 0
}
