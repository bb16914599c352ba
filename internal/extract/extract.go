// Package extract enumerates function definitions in a parsed syntax tree.
//
// Each supported language has its own extractor that knows where function
// boundaries live in that language's grammar and how to compute qualified
// names. Extractors hand back FunctionUnits that reference nodes in the
// parsed tree; units must not outlive the tree they were extracted from.
package extract

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// FunctionUnit is one extracted function or method definition, the unit of
// complexity scoring.
type FunctionUnit struct {
	// QualifiedName is the dot-joined name for nested functions
	// (outer.inner) or the scope-qualified name for C++ members
	// (Shape::area).
	QualifiedName string

	// Node is the function definition node itself.
	Node *sitter.Node

	// Body is the function body subtree, nil when the definition has no
	// body (e.g. a malformed parse).
	Body *sitter.Node

	// StartLine and EndLine are 1-indexed source lines of the definition.
	StartLine int
	EndLine   int

	// Parameters holds parameter names in declaration order.
	Parameters []string
}

// Extractor yields all function units in a tree.
type Extractor interface {
	Extract(root *sitter.Node, source []byte) []FunctionUnit
}

// nodeText returns the source text covered by a node.
func nodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	start, end := node.StartByte(), node.EndByte()
	if int(end) > len(source) || start > end {
		return ""
	}
	return string(source[start:end])
}

// firstIdentifier finds the first identifier node in a depth-first walk.
func firstIdentifier(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	if node.Type() == "identifier" {
		return nodeText(node, source)
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		if name := firstIdentifier(node.Child(i), source); name != "" {
			return name
		}
	}
	return ""
}

// lineSpan converts a node's start/end rows to 1-indexed lines.
func lineSpan(node *sitter.Node) (int, int) {
	return int(node.StartPoint().Row) + 1, int(node.EndPoint().Row) + 1
}
