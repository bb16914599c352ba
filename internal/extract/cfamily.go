package extract

import (
	sitter "github.com/smacker/go-tree-sitter"

	"ccs/internal/logging"
)

// CFamilyExtractor extracts function definitions from C and C++ trees.
//
// A function unit is a function_definition node. The name is found by
// unwrapping declarator nodes until an identifier (or a qualified
// identifier, whose full text already encodes Class::method) is reached.
// Nested function definitions are not a C-family language feature, so the
// walk does not descend into a found function's body.
type CFamilyExtractor struct {
	logger *logging.Logger
}

// NewCFamilyExtractor creates an extractor for C and C++ sources.
func NewCFamilyExtractor(logger *logging.Logger) *CFamilyExtractor {
	return &CFamilyExtractor{logger: logger}
}

// Extract returns all function units in the tree.
func (e *CFamilyExtractor) Extract(root *sitter.Node, source []byte) []FunctionUnit {
	var units []FunctionUnit
	e.collect(root, source, &units)
	return units
}

func (e *CFamilyExtractor) collect(node *sitter.Node, source []byte, units *[]FunctionUnit) {
	if node == nil {
		return
	}

	if node.Type() == "function_definition" {
		unit := e.functionUnit(node, source)
		*units = append(*units, unit)
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		e.collect(node.Child(i), source, units)
	}
}

func (e *CFamilyExtractor) functionUnit(node *sitter.Node, source []byte) FunctionUnit {
	unit := FunctionUnit{
		Node: node,
		Body: node.ChildByFieldName("body"),
	}
	unit.StartLine, unit.EndLine = lineSpan(node)

	declarator := node.ChildByFieldName("declarator")
	if declarator == nil {
		e.logger.Debug("Function definition without declarator", map[string]interface{}{
			"line": unit.StartLine,
		})
		return unit
	}

	unit.QualifiedName = declaratorName(declarator, source)
	unit.Parameters = e.parameters(declarator, source)
	return unit
}

// declaratorName descends a declarator chain to the declared name.
// Pointer, reference and parenthesized declarators wrap an inner
// declarator; a qualified identifier terminates the descent and its full
// text is the name.
func declaratorName(declarator *sitter.Node, source []byte) string {
	for node := declarator; node != nil; {
		switch node.Type() {
		case "function_declarator", "pointer_declarator", "reference_declarator", "parenthesized_declarator":
			node = node.ChildByFieldName("declarator")
		case "qualified_identifier", "identifier", "field_identifier", "destructor_name", "operator_name":
			return nodeText(node, source)
		default:
			return firstIdentifier(node, source)
		}
	}
	return ""
}

// parameters collects parameter names from the function declarator's
// parameter list.
func (e *CFamilyExtractor) parameters(declarator *sitter.Node, source []byte) []string {
	fnDecl := declarator
	for fnDecl != nil && fnDecl.Type() != "function_declarator" {
		fnDecl = fnDecl.ChildByFieldName("declarator")
	}
	if fnDecl == nil {
		return nil
	}

	list := fnDecl.ChildByFieldName("parameters")
	if list == nil {
		return nil
	}

	var names []string
	for i := 0; i < int(list.ChildCount()); i++ {
		param := list.Child(i)
		if param == nil {
			continue
		}
		switch param.Type() {
		case "parameter_declaration", "optional_parameter_declaration":
			decl := param.ChildByFieldName("declarator")
			if decl == nil {
				continue
			}
			if name := declaratorName(decl, source); name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}
