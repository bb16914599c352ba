package extract

import (
	sitter "github.com/smacker/go-tree-sitter"

	"ccs/internal/logging"
)

// PythonExtractor extracts function definitions from Python trees.
//
// Decorated definitions are unwrapped via the definition field. Nested
// functions get dot-qualified names (outer.inner) built by walking the
// ancestor chain; the walk keeps descending past function boundaries so
// both outer and outer.inner are emitted as distinct units.
type PythonExtractor struct {
	logger *logging.Logger
}

// NewPythonExtractor creates an extractor for Python sources.
func NewPythonExtractor(logger *logging.Logger) *PythonExtractor {
	return &PythonExtractor{logger: logger}
}

// Extract returns all function units in the tree.
func (e *PythonExtractor) Extract(root *sitter.Node, source []byte) []FunctionUnit {
	var units []FunctionUnit
	e.collect(root, source, &units)
	return units
}

func (e *PythonExtractor) collect(node *sitter.Node, source []byte, units *[]FunctionUnit) {
	if node == nil {
		return
	}

	switch node.Type() {
	case "decorated_definition":
		fn := node.ChildByFieldName("definition")
		if fn == nil {
			// Malformed decoration; skip, not an error.
			e.logger.Debug("Decorated definition without inner definition", map[string]interface{}{
				"line": int(node.StartPoint().Row) + 1,
			})
		} else if fn.Type() == "function_definition" {
			*units = append(*units, e.functionUnit(fn, source))
		}
	case "function_definition":
		// Already emitted through the decorated_definition wrapper.
		if parent := node.Parent(); parent == nil || parent.Type() != "decorated_definition" {
			*units = append(*units, e.functionUnit(node, source))
		}
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		e.collect(node.Child(i), source, units)
	}
}

func (e *PythonExtractor) functionUnit(fn *sitter.Node, source []byte) FunctionUnit {
	unit := FunctionUnit{
		Node: fn,
		Body: fn.ChildByFieldName("body"),
	}
	unit.StartLine, unit.EndLine = lineSpan(fn)

	name := nodeText(fn.ChildByFieldName("name"), source)
	if name != "" {
		name = qualifyName(fn, name, source)
	}
	unit.QualifiedName = name
	unit.Parameters = e.parameters(fn, source)
	return unit
}

// qualifyName prepends the names of enclosing functions, producing
// outer.inner for nested definitions.
func qualifyName(fn *sitter.Node, name string, source []byte) string {
	for parent := fn.Parent(); parent != nil; parent = parent.Parent() {
		if parent.Type() != "function_definition" {
			continue
		}
		parentName := nodeText(parent.ChildByFieldName("name"), source)
		if parentName != "" {
			name = parentName + "." + name
		}
	}
	return name
}

func (e *PythonExtractor) parameters(fn *sitter.Node, source []byte) []string {
	list := fn.ChildByFieldName("parameters")
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
		case "identifier":
			names = append(names, nodeText(param, source))
		case "default_parameter", "typed_default_parameter":
			if name := nodeText(param.ChildByFieldName("name"), source); name != "" {
				names = append(names, name)
			}
		case "typed_parameter":
			// typed_parameter has no name field in the grammar; the
			// declared name is its first identifier child.
			if name := firstIdentifier(param, source); name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}
