package lang

import (
	"github.com/smacker/go-tree-sitter/python"

	"ccs/internal/extract"
	"ccs/internal/logging"
)

// pythonClasses is the Python node classification table.
//
// elif_clause is a control structure but never deepens nesting: the if it
// chains from already counted, so a chained branch nets exactly one.
// else_clause also appears under try statements; it is charged the same
// way either place. decorated_definition marks a unit boundary so a
// decorated nested function is skipped whole during an enclosing unit's
// walk.
var pythonClasses = map[string]NodeClass{
	"if_statement":         ClassControl | ClassNesting | ClassChainable,
	"for_statement":        ClassControl | ClassNesting,
	"while_statement":      ClassControl | ClassNesting,
	"except_clause":        ClassControl | ClassNesting,
	"elif_clause":          ClassControl,
	"else_clause":          ClassControl | ClassChainParent,
	"boolean_operator":     ClassBoolean,
	"function_definition":  ClassFunction,
	"decorated_definition": ClassFunction,
}

// PythonDefinition declares the Python language.
func PythonDefinition() Definition {
	return Definition{
		Name:       "python",
		Extensions: []string{"py", "pyw"},
		New: func(logger *logging.Logger) Tooling {
			return Tooling{
				Adapter:   NewAdapter("python", python.GetLanguage(), pythonClasses),
				Extractor: extract.NewPythonExtractor(logger),
			}
		},
	}
}
