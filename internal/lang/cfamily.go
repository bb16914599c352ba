package lang

import (
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"

	"ccs/internal/extract"
	"ccs/internal/logging"
)

// cppClasses is the C++ node classification table.
//
// case_statement takes a structural increment but does not deepen nesting;
// switch_statement itself is in neither set. else_clause is charged as a
// control structure and anchors else-if chain links.
var cppClasses = map[string]NodeClass{
	"if_statement":        ClassControl | ClassNesting | ClassChainable,
	"for_statement":       ClassControl | ClassNesting,
	"while_statement":     ClassControl | ClassNesting,
	"do_statement":        ClassControl | ClassNesting,
	"for_range_loop":      ClassControl | ClassNesting,
	"catch_clause":        ClassControl | ClassNesting,
	"case_statement":      ClassControl,
	"else_clause":         ClassControl | ClassChainParent,
	"binary_expression":   ClassBoolean,
	"function_definition": ClassFunction,
}

// cClasses is the C node classification table. C has no catch clauses,
// range loops, or nested functions in standard usage, but nested
// function_definition nodes (a GNU extension) still mark unit boundaries.
var cClasses = map[string]NodeClass{
	"if_statement":        ClassControl | ClassNesting | ClassChainable,
	"for_statement":       ClassControl | ClassNesting,
	"while_statement":     ClassControl | ClassNesting,
	"do_statement":        ClassControl | ClassNesting,
	"case_statement":      ClassControl,
	"else_clause":         ClassControl | ClassChainParent,
	"binary_expression":   ClassBoolean,
	"function_definition": ClassFunction,
}

// CppDefinition declares the C++ language.
func CppDefinition() Definition {
	return Definition{
		Name:       "cpp",
		Extensions: []string{"cpp", "cxx", "cc", "hpp", "hxx", "h"},
		New: func(logger *logging.Logger) Tooling {
			return Tooling{
				Adapter:   NewAdapter("cpp", cpp.GetLanguage(), cppClasses),
				Extractor: extract.NewCFamilyExtractor(logger),
			}
		},
	}
}

// CDefinition declares the C language. It shares the C-family extractor.
func CDefinition() Definition {
	return Definition{
		Name:       "c",
		Extensions: []string{"c"},
		New: func(logger *logging.Logger) Tooling {
			return Tooling{
				Adapter:   NewAdapter("c", c.GetLanguage(), cClasses),
				Extractor: extract.NewCFamilyExtractor(logger),
			}
		},
	}
}
