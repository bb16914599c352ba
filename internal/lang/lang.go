// Package lang provides grammar adapters and the parser registry.
//
// An adapter maps raw source text to a tree-sitter syntax tree and knows the
// language's node-type vocabulary. Node classification is a closed table
// built once per adapter, so the scoring traversal does a single map lookup
// per node instead of repeated string comparisons.
package lang

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"

	"ccs/internal/cerrors"
)

// NodeClass is a bitmask describing how a node type participates in
// cognitive-complexity scoring.
type NodeClass uint8

const (
	// ClassControl marks control structures that take a structural increment.
	ClassControl NodeClass = 1 << iota
	// ClassNesting marks structures that deepen the nesting level.
	ClassNesting
	// ClassBoolean marks expressions that may carry a logical and/or operator.
	ClassBoolean
	// ClassFunction marks function definition nodes (unit boundaries).
	ClassFunction
	// ClassChainable marks conditionals that form else-if chain links.
	ClassChainable
	// ClassChainParent marks else/elif clauses that anchor a chain link.
	ClassChainParent
)

// Has reports whether all bits in flag are set.
func (c NodeClass) Has(flag NodeClass) bool {
	return c&flag == flag
}

// Adapter parses one language and classifies its node types.
// Adapters are safe for concurrent use: each Parse call owns its parser.
type Adapter struct {
	name     string
	language *sitter.Language
	classes  map[string]NodeClass
}

// NewAdapter builds an adapter from a tree-sitter language and its
// classification table.
func NewAdapter(name string, language *sitter.Language, classes map[string]NodeClass) *Adapter {
	return &Adapter{
		name:     name,
		language: language,
		classes:  classes,
	}
}

// Name returns the language name, e.g. "cpp".
func (a *Adapter) Name() string {
	return a.name
}

// Classify returns the node class for a node type tag. Unknown types
// classify as zero and contribute nothing to scoring.
func (a *Adapter) Classify(nodeType string) NodeClass {
	return a.classes[nodeType]
}

// Parse parses source text into a syntax tree. Malformed input still
// produces a best-effort tree; a nil tree is an engine-level failure.
// The caller owns the returned tree and must Close it.
func (a *Adapter) Parse(ctx context.Context, source []byte) (*sitter.Tree, error) {
	if a.language == nil {
		return nil, cerrors.New(cerrors.EngineUnavailable, "no grammar loaded for "+a.name, nil)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(a.language)

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, cerrors.New(cerrors.ParseFailure, "parse failed for "+a.name, err)
	}
	if tree == nil {
		return nil, cerrors.New(cerrors.ParseFailure, "parser produced no tree for "+a.name, nil)
	}
	return tree, nil
}
