// Package cognitive scores a function body for cognitive complexity.
//
// The metric penalizes control flow more heavily as nesting deepens:
// every control structure takes a structural +1, structures inside other
// nesting structures take an extra increment equal to the current depth,
// logical and/or operators take a flat +1, and else-if chain links take a
// flat +1 in place of the structural charge. Every increment is recorded
// as a factor so a reader can see exactly where a score came from.
package cognitive

import (
	sitter "github.com/smacker/go-tree-sitter"

	"ccs/internal/lang"
	"ccs/internal/logging"
)

// Factor is one scoring event, in traversal order.
type Factor struct {
	Description string `json:"description"`
	Increment   int    `json:"increment"`
	Line        int    `json:"line"`
}

// Result is the outcome of scoring one function body.
// Total always equals the sum of the factor increments.
type Result struct {
	Total   int      `json:"total"`
	Factors []Factor `json:"factors"`
}

// Classifier tells the calculator how a node type participates in scoring.
type Classifier interface {
	Classify(nodeType string) lang.NodeClass
}

// Calculator walks a function body subtree and produces a Result.
// It is a pure function of the tree: scoring the same subtree twice
// yields identical results.
type Calculator struct {
	classifier Classifier
	logger     *logging.Logger
}

// NewCalculator creates a calculator for one language's classification.
func NewCalculator(classifier Classifier, logger *logging.Logger) *Calculator {
	return &Calculator{classifier: classifier, logger: logger}
}

// Calculate scores a function body. A nil body is a no-op and yields an
// empty result, not an error.
func (c *Calculator) Calculate(body *sitter.Node, source []byte) Result {
	var res Result
	c.walk(body, source, 0, &res)
	return res
}

// walk visits nodes in pre-order. The nesting level is carried as an
// explicit parameter so it is restored on every exit path by construction.
func (c *Calculator) walk(node *sitter.Node, source []byte, nesting int, res *Result) {
	if node == nil {
		return
	}

	nodeType := node.Type()
	class := c.classifier.Classify(nodeType)
	line := int(node.StartPoint().Row) + 1

	// A nested function's control flow is charged to its own unit, never
	// to the enclosing one: skip the whole subtree.
	if class.Has(lang.ClassFunction) {
		return
	}

	if class.Has(lang.ClassControl) {
		if class.Has(lang.ClassChainable) && c.isChained(node) {
			res.add("else-if chain", 1, line)
		} else {
			res.add(nodeType, 1, line)
			if class.Has(lang.ClassNesting) && nesting > 0 {
				res.add("nested "+nodeType, nesting, line)
			}
		}
	}

	if class.Has(lang.ClassBoolean) {
		if op := booleanOperator(node, source); op != "" {
			res.add("boolean operator "+op, 1, line)
		}
	}

	childNesting := nesting
	if class.Has(lang.ClassNesting) {
		childNesting++
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		c.walk(node.Child(i), source, childNesting, res)
	}
}

// isChained reports whether a conditional hangs off an else/elif clause.
func (c *Calculator) isChained(node *sitter.Node) bool {
	parent := node.Parent()
	if parent == nil {
		return false
	}
	return c.classifier.Classify(parent.Type()).Has(lang.ClassChainParent)
}

// booleanOperator returns the logical operator of a binary or boolean
// expression, or "" when the expression is not a logical and/or. A missing
// operator field contributes nothing.
func booleanOperator(node *sitter.Node, source []byte) string {
	op := node.ChildByFieldName("operator")
	if op == nil {
		return ""
	}
	start, end := op.StartByte(), op.EndByte()
	if int(end) > len(source) || start > end {
		return ""
	}
	switch text := string(source[start:end]); text {
	case "&&", "||", "and", "or":
		return text
	default:
		return ""
	}
}

func (r *Result) add(description string, increment, line int) {
	r.Total += increment
	r.Factors = append(r.Factors, Factor{
		Description: description,
		Increment:   increment,
		Line:        line,
	})
}
