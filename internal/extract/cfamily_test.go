package extract

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"

	"ccs/internal/logging"
)

func parseCpp(t *testing.T, source string) *sitter.Tree {
	t.Helper()
	parser := sitter.NewParser()
	parser.SetLanguage(cpp.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, []byte(source))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	t.Cleanup(tree.Close)
	return tree
}

func quietLogger() *logging.Logger {
	return logging.NewLogger(logging.Config{
		Format: logging.HumanFormat,
		Level:  logging.ErrorLevel,
	})
}

func TestCFamilyExtractsFreeFunction(t *testing.T) {
	source := `
int add(int a, int b) {
    return a + b;
}
`
	tree := parseCpp(t, source)
	units := NewCFamilyExtractor(quietLogger()).Extract(tree.RootNode(), []byte(source))

	if len(units) != 1 {
		t.Fatalf("Expected 1 unit, got %d", len(units))
	}
	unit := units[0]
	if unit.QualifiedName != "add" {
		t.Errorf("Expected name 'add', got %q", unit.QualifiedName)
	}
	if unit.Body == nil {
		t.Error("Expected non-nil body")
	}
	if unit.StartLine != 2 {
		t.Errorf("Expected start line 2, got %d", unit.StartLine)
	}
	if len(unit.Parameters) != 2 || unit.Parameters[0] != "a" || unit.Parameters[1] != "b" {
		t.Errorf("Expected parameters [a b], got %v", unit.Parameters)
	}
}

func TestCFamilyExtractsScopeQualifiedMethod(t *testing.T) {
	source := `
double Shape::area(double scale) const {
    return base * scale;
}
`
	tree := parseCpp(t, source)
	units := NewCFamilyExtractor(quietLogger()).Extract(tree.RootNode(), []byte(source))

	if len(units) != 1 {
		t.Fatalf("Expected 1 unit, got %d", len(units))
	}
	if units[0].QualifiedName != "Shape::area" {
		t.Errorf("Expected 'Shape::area', got %q", units[0].QualifiedName)
	}
	if len(units[0].Parameters) != 1 || units[0].Parameters[0] != "scale" {
		t.Errorf("Expected parameters [scale], got %v", units[0].Parameters)
	}
}

func TestCFamilyExtractsMethodInsideClass(t *testing.T) {
	source := `
class Counter {
public:
    void bump() {
        value++;
    }
private:
    int value;
};
`
	tree := parseCpp(t, source)
	units := NewCFamilyExtractor(quietLogger()).Extract(tree.RootNode(), []byte(source))

	if len(units) != 1 {
		t.Fatalf("Expected 1 unit, got %d", len(units))
	}
	if units[0].QualifiedName != "bump" {
		t.Errorf("Expected 'bump', got %q", units[0].QualifiedName)
	}
}

func TestCFamilyDeclarationsYieldNoUnits(t *testing.T) {
	source := `
int add(int a, int b);
extern void notify();
struct Point { int x; int y; };
`
	tree := parseCpp(t, source)
	units := NewCFamilyExtractor(quietLogger()).Extract(tree.RootNode(), []byte(source))

	if len(units) != 0 {
		t.Errorf("Declarations without bodies should yield no units, got %d", len(units))
	}
}

func TestCFamilyPointerReturningFunction(t *testing.T) {
	source := `
char *dup(const char *s) {
    return copy(s);
}
`
	tree := parseCpp(t, source)
	units := NewCFamilyExtractor(quietLogger()).Extract(tree.RootNode(), []byte(source))

	if len(units) != 1 {
		t.Fatalf("Expected 1 unit, got %d", len(units))
	}
	if units[0].QualifiedName != "dup" {
		t.Errorf("Expected 'dup' despite pointer declarator, got %q", units[0].QualifiedName)
	}
}
