package cognitive_test

import (
	"context"
	"testing"

	"ccs/internal/cognitive"
	"ccs/internal/lang"
	"ccs/internal/logging"
)

func testLogger() *logging.Logger {
	return logging.NewLogger(logging.Config{
		Format: logging.HumanFormat,
		Level:  logging.ErrorLevel,
	})
}

// score parses source with the given language definition, extracts the
// named function, and scores its body.
func score(t *testing.T, def lang.Definition, source, name string) cognitive.Result {
	t.Helper()

	logger := testLogger()
	tooling := def.New(logger)

	tree, err := tooling.Adapter.Parse(context.Background(), []byte(source))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	defer tree.Close()

	for _, unit := range tooling.Extractor.Extract(tree.RootNode(), []byte(source)) {
		if unit.QualifiedName == name {
			calc := cognitive.NewCalculator(tooling.Adapter, logger)
			return calc.Calculate(unit.Body, []byte(source))
		}
	}
	t.Fatalf("Function %q not found in source", name)
	return cognitive.Result{}
}

func scoreCpp(t *testing.T, source, name string) cognitive.Result {
	t.Helper()
	return score(t, lang.CppDefinition(), source, name)
}

func scorePython(t *testing.T, source, name string) cognitive.Result {
	t.Helper()
	return score(t, lang.PythonDefinition(), source, name)
}

func assertFactorSum(t *testing.T, res cognitive.Result) {
	t.Helper()
	sum := 0
	for _, f := range res.Factors {
		sum += f.Increment
	}
	if sum != res.Total {
		t.Errorf("Total %d does not equal factor sum %d (factors: %+v)", res.Total, sum, res.Factors)
	}
}

func TestTripleNestingScoresSix(t *testing.T) {
	source := `
void process(int n) {
    for (int i = 0; i < n; i++) {
        if (i % 2 == 0) {
            if (i % 3 == 0) {
                use(i);
            }
        }
    }
}
`
	res := scoreCpp(t, source, "process")
	// for = 1, first if = 1+1, second if = 1+2
	if res.Total != 6 {
		t.Errorf("Expected complexity 6, got %d (factors: %+v)", res.Total, res.Factors)
	}
	assertFactorSum(t, res)
}

func TestLoopPairWithGuardScoresSeven(t *testing.T) {
	source := `
void scan(int rows, int cols) {
    for (int r = 0; r < rows; r++) {
        for (int c = 0; c < cols; c++) {
            if (cell(r, c)) {
                mark(r, c);
            }
        }
    }
    if (dirty()) {
        flush();
    }
}
`
	res := scoreCpp(t, source, "scan")
	// outer for = 1, inner for = 1+1, inner if = 1+2, guard if = 1
	if res.Total != 7 {
		t.Errorf("Expected complexity 7, got %d (factors: %+v)", res.Total, res.Factors)
	}
	assertFactorSum(t, res)
}

func TestElseIfChainTakesHybridIncrement(t *testing.T) {
	source := `
void classify(int x) {
    if (x < 0) {
        neg();
    } else if (x == 0) {
        zero();
    }
}
`
	res := scoreCpp(t, source, "classify")

	hybrid := 0
	for _, f := range res.Factors {
		if f.Description == "else-if chain" {
			hybrid++
			if f.Increment != 1 {
				t.Errorf("Hybrid increment should be flat 1, got %d", f.Increment)
			}
		}
		if f.Description == "nested if_statement" {
			t.Errorf("Chained conditional must not take a nesting increment: %+v", f)
		}
	}
	if hybrid != 1 {
		t.Errorf("Expected exactly 1 hybrid factor, got %d (factors: %+v)", hybrid, res.Factors)
	}
	// if = 1, else_clause = 1, chained if = 1
	if res.Total != 3 {
		t.Errorf("Expected complexity 3, got %d (factors: %+v)", res.Total, res.Factors)
	}
	assertFactorSum(t, res)
}

func TestBooleanOperatorsAreFlatIncrements(t *testing.T) {
	source := `
bool admit(int a, int b, int c) {
    if (a > 0 && b > 0 || c > 0) {
        return true;
    }
    return false;
}
`
	res := scoreCpp(t, source, "admit")

	booleans := 0
	for _, f := range res.Factors {
		switch f.Description {
		case "boolean operator &&", "boolean operator ||":
			booleans++
			if f.Increment != 1 {
				t.Errorf("Boolean increment should be flat 1 regardless of nesting, got %d", f.Increment)
			}
		}
	}
	if booleans != 2 {
		t.Errorf("Expected 2 boolean factors, got %d (factors: %+v)", booleans, res.Factors)
	}
	// if = 1, && = 1, || = 1
	if res.Total != 3 {
		t.Errorf("Expected complexity 3, got %d (factors: %+v)", res.Total, res.Factors)
	}
	assertFactorSum(t, res)
}

func TestBooleanAdditivityWithoutControlFlow(t *testing.T) {
	source := `
bool gate(bool p, bool q, bool r, bool s) {
    bool first = p && q;
    bool second = r || s;
    bool third = p && s;
    return first;
}
`
	res := scoreCpp(t, source, "gate")
	// No control structures: n independent logical operators score exactly n.
	if res.Total != 3 {
		t.Errorf("Expected complexity 3, got %d (factors: %+v)", res.Total, res.Factors)
	}
	for _, f := range res.Factors {
		if f.Increment != 1 {
			t.Errorf("Boolean factors must be flat 1, got %+v", f)
		}
	}
	assertFactorSum(t, res)
}

func TestPythonElifChain(t *testing.T) {
	source := `
def classify(x):
    if x < 0:
        return -1
    elif x == 0:
        return 0
    else:
        return 1
`
	res := scorePython(t, source, "classify")
	// if = 1, elif_clause = 1, else_clause = 1
	if res.Total != 3 {
		t.Errorf("Expected complexity 3, got %d (factors: %+v)", res.Total, res.Factors)
	}
	assertFactorSum(t, res)
}

func TestPythonBooleanWords(t *testing.T) {
	source := `
def admit(a, b, c):
    if a and b or c:
        return True
    return False
`
	res := scorePython(t, source, "admit")
	if res.Total != 3 {
		t.Errorf("Expected complexity 3, got %d (factors: %+v)", res.Total, res.Factors)
	}

	found := map[string]bool{}
	for _, f := range res.Factors {
		found[f.Description] = true
	}
	if !found["boolean operator and"] || !found["boolean operator or"] {
		t.Errorf("Expected and/or boolean factors, got %+v", res.Factors)
	}
}

func TestNestedFunctionNotChargedToEnclosing(t *testing.T) {
	source := `
def outer(items):
    def inner(x):
        if x:
            while x:
                x -= 1
    if items:
        return inner
`
	outer := scorePython(t, source, "outer")
	// Only outer's own if; inner's control flow belongs to inner.
	if outer.Total != 1 {
		t.Errorf("Expected outer complexity 1, got %d (factors: %+v)", outer.Total, outer.Factors)
	}

	inner := scorePython(t, source, "outer.inner")
	// if = 1, while = 1+1
	if inner.Total != 3 {
		t.Errorf("Expected inner complexity 3, got %d (factors: %+v)", inner.Total, inner.Factors)
	}
}

func TestCalculateIsIdempotent(t *testing.T) {
	source := `
void mixed(int n) {
    for (int i = 0; i < n; i++) {
        if (i > 2 && i < 8) {
            work(i);
        } else if (i == 9) {
            other(i);
        }
    }
    while (busy()) {
        wait();
    }
}
`
	first := scoreCpp(t, source, "mixed")
	second := scoreCpp(t, source, "mixed")

	if first.Total != second.Total {
		t.Errorf("Scoring is not idempotent: %d vs %d", first.Total, second.Total)
	}
	if len(first.Factors) != len(second.Factors) {
		t.Fatalf("Factor counts differ: %d vs %d", len(first.Factors), len(second.Factors))
	}
	for i := range first.Factors {
		if first.Factors[i] != second.Factors[i] {
			t.Errorf("Factor %d differs: %+v vs %+v", i, first.Factors[i], second.Factors[i])
		}
	}
	assertFactorSum(t, first)
}

func TestNilBodyScoresZero(t *testing.T) {
	calc := cognitive.NewCalculator(lang.CppDefinition().New(testLogger()).Adapter, testLogger())
	res := calc.Calculate(nil, nil)
	if res.Total != 0 || len(res.Factors) != 0 {
		t.Errorf("Nil body should score zero with no factors, got %+v", res)
	}
}

func TestFactorLinesAreOneIndexed(t *testing.T) {
	source := `void f(int x) {
    if (x) {
        use(x);
    }
}
`
	res := scoreCpp(t, source, "f")
	if len(res.Factors) != 1 {
		t.Fatalf("Expected 1 factor, got %+v", res.Factors)
	}
	if res.Factors[0].Line != 2 {
		t.Errorf("Expected factor on line 2, got %d", res.Factors[0].Line)
	}
}
