package analyze

import (
	"context"
	"testing"

	"ccs/internal/lang"
	"ccs/internal/logging"
)

func testLogger() *logging.Logger {
	return logging.NewLogger(logging.Config{
		Format: logging.HumanFormat,
		Level:  logging.ErrorLevel,
	})
}

const cppSample = `
void flat() {
    work();
}

void branchy(int n) {
    for (int i = 0; i < n; i++) {
        if (i % 2 == 0) {
            use(i);
        }
    }
}
`

func TestAnalyzeSourceReportsAllAtZeroThreshold(t *testing.T) {
	engine := NewEngine(lang.Builtin(testLogger()), testLogger(), Options{})
	results, err := engine.AnalyzeSource(context.Background(), []byte(cppSample), "sample.cpp")
	if err != nil {
		t.Fatalf("AnalyzeSource failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 functions, got %d", len(results))
	}

	byName := map[string]Result{}
	for _, res := range results {
		byName[res.Function] = res
	}
	if byName["flat"].Complexity != 0 {
		t.Errorf("Expected flat=0, got %d", byName["flat"].Complexity)
	}
	// for = 1, if = 1+1
	if byName["branchy"].Complexity != 3 {
		t.Errorf("Expected branchy=3, got %d", byName["branchy"].Complexity)
	}
	if byName["branchy"].Language != "cpp" {
		t.Errorf("Expected language cpp, got %q", byName["branchy"].Language)
	}
}

func TestThresholdFilterIsMonotonic(t *testing.T) {
	previous := -1
	for _, threshold := range []int{0, 1, 3, 4, 100} {
		engine := NewEngine(lang.Builtin(testLogger()), testLogger(), Options{Threshold: threshold})
		results, err := engine.AnalyzeSource(context.Background(), []byte(cppSample), "sample.cpp")
		if err != nil {
			t.Fatalf("AnalyzeSource failed at threshold %d: %v", threshold, err)
		}
		for _, res := range results {
			if res.Complexity < threshold {
				t.Errorf("Threshold %d leaked result with complexity %d", threshold, res.Complexity)
			}
		}
		if previous >= 0 && len(results) > previous {
			t.Errorf("Raising the threshold increased the result count: %d -> %d", previous, len(results))
		}
		previous = len(results)
	}
}

func TestUnsupportedExtensionYieldsEmptyNotError(t *testing.T) {
	engine := NewEngine(lang.Builtin(testLogger()), testLogger(), Options{})
	results, err := engine.AnalyzeSource(context.Background(), []byte("# markdown"), "README.md")
	if err != nil {
		t.Fatalf("Unsupported extension must not be an error, got %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Expected empty results, got %d", len(results))
	}
}

func TestLanguageOverrideBeatsExtension(t *testing.T) {
	source := `
def pick(x):
    if x:
        return x
`
	engine := NewEngine(lang.Builtin(testLogger()), testLogger(), Options{Language: "python"})
	results, err := engine.AnalyzeSource(context.Background(), []byte(source), "script.txt")
	if err != nil {
		t.Fatalf("AnalyzeSource failed: %v", err)
	}
	if len(results) != 1 || results[0].Function != "pick" {
		t.Fatalf("Expected the python function to be found, got %+v", results)
	}
	if results[0].Complexity != 1 {
		t.Errorf("Expected complexity 1, got %d", results[0].Complexity)
	}
}

func TestMalformedSourceStillYieldsValidFunctions(t *testing.T) {
	source := `
void ok(int n) {
    if (n) {
        use(n);
    }
}

void broken( {
`
	engine := NewEngine(lang.Builtin(testLogger()), testLogger(), Options{})
	results, err := engine.AnalyzeSource(context.Background(), []byte(source), "partial.cpp")
	if err != nil {
		t.Fatalf("Best-effort parse must not fail the file: %v", err)
	}

	found := false
	for _, res := range results {
		if res.Function == "ok" && res.Complexity == 1 {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected 'ok' with complexity 1 among %+v", results)
	}
}
