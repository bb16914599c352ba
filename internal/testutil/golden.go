// Package testutil holds shared test helpers.
package testutil

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// updateGolden controls whether golden files should be updated.
// Use: go test ./... -update
var updateGolden = flag.Bool("update", false, "update golden files")

// CompareGolden compares got against testdata/<name>.golden, failing with
// a diff on mismatch. With -update it rewrites the golden file instead.
func CompareGolden(t *testing.T, name string, got []byte) {
	t.Helper()

	goldenPath := filepath.Join("testdata", name+".golden")

	if *updateGolden {
		if err := os.MkdirAll(filepath.Dir(goldenPath), 0755); err != nil {
			t.Fatalf("Failed to create testdata dir: %v", err)
		}
		if err := os.WriteFile(goldenPath, got, 0644); err != nil {
			t.Fatalf("Failed to update golden file: %v", err)
		}
		t.Logf("Updated golden: %s", goldenPath)
		return
	}

	expected, err := os.ReadFile(goldenPath)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("Golden file missing: %s\n\nGot:\n%s\n\nRun with -update to create",
				goldenPath, string(got))
		}
		t.Fatalf("Failed to read golden file: %v", err)
	}

	if !bytes.Equal(got, expected) {
		t.Fatalf("Golden mismatch for %s:\n%s\n\nRun with -update to refresh",
			name, unifiedDiff(string(expected), string(got), goldenPath))
	}
}

// unifiedDiff produces a minimal line diff for readable failures.
func unifiedDiff(expected, got, path string) string {
	expectedLines := strings.Split(expected, "\n")
	gotLines := strings.Split(got, "\n")

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s (expected)\n+++ (got)\n", path)

	max := len(expectedLines)
	if len(gotLines) > max {
		max = len(gotLines)
	}
	for i := 0; i < max; i++ {
		var e, g string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(gotLines) {
			g = gotLines[i]
		}
		if e == g {
			continue
		}
		if i < len(expectedLines) {
			fmt.Fprintf(&sb, "-%4d: %s\n", i+1, e)
		}
		if i < len(gotLines) {
			fmt.Fprintf(&sb, "+%4d: %s\n", i+1, g)
		}
	}
	return sb.String()
}
