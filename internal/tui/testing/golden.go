package testing

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var updateGolden = flag.Bool("update-golden", false, "update golden files")

// GoldenFile compares rendered output against files under a testdata directory.
type GoldenFile struct {
	t        *testing.T
	basePath string
}

// NewGoldenFile creates a new golden file tester.
func NewGoldenFile(t *testing.T, basePath string) *GoldenFile {
	t.Helper()

	return &GoldenFile{
		t:        t,
		basePath: basePath,
	}
}

// Assert compares actual with the named golden file and fails the test if they differ.
func (g *GoldenFile) Assert(name, actual string) {
	g.t.Helper()

	goldenPath := filepath.Join(g.basePath, name+".golden")

	if *updateGolden {
		if err := os.MkdirAll(g.basePath, 0750); err != nil {
			g.t.Fatalf("failed to create golden file directory: %v", err)
		}
		if err := os.WriteFile(goldenPath, []byte(actual), 0600); err != nil {
			g.t.Fatalf("failed to update golden file: %v", err)
		}
		g.t.Logf("Updated golden file: %s", goldenPath)
		return
	}

	expected, err := os.ReadFile(goldenPath) // #nosec G304 - goldenPath is constructed from controlled inputs
	if err != nil {
		if os.IsNotExist(err) {
			g.t.Fatalf("golden file does not exist: %s\nRun with -update-golden to create it", goldenPath)
		}
		g.t.Fatalf("failed to read golden file: %v", err)
	}

	if string(expected) != actual {
		g.t.Errorf("output does not match golden file %s:\n%s", goldenPath, diff(string(expected), actual))
	}
}

// AssertStripped compares actual with the golden file after stripping ANSI codes.
func (g *GoldenFile) AssertStripped(name, actual string) {
	g.t.Helper()
	g.Assert(name, StripANSI(actual))
}

func diff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var b strings.Builder
	n := max(len(expectedLines), len(actualLines))
	for i := 0; i < n; i++ {
		var want, got string
		if i < len(expectedLines) {
			want = expectedLines[i]
		}
		if i < len(actualLines) {
			got = actualLines[i]
		}
		if want != got {
			b.WriteString("- ")
			b.WriteString(want)
			b.WriteString("\n+ ")
			b.WriteString(got)
			b.WriteString("\n")
		}
	}
	return b.String()
}
