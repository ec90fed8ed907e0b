// Package loxtest runs the golox binary against the corpus of .lox files under test/testdata.
//
// Each file states its expected behaviour in comments. Every `// prints: <line>` comment is a line which should be
// printed to stdout, in order, with `<empty>` standing for an empty line. Every `// error: <diagnostic>` comment is a
// diagnostic which should be printed to stderr, in order. A file with any `// error:` comments should exit with a
// non-zero status.
package loxtest

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"unicode"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	"github.com/loxlang/lox/golox/ansi"
)

var update = flag.Bool("update", false, "updates the expected output of each test")

var (
	// PrintsRe matches an expected line of stdout.
	PrintsRe = regexp.MustCompile(`// prints: (.+)`)
	// ErrorRe matches an expected diagnostic.
	ErrorRe = regexp.MustCompile(`// error: (.+)`)
)

func init() {
	ansi.Enabled = true
}

// Runner defines how a test will be run or updated.
type Runner interface {
	// Test runs the test for the .lox file at path and fails t if the result isn't as expected.
	Test(t *testing.T, path string)
	// Update rewrites the expectation comments of the .lox file at path to match its actual result.
	Update(t *testing.T, path string)
}

// Run calls runner.Test in a parallel subtest for each .lox file under test/testdata, or runner.Update if the -update
// flag was passed to the test binary. Subdirectories become nested subtests.
func Run(t *testing.T, runner Runner) {
	testdataDir := filepath.Join(mustGoModuleRoot(t), "test", "testdata")
	run(t, runner, testdataDir)
}

func run(t *testing.T, runner Runner, dir string) {
	matches, err := filepath.Glob(filepath.Join(dir, "*"))
	if err != nil {
		t.Fatal(err)
	}

	for _, path := range matches {
		testName := snakeToPascalCase(filepath.Base(path))
		if filepath.Ext(path) == ".lox" {
			t.Run(strings.TrimSuffix(testName, ".lox"), func(t *testing.T) {
				t.Parallel()
				if *update {
					runner.Update(t, path)
				} else {
					runner.Test(t, path)
				}
			})
			continue
		}
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			t.Run(testName, func(t *testing.T) {
				t.Parallel()
				run(t, runner, path)
			})
		}
	}
}

func snakeToPascalCase(s string) string {
	var b strings.Builder
	for part := range strings.SplitSeq(s, "_") {
		r, size := utf8.DecodeRuneInString(part)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(part[size:])
	}
	return b.String()
}

// ComputeDiff returns a human-readable report of the differences between a wanted and got value.
func ComputeDiff(want, got any) string {
	diff := cmp.Diff(want, got, cmp.Transformer("BytesToString", func(b []byte) string {
		return string(b)
	}))
	return ansi.Sprintf("${GREEN}want -\n${RED}got +${DEFAULT}\n%s", colouriseDiff(diff))
}

// ComputeTextDiff returns a unified diff of a wanted and got string.
// It's more readable than [ComputeDiff] for multi-line output.
func ComputeTextDiff(want, got string) string {
	edits := myers.ComputeEdits(span.URIFromPath("want"), want, got)
	diff := fmt.Sprint(gotextdiff.ToUnified("want", "got", want, edits))
	return colouriseDiff(diff)
}

func colouriseDiff(diff string) string {
	lines := strings.Split(diff, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "-") {
			lines[i] = ansi.Sprint("${GREEN}", line, "${DEFAULT}")
		} else if strings.HasPrefix(line, "+") {
			lines[i] = ansi.Sprint("${RED}", line, "${DEFAULT}")
		}
	}
	return strings.Join(lines, "\n")
}

// MustBuildBinary builds the main package in the directory name at the root of the module and returns the path to the
// binary.
func MustBuildBinary(t *testing.T, name string) string {
	t.Helper()

	rootDir := mustGoModuleRoot(t)
	buildDir := filepath.Join(rootDir, "build")
	if err := os.MkdirAll(buildDir, 0755); err != nil {
		t.Fatalf("building %s: %s", name, err)
	}

	binPath := filepath.Join(buildDir, name)
	cmd := exec.Command("go", "build", "-o", binPath, "github.com/loxlang/lox/"+name)
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("building %s: %s: %v\nOutput:\n%s\n", name, cmd.String(), err, string(output))
	}

	return binPath
}

func mustGoModuleRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("determining go module root: %s", err)
	}

	for d := wd; d != "/"; d = filepath.Dir(d) {
		gomodPath := filepath.Join(d, "go.mod")
		if info, err := os.Stat(gomodPath); err == nil && !info.IsDir() {
			return d
		}
	}

	t.Fatal("determining go module root: no parent directory containing go.mod found")
	return ""
}

// ParseComments returns the first submatch of each match of commentPattern in fileContents. `<empty>` is returned as
// an empty line.
func ParseComments(fileContents []byte, commentPattern *regexp.Regexp) [][]byte {
	var lines [][]byte
	for _, match := range commentPattern.FindAllSubmatch(fileContents, -1) {
		line := match[1]
		if bytes.Equal(line, []byte("<empty>")) {
			line = []byte{}
		}
		lines = append(lines, line)
	}
	return lines
}

// MustUpdateComments replaces the first submatch of each match of commentPattern in fileContents with the
// corresponding line and returns the result. The number of matches must equal the number of lines.
func MustUpdateComments(t *testing.T, filePath string, fileContents []byte, commentPattern *regexp.Regexp, lines [][]byte) []byte {
	t.Helper()
	matches := commentPattern.FindAllSubmatchIndex(fileContents, -1)
	if len(lines) != len(matches) {
		t.Fatalf(`%d "%s" %s found in %s but %d %s output, these should be equal`,
			len(matches), commentPattern, pluralise("comment", len(matches)), filePath, len(lines), pluralise("line", len(lines)))
	}

	var b bytes.Buffer
	lastEnd := 0
	for i, match := range matches {
		start, end := match[2], match[3]
		b.Write(fileContents[lastEnd:start])
		if len(lines[i]) == 0 {
			b.WriteString("<empty>")
		} else {
			b.Write(lines[i])
		}
		lastEnd = end
	}
	b.Write(fileContents[lastEnd:])

	return b.Bytes()
}

func pluralise(s string, n int) string {
	if n == 1 {
		return s
	}
	return s + "s"
}
