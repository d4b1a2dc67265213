// Package test_utils collects the fixture and diffing helpers shared by
// this module's test suites, the way the teacher's own internal/test_utils
// package backs its printer tests: dedented markup literals, a
// go-snaps-backed snapshotter, and colorized structural diffs for
// failures.
package test_utils

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/google/go-cmp/cmp"
	"github.com/lithammer/dedent"
	"github.com/pkg/diff"
)

func RemoveNewlines(input string) string {
	return strings.ReplaceAll(input, "\n", "")
}

// Dedent strips common leading whitespace from a multi-line markup
// fixture, so scenario tables can write legible indented HTML literals.
func Dedent(input string) string {
	return dedent.Dedent(
		strings.ReplaceAll(
			strings.TrimLeft(
				strings.TrimRight(input, " \n\r"),
				" \t\r\n"),
			"\n\n\n", "\n\n"),
	)
}

func ANSIDiff(x, y interface{}, opts ...cmp.Option) string {
	escapeCode := func(code int) string {
		return fmt.Sprintf("\x1b[%dm", code)
	}
	d := cmp.Diff(x, y, opts...)
	if d == "" {
		return ""
	}
	ss := strings.Split(d, "\n")
	for i, s := range ss {
		switch {
		case strings.HasPrefix(s, "-"):
			ss[i] = escapeCode(31) + s + escapeCode(0)
		case strings.HasPrefix(s, "+"):
			ss[i] = escapeCode(32) + s + escapeCode(0)
		}
	}
	return strings.Join(ss, "\n")
}

// TextDiff renders a unified diff between two plain-text values (e.g. the
// materialized text of two selections), where ANSIDiff's struct-shaped
// output would be noise.
func TextDiff(name, got, want string) string {
	if got == want {
		return ""
	}
	var b strings.Builder
	_ = diff.Text(name+" (got)", name+" (want)", got, want, &b)
	return b.String()
}

// RedactTestName removes characters a filesystem or go-snaps would choke
// on from a test case name, so it can be used as a snapshot key.
func RedactTestName(testCaseName string) string {
	r := strings.NewReplacer(
		"#", "_", "<", "_", ">", "_", ")", "_", "(", "_",
		":", "_", " ", "_", "'", "_", "\"", "_", "@", "_",
		"`", "_", "+", "_",
	)
	return r.Replace(testCaseName)
}

type OutputKind int

const (
	TraceOutput OutputKind = iota
	JsonOutput
	HtmlOutput
)

var outputKind = map[OutputKind]string{
	TraceOutput: "text",
	JsonOutput:  "json",
	HtmlOutput:  "html",
}

type SnapshotOptions struct {
	Testing      *testing.T
	TestCaseName string
	Input        string
	Output       string
	Kind         OutputKind
	FolderName   string
}

// MakeSnapshot records the markup input and the core's output (a
// movement trace, a JSON selection snapshot, ...) side by side in one
// go-snaps snapshot, so a reviewer can see cause and effect in one diff.
func MakeSnapshot(options *SnapshotOptions) {
	t := options.Testing
	folderName := "__snapshots__"
	if options.FolderName != "" {
		folderName = options.FolderName
	}
	snapshotName := RedactTestName(options.TestCaseName)

	s := snaps.WithConfig(
		snaps.Filename(snapshotName),
		snaps.Dir(folderName),
	)

	var snapshot strings.Builder
	snapshot.WriteString("## Input\n\n```html\n")
	snapshot.WriteString(Dedent(options.Input))
	snapshot.WriteString("\n```\n\n## Output\n\n```")
	snapshot.WriteString(outputKind[options.Kind])
	snapshot.WriteString("\n")
	snapshot.WriteString(Dedent(options.Output))
	snapshot.WriteString("\n```")

	s.MatchSnapshot(t, snapshot.String())
}
