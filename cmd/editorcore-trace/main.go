// Command editorcore-trace is a headless debugging tool: it parses a
// literal HTML fixture, attaches the core to it with a deterministic
// GridLayout stand-in for a real browser layout engine, and prints the
// resulting node snapshot tree — the same role the teacher's
// cmd/astro binary plays for inspecting a compiled AST.
package main

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"

	"github.com/inkline/editorcore/internal/core"
	"github.com/inkline/editorcore/internal/snapshot"
	"github.com/inkline/editorcore/internal/test_utils"
)

func main() {
	if err := run(os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "editorcore-trace:", err)
		os.Exit(1)
	}
}

func run(in io.Reader, out io.Writer) error {
	markup, err := io.ReadAll(in)
	if err != nil {
		return err
	}

	root, err := test_utils.ParseFixture(string(markup))
	if err != nil {
		return err
	}

	layout := test_utils.NewGridLayout(root, terminalWidth())
	handle := core.Attach(layout, root)
	defer handle.Detach()

	tree, err := snapshot.MarshalTree(layout, root)
	if err != nil {
		return err
	}
	_, err = out.Write(append(tree, '\n'))
	return err
}

// terminalWidth supplies the GridLayout's line width: query the
// controlling tty via ioctl, falling back to a sane default when stdout
// isn't a terminal (e.g. piped into a file).
func terminalWidth() int {
	const fallback = 80
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 {
		return fallback
	}
	return int(ws.Col)
}
