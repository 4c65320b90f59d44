package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/dohr-michael/tasklist/internal/tasks"
	"github.com/dohr-michael/tasklist/internal/view"
)

// errNeedsYes is returned when a confirmation is needed but stdin is not a terminal.
var errNeedsYes = errors.New("refusing to delete without confirmation: stdin is not a terminal, pass --yes")

// stdinIsTerminal reports whether confirmations can be asked interactively.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// cliSurface prints one line per change and keeps the first error.
type cliSurface struct {
	out io.Writer
	err error
}

func (s *cliSurface) AppendItem(t tasks.Task)  { fmt.Fprintf(s.out, "Added %s: %s\n", t.ID, t.Text) }
func (s *cliSurface) RemoveItem(id string)     { fmt.Fprintf(s.out, "Deleted %s\n", id) }
func (s *cliSurface) SetItemText(id, t string) { fmt.Fprintf(s.out, "Renamed %s: %s\n", id, t) }
func (s *cliSurface) ClearItems()              { fmt.Fprintln(s.out, "Cleared all tasks.") }
func (s *cliSurface) ClearInput()              {}

func (s *cliSurface) ShowError(err error) {
	if s.err == nil {
		s.err = err
	}
}

// cliDialogs confirms on the terminal (or --yes) and answers prompts with
// the text given on the command line.
type cliDialogs struct {
	in     io.Reader
	out    io.Writer
	yes    bool
	answer string
	err    error
}

func (d *cliDialogs) Confirm(question string, reply func(bool)) {
	if d.yes {
		reply(true)
		return
	}
	if !stdinIsTerminal() {
		d.err = errNeedsYes
		return
	}

	fmt.Fprintf(d.out, "%s [y/N] ", question)
	line, err := bufio.NewReader(d.in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		d.err = fmt.Errorf("read answer: %w", err)
		return
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		reply(true)
	default:
		fmt.Fprintln(d.out, "Aborted.")
		reply(false)
	}
}

func (d *cliDialogs) Prompt(_ string, _ string, reply func(string, bool)) {
	reply(d.answer, true)
}

func newCLIView(ctx context.Context, cmd *cli.Command, ctrl view.Controller, answer string) (*view.View, *cliSurface, *cliDialogs) {
	root := cmd.Root()
	surface := &cliSurface{out: root.Writer}
	dialogs := &cliDialogs{
		in:     root.Reader,
		out:    root.Writer,
		yes:    cmd.Bool("yes"),
		answer: answer,
	}
	return view.New(ctx, ctrl, surface, dialogs), surface, dialogs
}
