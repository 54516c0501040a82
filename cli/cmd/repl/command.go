package repl

import (
	"bytes"
	"context"
	"fmt"
	"strings"
)

// commandPrefix runs a command from source mode.
const commandPrefix = ":"

// action is a side effect of a command on the terminal program.
type action int

const (
	actionNone action = iota
	actionHelp
	actionClear
	actionEdit
	actionQuit
)

// command is a control-mode command.
type command struct {
	name   string
	help   string
	action action
	run    func(ctx context.Context, s *Session) (string, error)
}

var commands = []command{
	{name: "help", help: "Print this help", action: actionHelp},
	{name: "list", help: "List entries and their values", run: listEntries},
	{name: "consts", help: "List constants and their values", run: listConstants},
	{name: "json", help: "Print the document as JSON", run: func(ctx context.Context, s *Session) (string, error) {
		return format(func(b *bytes.Buffer) error { return s.Document().FormatJSON(ctx, b, 2) })
	}},
	{name: "yaml", help: "Print the document as YAML", run: func(ctx context.Context, s *Session) (string, error) {
		return format(func(b *bytes.Buffer) error { return s.Document().FormatYAML(ctx, b, 2) })
	}},
	{name: "env", help: "Print the document as shell assignments", run: func(ctx context.Context, s *Session) (string, error) {
		return format(func(b *bytes.Buffer) error { return s.Document().FormatEnv(ctx, b, "") })
	}},
	{name: "source", help: "Print the accumulated source", run: func(_ context.Context, s *Session) (string, error) {
		return s.Source(), nil
	}},
	{name: "reset", help: "Discard lines entered in this session", run: func(ctx context.Context, s *Session) (string, error) {
		n := s.Len()

		return fmt.Sprintf("discarded %d line(s)", n), s.Reset(ctx)
	}},
	{name: "edit", help: "Edit the source in $EDITOR", action: actionEdit},
	{name: "clear", help: "Clear the screen", action: actionClear},
	{name: "quit", help: "Exit", action: actionQuit},
}

// commandNames returns the names of all commands in help order.
func commandNames() []string {
	names := make([]string, len(commands))
	for i, c := range commands {
		names[i] = c.name
	}

	return names
}

// lookupCommand returns the command named name or uniquely prefixed by it.
func lookupCommand(name string) (command, bool) {
	var found []command

	for _, c := range commands {
		if c.name == name {
			return c, true
		}

		if strings.HasPrefix(c.name, name) {
			found = append(found, c)
		}
	}

	if name == "" || len(found) != 1 {
		return command{}, false
	}

	return found[0], true
}

// execute runs the command named by the first field of input and returns
// its output and the action the program should take.
func execute(ctx context.Context, s *Session, input string) (string, action, error) {
	fields := strings.Fields(strings.TrimPrefix(input, commandPrefix))
	if len(fields) == 0 {
		return "", actionNone, nil
	}

	c, ok := lookupCommand(fields[0])
	if !ok {
		return "", actionNone, fmt.Errorf("%w: %s", ErrUnknownCommand, fields[0])
	}

	switch {
	case c.action == actionHelp:
		return helpMessage(), actionNone, nil
	case c.run == nil:
		return "", c.action, nil
	}

	out, err := c.run(ctx, s)

	return out, c.action, err
}

func helpMessage() string {
	var b strings.Builder

	b.WriteString("Commands (press Esc to toggle mode, or prefix with " + commandPrefix + "):\n\n")

	width := 0
	for _, c := range commands {
		width = max(width, len(c.name))
	}

	for _, c := range commands {
		fmt.Fprintf(&b, "  %-*s  %s\n", width, c.name, c.help)
	}

	b.WriteString(`
Usage:
  Enter konst source to add entries and constants, e.g. port; 8080
  Prefix a line with ? to evaluate an expression, e.g. ?port + 1
  Press Tab / Shift-Tab to cycle through completions
  Use Up/Down for history, Shift+Up/Shift+Down within the current mode
  Press Ctrl+C on an empty line or Ctrl+D to exit`)

	return b.String()
}

func listEntries(_ context.Context, s *Session) (string, error) {
	var b strings.Builder

	for key, v := range s.Document().All() {
		fmt.Fprintf(&b, "  %s %s\n", key, hintStyle.Render(preview(v.String())))
	}

	if b.Len() == 0 {
		return "(no entries)", nil
	}

	return strings.TrimSuffix(b.String(), "\n"), nil
}

func listConstants(_ context.Context, s *Session) (string, error) {
	var b strings.Builder

	for _, name := range s.Constants().Names() {
		v, _ := s.Constants().Lookup(name)
		fmt.Fprintf(&b, "  %s %s\n", name, hintStyle.Render(preview(v.String())))
	}

	if b.Len() == 0 {
		return "(no constants)", nil
	}

	return strings.TrimSuffix(b.String(), "\n"), nil
}

func format(write func(*bytes.Buffer) error) (string, error) {
	var b bytes.Buffer
	if err := write(&b); err != nil {
		return "", err
	}

	return strings.TrimSuffix(b.String(), "\n"), nil
}

// previewWidth is the maximum width of a value preview.
const previewWidth = 40

func preview(s string) string {
	if r := []rune(s); len(r) > previewWidth {
		return string(r[:previewWidth-3]) + "..."
	}

	return s
}
