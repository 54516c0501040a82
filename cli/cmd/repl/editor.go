package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/konst/lang"
	"github.com/ardnew/konst/log"
	"github.com/ardnew/konst/pkg"
)

const defaultEditor = "vi"

// editCommand implements [tea.ExecCommand]. It writes the session source to
// a temporary file, opens the user's editor, and replaces the session source
// with the result. On a parse error the user may edit again; declining
// returns [ErrEditDeclined].
type editCommand struct {
	session *Session
	ctx     func() context.Context
	logger  log.Logger
	changed bool

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func (c *editCommand) SetStdin(r io.Reader)  { c.stdin = r }
func (c *editCommand) SetStdout(w io.Writer) { c.stdout = w }
func (c *editCommand) SetStderr(w io.Writer) { c.stderr = w }

func (c *editCommand) Run() error {
	ctx := c.ctx()

	f, err := os.CreateTemp("", pkg.Name+"-repl-*.konst")
	if err != nil {
		return err
	}

	path := f.Name()
	defer os.Remove(path)

	_, err = f.WriteString(c.session.Source())
	if cerr := f.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		return err
	}

	for {
		if err := runEditor(ctx, c.stdin, c.stdout, c.stderr, path); err != nil {
			return err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		src := string(data)
		if strings.TrimSpace(src) == "" {
			return nil
		}

		err = c.session.Replace(ctx, src)
		c.logger.TraceContext(ctx, "editor parse attempt",
			slog.Int("length", len(data)),
			slog.Bool("success", err == nil),
		)

		if err == nil {
			c.changed = true

			return nil
		}

		fmt.Fprintf(c.stderr, "\n%s\n", lang.WrapError(err))

		if snippet := lang.WrapError(err).Snippet(src); snippet != "" {
			fmt.Fprint(c.stderr, snippet)
		}

		fmt.Fprint(c.stdout, "Re-edit? [Y/n] ")

		scanner := bufio.NewScanner(c.stdin)
		if !scanner.Scan() {
			return ErrEditDeclined
		}

		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "n", "no":
			return ErrEditDeclined
		}
	}
}

// runEditor runs $EDITOR on path and waits for it to exit.
func runEditor(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, path string) error {
	// $EDITOR may carry arguments, e.g. "code --wait".
	args := strings.Fields(os.Getenv("EDITOR"))
	if len(args) == 0 {
		args = []string{defaultEditor}
	}

	cmd := exec.CommandContext(ctx, args[0], append(args[1:], path)...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = stdin, stdout, stderr

	return cmd.Run()
}
