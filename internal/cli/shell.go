package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"
)

const (
	shellPrompt      = "shelf> "
	historyFileName  = ".shelf_history"
	historyFilePerms = 0o600
)

// lineSource is what the shell reads commands from: liner on a terminal,
// buffered stdin otherwise.
type lineSource interface {
	Prompt(prompt string) (string, error)
	AppendHistory(line string)
	Close() error
}

type pipedSource struct {
	in *input
}

func (p pipedSource) Prompt(string) (string, error) {
	return p.in.ReadLine()
}

func (pipedSource) AppendHistory(string) {}

func (pipedSource) Close() error {
	return nil
}

type linerSource struct {
	*liner.State

	historyPath string
}

func newLinerSource(historyPath string, names []string) *linerSource {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	state.SetCompleter(func(line string) []string {
		var out []string

		lower := strings.ToLower(line)
		for _, name := range names {
			if strings.HasPrefix(name, lower) {
				out = append(out, name)
			}
		}

		return out
	})

	if f, err := os.Open(historyPath); err == nil {
		_, _ = state.ReadHistory(f)
		_ = f.Close()
	}

	return &linerSource{State: state, historyPath: historyPath}
}

// Close saves history and restores the terminal.
func (l *linerSource) Close() error {
	f, err := os.OpenFile(l.historyPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, historyFilePerms)
	if err == nil {
		_, _ = l.WriteHistory(f)
		_ = f.Close()
	}

	return l.State.Close()
}

// ShellCmd returns the shell command.
func ShellCmd(app *App) *Command {
	return &Command{
		Flags: flag.NewFlagSet("shell", flag.ContinueOnError),
		Usage: "shell",
		Short: "Interactive session",
		Long: `Start an interactive session. The password is checked once; after that
every command can be typed without the "shelf" prefix. Type "help" for the
command list and "exit" to leave.

History is kept in <data_dir>/.shelf_history.`,
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			return execShell(ctx, o, app)
		},
	}
}

func (a *App) lineSource() lineSource {
	if !a.in.tty {
		return pipedSource{in: a.in}
	}

	names := []string{"help", "exit", "quit"}
	for _, c := range commands(a) {
		names = append(names, c.Name())
	}

	return newLinerSource(filepath.Join(a.Config.DataDirAbs, historyFileName), names)
}

func execShell(ctx context.Context, o *IO, app *App) error {
	src := app.lineSource()
	defer func() { _ = src.Close() }()

	if app.in.tty {
		o.Println("shelf shell. Type 'help' for commands, 'exit' to leave.")
	}

	for ctx.Err() == nil {
		line, err := src.Prompt(shellPrompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return nil
			}

			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		src.AppendHistory(line)

		words := splitShellWords(line)
		if len(words) == 0 {
			continue
		}

		switch name := words[0]; name {
		case "exit", "quit", "q":
			return nil
		case "help", "?":
			printShellHelp(o, commands(app))
		case "shell":
			o.ErrPrintln("error: already in the shell")
		default:
			cmd := findCommand(commands(app), name)
			if cmd == nil {
				o.ErrPrintln("error: unknown command:", name, "(type 'help' for commands)")

				continue
			}

			app.runCommand(ctx, cmd, words[1:])
		}
	}

	return nil
}

func printShellHelp(o *IO, cmds []*Command) {
	o.Println("Commands:")

	for _, c := range cmds {
		if c.Name() == "shell" {
			continue
		}

		o.Println(c.HelpLine())
	}

	o.Println(fmt.Sprintf("  %-34s %s", "help", "Show this list"))
	o.Println(fmt.Sprintf("  %-34s %s", "exit", "Leave the shell"))
}

// splitShellWords splits a line into argv. Single and double quotes group
// words; a backslash escapes the next rune outside single quotes.
func splitShellWords(s string) []string {
	var (
		out     []string
		cur     []rune
		started bool
	)

	inSingle, inDouble, escaped := false, false, false

	flush := func() {
		if !started {
			return
		}

		out = append(out, string(cur))
		cur = cur[:0]
		started = false
	}

	for _, r := range s {
		switch {
		case escaped:
			cur = append(cur, r)
			escaped = false
		case r == '\\' && !inSingle:
			escaped = true
			started = true
		case r == '\'' && !inDouble:
			inSingle = !inSingle
			started = true
		case r == '"' && !inSingle:
			inDouble = !inDouble
			started = true
		case !inSingle && !inDouble && unicode.IsSpace(r):
			flush()
		default:
			cur = append(cur, r)
			started = true
		}
	}

	flush()

	return out
}
