package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/shelflife/internal/config"
	"github.com/calvinalkan/shelflife/internal/inventory"
)

const helpFlag = "--help"

var errDataDirFlagEmpty = errors.New("--data-dir cannot be empty")

// Run is the main entry point. Returns exit code.
func Run(in io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if sigCh != nil {
		go func() {
			select {
			case <-sigCh:
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	globals, err := parseGlobalFlags(args)
	if err != nil {
		fprintln(errOut, "error:", err)
		printUsage(errOut, commands(&App{}))

		return 1
	}

	if globals.help || len(globals.rest) == 0 {
		printUsage(out, commands(&App{}))

		return 0
	}

	cfg, err := config.Load(config.LoadInput{
		WorkDirOverride: globals.workDir,
		ConfigPath:      globals.configPath,
		DataDirOverride: globals.dataDir,
		BackendOverride: globals.backend,
		Env:             env,
	})
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	app := &App{
		Config: cfg,
		Env:    env,
		in:     newInput(in),
		out:    out,
		errOut: errOut,
		now:    time.Now,
	}

	if !globals.today.IsZero() {
		today := globals.today
		app.now = today.Time
	}

	name, cmdArgs := globals.rest[0], globals.rest[1:]

	cmd := findCommand(commands(app), name)
	if cmd == nil {
		fprintln(errOut, "error: unknown command:", name)
		printUsage(errOut, commands(app))

		return 1
	}

	if !cmd.NoLogin && !hasHelpFlag(cmdArgs) {
		err = app.open()
		if err != nil {
			fprintln(errOut, "error:", err)

			return 1
		}

		defer func() { _ = app.Close() }()

		err = app.login()
		if err != nil {
			fprintln(errOut, "error:", err)

			return 1
		}
	}

	return app.runCommand(ctx, cmd, cmdArgs)
}

type globalFlags struct {
	workDir    string
	configPath string
	dataDir    string
	backend    string
	todayRaw   string
	today      inventory.Date
	help       bool
	rest       []string
}

func globalFlagSet(g *globalFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("shelf", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SetInterspersed(false)

	fs.StringVarP(&g.workDir, "cwd", "C", "", "Run as if started in `dir`")
	fs.StringVarP(&g.configPath, "config", "c", "", "Use specified config `file`")
	fs.StringVar(&g.dataDir, "data-dir", "", "Override the data `dir`")
	fs.StringVar(&g.backend, "backend", "", "Storage backend: file|sqlite")
	fs.StringVar(&g.todayRaw, "today", "", "Evaluate expiry as of `YYYY-MM-DD`")
	fs.BoolVarP(&g.help, "help", "h", false, "Show help")

	return fs
}

func parseGlobalFlags(args []string) (globalFlags, error) {
	var g globalFlags

	if len(args) < 2 {
		return g, nil
	}

	fs := globalFlagSet(&g)

	err := fs.Parse(args[1:])
	if err != nil {
		return globalFlags{}, err
	}

	if fs.Changed("data-dir") && g.dataDir == "" {
		return globalFlags{}, errDataDirFlagEmpty
	}

	if fs.Changed("today") {
		g.today, err = inventory.ParseDate(g.todayRaw)
		if err != nil {
			return globalFlags{}, fmt.Errorf("--today: %w", err)
		}
	}

	g.rest = fs.Args()

	return g, nil
}

func findCommand(cmds []*Command, name string) *Command {
	for _, c := range cmds {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func hasHelpFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--" {
			return false
		}

		if arg == "-h" || arg == helpFlag {
			return true
		}
	}

	return false
}

func printUsage(w io.Writer, cmds []*Command) {
	fprintln(w, `shelf - track what is in the pantry and when it expires

Usage: shelf [options] <command> [args]

Options:`)

	var g globalFlags

	var buf strings.Builder

	fs := globalFlagSet(&g)
	fs.SetOutput(&buf)
	fs.PrintDefaults()
	_, _ = io.WriteString(w, buf.String())

	fprintln(w)
	fprintln(w, "Commands:")

	for _, c := range cmds {
		fprintln(w, c.HelpLine())
	}

	fprintln(w)
	fprintln(w, "Every command except print-config asks for the password. Set SHELF_SECRET")
	fprintln(w, "or pipe it as the first line of stdin to skip the prompt.")
}
