package cli

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/calvinalkan/shelflife/internal/config"
	"github.com/calvinalkan/shelflife/internal/inventory"
	"github.com/calvinalkan/shelflife/internal/store"
)

// App is what commands share within one process: the resolved config and,
// after login, the open store.
type App struct {
	Config config.Config
	Env    map[string]string
	KV     store.KV
	Store  *store.Store

	in     *input
	out    io.Writer
	errOut io.Writer
	now    func() time.Time

	loadWarned bool
}

func commands(app *App) []*Command {
	return []*Command{
		AddCmd(app),
		EditCmd(app),
		RmCmd(app),
		LsCmd(app),
		ShowCmd(app),
		StatsCmd(app),
		ExportCmd(app),
		PasswdCmd(app),
		ShellCmd(app),
		PrintConfigCmd(app),
	}
}

func (a *App) open() error {
	kv, err := store.OpenKV(a.Config.Backend, a.Config.DataDirAbs)
	if err != nil {
		return err
	}

	s, err := store.Open(kv, store.Options{Now: a.now})
	if err != nil {
		return errors.Join(err, kv.Close())
	}

	a.KV = kv
	a.Store = s

	return nil
}

// Close releases the store, if one was opened.
func (a *App) Close() error {
	if a.Store == nil {
		return nil
	}

	err := a.Store.Close()
	a.Store = nil
	a.KV = nil

	return err
}

func (a *App) today() inventory.Date {
	return a.Store.Today()
}

// runCommand runs cmd with a fresh IO. Problems found while loading the
// collection are reported once, with the first command.
func (a *App) runCommand(ctx context.Context, cmd *Command, args []string) int {
	o := NewIO(a.out, a.errOut)

	if a.Store != nil && !a.loadWarned {
		a.loadWarned = true

		for _, w := range a.Store.Warnings() {
			o.Warn(w)
		}
	}

	code := cmd.Run(ctx, o, args)
	o.Finish()

	return code
}
