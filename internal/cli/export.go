package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/shelflife/internal/inventory"
)

const (
	exportDirPerms = 0o750
	stdoutPath     = "-"
)

// ExportCmd returns the export command.
func ExportCmd(app *App) *Command {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.StringP("output", "o", "", "Write to `path` instead of the default file; - for stdout")

	return &Command{
		Flags: fs,
		Usage: "export [-o <path>|-]",
		Short: "Export items as CSV",
		Long: `Export every item as CSV, soonest expiry first, with each item's tier
as of today.

Without -o the file is written to <export_dir>/expired-items-<today>.csv
and its path is printed. With nothing to export no file is written.`,
		Exec: func(_ context.Context, o *IO, _ []string) error {
			return execExport(o, app, fs)
		},
	}
}

func execExport(o *IO, app *App, fs *flag.FlagSet) error {
	today := app.today()

	data, err := inventory.ToCSV(app.Store.Items(), today)
	if errors.Is(err, inventory.ErrNothingToExport) {
		o.Warn("No items to export")

		return nil
	}

	if err != nil {
		return err
	}

	output, _ := fs.GetString("output")
	if fs.Changed("output") && output == "" {
		return fmt.Errorf("%w: --output", errEmptyValue)
	}

	if output == stdoutPath {
		o.Printf("%s", data)

		return nil
	}

	path := output
	if path == "" {
		path = filepath.Join(app.Config.ExportDirAbs, inventory.ExportFileName(today))
	} else if !filepath.IsAbs(path) {
		path = filepath.Join(app.Config.EffectiveCwd, path)
	}

	err = os.MkdirAll(filepath.Dir(path), exportDirPerms)
	if err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	err = atomic.WriteFile(path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("write export: %w", err)
	}

	o.Println(path)

	return nil
}
