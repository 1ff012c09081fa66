package cli

import (
	"context"

	flag "github.com/spf13/pflag"
)

// PrintConfigCmd returns the print-config command.
func PrintConfigCmd(app *App) *Command {
	return &Command{
		Flags:   flag.NewFlagSet("print-config", flag.ContinueOnError),
		Usage:   "print-config",
		Short:   "Show resolved configuration",
		Long:    "Display the effective configuration and which files it was loaded from.",
		NoLogin: true,
		Exec: func(_ context.Context, o *IO, _ []string) error {
			return execPrintConfig(o, app)
		},
	}
}

func execPrintConfig(o *IO, app *App) error {
	cfg := app.Config

	o.Println("effective_cwd=" + cfg.EffectiveCwd)
	o.Println("data_dir=" + cfg.DataDirAbs)
	o.Println("backend=" + cfg.Backend)
	o.Println("export_dir=" + cfg.ExportDirAbs)

	o.Println("")
	o.Println("# sources")

	if cfg.Sources.Global == "" && cfg.Sources.Project == "" {
		o.Println("(defaults only)")
	} else {
		if cfg.Sources.Global != "" {
			o.Println("global_config=" + cfg.Sources.Global)
		}

		if cfg.Sources.Project != "" {
			o.Println("project_config=" + cfg.Sources.Project)
		}
	}

	return nil
}
