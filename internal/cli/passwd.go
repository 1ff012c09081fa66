package cli

import (
	"context"
	"errors"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/shelflife/internal/store"
)

var errSecretArg = errors.New("new password is required")

// PasswdCmd returns the passwd command.
func PasswdCmd(app *App) *Command {
	return &Command{
		Flags: flag.NewFlagSet("passwd", flag.ContinueOnError),
		Usage: "passwd <new-password>",
		Short: "Change the password",
		Long:  "Replace the shared password. The current one must be entered to log in first.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) == 0 {
				return errSecretArg
			}

			err := store.SetSecret(app.KV, args[0])
			if err != nil {
				return err
			}

			o.Println("Password changed")

			return nil
		},
	}
}
