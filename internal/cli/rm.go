package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/shelflife/internal/inventory"
)

// RmCmd returns the rm command.
func RmCmd(app *App) *Command {
	return &Command{
		Flags: flag.NewFlagSet("rm", flag.ContinueOnError),
		Usage: "rm <id>",
		Short: "Remove an item",
		Long:  "Remove an item from the shelf. Removing an ID that does not exist is not an error.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) == 0 {
				return inventory.ErrIDRequired
			}

			err := app.Store.Delete(args[0])
			if err != nil {
				return err
			}

			o.Println("Removed", args[0])

			return nil
		},
	}
}
