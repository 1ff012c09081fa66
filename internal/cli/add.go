package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/shelflife/internal/inventory"
)

var errEmptyValue = errors.New("empty value not allowed")

// AddCmd returns the add command.
func AddCmd(app *App) *Command {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.StringP("expires", "e", "", "Expiry date (YYYY-MM-DD), required")
	fs.StringP("qty", "q", "", "Quantity (whole number)")
	fs.StringP("notes", "n", "", "Free-form notes")

	return &Command{
		Flags: fs,
		Usage: "add <name> --expires <date>",
		Short: "Add an item, prints ID",
		Long: `Add an item to the shelf. Prints the new item's ID on success.

The name may span several arguments: "shelf add Greek yogurt -e 2024-06-15".
The added date is today.`,
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execAdd(o, app, fs, args)
		},
	}
}

func execAdd(o *IO, app *App, fs *flag.FlagSet, args []string) error {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return inventory.ErrNameRequired
	}

	expires, _ := fs.GetString("expires")
	if !fs.Changed("expires") || strings.TrimSpace(expires) == "" {
		return inventory.ErrExpiryRequired
	}

	expiry, err := inventory.ParseDate(expires)
	if err != nil {
		return err
	}

	qtyRaw, _ := fs.GetString("qty")
	if fs.Changed("qty") && strings.TrimSpace(qtyRaw) == "" {
		return fmt.Errorf("%w: --qty", errEmptyValue)
	}

	qty, err := inventory.ParseQuantity(qtyRaw)
	if err != nil {
		return err
	}

	notes, _ := fs.GetString("notes")

	item, err := app.Store.Add(inventory.Item{
		Name:       name,
		ExpiryDate: expiry,
		Quantity:   qty,
		Notes:      notes,
	})
	if err != nil {
		return err
	}

	o.Println(item.ID)

	return nil
}
