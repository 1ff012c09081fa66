package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/shelflife/internal/inventory"
)

var (
	errNothingToUpdate = errors.New("nothing to update (use --name, --expires, --qty, --clear-qty or --notes)")
	errQtyConflict     = errors.New("--qty and --clear-qty are mutually exclusive")
)

// EditCmd returns the edit command.
func EditCmd(app *App) *Command {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	fs.String("name", "", "New name")
	fs.StringP("expires", "e", "", "New expiry date (YYYY-MM-DD)")
	fs.StringP("qty", "q", "", "New quantity")
	fs.Bool("clear-qty", false, "Remove the quantity")
	fs.StringP("notes", "n", "", "New notes (empty string clears)")

	return &Command{
		Flags: fs,
		Usage: "edit <id> [flags]",
		Short: "Change an item",
		Long: `Change fields of an item. Fields without a flag keep their stored value,
and the added date never changes.

Editing an ID that does not exist changes nothing and prints a warning.`,
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execEdit(o, app, fs, args)
		},
	}
}

func execEdit(o *IO, app *App, fs *flag.FlagSet, args []string) error {
	if len(args) == 0 {
		return inventory.ErrIDRequired
	}

	id := args[0]

	if !anyChanged(fs, "name", "expires", "qty", "clear-qty", "notes") {
		return errNothingToUpdate
	}

	item, found := app.Store.Get(id)
	if !found {
		item = inventory.Item{ID: id}
	}

	err := applyEdits(&item, fs)
	if err != nil {
		return err
	}

	updated, err := app.Store.Update(item)
	if err != nil {
		return err
	}

	if !updated {
		o.Warn(fmt.Sprintf("%v: %s (nothing was changed)", inventory.ErrItemNotFound, id))

		return nil
	}

	o.Println("Updated", id)

	return nil
}

func applyEdits(item *inventory.Item, fs *flag.FlagSet) error {
	if fs.Changed("name") {
		name, _ := fs.GetString("name")
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: --name", errEmptyValue)
		}

		item.Name = strings.TrimSpace(name)
	}

	if fs.Changed("expires") {
		raw, _ := fs.GetString("expires")

		expiry, err := inventory.ParseDate(raw)
		if err != nil {
			return err
		}

		item.ExpiryDate = expiry
	}

	clearQty, _ := fs.GetBool("clear-qty")

	if fs.Changed("qty") {
		if clearQty {
			return errQtyConflict
		}

		raw, _ := fs.GetString("qty")
		if strings.TrimSpace(raw) == "" {
			return fmt.Errorf("%w: --qty (use --clear-qty)", errEmptyValue)
		}

		qty, err := inventory.ParseQuantity(raw)
		if err != nil {
			return err
		}

		item.Quantity = qty
	}

	if clearQty {
		item.Quantity = nil
	}

	if fs.Changed("notes") {
		item.Notes, _ = fs.GetString("notes")
	}

	return nil
}

func anyChanged(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if fs.Changed(name) {
			return true
		}
	}

	return false
}
