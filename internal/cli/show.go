package cli

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/shelflife/internal/inventory"
)

// ShowCmd returns the show command.
func ShowCmd(app *App) *Command {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	asJSON := fs.Bool("json", false, "Print the item as JSON")

	return &Command{
		Flags: fs,
		Usage: "show <id>",
		Short: "Show item details",
		Long:  "Display every field of an item along with its tier.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execShow(o, app, args, *asJSON)
		},
	}
}

func execShow(o *IO, app *App, args []string, asJSON bool) error {
	if len(args) == 0 {
		return inventory.ErrIDRequired
	}

	item, found := app.Store.Get(args[0])
	if !found {
		return fmt.Errorf("%w: %s", inventory.ErrItemNotFound, args[0])
	}

	today := app.today()

	if asJSON {
		data, err := json.MarshalIndent(newItemView(item, today), "", "  ")
		if err != nil {
			return err
		}

		o.Println(string(data))

		return nil
	}

	for _, line := range newPresenter(o.Out()).detail(&item, today) {
		o.Println(line)
	}

	return nil
}
