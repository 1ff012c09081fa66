package cli

import (
	"context"

	"github.com/goccy/go-json"
	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/shelflife/internal/inventory"
)

// itemView is an item as ls --json and show --json print it.
type itemView struct {
	inventory.Item

	Status          inventory.Status `json:"status"`
	DaysUntilExpiry int              `json:"daysUntilExpiry"`
}

func newItemView(item inventory.Item, today inventory.Date) itemView {
	return itemView{
		Item:            item,
		Status:          inventory.Classify(&item, today),
		DaysUntilExpiry: inventory.DaysUntilExpiry(&item, today),
	}
}

// LsCmd returns the ls command.
func LsCmd(app *App) *Command {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	fs.StringP("search", "s", "", "Case-insensitive match on name or notes")
	fs.String("status", string(inventory.StatusAll), "Filter: all|expired|expiring-soon|safe")
	fs.String("sort", string(inventory.SortByExpiryDate), "Sort by: expiryDate|name|addedDate")
	fs.Bool("json", false, "Print items as a JSON array")

	return &Command{
		Flags: fs,
		Usage: "ls [flags]",
		Short: "List items",
		Long: `List items, soonest expiry first by default.

Each row shows the ID, tier, name, how far the expiry is from today,
the quantity and the added date. Notes follow on an indented line. The
last line counts every item by tier, regardless of filters.`,
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execLs(o, app, fs, args)
		},
	}
}

func execLs(o *IO, app *App, fs *flag.FlagSet, _ []string) error {
	search, _ := fs.GetString("search")
	statusRaw, _ := fs.GetString("status")
	sortRaw, _ := fs.GetString("sort")
	asJSON, _ := fs.GetBool("json")

	status, err := inventory.ParseStatusFilter(statusRaw)
	if err != nil {
		return err
	}

	sortKey, err := inventory.ParseSortKey(sortRaw)
	if err != nil {
		return err
	}

	today := app.today()
	all := app.Store.Items()
	matched := inventory.Run(all, inventory.Query{Search: search, Status: status, Sort: sortKey}, today)

	if asJSON {
		views := make([]itemView, 0, len(matched))
		for _, item := range matched {
			views = append(views, newItemView(item, today))
		}

		data, err := json.MarshalIndent(views, "", "  ")
		if err != nil {
			return err
		}

		o.Println(string(data))

		return nil
	}

	if len(all) == 0 {
		o.Println(msgNoItems)

		return nil
	}

	if len(matched) == 0 {
		o.Println(msgNoMatch)
	}

	p := newPresenter(o.Out())

	for i := range matched {
		o.Println(p.row(&matched[i], today))
	}

	o.Println()
	o.Println(countsLine(inventory.CountByStatus(all, today)))

	return nil
}
