package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/shelflife/internal/inventory"
)

// StatsCmd returns the stats command.
func StatsCmd(app *App) *Command {
	return &Command{
		Flags: flag.NewFlagSet("stats", flag.ContinueOnError),
		Usage: "stats",
		Short: "Count items by tier",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			counts := inventory.CountByStatus(app.Store.Items(), app.today())

			o.Printf("Expired: %d\n", counts.Expired)
			o.Printf("Expiring Soon: %d\n", counts.ExpiringSoon)
			o.Printf("Safe: %d\n", counts.Safe)
			o.Printf("Total: %d\n", counts.Total())

			return nil
		},
	}
}
