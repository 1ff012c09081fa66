package cli_test

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/calvinalkan/shelflife/internal/cli"
	"github.com/calvinalkan/shelflife/internal/inventory"
	"github.com/calvinalkan/shelflife/internal/store"
)

func readItems(t *testing.T, c *cli.CLI) []inventory.Item {
	t.Helper()

	var items []inventory.Item

	err := json.Unmarshal([]byte(c.ReadSlot(store.ItemsKey)), &items)
	if err != nil {
		t.Fatalf("items slot is not JSON: %v", err)
	}

	return items
}

func Test_Add_Stores_Item_With_Todays_Added_Date(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	id := addItem(t, c, "Greek", "yogurt", "--expires", "2024-06-15", "-q", "3", "-n", `say "cheese"`)

	want := []inventory.Item{{
		ID:         id,
		Name:       "Greek yogurt",
		ExpiryDate: inventory.NewDate(2024, 6, 15),
		AddedDate:  inventory.NewDate(2024, 6, 10),
		Quantity:   inventory.Qty(3),
		Notes:      `say "cheese"`,
	}}

	if diff := cmp.Diff(want, readItems(t, c)); diff != "" {
		t.Errorf("stored items mismatch (-want +got):\n%s", diff)
	}
}

func Test_Add_Without_Quantity_Stores_Null(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	addItem(t, c, "Rice", "-e", "2024-07-01")

	cli.AssertContains(t, c.ReadSlot(store.ItemsKey), `"quantity":null`)
}

func Test_Add_Validation_Errors(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "no name", args: []string{"add", "-e", "2024-06-15"}, wantErr: "name is required"},
		{name: "blank name", args: []string{"add", "  ", "-e", "2024-06-15"}, wantErr: "name is required"},
		{name: "no expiry", args: []string{"add", "Milk"}, wantErr: "expiry date is required"},
		{name: "bad expiry", args: []string{"add", "Milk", "-e", "2024-13-01"}, wantErr: "invalid date"},
		{name: "negative qty", args: []string{"add", "Milk", "-e", "2024-06-15", "--qty=-1"}, wantErr: "quantity cannot be negative"},
		{name: "qty not a number", args: []string{"add", "Milk", "-e", "2024-06-15", "--qty", "two"}, wantErr: "quantity must be a whole number"},
		{name: "empty qty", args: []string{"add", "Milk", "-e", "2024-06-15", "--qty="}, wantErr: "empty value not allowed: --qty"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := cli.NewCLI(t)

			stderr := c.MustFail(tt.args...)
			cli.AssertContains(t, stderr, tt.wantErr)

			cli.AssertContains(t, c.MustRun("ls"), "No items yet.")
		})
	}
}

func Test_Add_Uses_Today_Override(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.Today = "2023-12-31"

	addItem(t, c, "Cheese", "-e", "2024-01-20")

	items := readItems(t, c)
	if got, want := items[0].AddedDate.String(), "2023-12-31"; got != want {
		t.Errorf("addedDate=%q, want=%q", got, want)
	}
}
