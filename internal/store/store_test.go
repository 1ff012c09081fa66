package store_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/shelflife/internal/inventory"
	"github.com/calvinalkan/shelflife/internal/store"
)

var june10 = time.Date(2024, time.June, 10, 15, 30, 0, 0, time.UTC)

func seqIDs() func() (string, error) {
	n := 0

	return func() (string, error) {
		n++

		return fmt.Sprintf("ID%03d", n), nil
	}
}

func openMem(t *testing.T, kv store.KV) *store.Store {
	t.Helper()

	s, err := store.Open(kv, store.Options{
		Now:   func() time.Time { return june10 },
		NewID: seqIDs(),
	})
	require.NoError(t, err)

	return s
}

func milk() inventory.Item {
	return inventory.Item{
		Name:       "Milk",
		ExpiryDate: inventory.NewDate(2024, time.June, 15),
		Quantity:   inventory.Qty(2),
		Notes:      "fridge",
	}
}

func Test_Open_Empty_Slot_Returns_Empty_Collection(t *testing.T) {
	t.Parallel()

	s := openMem(t, store.NewMemKV())

	require.Equal(t, 0, s.Len())
	require.Empty(t, s.Warnings())
}

func Test_Add_Assigns_ID_And_Added_Date_When_Invoked(t *testing.T) {
	t.Parallel()

	kv := store.NewMemKV()
	s := openMem(t, kv)

	in := milk()
	in.ID = "caller-chosen"
	in.AddedDate = inventory.NewDate(2000, time.January, 1)

	got, err := s.Add(in)
	require.NoError(t, err)
	require.Equal(t, "ID001", got.ID)
	require.Equal(t, "2024-06-10", got.AddedDate.String())

	raw, ok, err := kv.Get(store.ItemsKey)
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t,
		`[{"id":"ID001","name":"Milk","expiryDate":"2024-06-15","addedDate":"2024-06-10","quantity":2,"notes":"fridge"}]`,
		raw)
}

func Test_Add_Rejects_Invalid_Item(t *testing.T) {
	t.Parallel()

	kv := store.NewMemKV()
	s := openMem(t, kv)

	_, err := s.Add(inventory.Item{Name: "", ExpiryDate: inventory.NewDate(2024, 6, 1)})
	require.ErrorIs(t, err, inventory.ErrNameRequired)

	_, ok, _ := kv.Get(store.ItemsKey)
	require.False(t, ok, "nothing should be persisted")
}

func Test_Add_Retries_On_ID_Collision(t *testing.T) {
	t.Parallel()

	calls := 0
	s, err := store.Open(store.NewMemKV(), store.Options{
		Now: func() time.Time { return june10 },
		NewID: func() (string, error) {
			calls++
			if calls <= 2 {
				return "SAME", nil
			}

			return "OTHER", nil
		},
	})
	require.NoError(t, err)

	first, err := s.Add(milk())
	require.NoError(t, err)
	require.Equal(t, "SAME", first.ID)

	second, err := s.Add(milk())
	require.NoError(t, err)
	require.Equal(t, "OTHER", second.ID)
}

func Test_Add_Fails_After_Repeated_Collisions(t *testing.T) {
	t.Parallel()

	s, err := store.Open(store.NewMemKV(), store.Options{
		NewID: func() (string, error) { return "SAME", nil },
	})
	require.NoError(t, err)

	_, err = s.Add(milk())
	require.NoError(t, err)

	_, err = s.Add(milk())
	require.ErrorIs(t, err, store.ErrIDGenerationFailed)
	require.Equal(t, 1, s.Len())
}

func Test_Update_Preserves_Added_Date_When_Caller_Supplies_Another(t *testing.T) {
	t.Parallel()

	kv := store.NewMemKV()
	s := openMem(t, kv)

	added, err := s.Add(milk())
	require.NoError(t, err)

	edited := added
	edited.Name = "Oat milk"
	edited.Quantity = nil
	edited.AddedDate = inventory.NewDate(1999, time.December, 31)

	ok, err := s.Update(edited)
	require.NoError(t, err)
	require.True(t, ok)

	got, found := s.Get(added.ID)
	require.True(t, found)
	require.Equal(t, "Oat milk", got.Name)
	require.Nil(t, got.Quantity)
	require.Equal(t, "2024-06-10", got.AddedDate.String())

	reopened := openMem(t, kv)
	again, found := reopened.Get(added.ID)
	require.True(t, found)
	require.Equal(t, "Oat milk", again.Name)
	require.Equal(t, "2024-06-10", again.AddedDate.String())
}

func Test_Update_Unknown_ID_Is_Silent_Noop(t *testing.T) {
	t.Parallel()

	s := openMem(t, store.NewMemKV())

	_, err := s.Add(milk())
	require.NoError(t, err)

	before := s.Items()

	ghost := milk()
	ghost.ID = "NOPE"

	ok, err := s.Update(ghost)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, before, s.Items())
}

func Test_Delete_Removes_Item_And_Persists(t *testing.T) {
	t.Parallel()

	kv := store.NewMemKV()
	s := openMem(t, kv)

	a, err := s.Add(milk())
	require.NoError(t, err)

	b, err := s.Add(milk())
	require.NoError(t, err)

	require.NoError(t, s.Delete(a.ID))

	reopened := openMem(t, kv)
	require.Equal(t, 1, reopened.Len())

	_, found := reopened.Get(b.ID)
	require.True(t, found)
}

func Test_Delete_Unknown_ID_Succeeds_And_Leaves_Collection(t *testing.T) {
	t.Parallel()

	s := openMem(t, store.NewMemKV())

	_, err := s.Add(milk())
	require.NoError(t, err)

	before := s.Items()

	require.NoError(t, s.Delete("NOPE"))
	require.Equal(t, before, s.Items())
}

func Test_Items_Keeps_Insertion_Order(t *testing.T) {
	t.Parallel()

	s := openMem(t, store.NewMemKV())

	for _, name := range []string{"c", "a", "b"} {
		item := milk()
		item.Name = name

		_, err := s.Add(item)
		require.NoError(t, err)
	}

	var names []string
	for _, item := range s.Items() {
		names = append(names, item.Name)
	}

	require.Equal(t, []string{"c", "a", "b"}, names)
}

func Test_Items_Returns_Independent_Copies(t *testing.T) {
	t.Parallel()

	s := openMem(t, store.NewMemKV())

	added, err := s.Add(milk())
	require.NoError(t, err)

	items := s.Items()
	*items[0].Quantity = 42
	items[0].Name = "changed"

	got, _ := s.Get(added.ID)
	require.Equal(t, "Milk", got.Name)
	require.Equal(t, 2, *got.Quantity)
}

func Test_Load_Malformed_Payload_Warns_And_Starts_Empty(t *testing.T) {
	t.Parallel()

	for _, payload := range []string{"{not json", `{"id":"1"}`, `"text"`} {
		kv := store.NewMemKV()
		require.NoError(t, kv.Set(store.ItemsKey, payload))

		s := openMem(t, kv)
		require.Equal(t, 0, s.Len(), "payload %q", payload)
		require.Len(t, s.Warnings(), 1, "payload %q", payload)
	}
}

func Test_Load_Skips_Invalid_Records(t *testing.T) {
	t.Parallel()

	kv := store.NewMemKV()
	require.NoError(t, kv.Set(store.ItemsKey, `[
		{"id":"1","name":"Milk","expiryDate":"2024-06-15","addedDate":"2024-06-01","quantity":null,"notes":""},
		{"id":"2","name":"","expiryDate":"2024-06-15","addedDate":"2024-06-01"},
		{"id":"3","name":"Bad date","expiryDate":"15/06/2024","addedDate":"2024-06-01"},
		{"id":"1","name":"Dup","expiryDate":"2024-06-15","addedDate":"2024-06-01"},
		{"name":"No id","expiryDate":"2024-06-15","addedDate":"2024-06-01"}
	]`))

	s := openMem(t, kv)
	require.Equal(t, 1, s.Len())
	require.Len(t, s.Warnings(), 4)
}

func Test_Load_Null_Payload_Is_Empty_Without_Warning(t *testing.T) {
	t.Parallel()

	kv := store.NewMemKV()
	require.NoError(t, kv.Set(store.ItemsKey, "null"))

	s := openMem(t, kv)
	require.Equal(t, 0, s.Len())
	require.Empty(t, s.Warnings())
}

type failingKV struct {
	*store.MemKV

	failSet bool
}

var errDiskFull = errors.New("disk full")

func (f *failingKV) Set(key, value string) error {
	if f.failSet {
		return errDiskFull
	}

	return f.MemKV.Set(key, value)
}

func Test_Mutations_Roll_Back_When_Save_Fails(t *testing.T) {
	t.Parallel()

	kv := &failingKV{MemKV: store.NewMemKV()}
	s := openMem(t, kv)

	added, err := s.Add(milk())
	require.NoError(t, err)

	kv.failSet = true

	_, err = s.Add(milk())
	require.ErrorIs(t, err, errDiskFull)
	require.Equal(t, 1, s.Len())

	edited := added
	edited.Name = "Cream"
	_, err = s.Update(edited)
	require.ErrorIs(t, err, errDiskFull)

	got, _ := s.Get(added.ID)
	require.Equal(t, "Milk", got.Name)

	err = s.Delete(added.ID)
	require.ErrorIs(t, err, errDiskFull)
	require.Equal(t, 1, s.Len())
}
