package store

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/calvinalkan/shelflife/internal/inventory"
)

// maxIDAttempts bounds ID regeneration when a fresh ID collides.
const maxIDAttempts = 8

// Options configures a Store. Zero fields fall back to the system clock and [NewID].
type Options struct {
	Now   func() time.Time
	NewID func() (string, error)
}

// Store owns the in-memory collection and writes the whole collection back
// to its KV slot after every mutation.
type Store struct {
	kv       KV
	items    []inventory.Item
	warnings []string
	now      func() time.Time
	newID    func() (string, error)
}

// Open creates a Store over kv and loads the collection.
func Open(kv KV, opts Options) (*Store, error) {
	s := &Store{
		kv:    kv,
		now:   opts.Now,
		newID: opts.NewID,
	}

	if s.now == nil {
		s.now = time.Now
	}

	if s.newID == nil {
		s.newID = NewID
	}

	err := s.Load()
	if err != nil {
		return nil, err
	}

	return s, nil
}

// Load replaces the in-memory collection with what the KV slot holds.
//
// A missing slot is an empty collection. A payload that is not a JSON array
// is also treated as empty, and records that fail to decode or validate are
// skipped; both are reported through [Store.Warnings] rather than as errors.
// Only a failing backend read is an error.
func (s *Store) Load() error {
	s.items = nil
	s.warnings = nil

	raw, ok, err := s.kv.Get(ItemsKey)
	if err != nil {
		return fmt.Errorf("load items: %w", err)
	}

	if !ok || raw == "" {
		return nil
	}

	var records []json.RawMessage

	err = json.Unmarshal([]byte(raw), &records)
	if err != nil {
		s.warn(fmt.Sprintf("stored items are not readable (%v); starting with an empty list", err))

		return nil
	}

	seen := make(map[string]bool, len(records))

	for i, rec := range records {
		var item inventory.Item

		decodeErr := json.Unmarshal(rec, &item)
		if decodeErr != nil {
			s.warn(fmt.Sprintf("skipping stored item #%d: %v", i+1, decodeErr))

			continue
		}

		validateErr := item.Validate()
		if validateErr != nil {
			s.warn(fmt.Sprintf("skipping stored item #%d (id %q): %v", i+1, item.ID, validateErr))

			continue
		}

		if item.ID == "" {
			s.warn(fmt.Sprintf("skipping stored item #%d (%q): %v", i+1, item.Name, inventory.ErrIDRequired))

			continue
		}

		if seen[item.ID] {
			s.warn(fmt.Sprintf("skipping stored item #%d: %v %q", i+1, inventory.ErrDuplicateItemID, item.ID))

			continue
		}

		seen[item.ID] = true
		s.items = append(s.items, item)
	}

	return nil
}

// Save writes the whole collection to the KV slot.
func (s *Store) Save() error {
	items := s.items
	if items == nil {
		items = []inventory.Item{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}

	err = s.kv.Set(ItemsKey, string(data))
	if err != nil {
		return fmt.Errorf("save items: %w", err)
	}

	return nil
}

// Warnings returns problems found by the last [Store.Load].
func (s *Store) Warnings() []string {
	return append([]string(nil), s.warnings...)
}

func (s *Store) warn(msg string) {
	s.warnings = append(s.warnings, msg)
}

// Today is the current calendar date according to the store's clock.
func (s *Store) Today() inventory.Date {
	return inventory.DateOf(s.now())
}

// Len returns the number of items.
func (s *Store) Len() int {
	return len(s.items)
}

// Items returns a copy of the collection in insertion order.
func (s *Store) Items() []inventory.Item {
	out := make([]inventory.Item, len(s.items))
	for i := range s.items {
		out[i] = s.items[i].Clone()
	}

	return out
}

// Get returns the item with id.
func (s *Store) Get(id string) (inventory.Item, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return inventory.Item{}, false
	}

	return s.items[idx].Clone(), true
}

func (s *Store) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}

	return -1
}

// Add assigns a fresh ID, stamps AddedDate with today, appends and persists.
// Any ID or AddedDate on item is ignored.
func (s *Store) Add(item inventory.Item) (inventory.Item, error) {
	err := item.Validate()
	if err != nil {
		return inventory.Item{}, err
	}

	id, err := s.uniqueID()
	if err != nil {
		return inventory.Item{}, err
	}

	item = item.Clone()
	item.ID = id
	item.AddedDate = s.Today()

	s.items = append(s.items, item)

	err = s.Save()
	if err != nil {
		s.items = s.items[:len(s.items)-1]

		return inventory.Item{}, err
	}

	return item.Clone(), nil
}

func (s *Store) uniqueID() (string, error) {
	for range maxIDAttempts {
		id, err := s.newID()
		if err != nil {
			return "", err
		}

		if id != "" && s.indexOf(id) < 0 {
			return id, nil
		}
	}

	return "", ErrIDGenerationFailed
}

// Update overwrites the stored item with the same ID, keeping its AddedDate.
// It reports false, and changes nothing, when no item has that ID.
func (s *Store) Update(item inventory.Item) (bool, error) {
	idx := s.indexOf(item.ID)
	if idx < 0 {
		return false, nil
	}

	err := item.Validate()
	if err != nil {
		return false, err
	}

	prev := s.items[idx]

	item = item.Clone()
	item.AddedDate = prev.AddedDate
	s.items[idx] = item

	err = s.Save()
	if err != nil {
		s.items[idx] = prev

		return false, err
	}

	return true, nil
}

// Delete removes the item with id and persists. A missing id is not an error.
func (s *Store) Delete(id string) error {
	prev := s.items

	kept := make([]inventory.Item, 0, len(s.items))
	for i := range s.items {
		if s.items[i].ID != id {
			kept = append(kept, s.items[i])
		}
	}

	s.items = kept

	err := s.Save()
	if err != nil {
		s.items = prev

		return err
	}

	return nil
}

// Close releases the underlying backend.
func (s *Store) Close() error {
	return s.kv.Close()
}
