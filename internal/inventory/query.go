package inventory

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// StatusFilter selects items by tier. The zero value and [StatusAll] match every item.
type StatusFilter string

// StatusAll disables tier filtering.
const StatusAll StatusFilter = "all"

// ParseStatusFilter accepts "all" or a tier name.
func ParseStatusFilter(s string) (StatusFilter, error) {
	if s == "" || s == string(StatusAll) {
		return StatusAll, nil
	}

	status, err := ParseStatus(s)
	if err != nil {
		return "", err
	}

	return StatusFilter(status), nil
}

func (f StatusFilter) matches(s Status) bool {
	return f == "" || f == StatusAll || Status(f) == s
}

// SortKey names the field a query orders by.
type SortKey string

// Sort keys. The zero value sorts by expiry date.
const (
	SortByExpiryDate SortKey = "expiryDate"
	SortByName       SortKey = "name"
	SortByAddedDate  SortKey = "addedDate"
)

// SortKeys lists the canonical sort key spellings.
var SortKeys = []SortKey{SortByExpiryDate, SortByName, SortByAddedDate}

// ParseSortKey accepts the canonical keys plus a few kebab-case aliases.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(s) {
	case "", "expirydate", "expiry", "expiry-date", "expiry_date":
		return SortByExpiryDate, nil
	case "name":
		return SortByName, nil
	case "addeddate", "added", "added-date", "added_date":
		return SortByAddedDate, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSortKey, s)
	}
}

// Query is a filtered, sorted view over a collection.
type Query struct {
	Search string
	Status StatusFilter
	Sort   SortKey
}

// Run applies q to items as of today and returns a new slice.
//
// An item passes when Search is a case-insensitive substring of its name or
// notes and its tier matches Status. The result is stable-sorted ascending by
// Sort; ties keep input order. items itself is never reordered.
func Run(items []Item, q Query, today Date) []Item {
	needle := strings.ToLower(q.Search)
	out := make([]Item, 0, len(items))

	for i := range items {
		item := &items[i]

		if !matchesSearch(item, needle) {
			continue
		}

		if !q.Status.matches(Classify(item, today)) {
			continue
		}

		out = append(out, item.Clone())
	}

	SortItems(out, q.Sort)

	return out
}

func matchesSearch(item *Item, needle string) bool {
	if needle == "" {
		return true
	}

	return strings.Contains(strings.ToLower(item.Name), needle) ||
		strings.Contains(strings.ToLower(item.Notes), needle)
}

// SortItems stable-sorts items in place by key.
func SortItems(items []Item, key SortKey) {
	switch key {
	case SortByName:
		// Collators keep internal buffers, so each sort gets its own.
		coll := collate.New(language.Und)

		slices.SortStableFunc(items, func(a, b Item) int {
			return coll.CompareString(a.Name, b.Name)
		})
	case SortByAddedDate:
		slices.SortStableFunc(items, func(a, b Item) int {
			return a.AddedDate.Compare(b.AddedDate)
		})
	default:
		slices.SortStableFunc(items, func(a, b Item) int {
			return a.ExpiryDate.Compare(b.ExpiryDate)
		})
	}
}
