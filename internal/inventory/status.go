package inventory

import "fmt"

// Status is an item's urgency tier relative to a reference date.
type Status string

// Tiers.
const (
	StatusExpired      Status = "expired"
	StatusExpiringSoon Status = "expiring-soon"
	StatusSafe         Status = "safe"
)

// ExpiringSoonDays is the last day offset (inclusive) that still counts as expiring soon.
const ExpiringSoonDays = 7

// Statuses lists the tiers from most to least urgent.
var Statuses = []Status{StatusExpired, StatusExpiringSoon, StatusSafe}

// ParseStatus converts a tier name into a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusExpired, StatusExpiringSoon, StatusSafe:
		return Status(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// Label is the human-readable tier name used in listings and CSV.
func (s Status) Label() string {
	switch s {
	case StatusExpired:
		return "Expired"
	case StatusExpiringSoon:
		return "Expiring Soon"
	default:
		return "Safe"
	}
}

// DaysUntilExpiry returns the calendar days from today to the item's expiry.
// Negative values are days overdue.
func DaysUntilExpiry(item *Item, today Date) int {
	return today.DaysUntil(item.ExpiryDate)
}

// Classify returns the tier of item as of today.
func Classify(item *Item, today Date) Status {
	return statusForDays(DaysUntilExpiry(item, today))
}

func statusForDays(days int) Status {
	switch {
	case days < 0:
		return StatusExpired
	case days <= ExpiringSoonDays:
		return StatusExpiringSoon
	default:
		return StatusSafe
	}
}

// StatusCounts tallies a collection by tier.
type StatusCounts struct {
	Expired      int `json:"expired"`
	ExpiringSoon int `json:"expiringSoon"`
	Safe         int `json:"safe"`
}

// Total is the number of items counted.
func (c StatusCounts) Total() int {
	return c.Expired + c.ExpiringSoon + c.Safe
}

// CountByStatus tallies items by tier as of today.
func CountByStatus(items []Item, today Date) StatusCounts {
	var counts StatusCounts

	for i := range items {
		switch Classify(&items[i], today) {
		case StatusExpired:
			counts.Expired++
		case StatusExpiringSoon:
			counts.ExpiringSoon++
		default:
			counts.Safe++
		}
	}

	return counts
}
