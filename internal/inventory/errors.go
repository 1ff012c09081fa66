// Package inventory holds the expiry tracker's domain: items, urgency tiers,
// the filter/sort query and CSV export. Nothing here touches I/O or the clock;
// callers pass "today" explicitly.
package inventory

import "errors"

// Error variables for inventory operations.
var (
	ErrInvalidDate       = errors.New("invalid date")
	ErrNameRequired      = errors.New("name is required")
	ErrExpiryRequired    = errors.New("expiry date is required")
	ErrNegativeQuantity  = errors.New("quantity cannot be negative")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidSortKey    = errors.New("invalid sort key")
	ErrNothingToExport   = errors.New("no items to export")
	ErrIDRequired        = errors.New("item ID is required")
	ErrItemNotFound      = errors.New("item not found")
	ErrDuplicateItemID   = errors.New("duplicate item ID")
	ErrQuantityNotNumber = errors.New("quantity must be a whole number")
)
