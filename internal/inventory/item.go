package inventory

import (
	"fmt"
	"strconv"
	"strings"
)

// Item is a tracked perishable.
//
// ID and AddedDate are owned by the store: ID is assigned on add and never
// changes, AddedDate is stamped on add and survives every update.
type Item struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ExpiryDate Date   `json:"expiryDate"`
	AddedDate  Date   `json:"addedDate"`
	Quantity   *int   `json:"quantity"`
	Notes      string `json:"notes"`
}

// Validate checks the fields a user must supply.
func (it *Item) Validate() error {
	if strings.TrimSpace(it.Name) == "" {
		return ErrNameRequired
	}

	if it.ExpiryDate.IsZero() {
		return ErrExpiryRequired
	}

	if it.Quantity != nil && *it.Quantity < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeQuantity, *it.Quantity)
	}

	return nil
}

// QuantityString renders the quantity, or "" when absent.
func (it *Item) QuantityString() string {
	if it.Quantity == nil {
		return ""
	}

	return strconv.Itoa(*it.Quantity)
}

// Clone returns a copy that shares no pointers with it.
func (it *Item) Clone() Item {
	c := *it
	if c.Quantity != nil {
		q := *c.Quantity
		c.Quantity = &q
	}

	return c
}

// ParseQuantity parses a non-negative whole number. Empty input means absent.
func ParseQuantity(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrQuantityNotNumber, s)
	}

	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeQuantity, n)
	}

	return &n, nil
}

// Qty is a convenience for building items with a quantity.
func Qty(n int) *int {
	return &n
}
