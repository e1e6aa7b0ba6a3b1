// Package cart owns the in-memory shopping cart: line items, per-item
// purchase limits, brand-group discount pricing, shipping-fee tiers and the
// order summary label copied into the 7-11 drop-shipping form. It holds no
// storage or transport concerns; callers persist snapshots between mutations.
package cart

// DefaultMaxPerCustomer is the purchase ceiling applied when a catalog row
// carries no max_limit value.
const DefaultMaxPerCustomer = 99

// Line is one entry in the cart. Quantity stays within
// [1, MaxPerCustomer] for as long as the line exists; a line that would drop
// to zero is removed instead.
type Line struct {
	ItemID         string
	Name           string
	UnitPrice      int
	MultiUnitPrice int
	Quantity       int
	BrandKey       string
	MaxPerCustomer int
	ImageRef       string
}

// Status reports the outcome of a cart mutation. Business refusals are
// statuses, not errors; the engine never fails for expected conditions.
type Status int

const (
	// StatusOK means the mutation was applied.
	StatusOK Status = iota
	// StatusLimitReached means the mutation would exceed the line's
	// purchase ceiling and was refused; the cart is unchanged.
	StatusLimitReached
	// StatusRemoved means the mutation deleted the line (quantity reached
	// zero or an explicit removal).
	StatusRemoved
	// StatusNotFound means the referenced line index does not exist; the
	// cart is unchanged.
	StatusNotFound
)

// Cart is an ordered collection of lines. Order affects display only, never
// pricing.
type Cart struct {
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

func (c *Cart) Len() int {
	return len(c.lines)
}

// Lines returns a copy of the current line list.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)

	return out
}

// AddItem puts one unit of the item into the cart. An existing line with the
// same item ID is incremented by one; a new line starts at quantity 1. The
// increment is refused with StatusLimitReached when it would exceed the
// line's ceiling.
func (c *Cart) AddItem(item Line) Status {
	item = normalize(item)

	for i := range c.lines {
		if c.lines[i].ItemID == item.ItemID {
			if c.lines[i].Quantity+1 > c.lines[i].MaxPerCustomer {
				return StatusLimitReached
			}

			c.lines[i].Quantity++

			return StatusOK
		}
	}

	item.Quantity = 1
	c.lines = append(c.lines, item)

	return StatusOK
}

// SetQuantity applies a signed delta to the line at index. A result above the
// line's ceiling is refused and leaves the quantity unchanged; a result of
// zero or below removes the line.
func (c *Cart) SetQuantity(index, delta int) Status {
	if index < 0 || index >= len(c.lines) {
		return StatusNotFound
	}

	newQty := c.lines[index].Quantity + delta

	if newQty > c.lines[index].MaxPerCustomer {
		return StatusLimitReached
	}

	if newQty <= 0 {
		c.lines = append(c.lines[:index], c.lines[index+1:]...)

		return StatusRemoved
	}

	c.lines[index].Quantity = newQty

	return StatusOK
}

// RemoveItem deletes the line at index unconditionally.
func (c *Cart) RemoveItem(index int) Status {
	if index < 0 || index >= len(c.lines) {
		return StatusNotFound
	}

	c.lines = append(c.lines[:index], c.lines[index+1:]...)

	return StatusRemoved
}

// Clear empties the cart, as on successful checkout or an explicit user
// "clear" action.
func (c *Cart) Clear() {
	c.lines = nil
}

// normalize fills named defaults so the engine only ever sees validated
// values: the per-item ceiling falls back to DefaultMaxPerCustomer and
// negative prices collapse to zero.
func normalize(item Line) Line {
	if item.MaxPerCustomer <= 0 {
		item.MaxPerCustomer = DefaultMaxPerCustomer
	}

	if item.UnitPrice < 0 {
		item.UnitPrice = 0
	}

	if item.MultiUnitPrice < 0 {
		item.MultiUnitPrice = 0
	}

	return item
}
