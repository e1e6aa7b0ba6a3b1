package cart

import (
	"fmt"
	"strings"
)

// fallbackBrandGroup pools lines without a brand key for discount
// eligibility, mirroring the catalog rows that leave subcategory blank.
const fallbackBrandGroup = "other"

// LineView is a priced line: the stored line plus the unit price actually
// charged after discount-eligibility evaluation.
type LineView struct {
	Line
	EffectiveUnitPrice int
	LineTotal          int
	Discounted         bool
}

type Totals struct {
	Lines         []LineView
	Subtotal      int
	TotalQuantity int
}

// Totals computes the per-line effective prices, subtotal and total quantity.
//
// A line is charged MultiUnitPrice when it has one (> 0) and the combined
// quantity of its brand group is at least 2. Eligibility is decided on the
// whole group: two different items of the same brand at quantity 1 each both
// qualify.
func (c *Cart) Totals() Totals {
	groupQty := make(map[string]int, len(c.lines))
	for _, line := range c.lines {
		groupQty[brandGroup(line)] += line.Quantity
	}

	t := Totals{Lines: make([]LineView, 0, len(c.lines))}

	for _, line := range c.lines {
		view := LineView{Line: line, EffectiveUnitPrice: line.UnitPrice}

		if line.MultiUnitPrice > 0 && groupQty[brandGroup(line)] >= 2 {
			view.EffectiveUnitPrice = line.MultiUnitPrice
			view.Discounted = true
		}

		view.LineTotal = view.EffectiveUnitPrice * line.Quantity

		t.Lines = append(t.Lines, view)
		t.Subtotal += view.LineTotal
		t.TotalQuantity += line.Quantity
	}

	return t
}

// SummaryLabel renders the pre-filled order-description string pasted into
// the convenience-store shipping form: each line as "<name> (xN)" (quantity
// omitted at 1), joined by " / ", prefixed with a "(共N件) " total-count
// marker once the cart holds more than three units.
func (c *Cart) SummaryLabel() string {
	parts := make([]string, 0, len(c.lines))
	totalQty := 0

	for _, line := range c.lines {
		totalQty += line.Quantity

		if line.Quantity > 1 {
			parts = append(parts, fmt.Sprintf("%s (x%d)", line.Name, line.Quantity))
		} else {
			parts = append(parts, line.Name)
		}
	}

	label := strings.Join(parts, " / ")

	if totalQty > 3 {
		label = fmt.Sprintf("(共%d件) %s", totalQty, label)
	}

	return label
}

func brandGroup(line Line) string {
	if line.BrandKey == "" {
		return fallbackBrandGroup
	}

	return line.BrandKey
}
