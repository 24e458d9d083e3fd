package models

import (
	"github.com/shopspring/decimal"
)

// CartLine is one entry of a session cart. Name, price and description are
// captured when the line is first added and never re-read from the Item, so
// later menu edits cannot change what the customer already picked.
type CartLine struct {
	ItemID      uint            `json:"item_id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Description string          `json:"description"`
}

// Cart lives in the session store only, keyed by session id. Lines keep
// insertion order.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// Add increments the quantity of an existing line or appends a new line with
// quantity 1, snapshotting the item's current name, price and description.
func (c *Cart) Add(item Item) {
	for i := range c.Lines {
		if c.Lines[i].ItemID == item.ID {
			c.Lines[i].Quantity++
			return
		}
	}
	c.Lines = append(c.Lines, CartLine{
		ItemID:      item.ID,
		Name:        item.Name,
		Price:       item.Price,
		Quantity:    1,
		Description: item.Description,
	})
}

// Total returns the sum of price times quantity over all lines.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}
