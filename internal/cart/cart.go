package cart

import (
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/model"
	"github.com/shopspring/decimal"
)

// FindLine returns the index of the line with id, or -1.
func FindLine(c *model.Cart, id string) int {
	for i := range c.Items {
		if c.Items[i].ID == id {
			return i
		}
	}
	return -1
}

// QuantityOf returns how many units of line id the cart already holds.
func QuantityOf(c *model.Cart, id string) int {
	if i := FindLine(c, id); i >= 0 {
		return c.Items[i].Quantity
	}
	return 0
}

// Upsert puts line into the cart, replacing an existing line with the same
// ID in place so the cart never holds two lines for one product+variation.
func Upsert(c *model.Cart, line model.CartLineItem) {
	if i := FindLine(c, line.ID); i >= 0 {
		c.Items[i] = line
		return
	}
	c.Items = append(c.Items, line)
}

// Remove drops line id from the cart.
func Remove(c *model.Cart, id string) error {
	i := FindLine(c, id)
	if i < 0 {
		return ErrLineNotFound
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	return nil
}

func Totals(c *model.Cart) model.CartTotals {
	t := model.CartTotals{
		Subtotal:         decimal.Zero,
		OriginalSubtotal: decimal.Zero,
		LineCount:        len(c.Items),
	}
	for i := range c.Items {
		line := &c.Items[i]
		t.Subtotal = t.Subtotal.Add(line.Subtotal())
		t.OriginalSubtotal = t.OriginalSubtotal.Add(line.OriginalSubtotal())
		t.ItemCount += line.Quantity
	}
	t.Savings = t.OriginalSubtotal.Sub(t.Subtotal)
	if t.Savings.IsNegative() {
		t.Savings = decimal.Zero
	}
	return t
}
