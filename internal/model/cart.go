package model

import "github.com/shopspring/decimal"

// CartProduct is what the cart copies from the catalog at add time.
type CartProduct struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image"`
}

type CartLine struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
}

func (l CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart keeps lines in insertion order, at most one per product.
type Cart struct {
	Lines []CartLine `json:"items"`
}

// Add bumps the quantity of an existing line or appends a new line with
// quantity 1, copying name, price and image from p.
func (c *Cart) Add(p CartProduct) {
	if i := c.index(p.ID); i >= 0 {
		c.Lines[i].Quantity++
		return
	}
	c.Lines = append(c.Lines, CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Image:     p.Image,
		Quantity:  1,
	})
}

// UpdateQuantity removes the line when qty <= 0.
func (c *Cart) UpdateQuantity(productID string, qty int) {
	if qty <= 0 {
		c.Remove(productID)
		return
	}
	if i := c.index(productID); i >= 0 {
		c.Lines[i].Quantity = qty
	}
}

func (c *Cart) Remove(productID string) {
	if i := c.index(productID); i >= 0 {
		c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	}
}

func (c *Cart) Clear() { c.Lines = nil }

func (c Cart) Empty() bool { return len(c.Lines) == 0 }

func (c Cart) ItemCount() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

func (c Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.Lines {
		sum = sum.Add(l.LineTotal())
	}
	return sum
}

// Snapshot returns a copy of the lines that shares no memory with c.
func (c Cart) Snapshot() []CartLine {
	out := make([]CartLine, len(c.Lines))
	copy(out, c.Lines)
	return out
}

func (c Cart) index(productID string) int {
	for i, l := range c.Lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

// CartView is the JSON shape returned to clients.
type CartView struct {
	Items     []CartLine      `json:"items"`
	ItemCount int             `json:"itemCount"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

func (c Cart) View() CartView {
	items := c.Lines
	if items == nil {
		items = []CartLine{}
	}
	return CartView{Items: items, ItemCount: c.ItemCount(), Subtotal: c.Subtotal()}
}
