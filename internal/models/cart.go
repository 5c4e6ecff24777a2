package models

// CartItem is one line of a session cart. Name, Price and Image are
// snapshots of the product at the time the line was created.
type CartItem struct {
	ProductID   int
	ProductName string
	Price       float64
	Image       string
	Quantity    int
}

// Cart lives in the session and is never shared between sessions, so its
// methods need no locking. The zero value is an empty, usable cart.
type Cart struct {
	Items []CartItem
}

// Add merges quantity into an existing line for p, or appends a new
// snapshot line. The cart is left unchanged on any error.
func (c *Cart) Add(p *Product, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	if p.Quantity <= 0 {
		return ErrOutOfStock
	}

	existing := c.Quantity(p.ID)
	if existing+quantity > p.Quantity {
		// Stock may have shrunk below what the cart already holds.
		remaining := p.Quantity - existing
		if remaining < 0 {
			remaining = 0
		}
		return &StockExceededError{Remaining: remaining}
	}

	for i := range c.Items {
		if c.Items[i].ProductID == p.ID {
			c.Items[i].Quantity += quantity
			return nil
		}
	}

	c.Items = append(c.Items, CartItem{
		ProductID:   p.ID,
		ProductName: p.Name,
		Price:       p.Price,
		Image:       p.Image,
		Quantity:    quantity,
	})
	return nil
}

// Update sets the line for p to exactly quantity, holding the same stock
// invariant as Add: the new quantity may not exceed p's current stock. A
// quantity of zero removes the line.
func (c *Cart) Update(p *Product, quantity int) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}
	if quantity == 0 {
		c.Remove(p.ID)
		return nil
	}
	if quantity > p.Quantity {
		return &StockExceededError{Remaining: p.Quantity}
	}
	for i := range c.Items {
		if c.Items[i].ProductID == p.ID {
			c.Items[i].Quantity = quantity
			return nil
		}
	}
	return ErrLineNotFound
}

// Remove drops the line for productID. Removing an absent line is not an
// error.
func (c *Cart) Remove(productID int) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

func (c *Cart) Clear() {
	c.Items = nil
}

// Quantity reports how many units of productID the cart holds. The read
// methods take value receivers so templates can call them on a Cart
// value.
func (c Cart) Quantity(productID int) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return c.Items[i].Quantity
		}
	}
	return 0
}

func (c Cart) Len() int {
	return len(c.Items)
}

// Subtotal is price × quantity for one line, clamped so a bad stored
// value renders as zero rather than a negative total.
func (i CartItem) Subtotal() float64 {
	price := i.Price
	if price < 0 {
		price = 0
	}
	qty := i.Quantity
	if qty < 0 {
		qty = 0
	}
	return price * float64(qty)
}

func (c Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	return total
}
