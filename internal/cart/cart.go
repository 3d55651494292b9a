// Package cart implements the kiosk's in-session cart: an ordered sequence of
// line items merged by identity.
//
// A line item's identity is (product ID, customization). Customization is a
// single optional value carrying both milk and size, so a half-specified
// modifier pair cannot exist: callers either customize fully or not at all,
// and "no customization" is its own identity distinct from every milk+size
// combination.
package cart

// Customization is a milk+size pair. Both fields are always set; an
// uncustomized item is represented by a nil *Customization on the line item.
type Customization struct {
	Milk string
	Size string
}

// LineItem is one cart entry. Quantity is always >= 1; an item whose quantity
// would drop to zero is removed from the cart instead.
type LineItem struct {
	ProductID     string
	Quantity      int
	Customization *Customization
}

func (li LineItem) matches(productID string, cust *Customization) bool {
	if li.ProductID != productID {
		return false
	}
	if cust == nil {
		return li.Customization == nil
	}
	return li.Customization != nil && *li.Customization == *cust
}

// Cart holds the active session's line items in insertion order. It is not
// safe for concurrent use; the session controller serializes access.
type Cart struct {
	items []LineItem
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add merges a product into the cart: if an item with the same identity
// exists its quantity is incremented, otherwise a new item with quantity 1
// is appended.
func (c *Cart) Add(productID string, cust *Customization) {
	for i := range c.items {
		if c.items[i].matches(productID, cust) {
			c.items[i].Quantity++
			return
		}
	}
	c.items = append(c.items, LineItem{ProductID: productID, Quantity: 1, Customization: cust})
}

// UpdateQuantity adds delta (which may be negative) to the quantity of the
// item with the given identity, then drops any item whose quantity is <= 0.
// Missing identities are a no-op. Relative order of surviving items is
// preserved.
func (c *Cart) UpdateQuantity(productID string, cust *Customization, delta int) {
	kept := c.items[:0]
	for _, li := range c.items {
		if li.matches(productID, cust) {
			li.Quantity += delta
		}
		if li.Quantity > 0 {
			kept = append(kept, li)
		}
	}
	c.items = kept
}

// Remove deletes the item with the given identity. Missing identities are a
// no-op.
func (c *Cart) Remove(productID string, cust *Customization) {
	kept := c.items[:0]
	for _, li := range c.items {
		if !li.matches(productID, cust) {
			kept = append(kept, li)
		}
	}
	c.items = kept
}

// Clear empties the cart. Called when the shopper leaves the confirmation
// screen for the menu or the kiosk resets to language selection.
func (c *Cart) Clear() {
	c.items = nil
}

// Items returns a copy of the line items in insertion order.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of distinct line items.
func (c *Cart) Len() int {
	return len(c.items)
}
