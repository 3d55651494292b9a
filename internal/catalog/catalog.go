// Package catalog holds the product and settings snapshot the kiosk operates
// against. The snapshot is refreshable from the backend store but the rest of
// the application only ever sees this in-memory view, so a backend outage
// degrades to stale data instead of failures.
package catalog

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/matchabar/api/internal/enum"
	"github.com/matchabar/api/internal/i18n"
	"github.com/shopspring/decimal"
)

// Errors returned by catalog lookups.
var (
	ErrProductNotFound = errors.New("product not found")
	ErrUnknownExtra    = errors.New("unknown extra")
)

// LowStockThreshold is the stock level below which a product shows up in the
// low-stock inventory view.
const LowStockThreshold = 5

// Product is reference data owned by the catalog. Cart and order entities
// refer to it by ID only; the one exception is the display-name snapshot
// captured into an order at checkout.
type Product struct {
	ID           string
	NameKey      string
	Category     string
	Price        decimal.Decimal
	ImageURL     string
	RequiresMilk bool
	Stock        int
	IsAvailable  bool
}

// Settings mirrors the app_settings row: business identity plus the flat
// prices the pricing calculator needs. TaxRate is carried for reporting but
// is not applied to kiosk totals (displayed prices are tax-inclusive).
type Settings struct {
	BusinessName          string
	CurrencySymbol        string
	TaxRate               decimal.Decimal
	ExtraCollagenPrice    decimal.Decimal
	ExtraAshwagandhaPrice decimal.Decimal
	ExtraHoneyPrice       decimal.Decimal
	LargeSizeExtra        decimal.Decimal
}

// ExtraPrice returns the flat price of one of the three fixed extras.
func (s Settings) ExtraPrice(id string) (decimal.Decimal, error) {
	switch id {
	case enum.ExtraCollagen:
		return s.ExtraCollagenPrice, nil
	case enum.ExtraAshwagandha:
		return s.ExtraAshwagandhaPrice, nil
	case enum.ExtraHoney:
		return s.ExtraHoneyPrice, nil
	}
	return decimal.Zero, fmt.Errorf("%w: %s", ErrUnknownExtra, id)
}

// Catalog is a concurrency-safe snapshot of products and settings.
// Product order is preserved as loaded (the menu display order).
type Catalog struct {
	mu       sync.RWMutex
	products []Product
	index    map[string]int
	settings Settings
}

// New creates a catalog from a product list and settings.
func New(products []Product, settings Settings) *Catalog {
	c := &Catalog{settings: settings}
	c.load(products)
	return c
}

func (c *Catalog) load(products []Product) {
	c.products = make([]Product, len(products))
	copy(c.products, products)
	c.index = make(map[string]int, len(products))
	for i, p := range c.products {
		c.index[p.ID] = i
	}
}

// Replace swaps in a freshly fetched snapshot.
func (c *Catalog) Replace(products []Product, settings Settings) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.load(products)
	c.settings = settings
}

// Get returns the product with the given ID.
func (c *Catalog) Get(id string) (Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.index[id]
	if !ok {
		return Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	return c.products[i], nil
}

// List returns all products in menu order.
func (c *Catalog) List() []Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Settings returns the current settings snapshot.
func (c *Catalog) Settings() Settings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings
}

// UpdateStock sets a product's stock level, floored at zero.
func (c *Catalog) UpdateStock(id string, stock int) (Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i, ok := c.index[id]
	if !ok {
		return Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	if stock < 0 {
		stock = 0
	}
	c.products[i].Stock = stock
	return c.products[i], nil
}

// ToggleAvailability flips a product's availability flag.
func (c *Catalog) ToggleAvailability(id string) (Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i, ok := c.index[id]
	if !ok {
		return Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	c.products[i].IsAvailable = !c.products[i].IsAvailable
	return c.products[i], nil
}

// UpdatePrice sets a product's base price, floored at zero.
func (c *Catalog) UpdatePrice(id string, price decimal.Decimal) (Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i, ok := c.index[id]
	if !ok {
		return Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	if price.IsNegative() {
		price = decimal.Zero
	}
	c.products[i].Price = price
	return c.products[i], nil
}

// LowStock returns products whose stock is below the low-stock threshold.
func (c *Catalog) LowStock() []Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []Product
	for _, p := range c.products {
		if p.Stock < LowStockThreshold {
			out = append(out, p)
		}
	}
	return out
}

// ByCategory returns products in the given category. An empty category or
// "all" returns everything.
func (c *Catalog) ByCategory(category string) []Product {
	if category == "" || category == "all" {
		return c.List()
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []Product
	for _, p := range c.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Search matches products whose English display name contains the query,
// case-insensitively.
func (c *Catalog) Search(query string) []Product {
	q := strings.ToLower(query)
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []Product
	for _, p := range c.products {
		name := i18n.ProductName(enum.LanguageEnglish, p.NameKey)
		if strings.Contains(strings.ToLower(name), q) {
			out = append(out, p)
		}
	}
	return out
}
