// Package session implements the kiosk's top-level state: language, active
// screen, the live cart, pending extras, and checkout finalization. A kiosk
// runs exactly one session; the mutex serializes the HTTP layer's intents.
package session

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/matchabar/api/internal/cart"
	"github.com/matchabar/api/internal/catalog"
	"github.com/matchabar/api/internal/enum"
	"github.com/matchabar/api/internal/i18n"
	"github.com/matchabar/api/internal/order"
	"github.com/matchabar/api/internal/pricing"
)

// Errors returned by session operations.
var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrInvalidLanguage = errors.New("invalid language")
)

// State is a read-only snapshot of the session for the presentation layer.
type State struct {
	Language    string
	Screen      string
	OrderNumber int // 0 until checkout
	Extras      pricing.Extras
	Totals      *pricing.Totals
}

// Session drives one shopper's flow from language selection through checkout.
type Session struct {
	mu          sync.Mutex
	language    string
	screen      string
	cart        *cart.Cart
	extras      pricing.Extras
	orderNumber int

	catalog *catalog.Catalog
	orders  *order.Store

	now  func() time.Time
	intN func(n int) int
}

// New creates a session on the welcome screen.
func New(cat *catalog.Catalog, orders *order.Store) *Session {
	return &Session{
		language: enum.LanguageEnglish,
		screen:   enum.ScreenWelcome,
		cart:     cart.New(),
		catalog:  cat,
		orders:   orders,
		now:      time.Now,
		intN:     rand.Intn,
	}
}

// SelectLanguage sets the display language and moves to the menu.
func (s *Session) SelectLanguage(lang string) error {
	if !enum.IsValidLanguage(lang) {
		return ErrInvalidLanguage
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.language = lang
	s.screen = enum.ScreenMenu
	return nil
}

// AddToCart adds one unit of a product, merging by identity. The product must
// exist in the catalog.
func (s *Session) AddToCart(productID string, cust *cart.Customization) error {
	if _, err := s.catalog.Get(productID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Add(productID, cust)
	return nil
}

// UpdateQuantity adjusts a line item's quantity by delta, removing it when
// the result drops to zero. A missing line item is a no-op; an unknown
// product is an error.
func (s *Session) UpdateQuantity(productID string, cust *cart.Customization, delta int) error {
	if _, err := s.catalog.Get(productID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.UpdateQuantity(productID, cust, delta)
	return nil
}

// RemoveFromCart deletes a line item. A missing line item is a no-op; an
// unknown product is an error.
func (s *Session) RemoveFromCart(productID string, cust *cart.Customization) error {
	if _, err := s.catalog.Get(productID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Remove(productID, cust)
	return nil
}

// SetExtras replaces the pending extras selection. Extras are owned by the
// session until checkout snapshots them into the order.
func (s *Session) SetExtras(extras pricing.Extras) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.extras = extras
}

// Checkout freezes the current cart and extras into a pending order, adds it
// to the order store, and moves to the checkout screen. The order number is
// drawn uniformly from 100-999; that is not collision-proof across restarts,
// which is acceptable for a single kiosk but must be revisited before any
// multi-terminal deployment.
func (s *Session) Checkout() (*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart.Len() == 0 {
		return nil, ErrEmptyCart
	}

	totals, err := pricing.Calculate(s.cart.Items(), s.catalog, s.extras)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, len(totals.Lines))
	for i, lt := range totals.Lines {
		product, err := s.catalog.Get(lt.Item.ProductID)
		if err != nil {
			return nil, err
		}
		items[i] = order.LineItem{
			ProductID:   lt.Item.ProductID,
			ProductName: i18n.ProductName(s.language, product.NameKey),
			Quantity:    lt.Item.Quantity,
			UnitPrice:   lt.UnitPrice,
			Subtotal:    lt.Total,
		}
		if lt.Item.Customization != nil {
			items[i].Milk = lt.Item.Customization.Milk
			items[i].Size = lt.Item.Customization.Size
		}
	}

	number := s.intN(900) + 100
	o := order.New(number, items, s.extras, totals.Subtotal, totals.ExtrasTotal, totals.Total, s.now())
	s.orders.Add(o)

	s.orderNumber = number
	s.screen = enum.ScreenCheckout
	return o, nil
}

// BackToMenu clears the cart, extras, and order number and returns to the
// menu for the next shopper.
func (s *Session) BackToMenu() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset(enum.ScreenMenu)
}

// ResetToWelcome clears everything and returns to language selection.
func (s *Session) ResetToWelcome() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset(enum.ScreenWelcome)
}

// reset clears per-order state. Callers hold s.mu.
func (s *Session) reset(screen string) {
	s.cart.Clear()
	s.extras = pricing.Extras{}
	s.orderNumber = 0
	s.screen = screen
}

// State returns a priced snapshot of the session.
func (s *Session) State() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	totals, err := pricing.Calculate(s.cart.Items(), s.catalog, s.extras)
	if err != nil {
		return State{}, err
	}
	return State{
		Language:    s.language,
		Screen:      s.screen,
		OrderNumber: s.orderNumber,
		Extras:      s.extras,
		Totals:      totals,
	}, nil
}
