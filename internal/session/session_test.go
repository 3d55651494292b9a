package session

import (
	"errors"
	"testing"
	"time"

	"github.com/matchabar/api/internal/cart"
	"github.com/matchabar/api/internal/catalog"
	"github.com/matchabar/api/internal/enum"
	"github.com/matchabar/api/internal/order"
	"github.com/matchabar/api/internal/pricing"
)

func newTestSession() (*Session, *order.Store) {
	orders := order.NewStore()
	s := New(catalog.Default(), orders)
	s.now = func() time.Time { return time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC) }
	s.intN = func(n int) int { return 342 } // order number 442
	return s, orders
}

func oatLarge() *cart.Customization {
	return &cart.Customization{Milk: enum.MilkOat, Size: enum.SizeLarge}
}

func TestSelectLanguage(t *testing.T) {
	s, _ := newTestSession()

	if err := s.SelectLanguage(enum.LanguageSpanish); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	state, err := s.State()
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if state.Language != enum.LanguageSpanish || state.Screen != enum.ScreenMenu {
		t.Errorf("expected es/menu, got %s/%s", state.Language, state.Screen)
	}

	if err := s.SelectLanguage("fr"); !errors.Is(err, ErrInvalidLanguage) {
		t.Fatalf("expected ErrInvalidLanguage, got %v", err)
	}
}

func TestAddUnknownProduct(t *testing.T) {
	s, _ := newTestSession()
	err := s.AddToCart("nope", nil)
	if !errors.Is(err, catalog.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestCheckoutSnapshotsCartAndExtras(t *testing.T) {
	s, orders := newTestSession()
	if err := s.SelectLanguage(enum.LanguageEnglish); err != nil {
		t.Fatal(err)
	}

	// matcha-latte base 6.50, oat large x2 -> 15.00; collagen 1.50 -> 16.50
	if err := s.AddToCart("matcha-latte", oatLarge()); err != nil {
		t.Fatal(err)
	}
	if err := s.AddToCart("matcha-latte", oatLarge()); err != nil {
		t.Fatal(err)
	}
	s.SetExtras(pricing.Extras{Collagen: true})

	o, err := s.Checkout()
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	if o.Number != 442 {
		t.Errorf("expected order number 442, got %d", o.Number)
	}
	if o.Status != enum.OrderStatusPending {
		t.Errorf("expected pending, got %s", o.Status)
	}
	if len(o.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(o.Items))
	}
	item := o.Items[0]
	if item.ProductName != "Matcha Latte" {
		t.Errorf("expected display name snapshot, got %q", item.ProductName)
	}
	if item.Quantity != 2 || item.Milk != enum.MilkOat || item.Size != enum.SizeLarge {
		t.Errorf("bad item snapshot: %+v", item)
	}
	if item.UnitPrice.StringFixed(2) != "7.50" || item.Subtotal.StringFixed(2) != "15.00" {
		t.Errorf("bad item pricing: unit %s subtotal %s", item.UnitPrice, item.Subtotal)
	}
	if o.Subtotal.StringFixed(2) != "15.00" || o.ExtrasTotal.StringFixed(2) != "1.50" || o.Total.StringFixed(2) != "16.50" {
		t.Errorf("bad totals: %s / %s / %s", o.Subtotal, o.ExtrasTotal, o.Total)
	}
	if !o.Extras.Collagen || o.Extras.Ashwagandha || o.Extras.Honey {
		t.Errorf("bad extras snapshot: %+v", o.Extras)
	}

	// The order landed in the store for the admin side.
	stored, err := orders.Get(o.ID)
	if err != nil {
		t.Fatalf("order not in store: %v", err)
	}
	if stored.Number != 442 {
		t.Errorf("stored order number %d", stored.Number)
	}

	state, err := s.State()
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if state.Screen != enum.ScreenCheckout || state.OrderNumber != 442 {
		t.Errorf("expected checkout/442, got %s/%d", state.Screen, state.OrderNumber)
	}
}

func TestCheckoutSpanishDisplayNames(t *testing.T) {
	s, _ := newTestSession()
	if err := s.SelectLanguage(enum.LanguageSpanish); err != nil {
		t.Fatal(err)
	}
	if err := s.AddToCart("tuna-sandwich", nil); err != nil {
		t.Fatal(err)
	}

	o, err := s.Checkout()
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if o.Items[0].ProductName != "Sándwich de Atún" {
		t.Errorf("expected Spanish name, got %q", o.Items[0].ProductName)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	s, _ := newTestSession()
	if _, err := s.Checkout(); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestOrderNumberRange(t *testing.T) {
	orders := order.NewStore()
	s := New(catalog.Default(), orders)
	for i := 0; i < 50; i++ {
		if err := s.AddToCart("americano", nil); err != nil {
			t.Fatal(err)
		}
		o, err := s.Checkout()
		if err != nil {
			t.Fatalf("checkout %d: %v", i, err)
		}
		if o.Number < 100 || o.Number > 999 {
			t.Fatalf("order number %d out of range", o.Number)
		}
		s.BackToMenu()
	}
}

func TestBackToMenuClearsOrderState(t *testing.T) {
	s, _ := newTestSession()
	if err := s.AddToCart("americano", nil); err != nil {
		t.Fatal(err)
	}
	s.SetExtras(pricing.Extras{Honey: true})
	if _, err := s.Checkout(); err != nil {
		t.Fatal(err)
	}

	s.BackToMenu()

	state, err := s.State()
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if state.Screen != enum.ScreenMenu {
		t.Errorf("expected menu screen, got %s", state.Screen)
	}
	if state.OrderNumber != 0 {
		t.Errorf("order number not cleared: %d", state.OrderNumber)
	}
	if len(state.Totals.Lines) != 0 {
		t.Errorf("cart not cleared: %d items", len(state.Totals.Lines))
	}
	if state.Extras != (pricing.Extras{}) {
		t.Errorf("extras not cleared: %+v", state.Extras)
	}
}

func TestResetToWelcome(t *testing.T) {
	s, _ := newTestSession()
	if err := s.SelectLanguage(enum.LanguageSpanish); err != nil {
		t.Fatal(err)
	}
	if err := s.AddToCart("americano", nil); err != nil {
		t.Fatal(err)
	}

	s.ResetToWelcome()

	state, err := s.State()
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if state.Screen != enum.ScreenWelcome {
		t.Errorf("expected welcome screen, got %s", state.Screen)
	}
	if len(state.Totals.Lines) != 0 {
		t.Errorf("cart not cleared: %d items", len(state.Totals.Lines))
	}
}

func TestUpdateAndRemoveDelegateIdentity(t *testing.T) {
	s, _ := newTestSession()
	if err := s.AddToCart("matcha-latte", nil); err != nil {
		t.Fatal(err)
	}
	if err := s.AddToCart("matcha-latte", oatLarge()); err != nil {
		t.Fatal(err)
	}

	// Decrement the plain item away; the customized one must survive.
	if err := s.UpdateQuantity("matcha-latte", nil, -1); err != nil {
		t.Fatal(err)
	}
	state, err := s.State()
	if err != nil {
		t.Fatal(err)
	}
	if len(state.Totals.Lines) != 1 || state.Totals.Lines[0].Item.Customization == nil {
		t.Fatalf("wrong item removed: %+v", state.Totals.Lines)
	}

	if err := s.RemoveFromCart("matcha-latte", oatLarge()); err != nil {
		t.Fatal(err)
	}
	state, err = s.State()
	if err != nil {
		t.Fatal(err)
	}
	if len(state.Totals.Lines) != 0 {
		t.Fatalf("cart not empty: %+v", state.Totals.Lines)
	}
}
