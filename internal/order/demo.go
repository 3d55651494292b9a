package order

import (
	"math/rand"
	"time"

	"github.com/matchabar/api/internal/cart"
	"github.com/matchabar/api/internal/catalog"
	"github.com/matchabar/api/internal/enum"
	"github.com/matchabar/api/internal/i18n"
	"github.com/matchabar/api/internal/pricing"
)

// demoItem describes one line of a demo order. Milk and size are both set or
// both empty, matching the cart's customization rule.
type demoItem struct {
	productID string
	qty       int
	milk      string
	size      string
}

type demoSpec struct {
	number   int
	ageHours float64
	items    []demoItem
	extras   pricing.Extras
	path     []string // statuses entered after pending, in order
}

// demoSpecs mirrors the spread of a mid-morning rush: a few orders at every
// stage plus some completed ones for the history view.
var demoSpecs = []demoSpec{
	{number: 101, ageHours: 0.5,
		items:  []demoItem{{productID: "matcha-latte", qty: 2, milk: enum.MilkOat, size: enum.SizeLarge}},
		extras: pricing.Extras{Collagen: true}},
	{number: 214, ageHours: 1,
		items: []demoItem{
			{productID: "strawberry-matcha", qty: 1, milk: enum.MilkAlmond, size: enum.SizeRegular},
			{productID: "skin-food", qty: 1, milk: enum.MilkOat, size: enum.SizeLarge},
		},
		extras: pricing.Extras{Collagen: true, Ashwagandha: true},
		path:   []string{enum.OrderStatusPreparing}},
	{number: 333, ageHours: 1.5,
		items: []demoItem{
			{productID: "vegan-sandwich", qty: 1},
			{productID: "americano", qty: 2},
		},
		extras: pricing.Extras{Honey: true},
		path:   []string{enum.OrderStatusPreparing, enum.OrderStatusReady}},
	{number: 402, ageHours: 0.3,
		items: []demoItem{{productID: "cappuccino", qty: 3, milk: enum.MilkCoconut, size: enum.SizeRegular}}},
	{number: 527, ageHours: 2,
		items: []demoItem{
			{productID: "matcha-cookie", qty: 2},
			{productID: "matcha-lemonade", qty: 1},
		},
		extras: pricing.Extras{Ashwagandha: true, Honey: true},
		path:   []string{enum.OrderStatusPreparing}},
	{number: 618, ageHours: 3,
		items:  []demoItem{{productID: "banana-brulee-latte", qty: 1, milk: enum.MilkOat, size: enum.SizeLarge}},
		extras: pricing.Extras{Collagen: true},
		path:   []string{enum.OrderStatusPreparing, enum.OrderStatusReady, enum.OrderStatusCompleted}},
	{number: 745, ageHours: 4,
		items: []demoItem{{productID: "tuna-sandwich", qty: 2}},
		path:  []string{enum.OrderStatusPreparing, enum.OrderStatusReady, enum.OrderStatusCompleted}},
	{number: 866, ageHours: 1.2,
		items:  []demoItem{{productID: "blueberry-cinnamon-matcha", qty: 1, milk: enum.MilkAlmond, size: enum.SizeLarge}},
		extras: pricing.Extras{Collagen: true, Ashwagandha: true, Honey: true},
		path:   []string{enum.OrderStatusPreparing, enum.OrderStatusReady}},
}

// SeedDemo fills an empty store with demo orders priced from the live
// catalog, so the admin dashboard has something to show before the kiosk has
// taken a real order. Orders are backdated within the last few hours.
func SeedDemo(s *Store, cat *catalog.Catalog, now time.Time) {
	for _, spec := range demoSpecs {
		o, err := buildDemoOrder(spec, cat, now)
		if err != nil {
			// Demo data only: skip specs the current catalog can't price.
			continue
		}
		s.Add(o)
	}
}

func buildDemoOrder(spec demoSpec, cat *catalog.Catalog, now time.Time) (*Order, error) {
	var cartItems []cart.LineItem
	for _, it := range spec.items {
		li := cart.LineItem{ProductID: it.productID, Quantity: it.qty}
		if it.milk != "" && it.size != "" {
			li.Customization = &cart.Customization{Milk: it.milk, Size: it.size}
		}
		cartItems = append(cartItems, li)
	}

	totals, err := pricing.Calculate(cartItems, cat, spec.extras)
	if err != nil {
		return nil, err
	}

	items := make([]LineItem, len(totals.Lines))
	for i, lt := range totals.Lines {
		product, err := cat.Get(lt.Item.ProductID)
		if err != nil {
			return nil, err
		}
		items[i] = LineItem{
			ProductID:   lt.Item.ProductID,
			ProductName: i18n.ProductName(enum.LanguageEnglish, product.NameKey),
			Quantity:    lt.Item.Quantity,
			UnitPrice:   lt.UnitPrice,
			Subtotal:    lt.Total,
		}
		if lt.Item.Customization != nil {
			items[i].Milk = lt.Item.Customization.Milk
			items[i].Size = lt.Item.Customization.Size
		}
	}

	// Jitter the creation time a little so repeated seeds don't line up.
	age := time.Duration(spec.ageHours * (0.8 + 0.4*rand.Float64()) * float64(time.Hour))
	createdAt := now.Add(-age)

	o := New(spec.number, items, spec.extras, totals.Subtotal, totals.ExtrasTotal, totals.Total, createdAt)

	at := createdAt
	for _, st := range spec.path {
		at = at.Add(5 * time.Minute)
		if err := o.SetStatus(st, at); err != nil {
			return nil, err
		}
	}
	return o, nil
}
