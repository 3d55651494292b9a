// Package pricing derives kiosk totals from cart contents, the catalog
// snapshot, and the selected extras. All arithmetic is exact decimal; display
// rounding happens at the JSON boundary.
package pricing

import (
	"fmt"

	"github.com/matchabar/api/internal/cart"
	"github.com/matchabar/api/internal/catalog"
	"github.com/matchabar/api/internal/enum"
	"github.com/shopspring/decimal"
)

// Extras is the fixed set of three independent order add-ons. Any subset may
// be active; each contributes its flat price from settings when true.
type Extras struct {
	Collagen    bool
	Ashwagandha bool
	Honey       bool
}

// LineTotal is the priced view of one cart line item.
type LineTotal struct {
	Item      cart.LineItem
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}

// Totals is the full priced view of a cart.
type Totals struct {
	Lines       []LineTotal
	Subtotal    decimal.Decimal
	ExtrasTotal decimal.Decimal
	Total       decimal.Decimal
}

// Calculate prices every line item and sums the order.
//
// Unit price = product base price, plus the large-size surcharge when the
// item's customization size is large. Total = subtotal + extras total; the
// settings tax rate is not applied (displayed prices are tax-inclusive).
// An unknown product ID fails with catalog.ErrProductNotFound.
func Calculate(items []cart.LineItem, cat *catalog.Catalog, extras Extras) (*Totals, error) {
	settings := cat.Settings()

	totals := &Totals{
		Subtotal:    decimal.Zero,
		ExtrasTotal: decimal.Zero,
	}

	for i, li := range items {
		product, err := cat.Get(li.ProductID)
		if err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}

		unitPrice := product.Price
		if li.Customization != nil && li.Customization.Size == enum.SizeLarge {
			unitPrice = unitPrice.Add(settings.LargeSizeExtra)
		}

		lineTotal := unitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
		totals.Lines = append(totals.Lines, LineTotal{
			Item:      li,
			UnitPrice: unitPrice,
			Total:     lineTotal,
		})
		totals.Subtotal = totals.Subtotal.Add(lineTotal)
	}

	totals.ExtrasTotal = ExtrasTotal(extras, settings)
	totals.Total = totals.Subtotal.Add(totals.ExtrasTotal)
	return totals, nil
}

// ExtrasTotal sums the flat prices of the active extras.
func ExtrasTotal(extras Extras, settings catalog.Settings) decimal.Decimal {
	total := decimal.Zero
	if extras.Collagen {
		total = total.Add(settings.ExtraCollagenPrice)
	}
	if extras.Ashwagandha {
		total = total.Add(settings.ExtraAshwagandhaPrice)
	}
	if extras.Honey {
		total = total.Add(settings.ExtraHoneyPrice)
	}
	return total
}
