package database

import (
	"context"
	"fmt"

	"github.com/matchabar/api/internal/catalog"
)

// LoadCatalog fetches products and settings and converts them into the
// catalog's domain types. Callers decide what to do on failure; the kiosk
// falls back to the packaged snapshot so it can sell against stale data.
func LoadCatalog(ctx context.Context, q *Queries) ([]catalog.Product, catalog.Settings, error) {
	rows, err := q.ListProducts(ctx)
	if err != nil {
		return nil, catalog.Settings{}, fmt.Errorf("list products: %w", err)
	}
	row, err := q.GetAppSettings(ctx)
	if err != nil {
		return nil, catalog.Settings{}, fmt.Errorf("get app settings: %w", err)
	}

	products := make([]catalog.Product, len(rows))
	for i, r := range rows {
		products[i] = catalog.Product{
			ID:           r.ID,
			NameKey:      r.NameKey,
			Category:     r.Category,
			Price:        NumericToDecimal(r.Price),
			RequiresMilk: r.RequiresMilk,
			Stock:        int(r.Stock),
			IsAvailable:  r.IsAvailable,
		}
		if r.ImageUrl.Valid {
			products[i].ImageURL = r.ImageUrl.String
		}
	}

	settings := catalog.Settings{
		BusinessName:          row.BusinessName,
		CurrencySymbol:        row.CurrencySymbol,
		TaxRate:               NumericToDecimal(row.TaxRate),
		ExtraCollagenPrice:    NumericToDecimal(row.ExtraCollagenPrice),
		ExtraAshwagandhaPrice: NumericToDecimal(row.ExtraAshwagandhaPrice),
		ExtraHoneyPrice:       NumericToDecimal(row.ExtraHoneyPrice),
		LargeSizeExtra:        NumericToDecimal(row.LargeSizeExtra),
	}
	return products, settings, nil
}
