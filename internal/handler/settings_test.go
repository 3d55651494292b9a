package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/matchabar/api/internal/catalog"
	"github.com/matchabar/api/internal/handler"
)

func TestGetSettings(t *testing.T) {
	r := chi.NewRouter()
	h := handler.NewSettingsHandler(catalog.Default())
	r.Route("/settings", h.RegisterRoutes)

	w := doJSON(t, r, http.MethodGet, "/settings", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		BusinessName          string `json:"business_name"`
		CurrencySymbol        string `json:"currency_symbol"`
		TaxRate               string `json:"tax_rate"`
		ExtraCollagenPrice    string `json:"extra_collagen_price"`
		ExtraAshwagandhaPrice string `json:"extra_ashwagandha_price"`
		ExtraHoneyPrice       string `json:"extra_honey_price"`
		LargeSizeExtra        string `json:"large_size_extra"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.BusinessName != "Matcha Bar" {
		t.Errorf("unexpected business name: %q", resp.BusinessName)
	}
	if resp.CurrencySymbol != "$" {
		t.Errorf("unexpected currency symbol: %q", resp.CurrencySymbol)
	}
	if resp.TaxRate != "0.0000" {
		t.Errorf("unexpected tax rate: %q", resp.TaxRate)
	}
	if resp.ExtraCollagenPrice != "1.50" || resp.ExtraHoneyPrice != "1.00" {
		t.Errorf("unexpected extras prices: %s / %s", resp.ExtraCollagenPrice, resp.ExtraHoneyPrice)
	}
	if resp.LargeSizeExtra != "1.00" {
		t.Errorf("unexpected large size extra: %q", resp.LargeSizeExtra)
	}
}
