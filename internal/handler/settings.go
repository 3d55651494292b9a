package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/matchabar/api/internal/catalog"
)

// SettingsStore provides the current settings snapshot.
// Satisfied by *catalog.Catalog.
type SettingsStore interface {
	Settings() catalog.Settings
}

// SettingsHandler exposes the app settings to the admin dashboard.
type SettingsHandler struct {
	store SettingsStore
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(store SettingsStore) *SettingsHandler {
	return &SettingsHandler{store: store}
}

// RegisterRoutes registers settings endpoints on the given Chi router.
func (h *SettingsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Get)
}

type settingsResponse struct {
	BusinessName          string `json:"business_name"`
	CurrencySymbol        string `json:"currency_symbol"`
	TaxRate               string `json:"tax_rate"`
	ExtraCollagenPrice    string `json:"extra_collagen_price"`
	ExtraAshwagandhaPrice string `json:"extra_ashwagandha_price"`
	ExtraHoneyPrice       string `json:"extra_honey_price"`
	LargeSizeExtra        string `json:"large_size_extra"`
}

// Get handles GET /settings.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	s := h.store.Settings()
	writeJSON(w, http.StatusOK, settingsResponse{
		BusinessName:          s.BusinessName,
		CurrencySymbol:        s.CurrencySymbol,
		TaxRate:               s.TaxRate.StringFixed(4),
		ExtraCollagenPrice:    s.ExtraCollagenPrice.StringFixed(2),
		ExtraAshwagandhaPrice: s.ExtraAshwagandhaPrice.StringFixed(2),
		ExtraHoneyPrice:       s.ExtraHoneyPrice.StringFixed(2),
		LargeSizeExtra:        s.LargeSizeExtra.StringFixed(2),
	})
}
