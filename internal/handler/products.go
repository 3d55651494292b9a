package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/matchabar/api/internal/catalog"
	"github.com/matchabar/api/internal/enum"
	"github.com/matchabar/api/internal/i18n"
	"github.com/shopspring/decimal"
)

// CatalogStore defines the catalog methods needed by product handlers.
// Satisfied by *catalog.Catalog; narrow interface for testability.
type CatalogStore interface {
	List() []catalog.Product
	Get(id string) (catalog.Product, error)
	ByCategory(category string) []catalog.Product
	Search(query string) []catalog.Product
	LowStock() []catalog.Product
	UpdateStock(id string, stock int) (catalog.Product, error)
	ToggleAvailability(id string) (catalog.Product, error)
	UpdatePrice(id string, price decimal.Decimal) (catalog.Product, error)
}

// ProductHandler handles catalog reads and the admin inventory operations.
type ProductHandler struct {
	store CatalogStore
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(store CatalogStore) *ProductHandler {
	return &ProductHandler{store: store}
}

// RegisterRoutes registers product endpoints on the given Chi router.
// Expected to be mounted at /products.
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}/stock", h.UpdateStock)
	r.Patch("/{id}/availability", h.ToggleAvailability)
	r.Patch("/{id}/price", h.UpdatePrice)
}

// --- Request / Response types ---

type updateStockRequest struct {
	Stock int `json:"stock"`
}

type updatePriceRequest struct {
	Price string `json:"price"`
}

type productResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	NameKey      string `json:"name_key"`
	Category     string `json:"category"`
	Price        string `json:"price"`
	ImageURL     string `json:"image_url"`
	RequiresMilk bool   `json:"requires_milk"`
	Stock        int    `json:"stock"`
	IsAvailable  bool   `json:"is_available"`
	LowStock     bool   `json:"low_stock"`
}

type productListResponse struct {
	Products []productResponse `json:"products"`
}

// --- Handlers ---

// List handles GET /products. Supports ?category=, ?q= (name search),
// ?low_stock=true, and ?lang= for display names.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	lang := displayLanguage(r)

	var products []catalog.Product
	switch {
	case r.URL.Query().Get("low_stock") == "true":
		products = h.store.LowStock()
	case r.URL.Query().Get("q") != "":
		products = h.store.Search(r.URL.Query().Get("q"))
	default:
		products = h.store.ByCategory(r.URL.Query().Get("category"))
	}

	resp := make([]productResponse, len(products))
	for i, p := range products {
		resp[i] = toProductResponse(p, lang)
	}
	writeJSON(w, http.StatusOK, productListResponse{Products: resp})
}

// Get handles GET /products/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(p, displayLanguage(r)))
}

// UpdateStock handles PATCH /products/{id}/stock.
func (h *ProductHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	var req updateStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	p, err := h.store.UpdateStock(chi.URLParam(r, "id"), req.Stock)
	if err != nil {
		h.writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(p, displayLanguage(r)))
}

// ToggleAvailability handles PATCH /products/{id}/availability.
func (h *ProductHandler) ToggleAvailability(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.ToggleAvailability(chi.URLParam(r, "id"))
	if err != nil {
		h.writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(p, displayLanguage(r)))
}

// UpdatePrice handles PATCH /products/{id}/price.
func (h *ProductHandler) UpdatePrice(w http.ResponseWriter, r *http.Request) {
	var req updatePriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid price"})
		return
	}

	p, err := h.store.UpdatePrice(chi.URLParam(r, "id"), price)
	if err != nil {
		h.writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(p, displayLanguage(r)))
}

// --- Helpers ---

func (h *ProductHandler) writeCatalogError(w http.ResponseWriter, err error) {
	if errors.Is(err, catalog.ErrProductNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "product not found"})
		return
	}
	log.Printf("ERROR: catalog operation: %v", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}

func displayLanguage(r *http.Request) string {
	if lang := r.URL.Query().Get("lang"); enum.IsValidLanguage(lang) {
		return lang
	}
	return enum.LanguageEnglish
}

func toProductResponse(p catalog.Product, lang string) productResponse {
	return productResponse{
		ID:           p.ID,
		Name:         i18n.ProductName(lang, p.NameKey),
		NameKey:      p.NameKey,
		Category:     p.Category,
		Price:        p.Price.StringFixed(2),
		ImageURL:     p.ImageURL,
		RequiresMilk: p.RequiresMilk,
		Stock:        p.Stock,
		IsAvailable:  p.IsAvailable,
		LowStock:     p.Stock < catalog.LowStockThreshold,
	}
}
