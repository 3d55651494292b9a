package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/matchabar/api/internal/cart"
	"github.com/matchabar/api/internal/catalog"
	"github.com/matchabar/api/internal/enum"
	"github.com/matchabar/api/internal/order"
	"github.com/matchabar/api/internal/pricing"
	"github.com/matchabar/api/internal/session"
)

// SessionControl defines the session operations needed by kiosk handlers.
// Satisfied by *session.Session; narrow interface for testability.
type SessionControl interface {
	SelectLanguage(lang string) error
	AddToCart(productID string, cust *cart.Customization) error
	UpdateQuantity(productID string, cust *cart.Customization, delta int) error
	RemoveFromCart(productID string, cust *cart.Customization) error
	SetExtras(extras pricing.Extras)
	Checkout() (*order.Order, error)
	BackToMenu()
	ResetToWelcome()
	State() (session.State, error)
}

// Broadcaster pushes order events to the admin dashboard feed.
// Satisfied by *ws.Hub.
type Broadcaster interface {
	Broadcast(eventType string, payload any)
}

// SessionHandler handles the kiosk-facing endpoints.
type SessionHandler struct {
	session SessionControl
	hub     Broadcaster
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(session SessionControl, hub Broadcaster) *SessionHandler {
	return &SessionHandler{session: session, hub: hub}
}

// RegisterRoutes registers kiosk endpoints on the given Chi router.
// Expected to be mounted at /session.
func (h *SessionHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Get)
	r.Post("/language", h.SelectLanguage)
	r.Post("/cart/items", h.AddItem)
	r.Patch("/cart/items", h.UpdateQuantity)
	r.Delete("/cart/items", h.RemoveItem)
	r.Put("/extras", h.SetExtras)
	r.Post("/checkout", h.Checkout)
	r.Post("/menu", h.BackToMenu)
	r.Post("/reset", h.Reset)
}

// --- Request / Response types ---

type selectLanguageRequest struct {
	Language string `json:"language"`
}

type cartItemRequest struct {
	ProductID string `json:"product_id"`
	Milk      string `json:"milk"`
	Size      string `json:"size"`
	Delta     int    `json:"delta"` // PATCH only
}

type extrasRequest struct {
	Collagen    bool `json:"collagen"`
	Ashwagandha bool `json:"ashwagandha"`
	Honey       bool `json:"honey"`
}

type lineItemResponse struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Milk      *string `json:"milk"`
	Size      *string `json:"size"`
	UnitPrice string  `json:"unit_price"`
	Total     string  `json:"total"`
}

type sessionResponse struct {
	Language    string             `json:"language"`
	Screen      string             `json:"screen"`
	OrderNumber *int               `json:"order_number"`
	Items       []lineItemResponse `json:"items"`
	Extras      extrasRequest      `json:"extras"`
	Subtotal    string             `json:"subtotal"`
	ExtrasTotal string             `json:"extras_total"`
	Total       string             `json:"total"`
}

type checkoutResponse struct {
	OrderID     string `json:"order_id"`
	OrderNumber int    `json:"order_number"`
	Subtotal    string `json:"subtotal"`
	ExtrasTotal string `json:"extras_total"`
	Total       string `json:"total"`
}

// --- Handlers ---

// Get handles GET /session.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.writeState(w)
}

// SelectLanguage handles POST /session/language.
func (h *SessionHandler) SelectLanguage(w http.ResponseWriter, r *http.Request) {
	var req selectLanguageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := h.session.SelectLanguage(req.Language); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid language"})
		return
	}
	h.writeState(w)
}

// AddItem handles POST /session/cart/items.
func (h *SessionHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	req, cust, ok := h.decodeItem(w, r)
	if !ok {
		return
	}
	if err := h.session.AddToCart(req.ProductID, cust); err != nil {
		h.writeCartError(w, err)
		return
	}
	h.writeState(w)
}

// UpdateQuantity handles PATCH /session/cart/items.
func (h *SessionHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	req, cust, ok := h.decodeItem(w, r)
	if !ok {
		return
	}
	if req.Delta == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "delta must be non-zero"})
		return
	}
	if err := h.session.UpdateQuantity(req.ProductID, cust, req.Delta); err != nil {
		h.writeCartError(w, err)
		return
	}
	h.writeState(w)
}

// RemoveItem handles DELETE /session/cart/items.
func (h *SessionHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	req, cust, ok := h.decodeItem(w, r)
	if !ok {
		return
	}
	if err := h.session.RemoveFromCart(req.ProductID, cust); err != nil {
		h.writeCartError(w, err)
		return
	}
	h.writeState(w)
}

// SetExtras handles PUT /session/extras.
func (h *SessionHandler) SetExtras(w http.ResponseWriter, r *http.Request) {
	var req extrasRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	h.session.SetExtras(pricing.Extras{
		Collagen:    req.Collagen,
		Ashwagandha: req.Ashwagandha,
		Honey:       req.Honey,
	})
	h.writeState(w)
}

// Checkout handles POST /session/checkout.
func (h *SessionHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	o, err := h.session.Checkout()
	if err != nil {
		if errors.Is(err, session.ErrEmptyCart) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "cart is empty"})
			return
		}
		if errors.Is(err, catalog.ErrProductNotFound) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		log.Printf("ERROR: checkout: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.hub.Broadcast("order.created", toAdminOrderResponse(o))

	writeJSON(w, http.StatusCreated, checkoutResponse{
		OrderID:     o.ID.String(),
		OrderNumber: o.Number,
		Subtotal:    o.Subtotal.StringFixed(2),
		ExtrasTotal: o.ExtrasTotal.StringFixed(2),
		Total:       o.Total.StringFixed(2),
	})
}

// BackToMenu handles POST /session/menu.
func (h *SessionHandler) BackToMenu(w http.ResponseWriter, r *http.Request) {
	h.session.BackToMenu()
	h.writeState(w)
}

// Reset handles POST /session/reset.
func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.session.ResetToWelcome()
	h.writeState(w)
}

// --- Helpers ---

// decodeItem parses a cart item request and maps milk+size to a
// customization. The pair only counts when both are present: a half-specified
// pair is treated as an uncustomized item, same as the kiosk UI.
func (h *SessionHandler) decodeItem(w http.ResponseWriter, r *http.Request) (cartItemRequest, *cart.Customization, bool) {
	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return req, nil, false
	}
	if req.ProductID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "product_id is required"})
		return req, nil, false
	}

	var cust *cart.Customization
	if req.Milk != "" && req.Size != "" {
		if !enum.IsValidMilk(req.Milk) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid milk"})
			return req, nil, false
		}
		if !enum.IsValidSize(req.Size) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid size"})
			return req, nil, false
		}
		cust = &cart.Customization{Milk: req.Milk, Size: req.Size}
	}
	return req, cust, true
}

func (h *SessionHandler) writeCartError(w http.ResponseWriter, err error) {
	if errors.Is(err, catalog.ErrProductNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	log.Printf("ERROR: cart operation: %v", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}

func (h *SessionHandler) writeState(w http.ResponseWriter) {
	state, err := h.session.State()
	if err != nil {
		log.Printf("ERROR: session state: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(state))
}

func toSessionResponse(state session.State) sessionResponse {
	resp := sessionResponse{
		Language: state.Language,
		Screen:   state.Screen,
		Extras: extrasRequest{
			Collagen:    state.Extras.Collagen,
			Ashwagandha: state.Extras.Ashwagandha,
			Honey:       state.Extras.Honey,
		},
		Subtotal:    state.Totals.Subtotal.StringFixed(2),
		ExtrasTotal: state.Totals.ExtrasTotal.StringFixed(2),
		Total:       state.Totals.Total.StringFixed(2),
		Items:       make([]lineItemResponse, len(state.Totals.Lines)),
	}
	if state.OrderNumber != 0 {
		n := state.OrderNumber
		resp.OrderNumber = &n
	}
	for i, lt := range state.Totals.Lines {
		item := lineItemResponse{
			ProductID: lt.Item.ProductID,
			Quantity:  lt.Item.Quantity,
			UnitPrice: lt.UnitPrice.StringFixed(2),
			Total:     lt.Total.StringFixed(2),
		}
		if lt.Item.Customization != nil {
			milk := lt.Item.Customization.Milk
			size := lt.Item.Customization.Size
			item.Milk = &milk
			item.Size = &size
		}
		resp.Items[i] = item
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR: encode response: %v", err)
	}
}
