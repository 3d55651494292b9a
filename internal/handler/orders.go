package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/matchabar/api/internal/enum"
	"github.com/matchabar/api/internal/order"
)

// OrderStore defines the order store methods needed by admin handlers.
// Satisfied by *order.Store; narrow interface for testability.
type OrderStore interface {
	List() []*order.Order
	ByStatus(status string) []*order.Order
	Active() []*order.Order
	History() []*order.Order
	Today(now time.Time) []*order.Order
	Get(id uuid.UUID) (*order.Order, error)
	UpdateStatus(id uuid.UUID, next string, now time.Time) (*order.Order, error)
	Cancel(id uuid.UUID, now time.Time) (*order.Order, error)
}

// OrderHandler handles the admin dashboard's order endpoints.
type OrderHandler struct {
	store OrderStore
	hub   Broadcaster
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(store OrderStore, hub Broadcaster) *OrderHandler {
	return &OrderHandler{store: store, hub: hub}
}

// RegisterRoutes registers order endpoints on the given Chi router.
// Expected to be mounted at /orders.
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}/status", h.UpdateStatus)
	r.Delete("/{id}", h.Cancel)
}

// --- Request / Response types ---

type updateStatusRequest struct {
	Status string `json:"status"`
}

type adminOrderItemResponse struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Milk        *string `json:"milk"`
	Size        *string `json:"size"`
	UnitPrice   string  `json:"unit_price"`
	Subtotal    string  `json:"subtotal"`
}

type statusEntryResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type adminOrderResponse struct {
	ID            uuid.UUID                `json:"id"`
	OrderNumber   int                      `json:"order_number"`
	Items         []adminOrderItemResponse `json:"items"`
	Extras        extrasRequest            `json:"extras"`
	ExtrasTotal   string                   `json:"extras_total"`
	Subtotal      string                   `json:"subtotal"`
	Total         string                   `json:"total"`
	Status        string                   `json:"status"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
	CompletedAt   *time.Time               `json:"completed_at"`
	CancelledAt   *time.Time               `json:"cancelled_at"`
	StatusHistory []statusEntryResponse    `json:"status_history"`
}

type orderListResponse struct {
	Orders []adminOrderResponse `json:"orders"`
}

// --- Handlers ---

// List handles GET /orders. Supports ?status= for a single status and
// ?view=active|history|today for the dashboard's canned filters.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	var orders []*order.Order

	status := r.URL.Query().Get("status")
	view := r.URL.Query().Get("view")
	switch {
	case status != "":
		if !order.IsValidStatus(status) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status"})
			return
		}
		orders = h.store.ByStatus(status)
	case view == "active":
		orders = h.store.Active()
	case view == "history":
		orders = h.store.History()
	case view == "today":
		orders = h.store.Today(time.Now())
	case view == "":
		orders = h.store.List()
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid view"})
		return
	}

	resp := make([]adminOrderResponse, len(orders))
	for i, o := range orders {
		resp[i] = toAdminOrderResponse(o)
	}
	writeJSON(w, http.StatusOK, orderListResponse{Orders: resp})
}

// Get handles GET /orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	o, err := h.store.Get(id)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		log.Printf("ERROR: get order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toAdminOrderResponse(o))
}

// UpdateStatus handles PATCH /orders/{id}/status.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Status == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "status is required"})
		return
	}
	if !order.IsValidStatus(req.Status) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status"})
		return
	}

	updated, err := h.store.UpdateStatus(id, req.Status, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, order.ErrNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
		case errors.Is(err, order.ErrInvalidTransition):
			writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		default:
			log.Printf("ERROR: update order status: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		}
		return
	}

	h.hub.Broadcast("order.updated", toAdminOrderResponse(updated))
	writeJSON(w, http.StatusOK, toAdminOrderResponse(updated))
}

// Cancel handles DELETE /orders/{id}.
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	cancelled, err := h.store.Cancel(id, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, order.ErrNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
		case errors.Is(err, order.ErrInvalidTransition):
			// Give a more specific message for terminal orders.
			current, fetchErr := h.store.Get(id)
			if fetchErr == nil && current.Status == enum.OrderStatusCompleted {
				writeJSON(w, http.StatusConflict, map[string]string{"error": "cannot cancel a completed order"})
				return
			}
			if fetchErr == nil && current.Status == enum.OrderStatusCancelled {
				writeJSON(w, http.StatusConflict, map[string]string{"error": "order is already cancelled"})
				return
			}
			writeJSON(w, http.StatusConflict, map[string]string{"error": "order cannot be cancelled"})
		default:
			log.Printf("ERROR: cancel order: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		}
		return
	}

	h.hub.Broadcast("order.updated", toAdminOrderResponse(cancelled))
	writeJSON(w, http.StatusOK, toAdminOrderResponse(cancelled))
}

// --- Helpers ---

func toAdminOrderResponse(o *order.Order) adminOrderResponse {
	resp := adminOrderResponse{
		ID:          o.ID,
		OrderNumber: o.Number,
		Extras: extrasRequest{
			Collagen:    o.Extras.Collagen,
			Ashwagandha: o.Extras.Ashwagandha,
			Honey:       o.Extras.Honey,
		},
		ExtrasTotal: o.ExtrasTotal.StringFixed(2),
		Subtotal:    o.Subtotal.StringFixed(2),
		Total:       o.Total.StringFixed(2),
		Status:      o.Status,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
		CompletedAt: o.CompletedAt,
		CancelledAt: o.CancelledAt,
	}

	resp.Items = make([]adminOrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		ir := adminOrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			Subtotal:    item.Subtotal.StringFixed(2),
		}
		if item.Milk != "" {
			milk := item.Milk
			size := item.Size
			ir.Milk = &milk
			ir.Size = &size
		}
		resp.Items[i] = ir
	}

	resp.StatusHistory = make([]statusEntryResponse, len(o.History))
	for i, e := range o.History {
		resp.StatusHistory[i] = statusEntryResponse{Status: e.Status, Timestamp: e.Timestamp}
	}
	return resp
}
