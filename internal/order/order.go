// Package order owns the post-checkout order model: immutable line-item
// snapshots, the status state machine, and the in-memory store the admin
// dashboard works against.
package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/matchabar/api/internal/enum"
	"github.com/matchabar/api/internal/pricing"
	"github.com/shopspring/decimal"
)

// Errors returned by order operations.
var (
	ErrNotFound          = errors.New("order not found")
	ErrUnknownStatus     = errors.New("unknown order status")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// StatusEntry is one append-only audit record: the status an order entered
// and when. History is never mutated or reordered.
type StatusEntry struct {
	Status    string
	Timestamp time.Time
}

// LineItem is a snapshot of a cart line taken at checkout. It owns its data
// outright (including the display name resolved in the shopper's language)
// so historical orders stay stable when catalog prices or names change.
type LineItem struct {
	ProductID   string
	ProductName string
	Quantity    int
	Milk        string // empty for uncustomized items
	Size        string // empty for uncustomized items
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// Order is a finalized checkout. Monetary fields and item snapshots are
// fixed at creation; only the status fields move, and only through SetStatus.
type Order struct {
	ID          uuid.UUID
	Number      int
	Items       []LineItem
	Extras      pricing.Extras
	ExtrasTotal decimal.Decimal
	Subtotal    decimal.Decimal
	Total       decimal.Decimal
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time
	History     []StatusEntry
}

// New creates a pending order with a single-entry status history.
func New(number int, items []LineItem, extras pricing.Extras, subtotal, extrasTotal, total decimal.Decimal, now time.Time) *Order {
	return &Order{
		ID:          uuid.New(),
		Number:      number,
		Items:       items,
		Extras:      extras,
		ExtrasTotal: extrasTotal,
		Subtotal:    subtotal,
		Total:       total,
		Status:      enum.OrderStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
		History:     []StatusEntry{{Status: enum.OrderStatusPending, Timestamp: now}},
	}
}

// IsValidStatus reports whether s is a known order status.
func IsValidStatus(s string) bool {
	switch s {
	case enum.OrderStatusPending, enum.OrderStatusPreparing, enum.OrderStatusReady,
		enum.OrderStatusCompleted, enum.OrderStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether s is a terminal status.
func IsTerminal(s string) bool {
	return s == enum.OrderStatusCompleted || s == enum.OrderStatusCancelled
}

// allowedTransitions defines valid status transitions. Key is current status,
// value is the set of statuses it can transition to. Terminal statuses have
// no entry: nothing leaves them.
var allowedTransitions = map[string][]string{
	enum.OrderStatusPending:   {enum.OrderStatusPreparing, enum.OrderStatusCancelled},
	enum.OrderStatusPreparing: {enum.OrderStatusReady, enum.OrderStatusCancelled},
	enum.OrderStatusReady:     {enum.OrderStatusCompleted, enum.OrderStatusCancelled},
}

// ValidateTransition checks whether moving from current to next is allowed.
func ValidateTransition(current, next string) error {
	allowed, ok := allowedTransitions[current]
	if !ok {
		return fmt.Errorf("%w: cannot transition from %s", ErrInvalidTransition, current)
	}
	for _, s := range allowed {
		if s == next {
			return nil
		}
	}
	return fmt.Errorf("%w: cannot transition from %s to %s", ErrInvalidTransition, current, next)
}

// SetStatus advances the order to next at the given time: it validates the
// transition, appends a history entry, bumps UpdatedAt, and stamps
// CompletedAt/CancelledAt on first entry into a terminal status. Rejected
// transitions leave the order untouched.
func (o *Order) SetStatus(next string, now time.Time) error {
	if !IsValidStatus(next) {
		return fmt.Errorf("%w: %s", ErrUnknownStatus, next)
	}
	if err := ValidateTransition(o.Status, next); err != nil {
		return err
	}

	o.Status = next
	o.UpdatedAt = now
	o.History = append(o.History, StatusEntry{Status: next, Timestamp: now})

	// Terminal states are unreachable once entered, so these stamps are
	// written exactly once.
	switch next {
	case enum.OrderStatusCompleted:
		t := now
		o.CompletedAt = &t
	case enum.OrderStatusCancelled:
		t := now
		o.CancelledAt = &t
	}
	return nil
}

// clone returns a deep copy safe to hand outside the store.
func (o *Order) clone() *Order {
	cp := *o
	cp.Items = make([]LineItem, len(o.Items))
	copy(cp.Items, o.Items)
	cp.History = make([]StatusEntry, len(o.History))
	copy(cp.History, o.History)
	if o.CompletedAt != nil {
		t := *o.CompletedAt
		cp.CompletedAt = &t
	}
	if o.CancelledAt != nil {
		t := *o.CancelledAt
		cp.CancelledAt = &t
	}
	return &cp
}
