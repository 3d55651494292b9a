package order

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/matchabar/api/internal/enum"
)

// Store is the in-memory order list the admin dashboard operates on. Orders
// are ephemeral: they live for the process lifetime only. All returned orders
// are deep copies; mutation goes through UpdateStatus.
type Store struct {
	mu     sync.RWMutex
	orders []*Order
}

// NewStore returns an empty order store.
func NewStore() *Store {
	return &Store{}
}

// Add inserts a finalized order.
func (s *Store) Add(o *Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append(s.orders, o.clone())
}

// Get returns the order with the given ID.
func (s *Store) Get(id uuid.UUID) (*Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if o.ID == id {
			return o.clone(), nil
		}
	}
	return nil, ErrNotFound
}

// List returns all orders sorted by creation time descending.
func (s *Store) List() []*Order {
	s.mu.RLock()
	out := s.snapshot(func(*Order) bool { return true })
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// ByStatus returns orders with the given status, preserving insertion order.
func (s *Store) ByStatus(status string) []*Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot(func(o *Order) bool { return o.Status == status })
}

// Active returns everything except completed and cancelled orders.
func (s *Store) Active() []*Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot(func(o *Order) bool { return !IsTerminal(o.Status) })
}

// History returns completed and cancelled orders.
func (s *Store) History() []*Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot(func(o *Order) bool { return IsTerminal(o.Status) })
}

// Today returns orders created on the same calendar day as now, in the local
// time zone of the kiosk process.
func (s *Store) Today(now time.Time) []*Order {
	y, m, d := now.Date()
	startOfDay := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot(func(o *Order) bool { return !o.CreatedAt.Before(startOfDay) })
}

// UpdateStatus transitions an order through the state machine and returns the
// updated copy. Rejected transitions return ErrInvalidTransition (wrapped)
// and leave the order unchanged.
func (s *Store) UpdateStatus(id uuid.UUID, next string, now time.Time) (*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.ID == id {
			if err := o.SetStatus(next, now); err != nil {
				return nil, err
			}
			return o.clone(), nil
		}
	}
	return nil, ErrNotFound
}

// Cancel transitions an order to cancelled.
func (s *Store) Cancel(id uuid.UUID, now time.Time) (*Order, error) {
	return s.UpdateStatus(id, enum.OrderStatusCancelled, now)
}

// snapshot copies matching orders in insertion order. Callers hold s.mu.
func (s *Store) snapshot(keep func(*Order) bool) []*Order {
	var out []*Order
	for _, o := range s.orders {
		if keep(o) {
			out = append(out, o.clone())
		}
	}
	return out
}
