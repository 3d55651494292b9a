package order

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/matchabar/api/internal/enum"
	"github.com/matchabar/api/internal/pricing"
	"github.com/shopspring/decimal"
)

func storeWith(t *testing.T, n int, base time.Time) (*Store, []*Order) {
	t.Helper()
	s := NewStore()
	orders := make([]*Order, n)
	for i := 0; i < n; i++ {
		o := New(100+i, nil, pricing.Extras{}, decimal.Zero, decimal.Zero, decimal.Zero, base.Add(time.Duration(i)*time.Minute))
		orders[i] = o
		s.Add(o)
	}
	return s, orders
}

func TestStoreGet(t *testing.T) {
	s, orders := storeWith(t, 3, time.Now())

	got, err := s.Get(orders[1].ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Number != orders[1].Number {
		t.Errorf("expected order %d, got %d", orders[1].Number, got.Number)
	}

	_, err = s.Get(uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreListSortedByCreationDesc(t *testing.T) {
	s, _ := storeWith(t, 4, time.Now())

	list := s.List()
	if len(list) != 4 {
		t.Fatalf("expected 4 orders, got %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i].CreatedAt.After(list[i-1].CreatedAt) {
			t.Errorf("list not sorted descending at index %d", i)
		}
	}
}

func TestStoreViews(t *testing.T) {
	now := time.Now()
	s, orders := storeWith(t, 5, now)

	// orders[0]: completed, orders[1]: cancelled, orders[2]: preparing
	mustUpdate(t, s, orders[0].ID, enum.OrderStatusPreparing, now)
	mustUpdate(t, s, orders[0].ID, enum.OrderStatusReady, now)
	mustUpdate(t, s, orders[0].ID, enum.OrderStatusCompleted, now)
	if _, err := s.Cancel(orders[1].ID, now); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	mustUpdate(t, s, orders[2].ID, enum.OrderStatusPreparing, now)

	if got := len(s.Active()); got != 3 {
		t.Errorf("expected 3 active orders, got %d", got)
	}
	if got := len(s.History()); got != 2 {
		t.Errorf("expected 2 history orders, got %d", got)
	}
	if got := len(s.ByStatus(enum.OrderStatusPreparing)); got != 1 {
		t.Errorf("expected 1 preparing order, got %d", got)
	}
	if got := len(s.ByStatus(enum.OrderStatusPending)); got != 2 {
		t.Errorf("expected 2 pending orders, got %d", got)
	}
}

func TestStoreViewsPreserveInsertionOrder(t *testing.T) {
	s, orders := storeWith(t, 3, time.Now())

	active := s.Active()
	for i := range orders {
		if active[i].ID != orders[i].ID {
			t.Fatalf("active view reordered orders at index %d", i)
		}
	}
}

func TestStoreToday(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	s := NewStore()

	yesterday := New(1, nil, pricing.Extras{}, decimal.Zero, decimal.Zero, decimal.Zero, now.Add(-24*time.Hour))
	midnight := New(2, nil, pricing.Extras{}, decimal.Zero, decimal.Zero, decimal.Zero, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC))
	thisMorning := New(3, nil, pricing.Extras{}, decimal.Zero, decimal.Zero, decimal.Zero, now.Add(-2*time.Hour))
	s.Add(yesterday)
	s.Add(midnight)
	s.Add(thisMorning)

	today := s.Today(now)
	if len(today) != 2 {
		t.Fatalf("expected 2 orders today, got %d", len(today))
	}
	for _, o := range today {
		if o.Number == 1 {
			t.Error("yesterday's order included in today view")
		}
	}
}

func TestStoreUpdateStatus(t *testing.T) {
	now := time.Now()
	s, orders := storeWith(t, 1, now)

	updated, err := s.UpdateStatus(orders[0].ID, enum.OrderStatusPreparing, now.Add(time.Minute))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != enum.OrderStatusPreparing {
		t.Errorf("expected preparing, got %s", updated.Status)
	}
	if len(updated.History) != 2 {
		t.Errorf("expected 2 history entries, got %d", len(updated.History))
	}

	// Invalid transition must not mutate the stored order.
	_, err = s.UpdateStatus(orders[0].ID, enum.OrderStatusCompleted, now.Add(2*time.Minute))
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	current, err := s.Get(orders[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if current.Status != enum.OrderStatusPreparing || len(current.History) != 2 {
		t.Errorf("stored order mutated by rejected transition: %+v", current)
	}
}

func TestStoreUpdateStatusNotFound(t *testing.T) {
	s := NewStore()
	_, err := s.UpdateStatus(uuid.New(), enum.OrderStatusPreparing, time.Now())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreReturnsCopies(t *testing.T) {
	s, orders := storeWith(t, 1, time.Now())

	got, err := s.Get(orders[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	got.Status = enum.OrderStatusCancelled
	got.History = append(got.History, StatusEntry{Status: enum.OrderStatusCancelled, Timestamp: time.Now()})

	fresh, err := s.Get(orders[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fresh.Status != enum.OrderStatusPending || len(fresh.History) != 1 {
		t.Error("mutating a returned order leaked into the store")
	}
}

func mustUpdate(t *testing.T, s *Store, id uuid.UUID, status string, now time.Time) {
	t.Helper()
	if _, err := s.UpdateStatus(id, status, now); err != nil {
		t.Fatalf("update to %s: %v", status, err)
	}
}
