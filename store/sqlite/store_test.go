package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	contractx "github.com/pattarab/supportflow/agent/contract"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(filepath.Join(t.TempDir(), "support.db"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	if err := s.Seed(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return s
}

func TestGetCustomer(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	c, err := s.GetCustomer(ctx, 1)
	if err != nil {
		t.Fatalf("get customer: %v", err)
	}
	if c.Name != "Alice Johnson" || c.Status != contractx.CustomerStatusActive {
		t.Fatalf("unexpected customer: %+v", c)
	}

	_, err = s.GetCustomer(ctx, 99)
	if !errors.Is(err, contractx.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListCustomers(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	all, err := s.ListCustomers(ctx, "", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("expected 5 customers, got %d", len(all))
	}

	disabled, err := s.ListCustomers(ctx, contractx.CustomerStatusDisabled, 10)
	if err != nil {
		t.Fatalf("list disabled: %v", err)
	}
	if len(disabled) != 1 || disabled[0].Name != "Eve Davis" {
		t.Fatalf("unexpected disabled customers: %+v", disabled)
	}

	limited, err := s.ListCustomers(ctx, "", 2)
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("expected 2 customers, got %d", len(limited))
	}
}

func TestUpdateCustomer(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	updated, err := s.UpdateCustomer(ctx, 4, map[string]string{
		"email":   "newemail@test.com",
		"ignored": "value",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(updated) != 1 || updated[0] != "email" {
		t.Fatalf("unexpected updated fields: %v", updated)
	}

	c, err := s.GetCustomer(ctx, 4)
	if err != nil {
		t.Fatalf("get customer: %v", err)
	}
	if c.Email != "newemail@test.com" {
		t.Fatalf("email not updated: %s", c.Email)
	}

	if _, err := s.UpdateCustomer(ctx, 4, map[string]string{"ignored": "x"}); !errors.Is(err, contractx.ErrNoValidFields) {
		t.Fatalf("expected ErrNoValidFields, got %v", err)
	}
	if _, err := s.UpdateCustomer(ctx, 99, map[string]string{"email": "a@b.c"}); !errors.Is(err, contractx.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateTicket(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	ticket, err := s.CreateTicket(ctx, 2, "Cannot export data", contractx.PriorityHigh)
	if err != nil {
		t.Fatalf("create ticket: %v", err)
	}
	if ticket.ID == 0 || ticket.Status != contractx.TicketStatusOpen || ticket.Priority != contractx.PriorityHigh {
		t.Fatalf("unexpected ticket: %+v", ticket)
	}

	if _, err := s.CreateTicket(ctx, 99, "x", contractx.PriorityLow); !errors.Is(err, contractx.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetHistoryNewestFirst(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	h, err := s.GetHistory(ctx, 3)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if h.CustomerName != "Carol Williams" {
		t.Fatalf("unexpected customer name: %s", h.CustomerName)
	}
	if len(h.Tickets) != 2 {
		t.Fatalf("expected 2 tickets, got %d", len(h.Tickets))
	}
	if h.Tickets[0].CreatedAt.Before(h.Tickets[1].CreatedAt) {
		t.Fatal("tickets not ordered newest first")
	}

	if _, err := s.GetHistory(ctx, 99); !errors.Is(err, contractx.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTicketsByPriority(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	high, err := s.TicketsByPriority(ctx, contractx.PriorityHigh, nil)
	if err != nil {
		t.Fatalf("tickets by priority: %v", err)
	}
	if len(high) != 2 {
		t.Fatalf("expected 2 high tickets, got %d", len(high))
	}
	for _, ticket := range high {
		if ticket.CustomerName == "" {
			t.Fatalf("missing customer name: %+v", ticket)
		}
	}

	filtered, err := s.TicketsByPriority(ctx, contractx.PriorityHigh, []int64{3})
	if err != nil {
		t.Fatalf("filtered tickets: %v", err)
	}
	if len(filtered) != 1 || filtered[0].CustomerID != 3 {
		t.Fatalf("unexpected filtered tickets: %+v", filtered)
	}
}

func TestCustomersWithOpenTickets(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	customers, err := s.CustomersWithOpenTickets(ctx)
	if err != nil {
		t.Fatalf("open tickets: %v", err)
	}
	if len(customers) != 4 {
		t.Fatalf("expected 4 customers, got %d", len(customers))
	}
	// Carol has two open tickets and sorts first.
	if customers[0].ID != 3 || customers[0].OpenTicketCount != 2 {
		t.Fatalf("unexpected top customer: %+v", customers[0])
	}
	for _, c := range customers {
		if c.Status != contractx.CustomerStatusActive {
			t.Fatalf("inactive customer returned: %+v", c)
		}
	}
}
