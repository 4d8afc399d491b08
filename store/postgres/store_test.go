package postgres

import (
	"context"
	"errors"
	"os"
	"testing"

	contractx "github.com/pattarab/supportflow/agent/contract"
)

// Tests run only against a real database, selected with
// SUPPORTFLOW_TEST_POSTGRES_DSN.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := os.Getenv("SUPPORTFLOW_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("SUPPORTFLOW_TEST_POSTGRES_DSN not set")
	}

	ctx := context.Background()
	s, err := New(ctx, dsn)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCustomerRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.GetCustomer(ctx, -1)
	if !errors.Is(err, contractx.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	customers, err := s.ListCustomers(ctx, "", 5)
	if err != nil {
		t.Fatalf("list customers: %v", err)
	}
	if len(customers) > 5 {
		t.Fatalf("limit not applied: %d", len(customers))
	}
}

func TestUpdateCustomerRejectsUnknownFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	customers, err := s.ListCustomers(ctx, "", 1)
	if err != nil || len(customers) == 0 {
		t.Skipf("no customers available: %v", err)
	}

	_, err = s.UpdateCustomer(ctx, customers[0].ID, map[string]string{"unknown": "x"})
	if !errors.Is(err, contractx.ErrNoValidFields) {
		t.Fatalf("expected ErrNoValidFields, got %v", err)
	}
}
