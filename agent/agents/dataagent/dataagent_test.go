package dataagent

import (
	"context"
	"fmt"
	"testing"
	"time"

	contractx "github.com/pattarab/supportflow/agent/contract"
	tracex "github.com/pattarab/supportflow/agent/trace"
)

type fakeStore struct {
	customers map[int64]contractx.Customer
	histories map[int64]contractx.History
	open      []contractx.CustomerOpenTickets

	updateErr error
	listLimit int
	updates   []map[string]string
}

func (f *fakeStore) GetCustomer(ctx context.Context, id int64) (contractx.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return contractx.Customer{}, fmt.Errorf("%w: customer %d", contractx.ErrNotFound, id)
	}
	return c, nil
}

func (f *fakeStore) ListCustomers(ctx context.Context, status string, limit int) ([]contractx.Customer, error) {
	f.listLimit = limit
	var out []contractx.Customer
	for _, c := range f.customers {
		if status == "" || c.Status == status {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateCustomer(ctx context.Context, id int64, fields map[string]string) ([]string, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if _, ok := f.customers[id]; !ok {
		return nil, fmt.Errorf("%w: customer %d", contractx.ErrNotFound, id)
	}
	f.updates = append(f.updates, fields)
	var names []string
	for k := range fields {
		names = append(names, k)
	}
	return names, nil
}

func (f *fakeStore) CreateTicket(ctx context.Context, customerID int64, issue, priority string) (contractx.Ticket, error) {
	return contractx.Ticket{ID: 1, CustomerID: customerID, Issue: issue, Status: contractx.TicketStatusOpen, Priority: priority}, nil
}

func (f *fakeStore) GetHistory(ctx context.Context, customerID int64) (contractx.History, error) {
	h, ok := f.histories[customerID]
	if !ok {
		return contractx.History{}, fmt.Errorf("%w: customer %d", contractx.ErrNotFound, customerID)
	}
	return h, nil
}

func (f *fakeStore) TicketsByPriority(ctx context.Context, priority string, customerIDs []int64) ([]contractx.TicketWithCustomer, error) {
	return nil, nil
}

func (f *fakeStore) CustomersWithOpenTickets(ctx context.Context) ([]contractx.CustomerOpenTickets, error) {
	return f.open, nil
}

type bogusTask struct{}

func (bogusTask) Action() contractx.Action { return contractx.Action("bogus") }

func newTestAgent(t *testing.T, store contractx.DataStore) (*Agent, *tracex.Trace) {
	t.Helper()
	tr := tracex.New()
	a, err := New(store, tr)
	if err != nil {
		t.Fatalf("new agent: %v", err)
	}
	return a, tr
}

func TestGetCustomer(t *testing.T) {
	t.Parallel()

	store := &fakeStore{customers: map[int64]contractx.Customer{
		5: {ID: 5, Name: "Alice Johnson", Status: contractx.CustomerStatusActive, CreatedAt: time.Now()},
	}}
	agent, tr := newTestAgent(t, store)

	res := agent.Process(context.Background(), contractx.GetCustomerTask{CustomerID: 5})
	if !res.Success {
		t.Fatalf("unexpected failure: %s", res.Error)
	}
	customer, ok := res.Payload["customer"].(contractx.Customer)
	if !ok || customer.Name != "Alice Johnson" {
		t.Fatalf("unexpected payload: %+v", res.Payload)
	}
	if tr.Len() < 2 {
		t.Fatalf("expected trace entries, got %d", tr.Len())
	}
}

func TestGetCustomerNotFound(t *testing.T) {
	t.Parallel()

	agent, tr := newTestAgent(t, &fakeStore{customers: map[int64]contractx.Customer{}})

	res := agent.Process(context.Background(), contractx.GetCustomerTask{CustomerID: 99})
	if res.Success {
		t.Fatal("expected failure")
	}
	if res.Payload != nil {
		t.Fatalf("failure must not carry payload: %+v", res.Payload)
	}

	var sawError bool
	for _, e := range tr.Entries() {
		if e.Level == tracex.LevelError {
			sawError = true
		}
	}
	if !sawError {
		t.Fatal("expected an error trace entry")
	}
}

func TestListCustomersDefaultLimit(t *testing.T) {
	t.Parallel()

	store := &fakeStore{customers: map[int64]contractx.Customer{}}
	agent, _ := newTestAgent(t, store)

	res := agent.Process(context.Background(), contractx.ListCustomersTask{})
	if !res.Success {
		t.Fatalf("unexpected failure: %s", res.Error)
	}
	if store.listLimit != 10 {
		t.Fatalf("expected default limit 10, got %d", store.listLimit)
	}
}

func TestGetHistoryPayload(t *testing.T) {
	t.Parallel()

	store := &fakeStore{histories: map[int64]contractx.History{
		4: {
			CustomerID:   4,
			CustomerName: "David Brown",
			Tickets: []contractx.Ticket{
				{ID: 6, CustomerID: 4, Issue: "Slow performance on dashboard", Status: contractx.TicketStatusOpen},
			},
		},
	}}
	agent, _ := newTestAgent(t, store)

	res := agent.Process(context.Background(), contractx.CustomerHistoryTask{CustomerID: 4})
	if !res.Success {
		t.Fatalf("unexpected failure: %s", res.Error)
	}
	if res.Payload["customer_name"] != "David Brown" {
		t.Fatalf("unexpected customer_name: %v", res.Payload["customer_name"])
	}
	if res.Payload["ticket_count"] != 1 {
		t.Fatalf("unexpected ticket_count: %v", res.Payload["ticket_count"])
	}
}

func TestUnknownTaskFails(t *testing.T) {
	t.Parallel()

	agent, _ := newTestAgent(t, &fakeStore{})

	res := agent.Process(context.Background(), bogusTask{})
	if res.Success {
		t.Fatal("expected failure for unknown action")
	}
}
