package contract

import "context"

// DataStore is the persistence contract consumed by the specialists.
// Implementations report missing entities with ErrNotFound and updates
// without usable fields with ErrNoValidFields.
type DataStore interface {
	GetCustomer(ctx context.Context, id int64) (Customer, error)
	ListCustomers(ctx context.Context, status string, limit int) ([]Customer, error)
	UpdateCustomer(ctx context.Context, id int64, fields map[string]string) ([]string, error)
	CreateTicket(ctx context.Context, customerID int64, issue, priority string) (Ticket, error)
	GetHistory(ctx context.Context, customerID int64) (History, error)
	TicketsByPriority(ctx context.Context, priority string, customerIDs []int64) ([]TicketWithCustomer, error)
	CustomersWithOpenTickets(ctx context.Context) ([]CustomerOpenTickets, error)
}

// Specialist processes one task and always answers with a Result
// envelope; it never returns a Go error to the router.
type Specialist interface {
	Process(ctx context.Context, task Task) Result
}
