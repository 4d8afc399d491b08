package sqlite

import (
	"context"
	"fmt"
	"time"

	contractx "github.com/pattarab/supportflow/agent/contract"
)

type seedCustomer struct {
	name   string
	email  string
	phone  string
	status string
}

type seedTicket struct {
	customerID int64
	issue      string
	status     string
	priority   string
}

var seedCustomers = []seedCustomer{
	{"Alice Johnson", "alice.johnson@example.com", "555-0101", contractx.CustomerStatusActive},
	{"Bob Smith", "bob.smith@example.com", "555-0102", contractx.CustomerStatusActive},
	{"Carol Williams", "carol.williams@example.com", "555-0103", contractx.CustomerStatusActive},
	{"David Brown", "david.brown@example.com", "555-0104", contractx.CustomerStatusActive},
	{"Eve Davis", "eve.davis@example.com", "555-0105", contractx.CustomerStatusDisabled},
}

var seedTickets = []seedTicket{
	{1, "Cannot log in to account", contractx.TicketStatusOpen, contractx.PriorityHigh},
	{1, "Billing question about last invoice", contractx.TicketStatusClosed, contractx.PriorityLow},
	{2, "Feature request: dark mode", contractx.TicketStatusOpen, contractx.PriorityLow},
	{3, "App crashes on startup", contractx.TicketStatusOpen, contractx.PriorityHigh},
	{3, "Password reset email not received", contractx.TicketStatusOpen, contractx.PriorityMedium},
	{4, "Slow performance on dashboard", contractx.TicketStatusOpen, contractx.PriorityMedium},
}

// Seed loads the demo dataset. It is a no-op when customers already
// exist, so it is safe to call on every startup.
func (s *Store) Seed(ctx context.Context) error {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers`).Scan(&count); err != nil {
		return fmt.Errorf("count customers: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	for _, c := range seedCustomers {
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO customers (name, email, phone, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
			c.name, c.email, c.phone, c.status, now, now,
		); err != nil {
			return fmt.Errorf("seed customer %s: %w", c.name, err)
		}
	}
	for i, t := range seedTickets {
		// Stagger creation times so newest-first ordering is stable.
		createdAt := now.Add(time.Duration(i-len(seedTickets)) * time.Minute)
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO tickets (customer_id, issue, status, priority, created_at) VALUES (?, ?, ?, ?, ?)`,
			t.customerID, t.issue, t.status, t.priority, createdAt,
		); err != nil {
			return fmt.Errorf("seed ticket %q: %w", t.issue, err)
		}
	}
	return nil
}
