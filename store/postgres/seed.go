package postgres

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
	customerIdx int
	issue       string
	status      string
	priority    string
}

var seedCustomers = []seedCustomer{
	{"Alice Johnson", "alice.johnson@example.com", "555-0101", contractx.CustomerStatusActive},
	{"Bob Smith", "bob.smith@example.com", "555-0102", contractx.CustomerStatusActive},
	{"Carol Williams", "carol.williams@example.com", "555-0103", contractx.CustomerStatusActive},
	{"David Brown", "david.brown@example.com", "555-0104", contractx.CustomerStatusActive},
	{"Eve Davis", "eve.davis@example.com", "555-0105", contractx.CustomerStatusDisabled},
}

var seedTickets = []seedTicket{
	{0, "Cannot log in to account", contractx.TicketStatusOpen, contractx.PriorityHigh},
	{0, "Billing question about last invoice", contractx.TicketStatusClosed, contractx.PriorityLow},
	{1, "Feature request: dark mode", contractx.TicketStatusOpen, contractx.PriorityLow},
	{2, "App crashes on startup", contractx.TicketStatusOpen, contractx.PriorityHigh},
	{2, "Password reset email not received", contractx.TicketStatusOpen, contractx.PriorityMedium},
	{3, "Slow performance on dashboard", contractx.TicketStatusOpen, contractx.PriorityMedium},
}

// Seed loads the demo dataset. It is a no-op when customers already
// exist, so it is safe to call on every startup.
func (s *Store) Seed(ctx context.Context) error {
	count, err := s.db.NewSelect().Model((*customerRow)(nil)).Count(ctx)
	if err != nil {
		return fmt.Errorf("count customers: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	ids := make([]int64, len(seedCustomers))
	for i, c := range seedCustomers {
		row := customerRow{
			Name:      c.name,
			Email:     c.email,
			Phone:     c.phone,
			Status:    c.status,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if _, err := s.db.NewInsert().Model(&row).Exec(ctx); err != nil {
			return fmt.Errorf("seed customer %s: %w", c.name, err)
		}
		ids[i] = row.ID
	}

	for i, t := range seedTickets {
		row := ticketRow{
			CustomerID: ids[t.customerIdx],
			Issue:      t.issue,
			Status:     t.status,
			Priority:   t.priority,
			CreatedAt:  now.Add(time.Duration(i-len(seedTickets)) * time.Minute),
		}
		if _, err := s.db.NewInsert().Model(&row).Exec(ctx); err != nil {
			return fmt.Errorf("seed ticket %q: %w", t.issue, err)
		}
	}
	return nil
}
