// Package postgres provides the Postgres-backed data store for customers
// and tickets, built on bun.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	contractx "github.com/pattarab/supportflow/agent/contract"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

type customerRow struct {
	bun.BaseModel `bun:"table:customers,alias:c"`

	ID        int64     `bun:"id,pk,autoincrement"`
	Name      string    `bun:"name,notnull"`
	Email     string    `bun:"email,notnull"`
	Phone     string    `bun:"phone,notnull,default:''"`
	Status    string    `bun:"status,notnull,default:'active'"`
	CreatedAt time.Time `bun:"created_at,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

type ticketRow struct {
	bun.BaseModel `bun:"table:tickets,alias:t"`

	ID         int64     `bun:"id,pk,autoincrement"`
	CustomerID int64     `bun:"customer_id,notnull"`
	Issue      string    `bun:"issue,notnull"`
	Status     string    `bun:"status,notnull,default:'open'"`
	Priority   string    `bun:"priority,notnull,default:'medium'"`
	CreatedAt  time.Time `bun:"created_at,notnull"`
}

type ticketWithCustomerRow struct {
	ID           int64     `bun:"id"`
	CustomerID   int64     `bun:"customer_id"`
	CustomerName string    `bun:"customer_name"`
	Issue        string    `bun:"issue"`
	Status       string    `bun:"status"`
	Priority     string    `bun:"priority"`
	CreatedAt    time.Time `bun:"created_at"`
}

type openTicketsRow struct {
	ID              int64  `bun:"id"`
	Name            string `bun:"name"`
	Email           string `bun:"email"`
	Status          string `bun:"status"`
	OpenTicketCount int    `bun:"open_ticket_count"`
}

// Store provides access to the supportflow Postgres database.
type Store struct {
	db *bun.DB
}

// New connects with the given DSN and runs migrations.
func New(ctx context.Context, dsn string) (*Store, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("postgres dsn is required")
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())

	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) migrate(ctx context.Context) error {
	if _, err := s.db.NewCreateTable().
		Model((*customerRow)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("create customers: %w", err)
	}
	if _, err := s.db.NewCreateTable().
		Model((*ticketRow)(nil)).
		IfNotExists().
		ForeignKey(`("customer_id") REFERENCES "customers" ("id")`).
		Exec(ctx); err != nil {
		return fmt.Errorf("create tickets: %w", err)
	}
	return nil
}

var updatableFields = []string{"name", "email", "phone", "status"}

func (s *Store) GetCustomer(ctx context.Context, id int64) (contractx.Customer, error) {
	var row customerRow
	err := s.db.NewSelect().
		Model(&row).
		Where("c.id = ?", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return contractx.Customer{}, fmt.Errorf("%w: customer %d", contractx.ErrNotFound, id)
	}
	if err != nil {
		return contractx.Customer{}, fmt.Errorf("%w: query customer: %v", contractx.ErrUpstream, err)
	}
	return toCustomer(row), nil
}

func (s *Store) ListCustomers(ctx context.Context, status string, limit int) ([]contractx.Customer, error) {
	var rows []customerRow
	q := s.db.NewSelect().Model(&rows)
	if status != "" {
		q = q.Where("c.status = ?", status)
	}
	if err := q.Limit(limit).Scan(ctx); err != nil {
		return nil, fmt.Errorf("%w: query customers: %v", contractx.ErrUpstream, err)
	}

	customers := make([]contractx.Customer, 0, len(rows))
	for _, row := range rows {
		customers = append(customers, toCustomer(row))
	}
	return customers, nil
}

func (s *Store) UpdateCustomer(ctx context.Context, id int64, fields map[string]string) ([]string, error) {
	if err := s.customerExists(ctx, id); err != nil {
		return nil, err
	}

	q := s.db.NewUpdate().Model((*customerRow)(nil))
	var updated []string
	for _, field := range updatableFields {
		value, ok := fields[field]
		if !ok {
			continue
		}
		q = q.Set("? = ?", bun.Ident(field), value)
		updated = append(updated, field)
	}
	if len(updated) == 0 {
		return nil, contractx.ErrNoValidFields
	}

	q = q.Set("updated_at = ?", time.Now().UTC()).Where("id = ?", id)
	if _, err := q.Exec(ctx); err != nil {
		return nil, fmt.Errorf("%w: update customer: %v", contractx.ErrUpstream, err)
	}
	return updated, nil
}

func (s *Store) CreateTicket(ctx context.Context, customerID int64, issue, priority string) (contractx.Ticket, error) {
	if err := s.customerExists(ctx, customerID); err != nil {
		return contractx.Ticket{}, err
	}

	row := ticketRow{
		CustomerID: customerID,
		Issue:      issue,
		Status:     contractx.TicketStatusOpen,
		Priority:   priority,
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := s.db.NewInsert().Model(&row).Exec(ctx); err != nil {
		return contractx.Ticket{}, fmt.Errorf("%w: insert ticket: %v", contractx.ErrUpstream, err)
	}

	return contractx.Ticket{
		ID:         row.ID,
		CustomerID: row.CustomerID,
		Issue:      row.Issue,
		Status:     row.Status,
		Priority:   row.Priority,
		CreatedAt:  row.CreatedAt,
	}, nil
}

func (s *Store) GetHistory(ctx context.Context, customerID int64) (contractx.History, error) {
	var customer customerRow
	err := s.db.NewSelect().
		Model(&customer).
		Column("c.id", "c.name").
		Where("c.id = ?", customerID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return contractx.History{}, fmt.Errorf("%w: customer %d", contractx.ErrNotFound, customerID)
	}
	if err != nil {
		return contractx.History{}, fmt.Errorf("%w: query customer: %v", contractx.ErrUpstream, err)
	}

	var rows []ticketRow
	if err := s.db.NewSelect().
		Model(&rows).
		Where("t.customer_id = ?", customerID).
		OrderExpr("t.created_at DESC, t.id DESC").
		Scan(ctx); err != nil {
		return contractx.History{}, fmt.Errorf("%w: query tickets: %v", contractx.ErrUpstream, err)
	}

	history := contractx.History{CustomerID: customerID, CustomerName: customer.Name}
	for _, row := range rows {
		history.Tickets = append(history.Tickets, toTicket(row))
	}
	return history, nil
}

func (s *Store) TicketsByPriority(ctx context.Context, priority string, customerIDs []int64) ([]contractx.TicketWithCustomer, error) {
	var rows []ticketWithCustomerRow
	q := s.db.NewSelect().
		TableExpr("tickets AS t").
		Join("JOIN customers AS c ON t.customer_id = c.id").
		ColumnExpr("t.id, t.customer_id, c.name AS customer_name").
		ColumnExpr("t.issue, t.status, t.priority, t.created_at").
		Where("t.priority = ?", priority)
	if len(customerIDs) > 0 {
		q = q.Where("t.customer_id IN (?)", bun.In(customerIDs))
	}
	if err := q.OrderExpr("t.created_at DESC, t.id DESC").Scan(ctx, &rows); err != nil {
		return nil, fmt.Errorf("%w: query tickets: %v", contractx.ErrUpstream, err)
	}

	tickets := make([]contractx.TicketWithCustomer, 0, len(rows))
	for _, row := range rows {
		tickets = append(tickets, contractx.TicketWithCustomer{
			Ticket: contractx.Ticket{
				ID:         row.ID,
				CustomerID: row.CustomerID,
				Issue:      row.Issue,
				Status:     row.Status,
				Priority:   row.Priority,
				CreatedAt:  row.CreatedAt,
			},
			CustomerName: row.CustomerName,
		})
	}
	return tickets, nil
}

func (s *Store) CustomersWithOpenTickets(ctx context.Context) ([]contractx.CustomerOpenTickets, error) {
	var rows []openTicketsRow
	err := s.db.NewSelect().
		TableExpr("customers AS c").
		Join("JOIN tickets AS t ON c.id = t.customer_id").
		ColumnExpr("c.id, c.name, c.email, c.status").
		ColumnExpr("COUNT(t.id) AS open_ticket_count").
		Where("c.status = ?", contractx.CustomerStatusActive).
		Where("t.status = ?", contractx.TicketStatusOpen).
		GroupExpr("c.id, c.name, c.email, c.status").
		OrderExpr("open_ticket_count DESC, c.id ASC").
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("%w: query open tickets: %v", contractx.ErrUpstream, err)
	}

	customers := make([]contractx.CustomerOpenTickets, 0, len(rows))
	for _, row := range rows {
		customers = append(customers, contractx.CustomerOpenTickets{
			ID:              row.ID,
			Name:            row.Name,
			Email:           row.Email,
			Status:          row.Status,
			OpenTicketCount: row.OpenTicketCount,
		})
	}
	return customers, nil
}

func (s *Store) customerExists(ctx context.Context, id int64) error {
	exists, err := s.db.NewSelect().
		Model((*customerRow)(nil)).
		Where("c.id = ?", id).
		Exists(ctx)
	if err != nil {
		return fmt.Errorf("%w: query customer: %v", contractx.ErrUpstream, err)
	}
	if !exists {
		return fmt.Errorf("%w: customer %d", contractx.ErrNotFound, id)
	}
	return nil
}

func toCustomer(row customerRow) contractx.Customer {
	return contractx.Customer{
		ID:        row.ID,
		Name:      row.Name,
		Email:     row.Email,
		Phone:     row.Phone,
		Status:    row.Status,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func toTicket(row ticketRow) contractx.Ticket {
	return contractx.Ticket{
		ID:         row.ID,
		CustomerID: row.CustomerID,
		Issue:      row.Issue,
		Status:     row.Status,
		Priority:   row.Priority,
		CreatedAt:  row.CreatedAt,
	}
}
