// Package sqlite provides the SQLite-backed data store for customers and
// tickets.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	contractx "github.com/pattarab/supportflow/agent/contract"
	_ "modernc.org/sqlite"
)

// Store provides access to the supportflow SQLite database.
type Store struct {
	db *sql.DB
}

// New creates a new Store and runs migrations.
func New(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS customers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'active',
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS tickets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		customer_id INTEGER NOT NULL,
		issue TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'open',
		priority TEXT NOT NULL DEFAULT 'medium',
		created_at DATETIME NOT NULL,
		FOREIGN KEY (customer_id) REFERENCES customers(id)
	);

	CREATE INDEX IF NOT EXISTS idx_tickets_customer_id ON tickets(customer_id);
	CREATE INDEX IF NOT EXISTS idx_tickets_status ON tickets(status);
	CREATE INDEX IF NOT EXISTS idx_tickets_priority ON tickets(priority);
	`

	_, err := s.db.Exec(schema)
	return err
}

// updatableFields fixes the set and order of customer columns an update
// may touch.
var updatableFields = []string{"name", "email", "phone", "status"}

func (s *Store) GetCustomer(ctx context.Context, id int64) (contractx.Customer, error) {
	var c contractx.Customer
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, phone, status, created_at, updated_at FROM customers WHERE id = ?`,
		id,
	).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Status, &c.CreatedAt, &c.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return contractx.Customer{}, fmt.Errorf("%w: customer %d", contractx.ErrNotFound, id)
	}
	if err != nil {
		return contractx.Customer{}, fmt.Errorf("%w: query customer: %v", contractx.ErrUpstream, err)
	}
	return c, nil
}

func (s *Store) ListCustomers(ctx context.Context, status string, limit int) ([]contractx.Customer, error) {
	query := `SELECT id, name, email, phone, status, created_at, updated_at FROM customers`
	var args []any

	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: query customers: %v", contractx.ErrUpstream, err)
	}
	defer rows.Close()

	var customers []contractx.Customer
	for rows.Next() {
		var c contractx.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: scan customer: %v", contractx.ErrUpstream, err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (s *Store) UpdateCustomer(ctx context.Context, id int64, fields map[string]string) ([]string, error) {
	if err := s.customerExists(ctx, id); err != nil {
		return nil, err
	}

	var (
		setClauses []string
		args       []any
		updated    []string
	)
	for _, field := range updatableFields {
		value, ok := fields[field]
		if !ok {
			continue
		}
		setClauses = append(setClauses, field+" = ?")
		args = append(args, value)
		updated = append(updated, field)
	}

	if len(setClauses) == 0 {
		return nil, contractx.ErrNoValidFields
	}

	setClauses = append(setClauses, "updated_at = ?")
	args = append(args, time.Now().UTC(), id)

	query := `UPDATE customers SET ` + strings.Join(setClauses, ", ") + ` WHERE id = ?`
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: update customer: %v", contractx.ErrUpstream, err)
	}
	return updated, nil
}

func (s *Store) CreateTicket(ctx context.Context, customerID int64, issue, priority string) (contractx.Ticket, error) {
	if err := s.customerExists(ctx, customerID); err != nil {
		return contractx.Ticket{}, err
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO tickets (customer_id, issue, status, priority, created_at) VALUES (?, ?, ?, ?, ?)`,
		customerID, issue, contractx.TicketStatusOpen, priority, now,
	)
	if err != nil {
		return contractx.Ticket{}, fmt.Errorf("%w: insert ticket: %v", contractx.ErrUpstream, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return contractx.Ticket{}, fmt.Errorf("%w: ticket id: %v", contractx.ErrUpstream, err)
	}

	return contractx.Ticket{
		ID:         id,
		CustomerID: customerID,
		Issue:      issue,
		Status:     contractx.TicketStatusOpen,
		Priority:   priority,
		CreatedAt:  now,
	}, nil
}

func (s *Store) GetHistory(ctx context.Context, customerID int64) (contractx.History, error) {
	var name string
	err := s.db.QueryRowContext(ctx,
		`SELECT name FROM customers WHERE id = ?`, customerID,
	).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return contractx.History{}, fmt.Errorf("%w: customer %d", contractx.ErrNotFound, customerID)
	}
	if err != nil {
		return contractx.History{}, fmt.Errorf("%w: query customer: %v", contractx.ErrUpstream, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, customer_id, issue, status, priority, created_at
		 FROM tickets WHERE customer_id = ?
		 ORDER BY created_at DESC, id DESC`,
		customerID,
	)
	if err != nil {
		return contractx.History{}, fmt.Errorf("%w: query tickets: %v", contractx.ErrUpstream, err)
	}
	defer rows.Close()

	history := contractx.History{CustomerID: customerID, CustomerName: name}
	for rows.Next() {
		var t contractx.Ticket
		if err := rows.Scan(&t.ID, &t.CustomerID, &t.Issue, &t.Status, &t.Priority, &t.CreatedAt); err != nil {
			return contractx.History{}, fmt.Errorf("%w: scan ticket: %v", contractx.ErrUpstream, err)
		}
		history.Tickets = append(history.Tickets, t)
	}
	return history, rows.Err()
}

func (s *Store) TicketsByPriority(ctx context.Context, priority string, customerIDs []int64) ([]contractx.TicketWithCustomer, error) {
	query := `SELECT t.id, t.customer_id, c.name, t.issue, t.status, t.priority, t.created_at
		 FROM tickets t
		 JOIN customers c ON t.customer_id = c.id
		 WHERE t.priority = ?`
	args := []any{priority}

	if len(customerIDs) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(customerIDs)), ",")
		query += ` AND t.customer_id IN (` + placeholders + `)`
		for _, id := range customerIDs {
			args = append(args, id)
		}
	}
	query += ` ORDER BY t.created_at DESC, t.id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: query tickets: %v", contractx.ErrUpstream, err)
	}
	defer rows.Close()

	var tickets []contractx.TicketWithCustomer
	for rows.Next() {
		var t contractx.TicketWithCustomer
		if err := rows.Scan(&t.ID, &t.CustomerID, &t.CustomerName, &t.Issue, &t.Status, &t.Priority, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scan ticket: %v", contractx.ErrUpstream, err)
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

func (s *Store) CustomersWithOpenTickets(ctx context.Context) ([]contractx.CustomerOpenTickets, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT c.id, c.name, c.email, c.status, COUNT(t.id) AS open_ticket_count
		 FROM customers c
		 JOIN tickets t ON c.id = t.customer_id
		 WHERE c.status = ? AND t.status = ?
		 GROUP BY c.id, c.name, c.email, c.status
		 ORDER BY open_ticket_count DESC, c.id ASC`,
		contractx.CustomerStatusActive, contractx.TicketStatusOpen,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: query open tickets: %v", contractx.ErrUpstream, err)
	}
	defer rows.Close()

	var customers []contractx.CustomerOpenTickets
	for rows.Next() {
		var c contractx.CustomerOpenTickets
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Status, &c.OpenTicketCount); err != nil {
			return nil, fmt.Errorf("%w: scan customer: %v", contractx.ErrUpstream, err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (s *Store) customerExists(ctx context.Context, id int64) error {
	var got int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM customers WHERE id = ?`, id).Scan(&got)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: customer %d", contractx.ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("%w: query customer: %v", contractx.ErrUpstream, err)
	}
	return nil
}
