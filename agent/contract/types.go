package contract

import "time"

// Intent is the classification label that selects the coordination
// pattern for a query. Exactly one intent is assigned per query.
type Intent string

const (
	IntentSimpleDataQuery    Intent = "simple_data_query"
	IntentCoordinatedSupport Intent = "coordinated_support"
	IntentComplexAnalysis    Intent = "complex_analysis"
	IntentEscalation         Intent = "escalation"
	IntentMultiIntent        Intent = "multi_intent"
	IntentGeneral            Intent = "general"
)

// Action identifies a specialist operation.
type Action string

const (
	ActionGetCustomer              Action = "get_customer"
	ActionListCustomers            Action = "list_customers"
	ActionUpdateCustomer           Action = "update_customer"
	ActionGetCustomerHistory       Action = "get_customer_history"
	ActionCustomersWithOpenTickets Action = "customers_with_open_tickets"

	ActionCreateTicket        Action = "create_ticket"
	ActionProvideSupport      Action = "provide_support"
	ActionAssessUrgency       Action = "assess_urgency"
	ActionHighPriorityTickets Action = "high_priority_tickets"
)

// Task is the unit of work sent to a specialist. Each variant carries
// only the fields its action needs; the Action tag keys the dispatch.
type Task interface {
	Action() Action
}

type GetCustomerTask struct {
	CustomerID int64
}

func (GetCustomerTask) Action() Action { return ActionGetCustomer }

type ListCustomersTask struct {
	Status string
	Limit  int
}

func (ListCustomersTask) Action() Action { return ActionListCustomers }

type UpdateCustomerTask struct {
	CustomerID int64
	Fields     map[string]string
}

func (UpdateCustomerTask) Action() Action { return ActionUpdateCustomer }

type CustomerHistoryTask struct {
	CustomerID int64
}

func (CustomerHistoryTask) Action() Action { return ActionGetCustomerHistory }

type OpenTicketsTask struct{}

func (OpenTicketsTask) Action() Action { return ActionCustomersWithOpenTickets }

type CreateTicketTask struct {
	CustomerID int64
	Issue      string
	Priority   string
}

func (CreateTicketTask) Action() Action { return ActionCreateTicket }

type ProvideSupportTask struct {
	Query        string
	CustomerData map[string]any
}

func (ProvideSupportTask) Action() Action { return ActionProvideSupport }

type AssessUrgencyTask struct {
	Query string
}

func (AssessUrgencyTask) Action() Action { return ActionAssessUrgency }

type HighPriorityTicketsTask struct {
	CustomerIDs []int64
}

func (HighPriorityTicketsTask) Action() Action { return ActionHighPriorityTickets }

// Result is the uniform envelope returned by every specialist call and
// every coordination pattern. Exactly one of Payload/Error is populated.
type Result struct {
	Success bool           `json:"success"`
	Payload map[string]any `json:"payload,omitempty"`
	Error   string         `json:"error,omitempty"`
}

func OK(payload map[string]any) Result {
	return Result{Success: true, Payload: payload}
}

func Fail(err error) Result {
	return Result{Success: false, Error: err.Error()}
}

// SubResult records one attempted sub-task of a multi-intent query.
type SubResult struct {
	Label  string `json:"label"`
	Result Result `json:"result"`
}

// QueryContext carries optional caller-supplied context for a query.
// CustomerID of zero means no customer id was provided.
type QueryContext struct {
	CustomerID int64 `json:"customer_id,omitempty"`
}

type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	CustomerStatusActive   = "active"
	CustomerStatusDisabled = "disabled"
)

type Ticket struct {
	ID         int64     `json:"id"`
	CustomerID int64     `json:"customer_id"`
	Issue      string    `json:"issue"`
	Status     string    `json:"status"`
	Priority   string    `json:"priority"`
	CreatedAt  time.Time `json:"created_at"`
}

const (
	TicketStatusOpen   = "open"
	TicketStatusClosed = "closed"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// TicketWithCustomer is a ticket joined with its customer's name.
type TicketWithCustomer struct {
	Ticket
	CustomerName string `json:"customer_name"`
}

// History is a customer's ticket history, newest first.
type History struct {
	CustomerID   int64    `json:"customer_id"`
	CustomerName string   `json:"customer_name"`
	Tickets      []Ticket `json:"tickets"`
}

// CustomerOpenTickets is an active customer with its open ticket count.
type CustomerOpenTickets struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Status          string `json:"status"`
	OpenTicketCount int    `json:"open_ticket_count"`
}
