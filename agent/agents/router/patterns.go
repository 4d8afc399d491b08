package router

import (
	"context"
	"fmt"
	"strings"

	classifierx "github.com/pattarab/supportflow/agent/classifier"
	contractx "github.com/pattarab/supportflow/agent/contract"
)

// handleTaskAllocation serves simple data queries with a single data
// specialist call. Router -> Data Agent -> Response.
func (r *Router) handleTaskAllocation(ctx context.Context, in *graphState) contractx.Result {
	r.rec.Info("query %s: pattern task_allocation", in.QueryID)

	customerID, ok := classifierx.CustomerID(in.Text, in.Context)
	if !ok {
		return contractx.Fail(fmt.Errorf("%w: customer id required but not found in query or context", contractx.ErrValidation))
	}

	res := r.data.Process(ctx, contractx.GetCustomerTask{CustomerID: customerID})
	if !res.Success {
		return res
	}

	customer, ok := res.Payload["customer"].(contractx.Customer)
	if !ok {
		return contractx.Fail(fmt.Errorf("%w: malformed customer payload", contractx.ErrUpstream))
	}

	var b strings.Builder
	b.WriteString("Customer Information:\n")
	fmt.Fprintf(&b, "  ID: %d\n", customer.ID)
	fmt.Fprintf(&b, "  Name: %s\n", customer.Name)
	fmt.Fprintf(&b, "  Email: %s\n", customer.Email)
	fmt.Fprintf(&b, "  Phone: %s\n", customer.Phone)
	fmt.Fprintf(&b, "  Status: %s\n", customer.Status)

	return contractx.OK(map[string]any{
		"response": b.String(),
		"data":     res.Payload,
	})
}

// handleNegotiation coordinates the data and support specialists: the
// support response depends on the customer record fetched first.
func (r *Router) handleNegotiation(ctx context.Context, in *graphState) contractx.Result {
	r.rec.Info("query %s: pattern negotiation", in.QueryID)

	customerID, ok := classifierx.CustomerID(in.Text, in.Context)
	if !ok {
		return contractx.Fail(fmt.Errorf("%w: customer id required for support queries", contractx.ErrValidation))
	}

	customerRes := r.data.Process(ctx, contractx.GetCustomerTask{CustomerID: customerID})
	if !customerRes.Success {
		return customerRes
	}

	supportRes := r.support.Process(ctx, contractx.ProvideSupportTask{
		Query:        in.Text,
		CustomerData: customerRes.Payload,
	})
	if !supportRes.Success {
		return supportRes
	}

	return contractx.OK(map[string]any{
		"response":      supportRes.Payload["response"],
		"customer_data": customerRes.Payload,
	})
}

// handleMultiStep serves complex analysis queries. Only one sub-pattern
// is defined: active customers joined with their open tickets.
func (r *Router) handleMultiStep(ctx context.Context, in *graphState) contractx.Result {
	r.rec.Info("query %s: pattern multi_step", in.QueryID)

	q := strings.ToLower(in.Text)
	if !strings.Contains(q, "active customers") || !strings.Contains(q, "open tickets") {
		return contractx.Fail(fmt.Errorf("%w: complex query pattern not recognized", contractx.ErrPatternMismatch))
	}

	res := r.data.Process(ctx, contractx.OpenTicketsTask{})
	if !res.Success {
		return res
	}

	customers, ok := res.Payload["customers"].([]contractx.CustomerOpenTickets)
	if !ok {
		return contractx.Fail(fmt.Errorf("%w: malformed customers payload", contractx.ErrUpstream))
	}

	var b strings.Builder
	b.WriteString("Active Customers with Open Tickets:\n\n")
	fmt.Fprintf(&b, "Total: %d customers\n\n", len(customers))
	for _, c := range customers {
		fmt.Fprintf(&b, "  - %s (ID: %d)\n", c.Name, c.ID)
		fmt.Fprintf(&b, "    Email: %s\n", c.Email)
		fmt.Fprintf(&b, "    Open Tickets: %d\n\n", c.OpenTicketCount)
	}

	return contractx.OK(map[string]any{
		"response":  b.String(),
		"customers": customers,
	})
}

// handleEscalation assesses urgency first, then fetches customer context
// best-effort; a failed lookup only omits the customer block.
func (r *Router) handleEscalation(ctx context.Context, in *graphState) contractx.Result {
	r.rec.Info("query %s: pattern escalation", in.QueryID)

	urgencyRes := r.support.Process(ctx, contractx.AssessUrgencyTask{Query: in.Text})

	var customerPayload map[string]any
	if customerID, ok := classifierx.CustomerID(in.Text, in.Context); ok {
		customerRes := r.data.Process(ctx, contractx.GetCustomerTask{CustomerID: customerID})
		if customerRes.Success {
			customerPayload = customerRes.Payload
		}
	}

	var b strings.Builder
	b.WriteString("ESCALATED TICKET - Priority Support\n\n")
	if customer, ok := customerPayload["customer"].(contractx.Customer); ok {
		fmt.Fprintf(&b, "Customer: %s (ID: %d)\n", customer.Name, customer.ID)
		fmt.Fprintf(&b, "Contact: %s\n\n", customer.Email)
	}
	fmt.Fprintf(&b, "Urgency: %s\n", strings.ToUpper(payloadString(urgencyRes.Payload, "urgency")))
	fmt.Fprintf(&b, "Priority: %s\n", payloadString(urgencyRes.Payload, "priority"))
	fmt.Fprintf(&b, "Reason: %s\n\n", payloadString(urgencyRes.Payload, "reason"))
	b.WriteString("This issue has been flagged for immediate attention.\n")
	b.WriteString("Expected response time: Within 1 hour\n")

	payload := map[string]any{
		"response": b.String(),
		"urgency":  urgencyRes.Payload,
	}
	if customerPayload != nil {
		payload["customer_data"] = customerPayload
	}
	return contractx.OK(payload)
}

// handleMultiIntent runs the matched sub-tasks back-to-back in fixed
// order. A failed sub-task does not stop the others; its failure lives
// in the results list, not in the top-level envelope.
func (r *Router) handleMultiIntent(ctx context.Context, in *graphState) contractx.Result {
	r.rec.Info("query %s: pattern multi_intent", in.QueryID)

	customerID, ok := classifierx.CustomerID(in.Text, in.Context)
	if !ok {
		return contractx.Fail(fmt.Errorf("%w: customer id required for multi-intent queries", contractx.ErrValidation))
	}

	q := strings.ToLower(in.Text)
	var results []contractx.SubResult

	if strings.Contains(q, "update") && strings.Contains(q, "email") {
		if email, found := classifierx.Email(in.Text); found {
			r.rec.Info("query %s: sub-task update_email %s", in.QueryID, email)
			res := r.data.Process(ctx, contractx.UpdateCustomerTask{
				CustomerID: customerID,
				Fields:     map[string]string{"email": email},
			})
			results = append(results, contractx.SubResult{Label: "update_email", Result: res})
		}
	}

	if strings.Contains(q, "show") && (strings.Contains(q, "history") || strings.Contains(q, "tickets")) {
		r.rec.Info("query %s: sub-task get_history", in.QueryID)
		res := r.data.Process(ctx, contractx.CustomerHistoryTask{CustomerID: customerID})
		results = append(results, contractx.SubResult{Label: "get_history", Result: res})
	}

	var b strings.Builder
	b.WriteString("Multi-Action Request Processed:\n\n")
	for _, sub := range results {
		if !sub.Result.Success {
			continue
		}
		switch sub.Label {
		case "update_email":
			b.WriteString("- Email updated successfully\n\n")
		case "get_history":
			b.WriteString("- Ticket History Retrieved:\n")
			fmt.Fprintf(&b, "  Total Tickets: %v\n", sub.Result.Payload["ticket_count"])
			if tickets, ok := sub.Result.Payload["tickets"].([]contractx.Ticket); ok {
				limit := len(tickets)
				if limit > 5 {
					limit = 5
				}
				for _, ticket := range tickets[:limit] {
					fmt.Fprintf(&b, "  - Ticket #%d: %s [%s]\n", ticket.ID, ticket.Issue, ticket.Status)
				}
			}
			b.WriteString("\n")
		}
	}

	return contractx.OK(map[string]any{
		"response": b.String(),
		"results":  results,
	})
}

func payloadString(payload map[string]any, key string) string {
	if payload == nil {
		return ""
	}
	s, _ := payload[key].(string)
	return s
}
