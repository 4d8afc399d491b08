// Package supportagent handles support-oriented tasks: ticket creation,
// urgency assessment, and templated support responses. Urgency and
// response selection are ordered first-match keyword ladders.
package supportagent

import (
	"context"
	"errors"
	"fmt"

	contractx "github.com/pattarab/supportflow/agent/contract"
	tracex "github.com/pattarab/supportflow/agent/trace"
)

const componentName = "SupportAgent"

type Agent struct {
	store contractx.DataStore
	rec   *tracex.Recorder
}

func New(store contractx.DataStore, tr *tracex.Trace) (*Agent, error) {
	if store == nil {
		return nil, errors.New("data store is required")
	}
	if tr == nil {
		tr = tracex.New()
	}
	return &Agent{
		store: store,
		rec:   tr.Recorder(componentName),
	}, nil
}

func (a *Agent) Process(ctx context.Context, task contractx.Task) contractx.Result {
	a.rec.Info("processing task: %s", task.Action())

	var res contractx.Result
	switch t := task.(type) {
	case contractx.CreateTicketTask:
		res = a.createTicket(ctx, t)
	case contractx.ProvideSupportTask:
		res = a.provideSupport(t)
	case contractx.AssessUrgencyTask:
		res = a.assessUrgency(t)
	case contractx.HighPriorityTicketsTask:
		res = a.highPriorityTickets(ctx, t)
	default:
		res = contractx.Fail(fmt.Errorf("%w: unknown support action %q", contractx.ErrValidation, task.Action()))
	}

	if res.Success {
		a.rec.Info("task completed: %s", task.Action())
	} else {
		a.rec.Error("task failed: %s", res.Error)
	}
	return res
}

func (a *Agent) createTicket(ctx context.Context, t contractx.CreateTicketTask) contractx.Result {
	priority := t.Priority
	if !validPriority(priority) {
		// Invalid priorities are coerced, not rejected.
		a.rec.Warn("invalid priority %q, defaulting to %q", priority, contractx.PriorityMedium)
		priority = contractx.PriorityMedium
	}

	ticket, err := a.store.CreateTicket(ctx, t.CustomerID, t.Issue, priority)
	if err != nil {
		return contractx.Fail(err)
	}
	return contractx.OK(map[string]any{
		"ticket_id":   ticket.ID,
		"customer_id": ticket.CustomerID,
		"issue":       ticket.Issue,
		"priority":    ticket.Priority,
		"status":      ticket.Status,
	})
}

func (a *Agent) provideSupport(t contractx.ProvideSupportTask) contractx.Result {
	name := "Customer"
	if customer, ok := t.CustomerData["customer"].(contractx.Customer); ok && customer.Name != "" {
		name = customer.Name
	}

	return contractx.OK(map[string]any{
		"response": GenerateResponse(t.Query, name),
	})
}

func (a *Agent) assessUrgency(t contractx.AssessUrgencyTask) contractx.Result {
	assessment := AssessUrgency(t.Query)
	return contractx.OK(map[string]any{
		"urgency":  assessment.Urgency,
		"priority": assessment.Priority,
		"reason":   assessment.Reason,
	})
}

func (a *Agent) highPriorityTickets(ctx context.Context, t contractx.HighPriorityTicketsTask) contractx.Result {
	tickets, err := a.store.TicketsByPriority(ctx, contractx.PriorityHigh, t.CustomerIDs)
	if err != nil {
		return contractx.Fail(err)
	}
	return contractx.OK(map[string]any{
		"priority": contractx.PriorityHigh,
		"tickets":  tickets,
		"count":    len(tickets),
	})
}

func validPriority(p string) bool {
	switch p {
	case contractx.PriorityLow, contractx.PriorityMedium, contractx.PriorityHigh:
		return true
	}
	return false
}
