// Package dataagent wraps the data store behind the specialist contract:
// every data-oriented task is dispatched by its action tag, executed as a
// single store call, and answered with a Result envelope.
package dataagent

import (
	"context"
	"errors"
	"fmt"

	contractx "github.com/pattarab/supportflow/agent/contract"
	tracex "github.com/pattarab/supportflow/agent/trace"
)

const componentName = "CustomerDataAgent"

const defaultListLimit = 10

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
	case contractx.GetCustomerTask:
		res = a.getCustomer(ctx, t)
	case contractx.ListCustomersTask:
		res = a.listCustomers(ctx, t)
	case contractx.UpdateCustomerTask:
		res = a.updateCustomer(ctx, t)
	case contractx.CustomerHistoryTask:
		res = a.getHistory(ctx, t)
	case contractx.OpenTicketsTask:
		res = a.customersWithOpenTickets(ctx)
	default:
		res = contractx.Fail(fmt.Errorf("%w: unknown data action %q", contractx.ErrValidation, task.Action()))
	}

	if res.Success {
		a.rec.Info("task completed: %s", task.Action())
	} else {
		a.rec.Error("task failed: %s", res.Error)
	}
	return res
}

func (a *Agent) getCustomer(ctx context.Context, t contractx.GetCustomerTask) contractx.Result {
	customer, err := a.store.GetCustomer(ctx, t.CustomerID)
	if err != nil {
		return contractx.Fail(err)
	}
	return contractx.OK(map[string]any{
		"customer": customer,
	})
}

func (a *Agent) listCustomers(ctx context.Context, t contractx.ListCustomersTask) contractx.Result {
	limit := t.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	customers, err := a.store.ListCustomers(ctx, t.Status, limit)
	if err != nil {
		return contractx.Fail(err)
	}
	return contractx.OK(map[string]any{
		"customers": customers,
		"count":     len(customers),
	})
}

func (a *Agent) updateCustomer(ctx context.Context, t contractx.UpdateCustomerTask) contractx.Result {
	updated, err := a.store.UpdateCustomer(ctx, t.CustomerID, t.Fields)
	if err != nil {
		return contractx.Fail(err)
	}
	return contractx.OK(map[string]any{
		"customer_id":    t.CustomerID,
		"updated_fields": updated,
	})
}

func (a *Agent) getHistory(ctx context.Context, t contractx.CustomerHistoryTask) contractx.Result {
	history, err := a.store.GetHistory(ctx, t.CustomerID)
	if err != nil {
		return contractx.Fail(err)
	}
	return contractx.OK(map[string]any{
		"customer_id":   history.CustomerID,
		"customer_name": history.CustomerName,
		"tickets":       history.Tickets,
		"ticket_count":  len(history.Tickets),
	})
}

func (a *Agent) customersWithOpenTickets(ctx context.Context) contractx.Result {
	customers, err := a.store.CustomersWithOpenTickets(ctx)
	if err != nil {
		return contractx.Fail(err)
	}
	return contractx.OK(map[string]any{
		"customers": customers,
		"count":     len(customers),
	})
}
