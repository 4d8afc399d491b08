// Package router coordinates specialist agents per query. Each query is
// classified into an intent and handled by exactly one coordination
// pattern; every pattern answers with a Result envelope, never a panic
// or a raw error.
package router

import (
	"context"
	"errors"

	"github.com/cloudwego/eino/compose"
	"github.com/google/uuid"
	contractx "github.com/pattarab/supportflow/agent/contract"
	tracex "github.com/pattarab/supportflow/agent/trace"
)

const componentName = "RouterAgent"

type Router struct {
	data    contractx.Specialist
	support contractx.Specialist

	trace *tracex.Trace
	rec   *tracex.Recorder

	graphRunner compose.Runnable[GraphInput, contractx.Result]
}

func New(data, support contractx.Specialist, tr *tracex.Trace) (*Router, error) {
	if data == nil {
		return nil, errors.New("data specialist is required")
	}
	if support == nil {
		return nil, errors.New("support specialist is required")
	}
	if tr == nil {
		tr = tracex.New()
	}

	r := &Router{
		data:    data,
		support: support,
		trace:   tr,
		rec:     tr.Recorder(componentName),
	}

	graphRunner, err := r.compileProcessQueryGraph(context.Background())
	if err != nil {
		return nil, err
	}
	r.graphRunner = graphRunner

	return r, nil
}

// Trace exposes the activity log for the host; orchestration logic never
// reads it.
func (r *Router) Trace() *tracex.Trace {
	return r.trace
}

// ProcessQuery classifies the query and runs the matching coordination
// pattern. It always returns a Result; failures of any kind are carried
// in the envelope.
func (r *Router) ProcessQuery(ctx context.Context, text string, qctx contractx.QueryContext) contractx.Result {
	out, err := r.graphRunner.Invoke(ctx, GraphInput{
		QueryID: uuid.NewString(),
		Text:    text,
		Context: qctx,
	})
	if err != nil {
		return contractx.Fail(err)
	}
	return out
}
