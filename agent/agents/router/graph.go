package router

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/compose"
	classifierx "github.com/pattarab/supportflow/agent/classifier"
	contractx "github.com/pattarab/supportflow/agent/contract"
)

type GraphInput struct {
	QueryID string
	Text    string
	Context contractx.QueryContext
}

type graphState struct {
	QueryID string
	Text    string
	Context contractx.QueryContext

	Intent contractx.Intent
	Result contractx.Result
}

func (r *Router) compileProcessQueryGraph(
	ctx context.Context,
) (compose.Runnable[GraphInput, contractx.Result], error) {
	graph := compose.NewGraph[GraphInput, contractx.Result]()

	if err := graph.AddLambdaNode("validate_query",
		compose.InvokableLambda(func(ctx context.Context, in GraphInput) (*graphState, error) {
			return r.validateQuery(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_query: %w", err)
	}

	if err := graph.AddLambdaNode("classify_intent",
		compose.InvokableLambda(func(ctx context.Context, in *graphState) (*graphState, error) {
			return r.classifyIntent(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node classify_intent: %w", err)
	}

	if err := graph.AddLambdaNode("dispatch_pattern",
		compose.InvokableLambda(func(ctx context.Context, in *graphState) (*graphState, error) {
			return r.dispatchPattern(ctx, in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node dispatch_pattern: %w", err)
	}

	if err := graph.AddLambdaNode("finalize_result",
		compose.InvokableLambda(func(ctx context.Context, in *graphState) (contractx.Result, error) {
			return r.finalizeResult(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node finalize_result: %w", err)
	}

	edges := [][2]string{
		{compose.START, "validate_query"},
		{"validate_query", "classify_intent"},
		{"classify_intent", "dispatch_pattern"},
		{"dispatch_pattern", "finalize_result"},
		{"finalize_result", compose.END},
	}

	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("router.process_query"))
	if err != nil {
		return nil, fmt.Errorf("compile router graph: %w", err)
	}
	return runner, nil
}

func (r *Router) validateQuery(in GraphInput) (*graphState, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: query text is empty", contractx.ErrValidation)
	}

	r.rec.Info("query %s: received %q", in.QueryID, text)
	if in.Context.CustomerID != 0 {
		r.rec.Info("query %s: context customer_id=%d", in.QueryID, in.Context.CustomerID)
	}

	return &graphState{
		QueryID: in.QueryID,
		Text:    text,
		Context: in.Context,
	}, nil
}

func (r *Router) classifyIntent(in *graphState) (*graphState, error) {
	in.Intent = classifierx.Classify(in.Text)
	r.rec.Info("query %s: detected intent %s", in.QueryID, in.Intent)
	return in, nil
}

func (r *Router) dispatchPattern(ctx context.Context, in *graphState) (*graphState, error) {
	switch in.Intent {
	case contractx.IntentSimpleDataQuery:
		in.Result = r.handleTaskAllocation(ctx, in)
	case contractx.IntentCoordinatedSupport:
		in.Result = r.handleNegotiation(ctx, in)
	case contractx.IntentComplexAnalysis:
		in.Result = r.handleMultiStep(ctx, in)
	case contractx.IntentEscalation:
		in.Result = r.handleEscalation(ctx, in)
	case contractx.IntentMultiIntent:
		in.Result = r.handleMultiIntent(ctx, in)
	default:
		in.Result = contractx.Fail(contractx.ErrClassificationMiss)
	}
	return in, nil
}

func (r *Router) finalizeResult(in *graphState) (contractx.Result, error) {
	if in.Result.Success {
		r.rec.Info("query %s: completed successfully", in.QueryID)
	} else {
		r.rec.Error("query %s: failed: %s", in.QueryID, in.Result.Error)
	}
	return in.Result, nil
}
