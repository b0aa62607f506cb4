package enginedaemon

import (
	"context"

	"github.com/replkit/engined/src/engined/mapper"
	"go.lsp.dev/jsonrpc2"
)

// ExecuteCode extracts ExecuteCodeParams from the request, runs the code in
// the engine, and replies with the execution result.
func (r *jsonRPCRouter) ExecuteCode(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToExecuteCodeParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	result, err := r.engined.ExecuteCode(ctx, params.Code, params.ExecutionType, params.Breakpoints)
	if err != nil {
		return reply(ctx, nil, err)
	}

	return reply(ctx, &mapper.ExecuteCodeResult{
		Success: result.Success,
		Result:  result.Result,
		Error:   result.Error,
	}, nil)
}

// Interrupt delivers an interrupt signal to the running engine.
func (r *jsonRPCRouter) Interrupt(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	err := r.engined.InterruptEngine(ctx)
	return reply(ctx, nil, err)
}

// TestConnection round-trips a command through the engine to confirm that the
// transport and correlation machinery are healthy.
func (r *jsonRPCRouter) TestConnection(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	err := r.engined.TestConnection(ctx)
	return reply(ctx, nil, err)
}

// GetWorkspaceVariables asks the engine for a fresh workspace variable
// snapshot. The snapshot arrives later as a broadcast notification.
func (r *jsonRPCRouter) GetWorkspaceVariables(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	err := r.engined.GetWorkspaceVariables(ctx)
	return reply(ctx, nil, err)
}

// GetVariableValue extracts VariableValueParams from the request and replies
// with the rendered value of the named variable.
func (r *jsonRPCRouter) GetVariableValue(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToVariableValueParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	value, err := r.engined.GetVariableValue(ctx, params.Name)
	if err != nil {
		return reply(ctx, nil, err)
	}

	return reply(ctx, &mapper.VariableValueResult{Value: value}, nil)
}
