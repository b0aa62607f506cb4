package enginedaemon

import (
	"context"

	"github.com/replkit/engined/src/engined/mapper"
	"go.lsp.dev/jsonrpc2"
)

// ContinueStartup resumes the startup state machine from its current phase.
func (r *jsonRPCRouter) ContinueStartup(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	err := r.engined.ContinueStartup(ctx)
	return reply(ctx, nil, err)
}

// StartupPhase reports the current phase of the startup state machine.
func (r *jsonRPCRouter) StartupPhase(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	phase := r.engined.StartupPhase(ctx)
	return reply(ctx, mapper.PhaseToStartupPhaseResult(phase), nil)
}

// ChangeProject extracts ChangeProjectParams from the request and switches the active project environment.
func (r *jsonRPCRouter) ChangeProject(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToChangeProjectParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	err = r.engined.ChangeProject(ctx, params.Path)
	return reply(ctx, nil, err)
}

// RestartEngine stops the engine process and runs startup again from process launch.
func (r *jsonRPCRouter) RestartEngine(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	err := r.engined.RestartEngine(ctx)
	return reply(ctx, nil, err)
}
