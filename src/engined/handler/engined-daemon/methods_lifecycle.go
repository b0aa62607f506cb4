package enginedaemon

import (
	"context"

	"go.lsp.dev/jsonrpc2"
)

// Initialize acknowledges a new client. The daemon exposes no capability
// negotiation; clients proceed straight to the engined methods.
func (r *jsonRPCRouter) Initialize(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	return reply(ctx, struct{}{}, nil)
}

// Shutdown acknowledges a shutdown request from a single client. Session
// cleanup happens on the subsequent exit call or on disconnect.
func (r *jsonRPCRouter) Shutdown(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	return reply(ctx, nil, nil)
}

// Exit asks the server to exit its process.
// Because the server is shared between multiple frontend processes, the process will only exit when RequestFullShutdown is sent first.
func (r *jsonRPCRouter) Exit(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	// Reply first to ensure that a reply is sent before the controller initiates the shutdown.
	reply(ctx, nil, nil)
	err := r.engined.Exit(ctx)
	return err
}

// RequestFullShutdown will indicate that the next Exit request should perform a full shutdown and exit of the server.
func (r *jsonRPCRouter) RequestFullShutdown(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	err := r.engined.RequestFullShutdown(ctx)
	return reply(ctx, nil, err)
}
