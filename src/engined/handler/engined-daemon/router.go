package enginedaemon

import (
	"context"

	"github.com/gofrs/uuid"
	controller "github.com/replkit/engined/src/engined/controller/engined-daemon"
	"github.com/replkit/engined/src/engined/entity"
	tally "github.com/uber-go/tally/v4"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
)

// Custom JSON-RPC methods exposed to the frontend in addition to the standard
// lifecycle methods.
const (
	// MethodContinueStartup resumes the startup state machine after an external wait.
	MethodContinueStartup = "engined/continueStartup"
	// MethodStartupPhase reports the current startup phase.
	MethodStartupPhase = "engined/startupPhase"
	// MethodChangeProject switches the active project environment.
	MethodChangeProject = "engined/changeProject"
	// MethodRestartEngine stops and relaunches the engine process.
	MethodRestartEngine = "engined/restartEngine"
	// MethodExecuteCode runs code in the engine and returns its result.
	MethodExecuteCode = "engined/executeCode"
	// MethodInterrupt delivers an interrupt to the running engine.
	MethodInterrupt = "engined/interrupt"
	// MethodTestConnection round-trips a command through the engine.
	MethodTestConnection = "engined/testConnection"
	// MethodGetWorkspaceVariables requests a workspace variable broadcast.
	MethodGetWorkspaceVariables = "engined/getWorkspaceVariables"
	// MethodGetVariableValue fetches the rendered value of a single variable.
	MethodGetVariableValue = "engined/getVariableValue"
	// MethodRequestFullShutdown directs the server to shut down on the next JSON-RPC 'exit' method call.
	MethodRequestFullShutdown = "engined/requestFullShutdown"
)

type jsonRPCRouter struct {
	engined controller.Controller
	uuid    uuid.UUID
	stats   tally.Scope
}

// HandleReq handles routing for a single request.
func (r *jsonRPCRouter) HandleReq(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	ctx = context.WithValue(ctx, entity.SessionContextKey, r.uuid)

	switch req.Method() {
	// Lifecycle related methods.
	case protocol.MethodInitialize:
		return r.Initialize(ctx, reply, req)

	case protocol.MethodShutdown:
		return r.Shutdown(ctx, reply, req)

	case protocol.MethodExit:
		return r.Exit(ctx, reply, req)

	case MethodRequestFullShutdown:
		return r.RequestFullShutdown(ctx, reply, req)

	// Startup related methods.
	case MethodContinueStartup:
		return r.ContinueStartup(ctx, reply, req)

	case MethodStartupPhase:
		return r.StartupPhase(ctx, reply, req)

	case MethodChangeProject:
		return r.ChangeProject(ctx, reply, req)

	case MethodRestartEngine:
		return r.RestartEngine(ctx, reply, req)

	// Engine related methods.
	case MethodExecuteCode:
		return r.ExecuteCode(ctx, reply, req)

	case MethodInterrupt:
		return r.Interrupt(ctx, reply, req)

	case MethodTestConnection:
		return r.TestConnection(ctx, reply, req)

	case MethodGetWorkspaceVariables:
		return r.GetWorkspaceVariables(ctx, reply, req)

	case MethodGetVariableValue:
		return r.GetVariableValue(ctx, reply, req)

	default:
		return jsonrpc2.MethodNotFoundHandler(ctx, reply, req)
	}
}

func (r *jsonRPCRouter) UUID() uuid.UUID {
	return r.uuid
}
