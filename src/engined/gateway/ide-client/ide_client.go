// Package notifier sends outbound notifications and calls to connected IDE
// frontends. Engine events concern every frontend, so event notifications are
// broadcast; direct messages are routed by the session UUID in the context.
package notifier

import (
	"context"
	"fmt"
	"sync"

	"github.com/gofrs/uuid"
	"github.com/replkit/engined/src/engined/entity"
	"github.com/replkit/engined/src/engined/internal/cellbuf"
	"github.com/replkit/engined/src/engined/internal/wire"
	"github.com/replkit/engined/src/engined/mapper"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const _errSendToClient = "sending call/notification to IDE: %w"

// Notification methods pushed to the frontend.
const (
	MethodExecutionComplete = "engined/executionComplete"
	MethodPrompt            = "engined/prompt"
	MethodWorkspaceVars     = "engined/workspaceVariables"
	MethodVariableValue     = "engined/variableValue"
	MethodPlot              = "engined/plot"
	MethodNotebookCellDone  = "engined/notebookCellDone"
	MethodStartupProgress   = "engined/startupProgress"
	MethodStartupError      = "engined/startupError"
	MethodBusy              = "engined/busy"
	MethodBusyDone          = "engined/busyDone"
	MethodConnectionLost    = "engined/connectionLost"
	MethodTerminalOutput    = "engined/terminalOutput"
)

// TerminalOutputParams carry one engine output line for the frontend terminal.
type TerminalOutputParams struct {
	Line   string `json:"line"`
	Stderr bool   `json:"stderr,omitempty"`
}

// ExecutionCompleteParams notify the frontend of one finished execution.
type ExecutionCompleteParams struct {
	ID            string `json:"id"`
	Success       bool   `json:"success"`
	Result        string `json:"result,omitempty"`
	Error         string `json:"error,omitempty"`
	ExecutionType string `json:"executionType,omitempty"`
}

// PromptParams carry a synthetic prompt line for the frontend terminal.
type PromptParams struct {
	Prompt string `json:"prompt"`
}

// WorkspaceVariablesParams carry the current workspace variable listing.
type WorkspaceVariablesParams struct {
	Variables []wire.Variable `json:"variables"`
}

// VariableValueParams carry one expanded variable value.
type VariableValueParams struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// PlotParams carry one rendered plot.
type PlotParams struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
	URL      string `json:"url,omitempty"`
}

// NotebookCellDoneParams carry the buffered output of one notebook cell.
type NotebookCellDoneParams struct {
	ID    string       `json:"id"`
	Lines []string     `json:"lines"`
	Plots []PlotParams `json:"plots,omitempty"`
}

// StartupProgressParams report a startup phase transition.
type StartupProgressParams struct {
	Phase string `json:"phase"`
}

// StartupErrorParams report a failed startup with its failing phase.
type StartupErrorParams struct {
	Phase   string `json:"phase"`
	Message string `json:"message"`
}

// Gateway is used to send outbound notifications and calls to the IDE.
// Session-routed methods require a context carrying a session UUID; the
// engine event methods broadcast to every registered frontend.
type Gateway interface {
	// RegisterClient registers a new client. Called for each new IDE connection.
	RegisterClient(ctx context.Context, id uuid.UUID, conn *jsonrpc2.Conn) error
	// DeregisterClient removes a client. Called when an IDE connection closes.
	DeregisterClient(ctx context.Context, id uuid.UUID) error

	// Session-routed protocol.Client methods.
	LogMessage(ctx context.Context, params *protocol.LogMessageParams) error
	ShowMessage(ctx context.Context, params *protocol.ShowMessageParams) error

	// Broadcast engine events.
	ExecutionComplete(ctx context.Context, params ExecutionCompleteParams) error
	Prompt(ctx context.Context, prompt string) error
	WorkspaceVariables(ctx context.Context, variables []wire.Variable) error
	VariableValue(ctx context.Context, name, value string) error
	Plot(ctx context.Context, params PlotParams) error
	NotebookCellDone(ctx context.Context, cell cellbuf.Cell) error
	StartupProgress(ctx context.Context, phase entity.Phase) error
	StartupError(ctx context.Context, phase entity.Phase, message string) error
	Busy(ctx context.Context) error
	BusyDone(ctx context.Context) error
	ConnectionLost(ctx context.Context) error
	TerminalOutput(ctx context.Context, line string, stderr bool) error
}

type gateway struct {
	clients     map[uuid.UUID]protocol.Client
	connections map[uuid.UUID]jsonrpc2.Conn
	clientsMu   sync.Mutex
	logger      *zap.Logger
}

// New returns a Gateway for sending IDE notifications and calls.
func New(logger *zap.Logger) Gateway {
	return &gateway{
		clients:     make(map[uuid.UUID]protocol.Client),
		connections: make(map[uuid.UUID]jsonrpc2.Conn),
		logger:      logger,
	}
}

func (g *gateway) RegisterClient(ctx context.Context, id uuid.UUID, conn *jsonrpc2.Conn) error {
	g.clientsMu.Lock()
	defer g.clientsMu.Unlock()

	g.clients[id] = protocol.ClientDispatcher(*conn, g.logger)
	g.connections[id] = *conn

	return nil
}

func (g *gateway) DeregisterClient(ctx context.Context, id uuid.UUID) error {
	g.clientsMu.Lock()
	defer g.clientsMu.Unlock()

	delete(g.clients, id)
	delete(g.connections, id)

	return nil
}

func (g *gateway) LogMessage(ctx context.Context, params *protocol.LogMessageParams) error {
	c, err := g.getClient(ctx)
	if err != nil {
		return fmt.Errorf(_errSendToClient, err)
	}
	return c.LogMessage(ctx, params)
}

func (g *gateway) ShowMessage(ctx context.Context, params *protocol.ShowMessageParams) error {
	c, err := g.getClient(ctx)
	if err != nil {
		return fmt.Errorf(_errSendToClient, err)
	}
	return c.ShowMessage(ctx, params)
}

func (g *gateway) ExecutionComplete(ctx context.Context, params ExecutionCompleteParams) error {
	return g.broadcast(ctx, MethodExecutionComplete, params)
}

func (g *gateway) Prompt(ctx context.Context, prompt string) error {
	return g.broadcast(ctx, MethodPrompt, PromptParams{Prompt: prompt})
}

func (g *gateway) WorkspaceVariables(ctx context.Context, variables []wire.Variable) error {
	return g.broadcast(ctx, MethodWorkspaceVars, WorkspaceVariablesParams{Variables: variables})
}

func (g *gateway) VariableValue(ctx context.Context, name, value string) error {
	return g.broadcast(ctx, MethodVariableValue, VariableValueParams{Name: name, Value: value})
}

func (g *gateway) Plot(ctx context.Context, params PlotParams) error {
	return g.broadcast(ctx, MethodPlot, params)
}

func (g *gateway) NotebookCellDone(ctx context.Context, cell cellbuf.Cell) error {
	params := NotebookCellDoneParams{
		ID:    cell.ID,
		Lines: cell.Lines,
	}
	for _, plot := range cell.Plots {
		params.Plots = append(params.Plots, PlotParams{MimeType: plot.MimeType, Data: plot.Data})
	}
	return g.broadcast(ctx, MethodNotebookCellDone, params)
}

func (g *gateway) StartupProgress(ctx context.Context, phase entity.Phase) error {
	return g.broadcast(ctx, MethodStartupProgress, StartupProgressParams{Phase: phase.String()})
}

func (g *gateway) StartupError(ctx context.Context, phase entity.Phase, message string) error {
	return g.broadcast(ctx, MethodStartupError, StartupErrorParams{Phase: phase.String(), Message: message})
}

func (g *gateway) Busy(ctx context.Context) error {
	return g.broadcast(ctx, MethodBusy, struct{}{})
}

func (g *gateway) BusyDone(ctx context.Context) error {
	return g.broadcast(ctx, MethodBusyDone, struct{}{})
}

func (g *gateway) ConnectionLost(ctx context.Context) error {
	return g.broadcast(ctx, MethodConnectionLost, struct{}{})
}

func (g *gateway) TerminalOutput(ctx context.Context, line string, stderr bool) error {
	return g.broadcast(ctx, MethodTerminalOutput, TerminalOutputParams{Line: line, Stderr: stderr})
}

// broadcast notifies every registered frontend. Failures on individual
// connections do not block the rest.
func (g *gateway) broadcast(ctx context.Context, method string, params interface{}) error {
	g.clientsMu.Lock()
	conns := make(map[uuid.UUID]jsonrpc2.Conn, len(g.connections))
	for id, conn := range g.connections {
		conns[id] = conn
	}
	g.clientsMu.Unlock()

	var errs error
	for id, conn := range conns {
		if err := conn.Notify(ctx, method, params); err != nil {
			g.logger.Sugar().Warnw("notifying frontend", "method", method, "uuid", id, "error", err)
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

func (g *gateway) getClient(ctx context.Context) (protocol.Client, error) {
	g.clientsMu.Lock()
	defer g.clientsMu.Unlock()

	id, err := mapper.ContextToSessionUUID(ctx)
	if err != nil {
		return nil, err
	}

	client, ok := g.clients[id]
	if !ok {
		return nil, fmt.Errorf("client with id %q not found", id)
	}
	return client, nil
}
