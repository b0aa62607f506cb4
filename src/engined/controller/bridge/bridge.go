// Package bridge correlates command/response traffic with the engine: it owns
// the single pending-request slot, runs the inbound reader loop, and routes
// every parsed message to its handler.
package bridge

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"syscall"
	"time"

	"github.com/replkit/engined/src/engined/controller/plots"
	"github.com/replkit/engined/src/engined/factory"
	notifier "github.com/replkit/engined/src/engined/gateway/ide-client"
	"github.com/replkit/engined/src/engined/internal/cellbuf"
	"github.com/replkit/engined/src/engined/internal/clock"
	enginederrors "github.com/replkit/engined/src/engined/internal/errors"
	"github.com/replkit/engined/src/engined/internal/transport"
	"github.com/replkit/engined/src/engined/internal/wire"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	_nameKey = "bridge"

	// _idleDelay paces the reader when a read returns no data.
	_idleDelay = 100 * time.Millisecond
	// _flushDelay holds a resolved request briefly so trailing terminal
	// output lands before control returns to the caller.
	_flushDelay = 500 * time.Millisecond
	// _followUpDelay spaces the workspace refresh issued after an execution.
	_followUpDelay = 200 * time.Millisecond
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// Result is the resolved outcome of one correlated request.
type Result struct {
	Success bool
	Result  string
	Error   string
}

// Controller issues commands to the engine and resolves their responses.
// At most one request is outstanding; issuing a new one orphans the previous
// waiter, which then never resolves.
type Controller interface {
	// StartReader launches the inbound reader loop. The loop ends on stream
	// termination or context cancellation; restarting the engine starts a new one.
	StartReader(ctx context.Context)

	// ExecuteCode runs code on the engine and waits for its ExecutionComplete.
	ExecuteCode(ctx context.Context, code string, execType wire.ExecutionType, breakpoints []int) (Result, error)
	// TestConnection round-trips a no-op command through both channels.
	TestConnection(ctx context.Context) error
	// GetVariableValue fetches one rendered workspace binding.
	GetVariableValue(ctx context.Context, name string) (string, error)

	// RequestWorkspaceVariables asks for a workspace listing. Fire-and-forget;
	// the listing arrives later as a broadcast notification.
	RequestWorkspaceVariables(ctx context.Context) error
	// ActivateProject and DeactivateProject switch the engine's project
	// environment. Completion is observed via the output monitor's markers.
	ActivateProject(ctx context.Context, path string) error
	DeactivateProject(ctx context.Context) error

	// LastHeartbeat returns the arrival time of the most recent heartbeat.
	LastHeartbeat() time.Time
}

type pendingRequest struct {
	id   string
	kind wire.ExecutionType
	done chan *wire.Message
}

// Params are inbound parameters to construct the bridge.
type Params struct {
	fx.In

	Transport transport.Transport
	Gateway   notifier.Gateway
	Plots     plots.Controller
	CellBuf   cellbuf.CellBuffer
	Clock     clock.Clock
	Logger    *zap.SugaredLogger
	Stats     tally.Scope
}

type controller struct {
	transport transport.Transport
	gateway   notifier.Gateway
	plots     plots.Controller
	cells     cellbuf.CellBuffer
	clock     clock.Clock
	logger    *zap.SugaredLogger
	stats     tally.Scope

	mu      sync.Mutex
	pending *pendingRequest

	hbMu          sync.Mutex
	lastHeartbeat time.Time
}

// New creates a new bridge controller.
func New(p Params) Controller {
	return &controller{
		transport: p.Transport,
		gateway:   p.Gateway,
		plots:     p.Plots,
		cells:     p.CellBuf,
		clock:     p.Clock,
		logger:    p.Logger.With("controller", _nameKey),
		stats:     p.Stats.SubScope(_nameKey),
	}
}

// StartReader launches the reader loop.
func (c *controller) StartReader(ctx context.Context) {
	go c.readLoop(ctx)
}

// readLoop performs blocking line reads until the inbound stream terminates.
func (c *controller) readLoop(ctx context.Context) {
	c.logger.Infow("reader loop started")
	for {
		if err := ctx.Err(); err != nil {
			return
		}

		line, err := c.transport.ReadLine()
		if err != nil {
			c.classifyTermination(ctx, err)
			return
		}
		if len(line) == 0 {
			// Idle, not closed.
			c.clock.Sleep(_idleDelay)
			continue
		}

		msg, err := wire.DecodeLine(line)
		if err != nil {
			c.stats.Counter("malformed_messages").Inc(1)
			c.logger.Warnw("dropping malformed inbound line", "error", err)
			continue
		}
		c.consume(ctx, msg)
	}
}

// classifyTermination ends the loop according to the failure cause. Broken
// connections notify the user exactly once; a clean close stays silent.
func (c *controller) classifyTermination(ctx context.Context, err error) {
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, net.ErrClosed):
		c.logger.Infow("inbound stream closed")
	case errors.Is(err, syscall.EPIPE),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.ECONNABORTED):
		c.stats.Counter("connection_lost").Inc(1)
		c.logger.Errorw("inbound stream broken", "error", err)
		if notifyErr := c.gateway.ConnectionLost(ctx); notifyErr != nil {
			c.logger.Warnw("notifying connection loss", "error", notifyErr)
		}
	case errors.Is(err, enginederrors.ErrNoInboundStream):
		c.logger.Warnw("reader started without inbound stream")
	default:
		c.logger.Errorw("reader loop ending", "error", err)
	}
}

// issue stores a fresh pending request, sends the command, and waits for the
// matching response. A prior unresolved request is silently orphaned.
func (c *controller) issue(ctx context.Context, cmd wire.Command, kind wire.ExecutionType) (*wire.Message, error) {
	req := &pendingRequest{
		id:   cmd.ID,
		kind: kind,
		done: make(chan *wire.Message, 1),
	}

	c.mu.Lock()
	if c.pending != nil {
		c.stats.Counter("orphaned_requests").Inc(1)
		c.logger.Warnw("orphaning unresolved request", "id", c.pending.id)
	}
	c.pending = req
	c.mu.Unlock()

	if err := c.transport.Send(cmd); err != nil {
		c.clearPending(req)
		return nil, err
	}

	select {
	case msg := <-req.done:
		// Let trailing terminal output flush before handing back control.
		c.clock.Sleep(_flushDelay)
		return msg, nil
	case <-ctx.Done():
		c.clearPending(req)
		return nil, ctx.Err()
	}
}

// clearPending removes req from the slot if it is still the occupant.
func (c *controller) clearPending(req *pendingRequest) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == req {
		c.pending = nil
	}
}

func (c *controller) ExecuteCode(ctx context.Context, code string, execType wire.ExecutionType, breakpoints []int) (Result, error) {
	cmd := wire.NewCodeExecution(factory.RequestID(), code, execType, breakpoints)
	if execType == wire.ExecutionTypeNotebookCell {
		// The cell collects its output from the moment the command goes out;
		// dispatch delivers it with the matching completion.
		c.cells.Begin(cmd.ID)
	}
	msg, err := c.issue(ctx, cmd, execType)
	if err != nil {
		if execType == wire.ExecutionTypeNotebookCell {
			c.cells.Finish(cmd.ID)
		}
		return Result{}, err
	}

	var payload wire.ExecutionCompletePayload
	if err := msg.DecodePayload(&payload); err != nil {
		return Result{}, err
	}
	return Result{
		Success: payload.Success,
		Result:  StripTypePrefix(payload.Result),
		Error:   payload.Error,
	}, nil
}

func (c *controller) TestConnection(ctx context.Context) error {
	_, err := c.issue(ctx, wire.NewConnectionTest(factory.RequestID()), "")
	return err
}

func (c *controller) GetVariableValue(ctx context.Context, name string) (string, error) {
	msg, err := c.issue(ctx, wire.NewGetVariableValue(factory.RequestID(), name), "")
	if err != nil {
		return "", err
	}

	var payload wire.VariableValuePayload
	if err := msg.DecodePayload(&payload); err != nil {
		return "", err
	}
	return StripTypePrefix(payload.Value), nil
}

func (c *controller) RequestWorkspaceVariables(ctx context.Context) error {
	return c.transport.Send(wire.NewGetWorkspaceVariables(factory.RequestID()))
}

func (c *controller) ActivateProject(ctx context.Context, path string) error {
	return c.transport.Send(wire.NewActivateProject(factory.RequestID(), path))
}

func (c *controller) DeactivateProject(ctx context.Context) error {
	return c.transport.Send(wire.NewDeactivateProject(factory.RequestID()))
}

func (c *controller) LastHeartbeat() time.Time {
	c.hbMu.Lock()
	defer c.hbMu.Unlock()
	return c.lastHeartbeat
}

func (c *controller) recordHeartbeat() {
	c.hbMu.Lock()
	defer c.hbMu.Unlock()
	c.lastHeartbeat = c.clock.Now()
}
