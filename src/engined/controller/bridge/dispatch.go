package bridge

import (
	"context"

	notifier "github.com/replkit/engined/src/engined/gateway/ide-client"
	"github.com/replkit/engined/src/engined/internal/wire"
)

// _prompt is the synthetic prompt echoed to frontend terminals after an
// execution so the next input line starts on a fresh prompt.
const _prompt = "engine> "

// consume routes one parsed inbound message. Response-shaped messages are
// matched against the pending slot; everything else is handled standalone.
func (c *controller) consume(ctx context.Context, msg *wire.Message) {
	c.stats.Counter("messages_received").Inc(1)

	switch msg.Type {
	case wire.TypeExecutionComplete:
		c.consumeExecutionComplete(ctx, msg)
	case wire.TypeConnectionTestResponse:
		c.resolve(msg)
	case wire.TypeVariableValue:
		c.consumeVariableValue(ctx, msg)
	case wire.TypeWorkspaceVariables:
		c.consumeWorkspaceVariables(ctx, msg)
	case wire.TypePlotData:
		c.consumePlotData(ctx, msg)
	case wire.TypeSessionStatus:
		c.consumeSessionStatus(ctx, msg)
	case wire.TypeError:
		var payload wire.ErrorPayload
		if err := msg.DecodePayload(&payload); err != nil {
			c.logger.Warnw("decoding error payload", "error", err)
			return
		}
		c.stats.Counter("engine_errors").Inc(1)
		c.logger.Errorw("engine reported error", "message", payload.Message)
	case wire.TypeHeartbeat:
		c.recordHeartbeat()
	default:
		c.stats.Counter("unknown_messages").Inc(1)
		c.logger.Warnw("ignoring message of unknown type", "type", msg.Type)
	}
}

// resolve matches a response against the pending slot. A matching id delivers
// the message to its waiter; a mismatched id consumes the slot without
// delivering, and the message is dropped. It returns the request that was
// resolved, or nil.
func (c *controller) resolve(msg *wire.Message) *pendingRequest {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending == nil {
		c.stats.Counter("unsolicited_responses").Inc(1)
		c.logger.Warnw("response with no pending request", "type", msg.Type, "id", msg.ID)
		return nil
	}
	if c.pending.id != msg.ID {
		c.stats.Counter("mismatched_responses").Inc(1)
		c.logger.Warnw("response id does not match pending request",
			"type", msg.Type, "id", msg.ID, "pendingID", c.pending.id)
		c.pending = nil
		return nil
	}

	req := c.pending
	c.pending = nil
	req.done <- msg
	return req
}

// consumeExecutionComplete resolves the waiter when ids match, and broadcasts
// a completion notification to frontends regardless of correlation outcome.
func (c *controller) consumeExecutionComplete(ctx context.Context, msg *wire.Message) {
	req := c.resolve(msg)

	var payload wire.ExecutionCompletePayload
	if err := msg.DecodePayload(&payload); err != nil {
		c.logger.Warnw("decoding execution completion", "id", msg.ID, "error", err)
		return
	}

	kind := payload.ExecutionType
	if kind == "" && req != nil {
		kind = req.kind
	}

	if err := c.gateway.ExecutionComplete(ctx, notifier.ExecutionCompleteParams{
		ID:            msg.ID,
		Success:       payload.Success,
		Result:        StripTypePrefix(payload.Result),
		Error:         payload.Error,
		ExecutionType: string(kind),
	}); err != nil {
		c.logger.Warnw("notifying execution completion", "id", msg.ID, "error", err)
	}

	// API and notebook-cell executions render their own output surface.
	if kind != wire.ExecutionTypeAPI && kind != wire.ExecutionTypeNotebookCell {
		if err := c.gateway.Prompt(ctx, _prompt); err != nil {
			c.logger.Warnw("sending synthetic prompt", "id", msg.ID, "error", err)
		}
	}

	if kind == wire.ExecutionTypeNotebookCell {
		if cell, ok := c.cells.Finish(msg.ID); ok {
			if err := c.gateway.NotebookCellDone(ctx, cell); err != nil {
				c.logger.Warnw("notifying notebook cell completion", "id", msg.ID, "error", err)
			}
		}
	}

	// Executions that can mutate the workspace trigger a refresh so the
	// variable view stays current. Failures are logged only.
	if payload.Success && (kind == wire.ExecutionTypeFile || kind == wire.ExecutionTypeNotebookCell) {
		c.clock.AfterFunc(_followUpDelay, func() {
			if err := c.RequestWorkspaceVariables(ctx); err != nil {
				c.logger.Warnw("requesting workspace refresh", "error", err)
			}
		})
	}
}

func (c *controller) consumeVariableValue(ctx context.Context, msg *wire.Message) {
	c.resolve(msg)

	var payload wire.VariableValuePayload
	if err := msg.DecodePayload(&payload); err != nil {
		c.logger.Warnw("decoding variable value", "id", msg.ID, "error", err)
		return
	}
	if err := c.gateway.VariableValue(ctx, payload.Name, StripTypePrefix(payload.Value)); err != nil {
		c.logger.Warnw("notifying variable value", "name", payload.Name, "error", err)
	}
}

func (c *controller) consumeWorkspaceVariables(ctx context.Context, msg *wire.Message) {
	var payload wire.WorkspaceVariablesPayload
	if err := msg.DecodePayload(&payload); err != nil {
		c.logger.Warnw("decoding workspace variables", "error", err)
		return
	}

	variables := NormalizeVariables(payload.Variables)
	if err := c.gateway.WorkspaceVariables(ctx, variables); err != nil {
		c.logger.Warnw("notifying workspace variables", "error", err)
	}
}

// consumePlotData stores a plot into the active notebook cell when one is
// collecting, and into the plot pane history otherwise.
func (c *controller) consumePlotData(ctx context.Context, msg *wire.Message) {
	var payload wire.PlotDataPayload
	if err := msg.DecodePayload(&payload); err != nil {
		c.logger.Warnw("decoding plot data", "error", err)
		return
	}

	if c.cells.AppendPlot(payload) {
		return
	}

	stored, err := c.plots.HandlePlot(ctx, payload)
	if err != nil {
		c.logger.Warnw("storing plot", "error", err)
		return
	}
	if err := c.gateway.Plot(ctx, notifier.PlotParams{
		MimeType: stored.MimeType,
		Data:     stored.Data,
		URL:      stored.URL,
	}); err != nil {
		c.logger.Warnw("notifying plot", "error", err)
	}
}

func (c *controller) consumeSessionStatus(ctx context.Context, msg *wire.Message) {
	var payload wire.SessionStatusPayload
	if err := msg.DecodePayload(&payload); err != nil {
		c.logger.Warnw("decoding session status", "error", err)
		return
	}

	var err error
	if payload.Busy {
		err = c.gateway.Busy(ctx)
	} else {
		err = c.gateway.BusyDone(ctx)
	}
	if err != nil {
		c.logger.Warnw("notifying session status", "busy", payload.Busy, "error", err)
	}
}
