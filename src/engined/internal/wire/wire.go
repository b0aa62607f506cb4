// Package wire defines the newline-delimited JSON protocol spoken with the
// engine process. Outbound commands travel on the command channel, inbound
// messages arrive on the event channel, one object per line.
package wire

import "encoding/json"

// Type discriminates inbound messages.
type Type string

const (
	// TypeExecutionComplete reports the outcome of a code execution request.
	TypeExecutionComplete Type = "executionComplete"
	// TypeConnectionTestResponse answers a connection test command.
	TypeConnectionTestResponse Type = "connectionTestResponse"
	// TypePlotData carries a serialized plot produced during execution.
	TypePlotData Type = "plotData"
	// TypeSessionStatus reports the engine's busy/idle state.
	TypeSessionStatus Type = "sessionStatus"
	// TypeError reports an engine-side protocol error.
	TypeError Type = "error"
	// TypeHeartbeat is a periodic liveness signal.
	TypeHeartbeat Type = "heartbeat"
	// TypeWorkspaceVariables lists the engine's top-level workspace bindings.
	TypeWorkspaceVariables Type = "workspaceVariables"
	// TypeVariableValue carries the rendered value of a single binding.
	TypeVariableValue Type = "variableValue"
)

// ExecutionType distinguishes the origin of a code execution request.
type ExecutionType string

const (
	// ExecutionTypeFile runs a whole file.
	ExecutionTypeFile ExecutionType = "file"
	// ExecutionTypeNotebookCell runs an isolated notebook cell.
	ExecutionTypeNotebookCell ExecutionType = "notebookCell"
	// ExecutionTypeInline runs an inline selection.
	ExecutionTypeInline ExecutionType = "inline"
	// ExecutionTypeAPI runs code on behalf of another tool, without prompt echo.
	ExecutionTypeAPI ExecutionType = "api"
)

// Message is a single parsed inbound message. Response-shaped types carry the
// correlation ID of the command that triggered them.
type Message struct {
	Type    Type            `json:"type"`
	ID      string          `json:"id,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// IsResponse reports whether this message type answers an outbound command
// and should be matched against the pending request slot.
func (m *Message) IsResponse() bool {
	switch m.Type {
	case TypeExecutionComplete, TypeConnectionTestResponse, TypeVariableValue:
		return true
	}
	return false
}

// ExecutionCompletePayload is the payload of TypeExecutionComplete.
type ExecutionCompletePayload struct {
	Success       bool          `json:"success"`
	Result        string        `json:"result,omitempty"`
	Error         string        `json:"error,omitempty"`
	ExecutionType ExecutionType `json:"executionType,omitempty"`
}

// PlotDataPayload is the payload of TypePlotData.
type PlotDataPayload struct {
	MimeType string `json:"mimeType"`
	// Data is base64 for binary mime types, the raw text otherwise.
	Data string `json:"data"`
}

// SessionStatusPayload is the payload of TypeSessionStatus.
type SessionStatusPayload struct {
	Busy bool `json:"busy"`
}

// ErrorPayload is the payload of TypeError.
type ErrorPayload struct {
	Message string `json:"message"`
}

// Variable is one workspace binding as reported by the engine.
type Variable struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

// WorkspaceVariablesPayload is the payload of TypeWorkspaceVariables.
type WorkspaceVariablesPayload struct {
	Variables []Variable `json:"variables"`
}

// VariableValuePayload is the payload of TypeVariableValue.
type VariableValuePayload struct {
	Name  string `json:"name"`
	Type  string `json:"type,omitempty"`
	Value string `json:"value"`
}

// DecodePayload unmarshals the message payload into out.
func (m *Message) DecodePayload(out interface{}) error {
	if len(m.Payload) == 0 {
		return nil
	}
	return json.Unmarshal(m.Payload, out)
}
