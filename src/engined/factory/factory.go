// Package factory provides user-defined factories for common values.
package factory

import (
	"github.com/gofrs/uuid"
	"github.com/replkit/engined/src/engined/internal/wire"
	"go.lsp.dev/jsonrpc2"
)

// UUID is a user-defined factory for a random uuid.UUID.
func UUID() uuid.UUID {
	return uuid.Must(uuid.NewV4())
}

// JSONRPCRequest is a user-defined factory for a JSON-RPC request containing the specified method and parameters.
func JSONRPCRequest(method string, params interface{}) jsonrpc2.Request {
	req, _ := jsonrpc2.NewCall(jsonrpc2.NewNumberID(5), method, params)
	return req
}

// RequestID is a user-defined factory for a wire-level correlation id.
func RequestID() string {
	return UUID().String()
}

// ExecutionCompleteMessage is a factory for a response-shaped inbound message,
// primarily for tests.
func ExecutionCompleteMessage(id string, success bool, result string) *wire.Message {
	m, err := wire.NewMessage(wire.TypeExecutionComplete, id, wire.ExecutionCompletePayload{
		Success: success,
		Result:  result,
	})
	if err != nil {
		panic(err)
	}
	return m
}

// HeartbeatMessage is a factory for a heartbeat inbound message.
func HeartbeatMessage() *wire.Message {
	m, err := wire.NewMessage(wire.TypeHeartbeat, "", nil)
	if err != nil {
		panic(err)
	}
	return m
}
