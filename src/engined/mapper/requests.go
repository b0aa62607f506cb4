package mapper

import (
	"encoding/json"
	"fmt"

	"github.com/replkit/engined/src/engined/entity"
	"github.com/replkit/engined/src/engined/internal/wire"
	"go.lsp.dev/jsonrpc2"
)

// ExecuteCodeParams are the parameters of an engined/executeCode request.
type ExecuteCodeParams struct {
	Code          string             `json:"code"`
	ExecutionType wire.ExecutionType `json:"executionType,omitempty"`
	Breakpoints   []int              `json:"breakpoints,omitempty"`
}

// ChangeProjectParams are the parameters of an engined/changeProject request.
type ChangeProjectParams struct {
	Path string `json:"path"`
}

// VariableValueParams are the parameters of an engined/getVariableValue request.
type VariableValueParams struct {
	Name string `json:"name"`
}

// ExecuteCodeResult is the reply payload of an engined/executeCode request.
type ExecuteCodeResult struct {
	Success bool   `json:"success"`
	Result  string `json:"result"`
	Error   string `json:"error,omitempty"`
}

// StartupPhaseResult is the reply payload of an engined/startupPhase request.
type StartupPhaseResult struct {
	Phase string `json:"phase"`
}

// VariableValueResult is the reply payload of an engined/getVariableValue request.
type VariableValueResult struct {
	Value string `json:"value"`
}

// RequestToExecuteCodeParams maps the parameters from a jsonrpc2.Request into
// ExecuteCodeParams. An omitted execution type defaults to inline.
func RequestToExecuteCodeParams(req jsonrpc2.Request) (*ExecuteCodeParams, error) {
	params := ExecuteCodeParams{}
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return nil, wrapErrParse(err)
	}
	if params.ExecutionType == "" {
		params.ExecutionType = wire.ExecutionTypeInline
	}
	return &params, nil
}

// RequestToChangeProjectParams maps the parameters from a jsonrpc2.Request into ChangeProjectParams.
func RequestToChangeProjectParams(req jsonrpc2.Request) (*ChangeProjectParams, error) {
	params := ChangeProjectParams{}
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return nil, wrapErrParse(err)
	}
	return &params, nil
}

// RequestToVariableValueParams maps the parameters from a jsonrpc2.Request into VariableValueParams.
func RequestToVariableValueParams(req jsonrpc2.Request) (*VariableValueParams, error) {
	params := VariableValueParams{}
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return nil, wrapErrParse(err)
	}
	return &params, nil
}

// PhaseToStartupPhaseResult maps a startup phase into its reply payload.
func PhaseToStartupPhaseResult(p entity.Phase) *StartupPhaseResult {
	return &StartupPhaseResult{Phase: p.String()}
}

func wrapErrParse(err error) error {
	return fmt.Errorf("%s: %w", jsonrpc2.ErrParse, err)
}
