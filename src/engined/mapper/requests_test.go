package mapper

import (
	"testing"

	"github.com/replkit/engined/src/engined/entity"
	"github.com/replkit/engined/src/engined/factory"
	"github.com/replkit/engined/src/engined/internal/wire"
	"github.com/stretchr/testify/assert"
)

func TestRequestToExecuteCodeParams(t *testing.T) {
	t.Run("valid params", func(t *testing.T) {
		req := factory.JSONRPCRequest("sampleMethodName", ExecuteCodeParams{
			Code:          "1+1",
			ExecutionType: wire.ExecutionTypeFile,
			Breakpoints:   []int{3},
		})

		result, err := RequestToExecuteCodeParams(req)
		assert.NoError(t, err)
		assert.Equal(t, "1+1", result.Code)
		assert.Equal(t, wire.ExecutionTypeFile, result.ExecutionType)
		assert.Equal(t, []int{3}, result.Breakpoints)
	})

	t.Run("execution type defaults to inline", func(t *testing.T) {
		req := factory.JSONRPCRequest("sampleMethodName", struct {
			Code string `json:"code"`
		}{Code: "1+1"})

		result, err := RequestToExecuteCodeParams(req)
		assert.NoError(t, err)
		assert.Equal(t, wire.ExecutionTypeInline, result.ExecutionType)
	})

	t.Run("invalid params", func(t *testing.T) {
		req := factory.JSONRPCRequest("sampleMethodName", []string{"bad"})

		_, err := RequestToExecuteCodeParams(req)
		assert.Error(t, err)
	})
}

func TestRequestToChangeProjectParams(t *testing.T) {
	t.Run("valid params", func(t *testing.T) {
		req := factory.JSONRPCRequest("sampleMethodName", ChangeProjectParams{Path: "/work/proj"})

		result, err := RequestToChangeProjectParams(req)
		assert.NoError(t, err)
		assert.Equal(t, "/work/proj", result.Path)
	})

	t.Run("invalid params", func(t *testing.T) {
		req := factory.JSONRPCRequest("sampleMethodName", []string{"bad"})

		_, err := RequestToChangeProjectParams(req)
		assert.Error(t, err)
	})
}

func TestRequestToVariableValueParams(t *testing.T) {
	t.Run("valid params", func(t *testing.T) {
		req := factory.JSONRPCRequest("sampleMethodName", VariableValueParams{Name: "xs"})

		result, err := RequestToVariableValueParams(req)
		assert.NoError(t, err)
		assert.Equal(t, "xs", result.Name)
	})

	t.Run("invalid params", func(t *testing.T) {
		req := factory.JSONRPCRequest("sampleMethodName", []string{"bad"})

		_, err := RequestToVariableValueParams(req)
		assert.Error(t, err)
	})
}

func TestPhaseToStartupPhaseResult(t *testing.T) {
	assert.Equal(t, &StartupPhaseResult{Phase: "Completed"}, PhaseToStartupPhaseResult(entity.PhaseCompleted))
}
