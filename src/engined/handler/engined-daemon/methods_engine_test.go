package enginedaemon

import (
	"context"
	"errors"
	"testing"

	"github.com/replkit/engined/src/engined/controller/bridge"
	"github.com/replkit/engined/src/engined/controller/engined-daemon/enginedaemonmock"
	"github.com/replkit/engined/src/engined/factory"
	"github.com/replkit/engined/src/engined/internal/wire"
	"github.com/replkit/engined/src/engined/mapper"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestExecuteCode(t *testing.T) {
	tests := []struct {
		name             string
		params           interface{}
		controllerCalls  int
		controllerResult bridge.Result
		controllerError  error
		wantErr          bool
		wantResult       interface{}
	}{
		{
			name:            "invalid params",
			params:          []string{"not", "an", "object"},
			controllerCalls: 0,
			wantErr:         true,
		},
		{
			name:            "error from controller",
			params:          mapper.ExecuteCodeParams{Code: "1+1", ExecutionType: wire.ExecutionTypeInline},
			controllerCalls: 1,
			controllerError: errors.New("controller error"),
			wantErr:         true,
		},
		{
			name:             "no error from controller",
			params:           mapper.ExecuteCodeParams{Code: "1+1", ExecutionType: wire.ExecutionTypeInline},
			controllerCalls:  1,
			controllerResult: bridge.Result{Success: true, Result: "2"},
			wantErr:          false,
			wantResult:       &mapper.ExecuteCodeResult{Success: true, Result: "2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ctx := context.Background()

			var replied interface{}
			replier := func(ctx context.Context, result interface{}, err error) error {
				replied = result
				return err
			}

			c := enginedaemonmock.NewMockController(ctrl)
			c.EXPECT().ExecuteCode(gomock.Any(), "1+1", wire.ExecutionTypeInline, gomock.Any()).
				Return(tt.controllerResult, tt.controllerError).Times(tt.controllerCalls)

			r := jsonRPCRouter{engined: c}
			err := r.HandleReq(ctx, replier, factory.JSONRPCRequest(MethodExecuteCode, tt.params))

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantResult, replied)
			}
		})
	}
}

func TestExecuteCodeDefaultsToInline(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	c := enginedaemonmock.NewMockController(ctrl)
	c.EXPECT().ExecuteCode(gomock.Any(), "1+1", wire.ExecutionTypeInline, gomock.Any()).
		Return(bridge.Result{Success: true, Result: "2"}, nil)

	r := jsonRPCRouter{engined: c}
	params := struct {
		Code string `json:"code"`
	}{Code: "1+1"}
	err := r.HandleReq(ctx, newMockReplier(), factory.JSONRPCRequest(MethodExecuteCode, params))
	assert.NoError(t, err)
}

func TestInterrupt(t *testing.T) {
	tests := []struct {
		name            string
		controllerError error
		wantErr         bool
	}{
		{
			name:            "error from controller",
			controllerError: errors.New("controller error"),
			wantErr:         true,
		},
		{
			name:            "no error from controller",
			controllerError: nil,
			wantErr:         false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ctx := context.Background()
			replier := newMockReplier()

			c := enginedaemonmock.NewMockController(ctrl)
			c.EXPECT().InterruptEngine(gomock.Any()).Return(tt.controllerError)

			r := jsonRPCRouter{engined: c}
			err := r.HandleReq(ctx, replier, factory.JSONRPCRequest(MethodInterrupt, nil))

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTestConnection(t *testing.T) {
	tests := []struct {
		name            string
		controllerError error
		wantErr         bool
	}{
		{
			name:            "error from controller",
			controllerError: errors.New("controller error"),
			wantErr:         true,
		},
		{
			name:            "no error from controller",
			controllerError: nil,
			wantErr:         false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ctx := context.Background()
			replier := newMockReplier()

			c := enginedaemonmock.NewMockController(ctrl)
			c.EXPECT().TestConnection(gomock.Any()).Return(tt.controllerError)

			r := jsonRPCRouter{engined: c}
			err := r.HandleReq(ctx, replier, factory.JSONRPCRequest(MethodTestConnection, nil))

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetWorkspaceVariables(t *testing.T) {
	tests := []struct {
		name            string
		controllerError error
		wantErr         bool
	}{
		{
			name:            "error from controller",
			controllerError: errors.New("controller error"),
			wantErr:         true,
		},
		{
			name:            "no error from controller",
			controllerError: nil,
			wantErr:         false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ctx := context.Background()
			replier := newMockReplier()

			c := enginedaemonmock.NewMockController(ctrl)
			c.EXPECT().GetWorkspaceVariables(gomock.Any()).Return(tt.controllerError)

			r := jsonRPCRouter{engined: c}
			err := r.HandleReq(ctx, replier, factory.JSONRPCRequest(MethodGetWorkspaceVariables, nil))

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetVariableValue(t *testing.T) {
	tests := []struct {
		name            string
		params          interface{}
		controllerCalls int
		controllerValue string
		controllerError error
		wantErr         bool
		wantResult      interface{}
	}{
		{
			name:            "invalid params",
			params:          []string{"not", "an", "object"},
			controllerCalls: 0,
			wantErr:         true,
		},
		{
			name:            "error from controller",
			params:          mapper.VariableValueParams{Name: "xs"},
			controllerCalls: 1,
			controllerError: errors.New("controller error"),
			wantErr:         true,
		},
		{
			name:            "no error from controller",
			params:          mapper.VariableValueParams{Name: "xs"},
			controllerCalls: 1,
			controllerValue: "[1, 2]",
			wantErr:         false,
			wantResult:      &mapper.VariableValueResult{Value: "[1, 2]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ctx := context.Background()

			var replied interface{}
			replier := func(ctx context.Context, result interface{}, err error) error {
				replied = result
				return err
			}

			c := enginedaemonmock.NewMockController(ctrl)
			c.EXPECT().GetVariableValue(gomock.Any(), "xs").
				Return(tt.controllerValue, tt.controllerError).Times(tt.controllerCalls)

			r := jsonRPCRouter{engined: c}
			err := r.HandleReq(ctx, replier, factory.JSONRPCRequest(MethodGetVariableValue, tt.params))

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantResult, replied)
			}
		})
	}
}
