package bridge

import (
	"context"
	"fmt"
	"io"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/replkit/engined/src/engined/controller/plots"
	"github.com/replkit/engined/src/engined/controller/plots/plotsmock"
	notifier "github.com/replkit/engined/src/engined/gateway/ide-client"
	"github.com/replkit/engined/src/engined/gateway/ide-client/ideclientmock"
	"github.com/replkit/engined/src/engined/internal/cellbuf"
	"github.com/replkit/engined/src/engined/internal/clock"
	"github.com/replkit/engined/src/engined/internal/clock/clockmock"
	"github.com/replkit/engined/src/engined/internal/transport/transportmock"
	"github.com/replkit/engined/src/engined/internal/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type testBridge struct {
	bridge    *controller
	transport *transportmock.MockTransport
	gateway   *ideclientmock.MockGateway
	plots     *plotsmock.MockController
	clock     *clockmock.MockClock
}

func newTestBridge(t *testing.T) *testBridge {
	t.Helper()
	ctrl := gomock.NewController(t)

	tb := &testBridge{
		transport: transportmock.NewMockTransport(ctrl),
		gateway:   ideclientmock.NewMockGateway(ctrl),
		plots:     plotsmock.NewMockController(ctrl),
		clock:     clockmock.NewMockClock(ctrl),
	}
	tb.bridge = New(Params{
		Transport: tb.transport,
		Gateway:   tb.gateway,
		Plots:     tb.plots,
		CellBuf:   cellbuf.New(cellbuf.Params{Logger: zap.NewNop().Sugar()}),
		Clock:     tb.clock,
		Logger:    zap.NewNop().Sugar(),
		Stats:     tally.NewTestScope("testing", nil),
	}).(*controller)
	return tb
}

// completionLine builds an executionComplete wire line for the given id.
func completionLine(id, result string, success bool) []byte {
	return []byte(fmt.Sprintf(
		`{"type":"executionComplete","id":%q,"payload":{"success":%t,"result":%q}}`,
		id, success, result))
}

func TestExecuteCodeEndToEnd(t *testing.T) {
	tb := newTestBridge(t)
	ctx := context.Background()

	sent := make(chan wire.Command, 1)
	tb.transport.EXPECT().Send(gomock.Any()).DoAndReturn(func(cmd wire.Command) error {
		sent <- cmd
		return nil
	})

	// The reader blocks until the command goes out, answers it, then closes.
	gomock.InOrder(
		tb.transport.EXPECT().ReadLine().DoAndReturn(func() ([]byte, error) {
			cmd := <-sent
			assert.Equal(t, wire.CommandCodeExecution, cmd.Command)
			assert.Equal(t, "1+1", cmd.Code)
			return completionLine(cmd.ID, "2", true), nil
		}),
		tb.transport.EXPECT().ReadLine().Return(nil, io.EOF),
	)

	tb.clock.EXPECT().Sleep(_flushDelay)
	tb.gateway.EXPECT().ExecutionComplete(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, params notifier.ExecutionCompleteParams) error {
			assert.True(t, params.Success)
			assert.Equal(t, "2", params.Result)
			return nil
		})
	tb.gateway.EXPECT().Prompt(gomock.Any(), _prompt).Return(nil)

	tb.bridge.StartReader(ctx)
	result, err := tb.bridge.ExecuteCode(ctx, "1+1", wire.ExecutionTypeInline, nil)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "2", result.Result)
}

func TestExecuteNotebookCellCollectsOutput(t *testing.T) {
	tb := newTestBridge(t)
	ctx := context.Background()

	sent := make(chan wire.Command, 1)
	tb.transport.EXPECT().Send(gomock.Any()).DoAndReturn(func(cmd wire.Command) error {
		sent <- cmd
		return nil
	})

	// The reader answers the command once it goes out; lines arriving while
	// the cell runs land in the buffer instead of the terminal.
	gomock.InOrder(
		tb.transport.EXPECT().ReadLine().DoAndReturn(func() ([]byte, error) {
			cmd := <-sent
			assert.Equal(t, wire.ExecutionTypeNotebookCell, cmd.ExecutionType)
			assert.True(t, tb.bridge.cells.Active())
			assert.True(t, tb.bridge.cells.Append("cell output"))
			return completionLine(cmd.ID, "42", true), nil
		}),
		tb.transport.EXPECT().ReadLine().Return(nil, io.EOF),
	)

	tb.clock.EXPECT().Sleep(_flushDelay)
	tb.clock.EXPECT().AfterFunc(_followUpDelay, gomock.Any()).Return(nil)
	tb.gateway.EXPECT().ExecutionComplete(gomock.Any(), gomock.Any()).Return(nil)
	tb.gateway.EXPECT().NotebookCellDone(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cell cellbuf.Cell) error {
			assert.Equal(t, []string{"cell output"}, cell.Lines)
			return nil
		})

	tb.bridge.StartReader(ctx)
	result, err := tb.bridge.ExecuteCode(ctx, "plot(xs)", wire.ExecutionTypeNotebookCell, nil)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "42", result.Result)
	assert.False(t, tb.bridge.cells.Active())
}

func TestExecuteNotebookCellDiscardsCellOnFailure(t *testing.T) {
	t.Run("send failure", func(t *testing.T) {
		tb := newTestBridge(t)
		tb.transport.EXPECT().Send(gomock.Any()).Return(fmt.Errorf("pipe closed"))

		_, err := tb.bridge.ExecuteCode(context.Background(), "plot(xs)", wire.ExecutionTypeNotebookCell, nil)
		assert.Error(t, err)
		assert.False(t, tb.bridge.cells.Active())
	})

	t.Run("cancelled context", func(t *testing.T) {
		tb := newTestBridge(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		tb.transport.EXPECT().Send(gomock.Any()).Return(nil)

		_, err := tb.bridge.ExecuteCode(ctx, "plot(xs)", wire.ExecutionTypeNotebookCell, nil)
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, tb.bridge.cells.Active())
	})
}

func TestExecuteCodeOrphansPriorRequest(t *testing.T) {
	tb := newTestBridge(t)
	ctx1, cancel1 := context.WithCancel(context.Background())
	defer cancel1()
	ctx2 := context.Background()

	var mu sync.Mutex
	var ids []string
	tb.transport.EXPECT().Send(gomock.Any()).DoAndReturn(func(cmd wire.Command) error {
		mu.Lock()
		defer mu.Unlock()
		ids = append(ids, cmd.ID)
		return nil
	}).Times(2)

	first := make(chan error, 1)
	go func() {
		_, err := tb.bridge.ExecuteCode(ctx1, "sleep(60)", wire.ExecutionTypeInline, nil)
		first <- err
	}()

	// Wait until the first request occupies the slot.
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(ids) == 1
	}, time.Second, time.Millisecond)

	tb.clock.EXPECT().Sleep(_flushDelay)
	tb.gateway.EXPECT().ExecutionComplete(gomock.Any(), gomock.Any()).Return(nil)
	tb.gateway.EXPECT().Prompt(gomock.Any(), _prompt).Return(nil)

	second := make(chan Result, 1)
	go func() {
		result, err := tb.bridge.ExecuteCode(ctx2, "1+1", wire.ExecutionTypeInline, nil)
		require.NoError(t, err)
		second <- result
	}()
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(ids) == 2
	}, time.Second, time.Millisecond)

	mu.Lock()
	secondID := ids[1]
	mu.Unlock()

	// Resolving the second request never touches the orphaned first waiter.
	msg, err := wire.DecodeLine(completionLine(secondID, "2", true))
	require.NoError(t, err)
	tb.bridge.consume(ctx2, msg)

	result := <-second
	assert.Equal(t, "2", result.Result)

	select {
	case err := <-first:
		t.Fatalf("orphaned request resolved unexpectedly: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	// The orphaned waiter only ends on cancellation.
	cancel1()
	assert.ErrorIs(t, <-first, context.Canceled)
}

func TestMismatchedResponseConsumesSlot(t *testing.T) {
	tb := newTestBridge(t)
	ctx, cancel := context.WithCancel(context.Background())

	tb.transport.EXPECT().Send(gomock.Any()).Return(nil)
	tb.gateway.EXPECT().ExecutionComplete(gomock.Any(), gomock.Any()).Return(nil)
	tb.gateway.EXPECT().Prompt(gomock.Any(), gomock.Any()).Return(nil)

	done := make(chan error, 1)
	go func() {
		_, err := tb.bridge.ExecuteCode(ctx, "1+1", wire.ExecutionTypeInline, nil)
		done <- err
	}()
	require.Eventually(t, func() bool {
		tb.bridge.mu.Lock()
		defer tb.bridge.mu.Unlock()
		return tb.bridge.pending != nil
	}, time.Second, time.Millisecond)

	msg, err := wire.DecodeLine(completionLine("some-other-id", "2", true))
	require.NoError(t, err)
	tb.bridge.consume(ctx, msg)

	// The slot is consumed but nothing was delivered.
	tb.bridge.mu.Lock()
	assert.Nil(t, tb.bridge.pending)
	tb.bridge.mu.Unlock()

	select {
	case err := <-done:
		t.Fatalf("waiter resolved from mismatched response: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestReadLoopIdlesOnZeroByteRead(t *testing.T) {
	tb := newTestBridge(t)

	gomock.InOrder(
		tb.transport.EXPECT().ReadLine().Return(nil, nil),
		tb.transport.EXPECT().ReadLine().Return([]byte{}, nil),
		tb.transport.EXPECT().ReadLine().Return(nil, io.EOF),
	)
	tb.clock.EXPECT().Sleep(_idleDelay).Times(2)

	tb.bridge.readLoop(context.Background())
}

func TestReadLoopDropsMalformedLines(t *testing.T) {
	tb := newTestBridge(t)

	gomock.InOrder(
		tb.transport.EXPECT().ReadLine().Return([]byte("not json"), nil),
		tb.transport.EXPECT().ReadLine().Return([]byte(`{"type":"heartbeat"}`), nil),
		tb.transport.EXPECT().ReadLine().Return(nil, io.EOF),
	)
	tb.clock.EXPECT().Now().Return(time.Unix(100, 0))

	tb.bridge.readLoop(context.Background())
	assert.Equal(t, time.Unix(100, 0), tb.bridge.LastHeartbeat())
}

func TestReadLoopTermination(t *testing.T) {
	t.Run("broken pipe notifies exactly once", func(t *testing.T) {
		tb := newTestBridge(t)
		tb.transport.EXPECT().ReadLine().Return(nil, fmt.Errorf("writing: %w", syscall.EPIPE))
		tb.gateway.EXPECT().ConnectionLost(gomock.Any()).Return(nil).Times(1)
		tb.bridge.readLoop(context.Background())
	})

	t.Run("connection reset notifies exactly once", func(t *testing.T) {
		tb := newTestBridge(t)
		tb.transport.EXPECT().ReadLine().Return(nil, syscall.ECONNRESET)
		tb.gateway.EXPECT().ConnectionLost(gomock.Any()).Return(nil).Times(1)
		tb.bridge.readLoop(context.Background())
	})

	t.Run("clean EOF exits silently", func(t *testing.T) {
		tb := newTestBridge(t)
		tb.transport.EXPECT().ReadLine().Return(nil, io.EOF)
		tb.bridge.readLoop(context.Background())
	})

	t.Run("unexpected error exits without notification", func(t *testing.T) {
		tb := newTestBridge(t)
		tb.transport.EXPECT().ReadLine().Return(nil, fmt.Errorf("surprise"))
		tb.bridge.readLoop(context.Background())
	})

	t.Run("cancelled context stops the loop", func(t *testing.T) {
		tb := newTestBridge(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		tb.bridge.readLoop(ctx)
	})
}

func TestWorkspaceRefreshAfterFileExecution(t *testing.T) {
	tb := newTestBridge(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var sent []wire.Command
	tb.transport.EXPECT().Send(gomock.Any()).DoAndReturn(func(cmd wire.Command) error {
		mu.Lock()
		defer mu.Unlock()
		sent = append(sent, cmd)
		return nil
	}).Times(2)

	tb.clock.EXPECT().Sleep(_flushDelay)
	tb.clock.EXPECT().AfterFunc(_followUpDelay, gomock.Any()).DoAndReturn(
		func(_ time.Duration, f func()) clock.Timer {
			f()
			return nil
		})
	tb.gateway.EXPECT().ExecutionComplete(gomock.Any(), gomock.Any()).Return(nil)
	tb.gateway.EXPECT().Prompt(gomock.Any(), gomock.Any()).Return(nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := tb.bridge.ExecuteCode(ctx, `include("script")`, wire.ExecutionTypeFile, nil)
		require.NoError(t, err)
	}()
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(sent) == 1
	}, time.Second, time.Millisecond)

	msg, err := wire.DecodeLine(completionLine(sent[0].ID, "", true))
	require.NoError(t, err)
	tb.bridge.consume(ctx, msg)
	<-done

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, sent, 2)
	assert.Equal(t, wire.CommandGetWorkspaceVariables, sent[1].Command)
}

func TestExecuteCodeSendFailure(t *testing.T) {
	tb := newTestBridge(t)
	tb.transport.EXPECT().Send(gomock.Any()).Return(fmt.Errorf("pipe closed"))

	_, err := tb.bridge.ExecuteCode(context.Background(), "1+1", wire.ExecutionTypeInline, nil)
	assert.Error(t, err)

	tb.bridge.mu.Lock()
	assert.Nil(t, tb.bridge.pending)
	tb.bridge.mu.Unlock()
}

func TestGetVariableValue(t *testing.T) {
	tb := newTestBridge(t)
	ctx := context.Background()

	sent := make(chan wire.Command, 1)
	tb.transport.EXPECT().Send(gomock.Any()).DoAndReturn(func(cmd wire.Command) error {
		sent <- cmd
		return nil
	})
	tb.clock.EXPECT().Sleep(_flushDelay)
	tb.gateway.EXPECT().VariableValue(gomock.Any(), "xs", "[1.0, 2.0]").Return(nil)

	done := make(chan string, 1)
	go func() {
		value, err := tb.bridge.GetVariableValue(ctx, "xs")
		require.NoError(t, err)
		done <- value
	}()

	cmd := <-sent
	assert.Equal(t, wire.CommandGetVariableValue, cmd.Command)
	assert.Equal(t, "xs", cmd.Name)

	line := fmt.Sprintf(
		`{"type":"variableValue","id":%q,"payload":{"name":"xs","value":"Float64[1.0, 2.0]"}}`, cmd.ID)
	msg, err := wire.DecodeLine([]byte(line))
	require.NoError(t, err)
	tb.bridge.consume(ctx, msg)

	assert.Equal(t, "[1.0, 2.0]", <-done)
}

func TestFireAndForgetCommands(t *testing.T) {
	tb := newTestBridge(t)
	ctx := context.Background()

	var sent []wire.Command
	tb.transport.EXPECT().Send(gomock.Any()).DoAndReturn(func(cmd wire.Command) error {
		sent = append(sent, cmd)
		return nil
	}).Times(3)

	require.NoError(t, tb.bridge.RequestWorkspaceVariables(ctx))
	require.NoError(t, tb.bridge.ActivateProject(ctx, "/work/proj"))
	require.NoError(t, tb.bridge.DeactivateProject(ctx))

	assert.Equal(t, wire.CommandGetWorkspaceVariables, sent[0].Command)
	assert.Equal(t, wire.CommandActivateProject, sent[1].Command)
	assert.Equal(t, "/work/proj", sent[1].Path)
	assert.Equal(t, wire.CommandDeactivateProject, sent[2].Command)
}

func TestConsumeWorkspaceVariables(t *testing.T) {
	tb := newTestBridge(t)
	ctx := context.Background()

	tb.gateway.EXPECT().WorkspaceVariables(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, variables []wire.Variable) error {
			require.Len(t, variables, 1)
			assert.Equal(t, "xs", variables[0].Name)
			assert.Equal(t, "[1.0, 2.0]", variables[0].Value)
			return nil
		})

	line := `{"type":"workspaceVariables","payload":{"variables":[` +
		`{"name":"xs","type":"Vector{Float64}","value":"Float64[1.0, 2.0]"},` +
		`{"name":"#internal","type":"Function","value":"#internal"}]}}`
	msg, err := wire.DecodeLine([]byte(line))
	require.NoError(t, err)
	tb.bridge.consume(ctx, msg)
}

func TestConsumePlotData(t *testing.T) {
	ctx := context.Background()
	payload := wire.PlotDataPayload{MimeType: "image/svg+xml", Data: "<svg/>"}
	line := `{"type":"plotData","payload":{"mimeType":"image/svg+xml","data":"<svg/>"}}`

	t.Run("routed to plot pane when no cell collects", func(t *testing.T) {
		tb := newTestBridge(t)
		tb.plots.EXPECT().HandlePlot(gomock.Any(), payload).Return(
			plots.StoredPlot{MimeType: payload.MimeType, Data: payload.Data, URL: "http://127.0.0.1:1/plot/0"}, nil)
		tb.gateway.EXPECT().Plot(gomock.Any(), notifier.PlotParams{
			MimeType: payload.MimeType,
			Data:     payload.Data,
			URL:      "http://127.0.0.1:1/plot/0",
		}).Return(nil)

		msg, err := wire.DecodeLine([]byte(line))
		require.NoError(t, err)
		tb.bridge.consume(ctx, msg)
	})

	t.Run("buffered into the active cell", func(t *testing.T) {
		tb := newTestBridge(t)
		tb.bridge.cells.Begin("cell-1")

		msg, err := wire.DecodeLine([]byte(line))
		require.NoError(t, err)
		tb.bridge.consume(ctx, msg)

		cell, ok := tb.bridge.cells.Finish("cell-1")
		require.True(t, ok)
		require.Len(t, cell.Plots, 1)
		assert.Equal(t, payload, cell.Plots[0])
	})
}

func TestConsumeSessionStatus(t *testing.T) {
	tb := newTestBridge(t)
	ctx := context.Background()

	tb.gateway.EXPECT().Busy(gomock.Any()).Return(nil)
	tb.gateway.EXPECT().BusyDone(gomock.Any()).Return(nil)

	msg, err := wire.DecodeLine([]byte(`{"type":"sessionStatus","payload":{"busy":true}}`))
	require.NoError(t, err)
	tb.bridge.consume(ctx, msg)

	msg, err = wire.DecodeLine([]byte(`{"type":"sessionStatus","payload":{"busy":false}}`))
	require.NoError(t, err)
	tb.bridge.consume(ctx, msg)
}

func TestConsumeIgnoresUnknownTypes(t *testing.T) {
	tb := newTestBridge(t)

	msg, err := wire.DecodeLine([]byte(`{"type":"somethingNew","payload":{}}`))
	require.NoError(t, err)
	tb.bridge.consume(context.Background(), msg)

	msg, err = wire.DecodeLine([]byte(`{"type":"error","payload":{"message":"bad command"}}`))
	require.NoError(t, err)
	tb.bridge.consume(context.Background(), msg)
}
