package startup

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/replkit/engined/src/engined/controller/bridge/bridgemock"
	"github.com/replkit/engined/src/engined/controller/installer"
	"github.com/replkit/engined/src/engined/controller/installer/installermock"
	"github.com/replkit/engined/src/engined/controller/lsp/lspmock"
	"github.com/replkit/engined/src/engined/controller/monitor/monitormock"
	"github.com/replkit/engined/src/engined/controller/plots/plotsmock"
	"github.com/replkit/engined/src/engined/entity"
	"github.com/replkit/engined/src/engined/gateway/ide-client/ideclientmock"
	"github.com/replkit/engined/src/engined/internal/clock"
	"github.com/replkit/engined/src/engined/internal/clock/clockmock"
	"github.com/replkit/engined/src/engined/internal/engineproc"
	"github.com/replkit/engined/src/engined/internal/engineproc/engineprocmock"
	"github.com/replkit/engined/src/engined/internal/fs/fsmock"
	"github.com/replkit/engined/src/engined/internal/projwatch/projwatchmock"
	"github.com/replkit/engined/src/engined/internal/transport/transportmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/config"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const _testConfig = `
engine:
  binaryPath: /opt/engine/bin/engine
  args: ["--server"]
  projectMarkerFile: Project.toml
`

type testStartup struct {
	startup   *controller
	installer *installermock.MockController
	lsp       *lspmock.MockController
	bridge    *bridgemock.MockController
	monitor   *monitormock.MockMonitor
	proc      *engineprocmock.MockEngineProc
	transport *transportmock.MockTransport
	plots     *plotsmock.MockController
	projwatch *projwatchmock.MockWatcher
	gateway   *ideclientmock.MockGateway
	fs        *fsmock.MockEngineFS
	clock     *clockmock.MockClock

	// exitHandler is the engine exit handler registered by New.
	exitHandler engineproc.ExitHandler
	// phases records every phase reported through StartupProgress.
	phases []entity.Phase
}

func newTestStartup(t *testing.T, yaml string) *testStartup {
	t.Helper()
	ctrl := gomock.NewController(t)

	ts := &testStartup{
		installer: installermock.NewMockController(ctrl),
		lsp:       lspmock.NewMockController(ctrl),
		bridge:    bridgemock.NewMockController(ctrl),
		monitor:   monitormock.NewMockMonitor(ctrl),
		proc:      engineprocmock.NewMockEngineProc(ctrl),
		transport: transportmock.NewMockTransport(ctrl),
		plots:     plotsmock.NewMockController(ctrl),
		projwatch: projwatchmock.NewMockWatcher(ctrl),
		gateway:   ideclientmock.NewMockGateway(ctrl),
		fs:        fsmock.NewMockEngineFS(ctrl),
		clock:     clockmock.NewMockClock(ctrl),
	}
	ts.projwatch.EXPECT().RegisterChangeHandler(gomock.Any())
	ts.proc.EXPECT().RegisterExitHandler(gomock.Any()).Do(func(fn engineproc.ExitHandler) {
		ts.exitHandler = fn
	})
	ts.gateway.EXPECT().StartupProgress(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, phase entity.Phase) error {
			ts.phases = append(ts.phases, phase)
			return nil
		}).AnyTimes()

	timer := clockmock.NewMockTimer(ctrl)
	timer.EXPECT().Stop().Return(true).AnyTimes()
	ts.clock.EXPECT().AfterFunc(gomock.Any(), gomock.Any()).Return(timer).AnyTimes()

	provider, err := config.NewYAML(config.Source(strings.NewReader(yaml)))
	require.NoError(t, err)

	c, err := New(Params{
		Config:     provider,
		Installer:  ts.installer,
		LSP:        ts.lsp,
		Bridge:     ts.bridge,
		Monitor:    ts.monitor,
		EngineProc: ts.proc,
		Transport:  ts.transport,
		Plots:      ts.plots,
		ProjWatch:  ts.projwatch,
		Gateway:    ts.gateway,
		FS:         ts.fs,
		Clock:      ts.clock,
		Logger:     zap.NewNop().Sugar(),
		Stats:      tally.NewTestScope("testing", nil),
	})
	require.NoError(t, err)
	ts.startup = c.(*controller)
	return ts
}

func closedChan() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

// expectProcessStart wires the spawn-and-handshake sequence.
func (ts *testStartup) expectProcessStart() {
	ts.monitor.EXPECT().Reset()
	ts.proc.EXPECT().Start(gomock.Any(), gomock.Any()).Return(nil)
	ts.monitor.EXPECT().TransportReady().Return(closedChan())
	ts.bridge.EXPECT().StartReader(gomock.Any())
}

func TestContinueStartupHappyPath(t *testing.T) {
	ts := newTestStartup(t, _testConfig)
	ctx := context.Background()

	ts.installer.EXPECT().LatestRelease(ctx).Return(installer.Release{}, false, nil)
	ts.installer.EXPECT().EngineReady(ctx).Return(true, nil)
	ts.expectProcessStart()
	ts.lsp.EXPECT().Start(ctx).Return(nil)

	require.NoError(t, ts.startup.ContinueStartup(ctx))
	assert.Equal(t, entity.PhaseCompleted, ts.startup.Phase())

	t.Run("idempotent once completed", func(t *testing.T) {
		require.NoError(t, ts.startup.ContinueStartup(ctx))
		assert.Equal(t, entity.PhaseCompleted, ts.startup.Phase())
	})
}

func TestContinueStartupActivatesDefaultProject(t *testing.T) {
	ts := newTestStartup(t, _testConfig+"  defaultProjectPath: /work/proj\n")
	ctx := context.Background()

	ts.installer.EXPECT().LatestRelease(ctx).Return(installer.Release{}, false, nil)
	ts.installer.EXPECT().EngineReady(ctx).Return(true, nil)
	ts.expectProcessStart()

	ts.fs.EXPECT().FileExists("/work/proj/Project.toml").Return(true, nil)
	ts.monitor.EXPECT().SetSuppressed(true)
	ts.bridge.EXPECT().ActivateProject(ctx, "/work/proj").Return(nil)
	ts.monitor.EXPECT().ActivationComplete().Return(closedChan())
	ts.projwatch.EXPECT().Watch("/work/proj").Return(nil)
	ts.lsp.EXPECT().Start(ctx).Return(nil)

	require.NoError(t, ts.startup.ContinueStartup(ctx))
	assert.Equal(t, entity.PhaseCompleted, ts.startup.Phase())
}

func TestContinueStartupSkipsProjectWithoutMarker(t *testing.T) {
	ts := newTestStartup(t, _testConfig+"  defaultProjectPath: /work/plain\n")
	ctx := context.Background()

	ts.installer.EXPECT().LatestRelease(ctx).Return(installer.Release{}, false, nil)
	ts.installer.EXPECT().EngineReady(ctx).Return(true, nil)
	ts.expectProcessStart()
	ts.fs.EXPECT().FileExists("/work/plain/Project.toml").Return(false, nil)
	ts.lsp.EXPECT().Start(ctx).Return(nil)

	require.NoError(t, ts.startup.ContinueStartup(ctx))
	assert.Equal(t, entity.PhaseCompleted, ts.startup.Phase())
}

func TestContinueStartupInstallsMissingEngine(t *testing.T) {
	ts := newTestStartup(t, _testConfig)
	ctx := context.Background()
	release := installer.Release{Version: "2.1.0", Command: "installer"}

	ts.installer.EXPECT().LatestRelease(ctx).Return(release, true, nil)
	ts.installer.EXPECT().EngineReady(ctx).Return(false, nil)

	var done func(error)
	ts.installer.EXPECT().Install(ctx, release, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ installer.Release, cb func(error)) error {
			done = cb
			return nil
		})

	require.NoError(t, ts.startup.ContinueStartup(ctx))
	assert.Equal(t, entity.PhaseInstallingEngine, ts.startup.Phase())

	// The completion callback resumes the machine.
	ts.installer.EXPECT().EngineReady(gomock.Any()).Return(true, nil)
	ts.expectProcessStart()
	ts.lsp.EXPECT().Start(gomock.Any()).Return(nil)

	done(nil)
	assert.Equal(t, entity.PhaseCompleted, ts.startup.Phase())
}

func TestContinueStartupFailures(t *testing.T) {
	t.Run("missing engine with no release", func(t *testing.T) {
		ts := newTestStartup(t, _testConfig)
		ctx := context.Background()

		ts.installer.EXPECT().LatestRelease(ctx).Return(installer.Release{}, false, nil)
		ts.installer.EXPECT().EngineReady(ctx).Return(false, nil)
		ts.gateway.EXPECT().StartupError(ctx, entity.PhaseCheckingEngine, gomock.Any()).Return(nil)

		assert.Error(t, ts.startup.ContinueStartup(ctx))
		assert.Equal(t, entity.PhaseFailed, ts.startup.Phase())

		// Failed is terminal barring an explicit restart.
		require.NoError(t, ts.startup.ContinueStartup(ctx))
	})

	t.Run("failed install", func(t *testing.T) {
		ts := newTestStartup(t, _testConfig)
		ctx := context.Background()
		release := installer.Release{Version: "2.1.0", Command: "installer"}

		ts.installer.EXPECT().LatestRelease(ctx).Return(release, true, nil)
		ts.installer.EXPECT().EngineReady(ctx).Return(false, nil)
		var done func(error)
		ts.installer.EXPECT().Install(ctx, release, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ installer.Release, cb func(error)) error {
				done = cb
				return nil
			})
		require.NoError(t, ts.startup.ContinueStartup(ctx))

		ts.gateway.EXPECT().StartupError(gomock.Any(), entity.PhaseInstallingEngine, gomock.Any()).Return(nil)
		done(fmt.Errorf("download failed"))
		assert.Equal(t, entity.PhaseFailed, ts.startup.Phase())
	})

	t.Run("spawn failure", func(t *testing.T) {
		ts := newTestStartup(t, _testConfig)
		ctx := context.Background()

		ts.installer.EXPECT().LatestRelease(ctx).Return(installer.Release{}, false, nil)
		ts.installer.EXPECT().EngineReady(ctx).Return(true, nil)
		ts.monitor.EXPECT().Reset()
		ts.proc.EXPECT().Start(ctx, gomock.Any()).Return(fmt.Errorf("no such file"))
		ts.gateway.EXPECT().StartupError(ctx, entity.PhaseStartingProcess, gomock.Any()).Return(nil)

		assert.Error(t, ts.startup.ContinueStartup(ctx))
		assert.Equal(t, entity.PhaseFailed, ts.startup.Phase())
	})

	t.Run("transport handshake timeout", func(t *testing.T) {
		ts := newTestStartup(t, _testConfig)
		ctx := context.Background()

		ts.installer.EXPECT().LatestRelease(ctx).Return(installer.Release{}, false, nil)
		ts.installer.EXPECT().EngineReady(ctx).Return(true, nil)
		ts.monitor.EXPECT().Reset()
		ts.proc.EXPECT().Start(ctx, gomock.Any()).Return(nil)
		ts.monitor.EXPECT().TransportReady().Return((<-chan struct{})(make(chan struct{})))

		// The deadline fires immediately. A dedicated clock mock is used
		// because the AnyTimes AfterFunc catch-all in newTestStartup would
		// shadow an expectation added to ts.clock.
		clockCtrl := gomock.NewController(t)
		timer := clockmock.NewMockTimer(clockCtrl)
		timer.EXPECT().Stop().Return(false).AnyTimes()
		clk := clockmock.NewMockClock(clockCtrl)
		clk.EXPECT().AfterFunc(_transportTimeout, gomock.Any()).DoAndReturn(
			func(_ time.Duration, f func()) clock.Timer {
				f()
				return timer
			})
		ts.startup.clock = clk
		ts.gateway.EXPECT().StartupError(ctx, entity.PhaseStartingProcess, gomock.Any()).Return(nil)

		assert.Error(t, ts.startup.ContinueStartup(ctx))
		assert.Equal(t, entity.PhaseFailed, ts.startup.Phase())
	})
}

func TestChangeProject(t *testing.T) {
	t.Run("recorded before startup completes", func(t *testing.T) {
		ts := newTestStartup(t, _testConfig)
		ctx := context.Background()

		require.NoError(t, ts.startup.ChangeProject(ctx, "/work/later"))
		assert.Equal(t, entity.PhaseNotStarted, ts.startup.Phase())

		// The recorded path is activated instead of the default on startup.
		ts.installer.EXPECT().LatestRelease(ctx).Return(installer.Release{}, false, nil)
		ts.installer.EXPECT().EngineReady(ctx).Return(true, nil)
		ts.expectProcessStart()
		ts.fs.EXPECT().FileExists("/work/later/Project.toml").Return(true, nil)
		ts.monitor.EXPECT().SetSuppressed(true)
		ts.bridge.EXPECT().ActivateProject(ctx, "/work/later").Return(nil)
		ts.monitor.EXPECT().ActivationComplete().Return(closedChan())
		ts.projwatch.EXPECT().Watch("/work/later").Return(nil)
		ts.lsp.EXPECT().Start(ctx).Return(nil)

		require.NoError(t, ts.startup.ContinueStartup(ctx))
		assert.Equal(t, entity.PhaseCompleted, ts.startup.Phase())
	})

	t.Run("switches at completed", func(t *testing.T) {
		ts := completedStartup(t)
		ctx := context.Background()

		ts.monitor.EXPECT().SetSuppressed(true).Times(2)
		ts.bridge.EXPECT().DeactivateProject(ctx).Return(nil)
		ts.lsp.EXPECT().Stop(ctx).Return(nil)
		ts.fs.EXPECT().FileExists("/work/next/Project.toml").Return(true, nil)
		ts.monitor.EXPECT().Reset()
		ts.bridge.EXPECT().ActivateProject(ctx, "/work/next").Return(nil)
		ts.monitor.EXPECT().ActivationComplete().Return(closedChan())
		ts.projwatch.EXPECT().Watch("/work/next").Return(nil)
		ts.lsp.EXPECT().Start(ctx).Return(nil)

		before := len(ts.phases)
		require.NoError(t, ts.startup.ChangeProject(ctx, "/work/next"))

		// The machine walks back through the activation phases.
		assert.Equal(t, []entity.Phase{
			entity.PhaseActivatingProject,
			entity.PhaseStartingLanguageServer,
			entity.PhaseCompleted,
		}, ts.phases[before:])
		assert.Equal(t, entity.PhaseCompleted, ts.startup.Phase())
	})

	t.Run("skips activation without marker", func(t *testing.T) {
		ts := completedStartup(t)
		ctx := context.Background()

		ts.monitor.EXPECT().SetSuppressed(true)
		ts.bridge.EXPECT().DeactivateProject(ctx).Return(nil)
		ts.lsp.EXPECT().Stop(ctx).Return(nil)
		ts.fs.EXPECT().FileExists("/work/plain/Project.toml").Return(false, nil)
		ts.monitor.EXPECT().SetSuppressed(false)
		ts.lsp.EXPECT().Start(ctx).Return(nil)

		require.NoError(t, ts.startup.ChangeProject(ctx, "/work/plain"))
		assert.Equal(t, entity.PhaseCompleted, ts.startup.Phase())
	})

	t.Run("recorded while another switch runs", func(t *testing.T) {
		ts := completedStartup(t)
		ctx := context.Background()

		// Two switch rounds: one for the requested path, one for the path
		// recorded while the first round was still activating.
		ts.monitor.EXPECT().SetSuppressed(true).Times(4)
		ts.bridge.EXPECT().DeactivateProject(ctx).Return(nil).Times(2)
		ts.lsp.EXPECT().Stop(ctx).Return(nil).Times(2)
		ts.monitor.EXPECT().Reset().Times(2)
		ts.monitor.EXPECT().ActivationComplete().Return(closedChan()).Times(2)
		ts.lsp.EXPECT().Start(ctx).Return(nil).Times(2)

		ts.fs.EXPECT().FileExists("/work/next/Project.toml").Return(true, nil)
		ts.fs.EXPECT().FileExists("/work/queued/Project.toml").Return(true, nil)
		ts.bridge.EXPECT().ActivateProject(ctx, "/work/next").DoAndReturn(
			func(ctx context.Context, _ string) error {
				// A switch arriving mid-switch is recorded, not run reentrantly.
				require.NoError(t, ts.startup.ChangeProject(ctx, "/work/queued"))
				return nil
			})
		ts.bridge.EXPECT().ActivateProject(ctx, "/work/queued").Return(nil)
		ts.projwatch.EXPECT().Watch("/work/next").Return(nil)
		ts.projwatch.EXPECT().Watch("/work/queued").Return(nil)

		require.NoError(t, ts.startup.ChangeProject(ctx, "/work/next"))
		assert.Equal(t, entity.PhaseCompleted, ts.startup.Phase())

		ts.startup.mu.Lock()
		defer ts.startup.mu.Unlock()
		assert.Equal(t, "/work/queued", ts.startup.currentProject)
		assert.False(t, ts.startup.hasPending)
	})
}

// completedStartup runs the happy path so triggers are accepted.
func completedStartup(t *testing.T) *testStartup {
	t.Helper()
	ts := newTestStartup(t, _testConfig)
	ctx := context.Background()

	ts.installer.EXPECT().LatestRelease(ctx).Return(installer.Release{}, false, nil)
	ts.installer.EXPECT().EngineReady(ctx).Return(true, nil)
	ts.expectProcessStart()
	ts.lsp.EXPECT().Start(ctx).Return(nil)
	require.NoError(t, ts.startup.ContinueStartup(ctx))
	require.Equal(t, entity.PhaseCompleted, ts.startup.Phase())
	return ts
}

func TestRestartEngine(t *testing.T) {
	ts := completedStartup(t)
	ctx := context.Background()

	// Restart keeps the prior project active.
	ts.startup.mu.Lock()
	ts.startup.currentProject = "/work/proj"
	ts.startup.mu.Unlock()

	ts.gateway.EXPECT().Busy(ctx).Return(nil)
	ts.proc.EXPECT().Stop(ctx).Return(nil)
	ts.transport.EXPECT().Disconnect().Return(nil)
	ts.expectProcessStart()
	ts.monitor.EXPECT().SetSuppressed(true)
	ts.bridge.EXPECT().ActivateProject(ctx, "/work/proj").Return(nil)
	ts.monitor.EXPECT().ActivationComplete().Return(closedChan())
	ts.projwatch.EXPECT().Watch("/work/proj").Return(nil)
	ts.gateway.EXPECT().BusyDone(ctx).Return(nil)

	before := len(ts.phases)
	require.NoError(t, ts.startup.RestartEngine(ctx))
	assert.Equal(t, entity.PhaseCompleted, ts.startup.Phase())

	// The restart is observable as a walk back through the launch phases.
	assert.Equal(t, []entity.Phase{
		entity.PhaseStartingProcess,
		entity.PhaseActivatingProject,
		entity.PhaseCompleted,
	}, ts.phases[before:])
}

func TestEngineExit(t *testing.T) {
	t.Run("unexpected exit tears the session down", func(t *testing.T) {
		ts := completedStartup(t)

		ts.transport.EXPECT().Disconnect().Return(nil)
		ts.monitor.EXPECT().SetSuppressed(false)
		ts.gateway.EXPECT().ConnectionLost(gomock.Any()).Return(nil)

		ts.exitHandler(fmt.Errorf("signal: segmentation fault"))
		assert.Equal(t, entity.PhaseFailed, ts.startup.Phase())
	})

	t.Run("controlled stop is not treated as a crash", func(t *testing.T) {
		ts := completedStartup(t)
		ctx := context.Background()

		// Shutdown drives the stop; the process exit it causes must not
		// trigger a second teardown.
		ts.lsp.EXPECT().Stop(ctx).Return(nil)
		ts.proc.EXPECT().Stop(ctx).DoAndReturn(func(context.Context) error {
			ts.exitHandler(fmt.Errorf("signal: terminated"))
			return nil
		})
		ts.plots.EXPECT().Clear(ctx)
		ts.projwatch.EXPECT().Stop().Return(nil)
		ts.transport.EXPECT().Disconnect().Return(nil)

		require.NoError(t, ts.startup.Shutdown(ctx))
		assert.Equal(t, entity.PhaseCompleted, ts.startup.Phase())
	})
}

func TestRestartEngineBusyDoneOnFailure(t *testing.T) {
	ts := completedStartup(t)
	ctx := context.Background()

	ts.gateway.EXPECT().Busy(ctx).Return(nil)
	ts.proc.EXPECT().Stop(ctx).Return(nil)
	ts.transport.EXPECT().Disconnect().Return(nil)
	ts.monitor.EXPECT().Reset()
	ts.proc.EXPECT().Start(ctx, gomock.Any()).Return(fmt.Errorf("spawn failed"))
	ts.gateway.EXPECT().StartupError(ctx, entity.PhaseStartingProcess, gomock.Any()).Return(nil)
	ts.gateway.EXPECT().BusyDone(ctx).Return(nil)

	assert.Error(t, ts.startup.RestartEngine(ctx))
	assert.Equal(t, entity.PhaseFailed, ts.startup.Phase())
}

func TestShutdown(t *testing.T) {
	t.Run("stops collaborators in order", func(t *testing.T) {
		ts := completedStartup(t)
		ctx := context.Background()

		gomock.InOrder(
			ts.lsp.EXPECT().Stop(ctx).Return(nil),
			ts.proc.EXPECT().Stop(ctx).Return(nil),
			ts.plots.EXPECT().Clear(ctx),
			ts.projwatch.EXPECT().Stop().Return(nil),
			ts.transport.EXPECT().Disconnect().Return(nil),
		)
		require.NoError(t, ts.startup.Shutdown(ctx))
	})

	t.Run("collects failures without short-circuiting", func(t *testing.T) {
		ts := completedStartup(t)
		ctx := context.Background()

		ts.lsp.EXPECT().Stop(ctx).Return(fmt.Errorf("lsp stuck"))
		ts.proc.EXPECT().Stop(ctx).Return(nil)
		ts.plots.EXPECT().Clear(ctx)
		ts.projwatch.EXPECT().Stop().Return(nil)
		ts.transport.EXPECT().Disconnect().Return(fmt.Errorf("already closed"))

		err := ts.startup.Shutdown(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "lsp stuck")
		assert.Contains(t, err.Error(), "already closed")
	})
}

func TestProjectMarkerChangeReactivates(t *testing.T) {
	ts := completedStartup(t)

	ts.startup.mu.Lock()
	ts.startup.currentProject = "/work/proj"
	ts.startup.mu.Unlock()

	ts.bridge.EXPECT().ActivateProject(gomock.Any(), "/work/proj").Return(nil)
	ts.startup.onProjectMarkerChange("/work/proj")

	t.Run("no active project is a no-op", func(t *testing.T) {
		ts.startup.mu.Lock()
		ts.startup.currentProject = ""
		ts.startup.mu.Unlock()
		ts.startup.onProjectMarkerChange("/work/proj")
	})
}
