// Package monitor watches the engine process output streams. It recognizes
// the synchronization markers the engine embeds in its output, drives the
// transport connection handshake from them, and forwards everything else to
// the frontend terminal and the detailed log.
package monitor

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	notifier "github.com/replkit/engined/src/engined/gateway/ide-client"
	"github.com/replkit/engined/src/engined/internal/cellbuf"
	"github.com/replkit/engined/src/engined/internal/clock"
	"github.com/replkit/engined/src/engined/internal/engineproc"
	"github.com/replkit/engined/src/engined/internal/markers"
	"github.com/replkit/engined/src/engined/internal/transport"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	_nameKey = "monitor"

	// _connectPollInterval and _connectPollLimit bound the wait for the
	// transport to come up after the engine reports its loop is running.
	_connectPollInterval = 100 * time.Millisecond
	_connectPollLimit    = 100

	// _suppressionFallback clears output suppression even when the engine
	// never confirms activation, so output is not withheld forever.
	_suppressionFallback = 2 * time.Second
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// Monitor consumes engine output lines, drives the connection handshake from
// embedded markers, and exposes one-shot readiness signals.
type Monitor interface {
	// HandleLine consumes one engine output line. Registered with the engine
	// process as its line handler.
	HandleLine(line engineproc.Line)

	// SetSuppressed toggles withholding of engine output from the frontend
	// terminal. Suppressed lines still reach the detailed log.
	SetSuppressed(suppressed bool)

	// TransportReady is closed once after the engine's message loop comes up
	// and the transport connect has been given time to finish.
	TransportReady() <-chan struct{}
	// ActivationComplete is closed once when the engine confirms project
	// environment activation.
	ActivationComplete() <-chan struct{}

	// Reset rearms both one-shot signals for a fresh engine launch.
	Reset()
}

// Params are inbound parameters to construct the monitor.
type Params struct {
	fx.In

	EngineProc  engineproc.EngineProc
	Transport   transport.Transport
	Gateway     notifier.Gateway
	CellBuf     cellbuf.CellBuffer
	Clock       clock.Clock
	Logger      *zap.SugaredLogger
	Stats       tally.Scope
	DetailedLog io.Writer `name:"detailedLog"`
}

type monitor struct {
	transport transport.Transport
	gateway   notifier.Gateway
	cells     cellbuf.CellBuffer
	clock     clock.Clock
	logger    *zap.SugaredLogger
	stats     tally.Scope
	detailed  io.Writer

	mu                 sync.Mutex
	suppressed         bool
	transportReady     chan struct{}
	activationComplete chan struct{}
	fallback           clock.Timer
}

// New creates the monitor and attaches it to the engine process output.
func New(p Params) Monitor {
	m := &monitor{
		transport:          p.Transport,
		gateway:            p.Gateway,
		cells:              p.CellBuf,
		clock:              p.Clock,
		logger:             p.Logger.With("controller", _nameKey),
		stats:              p.Stats.SubScope(_nameKey),
		detailed:           p.DetailedLog,
		transportReady:     make(chan struct{}),
		activationComplete: make(chan struct{}),
	}
	p.EngineProc.RegisterLineHandler(m.HandleLine)
	return m
}

func (m *monitor) HandleLine(line engineproc.Line) {
	marker, stripped, found := markers.Recognize(line.Text)
	if found {
		// The raw marker line reaches the detailed log but never the
		// frontend terminal.
		fmt.Fprintln(m.detailed, line.Text)
		m.stats.Counter("markers").Inc(1)
		m.handleMarker(marker)
		if strings.TrimSpace(stripped) == "" {
			return
		}
		line.Text = stripped
	}

	m.mu.Lock()
	suppressed := m.suppressed
	m.mu.Unlock()

	if !suppressed && !line.Stderr && m.cells.Append(line.Text) {
		// Buffered cell output is delivered with the finished cell and is
		// withheld from the detailed log.
		return
	}

	if !found {
		fmt.Fprintln(m.detailed, line.Text)
	}
	if suppressed {
		return
	}

	if err := m.gateway.TerminalOutput(context.Background(), line.Text, line.Stderr); err != nil {
		m.logger.Warnw("forwarding engine output", "error", err)
	}
}

func (m *monitor) handleMarker(marker markers.Marker) {
	m.logger.Infow("engine marker", "kind", marker.Kind.String(), "payload", marker.Payload)

	switch marker.Kind {
	case markers.KindOutboundReady:
		if err := m.transport.ConnectOutbound(context.Background(), marker.Payload); err != nil {
			m.logger.Errorw("connecting command channel", "error", err)
		}
	case markers.KindInboundReady:
		if err := m.transport.ConnectInbound(context.Background(), marker.Payload); err != nil {
			m.logger.Errorw("connecting event channel", "error", err)
		}
	case markers.KindBothReady:
		outbound, inbound := channelNamesFromPayload(marker.Payload, m.transport)
		if err := m.transport.Connect(context.Background(), outbound, inbound); err != nil {
			m.logger.Errorw("connecting channels", "error", err)
		}
	case markers.KindLoopReady:
		go m.awaitTransport()
	case markers.KindEnvActivated:
		m.SetSuppressed(false)
		m.fireActivationComplete()
	}
}

// awaitTransport polls for the transport connect to finish, then reports
// readiness. The wait is bounded and fails open: readiness fires even if the
// transport never comes up, and later operations surface the real error.
func (m *monitor) awaitTransport() {
	for i := 0; i < _connectPollLimit; i++ {
		if m.transport.Connected() {
			break
		}
		m.clock.Sleep(_connectPollInterval)
	}
	if !m.transport.Connected() {
		m.stats.Counter("transport_wait_expired").Inc(1)
		m.logger.Warnw("transport still not connected after engine loop start")
	}

	m.mu.Lock()
	// If activation confirmation never arrives, unmute output anyway.
	m.fallback = m.clock.AfterFunc(_suppressionFallback, func() {
		m.SetSuppressed(false)
	})
	select {
	case <-m.transportReady:
	default:
		close(m.transportReady)
	}
	m.mu.Unlock()
}

func (m *monitor) fireActivationComplete() {
	m.mu.Lock()
	defer m.mu.Unlock()
	select {
	case <-m.activationComplete:
	default:
		close(m.activationComplete)
	}
}

func (m *monitor) SetSuppressed(suppressed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suppressed = suppressed
}

func (m *monitor) TransportReady() <-chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.transportReady
}

func (m *monitor) ActivationComplete() <-chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activationComplete
}

func (m *monitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fallback != nil {
		m.fallback.Stop()
		m.fallback = nil
	}
	m.transportReady = make(chan struct{})
	m.activationComplete = make(chan struct{})
}

// channelNamesFromPayload splits a combined "outbound,inbound" payload,
// falling back to the transport's bound names when the engine sent none.
func channelNamesFromPayload(payload string, t transport.Transport) (string, string) {
	if payload == "" {
		return t.ChannelNames()
	}
	parts := strings.SplitN(payload, ",", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	outbound, inbound := t.ChannelNames()
	if parts[0] != "" {
		outbound = parts[0]
	}
	return outbound, inbound
}
