// Package transport maintains the duplex channel to the engine process: an
// outbound command channel and an inbound event channel, each a one-directional
// local socket connected by name.
package transport

import (
	"bufio"
	"context"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/replkit/engined/src/engined/internal/clock"
	"github.com/replkit/engined/src/engined/internal/errors"
	"github.com/replkit/engined/src/engined/internal/wire"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	_connectAttempts = 30
	_connectInterval = 200 * time.Millisecond

	_sendQueueSize = 64
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// Transport is the dual-channel connector to the engine.
//
// Connect is idempotent: reconnecting to the identical pair of names while
// fully connected returns errors.ErrAlreadyConnected, a concurrent connect
// returns errors.ErrConnectInProgress, and differing names tear down the old
// session first. A partially-connected session is completed without
// disturbing the connected side.
type Transport interface {
	Connect(ctx context.Context, outboundName, inboundName string) error
	ConnectOutbound(ctx context.Context, name string) error
	ConnectInbound(ctx context.Context, name string) error

	// Connected reports whether both sub-channels are bound.
	Connected() bool
	// ChannelNames returns the names the current session is bound to.
	ChannelNames() (outbound string, inbound string)

	// Send queues a command for delivery on the outbound channel.
	// Commands are written in issue order by a single writer.
	Send(cmd wire.Command) error
	// ReadLine performs one blocking line read on the inbound channel.
	// A zero-length result with nil error means the channel was idle.
	ReadLine() ([]byte, error)

	// Disconnect unconditionally clears both stream slots. Best-effort, idempotent.
	Disconnect() error
}

type session struct {
	outboundName string
	inboundName  string
	outbound     net.Conn
	inbound      net.Conn
	inboundBuf   *bufio.Reader
	isConnecting bool
	isConnected  bool
}

type transport struct {
	mu      sync.Mutex
	session session

	sendMu     sync.Mutex
	sendQueue  chan []byte
	sendClosed bool

	logger *zap.SugaredLogger
	stats  tally.Scope
	clock  clock.Clock
}

// Params are inbound parameters to construct the transport.
type Params struct {
	fx.In

	Logger    *zap.SugaredLogger
	Stats     tally.Scope
	Clock     clock.Clock
	Lifecycle fx.Lifecycle
}

// New creates the transport and starts its outbound writer.
func New(p Params) Transport {
	t := &transport{
		sendQueue: make(chan []byte, _sendQueueSize),
		logger:    p.Logger.With("component", "transport"),
		stats:     p.Stats.SubScope("transport"),
		clock:     p.Clock,
	}

	done := make(chan struct{})
	go t.writeLoop(done)

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			t.closeSendQueue()
			<-done
			return t.Disconnect()
		},
	})

	return t
}

// Connect binds both sub-channels to the given names.
func (t *transport) Connect(ctx context.Context, outboundName, inboundName string) error {
	t.mu.Lock()
	if t.session.isConnecting {
		t.mu.Unlock()
		return errors.ErrConnectInProgress
	}

	sameNames := t.session.outboundName == outboundName && t.session.inboundName == inboundName
	if sameNames && t.session.isConnected {
		t.mu.Unlock()
		return errors.ErrAlreadyConnected
	}

	if !sameNames {
		// Bound to a different engine instance, drop it before reconnecting.
		t.teardownLocked()
		t.session.outboundName = outboundName
		t.session.inboundName = inboundName
	}

	t.session.isConnecting = true
	needOutbound := t.session.outbound == nil
	needInbound := t.session.inbound == nil
	t.mu.Unlock()

	defer t.clearConnecting()

	if needOutbound {
		conn, err := t.dialRetry(ctx, "connect outbound", outboundName)
		if err != nil {
			return err
		}
		t.storeConn(conn, true)
	}
	if needInbound {
		conn, err := t.dialRetry(ctx, "connect inbound", inboundName)
		if err != nil {
			return err
		}
		t.storeConn(conn, false)
	}

	return nil
}

// ConnectOutbound binds only the outbound sub-channel.
func (t *transport) ConnectOutbound(ctx context.Context, name string) error {
	return t.connectSide(ctx, name, true)
}

// ConnectInbound binds only the inbound sub-channel.
func (t *transport) ConnectInbound(ctx context.Context, name string) error {
	return t.connectSide(ctx, name, false)
}

func (t *transport) connectSide(ctx context.Context, name string, outbound bool) error {
	t.mu.Lock()
	if t.session.isConnecting {
		t.mu.Unlock()
		return errors.ErrConnectInProgress
	}

	current := t.session.inbound
	currentName := t.session.inboundName
	op := "connect inbound"
	if outbound {
		current = t.session.outbound
		currentName = t.session.outboundName
		op = "connect outbound"
	}

	if current != nil {
		if currentName == name {
			t.mu.Unlock()
			return errors.ErrAlreadyConnected
		}
		current.Close()
		t.clearConnLocked(outbound)
	}

	if outbound {
		t.session.outboundName = name
	} else {
		t.session.inboundName = name
	}
	t.session.isConnecting = true
	t.mu.Unlock()

	defer t.clearConnecting()

	conn, err := t.dialRetry(ctx, op, name)
	if err != nil {
		return err
	}
	t.storeConn(conn, outbound)
	return nil
}

// dialRetry attempts a bounded fixed-delay dial of one sub-channel.
func (t *transport) dialRetry(ctx context.Context, op, name string) (net.Conn, error) {
	var lastErr error
	for attempt := 0; attempt < _connectAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t.stats.Counter("connect_attempts").Inc(1)
		conn, err := dial(name)
		if err == nil {
			t.stats.Counter("connects").Inc(1)
			return conn, nil
		}
		lastErr = err
		t.clock.Sleep(_connectInterval)
	}

	t.stats.Counter("connect_failures").Inc(1)
	return nil, &errors.RetriesExhaustedError{Op: op, Attempts: _connectAttempts, Last: lastErr}
}

func (t *transport) storeConn(conn net.Conn, outbound bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if outbound {
		t.session.outbound = conn
	} else {
		t.session.inbound = conn
		t.session.inboundBuf = bufio.NewReader(conn)
	}
	t.recomputeConnectedLocked()
}

func (t *transport) clearConnLocked(outbound bool) {
	if outbound {
		t.session.outbound = nil
	} else {
		t.session.inbound = nil
		t.session.inboundBuf = nil
	}
	t.recomputeConnectedLocked()
}

// recomputeConnectedLocked re-derives overall connectedness after any change.
func (t *transport) recomputeConnectedLocked() {
	connected := t.session.outbound != nil && t.session.inbound != nil
	if connected != t.session.isConnected {
		t.session.isConnected = connected
		t.logger.Infow("transport connectedness changed", "connected", connected)
	}
}

func (t *transport) clearConnecting() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.session.isConnecting = false
}

func (t *transport) teardownLocked() {
	if t.session.outbound != nil {
		t.session.outbound.Close()
	}
	if t.session.inbound != nil {
		t.session.inbound.Close()
	}
	t.session.outbound = nil
	t.session.inbound = nil
	t.session.inboundBuf = nil
	t.recomputeConnectedLocked()
}

// Connected reports whether both sub-channels are bound.
func (t *transport) Connected() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.session.isConnected
}

// ChannelNames returns the names the current session is bound to.
func (t *transport) ChannelNames() (string, string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.session.outboundName, t.session.inboundName
}

// Send queues one command for the outbound writer.
func (t *transport) Send(cmd wire.Command) error {
	t.mu.Lock()
	connected := t.session.outbound != nil
	t.mu.Unlock()
	if !connected {
		return errors.ErrNotConnected
	}

	var sb strings.Builder
	if err := wire.EncodeLine(&sb, cmd); err != nil {
		return err
	}

	t.sendMu.Lock()
	defer t.sendMu.Unlock()
	if t.sendClosed {
		return errors.ErrNotConnected
	}
	select {
	case t.sendQueue <- []byte(sb.String()):
		return nil
	default:
		t.stats.Counter("send_queue_full").Inc(1)
		return errors.New("outbound queue full")
	}
}

// writeLoop is the single writer draining the outbound FIFO.
func (t *transport) writeLoop(done chan<- struct{}) {
	defer close(done)
	for data := range t.sendQueue {
		t.mu.Lock()
		conn := t.session.outbound
		t.mu.Unlock()

		if conn == nil {
			t.stats.Counter("send_dropped").Inc(1)
			t.logger.Warnw("dropping outbound command, channel not bound")
			continue
		}
		if _, err := conn.Write(data); err != nil {
			t.stats.Counter("send_errors").Inc(1)
			t.logger.Errorw("writing outbound command", "error", err)
			continue
		}
		t.stats.Counter("commands_sent").Inc(1)
	}
}

func (t *transport) closeSendQueue() {
	t.sendMu.Lock()
	defer t.sendMu.Unlock()
	if !t.sendClosed {
		t.sendClosed = true
		close(t.sendQueue)
	}
}

// ReadLine performs one blocking line read on the inbound channel.
func (t *transport) ReadLine() ([]byte, error) {
	t.mu.Lock()
	reader := t.session.inboundBuf
	t.mu.Unlock()

	if reader == nil {
		return nil, errors.ErrNoInboundStream
	}

	line, err := reader.ReadString('\n')
	if err != nil {
		return nil, err
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}

// Disconnect unconditionally clears both stream slots.
func (t *transport) Disconnect() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.teardownLocked()
	t.stats.Counter("disconnects").Inc(1)
	return nil
}
