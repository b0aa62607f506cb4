// Package cellbuf collects engine output produced while a notebook cell is
// executing. Plain stream output and plots arrive on different paths, so both
// the output monitor and the message bridge write into the same buffer and the
// collected result is delivered once the cell's execution completes.
package cellbuf

import (
	"sync"

	"github.com/replkit/engined/src/engined/internal/wire"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// Cell is the output collected for one notebook cell execution.
type Cell struct {
	ID    string
	Lines []string
	Plots []wire.PlotDataPayload
}

// CellBuffer holds output for at most one in-flight notebook cell. Beginning
// a new cell discards anything buffered for the previous one.
type CellBuffer interface {
	// Begin opens a collection slot for the given cell id.
	Begin(cellID string)
	// Append adds one output line to the active cell. It reports whether the
	// line was consumed; callers route unconsumed lines to the regular path.
	Append(line string) bool
	// AppendPlot adds one rendered plot to the active cell.
	AppendPlot(plot wire.PlotDataPayload) bool
	// Finish closes the slot if it matches the given id and returns the
	// collected output.
	Finish(cellID string) (Cell, bool)
	// Active reports whether a cell is currently collecting.
	Active() bool
}

type buffer struct {
	mu      sync.Mutex
	current *Cell

	logger *zap.SugaredLogger
}

// Params are inbound parameters to construct the cell buffer.
type Params struct {
	fx.In

	Logger *zap.SugaredLogger
}

// New creates an empty cell buffer.
func New(p Params) CellBuffer {
	return &buffer{logger: p.Logger.With("component", "cellbuf")}
}

func (b *buffer) Begin(cellID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.current != nil {
		b.logger.Warnw("discarding unfinished cell output", "cell", b.current.ID)
	}
	b.current = &Cell{ID: cellID}
}

func (b *buffer) Append(line string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.current == nil {
		return false
	}
	b.current.Lines = append(b.current.Lines, line)
	return true
}

func (b *buffer) AppendPlot(plot wire.PlotDataPayload) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.current == nil {
		return false
	}
	b.current.Plots = append(b.current.Plots, plot)
	return true
}

func (b *buffer) Finish(cellID string) (Cell, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.current == nil || b.current.ID != cellID {
		return Cell{}, false
	}
	cell := *b.current
	b.current = nil
	return cell, true
}

func (b *buffer) Active() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current != nil
}
