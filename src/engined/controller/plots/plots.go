// Package plots stores plots rendered by the engine and serves them over HTTP
// so frontends can display them in a plot pane without pushing large payloads
// through the JSON-RPC channel.
package plots

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/julienschmidt/httprouter"
	"github.com/replkit/engined/src/engined/internal/serverinfofile"
	"github.com/replkit/engined/src/engined/internal/wire"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	_nameKey          = "plots"
	_configKeyAddress = "plots.address"
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// StoredPlot is one plot kept in the pane history.
type StoredPlot struct {
	Index    int    `json:"index"`
	MimeType string `json:"mimeType"`
	Data     string `json:"-"`
	URL      string `json:"url"`
}

// Controller stores plots and serves them over HTTP.
type Controller interface {
	// HandlePlot stores one plot and returns its served URL.
	HandlePlot(ctx context.Context, payload wire.PlotDataPayload) (StoredPlot, error)
	// Plots lists the stored plot history, oldest first.
	Plots(ctx context.Context) []StoredPlot
	// Clear empties the plot history.
	Clear(ctx context.Context)
}

// Params are inbound parameters to construct the controller.
type Params struct {
	fx.In

	Config         config.Provider
	Lifecycle      fx.Lifecycle
	Logger         *zap.SugaredLogger
	Stats          tally.Scope
	ServerInfoFile serverinfofile.ServerInfoFile
}

type controller struct {
	address string
	logger  *zap.SugaredLogger
	stats   tally.Scope
	info    serverinfofile.ServerInfoFile

	mu      sync.Mutex
	plots   []StoredPlot
	baseURL string

	ln     net.Listener
	server *http.Server
}

// New creates the plots controller and registers its HTTP server with the
// application lifecycle.
func New(p Params) (Controller, error) {
	c := &controller{
		logger: p.Logger.With("controller", _nameKey),
		stats:  p.Stats.SubScope(_nameKey),
		info:   p.ServerInfoFile,
	}

	if err := p.Config.Get(_configKeyAddress).Populate(&c.address); err != nil {
		return nil, fmt.Errorf("getting config field %q: %w", _configKeyAddress, err)
	}
	if c.address == "" {
		return nil, fmt.Errorf("missing field %q in config", _configKeyAddress)
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: c.onStart,
		OnStop:  c.onStop,
	})

	return c, nil
}

func (c *controller) onStart(ctx context.Context) error {
	ln, err := net.Listen("tcp", c.address)
	if err != nil {
		return fmt.Errorf("binding plot server: %w", err)
	}

	router := httprouter.New()
	router.GET("/plots", c.listPlots)
	router.GET("/plot/:index", c.servePlot)

	c.mu.Lock()
	c.ln = ln
	c.baseURL = "http://" + ln.Addr().String()
	c.server = &http.Server{Handler: router}
	c.mu.Unlock()

	if err := c.info.UpdateField(serverinfofile.KeyPlotAddress, ln.Addr().String()); err != nil {
		return err
	}
	c.logger.Infow("plot server started", "address", ln.Addr().String())

	go func() {
		if err := c.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			c.logger.Errorw("plot server stopped", "error", err)
		}
	}()
	return nil
}

func (c *controller) onStop(ctx context.Context) error {
	c.mu.Lock()
	server := c.server
	c.mu.Unlock()

	if server == nil {
		return nil
	}
	return server.Shutdown(ctx)
}

func (c *controller) HandlePlot(ctx context.Context, payload wire.PlotDataPayload) (StoredPlot, error) {
	if payload.MimeType == "" {
		return StoredPlot{}, fmt.Errorf("plot payload missing mime type")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	plot := StoredPlot{
		Index:    len(c.plots),
		MimeType: payload.MimeType,
		Data:     payload.Data,
		URL:      fmt.Sprintf("%s/plot/%d", c.baseURL, len(c.plots)),
	}
	c.plots = append(c.plots, plot)
	c.stats.Counter("plots_stored").Inc(1)
	c.stats.Gauge("plot_history_size").Update(float64(len(c.plots)))
	return plot, nil
}

func (c *controller) Plots(ctx context.Context) []StoredPlot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]StoredPlot{}, c.plots...)
}

func (c *controller) Clear(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.plots = nil
	c.stats.Gauge("plot_history_size").Update(0)
}

func (c *controller) listPlots(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c.Plots(r.Context()))
}

func (c *controller) servePlot(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var index int
	if _, err := fmt.Sscanf(ps.ByName("index"), "%d", &index); err != nil || index < 0 || index >= len(c.plots) {
		http.NotFound(w, r)
		return
	}
	plot := c.plots[index]

	w.Header().Set("Content-Type", plot.MimeType)

	// Binary formats arrive base64 encoded; text formats are passed through.
	if isBinaryMime(plot.MimeType) {
		decoded, err := base64.StdEncoding.DecodeString(plot.Data)
		if err != nil {
			http.Error(w, "malformed plot data", http.StatusInternalServerError)
			return
		}
		w.Write(decoded)
		return
	}
	w.Write([]byte(plot.Data))
}

func isBinaryMime(mime string) bool {
	if mime == "image/svg+xml" {
		return false
	}
	return strings.HasPrefix(mime, "image/") || mime == "application/pdf"
}
