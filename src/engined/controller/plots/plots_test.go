package plots

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/replkit/engined/src/engined/internal/serverinfofile"
	"github.com/replkit/engined/src/engined/internal/serverinfofile/serverinfofilemock"
	"github.com/replkit/engined/src/engined/internal/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/config"
	"go.uber.org/fx/fxtest"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func newController(t *testing.T) Controller {
	t.Helper()
	ctrl := gomock.NewController(t)
	infoFileMock := serverinfofilemock.NewMockServerInfoFile(ctrl)
	infoFileMock.EXPECT().UpdateField(serverinfofile.KeyPlotAddress, gomock.Any()).Return(nil).AnyTimes()

	provider, err := config.NewYAML(config.Source(strings.NewReader("plots:\n  address: 127.0.0.1:0")))
	require.NoError(t, err)

	lc := fxtest.NewLifecycle(t)
	c, err := New(Params{
		Config:         provider,
		Lifecycle:      lc,
		Logger:         zap.NewNop().Sugar(),
		Stats:          tally.NewTestScope("testing", nil),
		ServerInfoFile: infoFileMock,
	})
	require.NoError(t, err)
	lc.RequireStart()
	t.Cleanup(lc.RequireStop)
	return c
}

func TestNewMissingAddress(t *testing.T) {
	provider, err := config.NewYAML(config.Source(strings.NewReader("plots: {}")))
	require.NoError(t, err)

	_, err = New(Params{
		Config:    provider,
		Lifecycle: fxtest.NewLifecycle(t),
		Logger:    zap.NewNop().Sugar(),
		Stats:     tally.NewTestScope("testing", nil),
	})
	assert.Error(t, err)
}

func TestHandlePlot(t *testing.T) {
	c := newController(t)
	ctx := context.Background()

	plot, err := c.HandlePlot(ctx, wire.PlotDataPayload{MimeType: "image/svg+xml", Data: "<svg/>"})
	require.NoError(t, err)
	assert.Equal(t, 0, plot.Index)
	assert.Contains(t, plot.URL, "/plot/0")

	plot2, err := c.HandlePlot(ctx, wire.PlotDataPayload{MimeType: "image/svg+xml", Data: "<svg/>"})
	require.NoError(t, err)
	assert.Equal(t, 1, plot2.Index)

	assert.Len(t, c.Plots(ctx), 2)

	t.Run("missing mime type", func(t *testing.T) {
		_, err := c.HandlePlot(ctx, wire.PlotDataPayload{Data: "x"})
		assert.Error(t, err)
	})

	t.Run("clear", func(t *testing.T) {
		c.Clear(ctx)
		assert.Empty(t, c.Plots(ctx))
	})
}

func TestServePlot(t *testing.T) {
	c := newController(t)
	ctx := context.Background()

	t.Run("text plot passed through", func(t *testing.T) {
		plot, err := c.HandlePlot(ctx, wire.PlotDataPayload{MimeType: "image/svg+xml", Data: "<svg/>"})
		require.NoError(t, err)

		resp, err := http.Get(plot.URL)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "<svg/>", string(body))
	})

	t.Run("binary plot decoded from base64", func(t *testing.T) {
		raw := []byte{0x89, 0x50, 0x4e, 0x47}
		plot, err := c.HandlePlot(ctx, wire.PlotDataPayload{
			MimeType: "image/png",
			Data:     base64.StdEncoding.EncodeToString(raw),
		})
		require.NoError(t, err)

		resp, err := http.Get(plot.URL)
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, raw, body)
	})

	t.Run("malformed base64", func(t *testing.T) {
		plot, err := c.HandlePlot(ctx, wire.PlotDataPayload{MimeType: "image/png", Data: "not-base64!!!"})
		require.NoError(t, err)

		resp, err := http.Get(plot.URL)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})

	t.Run("unknown index", func(t *testing.T) {
		known, err := c.HandlePlot(ctx, wire.PlotDataPayload{MimeType: "image/svg+xml", Data: "<svg/>"})
		require.NoError(t, err)

		url := strings.Replace(known.URL, "/plot/"+strconv.Itoa(known.Index), "/plot/999", 1)
		resp, err := http.Get(url)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestListPlots(t *testing.T) {
	c := newController(t)
	ctx := context.Background()

	plot, err := c.HandlePlot(ctx, wire.PlotDataPayload{MimeType: "image/svg+xml", Data: "<svg/>"})
	require.NoError(t, err)

	base := plot.URL[:strings.Index(plot.URL, "/plot/")]
	resp, err := http.Get(base + "/plots")
	require.NoError(t, err)
	defer resp.Body.Close()

	var listed []StoredPlot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listed))
	require.Len(t, listed, 1)
	assert.Equal(t, plot.URL, listed[0].URL)
}
