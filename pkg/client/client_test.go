package client

import (
	"context"
	"errors"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charlie0129/uconv/pkg/config"
	"github.com/charlie0129/uconv/pkg/daemon"
	"github.com/charlie0129/uconv/pkg/events"
	"github.com/charlie0129/uconv/pkg/types"
	"github.com/charlie0129/uconv/pkg/version"
)

func startDaemon(t *testing.T) *Client {
	t.Helper()
	dir := t.TempDir()

	conf, err := config.NewFile(filepath.Join(dir, "uconv.json"))
	require.NoError(t, err)

	socket := filepath.Join(dir, "uconv.sock")
	l, err := net.Listen("unix", socket)
	require.NoError(t, err)

	srv := &http.Server{Handler: daemon.NewHandler(conf), ReadHeaderTimeout: time.Second}
	go func() { _ = srv.Serve(l) }()
	t.Cleanup(func() { _ = srv.Close() })

	return NewClient(socket)
}

func TestClientConvert(t *testing.T) {
	c := startDaemon(t)

	resp, err := c.Convert(types.ConvertRequest{Category: "mass", From: "kilograms", To: "grams", Value: "1.5"})
	require.NoError(t, err)
	require.NotNil(t, resp.Result)
	assert.InDelta(t, 1500, *resp.Result, 1e-9)
	assert.Equal(t, "1500.000000", resp.Formatted)

	resp, err = c.Convert(types.ConvertRequest{Category: "mass", From: "kilograms", To: "grams", Value: "  "})
	require.NoError(t, err)
	assert.Nil(t, resp.Result)
	assert.Equal(t, "missing-input", resp.Reason)

	_, err = c.Convert(types.ConvertRequest{Category: "mass", From: "kilograms", To: "stones", Value: "1"})
	assert.Error(t, err)
}

func TestClientConfig(t *testing.T) {
	c := startDaemon(t)

	_, err := c.SetPrecision(2)
	require.NoError(t, err)
	_, err = c.SetGroupDigits(true)
	require.NoError(t, err)

	conf, err := c.GetConfig()
	require.NoError(t, err)
	require.NotNil(t, conf.Precision)
	require.NotNil(t, conf.GroupDigits)
	assert.Equal(t, 2, *conf.Precision)
	assert.True(t, *conf.GroupDigits)

	resp, err := c.Convert(types.ConvertRequest{Category: "length", From: "kilometers", To: "meters", Value: "1234.5"})
	require.NoError(t, err)
	assert.Equal(t, "1,234,500.00", resp.Formatted)

	_, err = c.SetPrecision(99)
	assert.Error(t, err)
}

func TestClientCategories(t *testing.T) {
	c := startDaemon(t)

	v, err := c.GetVersion()
	require.NoError(t, err)
	assert.Equal(t, version.Version, v)

	cats, err := c.ListCategories()
	require.NoError(t, err)
	assert.Len(t, cats, 5)

	cat, err := c.GetCategory("volume")
	require.NoError(t, err)
	assert.Equal(t, "Volume", cat.Name)
	assert.Equal(t, "liters", cat.Units[0].ID)

	_, err = c.GetCategory("speed")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClientSubscribeEvents(t *testing.T) {
	c := startDaemon(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ch, err := c.SubscribeEvents(ctx)
	require.NoError(t, err)

	// the daemon subscribes before it flushes the stream headers
	_, err = c.SetPrecision(3)
	require.NoError(t, err)

	var ev events.Event
	select {
	case ev = <-ch:
	case <-ctx.Done():
		t.Fatal("no event received")
	}
	assert.Equal(t, events.ConfigChanged, ev.Name)

	payload, err := events.DecodeAs[events.ConfigChangedEvent](ev)
	require.NoError(t, err)
	assert.Equal(t, "precision", payload.Key)
	assert.EqualValues(t, 3, payload.Value)

	cancel()
	for range ch {
	}
}

func TestClientDaemonNotRunning(t *testing.T) {
	c := NewClient(filepath.Join(t.TempDir(), "missing.sock"))
	_, err := c.GetVersion()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDaemonNotRunning), err.Error())
}

func TestReadEvents(t *testing.T) {
	stream := strings.Join([]string{
		": connected",
		"",
		"event:conversion.completed",
		`data:{"category":"length","result":2}`,
		"",
		"event: config.changed",
		`data: {"key":"precision",`,
		`data: "value":4}`,
		"",
		"",
	}, "\n")

	ch := make(chan events.Event, 4)
	require.NoError(t, readEvents(context.Background(), strings.NewReader(stream), ch))
	close(ch)

	var got []events.Event
	for ev := range ch {
		got = append(got, ev)
	}
	require.Len(t, got, 2)
	assert.Equal(t, events.ConversionCompleted, got[0].Name)
	assert.JSONEq(t, `{"category":"length","result":2}`, string(got[0].Data))
	assert.Equal(t, events.ConfigChanged, got[1].Name)

	payload, err := events.DecodeAs[events.ConfigChangedEvent](got[1])
	require.NoError(t, err)
	assert.Equal(t, "precision", payload.Key)
}
