package client

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/url"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/uconv/pkg/config"
	"github.com/charlie0129/uconv/pkg/events"
	"github.com/charlie0129/uconv/pkg/types"
)

func (c *Client) SetPrecision(p int) (string, error) {
	return c.Put("/precision", strconv.Itoa(p))
}

func (c *Client) SetGroupDigits(enabled bool) (string, error) {
	return c.Put("/group-digits", strconv.FormatBool(enabled))
}

func (c *Client) GetConfig() (*config.RawFileConfig, error) {
	ret, err := c.Get("/config")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get config")
	}

	var conf config.RawFileConfig
	if err := json.Unmarshal([]byte(ret), &conf); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal config")
	}

	return &conf, nil
}

func (c *Client) GetVersion() (string, error) {
	ret, err := c.Get("/version")
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to get version")
	}

	var v string
	if err := json.Unmarshal([]byte(ret), &v); err != nil {
		return "", pkgerrors.Wrapf(err, "failed to unmarshal version")
	}
	return v, nil
}

func (c *Client) ListCategories() ([]types.CategoryInfo, error) {
	ret, err := c.Get("/categories")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to list categories")
	}

	var cats []types.CategoryInfo
	if err := json.Unmarshal([]byte(ret), &cats); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal categories")
	}
	return cats, nil
}

func (c *Client) GetCategory(id string) (*types.CategoryInfo, error) {
	ret, err := c.Get("/categories/" + url.PathEscape(id))
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get category %s", id)
	}

	var cat types.CategoryInfo
	if err := json.Unmarshal([]byte(ret), &cat); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal category")
	}
	return &cat, nil
}

// Convert asks the daemon to evaluate req. A response without a result is not
// an error; check Result and Reason.
func (c *Client) Convert(req types.ConvertRequest) (*types.ConvertResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	ret, err := c.Post("/convert", string(payload))
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to convert")
	}

	var resp types.ConvertResponse
	if err := json.Unmarshal([]byte(ret), &resp); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal conversion result")
	}
	return &resp, nil
}

// SubscribeEvents streams daemon events until ctx is cancelled or the daemon
// closes the stream. The returned channel is closed when the stream ends.
func (c *Client) SubscribeEvents(ctx context.Context) (<-chan events.Event, error) {
	body, err := c.Stream(ctx, "/events")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to subscribe to events")
	}

	ch := make(chan events.Event, 16)
	go func() {
		defer close(ch)
		defer body.Close()
		if err := readEvents(ctx, body, ch); err != nil && ctx.Err() == nil {
			logrus.Errorf("event stream ended: %v", err)
		}
	}()
	return ch, nil
}

// readEvents parses a text/event-stream body. Multi-line data fields are
// joined with newlines.
func readEvents(ctx context.Context, r io.Reader, ch chan<- events.Event) error {
	var (
		name string
		data []string
	)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		switch {
		case line == "":
			if name != "" || len(data) > 0 {
				ev := events.Event{Name: name, Data: json.RawMessage(strings.Join(data, "\n"))}
				select {
				case ch <- ev:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			name, data = "", nil
		case strings.HasPrefix(line, ":"):
			// comment
		case strings.HasPrefix(line, "event:"):
			name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data = append(data, strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
		}
	}
	return sc.Err()
}
