package daemon

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charlie0129/uconv/pkg/config"
	"github.com/charlie0129/uconv/pkg/types"
	"github.com/charlie0129/uconv/pkg/version"
)

func newTestServer(t *testing.T) (*server, http.Handler) {
	t.Helper()
	conf, err := config.NewFile(filepath.Join(t.TempDir(), "uconv.json"))
	require.NoError(t, err)
	s := newServer(conf)
	return s, s.setupRoutes()
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestConvertHandler(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		code      int
		result    *float64
		formatted string
		reason    string
	}{
		{
			name:      "typed value",
			body:      `{"category":"length","from":"kilometers","to":"meters","value":"1"}`,
			code:      http.StatusOK,
			result:    f64(1000),
			formatted: "1000.000000",
		},
		{
			name:      "temperature",
			body:      `{"category":"temperature","from":"celsius","to":"fahrenheit","value":"0"}`,
			code:      http.StatusOK,
			result:    f64(32),
			formatted: "32.000000",
		},
		{
			name: "volume from mixed dimensions",
			body: `{"category":"volume","from":"cubicMeters","to":"liters","dimensions":{
				"length":{"value":"1","unit":"meters"},
				"width":{"value":"1"},
				"height":{"value":"1","unit":"feet"}}}`,
			code:      http.StatusOK,
			result:    f64(304.8),
			formatted: "304.800000",
		},
		{
			name:   "blank value",
			body:   `{"category":"mass","from":"grams","to":"ounces","value":""}`,
			code:   http.StatusOK,
			reason: "missing-input",
		},
		{
			name:   "not a number",
			body:   `{"category":"mass","from":"grams","to":"ounces","value":"ten"}`,
			code:   http.StatusOK,
			reason: "invalid-number",
		},
		{
			name: "unknown unit",
			body: `{"category":"mass","from":"grams","to":"stones","value":"1"}`,
			code: http.StatusBadRequest,
		},
		{
			name: "unknown category",
			body: `{"category":"speed","from":"knots","to":"mph","value":"1"}`,
			code: http.StatusBadRequest,
		},
		{
			name: "malformed body",
			body: `{"category":`,
			code: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, h := newTestServer(t)
			w := do(h, http.MethodPost, "/convert", tt.body)
			require.Equal(t, tt.code, w.Code, w.Body.String())
			if tt.code != http.StatusOK {
				return
			}

			var resp types.ConvertResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.reason, resp.Reason)
			assert.Equal(t, tt.formatted, resp.Formatted)
			if tt.result == nil {
				assert.Nil(t, resp.Result)
				return
			}
			require.NotNil(t, resp.Result)
			assert.InDelta(t, *tt.result, *resp.Result, 1e-9)
		})
	}
}

func TestConvertHandlerUsesConfig(t *testing.T) {
	s, h := newTestServer(t)
	s.conf.SetPrecision(2)
	s.conf.SetGroupDigits(true)
	s.conf.SetDimensionUnit("feet")

	w := do(h, http.MethodPost, "/convert", `{"category":"area","from":"squareFeet","to":"squareMeters","dimensions":{
		"length":{"value":"100"},"width":{"value":"100"}}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp types.ConvertResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Result)
	assert.InDelta(t, 929.0304, *resp.Result, 1e-9)
	assert.Contains(t, resp.Formatted, ".03")
}

func TestSetPrecision(t *testing.T) {
	s, h := newTestServer(t)

	w := do(h, http.MethodPut, "/precision", "3")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 3, s.conf.Precision())

	w = do(h, http.MethodPut, "/precision", "16")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 3, s.conf.Precision())

	w = do(h, http.MethodPut, "/precision", `"three"`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// persisted
	w = do(h, http.MethodGet, "/config", "")
	require.Equal(t, http.StatusOK, w.Code)
	var raw config.RawFileConfig
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	require.NotNil(t, raw.Precision)
	assert.Equal(t, 3, *raw.Precision)
}

func TestSetGroupDigits(t *testing.T) {
	s, h := newTestServer(t)

	w := do(h, http.MethodPut, "/group-digits", "true")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, s.conf.GroupDigits())

	w = do(h, http.MethodPut, "/group-digits", "maybe")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCategories(t *testing.T) {
	_, h := newTestServer(t)

	w := do(h, http.MethodGet, "/categories", "")
	require.Equal(t, http.StatusOK, w.Code)
	var cats []types.CategoryInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cats))
	require.Len(t, cats, 5)
	ids := []string{}
	for _, c := range cats {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"length", "mass", "temperature", "area", "volume"}, ids)

	w = do(h, http.MethodGet, "/categories/temperature", "")
	require.Equal(t, http.StatusOK, w.Code)
	var cat types.CategoryInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cat))
	assert.Equal(t, "Temperature", cat.Name)
	assert.Equal(t, "temperature", cat.Units[0].Rule)

	w = do(h, http.MethodGet, "/categories/speed", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVersion(t *testing.T) {
	_, h := newTestServer(t)
	w := do(h, http.MethodGet, "/version", "")
	require.Equal(t, http.StatusOK, w.Code)
	var v string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	assert.Equal(t, version.Version, v)
}

func TestMetrics(t *testing.T) {
	_, h := newTestServer(t)
	do(h, http.MethodPost, "/convert", `{"category":"length","from":"meters","to":"feet","value":"1"}`)
	do(h, http.MethodPost, "/convert", `{"category":"length","from":"meters","to":"feet","value":""}`)

	w := do(h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `uconv_conversions_total{category="length",outcome="ok"} 1`)
	assert.Contains(t, body, `uconv_conversions_total{category="length",outcome="missing-input"} 1`)
	assert.Contains(t, body, `uconv_http_requests_total{code="200",route="/convert"} 2`)
}

func TestStreamEvents(t *testing.T) {
	s, h := newTestServer(t)
	srv := httptest.NewServer(h)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	r := bufio.NewReader(resp.Body)
	line, err := r.ReadString('\n')
	require.NoError(t, err)
	require.Equal(t, ": connected\n", line)

	require.Eventually(t, func() bool { return s.hub.Subscribers() == 1 }, time.Second, 10*time.Millisecond)
	w := do(h, http.MethodPost, "/convert", `{"category":"length","from":"kilometers","to":"meters","value":"2"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var event, data string
	for event == "" || data == "" {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		switch {
		case strings.HasPrefix(line, "event:"):
			event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data = strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		}
	}
	assert.Equal(t, "conversion.completed", event)
	assert.Contains(t, data, `"result":2000`)
}

func f64(v float64) *float64 { return &v }
