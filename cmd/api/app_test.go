package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-map/internal/config"
	"weather-map/internal/providers"
	"weather-map/internal/render"
	"weather-map/internal/session"
	"weather-map/internal/types"
)

type mockLocationService struct {
	coords types.Coords
	err    error
	gotIP  string
}

func (m *mockLocationService) Locate(ctx context.Context, ip string) (types.Coords, error) {
	m.gotIP = ip
	return m.coords, m.err
}

type mockRenderService struct {
	mu    sync.Mutex
	err   error
	calls []types.Coords
}

func (m *mockRenderService) Render(ctx context.Context, coords types.Coords) (*render.Page, error) {
	m.mu.Lock()
	m.calls = append(m.calls, coords)
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if err := coords.Validate(); err != nil {
		return nil, err
	}
	name, rows := render.FormatDisplayName("New York, United States")
	return &render.Page{
		Longitude:   coords.Longitude,
		Latitude:    coords.Latitude,
		DisplayName: name,
		DisplayRows: rows,
		Timezone:    "UTC",
	}, nil
}

func (m *mockRenderService) lastCall() types.Coords {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[len(m.calls)-1]
}

func newTestApp(t *testing.T, loc *mockLocationService, rs *mockRenderService) *App {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{Port: 8080, GinMode: gin.TestMode},
		App: config.AppConfig{
			LocateZoom:     10,
			ClockInterval:  50 * time.Millisecond,
			RequestTimeout: time.Second,
		},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return newApp(cfg, logger, loc, rs)
}

func get(app *App, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	app.router.ServeHTTP(w, req)
	return w
}

func TestHandlePing(t *testing.T) {
	app := newTestApp(t, &mockLocationService{}, &mockRenderService{})

	w := get(app, "/ping")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong","version":"1.0","geoip":false}`, w.Body.String())
}

func TestHandleGetVisitor(t *testing.T) {
	tests := []struct {
		name       string
		loc        *mockLocationService
		wantStatus int
		wantBody   string
	}{
		{
			name:       "located",
			loc:        &mockLocationService{coords: types.NewCoords(40.7, -74.0)},
			wantStatus: http.StatusOK,
			wantBody:   `{"longitude":-74,"latitude":40.7}`,
		},
		{
			name:       "upstream failure",
			loc:        &mockLocationService{err: providers.StatusError("ipinfo", 429, "rate limited")},
			wantStatus: http.StatusBadGateway,
			wantBody:   `{"error":"failed to locate visitor"}`,
		},
		{
			name:       "unexpected failure",
			loc:        &mockLocationService{err: errors.New("boom")},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"failed to locate visitor"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, tt.loc, &mockRenderService{})

			w := get(app, "/api/v1/visitor")

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			assert.Equal(t, "192.0.2.1", tt.loc.gotIP)
		})
	}
}

func TestHandleGetRender(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		renderErr  error
		wantStatus int
		wantCalled bool
	}{
		{name: "rendered", query: "longitude=-74.006&latitude=40.7128", wantStatus: http.StatusOK, wantCalled: true},
		{name: "zero coordinates are valid", query: "longitude=0&latitude=0", wantStatus: http.StatusOK, wantCalled: true},
		{name: "missing latitude", query: "longitude=-74.006", wantStatus: http.StatusBadRequest},
		{name: "not a number", query: "longitude=abc&latitude=1", wantStatus: http.StatusBadRequest},
		{name: "latitude out of range", query: "longitude=0&latitude=95", wantStatus: http.StatusBadRequest, wantCalled: true},
		{
			name:       "weather api down",
			query:      "longitude=0&latitude=0",
			renderErr:  providers.NetworkError("openweathermap", errors.New("connection refused")),
			wantStatus: http.StatusBadGateway,
			wantCalled: true,
		},
		{
			name:       "unparseable place",
			query:      "longitude=0&latitude=0",
			renderErr:  providers.ParseError("openstreetmap", errors.New("unexpected EOF")),
			wantStatus: http.StatusBadGateway,
			wantCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := &mockRenderService{err: tt.renderErr}
			app := newTestApp(t, &mockLocationService{}, rs)

			w := get(app, "/api/v1/render?"+tt.query)

			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			assert.Equal(t, tt.wantCalled, len(rs.calls) > 0)
		})
	}
}

func TestHandleGetRender_Body(t *testing.T) {
	app := newTestApp(t, &mockLocationService{}, &mockRenderService{})

	w := get(app, "/api/v1/render?longitude=-74.006&latitude=40.7128")
	require.Equal(t, http.StatusOK, w.Code)

	var page render.Page
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, -74.006, page.Longitude)
	assert.Equal(t, 40.7128, page.Latitude)
	assert.Equal(t, "New York,\nUnited States", page.DisplayName)
	assert.Equal(t, 4, page.DisplayRows)
}

func TestHandleGetClick(t *testing.T) {
	rs := &mockRenderService{}
	app := newTestApp(t, &mockLocationService{}, rs)

	w := get(app, "/api/v1/click?x=-8238310.235647004&y=4970071.579142425")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	got := rs.lastCall()
	assert.InDelta(t, -74.006, got.Longitude, 1e-6)
	assert.InDelta(t, 40.7128, got.Latitude, 1e-6)

	w = get(app, "/api/v1/click?x=0&y=40000000")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, rs.calls, 1)

	w = get(app, "/api/v1/click?x=0")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleIndex(t *testing.T) {
	app := newTestApp(t, &mockLocationService{}, &mockRenderService{})

	w := get(app, "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), `data-overlay="/overlay.geojson"`)
	assert.Contains(t, w.Body.String(), `data-overlay-format="geojson"`)
	assert.Contains(t, w.Body.String(), `id="display_name"`)
	assert.Contains(t, w.Body.String(), `<input id="longitude" type="number" step="any" readonly>`)
	assert.Contains(t, w.Body.String(), `<input id="latitude" type="number" step="any" readonly>`)

	w = get(app, "/assets/app.js")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "basemaps.cartocdn.com")
	assert.Contains(t, w.Body.String(), "[0xff, 0xff, 0x33, 0.001]")
	assert.Contains(t, w.Body.String(), "'#99bbff'")

	w = get(app, "/overlay.kml")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleTimezoneOverlay(t *testing.T) {
	app := newTestApp(t, &mockLocationService{}, &mockRenderService{})

	w := get(app, "/overlay.geojson")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/geo+json", w.Header().Get("Content-Type"))

	fc, err := geojson.UnmarshalFeatureCollection(w.Body.Bytes())
	require.NoError(t, err)
	assert.Greater(t, len(fc.Features), 300)

	zones := make(map[string]bool, len(fc.Features))
	for _, f := range fc.Features {
		zones[f.Properties.MustString("tzid", "")] = true
	}
	assert.True(t, zones["America/New_York"])
	assert.True(t, zones["Australia/Sydney"])
}

func TestHandleIndex_KMLOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timezones.kml")
	kml := `<?xml version="1.0" encoding="UTF-8"?><kml xmlns="http://www.opengis.net/kml/2.2"><Document/></kml>`
	require.NoError(t, os.WriteFile(path, []byte(kml), 0o600))

	app := newTestApp(t, &mockLocationService{}, &mockRenderService{})
	app.cfg.App.OverlayPath = path

	w := get(app, "/")
	assert.Contains(t, w.Body.String(), `data-overlay="/overlay.kml"`)
	assert.Contains(t, w.Body.String(), `data-overlay-format="kml"`)

	w = get(app, "/overlay.kml")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.google-earth.kml+xml", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "<Document/>")
}

func TestHandleMetrics(t *testing.T) {
	app := newTestApp(t, &mockLocationService{}, &mockRenderService{})
	get(app, "/ping")

	w := get(app, "/metrics")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "weather_map_http_requests_total")
}

func TestHandleSwagger(t *testing.T) {
	app := newTestApp(t, &mockLocationService{}, &mockRenderService{})

	w := get(app, "/swagger/doc.json")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/v1/render")
}

func readEvent(t *testing.T, conn *websocket.Conn, want session.EventType) map[string]any {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for {
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)

		var event struct {
			Type session.EventType `json:"type"`
			Seq  uint64            `json:"seq"`
			Data map[string]any    `json:"data"`
		}
		require.NoError(t, json.Unmarshal(data, &event))
		if event.Type == want {
			event.Data["_seq"] = float64(event.Seq)
			return event.Data
		}
	}
}

func TestHandleSession(t *testing.T) {
	loc := &mockLocationService{coords: types.NewCoords(40.7, -74.0)}
	rs := &mockRenderService{}
	app := newTestApp(t, loc, rs)

	server := httptest.NewServer(app.router)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	view := readEvent(t, conn, session.EventView)
	assert.Equal(t, float64(10), view["zoom"])

	page := readEvent(t, conn, session.EventPage)
	assert.Equal(t, float64(1), page["_seq"])
	assert.Equal(t, -74.0, page["longitude"])

	clock := readEvent(t, conn, session.EventClock)
	assert.True(t, strings.HasPrefix(clock["text"].(string), "UTC\n"))

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "click", "x": 0, "y": 0}))
	page = readEvent(t, conn, session.EventPage)
	assert.Equal(t, float64(2), page["_seq"])
	assert.Equal(t, 0.0, page["longitude"])

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "click", "x": 0, "y": math.MaxFloat64}))
	notice := readEvent(t, conn, session.EventNotice)
	assert.Equal(t, session.InvalidPointMessage, notice["message"])
}
