package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/extlink/internal/configstore"
	"github.com/MrSnakeDoc/extlink/internal/domain"
	"github.com/MrSnakeDoc/extlink/internal/history"
	"github.com/MrSnakeDoc/extlink/internal/httpserver/deps"
	"github.com/MrSnakeDoc/extlink/internal/kv"
	"github.com/MrSnakeDoc/extlink/internal/logger"
	"github.com/MrSnakeDoc/extlink/internal/metrics"
	"github.com/MrSnakeDoc/extlink/internal/resolver"
	"github.com/MrSnakeDoc/extlink/internal/settings"
)

func newTestDeps(t *testing.T) deps.Deps {
	t.Helper()
	log := logger.NewNop()
	rec := metrics.New()
	store := configstore.New(kv.NewMemory(), log)

	return deps.Deps{
		Logger:    log,
		StartTime: time.Now(),
		Version:   "test",
		StoreKind: "memory",
		Store:     store,
		Resolver:  resolver.New(store, rec),
		History:   history.New(store, log, rec),
		Settings:  settings.New(store, log),
		Metrics:   rec,
	}
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestMappingCRUD(t *testing.T) {
	h := NewRouter(newTestDeps(t))

	rec := do(t, h, http.MethodPost, "/api/mappings", `{"internal":"  http://files.local ","external":"https://pub.example.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[domain.DomainMapping](t, rec)
	assert.Equal(t, "http://files.local", created.InternalPrefix)
	assert.True(t, created.Enabled)
	assert.NotEmpty(t, created.ID)

	rec = do(t, h, http.MethodPut, "/api/mappings/"+created.ID, `{"internal":"http://files.local","external":"https://cdn.example.com","enabled":false}`)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/mappings", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]domain.DomainMapping](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, "https://cdn.example.com", list[0].ExternalPrefix)
	assert.False(t, list[0].Enabled)

	rec = do(t, h, http.MethodDelete, "/api/mappings/"+created.ID, "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, h, http.MethodDelete, "/api/mappings/"+created.ID, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/mappings", "")
	assert.Empty(t, decode[[]domain.DomainMapping](t, rec))
}

func TestAddMappingValidation(t *testing.T) {
	h := NewRouter(newTestDeps(t))

	tests := []struct {
		name string
		body string
	}{
		{name: "empty internal", body: `{"internal":"   ","external":"https://x"}`},
		{name: "empty external", body: `{"internal":"http://a","external":""}`},
		{name: "bad json", body: `{"internal":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/mappings", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotEmpty(t, decode[map[string]string](t, rec)["error"])
		})
	}

	rec := do(t, h, http.MethodGet, "/api/mappings", "")
	assert.Empty(t, decode[[]domain.DomainMapping](t, rec))
}

func TestConvertAndCopy(t *testing.T) {
	d := newTestDeps(t)
	h := NewRouter(d)
	_, err := d.Store.AddMapping(context.Background(), "http://files.local", "https://pub.example.com")
	require.NoError(t, err)

	rec := do(t, h, http.MethodGet, "/api/convert?url=http://files.local/d/a.txt", "")
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[resolver.Result](t, rec)
	assert.Equal(t, "https://pub.example.com/d/a.txt", res.External)
	assert.True(t, res.Mapped)

	// Convert alone never records.
	rec = do(t, h, http.MethodGet, "/api/history", "")
	assert.Empty(t, decode[[]domain.HistoryEntry](t, rec))

	rec = do(t, h, http.MethodPost, "/api/copy", `{"origin":"http://files.local","href":"/docs/b.pdf"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	first := decode[copyBody](t, rec)
	assert.Equal(t, "https://pub.example.com/d/docs/b.pdf", first.External)
	assert.True(t, first.Recorded)

	rec = do(t, h, http.MethodPost, "/api/copy", `{"url":"http://files.local/d/docs/b.pdf"}`)
	second := decode[copyBody](t, rec)
	assert.False(t, second.Recorded)

	// Unmapped URL comes back unchanged and is not recorded.
	rec = do(t, h, http.MethodPost, "/api/copy", `{"url":"http://other.host/x"}`)
	third := decode[copyBody](t, rec)
	assert.Equal(t, "http://other.host/x", third.External)
	assert.False(t, third.Mapped)

	rec = do(t, h, http.MethodGet, "/api/history", "")
	entries := decode[[]domain.HistoryEntry](t, rec)
	require.Len(t, entries, 1)
	assert.Equal(t, "http://files.local/d/docs/b.pdf", entries[0].OriginalURL)

	rec = do(t, h, http.MethodPost, "/api/copy", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type copyBody struct {
	External string `json:"external"`
	Mapped   bool   `json:"mapped"`
	Recorded bool   `json:"recorded"`
}

func TestAvailableAndMatch(t *testing.T) {
	d := newTestDeps(t)
	h := NewRouter(d)

	rec := do(t, h, http.MethodGet, "/api/available", "")
	assert.False(t, decode[map[string]bool](t, rec)["available"])

	_, err := d.Store.AddMapping(context.Background(), "http://files.local", "https://pub.example.com")
	require.NoError(t, err)

	rec = do(t, h, http.MethodGet, "/api/available", "")
	assert.True(t, decode[map[string]bool](t, rec)["available"])

	rec = do(t, h, http.MethodGet, "/api/match?origin=http://files.local", "")
	assert.True(t, decode[map[string]bool](t, rec)["match"])
	rec = do(t, h, http.MethodGet, "/api/match?origin=http://elsewhere", "")
	assert.False(t, decode[map[string]bool](t, rec)["match"])

	rec = do(t, h, http.MethodGet, "/api/match", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHistoryEndpoints(t *testing.T) {
	d := newTestDeps(t)
	h := NewRouter(d)
	ctx := context.Background()

	a, _, err := d.History.Record(ctx, "https://x/a", "http://i/a")
	require.NoError(t, err)
	_, _, err = d.History.Record(ctx, "https://x/b", "http://i/b")
	require.NoError(t, err)

	rec := do(t, h, http.MethodDelete, "/api/history/"+a.ID, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/history", "")
	entries := decode[[]domain.HistoryEntry](t, rec)
	require.Len(t, entries, 1)
	assert.Equal(t, "https://x/b", entries[0].ExternalURL)

	rec = do(t, h, http.MethodDelete, "/api/history", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, h, http.MethodGet, "/api/history", "")
	assert.Empty(t, decode[[]domain.HistoryEntry](t, rec))
}

func TestSettingsEndpoints(t *testing.T) {
	h := NewRouter(newTestDeps(t))

	rec := do(t, h, http.MethodGet, "/api/settings", "")
	assert.Equal(t, domain.DefaultHistory, decode[domain.Settings](t, rec).MaxHistory)

	tests := []struct {
		body       string
		wantStatus int
		wantMax    int
	}{
		{body: `{"maxHistory":200}`, wantStatus: http.StatusOK, wantMax: 200},
		{body: `{"maxHistory":"30"}`, wantStatus: http.StatusOK, wantMax: 30},
		{body: `{"maxHistory":9}`, wantStatus: http.StatusBadRequest, wantMax: 30},
		{body: `{"maxHistory":501}`, wantStatus: http.StatusBadRequest, wantMax: 30},
		{body: `{"maxHistory":"abc"}`, wantStatus: http.StatusBadRequest, wantMax: 30},
		{body: `{"maxHistory":12.5}`, wantStatus: http.StatusBadRequest, wantMax: 30},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			rec := do(t, h, http.MethodPut, "/api/settings", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			rec = do(t, h, http.MethodGet, "/api/settings", "")
			assert.Equal(t, tt.wantMax, decode[domain.Settings](t, rec).MaxHistory)
		})
	}
}

func TestButtonPositionEndpoints(t *testing.T) {
	h := NewRouter(newTestDeps(t))

	rec := do(t, h, http.MethodGet, "/api/button-position", "")
	assert.Equal(t, domain.DefaultButtonPosition(), decode[domain.ButtonPosition](t, rec))

	rec = do(t, h, http.MethodPut, "/api/button-position", `{"top":240,"edge":"left"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/button-position", "")
	assert.Equal(t, domain.ButtonPosition{Top: 240, Edge: domain.EdgeLeft}, decode[domain.ButtonPosition](t, rec))

	rec = do(t, h, http.MethodPut, "/api/button-position", `{"top":10,"edge":"top"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = do(t, h, http.MethodPut, "/api/button-position", `{"top":"high","edge":"left"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReload(t *testing.T) {
	d := newTestDeps(t)
	rec := do(t, NewRouter(d), http.MethodPost, "/api/reload", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	d.ReloadTrigger = make(chan struct{}, 1)
	h := NewRouter(d)
	rec = do(t, h, http.MethodPost, "/api/reload", "")
	assert.Equal(t, http.StatusAccepted, rec.Code)
	rec = do(t, h, http.MethodPost, "/api/reload", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestProbes(t *testing.T) {
	d := newTestDeps(t)
	h := NewRouter(d)

	rec := do(t, h, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "memory", decode[map[string]any](t, rec)["store"])

	rec = do(t, h, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	d.Ping = func(context.Context) error { return errors.New("down") }
	rec = do(t, NewRouter(d), http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	do(t, h, http.MethodGet, "/api/available", "")
	rec = do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `extlink_http_requests_total{method="GET",route="/api/available",status="200"} 1`)
}

func TestCORSPreflight(t *testing.T) {
	h := NewRouter(newTestDeps(t))

	req := httptest.NewRequest(http.MethodOptions, "/api/convert", nil)
	req.Header.Set("Origin", "http://files.local")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestPanickingRequestIsCounted(t *testing.T) {
	d := newTestDeps(t)
	mux, ok := NewRouter(d).(*chi.Mux)
	require.True(t, ok)
	mux.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })

	rec := do(t, mux, http.MethodGet, "/boom", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = do(t, mux, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `extlink_http_requests_total{method="GET",route="/boom",status="500"} 1`)
}
