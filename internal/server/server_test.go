package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/gravlens/internal/config"
	"github.com/san-kum/gravlens/internal/demo"
	"github.com/san-kum/gravlens/internal/github"
	"github.com/san-kum/gravlens/internal/grid"
)

type fakeSource struct {
	days  []grid.Day
	err   error
	users []string
}

func (f *fakeSource) Days(_ context.Context, user string) ([]grid.Day, error) {
	f.users = append(f.users, user)
	return f.days, f.err
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Lens.Duration = 2
	return cfg
}

func do(t *testing.T, s *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHealth(t *testing.T) {
	s := New(&fakeSource{}, testConfig(), nil)
	w := do(t, s, http.MethodGet, "/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Preflight(t *testing.T) {
	s := New(&fakeSource{}, testConfig(), nil)
	w := do(t, s, http.MethodOptions, "/api/v1/demo/lens.svg")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestDemoBadge(t *testing.T) {
	s := New(&fakeSource{}, testConfig(), nil)
	w := do(t, s, http.MethodGet, "/api/v1/demo/lens.svg?seed=7&theme=light")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
	assert.Equal(t, badgeCacheControl, w.Header().Get("Cache-Control"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "<svg"))
	assert.Contains(t, w.Body.String(), "</svg>")
}

func TestDemoBadge_BadSeed(t *testing.T) {
	s := New(&fakeSource{}, testConfig(), nil)
	w := do(t, s, http.MethodGet, "/api/v1/demo/lens.svg?seed=-1")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserBadge(t *testing.T) {
	src := &fakeSource{days: demo.Generate(1)}
	s := New(src, testConfig(), nil)
	w := do(t, s, http.MethodGet, "/api/v1/users/octocat/lens.svg?strength=0.8")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"octocat"}, src.users)
	assert.Contains(t, w.Body.String(), "@keyframes")
}

func TestUserBadge_InvalidQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"unknown theme", "theme=neon"},
		{"strength not a number", "strength=lots"},
		{"negative strength", "strength=-1"},
		{"strength too large", fmt.Sprintf("strength=%g", MaxStrength+1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{days: demo.Generate(1)}
			s := New(src, testConfig(), nil)
			w := do(t, s, http.MethodGet, "/api/v1/users/octocat/lens.svg?"+tt.query)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Empty(t, src.users, "source must not be queried")
			assert.Equal(t, http.StatusBadRequest, decode(t, w).Code)
		})
	}
}

func TestUserBadge_SourceErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", github.ErrUserNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("fetch: %w", github.ErrUserNotFound), http.StatusNotFound},
		{"upstream status", &github.APIError{StatusCode: 401, Status: "401 Unauthorized"}, http.StatusBadGateway},
		{"graphql", &github.GraphQLError{Message: "rate limited"}, http.StatusBadGateway},
		{"other", errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(&fakeSource{err: tt.err}, testConfig(), nil)
			w := do(t, s, http.MethodGet, "/api/v1/users/ghost/lens.svg")
			assert.Equal(t, tt.want, w.Code)
			assert.Equal(t, tt.want, decode(t, w).Code)
		})
	}
}

func TestUserCells(t *testing.T) {
	days := make([]grid.Day, 14)
	for i := range days {
		days[i] = grid.Day{Date: "2024-01-01", Count: i + 1, Level: 1}
	}
	days[9].Count = 40

	s := New(&fakeSource{days: days}, testConfig(), nil)
	w := do(t, s, http.MethodGet, "/api/v1/users/octocat/cells")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Code int           `json:"code"`
		Data CellsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, 0, resp.Code)
	assert.Equal(t, "octocat", resp.Data.User)
	assert.Equal(t, 14, resp.Data.Days)
	assert.Equal(t, 1, resp.Data.MaxCol)
	assert.Equal(t, 6, resp.Data.MaxRow)
	require.Len(t, resp.Data.Cells, 14)
	// Threshold 13.7 flags the spike and the last day.
	assert.Equal(t, 2, resp.Data.Anomalies)
	assert.True(t, resp.Data.Cells[9].IsAnomaly)
	assert.True(t, resp.Data.Cells[13].IsAnomaly)
	assert.False(t, resp.Data.Cells[0].IsAnomaly)
}

func TestRun_Shutdown(t *testing.T) {
	s := New(&fakeSource{}, testConfig(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, "127.0.0.1:0") }()

	cancel()
	assert.NoError(t, <-done)
}
