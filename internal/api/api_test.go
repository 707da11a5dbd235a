package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/taskboard-api/internal/api"
	"github.com/phrazzld/taskboard-api/internal/api/middleware"
	"github.com/phrazzld/taskboard-api/internal/events"
	"github.com/phrazzld/taskboard-api/internal/platform/sqlite"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/testdb"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testServer struct {
	*httptest.Server
	hub *events.Hub
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db := testdb.OpenSQLite(t)
	hub := events.NewHub(16, nil)
	t.Cleanup(hub.Close)

	tasks := service.NewTaskService(sqlite.NewTaskStore(db, nil), hub, nil)
	users := service.NewUserService(sqlite.NewUserStore(db, bcrypt.MinCost, nil), nil)

	r := chi.NewRouter()
	r.Use(middleware.TraceMiddleware(nil))
	api.NewTaskHandler(tasks, nil).Routes(r)
	api.NewUserHandler(users, nil).Routes(r)
	r.Handle("/ws", api.NewRealtimeHandler(hub, []string{"http://localhost:5173"}, nil))

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, hub: hub}
}

// do sends a JSON request and returns the status and raw body.
func (s *testServer) do(t *testing.T, method, path string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, s.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client().Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}
