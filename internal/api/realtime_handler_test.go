package api_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/phrazzld/taskboard-api/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type frame struct {
	Event string `json:"event"`
	Data  struct {
		Type   string    `json:"type"`
		Task   *taskJSON `json:"task"`
		TaskID string    `json:"taskId"`
		Tasks  []struct {
			ID string `json:"_id"`
		} `json:"tasks"`
	} `json:"data"`
}

func dialWS(t *testing.T, srv *testServer, origin string) *websocket.Conn {
	t.Helper()

	header := http.Header{}
	if origin != "" {
		header.Set("Origin", origin)
	}
	conn, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", header)
	require.NoError(t, err)
	_ = resp.Body.Close()
	t.Cleanup(func() { _ = conn.Close() })

	require.Eventually(t, func() bool { return srv.hub.SubscriberCount() > 0 }, time.Second, 5*time.Millisecond)
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) frame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var f frame
	require.NoError(t, conn.ReadJSON(&f))
	return f
}

func TestRealtime_BroadcastsEveryMutation(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	conn := dialWS(t, srv, "http://localhost:5173")

	task := createTask(t, srv, map[string]string{"title": "live", "userId": "user-1"})
	f := readFrame(t, conn)
	assert.Equal(t, events.EventName, f.Event)
	assert.Equal(t, "create", f.Data.Type)
	require.NotNil(t, f.Data.Task)
	assert.Equal(t, task.ID, f.Data.Task.ID)

	status, _ := srv.do(t, http.MethodPut, "/tasks/"+task.ID, map[string]any{"title": "edited"})
	require.Equal(t, http.StatusOK, status)
	f = readFrame(t, conn)
	assert.Equal(t, "update", f.Data.Type)
	assert.Equal(t, "edited", f.Data.Task.Title)

	status, _ = srv.do(t, http.MethodPut, "/tasks/reorder/user-1", map[string]any{"tasks": []map[string]any{
		{"_id": task.ID, "order": 0, "category": "Done"},
	}})
	require.Equal(t, http.StatusOK, status)
	f = readFrame(t, conn)
	assert.Equal(t, "reorder", f.Data.Type)
	require.Len(t, f.Data.Tasks, 1)
	assert.Equal(t, task.ID, f.Data.Tasks[0].ID)

	status, _ = srv.do(t, http.MethodDelete, "/tasks/"+task.ID, nil)
	require.Equal(t, http.StatusOK, status)
	f = readFrame(t, conn)
	assert.Equal(t, "delete", f.Data.Type)
	assert.Equal(t, task.ID, f.Data.TaskID)
}

func TestRealtime_RejectsForeignOrigin(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	_, resp, err := websocket.DefaultDialer.Dial(
		"ws"+strings.TrimPrefix(srv.URL, "http")+"/ws",
		http.Header{"Origin": []string{"http://evil.example"}},
	)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRealtime_ClosesWhenHubCloses(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	conn := dialWS(t, srv, "")

	srv.hub.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)
}
