package shared

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceID(t *testing.T) {
	t.Parallel()

	assert.Empty(t, GetTraceID(context.Background()))

	ctx := SetTraceID(context.Background())
	id := GetTraceID(ctx)
	assert.Len(t, id, TraceIDLength*2)
	assert.NotEqual(t, id, GetTraceID(SetTraceID(context.Background())))
}

func TestRespondWithErrorAndLog(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/tasks/u", nil)
	req = req.WithContext(SetTraceID(req.Context()))
	rec := httptest.NewRecorder()

	RespondWithErrorAndLog(rec, req, http.StatusInternalServerError, "Failed to load tasks",
		errors.New("dial tcp postgres://admin:hunter2@db:5432 failed"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotContains(t, rec.Body.String(), "hunter2")

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Failed to load tasks", body["message"])
	assert.Equal(t, GetTraceID(req.Context()), body["trace_id"])
	assert.NotContains(t, body, "Code")
}

func TestRespondWithErrorAndLog_TraceIDLoggedOnce(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/users/ghost@example.com", nil)
	ctx := SetTraceID(req.Context())

	var buf bytes.Buffer
	scoped := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})).
		With(slog.String("trace_id", GetTraceID(ctx)))
	req = req.WithContext(logger.WithLogger(ctx, scoped))

	RespondWithErrorAndLog(httptest.NewRecorder(), req, http.StatusNotFound, "User not found", nil)

	line := buf.String()
	require.NotEmpty(t, line)
	assert.Equal(t, 1, strings.Count(line, `"trace_id"`), line)
	assert.Contains(t, line, GetTraceID(ctx))
}

func TestRespondWithSuccess(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	RespondWithSuccess(rec, httptest.NewRequest(http.MethodDelete, "/tasks/x", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	type payload struct {
		Title string `json:"title" validate:"required"`
	}

	t.Run("valid body", func(t *testing.T) {
		var p payload
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"x"}`))
		require.NoError(t, DecodeJSON(httptest.NewRecorder(), req, &p))
		assert.Equal(t, "x", p.Title)
		assert.NoError(t, ValidateRequest(p))
	})

	t.Run("empty body", func(t *testing.T) {
		var p payload
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
		assert.ErrorIs(t, DecodeJSON(httptest.NewRecorder(), req, &p), ErrEmptyBody)
	})

	t.Run("malformed body", func(t *testing.T) {
		var p payload
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":`))
		assert.Error(t, DecodeJSON(httptest.NewRecorder(), req, &p))
	})

	t.Run("struct validation", func(t *testing.T) {
		assert.Error(t, ValidateRequest(payload{}))
	})
}
