package logger

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type pingOutput struct {
	Body struct {
		RequestID string `json:"request_id"`
	}
}

func setup(t *testing.T, buf *bytes.Buffer) humatest.TestAPI {
	_, api := humatest.New(t)
	log := slog.New(slog.NewJSONHandler(buf, nil))

	huma.Register(api, huma.Operation{
		OperationID: "ping",
		Method:      http.MethodGet,
		Path:        "/ping",
		Middlewares: huma.Middlewares{New(log).Middleware()},
	}, func(ctx context.Context, _ *struct{}) (*pingOutput, error) {
		out := &pingOutput{}
		out.Body.RequestID = RequestID(ctx)
		return out, nil
	})
	return api
}

func TestMiddleware_GeneratesRequestID(t *testing.T) {
	var buf bytes.Buffer
	api := setup(t, &buf)

	resp := api.Get("/ping")
	require.Equal(t, http.StatusOK, resp.Code)

	id := resp.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.Contains(t, resp.Body.String(), id)

	assert.Contains(t, buf.String(), `"request_id":"`+id+`"`)
	assert.Contains(t, buf.String(), `"path":"/ping"`)
	assert.Contains(t, buf.String(), `"status":200`)
}

func TestMiddleware_ReusesIncomingRequestID(t *testing.T) {
	var buf bytes.Buffer
	api := setup(t, &buf)

	resp := api.Get("/ping", RequestIDHeader+": abc-123")
	assert.Equal(t, "abc-123", resp.Header().Get(RequestIDHeader))
	assert.Contains(t, resp.Body.String(), "abc-123")
}

func TestRequestID_Missing(t *testing.T) {
	assert.Empty(t, RequestID(context.Background()))
}
