package auth

import (
	"context"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"

	"gamelib/internal/utils/logger"
)

type pingOutput struct {
	Body struct {
		Status string `json:"status"`
	}
}

func setup(t *testing.T, key string) humatest.TestAPI {
	_, api := humatest.New(t)
	mw := New(api, key, logger.Discard())
	huma.Register(api, huma.Operation{
		OperationID: "ping",
		Method:      http.MethodGet,
		Path:        "/ping",
		Middlewares: huma.Middlewares{mw.Middleware()},
	}, func(ctx context.Context, _ *struct{}) (*pingOutput, error) {
		out := &pingOutput{}
		out.Body.Status = "OK"
		return out, nil
	})
	return api
}

func TestAuth_Middleware(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		path       string
		wantStatus int
	}{
		{"no key configured", "", "/ping", http.StatusOK},
		{"valid key", "s3cret", "/ping?key=s3cret", http.StatusOK},
		{"missing key", "s3cret", "/ping", http.StatusUnauthorized},
		{"wrong key", "s3cret", "/ping?key=guess", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := setup(t, tt.key)
			resp := api.Get(tt.path)
			assert.Equal(t, tt.wantStatus, resp.Code)
		})
	}
}
