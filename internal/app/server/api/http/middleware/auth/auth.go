package auth

import (
	"crypto/subtle"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

// KeyParam is the query parameter carrying the API key, as on RAWG.
const KeyParam = "key"

// Auth rejects requests that do not carry the configured API key.
type Auth struct {
	api huma.API
	key string
	log *slog.Logger
}

// New returns the key check. An empty key lets every request through.
func New(api huma.API, key string, log *slog.Logger) *Auth {
	return &Auth{
		api: api,
		key: key,
		log: log.With(slog.String("component", "auth_middleware")),
	}
}

func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if a.key == "" {
			next(ctx)
			return
		}

		got := ctx.Query(KeyParam)
		if subtle.ConstantTimeCompare([]byte(got), []byte(a.key)) != 1 {
			a.log.Warn("rejected request with a missing or wrong API key",
				slog.String("path", ctx.URL().Path),
				slog.String("remote_addr", ctx.RemoteAddr()),
			)
			if err := huma.WriteErr(a.api, ctx, http.StatusUnauthorized, "missing or invalid API key"); err != nil {
				a.log.Error("failed to write error response", "error", err)
			}
			return
		}

		next(ctx)
	}
}
