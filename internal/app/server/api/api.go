// GET  /api/v1/health    # Catalog server health
// GET  /api/games        # Search the catalog (RAWG-compatible page)
// GET  /api/games/{id}   # One game
// POST /api/games        # Add a game to the catalog
//
// The /api/games routes require ?key= when the server has an API key.

package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"

	catalogAPI "gamelib/internal/app/server/api/http/catalog"
	healthAPI "gamelib/internal/app/server/api/http/health"
	"gamelib/internal/app/server/api/http/middleware"
	"gamelib/internal/app/server/api/http/middleware/auth"
	"gamelib/internal/app/server/api/http/middleware/logger"
	"gamelib/internal/domain/catalog"
	"gamelib/internal/infrastructure/storage/postgres"
)

// Config holds the API settings taken from the server configuration.
type Config struct {
	PageSize int
	APIKey   string
}

type Handlers struct {
	Health  *healthAPI.Handler
	Catalog *catalogAPI.Handler
}

// New creates a *chi.Mux with every catalog operation registered through huma.
func New(storage *postgres.Storage, log *slog.Logger, conf Config) *chi.Mux {
	mux := chi.NewMux()

	config := huma.DefaultConfig("Gamelib Catalog API", "1.0.0")
	API := humachi.New(mux, config)

	h := handlers(API, storage, log, conf)
	h.Health.SetupRoutes(API)
	h.Catalog.SetupRoutes(API)

	return mux
}

func handlers(api huma.API, storage *postgres.Storage, log *slog.Logger, conf Config) *Handlers {
	loggerMW := logger.New(log)
	authMW := auth.New(api, conf.APIKey, log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(log, storage, middlewares.GetAllAndClear())

	catalogRepo := postgres.NewCatalogRepository(storage.Pool(), log)
	catalogService := catalog.NewService(catalogRepo, log, conf.PageSize)
	middlewares.Add(loggerMW.Middleware())
	middlewares.Add(authMW.Middleware())
	catalogHandler := catalogAPI.NewHandler(catalogService, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health:  healthHandler,
		Catalog: catalogHandler,
	}
}
