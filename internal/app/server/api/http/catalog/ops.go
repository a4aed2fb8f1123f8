package catalog

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "games-list",
		Method:      http.MethodGet,
		Path:        "/api/games",
		Summary:     "Search the catalog",
		Description: "Returns one page of games whose name contains the search text. Without a search text the most popular games come first.",
		Tags:        []string{"games"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) findOp() huma.Operation {
	return huma.Operation{
		OperationID: "games-find",
		Method:      http.MethodGet,
		Path:        "/api/games/{id}",
		Summary:     "Get one game",
		Tags:        []string{"games"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "games-create",
		Method:        http.MethodPost,
		Path:          "/api/games",
		Summary:       "Add a game to the catalog",
		Tags:          []string{"games"},
		DefaultStatus: http.StatusCreated,
		Middlewares:   h.middleware,
	}
}
