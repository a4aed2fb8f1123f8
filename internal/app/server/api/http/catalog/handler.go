package catalog

import (
	"context"
	"errors"
	"net/url"
	"strconv"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"gamelib/internal/domain/catalog"
)

const basePath = "/api/games"

type Handler struct {
	service    catalog.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service catalog.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.findOp(), h.find)
	huma.Register(api, h.createOp(), h.create)
}

func (h *Handler) list(ctx context.Context, input *listInput) (*listOutput, error) {
	criteria := catalog.SearchCriteria{
		Query:    input.Search,
		Ordering: catalog.Ordering(input.Ordering),
		Page:     input.Page,
		PageSize: input.PageSize,
	}

	resp, err := h.service.Search(ctx, criteria)
	if err != nil {
		return nil, toHTTPError(err)
	}

	page := catalog.WirePage{
		Count:   resp.Total,
		Results: make([]catalog.WireGame, 0, len(resp.Entries)),
	}
	for _, e := range resp.Entries {
		page.Results = append(page.Results, catalog.ToWire(e))
	}
	if resp.HasNext() {
		page.Next = pageLink(input, resp.Page+1, resp.PageSize)
	}
	if resp.HasPrevious() {
		page.Previous = pageLink(input, resp.Page-1, resp.PageSize)
	}

	return &listOutput{Body: page}, nil
}

func (h *Handler) find(ctx context.Context, input *findInput) (*findOutput, error) {
	entry, err := h.service.Find(ctx, input.ID)
	if err != nil {
		return nil, toHTTPError(err)
	}
	return &findOutput{Body: catalog.ToWire(*entry)}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*createOutput, error) {
	id, err := h.service.Create(ctx, catalog.Summary{
		Name:            input.Body.Name,
		Genres:          input.Body.Genres,
		Platforms:       input.Body.Platforms,
		Rating:          input.Body.Rating,
		Released:        input.Body.Released,
		BackgroundImage: input.Body.BackgroundImage,
		Description:     input.Body.Description,
	})
	if err != nil {
		return nil, toHTTPError(err)
	}

	return &createOutput{
		Body: createResponse{ID: id, Status: "Ok"},
	}, nil
}

// pageLink builds the relative URL of another page of the same search.
func pageLink(input *listInput, page, pageSize int) *string {
	params := url.Values{}
	if input.Search != "" {
		params.Set("search", input.Search)
	}
	if input.Ordering != "" {
		params.Set("ordering", input.Ordering)
	}
	params.Set("page", strconv.Itoa(page))
	params.Set("page_size", strconv.Itoa(pageSize))

	link := basePath + "?" + params.Encode()
	return &link
}

func toHTTPError(err error) error {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return huma.Error404NotFound("game not found")
	case errors.Is(err, catalog.ErrInvalidData):
		return huma.Error422UnprocessableEntity(err.Error())
	default:
		return huma.Error500InternalServerError("internal error")
	}
}
