package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"gamelib/internal/domain/catalog"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Search(ctx context.Context, criteria catalog.SearchCriteria) (catalog.ListResponse, error) {
	args := m.Called(ctx, criteria)
	return args.Get(0).(catalog.ListResponse), args.Error(1)
}

func (m *MockService) Find(ctx context.Context, id int64) (*catalog.Summary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Summary), args.Error(1)
}

func (m *MockService) Create(ctx context.Context, entry catalog.Summary) (int64, error) {
	args := m.Called(ctx, entry)
	return args.Get(0).(int64), args.Error(1)
}

func setup(t *testing.T) (humatest.TestAPI, *MockService) {
	_, api := humatest.New(t)
	service := new(MockService)
	NewHandler(service, slog.Default(), nil).SetupRoutes(api)
	return api, service
}

func TestHandler_list(t *testing.T) {
	api, service := setup(t)

	released := "2011-04-18"
	service.On("Search", mock.Anything, catalog.SearchCriteria{
		Query:    "portal",
		Page:     2,
		PageSize: 1,
	}).Return(catalog.ListResponse{
		Entries: []catalog.Summary{{
			ID:        4200,
			Name:      "Portal 2",
			Genres:    []string{"Puzzle"},
			Platforms: []string{"PC"},
			Rating:    4.6,
			Released:  &released,
		}},
		Total:    3,
		Page:     2,
		PageSize: 1,
	}, nil)

	resp := api.Get("/api/games?search=portal&page=2&page_size=1")
	require.Equal(t, http.StatusOK, resp.Code)

	var page catalog.WirePage
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &page))
	assert.Equal(t, 3, page.Count)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "Portal 2", page.Results[0].Name)
	assert.Equal(t, "Puzzle", page.Results[0].Genres[0].Name)
	assert.Equal(t, "PC", page.Results[0].Platforms[0].Platform.Name)
	require.NotNil(t, page.Next)
	assert.Equal(t, "/api/games?page=3&page_size=1&search=portal", *page.Next)
	require.NotNil(t, page.Previous)
	assert.Equal(t, "/api/games?page=1&page_size=1&search=portal", *page.Previous)

	service.AssertExpectations(t)
}

func TestHandler_list_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid criteria", catalog.ErrInvalidData, http.StatusUnprocessableEntity},
		{"storage failure", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, service := setup(t)
			service.On("Search", mock.Anything, mock.Anything).Return(catalog.ListResponse{}, tt.err)

			resp := api.Get("/api/games?search=x")
			assert.Equal(t, tt.wantStatus, resp.Code)
		})
	}
}

func TestHandler_list_RejectsUnknownOrdering(t *testing.T) {
	api, service := setup(t)

	resp := api.Get("/api/games?ordering=random")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	service.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestHandler_find(t *testing.T) {
	tests := []struct {
		name       string
		id         int64
		entry      *catalog.Summary
		err        error
		wantStatus int
	}{
		{
			name:       "found",
			id:         7,
			entry:      &catalog.Summary{ID: 7, Name: "Hades", Rating: 4.5},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing",
			id:         8,
			err:        catalog.ErrNotFound,
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, service := setup(t)
			service.On("Find", mock.Anything, tt.id).Return(tt.entry, tt.err)

			resp := api.Get("/api/games/" + strconv.FormatInt(tt.id, 10))
			assert.Equal(t, tt.wantStatus, resp.Code)
			if tt.entry != nil {
				var game catalog.WireGame
				require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &game))
				assert.Equal(t, tt.entry.Name, game.Name)
				assert.Equal(t, tt.entry.ID, game.ID)
			}
		})
	}
}

func TestHandler_create(t *testing.T) {
	api, service := setup(t)
	service.On("Create", mock.Anything, catalog.Summary{
		Name:   "Celeste",
		Genres: []string{"Platformer"},
		Rating: 4.4,
	}).Return(int64(42), nil)

	resp := api.Post("/api/games", map[string]any{
		"name":   "Celeste",
		"genres": []string{"Platformer"},
		"rating": 4.4,
	})
	require.Equal(t, http.StatusCreated, resp.Code)

	var body createResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, int64(42), body.ID)
	assert.Equal(t, "Ok", body.Status)
}

func TestHandler_create_InvalidData(t *testing.T) {
	api, service := setup(t)
	service.On("Create", mock.Anything, mock.Anything).Return(int64(-1), catalog.ErrInvalidData)

	resp := api.Post("/api/games", map[string]any{"name": "   "})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}
