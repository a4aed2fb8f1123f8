package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/exp/slog"
)

// MockRepository is a mock implementation of the Repository interface for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Search(ctx context.Context, criteria SearchCriteria) ([]Summary, int, error) {
	args := m.Called(ctx, criteria)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]Summary), args.Int(1), args.Error(2)
}

func (m *MockRepository) Get(ctx context.Context, id int64) (*Summary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Summary), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, entry *Summary) (int64, error) {
	args := m.Called(ctx, entry)
	return args.Get(0).(int64), args.Error(1)
}

func TestService_Search_BlankQueryListsPopular(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default(), 0)

	entries := []Summary{{ID: 1, Name: "Portal 2", Rating: 4.6}}
	mockRepo.On("Search", mock.Anything, SearchCriteria{
		Ordering: OrderByRating,
		Page:     1,
		PageSize: DefaultPageSize,
	}).Return(entries, 1, nil)

	resp, err := service.Search(context.Background(), SearchCriteria{Query: "   "})
	assert.NoError(t, err)
	assert.Equal(t, entries, resp.Entries)
	assert.Equal(t, 1, resp.Total)
	assert.False(t, resp.HasNext())
	assert.False(t, resp.HasPrevious())

	mockRepo.AssertExpectations(t)
}

func TestService_Search_ClampsPaging(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default(), 10)

	mockRepo.On("Search", mock.Anything, SearchCriteria{
		Query:    "zelda",
		Page:     2,
		PageSize: MaxPageSize,
	}).Return(nil, 100, nil)

	resp, err := service.Search(context.Background(), SearchCriteria{Query: "zelda", Page: 2, PageSize: 500})
	assert.NoError(t, err)
	assert.NotNil(t, resp.Entries)
	assert.Empty(t, resp.Entries)
	assert.True(t, resp.HasNext())
	assert.True(t, resp.HasPrevious())

	mockRepo.AssertExpectations(t)
}

func TestService_Search_InvalidOrdering(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default(), 0)

	_, err := service.Search(context.Background(), SearchCriteria{Ordering: "random"})
	assert.ErrorIs(t, err, ErrInvalidData)
	mockRepo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestService_Search_RepositoryError(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default(), 0)

	mockRepo.On("Search", mock.Anything, mock.Anything).Return(nil, 0, errors.New("connection refused"))

	_, err := service.Search(context.Background(), SearchCriteria{Query: "doom"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestService_Find(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default(), 0)

	entry := &Summary{ID: 7, Name: "Hades"}
	mockRepo.On("Get", mock.Anything, int64(7)).Return(entry, nil)
	mockRepo.On("Get", mock.Anything, int64(8)).Return(nil, ErrNotFound)

	found, err := service.Find(context.Background(), 7)
	assert.NoError(t, err)
	assert.Equal(t, entry, found)

	_, err = service.Find(context.Background(), 8)
	assert.Equal(t, ErrNotFound, err)
}

func TestService_Create(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default(), 0)

	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(e *Summary) bool {
		return e.Name == "Celeste" && e.Rating == 4.4
	})).Return(int64(42), nil)

	id, err := service.Create(context.Background(), Summary{Name: "  Celeste ", Rating: 4.4})
	assert.NoError(t, err)
	assert.Equal(t, int64(42), id)

	mockRepo.AssertExpectations(t)
}

func TestService_Create_InvalidData(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default(), 0)

	_, err := service.Create(context.Background(), Summary{Name: ""})
	assert.ErrorIs(t, err, ErrInvalidData)

	_, err = service.Create(context.Background(), Summary{Name: "Too Good", Rating: 9})
	assert.ErrorIs(t, err, ErrInvalidData)

	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
