package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slog"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 40
)

// Servicer defines the catalog server business logic.
type Servicer interface {
	Search(ctx context.Context, criteria SearchCriteria) (ListResponse, error)
	Find(ctx context.Context, id int64) (*Summary, error)
	Create(ctx context.Context, entry Summary) (int64, error)
}

// ListResponse is one page of entries plus paging information.
type ListResponse struct {
	Entries  []Summary
	Total    int
	Page     int
	PageSize int
}

// HasNext reports whether another page follows.
func (r ListResponse) HasNext() bool {
	return r.Page*r.PageSize < r.Total
}

// HasPrevious reports whether a page precedes this one.
func (r ListResponse) HasPrevious() bool {
	return r.Page > 1
}

type Service struct {
	repo     Repository
	log      *slog.Logger
	pageSize int
}

// NewService creates a catalog service. pageSize <= 0 selects DefaultPageSize.
func NewService(repo Repository, log *slog.Logger, pageSize int) Servicer {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Service{
		repo:     repo,
		log:      log.With("component", "catalog_service"),
		pageSize: pageSize,
	}
}

// Search returns a page of entries. A blank query lists the whole catalog,
// most popular first.
func (s *Service) Search(ctx context.Context, criteria SearchCriteria) (ListResponse, error) {
	criteria.Query = strings.TrimSpace(criteria.Query)
	if !criteria.Ordering.Valid() {
		return ListResponse{}, fmt.Errorf("%w: unknown ordering %q", ErrInvalidData, criteria.Ordering)
	}
	if criteria.Ordering == "" && criteria.Query == "" {
		criteria.Ordering = OrderByRating
	}
	if criteria.Page < 1 {
		criteria.Page = 1
	}
	if criteria.PageSize <= 0 {
		criteria.PageSize = s.pageSize
	}
	if criteria.PageSize > MaxPageSize {
		criteria.PageSize = MaxPageSize
	}

	entries, total, err := s.repo.Search(ctx, criteria)
	if err != nil {
		s.log.Error("failed to search catalog", "query", criteria.Query, "error", err)
		return ListResponse{}, fmt.Errorf("search catalog: %w", err)
	}
	if entries == nil {
		entries = []Summary{}
	}

	return ListResponse{
		Entries:  entries,
		Total:    total,
		Page:     criteria.Page,
		PageSize: criteria.PageSize,
	}, nil
}

// Find returns a single entry by ID.
func (s *Service) Find(ctx context.Context, id int64) (*Summary, error) {
	entry, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		s.log.Error("failed to find catalog entry", "id", id, "error", err)
		return nil, fmt.Errorf("find catalog entry: %w", err)
	}
	return entry, nil
}

// Create adds an entry to the catalog.
func (s *Service) Create(ctx context.Context, entry Summary) (int64, error) {
	entry.Name = strings.TrimSpace(entry.Name)
	if entry.Name == "" {
		return -1, fmt.Errorf("%w: name is required", ErrInvalidData)
	}
	if entry.Rating < 0 || entry.Rating > 5 {
		return -1, fmt.Errorf("%w: rating must be within 0..5", ErrInvalidData)
	}

	id, err := s.repo.Create(ctx, &entry)
	if err != nil {
		s.log.Error("failed to create catalog entry", "name", entry.Name, "error", err)
		return -1, fmt.Errorf("create catalog entry: %w", err)
	}

	s.log.Info("catalog entry created", "id", id, "name", entry.Name)
	return id, nil
}
