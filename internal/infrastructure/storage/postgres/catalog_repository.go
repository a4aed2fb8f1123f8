package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"gamelib/internal/domain/catalog"
)

const catalogColumns = `id, name, genres, platforms, rating, released, background_image, description`

type CatalogRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewCatalogRepository(pool *pgxpool.Pool, log *slog.Logger) *CatalogRepository {
	return &CatalogRepository{
		pool: pool,
		log:  log.With("component", "catalog_repository"),
	}
}

func (r *CatalogRepository) Search(ctx context.Context, criteria catalog.SearchCriteria) ([]catalog.Summary, int, error) {
	pattern := likePattern(criteria.Query)

	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM catalog_games WHERE name ILIKE $1`, pattern).Scan(&total)
	if err != nil {
		r.log.Error("failed to count catalog entries", "query", criteria.Query, "error", err)
		return nil, 0, fmt.Errorf("count catalog entries: %w", err)
	}

	query := `
		SELECT ` + catalogColumns + `
		FROM catalog_games
		WHERE name ILIKE $1
		ORDER BY ` + orderClause(criteria.Ordering) + `
		LIMIT $2 OFFSET $3`

	offset := (criteria.Page - 1) * criteria.PageSize
	rows, err := r.pool.Query(ctx, query, pattern, criteria.PageSize, offset)
	if err != nil {
		r.log.Error("failed to search catalog", "query", criteria.Query, "error", err)
		return nil, 0, fmt.Errorf("search catalog: %w", err)
	}
	defer rows.Close()

	entries := make([]catalog.Summary, 0, criteria.PageSize)
	for rows.Next() {
		entry, err := scanSummary(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan catalog entry: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("search catalog: %w", err)
	}

	return entries, total, nil
}

func (r *CatalogRepository) Get(ctx context.Context, id int64) (*catalog.Summary, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+catalogColumns+` FROM catalog_games WHERE id = $1`, id)

	entry, err := scanSummary(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrNotFound
		}
		r.log.Error("failed to get catalog entry", "id", id, "error", err)
		return nil, fmt.Errorf("get catalog entry: %w", err)
	}
	return entry, nil
}

func (r *CatalogRepository) Create(ctx context.Context, entry *catalog.Summary) (int64, error) {
	const query = `
		INSERT INTO catalog_games (name, genres, platforms, rating, released, background_image, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	genres := entry.Genres
	if genres == nil {
		genres = []string{}
	}
	platforms := entry.Platforms
	if platforms == nil {
		platforms = []string{}
	}

	var id int64
	err := r.pool.QueryRow(ctx, query,
		entry.Name, genres, platforms, entry.Rating,
		entry.Released, entry.BackgroundImage, entry.Description,
	).Scan(&id)
	if err != nil {
		r.log.Error("failed to create catalog entry", "name", entry.Name, "error", err)
		return 0, fmt.Errorf("create catalog entry: %w", err)
	}
	return id, nil
}

func scanSummary(row pgx.Row) (*catalog.Summary, error) {
	var s catalog.Summary
	err := row.Scan(&s.ID, &s.Name, &s.Genres, &s.Platforms, &s.Rating,
		&s.Released, &s.BackgroundImage, &s.Description)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func orderClause(o catalog.Ordering) string {
	switch o {
	case catalog.OrderByRating:
		return "rating DESC, id"
	case catalog.OrderByAdded:
		return "added_at DESC, id DESC"
	case catalog.OrderByName:
		return "name, id"
	default:
		return "id"
	}
}

// likePattern builds an ILIKE pattern matching names that contain query.
func likePattern(query string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(query)
	return "%" + escaped + "%"
}
