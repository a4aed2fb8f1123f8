package catalog

import (
	"context"
)

// Repository stores the catalog served by the self-hosted catalog server.
type Repository interface {
	// Search returns entries whose name contains criteria.Query (case-insensitive)
	// together with the total number of matches.
	Search(ctx context.Context, criteria SearchCriteria) ([]Summary, int, error)
	Get(ctx context.Context, id int64) (*Summary, error)
	Create(ctx context.Context, entry *Summary) (int64, error)
}
