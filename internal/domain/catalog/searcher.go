package catalog

import "context"

// Searcher is the remote catalog as seen by the client.
//
// Both operations may fail with network, status or decoding errors; callers
// surface err.Error() to the user verbatim.
type Searcher interface {
	// Search returns the first page of entries matching query.
	Search(ctx context.Context, query string) (*Page, error)
	// Popular returns the first page of the catalog's popular entries.
	Popular(ctx context.Context) (*Page, error)
}
