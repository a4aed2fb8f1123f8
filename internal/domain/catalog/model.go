package catalog

// Summary is a lightweight game entry returned by the remote catalog.
// It is never persisted by the client; only a game derived from it is.
type Summary struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Genres          []string `json:"genres,omitempty"`
	Platforms       []string `json:"platforms,omitempty"`
	Rating          float64  `json:"rating"`
	Released        *string  `json:"released,omitempty"`
	BackgroundImage *string  `json:"background_image,omitempty"`
	Description     *string  `json:"description,omitempty"`
}

// Page is one page of catalog results.
type Page struct {
	Count    int       `json:"count"`
	Next     *string   `json:"next,omitempty"`
	Previous *string   `json:"previous,omitempty"`
	Results  []Summary `json:"results"`
}

// SearchCriteria selects a page of catalog entries.
type SearchCriteria struct {
	Query    string
	Ordering Ordering
	Page     int
	PageSize int
}

// Ordering names a sort order understood by the catalog.
type Ordering string

const (
	OrderByRating Ordering = "-rating"
	OrderByAdded  Ordering = "-added"
	OrderByName   Ordering = "name"
)

// Valid reports whether o is a supported ordering. Empty means default.
func (o Ordering) Valid() bool {
	switch o {
	case "", OrderByRating, OrderByAdded, OrderByName:
		return true
	}
	return false
}
