package catalog

// WirePage is the JSON shape of a catalog page as served by RAWG-compatible APIs.
type WirePage struct {
	Count    int        `json:"count"`
	Next     *string    `json:"next"`
	Previous *string    `json:"previous"`
	Results  []WireGame `json:"results"`
}

type WireGame struct {
	ID              int64          `json:"id"`
	Name            string         `json:"name"`
	Genres          []WireNamed    `json:"genres,omitempty"`
	Platforms       []WirePlatform `json:"platforms,omitempty"`
	Rating          float64        `json:"rating"`
	Released        *string        `json:"released"`
	BackgroundImage *string        `json:"background_image"`
	Description     *string        `json:"description,omitempty"`
	DescriptionRaw  *string        `json:"description_raw,omitempty"`
}

type WireNamed struct {
	Name string `json:"name"`
}

type WirePlatform struct {
	Platform WireNamed `json:"platform"`
}

// Summary flattens the wire entry. The plain-text description wins over HTML.
func (w WireGame) Summary() Summary {
	s := Summary{
		ID:              w.ID,
		Name:            w.Name,
		Rating:          w.Rating,
		Released:        w.Released,
		BackgroundImage: w.BackgroundImage,
		Description:     w.Description,
	}
	if w.DescriptionRaw != nil {
		s.Description = w.DescriptionRaw
	}
	for _, g := range w.Genres {
		s.Genres = append(s.Genres, g.Name)
	}
	for _, p := range w.Platforms {
		s.Platforms = append(s.Platforms, p.Platform.Name)
	}
	return s
}

func (p WirePage) Page() *Page {
	page := &Page{
		Count:    p.Count,
		Next:     p.Next,
		Previous: p.Previous,
		Results:  make([]Summary, 0, len(p.Results)),
	}
	for _, g := range p.Results {
		page.Results = append(page.Results, g.Summary())
	}
	return page
}

// ToWire is the inverse of WireGame.Summary.
func ToWire(s Summary) WireGame {
	w := WireGame{
		ID:              s.ID,
		Name:            s.Name,
		Rating:          s.Rating,
		Released:        s.Released,
		BackgroundImage: s.BackgroundImage,
		Description:     s.Description,
	}
	for _, g := range s.Genres {
		w.Genres = append(w.Genres, WireNamed{Name: g})
	}
	for _, p := range s.Platforms {
		w.Platforms = append(w.Platforms, WirePlatform{Platform: WireNamed{Name: p}})
	}
	return w
}
