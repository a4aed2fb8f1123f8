package catalog

import (
	"gamelib/internal/domain/catalog"
)

type listInput struct {
	Search   string `query:"search" doc:"Text contained in the game name"`
	Page     int    `query:"page" minimum:"0" doc:"Page number, starting at 1"`
	PageSize int    `query:"page_size" minimum:"0" maximum:"40" doc:"Results per page"`
	Ordering string `query:"ordering" enum:"-rating,-added,name" doc:"Sort order"`
}

type listOutput struct {
	Body catalog.WirePage
}

type findInput struct {
	ID int64 `path:"id" example:"3328" doc:"Game ID"`
}

type findOutput struct {
	Body catalog.WireGame
}

type createInput struct {
	Body createRequest
}

type createRequest struct {
	Name            string   `json:"name" minLength:"1" doc:"Game name"`
	Genres          []string `json:"genres,omitempty" doc:"Genre names"`
	Platforms       []string `json:"platforms,omitempty" doc:"Platform names"`
	Rating          float64  `json:"rating,omitempty" minimum:"0" maximum:"5" doc:"Average rating"`
	Released        *string  `json:"released,omitempty" example:"2015-05-18" doc:"Release date"`
	BackgroundImage *string  `json:"background_image,omitempty" doc:"Cover image URL"`
	Description     *string  `json:"description,omitempty" doc:"Description"`
}

type createOutput struct {
	Body createResponse
}

type createResponse struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}
