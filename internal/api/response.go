package api

import "character-search/internal/model"

// NoResults is reported when the server answers with a body that is not a
// list of characters.
const NoResults = "No results found."

// Response is the settled outcome of one search: either Success or Failure.
type Response interface {
	isResponse()
}

type Success struct {
	Characters []model.Character
}

type Failure struct {
	Reason string
}

func (Success) isResponse() {}
func (Failure) isResponse() {}
