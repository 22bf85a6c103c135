// Package search holds the view state of a character search and the rules
// for moving it between idle and loading.
package search

import (
	"context"

	"character-search/internal/api"
	"character-search/internal/model"
)

// Searcher resolves a query into a settled Response.
type Searcher interface {
	Search(ctx context.Context, query string) api.Response
}

// State is what a front-end renders at any moment.
type State struct {
	Query   string
	Results []model.Character
	Loading bool
	Err     string
}

// View owns a State. Every mutation replaces a field wholesale.
//
// Searches are tagged with a sequence number when they begin; only the
// response of the latest search is allowed to settle the view, so a slow
// older response can never overwrite a newer one.
type View struct {
	state State
	seq   uint64
}

func NewView() *View {
	return &View{}
}

// SetQuery stores the input text as typed.
func (v *View) SetQuery(text string) {
	v.state.Query = text
}

// Begin marks the view as loading and returns the tag of the new search
// together with the query it must be issued for.
func (v *View) Begin() (uint64, string) {
	v.seq++
	v.state.Loading = true
	v.state.Err = ""
	return v.seq, v.state.Query
}

// Settle applies resp if seq is the latest search. Stale responses are
// dropped and Settle reports false.
func (v *View) Settle(seq uint64, resp api.Response) bool {
	if seq != v.seq {
		return false
	}
	v.state.Loading = false

	switch r := resp.(type) {
	case api.Success:
		v.state.Results = r.Characters
	case api.Failure:
		v.state.Err = r.Reason
	}
	return true
}

// Latest returns the tag of the most recent search, zero before the first.
func (v *View) Latest() uint64 {
	return v.seq
}

func (v *View) Snapshot() State {
	return v.state
}
