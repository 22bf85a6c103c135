package model

// SearchState is the per-chat view state kept between messages.
type SearchState struct {
	Query string `json:"query"`
	Seq   uint64 `json:"seq"`
}
