package models

// ViewCountsRequest is the batched count lookup body.
type ViewCountsRequest struct {
	IDs []int `json:"ids"`
}

// ViewCountsResponse maps listing id to its view count. Listings never
// viewed are present with count 0.
type ViewCountsResponse struct {
	Counts map[int]int64 `json:"counts"`
}
