package client

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"motorsonline/internal/models"
)

// IncrementView bumps a listing's view counter. Fire-and-forget: failures
// are logged, never returned, and authentication is not required.
func (c *Client) IncrementView(ctx context.Context, id int) {
	path := "/api/cars/" + strconv.Itoa(id) + "/view"
	if err := c.doJSON(ctx, http.MethodPost, path, nil, nil); err != nil {
		log.Printf("view increment for car %d failed: %v", id, err)
	}
}

// ViewCount fetches the counter for one listing.
func (c *Client) ViewCount(ctx context.Context, id int) (int64, error) {
	var out struct {
		Count int64 `json:"count"`
	}
	path := "/api/cars/" + strconv.Itoa(id) + "/views"
	err := c.doJSON(ctx, http.MethodGet, path, nil, &out)
	return out.Count, err
}

// ViewCounts resolves counters for many listings in one request, keyed by
// listing id. No local cache: every call hits the backend.
func (c *Client) ViewCounts(ctx context.Context, ids []int) (map[int]int64, error) {
	var out models.ViewCountsResponse
	req := models.ViewCountsRequest{IDs: ids}
	if err := c.doJSON(ctx, http.MethodPost, "/api/views/batch", req, &out); err != nil {
		return nil, err
	}
	return out.Counts, nil
}
