package client

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"sync"

	"motorsonline/internal/models"
)

// ToggleResult distinguishes "now unfavorited" from "the call failed":
// Toggled is false when nothing changed (failure or unauthenticated caller).
type ToggleResult struct {
	Favorite bool
	Toggled  bool
}

// Favorites tracks the signed-in user's favorited listing ids. Local state
// mutates only after the backend confirms, so a failed toggle leaves the set
// unchanged. The set reloads when a session appears and clears when it goes.
type Favorites struct {
	c *Client

	mu  sync.Mutex
	ids map[int]struct{}
}

// NewFavorites wires a tracker to the client's session lifecycle.
func NewFavorites(c *Client) *Favorites {
	f := &Favorites{c: c, ids: make(map[int]struct{})}
	c.onSessionChange(func(authenticated bool) {
		if !authenticated {
			f.clear()
			return
		}
		if err := f.Load(context.Background()); err != nil {
			log.Printf("favorites reload failed: %v", err)
		}
	})
	return f
}

// Load fetches the full favorite id set.
func (f *Favorites) Load(ctx context.Context) error {
	var ids []int
	if err := f.c.doJSON(ctx, http.MethodGet, "/api/favorites/ids", nil, &ids); err != nil {
		return err
	}

	f.mu.Lock()
	f.ids = make(map[int]struct{}, len(ids))
	for _, id := range ids {
		f.ids[id] = struct{}{}
	}
	f.mu.Unlock()
	return nil
}

func (f *Favorites) clear() {
	f.mu.Lock()
	f.ids = make(map[int]struct{})
	f.mu.Unlock()
}

func (f *Favorites) IsFavorite(id int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.ids[id]
	return ok
}

// Toggle flips a listing's favorite state on the backend, then mirrors the
// confirmed state locally. Unauthenticated callers get a no-op result with
// no network call.
func (f *Favorites) Toggle(ctx context.Context, id int) (ToggleResult, error) {
	if !f.c.IsAuthenticated() {
		return ToggleResult{}, nil
	}

	current := f.IsFavorite(id)
	path := "/api/favorites/" + strconv.Itoa(id)

	var err error
	if current {
		err = f.c.doJSON(ctx, http.MethodDelete, path, nil, nil)
	} else {
		err = f.c.doJSON(ctx, http.MethodPost, path, nil, nil)
	}
	if err != nil {
		return ToggleResult{Favorite: current}, err
	}

	f.mu.Lock()
	if current {
		delete(f.ids, id)
	} else {
		f.ids[id] = struct{}{}
	}
	f.mu.Unlock()

	return ToggleResult{Favorite: !current, Toggled: true}, nil
}

// List fetches the user's favorite listings with their card data.
func (f *Favorites) List(ctx context.Context) ([]models.CarFavorite, error) {
	var out []models.CarFavorite
	err := f.c.doJSON(ctx, http.MethodGet, "/api/favorites", nil, &out)
	return out, err
}

// Count returns the public favorite count for a listing.
func (f *Favorites) Count(ctx context.Context, carID int) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	err := f.c.doJSON(ctx, http.MethodGet, "/api/cars/"+strconv.Itoa(carID)+"/favorite_count", nil, &out)
	return out.Count, err
}
