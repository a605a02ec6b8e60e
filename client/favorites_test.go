package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"motorsonline/internal/models"
)

func TestToggleUnauthenticatedNoNetwork(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	f := NewFavorites(c)

	res, err := f.Toggle(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Toggled || res.Favorite {
		t.Errorf("unauthenticated toggle changed state: %+v", res)
	}
	if calls != 0 {
		t.Errorf("network calls made: %d, want 0", calls)
	}
}

func TestToggleOnThenOff(t *testing.T) {
	var gotMethods []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/favorites/ids":
			json.NewEncoder(w).Encode([]int{})
		case "/api/favorites/42":
			gotMethods = append(gotMethods, r.Method)
			json.NewEncoder(w).Encode(map[string]bool{"favorite": r.Method == http.MethodPost})
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	f := NewFavorites(c)
	c.SetSession("test-token", models.User{ID: 1})

	res, err := f.Toggle(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Favorite || !res.Toggled {
		t.Errorf("first toggle: %+v, want favorite on", res)
	}
	if !f.IsFavorite(42) {
		t.Errorf("local set missing 42 after confirmed add")
	}

	res, err = f.Toggle(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Favorite || !res.Toggled {
		t.Errorf("second toggle: %+v, want favorite off", res)
	}
	if f.IsFavorite(42) {
		t.Errorf("local set still has 42 after confirmed remove")
	}

	if len(gotMethods) != 2 || gotMethods[0] != http.MethodPost || gotMethods[1] != http.MethodDelete {
		t.Errorf("backend calls: %v, want [POST DELETE]", gotMethods)
	}
}

func TestToggleIdempotentUnderFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/favorites/ids" {
			json.NewEncoder(w).Encode([]int{7})
			return
		}
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	f := NewFavorites(c)
	c.SetSession("test-token", models.User{ID: 1})
	if err := f.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	for i := 0; i < 3; i++ {
		res, err := f.Toggle(context.Background(), 7)
		if err == nil {
			t.Fatalf("toggle %d: expected error", i)
		}
		if res.Toggled {
			t.Errorf("toggle %d reported a change on failure", i)
		}
		if !res.Favorite {
			t.Errorf("toggle %d lost the current state", i)
		}
	}

	if !f.IsFavorite(7) {
		t.Errorf("set mutated by failed toggles")
	}
}

func TestClearSessionClearsFavorites(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]int{3, 4})
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	f := NewFavorites(c)
	c.SetSession("test-token", models.User{ID: 1})

	if err := f.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if !f.IsFavorite(3) {
		t.Fatalf("favorite 3 missing after load")
	}

	c.ClearSession()
	if f.IsFavorite(3) || f.IsFavorite(4) {
		t.Errorf("set not cleared on logout")
	}
}
