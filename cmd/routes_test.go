package main

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"motorsonline/internal/config"
	"motorsonline/internal/handlers"
)

func newTestApplication() *application {
	var cfg config.Config
	cfg.Auth.SigningKey = "test-key"
	return &application{
		cfg:              cfg,
		errorLog:         log.New(io.Discard, "", 0),
		infoLog:          log.New(io.Discard, "", 0),
		userHandler:      &handlers.UserHandler{},
		carHandler:       &handlers.CarHandler{},
		contactHandler:   &handlers.ContactHandler{},
		favoriteHandler:  &handlers.CarFavoriteHandler{},
		referenceHandler: &handlers.ReferenceHandler{},
		viewHandler:      &handlers.ViewHandler{},
	}
}

// Each case must be answered by the route's own handler or middleware, not
// by the router's not-found fallback: a 404 here means the path was never
// registered.
func TestRoutesRegistered(t *testing.T) {
	router := newTestApplication().routes()

	cases := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		// Wrong method on a registered GET path draws a 405, an
		// unregistered path would draw a 404.
		{"approved cars list", http.MethodDelete, "/api/cars/public/approved", http.StatusMethodNotAllowed},
		{"public contact by user", http.MethodGet, "/api/contacts/public/abc", http.StatusBadRequest},
		{"favorite membership check", http.MethodGet, "/api/favorites/check/9", http.StatusUnauthorized},
		{"brand update", http.MethodPut, "/api/brands/9", http.StatusUnauthorized},
		{"model update", http.MethodPut, "/api/models/9", http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
			if rec.Code != tc.want {
				t.Errorf("%s %s: status %d, want %d", tc.method, tc.path, rec.Code, tc.want)
			}
		})
	}
}
