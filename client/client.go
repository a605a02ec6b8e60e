// Package client is a typed Go SDK for the motorsonline REST backend. It
// covers authentication, listing drafts and submission, favorites, view
// counters, and search filters.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"motorsonline/internal/models"
)

// Client talks to the backend and holds the current session.
type Client struct {
	httpClient *http.Client
	baseURL    string

	mu        sync.Mutex
	token     string
	user      models.User
	listeners []func(authenticated bool)
}

// New constructs a client for the given base URL. A nil httpClient gets a
// default with a 10 second timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
	}
}

// APIError carries the backend's own message when the response body had one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

// SetSession stores the bearer token and user, and notifies listeners that
// the client is now authenticated.
func (c *Client) SetSession(token string, user models.User) {
	c.mu.Lock()
	c.token = token
	c.user = user
	listeners := append([]func(bool){}, c.listeners...)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(true)
	}
}

// ClearSession drops the session and notifies listeners synchronously, so
// session-scoped state (favorites) is cleared before this returns.
func (c *Client) ClearSession() {
	c.mu.Lock()
	c.token = ""
	c.user = models.User{}
	listeners := append([]func(bool){}, c.listeners...)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(false)
	}
}

func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

func (c *Client) User() models.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user
}

func (c *Client) IsAuthenticated() bool {
	return c.Token() != ""
}

// onSessionChange registers a listener invoked after SetSession (true) and
// ClearSession (false).
func (c *Client) onSessionChange(fn func(authenticated bool)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// doJSON sends a request with an optional JSON body and decodes a JSON
// response into out. Non-2xx responses become an *APIError with the
// backend's message when present.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// decodeError extracts the backend's message verbatim when the body carries
// one, otherwise falls back to the status text.
func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil || len(data) == 0 {
		return apiErr
	}

	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(data, &body) == nil {
		if body.Message != "" {
			apiErr.Message = body.Message
			return apiErr
		}
		if body.Error != "" {
			apiErr.Message = body.Error
			return apiErr
		}
	}
	if msg := string(bytes.TrimSpace(data)); msg != "" {
		apiErr.Message = msg
	}
	return apiErr
}

// Register creates an account and stores the returned session.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	var resp models.AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", req, &resp); err != nil {
		return models.User{}, err
	}
	c.SetSession(resp.Token, resp.User)
	return resp.User, nil
}

// SignIn authenticates with email and password and stores the session.
func (c *Client) SignIn(ctx context.Context, email, password string) (models.User, error) {
	var resp models.AuthResponse
	req := models.SignInRequest{Email: email, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/sign_in", req, &resp); err != nil {
		return models.User{}, err
	}
	c.SetSession(resp.Token, resp.User)
	return resp.User, nil
}

// GoogleSignIn authenticates with a Google ID token and stores the session.
func (c *Client) GoogleSignIn(ctx context.Context, idToken string) (models.User, error) {
	var resp models.AuthResponse
	req := models.GoogleSignInRequest{IDToken: idToken}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/google", req, &resp); err != nil {
		return models.User{}, err
	}
	c.SetSession(resp.Token, resp.User)
	return resp.User, nil
}

// Logout clears the local session. The server-side session revocation is
// best-effort.
func (c *Client) Logout(ctx context.Context, refreshToken string) {
	body := map[string]string{"refresh_token": refreshToken}
	_ = c.doJSON(ctx, http.MethodPost, "/api/auth/logout", body, nil)
	c.ClearSession()
}

// Brands fetches the brand reference list.
func (c *Client) Brands(ctx context.Context) ([]models.Brand, error) {
	var out []models.Brand
	err := c.doJSON(ctx, http.MethodGet, "/api/brands", nil, &out)
	return out, err
}

// Models fetches the model list scoped to one brand.
func (c *Client) Models(ctx context.Context, brandID int) ([]models.CarModel, error) {
	var out []models.CarModel
	err := c.doJSON(ctx, http.MethodGet, "/api/brands/"+strconv.Itoa(brandID)+"/models", nil, &out)
	return out, err
}

// Years fetches the year reference list.
func (c *Client) Years(ctx context.Context) ([]models.Year, error) {
	var out []models.Year
	err := c.doJSON(ctx, http.MethodGet, "/api/years", nil, &out)
	return out, err
}

// DriveTypes fetches the drive type reference list.
func (c *Client) DriveTypes(ctx context.Context) ([]models.DriveType, error) {
	var out []models.DriveType
	err := c.doJSON(ctx, http.MethodGet, "/api/drive_types", nil, &out)
	return out, err
}

// Car fetches the public detail of one listing, including the VAT breakdown.
func (c *Client) Car(ctx context.Context, id int) (models.CarDetail, error) {
	var out models.CarDetail
	err := c.doJSON(ctx, http.MethodGet, "/api/cars/"+strconv.Itoa(id), nil, &out)
	return out, err
}

// Cars runs a filtered search. An empty filter returns the unfiltered
// approved set.
func (c *Client) Cars(ctx context.Context, filter models.CarFilterRequest) (models.CarListResult, error) {
	var out models.CarListResult
	err := c.doJSON(ctx, http.MethodGet, pathWithQuery("/api/cars", filter.Values()), nil, &out)
	return out, err
}

// MyCars fetches the signed-in user's own listings, all statuses included.
func (c *Client) MyCars(ctx context.Context) ([]models.Car, error) {
	var out []models.Car
	err := c.doJSON(ctx, http.MethodGet, "/api/my/cars", nil, &out)
	return out, err
}

// DeleteCar removes one of the caller's listings.
func (c *Client) DeleteCar(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/cars/"+strconv.Itoa(id), nil, nil)
}

// Contact fetches the caller's saved contact card.
func (c *Client) Contact(ctx context.Context) (models.Contact, error) {
	var out models.Contact
	err := c.doJSON(ctx, http.MethodGet, "/api/contacts/me", nil, &out)
	return out, err
}

// ContactByCar fetches the seller contact shown on a listing page.
func (c *Client) ContactByCar(ctx context.Context, carID int) (models.Contact, error) {
	var out models.Contact
	err := c.doJSON(ctx, http.MethodGet, "/api/cars/"+strconv.Itoa(carID)+"/contact", nil, &out)
	return out, err
}

// SaveContact upserts the caller's contact card.
func (c *Client) SaveContact(ctx context.Context, contact models.Contact) (models.Contact, error) {
	var out models.Contact
	err := c.doJSON(ctx, http.MethodPut, "/api/contacts/me", contact, &out)
	return out, err
}

func pathWithQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
