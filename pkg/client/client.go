package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mmynk/telefonbuch/internal/models"
)

// Entry mirrors the server-side entry model.
type Entry = models.Entry

// APIError is a non-2xx response decoded from the server's error envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
}

// IsDuplicate reports whether err is the server rejecting an insert because
// the (name, phone) pair already exists.
func IsDuplicate(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Code == "duplicate_entry"
}

// Client calls the phone book HTTP API. The zero value is not usable; use New.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// New creates a client for the API at baseURL (e.g. "http://localhost:8080").
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    http.DefaultClient,
	}
}

// SetToken sets the bearer token used for entry operations.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Signup registers a new account and stores the returned session token.
func (c *Client) Signup(ctx context.Context, username, password string) error {
	return c.authenticate(ctx, "/api/v1/auth/signup", &credentials{Username: username, Password: password})
}

// Login authenticates and stores the returned session token.
func (c *Client) Login(ctx context.Context, username, password string) error {
	return c.authenticate(ctx, "/api/v1/auth/login", &credentials{Username: username, Password: password})
}

// GuestLogin obtains a guest session token and stores it.
func (c *Client) GuestLogin(ctx context.Context) error {
	return c.authenticate(ctx, "/api/v1/auth/guest", nil)
}

// UsernameAvailable reports whether username is still free.
func (c *Client) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	var resp struct {
		Available bool `json:"available"`
	}
	query := url.Values{"username": {username}}
	if err := c.do(ctx, http.MethodGet, "/api/v1/auth/username-available?"+query.Encode(), nil, &resp); err != nil {
		return false, err
	}
	return resp.Available, nil
}

// Entries returns the full entry list in phone-book name order.
func (c *Client) Entries(ctx context.Context) ([]Entry, error) {
	var resp struct {
		Entries []Entry `json:"entries"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/entries", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Entries, nil
}

// Search runs the server's two-tier search. The result is in relevance
// order (text tier) or name order (substring fallback), never mixed.
func (c *Client) Search(ctx context.Context, term string) ([]Entry, error) {
	var resp struct {
		Entries []Entry `json:"entries"`
	}
	query := url.Values{"term": {term}}
	if err := c.do(ctx, http.MethodGet, "/api/v1/entries/search?"+query.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Entries, nil
}

// CheckDuplicate asks the server whether (name, phone) would collide with an
// existing entry. Advisory: AddEntry can still fail with a duplicate conflict.
func (c *Client) CheckDuplicate(ctx context.Context, name, phone string) (bool, error) {
	var resp struct {
		Duplicate bool `json:"duplicate"`
	}
	query := url.Values{"name": {name}, "phone": {phone}}
	if err := c.do(ctx, http.MethodGet, "/api/v1/entries/duplicate?"+query.Encode(), nil, &resp); err != nil {
		return false, err
	}
	return resp.Duplicate, nil
}

// AddEntry creates a new entry and returns it.
func (c *Client) AddEntry(ctx context.Context, name, phone string) (*Entry, error) {
	body := map[string]string{"name": name, "phone": phone}
	var entry Entry
	if err := c.do(ctx, http.MethodPost, "/api/v1/entries", body, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c *Client) authenticate(ctx context.Context, path string, creds *credentials) error {
	var resp struct {
		Token string `json:"token"`
	}
	var body any
	if creds != nil {
		body = creds
	}
	if err := c.do(ctx, http.MethodPost, path, body, &resp); err != nil {
		return err
	}
	c.token = resp.Token
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody *bytes.Buffer
	if body != nil {
		reqBody = new(bytes.Buffer)
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var envelope struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&envelope)
		return &APIError{
			Status:  resp.StatusCode,
			Code:    envelope.Error.Code,
			Message: envelope.Error.Message,
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
