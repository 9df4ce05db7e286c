// Package gotrue implements the identity store port against a GoTrue-style
// admin API: paged user listing, user creation, and lookup by id, all
// authenticated with a service-role key.
package gotrue

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tonipcv/user-provisioner/internal/core/domain"
	"github.com/tonipcv/user-provisioner/internal/core/ports"
)

const defaultTimeout = 15 * time.Second

// Config captures the settings for talking to the GoTrue admin API.
type Config struct {
	BaseURL    string
	ServiceKey string
	// HTTPClient overrides the default client (tests, custom transports).
	HTTPClient *http.Client
}

// Client is a thin HTTP client for the admin endpoints this service consumes.
type Client struct {
	baseURL    string
	serviceKey string
	http       *http.Client
}

func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		serviceKey: cfg.ServiceKey,
		http:       httpClient,
	}
}

// adminUser is the wire shape of a GoTrue user record.
type adminUser struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	UserMetadata struct {
		Name string `json:"name"`
	} `json:"user_metadata"`
	CreatedAt time.Time `json:"created_at"`
}

func (u adminUser) toDomain() domain.Identity {
	return domain.Identity{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.UserMetadata.Name,
		CreatedAt: u.CreatedAt,
	}
}

// List returns one page of identities. An empty slice signals the end of the
// enumeration; GoTrue has no lookup-by-email admin endpoint, so this is the
// resolver's only primitive.
func (c *Client) List(ctx context.Context, page, perPage int) ([]domain.Identity, error) {
	path := "/admin/users?page=" + strconv.Itoa(page) + "&per_page=" + strconv.Itoa(perPage)

	var body struct {
		Users []adminUser `json:"users"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &body); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	identities := make([]domain.Identity, len(body.Users))
	for i, u := range body.Users {
		identities[i] = u.toDomain()
	}
	return identities, nil
}

// Create registers a new identity with a pre-confirmed email so the account
// is usable without a verification round-trip.
func (c *Client) Create(ctx context.Context, in ports.CreateIdentityInput) (*domain.Identity, error) {
	payload := map[string]any{
		"email":         in.Email,
		"password":      in.Credential,
		"email_confirm": true,
		"user_metadata": map[string]string{"name": in.Name},
	}

	var user adminUser
	if err := c.do(ctx, http.MethodPost, "/admin/users", payload, &user); err != nil {
		var ae *apiError
		if errors.As(err, &ae) && (ae.Status == http.StatusUnprocessableEntity || ae.Status == http.StatusConflict) {
			return nil, fmt.Errorf("%w: %s", domain.ErrIdentityExists, ae.Msg)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	identity := user.toDomain()
	return &identity, nil
}

// Get fetches a single identity by id. A 404 is returned as an error so the
// caller's visibility polling can keep probing.
func (c *Client) Get(ctx context.Context, id string) (*domain.Identity, error) {
	var user adminUser
	if err := c.do(ctx, http.MethodGet, "/admin/users/"+id, nil, &user); err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	identity := user.toDomain()
	return &identity, nil
}

// Ping verifies the auth server is reachable. Used by the readiness probe.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

// apiError is a non-2xx response from the admin API.
type apiError struct {
	Status int
	Msg    string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("identity store returned %d: %s", e.Status, e.Msg)
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("apikey", c.serviceKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &apiError{Status: resp.StatusCode, Msg: readErrorMessage(resp.Body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// readErrorMessage pulls a human-readable message out of the error body.
// GoTrue variously uses "msg", "message" and "error".
func readErrorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return "no response body"
	}

	var parsed struct {
		Msg     string `json:"msg"`
		Message string `json:"message"`
		Err     string `json:"error"`
	}
	if json.Unmarshal(raw, &parsed) == nil {
		for _, m := range []string{parsed.Msg, parsed.Message, parsed.Err} {
			if m != "" {
				return m
			}
		}
	}
	return string(raw)
}
