// Package feedclient is an HTTP client for the candidate feed API.
package feedclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go-candidate-feed/internal/domain"

	"github.com/google/uuid"
)

const (
	defaultTimeout = 20 * time.Second
	maxErrorBody   = 4096
)

type Config struct {
	// BaseURL is the API root including the version, e.g. http://localhost:8080/v1.
	BaseURL string
	// Token is sent as a bearer token. Empty means signed out.
	Token      string
	HTTPClient *http.Client
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("feedclient: base url is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("feedclient: parse base url: %w", err)
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		token:      cfg.Token,
		httpClient: httpClient,
	}, nil
}

// APIError is a non-2xx answer. It unwraps to the matching domain error where there is one.
type APIError struct {
	Status    int
	Code      string
	Message   string
	RequestID string
	kind      error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("feedclient: %d %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error { return e.kind }

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code string `json:"code"`
	} `json:"error"`
	RequestID string `json:"request_id"`
}

// FetchPage implements feed.PageSource.
func (c *Client) FetchPage(ctx context.Context, q domain.FeedQuery) (*domain.FeedPage, error) {
	values := url.Values{}
	if q.PageSize > 0 {
		values.Set("limit", strconv.Itoa(q.PageSize))
	}
	if q.Cursor != "" {
		values.Set("cursor", q.Cursor)
	}
	f := q.Filter.Normalize()
	switch f.Mode {
	case domain.FilterSearch:
		values.Set("q", f.Term)
	case domain.FilterCategory:
		values.Set("category", f.Term)
	}

	var page domain.FeedPage
	if err := c.do(ctx, http.MethodGet, "/candidates", values, nil, &page); err != nil {
		return nil, err
	}
	if page.Items == nil {
		page.Items = []domain.CandidateProfile{}
	}
	return &page, nil
}

func (c *Client) GetCandidate(ctx context.Context, id string) (*domain.Resume, error) {
	var resume domain.Resume
	if err := c.do(ctx, http.MethodGet, "/candidates/"+url.PathEscape(id), nil, nil, &resume); err != nil {
		return nil, err
	}
	return &resume, nil
}

func (c *Client) Categories(ctx context.Context) ([]domain.JobCategory, error) {
	var categories []domain.JobCategory
	if err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// SetOwnCategories replaces the signed-in user's resume categories.
func (c *Client) SetOwnCategories(ctx context.Context, categories []string) error {
	body := map[string][]string{"categories": categories}
	return c.do(ctx, http.MethodPut, "/candidates/me/categories", nil, body, nil)
}

// GetFavorites implements feed.FavoritesStore. The server resolves the user from the token;
// userID only short-circuits the signed-out case.
func (c *Client) GetFavorites(ctx context.Context, userID string) (*domain.FavoritesList, error) {
	if userID == "" {
		return nil, domain.ErrNotSignedIn
	}
	var list domain.FavoritesList
	if err := c.do(ctx, http.MethodGet, "/favorites", nil, nil, &list); err != nil {
		return nil, err
	}
	if list.Favorites == nil {
		list.Favorites = []domain.FavoriteReference{}
	}
	return &list, nil
}

func (c *Client) GetFavoriteProfiles(ctx context.Context) ([]domain.CandidateProfile, error) {
	var profiles []domain.CandidateProfile
	if err := c.do(ctx, http.MethodGet, "/favorites/profiles", nil, nil, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (c *Client) AddFavorite(ctx context.Context, userID, candidateID string) error {
	if userID == "" {
		return domain.ErrNotSignedIn
	}
	return c.do(ctx, http.MethodPut, "/favorites/"+url.PathEscape(candidateID), nil, nil, nil)
}

func (c *Client) RemoveFavorite(ctx context.Context, userID, candidateID string) error {
	if userID == "" {
		return domain.ErrNotSignedIn
	}
	return c.do(ctx, http.MethodDelete, "/favorites/"+url.PathEscape(candidateID), nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("feedclient: encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("feedclient: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("feedclient: %s %s: %w", method, path, ctxErr)
		}
		return fmt.Errorf("feedclient: %s %s: %w: %w", method, path, domain.ErrStoreUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("feedclient: read response: %w", err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode, Message: env.Message, RequestID: env.RequestID}
		if decodeErr != nil || env.Message == "" {
			apiErr.Message = strings.TrimSpace(string(truncate(raw, maxErrorBody)))
		}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
		}
		apiErr.kind = classify(resp.StatusCode, apiErr.Code)
		return apiErr
	}
	if decodeErr != nil {
		return fmt.Errorf("feedclient: decode response: %w", decodeErr)
	}
	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("feedclient: decode data: %w", err)
	}
	return nil
}

var codeErrors = map[string]error{
	"invalid_cursor":   domain.ErrInvalidCursor,
	"sign_in_required": domain.ErrNotSignedIn,
	"not_found":        domain.ErrNotFound,
	"unavailable":      domain.ErrStoreUnavailable,
}

// classify maps an error code, or the status when the body carried none, to a domain error.
func classify(status int, code string) error {
	if code != "" {
		return codeErrors[code]
	}
	switch status {
	case http.StatusUnauthorized:
		return domain.ErrNotSignedIn
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return domain.ErrStoreUnavailable
	}
	return nil
}

func truncate(b []byte, n int) []byte {
	if len(b) > n {
		return b[:n]
	}
	return b
}

// IsRateLimited reports whether err is a 429 from the API.
func IsRateLimited(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && (apiErr.Status == http.StatusTooManyRequests || apiErr.Code == "rate_limited")
}
