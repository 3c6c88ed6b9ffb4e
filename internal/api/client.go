// Package api provides a typed client for the MakerNet REST API.
package api

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

	"github.com/google/uuid"

	"makernet/internal/observability"
)

// ErrUnauthorized indicates the server rejected the request's credentials.
var ErrUnauthorized = errors.New("unauthorized")

// Error is a non-2xx API response. Message carries the human-readable
// message from the response body when the server provided one.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api: %d", e.StatusCode)
}

// Meta carries list pagination metadata.
type Meta struct {
	Total int `json:"total"`
}

type listEnvelope[T any] struct {
	Data []T  `json:"data"`
	Meta Meta `json:"meta"`
}

type dataEnvelope[T any] struct {
	Data T `json:"data"`
}

// ListParams are the query parameters accepted by list endpoints.
type ListParams struct {
	Limit     int
	Offset    int
	Search    string
	Status    string
	Type      string
	SortBy    string
	MinBudget *int
	MaxBudget *int
}

// Values encodes the parameters for a request query string. Zero-valued
// optional fields are omitted; limit and offset are always sent.
func (p ListParams) Values() url.Values {
	v := url.Values{}
	v.Set("limit", strconv.Itoa(p.Limit))
	v.Set("offset", strconv.Itoa(p.Offset))
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	if p.Status != "" {
		v.Set("status", p.Status)
	}
	if p.Type != "" {
		v.Set("type", p.Type)
	}
	if p.SortBy != "" {
		v.Set("sort_by", p.SortBy)
	}
	if p.MinBudget != nil {
		v.Set("min_budget", strconv.Itoa(*p.MinBudget))
	}
	if p.MaxBudget != nil {
		v.Set("max_budget", strconv.Itoa(*p.MaxBudget))
	}
	return v
}

// Client issues authenticated requests against the MakerNet API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     *observability.RequestLogger
}

// Option configures a Client.
type Option func(*Client)

// WithToken sets the bearer token sent on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = strings.TrimSpace(token) }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a Client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
		log: observability.NewRequestLogger("api"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the bearer token on an existing client.
func (c *Client) SetToken(token string) {
	c.token = strings.TrimSpace(token)
}

// BaseURL returns the configured base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	correlationID := observability.ExtractCorrelationID(ctx)
	if correlationID == "" {
		correlationID = uuid.NewString()
		ctx = observability.WithCorrelationID(ctx, correlationID)
	}
	ctx, span := observability.TraceAPICall(ctx, method, path)
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Correlation-ID", correlationID)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.log.LogRequest(ctx, method, path)
	resp, err := c.http.Do(req)
	if err != nil {
		observability.RecordErrorInContext(ctx, err)
		c.log.LogResponse(ctx, method, path, 0, err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := decodeError(resp)
		observability.RecordErrorInContext(ctx, apiErr)
		c.log.LogResponse(ctx, method, path, resp.StatusCode, apiErr)
		if resp.StatusCode == http.StatusUnauthorized {
			return fmt.Errorf("%w: %s", ErrUnauthorized, apiErr.Message)
		}
		return apiErr
	}
	c.log.LogResponse(ctx, method, path, resp.StatusCode, nil)

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func decodeError(resp *http.Response) *Error {
	apiErr := &Error{StatusCode: resp.StatusCode}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		if payload.Message != "" {
			apiErr.Message = payload.Message
		} else if payload.Error != "" {
			apiErr.Message = payload.Error
		}
	}
	return apiErr
}

// getList fetches a paginated resource and returns its items and total count.
func getList[T any](ctx context.Context, c *Client, path string, p ListParams) ([]T, int, error) {
	q := p.Values().Encode()
	var env listEnvelope[T]
	if err := c.get(ctx, path+"?"+q, &env); err != nil {
		return nil, 0, err
	}
	return env.Data, env.Meta.Total, nil
}

// getOne fetches a single resource from a {data: ...} envelope.
func getOne[T any](ctx context.Context, c *Client, path string) (T, error) {
	var env dataEnvelope[T]
	if err := c.get(ctx, path, &env); err != nil {
		var zero T
		return zero, err
	}
	return env.Data, nil
}

// mutate issues a write and decodes the updated entity from a {data: ...}
// envelope.
func mutate[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var env dataEnvelope[T]
	var err error
	switch method {
	case http.MethodPost:
		err = c.post(ctx, path, body, &env)
	case http.MethodPut:
		err = c.put(ctx, path, body, &env)
	case http.MethodPatch:
		err = c.patch(ctx, path, body, &env)
	default:
		err = fmt.Errorf("unsupported mutation method %s", method)
	}
	if err != nil {
		var zero T
		return zero, err
	}
	return env.Data, nil
}
