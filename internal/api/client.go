// Package api talks to the remote ideas HTTP API.
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
	"strings"
	"time"

	"go.uber.org/zap"

	ideaerrors "github.com/abatilo/ideas/internal/errors"
	"github.com/abatilo/ideas/internal/idea"
)

const defaultTimeout = 10 * time.Second

// Client is a repository.Repository backed by the remote API.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTokenSource sets where bearer tokens come from.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a Client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// List fetches every idea. Elements that fail to decode are dropped and logged.
func (c *Client) List(ctx context.Context) ([]idea.Idea, error) {
	var raw []json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/ideas", "", nil, &raw); err != nil {
		return nil, err
	}

	ideas := make([]idea.Idea, 0, len(raw))
	for n, r := range raw {
		var i idea.Idea
		err := json.Unmarshal(r, &i)
		if err = c.tolerate(err, i.ID); err != nil {
			c.logger.Warn("dropping undecodable idea", zap.Int("index", n), zap.Error(err))
			continue
		}
		ideas = append(ideas, i)
	}
	return ideas, nil
}

// Get fetches a single idea.
func (c *Client) Get(ctx context.Context, id string) (idea.Idea, error) {
	var i idea.Idea
	if err := c.do(ctx, http.MethodGet, "/ideas/"+url.PathEscape(id), id, nil, &i); err != nil {
		return idea.Idea{}, err
	}
	return i, nil
}

// Create submits a fully formed idea. The response body is ignored.
func (c *Client) Create(ctx context.Context, i idea.Idea) error {
	return c.do(ctx, http.MethodPost, "/ideas", i.ID, i, nil)
}

// Update replaces an idea with the full record.
func (c *Client) Update(ctx context.Context, i idea.Idea) error {
	return c.do(ctx, http.MethodPut, "/ideas/"+url.PathEscape(i.ID), i.ID, i, nil)
}

type statusBody struct {
	Status idea.Status `json:"status"`
}

// UpdateStatus changes only the status of an idea.
func (c *Client) UpdateStatus(ctx context.Context, id string, status idea.Status) error {
	return c.do(ctx, http.MethodPut, "/ideas/change_status/"+url.PathEscape(id), id, statusBody{Status: status}, nil)
}

// Delete removes an idea.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/ideas/"+url.PathEscape(id), id, nil, nil)
}

// do sends one request. A 404 maps to IdeaNotFoundError for id.
func (c *Client) do(ctx context.Context, method, path, id string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	c.authorize(ctx, req)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	c.logger.Debug("api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)

	if resp.StatusCode == http.StatusNotFound && id != "" {
		return ideaerrors.IdeaNotFoundError{ID: id}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return ideaerrors.HTTPStatusError{Method: method, Path: path, Code: resp.StatusCode}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	err = json.NewDecoder(resp.Body).Decode(out)
	if err = c.tolerate(err, id); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// tolerate keeps an idea whose only defect is an unreadable created_at.
// The idea is then undated.
func (c *Client) tolerate(err error, id string) error {
	var badTime ideaerrors.InvalidTimestampError
	if errors.As(err, &badTime) {
		c.logger.Warn("ignoring unreadable created_at",
			zap.String("id", id),
			zap.String("value", badTime.Value),
		)
		return nil
	}
	return err
}

// authorize adds a bearer token when one can be obtained. Token failures
// never block the request.
func (c *Client) authorize(ctx context.Context, req *http.Request) {
	if c.tokens == nil {
		return
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		c.logger.Warn("token unavailable, sending request without authorization", zap.Error(err))
		return
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}
