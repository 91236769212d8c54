package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/stayfront/hotel-console/internal/apperrors"
)

const defaultTimeout = 10 * time.Second

// Client talks to the external REST resource store: one collection per
// entity, list/create/partial-update/delete semantics, no transactions,
// last write wins.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates a store client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode store request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build store request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}

	c.logger.Debug("store request",
		zap.String("method", method),
		zap.String("url", req.URL.String()),
	)

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("store request failed: %w", err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusNotFound:
		return apperrors.NewNotFoundError("resource", strings.TrimPrefix(path, "/"))
	case res.StatusCode >= 400:
		raw, _ := io.ReadAll(io.LimitReader(res.Body, 2048))
		c.logger.Error("store request rejected",
			zap.Int("status", res.StatusCode),
			zap.String("url", req.URL.String()),
			zap.String("body", strings.TrimSpace(string(raw))),
		)
		return fmt.Errorf("unexpected store response %d for %s %s", res.StatusCode, method, path)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode store response: %w", err)
	}
	return nil
}

// Collection is a typed view over one store collection.
type Collection[T any] struct {
	client *Client
	name   string
}

// NewCollection binds a typed collection to a store client.
func NewCollection[T any](client *Client, name string) *Collection[T] {
	return &Collection[T]{client: client, name: name}
}

// List retrieves the full collection.
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	var items []T
	if err := c.client.do(ctx, http.MethodGet, "/"+c.name, nil, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Find retrieves the items matching the given field-equality filters.
func (c *Collection[T]) Find(ctx context.Context, filters map[string]string) ([]T, error) {
	query := url.Values{}
	for key, value := range filters {
		query.Set(key, value)
	}
	var items []T
	if err := c.client.do(ctx, http.MethodGet, "/"+c.name, query, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Get retrieves a single item by id.
func (c *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	var item T
	err := c.client.do(ctx, http.MethodGet, "/"+c.name+"/"+url.PathEscape(id), nil, nil, &item)
	return item, err
}

// Create persists a new item and returns the stored representation.
func (c *Collection[T]) Create(ctx context.Context, item T) (T, error) {
	var created T
	err := c.client.do(ctx, http.MethodPost, "/"+c.name, nil, item, &created)
	return created, err
}

// Patch merges the given partial update into the item and returns the
// merged record. Only non-nil patch fields are touched.
func (c *Collection[T]) Patch(ctx context.Context, id string, patch any) (T, error) {
	var updated T
	err := c.client.do(ctx, http.MethodPatch, "/"+c.name+"/"+url.PathEscape(id), nil, patch, &updated)
	return updated, err
}

// Delete removes an item by id.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	return c.client.do(ctx, http.MethodDelete, "/"+c.name+"/"+url.PathEscape(id), nil, nil, nil)
}
