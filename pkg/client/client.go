// Package client is a typed HTTP client for the prodsearch API.
package client

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
)

const defaultTimeout = 30 * time.Second

// Product mirrors the API product payload.
type Product struct {
	ProductID   int64             `json:"product_id,omitempty"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Rating      float64           `json:"rating,omitempty"`
	Stock       int               `json:"stock,omitempty"`
	Price       float64           `json:"price"`
	MRP         float64           `json:"mrp,omitempty"`
	Currency    string            `json:"currency,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// ScoreBreakdown mirrors the per-signal score components of a result.
type ScoreBreakdown struct {
	BM25       float64 `json:"bm25,omitempty"`
	Fuzzy      float64 `json:"fuzzy,omitempty"`
	Semantic   float64 `json:"semantic,omitempty"`
	Text       float64 `json:"text"`
	Attribute  float64 `json:"attribute"`
	Popularity float64 `json:"popularity"`
	Intent     float64 `json:"intent"`
	Total      float64 `json:"total"`
}

// SearchResult is one ranked product.
type SearchResult struct {
	Product   Product        `json:"product"`
	Score     float64        `json:"score"`
	Breakdown ScoreBreakdown `json:"breakdown"`
}

// SearchResponse is the ranked result set for a query.
type SearchResponse struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
	Total   int            `json:"total"`
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("prodsearch: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// Option customizes the Client.
type Option func(*Client)

// WithAPIKey sets the Bearer token sent with every request.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// Client talks to a prodsearch server.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New creates a Client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// AddProduct uploads a product and returns its assigned ID.
func (c *Client) AddProduct(ctx context.Context, p Product) (int64, error) {
	var out struct {
		ProductID int64 `json:"product_id"`
	}
	err := c.do(ctx, http.MethodPost, "/api/v1/product", p, &out)
	if err != nil {
		return 0, err
	}
	return out.ProductID, nil
}

// UpdateMetadata merges metadata keys into a product and returns the
// updated record.
func (c *Client) UpdateMetadata(
	ctx context.Context, productID int64, metadata map[string]string,
) (Product, error) {
	req := struct {
		ProductID int64             `json:"product_id"`
		Metadata  map[string]string `json:"metadata"`
	}{ProductID: productID, Metadata: metadata}

	var out Product
	if err := c.do(ctx, http.MethodPut, "/api/v1/product/meta-data", req, &out); err != nil {
		return Product{}, err
	}
	return out, nil
}

// ListProducts returns the full catalog.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var out struct {
		Items []Product `json:"items"`
		Total int       `json:"total"`
	}
	if err := c.do(ctx, http.MethodGet, "/products", nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// Search ranks the catalog against a free-text query.
func (c *Client) Search(ctx context.Context, query string) (SearchResponse, error) {
	path := "/api/v1/search/product?query=" + url.QueryEscape(query)
	var out SearchResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return SearchResponse{}, err
	}
	return out, nil
}

// RefreshIndex rebuilds the server's search index.
func (c *Client) RefreshIndex(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/v1/index/refresh", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("prodsearch: encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("prodsearch: build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("prodsearch: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		data, _ := io.ReadAll(resp.Body)
		_ = json.Unmarshal(data, apiErr)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("prodsearch: decode response: %w", err)
	}
	return nil
}
