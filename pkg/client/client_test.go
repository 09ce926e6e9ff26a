package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAddProduct(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/product" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")

		var p Product
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if p.Title != "Widget" {
			t.Errorf("unexpected payload: %+v", p)
		}

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]int64{"product_id": 7})
	}))
	defer ts.Close()

	c := New(ts.URL, WithAPIKey("test-key"))
	id, err := c.AddProduct(context.Background(), Product{Title: "Widget", Price: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 7 {
		t.Errorf("expected id 7, got %d", id)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("expected bearer auth header, got %q", gotAuth)
	}
}

func TestSearch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/search/product" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("query"); got != "phone under 15000" {
			t.Errorf("unexpected query: %q", got)
		}
		_ = json.NewEncoder(w).Encode(SearchResponse{
			Query: "phone under 15000",
			Results: []SearchResult{
				{Product: Product{ProductID: 1, Title: "Budget Phone"}, Score: 120},
			},
			Total: 1,
		})
	}))
	defer ts.Close()

	c := New(ts.URL)
	resp, err := c.Search(context.Background(), "phone under 15000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Total != 1 || resp.Results[0].Product.Title != "Budget Phone" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"code":    "empty_query",
			"message": "query cannot be empty",
		})
	}))
	defer ts.Close()

	c := New(ts.URL)
	_, err := c.Search(context.Background(), "")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest || apiErr.Code != "empty_query" {
		t.Errorf("unexpected error: %+v", apiErr)
	}
}

func TestRefreshIndex(t *testing.T) {
	called := false
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/index/refresh" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer ts.Close()

	c := New(ts.URL)
	if err := c.RefreshIndex(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Error("refresh endpoint not called")
	}
}
