package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/kailas-cloud/prodsearch/internal/domain"
)

func newTestRepo(t *testing.T) *Repo {
	t.Helper()

	repo, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("create repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestAddAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.Add(ctx, domain.Product{
		Title:    "Galaxy S24",
		Price:    89999,
		Rating:   4.5,
		Stock:    10,
		Currency: "INR",
		Metadata: map[string]string{"color": "black"},
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if id != 1 {
		t.Errorf("expected first id 1, got %d", id)
	}

	p, err := repo.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Title != "Galaxy S24" || p.Price != 89999 || p.Metadata["color"] != "black" {
		t.Errorf("roundtrip mismatch: %+v", p)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Get(context.Background(), 99)
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestUpdateMetadata_Merge(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.Add(ctx, domain.Product{
		Title:    "Pixel 9",
		Price:    79999,
		Metadata: map[string]string{"color": "blue"},
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	p, err := repo.UpdateMetadata(ctx, id, map[string]string{"units_sold": "1500"})
	if err != nil {
		t.Fatalf("update metadata: %v", err)
	}
	if p.Metadata["color"] != "blue" {
		t.Error("existing keys should survive the merge")
	}
	if p.Metadata["units_sold"] != "1500" {
		t.Errorf("new key not applied: %+v", p.Metadata)
	}
}

func TestUpdateMetadata_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.UpdateMetadata(context.Background(), 42, map[string]string{"k": "v"})
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestList_InsertionOrder(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		if _, err := repo.Add(ctx, domain.Product{Title: title, Price: 1}); err != nil {
			t.Fatalf("add %s: %v", title, err)
		}
	}

	products, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("expected 3 products, got %d", len(products))
	}
	for i, want := range []string{"first", "second", "third"} {
		if products[i].Title != want {
			t.Errorf("position %d: expected %q, got %q", i, want, products[i].Title)
		}
	}
}

func TestList_Empty(t *testing.T) {
	repo := newTestRepo(t)

	products, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(products) != 0 {
		t.Errorf("expected empty catalog, got %d products", len(products))
	}
}
