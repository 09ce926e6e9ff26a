// Package redis stores product records as Redis hashes via rueidis.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/prodsearch/internal/domain"
)

// Config holds connection parameters for the Redis product store.
type Config struct {
	Addrs     []string
	Username  string
	Password  string
	DB        int
	KeyPrefix string
}

// Repo implements the product repository on Redis hashes. Each product
// lives at <prefix>product:<id>; IDs come from an INCR counter.
type Repo struct {
	client rueidis.Client
	prefix string
}

// New creates a Redis-backed product repository.
func New(cfg Config) (*Repo, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Username:     cfg.Username,
		Password:     cfg.Password,
		SelectDB:     cfg.DB,
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &Repo{client: client, prefix: cfg.KeyPrefix}, nil
}

// Ping checks connectivity.
func (r *Repo) Ping(ctx context.Context) error {
	cmd := r.client.B().Ping().Build()
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close shuts down the client.
func (r *Repo) Close() error {
	r.client.Close()
	return nil
}

// WaitForReady polls Ping until the store responds or timeout expires.
func (r *Repo) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := r.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

func (r *Repo) productKey(id int64) string {
	return fmt.Sprintf("%sproduct:%d", r.prefix, id)
}

func (r *Repo) counterKey() string {
	return r.prefix + "product:next_id"
}

// Add assigns the next ID and stores the product hash.
func (r *Repo) Add(ctx context.Context, p domain.Product) (int64, error) {
	incr := r.client.B().Incr().Key(r.counterKey()).Build()
	id, err := r.client.Do(ctx, incr).AsInt64()
	if err != nil {
		return 0, fmt.Errorf("allocate product id: %w", err)
	}

	p.ID = id
	fields, err := hashFields(p)
	if err != nil {
		return 0, err
	}

	cmd := r.client.B().Hset().Key(r.productKey(id)).FieldValue()
	for k, v := range fields {
		cmd = cmd.FieldValue(k, v)
	}
	if err := r.client.Do(ctx, cmd.Build()).Error(); err != nil {
		return 0, fmt.Errorf("store product %d: %w", id, err)
	}
	return id, nil
}

// Get returns one product by ID.
func (r *Repo) Get(ctx context.Context, id int64) (domain.Product, error) {
	cmd := r.client.B().Hgetall().Key(r.productKey(id)).Build()
	m, err := r.client.Do(ctx, cmd).AsStrMap()
	if err != nil {
		return domain.Product{}, fmt.Errorf("fetch product %d: %w", id, err)
	}
	if len(m) == 0 {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return parseProduct(m)
}

// UpdateMetadata merges keys into a product's metadata and returns the
// updated record.
func (r *Repo) UpdateMetadata(
	ctx context.Context, id int64, metadata map[string]string,
) (domain.Product, error) {
	p, err := r.Get(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	if p.Metadata == nil {
		p.Metadata = map[string]string{}
	}
	for k, v := range metadata {
		p.Metadata[k] = v
	}

	meta, err := json.Marshal(p.Metadata)
	if err != nil {
		return domain.Product{}, fmt.Errorf("encode metadata: %w", err)
	}
	cmd := r.client.B().Hset().Key(r.productKey(id)).
		FieldValue().FieldValue("metadata", string(meta)).Build()
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		return domain.Product{}, fmt.Errorf("update product %d: %w", id, err)
	}
	return p, nil
}

// List returns all products in ID order.
func (r *Repo) List(ctx context.Context) ([]domain.Product, error) {
	keys, err := r.scan(ctx, r.prefix+"product:*")
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, nil
	}

	cmds := make([]rueidis.Completed, 0, len(keys))
	hashKeys := make([]string, 0, len(keys))
	for _, key := range keys {
		if key == r.counterKey() {
			continue
		}
		cmds = append(cmds, r.client.B().Hgetall().Key(key).Build())
		hashKeys = append(hashKeys, key)
	}
	if len(cmds) == 0 {
		return nil, nil
	}

	results := r.client.DoMulti(ctx, cmds...)
	products := make([]domain.Product, 0, len(results))
	for i, res := range results {
		m, err := res.AsStrMap()
		if err != nil {
			return nil, fmt.Errorf("fetch key %s: %w", hashKeys[i], err)
		}
		if len(m) == 0 {
			continue
		}
		p, err := parseProduct(m)
		if err != nil {
			return nil, fmt.Errorf("key %s: %w", hashKeys[i], err)
		}
		products = append(products, p)
	}

	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (r *Repo) scan(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	var cursor uint64

	for {
		cmd := r.client.B().Scan().Cursor(cursor).Match(pattern).Count(100).Build()
		res, err := r.client.Do(ctx, cmd).AsScanEntry()
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		keys = append(keys, res.Elements...)
		cursor = res.Cursor
		if cursor == 0 {
			break
		}
	}

	return keys, nil
}

func hashFields(p domain.Product) (map[string]string, error) {
	meta := p.Metadata
	if meta == nil {
		meta = map[string]string{}
	}
	encoded, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("encode metadata: %w", err)
	}

	return map[string]string{
		"id":          strconv.FormatInt(p.ID, 10),
		"title":       p.Title,
		"description": p.Description,
		"rating":      strconv.FormatFloat(p.Rating, 'f', -1, 64),
		"stock":       strconv.Itoa(p.Stock),
		"price":       strconv.FormatFloat(p.Price, 'f', -1, 64),
		"mrp":         strconv.FormatFloat(p.MRP, 'f', -1, 64),
		"currency":    p.Currency,
		"metadata":    string(encoded),
	}, nil
}

func parseProduct(m map[string]string) (domain.Product, error) {
	var p domain.Product
	var err error

	if p.ID, err = strconv.ParseInt(m["id"], 10, 64); err != nil {
		return domain.Product{}, fmt.Errorf("parse id %q: %w", m["id"], err)
	}
	p.Title = m["title"]
	p.Description = m["description"]
	p.Currency = m["currency"]
	p.Rating, _ = strconv.ParseFloat(m["rating"], 64)
	p.Stock, _ = strconv.Atoi(m["stock"])
	p.Price, _ = strconv.ParseFloat(m["price"], 64)
	p.MRP, _ = strconv.ParseFloat(m["mrp"], 64)

	p.Metadata = map[string]string{}
	if raw := m["metadata"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &p.Metadata); err != nil {
			return domain.Product{}, fmt.Errorf("decode metadata: %w", err)
		}
	}
	return p, nil
}
