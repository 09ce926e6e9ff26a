// Package sqlite stores product records in a SQLite database via the
// pure-Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/kailas-cloud/prodsearch/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS products (
	product_id  INTEGER PRIMARY KEY AUTOINCREMENT,
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	rating      REAL NOT NULL DEFAULT 0,
	stock       INTEGER NOT NULL DEFAULT 0,
	price       REAL NOT NULL DEFAULT 0,
	mrp         REAL NOT NULL DEFAULT 0,
	currency    TEXT NOT NULL DEFAULT '',
	metadata    TEXT NOT NULL DEFAULT '{}'
)`

// Repo implements the product repository over SQLite.
type Repo struct {
	db *sql.DB
}

// New opens (or creates) the database file and ensures the schema.
func New(path string) (*Repo, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Single writer: SQLite serializes writes anyway, and the search
	// core only reads snapshots.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Repo{db: db}, nil
}

// Close closes the underlying database.
func (r *Repo) Close() error {
	return r.db.Close() //nolint:wrapcheck // delegating close
}

// Ping checks database availability.
func (r *Repo) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping sqlite: %w", err)
	}
	return nil
}

// Add inserts a product and returns its assigned ID.
func (r *Repo) Add(ctx context.Context, p domain.Product) (int64, error) {
	meta, err := encodeMetadata(p.Metadata)
	if err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO products (title, description, rating, stock, price, mrp, currency, metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Description, p.Rating, p.Stock, p.Price, p.MRP, p.Currency, meta,
	)
	if err != nil {
		return 0, fmt.Errorf("insert product: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// Get returns one product by ID.
func (r *Repo) Get(ctx context.Context, id int64) (domain.Product, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT product_id, title, description, rating, stock, price, mrp, currency, metadata
		FROM products WHERE product_id = ?`, id)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, domain.ErrProductNotFound
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("select product: %w", err)
	}
	return p, nil
}

// UpdateMetadata merges keys into a product's metadata inside one
// transaction and returns the updated record.
func (r *Repo) UpdateMetadata(
	ctx context.Context, id int64, metadata map[string]string,
) (domain.Product, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Product{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var raw string
	err = tx.QueryRowContext(ctx,
		`SELECT metadata FROM products WHERE product_id = ?`, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, domain.ErrProductNotFound
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("select metadata: %w", err)
	}

	current := map[string]string{}
	if err := json.Unmarshal([]byte(raw), &current); err != nil {
		return domain.Product{}, fmt.Errorf("decode metadata: %w", err)
	}
	for k, v := range metadata {
		current[k] = v
	}

	merged, err := encodeMetadata(current)
	if err != nil {
		return domain.Product{}, err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE products SET metadata = ? WHERE product_id = ?`, merged, id); err != nil {
		return domain.Product{}, fmt.Errorf("update metadata: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return domain.Product{}, fmt.Errorf("commit: %w", err)
	}

	return r.Get(ctx, id)
}

// List returns all products in insertion order.
func (r *Repo) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, title, description, rating, stock, price, mrp, currency, metadata
		FROM products ORDER BY product_id`)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var p domain.Product
	var meta string
	if err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Rating, &p.Stock,
		&p.Price, &p.MRP, &p.Currency, &meta,
	); err != nil {
		return domain.Product{}, err //nolint:wrapcheck // callers wrap
	}
	p.Metadata = map[string]string{}
	if err := json.Unmarshal([]byte(meta), &p.Metadata); err != nil {
		return domain.Product{}, fmt.Errorf("decode metadata: %w", err)
	}
	return p, nil
}

func encodeMetadata(m map[string]string) (string, error) {
	if m == nil {
		m = map[string]string{}
	}
	data, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("encode metadata: %w", err)
	}
	return string(data), nil
}
