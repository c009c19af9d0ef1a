// Package store keeps the last fetched product snapshot in a local SQLite
// database so the browser still works when the catalog service is down.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/burnlikeash/SentimentScope/internal/catalog"
)

type Store struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	readDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		writeDB.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}

	s := &Store{readDB: readDB, writeDB: writeDB}
	if err := s.init(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS products (
			id           INTEGER PRIMARY KEY,
			name         TEXT NOT NULL,
			brand        TEXT NOT NULL,
			sentiment    TEXT NOT NULL DEFAULT 'neutral',
			rating       REAL NOT NULL,
			review_count INTEGER NOT NULL DEFAULT 0,
			topics       TEXT NOT NULL DEFAULT '',
			description  TEXT NOT NULL DEFAULT '',
			fetched_at   DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_products_brand ON products(brand);
		CREATE INDEX IF NOT EXISTS idx_products_reviews ON products(review_count DESC);

		CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	var errs []error
	if s.readDB != nil {
		errs = append(errs, s.readDB.Close())
	}
	if s.writeDB != nil {
		errs = append(errs, s.writeDB.Close())
	}
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// ReplaceProducts swaps the snapshot wholesale: the catalog is replaced per
// load cycle, never merged.
func (s *Store) ReplaceProducts(products []catalog.Product) error {
	tx, err := s.writeDB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM products"); err != nil {
		return fmt.Errorf("clearing snapshot: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO products (id, name, brand, sentiment, rating, review_count, topics, description, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now()
	for _, p := range products {
		_, err := stmt.Exec(p.ID, p.Name, p.Brand, string(p.Sentiment), p.Rating,
			p.ReviewCount, strings.Join(p.Topics, ", "), p.Description, now)
		if err != nil {
			return fmt.Errorf("inserting product %d: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

// QueryOpts narrows GetProducts. Zero values impose no constraint.
type QueryOpts struct {
	Brand  string
	Search string
	Limit  int
}

// GetProducts reads the snapshot, most-reviewed first.
func (s *Store) GetProducts(opts QueryOpts) ([]catalog.Product, error) {
	var (
		where []string
		args  []interface{}
	)

	if opts.Brand != "" {
		where = append(where, "brand = ?")
		args = append(args, opts.Brand)
	}
	if opts.Search != "" {
		where = append(where, "(name LIKE ? OR brand LIKE ?)")
		term := "%" + opts.Search + "%"
		args = append(args, term, term)
	}

	query := "SELECT id, name, brand, sentiment, rating, review_count, topics, description FROM products"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY review_count DESC, name"

	limit := opts.Limit
	if limit <= 0 {
		limit = 1000
	}
	query += fmt.Sprintf(" LIMIT %d", limit)

	rows, err := s.readDB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []catalog.Product
	for rows.Next() {
		var (
			p         catalog.Product
			sentiment string
			topics    string
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Brand, &sentiment, &p.Rating,
			&p.ReviewCount, &topics, &p.Description); err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		p.Sentiment = catalog.ParseSentiment(sentiment)
		if topics != "" {
			for _, t := range strings.Split(topics, ", ") {
				if t != "" {
					p.Topics = append(p.Topics, t)
				}
			}
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// NeedsRefresh reports whether the snapshot is older than interval (or has
// never been written).
func (s *Store) NeedsRefresh(interval time.Duration) bool {
	var value string
	err := s.readDB.QueryRow("SELECT value FROM meta WHERE key = 'last_refresh'").Scan(&value)
	if err != nil {
		return true
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return true
	}
	return time.Since(t) > interval
}

func (s *Store) SetLastRefresh() error {
	_, err := s.writeDB.Exec(`
		INSERT INTO meta (key, value) VALUES ('last_refresh', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, time.Now().Format(time.RFC3339))
	return err
}

// Prune deletes snapshot rows fetched before the retention window and
// reports how many were removed.
func (s *Store) Prune(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	res, err := s.writeDB.Exec("DELETE FROM products WHERE fetched_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning products: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.writeDB.Exec("VACUUM")
	}
	return n, nil
}

// Stats returns the snapshot row count and database file size.
func (s *Store) Stats(dbPath string) (count int64, size int64, err error) {
	if err = s.readDB.QueryRow("SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		return 0, 0, fmt.Errorf("counting products: %w", err)
	}
	info, err := os.Stat(dbPath)
	if err != nil {
		return count, 0, nil // size is best-effort
	}
	return count, info.Size(), nil
}
