// Package store implements the key-value article store on SQLite. The
// consumers only rely on the list/get/put/delete contract, so the schema is
// a single keyed table of JSON strings.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"coolfinds/internal/core"

	_ "github.com/mattn/go-sqlite3"
)

// FeaturedProductsKey is the well-known key holding the wholesale-replaced
// featured product batch. It lives in the same keyspace as articles and is
// skipped by article listings.
const FeaturedProductsKey = "featured_products"

// Store represents the SQLite-backed key-value store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a store instance with a SQLite database under dataDir.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "coolfinds.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return store, nil
}

// initialize creates the keyspace table.
func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS entries (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create entries table: %w", err)
	}
	return nil
}

// Put stores value under key, replacing any previous value.
func (s *Store) Put(key, value string) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO entries (key, value, updated_at) VALUES (?, ?, ?)`,
		key, value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to put key %s: %w", key, err)
	}
	return nil
}

// Get returns the value stored under key. The second return reports whether
// the key exists.
func (s *Store) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM entries WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return value, true, nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM entries WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

// List returns all keys ordered by most recent write first.
func (s *Store) List() ([]string, error) {
	rows, err := s.db.Query(`SELECT key FROM entries ORDER BY updated_at DESC, key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// PutArticle persists an article as JSON under key.
func (s *Store) PutArticle(key string, article core.Article) error {
	data, err := json.Marshal(article)
	if err != nil {
		return fmt.Errorf("failed to marshal article: %w", err)
	}
	return s.Put(key, string(data))
}

// ListArticles returns every stored article, skipping the featured products
// key. Entries that fail to decode are skipped rather than failing the
// listing.
func (s *Store) ListArticles() ([]core.Article, error) {
	keys, err := s.List()
	if err != nil {
		return nil, err
	}

	articles := make([]core.Article, 0, len(keys))
	for _, key := range keys {
		if key == FeaturedProductsKey {
			continue
		}
		value, ok, err := s.Get(key)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		var article core.Article
		if err := json.Unmarshal([]byte(value), &article); err != nil {
			continue
		}
		articles = append(articles, article)
	}
	return articles, nil
}

// DeleteArticlesBySlug removes every stored article whose slug matches, or
// whose key is the slug's well-known "article-{slug}" form. It returns the
// number of deleted entries.
func (s *Store) DeleteArticlesBySlug(slug string) (int, error) {
	keys, err := s.List()
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, key := range keys {
		if key == FeaturedProductsKey {
			continue
		}
		value, ok, err := s.Get(key)
		if err != nil {
			return deleted, err
		}
		if !ok {
			continue
		}
		var article core.Article
		if err := json.Unmarshal([]byte(value), &article); err != nil {
			continue
		}
		if article.Slug == slug || key == "article-"+slug {
			if err := s.Delete(key); err != nil {
				return deleted, err
			}
			deleted++
		}
	}
	return deleted, nil
}

// PutFeaturedProducts replaces the stored featured batch wholesale.
func (s *Store) PutFeaturedProducts(products []core.FeaturedProduct) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to marshal featured products: %w", err)
	}
	return s.Put(FeaturedProductsKey, string(data))
}

// FeaturedProductsJSON returns the stored featured batch as its raw JSON
// value, or "[]" when none has been stored yet.
func (s *Store) FeaturedProductsJSON() (string, error) {
	value, ok, err := s.Get(FeaturedProductsKey)
	if err != nil {
		return "", err
	}
	if !ok {
		return "[]", nil
	}
	return value, nil
}
