package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/shelf/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketCatalog  = []byte("catalog")
	bucketLoans    = []byte("loans")
	bucketSettings = []byte("settings")

	allBuckets = [][]byte{bucketCatalog, bucketLoans, bucketSettings}
)

// Fixed settings keys
const (
	keyGridDensity = "gridDensity"
	keyAppSettings = "appSettings"
)

// CatalogStore implements domain.Store using BoltDB.
type CatalogStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

var _ domain.Store = (*CatalogStore)(nil)

// NewCatalogStore opens the cache database for one backend.
// Each backend URL gets its own directory so snapshots never mix.
func NewCatalogStore(baseCacheDir, serverURL string) (*CatalogStore, error) {
	if baseCacheDir == "" {
		// Memory-only mode (no persistence)
		return &CatalogStore{cache: make(map[string][]byte)}, nil
	}

	dir := baseCacheDir
	if serverURL != "" {
		dir = filepath.Join(baseCacheDir, hashServerURL(serverURL))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(filepath.Join(dir, "shelf.db"), 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range allBuckets {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &CatalogStore{db: db, cache: make(map[string][]byte)}, nil
}

func hashServerURL(serverURL string) string {
	normalized := strings.TrimRight(strings.ToLower(serverURL), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

func (s *CatalogStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *CatalogStore) get(bucket []byte, key string, dest any) bool {
	cacheKey := string(bucket) + ":" + key

	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *CatalogStore) set(bucket []byte, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cache[string(bucket)+":"+key] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(key), data)
	})
}

// clear empties a bucket in both layers
func (s *CatalogStore) clear(bucket []byte) {
	prefix := string(bucket) + ":"

	s.mu.Lock()
	for k := range s.cache {
		if strings.HasPrefix(k, prefix) {
			delete(s.cache, k)
		}
	}
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

// === Catalog snapshot (keyed by search term, "" = whole collection) ===

func termKey(term string) string {
	return "term:" + strings.ToLower(strings.TrimSpace(term))
}

func (s *CatalogStore) GetItems(term string) ([]domain.Item, bool) {
	var items []domain.Item
	ok := s.get(bucketCatalog, termKey(term), &items)
	return items, ok
}

func (s *CatalogStore) SaveItems(term string, items []domain.Item) error {
	if items == nil {
		items = []domain.Item{}
	}
	return s.set(bucketCatalog, termKey(term), items)
}

// InvalidateItems drops every cached snapshot. Search results are stale
// after any mutation, not just the one for the current term.
func (s *CatalogStore) InvalidateItems() {
	s.clear(bucketCatalog)
	s.clear(bucketLoans)
}

// === Loans ===

func (s *CatalogStore) GetLoans() ([]domain.Loan, bool) {
	var loans []domain.Loan
	ok := s.get(bucketLoans, "list", &loans)
	return loans, ok
}

func (s *CatalogStore) SaveLoans(loans []domain.Loan) error {
	if loans == nil {
		loans = []domain.Loan{}
	}
	return s.set(bucketLoans, "list", loans)
}

// === Settings (fixed keys) ===

// GetSettings reads appSettings, with the separately stored gridDensity
// taking precedence.
func (s *CatalogStore) GetSettings() (domain.Settings, bool) {
	settings := domain.DefaultSettings()
	found := s.get(bucketSettings, keyAppSettings, &settings)

	var density int
	if s.get(bucketSettings, keyGridDensity, &density) {
		settings.GridDensity = density
		found = true
	}
	return settings.Normalized(), found
}

func (s *CatalogStore) SaveSettings(settings domain.Settings) error {
	settings = settings.Normalized()
	if err := s.set(bucketSettings, keyAppSettings, settings); err != nil {
		return err
	}
	return s.set(bucketSettings, keyGridDensity, settings.GridDensity)
}
