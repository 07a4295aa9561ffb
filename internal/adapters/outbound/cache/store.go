package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zeebo/xxh3"

	"github.com/filegate/filegate/internal/domain"
)

// Store is a file-based implementation of domain.SchemaCache. Entries live
// in .filegate/cache/ next to the schema they were built from.
type Store struct{}

// New creates a new file-based cache store.
func New() *Store {
	return &Store{}
}

// Fingerprint hashes raw schema bytes with xxh3-128.
func (s *Store) Fingerprint(raw []byte) string {
	h := xxh3.Hash128(raw)
	return fmt.Sprintf("%016x%016x", h.Hi, h.Lo)
}

// Load reads a cached schema build. Returns (nil, nil) if no cache exists.
func (s *Store) Load(schemaPath string) (*domain.CachedSchema, error) {
	data, err := os.ReadFile(cachePath(schemaPath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // no cache is not an error
		}
		return nil, err
	}

	var entry domain.CachedSchema
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Save writes a cached schema build, creating directories as needed.
func (s *Store) Save(entry *domain.CachedSchema) error {
	if err := os.MkdirAll(cacheDir(entry.SchemaPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(cachePath(entry.SchemaPath), data, 0644)
}

// Invalidate removes the cache entry for the given schema.
func (s *Store) Invalidate(schemaPath string) error {
	if err := os.Remove(cachePath(schemaPath)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func cacheDir(schemaPath string) string {
	return filepath.Join(filepath.Dir(schemaPath), ".filegate", "cache")
}

func cachePath(schemaPath string) string {
	base := strings.TrimSuffix(filepath.Base(schemaPath), filepath.Ext(schemaPath))
	return filepath.Join(cacheDir(schemaPath), base+".schema.json")
}
