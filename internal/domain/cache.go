package domain

// CachedSchema is a built schema persisted next to its source file, keyed by
// the fingerprint of the raw bytes it was built from.
type CachedSchema struct {
	SchemaPath  string  `json:"schema_path"`
	Fingerprint string  `json:"fingerprint"`
	Schema      *Schema `json:"schema"`
}

// IsInvalidated reports whether the cached build no longer matches the
// source bytes.
func (c *CachedSchema) IsInvalidated(fingerprint string) bool {
	return c.Schema == nil || c.Fingerprint != fingerprint
}
