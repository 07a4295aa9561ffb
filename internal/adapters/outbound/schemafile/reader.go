package schemafile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/filegate/filegate/internal/domain"
)

// Reader implements domain.SchemaSource for YAML schema files.
type Reader struct{}

// New creates a Reader.
func New() *Reader { return &Reader{} }

// Read parses a .yaml/.yml schema into a generic mapping and returns the raw
// bytes alongside, for fingerprinting. Missing or unparseable files come back
// as *domain.ResourceError.
func (r *Reader) Read(path string) (map[string]any, []byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
	default:
		return nil, nil, &domain.ResourceError{Op: "read schema", Path: path, Err: fmt.Errorf("unsupported schema extension %q (want .yaml or .yml)", filepath.Ext(path))}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, &domain.ResourceError{Op: "read schema", Path: path, Err: os.ErrNotExist}
		}
		return nil, nil, &domain.ResourceError{Op: "read schema", Path: path, Err: err}
	}

	raw, err := Parse(data)
	if err != nil {
		return nil, nil, &domain.ResourceError{Op: "parse schema", Path: path, Err: err}
	}
	return raw, data, nil
}

// Parse decodes YAML bytes into a mapping. An empty document yields an empty
// mapping, which BuildSchema rejects.
func Parse(data []byte) (map[string]any, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return raw, nil
}
