package domain

// SchemaSource reads a schema file into a generic mapping.
type SchemaSource interface {
	Read(path string) (map[string]any, []byte, error)
}

// ReadOptions tells a DatasetReader how to decode a data file.
type ReadOptions struct {
	Separator  rune
	Encoding   string
	NullValues []string
	TrimSpace  bool
}

// DatasetReader parses a delimited data file into a Dataset.
type DatasetReader interface {
	Read(path string, opts ReadOptions) (*Dataset, error)
}

// ConfigLoader loads the engine configuration.
type ConfigLoader interface {
	Load(path string) (EngineConfig, error)
}

// SchemaCache stores built schemas next to their source file.
// Load returns (nil, nil) when nothing is cached.
type SchemaCache interface {
	Fingerprint(raw []byte) string
	Load(schemaPath string) (*CachedSchema, error)
	Save(entry *CachedSchema) error
	Invalidate(schemaPath string) error
}

// RunHistory records validation runs next to the data they validated.
type RunHistory interface {
	Save(dir string, entry RunEntry, limit int) error
	Load(dir string) ([]RunEntry, error)
}

// GitInfo provides version control provenance for data files.
type GitInfo interface {
	CommitHash(path string) (string, error)
}

// FileScanner lists candidate data files under a directory.
type FileScanner interface {
	Scan(dir, extension string) (*ScanResult, error)
}

// MetricsRecorder observes finished validation runs.
type MetricsRecorder interface {
	ObserveRun(report *ValidationReport)
	Flush() error
}
