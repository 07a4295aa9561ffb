package domain

import (
	"path/filepath"
	"strings"
)

// ScanResult holds the files found under a directory, split into data files
// matching the wanted extension and everything else.
type ScanResult struct {
	RootPath  string   `json:"root_path"`
	Extension string   `json:"extension"`
	DataFiles []string `json:"data_files"`
	AllFiles  []string `json:"all_files"`

	seen map[string]bool
}

// AddFile records a path relative to RootPath. Paths already present are
// ignored.
func (s *ScanResult) AddFile(relPath string) {
	if s.seen == nil {
		s.seen = make(map[string]bool)
	}
	if s.seen[relPath] {
		return
	}
	s.seen[relPath] = true
	s.AllFiles = append(s.AllFiles, relPath)
	if s.Matches(relPath) {
		s.DataFiles = append(s.DataFiles, relPath)
	}
}

// Matches reports whether relPath carries the wanted extension, compared
// case-insensitively. An empty Extension matches nothing.
func (s *ScanResult) Matches(relPath string) bool {
	if s.Extension == "" {
		return false
	}
	ext := strings.TrimPrefix(filepath.Ext(relPath), ".")
	return strings.EqualFold(ext, strings.TrimPrefix(s.Extension, "."))
}

// Abs returns the absolute path of a file recorded relative to RootPath.
func (s *ScanResult) Abs(relPath string) string {
	return filepath.Join(s.RootPath, relPath)
}
