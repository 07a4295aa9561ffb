package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/filegate/filegate/internal/domain"
)

var skipDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
}

// FileScanner implements domain.FileScanner by walking the filesystem.
type FileScanner struct{}

func New() *FileScanner {
	return &FileScanner{}
}

// Scan walks dir and records every file, marking those whose extension
// matches. Dot-directories and dependency directories are skipped.
func (s *FileScanner) Scan(dir, extension string) (*domain.ScanResult, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, &domain.ResourceError{Op: "scan", Path: dir, Err: err}
	}
	if !info.IsDir() {
		return nil, &domain.ResourceError{Op: "scan", Path: dir, Err: fmt.Errorf("not a directory")}
	}

	result := &domain.ScanResult{
		RootPath:  absPath,
		Extension: extension,
	}

	err = filepath.WalkDir(absPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != absPath && (skipDirs[d.Name()] || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, _ := filepath.Rel(absPath, path)
		result.AddFile(relPath)
		return nil
	})

	return result, err
}
