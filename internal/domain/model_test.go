package domain_test

import (
	"testing"

	"github.com/filegate/filegate/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestScanResult_AddFile_DataFile(t *testing.T) {
	s := &domain.ScanResult{Extension: "csv"}
	s.AddFile("patients.csv")
	assert.Contains(t, s.DataFiles, "patients.csv")
	assert.Contains(t, s.AllFiles, "patients.csv")
}

func TestScanResult_AddFile_ExtensionIgnoresCase(t *testing.T) {
	s := &domain.ScanResult{Extension: ".csv"}
	s.AddFile("sub/UPPER.CSV")
	assert.Equal(t, []string{"sub/UPPER.CSV"}, s.DataFiles)
}

func TestScanResult_AddFile_OtherFile(t *testing.T) {
	s := &domain.ScanResult{Extension: "csv"}
	s.AddFile("readme.md")
	assert.Contains(t, s.AllFiles, "readme.md")
	assert.Empty(t, s.DataFiles)
}

func TestScanResult_AddFile_Duplicate(t *testing.T) {
	s := &domain.ScanResult{Extension: "csv"}
	s.AddFile("a.csv")
	s.AddFile("a.csv")
	assert.Len(t, s.DataFiles, 1)
	assert.Len(t, s.AllFiles, 1)
}

func TestScanResult_EmptyExtensionMatchesNothing(t *testing.T) {
	s := &domain.ScanResult{}
	s.AddFile("a.csv")
	assert.Empty(t, s.DataFiles)
}

func TestScanResult_Abs(t *testing.T) {
	s := &domain.ScanResult{RootPath: "/data"}
	assert.Equal(t, "/data/in/a.csv", s.Abs("in/a.csv"))
}
