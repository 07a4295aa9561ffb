package application

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/filegate/filegate/internal/domain"
	"github.com/filegate/filegate/internal/domain/check"
)

// dataExtensions are the delimited text formats the dataset reader handles.
var dataExtensions = map[string]bool{"csv": true, "tsv": true, "txt": true}

// ValidateService runs the validation pipeline for one data file or every
// matching file of a directory:
// load schema -> read dataset -> header and content checks -> record.
type ValidateService struct {
	cfg     domain.EngineConfig
	schemas *SchemaService
	reader  domain.DatasetReader
	scanner domain.FileScanner
	history domain.RunHistory
	git     domain.GitInfo
	metrics domain.MetricsRecorder
	engine  *check.Engine
	log     *zap.SugaredLogger
	now     func() time.Time

	mu sync.Mutex // serializes history writes
}

// NewValidateService creates a ValidateService. history, git and metrics
// may be nil.
func NewValidateService(
	cfg domain.EngineConfig,
	schemas *SchemaService,
	reader domain.DatasetReader,
	scanner domain.FileScanner,
	history domain.RunHistory,
	git domain.GitInfo,
	metrics domain.MetricsRecorder,
	log *zap.SugaredLogger,
) *ValidateService {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &ValidateService{
		cfg: cfg, schemas: schemas, reader: reader, scanner: scanner,
		history: history, git: git, metrics: metrics, log: log,
		engine: check.NewEngine(schemas.Registry(), check.Options{Workers: cfg.Workers, MaxSamples: cfg.MaxSamples}),
		now:    time.Now,
	}
}

// ValidateFile validates one data file against the schema at schemaPath.
// A failed report is not an error.
func (s *ValidateService) ValidateFile(ctx context.Context, dataPath, schemaPath string) (*domain.ValidationReport, error) {
	// 1. The data file must exist before anything else is read
	if err := statDataFile(dataPath); err != nil {
		return nil, err
	}

	// 2. Schema
	schema, err := s.schemas.Load(schemaPath)
	if err != nil {
		return nil, err
	}

	// 3. Validate and record
	report, err := s.validate(ctx, dataPath, schema)
	if err != nil {
		return nil, err
	}
	s.flushMetrics()
	return report, nil
}

// ScanDir validates every file under dir whose extension matches the
// schema's, at most cfg.Workers at a time. Reports keep the scan order.
func (s *ValidateService) ScanDir(ctx context.Context, dir, schemaPath string) (*domain.ScanReport, error) {
	schema, err := s.schemas.Load(schemaPath)
	if err != nil {
		return nil, err
	}

	ext := schema.FileExtension
	if ext == "" {
		ext = "csv"
	}
	scan, err := s.scanner.Scan(dir, ext)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	s.log.Infow("scan started", "dir", scan.RootPath, "files", len(scan.DataFiles))

	reports := make([]*domain.ValidationReport, len(scan.DataFiles))
	failures := make([]error, len(scan.DataFiles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)
	for i, rel := range scan.DataFiles {
		g.Go(func() error {
			r, err := s.validate(gctx, scan.Abs(rel), schema)
			if err != nil {
				var ce *domain.ConfigurationError
				if errors.As(err, &ce) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				failures[i] = err
				return nil
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	s.flushMetrics()

	out := &domain.ScanReport{Dir: scan.RootPath, SchemaFile: schemaPath, Passed: true}
	for i, rel := range scan.DataFiles {
		if failures[i] != nil {
			out.Passed = false
			out.Errors = append(out.Errors, domain.FileError{File: rel, Error: failures[i].Error()})
			continue
		}
		if !reports[i].Passed {
			out.Passed = false
		}
		out.Reports = append(out.Reports, reports[i])
	}
	return out, nil
}

// History returns the runs recorded in dir, oldest first.
func (s *ValidateService) History(dir string) ([]domain.RunEntry, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.Load(dir)
}

func (s *ValidateService) validate(ctx context.Context, dataPath string, schema *domain.Schema) (*domain.ValidationReport, error) {
	started := s.now()
	log := s.log.With("file", dataPath)

	// 1. Read dataset
	if err := checkDataFile(dataPath, schema.FileExtension); err != nil {
		return nil, err
	}
	ds, err := s.reader.Read(dataPath, domain.ReadOptions{
		Separator:  schema.Separator,
		Encoding:   schema.Encoding,
		NullValues: s.cfg.NullValues,
		TrimSpace:  s.cfg.TrimSpace,
	})
	if err != nil {
		return nil, err
	}
	log.Debugw("dataset read", "rows", len(ds.Rows), "columns", len(ds.Header))

	// 2. Checks
	report, err := s.engine.Validate(ctx, ds, schema)
	if err != nil {
		return nil, err
	}
	if report.Structural.Passed {
		log.Infow("header validation passed")
	} else {
		log.Warnw("header validation failed", "reason", report.Structural.Reason, "detail", report.Structural.Detail)
	}
	for _, c := range report.Failed() {
		if c.Name != domain.HeaderCheckName {
			log.Warnw("content check failed", "check", c.Name, "violations", c.Violations)
		}
	}

	// 3. Provenance
	info := domain.RunInfo{
		RunID:             uuid.NewString(),
		DataFile:          dataPath,
		SchemaFile:        schema.Source,
		SchemaFingerprint: schema.Fingerprint,
		StartedAt:         started.UTC(),
		Warnings:          nameWarnings(dataPath, schema),
	}
	if s.git != nil {
		if hash, err := s.git.CommitHash(dataPath); err == nil {
			info.CommitHash = hash
		} else {
			log.Debugw("no commit hash", "err", err)
		}
	}
	info.Duration = s.now().Sub(started)
	report = report.WithRunInfo(info)
	for _, w := range report.Warnings {
		log.Warnw("file name check", "warning", w)
	}
	log.Infow("validation finished", "status", report.Status, "rows", report.Rows, "duration_ms", report.DurationMS)

	// 4. Record
	s.record(report)
	return report, nil
}

func (s *ValidateService) record(report *domain.ValidationReport) {
	if s.metrics != nil {
		s.metrics.ObserveRun(report)
	}
	if s.history == nil || !s.cfg.History.Enabled {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := domain.EntryFor(report, report.StartedAt.Format(time.RFC3339))
	if err := s.history.Save(filepath.Dir(report.DataFile), entry, s.cfg.History.Limit); err != nil {
		s.log.Warnw("history not saved", "file", report.DataFile, "err", err)
	}
}

func (s *ValidateService) flushMetrics() {
	if s.metrics == nil {
		return
	}
	if err := s.metrics.Flush(); err != nil {
		s.log.Warnw("metrics not written", "err", err)
	}
}

// checkDataFile accepts the delimited text extensions plus whatever
// extension the schema itself declares.
func checkDataFile(path, schemaExt string) error {
	if err := statDataFile(path); err != nil {
		return err
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if !dataExtensions[ext] && (schemaExt == "" || !strings.EqualFold(ext, schemaExt)) {
		return &domain.ResourceError{Op: "read data", Path: path, Err: fmt.Errorf("unsupported data file extension %q", filepath.Ext(path))}
	}
	return nil
}

func statDataFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &domain.ResourceError{Op: "read data", Path: path, Err: os.ErrNotExist}
		}
		return &domain.ResourceError{Op: "read data", Path: path, Err: err}
	}
	if info.IsDir() {
		return &domain.ResourceError{Op: "read data", Path: path, Err: fmt.Errorf("is a directory")}
	}
	return nil
}

// nameWarnings compares the data file name with the schema's declared
// filename and extension. Mismatches never fail a run.
func nameWarnings(dataPath string, schema *domain.Schema) []string {
	var out []string
	base := filepath.Base(dataPath)
	ext := strings.TrimPrefix(filepath.Ext(base), ".")
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	if schema.Filename != "" && !strings.EqualFold(stem, schema.Filename) {
		out = append(out, fmt.Sprintf("file name %q does not match schema filename %q", stem, schema.Filename))
	}
	if schema.FileExtension != "" && !strings.EqualFold(ext, schema.FileExtension) {
		out = append(out, fmt.Sprintf("file extension %q does not match schema extension %q", ext, schema.FileExtension))
	}
	return out
}
