package core

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/flatfile/internal/config"
	"github.com/JonMunkholm/flatfile/internal/logging"
	"github.com/JonMunkholm/flatfile/internal/scan"
)

// Service parses flat files according to a configuration.
// It is safe for concurrent use.
type Service struct {
	cfg       *config.Config
	limiter   *ParseLimiter
	validator *RowValidator
}

// NewService creates a service from a validated configuration.
func NewService(cfg *config.Config) (*Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", scan.ErrInvalidOptions)
	}

	specs := make([]ColumnSpec, 0, len(cfg.CSV.Columns))
	for i, c := range cfg.CSV.Columns {
		typ, err := ParseColumnType(c.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: column %d: %w", scan.ErrInvalidOptions, i+1, err)
		}
		specs = append(specs, ColumnSpec{Name: c.Name, Type: typ, Required: c.Required})
	}

	return &Service{
		cfg:       cfg,
		limiter:   NewParseLimiter(cfg.Run.MaxConcurrent, cfg.Run.MaxWaitTime),
		validator: NewRowValidator(specs, cfg.CSV.ExpectedColumns),
	}, nil
}

// Config returns the service configuration.
func (s *Service) Config() *config.Config {
	return s.cfg
}

// Limiter returns the limiter bounding ParseFiles.
func (s *Service) Limiter() *ParseLimiter {
	return s.limiter
}

// parser builds the CSV parser for one file, logging under ctx's run id.
func (s *Service) parser(ctx context.Context, name string) scan.Parser[*scan.CSVDocument] {
	opts := s.cfg.ScanOptions()
	opts.Logger = logging.WithFields(ctx, "file", name)
	return scan.DelimitedParser(opts, s.cfg.CSV.DelimiterRune(), s.cfg.CSV.EscapeMarker, s.cfg.CSV.ExpectedColumns)
}

// ensureRunID returns ctx carrying a run id, generating one if absent.
func ensureRunID(ctx context.Context) (context.Context, string) {
	if id := logging.RunID(ctx); id != "" {
		return ctx, id
	}
	id := uuid.NewString()
	return logging.WithRunID(ctx, id), id
}

// ParseFile parses the file at path and inspects its rows.
//
// The returned result is never nil; on failure it carries the error and its
// user-facing code. Cancellation is only checked before the parse starts.
func (s *Service) ParseFile(ctx context.Context, path string) (*FileResult, error) {
	ctx, runID := ensureRunID(ctx)
	return s.parseFile(ctx, runID, path)
}

func (s *Service) parseFile(ctx context.Context, runID, path string) (*FileResult, error) {
	start := time.Now()
	result := &FileResult{RunID: runID, FileID: uuid.NewString(), Path: path}
	logger := logging.WithFields(ctx, "file", path, "file_id", result.FileID)

	if err := ctx.Err(); err != nil {
		return result.fail(err, start), err
	}

	doc, err := s.parser(ctx, path).ParseFile(path)
	if err != nil {
		logger.Warn("parse failed", "error", err, "code", MapError(err).Code)
		return result.fail(err, start), err
	}

	result.Document = doc
	result.Summary = Inspect(doc, s.validator)
	result.Duration = time.Since(start)

	logger.Info("file parsed",
		"lines", result.Summary.Lines,
		"invalid_rows", len(result.Summary.InvalidRows),
		"issues", result.Summary.IssueCount,
		"duration_ms", result.Duration.Milliseconds(),
	)
	return result, nil
}

// ParseReader parses r as if it were a file named name.
func (s *Service) ParseReader(ctx context.Context, name string, r io.Reader) (*FileResult, error) {
	ctx, runID := ensureRunID(ctx)
	start := time.Now()
	result := &FileResult{RunID: runID, FileID: uuid.NewString(), Path: name}

	if err := ctx.Err(); err != nil {
		return result.fail(err, start), err
	}

	p := s.parser(ctx, name)
	doc, err := scan.ParseReader(p.Options, r, name, p.Convert)
	if err != nil {
		return result.fail(err, start), err
	}

	result.Document = doc
	result.Summary = Inspect(doc, s.validator)
	result.Duration = time.Since(start)
	return result, nil
}

// ParseFiles parses paths in parallel, at most Run.MaxConcurrent at a time,
// under one run id. The whole run is bounded by Run.Timeout.
//
// Results are in input order. A failed file does not stop the others; its
// result carries the error. A file still waiting for a slot when ctx ends
// fails with the context error.
func (s *Service) ParseFiles(ctx context.Context, paths []string) *BatchResult {
	ctx, runID := ensureRunID(ctx)
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Run.Timeout)
	defer cancel()

	start := time.Now()
	logger := logging.FromContext(ctx)
	logger.Info("run started", "files", len(paths), "max_concurrent", s.limiter.MaxConcurrent())
	logger.Debug("parse slots", "status", s.limiter.Status())

	batch := &BatchResult{RunID: runID, Files: make([]*FileResult, len(paths))}

	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		go func() {
			defer wg.Done()

			if err := s.acquire(ctx, path); err != nil {
				res := &FileResult{RunID: runID, FileID: uuid.NewString(), Path: path}
				batch.Files[i] = res.fail(err, time.Now())
				return
			}
			defer s.limiter.Release()

			batch.Files[i], _ = s.parseFile(ctx, runID, path)
		}()
	}
	wg.Wait()

	for _, f := range batch.Files {
		if !f.OK() {
			batch.Failed++
		}
	}
	batch.Duration = time.Since(start)

	logger.Info("run finished",
		"files", len(paths),
		"failed", batch.Failed,
		"duration_ms", batch.Duration.Milliseconds(),
	)
	return batch
}

// acquire takes a parse slot, waiting only when none is free.
func (s *Service) acquire(ctx context.Context, path string) error {
	if s.limiter.TryAcquire() {
		return nil
	}
	start := time.Now()
	logging.WithFields(ctx, "file", path).Debug("waiting for parse slot", "status", s.limiter.Status())
	if err := s.limiter.Acquire(ctx); err != nil {
		return err
	}
	logging.WithFields(ctx, "file", path).Debug("parse slot acquired", "waited_ms", time.Since(start).Milliseconds())
	return nil
}

func (r *FileResult) fail(err error, start time.Time) *FileResult {
	r.err = err
	r.Error = err.Error()
	r.Code = MapError(err).Code
	r.Duration = time.Since(start)
	return r
}
