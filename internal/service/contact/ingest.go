package contact

import (
	"context"
	"errors"
	"fmt"

	"github.com/boostify/outreach/internal/domain"
	"github.com/boostify/outreach/internal/pkg/distlock"
	"github.com/boostify/outreach/internal/pkg/logger"
	"github.com/boostify/outreach/internal/pkg/metrics"
)

// ImportResult aggregates one import run. Total counts every record seen.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	Errors   int `json:"errors"`
	Total    int `json:"total"`
}

// Import reads source and inserts every new contact in it. Records without
// an email or a name, and records whose email already exists, are skipped.
// A failed insert is counted and the run continues.
//
// Concurrent imports of the same source are refused with
// ErrImportInProgress.
func (s *Service) Import(ctx context.Context, source string) (*ImportResult, error) {
	if s.locks == nil {
		return s.importSource(ctx, source)
	}

	var res *ImportResult
	err := distlock.Run(ctx, s.locks("import:"+source, s.lockTTL), func(ctx context.Context) error {
		var err error
		res, err = s.importSource(ctx, source)
		return err
	})
	if errors.Is(err, distlock.ErrNotAcquired) {
		return nil, ErrImportInProgress
	}
	return res, err
}

func (s *Service) importSource(ctx context.Context, source string) (*ImportResult, error) {
	rc, name, err := s.openSource(ctx, source)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	records, err := parseSource(rc, name)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}

	log := logger.With("source", name)
	log.Info("import started", "records", len(records), "batch_size", s.batchSize)

	res := &ImportResult{}
	for start := 0; start < len(records); start += s.batchSize {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		end := min(start+s.batchSize, len(records))
		for _, rec := range records[start:end] {
			res.Total++
			switch s.ingest(ctx, rec, name) {
			case outcomeImported:
				res.Imported++
			case outcomeSkipped:
				res.Skipped++
			default:
				res.Errors++
			}
		}
		log.Info("import progress", "processed", end, "of", len(records),
			"imported", res.Imported, "skipped", res.Skipped, "errors", res.Errors)
	}

	metrics.RecordImport(res.Imported, res.Skipped, res.Errors)
	log.Info("import finished", "imported", res.Imported, "skipped", res.Skipped,
		"errors", res.Errors, "total", res.Total)
	return res, nil
}

type outcome int

const (
	outcomeImported outcome = iota
	outcomeSkipped
	outcomeError
)

func (s *Service) ingest(ctx context.Context, rec Record, sourceName string) outcome {
	if !rec.Valid() {
		return outcomeSkipped
	}
	c := rec.Contact()

	exists, err := s.repo.ExistsByEmail(ctx, c.Email)
	if err != nil {
		logger.Error("import lookup failed", "email", c.Email, "error", err)
		return outcomeError
	}
	if exists {
		return outcomeSkipped
	}

	c.Phone = normalizePhone(rec.Phone, rec.Country)
	c.Category = ClassifyRecord(rec)
	c.Source = domain.ContactSourceImport
	c.SourceDetails = sourceName

	if err := s.repo.Create(ctx, c); err != nil {
		// another writer inserted the same email after our lookup
		if errors.Is(err, ErrDuplicateEmail) {
			return outcomeSkipped
		}
		logger.Error("import insert failed", "email", c.Email, "error", err)
		return outcomeError
	}
	return outcomeImported
}
