package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/goccy/go-yaml"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"staff_reviews/internal/domain"
)

// importFile is the on-disk layout:
//
//	reviews:
//	  - year: 2023
//	    summary: Good work
//	    employee_id: 1
type importFile struct {
	Reviews []domain.ReviewInput `yaml:"reviews"`
}

func ParseImportFile(r io.Reader) ([]domain.ReviewInput, error) {
	var f importFile
	if err := yaml.NewDecoder(r, yaml.DisallowUnknownField()).Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("parse import file: %w", err)
	}
	return f.Reviews, nil
}

type ImportFailure struct {
	Index int
	Err   error
}

type ImportReport struct {
	RunID    string
	Total    int
	Created  int
	Failures []ImportFailure
}

// ImportService loads reviews in bulk. Employee lookups run concurrently,
// bounded by workers; reviews are then created one at a time in input order.
type ImportService struct {
	store     domain.ReviewStore
	employees domain.EmployeeFinder
	workers   int
}

func NewImportService(s domain.ReviewStore, e domain.EmployeeFinder, workers int) *ImportService {
	if workers <= 0 {
		workers = 1
	}
	return &ImportService{store: s, employees: e, workers: workers}
}

// Import skips records that fail validation and stops at the first storage
// or lookup error.
func (s *ImportService) Import(ctx context.Context, records []domain.ReviewInput) (ImportReport, error) {
	rep := ImportReport{RunID: uuid.NewString(), Total: len(records)}
	logger := log.With().Str("run_id", rep.RunID).Logger()

	known, err := s.prefetch(ctx, records)
	if err != nil {
		return rep, err
	}
	logger.Info().Int("records", len(records)).Int("employees", len(known)).Msg("employee prefetch done")

	for i, in := range records {
		if _, err := s.store.Create(ctx, known, in.Year, in.Summary, in.EmployeeID); err != nil {
			if errors.Is(err, domain.ErrValidation) {
				logger.Warn().Int("index", i).Err(err).Msg("review skipped")
				rep.Failures = append(rep.Failures, ImportFailure{Index: i, Err: err})
				continue
			}
			return rep, fmt.Errorf("record %d: %w", i, err)
		}
		rep.Created++
	}
	return rep, nil
}

// prefetch resolves every distinct employee id once.
func (s *ImportService) prefetch(ctx context.Context, records []domain.ReviewInput) (resolvedEmployees, error) {
	seen := make(map[int64]struct{}, len(records))
	for _, in := range records {
		seen[in.EmployeeID] = struct{}{}
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
		out      = make(resolvedEmployees, len(seen))
		sem      = semaphore.NewWeighted(int64(s.workers))
	)
	for id := range seen {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return nil, err
		}
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			defer sem.Release(1)

			e, err := s.employees.FindEmployeeByID(ctx, id)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("lookup employee %d: %w", id, err)
				}
				return
			}
			out[id] = e
		}(id)
	}
	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

// resolvedEmployees answers from the prefetch; a nil entry means absent.
type resolvedEmployees map[int64]*domain.Employee

func (r resolvedEmployees) FindEmployeeByID(_ context.Context, id int64) (*domain.Employee, error) {
	e, ok := r[id]
	if !ok {
		return nil, fmt.Errorf("employee %d was not prefetched", id)
	}
	return e, nil
}
