package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"staff_reviews/internal/domain"
	"staff_reviews/internal/identity"
)

// ReviewMapper maps domain.Review to the reviews table and keeps the
// identity map in step with it. Statements run in autocommit mode, so each
// write is committed by the time ExecContext returns.
type ReviewMapper struct {
	db      *sql.DB
	dialect Dialect
	ids     *identity.Map[*domain.Review]
}

var _ domain.ReviewStore = (*ReviewMapper)(nil)

// NewReviewMapper wires a mapper to db. A nil ids gets a fresh map.
func NewReviewMapper(db *sql.DB, d Dialect, ids *identity.Map[*domain.Review]) *ReviewMapper {
	if ids == nil {
		ids = identity.New[*domain.Review]()
	}
	return &ReviewMapper{db: db, dialect: d, ids: ids}
}

func (m *ReviewMapper) Identity() *identity.Map[*domain.Review] { return m.ids }

func (m *ReviewMapper) CreateTable(ctx context.Context) error {
	if _, err := m.db.ExecContext(ctx, m.dialect.createReviewsSQL()); err != nil {
		return fmt.Errorf("create reviews table: %w", err)
	}
	return nil
}

func (m *ReviewMapper) DropTable(ctx context.Context) error {
	if _, err := m.db.ExecContext(ctx, dropReviewsSQL); err != nil {
		return fmt.Errorf("drop reviews table: %w", err)
	}
	return nil
}

// Save inserts a new row from r, assigns the generated id and registers r.
func (m *ReviewMapper) Save(ctx context.Context, r *domain.Review) error {
	res, err := m.db.ExecContext(ctx, insertReviewSQL, r.Year(), r.Summary(), r.EmployeeID())
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert review: last insert id: %w", err)
	}

	// a re-saved instance moves to its new key
	if old, ok := r.ID(); ok {
		if cur, ok := m.ids.Get(old); ok && cur == r {
			m.ids.Delete(old)
		}
	}
	r.AssignID(id)
	m.ids.Put(id, r)
	return nil
}

func (m *ReviewMapper) Create(ctx context.Context, employees domain.EmployeeFinder, year int, summary string, employeeID int64) (*domain.Review, error) {
	r, err := domain.NewReview(ctx, employees, year, summary, employeeID)
	if err != nil {
		return nil, err
	}
	if err := m.Save(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (m *ReviewMapper) Update(ctx context.Context, r *domain.Review) error {
	id, ok := r.ID()
	if !ok {
		return fmt.Errorf("cannot update without id: %w", domain.ErrNotPersisted)
	}
	if _, err := m.db.ExecContext(ctx, updateReviewSQL, r.Year(), r.Summary(), r.EmployeeID(), id); err != nil {
		return fmt.Errorf("update review %d: %w", id, err)
	}
	return nil
}

// Delete removes the row, evicts r from the identity map and clears its id.
func (m *ReviewMapper) Delete(ctx context.Context, r *domain.Review) error {
	id, ok := r.ID()
	if !ok {
		return fmt.Errorf("cannot delete without id: %w", domain.ErrNotPersisted)
	}
	if _, err := m.db.ExecContext(ctx, deleteReviewSQL, id); err != nil {
		return fmt.Errorf("delete review %d: %w", id, err)
	}
	m.ids.Delete(id)
	r.ClearID()
	return nil
}

// FindByID returns (nil, nil) when no row has the given id.
func (m *ReviewMapper) FindByID(ctx context.Context, id int64) (*domain.Review, error) {
	row, err := scanReview(m.db.QueryRowContext(ctx, selectReviewByIDSQL, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find review %d: %w", id, err)
	}
	return m.instanceFromDB(row), nil
}

func (m *ReviewMapper) GetAll(ctx context.Context) ([]*domain.Review, error) {
	rows, err := m.db.QueryContext(ctx, selectReviewsSQL)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var out []*domain.Review
	for rows.Next() {
		row, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("list reviews: %w", err)
		}
		out = append(out, m.instanceFromDB(row))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return out, nil
}

// ---- row reconstruction ----

type reviewRow struct {
	id         int64
	year       sql.NullInt64
	summary    sql.NullString
	employeeID sql.NullInt64
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReview(s scanner) (*reviewRow, error) {
	var row reviewRow
	if err := s.Scan(&row.id, &row.year, &row.summary, &row.employeeID); err != nil {
		return nil, err
	}
	return &row, nil
}

// instanceFromDB trusts the stored row: no validation, no employee lookup.
// An id that is already mapped returns the live instance untouched, so
// unsaved changes on it survive reads until the caller updates.
func (m *ReviewMapper) instanceFromDB(row *reviewRow) *domain.Review {
	if row == nil {
		return nil
	}
	if r, ok := m.ids.Get(row.id); ok {
		return r
	}
	r := domain.RestoreReview(row.id, int(row.year.Int64), row.summary.String, row.employeeID.Int64)
	m.ids.Put(row.id, r)
	return r
}
