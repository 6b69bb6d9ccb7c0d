package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"staff_reviews/internal/domain"
)

// EmployeeStore is the table-backed employee collaborator. It exists so the
// reviews foreign key has a target and reviews can be validated without a
// remote directory.
type EmployeeStore struct {
	db      *sql.DB
	dialect Dialect
}

var _ domain.EmployeeFinder = (*EmployeeStore)(nil)

func NewEmployeeStore(db *sql.DB, d Dialect) *EmployeeStore {
	return &EmployeeStore{db: db, dialect: d}
}

func (s *EmployeeStore) CreateTable(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.createEmployeeSQL()); err != nil {
		return fmt.Errorf("create employee table: %w", err)
	}
	return nil
}

func (s *EmployeeStore) DropTable(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, dropEmployeeSQL); err != nil {
		return fmt.Errorf("drop employee table: %w", err)
	}
	return nil
}

func (s *EmployeeStore) Create(ctx context.Context, name, jobTitle string) (domain.Employee, error) {
	res, err := s.db.ExecContext(ctx, insertEmployeeSQL, name, jobTitle)
	if err != nil {
		return domain.Employee{}, fmt.Errorf("insert employee: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Employee{}, fmt.Errorf("insert employee: last insert id: %w", err)
	}
	return domain.Employee{ID: id, Name: name, JobTitle: jobTitle}, nil
}

func (s *EmployeeStore) FindEmployeeByID(ctx context.Context, id int64) (*domain.Employee, error) {
	var (
		e             domain.Employee
		name, jobName sql.NullString
	)
	err := s.db.QueryRowContext(ctx, selectEmployeeByIDSQL, id).Scan(&e.ID, &name, &jobName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find employee %d: %w", id, err)
	}
	e.Name, e.JobTitle = name.String, jobName.String
	return &e, nil
}
