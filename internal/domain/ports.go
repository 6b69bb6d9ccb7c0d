package domain

import "context"

// ReviewStore persists reviews. Implementations own the identity map.
type ReviewStore interface {
	CreateTable(ctx context.Context) error
	DropTable(ctx context.Context) error

	Save(ctx context.Context, r *Review) error
	Create(ctx context.Context, employees EmployeeFinder, year int, summary string, employeeID int64) (*Review, error)
	Update(ctx context.Context, r *Review) error
	Delete(ctx context.Context, r *Review) error

	FindByID(ctx context.Context, id int64) (*Review, error)
	GetAll(ctx context.Context) ([]*Review, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// ReviewInput carries raw attributes from callers (HTTP, import files).
type ReviewInput struct {
	Year       int    `json:"year" yaml:"year"`
	Summary    string `json:"summary" yaml:"summary"`
	EmployeeID int64  `json:"employee_id" yaml:"employee_id"`
}

// ReviewPatch holds optional attribute changes; nil fields are left alone.
type ReviewPatch struct {
	Year       *int    `json:"year,omitempty"`
	Summary    *string `json:"summary,omitempty"`
	EmployeeID *int64  `json:"employee_id,omitempty"`
}
