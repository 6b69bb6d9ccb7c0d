package domain

import "context"

type Employee struct {
	ID       int64
	Name     string
	JobTitle string
}

// EmployeeFinder resolves employees by primary key.
// A missing employee is reported as (nil, nil); errors are lookup failures.
type EmployeeFinder interface {
	FindEmployeeByID(ctx context.Context, id int64) (*Employee, error)
}
