package domain

import (
	"context"
	"fmt"
)

const MinReviewYear = 2000

// Review is one performance-review record. Fields are only reachable through
// the setters so every assignment is validated.
type Review struct {
	id         *int64
	year       int
	summary    string
	employeeID int64
}

// ReviewView is the serializable snapshot used by caches and the HTTP API.
type ReviewView struct {
	ID         int64  `json:"id"`
	Year       int    `json:"year"`
	Summary    string `json:"summary"`
	EmployeeID int64  `json:"employee_id"`
}

// NewReview builds an unsaved review. The employee reference is checked
// against employees before the review is returned.
func NewReview(ctx context.Context, employees EmployeeFinder, year int, summary string, employeeID int64) (*Review, error) {
	r := &Review{}
	if err := r.SetYear(year); err != nil {
		return nil, err
	}
	if err := r.SetSummary(summary); err != nil {
		return nil, err
	}
	if err := r.SetEmployeeID(ctx, employees, employeeID); err != nil {
		return nil, err
	}
	return r, nil
}

// RestoreReview rebuilds a review from a stored row without re-validating it.
func RestoreReview(id int64, year int, summary string, employeeID int64) *Review {
	return &Review{id: &id, year: year, summary: summary, employeeID: employeeID}
}

// ID returns the primary key and whether one has been assigned.
func (r *Review) ID() (int64, bool) {
	if r.id == nil {
		return 0, false
	}
	return *r.id, true
}

func (r *Review) Year() int         { return r.year }
func (r *Review) Summary() string   { return r.summary }
func (r *Review) EmployeeID() int64 { return r.employeeID }
func (r *Review) IsPersisted() bool { return r.id != nil }

func (r *Review) SetYear(year int) error {
	if year < MinReviewYear {
		return invalid("year", fmt.Sprintf("must be greater than or equal to %d", MinReviewYear))
	}
	r.year = year
	return nil
}

func (r *Review) SetSummary(summary string) error {
	if len(summary) == 0 {
		return invalid("summary", "must be a non-empty string")
	}
	r.summary = summary
	return nil
}

// SetEmployeeID assigns the employee reference after confirming it exists.
// Lookup failures are returned as-is; only a missing employee is a
// validation error.
func (r *Review) SetEmployeeID(ctx context.Context, employees EmployeeFinder, employeeID int64) error {
	if employees == nil {
		return fmt.Errorf("employee_id: no employee finder configured")
	}
	e, err := employees.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return fmt.Errorf("lookup employee %d: %w", employeeID, err)
	}
	if e == nil {
		return invalid("employee_id", fmt.Sprintf("employee %d does not exist", employeeID))
	}
	r.employeeID = employeeID
	return nil
}

// Apply runs the patch through the setters as one change: if any field is
// rejected, r is left exactly as it was.
func (r *Review) Apply(ctx context.Context, employees EmployeeFinder, p ReviewPatch) error {
	next := *r
	if p.Year != nil {
		if err := next.SetYear(*p.Year); err != nil {
			return err
		}
	}
	if p.Summary != nil {
		if err := next.SetSummary(*p.Summary); err != nil {
			return err
		}
	}
	if p.EmployeeID != nil {
		if err := next.SetEmployeeID(ctx, employees, *p.EmployeeID); err != nil {
			return err
		}
	}
	*r = next
	return nil
}

// AssignID is for ReviewStore implementations only: it records the key of
// the row just inserted.
func (r *Review) AssignID(id int64) { r.id = &id }

// ClearID is for ReviewStore implementations only: the row is gone.
func (r *Review) ClearID() { r.id = nil }

func (r *Review) View() ReviewView {
	id, _ := r.ID()
	return ReviewView{ID: id, Year: r.year, Summary: r.summary, EmployeeID: r.employeeID}
}

func (r *Review) String() string {
	id := "None"
	if v, ok := r.ID(); ok {
		id = fmt.Sprint(v)
	}
	return fmt.Sprintf("<Review %s: %d, %s, Employee: %d>", id, r.year, r.summary, r.employeeID)
}
