package app

import (
	"context"
	"errors"
	"fmt"

	"staff_reviews/internal/adapters/observability"
	"staff_reviews/internal/domain"
)

func (s *ReviewService) Create(ctx context.Context, in domain.ReviewInput) (domain.ReviewView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.store.Create(ctx, s.employees, in.Year, in.Summary, in.EmployeeID)
	observability.ObserveReviewOp("create", resultLabel(err))
	if err != nil {
		return domain.ReviewView{}, err
	}
	s.invalidate(ctx)
	return r.View(), nil
}

// Revise applies the patch through the validating setters and persists it.
// A rejected field leaves the instance alone; a failed write puts it back.
func (s *ReviewService) Revise(ctx context.Context, id int64, p domain.ReviewPatch) (domain.ReviewView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.find(ctx, "revise", id)
	if err != nil {
		return domain.ReviewView{}, err
	}

	before := *r
	if err := r.Apply(ctx, s.employees, p); err != nil {
		observability.ObserveReviewOp("revise", resultLabel(err))
		return domain.ReviewView{}, err
	}
	if err := s.store.Update(ctx, r); err != nil {
		*r = before
		observability.ObserveReviewOp("revise", resultLabel(err))
		return domain.ReviewView{}, err
	}
	observability.ObserveReviewOp("revise", "ok")
	s.invalidate(ctx, id)
	return r.View(), nil
}

func (s *ReviewService) Remove(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.find(ctx, "remove", id)
	if err != nil {
		return err
	}
	err = s.store.Delete(ctx, r)
	observability.ObserveReviewOp("remove", resultLabel(err))
	if err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *ReviewService) find(ctx context.Context, op string, id int64) (*domain.Review, error) {
	r, err := s.store.FindByID(ctx, id)
	if err != nil {
		observability.ObserveReviewOp(op, resultLabel(err))
		return nil, err
	}
	if r == nil {
		observability.ObserveReviewOp(op, "not_found")
		return nil, fmt.Errorf("review %d: %w", id, domain.ErrNotFound)
	}
	return r, nil
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
