package domain_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staff_reviews/internal/domain"
)

type staticEmployees map[int64]domain.Employee

func (s staticEmployees) FindEmployeeByID(_ context.Context, id int64) (*domain.Employee, error) {
	e, ok := s[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

type brokenEmployees struct{}

func (brokenEmployees) FindEmployeeByID(context.Context, int64) (*domain.Employee, error) {
	return nil, errors.New("directory down")
}

var employees = staticEmployees{7: {ID: 7, Name: "Lee", JobTitle: "Engineer"}}

func TestNewReview_Valid(t *testing.T) {
	r, err := domain.NewReview(context.Background(), employees, 2023, "Good work", 7)
	require.NoError(t, err)

	_, ok := r.ID()
	assert.False(t, ok)
	assert.Equal(t, 2023, r.Year())
	assert.Equal(t, "Good work", r.Summary())
	assert.Equal(t, int64(7), r.EmployeeID())
	assert.Equal(t, "<Review None: 2023, Good work, Employee: 7>", r.String())
}

func TestNewReview_Year(t *testing.T) {
	for _, year := range []int{-1, 0, 1999} {
		_, err := domain.NewReview(context.Background(), employees, year, "ok", 7)
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve, "year %d", year)
		assert.Equal(t, "year", ve.Field)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
	for _, year := range []int{2000, 2024, 3000} {
		_, err := domain.NewReview(context.Background(), employees, year, "ok", 7)
		assert.NoError(t, err, "year %d", year)
	}
}

func TestNewReview_Summary(t *testing.T) {
	_, err := domain.NewReview(context.Background(), employees, 2023, "", 7)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "summary", ve.Field)

	_, err = domain.NewReview(context.Background(), employees, 2023, " ", 7)
	assert.NoError(t, err)
}

func TestNewReview_UnknownEmployee(t *testing.T) {
	_, err := domain.NewReview(context.Background(), employees, 2023, "ok", 99)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "employee_id", ve.Field)
}

func TestSetEmployeeID_LookupFailureIsNotValidation(t *testing.T) {
	r, err := domain.NewReview(context.Background(), employees, 2023, "ok", 7)
	require.NoError(t, err)

	err = r.SetEmployeeID(context.Background(), brokenEmployees{}, 8)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, int64(7), r.EmployeeID())
}

func TestSetters_KeepPreviousValueOnFailure(t *testing.T) {
	r, err := domain.NewReview(context.Background(), employees, 2023, "Good work", 7)
	require.NoError(t, err)

	assert.Error(t, r.SetYear(1999))
	assert.Error(t, r.SetSummary(""))
	assert.Error(t, r.SetEmployeeID(context.Background(), employees, 42))

	assert.Equal(t, 2023, r.Year())
	assert.Equal(t, "Good work", r.Summary())
	assert.Equal(t, int64(7), r.EmployeeID())
}

func TestRestoreReview_SkipsValidation(t *testing.T) {
	r := domain.RestoreReview(5, 1990, "", 404)
	id, ok := r.ID()
	require.True(t, ok)
	assert.Equal(t, int64(5), id)
	assert.Equal(t, 1990, r.Year())
	assert.Equal(t, domain.ReviewView{ID: 5, Year: 1990, EmployeeID: 404}, r.View())
	assert.Equal(t, "<Review 5: 1990, , Employee: 404>", r.String())

	r.ClearID()
	assert.False(t, r.IsPersisted())
}

func TestApply_AllOrNothing(t *testing.T) {
	ctx := context.Background()
	staff := staticEmployees{7: {ID: 7}, 8: {ID: 8}}
	r, err := domain.NewReview(ctx, staff, 2023, "Good work", 7)
	require.NoError(t, err)

	year, empty := 2024, ""
	err = r.Apply(ctx, staff, domain.ReviewPatch{Year: &year, Summary: &empty})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "summary", ve.Field)
	assert.Equal(t, 2023, r.Year(), "year must not change when another field is rejected")

	summary, emp := "Great work", int64(8)
	require.NoError(t, r.Apply(ctx, staff, domain.ReviewPatch{Year: &year, Summary: &summary, EmployeeID: &emp}))
	assert.Equal(t, domain.ReviewView{Year: 2024, Summary: "Great work", EmployeeID: 8}, r.View())
}
