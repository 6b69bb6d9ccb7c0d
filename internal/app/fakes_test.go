package app_test

import (
	"context"
	"errors"
	"sync/atomic"

	"staff_reviews/internal/domain"
)

// ---- fakes ----

// fakeStore keeps rows as views and hands out one live instance per id,
// like the SQL mapper's identity map.
type fakeStore struct {
	rows    map[int64]domain.ReviewView
	live    map[int64]*domain.Review
	nextID  int64
	failErr error // returned by writes when set
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: map[int64]domain.ReviewView{}, live: map[int64]*domain.Review{}}
}

func (f *fakeStore) instance(v domain.ReviewView) *domain.Review {
	if r, ok := f.live[v.ID]; ok {
		return r
	}
	r := domain.RestoreReview(v.ID, v.Year, v.Summary, v.EmployeeID)
	f.live[v.ID] = r
	return r
}

func (f *fakeStore) CreateTable(context.Context) error { return nil }
func (f *fakeStore) DropTable(context.Context) error   { return nil }

func (f *fakeStore) Save(_ context.Context, r *domain.Review) error {
	if f.failErr != nil {
		return f.failErr
	}
	f.nextID++
	r.AssignID(f.nextID)
	f.rows[f.nextID] = r.View()
	f.live[f.nextID] = r
	return nil
}

func (f *fakeStore) Create(ctx context.Context, e domain.EmployeeFinder, year int, summary string, employeeID int64) (*domain.Review, error) {
	r, err := domain.NewReview(ctx, e, year, summary, employeeID)
	if err != nil {
		return nil, err
	}
	if err := f.Save(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (f *fakeStore) Update(_ context.Context, r *domain.Review) error {
	id, ok := r.ID()
	if !ok {
		return domain.ErrNotPersisted
	}
	if f.failErr != nil {
		return f.failErr
	}
	f.rows[id] = r.View()
	return nil
}

func (f *fakeStore) Delete(_ context.Context, r *domain.Review) error {
	id, ok := r.ID()
	if !ok {
		return domain.ErrNotPersisted
	}
	delete(f.rows, id)
	delete(f.live, id)
	r.ClearID()
	return nil
}

func (f *fakeStore) FindByID(_ context.Context, id int64) (*domain.Review, error) {
	v, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	return f.instance(v), nil
}

func (f *fakeStore) GetAll(context.Context) ([]*domain.Review, error) {
	var out []*domain.Review
	for _, v := range f.rows {
		out = append(out, f.instance(v))
	}
	return out, nil
}

type fakeCache struct {
	store map[string]any
	dels  []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.store == nil {
		return false, nil
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *domain.ReviewView:
		*d = v.(domain.ReviewView)
	case *[]domain.ReviewView:
		*d = v.([]domain.ReviewView)
	}
	return true, nil
}
func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}
func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.dels = append(c.dels, key)
	delete(c.store, key)
	return nil
}

type fakeEmployees struct {
	known map[int64]bool
	calls int32
	err   error
}

func (f *fakeEmployees) FindEmployeeByID(_ context.Context, id int64) (*domain.Employee, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.err != nil {
		return nil, f.err
	}
	if !f.known[id] {
		return nil, nil
	}
	return &domain.Employee{ID: id}, nil
}

var errDisk = errors.New("disk full")

func ptr[T any](v T) *T { return &v }
