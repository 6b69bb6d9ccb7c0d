package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"staff_reviews/internal/adapters/observability"
	"staff_reviews/internal/domain"
)

const allReviewsKey = "reviews:all"

func reviewKey(id int64) string { return fmt.Sprintf("review:%d", id) }

// ReviewService is what the HTTP API talks to. Reads go through the cache;
// every write evicts the affected keys. Store access is serialized because
// the store's identity map is not safe for concurrent use.
type ReviewService struct {
	mu sync.Mutex

	store     domain.ReviewStore
	employees domain.EmployeeFinder
	cache     domain.Cache
	cacheTTL  time.Duration
}

// NewReviewService wires the service. cache may be nil.
func NewReviewService(s domain.ReviewStore, e domain.EmployeeFinder, c domain.Cache, ttl time.Duration) *ReviewService {
	return &ReviewService{store: s, employees: e, cache: c, cacheTTL: ttl}
}

func (s *ReviewService) Get(ctx context.Context, id int64) (domain.ReviewView, error) {
	key := reviewKey(id)
	var v domain.ReviewView
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &v); ok {
			return v, nil
		}
	}

	// fill under the lock so a concurrent write cannot be overtaken by a stale set
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.store.FindByID(ctx, id)
	if err != nil {
		observability.ObserveReviewOp("get", resultLabel(err))
		return domain.ReviewView{}, err
	}
	if r == nil {
		observability.ObserveReviewOp("get", "not_found")
		return domain.ReviewView{}, fmt.Errorf("review %d: %w", id, domain.ErrNotFound)
	}
	observability.ObserveReviewOp("get", "ok")
	v = r.View()
	s.cacheSet(ctx, key, v)
	return v, nil
}

func (s *ReviewService) List(ctx context.Context) ([]domain.ReviewView, error) {
	var out []domain.ReviewView
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, allReviewsKey, &out); ok {
			return out, nil
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rs, err := s.store.GetAll(ctx)
	observability.ObserveReviewOp("list", resultLabel(err))
	if err != nil {
		return nil, err
	}
	out = make([]domain.ReviewView, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.View())
	}
	s.cacheSet(ctx, allReviewsKey, out)
	return out, nil
}

func (s *ReviewService) cacheSet(ctx context.Context, key string, v any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, v, int(s.cacheTTL.Seconds())); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
}

func (s *ReviewService) invalidate(ctx context.Context, ids ...int64) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, allReviewsKey)
	for _, id := range ids {
		_ = s.cache.Del(ctx, reviewKey(id))
	}
}
