package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"the-family-be/internal/entity"
	"the-family-be/internal/repository/contract"

	"github.com/google/uuid"
)

type indicatorKey struct {
	sitDownId uuid.UUID
	memberId  uuid.UUID
}

// TypingIndicatorRepository is an in-memory implementation of the typing
// indicator contract. The map key enforces one indicator per sit-down and
// member pair, matching the unique index on the table.
type TypingIndicatorRepository struct {
	mu         sync.RWMutex
	indicators map[indicatorKey]*entity.TypingIndicator
}

func NewTypingIndicatorRepository() contract.TypingIndicatorRepository {
	return &TypingIndicatorRepository{
		indicators: make(map[indicatorKey]*entity.TypingIndicator),
	}
}

func (r *TypingIndicatorRepository) Replace(ctx context.Context, indicator *entity.TypingIndicator) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if indicator.Id == uuid.Nil {
		indicator.Id = uuid.New()
	}
	if indicator.StartedAt.IsZero() {
		indicator.StartedAt = time.Now()
	}
	stored := *indicator
	r.indicators[indicatorKey{indicator.SitDownId, indicator.MemberId}] = &stored
	return nil
}

func (r *TypingIndicatorRepository) Delete(ctx context.Context, sitDownId, memberId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.indicators, indicatorKey{sitDownId, memberId})
	return nil
}

func (r *TypingIndicatorRepository) FindBySitDown(ctx context.Context, sitDownId uuid.UUID) ([]*entity.TypingIndicator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entity.TypingIndicator
	for key, ind := range r.indicators {
		if key.sitDownId == sitDownId {
			copied := *ind
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartedAt.Before(out[j].StartedAt)
	})
	return out, nil
}
