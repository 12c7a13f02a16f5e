package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"the-family-be/internal/entity"
	"the-family-be/internal/repository/contract"
	"the-family-be/internal/repository/specification"

	"github.com/google/uuid"
)

// MessageRepository is an in-memory implementation of the message contract.
// It backs service tests and local development without Postgres.
type MessageRepository struct {
	mu       sync.RWMutex
	messages []*entity.Message
}

func NewMessageRepository() contract.MessageRepository {
	return &MessageRepository{}
}

func (r *MessageRepository) Create(ctx context.Context, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if message.Id == uuid.Nil {
		message.Id = uuid.New()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	stored := *message
	r.messages = append(r.messages, &stored)
	return nil
}

func (r *MessageRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Message, error) {
	matches, err := r.FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[0], nil
}

func (r *MessageRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entity.Message
	for _, m := range r.messages {
		if matchesMessage(m, specs) {
			copied := *m
			out = append(out, &copied)
		}
	}
	sortTimeline(out)
	return out, nil
}

func (r *MessageRepository) FindRecent(ctx context.Context, sitDownId uuid.UUID, limit int) ([]*entity.Message, error) {
	all, err := r.FindAll(ctx, specification.BySitDownID{SitDownID: sitDownId})
	if err != nil {
		return nil, err
	}
	if len(all) > limit {
		all = all[len(all)-limit:]
	}
	return all, nil
}

func (r *MessageRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil {
		return 0, err
	}
	return int64(len(all)), nil
}

func matchesMessage(m *entity.Message, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if m.Id != s.ID {
				return false
			}
		case specification.BySitDownID:
			if m.SitDownId != s.SitDownID {
				return false
			}
		case specification.CreatedAfter:
			if !m.CreatedAt.After(s.After) {
				return false
			}
		}
	}
	return true
}

func sortTimeline(messages []*entity.Message) {
	sort.SliceStable(messages, func(i, j int) bool {
		if messages[i].CreatedAt.Equal(messages[j].CreatedAt) {
			return messages[i].Id.String() < messages[j].Id.String()
		}
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
}
