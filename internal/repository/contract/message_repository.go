package contract

import (
	"context"

	"the-family-be/internal/entity"
	"the-family-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Message, error)
	// FindAll returns messages in timeline order with sender rows preloaded.
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error)
	// FindRecent returns the newest limit messages of a sit-down, oldest
	// first. Used to build provider context windows.
	FindRecent(ctx context.Context, sitDownId uuid.UUID, limit int) ([]*entity.Message, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
