package contract

import (
	"context"

	"the-family-be/internal/entity"

	"github.com/google/uuid"
)

type TypingIndicatorRepository interface {
	// Replace deletes any indicator for the same sit-down and member, then
	// inserts a fresh one. At most one indicator per pair exists after it.
	Replace(ctx context.Context, indicator *entity.TypingIndicator) error
	Delete(ctx context.Context, sitDownId, memberId uuid.UUID) error
	FindBySitDown(ctx context.Context, sitDownId uuid.UUID) ([]*entity.TypingIndicator, error)
}
