package contract

import (
	"context"

	"the-family-be/internal/entity"
	"the-family-be/internal/repository/specification"

	"github.com/google/uuid"
)

type CommissionContactRepository interface {
	Create(ctx context.Context, contact *entity.CommissionContact) error
	Update(ctx context.Context, contact *entity.CommissionContact) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CommissionContact, error)
	FindAllForUser(ctx context.Context, userId uuid.UUID) ([]*entity.CommissionContact, error)
	// AreConnected reports whether an accepted edge exists in either
	// direction between the two Dons.
	AreConnected(ctx context.Context, userId, otherUserId uuid.UUID) (bool, error)
}
