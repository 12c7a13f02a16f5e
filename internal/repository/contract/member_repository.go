package contract

import (
	"context"

	"the-family-be/internal/entity"
	"the-family-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MemberRepository interface {
	Create(ctx context.Context, member *entity.Member) error
	Update(ctx context.Context, member *entity.Member) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Member, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Member, error)
	FindByIds(ctx context.Context, ids []uuid.UUID) ([]*entity.Member, error)
}
