package contract

import (
	"context"
	"errors"

	"the-family-be/internal/entity"
	"the-family-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ErrDuplicate surfaces a unique constraint violation so services can
// answer with a conflict instead of a generic failure.
var ErrDuplicate = errors.New("record already exists")

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByIds(ctx context.Context, ids []uuid.UUID) ([]*entity.User, error)

	CreateRefreshToken(ctx context.Context, token *entity.UserRefreshToken) error
	FindRefreshToken(ctx context.Context, tokenHash string) (*entity.UserRefreshToken, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
}
