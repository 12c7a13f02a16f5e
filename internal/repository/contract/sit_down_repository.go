package contract

import (
	"context"

	"the-family-be/internal/entity"
	"the-family-be/internal/repository/specification"

	"github.com/google/uuid"
)

type SitDownRepository interface {
	Create(ctx context.Context, sitDown *entity.SitDown) error
	Update(ctx context.Context, sitDown *entity.SitDown) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SitDown, error)
	FindAllForUser(ctx context.Context, userId uuid.UUID) ([]*entity.SitDown, error)

	AddParticipant(ctx context.Context, participant *entity.SitDownParticipant) error
	RemoveParticipant(ctx context.Context, id uuid.UUID) error
	// FindParticipants preloads the joined profile or member row for each
	// participant so the roster can be rendered without extra queries.
	FindParticipants(ctx context.Context, sitDownId uuid.UUID) ([]*entity.SitDownParticipant, error)
	IsParticipant(ctx context.Context, sitDownId, userId uuid.UUID) (bool, error)
	// CountSeatsForMember reports how many sit-downs a member is seated at.
	CountSeatsForMember(ctx context.Context, memberId uuid.UUID) (int64, error)
}
