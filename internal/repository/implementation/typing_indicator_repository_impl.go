package implementation

import (
	"context"

	"the-family-be/internal/entity"
	"the-family-be/internal/mapper"
	"the-family-be/internal/model"
	"the-family-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TypingIndicatorRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewTypingIndicatorRepository(db *gorm.DB) contract.TypingIndicatorRepository {
	return &TypingIndicatorRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *TypingIndicatorRepositoryImpl) Replace(ctx context.Context, indicator *entity.TypingIndicator) error {
	m := r.mapper.TypingIndicatorToModel(indicator)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sit_down_id = ? AND member_id = ?", m.SitDownId, m.MemberId).
			Delete(&model.TypingIndicator{}).Error; err != nil {
			return err
		}
		return tx.Create(m).Error
	})
	if err != nil {
		return err
	}
	*indicator = *r.mapper.TypingIndicatorToEntity(m)
	return nil
}

func (r *TypingIndicatorRepositoryImpl) Delete(ctx context.Context, sitDownId, memberId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("sit_down_id = ? AND member_id = ?", sitDownId, memberId).
		Delete(&model.TypingIndicator{}).Error
}

func (r *TypingIndicatorRepositoryImpl) FindBySitDown(ctx context.Context, sitDownId uuid.UUID) ([]*entity.TypingIndicator, error) {
	var models []*model.TypingIndicator
	err := r.db.WithContext(ctx).
		Where("sit_down_id = ?", sitDownId).
		Order("started_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.TypingIndicatorsToEntities(models), nil
}
