package implementation

import (
	"context"
	"errors"

	"the-family-be/internal/entity"
	"the-family-be/internal/mapper"
	"the-family-be/internal/model"
	"the-family-be/internal/repository/contract"
	"the-family-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SitDownRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SitDownMapper
}

func NewSitDownRepository(db *gorm.DB) contract.SitDownRepository {
	return &SitDownRepositoryImpl{
		db:     db,
		mapper: mapper.NewSitDownMapper(),
	}
}

func (r *SitDownRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SitDownRepositoryImpl) Create(ctx context.Context, sitDown *entity.SitDown) error {
	m := r.mapper.ToModel(sitDown)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*sitDown = *r.mapper.ToEntity(m)
	return nil
}

func (r *SitDownRepositoryImpl) Update(ctx context.Context, sitDown *entity.SitDown) error {
	m := r.mapper.ToModel(sitDown)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*sitDown = *r.mapper.ToEntity(m)
	return nil
}

func (r *SitDownRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sit_down_id = ?", id).Delete(&model.SitDownParticipant{}).Error; err != nil {
			return err
		}
		if err := tx.Where("sit_down_id = ?", id).Delete(&model.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("sit_down_id = ?", id).Delete(&model.TypingIndicator{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.SitDown{}, id).Error
	})
}

func (r *SitDownRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SitDown, error) {
	var m model.SitDown
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SitDownRepositoryImpl) FindAllForUser(ctx context.Context, userId uuid.UUID) ([]*entity.SitDown, error) {
	var models []*model.SitDown
	err := r.db.WithContext(ctx).
		Joins("JOIN sit_down_participants p ON p.sit_down_id = sit_downs.id").
		Where("p.user_id = ?", userId).
		Order("sit_downs.created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *SitDownRepositoryImpl) AddParticipant(ctx context.Context, participant *entity.SitDownParticipant) error {
	m := r.mapper.ParticipantToModel(participant)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*participant = *r.mapper.ParticipantToEntity(m)
	return nil
}

func (r *SitDownRepositoryImpl) RemoveParticipant(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.SitDownParticipant{}, id).Error
}

func (r *SitDownRepositoryImpl) FindParticipants(ctx context.Context, sitDownId uuid.UUID) ([]*entity.SitDownParticipant, error) {
	var models []*model.SitDownParticipant
	err := r.db.WithContext(ctx).
		Preload("Profile").
		Preload("Member").
		Where("sit_down_id = ?", sitDownId).
		Order("added_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ParticipantsToEntities(models), nil
}

func (r *SitDownRepositoryImpl) IsParticipant(ctx context.Context, sitDownId, userId uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.SitDownParticipant{}).
		Where("sit_down_id = ? AND user_id = ?", sitDownId, userId).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *SitDownRepositoryImpl) CountSeatsForMember(ctx context.Context, memberId uuid.UUID) (int64, error) {
	var count int64
	query := r.applySpecifications(
		r.db.WithContext(ctx).Model(&model.SitDownParticipant{}),
		specification.ByMemberID{MemberID: memberId},
	)
	err := query.Count(&count).Error
	return count, err
}
