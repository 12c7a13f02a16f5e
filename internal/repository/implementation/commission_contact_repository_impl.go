package implementation

import (
	"context"
	"errors"

	"the-family-be/internal/constant"
	"the-family-be/internal/entity"
	"the-family-be/internal/mapper"
	"the-family-be/internal/model"
	"the-family-be/internal/repository/contract"
	"the-family-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommissionContactRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CommissionContactMapper
}

func NewCommissionContactRepository(db *gorm.DB) contract.CommissionContactRepository {
	return &CommissionContactRepositoryImpl{
		db:     db,
		mapper: mapper.NewCommissionContactMapper(),
	}
}

func (r *CommissionContactRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CommissionContactRepositoryImpl) Create(ctx context.Context, contact *entity.CommissionContact) error {
	m := r.mapper.ToModel(contact)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*contact = *r.mapper.ToEntity(m)
	return nil
}

func (r *CommissionContactRepositoryImpl) Update(ctx context.Context, contact *entity.CommissionContact) error {
	m := r.mapper.ToModel(contact)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*contact = *r.mapper.ToEntity(m)
	return nil
}

func (r *CommissionContactRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CommissionContact, error) {
	var m model.CommissionContact
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("Profile").Preload("ContactProfile"), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *CommissionContactRepositoryImpl) FindAllForUser(ctx context.Context, userId uuid.UUID) ([]*entity.CommissionContact, error) {
	var models []*model.CommissionContact
	query := r.applySpecifications(
		r.db.WithContext(ctx).Preload("Profile").Preload("ContactProfile"),
		specification.ByEitherSide{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	err := query.Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *CommissionContactRepositoryImpl) AreConnected(ctx context.Context, userId, otherUserId uuid.UUID) (bool, error) {
	var count int64
	query := r.applySpecifications(
		r.db.WithContext(ctx).Model(&model.CommissionContact{}),
		specification.ByContactStatus{Status: constant.ContactStatusAccepted},
	)
	err := query.
		Where("(user_id = ? AND contact_user_id = ?) OR (user_id = ? AND contact_user_id = ?)",
			userId, otherUserId, otherUserId, userId).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
