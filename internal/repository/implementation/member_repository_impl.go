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

type MemberRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MemberMapper
}

func NewMemberRepository(db *gorm.DB) contract.MemberRepository {
	return &MemberRepositoryImpl{
		db:     db,
		mapper: mapper.NewMemberMapper(),
	}
}

func (r *MemberRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MemberRepositoryImpl) Create(ctx context.Context, member *entity.Member) error {
	m := r.mapper.ToModel(member)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*member = *r.mapper.ToEntity(m)
	return nil
}

func (r *MemberRepositoryImpl) Update(ctx context.Context, member *entity.Member) error {
	m := r.mapper.ToModel(member)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*member = *r.mapper.ToEntity(m)
	return nil
}

func (r *MemberRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Member{}, id).Error
}

func (r *MemberRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Member, error) {
	var m model.Member
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *MemberRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Member, error) {
	var models []*model.Member
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *MemberRepositoryImpl) FindByIds(ctx context.Context, ids []uuid.UUID) ([]*entity.Member, error) {
	var models []*model.Member
	query := r.applySpecifications(r.db.WithContext(ctx), specification.ByIDs{IDs: ids})
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
